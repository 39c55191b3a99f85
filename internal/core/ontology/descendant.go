package ontology

// Descendant is embedded by leaf entities: it never has children.
type Descendant struct{}

func (Descendant) NumberOfChildren() int    { return 0 }
func (Descendant) NumberOfDescendants() int { return 0 }

// Get always returns nil; leaves index nothing.
func (Descendant) Get(int) Entity { return nil }
