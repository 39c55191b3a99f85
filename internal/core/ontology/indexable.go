package ontology

// Indexable gives read access to a child by slot. Get returns nil for empty
// and out-of-range slots.
type Indexable interface {
	Get(index int) Entity
}
