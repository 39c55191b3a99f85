package ontology

// Ascendant is a typed view of an entity's single parent, so callers that
// know what kind of container owns an entity need no type switch.
type Ascendant[P Entity] struct {
	module *ChildModule
}

// NewAscendant returns the parent view of child.
func NewAscendant[P Entity](child Entity) Ascendant[P] {
	if child == nil {
		return Ascendant[P]{}
	}
	return Ascendant[P]{module: &child.base().child}
}

// Parent returns the owning entity as a P. It reports false when the child
// is unbound or its owner is of another kind.
func (a Ascendant[P]) Parent() (P, bool) {
	var zero P
	if a.module == nil {
		return zero, false
	}
	parent, ok := a.module.Parent().(P)
	if !ok {
		return zero, false
	}
	return parent, true
}

// ChildID is the slot the child occupies in its parent, or NoChildID.
func (a Ascendant[P]) ChildID() int {
	if a.module == nil {
		return NoChildID
	}
	return a.module.ChildID()
}
