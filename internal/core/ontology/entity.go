// Package ontology implements the ownership tree shared by every engine entity.
//
// A container owns its children through a ParentModule: a dense slot slice
// indexed by child id, a FIFO queue of freed ids, and a live count. Every
// child carries a ChildModule pointing back at the slot it occupies. Names
// are resolved through a Registry which also answers prefix completion.
//
// The package is single-threaded: nothing here locks, and callers must not
// share a tree between goroutines.
package ontology

import "github.com/ylikuutio/ylikuutio/internal/core/memory"

// NoChildID is the child id of an entity that is not bound to any parent.
const NoChildID = -1

// Entity is anything that can be owned by exactly one parent module.
// Implementations embed Base (for identity and the child back-reference)
// and either Descendant (leaves) or their own child counting (containers).
type Entity interface {
	LocalName() string
	GlobalName() string
	ChildID() int
	// Parent returns the entity owning the module this entity is bound to.
	Parent() Entity
	CanBeErased() bool
	IsAlive() bool
	// Release is called once the entity has been unbound for good, before
	// its storage is reclaimed.
	Release()
	ConstructibleModule() memory.ConstructibleModule
	NumberOfChildren() int
	NumberOfDescendants() int

	base() *Base
}

// Destroyer is implemented by container entities. Destroy tears down every
// parent module the entity owns.
type Destroyer interface {
	Destroy()
}

// Base carries the state every entity shares. The zero value is an unbound,
// unnamed, live entity that can be erased.
type Base struct {
	child         ChildModule
	localName     string
	globalName    string
	pinned        bool
	released      bool
	constructible memory.ConstructibleModule
}

func (b *Base) base() *Base { return b }

func (b *Base) LocalName() string  { return b.localName }
func (b *Base) GlobalName() string { return b.globalName }
func (b *Base) ChildID() int       { return b.child.ChildID() }
func (b *Base) Parent() Entity     { return b.child.Parent() }
func (b *Base) CanBeErased() bool  { return !b.pinned }
func (b *Base) IsAlive() bool      { return !b.released }

// ChildModule exposes the back-reference, mainly for Ascendant.
func (b *Base) ChildModule() *ChildModule { return &b.child }

// SetLocalName renames an unbound entity. Bound entities keep their name
// because the parent's registry is keyed by it.
func (b *Base) SetLocalName(name string) bool {
	if b.child.IsBound() {
		return false
	}
	b.localName = name
	return true
}

// SetCanBeErased marks whether console style deletion may remove the entity.
func (b *Base) SetCanBeErased(canBeErased bool) {
	b.pinned = !canBeErased
}

func (b *Base) Release() {
	b.released = true
}

func (b *Base) ConstructibleModule() memory.ConstructibleModule {
	return b.constructible
}

func (b *Base) SetConstructibleModule(cm memory.ConstructibleModule) {
	b.constructible = cm
}
