package ontology

// ChildModule is the back-reference from an entity to the slot it occupies.
// The zero value is unbound.
type ChildModule struct {
	parent  *ParentModule
	childID int
}

func (m *ChildModule) IsBound() bool {
	return m.parent != nil
}

func (m *ChildModule) ChildID() int {
	if m.parent == nil {
		return NoChildID
	}
	return m.childID
}

// ParentModule returns the module holding the slot, or nil.
func (m *ChildModule) ParentModule() *ParentModule {
	return m.parent
}

// Parent returns the entity owning the parent module, or nil when unbound.
func (m *ChildModule) Parent() Entity {
	if m.parent == nil {
		return nil
	}
	return m.parent.owner
}

func (m *ChildModule) set(parent *ParentModule, childID int) {
	m.parent = parent
	m.childID = childID
}

func (m *ChildModule) reset() {
	m.parent = nil
	m.childID = 0
}

// Rebind moves child from its current parent module to target: unbind from
// the old one, then bind to the new one, with nothing in between. It refuses
// moves that would put an entity underneath itself, refuses released
// children and leaves the child where it was when target cannot accept it.
func Rebind(child Entity, target *ParentModule) bool {
	if child == nil || !child.IsAlive() || target == nil || !target.canBind() {
		return false
	}
	for e := target.owner; e != nil; e = e.Parent() {
		if e == child {
			return false
		}
	}

	current := child.base().child.parent
	if current == target {
		return true
	}
	if current != nil {
		current.UnbindChild(child.ChildID())
	}
	return target.BindChild(child)
}

// DestroyEntity tears e down the way a parent module does for its children:
// a container destroys its own children first, then e is unbound, released
// and returned to its allocator. After it returns e must not be used.
func DestroyEntity(e Entity) bool {
	if e == nil || !e.IsAlive() {
		return false
	}
	if parent := e.base().child.parent; parent != nil {
		parent.destroyChild(e.ChildID())
		return true
	}
	if d, ok := e.(Destroyer); ok {
		d.Destroy()
	}
	reclaim(e)
	return true
}
