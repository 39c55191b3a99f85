package ontology

type leaf struct {
	Base
	Descendant
	released int
}

func newLeaf(name string) *leaf {
	l := &leaf{}
	l.SetLocalName(name)
	return l
}

func (l *leaf) Release() {
	l.released++
	l.Base.Release()
}

type node struct {
	Base
	children  *ParentModule
	destroyed int
}

func newNode(name string, opts ...Option) *node {
	n := &node{}
	n.SetLocalName(name)
	n.children = NewParentModule(n, opts...)
	return n
}

func (n *node) NumberOfChildren() int    { return n.children.NumberOfChildren() }
func (n *node) NumberOfDescendants() int { return n.children.NumberOfDescendants() }

func (n *node) Destroy() {
	n.destroyed++
	n.children.Destroy()
}

// checkInvariants verifies the ledger invariants that must hold after every operation.
func checkInvariants(p *ParentModule) (ok bool, reason string) {
	live := 0
	for i, child := range p.slots {
		if child == nil {
			continue
		}
		live++
		if child.ChildID() != i {
			return false, "child id does not match slot"
		}
		if child.base().child.parent != p {
			return false, "child points at another module"
		}
	}
	if live != p.numberOfChildren {
		return false, "live count mismatch"
	}
	if n := len(p.slots); n > 0 && p.slots[n-1] == nil {
		return false, "trailing empty slot"
	}
	return true, ""
}
