package ontology

// GenericParentModule is a ParentModule that is itself addressable: it
// registers as an Indexable under its name when created, so children can be
// reached as (name, id) through the registry.
type GenericParentModule struct {
	ParentModule
	name     string
	registry *Registry
}

func NewGenericParentModule(owner Entity, registry *Registry, name string, opts ...Option) *GenericParentModule {
	g := &GenericParentModule{
		ParentModule: *NewParentModule(owner, opts...),
		name:         name,
		registry:     registry,
	}
	if registry != nil {
		registry.AddIndexable(g, name)
	}
	return g
}

func (g *GenericParentModule) Name() string {
	return g.name
}

// Module returns the embedded ledger, which is what children point back to.
func (g *GenericParentModule) Module() *ParentModule {
	return &g.ParentModule
}

// DestroyChild unbinds the child in slot childID, releases it and, if an
// allocator built it, hands its storage back. Containers are torn down
// first. It reports whether the slot was occupied.
func (g *GenericParentModule) DestroyChild(childID int) bool {
	if g.Get(childID) == nil {
		return false
	}
	g.destroyChild(childID)
	return true
}
