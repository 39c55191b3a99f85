package world

import "github.com/ylikuutio/ylikuutio/internal/core/ontology"

// Material owns the objects drawn with it. Texture is a file name only;
// nothing is loaded.
type Material struct {
	ontology.Base

	Texture string

	universe *Universe
	names    *ontology.Registry
	objects  *ontology.GenericParentModule
}

var (
	_ ontology.Entity    = (*Material)(nil)
	_ ontology.Destroyer = (*Material)(nil)
)

func (m *Material) Names() *ontology.Registry {
	return m.names
}

func (m *Material) Objects() *ontology.GenericParentModule {
	return m.objects
}

func (m *Material) Object(localName string) *Object {
	o, _ := m.names.GetEntity(localName).(*Object)
	return o
}

// Scene is the owning scene, or nil when the material is unbound.
func (m *Material) Scene() *Scene {
	s, _ := ontology.NewAscendant[*Scene](m).Parent()
	return s
}

func (m *Material) NumberOfChildren() int {
	return m.objects.NumberOfChildren()
}

func (m *Material) NumberOfDescendants() int {
	return m.objects.NumberOfDescendants()
}

func (m *Material) Destroy() {
	m.objects.Destroy()
}

func (m *Material) Release() {
	m.universe.forget(m)
	m.Base.Release()
}

// NewObject builds an object in the universe's object allocator and binds it.
// It returns nil, with the slot handed back, once the material is destroyed.
func (m *Material) NewObject(name string, position Vec3) *Object {
	o := m.universe.objects.Build(func(o *Object) {
		o.universe = m.universe
		o.Position = position
		o.SetLocalName(name)
	})

	if !m.objects.BindChild(o) {
		m.universe.objects.Destroy(o.ConstructibleModule())
		return nil
	}
	m.universe.SetGlobalName(o, name)
	return o
}
