package world

import "github.com/ylikuutio/ylikuutio/internal/core/ontology"

// Scene owns materials (addressable as "materials" in its local registry)
// and cameras.
type Scene struct {
	ontology.Base

	universe  *Universe
	names     *ontology.Registry
	materials *ontology.GenericParentModule
	cameras   *ontology.ParentModule
	active    ontology.Handle
	hasActive bool
}

var (
	_ ontology.Entity    = (*Scene)(nil)
	_ ontology.Destroyer = (*Scene)(nil)
)

func (s *Scene) Universe() *Universe {
	return s.universe
}

// Names is the scene's lookup map of child local names.
func (s *Scene) Names() *ontology.Registry {
	return s.names
}

func (s *Scene) Materials() *ontology.GenericParentModule {
	return s.materials
}

func (s *Scene) Cameras() *ontology.ParentModule {
	return s.cameras
}

func (s *Scene) Material(localName string) *Material {
	m, _ := s.names.GetEntity(localName).(*Material)
	return m
}

func (s *Scene) Camera(localName string) *Camera {
	c, _ := s.names.GetEntity(localName).(*Camera)
	return c
}

// SetActiveCamera remembers c by handle, so a later unbind is noticed.
func (s *Scene) SetActiveCamera(c *Camera) bool {
	if c == nil || c.Parent() != ontology.Entity(s) {
		return false
	}
	h, ok := s.cameras.Handle(c.ChildID())
	if !ok {
		return false
	}
	s.active, s.hasActive = h, true
	return true
}

// ActiveCamera returns the active camera, or nil if it has left the scene.
func (s *Scene) ActiveCamera() *Camera {
	if !s.hasActive {
		return nil
	}
	c, _ := s.cameras.Resolve(s.active).(*Camera)
	return c
}

func (s *Scene) NumberOfChildren() int {
	return s.materials.NumberOfChildren() + s.cameras.NumberOfChildren()
}

func (s *Scene) NumberOfDescendants() int {
	return s.materials.NumberOfDescendants() + s.cameras.NumberOfDescendants()
}

func (s *Scene) Destroy() {
	s.cameras.Destroy()
	s.materials.Destroy()
	s.hasActive = false
}

func (s *Scene) Release() {
	s.universe.forget(s)
	s.Base.Release()
}

// NewMaterial and NewCamera return nil once the scene has been destroyed.
func (s *Scene) NewMaterial(name, texture string) *Material {
	m := &Material{universe: s.universe, Texture: texture}
	m.SetLocalName(name)
	m.names = ontology.NewRegistry()
	m.objects = ontology.NewGenericParentModule(m, m.names, "objects",
		ontology.WithLocalNames(m.names),
		ontology.WithLogger(s.universe.log),
	)

	if !s.materials.BindChild(m) {
		return nil
	}
	s.universe.SetGlobalName(m, name)
	return m
}

func (s *Scene) NewCamera(name string, position Vec3) *Camera {
	c := &Camera{universe: s.universe, Position: position}
	c.SetLocalName(name)

	if !s.cameras.BindChild(c) {
		return nil
	}
	s.universe.SetGlobalName(c, name)
	return c
}
