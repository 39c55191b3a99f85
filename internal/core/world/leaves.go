package world

import "github.com/ylikuutio/ylikuutio/internal/core/ontology"

type Vec3 [3]float32

// Object is a leaf built in the universe's slab allocator. Once it has been
// destroyed its memory is zeroed and may hold another object.
type Object struct {
	ontology.Base
	ontology.Descendant

	Position Vec3

	universe *Universe
}

var _ ontology.Entity = (*Object)(nil)

func (o *Object) Material() *Material {
	m, _ := ontology.NewAscendant[*Material](o).Parent()
	return m
}

func (o *Object) Release() {
	o.universe.forget(o)
	o.Base.Release()
}

// Camera is a heap-allocated leaf.
type Camera struct {
	ontology.Base
	ontology.Descendant

	Position   Vec3
	Yaw, Pitch float32

	universe *Universe
}

var _ ontology.Entity = (*Camera)(nil)

func (c *Camera) Scene() *Scene {
	s, _ := ontology.NewAscendant[*Scene](c).Parent()
	return s
}

func (c *Camera) Release() {
	c.universe.forget(c)
	c.Base.Release()
}
