// Package world holds the engine entity kinds that are built on the
// ontology: a Universe owns Scenes, a Scene owns Materials and Cameras, and
// a Material owns Objects.
package world

import (
	"github.com/ylikuutio/ylikuutio/internal/core/memory"
	"github.com/ylikuutio/ylikuutio/internal/core/observability/log"
	"github.com/ylikuutio/ylikuutio/internal/core/ontology"
)

// Kind names, also used as allocator tags.
const (
	KindUniverse = "universe"
	KindScene    = "scene"
	KindMaterial = "material"
	KindObject   = "object"
	KindCamera   = "camera"
)

// ScenesModuleName is the registry name of the universe's scene module.
const ScenesModuleName = "scenes"

type config struct {
	log      log.Log
	slabSize int
}

type Option func(*config)

func WithLogger(l log.Log) Option {
	return func(c *config) {
		if l != nil {
			c.log = l
		}
	}
}

// WithSlabSize sets how many objects each allocator slab holds.
func WithSlabSize(n int) Option {
	return func(c *config) {
		c.slabSize = n
	}
}

// Universe is the root of one ontology tree. It owns the registry of global
// names and the allocators, and nothing outlives it.
type Universe struct {
	ontology.Base

	registry *ontology.Registry
	names    *ontology.Registry
	scenes   *ontology.GenericParentModule
	hub      *memory.Hub
	objects  *memory.MemoryAllocator[Object, *Object]
	log      log.Log
}

func NewUniverse(opts ...Option) *Universe {
	c := config{log: log.NewNop(), slabSize: memory.DefaultSlabSize}
	for _, opt := range opts {
		opt(&c)
	}

	u := &Universe{
		registry: ontology.NewRegistry(),
		names:    ontology.NewRegistry(),
		hub:      memory.NewHub(),
		log:      c.log,
	}
	u.SetLocalName(KindUniverse)
	u.SetCanBeErased(false)
	u.scenes = ontology.NewGenericParentModule(u, u.registry, ScenesModuleName,
		ontology.WithLocalNames(u.names),
		ontology.WithLogger(c.log.Named(ScenesModuleName)),
	)
	u.objects = memory.NewMemoryAllocator[Object, *Object](KindObject, c.slabSize, c.log)
	u.hub.Register(u.objects)

	return u
}

// Registry is the directory of global names and of the scene module.
func (u *Universe) Registry() *ontology.Registry {
	return u.registry
}

func (u *Universe) Hub() *memory.Hub {
	return u.hub
}

func (u *Universe) Log() log.Log {
	return u.log
}

func (u *Universe) Scenes() *ontology.GenericParentModule {
	return u.scenes
}

// Scene returns the scene bound under the given local name.
func (u *Universe) Scene(localName string) *Scene {
	s, _ := u.names.GetEntity(localName).(*Scene)
	return s
}

// Lookup resolves a global name.
func (u *Universe) Lookup(globalName string) ontology.Entity {
	return u.registry.GetEntity(globalName)
}

// SetGlobalName names e in the universe registry. It fails if another
// entity holds the name.
func (u *Universe) SetGlobalName(e ontology.Entity, name string) bool {
	return u.registry.SetGlobalName(e, name)
}

func (u *Universe) forget(e ontology.Entity) {
	if e.GlobalName() != "" {
		u.registry.SetGlobalName(e, "")
	}
}

func (u *Universe) NumberOfChildren() int {
	return u.scenes.NumberOfChildren()
}

func (u *Universe) NumberOfDescendants() int {
	return u.scenes.NumberOfDescendants()
}

// Destroy tears down every scene, and with them the whole tree.
func (u *Universe) Destroy() {
	u.scenes.Destroy()
}

// NewScene creates a scene bound to u. The scene takes name as both its
// local and global name when they are free. It returns nil after Destroy.
func (u *Universe) NewScene(name string) *Scene {
	s := &Scene{universe: u}
	s.SetLocalName(name)
	s.names = ontology.NewRegistry()
	s.materials = ontology.NewGenericParentModule(s, s.names, "materials",
		ontology.WithLocalNames(s.names),
		ontology.WithLogger(u.log),
	)
	s.cameras = ontology.NewParentModule(s,
		ontology.WithLocalNames(s.names),
		ontology.WithLogger(u.log),
	)

	if !u.scenes.BindChild(s) {
		return nil
	}
	u.SetGlobalName(s, name)
	return s
}
