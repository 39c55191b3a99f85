// Package factory creates, deletes and moves world entities by global name
// and publishes a lifecycle event for each change.
package factory

import (
	"fmt"

	"github.com/ylikuutio/ylikuutio/internal/core/events/bus"
	"github.com/ylikuutio/ylikuutio/internal/core/observability/log"
	"github.com/ylikuutio/ylikuutio/internal/core/ontology"
	"github.com/ylikuutio/ylikuutio/internal/core/world"
)

const eventSource = "factory"

type Factory struct {
	universe *world.Universe
	bus      bus.EventBus
	log      log.Log
}

// New returns a factory over u. A nil eventBus gets a private bus nobody
// listens to.
func New(u *world.Universe, eventBus bus.EventBus, logger log.Log) *Factory {
	if eventBus == nil {
		eventBus = bus.New()
	}
	if logger == nil {
		logger = u.Log()
	}
	return &Factory{universe: u, bus: eventBus, log: logger.Named(eventSource)}
}

func (f *Factory) Universe() *world.Universe {
	return f.universe
}

func (f *Factory) Bus() bus.EventBus {
	return f.bus
}

func (f *Factory) CreateScene(name string) (*world.Scene, error) {
	if err := f.checkName(name); err != nil {
		return nil, err
	}
	s := f.universe.NewScene(name)
	if s == nil {
		return nil, fmt.Errorf("%w: universe", ErrDestroyed)
	}
	return s, f.created(world.KindScene, s)
}

func (f *Factory) CreateMaterial(name, sceneName, texture string) (*world.Material, error) {
	if err := f.checkName(name); err != nil {
		return nil, err
	}
	s, err := f.scene(sceneName)
	if err != nil {
		return nil, err
	}
	m := s.NewMaterial(name, texture)
	if m == nil {
		return nil, fmt.Errorf("%w: scene %q", ErrDestroyed, sceneName)
	}
	return m, f.created(world.KindMaterial, m)
}

func (f *Factory) CreateObject(name, materialName string, position world.Vec3) (*world.Object, error) {
	if err := f.checkName(name); err != nil {
		return nil, err
	}
	m, ok := f.universe.Lookup(materialName).(*world.Material)
	if !ok {
		return nil, fmt.Errorf("%w: material %q", ErrUnknownParent, materialName)
	}
	o := m.NewObject(name, position)
	if o == nil {
		return nil, fmt.Errorf("%w: material %q", ErrDestroyed, materialName)
	}
	return o, f.created(world.KindObject, o)
}

func (f *Factory) CreateCamera(name, sceneName string, position world.Vec3) (*world.Camera, error) {
	if err := f.checkName(name); err != nil {
		return nil, err
	}
	s, err := f.scene(sceneName)
	if err != nil {
		return nil, err
	}
	c := s.NewCamera(name, position)
	if c == nil {
		return nil, fmt.Errorf("%w: scene %q", ErrDestroyed, sceneName)
	}
	return c, f.created(world.KindCamera, c)
}

// Create dispatches on kind. Objects and cameras are placed at the origin.
func (f *Factory) Create(kind, name, parent string) (ontology.Entity, error) {
	var (
		e   ontology.Entity
		err error
	)
	switch kind {
	case world.KindScene:
		e, err = entityOf(f.CreateScene(name))
	case world.KindMaterial:
		e, err = entityOf(f.CreateMaterial(name, parent, ""))
	case world.KindObject:
		e, err = entityOf(f.CreateObject(name, parent, world.Vec3{}))
	case world.KindCamera:
		e, err = entityOf(f.CreateCamera(name, parent, world.Vec3{}))
	default:
		err = fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	return e, err
}

// entityOf keeps a nil pointer from becoming a non-nil Entity.
func entityOf[E interface {
	ontology.Entity
	comparable
}](e E, err error) (ontology.Entity, error) {
	var zero E
	if e == zero {
		return nil, err
	}
	return e, err
}

// Delete destroys the named entity together with everything it owns.
func (f *Factory) Delete(name string) error {
	e := f.universe.Lookup(name)
	if e == nil {
		return fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	if !e.CanBeErased() {
		return fmt.Errorf("%w: %q", ErrPinned, name)
	}
	change := describe(e)
	removed := e.NumberOfDescendants() + 1

	if !ontology.DestroyEntity(e) {
		return fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	f.log.Debug("entity deleted",
		log.String("name", name),
		log.String("kind", change.Kind),
		log.Int("removed", removed),
	)
	return f.publish(bus.EntityDeleted, change)
}

// Move rebinds the named entity under newParent. Materials and cameras move
// between scenes, objects between materials. Scenes stay in their universe.
func (f *Factory) Move(name, newParent string) error {
	e := f.universe.Lookup(name)
	if e == nil {
		return fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	target := f.universe.Lookup(newParent)
	if target == nil {
		return fmt.Errorf("%w: %q", ErrUnknownParent, newParent)
	}

	var module *ontology.ParentModule
	switch e.(type) {
	case *world.Material:
		if s, ok := target.(*world.Scene); ok {
			module = s.Materials().Module()
		}
	case *world.Camera:
		if s, ok := target.(*world.Scene); ok {
			module = s.Cameras()
		}
	case *world.Object:
		if m, ok := target.(*world.Material); ok {
			module = m.Objects().Module()
		}
	}
	if module == nil {
		return fmt.Errorf("%w: %s %q under %s %q", ErrCannotMove, KindOf(e), name, KindOf(target), newParent)
	}
	if !ontology.Rebind(e, module) {
		return fmt.Errorf("%w: %q rejected by %q", ErrCannotMove, name, newParent)
	}
	return f.publish(bus.EntityMoved, describe(e))
}

// KindOf names the world kind of e, or "" for foreign entities.
func KindOf(e ontology.Entity) string {
	switch e.(type) {
	case *world.Universe:
		return world.KindUniverse
	case *world.Scene:
		return world.KindScene
	case *world.Material:
		return world.KindMaterial
	case *world.Object:
		return world.KindObject
	case *world.Camera:
		return world.KindCamera
	default:
		return ""
	}
}

func (f *Factory) scene(name string) (*world.Scene, error) {
	s, ok := f.universe.Lookup(name).(*world.Scene)
	if !ok {
		return nil, fmt.Errorf("%w: scene %q", ErrUnknownParent, name)
	}
	return s, nil
}

func (f *Factory) checkName(name string) error {
	if name == "" {
		return ErrEmptyName
	}
	if f.universe.Registry().IsName(name) {
		return fmt.Errorf("%w: %q", ErrNameTaken, name)
	}
	return nil
}

func (f *Factory) created(kind string, e ontology.Entity) error {
	change := describe(e)
	f.log.Debug("entity created",
		log.String("name", change.GlobalName),
		log.String("kind", kind),
		log.Int("child_id", change.ChildID),
	)
	return f.publish(bus.EntityCreated, change)
}

func (f *Factory) publish(eventType string, change bus.EntityChange) error {
	if err := f.bus.Publish(bus.NewEntityEvent(eventType, eventSource, change)); err != nil {
		return fmt.Errorf("publish %s: %w", eventType, err)
	}
	return nil
}

func describe(e ontology.Entity) bus.EntityChange {
	change := bus.EntityChange{
		Kind:       KindOf(e),
		GlobalName: e.GlobalName(),
		ChildID:    e.ChildID(),
	}
	if p := e.Parent(); p != nil {
		change.Parent = p.GlobalName()
		if change.Parent == "" {
			change.Parent = p.LocalName()
		}
	}
	return change
}
