package ontology

import (
	"github.com/ylikuutio/ylikuutio/internal/core/observability/log"
	"github.com/ylikuutio/ylikuutio/pkg/sequence"
)

// Handle is a child id paired with the generation of its slot. A handle
// taken before the child was unbound no longer resolves, even after the id
// has been handed to another child.
type Handle struct {
	ID         int
	Generation uint32
}

type options struct {
	log   log.Log
	names *Registry
}

type Option func(*options)

// WithLogger sets the logger used for teardown diagnostics.
func WithLogger(l log.Log) Option {
	return func(o *options) {
		if l != nil {
			o.log = l
		}
	}
}

// WithLocalNames sets the owner's lookup map that bound children register
// their local names in.
func WithLocalNames(names *Registry) Option {
	return func(o *options) {
		o.names = names
	}
}

// ParentModule is the ownership ledger of one container.
//
// Slot i of the slot slice holds the child whose id is i, or nil. Freed ids
// are queued first-in first-out and reissued only if they are still inside
// the slice and empty. The slice shrinks only when its tail slot is freed,
// so its length is always the highest occupied id plus one.
type ParentModule struct {
	owner            Entity
	names            *Registry
	slots            []Entity
	generations      []uint32
	freeIDs          *sequence.Queue[int]
	numberOfChildren int
	destroyed        bool
	log              log.Log
}

var _ Indexable = (*ParentModule)(nil)

func NewParentModule(owner Entity, opts ...Option) *ParentModule {
	o := options{log: log.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	return &ParentModule{
		owner:   owner,
		names:   o.names,
		freeIDs: sequence.NewQueue[int](8),
		log:     o.log,
	}
}

func (p *ParentModule) Owner() Entity {
	return p.owner
}

// BindChild installs child in a free slot and records the slot on the
// child. It returns false, changing nothing, when the module has no owner,
// child is nil, child is already bound somewhere, or the module has been
// destroyed.
func (p *ParentModule) BindChild(child Entity) bool {
	if child == nil || !p.canBind() || child.base().child.IsBound() {
		return false
	}

	childID := p.nextChildID()
	p.slots[childID] = child
	p.numberOfChildren++

	if name := child.LocalName(); name != "" && p.names != nil {
		// first registrant wins; a same-named sibling stays unnamed here
		p.names.AddEntity(child, name)
	}
	child.base().child.set(p, childID)

	p.log.Debug("child bound",
		log.Int("child_id", childID),
		log.String("name", child.LocalName()),
		log.Int("children", p.numberOfChildren),
	)
	return true
}

// UnbindChild empties slot childID. Invalid ids and empty slots are ignored.
// The child itself is left alive; destroying it is the caller's business.
func (p *ParentModule) UnbindChild(childID int) {
	if childID < 0 || childID >= len(p.slots) {
		return
	}
	child := p.slots[childID]
	if child == nil {
		return
	}

	if name := child.LocalName(); name != "" && p.names != nil {
		p.names.eraseEntityIfOwner(name, child)
	}
	p.slots[childID] = nil
	p.generations[childID]++
	p.numberOfChildren--
	p.freeIDs.Enqueue(childID)
	child.base().child.reset()

	if childID == len(p.slots)-1 {
		p.trimTail()
	}

	p.log.Debug("child unbound",
		log.Int("child_id", childID),
		log.Int("children", p.numberOfChildren),
	)
}

// Get returns the child in slot index, or nil.
func (p *ParentModule) Get(index int) Entity {
	if index < 0 || index >= len(p.slots) {
		return nil
	}
	return p.slots[index]
}

func (p *ParentModule) NumberOfChildren() int {
	return p.numberOfChildren
}

// NumberOfDescendants counts every entity below this module.
func (p *ParentModule) NumberOfDescendants() int {
	n := 0
	for _, child := range p.slots {
		if child != nil {
			n += 1 + child.NumberOfDescendants()
		}
	}
	return n
}

// Len is the length of the slot slice, counting empty slots.
func (p *ParentModule) Len() int {
	return len(p.slots)
}

// FreeIDs returns the queued free ids in reuse order.
func (p *ParentModule) FreeIDs() []int {
	return p.freeIDs.ToSlice()
}

// Each visits live children in slot order until fn returns false.
func (p *ParentModule) Each(fn func(Entity) bool) {
	for _, child := range p.slots {
		if child != nil && !fn(child) {
			return
		}
	}
}

func (p *ParentModule) Handle(childID int) (Handle, bool) {
	if p.Get(childID) == nil {
		return Handle{}, false
	}
	return Handle{ID: childID, Generation: p.generations[childID]}, true
}

// Resolve returns the child h refers to, or nil if it has been unbound since.
func (p *ParentModule) Resolve(h Handle) Entity {
	child := p.Get(h.ID)
	if child == nil || p.generations[h.ID] != h.Generation {
		return nil
	}
	return child
}

func (p *ParentModule) IsDestroyed() bool {
	return p.destroyed
}

// Destroy tears down every live child, depth first: a container child
// destroys its own children before it is unbound, released and handed back
// to its allocator. Children left behind are logged, not fatal.
func (p *ParentModule) Destroy() {
	p.destroyed = true

	for i := len(p.slots) - 1; i >= 0; i-- {
		if i >= len(p.slots) || p.slots[i] == nil {
			continue
		}
		p.destroyChild(i)
	}

	if p.numberOfChildren != 0 {
		p.log.Error("children left after teardown",
			log.Int("children", p.numberOfChildren),
			log.Int("slots", len(p.slots)),
		)
	}
}

func (p *ParentModule) destroyChild(childID int) {
	child := p.slots[childID]
	if d, ok := child.(Destroyer); ok {
		d.Destroy()
	}
	p.UnbindChild(childID)
	reclaim(child)
}

// reclaim releases an unbound child and returns allocator-built storage.
func reclaim(child Entity) {
	child.Release()

	if cm := child.ConstructibleModule(); cm.Alive && cm.Allocator != nil {
		cm.Allocator.Destroy(cm)
	}
}

func (p *ParentModule) canBind() bool {
	return p.owner != nil && !p.destroyed
}

// nextChildID takes the oldest freed id that still names an empty slot
// inside the slice, dropping stale ones, or grows the slice by one.
func (p *ParentModule) nextChildID() int {
	for !p.freeIDs.IsEmpty() {
		childID, _ := p.freeIDs.Dequeue()
		if childID < len(p.slots) && p.slots[childID] == nil {
			return childID
		}
	}

	childID := len(p.slots)
	p.slots = append(p.slots, nil)
	if childID >= len(p.generations) {
		p.generations = append(p.generations, 0)
	}
	return childID
}

func (p *ParentModule) trimTail() {
	n := len(p.slots)
	for n > 0 && p.slots[n-1] == nil {
		n--
	}
	clear(p.slots[n:])
	p.slots = p.slots[:n]
}
