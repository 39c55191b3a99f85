package memory

import (
	"github.com/cespare/xxhash/v2"

	"github.com/ylikuutio/ylikuutio/internal/core/observability/log"
	"github.com/ylikuutio/ylikuutio/pkg/generic"
)

// DefaultSlabSize is the number of instances per MemoryStorage when no size is given.
const DefaultSlabSize = 256

// Tag identifies the kind of instance an allocator builds.
type Tag uint64

// TagOf hashes a kind name into its Tag.
func TagOf(kind string) Tag {
	return Tag(xxhash.Sum64String(kind))
}

// GenericMemoryAllocator is the type-erased view of an allocator that parent
// modules use to hand instances back.
type GenericMemoryAllocator interface {
	Kind() string
	Tag() Tag
	NumberOfStorages() int
	NumberOfInstances() int
	// Destroy zeroes the instance in place and frees its slot. It must be
	// called at most once per live instance.
	Destroy(cm ConstructibleModule)
}

// ConstructibleModule records where an allocator-built instance lives.
// The zero value describes an instance that no allocator manages.
type ConstructibleModule struct {
	StorageIndex int
	SlotIndex    int
	Alive        bool
	Allocator    GenericMemoryAllocator
}

func (cm ConstructibleModule) IsManaged() bool {
	return cm.Allocator != nil
}

// Constructible is implemented by instances that can record their ConstructibleModule.
type Constructible interface {
	SetConstructibleModule(cm ConstructibleModule)
}

// Pointer constrains PT to *T implementing Constructible.
type Pointer[T any] interface {
	*T
	Constructible
}

// MemoryAllocator builds instances of T into fixed-capacity slabs. Pointers it
// returns stay valid until the instance is destroyed, because a slab never
// reallocates its backing array.
type MemoryAllocator[T any, PT Pointer[T]] struct {
	kind      string
	tag       Tag
	slabSize  int
	storages  []*MemoryStorage[T]
	instances int
	pool      *generic.Pool[*MemoryStorage[T]]
	log       log.Log
}

func NewMemoryAllocator[T any, PT Pointer[T]](kind string, slabSize int, logger log.Log) *MemoryAllocator[T, PT] {
	if slabSize <= 0 {
		slabSize = DefaultSlabSize
	}
	if logger == nil {
		logger = log.NewNop()
	}
	return &MemoryAllocator[T, PT]{
		kind:     kind,
		tag:      TagOf(kind),
		slabSize: slabSize,
		pool: generic.NewResettingPool(
			func() *MemoryStorage[T] { return NewMemoryStorage[T](slabSize) },
			func(s *MemoryStorage[T]) { s.Reset() },
		),
		log: logger,
	}
}

func (a *MemoryAllocator[T, PT]) Kind() string {
	return a.kind
}

func (a *MemoryAllocator[T, PT]) Tag() Tag {
	return a.tag
}

func (a *MemoryAllocator[T, PT]) SlabSize() int {
	return a.slabSize
}

// Build reserves a slot, lets construct initialise the zeroed instance and
// then stamps its ConstructibleModule.
func (a *MemoryAllocator[T, PT]) Build(construct func(PT)) PT {
	storageIndex := a.storageWithSpace()
	storage := a.storages[storageIndex]
	slotIndex, instance := storage.acquire()

	pt := PT(instance)
	if construct != nil {
		construct(pt)
	}
	pt.SetConstructibleModule(ConstructibleModule{
		StorageIndex: storageIndex,
		SlotIndex:    slotIndex,
		Alive:        true,
		Allocator:    a,
	})
	a.instances++

	return pt
}

func (a *MemoryAllocator[T, PT]) Destroy(cm ConstructibleModule) {
	if cm.Allocator != GenericMemoryAllocator(a) || !cm.Alive {
		return
	}
	if cm.StorageIndex < 0 || cm.StorageIndex >= len(a.storages) {
		return
	}
	storage := a.storages[cm.StorageIndex]
	if storage == nil || !storage.release(cm.SlotIndex) {
		a.log.Debug("destroy of dead instance ignored",
			log.String("kind", a.kind),
			log.Int("storage", cm.StorageIndex),
			log.Int("slot", cm.SlotIndex),
		)
		return
	}
	a.instances--

	if storage.IsEmpty() {
		a.storages[cm.StorageIndex] = nil
		a.pool.Put(storage)
		a.trimStorages()
	}
}

func (a *MemoryAllocator[T, PT]) NumberOfStorages() int {
	n := 0
	for _, s := range a.storages {
		if s != nil {
			n++
		}
	}
	return n
}

func (a *MemoryAllocator[T, PT]) NumberOfInstances() int {
	return a.instances
}

// Each visits live instances in storage order until fn returns false.
func (a *MemoryAllocator[T, PT]) Each(fn func(PT) bool) {
	for _, s := range a.storages {
		if s == nil {
			continue
		}
		for i := range s.items {
			if s.alive[i] && !fn(PT(&s.items[i])) {
				return
			}
		}
	}
}

func (a *MemoryAllocator[T, PT]) storageWithSpace() int {
	firstHole := -1
	for i, s := range a.storages {
		if s == nil {
			if firstHole < 0 {
				firstHole = i
			}
			continue
		}
		if !s.IsFull() {
			return i
		}
	}
	storage := a.pool.Get()
	if firstHole >= 0 {
		a.storages[firstHole] = storage
		return firstHole
	}
	a.storages = append(a.storages, storage)
	return len(a.storages) - 1
}

// trimStorages drops trailing empty storage slots so indices of live storages never move.
func (a *MemoryAllocator[T, PT]) trimStorages() {
	n := len(a.storages)
	for n > 0 && a.storages[n-1] == nil {
		n--
	}
	a.storages = a.storages[:n]
}
