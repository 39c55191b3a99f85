package memory

import "sort"

// Stats is a snapshot of one allocator.
type Stats struct {
	Kind      string
	Tag       Tag
	Storages  int
	Instances int
}

// Hub indexes the allocators of one universe by kind tag.
type Hub struct {
	allocators map[Tag]GenericMemoryAllocator
}

func NewHub() *Hub {
	return &Hub{allocators: make(map[Tag]GenericMemoryAllocator)}
}

// Register adds allocator under its kind. It reports false if the kind is taken.
func (h *Hub) Register(allocator GenericMemoryAllocator) bool {
	if allocator == nil {
		return false
	}
	tag := allocator.Tag()
	if _, exists := h.allocators[tag]; exists {
		return false
	}
	h.allocators[tag] = allocator
	return true
}

func (h *Hub) Get(kind string) (GenericMemoryAllocator, bool) {
	a, ok := h.allocators[TagOf(kind)]
	return a, ok
}

func (h *Hub) NumberOfInstances() int {
	n := 0
	for _, a := range h.allocators {
		n += a.NumberOfInstances()
	}
	return n
}

// Stats returns one entry per allocator sorted by kind.
func (h *Hub) Stats() []Stats {
	out := make([]Stats, 0, len(h.allocators))
	for tag, a := range h.allocators {
		out = append(out, Stats{
			Kind:      a.Kind(),
			Tag:       tag,
			Storages:  a.NumberOfStorages(),
			Instances: a.NumberOfInstances(),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Kind < out[j].Kind })
	return out
}
