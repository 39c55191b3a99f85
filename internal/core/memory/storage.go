package memory

// MemoryStorage is one fixed-capacity slab of T.
type MemoryStorage[T any] struct {
	items []T
	alive []bool
	free  []int // released slots, reused last-in first-out
	next  int   // first slot never handed out
	count int
}

func NewMemoryStorage[T any](capacity int) *MemoryStorage[T] {
	if capacity <= 0 {
		capacity = DefaultSlabSize
	}
	return &MemoryStorage[T]{
		items: make([]T, capacity),
		alive: make([]bool, capacity),
	}
}

func (s *MemoryStorage[T]) Cap() int {
	return len(s.items)
}

func (s *MemoryStorage[T]) Len() int {
	return s.count
}

func (s *MemoryStorage[T]) IsFull() bool {
	return s.count == len(s.items)
}

func (s *MemoryStorage[T]) IsEmpty() bool {
	return s.count == 0
}

// Reset zeroes every slot and forgets the free list.
func (s *MemoryStorage[T]) Reset() {
	var zero T
	for i := range s.items {
		s.items[i] = zero
		s.alive[i] = false
	}
	s.free = s.free[:0]
	s.next = 0
	s.count = 0
}

// acquire must only be called on a storage that is not full.
func (s *MemoryStorage[T]) acquire() (int, *T) {
	var slot int
	if n := len(s.free); n > 0 {
		slot = s.free[n-1]
		s.free = s.free[:n-1]
	} else {
		slot = s.next
		s.next++
	}
	s.alive[slot] = true
	s.count++
	return slot, &s.items[slot]
}

func (s *MemoryStorage[T]) release(slot int) bool {
	if slot < 0 || slot >= len(s.items) || !s.alive[slot] {
		return false
	}
	var zero T
	s.items[slot] = zero
	s.alive[slot] = false
	s.free = append(s.free, slot)
	s.count--
	return true
}
