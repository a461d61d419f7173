package hashtable

import "sync"

// lossyShares splits the capacity over the two sub-tables.
var lossyShares = [2]float64{0.6, 0.4}

// LossyTable keeps two prime-sized sub-tables. When both candidate slots of a
// new key are taken, the weaker occupant is replaced if the new entry beats
// it, and the evicted entry moves to its slot in the other sub-table only if
// that slot is free. Inserts are O(1) and may drop entries.
type LossyTable[T Entry[T]] struct {
	mu     sync.Mutex
	t1, t2 []slot[T]
	load   int
}

// NewLossyTable sizes a table to fit sizeMB megabytes.
func NewLossyTable[T Entry[T]](sizeMB int) *LossyTable[T] {
	t, err := NewLossyTableWithCapacity[T](CapacityFor(sizeMB, slotSize[T]()))
	if err != nil {
		panic(err)
	}
	return t
}

// NewLossyTableWithCapacity builds a table of at least capacity slots. The
// sub-table sizes are distinct primes.
func NewLossyTableWithCapacity[T Entry[T]](capacity int) (*LossyTable[T], error) {
	if capacity < 2 {
		return nil, ErrInvalidSize
	}
	n1 := NextPrime(max(2, int(float64(capacity)*lossyShares[0])))
	n2 := NextPrime(max(2, int(float64(capacity)*lossyShares[1])))
	if n2 == n1 {
		n2 = NextPrime(n1 + 1)
	}
	return &LossyTable[T]{t1: make([]slot[T], n1), t2: make([]slot[T], n2)}, nil
}

// Capacity returns the total number of slots.
func (t *LossyTable[T]) Capacity() int { return len(t.t1) + len(t.t2) }

// Len returns the number of stored entries.
func (t *LossyTable[T]) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.load
}

// Put stores e and reports whether it was kept.
func (t *LossyTable[T]) Put(e T) bool {
	key := e.HashKey()
	t.mu.Lock()
	defer t.mu.Unlock()
	s1 := &t.t1[index(key, len(t.t1))]
	s2 := &t.t2[index(key, len(t.t2))]
	for _, sl := range [2]*slot[T]{s1, s2} {
		if sl.full && sl.entry.HashKey() == key {
			if e.BetterThan(sl.entry) {
				sl.entry = e
				return true
			}
			return false
		}
	}
	if !s1.full {
		s1.entry, s1.full = e, true
		t.load++
		return true
	}
	if !s2.full {
		s2.entry, s2.full = e, true
		t.load++
		return true
	}

	// s1 is the victim unless it is strictly better than s2, so ties go
	// against it whether or not BetterThan holds for equal entries.
	weak, alt := s1, t.t2
	if s1.entry.BetterThan(s2.entry) && !s2.entry.BetterThan(s1.entry) {
		weak, alt = s2, t.t1
	}
	if !e.BetterThan(weak.entry) {
		return false
	}
	evicted := weak.entry
	weak.entry = e
	if dst := &alt[index(evicted.HashKey(), len(alt))]; !dst.full {
		dst.entry, dst.full = evicted, true
		t.load++
	}
	return true
}

// Get returns the entry stored under key.
func (t *LossyTable[T]) Get(key uint64) (T, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if s := &t.t1[index(key, len(t.t1))]; s.full && s.entry.HashKey() == key {
		return s.entry, true
	}
	if s := &t.t2[index(key, len(t.t2))]; s.full && s.entry.HashKey() == key {
		return s.entry, true
	}
	var zero T
	return zero, false
}

// Remove deletes the entry stored under key and reports whether one existed.
func (t *LossyTable[T]) Remove(key uint64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, s := range [2]*slot[T]{&t.t1[index(key, len(t.t1))], &t.t2[index(key, len(t.t2))]} {
		if s.full && s.entry.HashKey() == key {
			*s = slot[T]{}
			t.load--
			return true
		}
	}
	return false
}

// RemoveIf deletes every entry matching pred and returns how many went.
func (t *LossyTable[T]) RemoveIf(pred func(T) bool) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	removed := 0
	for _, tab := range [2][]slot[T]{t.t1, t.t2} {
		for j := range tab {
			if tab[j].full && pred(tab[j].entry) {
				tab[j] = slot[T]{}
				removed++
			}
		}
	}
	t.load -= removed
	return removed
}

// Clear empties the table.
func (t *LossyTable[T]) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	clear(t.t1)
	clear(t.t2)
	t.load = 0
}

// Range calls fn for every stored entry until fn returns false. fn must not
// call back into the table.
func (t *LossyTable[T]) Range(fn func(T) bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, tab := range [2][]slot[T]{t.t1, t.t2} {
		for _, sl := range tab {
			if sl.full && !fn(sl.entry) {
				return
			}
		}
	}
}
