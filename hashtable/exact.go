package hashtable

import "sync"

// exactShares splits the capacity over the four sub-tables.
var exactShares = [4]float64{0.325, 0.275, 0.225, 0.175}

// ExactTable probes one slot in each of four unequally sized sub-tables. A
// key is stored at most once; an insert never relocates existing entries.
type ExactTable[T Entry[T]] struct {
	mu       sync.Mutex
	tables   [4][]slot[T]
	load     int
	capacity int
}

// NewExactTable sizes a table to fit sizeMB megabytes.
func NewExactTable[T Entry[T]](sizeMB int) *ExactTable[T] {
	t, err := NewExactTableWithCapacity[T](CapacityFor(sizeMB, slotSize[T]()))
	if err != nil {
		panic(err)
	}
	return t
}

// NewExactTableWithCapacity builds a table of about capacity slots.
func NewExactTableWithCapacity[T Entry[T]](capacity int) (*ExactTable[T], error) {
	if capacity < len(exactShares) {
		return nil, ErrInvalidSize
	}
	t := &ExactTable[T]{}
	for i, share := range exactShares {
		n := max(int(float64(capacity)*share), 1)
		t.tables[i] = make([]slot[T], n)
		t.capacity += n
	}
	return t, nil
}

// Capacity returns the total number of slots.
func (t *ExactTable[T]) Capacity() int { return t.capacity }

// Len returns the number of stored entries.
func (t *ExactTable[T]) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.load
}

func (t *ExactTable[T]) slots(key uint64) [4]*slot[T] {
	var s [4]*slot[T]
	for i := range t.tables {
		s[i] = &t.tables[i][index(key, len(t.tables[i]))]
	}
	return s
}

// Put stores e and reports whether it was kept. An entry with the same key is
// only overwritten if e is better; otherwise e takes an empty slot, or else
// the first slot whose occupant e is better than.
func (t *ExactTable[T]) Put(e T) bool {
	key := e.HashKey()
	t.mu.Lock()
	defer t.mu.Unlock()
	s := t.slots(key)
	for _, sl := range s {
		if sl.full && sl.entry.HashKey() == key {
			if e.BetterThan(sl.entry) {
				sl.entry = e
				return true
			}
			return false
		}
	}
	for _, sl := range s {
		if !sl.full {
			sl.entry, sl.full = e, true
			t.load++
			return true
		}
	}
	for _, sl := range s {
		if e.BetterThan(sl.entry) {
			sl.entry = e
			return true
		}
	}
	return false
}

// Get returns the entry stored under key.
func (t *ExactTable[T]) Get(key uint64) (T, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, sl := range t.slots(key) {
		if sl.full && sl.entry.HashKey() == key {
			return sl.entry, true
		}
	}
	var zero T
	return zero, false
}

// Remove deletes the entry stored under key and reports whether one existed.
func (t *ExactTable[T]) Remove(key uint64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, sl := range t.slots(key) {
		if sl.full && sl.entry.HashKey() == key {
			*sl = slot[T]{}
			t.load--
			return true
		}
	}
	return false
}

// RemoveIf deletes every entry matching pred and returns how many went.
func (t *ExactTable[T]) RemoveIf(pred func(T) bool) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	removed := 0
	for i := range t.tables {
		tab := t.tables[i]
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
func (t *ExactTable[T]) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	for i := range t.tables {
		clear(t.tables[i])
	}
	t.load = 0
}

// Range calls fn for every stored entry until fn returns false. fn must not
// call back into the table.
func (t *ExactTable[T]) Range(fn func(T) bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for i := range t.tables {
		for _, sl := range t.tables[i] {
			if sl.full && !fn(sl.entry) {
				return
			}
		}
	}
}
