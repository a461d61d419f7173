// Package hashtable provides fixed-capacity, generation-aware caches keyed by
// 64-bit position hashes. Both tables are safe for concurrent use; every
// operation holds the table's lock for its whole duration.
package hashtable

import (
	"errors"
	"math"
	"unsafe"
)

// Entry is a self-contained cache record. BetterThan orders two entries with
// the same key and decides whether a new one may overwrite an old one or
// evict a colliding one. Generation is the search epoch the entry was
// written in.
type Entry[T any] interface {
	HashKey() uint64
	BetterThan(other T) bool
	Generation() uint8
}

// Sizes in megabytes.
const (
	DefaultSizeMB = 64
	MinSizeMB     = 1
	MaxSizeMB     = 3 * 2048
)

// overheadBytes is subtracted from the memory budget for the table headers.
const overheadBytes = 1 << 10

var ErrInvalidSize = errors.New("hashtable: capacity too small")

// CapacityFor converts a memory budget into a slot count. sizeMB is clamped
// to [MinSizeMB, MaxSizeMB].
func CapacityFor(sizeMB int, slotSize uintptr) int {
	sizeMB = min(max(sizeMB, MinSizeMB), MaxSizeMB)
	if slotSize == 0 {
		slotSize = 1
	}
	return int((uint64(sizeMB)<<20 - overheadBytes) / uint64(slotSize))
}

type slot[T any] struct {
	entry T
	full  bool
}

func slotSize[T any]() uintptr {
	return unsafe.Sizeof(slot[T]{})
}

// index drops the sign bit of the key before reducing it modulo n.
func index(key uint64, n int) int {
	return int((key & math.MaxInt64) % uint64(n))
}

// Stale returns a predicate matching entries written more than maxAge
// generations before current. Generations wrap at 256.
func Stale[T Entry[T]](current, maxAge uint8) func(T) bool {
	return func(e T) bool {
		return current-e.Generation() > maxAge
	}
}

// IsPrime reports whether n is prime.
func IsPrime(n int) bool {
	if n < 2 {
		return false
	}
	if n%2 == 0 {
		return n == 2
	}
	for d := 3; d*d <= n; d += 2 {
		if n%d == 0 {
			return false
		}
	}
	return true
}

// NextPrime returns the least prime >= n.
func NextPrime(n int) int {
	if n <= 2 {
		return 2
	}
	if n%2 == 0 {
		n++
	}
	for !IsPrime(n) {
		n += 2
	}
	return n
}
