package bitboard

import (
	"errors"
	"math/bits"
	"math/rand"
)

// ErrNoMagic is returned when FindMagic gives up before finding a multiplier.
var ErrNoMagic = errors.New("bitboard: no magic found")

// FindMagic searches for a multiplier that hashes every relevant occupancy of
// sq into a 2^popcount(mask) table without two different attack sets sharing
// a slot. Candidates are sparse random numbers; a candidate that collides is
// thrown away and a fresh one is drawn. maxTries <= 0 means no limit.
func FindMagic(sq Square, s Slider, rng *rand.Rand, maxTries int) (uint64, error) {
	mask := RelevantMask(sq, s)
	n := bits.OnesCount64(mask)
	shift := uint(64 - n)

	occs := Subsets(mask)
	attacks := make([]uint64, len(occs))
	for i, occ := range occs {
		attacks[i] = slowAttacks(sq, occ, s)
	}

	used := make([]uint64, 1<<uint(n))
	for try := 0; maxTries <= 0 || try < maxTries; try++ {
		magic := rng.Uint64() & rng.Uint64() & rng.Uint64()
		if bits.OnesCount64((mask*magic)&0xFF00000000000000) < 6 {
			continue
		}
		clear(used)
		ok := true
		for i, occ := range occs {
			idx := (occ * magic) >> shift
			if used[idx] == 0 {
				used[idx] = attacks[i]
			} else if used[idx] != attacks[i] {
				ok = false
				break
			}
		}
		if ok {
			return magic, nil
		}
	}
	return 0, ErrNoMagic
}

// VerifyMagic reports whether number is a working multiplier for sq.
func VerifyMagic(sq Square, s Slider, number uint64) bool {
	mask := RelevantMask(sq, s)
	shift := uint(64 - bits.OnesCount64(mask))
	used := make(map[uint64]uint64)
	for _, occ := range Subsets(mask) {
		a := slowAttacks(sq, occ, s)
		idx := (occ * number) >> shift
		if prev, ok := used[idx]; ok && prev != a {
			return false
		}
		used[idx] = a
	}
	return true
}
