package bitboard

import "math/bits"

// lineAttacks solves the one-dimensional blocker problem on a line that has at
// most one square per rank: subtract the slider bit from the masked
// occupancy in both bit orders and XOR the results back together.
func lineAttacks(sq Square, occ, lineMask uint64) uint64 {
	s := sq.Mask()
	mask := lineMask &^ s
	forward := occ & mask
	reverse := bits.ReverseBytes64(forward)
	forward -= s
	reverse -= bits.ReverseBytes64(s)
	forward ^= bits.ReverseBytes64(reverse)
	return forward & mask
}

// rankAttacks is lineAttacks for a rank, where byte swapping would not mirror
// the line and a full bit reversal is used instead.
func rankAttacks(sq Square, occ uint64) uint64 {
	s := sq.Mask()
	mask := RankOf(sq) &^ s
	forward := occ & mask
	reverse := bits.Reverse64(forward)
	forward -= s
	reverse -= bits.Reverse64(s)
	forward ^= bits.Reverse64(reverse)
	return forward & mask
}

// RookAttacksSlow computes rook attacks without the magic tables.
func RookAttacksSlow(sq Square, occ uint64) uint64 {
	return rankAttacks(sq, occ) | lineAttacks(sq, occ, FileOf(sq))
}

// BishopAttacksSlow computes bishop attacks without the magic tables.
func BishopAttacksSlow(sq Square, occ uint64) uint64 {
	return lineAttacks(sq, occ, DiagonalOf(sq)) | lineAttacks(sq, occ, AntiDiagonalOf(sq))
}

// RayAttacks walks each direction square by square until it leaves the board
// or hits an occupied square. It is the plain reference the other attack
// routines are tested against.
func RayAttacks(sq Square, occ uint64, rook bool) uint64 {
	var dirs []func(uint64) uint64
	if rook {
		dirs = directions[:4]
	} else {
		dirs = directions[4:]
	}
	var result uint64
	for _, step := range dirs {
		for x := step(sq.Mask()); x != 0; x = step(x) {
			result |= x
			if x&occ != 0 {
				break
			}
		}
	}
	return result
}
