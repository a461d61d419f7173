package bitboard

import (
	"fmt"
	"math/bits"
)

// Slider selects the rook or bishop attack table.
type Slider uint8

const (
	Rook Slider = iota
	Bishop
)

func (s Slider) String() string {
	if s == Rook {
		return "rook"
	}
	return "bishop"
}

// Magic is the perfect-hash entry for one square and slider:
// attacks = Attacks[((occ & Mask) * Number) >> Shift].
type Magic struct {
	Mask    uint64
	Number  uint64
	Bits    uint8
	Shift   uint8
	Attacks []uint64
}

// Index returns the attack-table slot for the given board occupancy.
func (m *Magic) Index(occ uint64) uint64 {
	return ((occ & m.Mask) * m.Number) >> m.Shift
}

var (
	RookMagics   [64]Magic
	BishopMagics [64]Magic
)

// RookAttacks returns the squares a rook on sq attacks given occupancy occ,
// including the first blocker in each direction.
func RookAttacks(sq Square, occ uint64) uint64 {
	m := &RookMagics[sq]
	return m.Attacks[((occ&m.Mask)*m.Number)>>m.Shift]
}

// BishopAttacks is RookAttacks for a bishop.
func BishopAttacks(sq Square, occ uint64) uint64 {
	m := &BishopMagics[sq]
	return m.Attacks[((occ&m.Mask)*m.Number)>>m.Shift]
}

func QueenAttacks(sq Square, occ uint64) uint64 {
	return RookAttacks(sq, occ) | BishopAttacks(sq, occ)
}

// RelevantMask returns the occupancy squares that can change the attack set of
// a slider on sq: its lines without the slider square and without the board
// edge each line runs into.
func RelevantMask(sq Square, s Slider) uint64 {
	edges := ((Rank1Mask | Rank8Mask) &^ RankOf(sq)) | ((FileAMask | FileHMask) &^ FileOf(sq))
	if s == Rook {
		rank := RankOf(sq) &^ (FileAMask | FileHMask)
		file := FileOf(sq) &^ (Rank1Mask | Rank8Mask)
		return (rank | file) &^ sq.Mask()
	}
	return (DiagonalOf(sq) | AntiDiagonalOf(sq)) &^ edges &^ sq.Mask()
}

// Subsets returns every subset of mask, starting with the empty set.
func Subsets(mask uint64) []uint64 {
	out := make([]uint64, 0, 1<<uint(PopCount(mask)))
	var occ uint64
	for {
		out = append(out, occ)
		occ = (occ - mask) & mask
		if occ == 0 {
			return out
		}
	}
}

func slowAttacks(sq Square, occ uint64, s Slider) uint64 {
	if s == Rook {
		return RookAttacksSlow(sq, occ)
	}
	return BishopAttacksSlow(sq, occ)
}

// buildMagic fills the attack table for one square. Two subsets hashing to the
// same slot with different attack sets mean the multiplier is broken, which is
// not recoverable.
func buildMagic(sq Square, s Slider, number uint64) Magic {
	mask := RelevantMask(sq, s)
	n := bits.OnesCount64(mask)
	m := Magic{
		Mask:    mask,
		Number:  number,
		Bits:    uint8(n),
		Shift:   uint8(64 - n),
		Attacks: make([]uint64, 1<<uint(n)),
	}
	for _, occ := range Subsets(mask) {
		attacks := slowAttacks(sq, occ, s)
		idx := m.Index(occ)
		if prev := m.Attacks[idx]; prev != 0 && prev != attacks {
			panic(fmt.Sprintf("bitboard: %s magic for %s collides at index %d", s, sq, idx))
		}
		m.Attacks[idx] = attacks
	}
	return m
}

func initMagics() {
	for sq := A1; sq <= H8; sq++ {
		RookMagics[sq] = buildMagic(sq, Rook, rookMagicNumbers[sq])
		BishopMagics[sq] = buildMagic(sq, Bishop, bishopMagicNumbers[sq])
	}
}

// Multipliers found offline by FindMagic-style search; see cmd/magicgen.
var rookMagicNumbers = [64]uint64{
	0x0080001020400080, 0x0040001000200040, 0x0080081000200080, 0x0080040800100080,
	0x0080020400080080, 0x0080010200040080, 0x0080008001000200, 0x0080002040800100,
	0x0000800020400080, 0x0000400020005000, 0x0000801000200080, 0x0000800800100080,
	0x0000800400080080, 0x0000800200040080, 0x0000800100020080, 0x0000800040800100,
	0x0000208000400080, 0x0000404000201000, 0x0000808010002000, 0x0000808008001000,
	0x0000808004000800, 0x0000808002000400, 0x0000010100020004, 0x0000020000408104,
	0x0000208080004000, 0x0000200040005000, 0x0000100080200080, 0x0000080080100080,
	0x0000040080080080, 0x0000020080040080, 0x0000010080800200, 0x0000800080004100,
	0x0000204000800080, 0x0000200040401000, 0x0000100080802000, 0x0000080080801000,
	0x0000040080800800, 0x0000020080800400, 0x0000020001010004, 0x0000800040800100,
	0x0000204000808000, 0x0000200040008080, 0x0000100020008080, 0x0000080010008080,
	0x0000040008008080, 0x0000020004008080, 0x0000010002008080, 0x0000004081020004,
	0x0000204000800080, 0x0000200040008080, 0x0000100020008080, 0x0000080010008080,
	0x0000040008008080, 0x0000020004008080, 0x0000800100020080, 0x0000800041000080,
	0x00FFFCDDFCED714A, 0x007FFCDDFCED714A, 0x003FFFCDFFD88096, 0x0000040810002101,
	0x0001000204080011, 0x0001000204000801, 0x0001000082000401, 0x0001FFFAABFAD1A2,
}

var bishopMagicNumbers = [64]uint64{
	0x0002020202020200, 0x0002020202020000, 0x0004010202000000, 0x0004040080000000,
	0x0001104000000000, 0x0000821040000000, 0x0000410410400000, 0x0000104104104000,
	0x0000040404040400, 0x0000020202020200, 0x0000040102020000, 0x0000040400800000,
	0x0000011040000000, 0x0000008210400000, 0x0000004104104000, 0x0000002082082000,
	0x0004000808080800, 0x0002000404040400, 0x0001000202020200, 0x0000800802004000,
	0x0000800400A00000, 0x0000200100884000, 0x0000400082082000, 0x0000200041041000,
	0x0002080010101000, 0x0001040008080800, 0x0000208004010400, 0x0000404004010200,
	0x0000840000802000, 0x0000404002011000, 0x0000808001041000, 0x0000404000820800,
	0x0001041000202000, 0x0000820800101000, 0x0000104400080800, 0x0000020080080080,
	0x0000404040040100, 0x0000808100020100, 0x0001010100020800, 0x0000808080010400,
	0x0000820820004000, 0x0000410410002000, 0x0000082088001000, 0x0000002011000800,
	0x0000080100400400, 0x0001010101000200, 0x0002020202000400, 0x0001010101000200,
	0x0000410410400000, 0x0000208208200000, 0x0000002084100000, 0x0000000020880000,
	0x0000001002020000, 0x0000040408020000, 0x0004040404040000, 0x0002020202020000,
	0x0000104104104000, 0x0000002082082000, 0x0000000020841000, 0x0000000000208800,
	0x0000000010020200, 0x0000000404080200, 0x0000040404040400, 0x0002020202020200,
}
