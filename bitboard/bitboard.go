// Package bitboard holds the square geometry and sliding-piece attack tables
// shared by the position code. Everything here is computed once at start-up and
// is read-only afterwards, so it is safe for concurrent use.
package bitboard

import (
	"math/bits"
	"strings"
)

// Square indexes the board from a1=0 to h8=63.
type Square int

const NoSquare Square = -1

const (
	A1 Square = iota
	B1
	C1
	D1
	E1
	F1
	G1
	H1
	A2
	B2
	C2
	D2
	E2
	F2
	G2
	H2
	A3
	B3
	C3
	D3
	E3
	F3
	G3
	H3
	A4
	B4
	C4
	D4
	E4
	F4
	G4
	H4
	A5
	B5
	C5
	D5
	E5
	F5
	G5
	H5
	A6
	B6
	C6
	D6
	E6
	F6
	G6
	H6
	A7
	B7
	C7
	D7
	E7
	F7
	G7
	H7
	A8
	B8
	C8
	D8
	E8
	F8
	G8
	H8
)

const (
	FileAMask uint64 = 0x0101010101010101 << iota
	FileBMask
	FileCMask
	FileDMask
	FileEMask
	FileFMask
	FileGMask
	FileHMask
)

const (
	Rank1Mask uint64 = 0xFF << (8 * iota)
	Rank2Mask
	Rank3Mask
	Rank4Mask
	Rank5Mask
	Rank6Mask
	Rank7Mask
	Rank8Mask
)

// NewSquare builds a square from zero-based file and rank.
func NewSquare(file, rank int) Square { return Square(rank*8 + file) }

func (sq Square) File() int { return int(sq) & 7 }
func (sq Square) Rank() int { return int(sq) >> 3 }

// Mask returns the single-bit bitboard of the square.
func (sq Square) Mask() uint64 { return uint64(1) << uint(sq) }

// String returns the algebraic name of the square ("e4"), or "-" for NoSquare.
func (sq Square) String() string {
	if sq < 0 || sq > 63 {
		return "-"
	}
	return string([]byte{byte('a' + sq.File()), byte('1' + sq.Rank())})
}

// ParseSquare converts an algebraic name to a square. ok is false for anything
// other than [a-h][1-8].
func ParseSquare(s string) (sq Square, ok bool) {
	if len(s) != 2 {
		return NoSquare, false
	}
	f, r := s[0], s[1]
	if f < 'a' || f > 'h' || r < '1' || r > '8' {
		return NoSquare, false
	}
	return NewSquare(int(f-'a'), int(r-'1')), true
}

func PopCount(b uint64) int {
	return bits.OnesCount64(b)
}

// FirstOne returns the lowest set square of b. b must be non-zero.
func FirstOne(b uint64) Square {
	return Square(bits.TrailingZeros64(b))
}

// PopLSB clears the lowest set bit of *b and returns its square.
func PopLSB(b *uint64) Square {
	sq := Square(bits.TrailingZeros64(*b))
	*b &= *b - 1
	return sq
}

func MoreThanOne(b uint64) bool {
	return b&(b-1) != 0
}

func Up(b uint64) uint64   { return b << 8 }
func Down(b uint64) uint64 { return b >> 8 }

func Right(b uint64) uint64 { return (b &^ FileHMask) << 1 }
func Left(b uint64) uint64  { return (b &^ FileAMask) >> 1 }

func UpRight(b uint64) uint64   { return Up(Right(b)) }
func UpLeft(b uint64) uint64    { return Up(Left(b)) }
func DownRight(b uint64) uint64 { return Down(Right(b)) }
func DownLeft(b uint64) uint64  { return Down(Left(b)) }

// String renders b as a list of square names, e.g. "(a1,e4)".
func String(b uint64) string {
	var sb strings.Builder
	sb.WriteByte('(')
	for x := b; x != 0; {
		sq := PopLSB(&x)
		sb.WriteString(sq.String())
		if x != 0 {
			sb.WriteByte(',')
		}
	}
	sb.WriteByte(')')
	return sb.String()
}
