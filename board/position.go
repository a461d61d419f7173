package board

import (
	"errors"
	"fmt"

	"chess-position/bitboard"
)

// Castling right bits, per color.
const (
	CastleKingSide  uint8 = 1
	CastleQueenSide uint8 = 2
)

// NoEnPassant is the en-passant file value meaning no capture is available.
const NoEnPassant uint8 = 8

const (
	historySize = 256
	historyMask = historySize - 1
)

// Position is the mutable board state. It is not safe for concurrent use;
// give every goroutine its own Clone.
type Position struct {
	// Piece bitboards indexed by Piece code; entries 0, 7 and 8 stay empty.
	pieces [15]uint64

	// Derived from pieces by recomputeDerived and nowhere else.
	white    uint64
	black    uint64
	nonWhite uint64
	nonBlack uint64
	occupied uint64
	empty    uint64

	mailbox [64]Piece

	side        Color
	castling    [2]uint8
	epFile      uint8
	ply         int
	clock       int
	repetitions int
	checkers    uint64

	key     uint64
	pawnKey uint64

	// history holds the key after each applied move; hply indexes the
	// current position's slot.
	hply    int
	history [historySize]uint64

	zobrist *Zobrist
}

// UnmakeRegister is the state a move destroys and UnmakeMove needs back.
type UnmakeRegister struct {
	Castling    [2]uint8
	EnPassant   uint8
	Clock       int
	Repetitions int
	Checkers    uint64
}

// NewPosition returns the standard start position.
func NewPosition() *Position {
	p, err := ParseFEN(FENStartPos)
	if err != nil {
		panic(err)
	}
	return p
}

func (p *Position) recomputeDerived() {
	p.white = p.pieces[WhitePawn] | p.pieces[WhiteKnight] | p.pieces[WhiteBishop] |
		p.pieces[WhiteRook] | p.pieces[WhiteQueen] | p.pieces[WhiteKing]
	p.black = p.pieces[BlackPawn] | p.pieces[BlackKnight] | p.pieces[BlackBishop] |
		p.pieces[BlackRook] | p.pieces[BlackQueen] | p.pieces[BlackKing]
	p.nonWhite = ^p.white
	p.nonBlack = ^p.black
	p.occupied = p.white | p.black
	p.empty = ^p.occupied
}

// put, remove and relocate change one piece in the bitboards and the
// mailbox. Callers finish with recomputeDerived.
func (p *Position) put(sq Square, pc Piece) {
	p.pieces[pc] |= sq.Mask()
	p.mailbox[sq] = pc
}

func (p *Position) remove(sq Square, pc Piece) {
	p.pieces[pc] &^= sq.Mask()
	p.mailbox[sq] = NoPiece
}

func (p *Position) relocate(from, to Square, pc Piece) {
	p.pieces[pc] ^= from.Mask() | to.Mask()
	p.mailbox[from] = NoPiece
	p.mailbox[to] = pc
}

// Clone returns an independent copy. The Zobrist table is shared.
func (p *Position) Clone() *Position {
	c := *p
	return &c
}

// Equal compares every field including the live part of the key history.
func (p *Position) Equal(o *Position) bool {
	if p.pieces != o.pieces || p.mailbox != o.mailbox ||
		p.white != o.white || p.black != o.black || p.nonWhite != o.nonWhite ||
		p.nonBlack != o.nonBlack || p.occupied != o.occupied || p.empty != o.empty ||
		p.side != o.side || p.castling != o.castling || p.epFile != o.epFile ||
		p.ply != o.ply || p.clock != o.clock || p.repetitions != o.repetitions ||
		p.checkers != o.checkers || p.key != o.key || p.pawnKey != o.pawnKey ||
		p.hply != o.hply || p.zobrist != o.zobrist {
		return false
	}
	for i := max(0, p.hply-historyMask); i <= p.hply; i++ {
		if p.history[i&historyMask] != o.history[i&historyMask] {
			return false
		}
	}
	return true
}

func (p *Position) SideToMove() Color { return p.side }

// Castling returns the 2-bit castling field of c.
func (p *Position) Castling(c Color) uint8 { return p.castling[c] }

// EnPassantFile returns 0-7, or NoEnPassant.
func (p *Position) EnPassantFile() uint8 { return p.epFile }

// EnPassantSquare returns the square a capturing pawn would land on.
func (p *Position) EnPassantSquare() Square {
	if p.epFile == NoEnPassant {
		return NoSquare
	}
	if p.side == White {
		return bitboard.NewSquare(int(p.epFile), 5)
	}
	return bitboard.NewSquare(int(p.epFile), 2)
}

func (p *Position) Ply() int            { return p.ply }
func (p *Position) HalfmoveClock() int  { return p.clock }
func (p *Position) FullmoveNumber() int { return p.ply/2 + 1 }
func (p *Position) Repetitions() int    { return p.repetitions }
func (p *Position) Checkers() uint64    { return p.checkers }
func (p *Position) InCheck() bool       { return p.checkers != 0 }
func (p *Position) Zobrist() *Zobrist   { return p.zobrist }

// Key returns the incrementally maintained Zobrist key.
func (p *Position) Key() uint64 { return p.key }

// PawnKey returns the Zobrist key over pawns only.
func (p *Position) PawnKey() uint64 { return p.pawnKey }

func (p *Position) PieceAt(sq Square) Piece { return p.mailbox[sq] }

// Pieces returns the bitboard of one colored piece.
func (p *Position) Pieces(pc Piece) uint64 { return p.pieces[pc] }

// ByType returns the bitboard of a piece type for one side.
func (p *Position) ByType(c Color, pt PieceType) uint64 { return p.pieces[MakePiece(c, pt)] }

func (p *Position) White() uint64    { return p.white }
func (p *Position) Black() uint64    { return p.black }
func (p *Position) NonWhite() uint64 { return p.nonWhite }
func (p *Position) NonBlack() uint64 { return p.nonBlack }
func (p *Position) Occupied() uint64 { return p.occupied }
func (p *Position) Empty() uint64    { return p.empty }

// ByColor returns the union of one side's pieces.
func (p *Position) ByColor(c Color) uint64 {
	if c == White {
		return p.white
	}
	return p.black
}

func (p *Position) notOwn(c Color) uint64 {
	if c == White {
		return p.nonWhite
	}
	return p.nonBlack
}

// KingSquare returns the square of c's king.
func (p *Position) KingSquare(c Color) Square {
	return bitboard.FirstOne(p.pieces[MakePiece(c, PieceTypeKing)])
}

var errCorrupt = errors.New("position invariant violated")

// Validate cross-checks the derived bitboards, the mailbox and the keys
// against the piece bitboards. A nil result means the position is coherent.
func (p *Position) Validate() error {
	var all uint64
	for _, pc := range pieceCodes {
		if all&p.pieces[pc] != 0 {
			return fmt.Errorf("%w: %s bitboard overlaps another piece", errCorrupt, pc)
		}
		all |= p.pieces[pc]
	}
	for _, pc := range []Piece{0, 7, 8} {
		if p.pieces[pc] != 0 {
			return fmt.Errorf("%w: unused bitboard %d is not empty", errCorrupt, pc)
		}
	}
	d := *p
	d.recomputeDerived()
	if d.white != p.white || d.black != p.black || d.nonWhite != p.nonWhite ||
		d.nonBlack != p.nonBlack || d.occupied != p.occupied || d.empty != p.empty {
		return fmt.Errorf("%w: derived bitboards drifted", errCorrupt)
	}
	for sq := bitboard.A1; sq <= bitboard.H8; sq++ {
		pc := p.mailbox[sq]
		if pc == NoPiece {
			if all&sq.Mask() != 0 {
				return fmt.Errorf("%w: mailbox empty at %s but bitboard occupied", errCorrupt, sq)
			}
			continue
		}
		if !pc.Valid() || p.pieces[pc]&sq.Mask() == 0 {
			return fmt.Errorf("%w: mailbox %s at %s disagrees with bitboards", errCorrupt, pc, sq)
		}
	}
	if bitboard.PopCount(p.pieces[WhiteKing]) != 1 || bitboard.PopCount(p.pieces[BlackKing]) != 1 {
		return fmt.Errorf("%w: each side needs exactly one king", errCorrupt)
	}
	if p.key != p.zobrist.Key(p) {
		return fmt.Errorf("%w: key %016x, recomputed %016x", errCorrupt, p.key, p.zobrist.Key(p))
	}
	if p.pawnKey != p.zobrist.PawnKey(p) {
		return fmt.Errorf("%w: pawn key drifted", errCorrupt)
	}
	if want := p.AttackersTo(p.KingSquare(p.side), p.side.Other()); want != p.checkers {
		return fmt.Errorf("%w: checkers %s, recomputed %s", errCorrupt, bitboard.String(p.checkers), bitboard.String(want))
	}
	return nil
}

// String draws the board, rank 8 first.
func (p *Position) String() string {
	buf := make([]byte, 0, 8*18+len(p.FEN())+1)
	for r := 7; r >= 0; r-- {
		buf = append(buf, byte('1'+r), ' ')
		for f := 0; f < 8; f++ {
			buf = append(buf, p.mailbox[bitboard.NewSquare(f, r)].Char(), ' ')
		}
		buf = append(buf, '\n')
	}
	buf = append(buf, "  a b c d e f g h\n"...)
	buf = append(buf, p.FEN()...)
	return string(buf)
}
