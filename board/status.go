package board

import "chess-position/bitboard"

// Status classifies a position for the game driver.
type Status uint8

const (
	Ongoing Status = iota
	Checkmate
	Stalemate
	DrawFiftyMove
	DrawRepetition
	DrawMaterial
)

var statusNames = [...]string{"ongoing", "checkmate", "stalemate", "fifty-move draw", "threefold repetition", "insufficient material"}

func (s Status) String() string {
	if int(s) < len(statusNames) {
		return statusNames[s]
	}
	return "?"
}

// InCheckmate reports whether the side to move is checkmated.
func (p *Position) InCheckmate() bool {
	return p.checkers != 0 && !p.HasLegalMoves()
}

// InStalemate reports whether the side to move is stalemated.
func (p *Position) InStalemate() bool {
	return p.checkers == 0 && !p.HasLegalMoves()
}

// IsDrawBy50 reports a 50-move rule draw (the clock counts half-moves).
func (p *Position) IsDrawBy50() bool { return p.clock >= 100 }

// IsDrawByRepetition reports that the current position occurred at least
// twice before since the last irreversible move.
func (p *Position) IsDrawByRepetition() bool { return p.repetitions >= 2 }

// HasRepeated reports that the current position occurred before.
func (p *Position) HasRepeated() bool { return p.repetitions > 0 }

// InsufficientMaterial reports positions where no sequence of legal moves
// can mate: bare kings, a single minor piece, or only bishops all on squares
// of one color.
func (p *Position) InsufficientMaterial() bool {
	heavy := p.pieces[WhitePawn] | p.pieces[BlackPawn] | p.pieces[WhiteRook] | p.pieces[BlackRook] |
		p.pieces[WhiteQueen] | p.pieces[BlackQueen]
	if heavy != 0 {
		return false
	}
	knights := p.pieces[WhiteKnight] | p.pieces[BlackKnight]
	bishops := p.pieces[WhiteBishop] | p.pieces[BlackBishop]
	minors := knights | bishops
	if bitboard.PopCount(minors) <= 1 {
		return true
	}
	const darkSquares uint64 = 0xAA55AA55AA55AA55
	return knights == 0 && (bishops&darkSquares == 0 || bishops&^darkSquares == 0)
}

// Status reports whether the game is over and why. Mate and stalemate take
// precedence over the draw rules.
func (p *Position) Status() Status {
	if !p.HasLegalMoves() {
		if p.checkers != 0 {
			return Checkmate
		}
		return Stalemate
	}
	switch {
	case p.IsDrawBy50():
		return DrawFiftyMove
	case p.IsDrawByRepetition():
		return DrawRepetition
	case p.InsufficientMaterial():
		return DrawMaterial
	}
	return Ongoing
}
