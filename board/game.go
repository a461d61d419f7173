package board

import "errors"

// ErrNoMoveToTakeBack is returned by Takeback at the root of a game.
var ErrNoMoveToTakeBack = errors.New("no move to take back")

type played struct {
	move Move
	reg  UnmakeRegister
}

// Game is a position together with the moves played on it, so moves can be
// taken back without the caller keeping unmake registers.
type Game struct {
	pos   *Position
	stack []played
}

// NewGame starts a game from p. The game owns p from then on.
func NewGame(p *Position) *Game {
	return &Game{pos: p}
}

// Position returns the current position. Callers must not play moves on it
// directly.
func (g *Game) Position() *Position { return g.pos }

// Play parses and plays a move in long algebraic notation. On error the game
// is unchanged.
func (g *Game) Play(text string) (Move, error) {
	m, err := g.pos.ParseMove(text)
	if err != nil {
		return NoMove, err
	}
	g.PlayMove(m)
	return m, nil
}

// PlayMove plays a move taken from the current legal move list.
func (g *Game) PlayMove(m Move) {
	reg := g.pos.MakeMove(m)
	g.stack = append(g.stack, played{move: m, reg: reg})
}

// Takeback undoes the last move and returns it.
func (g *Game) Takeback() (Move, error) {
	n := len(g.stack)
	if n == 0 {
		return NoMove, ErrNoMoveToTakeBack
	}
	last := g.stack[n-1]
	g.stack = g.stack[:n-1]
	g.pos.UnmakeMove(last.move, last.reg)
	return last.move, nil
}

// Moves returns the moves played so far, oldest first.
func (g *Game) Moves() []Move {
	out := make([]Move, len(g.stack))
	for i, pl := range g.stack {
		out[i] = pl.move
	}
	return out
}

// Len returns the number of moves played.
func (g *Game) Len() int { return len(g.stack) }
