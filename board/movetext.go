package board

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/exp/slices"

	"chess-position/bitboard"
)

var (
	// ErrInvalidMoveText is returned for text that is not a square pair with
	// an optional promotion letter.
	ErrInvalidMoveText = errors.New("invalid move text")
	// ErrIllegalMove is returned for well-formed text naming no legal move.
	ErrIllegalMove = errors.New("illegal move")
)

// ParseMove resolves long algebraic text such as "e2e4" or "e7e8q" against
// the legal moves of p. Case and non-printing characters are ignored. A
// promotion without a letter resolves to the queen promotion. p is left
// unchanged.
func (p *Position) ParseMove(text string) (Move, error) {
	cmd := strings.ToLower(strings.Map(func(r rune) rune {
		if unicode.IsGraphic(r) && !unicode.IsSpace(r) {
			return r
		}
		return -1
	}, text))
	if len(cmd) != 4 && len(cmd) != 5 {
		return NoMove, fmt.Errorf("%w: %q", ErrInvalidMoveText, text)
	}
	from, ok1 := bitboard.ParseSquare(cmd[0:2])
	to, ok2 := bitboard.ParseSquare(cmd[2:4])
	if !ok1 || !ok2 {
		return NoMove, fmt.Errorf("%w: %q", ErrInvalidMoveText, text)
	}
	kind := PromoteQueen
	explicit := len(cmd) == 5
	if explicit {
		if r := to.Rank(); r != 0 && r != 7 {
			return NoMove, fmt.Errorf("%w: promotion to %s", ErrInvalidMoveText, to)
		}
		switch cmd[4] {
		case 'q':
			kind = PromoteQueen
		case 'r':
			kind = PromoteRook
		case 'b':
			kind = PromoteBishop
		case 'n':
			kind = PromoteKnight
		default:
			return NoMove, fmt.Errorf("%w: promotion piece %q", ErrInvalidMoveText, cmd[4])
		}
	}

	moves := p.GenerateMoves()
	i := slices.IndexFunc(moves, func(m Move) bool {
		if m.From != from || m.To != to {
			return false
		}
		if m.Kind.IsPromotion() {
			return m.Kind == kind
		}
		return !explicit
	})
	if i < 0 {
		return NoMove, fmt.Errorf("%w: %s in %s", ErrIllegalMove, cmd, p.FEN())
	}
	return moves[i], nil
}

// MakeMoveText parses text and plays it. On error p is unchanged.
func (p *Position) MakeMoveText(text string) (Move, UnmakeRegister, error) {
	m, err := p.ParseMove(text)
	if err != nil {
		return NoMove, UnmakeRegister{}, err
	}
	return m, p.MakeMove(m), nil
}

// IsLegal reports whether m (compared by Equal) is in the legal move set.
func (p *Position) IsLegal(m Move) bool {
	return slices.IndexFunc(p.GenerateMoves(), m.Equal) >= 0
}
