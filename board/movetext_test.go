package board

import (
	"errors"
	"testing"
)

func TestParseMove(t *testing.T) {
	p := NewPosition()
	m, err := p.ParseMove(" E2\tE4\n")
	if err != nil {
		t.Fatal(err)
	}
	if m.String() != "e2e4" || m.Piece != WhitePawn {
		t.Fatalf("got %s piece %s", m, m.Piece)
	}
}

func TestParseMoveRejectsWithoutMutation(t *testing.T) {
	p := NewPosition()
	before := p.Clone()
	cases := []struct {
		text string
		err  error
	}{
		{"", ErrInvalidMoveText},
		{"e2", ErrInvalidMoveText},
		{"e2e4e5", ErrInvalidMoveText},
		{"i2e4", ErrInvalidMoveText},
		{"e2e9", ErrInvalidMoveText},
		{"e2e4q", ErrInvalidMoveText},
		{"e2e5", ErrIllegalMove},
		{"e7e5", ErrIllegalMove},
	}
	for _, c := range cases {
		if _, _, err := p.MakeMoveText(c.text); !errors.Is(err, c.err) {
			t.Fatalf("%q: got %v want %v", c.text, err, c.err)
		}
		if !p.Equal(before) {
			t.Fatalf("%q mutated the position", c.text)
		}
	}
}

func TestParsePromotion(t *testing.T) {
	p := mustFEN(t, "1n5k/P7/8/8/8/8/8/7K w - - 0 1")
	cases := map[string]MoveKind{
		"a7a8":  PromoteQueen,
		"a7a8q": PromoteQueen,
		"a7a8R": PromoteRook,
		"a7b8b": PromoteBishop,
		"a7b8n": PromoteKnight,
	}
	for text, kind := range cases {
		m, err := p.ParseMove(text)
		if err != nil {
			t.Fatalf("%s: %v", text, err)
		}
		if m.Kind != kind {
			t.Fatalf("%s: got kind %s want %s", text, m.Kind, kind)
		}
	}
	if _, err := p.ParseMove("a7a8k"); !errors.Is(err, ErrInvalidMoveText) {
		t.Fatalf("king promotion: got %v", err)
	}
	if _, err := p.ParseMove("h1g1q"); !errors.Is(err, ErrIllegalMove) {
		t.Fatalf("suffix on a king move: got %v", err)
	}
}

func TestIsLegal(t *testing.T) {
	p := NewPosition()
	m, _ := p.ParseMove("g1f3")
	if !p.IsLegal(m) {
		t.Fatalf("g1f3 should be legal")
	}
	if p.IsLegal(Move{From: m.From, To: m.To + 8, Piece: m.Piece}) {
		t.Fatalf("g1f4 is not legal")
	}
}
