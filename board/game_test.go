package board

import (
	"errors"
	"testing"
)

func TestGamePlayAndTakeback(t *testing.T) {
	g := NewGame(NewPosition())
	for _, s := range []string{"e2e4", "e7e5", "g1f3"} {
		if _, err := g.Play(s); err != nil {
			t.Fatalf("%s: %v", s, err)
		}
	}
	if g.Len() != 3 {
		t.Fatalf("len: got %d want 3", g.Len())
	}
	moves := g.Moves()
	if moves[0].String() != "e2e4" || moves[2].String() != "g1f3" {
		t.Fatalf("moves: got %v", moves)
	}
	if _, err := g.Play("e1e2"); !errors.Is(err, ErrIllegalMove) {
		t.Fatalf("e1e2: got %v", err)
	}
	if g.Len() != 3 {
		t.Fatalf("failed Play must not record a move")
	}
	for i := 0; i < 3; i++ {
		if _, err := g.Takeback(); err != nil {
			t.Fatal(err)
		}
	}
	if !g.Position().Equal(NewPosition()) {
		t.Fatalf("takebacks did not restore the start position")
	}
	if _, err := g.Takeback(); !errors.Is(err, ErrNoMoveToTakeBack) {
		t.Fatalf("takeback at root: got %v", err)
	}
}
