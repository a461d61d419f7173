package board

import "testing"

func shuffle(t *testing.T, g *Game, cycles int) {
	t.Helper()
	for i := 0; i < cycles; i++ {
		for _, s := range []string{"g1f3", "g8f6", "f3g1", "f6g8"} {
			if _, err := g.Play(s); err != nil {
				t.Fatalf("cycle %d %s: %v", i, s, err)
			}
		}
	}
}

func TestThreefoldRepetitionKnightShuffle(t *testing.T) {
	g := NewGame(NewPosition())
	shuffle(t, g, 1)
	p := g.Position()
	if p.Repetitions() != 1 || !p.HasRepeated() {
		t.Fatalf("after one cycle: repetitions %d want 1", p.Repetitions())
	}
	if p.IsDrawByRepetition() {
		t.Fatalf("should not be threefold yet after one cycle")
	}
	shuffle(t, g, 1)
	if p.Repetitions() != 2 || !p.IsDrawByRepetition() {
		t.Fatalf("expected threefold repetition after two cycles, repetitions %d", p.Repetitions())
	}
	if p.Status() != DrawRepetition {
		t.Fatalf("status: got %s", p.Status())
	}
	if _, err := g.Takeback(); err != nil {
		t.Fatal(err)
	}
	if p.Repetitions() != 1 {
		t.Fatalf("takeback should restore the repetition count, got %d", p.Repetitions())
	}
}

func TestRepetitionNeedsFourReversiblePlies(t *testing.T) {
	g := NewGame(NewPosition())
	for _, s := range []string{"g1f3", "g8f6"} {
		if _, err := g.Play(s); err != nil {
			t.Fatal(err)
		}
	}
	if g.Position().Repetitions() != 0 {
		t.Fatalf("no repetition possible after two plies")
	}
}

func TestIrreversibleMoveResetsRepetitionWindow(t *testing.T) {
	g := NewGame(NewPosition())
	shuffle(t, g, 1)
	for _, s := range []string{"e2e3", "e7e6"} {
		if _, err := g.Play(s); err != nil {
			t.Fatal(err)
		}
	}
	p := g.Position()
	if p.HalfmoveClock() != 0 || p.Repetitions() != 0 {
		t.Fatalf("pawn moves reset the clock: clock %d repetitions %d", p.HalfmoveClock(), p.Repetitions())
	}
	shuffle(t, g, 1)
	if p.Repetitions() != 1 {
		t.Fatalf("only the cycle after the pawn moves counts, got %d", p.Repetitions())
	}
}

func TestFiftyMoveRule(t *testing.T) {
	g := NewGame(NewPosition())
	shuffle(t, g, 25)
	p := g.Position()
	if !p.IsDrawBy50() {
		t.Fatalf("expected 50-move rule draw after 100 halfmoves, got halfmoveClock=%d", p.HalfmoveClock())
	}
	if p.Status() != DrawFiftyMove {
		t.Fatalf("status: got %s", p.Status())
	}
}

func TestLongShuffleStaysWithinHistory(t *testing.T) {
	g := NewGame(NewPosition())
	shuffle(t, g, 100)
	p := g.Position()
	if p.Ply() != 400 || p.HalfmoveClock() != 400 {
		t.Fatalf("ply %d clock %d", p.Ply(), p.HalfmoveClock())
	}
	if p.Repetitions() == 0 {
		t.Fatalf("start position repeats throughout the shuffle")
	}
	for g.Len() > 0 {
		if _, err := g.Takeback(); err != nil {
			t.Fatal(err)
		}
	}
	if !p.Equal(NewPosition()) {
		t.Fatalf("taking every move back should restore the start position")
	}
}
