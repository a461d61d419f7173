package board

import (
	"context"
	"testing"

	"github.com/dylhunn/dragontoothmg"
)

type perftCase struct {
	name  string
	fen   string
	nodes []uint64 // nodes[i] is perft(i+1)
}

var perftCases = []perftCase{
	{"initial", FENStartPos, []uint64{20, 400, 8902, 197281}},
	{"kiwipete", "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1", []uint64{48, 2039, 97862}},
	{"en passant", "k7/8/8/3pP3/8/8/8/7K w - d6 0 2", []uint64{5, 19}},
	{"promotion", "1n5k/P7/8/8/8/8/8/7K w - - 0 1", []uint64{11}},
	{"position 3", "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1", []uint64{14, 191, 2812, 43238}},
	{"position 4", "r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1", []uint64{6, 264, 9467}},
	{"position 4 mirrored", "r2q1rk1/pP1p2pp/Q4n2/bbp1p3/Np6/1B3NBn/pPPP1PPP/R3K2R b KQ - 0 1", []uint64{6, 264, 9467}},
	{"position 5", "rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8", []uint64{44, 1486, 62379}},
	{"position 6", "r4rk1/1pp1qppp/p1np1n2/2b1p1B1/2B1P1b1/P1NP1N2/1PP1QPPP/R4RK1 w - - 0 10", []uint64{46, 2079, 89890}},
}

func TestPerft(t *testing.T) {
	for _, tc := range perftCases {
		p, err := ParseFEN(tc.fen)
		if err != nil {
			t.Fatalf("%s: ParseFEN: %v", tc.name, err)
		}
		for i, want := range tc.nodes {
			if got := Perft(p, i+1); got != want {
				t.Fatalf("%s perft depth%d: got %d want %d", tc.name, i+1, got, want)
			}
		}
	}
}

func TestPerftInitialDepth5(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping depth 5 in short mode")
	}
	if got := Perft(NewPosition(), 5); got != 4865609 {
		t.Fatalf("perft depth5: got %d want %d", got, 4865609)
	}
}

func TestPerftDepthZero(t *testing.T) {
	if got := Perft(NewPosition(), 0); got != 1 {
		t.Fatalf("perft depth0: got %d want 1", got)
	}
	if got := len(PerftDivide(NewPosition(), 0)); got != 0 {
		t.Fatalf("divide depth0: got %d entries", got)
	}
}

func TestPerftDivideSumsToPerft(t *testing.T) {
	p, _ := ParseFEN(perftCases[1].fen)
	before := p.Clone()
	div := PerftDivide(p, 2)
	if len(div) != 48 {
		t.Fatalf("divide entries: got %d want 48", len(div))
	}
	if got := Sum(div); got != 2039 {
		t.Fatalf("divide sum: got %d want 2039", got)
	}
	if !p.Equal(before) {
		t.Fatalf("divide left the position modified")
	}
}

func TestPerftParallelMatchesDivide(t *testing.T) {
	p, _ := ParseFEN(perftCases[4].fen)
	want := PerftDivide(p, 3)
	got, err := PerftParallel(context.Background(), p, 3, 4)
	if err != nil {
		t.Fatalf("PerftParallel: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("parallel divide: got %d root moves want %d", len(got), len(want))
	}
	for m, n := range want {
		if got[m] != n {
			t.Fatalf("parallel divide %s: got %d want %d", m, got[m], n)
		}
	}
}

func TestPerftParallelCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := PerftParallel(ctx, NewPosition(), 3, 2); err == nil {
		t.Fatalf("expected an error from a cancelled context")
	}
}

func dragontoothPerft(b *dragontoothmg.Board, depth int) uint64 {
	moves := b.GenerateLegalMoves()
	if depth == 1 {
		return uint64(len(moves))
	}
	var n uint64
	for _, m := range moves {
		undo := b.Apply(m)
		n += dragontoothPerft(b, depth-1)
		undo()
	}
	return n
}

func TestPerftAgreesWithDragontooth(t *testing.T) {
	fens := []string{
		FENStartPos,
		perftCases[1].fen,
		perftCases[4].fen,
		perftCases[6].fen,
		"r1bqkbnr/pppp1ppp/2n5/4p3/2B1P3/5N2/PPPP1PPP/RNBQK2R b KQkq - 3 3",
		"8/8/3k4/3Pp3/8/8/3K4/8 w - e6 0 2",
	}
	for _, fen := range fens {
		p, err := ParseFEN(fen)
		if err != nil {
			t.Fatalf("ParseFEN(%q): %v", fen, err)
		}
		dt := dragontoothmg.ParseFen(fen)
		if got, want := Perft(p, 3), dragontoothPerft(&dt, 3); got != want {
			t.Fatalf("%s: perft 3 got %d, dragontooth %d", fen, got, want)
		}
	}
}

func BenchmarkPerftInitialD4(b *testing.B) {
	p := NewPosition()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = Perft(p, 4)
	}
}

func BenchmarkPerftKiwipeteD3(b *testing.B) {
	p, err := ParseFEN(perftCases[1].fen)
	if err != nil {
		b.Fatalf("ParseFEN: %v", err)
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = Perft(p, 3)
	}
}
