package main

import (
	"fmt"
	"io"

	"github.com/dylhunn/dragontoothmg"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"chess-position/board"
)

// printDivide writes one "move: nodes" line per root move, sorted by move
// text, then the total.
func printDivide(w io.Writer, div map[board.Move]uint64) {
	byText := make(map[string]uint64, len(div))
	for m, n := range div {
		byText[m.String()] = n
	}
	keys := maps.Keys(byText)
	slices.Sort(keys)
	for _, k := range keys {
		fmt.Fprintf(w, "%s: %d\n", k, byText[k])
	}
	fmt.Fprintf(w, "Total: %d\n", board.Sum(div))
}

type divideDiff struct {
	move      string
	got, want uint64
}

// verifyDivide compares the divide table of pos against dragontoothmg's move
// generator on the same FEN. A move missing on either side shows up with a
// zero count.
func verifyDivide(fen string, pos *board.Position, depth int) ([]divideDiff, error) {
	if depth <= 0 {
		return nil, fmt.Errorf("verify depth %d: must be > 0", depth)
	}
	got := make(map[string]uint64)
	for m, n := range board.PerftDivide(pos, depth) {
		got[m.String()] = n
	}

	ref := dragontoothmg.ParseFen(fen)
	want := make(map[string]uint64)
	for _, m := range ref.GenerateLegalMoves() {
		undo := ref.Apply(m)
		want[m.String()] = referencePerft(&ref, depth-1)
		undo()
	}

	keys := maps.Keys(got)
	for k := range want {
		if _, ok := got[k]; !ok {
			keys = append(keys, k)
		}
	}
	slices.Sort(keys)
	var diffs []divideDiff
	for _, k := range keys {
		if got[k] != want[k] {
			diffs = append(diffs, divideDiff{move: k, got: got[k], want: want[k]})
		}
	}
	return diffs, nil
}

func referencePerft(b *dragontoothmg.Board, depth int) uint64 {
	if depth == 0 {
		return 1
	}
	moves := b.GenerateLegalMoves()
	if depth == 1 {
		return uint64(len(moves))
	}
	var n uint64
	for _, m := range moves {
		undo := b.Apply(m)
		n += referencePerft(b, depth-1)
		undo()
	}
	return n
}
