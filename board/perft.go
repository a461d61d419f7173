package board

import (
	"context"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Perft counts the leaf nodes of the legal move tree of the given depth.
func Perft(p *Position, depth int) uint64 {
	if depth <= 0 {
		return 1
	}
	pc := perftCtx{bufs: make([][]Move, depth+1)}
	return perftRec(p, depth, &pc)
}

type perftCtx struct {
	bufs [][]Move
}

func (pc *perftCtx) bufFor(depth int) []Move {
	if pc.bufs[depth] == nil {
		pc.bufs[depth] = make([]Move, 0, 256)
	}
	return pc.bufs[depth][:0]
}

func perftRec(p *Position, depth int, pc *perftCtx) uint64 {
	moves := p.GenerateMovesInto(pc.bufFor(depth))
	pc.bufs[depth] = moves
	if depth == 1 {
		return uint64(len(moves))
	}
	var nodes uint64
	for _, m := range moves {
		reg := p.MakeMove(m)
		nodes += perftRec(p, depth-1, pc)
		p.UnmakeMove(m, reg)
	}
	return nodes
}

// PerftDivide returns a map from each legal root move to the number of leaf
// nodes below it. Useful for debugging against another move generator.
func PerftDivide(p *Position, depth int) map[Move]uint64 {
	result := make(map[Move]uint64)
	if depth <= 0 {
		return result
	}
	for _, m := range p.GenerateMoves() {
		reg := p.MakeMove(m)
		result[m] = Perft(p, depth-1)
		p.UnmakeMove(m, reg)
	}
	return result
}

// PerftParallel is PerftDivide with the root moves spread over workers, each
// searching its own clone of p. workers <= 0 uses GOMAXPROCS. It stops early
// and returns ctx's error if ctx is cancelled.
func PerftParallel(ctx context.Context, p *Position, depth, workers int) (map[Move]uint64, error) {
	result := make(map[Move]uint64)
	if depth <= 0 {
		return result, nil
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	moves := p.GenerateMoves()
	g, ctx := errgroup.WithContext(ctx)

	roots := make(chan Move)
	g.Go(func() error {
		defer close(roots)
		for _, m := range moves {
			select {
			case roots <- m:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})

	var mu sync.Mutex
	for i := 0; i < workers; i++ {
		local := p.Clone()
		g.Go(func() error {
			for m := range roots {
				if err := ctx.Err(); err != nil {
					return err
				}
				reg := local.MakeMove(m)
				n := Perft(local, depth-1)
				local.UnmakeMove(m, reg)
				mu.Lock()
				result[m] = n
				mu.Unlock()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return result, nil
}

// Sum adds up the node counts of a divide table.
func Sum(div map[Move]uint64) uint64 {
	var total uint64
	for _, n := range div {
		total += n
	}
	return total
}
