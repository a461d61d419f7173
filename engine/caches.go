package engine

import (
	"sync/atomic"

	"chess-position/board"
	"chess-position/hashtable"
)

// EvalEntry caches a static evaluation from the side to move's view.
type EvalEntry struct {
	Hash  uint64
	Score int16
	Gen   uint8
}

func (e EvalEntry) HashKey() uint64   { return e.Hash }
func (e EvalEntry) Generation() uint8 { return e.Gen }

// BetterThan always replaces, except over an entry from a newer generation.
func (e EvalEntry) BetterThan(o EvalEntry) bool { return e.Gen-o.Gen < 128 }

// Config sizes the caches in megabytes. Sizes are clamped to the limits in
// package hashtable.
type Config struct {
	TTSizeMB   int
	EvalSizeMB int
	PawnSizeMB int
	// Entries older than MaxAge generations are dropped by NewSearch.
	MaxAge uint8
}

func DefaultConfig() Config {
	return Config{
		TTSizeMB:   hashtable.DefaultSizeMB,
		EvalSizeMB: 8,
		PawnSizeMB: 2,
		MaxAge:     2,
	}
}

// Caches bundles the tables shared by search workers with a common
// generation counter.
type Caches struct {
	TT     *TransTable
	Eval   *hashtable.ExactTable[EvalEntry]
	Pawns  *hashtable.ExactTable[PawnEntry]
	maxAge uint8
	gen    atomic.Uint32
}

func NewCaches(cfg Config) *Caches {
	return &Caches{
		TT:     NewTransTable(cfg.TTSizeMB),
		Eval:   hashtable.NewExactTable[EvalEntry](cfg.EvalSizeMB),
		Pawns:  hashtable.NewExactTable[PawnEntry](cfg.PawnSizeMB),
		maxAge: cfg.MaxAge,
	}
}

// Generation returns the current search epoch.
func (c *Caches) Generation() uint8 { return uint8(c.gen.Load()) }

// NewSearch starts a new generation and drops entries that have aged out.
// It returns the number of entries removed. It must not run while workers
// are storing entries.
func (c *Caches) NewSearch() int {
	gen := uint8(c.gen.Add(1))
	removed := c.TT.RemoveIf(hashtable.Stale[TTEntry](gen, c.maxAge))
	removed += c.Eval.RemoveIf(hashtable.Stale[EvalEntry](gen, c.maxAge))
	removed += c.Pawns.RemoveIf(hashtable.Stale[PawnEntry](gen, c.maxAge))
	return removed
}

// Clear empties every table. The generation is kept.
func (c *Caches) Clear() {
	c.TT.Clear()
	c.Eval.Clear()
	c.Pawns.Clear()
}

// StoreTT records a search result in the current generation.
func (c *Caches) StoreTT(hash uint64, depth, ply int8, move board.Move, score int16, flag int8) bool {
	return c.TT.Store(hash, depth, ply, move, score, flag, c.Generation())
}

func (c *Caches) ProbeEval(p *board.Position) (int16, bool) {
	e, ok := c.Eval.Get(p.Key())
	return e.Score, ok
}

func (c *Caches) StoreEval(p *board.Position, score int16) {
	c.Eval.Put(EvalEntry{Hash: p.Key(), Score: score, Gen: c.Generation()})
}

// PawnEntry returns the pawn structure of p, computing and storing it on a
// miss.
func (c *Caches) PawnEntry(p *board.Position) PawnEntry {
	if e, ok := c.Pawns.Get(p.PawnKey()); ok {
		return e
	}
	e := ComputePawnEntry(p)
	e.Gen = c.Generation()
	c.Pawns.Put(e)
	return e
}
