package engine

import (
	"chess-position/board"
	"chess-position/hashtable"
)

const (
	// Flags
	AlphaFlag int8 = iota
	BetaFlag
	ExactFlag

	// Scores beyond Checkmate are mate scores, stored relative to the node.
	MaxScore  int16 = 32500
	Checkmate int16 = 20000

	// Unusable score
	UnusableScore int16 = -32750
)

// TTEntry is a transposition table record. Move holds board.Move.Encode().
type TTEntry struct {
	Hash  uint64
	Move  uint32
	Score int16
	Depth int8
	Flag  int8
	Gen   uint8
}

func (e TTEntry) HashKey() uint64      { return e.Hash }
func (e TTEntry) Generation() uint8    { return e.Gen }
func (e TTEntry) BestMove() board.Move { return board.DecodeMove(e.Move) }

// BetterThan prefers the newer generation, then the deeper search, then the
// tighter bound. An entry at least as good as o replaces it.
func (e TTEntry) BetterThan(o TTEntry) bool {
	if e.Gen != o.Gen {
		return e.Gen-o.Gen < 128
	}
	if e.Depth != o.Depth {
		return e.Depth > o.Depth
	}
	return boundRank(e.Flag) >= boundRank(o.Flag)
}

func boundRank(flag int8) int {
	switch flag {
	case ExactFlag:
		return 2
	case BetaFlag:
		return 1
	}
	return 0
}

// scoreToTT makes a mate score relative to the node at ply.
func scoreToTT(score int16, ply int8) int16 {
	if score > Checkmate {
		return score + int16(ply)
	}
	if score < -Checkmate {
		return score - int16(ply)
	}
	return score
}

// scoreFromTT is the inverse of scoreToTT.
func scoreFromTT(score int16, ply int8) int16 {
	if score > Checkmate {
		return score - int16(ply)
	}
	if score < -Checkmate {
		return score + int16(ply)
	}
	return score
}

// TransTable is the search's transposition table. Collisions are resolved
// lossily.
type TransTable struct {
	table *hashtable.LossyTable[TTEntry]
}

func NewTransTable(sizeMB int) *TransTable {
	return &TransTable{table: hashtable.NewLossyTable[TTEntry](sizeMB)}
}

// Store records a search result for hash found at ply.
func (TT *TransTable) Store(hash uint64, depth int8, ply int8, move board.Move, score int16, flag int8, gen uint8) bool {
	return TT.table.Put(TTEntry{
		Hash:  hash,
		Move:  move.Encode(),
		Score: scoreToTT(score, ply),
		Depth: depth,
		Flag:  flag,
		Gen:   gen,
	})
}

// Get returns the raw entry for hash.
func (TT *TransTable) Get(hash uint64) (TTEntry, bool) {
	return TT.table.Get(hash)
}

// Probe reports whether the entry for hash can cut the search at depth with
// the window [alpha, beta], and the score to return if so. The stored best
// move is returned whenever the entry exists. Entries whose move equals
// excluded are ignored.
func (TT *TransTable) Probe(hash uint64, depth int8, alpha, beta int16, ply int8, excluded board.Move) (usable bool, score int16, best board.Move) {
	score = UnusableScore
	e, ok := TT.table.Get(hash)
	if !ok {
		return false, score, board.NoMove
	}
	best = e.BestMove()
	if !excluded.IsNull() && best.Equal(excluded) {
		return false, score, best
	}
	if e.Depth < depth {
		return false, score, best
	}
	norm := scoreFromTT(e.Score, ply)
	switch e.Flag {
	case ExactFlag:
		return true, norm, best
	case AlphaFlag:
		if norm <= alpha {
			return true, alpha, best
		}
	case BetaFlag:
		if norm >= beta {
			return true, beta, best
		}
	}
	return false, score, best
}

func (TT *TransTable) Len() int      { return TT.table.Len() }
func (TT *TransTable) Capacity() int { return TT.table.Capacity() }
func (TT *TransTable) Clear()        { TT.table.Clear() }

// RemoveIf drops every entry matching pred.
func (TT *TransTable) RemoveIf(pred func(TTEntry) bool) int {
	return TT.table.RemoveIf(pred)
}
