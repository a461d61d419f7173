package engine

import (
	"chess-position/bitboard"
	"chess-position/board"
)

// PawnEntry stores cached pawn structure analysis, keyed by the pawn-only
// Zobrist key.
type PawnEntry struct {
	Hash uint64
	Gen  uint8

	// Pawn attack maps
	WPawnAttackBB uint64
	BPawnAttackBB uint64

	// File structure masks
	OpenFiles      uint64
	WSemiOpenFiles uint64
	BSemiOpenFiles uint64

	// Pawn structure bitboards
	WPassedBB   uint64
	BPassedBB   uint64
	WIsolatedBB uint64
	BIsolatedBB uint64
	WDoubledBB  uint64
	BDoubledBB  uint64
	WBlockedBB  uint64
	BBlockedBB  uint64
}

func (e PawnEntry) HashKey() uint64   { return e.Hash }
func (e PawnEntry) Generation() uint8 { return e.Gen }

// BetterThan never lets an entry replace one with the same key, since both
// describe the same pawns. Other keys are evicted unless they are newer.
func (e PawnEntry) BetterThan(o PawnEntry) bool {
	return e.Hash != o.Hash && e.Gen-o.Gen < 128
}

// adjacentFiles[f] covers the files left and right of f.
var adjacentFiles [8]uint64

// aheadOf[c][sq] covers every square strictly in front of sq from c's side.
var aheadOf [2][64]uint64

func init() {
	for f := 0; f < 8; f++ {
		if f > 0 {
			adjacentFiles[f] |= bitboard.Files[f-1]
		}
		if f < 7 {
			adjacentFiles[f] |= bitboard.Files[f+1]
		}
	}
	for sq := bitboard.A1; sq <= bitboard.H8; sq++ {
		r := sq.Rank()
		for rr := 0; rr < 8; rr++ {
			switch {
			case rr > r:
				aheadOf[board.White][sq] |= bitboard.Ranks[rr]
			case rr < r:
				aheadOf[board.Black][sq] |= bitboard.Ranks[rr]
			}
		}
	}
}

// ComputePawnEntry analyses the pawn structure of p from scratch.
func ComputePawnEntry(p *board.Position) PawnEntry {
	wp := p.Pieces(board.WhitePawn)
	bp := p.Pieces(board.BlackPawn)
	entry := PawnEntry{Hash: p.PawnKey()}

	// 1. Pawn attack bitboards
	entry.WPawnAttackBB = bitboard.UpLeft(wp) | bitboard.UpRight(wp)
	entry.BPawnAttackBB = bitboard.DownLeft(bp) | bitboard.DownRight(bp)

	// 2. File open/semi-open masks
	var whiteFiles, blackFiles uint64
	for f := 0; f < 8; f++ {
		if wp&bitboard.Files[f] != 0 {
			whiteFiles |= bitboard.Files[f]
		}
		if bp&bitboard.Files[f] != 0 {
			blackFiles |= bitboard.Files[f]
		}
	}
	entry.OpenFiles = ^whiteFiles & ^blackFiles
	entry.WSemiOpenFiles = ^whiteFiles & blackFiles
	entry.BSemiOpenFiles = ^blackFiles & whiteFiles

	// 3. Pawn structure bitboards
	entry.WPassedBB, entry.WIsolatedBB, entry.WDoubledBB = pawnStructure(board.White, wp, bp)
	entry.BPassedBB, entry.BIsolatedBB, entry.BDoubledBB = pawnStructure(board.Black, bp, wp)
	entry.WBlockedBB = wp & bitboard.Down(bp)
	entry.BBlockedBB = bp & bitboard.Up(wp)
	return entry
}

// pawnStructure classifies c's pawns against the enemy pawns. A doubled pawn
// has a friendly pawn in front of it on the same file.
func pawnStructure(c board.Color, own, enemy uint64) (passed, isolated, doubled uint64) {
	for x := own; x != 0; {
		sq := bitboard.PopLSB(&x)
		f := sq.File()
		file := bitboard.Files[f]
		ahead := aheadOf[c][sq]
		if ahead&(file|adjacentFiles[f])&enemy == 0 {
			passed |= sq.Mask()
		}
		if adjacentFiles[f]&own == 0 {
			isolated |= sq.Mask()
		}
		if ahead&file&own != 0 {
			doubled |= sq.Mask()
		}
	}
	return passed, isolated, doubled
}
