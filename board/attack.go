package board

import "chess-position/bitboard"

// attackersToOcc returns the pieces of side by that attack sq when the board
// occupancy is occ. Passing an occupancy without the defending king lets
// sliders see through it.
func (p *Position) attackersToOcc(sq Square, by Color, occ uint64) uint64 {
	base := Piece(by) << 3
	queens := p.pieces[base|Piece(PieceTypeQueen)]
	return bitboard.PawnCaptures[by.Other()][sq]&p.pieces[base|Piece(PieceTypePawn)] |
		bitboard.KnightMoves[sq]&p.pieces[base|Piece(PieceTypeKnight)] |
		bitboard.KingMoves[sq]&p.pieces[base|Piece(PieceTypeKing)] |
		bitboard.BishopAttacks(sq, occ)&(p.pieces[base|Piece(PieceTypeBishop)]|queens) |
		bitboard.RookAttacks(sq, occ)&(p.pieces[base|Piece(PieceTypeRook)]|queens)
}

// AttackersTo returns the pieces of side by attacking sq.
func (p *Position) AttackersTo(sq Square, by Color) uint64 {
	return p.attackersToOcc(sq, by, p.occupied)
}

// IsAttacked reports whether any piece of side by attacks sq.
func (p *Position) IsAttacked(sq Square, by Color) bool {
	return p.attackersToOcc(sq, by, p.occupied) != 0
}

// PinnedPieces returns c's pieces that stand alone between c's king and an
// enemy slider on a shared rank, file or diagonal.
func (p *Position) PinnedPieces(c Color) uint64 {
	k := p.KingSquare(c)
	them := c.Other()
	queens := p.pieces[MakePiece(them, PieceTypeQueen)]
	snipers := bitboard.RookAttacks(k, 0)&(p.pieces[MakePiece(them, PieceTypeRook)]|queens) |
		bitboard.BishopAttacks(k, 0)&(p.pieces[MakePiece(them, PieceTypeBishop)]|queens)
	own := p.ByColor(c)
	var pinned uint64
	for snipers != 0 {
		s := bitboard.PopLSB(&snipers)
		blockers := bitboard.Between(k, s) & p.occupied
		if blockers != 0 && !bitboard.MoreThanOne(blockers) && blockers&own != 0 {
			pinned |= blockers
		}
	}
	return pinned
}

// GivesCheck reports whether the legal move m leaves the opponent in check.
func (p *Position) GivesCheck(m Move) bool {
	them := m.Piece.Color().Other()
	p.MakeOnBoard(m)
	check := p.IsAttacked(p.KingSquare(them), them.Other())
	p.UnmakeOnBoard(m)
	return check
}
