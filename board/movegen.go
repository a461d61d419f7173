package board

import "chess-position/bitboard"

// GenerateMoves returns every legal move of the side to move, unordered.
func (p *Position) GenerateMoves() []Move {
	return p.GenerateMovesInto(make([]Move, 0, 64))
}

// GenerateMovesInto writes the legal moves into dst[:0] and returns the
// result, reusing dst's capacity.
func (p *Position) GenerateMovesInto(dst []Move) []Move {
	dst = dst[:0]
	if p.checkers != 0 {
		return p.generateEvasions(dst)
	}
	return p.generateNormal(dst)
}

// HasLegalMoves reports whether the side to move has any legal move.
func (p *Position) HasLegalMoves() bool {
	var buf [256]Move
	return len(p.GenerateMovesInto(buf[:0])) > 0
}

func (p *Position) generateNormal(dst []Move) []Move {
	us := p.side
	k := p.KingSquare(us)
	targets := p.notOwn(us)
	pinned := p.PinnedPieces(us)

	dst = p.appendKingMoves(dst, k, targets)
	dst = p.appendCastling(dst, k)

	base := Piece(us) << 3
	knight := base | Piece(PieceTypeKnight)
	for b := p.pieces[knight] &^ pinned; b != 0; {
		from := bitboard.PopLSB(&b)
		dst = p.appendTargets(dst, from, knight, bitboard.KnightMoves[from]&targets)
	}
	for _, pt := range [3]PieceType{PieceTypeBishop, PieceTypeRook, PieceTypeQueen} {
		pc := base | Piece(pt)
		for b := p.pieces[pc]; b != 0; {
			from := bitboard.PopLSB(&b)
			attacks := sliderAttacks(pt, from, p.occupied) & targets
			if pinned&from.Mask() != 0 {
				attacks &= bitboard.Line(k, from)
			}
			dst = p.appendTargets(dst, from, pc, attacks)
		}
	}
	dst = p.appendPawnMoves(dst, p.pieces[base|Piece(PieceTypePawn)], pinned, k, ^uint64(0))
	return p.appendEnPassant(dst)
}

// generateEvasions handles the side to move being in check. Pinned pieces
// can never resolve a check, so only free pieces capture or interpose.
func (p *Position) generateEvasions(dst []Move) []Move {
	us := p.side
	k := p.KingSquare(us)
	dst = p.appendKingMoves(dst, k, p.notOwn(us))
	if bitboard.MoreThanOne(p.checkers) {
		return dst
	}
	checker := bitboard.FirstOne(p.checkers)
	block := p.checkers | bitboard.Between(k, checker)
	free := ^p.PinnedPieces(us)

	base := Piece(us) << 3
	knight := base | Piece(PieceTypeKnight)
	for b := p.pieces[knight] & free; b != 0; {
		from := bitboard.PopLSB(&b)
		dst = p.appendTargets(dst, from, knight, bitboard.KnightMoves[from]&block)
	}
	for _, pt := range [3]PieceType{PieceTypeBishop, PieceTypeRook, PieceTypeQueen} {
		pc := base | Piece(pt)
		for b := p.pieces[pc] & free; b != 0; {
			from := bitboard.PopLSB(&b)
			dst = p.appendTargets(dst, from, pc, sliderAttacks(pt, from, p.occupied)&block)
		}
	}
	dst = p.appendPawnMoves(dst, p.pieces[base|Piece(PieceTypePawn)]&free, 0, k, block)
	return p.appendEnPassant(dst)
}

func sliderAttacks(pt PieceType, sq Square, occ uint64) uint64 {
	switch pt {
	case PieceTypeBishop:
		return bitboard.BishopAttacks(sq, occ)
	case PieceTypeRook:
		return bitboard.RookAttacks(sq, occ)
	default:
		return bitboard.QueenAttacks(sq, occ)
	}
}

func (p *Position) appendTargets(dst []Move, from Square, pc Piece, targets uint64) []Move {
	for targets != 0 {
		to := bitboard.PopLSB(&targets)
		dst = append(dst, Move{From: from, To: to, Piece: pc, Captured: p.mailbox[to]})
	}
	return dst
}

// appendKingMoves tests destinations with the king lifted off the board so a
// slider checking along a line still covers the square behind the king.
func (p *Position) appendKingMoves(dst []Move, k Square, targets uint64) []Move {
	them := p.side.Other()
	king := p.mailbox[k]
	occ := p.occupied &^ k.Mask()
	for b := bitboard.KingMoves[k] & targets; b != 0; {
		to := bitboard.PopLSB(&b)
		if p.attackersToOcc(to, them, occ) == 0 {
			dst = append(dst, Move{From: k, To: to, Piece: king, Captured: p.mailbox[to]})
		}
	}
	return dst
}

// castleRookSquares returns the rook's origin and destination for a castling
// move of side c.
func castleRookSquares(c Color, kind MoveKind) (from, to Square) {
	var rank Square
	if c == Black {
		rank = 56
	}
	if kind == ShortCastle {
		return bitboard.H1 + rank, bitboard.F1 + rank
	}
	return bitboard.A1 + rank, bitboard.D1 + rank
}

// appendCastling is only called when the side to move is not in check.
func (p *Position) appendCastling(dst []Move, k Square) []Move {
	us := p.side
	rights := p.castling[us]
	if rights == 0 {
		return dst
	}
	var rank Square
	if us == Black {
		rank = 56
	}
	if k != bitboard.E1+rank {
		return dst
	}
	them := us.Other()
	king := MakePiece(us, PieceTypeKing)
	rook := MakePiece(us, PieceTypeRook)
	if rights&CastleKingSide != 0 && p.mailbox[bitboard.H1+rank] == rook &&
		p.occupied&((bitboard.F1+rank).Mask()|(bitboard.G1+rank).Mask()) == 0 &&
		!p.IsAttacked(bitboard.F1+rank, them) && !p.IsAttacked(bitboard.G1+rank, them) {
		dst = append(dst, Move{From: k, To: bitboard.G1 + rank, Piece: king, Kind: ShortCastle})
	}
	if rights&CastleQueenSide != 0 && p.mailbox[bitboard.A1+rank] == rook &&
		p.occupied&((bitboard.B1+rank).Mask()|(bitboard.C1+rank).Mask()|(bitboard.D1+rank).Mask()) == 0 &&
		!p.IsAttacked(bitboard.D1+rank, them) && !p.IsAttacked(bitboard.C1+rank, them) {
		dst = append(dst, Move{From: k, To: bitboard.C1 + rank, Piece: king, Kind: LongCastle})
	}
	return dst
}

// appendPawnMoves adds pushes and captures of pawns whose destinations fall
// inside allowed. A pinned pawn is further held to the line through its
// king, which keeps file-pinned pawns pushing and diagonal-pinned pawns
// capturing only the pinner.
func (p *Position) appendPawnMoves(dst []Move, pawns, pinned uint64, k Square, allowed uint64) []Move {
	us := p.side
	piece := MakePiece(us, PieceTypePawn)
	enemy := p.ByColor(us.Other())
	doubleRank := bitboard.Rank2Mask
	if us == Black {
		doubleRank = bitboard.Rank7Mask
	}
	for pawns != 0 {
		from := bitboard.PopLSB(&pawns)
		mask := allowed
		if pinned&from.Mask() != 0 {
			mask &= bitboard.Line(k, from)
		}
		if one := bitboard.PawnAdvance[us][from] & p.empty; one != 0 {
			to := bitboard.FirstOne(one)
			if one&mask != 0 {
				dst = appendPawnMove(dst, from, to, piece, NoPiece)
			}
			if from.Mask()&doubleRank != 0 {
				if two := bitboard.PawnAdvance[us][to] & p.empty & mask; two != 0 {
					dst = append(dst, Move{From: from, To: bitboard.FirstOne(two), Piece: piece})
				}
			}
		}
		for caps := bitboard.PawnCaptures[us][from] & enemy & mask; caps != 0; {
			to := bitboard.PopLSB(&caps)
			dst = appendPawnMove(dst, from, to, piece, p.mailbox[to])
		}
	}
	return dst
}

func appendPawnMove(dst []Move, from, to Square, piece, captured Piece) []Move {
	if r := to.Rank(); r == 0 || r == 7 {
		for _, kind := range promotionKinds {
			dst = append(dst, Move{From: from, To: to, Piece: piece, Captured: captured, Kind: kind})
		}
		return dst
	}
	return append(dst, Move{From: from, To: to, Piece: piece, Captured: captured})
}

// appendEnPassant replays every candidate capture on the board and keeps it
// only if the own king is not attacked afterwards. That catches the capture
// clearing two pawns off a rank shared by the king and an enemy rook.
func (p *Position) appendEnPassant(dst []Move) []Move {
	target := p.EnPassantSquare()
	if target == NoSquare {
		return dst
	}
	us, them := p.side, p.side.Other()
	pawn := MakePiece(us, PieceTypePawn)
	victim := MakePiece(them, PieceTypePawn)
	m := Move{To: target, Piece: pawn, Captured: victim, Kind: EnPassant}
	if p.mailbox[target] != NoPiece || p.mailbox[epVictimSquare(m)] != victim {
		return dst
	}
	k := p.KingSquare(us)
	for b := bitboard.PawnCaptures[them][target] & p.pieces[pawn]; b != 0; {
		m.From = bitboard.PopLSB(&b)
		p.MakeOnBoard(m)
		safe := p.attackersToOcc(k, them, p.occupied) == 0
		p.UnmakeOnBoard(m)
		if safe {
			dst = append(dst, m)
		}
	}
	return dst
}

// epVictimSquare is the square of the pawn an en-passant move removes.
func epVictimSquare(m Move) Square {
	if m.Piece.Color() == White {
		return m.To - 8
	}
	return m.To + 8
}

// GenerateCapturesInto keeps the captures and promotions of the legal set.
func (p *Position) GenerateCapturesInto(dst []Move) []Move {
	all := p.GenerateMovesInto(dst)
	n := 0
	for _, m := range all {
		if !m.IsQuiet() {
			all[n] = m
			n++
		}
	}
	return all[:n]
}

// GenerateQuietsInto keeps the legal moves GenerateCapturesInto drops.
func (p *Position) GenerateQuietsInto(dst []Move) []Move {
	all := p.GenerateMovesInto(dst)
	n := 0
	for _, m := range all {
		if m.IsQuiet() {
			all[n] = m
			n++
		}
	}
	return all[:n]
}

func (p *Position) GenerateCaptures() []Move { return p.GenerateCapturesInto(make([]Move, 0, 32)) }
func (p *Position) GenerateQuiets() []Move   { return p.GenerateQuietsInto(make([]Move, 0, 64)) }
