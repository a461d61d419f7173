package engine

import (
	"chess-position/bitboard"
	"chess-position/board"
)

var SeePieceValue = [7]int{
	board.PieceTypeKing:   5000,
	board.PieceTypePawn:   100,
	board.PieceTypeKnight: 300,
	board.PieceTypeBishop: 300,
	board.PieceTypeRook:   500,
	board.PieceTypeQueen:  900}

// SEE returns the material balance for the side to move of the exchange
// started by m on its destination square, with both sides free to stop
// capturing. Sliders behind a capturer join in as it leaves.
func SEE(p *board.Position, m board.Move) int {
	var gain [32]int
	depth := 0
	target := m.To

	attacker := m.Piece.Type()
	gain[0] = SeePieceValue[m.Captured.Type()]
	if m.Kind.IsPromotion() {
		attacker = m.Kind.PromotionType()
		gain[0] += SeePieceValue[attacker] - SeePieceValue[board.PieceTypePawn]
	}

	occ := p.Occupied() &^ m.From.Mask()
	if m.Kind == board.EnPassant {
		occ &^= bitboard.NewSquare(target.File(), m.From.Rank()).Mask()
	}
	side := p.SideToMove().Other()

	for {
		depth++
		gain[depth] = SeePieceValue[attacker] - gain[depth-1]

		// Neither side can gain by continuing
		if max(-gain[depth-1], gain[depth]) < 0 {
			break
		}

		attackerBB, piece := minAttacker(p, attackersTo(p, target, occ)&p.ByColor(side), side)
		if attackerBB == 0 {
			break
		}
		occ &^= attackerBB
		attacker = piece
		side = side.Other()
	}

	for depth--; depth > 0; depth-- {
		gain[depth-1] = -max(-gain[depth-1], gain[depth])
	}
	return gain[0]
}

// attackersTo returns the pieces of both sides in occ that attack sq.
func attackersTo(p *board.Position, sq board.Square, occ uint64) uint64 {
	diagonal := p.ByType(board.White, board.PieceTypeBishop) | p.ByType(board.Black, board.PieceTypeBishop) |
		p.ByType(board.White, board.PieceTypeQueen) | p.ByType(board.Black, board.PieceTypeQueen)
	orthogonal := p.ByType(board.White, board.PieceTypeRook) | p.ByType(board.Black, board.PieceTypeRook) |
		p.ByType(board.White, board.PieceTypeQueen) | p.ByType(board.Black, board.PieceTypeQueen)
	hit := bitboard.PawnCaptures[board.Black][sq]&p.ByType(board.White, board.PieceTypePawn) |
		bitboard.PawnCaptures[board.White][sq]&p.ByType(board.Black, board.PieceTypePawn) |
		bitboard.KnightMoves[sq]&(p.ByType(board.White, board.PieceTypeKnight)|p.ByType(board.Black, board.PieceTypeKnight)) |
		bitboard.KingMoves[sq]&(p.ByType(board.White, board.PieceTypeKing)|p.ByType(board.Black, board.PieceTypeKing)) |
		bitboard.BishopAttacks(sq, occ)&diagonal |
		bitboard.RookAttacks(sq, occ)&orthogonal
	return hit & occ
}

// minAttacker picks the least valuable piece of side c out of attadef.
func minAttacker(p *board.Position, attadef uint64, c board.Color) (uint64, board.PieceType) {
	for pt := board.PieceTypePawn; pt <= board.PieceTypeKing; pt++ {
		if subset := attadef & p.ByType(c, pt); subset != 0 {
			return subset & -subset, pt
		}
	}
	return 0, 0
}
