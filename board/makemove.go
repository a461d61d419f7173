package board

import "chess-position/bitboard"

// MakeOnBoard moves pieces for m without touching rights, clocks, keys or the
// side to move. It is meant for legality probes and must be paired with
// UnmakeOnBoard before the position is used for anything else.
func (p *Position) MakeOnBoard(m Move) {
	switch m.Kind {
	case Normal:
		if m.Captured != NoPiece {
			p.remove(m.To, m.Captured)
		}
		p.relocate(m.From, m.To, m.Piece)
	case ShortCastle, LongCastle:
		p.relocate(m.From, m.To, m.Piece)
		rf, rt := castleRookSquares(m.Piece.Color(), m.Kind)
		p.relocate(rf, rt, MakePiece(m.Piece.Color(), PieceTypeRook))
	case EnPassant:
		p.remove(epVictimSquare(m), m.Captured)
		p.relocate(m.From, m.To, m.Piece)
	default:
		if m.Captured != NoPiece {
			p.remove(m.To, m.Captured)
		}
		p.remove(m.From, m.Piece)
		p.put(m.To, m.Promotion())
	}
	p.recomputeDerived()
}

// UnmakeOnBoard is the exact inverse of MakeOnBoard.
func (p *Position) UnmakeOnBoard(m Move) {
	switch m.Kind {
	case Normal:
		p.relocate(m.To, m.From, m.Piece)
		if m.Captured != NoPiece {
			p.put(m.To, m.Captured)
		}
	case ShortCastle, LongCastle:
		p.relocate(m.To, m.From, m.Piece)
		rf, rt := castleRookSquares(m.Piece.Color(), m.Kind)
		p.relocate(rt, rf, MakePiece(m.Piece.Color(), PieceTypeRook))
	case EnPassant:
		p.relocate(m.To, m.From, m.Piece)
		p.put(epVictimSquare(m), m.Captured)
	default:
		p.remove(m.To, m.Promotion())
		p.put(m.From, m.Piece)
		if m.Captured != NoPiece {
			p.put(m.To, m.Captured)
		}
	}
	p.recomputeDerived()
}

// updateCastlingRights drops every right whose king or rook is no longer on
// its original square.
func (p *Position) updateCastlingRights() {
	for c := White; c <= Black; c++ {
		if p.castling[c] == 0 {
			continue
		}
		var rank Square
		if c == Black {
			rank = 56
		}
		if p.mailbox[bitboard.E1+rank] != MakePiece(c, PieceTypeKing) {
			p.castling[c] = 0
			continue
		}
		rook := MakePiece(c, PieceTypeRook)
		if p.mailbox[bitboard.H1+rank] != rook {
			p.castling[c] &^= CastleKingSide
		}
		if p.mailbox[bitboard.A1+rank] != rook {
			p.castling[c] &^= CastleQueenSide
		}
	}
}

// MakeMove plays the legal move m and returns what UnmakeMove needs to take
// it back. Passing a move that GenerateMoves did not produce for this
// position corrupts the position.
func (p *Position) MakeMove(m Move) UnmakeRegister {
	reg := UnmakeRegister{
		Castling:    p.castling,
		EnPassant:   p.epFile,
		Clock:       p.clock,
		Repetitions: p.repetitions,
		Checkers:    p.checkers,
	}
	z := p.zobrist
	key := p.key ^ z.sideToMove ^ z.stateKey(p.castling, p.epFile)
	dk, dpk := z.moveDelta(m)
	key ^= dk
	p.pawnKey ^= dpk

	p.MakeOnBoard(m)
	p.updateCastlingRights()

	p.epFile = NoEnPassant
	if m.Piece.Type() == PieceTypePawn {
		if d := m.To - m.From; d == 16 || d == -16 {
			p.epFile = uint8(m.To.File())
		}
		p.clock = 0
	} else if m.Captured != NoPiece {
		p.clock = 0
	} else {
		p.clock++
	}
	key ^= z.stateKey(p.castling, p.epFile)

	p.side = p.side.Other()
	p.ply++
	p.hply++
	p.key = key
	p.history[p.hply&historyMask] = key
	p.repetitions = p.countRepetitions()
	p.checkers = p.AttackersTo(p.KingSquare(p.side), p.side.Other())
	return reg
}

// UnmakeMove restores the position from before MakeMove(m) returned reg.
func (p *Position) UnmakeMove(m Move, reg UnmakeRegister) {
	z := p.zobrist
	dk, dpk := z.moveDelta(m)
	p.key ^= z.sideToMove ^ z.stateKey(p.castling, p.epFile) ^ dk ^ z.stateKey(reg.Castling, reg.EnPassant)
	p.pawnKey ^= dpk

	p.UnmakeOnBoard(m)

	p.side = p.side.Other()
	p.ply--
	p.hply--
	p.castling = reg.Castling
	p.epFile = reg.EnPassant
	p.clock = reg.Clock
	p.repetitions = reg.Repetitions
	p.checkers = reg.Checkers
}

// MakeNullMove passes the turn. It must not be called while in check.
func (p *Position) MakeNullMove() UnmakeRegister {
	reg := UnmakeRegister{
		Castling:    p.castling,
		EnPassant:   p.epFile,
		Clock:       p.clock,
		Repetitions: p.repetitions,
		Checkers:    p.checkers,
	}
	z := p.zobrist
	p.key ^= z.sideToMove ^ z.enPassant[p.epFile] ^ z.enPassant[NoEnPassant]
	p.epFile = NoEnPassant
	p.clock++
	p.side = p.side.Other()
	p.ply++
	p.hply++
	p.history[p.hply&historyMask] = p.key
	p.repetitions = 0
	p.checkers = p.AttackersTo(p.KingSquare(p.side), p.side.Other())
	return reg
}

// UnmakeNullMove reverts MakeNullMove.
func (p *Position) UnmakeNullMove(reg UnmakeRegister) {
	z := p.zobrist
	p.key ^= z.sideToMove ^ z.enPassant[p.epFile] ^ z.enPassant[reg.EnPassant]
	p.side = p.side.Other()
	p.ply--
	p.hply--
	p.epFile = reg.EnPassant
	p.clock = reg.Clock
	p.repetitions = reg.Repetitions
	p.checkers = reg.Checkers
}

// countRepetitions counts earlier positions with the current key, looking
// back two plies at a time no further than the last irreversible move.
func (p *Position) countRepetitions() int {
	if p.clock < 4 {
		return 0
	}
	limit := min(p.clock, p.hply, historyMask)
	n := 0
	for back := 2; back <= limit; back += 2 {
		if p.history[(p.hply-back)&historyMask] == p.key {
			n++
		}
	}
	return n
}
