package board

import "chess-position/bitboard"

// MoveKind tags the seven ways a move can change the board (promotions count
// as one kind per target piece).
type MoveKind uint8

const (
	Normal MoveKind = iota
	ShortCastle
	LongCastle
	EnPassant
	PromoteQueen
	PromoteRook
	PromoteBishop
	PromoteKnight
)

var moveKindNames = [...]string{"normal", "O-O", "O-O-O", "e.p.", "=Q", "=R", "=B", "=N"}

func (k MoveKind) String() string {
	if int(k) < len(moveKindNames) {
		return moveKindNames[k]
	}
	return "?"
}

func (k MoveKind) IsPromotion() bool { return k >= PromoteQueen && k <= PromoteKnight }

// PromotionType returns the piece type a promotion kind creates.
func (k MoveKind) PromotionType() PieceType {
	switch k {
	case PromoteQueen:
		return PieceTypeQueen
	case PromoteRook:
		return PieceTypeRook
	case PromoteBishop:
		return PieceTypeBishop
	case PromoteKnight:
		return PieceTypeKnight
	}
	return PieceTypeNone
}

// promotionKinds is the expansion order of a pawn reaching the last rank.
var promotionKinds = [4]MoveKind{PromoteQueen, PromoteRook, PromoteBishop, PromoteKnight}

// Move is an immutable move record. Castling is stored as the king's move
// (e1g1); the rook relocation is implied by Kind.
type Move struct {
	From     Square
	To       Square
	Piece    Piece
	Captured Piece
	Kind     MoveKind
}

// NoMove is the zero Move; it never appears in a generated move list.
var NoMove Move

// Equal compares origin, destination and kind only.
func (m Move) Equal(o Move) bool {
	return m.From == o.From && m.To == o.To && m.Kind == o.Kind
}

func (m Move) IsNull() bool { return m.From == m.To }

func (m Move) IsCapture() bool { return m.Captured != NoPiece }

// IsQuiet reports a non-capturing, non-promoting move.
func (m Move) IsQuiet() bool { return m.Captured == NoPiece && !m.Kind.IsPromotion() }

// Promotion returns the piece a promotion creates, NoPiece otherwise.
func (m Move) Promotion() Piece {
	return MakePiece(m.Piece.Color(), m.Kind.PromotionType())
}

// String returns long algebraic notation: e2e4, e7e8q, e1g1.
func (m Move) String() string {
	if m.IsNull() {
		return "0000"
	}
	s := m.From.String() + m.To.String()
	switch m.Kind {
	case PromoteQueen:
		s += "q"
	case PromoteRook:
		s += "r"
	case PromoteBishop:
		s += "b"
	case PromoteKnight:
		s += "n"
	}
	return s
}

// Encode packs the move into 23 bits for cache entries:
// from(6) | to(6) | piece(4) | captured(4) | kind(3).
func (m Move) Encode() uint32 {
	return uint32(m.From)&0x3F |
		(uint32(m.To)&0x3F)<<6 |
		(uint32(m.Piece)&0xF)<<12 |
		(uint32(m.Captured)&0xF)<<16 |
		(uint32(m.Kind)&0x7)<<20
}

// DecodeMove is the inverse of Encode.
func DecodeMove(v uint32) Move {
	return Move{
		From:     bitboard.Square(v & 0x3F),
		To:       bitboard.Square((v >> 6) & 0x3F),
		Piece:    Piece((v >> 12) & 0xF),
		Captured: Piece((v >> 16) & 0xF),
		Kind:     MoveKind((v >> 20) & 0x7),
	}
}
