package board

import "math/rand"

// DefaultZobristSeed seeds the table returned by DefaultZobrist.
const DefaultZobristSeed = 0xC0DE

// Zobrist holds the random constants the position key is built from. A table
// is immutable once constructed and may be shared between any number of
// positions and goroutines.
type Zobrist struct {
	pieceSquare [15][64]uint64
	sideToMove  uint64
	// castling[color][rights], rights being the 2-bit field of that color.
	castling [2][4]uint64
	// enPassant[file], index 8 meaning no en-passant file.
	enPassant [9]uint64
}

// NewZobrist builds a table from a deterministic seed.
func NewZobrist(seed int64) *Zobrist {
	rng := rand.New(rand.NewSource(seed))
	z := &Zobrist{}
	for _, p := range pieceCodes {
		for sq := 0; sq < 64; sq++ {
			z.pieceSquare[p][sq] = rng.Uint64()
		}
	}
	z.sideToMove = rng.Uint64()
	for c := 0; c < 2; c++ {
		for r := 0; r < 4; r++ {
			z.castling[c][r] = rng.Uint64()
		}
	}
	for f := range z.enPassant {
		z.enPassant[f] = rng.Uint64()
	}
	return z
}

var defaultZobrist = NewZobrist(DefaultZobristSeed)

// DefaultZobrist returns the shared table used by ParseFEN and NewPosition.
func DefaultZobrist() *Zobrist { return defaultZobrist }

// Key computes the full position key from scratch.
func (z *Zobrist) Key(p *Position) uint64 {
	var key uint64
	for sq := 0; sq < 64; sq++ {
		if pc := p.mailbox[sq]; pc != NoPiece {
			key ^= z.pieceSquare[pc][sq]
		}
	}
	if p.side == Black {
		key ^= z.sideToMove
	}
	key ^= z.castling[White][p.castling[White]]
	key ^= z.castling[Black][p.castling[Black]]
	key ^= z.enPassant[p.epFile]
	return key
}

// PawnKey computes the pawn-structure key from scratch.
func (z *Zobrist) PawnKey(p *Position) uint64 {
	var key uint64
	for sq := 0; sq < 64; sq++ {
		if pc := p.mailbox[sq]; pc.Type() == PieceTypePawn {
			key ^= z.pieceSquare[pc][sq]
		}
	}
	return key
}

// stateKey covers the non-placement part of the key.
func (z *Zobrist) stateKey(castling [2]uint8, epFile uint8) uint64 {
	return z.castling[White][castling[White]] ^ z.castling[Black][castling[Black]] ^ z.enPassant[epFile]
}

// moveDelta returns what m XORs into the key and the pawn key. Applying the
// same delta again undoes it.
func (z *Zobrist) moveDelta(m Move) (key, pawnKey uint64) {
	from, to := int(m.From), int(m.To)
	us := m.Piece.Color()
	key = z.pieceSquare[m.Piece][from]
	switch m.Kind {
	case Normal:
		key ^= z.pieceSquare[m.Piece][to]
		if m.Captured != NoPiece {
			key ^= z.pieceSquare[m.Captured][to]
			if m.Captured.Type() == PieceTypePawn {
				pawnKey ^= z.pieceSquare[m.Captured][to]
			}
		}
		if m.Piece.Type() == PieceTypePawn {
			pawnKey ^= z.pieceSquare[m.Piece][from] ^ z.pieceSquare[m.Piece][to]
		}
	case ShortCastle, LongCastle:
		key ^= z.pieceSquare[m.Piece][to]
		rook := MakePiece(us, PieceTypeRook)
		rf, rt := castleRookSquares(us, m.Kind)
		key ^= z.pieceSquare[rook][rf] ^ z.pieceSquare[rook][rt]
	case EnPassant:
		capSq := epVictimSquare(m)
		key ^= z.pieceSquare[m.Piece][to] ^ z.pieceSquare[m.Captured][capSq]
		pawnKey = z.pieceSquare[m.Piece][from] ^ z.pieceSquare[m.Piece][to] ^ z.pieceSquare[m.Captured][capSq]
	default:
		promo := m.Promotion()
		key ^= z.pieceSquare[promo][to]
		pawnKey = z.pieceSquare[m.Piece][from]
		if m.Captured != NoPiece {
			key ^= z.pieceSquare[m.Captured][to]
		}
	}
	return key, pawnKey
}
