package board

import (
	"testing"

	"chess-position/bitboard"
)

func TestMoveEncodeDecode(t *testing.T) {
	for _, tc := range perftCases {
		p, _ := ParseFEN(tc.fen)
		for _, m := range p.GenerateMoves() {
			if got := DecodeMove(m.Encode()); got != m {
				t.Fatalf("%s: decode(encode(%+v)) = %+v", tc.name, m, got)
			}
			if m.Encode() >= 1<<23 {
				t.Fatalf("encoding of %s uses more than 23 bits", m)
			}
		}
	}
}

func TestMoveEqualityIgnoresPieces(t *testing.T) {
	a := Move{From: bitboard.E2, To: bitboard.E4, Piece: WhitePawn}
	b := Move{From: bitboard.E2, To: bitboard.E4}
	if !a.Equal(b) {
		t.Fatalf("moves with the same squares and kind should be equal")
	}
	c := Move{From: bitboard.E7, To: bitboard.E8, Kind: PromoteQueen}
	d := Move{From: bitboard.E7, To: bitboard.E8, Kind: PromoteKnight}
	if c.Equal(d) {
		t.Fatalf("different promotions must not be equal")
	}
}

func TestMoveString(t *testing.T) {
	cases := map[string]Move{
		"e2e4":  {From: bitboard.E2, To: bitboard.E4},
		"e7e8q": {From: bitboard.E7, To: bitboard.E8, Kind: PromoteQueen},
		"b2a1n": {From: bitboard.B2, To: bitboard.A1, Kind: PromoteKnight},
		"e1g1":  {From: bitboard.E1, To: bitboard.G1, Kind: ShortCastle},
		"0000":  NoMove,
	}
	for want, m := range cases {
		if got := m.String(); got != want {
			t.Fatalf("got %q want %q", got, want)
		}
	}
}

func TestPieceEncoding(t *testing.T) {
	for _, pc := range pieceCodes {
		if MakePiece(pc.Color(), pc.Type()) != pc {
			t.Fatalf("MakePiece round trip failed for %s", pc)
		}
		if pieceFromChar(pc.Char()) != pc {
			t.Fatalf("char round trip failed for %s", pc)
		}
	}
	if BlackQueen.Color() != Black || WhiteKnight.Color() != White || BlackQueen.Type() != PieceTypeQueen {
		t.Fatalf("piece accessors wrong")
	}
	if NoPiece.Valid() || Piece(7).Valid() {
		t.Fatalf("invalid codes reported valid")
	}
}
