package board

import (
	"testing"

	"chess-position/bitboard"
)

// walk visits every node of the legal move tree to the given depth and checks
// that make/unmake is an exact round trip and the incremental keys match a
// from-scratch computation.
func walk(t *testing.T, p *Position, depth int) {
	t.Helper()
	if depth == 0 {
		return
	}
	for _, m := range p.GenerateMoves() {
		before := p.Clone()
		reg := p.MakeMove(m)
		if err := p.Validate(); err != nil {
			t.Fatalf("after %s from %s: %v", m, before.FEN(), err)
		}
		walk(t, p, depth-1)
		p.UnmakeMove(m, reg)
		if !p.Equal(before) {
			t.Fatalf("unmake %s did not restore %s, got %s", m, before.FEN(), p.FEN())
		}
	}
}

func TestMakeUnmakeRoundTrip(t *testing.T) {
	depth := 3
	if testing.Short() {
		depth = 2
	}
	for _, tc := range perftCases {
		p, err := ParseFEN(tc.fen)
		if err != nil {
			t.Fatalf("%s: %v", tc.name, err)
		}
		walk(t, p, depth)
	}
}

func TestMakeOnBoardRoundTrip(t *testing.T) {
	for _, tc := range perftCases {
		p, _ := ParseFEN(tc.fen)
		for _, m := range p.GenerateMoves() {
			before := p.Clone()
			p.MakeOnBoard(m)
			if p.key != before.key || p.castling != before.castling || p.clock != before.clock || p.side != before.side {
				t.Fatalf("%s: board-only make of %s touched state", tc.name, m)
			}
			if p.mailbox[m.From] != NoPiece {
				t.Fatalf("%s: origin of %s still occupied", tc.name, m)
			}
			p.UnmakeOnBoard(m)
			if !p.Equal(before) {
				t.Fatalf("%s: board-only round trip of %s failed", tc.name, m)
			}
		}
	}
}

func play(t *testing.T, p *Position, moves ...string) {
	t.Helper()
	for _, s := range moves {
		if _, _, err := p.MakeMoveText(s); err != nil {
			t.Fatalf("play %s: %v", s, err)
		}
	}
}

func TestCastlingRightsRevoked(t *testing.T) {
	p, _ := ParseFEN("r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	play(t, p, "h1h2")
	if p.Castling(White) != CastleQueenSide {
		t.Fatalf("white rights after rook move: got %d want %d", p.Castling(White), CastleQueenSide)
	}
	play(t, p, "e8d8")
	if p.Castling(Black) != 0 {
		t.Fatalf("black rights after king move: got %d want 0", p.Castling(Black))
	}
	if got := p.FEN(); got != "r2k3r/8/8/8/8/8/7R/R3K3 w Q - 2 2" {
		t.Fatalf("FEN: got %q", got)
	}
}

func TestCapturingRookRevokesOpponentRight(t *testing.T) {
	p, _ := ParseFEN("r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	play(t, p, "a1a8")
	if p.Castling(Black) != CastleKingSide {
		t.Fatalf("black rights after a8 captured: got %d", p.Castling(Black))
	}
	if p.Castling(White) != CastleKingSide {
		t.Fatalf("white rights after a1 rook left: got %d", p.Castling(White))
	}
}

func TestCastlingMovesRook(t *testing.T) {
	p, _ := ParseFEN("r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	m, reg, err := p.MakeMoveText("e1g1")
	if err != nil {
		t.Fatal(err)
	}
	if m.Kind != ShortCastle {
		t.Fatalf("e1g1 kind: got %s", m.Kind)
	}
	if p.PieceAt(bitboard.F1) != WhiteRook || p.PieceAt(bitboard.H1) != NoPiece || p.PieceAt(bitboard.G1) != WhiteKing {
		t.Fatalf("castling placed pieces wrong:\n%s", p)
	}
	p.UnmakeMove(m, reg)
	if p.PieceAt(bitboard.H1) != WhiteRook || p.PieceAt(bitboard.E1) != WhiteKing {
		t.Fatalf("unmake castling placed pieces wrong:\n%s", p)
	}
	play(t, p, "e1c1")
	if p.PieceAt(bitboard.D1) != WhiteRook || p.PieceAt(bitboard.A1) != NoPiece {
		t.Fatalf("long castling placed pieces wrong:\n%s", p)
	}
}

func TestEnPassantFileAndClock(t *testing.T) {
	p := NewPosition()
	play(t, p, "g1f3")
	if p.HalfmoveClock() != 1 || p.EnPassantFile() != NoEnPassant {
		t.Fatalf("after Nf3: clock %d ep %d", p.HalfmoveClock(), p.EnPassantFile())
	}
	play(t, p, "d7d5")
	if p.HalfmoveClock() != 0 || p.EnPassantFile() != 3 {
		t.Fatalf("after d5: clock %d ep %d", p.HalfmoveClock(), p.EnPassantFile())
	}
	play(t, p, "b1c3")
	if p.EnPassantFile() != NoEnPassant {
		t.Fatalf("ep file should be cleared, got %d", p.EnPassantFile())
	}
	if p.Ply() != 3 || p.FullmoveNumber() != 2 {
		t.Fatalf("ply %d fullmove %d", p.Ply(), p.FullmoveNumber())
	}
}

func TestEnPassantCapture(t *testing.T) {
	p, _ := ParseFEN("k7/8/8/3pP3/8/8/8/7K w - d6 0 2")
	m, reg, err := p.MakeMoveText("e5d6")
	if err != nil {
		t.Fatal(err)
	}
	if m.Kind != EnPassant || m.Captured != BlackPawn {
		t.Fatalf("e5d6: kind %s captured %s", m.Kind, m.Captured)
	}
	if p.PieceAt(bitboard.D5) != NoPiece || p.PieceAt(bitboard.D6) != WhitePawn {
		t.Fatalf("en passant left the board wrong:\n%s", p)
	}
	if p.PawnKey() != p.Zobrist().PawnKey(p) {
		t.Fatalf("pawn key drifted after en passant")
	}
	p.UnmakeMove(m, reg)
	if p.PieceAt(bitboard.D5) != BlackPawn || p.PieceAt(bitboard.E5) != WhitePawn {
		t.Fatalf("unmake en passant left the board wrong:\n%s", p)
	}
}

func TestPromotionCapture(t *testing.T) {
	p, _ := ParseFEN("1n5k/P7/8/8/8/8/8/7K w - - 0 1")
	m, reg, err := p.MakeMoveText("a7b8n")
	if err != nil {
		t.Fatal(err)
	}
	if p.PieceAt(bitboard.B8) != WhiteKnight || p.Pieces(WhitePawn) != 0 || p.Pieces(BlackKnight) != 0 {
		t.Fatalf("promotion capture wrong:\n%s", p)
	}
	if p.PawnKey() != 0 {
		t.Fatalf("pawn key should be empty with no pawns, got %x", p.PawnKey())
	}
	p.UnmakeMove(m, reg)
	if p.PieceAt(bitboard.A7) != WhitePawn || p.PieceAt(bitboard.B8) != BlackKnight {
		t.Fatalf("unmake promotion wrong:\n%s", p)
	}
}

func TestCheckersTracked(t *testing.T) {
	p := NewPosition()
	play(t, p, "e2e4", "f7f6", "d2d4", "g7g5", "d1h5")
	if !p.InCheck() || p.Checkers() != bitboard.H5.Mask() {
		t.Fatalf("checkers: got %s", bitboard.String(p.Checkers()))
	}
	if p.Status() != Checkmate {
		t.Fatalf("status: got %s want checkmate", p.Status())
	}
}

func TestNullMove(t *testing.T) {
	p, _ := ParseFEN("k7/8/8/3pP3/8/8/8/7K w - d6 0 2")
	before := p.Clone()
	reg := p.MakeNullMove()
	if p.SideToMove() != Black || p.EnPassantFile() != NoEnPassant {
		t.Fatalf("null move: side %s ep %d", p.SideToMove(), p.EnPassantFile())
	}
	if p.Key() != p.Zobrist().Key(p) {
		t.Fatalf("null move key drifted")
	}
	p.UnmakeNullMove(reg)
	if !p.Equal(before) {
		t.Fatalf("null move round trip failed")
	}
}
