package bitboard

var (
	// Ranks, Files, Diagonals (a1-h8 direction) and AntiDiagonals (h1-a8
	// direction) partition the board; every square is in exactly one of each.
	Ranks         [8]uint64
	Files         [8]uint64
	Diagonals     [15]uint64
	AntiDiagonals [15]uint64

	KnightMoves [64]uint64
	KingMoves   [64]uint64

	// PawnAdvance is the single-step push square, PawnCaptures the two
	// diagonal capture squares, indexed by color (0 white, 1 black).
	PawnAdvance  [2][64]uint64
	PawnCaptures [2][64]uint64

	line    [64][64]uint64
	between [64][64]uint64
)

// DiagonalIndex returns the index into Diagonals for sq.
func DiagonalIndex(sq Square) int { return sq.File() - sq.Rank() + 7 }

// AntiDiagonalIndex returns the index into AntiDiagonals for sq.
func AntiDiagonalIndex(sq Square) int { return sq.File() + sq.Rank() }

func RankOf(sq Square) uint64         { return Ranks[sq.Rank()] }
func FileOf(sq Square) uint64         { return Files[sq.File()] }
func DiagonalOf(sq Square) uint64     { return Diagonals[DiagonalIndex(sq)] }
func AntiDiagonalOf(sq Square) uint64 { return AntiDiagonals[AntiDiagonalIndex(sq)] }

// Line returns the full rank, file or diagonal running through both squares,
// or 0 when they are not aligned.
func Line(a, b Square) uint64 { return line[a][b] }

// Between returns the squares strictly between a and b when they share a
// line, or 0 otherwise.
func Between(a, b Square) uint64 { return between[a][b] }

// Aligned reports whether c lies on the line through a and b.
func Aligned(a, b, c Square) bool { return line[a][b]&c.Mask() != 0 }

var directions = [8]func(uint64) uint64{Up, Down, Right, Left, UpRight, UpLeft, DownRight, DownLeft}

func init() {
	initGeometry()
	initMagics()
}

func initGeometry() {
	for i := 0; i < 8; i++ {
		Files[i] = FileAMask << uint(i)
		Ranks[i] = Rank1Mask << uint(8*i)
	}
	for sq := A1; sq <= H8; sq++ {
		Diagonals[DiagonalIndex(sq)] |= sq.Mask()
		AntiDiagonals[AntiDiagonalIndex(sq)] |= sq.Mask()
	}

	for sq := A1; sq <= H8; sq++ {
		b := sq.Mask()
		KnightMoves[sq] = Right(UpRight(b)) | Up(UpRight(b)) |
			Up(UpLeft(b)) | Left(UpLeft(b)) |
			Left(DownLeft(b)) | Down(DownLeft(b)) |
			Down(DownRight(b)) | Right(DownRight(b))
		KingMoves[sq] = UpRight(b) | Up(b) | UpLeft(b) | Left(b) |
			DownLeft(b) | Down(b) | DownRight(b) | Right(b)

		PawnAdvance[0][sq] = Up(b)
		PawnAdvance[1][sq] = Down(b)
		PawnCaptures[0][sq] = UpLeft(b) | UpRight(b)
		PawnCaptures[1][sq] = DownLeft(b) | DownRight(b)
	}

	for a := A1; a <= H8; a++ {
		for b := A1; b <= H8; b++ {
			if a == b {
				continue
			}
			bm := b.Mask()
			switch {
			case RankOf(a)&bm != 0:
				line[a][b] = RankOf(a)
			case FileOf(a)&bm != 0:
				line[a][b] = FileOf(a)
			case DiagonalOf(a)&bm != 0:
				line[a][b] = DiagonalOf(a)
			case AntiDiagonalOf(a)&bm != 0:
				line[a][b] = AntiDiagonalOf(a)
			}
		}
		am := a.Mask()
		for _, step := range directions {
			var path uint64
			for x := step(am); x != 0; x = step(x) {
				between[a][FirstOne(x)] = path
				path |= x
			}
		}
	}
}
