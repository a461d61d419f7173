package board

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"chess-position/bitboard"
)

// FENStartPos is the FEN string for the standard initial chess position.
const FENStartPos = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// ErrInvalidFEN is wrapped by every FEN parsing failure.
var ErrInvalidFEN = errors.New("invalid FEN")

func fenError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidFEN, fmt.Sprintf(format, args...))
}

// ParseFEN parses a 4- or 6-field FEN record into a new Position keyed with
// the default Zobrist table. A 4-field record gets clock 0 and move 1.
func ParseFEN(fen string) (*Position, error) {
	return ParseFENWith(fen, defaultZobrist)
}

// ParseFENWith is ParseFEN with an explicit Zobrist table.
func ParseFENWith(fen string, z *Zobrist) (*Position, error) {
	fields := strings.Fields(fen)
	if len(fields) != 4 && len(fields) != 6 {
		return nil, fenError("expected 4 or 6 fields, got %d", len(fields))
	}
	p := &Position{zobrist: z, epFile: NoEnPassant}

	ranks := strings.Split(fields[0], "/")
	if len(ranks) != 8 {
		return nil, fenError("board has %d ranks", len(ranks))
	}
	for i, rank := range ranks {
		r := 7 - i
		f := 0
		for j := 0; j < len(rank); j++ {
			ch := rank[j]
			if ch >= '1' && ch <= '8' {
				f += int(ch - '0')
				continue
			}
			pc := pieceFromChar(ch)
			if pc == NoPiece {
				return nil, fenError("unknown piece %q", ch)
			}
			if f > 7 {
				return nil, fenError("rank %d overflows", r+1)
			}
			p.put(bitboard.NewSquare(f, r), pc)
			f++
		}
		if f != 8 {
			return nil, fenError("rank %d has %d squares", r+1, f)
		}
	}
	p.recomputeDerived()
	if bitboard.PopCount(p.pieces[WhiteKing]) != 1 || bitboard.PopCount(p.pieces[BlackKing]) != 1 {
		return nil, fenError("each side needs exactly one king")
	}
	if (p.pieces[WhitePawn]|p.pieces[BlackPawn])&(bitboard.Rank1Mask|bitboard.Rank8Mask) != 0 {
		return nil, fenError("pawn on first or last rank")
	}

	switch fields[1] {
	case "w":
		p.side = White
	case "b":
		p.side = Black
	default:
		return nil, fenError("side to move %q", fields[1])
	}

	if fields[2] != "-" {
		for _, ch := range fields[2] {
			switch ch {
			case 'K':
				p.castling[White] |= CastleKingSide
			case 'Q':
				p.castling[White] |= CastleQueenSide
			case 'k':
				p.castling[Black] |= CastleKingSide
			case 'q':
				p.castling[Black] |= CastleQueenSide
			default:
				return nil, fenError("castling rights %q", fields[2])
			}
		}
	}
	// Rights without the king and rook at home can never be used.
	p.updateCastlingRights()

	if fields[3] != "-" {
		sq, ok := bitboard.ParseSquare(fields[3])
		if !ok {
			return nil, fenError("en-passant square %q", fields[3])
		}
		if (p.side == White && sq.Rank() != 5) || (p.side == Black && sq.Rank() != 2) {
			return nil, fenError("en-passant square %s on the wrong rank", sq)
		}
		p.epFile = uint8(sq.File())
	}

	if len(fields) == 6 {
		clock, err := strconv.Atoi(fields[4])
		if err != nil {
			return nil, fenError("half-move clock %q", fields[4])
		}
		move, err := strconv.Atoi(fields[5])
		if err != nil {
			return nil, fenError("move number %q", fields[5])
		}
		p.clock = max(clock, 0)
		p.ply = max((move-1)*2, 0)
	}
	if p.side == Black {
		p.ply++
	}

	p.key = z.Key(p)
	p.pawnKey = z.PawnKey(p)
	p.history[0] = p.key
	p.checkers = p.AttackersTo(p.KingSquare(p.side), p.side.Other())
	if p.AttackersTo(p.KingSquare(p.side.Other()), p.side) != 0 {
		return nil, fenError("side not to move is in check")
	}
	return p, nil
}

// FEN serializes the position. The output always has six fields.
func (p *Position) FEN() string {
	var sb strings.Builder
	for r := 7; r >= 0; r-- {
		empty := 0
		for f := 0; f < 8; f++ {
			pc := p.mailbox[bitboard.NewSquare(f, r)]
			if pc == NoPiece {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
				empty = 0
			}
			sb.WriteByte(pc.Char())
		}
		if empty > 0 {
			sb.WriteByte(byte('0' + empty))
		}
		if r > 0 {
			sb.WriteByte('/')
		}
	}
	if p.side == White {
		sb.WriteString(" w ")
	} else {
		sb.WriteString(" b ")
	}
	if p.castling[White]|p.castling[Black] == 0 {
		sb.WriteByte('-')
	} else {
		if p.castling[White]&CastleKingSide != 0 {
			sb.WriteByte('K')
		}
		if p.castling[White]&CastleQueenSide != 0 {
			sb.WriteByte('Q')
		}
		if p.castling[Black]&CastleKingSide != 0 {
			sb.WriteByte('k')
		}
		if p.castling[Black]&CastleQueenSide != 0 {
			sb.WriteByte('q')
		}
	}
	sb.WriteByte(' ')
	sb.WriteString(p.EnPassantSquare().String())
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(p.clock))
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(p.FullmoveNumber()))
	return sb.String()
}
