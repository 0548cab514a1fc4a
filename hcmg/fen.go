package hcmg

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// FENStartPos is the FEN string for the standard initial chess position.
const FENStartPos = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// Import errors, one per failure point. They are wrapped with the offset at
// which parsing stopped.
var (
	ErrInvalidFile      = errors.New("rank does not have 8 files")
	ErrInvalidCharacter = errors.New("invalid piece character")
	ErrFileOutOfBounds  = errors.New("file out of bounds")
	ErrRankOutOfBounds  = errors.New("rank out of bounds")
	ErrInvalidBoard     = errors.New("incomplete board")
	ErrInvalidTurn      = errors.New("side to move must be 'w' or 'b'")
	ErrInvalidFormat    = errors.New("invalid format")
)

// pieceFromChar converts a FEN character to the corresponding Piece.
func pieceFromChar(ch byte) Piece {
	switch ch {
	case 'K':
		return King
	case 'Q':
		return Queen
	case 'B':
		return Bishop
	case 'N':
		return Knight
	case 'R':
		return Rook
	case 'P':
		return Pawn
	case 'k':
		return -King
	case 'q':
		return -Queen
	case 'b':
		return -Bishop
	case 'n':
		return -Knight
	case 'r':
		return -Rook
	case 'p':
		return -Pawn
	}
	return NoPiece
}

// charFromPiece converts a Piece to its FEN character, or 0 for NoPiece.
func charFromPiece(p Piece) byte {
	const letters = "kqbnrp"
	t := p.Type()
	if t < King || t > Pawn {
		return 0
	}
	c := letters[t-1]
	if p > 0 {
		c -= 'a' - 'A'
	}
	return c
}

type fenReader struct {
	text string
	pos  int
}

// peek returns the next byte or 0 at the end of the input.
func (r *fenReader) peek() byte {
	if r.pos >= len(r.text) {
		return 0
	}
	return r.text[r.pos]
}

func (r *fenReader) next() byte {
	c := r.peek()
	r.pos++
	return c
}

func (r *fenReader) fail(err error) error {
	return fmt.Errorf("fen offset %d: %w", r.pos, err)
}

// number reads a run of decimal digits.
func (r *fenReader) number() (int, error) {
	start := r.pos
	for c := r.peek(); c >= '0' && c <= '9'; c = r.peek() {
		r.pos++
	}
	if start == r.pos {
		return 0, r.fail(ErrInvalidFormat)
	}
	n, err := strconv.Atoi(r.text[start:r.pos])
	if err != nil {
		return 0, r.fail(ErrInvalidFormat)
	}
	return n, nil
}

// clockFollows reports whether a space and a digit come next.
func (r *fenReader) clockFollows() bool {
	return r.pos+1 < len(r.text) && r.text[r.pos] == ' ' && r.text[r.pos+1] >= '0' && r.text[r.pos+1] <= '9'
}

// ParseFEN parses a FEN record and returns the board together with the number
// of bytes consumed, so callers can continue reading after it. The clock
// fields may be omitted, defaulting to "0 1". No board is returned on error.
func ParseFEN(text string) (*Board, int, error) {
	r := &fenReader{text: text}
	board := &Board{}

	// 1. Piece placement
	rank, file := 0, 0
	for {
		c := r.next()
		if c == '/' {
			if file != 8 {
				return nil, r.pos, r.fail(ErrInvalidFile)
			}
			if rank++; rank > 7 {
				return nil, r.pos, r.fail(ErrRankOutOfBounds)
			}
			file = 0
			continue
		}
		if c == ' ' {
			if file != 8 || rank != 7 {
				return nil, r.pos, r.fail(ErrInvalidBoard)
			}
			break
		}
		if c == 0 {
			return nil, r.pos, r.fail(ErrInvalidBoard)
		}
		switch {
		case c >= '1' && c <= '8':
			file += int(c - '0')
		case pieceFromChar(c) != NoPiece:
			if file < 8 {
				board.SetPiece(Square((7-rank)*8+file), pieceFromChar(c))
			}
			file++
		default:
			return nil, r.pos, r.fail(ErrInvalidCharacter)
		}
		if file > 8 {
			return nil, r.pos, r.fail(ErrFileOutOfBounds)
		}
	}

	// 2. Side to move
	side := 0
	switch r.next() {
	case 'w':
	case 'b':
		side = 1
	default:
		return nil, r.pos, r.fail(ErrInvalidTurn)
	}
	if r.next() != ' ' {
		return nil, r.pos, r.fail(ErrInvalidFormat)
	}

	// 3. Castling rights, any subset of KQkq in any order
	if r.peek() == '-' {
		r.pos++
	} else {
		for c := r.peek(); c != ' ' && c != 0; c = r.peek() {
			var flag CastlingRights
			switch c {
			case 'K':
				flag = CastleWhiteK
			case 'Q':
				flag = CastleWhiteQ
			case 'k':
				flag = CastleBlackK
			case 'q':
				flag = CastleBlackQ
			default:
				return nil, r.pos, r.fail(ErrInvalidFormat)
			}
			if board.castling&flag != 0 {
				return nil, r.pos, r.fail(ErrInvalidFormat)
			}
			board.castling |= flag
			r.pos++
		}
		if board.castling == 0 {
			return nil, r.pos, r.fail(ErrInvalidFormat)
		}
	}
	if r.next() != ' ' {
		return nil, r.pos, r.fail(ErrInvalidFormat)
	}

	// 4. En passant target square
	if r.peek() == '-' {
		r.pos++
	} else {
		f, rk := r.next(), r.next()
		if f < 'a' || f > 'h' || rk < '1' || rk > '8' {
			return nil, r.pos, r.fail(ErrInvalidFormat)
		}
		board.enPassant = Square(int(rk-'1')*8 + int(f-'a'))
	}

	// 5. Halfmove clock and 6. fullmove number
	fullmove := 1
	if r.clockFollows() {
		r.pos++
		n, err := r.number()
		if err != nil {
			return nil, r.pos, err
		}
		board.halfmoveClock = n
		if r.clockFollows() {
			r.pos++
			if fullmove, err = r.number(); err != nil {
				return nil, r.pos, err
			}
		}
	}
	board.ply = 2*fullmove + side
	return board, r.pos, nil
}

// MustParseFEN is ParseFEN for trusted input. It panics on error.
func MustParseFEN(text string) *Board {
	b, _, err := ParseFEN(text)
	if err != nil {
		panic(err)
	}
	return b
}

// ToFEN produces the FEN string of the board. Castling rights are written in KQkq order.
func (b *Board) ToFEN() string {
	var sb strings.Builder

	// 1. Piece placement
	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			c := charFromPiece(b.pieces[rank*8+file])
			if c == 0 {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte('0' + byte(empty))
				empty = 0
			}
			sb.WriteByte(c)
		}
		if empty > 0 {
			sb.WriteByte('0' + byte(empty))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}

	// 2. Side to move
	if b.WhiteToMove() {
		sb.WriteString(" w ")
	} else {
		sb.WriteString(" b ")
	}

	// 3. Castling rights
	if b.castling == 0 {
		sb.WriteByte('-')
	} else {
		for i, c := range "KQkq" {
			if b.castling&(1<<uint(i)) != 0 {
				sb.WriteRune(c)
			}
		}
	}
	sb.WriteByte(' ')

	// 4. En passant square
	if b.enPassant == NoEnPassant {
		sb.WriteByte('-')
	} else {
		sb.WriteString(b.enPassant.String())
	}

	// 5. Halfmove clock, 6. fullmove number
	fmt.Fprintf(&sb, " %d %d", b.halfmoveClock, b.FullmoveNumber())
	return sb.String()
}
