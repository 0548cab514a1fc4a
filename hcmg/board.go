package hcmg

import (
	"math/bits"
	"strings"
)

// Piece is a signed piece code. White pieces are positive, black pieces are
// negative and the magnitude selects the kind.
type Piece int8

const (
	NoPiece Piece = 0
	King    Piece = 1
	Queen   Piece = 2
	Bishop  Piece = 3
	Knight  Piece = 4
	Rook    Piece = 5
	Pawn    Piece = 6
)

// Type returns the colorless kind of the piece.
func (p Piece) Type() Piece {
	if p < 0 {
		return -p
	}
	return p
}

// Color returns the side that owns the piece. NoPiece reports White.
func (p Piece) Color() Color {
	if p < 0 {
		return Black
	}
	return White
}

// MakePiece combines a side with a colorless kind.
func MakePiece(c Color, kind Piece) Piece {
	if c == Black {
		return -kind
	}
	return kind
}

type Color uint8

const (
	White Color = 0
	Black Color = 1
)

// Other returns the opposing side.
func (c Color) Other() Color { return c ^ 1 }

func (c Color) String() string {
	if c == Black {
		return "black"
	}
	return "white"
}

// CastlingRights is a bit set of the four castling permissions.
type CastlingRights uint8

const (
	CastleWhiteK CastlingRights = 1 << iota
	CastleWhiteQ
	CastleBlackK
	CastleBlackQ

	CastleWhiteAny = CastleWhiteK | CastleWhiteQ
	CastleBlackAny = CastleBlackK | CastleBlackQ
	CastleAnyK     = CastleWhiteK | CastleBlackK
	CastleAnyQ     = CastleWhiteQ | CastleBlackQ
)

// Square is a board index 0-63 with file = sq & 7 and rank = sq >> 3.
type Square int

const (
	// NoSquare is returned when a lookup finds nothing.
	NoSquare Square = -1
	// NoEnPassant marks the absence of an en-passant target. a1 can never be one.
	NoEnPassant Square = 0
)

func (sq Square) File() int { return int(sq) & 7 }
func (sq Square) Rank() int { return int(sq) >> 3 }

func (sq Square) String() string {
	if sq < 0 || sq > 63 {
		return "-"
	}
	return string([]byte{'a' + byte(sq.File()), '1' + byte(sq.Rank())})
}

// Board is the position. It is a plain value: copying it snapshots the
// position and Play mutates it in place.
type Board struct {
	pieces    [64]Piece
	occupancy [2]uint64
	all       uint64

	// ply & 1 selects the side to move, ply / 2 is the fullmove number.
	ply           int
	halfmoveClock int
	enPassant     Square
	castling      CastlingRights
}

// ==========================
// State accessors
// ==========================

// WhiteToMove reports whether white is on move.
func (b *Board) WhiteToMove() bool { return b.ply&1 == 0 }

// SideToMove reports which side is to play.
func (b *Board) SideToMove() Color { return Color(b.ply & 1) }

// HasCastleRight reports whether every right in flag is still available.
func (b *Board) HasCastleRight(flag CastlingRights) bool { return b.castling&flag == flag }

func (b *Board) CastlingRights() CastlingRights { return b.castling }

// EnPassantSquare returns the en-passant target or NoEnPassant.
func (b *Board) EnPassantSquare() Square { return b.enPassant }

// HalfmoveClock returns plies since the last capture or pawn move.
func (b *Board) HalfmoveClock() int { return b.halfmoveClock }

// FullmoveNumber returns the move counter as written in FEN.
func (b *Board) FullmoveNumber() int { return b.ply / 2 }

// Ply returns the raw ply counter.
func (b *Board) Ply() int { return b.ply }

// PieceAt returns the piece on a square.
func (b *Board) PieceAt(sq Square) Piece { return b.pieces[sq] }

// Occupancy returns the occupancy bitboard of one side.
func (b *Board) Occupancy(c Color) uint64 { return b.occupancy[c] }

// AllOccupancy returns a bitboard of all occupied squares.
func (b *Board) AllOccupancy() uint64 { return b.all }

// KingSquare locates the king of the given side, or NoSquare if it is missing.
func (b *Board) KingSquare(c Color) Square {
	king := MakePiece(c, King)
	mask := b.occupancy[c]
	for mask != 0 {
		sq := popLSB(&mask)
		if b.pieces[sq] == king {
			return Square(sq)
		}
	}
	return NoSquare
}

// ==========================
// Mutation
// ==========================

// SetPiece places p on sq, replacing the previous occupant. It is the only
// writer of the piece array and keeps the occupancy masks in sync.
func (b *Board) SetPiece(sq Square, p Piece) {
	mask := bb(sq)
	old := b.pieces[sq]
	b.pieces[sq] = p
	if old > 0 {
		b.occupancy[White] &^= mask
	} else if old < 0 {
		b.occupancy[Black] &^= mask
	}
	if p > 0 {
		b.occupancy[White] |= mask
	} else if p < 0 {
		b.occupancy[Black] |= mask
	}
	b.all = b.occupancy[White] | b.occupancy[Black]
}

// Validate checks that the piece array and the occupancy masks agree.
func (b *Board) Validate() bool {
	var occ [2]uint64
	for sq := 0; sq < 64; sq++ {
		p := b.pieces[sq]
		if p == NoPiece {
			continue
		}
		if p.Type() > Pawn {
			return false
		}
		occ[p.Color()] |= uint64(1) << uint(sq)
	}
	if occ != b.occupancy {
		return false
	}
	if occ[White]&occ[Black] != 0 {
		return false
	}
	return b.all == occ[White]|occ[Black]
}

// String renders the board as an 8x8 grid, rank 8 first.
func (b *Board) String() string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		sb.WriteByte('1' + byte(rank))
		sb.WriteByte(' ')
		for file := 0; file < 8; file++ {
			c := charFromPiece(b.pieces[rank*8+file])
			if c == 0 {
				c = '.'
			}
			sb.WriteByte(' ')
			sb.WriteByte(c)
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("   a b c d e f g h\n")
	return sb.String()
}

// ==========================
// Bitboard helpers
// ==========================

// bb returns a bitboard with the given square bit set.
func bb(sq Square) uint64 { return 1 << uint64(sq) }

// popLSB removes and returns the least significant set bit from the mask.
func popLSB(mask *uint64) int {
	idx := bits.TrailingZeros64(*mask)
	*mask &= *mask - 1
	return idx
}
