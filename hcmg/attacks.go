package hcmg

import "math/bits"

// Precomputed jump masks for knights and kings from each square.
var knightMoves [64]uint64
var kingMoves [64]uint64

// pawnAttacks[color][sq] gives the squares a pawn of 'color' attacks from 'sq'.
var pawnAttacks [2][64]uint64

// Full rook and bishop rays from each square on an empty board.
var rookRays [64]uint64
var bishopRays [64]uint64

// rookShadow[sq][blocker] clears every square behind blocker as seen from sq.
// Squares that are not on a ray from sq map to all ones.
var rookShadow [64][64]uint64
var bishopShadow [64][64]uint64

var rookDirections = [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
var bishopDirections = [4][2]int{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}

func init() {
	initJumpTables()
	initSliderTables(&rookRays, &rookShadow, rookDirections)
	initSliderTables(&bishopRays, &bishopShadow, bishopDirections)
}

// initJumpTables precomputes knight, king and pawn capture masks.
func initJumpTables() {
	knightOffsets := [8][2]int{
		{2, 1}, {2, -1}, {-2, 1}, {-2, -1},
		{1, 2}, {1, -2}, {-1, 2}, {-1, -2},
	}
	kingOffsets := [8][2]int{
		{1, 0}, {-1, 0}, {0, 1}, {0, -1},
		{1, 1}, {1, -1}, {-1, 1}, {-1, -1},
	}
	for sq := 0; sq < 64; sq++ {
		rank, file := sq/8, sq%8
		knightMoves[sq] = offsetMask(rank, file, knightOffsets[:])
		kingMoves[sq] = offsetMask(rank, file, kingOffsets[:])
		pawnAttacks[White][sq] = offsetMask(rank, file, [][2]int{{1, -1}, {1, 1}})
		pawnAttacks[Black][sq] = offsetMask(rank, file, [][2]int{{-1, -1}, {-1, 1}})
	}
}

func offsetMask(rank, file int, offsets [][2]int) uint64 {
	var mask uint64
	for _, off := range offsets {
		r, f := rank+off[0], file+off[1]
		if r >= 0 && r < 8 && f >= 0 && f < 8 {
			mask |= uint64(1) << uint(r*8+f)
		}
	}
	return mask
}

// initSliderTables walks every direction from every square, building the full
// ray and, for each square on it, the mask of everything behind that square.
func initSliderTables(rays *[64]uint64, shadow *[64][64]uint64, dirs [4][2]int) {
	for sq := 0; sq < 64; sq++ {
		for t := 0; t < 64; t++ {
			shadow[sq][t] = ^uint64(0)
		}
		rank, file := sq/8, sq%8
		for _, d := range dirs {
			var path []int
			for r, f := rank+d[0], file+d[1]; r >= 0 && r < 8 && f >= 0 && f < 8; r, f = r+d[0], f+d[1] {
				path = append(path, r*8+f)
			}
			for i, t := range path {
				rays[sq] |= uint64(1) << uint(t)
				var behind uint64
				for _, s := range path[i+1:] {
					behind |= uint64(1) << uint(s)
				}
				shadow[sq][t] = ^behind
			}
		}
	}
}

// ==========================
// Attack lookups
// ==========================

// RookAttacks returns the squares a rook on sq reaches given the occupancy.
// Blocker squares are included. The loop runs once per visible blocker.
func RookAttacks(sq Square, occ uint64) uint64 {
	moves := rookRays[sq]
	check := occ & moves
	shadow := &rookShadow[sq]
	for check != 0 {
		pick := bits.TrailingZeros64(check)
		check &= check - 1
		moves &= shadow[pick]
		check &= shadow[pick]
	}
	return moves
}

// BishopAttacks returns the squares a bishop on sq reaches given the occupancy.
func BishopAttacks(sq Square, occ uint64) uint64 {
	moves := bishopRays[sq]
	check := occ & moves
	shadow := &bishopShadow[sq]
	for check != 0 {
		pick := bits.TrailingZeros64(check)
		check &= check - 1
		moves &= shadow[pick]
		check &= shadow[pick]
	}
	return moves
}

// QueenAttacks reduces the rook and bishop rays in a single loop. The two ray
// sets never share a square, so the check masks are only equal once both are empty.
func QueenAttacks(sq Square, occ uint64) uint64 {
	bMoves, rMoves := bishopRays[sq], rookRays[sq]
	bCheck, rCheck := occ&bMoves, occ&rMoves
	bShadow, rShadow := &bishopShadow[sq], &rookShadow[sq]
	for bCheck != rCheck {
		if bCheck != 0 {
			pick := bits.TrailingZeros64(bCheck)
			bCheck &= bCheck - 1
			bMoves &= bShadow[pick]
			bCheck &= bShadow[pick]
		}
		if rCheck != 0 {
			pick := bits.TrailingZeros64(rCheck)
			rCheck &= rCheck - 1
			rMoves &= rShadow[pick]
			rCheck &= rShadow[pick]
		}
	}
	return bMoves | rMoves
}

func KnightAttacks(sq Square) uint64 { return knightMoves[sq] }

func KingAttacks(sq Square) uint64 { return kingMoves[sq] }

// PawnAttacks returns the capture squares of a pawn of color c standing on sq.
func PawnAttacks(c Color, sq Square) uint64 { return pawnAttacks[c][sq] }

// ==========================
// Attack queries
// ==========================

// IsSquareAttacked reports whether any piece of color 'by' attacks sq.
func (b *Board) IsSquareAttacked(sq Square, by Color) bool {
	own := b.occupancy[by]
	if b.hasKind(RookAttacks(sq, b.all)&own, Rook, Queen) {
		return true
	}
	if b.hasKind(BishopAttacks(sq, b.all)&own, Bishop, Queen) {
		return true
	}
	if b.hasKind(knightMoves[sq]&own, Knight, Knight) {
		return true
	}
	if b.hasKind(kingMoves[sq]&own, King, King) {
		return true
	}
	// A pawn of 'by' attacks sq when a pawn of the other color on sq would attack it back.
	return b.hasKind(pawnAttacks[by.Other()][sq]&own, Pawn, Pawn)
}

// hasKind reports whether any square in mask holds a piece of kind a or kind b.
func (b *Board) hasKind(mask uint64, a, c Piece) bool {
	for mask != 0 {
		k := b.pieces[popLSB(&mask)].Type()
		if k == a || k == c {
			return true
		}
	}
	return false
}

// KingAttacked reports whether the king of side c is attacked. A missing king
// is never attacked.
func (b *Board) KingAttacked(c Color) bool {
	k := b.KingSquare(c)
	if k == NoSquare {
		return false
	}
	return b.IsSquareAttacked(k, c.Other())
}

// InCheck reports whether the side to move is in check.
func (b *Board) InCheck() bool { return b.KingAttacked(b.SideToMove()) }
