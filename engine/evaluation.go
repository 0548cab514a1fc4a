package engine

import (
	"math/bits"

	"hardcoded-chess/hcmg"
)

// Piece values indexed by colorless kind (king, queen, bishop, knight, rook, pawn).
var pieceValue = [7]int{0, 0, 900, 300, 300, 500, 100}

const (
	castleRightBonus = 30
	pawnAdvanceBonus = 10
	developmentScale = 3
)

// Home squares that cost a side while still occupied by the original piece.
type homePenalty struct {
	sq      hcmg.Square
	piece   hcmg.Piece
	penalty int
}

var undevelopedWhite = []homePenalty{
	{1, hcmg.Knight, 10},
	{2, hcmg.Bishop, 10},
	{5, hcmg.Bishop, 10},
	{6, hcmg.Knight, 10},
	{11, hcmg.Pawn, 11},
	{12, hcmg.Pawn, 11},
	{4, hcmg.King, 8},
}

var undevelopedBlack = []homePenalty{
	{57, -hcmg.Knight, 10},
	{58, -hcmg.Bishop, 10},
	{61, -hcmg.Bishop, 10},
	{62, -hcmg.Knight, 10},
	{51, -hcmg.Pawn, 11},
	{52, -hcmg.Pawn, 11},
	{60, -hcmg.King, 8},
}

// Evaluation scores the board from white's point of view. last is the move
// that produced the position; retreating moves are penalised for its mover.
func Evaluation(b *hcmg.Board, last hcmg.Move) int {
	return material(b) + nonDeveloping(b) + unDeveloping(b, last)
}

// material counts piece values, pawn advancement and castling rights.
func material(b *hcmg.Board) int {
	score := 0
	if b.HasCastleRight(hcmg.CastleWhiteK) {
		score += castleRightBonus
	}
	if b.HasCastleRight(hcmg.CastleWhiteQ) {
		score += castleRightBonus
	}
	if b.HasCastleRight(hcmg.CastleBlackK) {
		score -= castleRightBonus
	}
	if b.HasCastleRight(hcmg.CastleBlackQ) {
		score -= castleRightBonus
	}

	occ := b.AllOccupancy()
	for occ != 0 {
		sq := hcmg.Square(popLSB(&occ))
		p := b.PieceAt(sq)
		val := pieceValue[p.Type()]
		if p.Type() == hcmg.Pawn {
			if p > 0 {
				val += sq.Rank() * pawnAdvanceBonus
			} else {
				// Mirrors white, so home-rank pawns of both sides score one step
				val += (7 - sq.Rank()) * pawnAdvanceBonus
			}
		}
		if p < 0 {
			val = -val
		}
		score += val
	}
	return score
}

// nonDeveloping penalises pieces still on their starting squares.
func nonDeveloping(b *hcmg.Board) int {
	score := 0
	for _, h := range undevelopedWhite {
		if b.PieceAt(h.sq) == h.piece {
			score -= h.penalty
		}
	}
	for _, h := range undevelopedBlack {
		if b.PieceAt(h.sq) == h.piece {
			score += h.penalty
		}
	}
	return score * developmentScale
}

// unDeveloping penalises minor pieces returning home and any queen or king
// move. The mover is read from the destination square since b is the
// position after the move.
func unDeveloping(b *hcmg.Board, last hcmg.Move) int {
	if !last.Valid() || last.IsCastling() {
		return 0
	}
	to := last.To()
	score := 0
	switch b.PieceAt(to) {
	case hcmg.Knight:
		if to == 1 || to == 6 {
			score -= 10
		}
	case -hcmg.Knight:
		if to == 57 || to == 62 {
			score += 10
		}
	case hcmg.Bishop:
		if to == 2 || to == 5 {
			score -= 10
		}
	case -hcmg.Bishop:
		if to == 58 || to == 61 {
			score += 10
		}
	case hcmg.Queen:
		score -= 5
	case -hcmg.Queen:
		score += 5
	case hcmg.King:
		score -= 15
	case -hcmg.King:
		score += 15
	}
	return score * developmentScale
}

// popLSB removes and returns the index of the lowest set bit.
func popLSB(mask *uint64) int {
	idx := bits.TrailingZeros64(*mask)
	*mask &= *mask - 1
	return idx
}
