package hcmg

import (
	"errors"
	"fmt"
)

// ErrIllegalMove is returned by ParseMove when the text names no legal move.
var ErrIllegalMove = errors.New("illegal move")

// Squares that must be empty for each castling right.
const (
	castlePathWhiteK uint64 = 1<<5 | 1<<6
	castlePathWhiteQ uint64 = 1<<1 | 1<<2 | 1<<3
	castlePathBlackK uint64 = 1<<61 | 1<<62
	castlePathBlackQ uint64 = 1<<57 | 1<<58 | 1<<59
)

var kingHome = [2]Square{4, 60}

// GenerateMoves generates all legal moves for the side to move.
// The legality probe temporarily edits the board, so a Board must not be
// shared between goroutines while generating.
func (b *Board) GenerateMoves() []Move { return b.GenerateMovesInto(make([]Move, 0, 96)) }

// GenerateMovesInto appends legal moves into dst[:0] and returns the result.
func (b *Board) GenerateMovesInto(dst []Move) []Move { return b.generateInto(dst[:0], false) }

// GenerateQuiescenceMoves generates legal captures (en passant included) and promotions.
func (b *Board) GenerateQuiescenceMoves() []Move {
	return b.GenerateQuiescenceMovesInto(make([]Move, 0, 32))
}

// GenerateQuiescenceMovesInto is the buffer-reusing form of GenerateQuiescenceMoves.
func (b *Board) GenerateQuiescenceMovesInto(dst []Move) []Move { return b.generateInto(dst[:0], true) }

// HasLegalMoves reports whether the side to move has any legal moves.
func (b *Board) HasLegalMoves() bool {
	var buf [96]Move
	return len(b.GenerateMovesInto(buf[:0])) > 0
}

// InCheckmate reports whether the side to move is checkmated.
func (b *Board) InCheckmate() bool { return b.InCheck() && !b.HasLegalMoves() }

// InStalemate reports whether the side to move is stalemated.
func (b *Board) InStalemate() bool { return !b.InCheck() && !b.HasLegalMoves() }

// ParseMove resolves coordinate text against the legal moves of the position.
func (b *Board) ParseMove(text string) (Move, error) {
	for _, m := range b.GenerateMoves() {
		if m.String() == text {
			return m, nil
		}
	}
	return NullMove, fmt.Errorf("%w: %q in %s", ErrIllegalMove, text, b.ToFEN())
}

// probeMask returns the origins whose moves need a legality replay. Outside
// of check, only the king and pieces standing on a line or knight jump from
// the king can change whether the king is attacked.
func (b *Board) probeMask(us Color) uint64 {
	k := b.KingSquare(us)
	if k == NoSquare {
		return 0
	}
	if b.IsSquareAttacked(k, us.Other()) {
		return ^uint64(0)
	}
	return knightMoves[k] | QueenAttacks(k, b.occupancy[us]) | bb(k)
}

// generateInto is the core generator. With quiesce set only captures and
// promotions are produced.
func (b *Board) generateInto(moves []Move, quiesce bool) []Move {
	us := b.SideToMove()
	them := us.Other()
	own := b.occupancy[us]
	probe := b.probeMask(us)

	pieces := own
	for pieces != 0 {
		from := Square(popLSB(&pieces))
		kind := b.pieces[from].Type()

		var targets uint64
		switch kind {
		case Knight:
			targets = knightMoves[from] &^ own
		case Bishop:
			targets = BishopAttacks(from, b.all) &^ own
		case Rook:
			targets = RookAttacks(from, b.all) &^ own
		case Queen:
			targets = QueenAttacks(from, b.all) &^ own
		case King:
			targets = kingMoves[from] &^ own
		case Pawn:
			targets = b.pawnTargets(from, us)
		}
		if quiesce {
			targets &= b.occupancy[them]
		}

		needsProbe := bb(from)&probe != 0
		for targets != 0 {
			to := Square(popLSB(&targets))
			if !needsProbe || b.leavesKingSafe(from, to) {
				moves = append(moves, NewMove(from, to, SpecialNormal))
			}
		}

		switch kind {
		case Pawn:
			moves = b.appendPawnSpecials(moves, from, us, needsProbe)
		case King:
			if !quiesce {
				moves = b.appendCastling(moves, from, us)
			}
		}
	}
	return moves
}

// pawnTargets returns pushes and captures for a pawn that is not about to
// promote. Seventh-rank pawns are handled by appendPawnSpecials.
func (b *Board) pawnTargets(from Square, us Color) uint64 {
	rank := from.Rank()
	var step, targets uint64
	if us == White {
		if rank >= 6 {
			return 0
		}
		step = (bb(from) << 8) &^ b.all
		targets = step
		if step != 0 && rank == 1 {
			targets |= (step << 8) &^ b.all
		}
	} else {
		if rank <= 1 {
			return 0
		}
		step = (bb(from) >> 8) &^ b.all
		targets = step
		if step != 0 && rank == 6 {
			targets |= (step >> 8) &^ b.all
		}
	}
	return targets | pawnAttacks[us][from]&b.occupancy[us.Other()]
}

// appendPawnSpecials adds the en-passant capture and the promotions of a pawn.
func (b *Board) appendPawnSpecials(moves []Move, from Square, us Color, needsProbe bool) []Move {
	rank, file := from.Rank(), from.File()
	forward, epRank, epTargetRank, promoRank := 8, 4, 5, 6
	if us == Black {
		forward, epRank, epTargetRank, promoRank = -8, 3, 2, 1
	}

	if rank == epRank && b.enPassant != NoEnPassant && b.enPassant.Rank() == epTargetRank {
		df := b.enPassant.File() - file
		victim := b.enPassant - Square(forward)
		if (df == 1 || df == -1) && b.pieces[victim] == MakePiece(us.Other(), Pawn) {
			if b.enPassantLeavesKingSafe(from, b.enPassant, victim) {
				special := SpecialEnPassant | uint8(b.enPassant)
				moves = append(moves, NewMove(from, b.enPassant, special))
			}
		}
	}

	if rank != promoRank {
		return moves
	}
	ahead := from + Square(forward)
	enemy := b.occupancy[us.Other()]
	// Left and right are seen from white's side of the board.
	if file > 0 && enemy&bb(ahead-1) != 0 {
		moves = b.appendPromotions(moves, from, ahead-1, PromoteLeft, needsProbe)
	}
	if b.all&bb(ahead) == 0 {
		moves = b.appendPromotions(moves, from, ahead, PromoteMiddle, needsProbe)
	}
	if file < 7 && enemy&bb(ahead+1) != 0 {
		moves = b.appendPromotions(moves, from, ahead+1, PromoteRight, needsProbe)
	}
	return moves
}

// appendPromotions probes the pawn relocation once and expands it into one
// move per promotion piece.
func (b *Board) appendPromotions(moves []Move, from, to Square, side uint8, needsProbe bool) []Move {
	if needsProbe && !b.leavesKingSafe(from, to) {
		return moves
	}
	for _, p := range promotionPieces {
		moves = append(moves, NewMove(from, to, SpecialPromotion|uint8(p)<<3|side))
	}
	return moves
}

// appendCastling adds castling moves whose path is empty and whose king
// squares are not attacked.
func (b *Board) appendCastling(moves []Move, from Square, us Color) []Move {
	if from != kingHome[us] {
		return moves
	}
	rook := MakePiece(us, Rook)
	kRight, qRight := CastleWhiteK, CastleWhiteQ
	kPath, qPath := castlePathWhiteK, castlePathWhiteQ
	if us == Black {
		kRight, qRight = CastleBlackK, CastleBlackQ
		kPath, qPath = castlePathBlackK, castlePathBlackQ
	}
	them := us.Other()

	if b.castling&kRight != 0 && b.all&kPath == 0 && b.pieces[from+3] == rook {
		if !b.IsSquareAttacked(from, them) && !b.IsSquareAttacked(from+1, them) && !b.IsSquareAttacked(from+2, them) {
			moves = append(moves, NewMove(from, from+2, SpecialCastling|uint8(kRight)))
		}
	}
	if b.castling&qRight != 0 && b.all&qPath == 0 && b.pieces[from-4] == rook {
		if !b.IsSquareAttacked(from, them) && !b.IsSquareAttacked(from-1, them) && !b.IsSquareAttacked(from-2, them) {
			moves = append(moves, NewMove(from, from-2, SpecialCastling|uint8(qRight)))
		}
	}
	return moves
}

// leavesKingSafe relocates the piece on 'from' to 'to', tests the mover's
// king and restores both cells exactly. The promoted piece is never
// materialised since it does not change the outcome.
func (b *Board) leavesKingSafe(from, to Square) bool {
	moving, captured := b.pieces[from], b.pieces[to]
	b.SetPiece(from, NoPiece)
	b.SetPiece(to, moving)
	safe := !b.KingAttacked(moving.Color())
	b.SetPiece(to, captured)
	b.SetPiece(from, moving)
	return safe
}

// enPassantLeavesKingSafe is leavesKingSafe with the captured pawn removed.
func (b *Board) enPassantLeavesKingSafe(from, to, victim Square) bool {
	moving, captured, old := b.pieces[from], b.pieces[victim], b.pieces[to]
	b.SetPiece(from, NoPiece)
	b.SetPiece(victim, NoPiece)
	b.SetPiece(to, moving)
	safe := !b.KingAttacked(moving.Color())
	b.SetPiece(to, old)
	b.SetPiece(victim, captured)
	b.SetPiece(from, moving)
	return safe
}
