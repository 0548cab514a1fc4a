package hcmg

// castleMask[sq] is the set of rights lost when a move starts or ends on sq.
var castleMask [64]CastlingRights

func init() {
	castleMask[0] = CastleWhiteQ
	castleMask[7] = CastleWhiteK
	castleMask[4] = CastleWhiteAny
	castleMask[56] = CastleBlackQ
	castleMask[63] = CastleBlackK
	castleMask[60] = CastleBlackAny
}

// Play applies m to the board in place. It returns false, leaving the board
// untouched, only when a promotion names a piece that cannot be promoted to.
// Moves are trusted to come from the generator; no other check is made.
func (b *Board) Play(m Move) bool {
	from, to := m.From(), m.To()
	us := b.SideToMove()
	forward := Square(8)
	if us == Black {
		forward = -8
	}

	nextClock := b.halfmoveClock + 1
	nextEnPassant := NoEnPassant

	switch m.Kind() {
	case SpecialNormal:
		moving, captured := b.pieces[from], b.pieces[to]
		if moving.Type() == Pawn {
			nextClock = 0
			if d := to - from; d == 16 || d == -16 {
				nextEnPassant = from + forward
			}
		}
		if captured != NoPiece {
			nextClock = 0
		}
		b.castling &^= castleMask[from] | castleMask[to]
		b.SetPiece(from, NoPiece)
		b.SetPiece(to, moving)

	case SpecialCastling:
		king, rook := MakePiece(us, King), MakePiece(us, Rook)
		if m.CastlingRight()&CastleAnyK != 0 {
			b.SetPiece(from+3, NoPiece)
			b.SetPiece(from+2, king)
			b.SetPiece(from+1, rook)
		} else {
			b.SetPiece(from-4, NoPiece)
			b.SetPiece(from-2, king)
			b.SetPiece(from-1, rook)
		}
		b.SetPiece(from, NoPiece)
		b.castling &^= castleMask[from]

	case SpecialEnPassant:
		moving := b.pieces[from]
		nextClock = 0
		b.SetPiece(from, NoPiece)
		b.SetPiece(to-forward, NoPiece)
		b.SetPiece(to, moving)

	case SpecialPromotion:
		kind := m.PromotionPiece()
		switch kind {
		case Queen, Rook, Bishop, Knight:
		default:
			return false
		}
		nextClock = 0
		b.castling &^= castleMask[to]
		b.SetPiece(from, NoPiece)
		b.SetPiece(to, MakePiece(us, kind))
	}

	b.halfmoveClock = nextClock
	b.enPassant = nextEnPassant
	b.ply++
	return true
}

// PlayText parses and plays a coordinate move.
func (b *Board) PlayText(text string) error {
	m, err := b.ParseMove(text)
	if err != nil {
		return err
	}
	b.Play(m)
	return nil
}
