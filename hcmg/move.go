package hcmg

// Move encodes a chess move in a 32-bit value.
type Move uint32

// Bitfield layout within Move (from LSB to MSB)
const (
	moveFromShift    = 0  // 6 bits
	moveToShift      = 6  // 6 bits
	moveSpecialShift = 12 // 8 bits
	moveValidShift   = 20 // 1 bit
)

// NullMove is never legal and renders as "0000".
const NullMove Move = 0

// Special move kinds, stored in the two high bits of the special field.
const (
	SpecialNormal    uint8 = 0x00
	SpecialEnPassant uint8 = 0x40
	SpecialPromotion uint8 = 0x80
	SpecialCastling  uint8 = 0xC0

	specialKindMask uint8 = 0xC0
)

// Capture side of a promotion, stored in the low three bits of the special field.
const (
	PromoteLeft   uint8 = 1
	PromoteRight  uint8 = 2
	PromoteMiddle uint8 = 4
)

// promotionPieces is the expansion order for every promotion target.
var promotionPieces = [4]Piece{Knight, Bishop, Queen, Rook}

// PackMove builds a move from its four fields. No validation is performed.
func PackMove(from, to Square, special uint8, valid bool) Move {
	m := uint32(from&0x3F)<<moveFromShift |
		uint32(to&0x3F)<<moveToShift |
		uint32(special)<<moveSpecialShift
	if valid {
		m |= 1 << moveValidShift
	}
	return Move(m)
}

// NewMove builds a valid move.
func NewMove(from, to Square, special uint8) Move { return PackMove(from, to, special, true) }

// From returns the source square of the move.
func (m Move) From() Square { return Square((uint32(m) >> moveFromShift) & 0x3F) }

// To returns the destination square of the move.
func (m Move) To() Square { return Square((uint32(m) >> moveToShift) & 0x3F) }

// Special returns the raw special field.
func (m Move) Special() uint8 { return uint8(uint32(m) >> moveSpecialShift) }

// Valid reports whether the valid bit is set.
func (m Move) Valid() bool { return (uint32(m)>>moveValidShift)&1 == 1 }

// Kind returns one of SpecialNormal, SpecialEnPassant, SpecialPromotion or SpecialCastling.
func (m Move) Kind() uint8 { return m.Special() & specialKindMask }

func (m Move) IsPromotion() bool { return m.Kind() == SpecialPromotion }
func (m Move) IsCastling() bool  { return m.Kind() == SpecialCastling }
func (m Move) IsEnPassant() bool { return m.Kind() == SpecialEnPassant }

// PromotionPiece returns the colorless promoted kind, or NoPiece for other moves.
func (m Move) PromotionPiece() Piece {
	if !m.IsPromotion() {
		return NoPiece
	}
	return Piece((m.Special() >> 3) & 0x7)
}

// CastlingRight returns the right a castling move consumes.
func (m Move) CastlingRight() CastlingRights {
	if !m.IsCastling() {
		return 0
	}
	return CastlingRights(m.Special() & 0x0F)
}

// String renders the move in coordinate notation (e.g. "e2e4", "e7e8q").
func (m Move) String() string {
	if !m.Valid() {
		return "0000"
	}
	from, to := m.From(), m.To()
	buf := []byte{
		'a' + byte(from.File()), '1' + byte(from.Rank()),
		'a' + byte(to.File()), '1' + byte(to.Rank()),
	}
	switch m.PromotionPiece() {
	case Knight:
		buf = append(buf, 'n')
	case Bishop:
		buf = append(buf, 'b')
	case Queen:
		buf = append(buf, 'q')
	case Rook:
		buf = append(buf, 'r')
	}
	return string(buf)
}
