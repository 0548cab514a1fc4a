package hcmg_test

import (
	"testing"

	"lukechampine.com/frand"

	"hardcoded-chess/hcmg"
)

// slowSlider walks each direction square by square.
func slowSlider(sq hcmg.Square, occ uint64, dirs [][2]int) uint64 {
	var out uint64
	for _, d := range dirs {
		r, f := sq.Rank()+d[0], sq.File()+d[1]
		for r >= 0 && r < 8 && f >= 0 && f < 8 {
			bit := uint64(1) << uint(r*8+f)
			out |= bit
			if occ&bit != 0 {
				break
			}
			r, f = r+d[0], f+d[1]
		}
	}
	return out
}

var (
	rookDirs   = [][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
	bishopDirs = [][2]int{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
)

func TestSliderAttacksMatchRayWalk(t *testing.T) {
	for i := 0; i < 2000; i++ {
		occ := frand.Uint64n(^uint64(0)) & frand.Uint64n(^uint64(0))
		sq := hcmg.Square(frand.Intn(64))
		if got, want := hcmg.RookAttacks(sq, occ), slowSlider(sq, occ, rookDirs); got != want {
			t.Fatalf("rook %s occ %x: got %x want %x", sq, occ, got, want)
		}
		if got, want := hcmg.BishopAttacks(sq, occ), slowSlider(sq, occ, bishopDirs); got != want {
			t.Fatalf("bishop %s occ %x: got %x want %x", sq, occ, got, want)
		}
		want := hcmg.RookAttacks(sq, occ) | hcmg.BishopAttacks(sq, occ)
		if got := hcmg.QueenAttacks(sq, occ); got != want {
			t.Fatalf("queen %s occ %x: got %x want %x", sq, occ, got, want)
		}
	}
}

func TestJumpTables(t *testing.T) {
	if got := hcmg.KnightAttacks(0); got != 1<<10|1<<17 {
		t.Fatalf("knight a1: got %x", got)
	}
	if got := hcmg.KingAttacks(63); got != 1<<62|1<<55|1<<54 {
		t.Fatalf("king h8: got %x", got)
	}
	if got := hcmg.PawnAttacks(hcmg.White, 12); got != 1<<19|1<<21 {
		t.Fatalf("white pawn e2: got %x", got)
	}
	if got := hcmg.PawnAttacks(hcmg.Black, 8); got != 1<<1 {
		t.Fatalf("black pawn a2: got %x", got)
	}
}

func TestIsSquareAttacked(t *testing.T) {
	b := hcmg.MustParseFEN("4k3/8/8/3q4/8/8/8/R3K3 w - - 0 1")
	cases := []struct {
		sq   hcmg.Square
		by   hcmg.Color
		want bool
	}{
		{56, hcmg.White, true},  // a8 along the a-file
		{3, hcmg.Black, true},   // d1 down the d-file
		{4, hcmg.Black, false},  // e1 is shielded
		{8, hcmg.Black, true},   // a2 on the d5 diagonal
		{0, hcmg.Black, false},  // a1
		{63, hcmg.Black, false}, // h8
	}
	for _, c := range cases {
		if got := b.IsSquareAttacked(c.sq, c.by); got != c.want {
			t.Fatalf("%s by %s: got %v want %v", c.sq, c.by, got, c.want)
		}
	}
}

func TestKingAttackedWithoutKing(t *testing.T) {
	b := hcmg.MustParseFEN("8/8/8/8/8/8/8/q7 w - - 0 1")
	if b.KingAttacked(hcmg.White) {
		t.Fatalf("missing king reported as attacked")
	}
}
