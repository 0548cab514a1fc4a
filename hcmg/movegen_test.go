package hcmg_test

import (
	"errors"
	"sort"
	"strings"
	"testing"

	"hardcoded-chess/hcmg"
)

func moveTexts(moves []hcmg.Move) []string {
	out := make([]string, 0, len(moves))
	for _, m := range moves {
		out = append(out, m.String())
	}
	sort.Strings(out)
	return out
}

func hasMove(moves []hcmg.Move, text string) bool {
	for _, m := range moves {
		if m.String() == text {
			return true
		}
	}
	return false
}

func TestPinnedPieceCannotMove(t *testing.T) {
	b := hcmg.MustParseFEN("4r2k/8/8/8/8/8/4B3/4K3 w - - 0 1")
	for _, m := range b.GenerateMoves() {
		if m.From() == 12 {
			t.Fatalf("pinned bishop moved: %s", m)
		}
	}
}

func TestPinnedPieceMovesAlongPin(t *testing.T) {
	cases := []struct {
		fen  string
		from hcmg.Square
		want string
	}{
		{"4r2k/8/8/8/8/8/4R3/4K3 w - - 0 1", 12, "e2e3 e2e4 e2e5 e2e6 e2e7 e2e8"},
		{"7k/8/8/8/b7/8/2B5/3K4 w - - 0 1", 10, "c2a4 c2b3"},
	}
	for _, c := range cases {
		var pinned []hcmg.Move
		for _, m := range hcmg.MustParseFEN(c.fen).GenerateMoves() {
			if m.From() == c.from {
				pinned = append(pinned, m)
			}
		}
		if got := strings.Join(moveTexts(pinned), " "); got != c.want {
			t.Fatalf("%s: pinned moves got %s want %s", c.fen, got, c.want)
		}
	}
}

func TestCheckEvasions(t *testing.T) {
	b := hcmg.MustParseFEN("4k3/8/8/8/8/8/3q4/4K3 w - - 0 1")
	got := strings.Join(moveTexts(b.GenerateMoves()), " ")
	if got != "e1d2 e1f1" {
		t.Fatalf("evasions: got %s", got)
	}
}

func TestEnPassant(t *testing.T) {
	b := hcmg.MustParseFEN("rnbqkbnr/ppp1p1pp/8/3pPp2/8/8/PPPP1PPP/RNBQKBNR w KQkq f6 0 3")
	moves := b.GenerateMoves()
	var ep hcmg.Move
	for _, m := range moves {
		if m.IsEnPassant() {
			ep = m
		}
	}
	if ep.String() != "e5f6" {
		t.Fatalf("en passant move: got %s", ep)
	}
	if hasMove(moves, "e5d6") {
		t.Fatalf("en passant generated without a target square")
	}

	if !b.Play(ep) {
		t.Fatalf("en passant rejected")
	}
	if b.PieceAt(37) != hcmg.NoPiece || b.PieceAt(45) != hcmg.Pawn || b.HalfmoveClock() != 0 {
		t.Fatalf("after en passant: %s", b.ToFEN())
	}
}

func TestEnPassantExposingKing(t *testing.T) {
	b := hcmg.MustParseFEN("8/8/8/K2pP2r/8/8/8/7k w - d6 0 1")
	if hasMove(b.GenerateMoves(), "e5d6") {
		t.Fatalf("en passant leaves the king on an open rank")
	}
}

func TestPromotions(t *testing.T) {
	b := hcmg.MustParseFEN("r3k3/1P6/8/8/8/8/8/4K3 w - - 0 1")
	moves := b.GenerateMoves()
	for _, text := range []string{"b7b8n", "b7b8b", "b7b8q", "b7b8r", "b7a8n", "b7a8b", "b7a8q", "b7a8r"} {
		if !hasMove(moves, text) {
			t.Fatalf("missing promotion %s", text)
		}
	}
	if hasMove(moves, "b7b8") || hasMove(moves, "b7c8q") {
		t.Fatalf("bad promotion generated: %v", moveTexts(moves))
	}

	m, err := b.ParseMove("b7a8n")
	if err != nil {
		t.Fatal(err)
	}
	b.Play(m)
	if b.PieceAt(56) != hcmg.Knight || b.PieceAt(49) != hcmg.NoPiece {
		t.Fatalf("after underpromotion: %s", b.ToFEN())
	}
}

func TestPromotionToKingRejected(t *testing.T) {
	b := hcmg.MustParseFEN("4k3/1P6/8/8/8/8/8/4K3 w - - 0 1")
	before := *b
	bad := hcmg.NewMove(49, 57, hcmg.SpecialPromotion|uint8(hcmg.King)<<3|hcmg.PromoteMiddle)
	if b.Play(bad) {
		t.Fatalf("promotion to king accepted")
	}
	if *b != before {
		t.Fatalf("rejected move changed the board")
	}
}

func TestCastling(t *testing.T) {
	b := hcmg.MustParseFEN("r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	moves := b.GenerateMoves()
	if !hasMove(moves, "e1g1") || !hasMove(moves, "e1c1") {
		t.Fatalf("castling missing: %v", moveTexts(moves))
	}

	if err := b.PlayText("e1g1"); err != nil {
		t.Fatal(err)
	}
	if b.PieceAt(6) != hcmg.King || b.PieceAt(5) != hcmg.Rook || b.PieceAt(7) != hcmg.NoPiece {
		t.Fatalf("after O-O: %s", b.ToFEN())
	}
	if b.CastlingRights() != hcmg.CastleBlackAny {
		t.Fatalf("rights after O-O: %b", b.CastlingRights())
	}

	if err := b.PlayText("e8c8"); err != nil {
		t.Fatal(err)
	}
	if b.PieceAt(58) != -hcmg.King || b.PieceAt(59) != -hcmg.Rook || b.PieceAt(56) != hcmg.NoPiece {
		t.Fatalf("after O-O-O: %s", b.ToFEN())
	}
	if b.CastlingRights() != 0 {
		t.Fatalf("rights after both castled: %b", b.CastlingRights())
	}
}

func TestCastlingThroughAttack(t *testing.T) {
	// f1 is covered by the f8 rook.
	b := hcmg.MustParseFEN("4kr2/8/8/8/8/8/8/R3K2R w KQ - 0 1")
	moves := b.GenerateMoves()
	if hasMove(moves, "e1g1") {
		t.Fatalf("castled through an attacked square")
	}
	if !hasMove(moves, "e1c1") {
		t.Fatalf("queenside castling missing")
	}

	// Only the king's squares matter; b1 may be attacked.
	b = hcmg.MustParseFEN("1r2k3/8/8/8/8/8/8/R3K3 w Q - 0 1")
	if !hasMove(b.GenerateMoves(), "e1c1") {
		t.Fatalf("queenside castling blocked by attack on b1")
	}

	// No castling out of check.
	b = hcmg.MustParseFEN("4r1k1/8/8/8/8/8/8/R3K2R w KQ - 0 1")
	for _, m := range b.GenerateMoves() {
		if m.IsCastling() {
			t.Fatalf("castled out of check: %s", m)
		}
	}
}

func TestCastlingNeedsRookAndKingHome(t *testing.T) {
	b := hcmg.MustParseFEN("4k3/8/8/8/8/8/8/4K3 w KQ - 0 1")
	for _, m := range b.GenerateMoves() {
		if m.IsCastling() {
			t.Fatalf("castled without rooks: %s", m)
		}
	}
}

func TestRookCaptureClearsRight(t *testing.T) {
	b := hcmg.MustParseFEN("r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	if err := b.PlayText("a1a8"); err != nil {
		t.Fatal(err)
	}
	if b.CastlingRights() != hcmg.CastleWhiteK|hcmg.CastleBlackK {
		t.Fatalf("rights after Rxa8: %b", b.CastlingRights())
	}
}

func TestDoublePushSetsEnPassant(t *testing.T) {
	b := hcmg.MustParseFEN(hcmg.FENStartPos)
	if err := b.PlayText("e2e4"); err != nil {
		t.Fatal(err)
	}
	if b.EnPassantSquare() != 20 {
		t.Fatalf("en passant after e4: %s", b.EnPassantSquare())
	}
	if err := b.PlayText("g8f6"); err != nil {
		t.Fatal(err)
	}
	if b.EnPassantSquare() != hcmg.NoEnPassant || b.HalfmoveClock() != 1 {
		t.Fatalf("after Nf6: ep=%s clock=%d", b.EnPassantSquare(), b.HalfmoveClock())
	}
}

func TestQuiescenceMovesAreCapturesAndPromotions(t *testing.T) {
	fens := []string{
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"n1n5/PPPk4/8/8/8/8/4Kppp/5N1N b - - 0 1",
		"rnbqkbnr/ppp1p1pp/8/3pPp2/8/8/PPPP1PPP/RNBQKBNR w KQkq f6 0 3",
	}
	for _, fen := range fens {
		b := hcmg.MustParseFEN(fen)
		var want []hcmg.Move
		for _, m := range b.GenerateMoves() {
			if b.PieceAt(m.To()) != hcmg.NoPiece || m.IsEnPassant() || m.IsPromotion() {
				want = append(want, m)
			}
		}
		got := b.GenerateQuiescenceMoves()
		if strings.Join(moveTexts(got), " ") != strings.Join(moveTexts(want), " ") {
			t.Fatalf("%s:\n got  %v\n want %v", fen, moveTexts(got), moveTexts(want))
		}
	}
}

func TestMateAndStalemate(t *testing.T) {
	mate := hcmg.MustParseFEN("rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3")
	if !mate.InCheckmate() || mate.InStalemate() {
		t.Fatalf("fool's mate not detected")
	}
	stale := hcmg.MustParseFEN("7k/5Q2/6K1/8/8/8/8/8 b - - 0 1")
	if !stale.InStalemate() || stale.InCheckmate() {
		t.Fatalf("stalemate not detected")
	}
}

func TestParseMove(t *testing.T) {
	b := hcmg.MustParseFEN(hcmg.FENStartPos)
	m, err := b.ParseMove("g1f3")
	if err != nil {
		t.Fatal(err)
	}
	if m.From() != 6 || m.To() != 21 {
		t.Fatalf("g1f3 decoded as %d-%d", m.From(), m.To())
	}
	if _, err := b.ParseMove("e2e5"); !errors.Is(err, hcmg.ErrIllegalMove) {
		t.Fatalf("e2e5: got %v", err)
	}
	if err := b.PlayText("nonsense"); !errors.Is(err, hcmg.ErrIllegalMove) {
		t.Fatalf("nonsense: got %v", err)
	}
}
