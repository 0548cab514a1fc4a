// Package oracle wraps dragontoothmg as an independent reference move
// generator for cross-checking perft counts and legal move lists.
package oracle

import (
	"github.com/dylhunn/dragontoothmg"
	"golang.org/x/exp/slices"
)

// LegalMoves returns the sorted coordinate text of every legal move in fen.
func LegalMoves(fen string) []string {
	board := dragontoothmg.ParseFen(fen)
	moves := board.GenerateLegalMoves()
	out := make([]string, 0, len(moves))
	for i := range moves {
		out = append(out, moves[i].String())
	}
	slices.Sort(out)
	return out
}

// Perft counts leaf nodes of the reference generator.
func Perft(fen string, depth int) uint64 {
	board := dragontoothmg.ParseFen(fen)
	return perft(&board, depth)
}

// Divide returns per-root-move leaf counts keyed by coordinate text.
func Divide(fen string, depth int) map[string]uint64 {
	board := dragontoothmg.ParseFen(fen)
	out := make(map[string]uint64)
	if depth <= 0 {
		return out
	}
	moves := board.GenerateLegalMoves()
	for i := range moves {
		unapply := board.Apply(moves[i])
		out[moves[i].String()] = perft(&board, depth-1)
		unapply()
	}
	return out
}

func perft(b *dragontoothmg.Board, depth int) uint64 {
	if depth <= 0 {
		return 1
	}
	moves := b.GenerateLegalMoves()
	if depth == 1 {
		return uint64(len(moves))
	}
	var nodes uint64
	for i := range moves {
		unapply := b.Apply(moves[i])
		nodes += perft(b, depth-1)
		unapply()
	}
	return nodes
}
