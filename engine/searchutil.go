package engine

import (
	"fmt"
	"strings"

	"github.com/samber/lo"

	"hardcoded-chess/hcmg"
)

// =============================================================================
// SCORE CONSTANTS
// =============================================================================
const (
	// MateValue is multiplied by the remaining depth + 1 when a side is mated,
	// so shallower mates score higher.
	MateValue = 10000

	infinity = 1_000_000_000
)

// PVLine is a line of best play.
type PVLine struct {
	Moves []hcmg.Move
}

// Clear the principal variation line.
func (pv *PVLine) Clear() {
	pv.Moves = nil
}

// Update replaces the line with move followed by the child's line.
func (pv *PVLine) Update(move hcmg.Move, child PVLine) {
	moves := make([]hcmg.Move, 0, len(child.Moves)+1)
	moves = append(moves, move)
	pv.Moves = append(moves, child.Moves...)
}

// GetPVMove returns the first move of the line, or the null move.
func (pv PVLine) GetPVMove() hcmg.Move {
	if len(pv.Moves) == 0 {
		return hcmg.NullMove
	}
	return pv.Moves[0]
}

// String renders the line as space separated coordinate moves.
func (pv PVLine) String() string {
	return strings.Join(lo.Map(pv.Moves, func(m hcmg.Move, _ int) string { return m.String() }), " ")
}

// BranchResult is the outcome of searching one subtree: a white-relative score
// and the continuation that produced it. The zero value is the placeholder
// returned by cancelled searches.
type BranchResult struct {
	Score int
	PV    PVLine
}

// Scanner collects the result of one root iteration.
type Scanner struct {
	Best     hcmg.Move
	Score    int
	PV       PVLine // continuation after Best
	Nodes    uint64
	Complete bool
}

// Line returns the best move followed by its continuation.
func (s Scanner) Line() []hcmg.Move {
	if !s.Best.Valid() {
		return nil
	}
	var line PVLine
	line.Update(s.Best, s.PV)
	return line.Moves
}

// getMateOrCPScore formats a score for an info line. Mate scores are
// reported as the distance from the configured depth limit.
func getMateOrCPScore(score, maxDepth int) string {
	if mate := score / MateValue; mate != 0 {
		return fmt.Sprintf("mate %d", maxDepth-Abs(mate)+1)
	}
	return fmt.Sprintf("cp %d", score)
}
