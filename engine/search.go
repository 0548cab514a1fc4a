package engine

import (
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"

	"hardcoded-chess/hcmg"
)

// searcher holds the state of one running search. It is owned by the worker
// goroutine; only the stop flag is shared.
type searcher struct {
	stop     *atomic.Bool
	clock    *TimeHandler
	settings Settings
	out      *LineWriter

	nodes uint64
	cuts  CutStatistics

	// Move buffers indexed by remaining depth, reused across iterations.
	moveBuffers  [][]hcmg.Move
	quietBuffers [][]hcmg.Move
}

func newSearcher(stop *atomic.Bool, clock *TimeHandler, settings Settings, maxDepth int, out *LineWriter) *searcher {
	s := &searcher{
		stop:         stop,
		clock:        clock,
		settings:     settings,
		out:          out,
		moveBuffers:  make([][]hcmg.Move, maxDepth+1),
		quietBuffers: make([][]hcmg.Move, settings.QuiescenceDepth+1),
	}
	for i := range s.moveBuffers {
		s.moveBuffers[i] = make([]hcmg.Move, 0, 96)
	}
	for i := range s.quietBuffers {
		s.quietBuffers[i] = make([]hcmg.Move, 0, 32)
	}
	return s
}

// shouldStop reports whether the search was cancelled, raising the flag
// itself once the time budget runs out.
func (s *searcher) shouldStop() bool {
	if s.stop.Load() {
		return true
	}
	if s.clock.TimeStatus() {
		s.stop.Store(true)
		return true
	}
	return false
}

// scanRoot searches every root move to the given depth. The scan is marked
// complete only if no cancellation cut it short.
func (s *searcher) scanRoot(root *hcmg.Board, depth int) Scanner {
	white := root.WhiteToMove()
	scan := Scanner{Score: infinity}
	if white {
		scan.Score = -infinity
	}
	start := s.nodes

	for _, move := range root.GenerateMoves() {
		board := *root
		if !board.Play(move) {
			continue
		}

		// Make sure at least one move is reported
		if !scan.Best.Valid() {
			scan.Best = move
		}

		before := s.nodes
		began := time.Now()
		res := s.search(&board, move, depth, -infinity, infinity, !white)
		if s.stop.Load() && depth > 0 {
			scan.Nodes = s.nodes - start
			return scan
		}

		nodes := s.nodes - before
		nps := NodesPerSecond(nodes, time.Since(began))
		log.Debug().
			Str("move", move.String()).
			Int("score", res.Score).
			Uint64("nodes", nodes).
			Uint64("nps", nps).
			Str("pv", res.PV.String()).
			Msg("root-move-scanned")
		if s.settings.ShowRootMoves {
			s.out.Printf("info string root %s score %d nodes %d nps %d pv %s", move, res.Score, nodes, nps, res.PV)
		}

		if (white && res.Score > scan.Score) || (!white && res.Score < scan.Score) {
			scan.Best = move
			scan.Score = res.Score
			scan.PV = res.PV
		}
	}

	scan.Nodes = s.nodes - start
	scan.Complete = true
	return scan
}

// search is the alpha-beta recursion. white is the side to move at this node;
// white maximises and black minimises the white-relative score.
func (s *searcher) search(b *hcmg.Board, last hcmg.Move, depth, alpha, beta int, white bool) BranchResult {
	s.nodes++

	// Branch zero always evaluates
	if depth == 0 {
		return BranchResult{Score: s.quiesce(b, last, s.settings.QuiescenceDepth, alpha, beta, white)}
	}

	if s.shouldStop() {
		s.cuts.Cancelled++
		return BranchResult{}
	}

	moves := b.GenerateMovesInto(s.moveBuffers[depth])
	s.moveBuffers[depth] = moves

	mate := MateValue * (depth + 1)
	if len(moves) == 0 {
		if b.InCheck() {
			if white {
				return BranchResult{Score: -mate}
			}
			return BranchResult{Score: mate}
		}
		return BranchResult{}
	}

	var result BranchResult
	value := mate
	if white {
		value = -mate
	}

	for _, move := range moves {
		board := *b
		if !board.Play(move) {
			// This should never happen
			continue
		}

		child := s.search(&board, move, depth-1, alpha, beta, !white)
		if white {
			if child.Score > value {
				result.PV.Update(move, child.PV)
				value = child.Score
			}
			if value >= beta {
				s.cuts.BetaCutoffs++
				break
			}
			alpha = Max(alpha, value)
		} else {
			if child.Score < value {
				result.PV.Update(move, child.PV)
				value = child.Score
			}
			if value <= alpha {
				s.cuts.BetaCutoffs++
				break
			}
			beta = Min(beta, value)
		}
	}

	result.Score = value
	return result
}
