package engine

import (
	"hardcoded-chess/hcmg"
)

// quiesce extends the search along captures and promotions until the
// position is quiet or depth runs out. The static evaluation is the stand-pat
// value for the side to move.
func (s *searcher) quiesce(b *hcmg.Board, last hcmg.Move, depth, alpha, beta int, white bool) int {
	s.nodes++

	evaluation := Evaluation(b, last)
	if depth == 0 {
		return evaluation
	}

	// Stand-pat pruning
	if white {
		if evaluation >= beta {
			s.cuts.StandPatCutoffs++
			return beta
		}
		alpha = Max(alpha, evaluation)
	} else {
		if evaluation <= alpha {
			s.cuts.StandPatCutoffs++
			return alpha
		}
		beta = Min(beta, evaluation)
	}

	moves := b.GenerateQuiescenceMovesInto(s.quietBuffers[depth])
	s.quietBuffers[depth] = moves

	value := evaluation
	for _, move := range moves {
		board := *b
		if !board.Play(move) {
			continue
		}

		score := s.quiesce(&board, move, depth-1, alpha, beta, !white)
		if white {
			if score >= beta {
				s.cuts.QuiescenceCutoffs++
				return beta
			}
			if score > alpha {
				alpha = score
				value = score
			}
		} else {
			if score <= alpha {
				s.cuts.QuiescenceCutoffs++
				return alpha
			}
			if score < beta {
				beta = score
				value = score
			}
		}
	}
	return value
}
