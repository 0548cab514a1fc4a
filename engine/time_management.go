package engine

import (
	"time"
)

// Remaining clock above which a fixed move time is used.
const (
	generousClock  = 100 * time.Second
	generousBudget = 10 * time.Second
)

// DefaultMoveTime is the budget of a "go" without clock or depth limits.
const DefaultMoveTime = 10 * time.Second

// TimeHandler measures a search against its budget. A zero budget never expires.
type TimeHandler struct {
	start  time.Time
	budget time.Duration
}

// NewTimeHandler starts the clock.
func NewTimeHandler(budget time.Duration) *TimeHandler {
	return &TimeHandler{start: time.Now(), budget: budget}
}

func (th *TimeHandler) Budget() time.Duration { return th.budget }

// Elapsed returns the time since the search started.
func (th *TimeHandler) Elapsed() time.Duration { return time.Since(th.start) }

// TimeStatus reports whether a limited budget has been used up.
func (th *TimeHandler) TimeStatus() bool {
	return th.budget > 0 && th.Elapsed() > th.budget
}

// CanDeepen guesses whether another iteration fits, assuming it costs four
// times the last one.
func (th *TimeHandler) CanDeepen(lastIteration time.Duration) bool {
	if th.budget == 0 {
		return true
	}
	return th.Elapsed()+4*lastIteration <= th.budget
}

// NodesPerSecond converts a node count over a duration into a rate.
func NodesPerSecond(nodes uint64, d time.Duration) uint64 {
	if d <= 0 {
		return 0
	}
	return uint64(float64(nodes) / d.Seconds())
}

// AllocateMoveTime picks the budget for one move from the remaining clock of
// the side to move: a tenth of the clock plus a millisecond, or a fixed ten
// seconds when the clock is very long.
func AllocateMoveTime(remaining time.Duration) time.Duration {
	if remaining > generousClock {
		return generousBudget
	}
	return remaining/10 + time.Millisecond
}

// ApplyOverhead subtracts the communication reserve, never going below a millisecond.
func ApplyOverhead(budget, overhead time.Duration) time.Duration {
	if budget == 0 {
		return 0
	}
	return Max(budget-overhead, time.Millisecond)
}
