package engine

import (
	"github.com/rs/zerolog"
)

// CutStatistics counts how often each cutoff fired during one search.
type CutStatistics struct {
	BetaCutoffs       uint64
	StandPatCutoffs   uint64
	QuiescenceCutoffs uint64
	Cancelled         uint64
}

// MarshalZerologObject lets the statistics be logged as one nested object.
func (c CutStatistics) MarshalZerologObject(e *zerolog.Event) {
	e.Uint64("beta", c.BetaCutoffs).
		Uint64("stand-pat", c.StandPatCutoffs).
		Uint64("quiescence", c.QuiescenceCutoffs).
		Uint64("cancelled", c.Cancelled)
}
