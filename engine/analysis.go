package engine

import (
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"hardcoded-chess/hcmg"
)

// Defaults used when no configuration overrides them.
const (
	DefaultMaxDepth        = 7
	DefaultQuiescenceDepth = 6
	DefaultMoveOverhead    = 10 * time.Millisecond

	// MaxSearchDepth bounds both the Max Depth option and per-search overrides.
	MaxSearchDepth = 64
)

// Settings are the tunables read by a search. Start snapshots them, so a
// change only affects the next search.
type Settings struct {
	MaxDepth        int
	QuiescenceDepth int
	MoveOverhead    time.Duration
	ShowRootMoves   bool
	EngineLabel     string
}

func DefaultSettings() Settings {
	return Settings{
		MaxDepth:        DefaultMaxDepth,
		QuiescenceDepth: DefaultQuiescenceDepth,
		MoveOverhead:    DefaultMoveOverhead,
	}
}

// Analysis is one search request and its results. The analyser reads Board,
// MaxTime and MaxDepth when the search starts and writes the remaining fields
// while it runs; read them only after Stop or Wait.
type Analysis struct {
	Board    hcmg.Board
	BestMove hcmg.Move
	Ponder   hcmg.Move // reserved, never filled
	MaxTime  time.Duration
	MaxDepth int // 0 uses the configured Max Depth

	Score int
	Depth int
	PV    []hcmg.Move
	Nodes uint64
	Cuts  CutStatistics
}

// NewAnalysis creates a request for the given position.
func NewAnalysis(board *hcmg.Board) *Analysis {
	return &Analysis{Board: *board}
}

// State of an analyser.
type State int32

const (
	Idle State = iota
	Running
	Stopping
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Stopping:
		return "stopping"
	}
	return fmt.Sprintf("state(%d)", int32(s))
}

// LineWriter serialises whole lines onto the protocol output.
type LineWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func NewLineWriter(w io.Writer) *LineWriter { return &LineWriter{w: w} }

// Println writes the operands followed by a newline.
func (lw *LineWriter) Println(a ...any) {
	lw.mu.Lock()
	defer lw.mu.Unlock()
	fmt.Fprintln(lw.w, a...)
}

// Printf writes one formatted line; the newline is added.
func (lw *LineWriter) Printf(format string, a ...any) {
	lw.mu.Lock()
	defer lw.mu.Unlock()
	fmt.Fprintf(lw.w, format+"\n", a...)
}

// Analyser runs one search at a time on a worker goroutine.
type Analyser struct {
	mu       sync.Mutex
	state    State
	settings Settings
	worker   *errgroup.Group
	stop     atomic.Bool

	out     *LineWriter
	options *Options
}

// NewAnalyser creates an idle analyser printing protocol lines to out.
func NewAnalyser(out *LineWriter, settings Settings) *Analyser {
	a := &Analyser{out: out, settings: settings}
	a.options = a.registerOptions()
	return a
}

// Options returns the option registry bound to this analyser.
func (a *Analyser) Options() *Options { return a.options }

// Output returns the shared protocol writer.
func (a *Analyser) Output() *LineWriter { return a.out }

// Settings returns a copy of the current settings.
func (a *Analyser) Settings() Settings {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.settings
}

func (a *Analyser) updateSettings(fn func(*Settings)) {
	a.mu.Lock()
	fn(&a.settings)
	a.mu.Unlock()
}

// State returns the current lifecycle state.
func (a *Analyser) State() State {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

// Running reports whether a search is in progress.
func (a *Analyser) Running() bool { return a.State() != Idle }

// Start launches a search for analysis. It returns false, changing nothing,
// unless the analyser is idle.
func (a *Analyser) Start(analysis *Analysis) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.state != Idle {
		log.Warn().Stringer("state", a.state).Msg("analysis-already-started")
		return false
	}

	a.state = Running
	a.stop.Store(false)
	board := analysis.Board
	settings := a.settings

	g := &errgroup.Group{}
	g.Go(func() error {
		a.run(analysis, board, settings)
		return nil
	})
	a.worker = g
	return true
}

// Stop asks the running search to finish and waits for it. It returns false
// when there is no search to stop.
func (a *Analyser) Stop() bool {
	a.mu.Lock()
	if a.state != Running {
		state := a.state
		a.mu.Unlock()
		log.Warn().Stringer("state", state).Msg("analysis-not-running")
		return false
	}
	a.state = Stopping
	a.stop.Store(true)
	g := a.worker
	a.mu.Unlock()

	if err := g.Wait(); err != nil {
		log.Err(err).Msg("analysis-worker-error")
	}
	return true
}

// Wait blocks until the current search, if any, has finished on its own.
func (a *Analyser) Wait() {
	a.mu.Lock()
	g := a.worker
	a.mu.Unlock()
	if g != nil {
		_ = g.Wait()
	}
}

// run is the iterative deepening loop executed by the worker.
func (a *Analyser) run(analysis *Analysis, board hcmg.Board, settings Settings) {
	defer func() {
		a.mu.Lock()
		a.state = Idle
		a.mu.Unlock()
	}()

	maxDepth := settings.MaxDepth
	if analysis.MaxDepth > 0 {
		maxDepth = Clamp(analysis.MaxDepth, 1, MaxSearchDepth)
	}
	clock := NewTimeHandler(analysis.MaxTime)
	s := newSearcher(&a.stop, clock, settings, maxDepth, a.out)

	analysis.BestMove = hcmg.NullMove
	analysis.Score, analysis.Depth, analysis.PV, analysis.Nodes = 0, 0, nil, 0
	analysis.Cuts = CutStatistics{}

	log.Debug().
		Str("fen", board.ToFEN()).
		Int("max-depth", maxDepth).
		Dur("budget", analysis.MaxTime).
		Msg("analysis-started")

	hasMoves := board.HasLegalMoves()
	if !hasMoves {
		if board.InCheck() {
			a.out.Printf("info depth 0 score mate 0")
		} else {
			a.out.Printf("info depth 0 score cp 0")
		}
	}

	// Depth 0 runs even when already stopped
	for depth := 0; hasMoves && depth < maxDepth && (depth == 0 || !a.stop.Load()); depth++ {
		began := time.Now()
		scan := s.scanRoot(&board, depth)
		analysis.Nodes += scan.Nodes

		if depth == 0 || scan.Complete {
			analysis.BestMove = scan.Best
			analysis.Score = scan.Score
			analysis.Depth = depth + 1
			analysis.PV = scan.Line()

			elapsed := clock.Elapsed()
			a.out.Printf("info depth %d nodes %d score %s time %d nps %d pv %s",
				analysis.Depth,
				analysis.Nodes,
				getMateOrCPScore(scan.Score, maxDepth),
				elapsed.Milliseconds(),
				NodesPerSecond(analysis.Nodes, elapsed),
				PVLine{Moves: analysis.PV},
			)
		}

		if !clock.CanDeepen(time.Since(began)) {
			break
		}
	}

	// Print the best move value for the engine
	a.out.Printf("bestmove %s", analysis.BestMove)
	log.Debug().
		Str("bestmove", analysis.BestMove.String()).
		Uint64("nodes", analysis.Nodes).
		Object("cuts", s.cuts).
		Dur("elapsed", clock.Elapsed()).
		Msg("analysis-finished")
	analysis.Cuts = s.cuts
}
