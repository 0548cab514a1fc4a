package uci

import (
	"bufio"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"hardcoded-chess/engine"
	"hardcoded-chess/hcmg"
)

var ErrMalformedGo = errors.New("malformed go command")

// goParams are the limits given to one "go" command.
type goParams struct {
	infinite bool
	moveTime time.Duration
	wTime    time.Duration
	bTime    time.Duration
	wInc     time.Duration
	bInc     time.Duration
	depth    int
	perft    int

	hasMoveTime, hasWTime, hasBTime bool
}

// parseGo reads the subcommands after "go". Unknown subcommands are logged
// and skipped.
func parseGo(command string) (goParams, error) {
	var p goParams
	goScanner := bufio.NewScanner(strings.NewReader(command))
	goScanner.Split(bufio.ScanWords)
	goScanner.Scan() // skip the first token

	number := func(name string) (int, error) {
		if !goScanner.Scan() {
			return 0, fmt.Errorf("%w: %s needs a value", ErrMalformedGo, name)
		}
		n, err := strconv.Atoi(goScanner.Text())
		if err != nil || n < 0 {
			return 0, fmt.Errorf("%w: %s value %q", ErrMalformedGo, name, goScanner.Text())
		}
		return n, nil
	}
	millis := func(name string) (time.Duration, error) {
		n, err := number(name)
		return time.Duration(n) * time.Millisecond, err
	}

	var err error
	for goScanner.Scan() {
		token := strings.ToLower(goScanner.Text())
		switch token {
		case "infinite":
			p.infinite = true
		case "movetime":
			p.moveTime, err = millis(token)
			p.hasMoveTime = true
		case "wtime":
			p.wTime, err = millis(token)
			p.hasWTime = true
		case "btime":
			p.bTime, err = millis(token)
			p.hasBTime = true
		case "winc":
			p.wInc, err = millis(token)
		case "binc":
			p.bInc, err = millis(token)
		case "depth":
			p.depth, err = number(token)
		case "perft":
			p.perft, err = number(token)
		default:
			log.Warn().Str("subcommand", token).Msg("go-unknown-subcommand")
		}
		if err != nil {
			return goParams{}, err
		}
	}
	return p, nil
}

// budget returns the time allowed for the search, 0 meaning unlimited.
func (p goParams) budget(white bool, defaultMoveTime time.Duration) time.Duration {
	switch {
	case p.infinite:
		return 0
	case p.hasMoveTime:
		return p.moveTime
	case white && p.hasWTime:
		return engine.AllocateMoveTime(p.wTime)
	case !white && p.hasBTime:
		return engine.AllocateMoveTime(p.bTime)
	case p.depth > 0:
		return 0
	}
	return defaultMoveTime
}

func (m *Manager) processGo(command string) bool {
	p, err := parseGo(command)
	if err != nil {
		log.Warn().Err(err).Msg("go-rejected")
		return false
	}

	if p.perft > 0 {
		m.printPerft(p.perft)
		return true
	}

	settings := m.analyser.Settings()
	analysis := engine.NewAnalysis(m.board)
	analysis.MaxTime = engine.ApplyOverhead(p.budget(m.board.WhiteToMove(), m.defaultMoveTime), settings.MoveOverhead)
	analysis.MaxDepth = p.depth

	log.Debug().
		Dur("budget", analysis.MaxTime).
		Int("depth", p.depth).
		Bool("infinite", p.infinite).
		Msg("go")

	if !m.analyser.Start(analysis) {
		return false
	}
	m.analysis = analysis
	return true
}

// printPerft prints the leaf count below every root move, then the total.
func (m *Manager) printPerft(depth int) {
	began := time.Now()
	divide := hcmg.PerftDivide(m.board, depth)

	counts := make(map[string]uint64, len(divide))
	for mv, n := range divide {
		counts[mv.String()] = n
	}
	texts := maps.Keys(counts)
	slices.Sort(texts)

	var total uint64
	for _, text := range texts {
		m.out.Printf("%s: %d", text, counts[text])
		total += counts[text]
	}
	m.out.Println()
	m.out.Printf("Nodes searched: %d", total)
	log.Debug().
		Int("depth", depth).
		Uint64("nodes", total).
		Dur("elapsed", time.Since(began)).
		Msg("perft")
}
