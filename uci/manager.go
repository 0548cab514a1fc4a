// Package uci implements the line protocol spoken with chess GUIs.
package uci

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"hardcoded-chess/engine"
	"hardcoded-chess/hcmg"
)

const (
	EngineName   = "HardCodedBot 1.0"
	EngineAuthor = "HardCoded"
)

// Manager dispatches protocol commands to an analyser. Replies go to the
// analyser's output; debug dumps go to diag.
type Manager struct {
	analyser *engine.Analyser
	out      *engine.LineWriter
	diag     io.Writer

	board           *hcmg.Board
	analysis        *engine.Analysis
	defaultMoveTime time.Duration
	running         bool
}

// NewManager creates a dispatcher positioned at the initial position.
func NewManager(analyser *engine.Analyser, diag io.Writer) *Manager {
	return &Manager{
		analyser:        analyser,
		out:             analyser.Output(),
		diag:            diag,
		board:           hcmg.MustParseFEN(hcmg.FENStartPos),
		defaultMoveTime: engine.DefaultMoveTime,
		running:         true,
	}
}

// SetDefaultMoveTime sets the budget used by "go" without limits.
func (m *Manager) SetDefaultMoveTime(d time.Duration) { m.defaultMoveTime = d }

// Board returns a copy of the current position.
func (m *Manager) Board() hcmg.Board { return *m.board }

// Analysis returns the request of the last accepted "go", or nil.
func (m *Manager) Analysis() *engine.Analysis { return m.analysis }

// Running reports whether "quit" has not been received yet.
func (m *Manager) Running() bool { return m.running }

// Run reads commands until "quit" or the end of input. A search still
// running at that point is stopped.
func (m *Manager) Run(in io.Reader) error {
	scanner := bufio.NewScanner(in)
	for m.running && scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" { // ignore blank lines
			continue
		}
		if !m.Process(line) {
			log.Warn().Str("command", line).Msg("command-failed")
		}
	}
	if m.analyser.Running() {
		m.analyser.Stop()
	}
	return scanner.Err()
}

// Process handles one command line and reports whether it was accepted.
func (m *Manager) Process(command string) bool {
	command = strings.TrimSpace(command)
	tokens := strings.Fields(command)
	if len(tokens) == 0 {
		return false
	}

	switch tokens[0] {
	case "uci":
		m.processUCI()
		return true
	case "isready":
		m.out.Println("readyok")
		return true
	case "ucinewgame":
		m.board = hcmg.MustParseFEN(hcmg.FENStartPos)
		return true
	case "stop":
		if m.analyser.Running() {
			m.analyser.Stop()
		}
		return true
	case "quit":
		m.running = false
		return true
	case "go":
		return m.processGo(command)
	case "position":
		return m.processPosition(command)
	case "setoption":
		return m.processSetOption(command)
	}
	if strings.HasPrefix(command, "@") {
		return m.processDebug(command)
	}
	log.Warn().Str("command", command).Msg("unknown-command")
	return false
}

func (m *Manager) processUCI() {
	name := EngineName
	if label := m.analyser.Settings().EngineLabel; label != "" {
		name = fmt.Sprintf("%s (%s)", EngineName, label)
	}
	m.out.Println("id name", name)
	m.out.Println("id author", EngineAuthor)
	for _, opt := range m.analyser.Options().All() {
		m.out.Println(opt.String())
	}
	m.out.Println("uciok")
}

// processSetOption handles "setoption name <key> [value <v>]". The key is the
// longest registered name that prefixes the rest of the line.
func (m *Manager) processSetOption(command string) bool {
	rest, ok := strings.CutPrefix(command, "setoption name ")
	if !ok {
		log.Warn().Str("command", command).Msg("setoption-missing-name")
		return false
	}
	opt, ok := m.analyser.Options().Match(rest)
	if !ok {
		log.Warn().Str("option", rest).Msg("setoption-unknown-option")
		return false
	}
	value := rest[len(opt.Name):]
	if opt.Kind != engine.OptionButton {
		if value, ok = strings.CutPrefix(value, " value "); !ok {
			log.Warn().Str("option", opt.Name).Msg("setoption-missing-value")
			return false
		}
	}
	if err := opt.Set(value); err != nil {
		log.Warn().Err(err).Msg("setoption-rejected")
		return false
	}
	return true
}

func (m *Manager) processDebug(command string) bool {
	switch command {
	case "@debugoptions":
		for _, opt := range m.analyser.Options().All() {
			if opt.Kind == engine.OptionButton {
				fmt.Fprintf(m.diag, "info string [%s] [%s]\n", opt.Name, opt.Kind)
				continue
			}
			fmt.Fprintf(m.diag, "info string [%s] [%s] = %s\n", opt.Name, opt.Kind, opt.Value())
		}
	case "@debugboard":
		fmt.Fprint(m.diag, m.board.String())
	case "@debugfen":
		fmt.Fprintln(m.diag, m.board.ToFEN())
	default:
		log.Warn().Str("command", command).Msg("unknown-debug-command")
		return false
	}
	return true
}
