package uci

import (
	"strings"

	"github.com/rs/zerolog/log"

	"hardcoded-chess/hcmg"
)

// processPosition handles "position startpos|fen <fen> [moves ...]". The new
// position replaces the current one only if every move could be played.
func (m *Manager) processPosition(command string) bool {
	rest := strings.TrimSpace(strings.TrimPrefix(command, "position"))

	var board *hcmg.Board
	switch {
	case rest == "startpos" || strings.HasPrefix(rest, "startpos "):
		board = hcmg.MustParseFEN(hcmg.FENStartPos)
		rest = rest[len("startpos"):]
	case strings.HasPrefix(rest, "fen "):
		fen := rest[len("fen "):]
		b, n, err := hcmg.ParseFEN(fen)
		if err != nil {
			log.Warn().Err(err).Str("fen", fen).Msg("position-invalid-fen")
			return false
		}
		board = b
		rest = fen[n:]
	default:
		log.Warn().Str("command", command).Msg("position-expected-startpos-or-fen")
		return false
	}

	if rest != "" && rest[0] != ' ' {
		log.Warn().Str("rest", rest).Msg("position-trailing-text")
		return false
	}
	fields := strings.Fields(rest)
	if len(fields) > 0 {
		if fields[0] != "moves" {
			log.Warn().Str("rest", rest).Msg("position-expected-moves")
			return false
		}
		for _, text := range fields[1:] {
			if err := board.PlayText(strings.ToLower(text)); err != nil {
				log.Warn().Err(err).Msg("position-move-rejected")
				return false
			}
		}
	}

	m.board = board
	return true
}
