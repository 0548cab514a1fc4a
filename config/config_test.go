package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hardcoded-chess/engine"
)

func load(t *testing.T, args ...string) *Config {
	t.Helper()
	cfg := &Config{}
	require.NoError(t, cfg.Load(args))
	return cfg
}

func TestDefaults(t *testing.T) {
	cfg := load(t)
	assert.Equal(t, "info", cfg.GetString(KeyLogLevel))
	assert.Equal(t, engine.DefaultSettings(), cfg.Settings())
	assert.Equal(t, engine.DefaultMoveTime, cfg.DefaultMoveTime())
}

func TestFlags(t *testing.T) {
	cfg := load(t,
		"--max-depth", "4",
		"--quiescence-depth=0",
		"--move-overhead", "25ms",
		"--default-move-time", "2s",
		"--engine-label", "blitz",
		"--show-root-moves",
		"--log-level", "debug",
	)
	assert.Equal(t, engine.Settings{
		MaxDepth:        4,
		QuiescenceDepth: 0,
		MoveOverhead:    25 * time.Millisecond,
		ShowRootMoves:   true,
		EngineLabel:     "blitz",
	}, cfg.Settings())
	assert.Equal(t, 2*time.Second, cfg.DefaultMoveTime())
	assert.Equal(t, "debug", cfg.GetString(KeyLogLevel))
}

func TestEnvironment(t *testing.T) {
	t.Setenv("HCCHESS_MAX_DEPTH", "9")
	t.Setenv("HCCHESS_MOVE_OVERHEAD", "40")
	cfg := load(t)
	assert.Equal(t, 9, cfg.Settings().MaxDepth)
	assert.Equal(t, 40*time.Millisecond, cfg.MoveOverhead())

	// flags win over the environment
	cfg = load(t, "--max-depth", "3")
	assert.Equal(t, 3, cfg.Settings().MaxDepth)
}

func TestConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "engine.yaml")
	content := "max-depth: 5\nmove-overhead: 15\ndefault-move-time: 750ms\nengine-label: from file\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg := load(t, "--config", path, "--engine-label", "from flag")
	s := cfg.Settings()
	assert.Equal(t, 5, s.MaxDepth)
	assert.Equal(t, 15*time.Millisecond, s.MoveOverhead)
	assert.Equal(t, "from flag", s.EngineLabel)
	assert.Equal(t, 750*time.Millisecond, cfg.DefaultMoveTime())
}

func TestInvalid(t *testing.T) {
	for _, args := range [][]string{
		{"--max-depth", "0"},
		{"--max-depth", "65"},
		{"--quiescence-depth", "-1"},
		{"--log-level", "chatty"},
		{"--no-such-flag"},
		{"--config", filepath.Join(t.TempDir(), "missing.yaml")},
	} {
		cfg := &Config{}
		assert.Error(t, cfg.Load(args), "%v", args)
	}

	cfg := &Config{}
	assert.ErrorIs(t, cfg.Load([]string{"--max-depth", "0"}), ErrInvalidConfig)
}

func TestNewLogger(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.GlobalLevel())

	var buf bytes.Buffer
	logger, err := NewLogger("warn", &buf)
	require.NoError(t, err)
	assert.Equal(t, zerolog.WarnLevel, zerolog.GlobalLevel())

	logger.Info().Msg("hidden")
	logger.Warn().Str("fen", "startpos").Msg("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"message":"shown"`)

	_, err = NewLogger("loud", &buf)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestLogLevelOptionRaisesVerbosity(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.GlobalLevel())

	var buf bytes.Buffer
	logger, err := NewLogger("info", &buf)
	require.NoError(t, err)

	logger.Debug().Msg("before")
	assert.Empty(t, buf.String())

	analyser := engine.NewAnalyser(engine.NewLineWriter(&bytes.Buffer{}), engine.DefaultSettings())
	require.NoError(t, analyser.Options().Set("Log Level", "debug"))
	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())

	logger.Debug().Msg("after")
	assert.Contains(t, buf.String(), `"message":"after"`)
	assert.NotContains(t, buf.String(), "before")
}
