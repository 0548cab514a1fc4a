package engine

import (
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptionSerialisation(t *testing.T) {
	assert.Equal(t, "option name Ponder type check default false", NewCheck("Ponder", false, nil).String())
	assert.Equal(t, "option name Hash type spin default 256 min 1 max 4096", NewSpin("Hash", 256, 1, 4096, nil).String())
	assert.Equal(t, "option name Style type combo default Beta var Alpha var Beta var Gamma",
		NewCombo("Style", "Beta", []string{"Alpha", "Beta", "Gamma"}, nil).String())
	assert.Equal(t, "option name Label type string default hello world", NewString("Label", "hello world", nil).String())
	assert.Equal(t, "option name Clear Hash type button", NewButton("Clear Hash", nil).String())
}

func TestOptionValidation(t *testing.T) {
	calls := 0
	count := func(*Option) { calls++ }

	check := NewCheck("Ponder", false, count)
	require.NoError(t, check.Set("true"))
	assert.True(t, check.Bool())
	assert.True(t, errors.Is(check.Set("yes"), ErrInvalidValue))
	assert.True(t, check.Bool())

	spin := NewSpin("Hash", 256, 1, 4096, count)
	require.NoError(t, spin.Set("1024"))
	assert.Equal(t, 1024, spin.Int())
	assert.ErrorIs(t, spin.Set("0"), ErrInvalidValue)
	assert.ErrorIs(t, spin.Set("4097"), ErrInvalidValue)
	assert.ErrorIs(t, spin.Set("12abc"), ErrInvalidValue)
	assert.ErrorIs(t, spin.Set(""), ErrInvalidValue)
	assert.Equal(t, 1024, spin.Int())

	combo := NewCombo("Style", "Beta", []string{"Alpha", "Beta"}, count)
	require.NoError(t, combo.Set("Alpha"))
	assert.ErrorIs(t, combo.Set("alpha"), ErrInvalidValue)
	assert.Equal(t, "Alpha", combo.Value())

	str := NewString("Label", "x", count)
	require.NoError(t, str.Set(""))
	assert.Equal(t, "", str.Value())

	button := NewButton("Clear Hash", count)
	require.NoError(t, button.Set(""))
	assert.ErrorIs(t, button.Set("now"), ErrInvalidValue)

	// Only the successful sets fired the callback.
	assert.Equal(t, 5, calls)
}

func TestOptionReset(t *testing.T) {
	var seen []string
	spin := NewSpin("Hash", 256, 1, 4096, func(o *Option) { seen = append(seen, o.Value()) })
	require.NoError(t, spin.Set("8"))
	spin.Reset()
	assert.Equal(t, 256, spin.Int())
	assert.Equal(t, []string{"8", "256"}, seen)

	pressed := false
	NewButton("Go", func(*Option) { pressed = true }).Reset()
	assert.False(t, pressed)
}

func TestOptionsLongestMatch(t *testing.T) {
	opts := NewOptions(
		NewSpin("Move", 1, 0, 10, nil),
		NewSpin("Move Overhead", 10, 0, 100, nil),
		NewCheck("Ponder", false, nil),
	)

	opt, ok := opts.Match("Move Overhead value 30")
	require.True(t, ok)
	assert.Equal(t, "Move Overhead", opt.Name)

	opt, ok = opts.Match("Move value 3")
	require.True(t, ok)
	assert.Equal(t, "Move", opt.Name)

	_, ok = opts.Match("Hash value 3")
	assert.False(t, ok)

	assert.ErrorIs(t, opts.Set("Hash", "3"), ErrUnknownOption)
	require.NoError(t, opts.Set("Move Overhead", "30"))
	got, ok := opts.Get("Move Overhead")
	require.True(t, ok)
	assert.Equal(t, 30, got.Int())
	assert.Len(t, opts.All(), 3)
}

func TestAnalyserOptionsUpdateSettings(t *testing.T) {
	a, _ := newTestAnalyser(DefaultSettings())
	opts := a.Options()

	names := make([]string, 0, len(opts.All()))
	for _, o := range opts.All() {
		names = append(names, o.Name)
	}
	assert.Equal(t, []string{
		"Max Depth", "Quiescence Depth", "Move Overhead", "Log Level",
		"Show Root Moves", "Engine Label", "Reset Options",
	}, names)

	require.NoError(t, opts.Set("Max Depth", "3"))
	require.NoError(t, opts.Set("Quiescence Depth", "2"))
	require.NoError(t, opts.Set("Move Overhead", "50"))
	require.NoError(t, opts.Set("Show Root Moves", "true"))
	require.NoError(t, opts.Set("Engine Label", "sparring"))

	s := a.Settings()
	assert.Equal(t, 3, s.MaxDepth)
	assert.Equal(t, 2, s.QuiescenceDepth)
	assert.Equal(t, 50*time.Millisecond, s.MoveOverhead)
	assert.True(t, s.ShowRootMoves)
	assert.Equal(t, "sparring", s.EngineLabel)

	assert.ErrorIs(t, opts.Set("Max Depth", "0"), ErrInvalidValue)
	assert.Equal(t, 3, a.Settings().MaxDepth)

	require.NoError(t, opts.Set("Reset Options", ""))
	assert.Equal(t, DefaultSettings(), a.Settings())
}

func TestLogLevelOption(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.GlobalLevel())

	a, _ := newTestAnalyser(DefaultSettings())
	require.NoError(t, a.Options().Set("Log Level", "warn"))
	assert.Equal(t, zerolog.WarnLevel, zerolog.GlobalLevel())
	assert.ErrorIs(t, a.Options().Set("Log Level", "verbose"), ErrInvalidValue)
	assert.Equal(t, zerolog.WarnLevel, zerolog.GlobalLevel())
}
