package config

import (
	"fmt"
	"io"

	"github.com/rs/zerolog"
)

// ParseLevel accepts the level names offered by the Log Level option.
func ParseLevel(name string) (zerolog.Level, error) {
	switch name {
	case "debug":
		return zerolog.DebugLevel, nil
	case "info":
		return zerolog.InfoLevel, nil
	case "warn":
		return zerolog.WarnLevel, nil
	case "error":
		return zerolog.ErrorLevel, nil
	case "disabled":
		return zerolog.Disabled, nil
	}
	return zerolog.NoLevel, fmt.Errorf("%w: unknown log level %q", ErrInvalidConfig, name)
}

// NewLogger sets the global level and returns a logger writing to w.
// Standard output is reserved for the protocol, so w is normally stderr.
// The logger has no level of its own; the Log Level option changes the
// global level at runtime.
func NewLogger(level string, w io.Writer) (zerolog.Logger, error) {
	l, err := ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), err
	}
	zerolog.SetGlobalLevel(l)
	return zerolog.New(w).With().Timestamp().Logger(), nil
}
