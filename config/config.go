// Package config loads engine settings from flags, environment variables and
// an optional YAML file, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"hardcoded-chess/engine"
)

// EnvPrefix prefixes every environment variable, e.g. HCCHESS_MAX_DEPTH.
const EnvPrefix = "HCCHESS"

const (
	KeyLogLevel        = "log-level"
	KeyMaxDepth        = "max-depth"
	KeyQuiescenceDepth = "quiescence-depth"
	KeyMoveOverhead    = "move-overhead"
	KeyDefaultMoveTime = "default-move-time"
	KeyEngineLabel     = "engine-label"
	KeyShowRootMoves   = "show-root-moves"
	KeyConfigFile      = "config"
)

var ErrInvalidConfig = errors.New("invalid configuration")

type Config struct {
	*viper.Viper
}

// Load parses args and merges them with the environment and the config
// file named by --config, if any.
func (c *Config) Load(args []string) error {
	c.Viper = viper.New()

	fs := pflag.NewFlagSet("hcchess", pflag.ContinueOnError)
	fs.String(KeyLogLevel, "info", "log level: disabled, error, warn, info or debug")
	fs.Int(KeyMaxDepth, engine.DefaultMaxDepth, "deepest iteration of a search")
	fs.Int(KeyQuiescenceDepth, engine.DefaultQuiescenceDepth, "capture plies searched past the horizon")
	fs.Duration(KeyMoveOverhead, engine.DefaultMoveOverhead, "time reserved for communication on every move")
	fs.Duration(KeyDefaultMoveTime, engine.DefaultMoveTime, "budget of a go command without limits")
	fs.String(KeyEngineLabel, "", "label appended to the engine name")
	fs.Bool(KeyShowRootMoves, false, "print every root move while searching")
	fs.String(KeyConfigFile, "", "YAML file with any of the settings above")
	if err := fs.Parse(args); err != nil {
		return err
	}

	c.SetEnvPrefix(EnvPrefix)
	c.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	c.AutomaticEnv()
	if err := c.BindPFlags(fs); err != nil {
		return err
	}

	if file := c.GetString(KeyConfigFile); file != "" {
		c.SetConfigFile(file)
		c.SetConfigType("yaml")
		if err := c.ReadInConfig(); err != nil {
			return fmt.Errorf("reading %s: %w", file, err)
		}
	}
	return c.validate()
}

func (c *Config) validate() error {
	if d := c.GetInt(KeyMaxDepth); d < 1 || d > engine.MaxSearchDepth {
		return fmt.Errorf("%w: %s must be in [1, %d], got %d", ErrInvalidConfig, KeyMaxDepth, engine.MaxSearchDepth, d)
	}
	if d := c.GetInt(KeyQuiescenceDepth); d < 0 || d > 32 {
		return fmt.Errorf("%w: %s must be in [0, 32], got %d", ErrInvalidConfig, KeyQuiescenceDepth, d)
	}
	if c.MoveOverhead() < 0 || c.DefaultMoveTime() < 0 {
		return fmt.Errorf("%w: durations must not be negative", ErrInvalidConfig)
	}
	if _, err := ParseLevel(c.GetString(KeyLogLevel)); err != nil {
		return err
	}
	return nil
}

// MoveOverhead accepts a duration ("25ms") or a bare number of milliseconds.
func (c *Config) MoveOverhead() time.Duration {
	return c.millis(KeyMoveOverhead)
}

func (c *Config) DefaultMoveTime() time.Duration {
	return c.millis(KeyDefaultMoveTime)
}

func (c *Config) millis(key string) time.Duration {
	switch v := c.Get(key).(type) {
	case int:
		return time.Duration(v) * time.Millisecond
	case int64:
		return time.Duration(v) * time.Millisecond
	case float64:
		return time.Duration(v * float64(time.Millisecond))
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return time.Duration(n) * time.Millisecond
		}
	}
	return c.GetDuration(key)
}

// Settings converts the configuration into search settings.
func (c *Config) Settings() engine.Settings {
	return engine.Settings{
		MaxDepth:        c.GetInt(KeyMaxDepth),
		QuiescenceDepth: c.GetInt(KeyQuiescenceDepth),
		MoveOverhead:    c.MoveOverhead(),
		ShowRootMoves:   c.GetBool(KeyShowRootMoves),
		EngineLabel:     c.GetString(KeyEngineLabel),
	}
}
