package engine

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
)

var (
	ErrUnknownOption = errors.New("unknown option")
	ErrInvalidValue  = errors.New("invalid option value")
)

// OptionKind is the protocol type of an option.
type OptionKind int

const (
	OptionCheck OptionKind = iota
	OptionSpin
	OptionCombo
	OptionString
	OptionButton
)

func (k OptionKind) String() string {
	switch k {
	case OptionCheck:
		return "check"
	case OptionSpin:
		return "spin"
	case OptionCombo:
		return "combo"
	case OptionString:
		return "string"
	case OptionButton:
		return "button"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Option is a named engine setting. The value is kept as text and validated
// according to Kind.
type Option struct {
	Name     string
	Kind     OptionKind
	Default  string
	Min, Max int
	Vars     []string

	value    string
	onChange func(*Option)
}

func NewCheck(name string, def bool, onChange func(*Option)) *Option {
	d := strconv.FormatBool(def)
	return &Option{Name: name, Kind: OptionCheck, Default: d, value: d, onChange: onChange}
}

func NewSpin(name string, def, min, max int, onChange func(*Option)) *Option {
	d := strconv.Itoa(def)
	return &Option{Name: name, Kind: OptionSpin, Default: d, Min: min, Max: max, value: d, onChange: onChange}
}

func NewCombo(name, def string, vars []string, onChange func(*Option)) *Option {
	return &Option{Name: name, Kind: OptionCombo, Default: def, Vars: vars, value: def, onChange: onChange}
}

func NewString(name, def string, onChange func(*Option)) *Option {
	return &Option{Name: name, Kind: OptionString, Default: def, value: def, onChange: onChange}
}

func NewButton(name string, onChange func(*Option)) *Option {
	return &Option{Name: name, Kind: OptionButton, onChange: onChange}
}

// Value returns the current text value.
func (o *Option) Value() string { return o.value }

// Bool returns the value of a check option.
func (o *Option) Bool() bool { return o.value == "true" }

// Int returns the value of a spin option.
func (o *Option) Int() int {
	n, _ := strconv.Atoi(o.value)
	return n
}

// Set validates and stores value. The change callback only runs on success.
func (o *Option) Set(value string) error {
	switch o.Kind {
	case OptionCheck:
		if value != "true" && value != "false" {
			return fmt.Errorf("%w: check %q takes true or false, got %q", ErrInvalidValue, o.Name, value)
		}
	case OptionSpin:
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%w: spin %q is not a number: %q", ErrInvalidValue, o.Name, value)
		}
		if n < o.Min || n > o.Max {
			return fmt.Errorf("%w: spin %q outside [%d, %d]: %d", ErrInvalidValue, o.Name, o.Min, o.Max, n)
		}
		value = strconv.Itoa(n)
	case OptionCombo:
		if !lo.Contains(o.Vars, value) {
			return fmt.Errorf("%w: combo %q has no element %q", ErrInvalidValue, o.Name, value)
		}
	case OptionButton:
		if value != "" {
			return fmt.Errorf("%w: button %q takes no value, got %q", ErrInvalidValue, o.Name, value)
		}
	}
	o.value = value
	if o.onChange != nil {
		o.onChange(o)
	}
	return nil
}

// Reset restores the default value and notifies the change callback.
// Buttons are not pressed.
func (o *Option) Reset() {
	if o.Kind == OptionButton {
		return
	}
	o.value = o.Default
	if o.onChange != nil {
		o.onChange(o)
	}
}

// String renders the option as announced after "uci".
func (o *Option) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "option name %s type %s", o.Name, o.Kind)
	switch o.Kind {
	case OptionCheck, OptionString:
		fmt.Fprintf(&sb, " default %s", o.Default)
	case OptionSpin:
		fmt.Fprintf(&sb, " default %s min %d max %d", o.Default, o.Min, o.Max)
	case OptionCombo:
		fmt.Fprintf(&sb, " default %s", o.Default)
		for _, v := range o.Vars {
			fmt.Fprintf(&sb, " var %s", v)
		}
	}
	return sb.String()
}

// Options is an ordered option registry.
type Options struct {
	list []*Option
}

func NewOptions(opts ...*Option) *Options {
	return &Options{list: opts}
}

// Add appends an option to the registry.
func (o *Options) Add(opt *Option) { o.list = append(o.list, opt) }

// All returns the options in registration order.
func (o *Options) All() []*Option { return o.list }

// Get looks an option up by exact name.
func (o *Options) Get(name string) (*Option, bool) {
	return lo.Find(o.list, func(opt *Option) bool { return opt.Name == name })
}

// Match returns the option with the longest name that prefixes text.
func (o *Options) Match(text string) (*Option, bool) {
	candidates := lo.Filter(o.list, func(opt *Option, _ int) bool {
		return strings.HasPrefix(text, opt.Name)
	})
	if len(candidates) == 0 {
		return nil, false
	}
	return lo.MaxBy(candidates, func(a, b *Option) bool { return len(a.Name) > len(b.Name) }), true
}

// Set assigns value to the named option.
func (o *Options) Set(name, value string) error {
	opt, ok := o.Get(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownOption, name)
	}
	return opt.Set(value)
}

// ResetAll restores every option to its default.
func (o *Options) ResetAll() {
	for _, opt := range o.list {
		opt.Reset()
	}
}

// Log levels selectable through the Log Level option.
var logLevels = []string{"disabled", "error", "warn", "info", "debug"}

// registerOptions builds the registry and binds each option to the settings.
func (a *Analyser) registerOptions() *Options {
	s := a.settings
	opts := NewOptions(
		NewSpin("Max Depth", s.MaxDepth, 1, MaxSearchDepth, func(o *Option) {
			a.updateSettings(func(s *Settings) { s.MaxDepth = o.Int() })
		}),
		NewSpin("Quiescence Depth", s.QuiescenceDepth, 0, 32, func(o *Option) {
			a.updateSettings(func(s *Settings) { s.QuiescenceDepth = o.Int() })
		}),
		NewSpin("Move Overhead", int(s.MoveOverhead.Milliseconds()), 0, 5000, func(o *Option) {
			a.updateSettings(func(s *Settings) { s.MoveOverhead = time.Duration(o.Int()) * time.Millisecond })
		}),
		NewCombo("Log Level", currentLogLevel(), logLevels, func(o *Option) {
			level, err := zerolog.ParseLevel(o.Value())
			if err != nil {
				log.Err(err).Msg("log-level")
				return
			}
			zerolog.SetGlobalLevel(level)
		}),
		NewCheck("Show Root Moves", s.ShowRootMoves, func(o *Option) {
			a.updateSettings(func(s *Settings) { s.ShowRootMoves = o.Bool() })
		}),
		NewString("Engine Label", s.EngineLabel, func(o *Option) {
			a.updateSettings(func(s *Settings) { s.EngineLabel = o.Value() })
		}),
	)
	opts.Add(NewButton("Reset Options", func(*Option) { opts.ResetAll() }))
	return opts
}

// currentLogLevel maps the global zerolog level onto the Log Level choices.
func currentLogLevel() string {
	switch l := zerolog.GlobalLevel(); {
	case l == zerolog.Disabled:
		return "disabled"
	case l <= zerolog.DebugLevel:
		return "debug"
	default:
		if lo.Contains(logLevels, l.String()) {
			return l.String()
		}
		return "error"
	}
}
