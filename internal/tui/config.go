package tui

import (
	"github.com/Veraticus/the-roast-must-rise/internal/model"
	"github.com/Veraticus/the-roast-must-rise/internal/tui/themes"
)

// CalculatedFunc is called after every successful calculation with the
// inputs that produced it.
type CalculatedFunc func(raw model.RawInputs, results model.PhaseResults) error

// Config holds TUI configuration.
type Config struct {
	Theme        themes.Theme
	Defaults     map[model.Stage]float64
	Initial      model.RawInputs
	OnCalculated CalculatedFunc
	Width        int
	Height       int
	TestMode     bool
}

// Option is a functional option for configuring the TUI.
type Option func(*Config)

// defaultConfig returns the default configuration.
func defaultConfig() Config {
	return Config{
		Theme:  themes.Default,
		Width:  80,
		Height: 24,
	}
}

// WithTheme sets the visual theme.
func WithTheme(theme themes.Theme) Option {
	return func(c *Config) {
		c.Theme = theme
	}
}

// WithDefaults pre-fills temperature fields with remembered values.
func WithDefaults(defaults map[model.Stage]float64) Option {
	return func(c *Config) {
		c.Defaults = defaults
	}
}

// WithInitial pre-fills fields from a snapshot. It wins over WithDefaults.
func WithInitial(raw model.RawInputs) Option {
	return func(c *Config) {
		c.Initial = raw
	}
}

// WithOnCalculated registers a callback for successful calculations.
func WithOnCalculated(fn CalculatedFunc) Option {
	return func(c *Config) {
		c.OnCalculated = fn
	}
}

// WithSize sets the initial terminal size.
func WithSize(width, height int) Option {
	return func(c *Config) {
		c.Width = width
		c.Height = height
	}
}

// WithTestMode disables cursor blinking so updates never schedule timers.
func WithTestMode(enabled bool) Option {
	return func(c *Config) {
		c.TestMode = enabled
	}
}
