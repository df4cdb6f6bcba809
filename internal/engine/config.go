package engine

import "time"

// Config configures a dispatch engine.
type Config struct {
	// IgnoreTargets lists element tag names on which key events are
	// ignored entirely. Merged with the built-in default ("input").
	IgnoreTargets []string

	// SequenceTimeout is the sliding inactivity window after which the
	// sequence buffer is cleared. Default: 2000ms.
	SequenceTimeout time.Duration

	// HoldTick is the interval of the repeating timer that measures
	// elapsed hold duration. Default: 100ms.
	HoldTick time.Duration
}

// DefaultConfig returns a configuration with the engine defaults.
func DefaultConfig() Config {
	return Config{
		SequenceTimeout: 2000 * time.Millisecond,
		HoldTick:        100 * time.Millisecond,
	}
}

// withDefaults fills zero values from DefaultConfig.
func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.SequenceTimeout <= 0 {
		c.SequenceTimeout = def.SequenceTimeout
	}
	if c.HoldTick <= 0 {
		c.HoldTick = def.HoldTick
	}
	return c
}
