package config

import (
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/dshills/keychord/internal/engine"
)

// Duration wraps time.Duration for TOML strings like "300ms".
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Engine holds the [engine] section of a bindings file.
type Engine struct {
	IgnoreTargets   []string `toml:"ignore_targets"`
	SequenceTimeout Duration `toml:"sequence_timeout"`
	HoldTick        Duration `toml:"hold_tick"`
}

// Chord is one [[chord]] entry. A non-zero Hold registers a hold shortcut.
type Chord struct {
	Keys        []string `toml:"keys"`
	Action      string   `toml:"action"`
	Title       string   `toml:"title"`
	Description string   `toml:"description"`
	Hold        Duration `toml:"hold"`
}

// Sequence is one [[sequence]] entry.
type Sequence struct {
	Keys        []string `toml:"keys"`
	Action      string   `toml:"action"`
	Title       string   `toml:"title"`
	Description string   `toml:"description"`
}

// File is a parsed bindings file.
type File struct {
	Engine    Engine     `toml:"engine"`
	Chords    []Chord    `toml:"chord"`
	Sequences []Sequence `toml:"sequence"`
}

// Load reads and parses a bindings file. A missing file is not an error;
// it returns nil, nil.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading bindings file %s: %w", path, err)
	}
	return Parse(data)
}

// Parse parses TOML bindings data.
func Parse(data []byte) (*File, error) {
	var f File
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing bindings: %w", err)
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// Validate checks that every binding names keys and an action.
func (f *File) Validate() error {
	for i, c := range f.Chords {
		if len(c.Keys) == 0 {
			return fmt.Errorf("chord %d: empty keys", i)
		}
		if c.Action == "" {
			return fmt.Errorf("chord %d (%v): empty action", i, c.Keys)
		}
	}
	for i, s := range f.Sequences {
		if len(s.Keys) == 0 {
			return fmt.Errorf("sequence %d: empty keys", i)
		}
		if s.Action == "" {
			return fmt.Errorf("sequence %d (%v): empty action", i, s.Keys)
		}
	}
	return nil
}

// EngineConfig converts the [engine] section to an engine.Config.
// Zero values fall back to the engine defaults.
func (f *File) EngineConfig() engine.Config {
	return engine.Config{
		IgnoreTargets:   f.Engine.IgnoreTargets,
		SequenceTimeout: time.Duration(f.Engine.SequenceTimeout),
		HoldTick:        time.Duration(f.Engine.HoldTick),
	}
}
