package config

import (
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dshills/keychord/internal/engine"
	"github.com/dshills/keychord/internal/key"
	"github.com/dshills/keychord/internal/shortcut"
)

const testBindings = `
[engine]
ignore_targets = ["textarea"]
sequence_timeout = "1500ms"
hold_tick = "50ms"

[[chord]]
keys = ["ctrl+s"]
action = "save"
title = "Save"
description = "Write the buffer"

[[chord]]
keys = ["space"]
action = "talk"
title = "Push to talk"
hold = "300ms"

[[sequence]]
keys = ["g", "g"]
action = "top"
title = "Go to top"
`

func TestParse(t *testing.T) {
	f, err := Parse([]byte(testBindings))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}

	if len(f.Chords) != 2 {
		t.Fatalf("chords = %d, want 2", len(f.Chords))
	}
	if len(f.Sequences) != 1 {
		t.Fatalf("sequences = %d, want 1", len(f.Sequences))
	}
	if f.Chords[0].Action != "save" || f.Chords[0].Keys[0] != "ctrl+s" {
		t.Errorf("chord 0 = %+v", f.Chords[0])
	}
	if time.Duration(f.Chords[1].Hold) != 300*time.Millisecond {
		t.Errorf("hold duration = %v, want 300ms", time.Duration(f.Chords[1].Hold))
	}

	cfg := f.EngineConfig()
	if cfg.SequenceTimeout != 1500*time.Millisecond {
		t.Errorf("SequenceTimeout = %v, want 1.5s", cfg.SequenceTimeout)
	}
	if cfg.HoldTick != 50*time.Millisecond {
		t.Errorf("HoldTick = %v, want 50ms", cfg.HoldTick)
	}
	if len(cfg.IgnoreTargets) != 1 || cfg.IgnoreTargets[0] != "textarea" {
		t.Errorf("IgnoreTargets = %v", cfg.IgnoreTargets)
	}
}

func TestParseValidation(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"chord without keys", "[[chord]]\naction = \"save\"\n"},
		{"chord without action", "[[chord]]\nkeys = [\"ctrl+s\"]\n"},
		{"sequence without keys", "[[sequence]]\naction = \"top\"\n"},
		{"sequence without action", "[[sequence]]\nkeys = [\"g\"]\n"},
		{"bad duration", "[[chord]]\nkeys = [\"a\"]\naction = \"x\"\nhold = \"soon\"\n"},
	}

	for _, tt := range tests {
		if _, err := Parse([]byte(tt.data)); err == nil {
			t.Errorf("%s: Parse() should fail", tt.name)
		}
	}
}

func TestLoadMissingFile(t *testing.T) {
	f, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("missing file should not be an error: %v", err)
	}
	if f != nil {
		t.Error("missing file should load as nil")
	}
}

func writeBindings(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "bindings.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestManagerLoad(t *testing.T) {
	path := writeBindings(t, t.TempDir(), testBindings)

	eng := engine.New(engine.DefaultConfig())
	defer eng.Close()

	var saves atomic.Int32
	actions := Actions{
		"save": func(*key.Event) { saves.Add(1) },
		"talk": func(*key.Event) {},
		// "top" intentionally missing: the sequence entry is skipped.
	}

	m := NewManager(eng, path, actions)
	n, err := m.Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if n != 2 {
		t.Errorf("registered = %d, want 2 (unknown action skipped)", n)
	}

	snap := eng.Snapshot()
	if len(snap) != 2 {
		t.Fatalf("snapshot length = %d, want 2", len(snap))
	}

	var modes []shortcut.Mode
	for _, s := range snap {
		modes = append(modes, s.Mode)
	}
	if modes[0] != shortcut.ModeChord || modes[1] != shortcut.ModeHold {
		t.Errorf("modes = %v, want [chord hold]", modes)
	}

	eng.OnKeyDown(key.NewEvent("s", true, false, false))
	if saves.Load() != 1 {
		t.Errorf("save handler calls = %d, want 1", saves.Load())
	}
	eng.OnKeyUp(key.NewEvent("s", true, false, false))
}

func TestManagerReload(t *testing.T) {
	dir := t.TempDir()
	path := writeBindings(t, dir, testBindings)

	eng := engine.New(engine.DefaultConfig())
	defer eng.Close()

	actions := Actions{
		"save": func(*key.Event) {},
		"talk": func(*key.Event) {},
		"quit": func(*key.Event) {},
	}

	m := NewManager(eng, path, actions)
	if _, err := m.Load(); err != nil {
		t.Fatal(err)
	}

	writeBindings(t, dir, `
[[chord]]
keys = ["ctrl+q"]
action = "quit"
title = "Quit"
`)

	n, err := m.Reload()
	if err != nil {
		t.Fatalf("Reload() error: %v", err)
	}
	if n != 1 {
		t.Errorf("registered after reload = %d, want 1", n)
	}

	snap := eng.Snapshot()
	if len(snap) != 1 || snap[0].Keys[0] != "ctrl+q" {
		t.Errorf("snapshot after reload = %+v, want only ctrl+q", snap)
	}
}

func TestWatcherReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := writeBindings(t, dir, testBindings)

	eng := engine.New(engine.DefaultConfig())
	defer eng.Close()

	m := NewManager(eng, path, Actions{
		"save": func(*key.Event) {},
		"talk": func(*key.Event) {},
		"top":  func(*key.Event) {},
	})
	if _, err := m.Load(); err != nil {
		t.Fatal(err)
	}

	w, err := m.Watch()
	if err != nil {
		t.Fatalf("Watch() error: %v", err)
	}
	defer w.Close()

	writeBindings(t, dir, `
[[chord]]
keys = ["ctrl+s"]
action = "save"
title = "Save"
`)

	select {
	case n := <-w.Reloads():
		if n != 1 {
			t.Errorf("reloaded bindings = %d, want 1", n)
		}
	case err := <-w.Errors():
		t.Fatalf("watcher error: %v", err)
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for reload")
	}

	snap := eng.Snapshot()
	if len(snap) != 1 {
		t.Errorf("snapshot after watched reload = %d entries, want 1", len(snap))
	}
}
