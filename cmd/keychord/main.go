// Package main is a terminal demonstration host for the keychord engine.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/keychord/internal/config"
	"github.com/dshills/keychord/internal/engine"
	"github.com/dshills/keychord/internal/key"
	"github.com/dshills/keychord/internal/script"
	"github.com/dshills/keychord/internal/shortcut"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	bindingsPath := flag.String("bindings", "", "TOML bindings file")
	scriptPath := flag.String("script", "", "Lua script defining actions")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("keychord %s (%s)\n", version, commit)
		return 0
	}

	quit := make(chan struct{}, 1)
	requestQuit := func() {
		select {
		case quit <- struct{}{}:
		default:
		}
	}

	// Engine configuration comes from the bindings file when present.
	cfg := engine.DefaultConfig()
	var bindings *config.File
	if *bindingsPath != "" {
		f, err := config.Load(*bindingsPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		if f != nil {
			bindings = f
			cfg = f.EngineConfig()
		}
	}

	eng := engine.New(cfg)
	defer eng.Close()

	// Track the most recent dispatch for the status line.
	var statusMu sync.Mutex
	lastFired := ""
	eng.AddHook(engine.HookFuncs{
		PostDispatchFunc: func(s *shortcut.Shortcut, _ *key.Event) {
			statusMu.Lock()
			lastFired = fmt.Sprintf("%s (%s %s)", s.Title, s.Mode, s.KeyString())
			statusMu.Unlock()
		},
	})

	actions := config.Actions{
		"quit": func(*key.Event) { requestQuit() },
	}

	// Script-defined actions extend (but never override) the builtins.
	if *scriptPath != "" {
		scr := script.New()
		defer scr.Close()
		if err := scr.LoadFile(*scriptPath); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		for name, handler := range scr.Actions() {
			if _, exists := actions[name]; !exists {
				actions[name] = handler
			}
		}
	}

	if bindings != nil {
		mgr := config.NewManager(eng, *bindingsPath, actions)
		if _, err := mgr.Load(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		watcher, err := mgr.Watch()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		defer watcher.Close()
	} else {
		registerDefaults(eng, requestQuit)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create screen: %v\n", err)
		return 1
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to init screen: %v\n", err)
		return 1
	}
	defer screen.Fini()

	h := newHost(eng)
	defer h.close()

	// Handle signals for graceful shutdown.
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-signals
		requestQuit()
	}()

	events := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	redraw := time.NewTicker(200 * time.Millisecond)
	defer redraw.Stop()

	for {
		draw(screen, eng, func() string {
			statusMu.Lock()
			defer statusMu.Unlock()
			return lastFired
		}())

		select {
		case <-quit:
			return 0
		case <-redraw.C:
		case ev := <-events:
			switch tev := ev.(type) {
			case *tcell.EventResize:
				screen.Sync()
			case *tcell.EventKey:
				if tev.Key() == tcell.KeyEscape {
					return 0
				}
				if kev := toEvent(tev); kev != nil {
					h.keyDown(kev)
				}
			}
		}
	}
}

// registerDefaults installs a demonstration set when no bindings file
// was given.
func registerDefaults(eng *engine.Engine, requestQuit func()) {
	eng.RegisterChord(func(*key.Event) { requestQuit() },
		[]string{"ctrl+q"}, "Quit", "Exit the demo")
	eng.RegisterChord(func(*key.Event) {},
		[]string{"ctrl+k"}, "Ping", "A chord that does nothing visible")
	eng.RegisterHold(func(*key.Event) {},
		[]string{"space"}, "Push to talk", "Fires while space stays held",
		500*time.Millisecond)
	eng.RegisterSequence(func(*key.Event) {},
		[]string{"g", "g"}, "Go to top", "Vim-style double tap")
}

// draw renders the registry snapshot and dispatch counters.
func draw(screen tcell.Screen, eng *engine.Engine, lastFired string) {
	screen.Clear()

	titleStyle := tcell.StyleDefault.Bold(true)
	dimStyle := tcell.StyleDefault.Foreground(tcell.ColorGray)

	drawText(screen, 0, 0, titleStyle, "keychord demo — Esc to exit")

	m := eng.Metrics().Snapshot()
	drawText(screen, 0, 1, dimStyle, fmt.Sprintf(
		"downs:%d ups:%d repeats:%d chords:%d holds:%d seqs:%d timeouts:%d",
		m.KeyDowns, m.KeyUps, m.SuppressedRepeats,
		m.ChordFires, m.HoldFires, m.SequenceFires, m.SequenceTimeouts))

	if pending := eng.PendingSequence(); pending != "" {
		drawText(screen, 0, 2, tcell.StyleDefault, "pending: "+pending)
	}
	if lastFired != "" {
		drawText(screen, 0, 3, tcell.StyleDefault, "fired: "+lastFired)
	}

	row := 5
	drawText(screen, 0, row, titleStyle, "registered shortcuts")
	row++
	for _, s := range eng.Snapshot() {
		line := fmt.Sprintf("  %-10s %-20s %s", s.Mode, s.KeyString(), s.Title)
		if s.Mode == shortcut.ModeHold {
			line += fmt.Sprintf(" (%s)", s.HoldDuration)
		}
		drawText(screen, 0, row, tcell.StyleDefault, line)
		row++
	}

	screen.Show()
}

// drawText writes a string at the given position.
func drawText(screen tcell.Screen, x, y int, style tcell.Style, text string) {
	for i, r := range text {
		screen.SetContent(x+i, y, r, nil, style)
	}
}
