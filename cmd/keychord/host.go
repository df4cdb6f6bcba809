package main

import (
	"strings"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/keychord/internal/engine"
	"github.com/dshills/keychord/internal/key"
)

// releaseDelay is how long after the last terminal key event a key is
// considered released. Terminal hosts only report key-downs; auto-repeat
// keeps refreshing the timer while a key is physically held, which is
// what lets hold shortcuts work in a terminal.
const releaseDelay = 300 * time.Millisecond

// host adapts terminal key events to the engine's key-down/key-up model.
type host struct {
	mu     sync.Mutex
	eng    *engine.Engine
	timers map[string]*time.Timer
	closed bool
}

func newHost(eng *engine.Engine) *host {
	return &host{
		eng:    eng,
		timers: make(map[string]*time.Timer),
	}
}

// keyDown forwards a key-down and schedules its synthetic key-up.
func (h *host) keyDown(ev *key.Event) {
	h.eng.OnKeyDown(ev)

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}

	primary := strings.ToLower(ev.Key)
	if t, ok := h.timers[primary]; ok {
		t.Stop()
	}

	up := ev.Clone()
	h.timers[primary] = time.AfterFunc(releaseDelay, func() {
		h.mu.Lock()
		delete(h.timers, primary)
		h.mu.Unlock()
		h.eng.OnKeyUp(up)
	})
}

// close stops all pending release timers.
func (h *host) close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.closed = true
	for primary, t := range h.timers {
		t.Stop()
		delete(h.timers, primary)
	}
}

// toEvent converts a tcell key event into an engine key event.
// Unmappable keys return nil and are dropped.
func toEvent(ev *tcell.EventKey) *key.Event {
	mods := ev.Modifiers()
	ctrl := mods&tcell.ModCtrl != 0
	alt := mods&tcell.ModAlt != 0
	meta := mods&tcell.ModMeta != 0

	var name string
	switch k := ev.Key(); k {
	case tcell.KeyRune:
		name = string(ev.Rune())
	case tcell.KeyEnter:
		name = "enter"
	case tcell.KeyTab:
		name = "tab"
	case tcell.KeyEscape:
		name = "escape"
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		name = "backspace"
	case tcell.KeyDelete:
		name = "delete"
	case tcell.KeyInsert:
		name = "insert"
	case tcell.KeyHome:
		name = "home"
	case tcell.KeyEnd:
		name = "end"
	case tcell.KeyPgUp:
		name = "pageup"
	case tcell.KeyPgDn:
		name = "pagedown"
	case tcell.KeyUp:
		name = "up"
	case tcell.KeyDown:
		name = "down"
	case tcell.KeyLeft:
		name = "left"
	case tcell.KeyRight:
		name = "right"
	default:
		if k >= tcell.KeyF1 && k <= tcell.KeyF12 {
			name = strings.ToLower(tcell.KeyNames[k])
			break
		}
		// Terminals report Ctrl+letter as a control code.
		if k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ {
			name = string(rune('a' + k - tcell.KeyCtrlA))
			ctrl = true
			break
		}
		return nil
	}

	return key.NewEvent(name, ctrl, alt, meta)
}
