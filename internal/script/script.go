// Package script runs user-defined shortcut handlers written in Lua.
//
// A script registers named actions with the global `action` function:
//
//	action("save", function(ev)
//	    -- ev is nil for sequence shortcuts
//	    print("saving, combo was " .. ev.combo)
//	end)
//
// The resulting handlers are exposed through Actions and can be bound to
// shortcuts directly or through a config.Manager.
package script

import (
	"fmt"
	"sync"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/keychord/internal/key"
	"github.com/dshills/keychord/internal/shortcut"
)

// Engine hosts a Lua state and the actions scripts registered in it.
//
// Thread Safety:
// The Lua state is not safe for concurrent use; a mutex serializes every
// call into it, including handler invocations.
type Engine struct {
	mu      sync.Mutex
	state   *lua.LState
	actions map[string]*lua.LFunction
}

// New creates a script engine with the `action` registration global.
func New() *Engine {
	e := &Engine{
		state:   lua.NewState(),
		actions: make(map[string]*lua.LFunction),
	}
	e.state.SetGlobal("action", e.state.NewFunction(e.registerAction))
	return e
}

// registerAction implements the Lua global `action(name, fn)`.
func (e *Engine) registerAction(L *lua.LState) int {
	name := L.CheckString(1)
	fn := L.CheckFunction(2)
	e.actions[name] = fn
	return 0
}

// LoadFile executes a script file, collecting its action registrations.
func (e *Engine) LoadFile(path string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.state.DoFile(path); err != nil {
		return fmt.Errorf("loading script %s: %w", path, err)
	}
	return nil
}

// LoadString executes script source, collecting its action registrations.
func (e *Engine) LoadString(source string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.state.DoString(source); err != nil {
		return fmt.Errorf("loading script: %w", err)
	}
	return nil
}

// Names returns the registered action names.
func (e *Engine) Names() []string {
	e.mu.Lock()
	defer e.mu.Unlock()

	names := make([]string, 0, len(e.actions))
	for name := range e.actions {
		names = append(names, name)
	}
	return names
}

// Actions returns the script's actions as shortcut handlers.
func (e *Engine) Actions() map[string]shortcut.Handler {
	e.mu.Lock()
	defer e.mu.Unlock()

	handlers := make(map[string]shortcut.Handler, len(e.actions))
	for name, fn := range e.actions {
		handlers[name] = e.handler(fn)
	}
	return handlers
}

// handler adapts a Lua function to a shortcut handler. Script errors are
// swallowed: dispatch is total and a broken script must not take the
// engine down with it.
func (e *Engine) handler(fn *lua.LFunction) shortcut.Handler {
	return func(ev *key.Event) {
		e.mu.Lock()
		defer e.mu.Unlock()

		_ = e.state.CallByParam(lua.P{
			Fn:      fn,
			NRet:    0,
			Protect: true,
		}, e.eventTable(ev))
	}
}

// eventTable converts an event to a Lua table, or nil for sequences.
func (e *Engine) eventTable(ev *key.Event) lua.LValue {
	if ev == nil {
		return lua.LNil
	}

	tbl := e.state.NewTable()
	e.state.SetField(tbl, "key", lua.LString(ev.Key))
	e.state.SetField(tbl, "ctrl", lua.LBool(ev.Ctrl))
	e.state.SetField(tbl, "alt", lua.LBool(ev.Alt))
	e.state.SetField(tbl, "meta", lua.LBool(ev.Meta))
	e.state.SetField(tbl, "target", lua.LString(ev.Target))
	e.state.SetField(tbl, "combo", lua.LString(ev.Combo()))
	return tbl
}

// Close releases the Lua state.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.state.Close()
}
