// Package script exposes Lua functions as menu callbacks. A script returns
// a table (or sets a global "actions" table); every function reachable
// from it is registered under its dotted path, so
//
//	return { file = { open = function(inv) ... end } }
//
// provides the callback "file.open".
package script

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	lua "github.com/yuin/gopher-lua"

	"github.com/atomicstack/menubar/internal/logging"
	"github.com/atomicstack/menubar/internal/menu"
)

const (
	globalActions = "actions"
	maxDepth      = 8
)

// Engine owns a Lua state. Calls are serialised; the state is not safe for
// concurrent use and callback commands run on Bubble Tea goroutines.
type Engine struct {
	mu    sync.Mutex
	L     *lua.LState
	root  *lua.LTable
	names []string
}

// New creates an engine with the standard libraries and a "host" module.
func New() *Engine {
	L := lua.NewState(lua.Options{
		CallStackSize: 120,
		RegistrySize:  120 * 20,
	})
	e := &Engine{L: L}
	host := L.NewTable()
	host.RawSetString("log", L.NewFunction(hostLog))
	L.SetGlobal("host", host)
	return e
}

// Close shuts down the Lua state.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.L.Close()
}

// LoadFile executes the script at path and collects its functions.
func (e *Engine) LoadFile(path string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	top := e.L.GetTop()
	if err := e.L.DoFile(path); err != nil {
		return fmt.Errorf("load script %s: %w", path, err)
	}
	return e.collect(top)
}

// LoadString executes src and collects its functions.
func (e *Engine) LoadString(src string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	top := e.L.GetTop()
	if err := e.L.DoString(src); err != nil {
		return fmt.Errorf("load script: %w", err)
	}
	return e.collect(top)
}

func (e *Engine) collect(top int) error {
	var root *lua.LTable
	if e.L.GetTop() > top {
		if tbl, ok := e.L.Get(-1).(*lua.LTable); ok {
			root = tbl
		}
		e.L.SetTop(top)
	}
	if root == nil {
		if tbl, ok := e.L.GetGlobal(globalActions).(*lua.LTable); ok {
			root = tbl
		}
	}
	if root == nil {
		return fmt.Errorf("script returned no action table")
	}
	e.root = root
	e.names = e.names[:0]
	walk(root, "", 0, map[*lua.LTable]bool{}, func(name string) {
		e.names = append(e.names, name)
	})
	sort.Strings(e.names)
	return nil
}

func walk(tbl *lua.LTable, prefix string, depth int, seen map[*lua.LTable]bool, visit func(string)) {
	if depth > maxDepth || seen[tbl] {
		return
	}
	// seen holds the current ancestors only: a table reached under two
	// names is walked under both.
	seen[tbl] = true
	defer delete(seen, tbl)
	tbl.ForEach(func(key, value lua.LValue) {
		k, ok := key.(lua.LString)
		if !ok || strings.Contains(string(k), ".") || string(k) == "" {
			return
		}
		name := string(k)
		if prefix != "" {
			name = prefix + "." + name
		}
		switch v := value.(type) {
		case *lua.LFunction:
			visit(name)
		case *lua.LTable:
			walk(v, name, depth+1, seen, visit)
		}
	})
}

// Names lists the dotted names of every collected function.
func (e *Engine) Names() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]string(nil), e.names...)
}

// Register adds every collected function to reg.
func (e *Engine) Register(reg *menu.Registry) error {
	for _, name := range e.Names() {
		if err := reg.Register(name, e.Action(name)); err != nil {
			return fmt.Errorf("register %s: %w", name, err)
		}
	}
	return nil
}

// Action wraps the named function as a menu callback. The command reports
// the function's string return value, or its error, as a menu.ActionResult.
func (e *Engine) Action(name string) menu.Action {
	return func(inv menu.Invocation) tea.Cmd {
		return func() tea.Msg {
			info, err := e.Call(name, inv)
			return menu.ActionResult{Name: name, Info: info, Err: err}
		}
	}
}

// Call invokes the named function with an invocation table
// {name, value, checked?} and returns its result as a string.
func (e *Engine) Call(name string, inv menu.Invocation) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	fn := e.lookup(name)
	if fn == nil {
		return "", fmt.Errorf("script function %s not found", name)
	}
	arg := e.L.NewTable()
	arg.RawSetString("name", lua.LString(inv.Name))
	arg.RawSetString("value", lua.LString(inv.Value))
	if inv.HasChecked {
		arg.RawSetString("checked", lua.LBool(inv.Checked))
	}
	if err := e.L.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, arg); err != nil {
		return "", fmt.Errorf("call %s: %w", name, err)
	}
	ret := e.L.Get(-1)
	e.L.Pop(1)
	if ret == lua.LNil {
		return "", nil
	}
	return lua.LVAsString(ret), nil
}

func (e *Engine) lookup(name string) *lua.LFunction {
	if e.root == nil || name == "" {
		return nil
	}
	var cur lua.LValue = e.root
	for _, part := range strings.Split(name, ".") {
		tbl, ok := cur.(*lua.LTable)
		if !ok {
			return nil
		}
		cur = tbl.RawGetString(part)
	}
	fn, _ := cur.(*lua.LFunction)
	return fn
}

func hostLog(L *lua.LState) int {
	logging.Trace("script.log", map[string]interface{}{"message": L.CheckString(1)})
	return 0
}
