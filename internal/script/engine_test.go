package script

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/atomicstack/menubar/internal/menu"
)

const demoScript = `
local state = { count = 0 }
return {
  file = {
    open = function(inv) return "opened " .. inv.value end,
    autosave = function(inv)
      if inv.checked then return "autosave on" end
      return "autosave off"
    end,
  },
  edit = {
    undo = function(inv)
      state.count = state.count + 1
      return state.count
    end,
    broken = function(inv) error("nope") end,
  },
  silent = function(inv) end,
  label = "not a function",
}
`

func loaded(t *testing.T) *Engine {
	t.Helper()
	e := New()
	t.Cleanup(e.Close)
	if err := e.LoadString(demoScript); err != nil {
		t.Fatalf("load failed: %v", err)
	}
	return e
}

func TestNamesAreDottedPaths(t *testing.T) {
	e := loaded(t)
	got := strings.Join(e.Names(), ",")
	want := "edit.broken,edit.undo,file.autosave,file.open,silent"
	if got != want {
		t.Fatalf("expected %s, got %s", want, got)
	}
}

func TestCallPassesInvocation(t *testing.T) {
	e := loaded(t)
	info, err := e.Call("file.open", menu.Invocation{Value: "a.txt"})
	if err != nil || info != "opened a.txt" {
		t.Fatalf("unexpected result %q, %v", info, err)
	}
	info, _ = e.Call("file.autosave", menu.Invocation{Checked: true, HasChecked: true})
	if info != "autosave on" {
		t.Fatalf("expected checked state to reach the script, got %q", info)
	}
	e.Call("edit.undo", menu.Invocation{})
	if info, _ := e.Call("edit.undo", menu.Invocation{}); info != "2" {
		t.Fatalf("expected script state to persist between calls, got %q", info)
	}
	if info, err := e.Call("silent", menu.Invocation{}); err != nil || info != "" {
		t.Fatalf("expected empty result, got %q, %v", info, err)
	}
}

func TestCallErrorsDoNotPanic(t *testing.T) {
	e := loaded(t)
	if _, err := e.Call("edit.broken", menu.Invocation{}); err == nil {
		t.Fatalf("expected error from failing script")
	}
	if _, err := e.Call("edit.missing", menu.Invocation{}); err == nil {
		t.Fatalf("expected error for unknown function")
	}
	if _, err := e.Call("label", menu.Invocation{}); err == nil {
		t.Fatalf("expected error for non-function value")
	}
}

func TestRegisterResolvesThroughRegistry(t *testing.T) {
	e := loaded(t)
	reg := menu.NewRegistry()
	if err := e.Register(reg); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	action, ok := reg.Resolve("file.open")
	if !ok {
		t.Fatalf("expected file.open to resolve")
	}
	msg := action(menu.Invocation{Name: "file.open", Value: "b.txt"})()
	res, ok := msg.(menu.ActionResult)
	if !ok || res.Info != "opened b.txt" || res.Err != nil {
		t.Fatalf("unexpected message %#v", msg)
	}
	if _, ok := reg.Resolve("label"); ok {
		t.Fatalf("expected non-function value to stay unregistered")
	}
	if _, ok := reg.Resolve("file"); ok {
		t.Fatalf("expected namespace to have no action")
	}
}

func TestLoadFileWithGlobalTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "actions.lua")
	src := "actions = { ping = function(inv) host.log('ping'); return 'pong' end }\n"
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	e := New()
	defer e.Close()
	if err := e.LoadFile(path); err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if info, err := e.Call("ping", menu.Invocation{}); err != nil || info != "pong" {
		t.Fatalf("unexpected result %q, %v", info, err)
	}
}

func TestLoadRejectsScriptsWithoutTable(t *testing.T) {
	e := New()
	defer e.Close()
	if err := e.LoadString("local x = 1"); err == nil {
		t.Fatalf("expected error when no table is provided")
	}
	if err := e.LoadString("this is not lua"); err == nil {
		t.Fatalf("expected syntax error")
	}
}

func TestAliasedTablesRegisterEveryPath(t *testing.T) {
	const aliased = `
local shared = { open = function(inv) return "open " .. inv.value end }
local loop = {}
loop.self = loop
loop.run = function(inv) return "run" end
return { file = shared, doc = shared, loop = loop }
`
	for i := 0; i < 20; i++ {
		e := New()
		if err := e.LoadString(aliased); err != nil {
			e.Close()
			t.Fatalf("load failed: %v", err)
		}
		got := strings.Join(e.Names(), ",")
		want := "doc.open,file.open,loop.run"
		if got != want {
			e.Close()
			t.Fatalf("run %d: expected %s, got %s", i, want, got)
		}
		info, err := e.Call("doc.open", menu.Invocation{Value: "x"})
		e.Close()
		if err != nil || info != "open x" {
			t.Fatalf("run %d: unexpected result %q, %v", i, info, err)
		}
	}
}
