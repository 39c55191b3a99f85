// Package scripting runs Lua scripts against a universe through the entity
// factory.
package scripting

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"

	"github.com/ylikuutio/ylikuutio/internal/core/factory"
	"github.com/ylikuutio/ylikuutio/internal/core/observability/log"
	"github.com/ylikuutio/ylikuutio/internal/core/ontology"
)

// APIVersion is exposed to scripts as API_VERSION.
const APIVersion = 1

// Engine wraps a single gopher-lua VM. Like the universe it drives, it is
// not safe for concurrent use.
//
// Scripts see these globals:
//
//	create(kind, name [, parent])  -> true | nil, err
//	delete(name)                   -> true | nil, err
//	move(name, parent)             -> true | nil, err
//	count([name])                  -> children | nil, err
//	descendants([name])            -> descendants | nil, err
//	complete(prefix)               -> completion, matches
//	log(message)
//
// An omitted or empty name means the universe itself.
type Engine struct {
	vm      *lua.LState
	factory *factory.Factory
	log     log.Log
}

func NewEngine(f *factory.Factory, logger log.Log) *Engine {
	if logger == nil {
		logger = log.NewNop()
	}
	vm := lua.NewState()
	e := &Engine{vm: vm, factory: f, log: logger.Named("lua")}

	vm.SetGlobal("API_VERSION", lua.LNumber(APIVersion))
	for name, fn := range map[string]lua.LGFunction{
		"create":      e.create,
		"delete":      e.delete,
		"move":        e.move,
		"count":       e.count,
		"descendants": e.descendants,
		"complete":    e.complete,
		"log":         e.logMessage,
	} {
		vm.SetGlobal(name, vm.NewFunction(fn))
	}
	return e
}

func (e *Engine) Close() {
	e.vm.Close()
}

// DoFile runs a script file.
func (e *Engine) DoFile(path string) error {
	if err := e.vm.DoFile(path); err != nil {
		return fmt.Errorf("run %s: %w", path, err)
	}
	e.log.Debug("ran lua script", log.String("file", path))
	return nil
}

// DoString runs a chunk of Lua source.
func (e *Engine) DoString(source string) error {
	if err := e.vm.DoString(source); err != nil {
		return fmt.Errorf("run lua chunk: %w", err)
	}
	return nil
}

// Global returns a global as a Go value: string, float64, bool or nil.
func (e *Engine) Global(name string) any {
	switch v := e.vm.GetGlobal(name).(type) {
	case lua.LString:
		return string(v)
	case lua.LNumber:
		return float64(v)
	case lua.LBool:
		return bool(v)
	default:
		return nil
	}
}

func (e *Engine) create(L *lua.LState) int {
	kind := L.CheckString(1)
	name := L.CheckString(2)
	parent := L.OptString(3, "")
	_, err := e.factory.Create(kind, name, parent)
	return result(L, err)
}

func (e *Engine) delete(L *lua.LState) int {
	return result(L, e.factory.Delete(L.CheckString(1)))
}

func (e *Engine) move(L *lua.LState) int {
	return result(L, e.factory.Move(L.CheckString(1), L.CheckString(2)))
}

func (e *Engine) count(L *lua.LState) int {
	target, err := e.lookup(L.OptString(1, ""))
	if err != nil {
		return result(L, err)
	}
	L.Push(lua.LNumber(target.NumberOfChildren()))
	return 1
}

func (e *Engine) descendants(L *lua.LState) int {
	target, err := e.lookup(L.OptString(1, ""))
	if err != nil {
		return result(L, err)
	}
	L.Push(lua.LNumber(target.NumberOfDescendants()))
	return 1
}

func (e *Engine) complete(L *lua.LState) int {
	registry := e.factory.Universe().Registry()
	prefix := L.CheckString(1)
	L.Push(lua.LString(registry.Complete(prefix)))
	L.Push(lua.LNumber(registry.GetNumberOfCompletions(prefix)))
	return 2
}

func (e *Engine) logMessage(L *lua.LState) int {
	e.log.Info(L.CheckString(1))
	return 0
}

func (e *Engine) lookup(name string) (ontology.Entity, error) {
	u := e.factory.Universe()
	if name == "" {
		return u, nil
	}
	target := u.Lookup(name)
	if target == nil {
		return nil, fmt.Errorf("%w: %q", factory.ErrNotFound, name)
	}
	return target, nil
}

// result pushes true on success and nil, message on failure.
func result(L *lua.LState, err error) int {
	if err != nil {
		L.Push(lua.LNil)
		L.Push(lua.LString(err.Error()))
		return 2
	}
	L.Push(lua.LTrue)
	return 1
}
