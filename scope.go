// scope.go: scope chain for identifier resolution.
//
// A Scope is one frame of a singly-linked chain. Lookups walk parent-ward and
// yield Null when no frame defines the name; binding always lands in the
// innermost frame (declaration semantics, never an upward-mutating write).
// A fresh frame is created once for the program root and once per function
// invocation, linked to the scope live at the call site.
package coco

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

// Scope is a node in the scope chain.
type Scope struct {
	parent    *Scope
	variables map[string]Value
}

// NewScope creates a frame with the given parent (which may be nil).
func NewScope(parent *Scope) *Scope {
	return &Scope{parent: parent, variables: map[string]Value{}}
}

// NewRootScope creates a parentless frame pre-seeded with the built-in
// bindings, so every program has baseline I/O and casting without an import.
func NewRootScope() *Scope {
	s := NewScope(nil)
	for name, v := range builtinTable() {
		s.variables[name] = v
	}
	return s
}

// Get resolves name against the chain, innermost frame first. Undefined
// names resolve to Null rather than erroring.
func (s *Scope) Get(name string) Value {
	for cur := s; cur != nil; cur = cur.parent {
		if v, ok := cur.variables[name]; ok {
			return v
		}
	}
	return Null
}

// Set binds name in this frame only, shadowing any outer binding, and
// returns the previous local value (Null when the name was unbound here).
func (s *Scope) Set(name string, v Value) Value {
	prev, ok := s.variables[name]
	s.variables[name] = v
	if !ok {
		return Null
	}
	return prev
}

// SetWhereDefined rebinds name in the innermost frame that already defines
// it, falling back to this frame when no frame on the chain does. Used for
// field-assignment write-back, which must mutate the owning binding rather
// than shadow it.
func (s *Scope) SetWhereDefined(name string, v Value) {
	for cur := s; cur != nil; cur = cur.parent {
		if _, ok := cur.variables[name]; ok {
			cur.variables[name] = v
			return
		}
	}
	s.variables[name] = v
}

// Has reports whether this frame (not the chain) defines name.
func (s *Scope) Has(name string) bool {
	_, ok := s.variables[name]
	return ok
}

// LogOutput is where the log/write built-ins print. Swappable by hosts and
// tests; everything else about the builtin table is read-only.
var LogOutput io.Writer = os.Stdout

var (
	builtinOnce sync.Once
	builtins    map[string]Value
)

// builtinTable lazily constructs the fixed, process-wide builtin bindings.
func builtinTable() map[string]Value {
	builtinOnce.Do(func() {
		logFn := FunVal(&Function{
			Name:   "log",
			Params: []FuncParam{{Kind: ParamSpread, Name: "vals"}},
			Native: func(args map[string]Value) (Value, error) {
				vals := args["vals"].Data.([]Value)
				parts := make([]string, len(vals))
				for i, v := range vals {
					parts[i] = v.AsString()
				}
				fmt.Fprintln(LogOutput, strings.Join(parts, " "))
				return Null, nil
			},
		})
		builtins = map[string]Value{
			"log":   logFn,
			"write": logFn,
			"num": FunVal(&Function{
				Name:   "num",
				Params: []FuncParam{{Kind: ParamRequired, Name: "value"}},
				Native: func(args map[string]Value) (Value, error) {
					return Num(args["value"].AsNumber()), nil
				},
			}),
			"str": FunVal(&Function{
				Name:   "str",
				Params: []FuncParam{{Kind: ParamRequired, Name: "value"}},
				Native: func(args map[string]Value) (Value, error) {
					return Str(args["value"].AsString()), nil
				},
			}),
			"bool": FunVal(&Function{
				Name:   "bool",
				Params: []FuncParam{{Kind: ParamRequired, Name: "value"}},
				Native: func(args map[string]Value) (Value, error) {
					return Bool(args["value"].AsBool()), nil
				},
			}),
		}
	})
	return builtins
}
