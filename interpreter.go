// interpreter.go: public API surface of the coco runtime.
//
// OVERVIEW
// ========
// An Interpreter owns a root Scope (pre-seeded with built-ins) and a module
// registry. Source can be evaluated ephemerally (fresh child of Root, so the
// program cannot pollute the persistent state) or persistently (directly in
// Root, REPL-style). All Eval* methods return (Value, error); failures are a
// *RuntimeError carrying a 1-based line/column, which errors.go can render
// as a caret snippet.
//
// EXECUTION & SCOPING SEMANTICS
// -----------------------------
// coco is dynamically scoped: every function invocation creates a fresh Scope
// parented to the scope live at the *call site*, not the definition site. A
// function therefore sees its caller's bindings, and cannot close over its
// definition environment. This is a deliberate, documented language quirk.
//
// Logical && and || evaluate BOTH operands unconditionally (no short
// circuit); only the ternary operator is lazy in its branches.
//
// Values are copied by value between bindings and containers; in-place
// field/index assignment re-materializes the container and writes it back to
// the owning binding (see accessor.go).
//
// DEPENDENCIES (OTHER FILES)
// --------------------------
//   - lexer.go / parser.go: tokenization and the AST this evaluator walks.
//   - value.go / object.go: the tagged-union value model and coercions.
//   - scope.go: the scope chain and the process-wide builtin table.
//   - accessor.go: nested field read/write-back.
//   - interpreter_exec.go (private): the tree-walking evaluator.
//   - interpreter_ops.go  (private): operator tables and interpolation.
//   - modules.go: the import registry (io, math).
//   - errors.go: caret-snippet rendering for user-facing diagnostics.
package coco

import "fmt"

// Version is the runtime version reported by the CLI.
const Version = "0.3.0"

// RuntimeError represents an execution-time failure with a source location.
// Line and Col are 1-based.
type RuntimeError struct {
	Line int
	Col  int
	Msg  string
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("RUNTIME ERROR at %d:%d: %s", e.Line, e.Col, e.Msg)
}

// Interpreter is the entry point for evaluating coco programs.
//
// Public fields:
//   - Root: the program root scope; holds built-ins and persistent state.
//
// Construction: use NewInterpreter. The instance is not safe for concurrent
// use; hosts running programs in parallel must create one Interpreter each
// (the builtin table is read-only and shared safely).
type Interpreter struct {
	Root *Scope

	modules map[string]moduleInit
}

// moduleInit lazily builds a module's namespace Object value.
type moduleInit func(ip *Interpreter) Value

// NewInterpreter constructs a runtime with built-ins seeded in Root and the
// standard modules (io, math) registered.
func NewInterpreter() *Interpreter {
	ip := &Interpreter{
		Root:    NewRootScope(),
		modules: map[string]moduleInit{},
	}
	ip.RegisterModule("io", ioModule)
	ip.RegisterModule("math", mathModule)
	return ip
}

// RegisterModule installs (or replaces) an importable module under name.
func (ip *Interpreter) RegisterModule(name string, init moduleInit) {
	ip.modules[name] = init
}

// EvalSource parses and evaluates source in a fresh child of Root. Bindings
// created by the program land in that ephemeral child; Root is unchanged.
func (ip *Interpreter) EvalSource(src string) (Value, error) {
	program, err := Parse(src)
	if err != nil {
		return Null, WrapErrorWithSource(err, src)
	}
	v, err := ip.EvalProgram(program, NewScope(ip.Root))
	if err != nil {
		return Null, WrapErrorWithSource(err, src)
	}
	return v, nil
}

// EvalPersistentSource parses and evaluates source directly in Root
// (REPL-style): lets and assignments persist across calls.
func (ip *Interpreter) EvalPersistentSource(src string) (Value, error) {
	program, err := Parse(src)
	if err != nil {
		return Null, WrapErrorWithSource(err, src)
	}
	v, err := ip.EvalProgram(program, ip.Root)
	if err != nil {
		return Null, WrapErrorWithSource(err, src)
	}
	return v, nil
}

// EvalProgram evaluates a parsed program in the provided scope exactly as
// given. Hosts use this to control scoping explicitly. A top-level return
// short-circuits the program and becomes its result.
func (ip *Interpreter) EvalProgram(program *BlockNode, scope *Scope) (Value, error) {
	v, err := ip.eval(program, scope)
	if err != nil {
		if sig, ok := err.(*flowSignal); ok && sig.kind == ctrlReturn {
			return sig.value, nil
		}
		return Null, err
	}
	return v, nil
}

// Apply invokes a function Value with the given positional arguments, using
// Root as the call-site scope. Hosts use this to call script functions.
func (ip *Interpreter) Apply(fn Value, args []Value) (Value, error) {
	if fn.Tag != VTFunction {
		return Null, fmt.Errorf("%s is not a function", fn.TypeName())
	}
	return ip.callFunction(fn.Data.(*Function), args, ip.Root, Pos{Line: 1, Col: 0})
}

// errAt builds a positioned runtime error from an AST node.
func errAt(n Node, format string, args ...interface{}) error {
	p := n.Position()
	return &RuntimeError{Line: p.Line, Col: p.Col + 1, Msg: fmt.Sprintf(format, args...)}
}
