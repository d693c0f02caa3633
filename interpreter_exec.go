// interpreter_exec.go: PRIVATE: the tree-walking evaluator.
//
// eval reduces one AST node to a Value inside a Scope. Control flow that must
// unwind through nested blocks (return, break, continue) travels as a
// *flowSignal error; function calls and loops absorb the kinds they own, and
// anything escaping to the top level is reported as a plain runtime error
// ("return outside function" never happens, a top-level return is the
// program result, but stray break/continue do).
package coco

import "fmt"

type ctrlKind int

const (
	ctrlReturn ctrlKind = iota
	ctrlBreak
	ctrlContinue
)

// flowSignal is a non-local control transfer riding the error channel.
type flowSignal struct {
	kind  ctrlKind
	value Value
	pos   Pos
}

func (f *flowSignal) Error() string {
	switch f.kind {
	case ctrlBreak:
		return fmt.Sprintf("RUNTIME ERROR at %d:%d: break outside of a loop", f.pos.Line, f.pos.Col+1)
	case ctrlContinue:
		return fmt.Sprintf("RUNTIME ERROR at %d:%d: continue outside of a loop", f.pos.Line, f.pos.Col+1)
	default:
		return fmt.Sprintf("RUNTIME ERROR at %d:%d: return outside of a function", f.pos.Line, f.pos.Col+1)
	}
}

func (ip *Interpreter) eval(node Node, scope *Scope) (Value, error) {
	switch n := node.(type) {
	case *BlockNode:
		return ip.evalBlock(n, scope)

	case *StringNode:
		return Str(ip.interpolate(n.Value, scope)), nil
	case *NumberNode:
		return Num(n.Value), nil
	case *BoolNode:
		return Bool(n.Value), nil
	case *NullNode:
		return Null, nil

	case *ArrayNode:
		out := make([]Value, 0, len(n.Elements))
		for _, elem := range n.Elements {
			v, err := ip.eval(elem, scope)
			if err != nil {
				return Null, err
			}
			out = append(out, v)
		}
		return Arr(out), nil

	case *ObjectNode:
		obj := NewObject()
		for i, key := range n.Keys {
			v, err := ip.eval(n.Values[i], scope)
			if err != nil {
				return Null, err
			}
			obj.Set(key, v)
		}
		return Obj(obj), nil

	case *VarNode:
		return scope.Get(n.Name), nil

	case *FieldAccessNode:
		return ip.evalFieldAccess(n, scope)

	case *AssignNode:
		return ip.evalAssign(n, scope)

	case *CompoundAssignNode:
		return ip.evalCompoundAssign(n, scope)

	case *BinaryNode:
		left, err := ip.eval(n.Left, scope)
		if err != nil {
			return Null, err
		}
		right, err := ip.eval(n.Right, scope)
		if err != nil {
			return Null, err
		}
		return applyBinary(n.Op, left, right), nil

	case *LogicalNode:
		// Both operands evaluate unconditionally; see package docs.
		left, err := ip.eval(n.Left, scope)
		if err != nil {
			return Null, err
		}
		right, err := ip.eval(n.Right, scope)
		if err != nil {
			return Null, err
		}
		return applyLogical(n.Op, left, right), nil

	case *UnaryNode:
		operand, err := ip.eval(n.Operand, scope)
		if err != nil {
			return Null, err
		}
		return applyUnary(n.Op, operand), nil

	case *TypeofNode:
		operand, err := ip.eval(n.Operand, scope)
		if err != nil {
			return Null, err
		}
		return Str(operand.TypeName()), nil

	case *TernaryNode:
		cond, err := ip.eval(n.Cond, scope)
		if err != nil {
			return Null, err
		}
		if cond.AsBool() {
			return ip.eval(n.Then, scope)
		}
		return ip.eval(n.Else, scope)

	case *IfNode:
		cond, err := ip.eval(n.Cond, scope)
		if err != nil {
			return Null, err
		}
		if cond.AsBool() {
			return ip.eval(n.Then, scope)
		}
		if n.Else != nil {
			return ip.eval(n.Else, scope)
		}
		return Null, nil

	case *WhileNode:
		return ip.evalWhile(n, scope)

	case *ForInNode:
		return ip.evalForIn(n, scope)

	case *SwitchNode:
		return ip.evalSwitch(n, scope)

	case *FunNode:
		fn, err := ip.makeFunction(n, scope)
		if err != nil {
			return Null, err
		}
		v := FunVal(fn)
		scope.Set(n.Name, v)
		return v, nil

	case *CallNode:
		return ip.evalCall(n, scope)

	case *ReturnNode:
		v, err := ip.eval(n.Value, scope)
		if err != nil {
			return Null, err
		}
		return Null, &flowSignal{kind: ctrlReturn, value: v, pos: n.Pos}

	case *BreakNode:
		return Null, &flowSignal{kind: ctrlBreak, pos: n.Pos}
	case *ContinueNode:
		return Null, &flowSignal{kind: ctrlContinue, pos: n.Pos}

	case *ClassNode:
		return ip.evalClass(n, scope)

	case *NewNode:
		return ip.evalNew(n, scope)

	case *ImportNode:
		return ip.evalImport(n, scope)

	default:
		return Null, errAt(node, "unknown AST node %T", node)
	}
}

// evalBlock executes statements in order in the given scope (blocks do not
// open a scope of their own). Return/break/continue signals propagate.
func (ip *Interpreter) evalBlock(block *BlockNode, scope *Scope) (Value, error) {
	for _, stmt := range block.Statements {
		if _, err := ip.eval(stmt, scope); err != nil {
			return Null, err
		}
	}
	return Null, nil
}

func (ip *Interpreter) evalFieldAccess(n *FieldAccessNode, scope *Scope) (Value, error) {
	base, err := ip.eval(n.Base, scope)
	if err != nil {
		return Null, err
	}
	fields, err := ip.evalIndices(n.Indices, scope)
	if err != nil {
		return Null, err
	}
	v, err := NewFieldAccessor(base, fields).Get()
	if err != nil {
		return Null, errAt(n, "%s", err)
	}
	return v, nil
}

func (ip *Interpreter) evalIndices(indices []Node, scope *Scope) ([]Value, error) {
	out := make([]Value, 0, len(indices))
	for _, idx := range indices {
		v, err := ip.eval(idx, scope)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func (ip *Interpreter) evalAssign(n *AssignNode, scope *Scope) (Value, error) {
	value, err := ip.eval(n.Value, scope)
	if err != nil {
		return Null, err
	}

	switch target := n.Target.(type) {
	case *VarNode:
		scope.Set(target.Name, value)
		return value, nil

	case *FieldAccessNode:
		root, ok := target.Base.(*VarNode)
		if !ok {
			return Null, errAt(n, "invalid assignment target")
		}
		fields, err := ip.evalIndices(target.Indices, scope)
		if err != nil {
			return Null, err
		}
		container, err := NewFieldAccessor(scope.Get(root.Name), fields).Set(value)
		if err != nil {
			return Null, errAt(n, "%s", err)
		}
		scope.SetWhereDefined(root.Name, container)
		return value, nil

	default:
		return Null, errAt(n, "invalid assignment target")
	}
}

func (ip *Interpreter) evalCompoundAssign(n *CompoundAssignNode, scope *Scope) (Value, error) {
	rhs, err := ip.eval(n.Value, scope)
	if err != nil {
		return Null, err
	}

	switch target := n.Target.(type) {
	case *VarNode:
		combined := applyBinary(n.Op, scope.Get(target.Name), rhs)
		scope.Set(target.Name, combined)
		return combined, nil

	case *FieldAccessNode:
		root, ok := target.Base.(*VarNode)
		if !ok {
			return Null, errAt(n, "invalid assignment target")
		}
		fields, err := ip.evalIndices(target.Indices, scope)
		if err != nil {
			return Null, err
		}
		accessor := NewFieldAccessor(scope.Get(root.Name), fields)
		current, err := accessor.Get()
		if err != nil {
			return Null, errAt(n, "%s", err)
		}
		combined := applyBinary(n.Op, current, rhs)
		container, err := accessor.Set(combined)
		if err != nil {
			return Null, errAt(n, "%s", err)
		}
		scope.SetWhereDefined(root.Name, container)
		return combined, nil

	default:
		return Null, errAt(n, "invalid assignment target")
	}
}

func (ip *Interpreter) evalWhile(n *WhileNode, scope *Scope) (Value, error) {
	for {
		cond, err := ip.eval(n.Cond, scope)
		if err != nil {
			return Null, err
		}
		if !cond.AsBool() {
			return Null, nil
		}
		if _, err := ip.eval(n.Body, scope); err != nil {
			if sig, ok := err.(*flowSignal); ok {
				if sig.kind == ctrlBreak {
					return Null, nil
				}
				if sig.kind == ctrlContinue {
					continue
				}
			}
			return Null, err
		}
	}
}

// evalForIn iterates a String (unicode characters) or Array (elements),
// binding the loop variable in the enclosing scope each iteration.
func (ip *Interpreter) evalForIn(n *ForInNode, scope *Scope) (Value, error) {
	iterable, err := ip.eval(n.Iterable, scope)
	if err != nil {
		return Null, err
	}

	var items []Value
	switch iterable.Tag {
	case VTString:
		for _, r := range iterable.Data.(string) {
			items = append(items, Str(string(r)))
		}
	case VTArray:
		items = iterable.Data.([]Value)
	default:
		return Null, errAt(n, "%s is not iterable", iterable.TypeName())
	}

	for _, item := range items {
		scope.Set(n.Name, item.Clone())
		if _, err := ip.eval(n.Body, scope); err != nil {
			if sig, ok := err.(*flowSignal); ok {
				if sig.kind == ctrlBreak {
					return Null, nil
				}
				if sig.kind == ctrlContinue {
					continue
				}
			}
			return Null, err
		}
	}
	return Null, nil
}

// evalSwitch scans cases in source order against the subject (deep equality,
// no coercion). A matching case with no statement falls through to the next
// case that has one; default runs only when nothing matched.
func (ip *Interpreter) evalSwitch(n *SwitchNode, scope *Scope) (Value, error) {
	subject, err := ip.eval(n.Subject, scope)
	if err != nil {
		return Null, err
	}

	matched := -1
	defaultIdx := -1
	for i, c := range n.Cases {
		if c.Value == nil {
			defaultIdx = i
			continue
		}
		caseVal, err := ip.eval(c.Value, scope)
		if err != nil {
			return Null, err
		}
		if subject.Equal(caseVal) {
			matched = i
			break
		}
	}
	if matched < 0 {
		matched = defaultIdx
	}
	if matched < 0 {
		return Null, nil
	}

	// A `return` in the chosen case unwinds like any other return, so at the
	// top level or inside a function the switch yields the case's value.
	for i := matched; i < len(n.Cases); i++ {
		if n.Cases[i].Body != nil {
			return ip.eval(n.Cases[i].Body, scope)
		}
	}
	return Null, nil
}

// makeFunction reduces a FunNode to a runtime Function. Optional-parameter
// defaults are evaluated once, here, at definition time.
func (ip *Interpreter) makeFunction(n *FunNode, scope *Scope) (*Function, error) {
	params := make([]FuncParam, 0, len(n.Params))
	for _, p := range n.Params {
		fp := FuncParam{Kind: p.Kind, Name: p.Name, Default: Null}
		if p.Kind == ParamOptional && p.Default != nil {
			def, err := ip.eval(p.Default, scope)
			if err != nil {
				return nil, err
			}
			fp.Default = def
		}
		params = append(params, fp)
	}
	return &Function{Name: n.Name, Params: params, Body: n.Body}, nil
}

func (ip *Interpreter) evalCall(n *CallNode, scope *Scope) (Value, error) {
	callee, receiver, name, err := ip.resolveCallee(n.Callee, scope)
	if err != nil {
		return Null, err
	}
	if callee.Tag != VTFunction {
		return Null, errAt(n, "%s is not a function", name)
	}

	args := make([]Value, 0, len(n.Args))
	for _, argNode := range n.Args {
		arg, err := ip.eval(argNode, scope)
		if err != nil {
			return Null, err
		}
		args = append(args, arg.Clone())
	}

	fn := callee.Data.(*Function)
	return ip.callFunctionWithThis(fn, args, receiver, scope, n.Pos)
}

// resolveCallee evaluates the callee expression. For field-access callees
// (obj.method(...)) it also resolves the receiver container so `this` can be
// bound, and reports the last path segment as the callee name for errors.
func (ip *Interpreter) resolveCallee(callee Node, scope *Scope) (Value, Value, string, error) {
	switch c := callee.(type) {
	case *VarNode:
		return scope.Get(c.Name), Null, c.Name, nil
	case *FieldAccessNode:
		base, err := ip.eval(c.Base, scope)
		if err != nil {
			return Null, Null, "", err
		}
		fields, err := ip.evalIndices(c.Indices, scope)
		if err != nil {
			return Null, Null, "", err
		}
		accessor := NewFieldAccessor(base, fields)
		fn, err := accessor.Get()
		if err != nil {
			return Null, Null, "", errAt(c, "%s", err)
		}
		receiver, err := accessor.container()
		if err != nil {
			receiver = Null
		}
		return fn, receiver, accessor.last().AsString(), nil
	default:
		v, err := ip.eval(callee, scope)
		if err != nil {
			return Null, Null, "", err
		}
		return v, Null, v.TypeName(), nil
	}
}

func (ip *Interpreter) callFunction(fn *Function, args []Value, callSite *Scope, pos Pos) (Value, error) {
	return ip.callFunctionWithThis(fn, args, Null, callSite, pos)
}

// callFunctionWithThis reduces positional arguments against the parameter
// spec, creates a fresh scope parented to the CALLER's live scope (dynamic
// scoping) and runs the body. Natives receive the same reduced mapping.
func (ip *Interpreter) callFunctionWithThis(fn *Function, args []Value, receiver Value, callSite *Scope, pos Pos) (Value, error) {
	bound, err := ip.bindArgs(fn, args, pos)
	if err != nil {
		return Null, err
	}

	if fn.Native != nil {
		v, err := fn.Native(bound)
		if err != nil {
			return Null, &RuntimeError{Line: pos.Line, Col: pos.Col + 1, Msg: err.Error()}
		}
		return v, nil
	}

	frame := NewScope(callSite)
	for name, v := range bound {
		frame.Set(name, v)
	}
	if receiver.Tag == VTObject {
		frame.Set("this", receiver.Clone())
	}

	_, err = ip.eval(fn.Body, frame)
	if err != nil {
		if sig, ok := err.(*flowSignal); ok && sig.kind == ctrlReturn {
			return sig.value, nil
		}
		return Null, err
	}
	return Null, nil
}

// bindArgs reduces the positional argument list against the parameter spec:
// each Required consumes one argument, each Optional consumes one when
// available (else its default), a trailing Spread collects the rest.
func (ip *Interpreter) bindArgs(fn *Function, args []Value, pos Pos) (map[string]Value, error) {
	out := make(map[string]Value, len(fn.Params))
	i := 0
	for _, p := range fn.Params {
		switch p.Kind {
		case ParamRequired:
			if i >= len(args) {
				name := fn.Name
				if name == "" {
					name = "function"
				}
				return nil, &RuntimeError{
					Line: pos.Line, Col: pos.Col + 1,
					Msg: fmt.Sprintf("missing required argument %q in call to %s", p.Name, name),
				}
			}
			out[p.Name] = args[i]
			i++
		case ParamOptional:
			if i < len(args) {
				out[p.Name] = args[i]
				i++
			} else {
				out[p.Name] = p.Default.Clone()
			}
		case ParamSpread:
			rest := make([]Value, len(args)-i)
			copy(rest, args[i:])
			out[p.Name] = Arr(rest)
			i = len(args)
		}
	}
	return out, nil
}

// evalClass reduces methods and constructor to Function values now without
// executing their bodies, and binds the class in the current scope.
func (ip *Interpreter) evalClass(n *ClassNode, scope *Scope) (Value, error) {
	cls := &Class{Name: n.Name, Constructor: Null, Methods: map[string]Value{}}
	if n.Constructor != nil {
		ctor, err := ip.makeFunction(n.Constructor, scope)
		if err != nil {
			return Null, err
		}
		cls.Constructor = FunVal(ctor)
	}
	for _, m := range n.Methods {
		fn, err := ip.makeFunction(m, scope)
		if err != nil {
			return Null, err
		}
		cls.Methods[m.Name] = FunVal(fn)
	}
	v := ClassVal(cls)
	scope.Set(n.Name, v)
	return v, nil
}

// evalNew instantiates a class: a fresh Object holding the class methods,
// with the constructor (when present) run against it as `this`. The
// constructor's final `this` is the instance.
func (ip *Interpreter) evalNew(n *NewNode, scope *Scope) (Value, error) {
	target := scope.Get(n.Name)
	if target.Tag != VTClass {
		return Null, errAt(n, "%s is not a class", n.Name)
	}
	cls := target.Data.(*Class)

	instance := NewObject()
	for name, method := range cls.Methods {
		instance.Set(name, method)
	}
	self := Obj(instance)

	if cls.Constructor.Tag != VTFunction {
		return self, nil
	}

	args := make([]Value, 0, len(n.Args))
	for _, argNode := range n.Args {
		arg, err := ip.eval(argNode, scope)
		if err != nil {
			return Null, err
		}
		args = append(args, arg.Clone())
	}

	ctor := cls.Constructor.Data.(*Function)
	bound, err := ip.bindArgs(ctor, args, n.Pos)
	if err != nil {
		return Null, err
	}

	frame := NewScope(scope)
	for name, v := range bound {
		frame.Set(name, v)
	}
	frame.Set("this", self)

	if _, err := ip.eval(ctor.Body, frame); err != nil {
		if sig, ok := err.(*flowSignal); !ok || sig.kind != ctrlReturn {
			return Null, err
		}
	}
	return frame.Get("this"), nil
}

func (ip *Interpreter) evalImport(n *ImportNode, scope *Scope) (Value, error) {
	init, ok := ip.modules[n.Module]
	if !ok {
		return Null, errAt(n, "unknown module %q", n.Module)
	}
	namespace := init(ip)

	if len(n.Names) == 0 {
		scope.Set(n.Module, namespace)
		return namespace, nil
	}

	for _, name := range n.Names {
		v, err := namespace.GetField(Str(name))
		if err != nil {
			return Null, errAt(n, "%s", err)
		}
		if v.Tag == VTNull {
			return Null, errAt(n, "module %q has no member %q", n.Module, name)
		}
		scope.Set(name, v)
	}
	return Null, nil
}
