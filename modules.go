// modules.go: importable module plumbing shared by module_io.go and
// module_math.go.
//
// A module is a namespace Object whose members are Value entries, mostly
// native Functions. `import io` binds the whole namespace under its name;
// `import min, max from math` merges only the selected members into the
// importing scope (interpreter_exec.go drives both forms through the
// Interpreter's registry). Hosts can add their own modules with
// Interpreter.RegisterModule.
package coco

// nativeFn wraps a Go implementation as a callable Function value with a
// fixed parameter spec. Arguments arrive pre-bound by name.
func nativeFn(name string, params []FuncParam, impl NativeFunc) Value {
	return FunVal(&Function{Name: name, Params: params, Native: impl})
}

func required(names ...string) []FuncParam {
	params := make([]FuncParam, len(names))
	for i, n := range names {
		params[i] = FuncParam{Kind: ParamRequired, Name: n}
	}
	return params
}

func spread(name string) []FuncParam {
	return []FuncParam{{Kind: ParamSpread, Name: name}}
}

// spreadArgs unpacks the bound spread parameter for a native implementation.
func spreadArgs(args map[string]Value, name string) []Value {
	v := args[name]
	if v.Tag != VTArray {
		return nil
	}
	return v.Data.([]Value)
}
