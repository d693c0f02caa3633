// value.go: the coco runtime value model.
//
// Value is a closed tagged union over the eight kinds a script value can
// hold. The tag determines which Go type lives in Data:
//
//	VTString   string
//	VTNumber   float64
//	VTBool     bool
//	VTArray    []Value
//	VTObject   *Object        (object.go; sorted-key iteration)
//	VTFunction *Function
//	VTClass    *Class
//	VTNull     nil
//
// Values are copied by value: a Value handed into a function call or read out
// of a container is an independent logical copy (Clone). Mutation of a
// container is only durable once the mutated container is written back into
// the binding that owns it (see accessor.go).
package coco

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ValueTag enumerates all runtime kinds a Value may hold.
type ValueTag int

const (
	VTNull     ValueTag = iota // null (no payload)
	VTString                   // string
	VTNumber                   // float64
	VTBool                     // bool
	VTArray                    // []Value
	VTObject                   // *Object
	VTFunction                 // *Function
	VTClass                    // *Class
)

// Value is the universal runtime carrier used by the evaluator.
type Value struct {
	Tag  ValueTag
	Data interface{}
}

// Null is the singleton null Value.
var Null = Value{Tag: VTNull}

// Primitive constructors.
func Str(s string) Value       { return Value{Tag: VTString, Data: s} }
func Num(f float64) Value      { return Value{Tag: VTNumber, Data: f} }
func Bool(b bool) Value        { return Value{Tag: VTBool, Data: b} }
func Arr(xs []Value) Value     { return Value{Tag: VTArray, Data: xs} }
func FunVal(f *Function) Value { return Value{Tag: VTFunction, Data: f} }
func ClassVal(c *Class) Value  { return Value{Tag: VTClass, Data: c} }

func nan() float64 { return math.NaN() }

// ParamKind tags a formal parameter descriptor.
type ParamKind int

const (
	ParamRequired ParamKind = iota
	ParamOptional           // has a default value
	ParamSpread             // collects remaining positionals into an Array
)

// FuncParam is one formal parameter. Default is only meaningful for
// ParamOptional and is evaluated once, at function-definition time.
type FuncParam struct {
	Kind    ParamKind
	Name    string
	Default Value
}

// NativeFunc implements a built-in function. It receives the reduced argument
// mapping (parameter name → bound Value) exactly as a user function would.
type NativeFunc func(args map[string]Value) (Value, error)

// Function is a first-class function value: either a user function with an
// AST body, or a native with a Go implementation. Exactly one of Body/Native
// is set.
type Function struct {
	Name   string
	Params []FuncParam
	Body   *BlockNode
	Native NativeFunc
}

// Class is a named bundle of a constructor and prototype methods. Both hold
// VTFunction values created at class-definition time; bodies run only on
// invocation.
type Class struct {
	Name        string
	Constructor Value // VTFunction or Null
	Methods     map[string]Value
}

// TypeName reports the script-visible kind name (the `typeof` result).
func (v Value) TypeName() string {
	switch v.Tag {
	case VTString:
		return "string"
	case VTNumber:
		return "number"
	case VTBool:
		return "boolean"
	case VTArray:
		return "array"
	case VTObject:
		return "object"
	case VTFunction:
		return "function"
	case VTClass:
		return "class"
	default:
		return "null"
	}
}

// AsBool coerces to a boolean. Strings are true iff non-empty, numbers iff
// nonzero, containers iff non-empty; functions and classes are always true.
func (v Value) AsBool() bool {
	switch v.Tag {
	case VTString:
		return v.Data.(string) != ""
	case VTNumber:
		return v.Data.(float64) != 0
	case VTBool:
		return v.Data.(bool)
	case VTArray:
		return len(v.Data.([]Value)) > 0
	case VTObject:
		return v.Data.(*Object).Len() > 0
	case VTFunction, VTClass:
		return true
	default:
		return false
	}
}

// AsNumber coerces to a float64. Unparseable strings and all containers,
// functions and classes become NaN; null is zero.
func (v Value) AsNumber() float64 {
	switch v.Tag {
	case VTString:
		f, err := strconv.ParseFloat(strings.TrimSpace(v.Data.(string)), 64)
		if err != nil {
			return nan()
		}
		return f
	case VTNumber:
		return v.Data.(float64)
	case VTBool:
		if v.Data.(bool) {
			return 1
		}
		return 0
	case VTNull:
		return 0
	default:
		return nan()
	}
}

// AsString renders the value the way scripts observe it (log output, string
// concatenation, interpolation).
func (v Value) AsString() string {
	switch v.Tag {
	case VTString:
		return v.Data.(string)
	case VTNumber:
		return formatNumber(v.Data.(float64))
	case VTBool:
		return strconv.FormatBool(v.Data.(bool))
	case VTArray:
		xs := v.Data.([]Value)
		parts := make([]string, len(xs))
		for i, x := range xs {
			parts[i] = x.AsString()
		}
		return strings.Join(parts, ",")
	case VTObject:
		o := v.Data.(*Object)
		parts := make([]string, 0, o.Len())
		for _, k := range o.SortedKeys() {
			val, _ := o.Get(k)
			parts = append(parts, k+": "+val.AsString())
		}
		return strings.Join(parts, ", ")
	case VTFunction, VTClass:
		return "NotImplemented"
	default:
		return "null"
	}
}

// formatNumber renders a float the way the language expects: integral values
// without a fraction part, NaN as "NaN", shortest round-trippable form
// otherwise (the numeric round-trip law relies on this).
func formatNumber(f float64) string {
	if math.IsNaN(f) {
		return "NaN"
	}
	if math.IsInf(f, 1) {
		return "Infinity"
	}
	if math.IsInf(f, -1) {
		return "-Infinity"
	}
	if f == math.Trunc(f) && math.Abs(f) < 1e21 {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// Compare orders v against other, dispatching on v's kind: strings compare
// lexicographically (other coerced to string), numbers by total float order
// (other coerced to number), booleans as false < true. Every other kind falls
// back to structural ordering with no cross-kind coercion. Returns -1/0/1.
func (v Value) Compare(other Value) int {
	switch v.Tag {
	case VTString:
		return strings.Compare(v.Data.(string), other.AsString())
	case VTNumber:
		return compareFloats(v.Data.(float64), other.AsNumber())
	case VTBool:
		a, b := v.Data.(bool), other.AsBool()
		switch {
		case a == b:
			return 0
		case !a:
			return -1
		default:
			return 1
		}
	default:
		return structuralCompare(v, other)
	}
}

// compareFloats is a total order: NaN compares equal to NaN and above every
// other value, so comparison operators stay deterministic.
func compareFloats(a, b float64) int {
	aNaN, bNaN := math.IsNaN(a), math.IsNaN(b)
	switch {
	case aNaN && bNaN:
		return 0
	case aNaN:
		return 1
	case bNaN:
		return -1
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func structuralCompare(a, b Value) int {
	if a.Tag != b.Tag {
		if a.Tag < b.Tag {
			return -1
		}
		return 1
	}
	switch a.Tag {
	case VTNull:
		return 0
	case VTArray:
		ax, bx := a.Data.([]Value), b.Data.([]Value)
		for i := 0; i < len(ax) && i < len(bx); i++ {
			if c := ax[i].Compare(bx[i]); c != 0 {
				return c
			}
		}
		return len(ax) - len(bx)
	case VTObject:
		ao, bo := a.Data.(*Object), b.Data.(*Object)
		ak, bk := ao.SortedKeys(), bo.SortedKeys()
		for i := 0; i < len(ak) && i < len(bk); i++ {
			if c := strings.Compare(ak[i], bk[i]); c != 0 {
				return c
			}
			av, _ := ao.Get(ak[i])
			bv, _ := bo.Get(bk[i])
			if c := av.Compare(bv); c != 0 {
				return c
			}
		}
		return len(ak) - len(bk)
	case VTFunction:
		if a.Data.(*Function) == b.Data.(*Function) {
			return 0
		}
		return strings.Compare(a.Data.(*Function).Name, b.Data.(*Function).Name)
	case VTClass:
		if a.Data.(*Class) == b.Data.(*Class) {
			return 0
		}
		return strings.Compare(a.Data.(*Class).Name, b.Data.(*Class).Name)
	default:
		// scalars with equal tags only reach here via Compare fallback
		return strings.Compare(a.AsString(), b.AsString())
	}
}

// Equal is deep structural equality, used for switch-case matching. Unlike
// Compare it never coerces across kinds.
func (v Value) Equal(other Value) bool {
	if v.Tag != other.Tag {
		return false
	}
	switch v.Tag {
	case VTNull:
		return true
	case VTString:
		return v.Data.(string) == other.Data.(string)
	case VTNumber:
		return v.Data.(float64) == other.Data.(float64)
	case VTBool:
		return v.Data.(bool) == other.Data.(bool)
	case VTArray:
		ax, bx := v.Data.([]Value), other.Data.([]Value)
		if len(ax) != len(bx) {
			return false
		}
		for i := range ax {
			if !ax[i].Equal(bx[i]) {
				return false
			}
		}
		return true
	case VTObject:
		ao, bo := v.Data.(*Object), other.Data.(*Object)
		if ao.Len() != bo.Len() {
			return false
		}
		for _, k := range ao.SortedKeys() {
			av, _ := ao.Get(k)
			bv, ok := bo.Get(k)
			if !ok || !av.Equal(bv) {
				return false
			}
		}
		return true
	case VTFunction:
		return v.Data.(*Function) == other.Data.(*Function)
	case VTClass:
		return v.Data.(*Class) == other.Data.(*Class)
	}
	return false
}

// Clone yields an independent logical copy. Containers copy deeply; scalars,
// functions and classes are immutable-enough to share.
func (v Value) Clone() Value {
	switch v.Tag {
	case VTArray:
		xs := v.Data.([]Value)
		out := make([]Value, len(xs))
		for i, x := range xs {
			out[i] = x.Clone()
		}
		return Arr(out)
	case VTObject:
		return Value{Tag: VTObject, Data: v.Data.(*Object).Clone()}
	default:
		return v
	}
}

// GetField performs a type-directed read of key against v.
//
//	String + "length"        → rune count
//	String + integer index   → one-character string (negative = from end;
//	                           out of range is an error)
//	Array  + "length"        → element count
//	Array  + integer index   → element copy or Null (negative = from end)
//	Object + string key      → bound value copy or Null
//
// Any other (container, key) pairing is an error.
func (v Value) GetField(key Value) (Value, error) {
	switch v.Tag {
	case VTString:
		runes := []rune(v.Data.(string))
		switch key.Tag {
		case VTString:
			if key.Data.(string) == "length" {
				return Num(float64(len(runes))), nil
			}
			return Null, nil
		case VTNumber:
			idx := int(key.Data.(float64))
			if idx < 0 {
				idx += len(runes)
			}
			if idx < 0 || idx >= len(runes) {
				return Null, fmt.Errorf("string index %s out of range", key.AsString())
			}
			return Str(string(runes[idx])), nil
		default:
			return Null, fmt.Errorf("expected number or string index, got %s", key.TypeName())
		}

	case VTArray:
		xs := v.Data.([]Value)
		switch key.Tag {
		case VTString:
			if key.Data.(string) == "length" {
				return Num(float64(len(xs))), nil
			}
			return Null, nil
		case VTNumber:
			idx := int(key.Data.(float64))
			if idx < 0 {
				idx += len(xs)
			}
			if idx < 0 || idx >= len(xs) {
				return Null, nil
			}
			return xs[idx].Clone(), nil
		default:
			return Null, fmt.Errorf("expected number or string index, got %s", key.TypeName())
		}

	case VTObject:
		if key.Tag != VTString {
			return Null, fmt.Errorf("expected string key, got %s", key.TypeName())
		}
		if val, ok := v.Data.(*Object).Get(key.Data.(string)); ok {
			return val.Clone(), nil
		}
		return Null, nil

	default:
		return Null, fmt.Errorf("cannot read field of %s", v.TypeName())
	}
}

// SetField writes value under key and returns the mutated container. Only
// Array + integer index and Object + string key are writable.
func (v Value) SetField(key Value, value Value) (Value, error) {
	switch v.Tag {
	case VTArray:
		if key.Tag != VTNumber {
			return Null, fmt.Errorf("expected number index, got %s", key.TypeName())
		}
		xs := v.Data.([]Value)
		idx := int(key.Data.(float64))
		if idx < 0 {
			idx += len(xs)
		}
		if idx < 0 || idx >= len(xs) {
			return Null, fmt.Errorf("array index %s out of range", key.AsString())
		}
		xs[idx] = value
		return v, nil

	case VTObject:
		if key.Tag != VTString {
			return Null, fmt.Errorf("expected string key, got %s", key.TypeName())
		}
		v.Data.(*Object).Set(key.Data.(string), value)
		return v, nil

	default:
		return Null, fmt.Errorf("cannot assign field of %s", v.TypeName())
	}
}
