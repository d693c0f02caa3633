// interpreter_ops.go: PRIVATE: operator semantics and string interpolation.
//
// Binary arithmetic dispatches on the LEFT operand's kind; the right operand
// is coerced to match. The tables here are total: every (kind, operator)
// pairing produces a Value, with NaN standing in for combinations that have
// no numeric meaning. Comparison rides Value.Compare, logical operators ride
// Value.AsBool; both sides of && and || are always evaluated by the caller.
package coco

import (
	"math"
	"strings"
)

func applyBinary(op BinaryOp, left, right Value) Value {
	switch left.Tag {
	case VTString:
		return stringBinary(op, left.Data.(string), right)
	case VTNumber, VTBool:
		return numericBinary(op, left.AsNumber(), right.AsNumber())
	case VTNull:
		return nullBinary(op, right)
	default:
		// Array, Object, Function, Class: + renders both sides as text,
		// everything else has no numeric meaning.
		if op == OpAdd {
			return Str(left.AsString() + right.AsString())
		}
		return Num(nan())
	}
}

func stringBinary(op BinaryOp, left string, right Value) Value {
	switch op {
	case OpAdd:
		return Str(left + right.AsString())
	case OpMul:
		return Str(repeatString(left, right.AsNumber()))
	default:
		return Num(nan())
	}
}

func repeatString(s string, count float64) string {
	if math.IsNaN(count) || count < 1 {
		return ""
	}
	return strings.Repeat(s, int(count))
}

func numericBinary(op BinaryOp, left, right float64) Value {
	switch op {
	case OpAdd:
		return Num(left + right)
	case OpSub:
		return Num(left - right)
	case OpMul:
		return Num(left * right)
	case OpDiv:
		return Num(left / right)
	case OpRem:
		return Num(math.Mod(left, right))
	case OpPow:
		return Num(math.Pow(left, right))
	default:
		return Num(nan())
	}
}

// nullBinary treats Null as the additive identity: + yields the RHS
// unchanged, - negates it, * zeroes it, and the remaining operators treat
// Null as numeric zero.
func nullBinary(op BinaryOp, right Value) Value {
	switch op {
	case OpAdd:
		return right
	case OpSub:
		return Num(-right.AsNumber())
	case OpMul:
		return Num(0)
	default:
		return numericBinary(op, 0, right.AsNumber())
	}
}

func applyLogical(op LogicalOp, left, right Value) Value {
	switch op {
	case OpAnd:
		return Bool(left.AsBool() && right.AsBool())
	case OpOr:
		return Bool(left.AsBool() || right.AsBool())
	case OpEq:
		return Bool(left.Compare(right) == 0)
	case OpNotEq:
		return Bool(left.Compare(right) != 0)
	case OpLess:
		return Bool(left.Compare(right) < 0)
	case OpLessEq:
		return Bool(left.Compare(right) <= 0)
	case OpGreater:
		return Bool(left.Compare(right) > 0)
	default:
		return Bool(left.Compare(right) >= 0)
	}
}

func applyUnary(op UnaryOp, operand Value) Value {
	switch op {
	case OpNot:
		return Bool(!operand.AsBool())
	default:
		switch operand.Tag {
		case VTNumber, VTBool, VTNull, VTString:
			return Num(-operand.AsNumber())
		default:
			return Num(nan())
		}
	}
}

// interpolate substitutes $name runs in a string literal with the named
// variable's string rendering. A $ not followed by an identifier character
// is literal text; undefined names render as "null" like any other Null.
func (ip *Interpreter) interpolate(s string, scope *Scope) string {
	if !strings.ContainsRune(s, '$') {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		c := s[i]
		if c != '$' {
			b.WriteByte(c)
			i++
			continue
		}
		j := i + 1
		if j < len(s) && isAlpha(s[j]) {
			j++
			for j < len(s) && isAlphaNum(s[j]) {
				j++
			}
			b.WriteString(scope.Get(s[i+1 : j]).AsString())
			i = j
			continue
		}
		b.WriteByte(c)
		i++
	}
	return b.String()
}
