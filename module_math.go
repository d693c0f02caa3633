// module_math.go: the `math` module.
//
// Constants: PI. Functions: pow, abs, ceil, floor, round, random (uniform in
// [0,1)), max, min, sin, cos, tan. All numeric arguments are coerced with
// AsNumber, so `math.abs("-3")` is 3 while `math.abs("x")` is NaN.
package coco

import (
	"math"
	"math/rand"
)

func mathModule(ip *Interpreter) Value {
	ns := NewObject()
	ns.Set("PI", Num(math.Pi))

	unary := func(name string, f func(float64) float64) {
		ns.Set(name, nativeFn(name, required("num"), func(args map[string]Value) (Value, error) {
			return Num(f(args["num"].AsNumber())), nil
		}))
	}
	unary("abs", math.Abs)
	unary("ceil", math.Ceil)
	unary("floor", math.Floor)
	unary("round", math.Round)
	unary("sin", math.Sin)
	unary("cos", math.Cos)
	unary("tan", math.Tan)

	ns.Set("pow", nativeFn("pow", required("num", "pow"), func(args map[string]Value) (Value, error) {
		return Num(math.Pow(args["num"].AsNumber(), args["pow"].AsNumber())), nil
	}))
	ns.Set("max", nativeFn("max", required("num1", "num2"), func(args map[string]Value) (Value, error) {
		return Num(math.Max(args["num1"].AsNumber(), args["num2"].AsNumber())), nil
	}))
	ns.Set("min", nativeFn("min", required("num1", "num2"), func(args map[string]Value) (Value, error) {
		return Num(math.Min(args["num1"].AsNumber(), args["num2"].AsNumber())), nil
	}))
	ns.Set("random", nativeFn("random", nil, func(args map[string]Value) (Value, error) {
		return Num(rand.Float64()), nil
	}))
	return Obj(ns)
}
