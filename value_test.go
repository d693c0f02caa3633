package coco

import (
	"math"
	"strconv"
	"testing"
)

func TestAsNumberCoercions(t *testing.T) {
	if Str(" 42.5 ").AsNumber() != 42.5 {
		t.Fatal("string with spaces")
	}
	if !math.IsNaN(Str("nope").AsNumber()) {
		t.Fatal("non-numeric string")
	}
	if Bool(true).AsNumber() != 1 || Bool(false).AsNumber() != 0 {
		t.Fatal("boolean")
	}
	if Null.AsNumber() != 0 {
		t.Fatal("null")
	}
	if !math.IsNaN(Arr([]Value{}).AsNumber()) {
		t.Fatal("array")
	}
}

func TestAsBoolCoercions(t *testing.T) {
	cases := []struct {
		v    Value
		want bool
	}{
		{Null, false},
		{Str(""), false},
		{Str("x"), true},
		{Num(0), false},
		{Num(3), true},
		{Num(-1), true},
		{Bool(true), true},
		{Arr(nil), false},
		{Arr([]Value{Num(1)}), true},
		{Obj(NewObject()), false},
	}
	for i, c := range cases {
		if c.v.AsBool() != c.want {
			t.Fatalf("case %d (%#v): want %v", i, c.v, c.want)
		}
	}
}

func TestNumberRoundTrip(t *testing.T) {
	for _, f := range []float64{0, 1, -1, 0.5, 1e20, 123456.789, 1.0 / 3.0, -2.5e-10} {
		s := Num(f).AsString()
		back, err := strconv.ParseFloat(s, 64)
		if err != nil || back != f {
			t.Fatalf("round trip %g via %q: got %g, %v", f, s, back, err)
		}
	}
}

func TestNumberFormatting(t *testing.T) {
	if Num(3).AsString() != "3" {
		t.Fatalf("integral: %q", Num(3).AsString())
	}
	if Num(math.NaN()).AsString() != "NaN" {
		t.Fatal("NaN")
	}
	if Num(math.Inf(1)).AsString() != "Infinity" || Num(math.Inf(-1)).AsString() != "-Infinity" {
		t.Fatal("infinities")
	}
}

func TestAsStringRendering(t *testing.T) {
	if got := Arr([]Value{Num(1), Str("a")}).AsString(); got != "1,a" {
		t.Fatalf("array: %q", got)
	}
	o := NewObject()
	o.Set("b", Num(2))
	o.Set("a", Num(1))
	if got := Obj(o).AsString(); got != "a: 1, b: 2" {
		t.Fatalf("object keys not sorted: %q", got)
	}
	fn := FunVal(&Function{Name: "f"})
	if fn.AsString() != "NotImplemented" {
		t.Fatalf("function: %q", fn.AsString())
	}
}

func TestCompareStrings(t *testing.T) {
	if Str("abc").Compare(Str("abd")) >= 0 {
		t.Fatal("lexicographic")
	}
	if Str("10").Compare(Num(10)) != 0 {
		t.Fatal("string coerces other side")
	}
}

func TestCompareNumbers(t *testing.T) {
	if Num(1).Compare(Num(2)) >= 0 || Num(2).Compare(Num(1)) <= 0 {
		t.Fatal("ordering")
	}
	if Num(10).Compare(Str("10")) != 0 {
		t.Fatal("number coerces other side")
	}
	if Num(math.NaN()).Compare(Num(math.NaN())) != 0 {
		t.Fatal("NaN total order")
	}
	if Num(math.NaN()).Compare(Num(1e308)) <= 0 {
		t.Fatal("NaN sorts above numbers")
	}
}

func TestCompareStructural(t *testing.T) {
	a := Arr([]Value{Num(1), Num(2)})
	b := Arr([]Value{Num(1), Num(2)})
	if a.Compare(b) != 0 {
		t.Fatal("equal arrays")
	}
	if a.Compare(Arr([]Value{Num(1), Num(3)})) >= 0 {
		t.Fatal("elementwise ordering")
	}
	if a.Compare(Num(1)) == 0 {
		t.Fatal("no cross-kind coercion for arrays")
	}
}

func TestEqualIsDeepWithoutCoercion(t *testing.T) {
	if Str("1").Equal(Num(1)) {
		t.Fatal("no coercion")
	}
	o1 := NewObject()
	o1.Set("a", Arr([]Value{Num(1)}))
	o2 := NewObject()
	o2.Set("a", Arr([]Value{Num(1)}))
	if !Obj(o1).Equal(Obj(o2)) {
		t.Fatal("deep equality")
	}
}

func TestCloneIsDeep(t *testing.T) {
	inner := []Value{Num(1)}
	orig := Arr([]Value{Arr(inner)})
	clone := orig.Clone()
	clone.Data.([]Value)[0].Data.([]Value)[0] = Num(99)
	if inner[0].Data.(float64) != 1 {
		t.Fatal("clone shares inner array")
	}
}

func TestGetFieldWriteThenRead(t *testing.T) {
	xs := Arr([]Value{Num(1), Num(2)})
	mutated, err := xs.SetField(Num(1), Str("x"))
	if err != nil {
		t.Fatal(err)
	}
	got, err := mutated.GetField(Num(1))
	if err != nil || got.AsString() != "x" {
		t.Fatalf("array write-then-read: %#v, %v", got, err)
	}

	o := Obj(NewObject())
	mutated, err = o.SetField(Str("k"), Num(7))
	if err != nil {
		t.Fatal(err)
	}
	got, err = mutated.GetField(Str("k"))
	if err != nil || got.AsNumber() != 7 {
		t.Fatalf("object write-then-read: %#v, %v", got, err)
	}
}

func TestGetFieldErrors(t *testing.T) {
	if _, err := Num(1).GetField(Str("x")); err == nil {
		t.Fatal("indexing a number")
	}
	if _, err := Str("ab").GetField(Num(9)); err == nil {
		t.Fatal("string index out of range")
	}
	if v, err := Arr([]Value{Num(1)}).GetField(Num(9)); err != nil || v.Tag != VTNull {
		t.Fatalf("array out of range should be null: %#v, %v", v, err)
	}
	if _, err := Obj(NewObject()).GetField(Num(1)); err == nil {
		t.Fatal("object with number key")
	}
}

func TestSetFieldErrors(t *testing.T) {
	if _, err := Arr([]Value{}).SetField(Num(0), Num(1)); err == nil {
		t.Fatal("array out of range write")
	}
	if _, err := Str("ab").SetField(Num(0), Str("c")); err == nil {
		t.Fatal("strings are not writable")
	}
}
