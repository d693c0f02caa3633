package coco

import "testing"

func makeNested() Value {
	// {a: {b: [10, 20]}}
	inner := NewObject()
	inner.Set("b", Arr([]Value{Num(10), Num(20)}))
	outer := NewObject()
	outer.Set("a", Obj(inner))
	return Obj(outer)
}

func TestAccessorGet(t *testing.T) {
	v, err := NewFieldAccessor(makeNested(), []Value{Str("a"), Str("b"), Num(1)}).Get()
	if err != nil {
		t.Fatal(err)
	}
	wantNum(t, v, 20)
}

func TestAccessorGetNegativeIndex(t *testing.T) {
	v, err := NewFieldAccessor(makeNested(), []Value{Str("a"), Str("b"), Num(-1)}).Get()
	if err != nil {
		t.Fatal(err)
	}
	wantNum(t, v, 20)
}

func TestAccessorSetLeavesBaseUntouched(t *testing.T) {
	base := makeNested()
	mutated, err := NewFieldAccessor(base, []Value{Str("a"), Str("b"), Num(0)}).Set(Num(99))
	if err != nil {
		t.Fatal(err)
	}

	read := func(v Value) float64 {
		got, err := NewFieldAccessor(v, []Value{Str("a"), Str("b"), Num(0)}).Get()
		if err != nil {
			t.Fatal(err)
		}
		return got.AsNumber()
	}
	if read(mutated) != 99 {
		t.Fatal("mutation missing from returned container")
	}
	if read(base) != 10 {
		t.Fatal("original container must be unchanged")
	}
}

func TestAccessorSetSingleLevel(t *testing.T) {
	base := Arr([]Value{Num(1), Num(2)})
	mutated, err := NewFieldAccessor(base, []Value{Num(1)}).Set(Num(7))
	if err != nil {
		t.Fatal(err)
	}
	got, _ := mutated.GetField(Num(1))
	wantNum(t, got, 7)
}

func TestAccessorSetErrors(t *testing.T) {
	if _, err := NewFieldAccessor(Num(5), []Value{Str("x")}).Set(Num(1)); err == nil {
		t.Fatal("assigning into a number")
	}
	base := Arr([]Value{Num(1)})
	if _, err := NewFieldAccessor(base, []Value{Num(9)}).Set(Num(1)); err == nil {
		t.Fatal("out of range write")
	}
}

func TestAccessorGetErrors(t *testing.T) {
	if _, err := NewFieldAccessor(Num(5), []Value{Str("x")}).Get(); err == nil {
		t.Fatal("reading a field of a number")
	}
}
