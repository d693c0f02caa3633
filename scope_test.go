package coco

import "testing"

func TestScopeChainLookup(t *testing.T) {
	root := NewScope(nil)
	root.Set("x", Num(1))
	child := NewScope(root)
	grandchild := NewScope(child)

	if grandchild.Get("x").AsNumber() != 1 {
		t.Fatal("lookup should walk the chain")
	}
	wantNull(t, grandchild.Get("missing"))
}

func TestScopeSetBindsLocally(t *testing.T) {
	root := NewScope(nil)
	root.Set("x", Num(1))
	child := NewScope(root)
	child.Set("x", Num(2))

	if child.Get("x").AsNumber() != 2 {
		t.Fatal("child should shadow")
	}
	if root.Get("x").AsNumber() != 1 {
		t.Fatal("root binding must be untouched")
	}
}

func TestScopeSetReturnsPrevious(t *testing.T) {
	s := NewScope(nil)
	wantNull(t, s.Set("x", Num(1)))
	prev := s.Set("x", Num(2))
	if prev.AsNumber() != 1 {
		t.Fatalf("previous: %#v", prev)
	}
}

func TestScopeSetWhereDefined(t *testing.T) {
	root := NewScope(nil)
	root.Set("xs", Arr([]Value{Num(1)}))
	child := NewScope(root)

	child.SetWhereDefined("xs", Arr([]Value{Num(9)}))
	if root.Get("xs").Data.([]Value)[0].AsNumber() != 9 {
		t.Fatal("write-back should hit the owning frame")
	}
	if child.Has("xs") {
		t.Fatal("child must not gain a shadow binding")
	}

	child.SetWhereDefined("fresh", Num(1))
	if !child.Has("fresh") {
		t.Fatal("unbound names land in the current frame")
	}
}

func TestRootScopeBuiltins(t *testing.T) {
	root := NewRootScope()
	for _, name := range []string{"log", "write", "num", "str", "bool"} {
		if root.Get(name).Tag != VTFunction {
			t.Fatalf("builtin %q missing", name)
		}
	}
}
