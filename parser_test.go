package coco

import (
	"strings"
	"testing"
)

func mustParse(t *testing.T, src string) *BlockNode {
	t.Helper()
	prog, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse(%q): %v", src, err)
	}
	return prog
}

func wantParseError(t *testing.T, src, substr string) {
	t.Helper()
	_, err := Parse(src)
	if err == nil {
		t.Fatalf("want parse error containing %q for %q", substr, src)
	}
	if _, ok := err.(*ParseError); !ok {
		t.Fatalf("want *ParseError, got %T: %v", err, err)
	}
	if !strings.Contains(err.Error(), substr) {
		t.Fatalf("want error containing %q, got: %v", substr, err)
	}
}

func TestParseLet(t *testing.T) {
	prog := mustParse(t, `let x = 1 + 2`)
	if len(prog.Statements) != 1 {
		t.Fatalf("statements: %d", len(prog.Statements))
	}
	assign, ok := prog.Statements[0].(*AssignNode)
	if !ok {
		t.Fatalf("want *AssignNode, got %T", prog.Statements[0])
	}
	target, ok := assign.Target.(*VarNode)
	if !ok || target.Name != "x" {
		t.Fatalf("target: %#v", assign.Target)
	}
	if _, ok := assign.Value.(*BinaryNode); !ok {
		t.Fatalf("value: %T", assign.Value)
	}
}

func TestParsePrecedence(t *testing.T) {
	prog := mustParse(t, `let r = 1 + 2 * 3`)
	assign := prog.Statements[0].(*AssignNode)
	add := assign.Value.(*BinaryNode)
	if add.Op != OpAdd {
		t.Fatalf("top op: %v", add.Op)
	}
	mul, ok := add.Right.(*BinaryNode)
	if !ok || mul.Op != OpMul {
		t.Fatalf("right: %#v", add.Right)
	}
}

func TestParsePowerIsRightAssociative(t *testing.T) {
	prog := mustParse(t, `let r = 2 ** 3 ** 2`)
	outer := prog.Statements[0].(*AssignNode).Value.(*BinaryNode)
	if outer.Op != OpPow {
		t.Fatalf("op: %v", outer.Op)
	}
	if _, ok := outer.Right.(*BinaryNode); !ok {
		t.Fatalf("want nested power on the right, got %T", outer.Right)
	}
}

func TestParseFieldAccessFoldsPath(t *testing.T) {
	prog := mustParse(t, `let r = a.b[0].c`)
	fa, ok := prog.Statements[0].(*AssignNode).Value.(*FieldAccessNode)
	if !ok {
		t.Fatalf("want *FieldAccessNode, got %T", prog.Statements[0].(*AssignNode).Value)
	}
	if len(fa.Indices) != 3 {
		t.Fatalf("indices: %d", len(fa.Indices))
	}
	if v, ok := fa.Base.(*VarNode); !ok || v.Name != "a" {
		t.Fatalf("base: %#v", fa.Base)
	}
}

func TestParseAssignmentPromotion(t *testing.T) {
	prog := mustParse(t, `a.b = 1`)
	if _, ok := prog.Statements[0].(*AssignNode); !ok {
		t.Fatalf("want *AssignNode, got %T", prog.Statements[0])
	}
	prog = mustParse(t, `x += 2`)
	ca, ok := prog.Statements[0].(*CompoundAssignNode)
	if !ok {
		t.Fatalf("want *CompoundAssignNode, got %T", prog.Statements[0])
	}
	if ca.Op != OpAdd {
		t.Fatalf("op: %v", ca.Op)
	}
}

func TestParseFunctionParams(t *testing.T) {
	prog := mustParse(t, `fun f(a, b = 2, ...rest) {}`)
	fn := prog.Statements[0].(*FunNode)
	if len(fn.Params) != 3 {
		t.Fatalf("params: %d", len(fn.Params))
	}
	if fn.Params[0].Kind != ParamRequired || fn.Params[1].Kind != ParamOptional || fn.Params[2].Kind != ParamSpread {
		t.Fatalf("kinds: %#v", fn.Params)
	}
	if fn.Params[1].Default == nil {
		t.Fatal("optional default missing")
	}
}

func TestParseSpreadMustBeLast(t *testing.T) {
	wantParseError(t, `fun f(...rest, a) {}`, "spread parameter must be last")
}

func TestParseTernary(t *testing.T) {
	prog := mustParse(t, `let r = a > 1 ? "x" : "y"`)
	tern, ok := prog.Statements[0].(*AssignNode).Value.(*TernaryNode)
	if !ok {
		t.Fatalf("want *TernaryNode, got %T", prog.Statements[0].(*AssignNode).Value)
	}
	if _, ok := tern.Cond.(*LogicalNode); !ok {
		t.Fatalf("cond: %T", tern.Cond)
	}
}

func TestParseSwitchShapes(t *testing.T) {
	prog := mustParse(t, `
		switch (x) {
			case 1:
			case 2: return "a"
			default: return "b"
		}
	`)
	sw := prog.Statements[0].(*SwitchNode)
	if len(sw.Cases) != 3 {
		t.Fatalf("cases: %d", len(sw.Cases))
	}
	if sw.Cases[0].Body != nil {
		t.Fatal("case 1 should be a fallthrough")
	}
	if sw.Cases[2].Value != nil {
		t.Fatal("default should have nil value")
	}
}

func TestParseDuplicateDefault(t *testing.T) {
	wantParseError(t, `switch (x) { default: return 1 default: return 2 }`, "default")
}

func TestParseClass(t *testing.T) {
	prog := mustParse(t, `
		class Point {
			constructor(x) { this.x = x }
			norm() { return this.x }
		}
	`)
	cls := prog.Statements[0].(*ClassNode)
	if cls.Name != "Point" || cls.Constructor == nil || len(cls.Methods) != 1 {
		t.Fatalf("class: %#v", cls)
	}
	if cls.Methods[0].Name != "norm" {
		t.Fatalf("method: %q", cls.Methods[0].Name)
	}
}

func TestParseDuplicateConstructor(t *testing.T) {
	wantParseError(t, `class C { constructor() {} constructor() {} }`, "two constructors")
}

func TestParseImportForms(t *testing.T) {
	imp := mustParse(t, `import io`).Statements[0].(*ImportNode)
	if imp.Module != "io" || len(imp.Names) != 0 {
		t.Fatalf("import: %#v", imp)
	}
	imp = mustParse(t, `import min, max from math`).Statements[0].(*ImportNode)
	if imp.Module != "math" || len(imp.Names) != 2 || imp.Names[1] != "max" {
		t.Fatalf("selective import: %#v", imp)
	}
}

func TestParseImportListNeedsFrom(t *testing.T) {
	wantParseError(t, `import min, max`, "from")
}

func TestParseUnclosedBlock(t *testing.T) {
	wantParseError(t, `fun f() { let x = 1`, "close")
}

func TestParseErrorPosition(t *testing.T) {
	_, err := Parse("let x = 1\nlet = 2")
	pe, ok := err.(*ParseError)
	if !ok {
		t.Fatalf("want *ParseError, got %T: %v", err, err)
	}
	if pe.Line != 2 {
		t.Fatalf("line: %d", pe.Line)
	}
}

func TestParseNewExpression(t *testing.T) {
	prog := mustParse(t, `let p = new Point(1, 2)`)
	nn, ok := prog.Statements[0].(*AssignNode).Value.(*NewNode)
	if !ok || nn.Name != "Point" || len(nn.Args) != 2 {
		t.Fatalf("new: %#v", prog.Statements[0].(*AssignNode).Value)
	}
}
