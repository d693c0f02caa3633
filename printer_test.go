package coco

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatValuePlain(t *testing.T) {
	assert.Equal(t, "null", FormatValue(Null))
	assert.Equal(t, "'hi'", FormatValue(Str("hi")))
	assert.Equal(t, "3", FormatValue(Num(3)))
	assert.Equal(t, "true", FormatValue(Bool(true)))
}

func TestFormatValueQuotesEscapes(t *testing.T) {
	assert.Equal(t, `'a\n\'b\''`, FormatValue(Str("a\n'b'")))
}

func TestFormatValueContainers(t *testing.T) {
	assert.Equal(t, "[1, 'x']", FormatValue(Arr([]Value{Num(1), Str("x")})))

	o := NewObject()
	o.Set("b", Num(2))
	o.Set("a", Arr([]Value{Null}))
	assert.Equal(t, "{a: [null], b: 2}", FormatValue(Obj(o)))
}

func TestFormatValueFunctions(t *testing.T) {
	assert.Equal(t, "fun f", FormatValue(FunVal(&Function{Name: "f"})))
	assert.Equal(t, "fun", FormatValue(FunVal(&Function{})))
	assert.Equal(t, "class C", FormatValue(ClassVal(&Class{Name: "C"})))
}

func TestFormatValueColorToggle(t *testing.T) {
	old := EnableColor
	defer func() { EnableColor = old }()

	EnableColor = false
	assert.Equal(t, "'x'", FormatValue(Str("x")))

	EnableColor = true
	colored := FormatValue(Str("x"))
	assert.Contains(t, colored, "'x'")
	assert.True(t, strings.Contains(colored, "\x1b[") || colored == "'x'")
}
