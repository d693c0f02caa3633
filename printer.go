// printer.go: REPL/CLI value rendering.
//
// FormatValue renders a Value the way the REPL echoes results: strings
// quoted and green, numbers yellow, booleans blue, null dimmed; arrays and
// objects recurse with their elements colored. Coloring is off by default
// (EnableColor), and plain AsString output is unaffected, so scripts using
// log/write never see ANSI escapes.
package coco

import (
	"strings"

	"github.com/fatih/color"
)

// EnableColor turns on ANSI coloring in FormatValue. The CLI enables it when
// standard output is a terminal; tests leave it false.
var EnableColor = false

var (
	stringColor = color.New(color.FgGreen)
	numberColor = color.New(color.FgYellow)
	boolColor   = color.New(color.FgBlue)
	nullColor   = color.New(color.Faint)
)

func paint(c *color.Color, s string) string {
	if !EnableColor {
		return s
	}
	return c.Sprint(s)
}

// FormatValue renders v for interactive display.
func FormatValue(v Value) string {
	switch v.Tag {
	case VTNull:
		return paint(nullColor, "null")
	case VTString:
		return paint(stringColor, quoteString(v.Data.(string)))
	case VTNumber:
		return paint(numberColor, formatNumber(v.Data.(float64)))
	case VTBool:
		return paint(boolColor, v.AsString())
	case VTArray:
		elems := v.Data.([]Value)
		parts := make([]string, len(elems))
		for i, e := range elems {
			parts[i] = FormatValue(e)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case VTObject:
		obj := v.Data.(*Object)
		keys := obj.SortedKeys()
		parts := make([]string, len(keys))
		for i, k := range keys {
			member, _ := obj.Get(k)
			parts[i] = k + ": " + FormatValue(member)
		}
		return "{" + strings.Join(parts, ", ") + "}"
	case VTFunction:
		fn := v.Data.(*Function)
		if fn.Name != "" {
			return "fun " + fn.Name
		}
		return "fun"
	case VTClass:
		return "class " + v.Data.(*Class).Name
	default:
		return v.AsString()
	}
}

func quoteString(s string) string {
	var b strings.Builder
	b.WriteByte('\'')
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '\'':
			b.WriteString(`\'`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('\'')
	return b.String()
}
