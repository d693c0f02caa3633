// errors.go: user-facing error wrapping and caret-snippet rendering
//
// Turns low-level lexer/parser/runtime diagnostics into readable snippets
// with a caret pointing at the offending column:
//
//	PARSE ERROR at 3:12: unexpected token ')'
//
//	   2 | let x = (1 + 2
//	   3 |              )
//	       |            ^
//	   4 | log(x)
//
// The snippet includes up to one line of context before and after the error,
// numbers the lines, and places a caret under the 1-based column.
//
// `WrapErrorWithSource` recognizes `*LexError` (lexer.go), `*ParseError`
// (parser.go) and `*RuntimeError` (interpreter.go); any other error is
// returned unchanged. Lex/parse Col fields are 0-based and rendered 1-based;
// RuntimeError carries 1-based coordinates already. Out-of-range coordinates
// are clamped so rendering never panics on short or empty sources.
package coco

import (
	"fmt"
	"strings"
)

// WrapErrorWithSource returns an error augmented with a caret-annotated
// snippet of the provided source. It recognizes lexer/parser/runtime errors
// and leaves other errors untouched.
func WrapErrorWithSource(err error, src string) error {
	// Fall back to a name-less header (won't show "in <src>").
	return WrapErrorWithName(err, "", src)
}

// WrapErrorWithName is WrapErrorWithSource with an origin label, typically a
// file name, woven into the header line.
func WrapErrorWithName(err error, srcName string, src string) error {
	switch e := err.(type) {
	case *LexError:
		return fmt.Errorf("%s", prettyErrorStringLabeled(src, "LEXICAL ERROR", srcName, e.Line, e.Col+1, e.Msg))
	case *ParseError:
		return fmt.Errorf("%s", prettyErrorStringLabeled(src, "PARSE ERROR", srcName, e.Line, e.Col+1, e.Msg))
	case *RuntimeError:
		return fmt.Errorf("%s", prettyErrorStringLabeled(src, "RUNTIME ERROR", srcName, e.Line, e.Col, e.Msg))
	default:
		return err
	}
}

// prettyErrorStringLabeled builds a Python-like snippet with a header and a
// caret. It shows at most one previous and one next line when available.
// Coordinates are treated as 1-based and clamped to the source bounds.
func prettyErrorStringLabeled(src, header, name string, line, col int, msg string) string {
	lines := strings.Split(src, "\n")
	if line < 1 {
		line = 1
	}
	if col < 1 {
		col = 1
	}
	if len(lines) == 0 {
		lines = []string{""}
	}
	if line > len(lines) {
		line = len(lines)
	}
	lineTxt := lines[line-1]

	var b strings.Builder
	if name != "" {
		fmt.Fprintf(&b, "%s in %s at %d:%d: %s\n\n", header, name, line, col, msg)
	} else {
		fmt.Fprintf(&b, "%s at %d:%d: %s\n\n", header, line, col, msg)
	}
	if line > 1 {
		fmt.Fprintf(&b, "%4d | %s\n", line-1, lines[line-2])
	}
	fmt.Fprintf(&b, "%4d | %s\n", line, lineTxt)
	caretPad := col - 1
	if caretPad < 0 {
		caretPad = 0
	}
	fmt.Fprintf(&b, "     | %s^\n", strings.Repeat(" ", caretPad))
	if line < len(lines) {
		fmt.Fprintf(&b, "%4d | %s\n", line+1, lines[line])
	}
	return b.String()
}
