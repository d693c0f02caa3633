// module_io.go: the `io` module.
//
// Members:
//
//	io.argv         Array of process arguments after the script path.
//	io.read(...)    Prints its arguments as a prompt, then reads one line
//	                from standard input (trailing newline stripped). Null
//	                on end of input.
//	io.stdin.read   Same function as io.read.
//	io.stdout.write Variadic line writer, space-joined like log.
package coco

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Input is where io.read reads from. Swappable by hosts and tests, like
// LogOutput in scope.go; swap before the first read, the line reader is
// built lazily on first use.
var Input io.Reader = os.Stdin

var inputLines *bufio.Scanner

// Argv holds the script-visible process arguments. The CLI fills it with
// everything after the script path; embedders may set their own.
var Argv []string

func ioModule(ip *Interpreter) Value {
	readFn := nativeFn("read", spread("vals"), ioRead)

	argv := []Value{}
	for _, a := range Argv {
		argv = append(argv, Str(a))
	}

	stdin := NewObject()
	stdin.Set("read", readFn)

	stdout := NewObject()
	stdout.Set("write", nativeFn("write", spread("vals"), ioWrite))

	ns := NewObject()
	ns.Set("argv", Arr(argv))
	ns.Set("read", readFn)
	ns.Set("stdin", Obj(stdin))
	ns.Set("stdout", Obj(stdout))
	return Obj(ns)
}

func ioRead(args map[string]Value) (Value, error) {
	for _, v := range spreadArgs(args, "vals") {
		fmt.Fprintf(LogOutput, "%s ", v.AsString())
	}
	if inputLines == nil {
		inputLines = bufio.NewScanner(Input)
	}
	if !inputLines.Scan() {
		return Null, nil
	}
	return Str(strings.TrimRight(inputLines.Text(), "\r")), nil
}

func ioWrite(args map[string]Value) (Value, error) {
	vals := spreadArgs(args, "vals")
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = v.AsString()
	}
	fmt.Fprintln(LogOutput, strings.Join(parts, " "))
	return Null, nil
}
