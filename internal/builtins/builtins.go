/*
File    : gomix-pseudo/internal/builtins/builtins.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/

// Package builtins wires the host-provided functions the evaluator preloads
// into its global environment: print, input, random, the type casts, the
// ASC/CHR helpers, and the open/newFile file-handle constructors.
package builtins

import (
	"bufio"
	"fmt"
	"io"
	"math/rand"
	"strconv"
	"strings"

	"github.com/akashmaji946/gomix-pseudo/internal/values"
)

// New builds the name -> ExternalCallable table an Evaluator preloads. out
// is where print writes; in is buffered for input's line reads.
func New(out io.Writer, in io.Reader) map[string]*values.ExternalCallable {
	reader := bufio.NewReader(in)
	table := map[string]*values.ExternalCallable{
		"print":   {Name: "print", Fn: printFn(out)},
		"input":   {Name: "input", Fn: inputFn(out, reader)},
		"random":  {Name: "random", Fn: randomFn},
		"str":     {Name: "str", Fn: strFn},
		"int":     {Name: "int", Fn: intFn},
		"float":   {Name: "float", Fn: floatFn},
		"real":    {Name: "real", Fn: floatFn},
		"bool":    {Name: "bool", Fn: boolFn},
		"ASC":     {Name: "ASC", Fn: ascFn},
		"CHR":     {Name: "CHR", Fn: chrFn},
		"open":    {Name: "open", Fn: openFn},
		"newFile": {Name: "newFile", Fn: newFileFn},
	}
	return table
}

// printFn joins its arguments' String() forms with a single space and
// writes one trailing newline.
func printFn(out io.Writer) func([]values.Value) (values.Value, error) {
	return func(args []values.Value) (values.Value, error) {
		parts := make([]string, len(args))
		for i, a := range args {
			parts[i] = a.String()
		}
		fmt.Fprintln(out, strings.Join(parts, " "))
		return values.Null{}, nil
	}
}

// inputFn prints an optional prompt (its single argument, if given) then
// reads one line from stdin, trimming the trailing newline.
func inputFn(out io.Writer, reader *bufio.Reader) func([]values.Value) (values.Value, error) {
	return func(args []values.Value) (values.Value, error) {
		if len(args) > 1 {
			return nil, &values.ValueError{Msg: "input takes 0 or 1 arguments"}
		}
		if len(args) == 1 {
			fmt.Fprint(out, args[0].String())
		}
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return nil, &values.EOFError{Msg: "no more input"}
		}
		return &values.String{Value: strings.TrimRight(line, "\r\n")}, nil
	}
}

// randomFn returns a uniformly distributed integer in [lo, hi], inclusive
// at both ends.
func randomFn(args []values.Value) (values.Value, error) {
	if len(args) != 2 {
		return nil, &values.ValueError{Msg: "random expects 2 arguments (lo, hi)"}
	}
	lo, ok1 := args[0].(*values.Number)
	hi, ok2 := args[1].(*values.Number)
	if !ok1 || !ok2 || lo.IsFloat || hi.IsFloat {
		return nil, &values.TypeError{Op: "random", Got: "non-integer argument"}
	}
	if hi.Int < lo.Int {
		return nil, &values.ValueError{Msg: "random: hi must be >= lo"}
	}
	return values.Int(lo.Int + rand.Int63n(hi.Int-lo.Int+1)), nil
}

func strFn(args []values.Value) (values.Value, error) {
	if len(args) != 1 {
		return nil, &values.ValueError{Msg: "str expects 1 argument"}
	}
	return &values.String{Value: args[0].String()}, nil
}

func intFn(args []values.Value) (values.Value, error) {
	if len(args) != 1 {
		return nil, &values.ValueError{Msg: "int expects 1 argument"}
	}
	switch v := args[0].(type) {
	case *values.Number:
		if v.IsFloat {
			return values.Int(int64(v.Float)), nil
		}
		return values.Int(v.Int), nil
	case *values.String:
		n, err := strconv.ParseInt(strings.TrimSpace(v.Value), 10, 64)
		if err != nil {
			return nil, &values.ValueError{Msg: "cannot convert '" + v.Value + "' to int"}
		}
		return values.Int(n), nil
	default:
		return nil, &values.TypeError{Op: "int", Got: string(args[0].Kind())}
	}
}

func floatFn(args []values.Value) (values.Value, error) {
	if len(args) != 1 {
		return nil, &values.ValueError{Msg: "float expects 1 argument"}
	}
	switch v := args[0].(type) {
	case *values.Number:
		return values.Flt(v.AsFloat()), nil
	case *values.String:
		f, err := strconv.ParseFloat(strings.TrimSpace(v.Value), 64)
		if err != nil {
			return nil, &values.ValueError{Msg: "cannot convert '" + v.Value + "' to float"}
		}
		return values.Flt(f), nil
	default:
		return nil, &values.TypeError{Op: "float", Got: string(args[0].Kind())}
	}
}

func boolFn(args []values.Value) (values.Value, error) {
	if len(args) != 1 {
		return nil, &values.ValueError{Msg: "bool expects 1 argument"}
	}
	switch v := args[0].(type) {
	case *values.Bool:
		return v, nil
	case *values.Number:
		return &values.Bool{Value: v.AsFloat() != 0}, nil
	case *values.String:
		return &values.Bool{Value: v.Value != ""}, nil
	case *values.List:
		return &values.Bool{Value: len(v.Elements) > 0}, nil
	case values.Null:
		return &values.Bool{Value: false}, nil
	default:
		return &values.Bool{Value: true}, nil
	}
}

func ascFn(args []values.Value) (values.Value, error) {
	if len(args) != 1 {
		return nil, &values.ValueError{Msg: "ASC expects 1 argument"}
	}
	s, ok := args[0].(*values.String)
	if !ok {
		return nil, &values.TypeError{Op: "ASC", Got: string(args[0].Kind())}
	}
	return values.ASC(s)
}

func chrFn(args []values.Value) (values.Value, error) {
	if len(args) != 1 {
		return nil, &values.ValueError{Msg: "CHR expects 1 argument"}
	}
	n, ok := args[0].(*values.Number)
	if !ok {
		return nil, &values.TypeError{Op: "CHR", Got: string(args[0].Kind())}
	}
	return values.CHR(n)
}

func openFn(args []values.Value) (values.Value, error) {
	if len(args) != 1 {
		return nil, &values.ValueError{Msg: "open expects 1 argument (path)"}
	}
	path, ok := args[0].(*values.String)
	if !ok {
		return nil, &values.TypeError{Op: "open", Got: string(args[0].Kind())}
	}
	return values.OpenFile(path.Value)
}

func newFileFn(args []values.Value) (values.Value, error) {
	if len(args) != 1 {
		return nil, &values.ValueError{Msg: "newFile expects 1 argument (path)"}
	}
	path, ok := args[0].(*values.String)
	if !ok {
		return nil, &values.TypeError{Op: "newFile", Got: string(args[0].Kind())}
	}
	return values.NewFile(path.Value)
}
