/*
File    : gomix-pseudo/internal/values/values.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/

// Package values implements the runtime value model: a closed set of
// tagged variants (Null, Number, Bool, String, List, ExternalCallable,
// Subroutine) plus a File handle value, each with a fixed attribute and
// method dispatch table. There is no reflection anywhere in this package:
// every type switch below is exhaustive over the variants this interpreter
// actually has.
package values

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Kind tags a Value's variant.
type Kind string

const (
	NullKind     Kind = "NULL"
	NumberKind   Kind = "NUMBER"
	BoolKind     Kind = "BOOL"
	StringKind   Kind = "STRING"
	ListKind     Kind = "LIST"
	CallableKind Kind = "EXTERNAL_CALLABLE"
	SubKind      Kind = "SUBROUTINE"
	FileKind     Kind = "FILE"
)

// Access marks whether a binding may be reassigned.
type Access int

const (
	Norm Access = iota
	ConstAccess
)

// Value is implemented by every runtime variant.
type Value interface {
	Kind() Kind
	String() string
}

// Null is the single absent-value variant.
type Null struct{}

func (Null) Kind() Kind     { return NullKind }
func (Null) String() string { return "null" }

// Number holds either an int64 or a float64. IsFloat distinguishes the
// two; division and any operation involving an already-float operand
// promotes to float.
type Number struct {
	IsFloat bool
	Int     int64
	Float   float64
}

func Int(v int64) *Number   { return &Number{Int: v} }
func Flt(v float64) *Number { return &Number{IsFloat: true, Float: v} }

func (n *Number) Kind() Kind { return NumberKind }

func (n *Number) AsFloat() float64 {
	if n.IsFloat {
		return n.Float
	}
	return float64(n.Int)
}

func (n *Number) String() string {
	if n.IsFloat {
		return strconv.FormatFloat(n.Float, 'g', -1, 64)
	}
	return strconv.FormatInt(n.Int, 10)
}

// Bool is the boolean variant.
type Bool struct{ Value bool }

func (b *Bool) Kind() Kind { return BoolKind }
func (b *Bool) String() string {
	if b.Value {
		return "true"
	}
	return "false"
}

// String is the string variant. Access marks CONST strings.
type String struct {
	Value  string
	Access Access
}

func (s *String) Kind() Kind     { return StringKind }
func (s *String) String() string { return s.Value }

// StringAttributes are read-only attribute names valid on a String.
var StringAttributes = map[string]func(*String) Value{
	"length": func(s *String) Value { return Int(int64(len(s.Value))) },
	"value":  func(s *String) Value { return &String{Value: s.Value} },
}

// StringMethods dispatches String.method(args...) calls.
var StringMethods = map[string]func(s *String, args []Value) (Value, error){
	"substring": func(s *String, args []Value) (Value, error) {
		start, length, err := twoInts(args)
		if err != nil {
			return nil, err
		}
		if start < 0 || start+length > int64(len(s.Value)) || length < 0 {
			return nil, &IndexError{Index: int(start), Length: len(s.Value)}
		}
		return &String{Value: s.Value[start : start+length]}, nil
	},
	"left": func(s *String, args []Value) (Value, error) {
		n, err := oneInt(args)
		if err != nil {
			return nil, err
		}
		if n < 0 || n > int64(len(s.Value)) {
			return nil, &IndexError{Index: int(n), Length: len(s.Value)}
		}
		return &String{Value: s.Value[:n]}, nil
	},
	"right": func(s *String, args []Value) (Value, error) {
		n, err := oneInt(args)
		if err != nil {
			return nil, err
		}
		if n < 0 || n > int64(len(s.Value)) {
			return nil, &IndexError{Index: int(n), Length: len(s.Value)}
		}
		return &String{Value: s.Value[int64(len(s.Value))-n:]}, nil
	},
	"upper": func(s *String, _ []Value) (Value, error) {
		return &String{Value: strings.ToUpper(s.Value)}, nil
	},
	"lower": func(s *String, _ []Value) (Value, error) {
		return &String{Value: strings.ToLower(s.Value)}, nil
	},
	"split": func(s *String, args []Value) (Value, error) {
		delim := " " // single space when no delimiter is given
		if len(args) == 1 {
			str, ok := args[0].(*String)
			if !ok {
				return nil, &TypeError{Op: "split", Got: string(args[0].Kind())}
			}
			delim = str.Value
		} else if len(args) > 1 {
			return nil, &ValueError{Msg: "split takes 0 or 1 arguments"}
		}
		parts := strings.Split(s.Value, delim)
		elems := make([]Value, len(parts))
		for i, p := range parts {
			elems[i] = &String{Value: p}
		}
		return &List{Elements: elems}, nil
	},
}

// ASC returns the character code of a single-character string.
func ASC(s *String) (Value, error) {
	if len(s.Value) != 1 {
		return nil, &ValueError{Msg: "ASC expects a single character"}
	}
	return Int(int64(s.Value[0])), nil
}

// CHR returns the single-character string for a character code.
func CHR(n *Number) (Value, error) {
	if n.IsFloat {
		return nil, &TypeError{Op: "CHR", Got: "FLOAT"}
	}
	return &String{Value: string(rune(n.Int))}, nil
}

func oneInt(args []Value) (int64, error) {
	if len(args) != 1 {
		return 0, &ValueError{Msg: "expected 1 argument"}
	}
	n, ok := args[0].(*Number)
	if !ok || n.IsFloat {
		return 0, &TypeError{Op: "index argument", Got: string(args[0].Kind())}
	}
	return n.Int, nil
}

func twoInts(args []Value) (int64, int64, error) {
	if len(args) != 2 {
		return 0, 0, &ValueError{Msg: "expected 2 arguments"}
	}
	a, ok1 := args[0].(*Number)
	b, ok2 := args[1].(*Number)
	if !ok1 || !ok2 || a.IsFloat || b.IsFloat {
		return 0, 0, &TypeError{Op: "index arguments", Got: "non-integer"}
	}
	return a.Int, b.Int, nil
}

// List is the mutable array variant. Two names bound to the same List
// alias the same storage: mutation through either is visible through both.
// Elements is only ever copied by the explicit slice/head/tail/sort
// methods, never on assignment.
type List struct {
	Elements []Value
	Access   Access
}

func (l *List) Kind() Kind { return ListKind }

func (l *List) String() string {
	parts := make([]string, len(l.Elements))
	for i, e := range l.Elements {
		parts[i] = e.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func (l *List) Get(i int) (Value, error) {
	if i < 0 || i >= len(l.Elements) {
		return nil, &IndexError{Index: i, Length: len(l.Elements)}
	}
	return l.Elements[i], nil
}

func (l *List) Set(i int, v Value) error {
	if i < 0 || i >= len(l.Elements) {
		return &IndexError{Index: i, Length: len(l.Elements)}
	}
	l.Elements[i] = v
	return nil
}

var ListAttributes = map[string]func(*List) Value{
	"length": func(l *List) Value { return Int(int64(len(l.Elements))) },
}

// ListMethods dispatches List.method(args...) calls. pop/head/tail take an
// optional argument: pop() removes the last element, head() returns the
// first element, tail() returns everything but the first. slice(start, n)
// returns n elements counting from start.
var ListMethods = map[string]func(l *List, args []Value) (Value, error){
	"append": func(l *List, args []Value) (Value, error) {
		if len(args) != 1 {
			return nil, &ValueError{Msg: "append expects 1 argument"}
		}
		l.Elements = append(l.Elements, args[0])
		return Null{}, nil
	},
	"pop": func(l *List, args []Value) (Value, error) {
		idx := len(l.Elements) - 1
		if len(args) == 1 {
			n, err := oneInt(args)
			if err != nil {
				return nil, err
			}
			idx = int(n)
		} else if len(args) > 1 {
			return nil, &ValueError{Msg: "pop takes 0 or 1 arguments"}
		}
		if idx < 0 || idx >= len(l.Elements) {
			return nil, &IndexError{Index: idx, Length: len(l.Elements)}
		}
		v := l.Elements[idx]
		l.Elements = append(l.Elements[:idx], l.Elements[idx+1:]...)
		return v, nil
	},
	"insert": func(l *List, args []Value) (Value, error) {
		if len(args) != 2 {
			return nil, &ValueError{Msg: "insert expects 2 arguments (index, value)"}
		}
		idx, err := oneInt(args[:1])
		if err != nil {
			return nil, err
		}
		if idx < 0 || idx > int64(len(l.Elements)) {
			return nil, &IndexError{Index: int(idx), Length: len(l.Elements)}
		}
		l.Elements = append(l.Elements, nil)
		copy(l.Elements[idx+1:], l.Elements[idx:])
		l.Elements[idx] = args[1]
		return Null{}, nil
	},
	"slice": func(l *List, args []Value) (Value, error) {
		start, n, err := twoInts(args)
		if err != nil {
			return nil, err
		}
		if start < 0 || n < 0 || start+n > int64(len(l.Elements)) {
			return nil, &IndexError{Index: int(start), Length: len(l.Elements)}
		}
		out := make([]Value, n)
		copy(out, l.Elements[start:start+n])
		return &List{Elements: out}, nil
	},
	"head": func(l *List, args []Value) (Value, error) {
		if len(args) == 0 {
			if len(l.Elements) == 0 {
				return nil, &IndexError{Index: 0, Length: 0}
			}
			return l.Elements[0], nil
		}
		n, err := oneInt(args)
		if err != nil {
			return nil, err
		}
		if n < 0 || n > int64(len(l.Elements)) {
			return nil, &IndexError{Index: int(n), Length: len(l.Elements)}
		}
		out := make([]Value, n)
		copy(out, l.Elements[:n])
		return &List{Elements: out}, nil
	},
	"tail": func(l *List, args []Value) (Value, error) {
		if len(args) == 0 {
			if len(l.Elements) == 0 {
				return &List{Elements: []Value{}}, nil
			}
			out := make([]Value, len(l.Elements)-1)
			copy(out, l.Elements[1:])
			return &List{Elements: out}, nil
		}
		n, err := oneInt(args)
		if err != nil {
			return nil, err
		}
		if n < 0 || n > int64(len(l.Elements)) {
			return nil, &IndexError{Index: int(n), Length: len(l.Elements)}
		}
		out := make([]Value, n)
		copy(out, l.Elements[int64(len(l.Elements))-n:])
		return &List{Elements: out}, nil
	},
	"sort": func(l *List, args []Value) (Value, error) {
		reverse := false
		if len(args) == 1 {
			b, ok := args[0].(*Bool)
			if !ok {
				return nil, &TypeError{Op: "sort", Got: string(args[0].Kind())}
			}
			reverse = b.Value
		} else if len(args) > 1 {
			return nil, &ValueError{Msg: "sort takes 0 or 1 arguments"}
		}
		sorted := append([]Value(nil), l.Elements...)
		var sortErr error
		sort.SliceStable(sorted, func(i, j int) bool {
			less, err := lessThan(sorted[i], sorted[j])
			if err != nil {
				sortErr = err
			}
			return less
		})
		if sortErr != nil {
			return nil, sortErr
		}
		if reverse {
			for i, j := 0, len(sorted)-1; i < j; i, j = i+1, j-1 {
				sorted[i], sorted[j] = sorted[j], sorted[i]
			}
		}
		l.Elements = sorted
		return Null{}, nil
	},
}

func lessThan(a, b Value) (bool, error) {
	an, aok := a.(*Number)
	bn, bok := b.(*Number)
	if aok && bok {
		return an.AsFloat() < bn.AsFloat(), nil
	}
	as, asok := a.(*String)
	bs, bsok := b.(*String)
	if asok && bsok {
		return as.Value < bs.Value, nil
	}
	return false, &TypeError{Op: "sort", Got: fmt.Sprintf("%s vs %s", a.Kind(), b.Kind())}
}

// ExternalCallable wraps a host-provided Go function. The evaluator never
// inspects its internals: it only ever calls Fn.
type ExternalCallable struct {
	Name string
	Fn   func(args []Value) (Value, error)
}

func (e *ExternalCallable) Kind() Kind     { return CallableKind }
func (e *ExternalCallable) String() string { return fmt.Sprintf("<builtin %s>", e.Name) }
