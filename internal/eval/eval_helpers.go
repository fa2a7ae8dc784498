/*
File    : gomix-pseudo/internal/eval/eval_helpers.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/
package eval

import (
	"github.com/akashmaji946/gomix-pseudo/internal/ast"
	"github.com/akashmaji946/gomix-pseudo/internal/environment"
	"github.com/akashmaji946/gomix-pseudo/internal/values"
)

// truthy: Null is false, Bool is itself, Number is true iff non-zero,
// String is true iff non-empty, List is true iff non-empty.
func truthy(v values.Value) bool {
	switch val := v.(type) {
	case values.Null:
		return false
	case *values.Bool:
		return val.Value
	case *values.Number:
		return val.AsFloat() != 0
	case *values.String:
		return val.Value != ""
	case *values.List:
		return len(val.Elements) > 0
	default:
		return true
	}
}

// evalBinary dispatches on node.Kind: Numeric handles arithmetic,
// comparisons, and AND/OR; Boolean handles only AND/OR.
func (e *Evaluator) evalBinary(node *ast.BinaryExpr, env *environment.Environment) (values.Value, error) {
	left, err := e.evalExpression(node.Left, env)
	if err != nil {
		return nil, err
	}
	right, err := e.evalExpression(node.Right, env)
	if err != nil {
		return nil, err
	}

	switch node.Operator {
	case "and":
		return &values.Bool{Value: truthy(left) && truthy(right)}, nil
	case "or":
		return &values.Bool{Value: truthy(left) || truthy(right)}, nil
	}

	if node.Kind == ast.Boolean {
		return nil, &values.RuntimeError{Msg: "operator '" + node.Operator + "' is not valid in a boolean context"}
	}

	switch node.Operator {
	case "+", "-", "*", "/", "mod", "div":
		return arithmetic(node.Operator, left, right)
	case "==", "!=", ">", "<", ">=", "<=":
		return compare(node.Operator, left, right)
	default:
		return nil, &values.RuntimeError{Msg: "unknown binary operator '" + node.Operator + "'"}
	}
}

// arithmetic implements + - * / MOD DIV. "/" always promotes to float;
// MOD/DIV require integer operands; "+" additionally supports string
// concatenation and list concatenation.
func arithmetic(op string, left, right values.Value) (values.Value, error) {
	if op == "+" {
		if ls, ok := left.(*values.String); ok {
			rs, ok := right.(*values.String)
			if !ok {
				return nil, &values.TypeError{Op: "+", Got: string(right.Kind())}
			}
			return &values.String{Value: ls.Value + rs.Value}, nil
		}
		if ll, ok := left.(*values.List); ok {
			rl, ok := right.(*values.List)
			if !ok {
				return nil, &values.TypeError{Op: "+", Got: string(right.Kind())}
			}
			combined := make([]values.Value, 0, len(ll.Elements)+len(rl.Elements))
			combined = append(combined, ll.Elements...)
			combined = append(combined, rl.Elements...)
			return &values.List{Elements: combined}, nil
		}
	}

	ln, lok := left.(*values.Number)
	rn, rok := right.(*values.Number)
	if !lok || !rok {
		got := left.Kind()
		if lok {
			got = right.Kind()
		}
		return nil, &values.TypeError{Op: op, Got: string(got)}
	}

	switch op {
	case "+":
		return numericAdd(ln, rn), nil
	case "-":
		return numericBinOp(ln, rn, func(a, b float64) float64 { return a - b }, func(a, b int64) int64 { return a - b }), nil
	case "*":
		return numericBinOp(ln, rn, func(a, b float64) float64 { return a * b }, func(a, b int64) int64 { return a * b }), nil
	case "/":
		if rn.AsFloat() == 0 {
			return nil, &values.ValueError{Msg: "division by zero"}
		}
		return values.Flt(ln.AsFloat() / rn.AsFloat()), nil
	case "mod":
		if ln.IsFloat || rn.IsFloat {
			return nil, &values.TypeError{Op: "mod", Got: "float"}
		}
		if rn.Int == 0 {
			return nil, &values.ValueError{Msg: "modulus by zero"}
		}
		return values.Int(ln.Int % rn.Int), nil
	case "div":
		if ln.IsFloat || rn.IsFloat {
			return nil, &values.TypeError{Op: "div", Got: "float"}
		}
		if rn.Int == 0 {
			return nil, &values.ValueError{Msg: "division by zero"}
		}
		return values.Int(ln.Int / rn.Int), nil
	default:
		return nil, &values.RuntimeError{Msg: "unknown arithmetic operator '" + op + "'"}
	}
}

func numericAdd(a, b *values.Number) values.Value {
	return numericBinOp(a, b, func(x, y float64) float64 { return x + y }, func(x, y int64) int64 { return x + y })
}

func numericBinOp(a, b *values.Number, floatOp func(float64, float64) float64, intOp func(int64, int64) int64) values.Value {
	if a.IsFloat || b.IsFloat {
		return values.Flt(floatOp(a.AsFloat(), b.AsFloat()))
	}
	return values.Int(intOp(a.Int, b.Int))
}

// compare implements == != > < >= <=. "==" and "!=" are total across all
// value kinds (values of different kinds are simply unequal, never an
// error); the four ordering operators require both operands to be Numbers
// rather than inventing a cross-kind ordering.
func compare(op string, left, right values.Value) (values.Value, error) {
	if op == "==" || op == "!=" {
		eq := valuesEqual(left, right)
		if op == "!=" {
			eq = !eq
		}
		return &values.Bool{Value: eq}, nil
	}

	ln, lok := left.(*values.Number)
	rn, rok := right.(*values.Number)
	if !lok || !rok {
		got := left.Kind()
		if lok {
			got = right.Kind()
		}
		return nil, &values.TypeError{Op: op, Got: string(got)}
	}
	a, b := ln.AsFloat(), rn.AsFloat()
	switch op {
	case ">":
		return &values.Bool{Value: a > b}, nil
	case "<":
		return &values.Bool{Value: a < b}, nil
	case ">=":
		return &values.Bool{Value: a >= b}, nil
	case "<=":
		return &values.Bool{Value: a <= b}, nil
	default:
		return nil, &values.RuntimeError{Msg: "unknown comparison operator '" + op + "'"}
	}
}

func valuesEqual(left, right values.Value) bool {
	switch l := left.(type) {
	case values.Null:
		_, ok := right.(values.Null)
		return ok
	case *values.Number:
		r, ok := right.(*values.Number)
		return ok && l.AsFloat() == r.AsFloat()
	case *values.Bool:
		r, ok := right.(*values.Bool)
		return ok && l.Value == r.Value
	case *values.String:
		r, ok := right.(*values.String)
		return ok && l.Value == r.Value
	case *values.List:
		r, ok := right.(*values.List)
		if !ok || len(l.Elements) != len(r.Elements) {
			return false
		}
		for i := range l.Elements {
			if !valuesEqual(l.Elements[i], r.Elements[i]) {
				return false
			}
		}
		return true
	default:
		return left == right
	}
}
