/*
File    : gomix-pseudo/internal/eval/eval_assignments.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/
package eval

import (
	"github.com/akashmaji946/gomix-pseudo/internal/ast"
	"github.com/akashmaji946/gomix-pseudo/internal/environment"
	"github.com/akashmaji946/gomix-pseudo/internal/values"
)

// evalAssignment evaluates the RHS (evalExpression already wraps list
// literals into *values.List, so there is never a bare Go slice here),
// marks it CONST when requested, then binds: in the root frame for global,
// via Declare for const, or through Environment.Assign's ordinary
// write-or-implicitly-declare path for a plain assignment.
func (e *Evaluator) evalAssignment(node *ast.AssignmentExpr, env *environment.Environment) (values.Value, error) {
	rhs, err := e.evalExpression(node.RHS, env)
	if err != nil {
		return nil, err
	}
	rhs = markAccess(rhs, node.Itype)

	switch node.Itype {
	case ast.Const:
		if err := env.Declare(node.Name, rhs, values.ConstAccess); err != nil {
			return nil, err
		}
	case ast.Global:
		if err := env.AssignGlobal(node.Name, rhs); err != nil {
			return nil, err
		}
	default:
		if err := env.Assign(node.Name, rhs); err != nil {
			return nil, err
		}
	}
	return rhs, nil
}

// markAccess tags a String/List value CONST when the binding that produced
// it was declared const; the flag is never cleared afterwards.
// Numbers/Bool/Null carry their constancy purely through the Environment
// binding, since those variants have no Access field of their own.
func markAccess(v values.Value, itype ast.Itype) values.Value {
	if itype != ast.Const {
		return v
	}
	switch val := v.(type) {
	case *values.String:
		val.Access = values.ConstAccess
	case *values.List:
		val.Access = values.ConstAccess
	}
	return v
}

// evalArrayAssignment constructs a List of the declared Length, pre-filled
// with Null, or with the evaluated elements of RHS when an initialiser was
// given. The declared length and the initialiser's element count must
// agree; a mismatch is a ValueError at construction time.
func (e *Evaluator) evalArrayAssignment(node *ast.ArrayAssignmentExpr, env *environment.Environment) (values.Value, error) {
	lengthVal, err := e.evalExpression(node.Length, env)
	if err != nil {
		return nil, err
	}
	n, ok := lengthVal.(*values.Number)
	if !ok || n.IsFloat {
		return nil, &values.TypeError{Op: "array length", Got: string(lengthVal.Kind())}
	}
	declared := int(n.Int)

	var list *values.List
	if node.RHS != nil {
		lv, err := e.evalListExpression(node.RHS, env)
		if err != nil {
			return nil, err
		}
		if len(lv.Elements) != declared {
			return nil, &values.ValueError{Msg: "array length mismatch: declared " +
				node.Length.TokenLiteral() + " but initialiser has a different length"}
		}
		list = lv
	} else {
		elements := make([]values.Value, declared)
		for i := range elements {
			elements[i] = values.Null{}
		}
		list = &values.List{Elements: elements}
	}
	list = markAccess(list, node.Itype).(*values.List)

	switch node.Itype {
	case ast.Const:
		if err := env.Declare(node.Name, list, values.ConstAccess); err != nil {
			return nil, err
		}
	case ast.Global:
		if err := env.AssignGlobal(node.Name, list); err != nil {
			return nil, err
		}
	default:
		if err := env.Assign(node.Name, list); err != nil {
			return nil, err
		}
	}
	return list, nil
}

// evalArrayIndex reads Name[Index], or, when Assign is true, writes RHS
// there first and returns the mutated container. Lists and strings are
// indexable; only lists are index-assignable.
func (e *Evaluator) evalArrayIndex(node *ast.ArrayIndex, env *environment.Environment) (values.Value, error) {
	container, err := env.Resolve(node.Name)
	if err != nil {
		return nil, err
	}
	idxVal, err := e.evalExpression(node.Index, env)
	if err != nil {
		return nil, err
	}
	idxNum, ok := idxVal.(*values.Number)
	if !ok || idxNum.IsFloat {
		return nil, &values.TypeError{Op: "index", Got: string(idxVal.Kind())}
	}
	idx := int(idxNum.Int)

	if !node.Assign {
		switch c := container.(type) {
		case *values.List:
			return c.Get(idx)
		case *values.String:
			if idx < 0 || idx >= len(c.Value) {
				return nil, &values.IndexError{Index: idx, Length: len(c.Value)}
			}
			return &values.String{Value: string(c.Value[idx])}, nil
		default:
			return nil, &values.TypeError{Op: "index '" + node.Name + "'", Got: string(container.Kind())}
		}
	}

	list, ok := container.(*values.List)
	if !ok {
		return nil, &values.TypeError{Op: "index-assign '" + node.Name + "'", Got: string(container.Kind())}
	}
	if list.Access == values.ConstAccess {
		return nil, &values.ValueError{Msg: "cannot mutate const '" + node.Name + "'"}
	}
	rhs, err := e.evalExpression(node.RHS, env)
	if err != nil {
		return nil, err
	}
	if err := list.Set(idx, rhs); err != nil {
		return nil, err
	}
	return list, nil
}
