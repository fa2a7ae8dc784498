/*
File    : gomix-pseudo/internal/eval/eval_member.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/
package eval

import (
	"github.com/akashmaji946/gomix-pseudo/internal/ast"
	"github.com/akashmaji946/gomix-pseudo/internal/environment"
	"github.com/akashmaji946/gomix-pseudo/internal/values"
)

// evalMember dispatches Object.Member (an attribute read) or
// Object.Member(args...) (a method call) against the fixed attribute and
// method tables in internal/values, keyed on the receiver's concrete type.
// Numbers, bools, and null have neither attributes nor methods.
func (e *Evaluator) evalMember(node *ast.MemberExpr, env *environment.Environment) (values.Value, error) {
	obj, err := e.evalExpression(node.Object, env)
	if err != nil {
		return nil, err
	}

	if node.IsAttribute {
		switch recv := obj.(type) {
		case *values.String:
			attr, ok := values.StringAttributes[node.Member]
			if !ok {
				return nil, &values.TypeError{Op: "attribute '" + node.Member + "'", Got: string(obj.Kind())}
			}
			return attr(recv), nil
		case *values.List:
			attr, ok := values.ListAttributes[node.Member]
			if !ok {
				return nil, &values.TypeError{Op: "attribute '" + node.Member + "'", Got: string(obj.Kind())}
			}
			return attr(recv), nil
		default:
			return nil, &values.TypeError{Op: "attribute '" + node.Member + "'", Got: string(obj.Kind())}
		}
	}

	args, err := e.evalArgs(node.Args, env)
	if err != nil {
		return nil, err
	}
	switch recv := obj.(type) {
	case *values.String:
		method, ok := values.StringMethods[node.Member]
		if !ok {
			return nil, &values.TypeError{Op: "method '" + node.Member + "'", Got: string(obj.Kind())}
		}
		return method(recv, args)
	case *values.List:
		method, ok := values.ListMethods[node.Member]
		if !ok {
			return nil, &values.TypeError{Op: "method '" + node.Member + "'", Got: string(obj.Kind())}
		}
		return method(recv, args)
	case *values.File:
		method, ok := values.FileMethods[node.Member]
		if !ok {
			return nil, &values.TypeError{Op: "method '" + node.Member + "'", Got: string(obj.Kind())}
		}
		return method(recv, args)
	default:
		return nil, &values.TypeError{Op: "method '" + node.Member + "'", Got: string(obj.Kind())}
	}
}
