/*
File    : gomix-pseudo/internal/eval/eval_expressions.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/
package eval

import (
	"strconv"

	"github.com/akashmaji946/gomix-pseudo/internal/ast"
	"github.com/akashmaji946/gomix-pseudo/internal/environment"
	"github.com/akashmaji946/gomix-pseudo/internal/values"
)

// evalExpression is the single entry point the statement dispatcher and
// every nested evaluator call back through for expression nodes.
func (e *Evaluator) evalExpression(expr ast.Expression, env *environment.Environment) (values.Value, error) {
	switch node := expr.(type) {
	case *ast.NumericLiteral:
		if node.IsFloat {
			return values.Flt(node.FloatVal), nil
		}
		return values.Int(node.IntVal), nil
	case *ast.StringLiteral:
		return &values.String{Value: node.Value}, nil
	case *ast.Identifier:
		v, err := env.Resolve(node.Name)
		if err != nil {
			return nil, err
		}
		return v, nil
	case *ast.ListExpression:
		return e.evalListExpression(node, env)
	case *ast.BinaryExpr:
		return e.evalBinary(node, env)
	case *ast.UnaryExpr:
		return e.evalUnary(node, env)
	case *ast.AssignmentExpr:
		return e.evalAssignment(node, env)
	case *ast.ArrayAssignmentExpr:
		return e.evalArrayAssignment(node, env)
	case *ast.ArrayIndex:
		return e.evalArrayIndex(node, env)
	case *ast.MemberExpr:
		return e.evalMember(node, env)
	case *ast.FunctionCall:
		return e.evalFunctionCall(node, env)
	case *ast.FuncBlock:
		return e.evalFuncDecl(node, env)
	default:
		return nil, &values.RuntimeError{Msg: "unknown expression node"}
	}
}

// evalListExpression always yields a runtime List value, never a bare Go
// slice, so no assignment site ever has to patch one up.
func (e *Evaluator) evalListExpression(node *ast.ListExpression, env *environment.Environment) (*values.List, error) {
	elements := make([]values.Value, len(node.Elements))
	for i, elemExpr := range node.Elements {
		v, err := e.evalExpression(elemExpr, env)
		if err != nil {
			return nil, err
		}
		elements[i] = v
	}
	return &values.List{Elements: elements}, nil
}

func (e *Evaluator) evalUnary(node *ast.UnaryExpr, env *environment.Environment) (values.Value, error) {
	operand, err := e.evalExpression(node.Right, env)
	if err != nil {
		return nil, err
	}
	if node.Operator == "not" {
		return &values.Bool{Value: !truthy(operand)}, nil
	}
	return nil, &values.RuntimeError{Msg: "unknown unary operator '" + node.Operator + "'"}
}

// evalFunctionCall resolves Name to either a user Subroutine or an
// ExternalCallable and applies it to the evaluated argument list. Any
// other value kind is not callable.
func (e *Evaluator) evalFunctionCall(node *ast.FunctionCall, env *environment.Environment) (values.Value, error) {
	callee, err := env.Resolve(node.Name)
	if err != nil {
		return nil, err
	}
	args, err := e.evalArgs(node.Args, env)
	if err != nil {
		return nil, err
	}
	return e.callValue(callee, args, node.Name)
}

func (e *Evaluator) evalArgs(list *ast.ListExpression, env *environment.Environment) ([]values.Value, error) {
	if list == nil {
		return nil, nil
	}
	lv, err := e.evalListExpression(list, env)
	if err != nil {
		return nil, err
	}
	return lv.Elements, nil
}

// callValue applies callee (a Subroutine or ExternalCallable) to args. Both
// the bare-name FunctionCall path and a method dispatch that resolves to a
// callable funnel through here.
func (e *Evaluator) callValue(callee values.Value, args []values.Value, name string) (values.Value, error) {
	switch fn := callee.(type) {
	case *values.ExternalCallable:
		return fn.Fn(args)
	case *Subroutine:
		return e.callSubroutine(fn, args)
	default:
		return nil, &values.TypeError{Op: "call '" + name + "'", Got: string(callee.Kind())}
	}
}

// callSubroutine creates a child of the subroutine's *defining* environment
// (lexical scoping), binds parameters positionally, evaluates the body,
// then evaluates ReturnExpr (if any) in that same child frame. A procedure
// (no ReturnExpr) yields Null.
func (e *Evaluator) callSubroutine(sub *Subroutine, args []values.Value) (values.Value, error) {
	decl := sub.Decl
	if len(args) != len(decl.Parameters) {
		return nil, &values.RuntimeError{Msg: "'" + decl.Name + "' expects " +
			strconv.Itoa(len(decl.Parameters)) + " argument(s), got " + strconv.Itoa(len(args))}
	}
	callEnv := sub.Defining.Child()
	for i, param := range decl.Parameters {
		if err := callEnv.Declare(param, args[i], values.Norm); err != nil {
			return nil, err
		}
	}
	if _, err := e.evalBlock(decl.Body, callEnv); err != nil {
		return nil, err
	}
	if decl.ReturnExpr == nil {
		return values.Null{}, nil
	}
	return e.evalExpression(decl.ReturnExpr, callEnv)
}
