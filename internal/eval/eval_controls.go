/*
File    : gomix-pseudo/internal/eval/eval_controls.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/
package eval

import (
	"github.com/akashmaji946/gomix-pseudo/internal/ast"
	"github.com/akashmaji946/gomix-pseudo/internal/environment"
	"github.com/akashmaji946/gomix-pseudo/internal/values"
)

// evalIf walks Branches in order and evaluates the first one whose
// Condition is truthy (a nil Condition is the terminal else, which always
// matches). If none match, the statement evaluates to Null.
func (e *Evaluator) evalIf(node *ast.IfBlock, env *environment.Environment) (values.Value, error) {
	node.Cursor = -1
	for i, branch := range node.Branches {
		if branch.Condition != nil {
			cond, err := e.evalExpression(branch.Condition, env)
			if err != nil {
				return nil, err
			}
			if !truthy(cond) {
				continue
			}
		}
		node.Cursor = i
		return e.evalBlock(branch.Body, env.Child())
	}
	return values.Null{}, nil
}

// evalFor implements the counted loop: bind the loop variable to Start,
// evaluate Limit and Step once up front, then run Body repeatedly while the
// loop variable has not reached Limit, advancing it by Step afterwards.
// The termination test is "not equal to the limit", so a step whose sign
// never hits the limit loops forever; there is no runaway-loop guard.
func (e *Evaluator) evalFor(node *ast.ForBlock, env *environment.Environment) (values.Value, error) {
	if _, err := e.evalAssignment(node.InitialisingAssignment, env); err != nil {
		return nil, err
	}
	limitVal, err := e.evalExpression(node.LimitExpr, env)
	if err != nil {
		return nil, err
	}
	limit, ok := limitVal.(*values.Number)
	if !ok {
		return nil, &values.TypeError{Op: "for ... to", Got: string(limitVal.Kind())}
	}
	stepVal, err := e.evalExpression(node.StepExpr, env)
	if err != nil {
		return nil, err
	}
	step, ok := stepVal.(*values.Number)
	if !ok {
		return nil, &values.TypeError{Op: "for ... step", Got: string(stepVal.Kind())}
	}

	var result values.Value = values.Null{}
	for {
		curVal, err := env.Resolve(node.InitialiserName)
		if err != nil {
			return nil, err
		}
		cur, ok := curVal.(*values.Number)
		if !ok {
			return nil, &values.TypeError{Op: "for loop variable", Got: string(curVal.Kind())}
		}
		if cur.AsFloat() == limit.AsFloat() {
			break
		}
		result, err = e.evalBlock(node.Body, env.Child())
		if err != nil {
			return nil, err
		}
		next := numericAdd(cur, step)
		if err := env.Assign(node.InitialiserName, next); err != nil {
			return nil, err
		}
	}
	return result, nil
}

// evalWhile is a standard pre-tested loop.
func (e *Evaluator) evalWhile(node *ast.WhileBlock, env *environment.Environment) (values.Value, error) {
	var result values.Value = values.Null{}
	for {
		cond, err := e.evalExpression(node.Condition, env)
		if err != nil {
			return nil, err
		}
		if !truthy(cond) {
			break
		}
		result, err = e.evalBlock(node.Body, env.Child())
		if err != nil {
			return nil, err
		}
	}
	return result, nil
}

// evalFuncDecl binds a function/procedure name to a Subroutine capturing
// env as its defining scope, giving lexical closures.
func (e *Evaluator) evalFuncDecl(node *ast.FuncBlock, env *environment.Environment) (values.Value, error) {
	sub := &Subroutine{Decl: node, Defining: env}
	if err := env.Assign(node.Name, sub); err != nil {
		return nil, err
	}
	return sub, nil
}
