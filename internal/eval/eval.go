/*
File    : gomix-pseudo/internal/eval/eval.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/

// Package eval implements the tree-walking evaluator: one function per AST
// node kind, dispatched with a type switch over the closed ast.Node set.
package eval

import (
	"io"

	"github.com/akashmaji946/gomix-pseudo/internal/ast"
	"github.com/akashmaji946/gomix-pseudo/internal/environment"
	"github.com/akashmaji946/gomix-pseudo/internal/values"
)

// Subroutine wraps a user-defined FuncBlock plus the environment it was
// declared in. A call creates a child of Defining (not of the caller's
// frame), giving lexical rather than dynamic scoping. It lives in this
// package rather than internal/values to avoid values importing
// environment (which already imports values).
type Subroutine struct {
	Decl     *ast.FuncBlock
	Defining *environment.Environment
}

func (s *Subroutine) Kind() values.Kind { return values.SubKind }
func (s *Subroutine) String() string    { return "<subroutine " + s.Decl.Name + ">" }

// Evaluator walks a Program against a chain of Environments, dispatching
// built-in and user-defined calls. Writer receives print output; Reader
// feeds the input builtin.
type Evaluator struct {
	Global   *environment.Environment
	Builtins map[string]*values.ExternalCallable
	Writer   io.Writer
	Reader   io.Reader
}

// New creates an Evaluator with a fresh global environment and the given
// built-in table preloaded (see internal/builtins).
func New(writer io.Writer, reader io.Reader, builtins map[string]*values.ExternalCallable) *Evaluator {
	e := &Evaluator{
		Global:   environment.New(),
		Builtins: builtins,
		Writer:   writer,
		Reader:   reader,
	}
	for name, fn := range builtins {
		_ = e.Global.Declare(name, fn, values.Norm)
	}
	_ = e.Global.Declare("None", values.Null{}, values.Norm)
	_ = e.Global.Declare("true", &values.Bool{Value: true}, values.Norm)
	_ = e.Global.Declare("false", &values.Bool{Value: false}, values.Norm)
	return e
}

// Run evaluates a whole program in the Evaluator's global environment.
func (e *Evaluator) Run(prog *ast.Program) (values.Value, error) {
	return e.evalStatements(prog.Statements, e.Global)
}

// RunIn evaluates a program in env instead of the global frame. The REPL
// uses it to keep one shared environment across separately-parsed lines.
func (e *Evaluator) RunIn(prog *ast.Program, env *environment.Environment) (values.Value, error) {
	return e.evalStatements(prog.Statements, env)
}

func (e *Evaluator) evalStatements(stmts []ast.Statement, env *environment.Environment) (values.Value, error) {
	var result values.Value = values.Null{}
	for _, stmt := range stmts {
		v, err := e.evalStatement(stmt, env)
		if err != nil {
			return nil, err
		}
		result = v
	}
	return result, nil
}

// evalBlock evaluates a block's statements in order; the last value
// produced is the result.
func (e *Evaluator) evalBlock(block *ast.Block, env *environment.Environment) (values.Value, error) {
	return e.evalStatements(block.Statements, env)
}

func (e *Evaluator) evalStatement(stmt ast.Statement, env *environment.Environment) (values.Value, error) {
	switch node := stmt.(type) {
	case *ast.ExpressionStatement:
		return e.evalExpression(node.Expr, env)
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
	case *ast.IfBlock:
		return e.evalIf(node, env)
	case *ast.ForBlock:
		return e.evalFor(node, env)
	case *ast.WhileBlock:
		return e.evalWhile(node, env)
	case *ast.FuncBlock:
		return e.evalFuncDecl(node, env)
	default:
		return nil, &values.RuntimeError{Msg: "unknown statement node"}
	}
}
