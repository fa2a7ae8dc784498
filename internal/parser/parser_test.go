/*
File    : gomix-pseudo/internal/parser/parser_test.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/
package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/akashmaji946/gomix-pseudo/internal/ast"
	"github.com/akashmaji946/gomix-pseudo/internal/lexer"
)

func mustParse(t *testing.T, src string) *ast.Program {
	t.Helper()
	toks, err := lexer.Tokenize(src)
	assert.NoError(t, err)
	prog, err := Parse(toks)
	assert.NoError(t, err)
	return prog
}

func TestParseSimpleAssignment(t *testing.T) {
	prog := mustParse(t, "x = 1 + 2 * 3\n")
	assert.Len(t, prog.Statements, 1)
	assign, ok := prog.Statements[0].(*ast.AssignmentExpr)
	assert.True(t, ok)
	assert.Equal(t, "x", assign.Name)
	assert.Equal(t, ast.Var, assign.Itype)

	bin, ok := assign.RHS.(*ast.BinaryExpr)
	assert.True(t, ok)
	// Multiplication must bind tighter: x = 1 + (2 * 3)
	_, rightIsMul := bin.Right.(*ast.BinaryExpr)
	assert.True(t, rightIsMul)
}

func TestParseConstAndGlobalAssignment(t *testing.T) {
	prog := mustParse(t, "const pi = 3\nglobal total = 0\n")
	c := prog.Statements[0].(*ast.AssignmentExpr)
	assert.Equal(t, ast.Const, c.Itype)
	g := prog.Statements[1].(*ast.AssignmentExpr)
	assert.Equal(t, ast.Global, g.Itype)
}

func TestParseComparisonPrecedenceOverLogical(t *testing.T) {
	prog := mustParse(t, "x = a < b and c > d\n")
	assign := prog.Statements[0].(*ast.AssignmentExpr)
	top, ok := assign.RHS.(*ast.BinaryExpr)
	assert.True(t, ok)
	assert.Equal(t, "and", top.Operator)
	assert.Equal(t, ast.Boolean, top.Kind)
}

func TestParseUnaryMinusDesugarsToSubtractionFromZero(t *testing.T) {
	prog := mustParse(t, "x = -y\n")
	assign := prog.Statements[0].(*ast.AssignmentExpr)
	bin, ok := assign.RHS.(*ast.BinaryExpr)
	assert.True(t, ok)
	assert.Equal(t, "-", bin.Operator)
	lit, ok := bin.Left.(*ast.NumericLiteral)
	assert.True(t, ok)
	assert.Equal(t, int64(0), lit.IntVal)
}

func TestParseIfElseifElseEndif(t *testing.T) {
	src := "if x < 1 then\n" +
		"  y = 1\n" +
		"elseif x < 2 then\n" +
		"  y = 2\n" +
		"else\n" +
		"  y = 3\n" +
		"endif\n"
	prog := mustParse(t, src)
	block, ok := prog.Statements[0].(*ast.IfBlock)
	assert.True(t, ok)
	assert.Len(t, block.Branches, 3)
	assert.Nil(t, block.Branches[2].Condition)
}

func TestParseForWithStep(t *testing.T) {
	prog := mustParse(t, "for i = 1 to 10 step 2\n  x = i\nnext i\n")
	forBlock, ok := prog.Statements[0].(*ast.ForBlock)
	assert.True(t, ok)
	assert.Equal(t, "i", forBlock.InitialiserName)
	assert.NotNil(t, forBlock.StepExpr)
}

func TestParseForDefaultStepIsOne(t *testing.T) {
	prog := mustParse(t, "for i = 1 to 10\n  x = i\nnext i\n")
	forBlock := prog.Statements[0].(*ast.ForBlock)
	lit, ok := forBlock.StepExpr.(*ast.NumericLiteral)
	assert.True(t, ok)
	assert.Equal(t, int64(1), lit.IntVal)
}

func TestParseFunctionDeclaration(t *testing.T) {
	prog := mustParse(t, "function add(a, b)\nreturn a + b\nendfunction\n")
	fn, ok := prog.Statements[0].(*ast.FuncBlock)
	assert.True(t, ok)
	assert.Equal(t, "add", fn.Name)
	assert.Equal(t, []string{"a", "b"}, fn.Parameters)
	assert.Equal(t, ast.FunctionType, fn.FuncType)
	assert.NotNil(t, fn.ReturnExpr)
}

func TestParseProcedureWithReturnValueIsSyntaxError(t *testing.T) {
	toks, err := lexer.Tokenize("procedure greet()\nreturn 1\nendprocedure\n")
	assert.NoError(t, err)
	_, perr := Parse(toks)
	assert.Error(t, perr)
}

func TestParseArrayDeclAndIndexAssignment(t *testing.T) {
	prog := mustParse(t, "array nums[10]\nnums[0] = 5\n")
	assert.Len(t, prog.Statements, 2)
	decl, ok := prog.Statements[0].(*ast.ArrayAssignmentExpr)
	assert.True(t, ok)
	assert.Nil(t, decl.RHS)
	idx, ok := prog.Statements[1].(*ast.ArrayIndex)
	assert.True(t, ok)
	assert.True(t, idx.Assign)
}

func TestParseArrayDeclWithInitialiser(t *testing.T) {
	prog := mustParse(t, "array a[3] = [1, 2, 3]\n")
	decl := prog.Statements[0].(*ast.ArrayAssignmentExpr)
	assert.NotNil(t, decl.RHS)
	assert.Len(t, decl.RHS.Elements, 3)
}

func TestParseArrayIndexReadInsideExpression(t *testing.T) {
	prog := mustParse(t, "x = a[1] + 1\n")
	assign := prog.Statements[0].(*ast.AssignmentExpr)
	bin := assign.RHS.(*ast.BinaryExpr)
	idx, ok := bin.Left.(*ast.ArrayIndex)
	assert.True(t, ok)
	assert.False(t, idx.Assign)
}

func TestParseMissingEndifIsSyntaxError(t *testing.T) {
	toks, err := lexer.Tokenize("if x then\n  y = 1\n")
	assert.NoError(t, err)
	_, perr := Parse(toks)
	assert.Error(t, perr)
}

func TestParseCallExpressionStatement(t *testing.T) {
	prog := mustParse(t, "print(\"hi\")\n")
	call, ok := prog.Statements[0].(*ast.FunctionCall)
	assert.True(t, ok)
	assert.Equal(t, "print", call.Name)
	assert.Len(t, call.Args.Elements, 1)
}

func TestParseMethodCallOnIdentifier(t *testing.T) {
	prog := mustParse(t, "x = name.upper()\n")
	assign := prog.Statements[0].(*ast.AssignmentExpr)
	member, ok := assign.RHS.(*ast.MemberExpr)
	assert.True(t, ok)
	assert.Equal(t, "upper", member.Member)
	assert.False(t, member.IsAttribute)
}

func TestParseAttributeAccess(t *testing.T) {
	prog := mustParse(t, "x = name.length\n")
	assign := prog.Statements[0].(*ast.AssignmentExpr)
	member, ok := assign.RHS.(*ast.MemberExpr)
	assert.True(t, ok)
	assert.True(t, member.IsAttribute)
}

func TestParseListLiteral(t *testing.T) {
	prog := mustParse(t, "x = [1, 2, 3]\n")
	assign := prog.Statements[0].(*ast.AssignmentExpr)
	list, ok := assign.RHS.(*ast.ListExpression)
	assert.True(t, ok)
	assert.Len(t, list.Elements, 3)
}
