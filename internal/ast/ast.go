/*
File    : gomix-pseudo/internal/ast/ast.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/

// Package ast defines the syntax tree produced by the parser and walked by
// the evaluator: a closed node set expressed as interfaces plus one
// concrete struct per variant, so dispatch is a type switch rather than
// string-tag comparison.
package ast

import "github.com/akashmaji946/gomix-pseudo/internal/token"

// Node is implemented by every statement and expression.
type Node interface {
	TokenLiteral() string
}

// Statement is a Node evaluated for effect, not (necessarily) for a value.
type Statement interface {
	Node
	statementNode()
}

// Expression is a Node that evaluates to a runtime value.
type Expression interface {
	Node
	expressionNode()
}

// Program is the root node: a flat body of top-level statements.
type Program struct {
	Statements []Statement
}

func (p *Program) TokenLiteral() string {
	if len(p.Statements) > 0 {
		return p.Statements[0].TokenLiteral()
	}
	return ""
}

// Block is a sequence of statements making up a branch, loop, or subroutine
// body.
type Block struct {
	Tok        token.Token
	Statements []Statement
}

func (b *Block) TokenLiteral() string { return b.Tok.Literal }

// ExpressionStatement wraps a bare expression evaluated for its side effect
// (a procedure call on its own line, for example).
type ExpressionStatement struct {
	Tok  token.Token
	Expr Expression
}

func (s *ExpressionStatement) TokenLiteral() string { return s.Tok.Literal }
func (s *ExpressionStatement) statementNode()       {}

// Identifier names a variable, constant, function, or procedure.
type Identifier struct {
	Tok  token.Token
	Name string
}

func (i *Identifier) TokenLiteral() string { return i.Tok.Literal }
func (i *Identifier) expressionNode()      {}

// NumericLiteral is an integer or floating-point constant.
type NumericLiteral struct {
	Tok      token.Token
	IsFloat  bool
	IntVal   int64
	FloatVal float64
}

func (n *NumericLiteral) TokenLiteral() string { return n.Tok.Literal }
func (n *NumericLiteral) expressionNode()      {}

// StringLiteral is a quoted string constant; the lexer has already stripped
// the surrounding quotes.
type StringLiteral struct {
	Tok   token.Token
	Value string
}

func (s *StringLiteral) TokenLiteral() string { return s.Tok.Literal }
func (s *StringLiteral) expressionNode()      {}

// BinaryKind distinguishes the evaluator's two binary-expression dispatch
// tables: Numeric handles +-*/ MOD DIV, all comparisons, and AND/OR;
// Boolean handles only AND/OR (built for chained logical operators, whose
// operands are already boolean contexts).
type BinaryKind int

const (
	Numeric BinaryKind = iota
	Boolean
)

// BinaryExpr is a two-operand expression: arithmetic, comparison, or
// logical AND/OR. Operator is the token literal ("+", "==", "and", ...).
type BinaryExpr struct {
	Tok      token.Token
	Left     Expression
	Operator string
	Right    Expression
	Kind     BinaryKind
}

func (b *BinaryExpr) TokenLiteral() string { return b.Tok.Literal }
func (b *BinaryExpr) expressionNode()      {}

// UnaryExpr is a single-operand prefix expression. The parser desugars
// "-x" to "0 - x" rather than building a UnaryExpr with operator "-", so
// the only operator ever constructed here is NOT.
type UnaryExpr struct {
	Tok      token.Token
	Operator string
	Right    Expression
}

func (u *UnaryExpr) TokenLiteral() string { return u.Tok.Literal }
func (u *UnaryExpr) expressionNode()      {}

// ListExpression is a bracketed, comma-separated expression list: a list
// literal when it stands alone, or the evaluated argument list of a
// FunctionCall/MemberExpr.
type ListExpression struct {
	Tok      token.Token
	Elements []Expression
}

func (l *ListExpression) TokenLiteral() string { return l.Tok.Literal }
func (l *ListExpression) expressionNode()      {}

// Itype tags how an AssignmentExpr/ArrayAssignmentExpr binds its name.
type Itype int

const (
	Var Itype = iota
	Const
	Global
)

// AssignmentExpr binds Name to the value of RHS; Itype selects plain,
// const, or global binding.
type AssignmentExpr struct {
	Tok   token.Token
	Name  string
	RHS   Expression
	Itype Itype
}

func (a *AssignmentExpr) TokenLiteral() string { return a.Tok.Literal }
func (a *AssignmentExpr) expressionNode()      {}
func (a *AssignmentExpr) statementNode()       {}

// ArrayAssignmentExpr declares a fixed-size array: "array name[n]",
// optionally initialised from a ListExpression: "array name[n] = [...]".
type ArrayAssignmentExpr struct {
	Tok    token.Token
	Name   string
	Length Expression
	RHS    *ListExpression // nil when no initialiser is given
	Itype  Itype
}

func (a *ArrayAssignmentExpr) TokenLiteral() string { return a.Tok.Literal }
func (a *ArrayAssignmentExpr) expressionNode()      {}
func (a *ArrayAssignmentExpr) statementNode()       {}

// ArrayIndex reads Name[Index], or — when Assign is true — writes RHS into
// that slot and evaluates to the resulting container.
type ArrayIndex struct {
	Tok    token.Token
	Name   string
	Index  Expression
	RHS    Expression // only set when Assign is true
	Assign bool
}

func (ix *ArrayIndex) TokenLiteral() string { return ix.Tok.Literal }
func (ix *ArrayIndex) expressionNode()      {}
func (ix *ArrayIndex) statementNode()       {}

// MemberExpr accesses Member on Object: an attribute read when IsAttribute
// is true, or a method call (with Args) otherwise.
type MemberExpr struct {
	Tok         token.Token
	Object      Expression
	Member      string
	Args        *ListExpression
	IsAttribute bool
}

func (m *MemberExpr) TokenLiteral() string { return m.Tok.Literal }
func (m *MemberExpr) expressionNode()      {}
func (m *MemberExpr) statementNode()       {}

// FunctionCall invokes Name (a built-in or user subroutine) with Args.
type FunctionCall struct {
	Tok  token.Token
	Name string
	Args *ListExpression
}

func (f *FunctionCall) TokenLiteral() string { return f.Tok.Literal }
func (f *FunctionCall) expressionNode()      {}
func (f *FunctionCall) statementNode()       {}

// IfStatement is one condition/body pair of an if/elseif/else chain. A nil
// Condition marks the terminal else branch.
type IfStatement struct {
	Condition Expression
	Body      *Block
}

// IfBlock is the full if / elseif* / else? / endif chain. Branches is
// walked in order; at most one body executes per evaluation. Cursor records
// which branch last matched and is reset to -1 at the top of every
// evaluation entry, since the same node is re-entered across REPL lines.
type IfBlock struct {
	Tok      token.Token
	Branches []*IfStatement
	Cursor   int
}

func (i *IfBlock) TokenLiteral() string { return i.Tok.Literal }
func (i *IfBlock) statementNode()       {}

// ForBlock is a counted loop: "for Name = Start to Limit [step Step]".
// InitialiserName is the loop variable; InitialisingAssignment is the
// AssignmentExpr binding it to Start. Step defaults to the integer literal
// 1 when omitted.
type ForBlock struct {
	Tok                    token.Token
	InitialiserName        string
	InitialisingAssignment *AssignmentExpr
	LimitExpr              Expression
	StepExpr               Expression
	Body                   *Block
}

func (f *ForBlock) TokenLiteral() string { return f.Tok.Literal }
func (f *ForBlock) statementNode()       {}

// WhileBlock is a pre-tested loop: "while Condition ... endwhile".
type WhileBlock struct {
	Tok       token.Token
	Condition Expression
	Body      *Block
}

func (w *WhileBlock) TokenLiteral() string { return w.Tok.Literal }
func (w *WhileBlock) statementNode()       {}

// FuncType distinguishes a value-returning FUNCTION from a void PROCEDURE.
type FuncType int

const (
	FunctionType FuncType = iota
	ProcedureType
)

// FuncBlock declares a function or procedure. A procedure body may not
// contain a return with a value; ReturnExpr, when present, is evaluated in
// the call's child frame after Body runs.
type FuncBlock struct {
	Tok        token.Token
	Name       string
	Parameters []string
	Body       *Block
	FuncType   FuncType
	ReturnExpr Expression
}

func (f *FuncBlock) TokenLiteral() string { return f.Tok.Literal }
func (f *FuncBlock) statementNode()       {}
func (f *FuncBlock) expressionNode()      {}
