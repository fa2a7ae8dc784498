/*
File    : gomix-pseudo/internal/parser/parser.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/

// Package parser implements a recursive-descent parser over the flat token
// list produced by internal/lexer. Expressions follow an explicit
// precedence ladder: assignment -> logical -> comparison -> additive ->
// multiplicative -> unary -> primary, left-associative at every level.
// There is no error recovery: the first SyntaxError aborts parsing and is
// returned to the caller.
package parser

import (
	"strconv"

	"github.com/akashmaji946/gomix-pseudo/internal/ast"
	"github.com/akashmaji946/gomix-pseudo/internal/token"
	"github.com/akashmaji946/gomix-pseudo/internal/values"
)

// Parser walks a token slice with two-token lookahead (curr/next), driving
// a dedicated function per precedence level.
type Parser struct {
	tokens []token.Token
	pos    int
	curr   token.Token
	next   token.Token
}

// New builds a Parser over an already-tokenized program.
func New(tokens []token.Token) *Parser {
	p := &Parser{tokens: tokens}
	if len(tokens) > 0 {
		p.curr = tokens[0]
	}
	if len(tokens) > 1 {
		p.next = tokens[1]
	}
	return p
}

// Parse drives New(tokens).ParseProgram() — the entry point cmd/pseudo and
// the REPL use.
func Parse(tokens []token.Token) (*ast.Program, error) {
	return New(tokens).ParseProgram()
}

func (p *Parser) advance() {
	p.pos++
	p.curr = p.next
	nextPos := p.pos + 1
	if nextPos < len(p.tokens) {
		p.next = p.tokens[nextPos]
	} else {
		p.next = token.Token{Kind: token.EOF}
	}
}

// mark/reset implement the backtracking the index-assignment
// lookahead needs: "a[i]" is parsed speculatively, then rewound if it turns
// out not to be followed by "=".
type mark struct {
	pos        int
	curr, next token.Token
}

func (p *Parser) mark() mark { return mark{p.pos, p.curr, p.next} }
func (p *Parser) reset(m mark) {
	p.pos, p.curr, p.next = m.pos, m.curr, m.next
}

func (p *Parser) syntaxError(expected string) error {
	return &values.SyntaxError{
		Line: p.curr.Line, Column: p.curr.Column,
		Expected: expected, Got: string(p.curr.Kind),
	}
}

func (p *Parser) expect(kind token.Kind, what string) (token.Token, error) {
	if p.curr.Kind != kind {
		return token.Token{}, p.syntaxError(what)
	}
	tok := p.curr
	p.advance()
	return tok, nil
}

// skipNewlines consumes any number of statement-separating NEWLINE tokens.
func (p *Parser) skipNewlines() {
	for p.curr.Kind == token.NEWLINE {
		p.advance()
	}
}

func (p *Parser) atAny(kinds ...token.Kind) bool {
	for _, k := range kinds {
		if p.curr.Kind == k {
			return true
		}
	}
	return false
}

// ParseProgram parses the whole token stream into a Program, stopping at
// the first SyntaxError (or any other parse error). Stray NEWLINEs at the
// top level are silently consumed.
func (p *Parser) ParseProgram() (*ast.Program, error) {
	prog := &ast.Program{}
	p.skipNewlines()
	for p.curr.Kind != token.EOF {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		prog.Statements = append(prog.Statements, stmt)
		p.skipNewlines()
	}
	return prog, nil
}

// parseBlockUntil parses statements until the current token is one of
// terminators (left unconsumed) or EOF.
func (p *Parser) parseBlockUntil(terminators ...token.Kind) (*ast.Block, error) {
	block := &ast.Block{Tok: p.curr}
	p.skipNewlines()
	for !p.atAny(terminators...) && p.curr.Kind != token.EOF {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		block.Statements = append(block.Statements, stmt)
		p.skipNewlines()
	}
	return block, nil
}

// parseStatement dispatches on the current token kind. Everything that
// isn't one of the block keywords falls through to an expression statement,
// terminated by NEWLINE or EOF.
func (p *Parser) parseStatement() (ast.Statement, error) {
	switch p.curr.Kind {
	case token.IF:
		return p.parseIfBlock()
	case token.FOR:
		return p.parseForBlock()
	case token.WHILE:
		return p.parseWhileBlock()
	case token.FUNCTION:
		return p.parseFuncBlock(ast.FunctionType)
	case token.PROCEDURE:
		return p.parseFuncBlock(ast.ProcedureType)
	default:
		return p.parseExpressionStatement()
	}
}

func (p *Parser) parseExpressionStatement() (ast.Statement, error) {
	tok := p.curr
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if stmt, ok := expr.(ast.Statement); ok {
		if p.curr.Kind != token.NEWLINE && p.curr.Kind != token.EOF {
			return nil, p.syntaxError("newline")
		}
		return stmt, nil
	}
	if p.curr.Kind != token.NEWLINE && p.curr.Kind != token.EOF {
		return nil, p.syntaxError("newline")
	}
	return &ast.ExpressionStatement{Tok: tok, Expr: expr}, nil
}

// --- if / for / while / function blocks ---

func (p *Parser) parseIfBlock() (ast.Statement, error) {
	tok := p.curr
	p.advance() // IF
	block := &ast.IfBlock{Tok: tok}

	for {
		cond, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.THEN, "'then'"); err != nil {
			return nil, err
		}
		body, err := p.parseBlockUntil(token.ELSEIF, token.ELSE, token.ENDIF)
		if err != nil {
			return nil, err
		}
		block.Branches = append(block.Branches, &ast.IfStatement{Condition: cond, Body: body})

		if p.curr.Kind == token.ELSEIF {
			p.advance()
			continue
		}
		break
	}

	if p.curr.Kind == token.ELSE {
		p.advance()
		body, err := p.parseBlockUntil(token.ENDIF)
		if err != nil {
			return nil, err
		}
		block.Branches = append(block.Branches, &ast.IfStatement{Condition: nil, Body: body})
	}

	if _, err := p.expect(token.ENDIF, "'endif'"); err != nil {
		return nil, err
	}
	return block, nil
}

func (p *Parser) parseForBlock() (ast.Statement, error) {
	tok := p.curr
	p.advance() // FOR
	name, err := p.expect(token.NAME, "an identifier")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.ASSIGN, "'='"); err != nil {
		return nil, err
	}
	start, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.TO, "'to'"); err != nil {
		return nil, err
	}
	limit, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	var step ast.Expression
	if p.curr.Kind == token.STEP {
		p.advance()
		step, err = p.parseExpression()
		if err != nil {
			return nil, err
		}
	} else {
		step = &ast.NumericLiteral{Tok: tok, IntVal: 1}
	}
	body, err := p.parseBlockUntil(token.NEXT)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.NEXT, "'next'"); err != nil {
		return nil, err
	}
	if p.curr.Kind == token.NAME {
		p.advance() // the trailing identifier is consumed, not checked against the loop variable
	}
	init := &ast.AssignmentExpr{Tok: name, Name: name.Literal, RHS: start, Itype: ast.Var}
	return &ast.ForBlock{
		Tok: tok, InitialiserName: name.Literal, InitialisingAssignment: init,
		LimitExpr: limit, StepExpr: step, Body: body,
	}, nil
}

func (p *Parser) parseWhileBlock() (ast.Statement, error) {
	tok := p.curr
	p.advance() // WHILE
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlockUntil(token.ENDWHILE)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.ENDWHILE, "'endwhile'"); err != nil {
		return nil, err
	}
	return &ast.WhileBlock{Tok: tok, Condition: cond, Body: body}, nil
}

func (p *Parser) parseFuncBlock(kind ast.FuncType) (ast.Statement, error) {
	tok := p.curr
	p.advance() // FUNCTION/PROCEDURE
	name, err := p.expect(token.NAME, "an identifier")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.LPAREN, "'('"); err != nil {
		return nil, err
	}
	var params []string
	for p.curr.Kind != token.RPAREN {
		param, err := p.expect(token.NAME, "a parameter name")
		if err != nil {
			return nil, err
		}
		params = append(params, param.Literal)
		if p.curr.Kind == token.COMMA {
			p.advance()
		}
	}
	p.advance() // consume RPAREN

	endKind, endWhat := token.ENDFUNCTION, "'endfunction'"
	if kind == ast.ProcedureType {
		endKind, endWhat = token.ENDPROCEDURE, "'endprocedure'"
	}

	body, err := p.parseBlockUntil(token.RETURN, endKind)
	if err != nil {
		return nil, err
	}

	var returnExpr ast.Expression
	if p.curr.Kind == token.RETURN {
		if kind == ast.ProcedureType {
			return nil, &values.SyntaxError{
				Line: p.curr.Line, Column: p.curr.Column,
				Expected: "no 'return' with a value inside a procedure", Got: "return",
			}
		}
		p.advance()
		returnExpr, err = p.parseExpression()
		if err != nil {
			return nil, err
		}
		p.skipNewlines()
	}

	if _, err := p.expect(endKind, endWhat); err != nil {
		return nil, err
	}
	return &ast.FuncBlock{
		Tok: tok, Name: name.Literal, Parameters: params, Body: body,
		FuncType: kind, ReturnExpr: returnExpr,
	}, nil
}

// --- expression precedence ladder ---

// parseExpression is the ladder's lowest-precedence level: assignment. It
// inspects the first token to decide whether the whole expression is an
// AssignmentExpr / ArrayAssignmentExpr / index-assigning ArrayIndex before
// falling through to parseLogical for everything else (including reads of
// the same NAME/LSQBRACE shapes).
func (p *Parser) parseExpression() (ast.Expression, error) {
	switch p.curr.Kind {
	case token.CONST:
		return p.parseKeywordAssignment(ast.Const)
	case token.GLOBAL:
		return p.parseKeywordAssignment(ast.Global)
	case token.ARRAY:
		return p.parseArrayAssignment()
	case token.NAME:
		if p.next.Kind == token.ASSIGN {
			return p.parsePlainAssignment()
		}
		if p.next.Kind == token.LSQBRACE {
			m := p.mark()
			expr, matched, err := p.tryIndexAssignment()
			if err != nil {
				return nil, err
			}
			if matched {
				return expr, nil
			}
			p.reset(m)
		}
	}
	return p.parseLogical()
}

func (p *Parser) parseKeywordAssignment(itype ast.Itype) (ast.Expression, error) {
	tok := p.curr
	p.advance() // CONST/GLOBAL
	name, err := p.expect(token.NAME, "an identifier")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.ASSIGN, "'='"); err != nil {
		return nil, err
	}
	rhs, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return &ast.AssignmentExpr{Tok: tok, Name: name.Literal, RHS: rhs, Itype: itype}, nil
}

func (p *Parser) parsePlainAssignment() (ast.Expression, error) {
	tok := p.curr
	name := p.curr.Literal
	p.advance() // NAME
	p.advance() // ASSIGN
	rhs, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return &ast.AssignmentExpr{Tok: tok, Name: name, RHS: rhs, Itype: ast.Var}, nil
}

func (p *Parser) parseArrayAssignment() (ast.Expression, error) {
	tok := p.curr
	p.advance() // ARRAY
	name, err := p.expect(token.NAME, "an identifier")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.LSQBRACE, "'['"); err != nil {
		return nil, err
	}
	length, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RSQBRACE, "']'"); err != nil {
		return nil, err
	}
	decl := &ast.ArrayAssignmentExpr{Tok: tok, Name: name.Literal, Length: length, Itype: ast.Var}
	if p.curr.Kind == token.ASSIGN {
		p.advance()
		listTok := p.curr
		if _, err := p.expect(token.LSQBRACE, "'['"); err != nil {
			return nil, err
		}
		elements, err := p.parseExpressionListUntil(token.RSQBRACE)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RSQBRACE, "']'"); err != nil {
			return nil, err
		}
		decl.RHS = &ast.ListExpression{Tok: listTok, Elements: elements}
	}
	return decl, nil
}

// tryIndexAssignment speculatively parses "NAME [ expr ] = expr". If no
// "=" follows the closing bracket, it reports matched=false so the caller
// rewinds and re-parses the same tokens as an ordinary read expression.
func (p *Parser) tryIndexAssignment() (ast.Expression, bool, error) {
	tok := p.curr
	name := p.curr.Literal
	p.advance() // NAME
	p.advance() // LSQBRACE
	index, err := p.parseExpression()
	if err != nil {
		return nil, false, err
	}
	if p.curr.Kind != token.RSQBRACE {
		return nil, false, nil
	}
	p.advance() // RSQBRACE
	if p.curr.Kind != token.ASSIGN {
		return nil, false, nil
	}
	p.advance() // ASSIGN
	rhs, err := p.parseExpression()
	if err != nil {
		return nil, false, err
	}
	return &ast.ArrayIndex{Tok: tok, Name: name, Index: index, RHS: rhs, Assign: true}, true, nil
}

func (p *Parser) parseLogical() (ast.Expression, error) {
	left, err := p.parseComparison()
	if err != nil {
		return nil, err
	}
	for p.curr.Kind == token.OPERATION && (p.curr.Literal == "and" || p.curr.Literal == "or") {
		tok := p.curr
		op := p.curr.Literal
		p.advance()
		right, err := p.parseComparison()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpr{Tok: tok, Left: left, Operator: op, Right: right, Kind: ast.Boolean}
	}
	return left, nil
}

func (p *Parser) parseComparison() (ast.Expression, error) {
	left, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	for p.curr.Kind == token.COMPARE {
		tok := p.curr
		op := p.curr.Literal
		p.advance()
		right, err := p.parseAdditive()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpr{Tok: tok, Left: left, Operator: op, Right: right, Kind: ast.Numeric}
	}
	return left, nil
}

func (p *Parser) parseAdditive() (ast.Expression, error) {
	left, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}
	for p.curr.Kind == token.OPERATION && (p.curr.Literal == "+" || p.curr.Literal == "-") {
		tok := p.curr
		op := p.curr.Literal
		p.advance()
		right, err := p.parseMultiplicative()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpr{Tok: tok, Left: left, Operator: op, Right: right, Kind: ast.Numeric}
	}
	return left, nil
}

func (p *Parser) parseMultiplicative() (ast.Expression, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.curr.Kind == token.OPERATION && isMultiplicativeOp(p.curr.Literal) {
		tok := p.curr
		op := p.curr.Literal
		p.advance()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpr{Tok: tok, Left: left, Operator: op, Right: right, Kind: ast.Numeric}
	}
	return left, nil
}

func isMultiplicativeOp(lit string) bool {
	return lit == "*" || lit == "/" || lit == "mod" || lit == "div"
}

// parseUnary handles NOT and desugars a leading "-" into "0 - expr".
func (p *Parser) parseUnary() (ast.Expression, error) {
	if p.curr.Kind == token.OPERATION && p.curr.Literal == "not" {
		tok := p.curr
		p.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.UnaryExpr{Tok: tok, Operator: "not", Right: operand}, nil
	}
	if p.curr.Kind == token.OPERATION && p.curr.Literal == "-" {
		tok := p.curr
		p.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		zero := &ast.NumericLiteral{Tok: tok, IntVal: 0}
		return &ast.BinaryExpr{Tok: tok, Left: zero, Operator: "-", Right: operand, Kind: ast.Numeric}, nil
	}
	return p.parsePrimary()
}

func (p *Parser) parsePrimary() (ast.Expression, error) {
	tok := p.curr
	switch tok.Kind {
	case token.NUMBER:
		p.advance()
		return parseNumericLiteral(tok)
	case token.STRING:
		p.advance()
		return p.parseTrailers(tok, &ast.StringLiteral{Tok: tok, Value: tok.Literal})
	case token.NONE:
		p.advance()
		return &ast.Identifier{Tok: tok, Name: "None"}, nil
	case token.LPAREN:
		p.advance()
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RPAREN, "')'"); err != nil {
			return nil, err
		}
		return p.parseTrailers(tok, expr)
	case token.LSQBRACE:
		lit, err := p.parseListLiteral()
		if err != nil {
			return nil, err
		}
		return p.parseTrailers(tok, lit)
	case token.NAME:
		p.advance()
		return p.parseTrailers(tok, &ast.Identifier{Tok: tok, Name: tok.Literal})
	default:
		return nil, p.syntaxError("an expression")
	}
}

func parseNumericLiteral(tok token.Token) (ast.Expression, error) {
	if containsDot(tok.Literal) {
		f, err := strconv.ParseFloat(tok.Literal, 64)
		if err != nil {
			return nil, &values.SyntaxError{Line: tok.Line, Column: tok.Column, Expected: "a number", Got: tok.Literal}
		}
		return &ast.NumericLiteral{Tok: tok, IsFloat: true, FloatVal: f}, nil
	}
	n, err := strconv.ParseInt(tok.Literal, 10, 64)
	if err != nil {
		return nil, &values.SyntaxError{Line: tok.Line, Column: tok.Column, Expected: "a number", Got: tok.Literal}
	}
	return &ast.NumericLiteral{Tok: tok, IntVal: n}, nil
}

func containsDot(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] == '.' {
			return true
		}
	}
	return false
}

// parseTrailers consumes the call/index/member-access suffixes that can
// follow a primary: "(args)" turns a bare name into a FunctionCall,
// "[index]" into a (read) ArrayIndex, ".member" or ".method(args)" into a
// MemberExpr. Member access chains on names, string and list literals, and
// parenthesised expressions; numeric literals and None are returned by
// parsePrimary without trailers. Calls and indexing apply to bare names
// only, so a second "("/"[" directly on a FunctionCall/ArrayIndex result is not part of the
// grammar and ends the trailer loop.
func (p *Parser) parseTrailers(tok token.Token, expr ast.Expression) (ast.Expression, error) {
	for {
		switch p.curr.Kind {
		case token.LPAREN:
			ident, ok := expr.(*ast.Identifier)
			if !ok {
				return expr, nil
			}
			args, err := p.parseArgList()
			if err != nil {
				return nil, err
			}
			expr = &ast.FunctionCall{Tok: tok, Name: ident.Name, Args: args}
		case token.LSQBRACE:
			ident, ok := expr.(*ast.Identifier)
			if !ok {
				return expr, nil
			}
			p.advance()
			index, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(token.RSQBRACE, "']'"); err != nil {
				return nil, err
			}
			expr = &ast.ArrayIndex{Tok: tok, Name: ident.Name, Index: index}
		case token.DOT:
			p.advance()
			member, err := p.expect(token.NAME, "a member name")
			if err != nil {
				return nil, err
			}
			if p.curr.Kind == token.LPAREN {
				args, err := p.parseArgList()
				if err != nil {
					return nil, err
				}
				expr = &ast.MemberExpr{Tok: tok, Object: expr, Member: member.Literal, Args: args, IsAttribute: false}
			} else {
				expr = &ast.MemberExpr{Tok: tok, Object: expr, Member: member.Literal, IsAttribute: true}
			}
		default:
			return expr, nil
		}
	}
}

func (p *Parser) parseArgList() (*ast.ListExpression, error) {
	tok := p.curr
	if _, err := p.expect(token.LPAREN, "'('"); err != nil {
		return nil, err
	}
	elements, err := p.parseExpressionListUntil(token.RPAREN)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RPAREN, "')'"); err != nil {
		return nil, err
	}
	return &ast.ListExpression{Tok: tok, Elements: elements}, nil
}

func (p *Parser) parseListLiteral() (ast.Expression, error) {
	tok := p.curr
	p.advance() // LSQBRACE
	elements, err := p.parseExpressionListUntil(token.RSQBRACE)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RSQBRACE, "']'"); err != nil {
		return nil, err
	}
	return &ast.ListExpression{Tok: tok, Elements: elements}, nil
}

func (p *Parser) parseExpressionListUntil(terminator token.Kind) ([]ast.Expression, error) {
	var elements []ast.Expression
	for p.curr.Kind != terminator {
		elem, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		elements = append(elements, elem)
		if p.curr.Kind == token.COMMA {
			p.advance()
			continue
		}
		break
	}
	return elements, nil
}
