// Package parser implements a Pratt parser turning a luapp token
// stream into an *ast.Module, grounded on the teacher's
// internal/parser: a precedence table plus prefixParseFns/
// infixParseFns maps, curToken/peekToken with single-token lookahead,
// and errors accumulated into a Collector rather than panicking.
package parser

import (
	"strconv"

	"github.com/lppc/luapp/internal/ast"
	"github.com/lppc/luapp/internal/errors"
	"github.com/lppc/luapp/internal/lexer"
)

const (
	_ int = iota
	LOWEST
	ASSIGN // =
	EQUALS // == ~= < > <= >=
	SUM    // + -
	PRODUCT
	PREFIX
)

var precedences = map[lexer.TokenType]int{
	lexer.ASSIGN:     ASSIGN,
	lexer.EQ:         EQUALS,
	lexer.NOT_EQ:     EQUALS,
	lexer.LESS:       EQUALS,
	lexer.GREATER:    EQUALS,
	lexer.LESS_EQ:    EQUALS,
	lexer.GREATER_EQ: EQUALS,
	lexer.PLUS:       SUM,
	lexer.MINUS:      SUM,
	lexer.ASTERISK:   PRODUCT,
	lexer.SLASH:      PRODUCT,
}

type prefixParseFn func() ast.Expr
type infixParseFn func(ast.Expr) ast.Expr

// Parser turns one lexer's token stream into a Module.
type Parser struct {
	l     *lexer.Lexer
	diags *errors.Collector

	cur  lexer.Token
	peek lexer.Token

	prefixParseFns map[lexer.TokenType]prefixParseFn
	infixParseFns  map[lexer.TokenType]infixParseFn
}

// New constructs a Parser reading from l, recording diagnostics in diags.
func New(l *lexer.Lexer, diags *errors.Collector) *Parser {
	p := &Parser{l: l, diags: diags}

	p.prefixParseFns = map[lexer.TokenType]prefixParseFn{
		lexer.IDENT:    p.parseVariable,
		lexer.INT:      p.parseInteger,
		lexer.FLOAT:    p.parseNumber,
		lexer.STRING:   p.parseStringLit,
		lexer.BYTE:     p.parseByte,
		lexer.TRUE:     p.parseBool,
		lexer.FALSE:    p.parseBool,
		lexer.TILDE:    p.parseUnary,
		lexer.MINUS:    p.parseUnary,
		lexer.AT:       p.parseUnary,
		lexer.DOLLAR:   p.parseUnary,
		lexer.LPAREN:   p.parseGroupedOrCast,
	}
	p.infixParseFns = map[lexer.TokenType]infixParseFn{
		lexer.PLUS:       p.parseBinary,
		lexer.MINUS:      p.parseBinary,
		lexer.ASTERISK:   p.parseBinary,
		lexer.SLASH:      p.parseBinary,
		lexer.EQ:         p.parseBinary,
		lexer.NOT_EQ:     p.parseBinary,
		lexer.LESS:       p.parseBinary,
		lexer.GREATER:    p.parseBinary,
		lexer.LESS_EQ:    p.parseBinary,
		lexer.GREATER_EQ: p.parseBinary,
		lexer.ASSIGN:     p.parseAssign,
	}

	p.nextToken()
	p.nextToken()
	return p
}

func (p *Parser) nextToken() {
	p.cur = p.peek
	p.peek = p.l.NextToken()
}

func (p *Parser) loc() ast.SourceLocation {
	return ast.SourceLocation{Line: p.cur.Pos.Line, Col: p.cur.Pos.Column, Size: max(len(p.cur.Literal), 1)}
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func (p *Parser) curIs(t lexer.TokenType) bool  { return p.cur.Type == t }
func (p *Parser) peekIs(t lexer.TokenType) bool { return p.peek.Type == t }

func (p *Parser) expect(t lexer.TokenType) bool {
	if p.peekIs(t) {
		p.nextToken()
		return true
	}
	p.diags.Error(p.loc(), "expected %s, got %s ('%s')", t, p.peek.Type, p.peek.Literal)
	return false
}

func (p *Parser) peekPrecedence() int {
	if pr, ok := precedences[p.peek.Type]; ok {
		return pr
	}
	return LOWEST
}

// ParseModule parses the entire token stream as one top-level sequence.
func ParseModule(source, sourceName string, diags *errors.Collector) *ast.Module {
	p := New(lexer.New(source), diags)
	mod := &ast.Module{SourceName: sourceName, SourcePath: ""}
	for !p.curIs(lexer.EOF) {
		if item := p.parseTopLevel(); item != nil {
			mod.TopLevel = append(mod.TopLevel, item)
		}
		p.nextToken()
	}
	for _, lerr := range p.l.Errors() {
		diags.Error(ast.SourceLocation{Line: lerr.Pos.Line, Col: lerr.Pos.Column, Size: 1}, "%s", lerr.Message)
	}
	return mod
}

func (p *Parser) parseTopLevel() ast.Expr {
	switch p.cur.Type {
	case lexer.CLASS:
		return p.parseClassDef()
	case lexer.META:
		return p.parseMeta()
	case lexer.EXTERN:
		return p.parseExternDecl()
	case lexer.FUNCTION:
		return p.parseFunction(false)
	case lexer.LOCAL:
		return p.parseVariableDef()
	default:
		expr := p.parseExpressionStatement()
		return expr
	}
}

func (p *Parser) parseExpressionStatement() ast.Expr {
	expr := p.parseExpression(LOWEST)
	if p.peekIs(lexer.SEMICOLON) {
		p.nextToken()
	}
	return expr
}

func (p *Parser) parseExpression(precedence int) ast.Expr {
	prefix, ok := p.prefixParseFns[p.cur.Type]
	if !ok {
		p.diags.Error(p.loc(), "unexpected token '%s'", p.cur.Literal)
		return nil
	}
	left := prefix()

	for !p.peekIs(lexer.SEMICOLON) && precedence < p.peekPrecedence() {
		infix, ok := p.infixParseFns[p.peek.Type]
		if !ok {
			return left
		}
		p.nextToken()
		left = infix(left)
	}
	return left
}

func (p *Parser) parseInteger() ast.Expr {
	loc := p.loc()
	v, err := strconv.ParseInt(p.cur.Literal, 10, 32)
	if err != nil {
		p.diags.Error(loc, "invalid integer literal '%s'", p.cur.Literal)
	}
	return &ast.Integer{Loc: loc, Value: int32(v)}
}

func (p *Parser) parseNumber() ast.Expr {
	loc := p.loc()
	v, err := strconv.ParseFloat(p.cur.Literal, 32)
	if err != nil {
		p.diags.Error(loc, "invalid float literal '%s'", p.cur.Literal)
	}
	return &ast.Number{Loc: loc, Value: float32(v)}
}

func (p *Parser) parseStringLit() ast.Expr {
	return &ast.StringLit{Loc: p.loc(), Value: p.cur.Literal}
}

func (p *Parser) parseByte() ast.Expr {
	loc := p.loc()
	r := []rune(p.cur.Literal)
	var v int8
	if len(r) > 0 {
		v = int8(r[0])
	}
	return &ast.Byte{Loc: loc, Value: v}
}

func (p *Parser) parseBool() ast.Expr {
	return &ast.Bool{Loc: p.loc(), Value: p.cur.Type == lexer.TRUE}
}

func (p *Parser) parseUnary() ast.Expr {
	loc := p.loc()
	op := p.cur.Literal
	p.nextToken()
	value := p.parseExpression(PREFIX)
	return &ast.UnaryOp{Loc: loc, Op: op, Value: value}
}

func (p *Parser) parseGroupedOrCast() ast.Expr {
	// "(" Type ")" Expr is a TypeCast when the parenthesized content is
	// a bare type name directly followed by another prefix expression;
	// otherwise it's a parenthesized grouping.
	loc := p.loc()
	if p.peekIs(lexer.AT) || (p.peekIs(lexer.IDENT) && p.isCastAhead()) {
		typeName := p.parseTypeName()
		if !p.expect(lexer.RPAREN) {
			return nil
		}
		p.nextToken()
		value := p.parseExpression(PREFIX)
		return &ast.TypeCast{Loc: loc, TargetType: typeName, Value: value}
	}

	p.nextToken()
	expr := p.parseExpression(LOWEST)
	if !p.expect(lexer.RPAREN) {
		return nil
	}
	return expr
}

// isCastAhead peeks past a single identifier type name to see whether
// it's immediately followed by ")", which disambiguates a cast's type
// name from an ordinary parenthesized identifier expression.
func (p *Parser) isCastAhead() bool {
	return p.l.Peek(0).Type == lexer.RPAREN
}

// parseTypeName consumes a leading run of "@" followed by one
// identifier, advancing cur to the final identifier.
func (p *Parser) parseTypeName() string {
	prefix := ""
	for p.peekIs(lexer.AT) {
		p.nextToken()
		prefix += "@"
	}
	p.nextToken()
	return prefix + p.cur.Literal
}

func (p *Parser) parseBinary(left ast.Expr) ast.Expr {
	loc := p.loc()
	op := p.cur.Literal
	precedence := precedences[p.cur.Type]
	p.nextToken()
	right := p.parseExpression(precedence)
	return &ast.BinaryOp{Loc: loc, Op: op, Left: left, Right: right}
}

// parseAssign is right-associative: the RHS is parsed one precedence
// level below ASSIGN so a chain "a = b = c" nests as a = (b = c).
func (p *Parser) parseAssign(left ast.Expr) ast.Expr {
	loc := p.loc()
	p.nextToken()
	right := p.parseExpression(ASSIGN - 1)
	return &ast.BinaryOp{Loc: loc, Op: "=", Left: left, Right: right}
}

// parseVariable parses an identifier, an include/require call, a plain
// function call, or an l-value chain (field/index/method-call links).
func (p *Parser) parseVariable() ast.Expr {
	loc := p.loc()
	name := p.cur.Literal

	if p.peekIs(lexer.LPAREN) {
		return p.parseCall(name, loc)
	}

	v := &ast.Variable{Loc: loc, Name: name}
	return p.parseVariableTail(v)
}

// parseVariableTail consumes any run of ".field", "[index]", and a
// single trailing ":method(args)" call, building the Variable chain
// lowerVariableChain expects. Each ".field" link recurses so deeper
// chains ("a.b.c", "a.b[i]", "a.b:m()") get the same index/call
// handling the head received.
func (p *Parser) parseVariableTail(v *ast.Variable) *ast.Variable {
	for {
		switch {
		case p.peekIs(lexer.LBRACK):
			p.nextToken()
			p.nextToken()
			v.Index = p.parseExpression(LOWEST)
			if !p.expect(lexer.RBRACK) {
				return v
			}
		case p.peekIs(lexer.DOT):
			p.nextToken()
			if !p.expect(lexer.IDENT) {
				return v
			}
			v.Field = p.parseVariableTail(&ast.Variable{Loc: p.loc(), Name: p.cur.Literal})
			return v
		case p.peekIs(lexer.COLON):
			p.nextToken()
			if !p.expect(lexer.IDENT) {
				return v
			}
			callLoc := p.loc()
			methodName := p.cur.Literal
			if !p.expect(lexer.LPAREN) {
				return v
			}
			args := p.parseArgList()
			v.Call = &ast.FunctionCall{Loc: callLoc, Name: methodName, Args: args, IsMethod: true}
			return v
		default:
			return v
		}
	}
}

func (p *Parser) parseCall(name string, loc ast.SourceLocation) ast.Expr {
	p.nextToken() // move to "("
	args := p.parseArgList()
	return &ast.FunctionCall{Loc: loc, Name: name, Args: args}
}

func (p *Parser) parseArgList() []ast.Expr {
	var args []ast.Expr
	if p.peekIs(lexer.RPAREN) {
		p.nextToken()
		return args
	}
	p.nextToken()
	args = append(args, p.parseExpression(LOWEST))
	for p.peekIs(lexer.COMMA) {
		p.nextToken()
		p.nextToken()
		args = append(args, p.parseExpression(LOWEST))
	}
	if !p.expect(lexer.RPAREN) {
		return args
	}
	return args
}
