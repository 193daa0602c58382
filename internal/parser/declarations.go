package parser

import (
	"github.com/lppc/luapp/internal/ast"
	"github.com/lppc/luapp/internal/lexer"
)

// parseClassDef parses "class IDENT { member* }"; the preprocessor's
// class-lowering stage (internal/preprocess) splits Body into Fields
// and Methods afterward, so the parser only has to collect the raw
// sequence.
func (p *Parser) parseClassDef() ast.Expr {
	loc := p.loc()
	if !p.expectIdent() {
		return nil
	}
	name := p.cur.Literal
	if !p.expectLBrace() {
		return nil
	}

	cd := &ast.ClassDef{Loc: loc, Name: name}
	for !p.peekIsRBrace() && !p.peekIs(lexer.EOF) {
		p.nextToken()
		if member := p.parseClassMember(); member != nil {
			cd.Body = append(cd.Body, member)
		}
	}
	p.nextToken() // consume closing brace
	return cd
}

func (p *Parser) parseClassMember() ast.Expr {
	switch {
	case p.curIs(lexer.FUNCTION):
		return p.parseFunction(false)
	case p.curIs(lexer.LOCAL):
		return p.parseVariableDef()
	default:
		p.diags.Error(p.loc(), "invalid expression in class definition")
		return nil
	}
}

// parseFunction parses "function IDENT(params) -> Type { body }". A
// preceding "extern" keyword always marks the result Extern; a
// function with no body at all (the signature not followed by "{",
// with or without a closing ";") is implicitly treated the same way —
// a bare prototype, the form a class's method signatures take inside
// a ".lmod" definitions file (spec.md §6).
func (p *Parser) parseFunction(extern bool) ast.Expr {
	loc := p.loc()
	if !p.expectIdent() {
		return nil
	}
	name := p.cur.Literal
	if !p.expect(lexer.LPAREN) {
		return nil
	}

	fn := &ast.Function{Loc: loc, Name: name}
	fn.Params, fn.Variadic = p.parseParamList()

	if !p.expect(lexer.ARROW) {
		return nil
	}
	fn.ReturnType = p.parseTypeName()

	if extern || !p.peekIs(lexer.LBRACE) {
		fn.Extern = true
		if p.peekIs(lexer.SEMICOLON) {
			p.nextToken()
		}
		return fn
	}

	if !p.expectLBrace() {
		return nil
	}
	fn.Body = p.parseBlockBody()
	return fn
}

// parseParamList parses the parameter list with cur sitting on "(" on
// entry. A trailing "..." marks the function variadic.
func (p *Parser) parseParamList() ([]*ast.VariableDef, bool) {
	var params []*ast.VariableDef
	if p.peekIs(lexer.RPAREN) {
		p.nextToken()
		return params, false
	}
	variadic := false
	for {
		p.nextToken()
		if p.curIs(lexer.ELLIPSIS) {
			variadic = true
			break
		}
		typeName := p.parseTypeNameFromCur()
		if !p.expectIdent() {
			return params, variadic
		}
		params = append(params, &ast.VariableDef{Loc: p.loc(), Name: p.cur.Literal, Type: typeName})
		if p.peekIs(lexer.COMMA) {
			p.nextToken()
			continue
		}
		break
	}
	if !p.expect(lexer.RPAREN) {
		return params, variadic
	}
	return params, variadic
}

// parseVariableDef parses "local IDENT -> Type ['[' size ']'] ['=' Expr] ';'"
// (a "local" statement is also how top-level globals and class fields
// are spelled).
func (p *Parser) parseVariableDef() ast.Expr {
	return p.parseVariableDefExtern(false)
}

func (p *Parser) parseVariableDefExtern(extern bool) ast.Expr {
	loc := p.loc()
	if !p.expectIdent() {
		return nil
	}
	name := p.cur.Literal

	vd := &ast.VariableDef{Loc: loc, Name: name, Extern: extern}
	if p.peekIs(lexer.ARROW) {
		p.nextToken()
		vd.Type = p.parseTypeName()
		if p.peekIs(lexer.LBRACK) {
			p.nextToken()
			p.nextToken()
			vd.Size = p.parseUintLiteral()
			p.expect(lexer.RBRACK)
		}
	}
	if !extern && p.peekIs(lexer.ASSIGN) {
		p.nextToken()
		p.nextToken()
		vd.Initial = p.parseExpression(LOWEST)
	}
	if p.peekIs(lexer.SEMICOLON) {
		p.nextToken()
	}
	return vd
}

func (p *Parser) parseUintLiteral() uint {
	v, err := parseUint(p.cur.Literal)
	if err != nil {
		p.diags.Error(p.loc(), "invalid array size '%s'", p.cur.Literal)
		return 0
	}
	return v
}

// parseExternDecl parses "extern" followed by either a function or a
// variable declaration.
func (p *Parser) parseExternDecl() ast.Expr {
	if p.peekIs(lexer.FUNCTION) {
		p.nextToken()
		return p.parseFunction(true)
	}
	if p.peekIs(lexer.LOCAL) {
		p.nextToken()
		return p.parseVariableDefExtern(true)
	}
	p.diags.Error(p.loc(), "expected function or local after extern")
	return nil
}

// parseMeta parses "meta { statement* }".
func (p *Parser) parseMeta() ast.Expr {
	loc := p.loc()
	if !p.expectLBrace() {
		return nil
	}
	m := &ast.Meta{Loc: loc}
	m.Body = p.parseBlockBody()
	return m
}
