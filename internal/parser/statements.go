package parser

import (
	"github.com/lppc/luapp/internal/ast"
	"github.com/lppc/luapp/internal/lexer"
)

// parseBlockBody parses a statement list with cur sitting on "{" on
// entry, leaving cur on the closing "}".
func (p *Parser) parseBlockBody() []ast.Expr {
	var body []ast.Expr
	for !p.peekIsRBrace() && !p.peekIs(lexer.EOF) {
		p.nextToken()
		if stmt := p.parseStatement(); stmt != nil {
			body = append(body, stmt)
		}
	}
	p.nextToken() // consume closing brace
	return body
}

func (p *Parser) parseStatement() ast.Expr {
	switch {
	case p.curIs(lexer.IF):
		return p.parseIf()
	case p.curIs(lexer.WHILE):
		return p.parseWhile()
	case p.curIs(lexer.FOR):
		return p.parseFor()
	case p.curIs(lexer.LOCAL):
		return p.parseVariableDef()
	case p.curIs(lexer.GOTO):
		return p.parseGoto()
	case p.curIs(lexer.RETURN):
		return p.parseReturn()
	case p.curIs(lexer.IDENT) && p.peekIs(lexer.COLON) && !p.isMethodCallColonAhead():
		return p.parseLabel()
	default:
		return p.parseExpressionStatement()
	}
}

// isMethodCallColonAhead disambiguates "name:" as the start of a
// method-call expression (e.g. "p:set(7);") from a label statement
// (e.g. "loop:") by looking two tokens past cur, where the lexer's
// own lookahead buffer (not yet consumed into cur/peek) sits.
func (p *Parser) isMethodCallColonAhead() bool {
	return p.l.Peek(0).Type == lexer.IDENT && p.l.Peek(1).Type == lexer.LPAREN
}

func (p *Parser) parseLabel() ast.Expr {
	loc := p.loc()
	name := p.cur.Literal
	p.nextToken() // consume ':'
	return &ast.Label{Loc: loc, Name: name}
}

func (p *Parser) parseGoto() ast.Expr {
	loc := p.loc()
	if !p.expectIdent() {
		return nil
	}
	name := p.cur.Literal
	if p.peekIs(lexer.SEMICOLON) {
		p.nextToken()
	}
	return &ast.Goto{Loc: loc, Name: name}
}

func (p *Parser) parseReturn() ast.Expr {
	loc := p.loc()
	if p.peekIs(lexer.SEMICOLON) {
		p.nextToken()
		return &ast.Return{Loc: loc}
	}
	p.nextToken()
	value := p.parseExpression(LOWEST)
	if p.peekIs(lexer.SEMICOLON) {
		p.nextToken()
	}
	return &ast.Return{Loc: loc, Value: value}
}

func (p *Parser) parseIf() ast.Expr {
	loc := p.loc()
	if !p.expect(lexer.LPAREN) {
		return nil
	}
	p.nextToken()
	head := p.parseExpression(LOWEST)
	if !p.expect(lexer.RPAREN) {
		return nil
	}
	if !p.expectLBrace() {
		return nil
	}
	body := p.parseBlockBody()

	var elseBody []ast.Expr
	if p.peekIs(lexer.ELSE) {
		p.nextToken()
		if !p.expectLBrace() {
			return nil
		}
		elseBody = p.parseBlockBody()
	}
	return &ast.If{Loc: loc, Head: head, Body: body, Else: elseBody}
}

func (p *Parser) parseWhile() ast.Expr {
	loc := p.loc()
	if !p.expect(lexer.LPAREN) {
		return nil
	}
	p.nextToken()
	head := p.parseExpression(LOWEST)
	if !p.expect(lexer.RPAREN) {
		return nil
	}
	if !p.expectLBrace() {
		return nil
	}
	body := p.parseBlockBody()
	return &ast.While{Loc: loc, Head: head, Body: body}
}

// parseFor parses "for (init; cond; inc) { body }" where init is
// either a "local" declaration or a plain expression.
func (p *Parser) parseFor() ast.Expr {
	loc := p.loc()
	if !p.expect(lexer.LPAREN) {
		return nil
	}
	p.nextToken()

	var init ast.Expr
	if p.curIs(lexer.LOCAL) {
		init = p.parseVariableDef()
	} else {
		init = p.parseExpression(LOWEST)
		if p.peekIs(lexer.SEMICOLON) {
			p.nextToken()
		}
	}

	p.nextToken()
	cond := p.parseExpression(LOWEST)
	if !p.expect(lexer.SEMICOLON) {
		return nil
	}

	p.nextToken()
	inc := p.parseExpression(LOWEST)
	if !p.expect(lexer.RPAREN) {
		return nil
	}
	if !p.expectLBrace() {
		return nil
	}
	body := p.parseBlockBody()
	return &ast.For{Loc: loc, Init: init, Cond: cond, Inc: inc, Body: body}
}
