package parser

import (
	"strconv"

	"github.com/lppc/luapp/internal/lexer"
)

func (p *Parser) expectIdent() bool  { return p.expect(lexer.IDENT) }
func (p *Parser) expectLBrace() bool { return p.expect(lexer.LBRACE) }

func (p *Parser) peekIsRBrace() bool { return p.peekIs(lexer.RBRACE) }

// parseTypeNameFromCur consumes a leading run of "@" starting at cur
// (rather than peek, as parseTypeName does), leaving cur on the final
// type identifier. Used where the type name starts exactly at the
// current token, e.g. the head of a parameter.
func (p *Parser) parseTypeNameFromCur() string {
	prefix := ""
	for p.curIs(lexer.AT) {
		prefix += "@"
		p.nextToken()
	}
	return prefix + p.cur.Literal
}

func parseUint(s string) (uint, error) {
	v, err := strconv.ParseUint(s, 10, 64)
	return uint(v), err
}
