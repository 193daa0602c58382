package lexer

import "testing"

func TestNextTokenScansClassAndMethodCall(t *testing.T) {
	input := `class Point {
		local x -> int;
		function set(int v) -> void { self.x = v; }
	}
	function main() -> int {
		local p -> Point;
		p:set(7);
		return p.x;
	}`

	tests := []struct {
		literal string
		typ     TokenType
	}{
		{"class", CLASS}, {"Point", IDENT}, {"{", LBRACE},
		{"local", LOCAL}, {"x", IDENT}, {"->", ARROW}, {"int", IDENT}, {";", SEMICOLON},
		{"function", FUNCTION}, {"set", IDENT}, {"(", LPAREN}, {"int", IDENT}, {"v", IDENT}, {")", RPAREN},
		{"->", ARROW}, {"void", IDENT}, {"{", LBRACE},
		{"self", IDENT}, {".", DOT}, {"x", IDENT}, {"=", ASSIGN}, {"v", IDENT}, {";", SEMICOLON},
		{"}", RBRACE}, {"}", RBRACE},
		{"function", FUNCTION}, {"main", IDENT}, {"(", LPAREN}, {")", RPAREN}, {"->", ARROW}, {"int", IDENT}, {"{", LBRACE},
		{"local", LOCAL}, {"p", IDENT}, {"->", ARROW}, {"Point", IDENT}, {";", SEMICOLON},
		{"p", IDENT}, {":", COLON}, {"set", IDENT}, {"(", LPAREN}, {"7", INT}, {")", RPAREN}, {";", SEMICOLON},
		{"return", RETURN}, {"p", IDENT}, {".", DOT}, {"x", IDENT}, {";", SEMICOLON},
		{"}", RBRACE},
		{"", EOF},
	}

	l := New(input)
	for i, tt := range tests {
		tok := l.NextToken()
		if tok.Type != tt.typ || tok.Literal != tt.literal {
			t.Fatalf("token %d: expected %s(%q), got %s(%q)", i, tt.typ, tt.literal, tok.Type, tok.Literal)
		}
	}
}

func TestNextTokenScansOperatorsAndCompoundForms(t *testing.T) {
	input := `@p $p ~cond a ~= b a <= b a >= b a == b ...`
	tests := []TokenType{AT, IDENT, DOLLAR, IDENT, TILDE, IDENT, IDENT, NOT_EQ, IDENT, IDENT, LESS_EQ, IDENT, IDENT, GREATER_EQ, IDENT, IDENT, EQ, IDENT, ELLIPSIS, EOF}
	l := New(input)
	for i, want := range tests {
		tok := l.NextToken()
		if tok.Type != want {
			t.Fatalf("token %d: expected %s, got %s(%q)", i, want, tok.Type, tok.Literal)
		}
	}
}

func TestNextTokenResolvesStringAndByteEscapes(t *testing.T) {
	l := New(`"hi\nthere" '\n'`)

	str := l.NextToken()
	if str.Type != STRING || str.Literal != "hi\nthere" {
		t.Fatalf("expected resolved string escape, got %q", str.Literal)
	}
	b := l.NextToken()
	if b.Type != BYTE || b.Literal != "\n" {
		t.Fatalf("expected resolved byte escape, got %q", b.Literal)
	}
}

func TestNextTokenSkipsLineAndBlockComments(t *testing.T) {
	l := New("a // comment\nb /* block\ncomment */ c")
	for _, want := range []string{"a", "b", "c"} {
		tok := l.NextToken()
		if tok.Literal != want {
			t.Fatalf("expected %q, got %q", want, tok.Literal)
		}
	}
}

func TestPeekDoesNotConsume(t *testing.T) {
	l := New("a b")
	if l.Peek(0).Literal != "a" {
		t.Fatalf("expected Peek(0) to see 'a'")
	}
	if l.Peek(1).Literal != "b" {
		t.Fatalf("expected Peek(1) to see 'b'")
	}
	if l.NextToken().Literal != "a" {
		t.Fatalf("expected NextToken to still return 'a' first")
	}
}

func TestUnterminatedStringAddsError(t *testing.T) {
	l := New(`"unterminated`)
	l.NextToken()
	if len(l.Errors()) == 0 {
		t.Fatalf("expected an unterminated-string error")
	}
}
