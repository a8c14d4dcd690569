package js

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func kinds(toks []Token) []TokenKind {
	out := make([]TokenKind, len(toks))
	for i, t := range toks {
		out[i] = t.Kind
	}
	return out
}

func TestTokenize_VarDeclaration(t *testing.T) {
	toks := Tokenize("var x = 1 + 2; x")
	assert.Equal(t, []TokenKind{
		KEYWORD, IDENTIFIER, ASSIGN, NUMBER, PLUS, NUMBER, SEMICOLON, IDENTIFIER,
	}, kinds(toks))
	assert.Equal(t, "var", toks[0].Value)
	assert.Equal(t, 1.0, toks[3].Number)
	assert.Equal(t, 15, toks[7].Pos)
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   []string
	}{
		{"two-char before one-char", "a == b != c", []string{"IDENTIFIER a", "EQUALS", "IDENTIFIER b", "NOT_EQUALS", "IDENTIFIER c"}},
		{"strict equality", "a === b !== c", []string{"IDENTIFIER a", "EQUALS", "IDENTIFIER b", "NOT_EQUALS", "IDENTIFIER c"}},
		{"increment", "i++ --j", []string{"IDENTIFIER i", "INCREMENT", "DECREMENT", "IDENTIFIER j"}},
		{"decimal", "3.25", []string{"NUMBER 3.25"}},
		{"trailing dot is member access", "1.x", []string{"NUMBER 1", "DOT", "IDENTIFIER x"}},
		{"single quotes", `'it\'s'`, []string{`STRING "it's"`}},
		{"escapes", `"a\nb\tc"`, []string{`STRING "a\nb\tc"`}},
		{"unterminated string", `"abc`, []string{`STRING "abc"`}},
		{"unknown characters dropped", "a @ # b", []string{"IDENTIFIER a", "IDENTIFIER b"}},
		{"line comment", "a // b\nc", []string{"IDENTIFIER a", "IDENTIFIER c"}},
		{"block comment", "a /* b */ c", []string{"IDENTIFIER a", "IDENTIFIER c"}},
		{"keywords", "function while null undefined", []string{"KEYWORD function", "KEYWORD while", "KEYWORD null", "KEYWORD undefined"}},
		{"identifier chars", "$el _x1", []string{"IDENTIFIER $el", "IDENTIFIER _x1"}},
		{"punctuation", "(){}[];,", []string{"LPAREN", "RPAREN", "LBRACE", "RBRACE", "LBRACKET", "RBRACKET", "SEMICOLON", "COMMA"}},
		{"empty", "", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []string
			for _, tok := range Tokenize(tt.source) {
				got = append(got, tok.String())
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTokenize_Positions(t *testing.T) {
	toks := Tokenize(`x  =  "s"`)
	require.Len(t, toks, 3)
	assert.Equal(t, []int{0, 3, 6}, []int{toks[0].Pos, toks[1].Pos, toks[2].Pos})
}

func TestTokenKindString(t *testing.T) {
	assert.Equal(t, "GREATER_THAN", GREATER_THAN.String())
	assert.Equal(t, "TokenKind(99)", TokenKind(99).String())
}
