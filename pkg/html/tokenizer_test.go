package html

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func collect(input string) []Token {
	tz := NewTokenizer(input)
	var toks []Token
	for {
		tok := tz.NextToken()
		if tok.Type == TokenEOF {
			return toks
		}
		toks = append(toks, tok)
	}
}

func TestTokenizer_TextAndTags(t *testing.T) {
	toks := collect("<p class=x>Hi</p>")
	assert.Equal(t, []Token{
		{Type: TokenTag, Data: "p class=x", Offset: 0},
		{Type: TokenText, Data: "Hi", Offset: 11},
		{Type: TokenTag, Data: "/p", Offset: 13},
	}, toks)
}

func TestTokenizer_RawTextEndsAtCloseTag(t *testing.T) {
	toks := collect("<script>a<b</script>c")
	assert.Equal(t, []Token{
		{Type: TokenTag, Data: "script", Offset: 0},
		{Type: TokenText, Data: "a<b", Offset: 8, Raw: true},
		{Type: TokenTag, Data: "/script", Offset: 11},
		{Type: TokenText, Data: "c", Offset: 20},
	}, toks)
}

func TestTokenizer_EmptyScript(t *testing.T) {
	toks := collect("<script></script>")
	assert.Len(t, toks, 2)
}

func TestTokenizer_Comment(t *testing.T) {
	tz := NewTokenizer("a<!-- <p> -->b")
	assert.Equal(t, "a", tz.NextToken().Data)
	assert.Equal(t, "b", tz.NextToken().Data)
	assert.Equal(t, TokenEOF, tz.NextToken().Type)
	assert.Empty(t, tz.Diagnostics())
}
