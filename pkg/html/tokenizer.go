package html

import (
	"strings"
)

type TokenType int

const (
	TokenText TokenType = iota
	TokenTag
	TokenEOF
)

// Token is one piece of the text-or-tag stream. For tags, Data holds the
// raw body between '<' and '>'.
type Token struct {
	Type   TokenType
	Data   string
	Offset int
	// Raw is set for script and style content, which is not entity-decoded.
	Raw bool
}

// Tokenizer splits markup on '<' and '>'. Comments are dropped; the content
// of raw-text elements (script, style) comes back as a single text token.
type Tokenizer struct {
	input string
	pos   int
	// rawEnd is the close tag that ends the current raw-text element.
	rawEnd string
	diags  []Diagnostic
}

func NewTokenizer(input string) *Tokenizer {
	return &Tokenizer{input: input}
}

// Diagnostics returns the lexical problems seen so far.
func (t *Tokenizer) Diagnostics() []Diagnostic { return t.diags }

func (t *Tokenizer) NextToken() Token {
	if t.rawEnd != "" {
		if tok, ok := t.readRawText(); ok {
			return tok
		}
	}
	for t.pos < len(t.input) {
		if t.input[t.pos] != '<' {
			return t.readText()
		}
		if strings.HasPrefix(t.input[t.pos:], "<!--") {
			t.skipComment()
			continue
		}
		return t.readTag()
	}
	return Token{Type: TokenEOF, Offset: t.pos}
}

func (t *Tokenizer) readText() Token {
	start := t.pos
	end := strings.IndexByte(t.input[start:], '<')
	if end < 0 {
		t.pos = len(t.input)
	} else {
		t.pos = start + end
	}
	return Token{Type: TokenText, Data: t.input[start:t.pos], Offset: start}
}

func (t *Tokenizer) readTag() Token {
	start := t.pos
	var quote byte
	for i := start + 1; i < len(t.input); i++ {
		c := t.input[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'':
			// Only quotes inside an attribute value count.
			if i > start+1 && t.input[i-1] == '=' {
				quote = c
			}
		case c == '>':
			t.pos = i + 1
			tok := Token{Type: TokenTag, Data: t.input[start+1 : i], Offset: start}
			t.enterRawText(tok.Data)
			return tok
		}
	}
	t.diags = append(t.diags, Diagnostic{Offset: start, Message: "unterminated tag"})
	t.pos = len(t.input)
	return Token{Type: TokenEOF, Offset: t.pos}
}

func (t *Tokenizer) skipComment() {
	start := t.pos
	end := strings.Index(t.input[start+4:], "-->")
	if end < 0 {
		t.diags = append(t.diags, Diagnostic{Offset: start, Message: "unterminated comment"})
		t.pos = len(t.input)
		return
	}
	t.pos = start + 4 + end + 3
}

func (t *Tokenizer) enterRawText(body string) {
	name, _ := splitTag(body)
	if strings.HasPrefix(name, "/") || strings.HasSuffix(strings.TrimSpace(body), "/") {
		return
	}
	if IsRawText(name) {
		t.rawEnd = "</" + name
	}
}

func (t *Tokenizer) readRawText() (Token, bool) {
	start := t.pos
	end := t.rawEnd
	t.rawEnd = ""
	idx := indexFold(t.input[start:], end)
	if idx < 0 {
		t.diags = append(t.diags, Diagnostic{Offset: start, Message: "unterminated <" + end[2:] + ">"})
		t.pos = len(t.input)
	} else {
		t.pos = start + idx
	}
	if t.pos == start {
		return Token{}, false
	}
	return Token{Type: TokenText, Data: t.input[start:t.pos], Offset: start, Raw: true}, true
}

// indexFold is strings.Index with ASCII case folding on the needle.
func indexFold(s, needle string) int {
	n := len(needle)
	for i := 0; i+n <= len(s); i++ {
		if strings.EqualFold(s[i:i+n], needle) {
			return i
		}
	}
	return -1
}
