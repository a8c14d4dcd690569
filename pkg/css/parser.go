package css

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/gorilla/css/scanner"
)

// Declaration is one property: value pair. Property is lowercased and
// Value trimmed with internal whitespace collapsed to single spaces.
type Declaration struct {
	Property string
	Value    string
}

// Rule is a selector with its declarations in source order.
type Rule struct {
	Selector     Selector
	Declarations []Declaration
}

// Diagnostic records a recovered stylesheet error.
type Diagnostic struct {
	Origin  string
	Line    int
	Column  int
	Message string
}

func (d Diagnostic) String() string {
	if d.Origin != "" {
		return fmt.Sprintf("%s:%d:%d: %s", d.Origin, d.Line, d.Column, d.Message)
	}
	return fmt.Sprintf("%d:%d: %s", d.Line, d.Column, d.Message)
}

// Stylesheet is the result of parsing one CSS source.
type Stylesheet struct {
	Rules       []Rule
	Diagnostics []Diagnostic
}

// ParseStylesheet parses CSS text. It never fails: a bad selector drops
// its whole rule, a bad declaration drops up to the next ';' or '}'.
func ParseStylesheet(text string) *Stylesheet {
	p := newParser(text)
	sheet := &Stylesheet{}
	for {
		p.skipSpace()
		tok := p.peek()
		if tok == nil {
			break
		}
		switch {
		case tok.Type == scanner.TokenAtKeyword:
			p.errorf(tok, "unsupported at-rule %s", tok.Value)
			p.skipAtRule()
		case isChar(tok, "}"), isChar(tok, ";"):
			p.errorf(tok, "unexpected %q", tok.Value)
			p.pos++
		default:
			p.parseRule(sheet)
		}
	}
	sheet.Diagnostics = p.diags
	return sheet
}

// ParseDeclarations parses a declaration list such as an inline style
// attribute.
func ParseDeclarations(text string) ([]Declaration, []Diagnostic) {
	p := newParser(text)
	decls := p.declarations(p.toks)
	return decls, p.diags
}

type parser struct {
	toks  []*scanner.Token
	pos   int
	diags []Diagnostic
}

func newParser(text string) *parser {
	p := &parser{}
	text = strings.ToValidUTF8(text, "\uFFFD")
	for off, more := 0, true; more; {
		off, more = p.scan(text, off)
	}
	return p
}

// scan tokenizes text from byte offset base. An unclosed string drops the
// text up to the next ';' or '}' and reports the offset to resume from; an
// unclosed comment runs to the end of the input.
func (p *parser) scan(text string, base int) (int, bool) {
	line, col := position(text, base)
	s := scanner.New(text[base:])
	off := base
	for {
		tok := s.Next()
		if tok.Line == 1 {
			tok.Column += col - 1
		}
		tok.Line += line - 1
		switch tok.Type {
		case scanner.TokenEOF:
			return off, false
		case scanner.TokenError:
			p.errorf(tok, "%s", tok.Value)
			rest := text[off:]
			if strings.HasPrefix(rest, "/*") {
				return off, false
			}
			i := strings.IndexAny(rest, ";}")
			if i < 0 {
				return off, false
			}
			return off + i, true
		}
		off += len(tok.Value)
		switch tok.Type {
		case scanner.TokenComment, scanner.TokenCDO, scanner.TokenCDC, scanner.TokenBOM:
			continue
		}
		p.toks = append(p.toks, tok)
	}
}

// position returns the 1-based line and rune column of byte offset off.
func position(text string, off int) (line, col int) {
	before := text[:off]
	line = strings.Count(before, "\n") + 1
	col = utf8.RuneCountInString(before[strings.LastIndex(before, "\n")+1:]) + 1
	return line, col
}

func (p *parser) errorf(at *scanner.Token, format string, args ...interface{}) {
	d := Diagnostic{Message: fmt.Sprintf(format, args...)}
	if at != nil {
		d.Line, d.Column = at.Line, at.Column
	}
	p.diags = append(p.diags, d)
}

func (p *parser) peek() *scanner.Token {
	if p.pos >= len(p.toks) {
		return nil
	}
	return p.toks[p.pos]
}

func (p *parser) next() *scanner.Token {
	tok := p.peek()
	if tok != nil {
		p.pos++
	}
	return tok
}

func (p *parser) skipSpace() {
	for tok := p.peek(); tok != nil && tok.Type == scanner.TokenS; tok = p.peek() {
		p.pos++
	}
}

func (p *parser) parseRule(sheet *Stylesheet) {
	start := p.peek()
	var prelude []*scanner.Token
	for {
		tok := p.next()
		if tok == nil {
			p.errorf(start, "selector without a declaration block")
			return
		}
		if isChar(tok, "{") {
			break
		}
		if isChar(tok, "}") {
			p.errorf(tok, "unexpected %q in selector", tok.Value)
			return
		}
		prelude = append(prelude, tok)
	}
	block, closed := p.readBlock()
	if !closed {
		p.errorf(start, "unclosed block")
		return
	}
	sels, err := parseSelectorList(prelude)
	if err != nil {
		p.errorf(start, "%v", err)
		return
	}
	decls := p.declarations(block)
	for _, sel := range sels {
		sheet.Rules = append(sheet.Rules, Rule{Selector: sel, Declarations: decls})
	}
}

// readBlock consumes tokens up to the '}' matching an already consumed '{'.
func (p *parser) readBlock() ([]*scanner.Token, bool) {
	depth := 1
	start := p.pos
	for tok := p.next(); tok != nil; tok = p.next() {
		switch {
		case isChar(tok, "{"):
			depth++
		case isChar(tok, "}"):
			depth--
			if depth == 0 {
				return p.toks[start : p.pos-1], true
			}
		}
	}
	return p.toks[start:], false
}

// skipAtRule consumes an at-rule up to its ';' or through its block.
func (p *parser) skipAtRule() {
	p.pos++
	for tok := p.next(); tok != nil; tok = p.next() {
		if isChar(tok, ";") {
			return
		}
		if isChar(tok, "{") {
			p.readBlock()
			return
		}
	}
}

// declarations splits a block body on top-level semicolons. Duplicate
// properties keep their first position and their last value.
func (p *parser) declarations(toks []*scanner.Token) []Declaration {
	var decls []Declaration
	index := make(map[string]int)
	depth := 0
	start := 0
	for i := 0; i <= len(toks); i++ {
		if i < len(toks) {
			switch {
			case isChar(toks[i], "("), isChar(toks[i], "{"), toks[i].Type == scanner.TokenFunction:
				depth++
				continue
			case isChar(toks[i], ")"), isChar(toks[i], "}"):
				if depth > 0 {
					depth--
				}
				continue
			case !isChar(toks[i], ";") || depth > 0:
				continue
			}
		}
		d, ok := p.declaration(toks[start:i])
		start = i + 1
		if !ok {
			continue
		}
		if j, seen := index[d.Property]; seen {
			decls[j].Value = d.Value
			continue
		}
		index[d.Property] = len(decls)
		decls = append(decls, d)
	}
	return decls
}

func (p *parser) declaration(toks []*scanner.Token) (Declaration, bool) {
	toks = trimSpace(toks)
	if len(toks) == 0 {
		return Declaration{}, false
	}
	name := toks[0]
	if name.Type != scanner.TokenIdent {
		p.errorf(name, "invalid property name %q", name.Value)
		return Declaration{}, false
	}
	rest := trimSpace(toks[1:])
	if len(rest) == 0 || !isChar(rest[0], ":") {
		p.errorf(name, "expected ':' after %s", name.Value)
		return Declaration{}, false
	}
	value := joinValue(trimSpace(rest[1:]))
	value = strings.TrimSpace(strings.TrimSuffix(value, "!important"))
	if value == "" {
		p.errorf(name, "empty value for %s", name.Value)
		return Declaration{}, false
	}
	return Declaration{Property: strings.ToLower(name.Value), Value: value}, true
}

func joinValue(toks []*scanner.Token) string {
	var sb strings.Builder
	for _, t := range toks {
		if t.Type == scanner.TokenS {
			sb.WriteByte(' ')
			continue
		}
		sb.WriteString(t.Value)
	}
	return sb.String()
}

func trimSpace(toks []*scanner.Token) []*scanner.Token {
	for len(toks) > 0 && toks[0].Type == scanner.TokenS {
		toks = toks[1:]
	}
	for len(toks) > 0 && toks[len(toks)-1].Type == scanner.TokenS {
		toks = toks[:len(toks)-1]
	}
	return toks
}

func isChar(t *scanner.Token, c string) bool {
	return t.Type == scanner.TokenChar && t.Value == c
}
