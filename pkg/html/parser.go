package html

import (
	"fmt"
	"strings"

	nethtml "golang.org/x/net/html"
)

// Parser builds a document tree from the tokenizer's text-or-tag stream,
// inserting the implicit html, head and body elements real pages omit.
type Parser struct {
	tokenizer *Tokenizer
	// fragment disables implicit tags; the stack starts at a synthetic
	// container instead of being empty.
	fragment bool
	stack    []*Node
	root     *Node
	diags    []Diagnostic
	// limit is the stack height past which elements are flattened.
	limit  int
	capped bool
}

func NewParser(input string) *Parser {
	return &Parser{tokenizer: NewTokenizer(input), limit: MaxDepth}
}

// Parse parses a full document. It never fails: malformed input is
// recovered from and reported in Document.Diagnostics.
func Parse(input string) *Document {
	return NewParser(input).Parse()
}

// ParseFragment parses markup without implicit html/head/body insertion,
// returning the top-level nodes detached from any parent.
func ParseFragment(input string) []*Node {
	return parseFragment(input, MaxDepth)
}

// ParseFragmentFor parses markup destined to become the children of
// parent, flattening elements that would sit deeper than MaxDepth once
// attached.
func ParseFragmentFor(parent *Node, input string) []*Node {
	return parseFragment(input, MaxDepth-parent.Depth())
}

func parseFragment(input string, limit int) []*Node {
	p := NewParser(input)
	p.fragment = true
	p.limit = limit
	container := NewElement("#fragment")
	p.stack = []*Node{container}
	p.run()
	nodes := append([]*Node(nil), container.Children...)
	container.RemoveChildren()
	return nodes
}

func (p *Parser) Parse() *Document {
	p.run()
	p.finish()
	diags := append(p.tokenizer.Diagnostics(), p.diags...)
	return &Document{Root: p.root, Diagnostics: diags}
}

func (p *Parser) run() {
	for {
		tok := p.tokenizer.NextToken()
		switch tok.Type {
		case TokenEOF:
			return
		case TokenText:
			p.addText(tok)
		case TokenTag:
			p.addTag(tok)
		}
	}
}

func (p *Parser) addText(tok Token) {
	if strings.TrimSpace(tok.Data) == "" {
		return
	}
	p.implicitTags("")
	text := tok.Data
	if !tok.Raw {
		text = nethtml.UnescapeString(text)
	}
	p.current().AppendChild(NewText(text))
}

func (p *Parser) addTag(tok Token) {
	tag, attrs := splitTag(tok.Data)
	if tag == "" || tag == "/" {
		p.diags = append(p.diags, Diagnostic{Offset: tok.Offset, Message: "empty tag"})
		return
	}
	// <!doctype>, <?xml?> and friends
	if tag[0] == '!' || tag[0] == '?' {
		return
	}
	p.implicitTags(tag)

	if strings.HasPrefix(tag, "/") {
		// The root is never closed by an end tag.
		if len(p.stack) <= 1 {
			return
		}
		p.pop()
		return
	}

	node := NewElement(tag)
	for _, a := range attrs {
		node.Attributes.Set(a[0], a[1])
	}
	if IsSelfClosing(tag) {
		p.current().AppendChild(node)
		return
	}
	// Past MaxDepth further elements become siblings under the deepest
	// open element instead of nesting.
	if len(p.stack) >= p.limit {
		if !p.capped {
			p.capped = true
			p.diags = append(p.diags, Diagnostic{Offset: tok.Offset,
				Message: fmt.Sprintf("elements nested deeper than %d levels are flattened", MaxDepth)})
		}
		p.current().AppendChild(node)
		return
	}
	p.push(node)
}

// implicitTags opens or closes html/head/body so that tag (or a text run,
// when tag is "") lands where a browser would put it.
func (p *Parser) implicitTags(tag string) {
	if p.fragment {
		return
	}
	for {
		open := len(p.stack)
		switch {
		case open == 0 && tag != "html":
			p.push(NewElement("html"))
		case open == 1 && p.stack[0].TagName == "html" &&
			tag != "head" && tag != "body" && tag != "/html":
			if IsHeadOnly(tag) {
				p.push(NewElement("head"))
			} else {
				p.push(NewElement("body"))
			}
		case open == 2 && p.stack[0].TagName == "html" && p.stack[1].TagName == "head" &&
			tag != "/head" && !IsHeadOnly(tag):
			p.pop()
		default:
			return
		}
	}
}

func (p *Parser) current() *Node {
	return p.stack[len(p.stack)-1]
}

func (p *Parser) push(n *Node) {
	if len(p.stack) == 0 {
		p.root = n
	} else {
		p.current().AppendChild(n)
	}
	p.stack = append(p.stack, n)
}

func (p *Parser) pop() *Node {
	n := p.current()
	p.stack = p.stack[:len(p.stack)-1]
	return n
}

// finish closes whatever is still open and makes sure the root is an html
// element whose children are exactly a head followed by a body.
func (p *Parser) finish() {
	if p.root == nil {
		p.root = NewElement("html")
	}
	p.stack = nil
	normalize(p.root)
}

func normalize(root *Node) {
	var head, body *Node
	var rest []*Node
	for _, c := range root.Children {
		switch {
		case head == nil && c.IsElement("head"):
			head = c
		case body == nil && c.IsElement("body"):
			body = c
		default:
			rest = append(rest, c)
		}
	}
	if head == nil {
		head = NewElement("head")
	}
	if body == nil {
		body = NewElement("body")
	}
	for _, c := range rest {
		switch {
		case c.IsElement("head"):
			adoptChildren(head, c)
		case c.IsElement("body"):
			adoptChildren(body, c)
		default:
			body.AppendChild(c)
		}
	}
	root.RemoveChildren()
	root.AppendChild(head)
	root.AppendChild(body)
}

func adoptChildren(dst, src *Node) {
	for _, c := range append([]*Node(nil), src.Children...) {
		dst.AppendChild(c)
	}
}

// splitTag splits a tag body into its lowercased name and attributes.
// Attribute tokens are split on the first '='; one level of matching
// quotes is stripped and valueless attributes get "".
func splitTag(body string) (string, [][2]string) {
	body = strings.TrimSpace(body)
	if len(body) > 1 && strings.HasSuffix(body, "/") {
		body = strings.TrimSpace(body[:len(body)-1])
	}
	fields := splitFields(body)
	if len(fields) == 0 {
		return "", nil
	}
	name := strings.ToLower(fields[0])
	var attrs [][2]string
	for _, f := range fields[1:] {
		k, v, found := strings.Cut(f, "=")
		k = strings.ToLower(k)
		if k == "" {
			continue
		}
		if found {
			v = nethtml.UnescapeString(unquote(v))
		}
		attrs = append(attrs, [2]string{k, v})
	}
	return name, attrs
}

// splitFields splits on whitespace outside of quoted attribute values.
func splitFields(s string) []string {
	var fields []string
	var quote byte
	start := -1
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case isSpace(c):
			if start >= 0 {
				fields = append(fields, s[start:i])
				start = -1
			}
			continue
		case (c == '"' || c == '\'') && i > 0 && s[i-1] == '=':
			quote = c
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		fields = append(fields, s[start:])
	}
	return fields
}

// isSpace reports ASCII whitespace. Bytes of multi-byte UTF-8 sequences
// never match.
func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f'
}

func unquote(v string) string {
	if len(v) >= 2 && (v[0] == '"' || v[0] == '\'') && v[len(v)-1] == v[0] {
		return v[1 : len(v)-1]
	}
	return v
}
