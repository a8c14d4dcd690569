package html

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// shape renders a subtree as nested tag names with text in quotes, which
// keeps structural assertions readable.
func shape(n *Node) string {
	if n.Type == TextNode {
		return `"` + n.Text + `"`
	}
	s := n.TagName
	if len(n.Children) == 0 {
		return s
	}
	s += "("
	for i, c := range n.Children {
		if i > 0 {
			s += " "
		}
		s += shape(c)
	}
	return s + ")"
}

func body(t *testing.T, doc *Document) *Node {
	t.Helper()
	require.Len(t, doc.Root.Children, 2)
	return doc.Root.Children[1]
}

func TestParse_RootAlwaysHasHeadAndBody(t *testing.T) {
	inputs := []string{
		"",
		"plain text",
		"<p>Hello</p>",
		"<title>T</title>",
		"<html></html>",
		"<html><head></head><body></body></html>",
		"<body><p>x</p></body>",
		"</div></div>",
		"<p>a</p></body><p>b</p>",
	}
	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			doc := Parse(in)
			require.NotNil(t, doc.Root)
			assert.Equal(t, "html", doc.Root.TagName)
			require.Len(t, doc.Root.Children, 2)
			assert.Equal(t, "head", doc.Root.Children[0].TagName)
			assert.Equal(t, "body", doc.Root.Children[1].TagName)
			for _, c := range doc.Root.Children {
				assert.Same(t, doc.Root, c.Parent)
			}
		})
	}
}

func TestParse_ImplicitTags(t *testing.T) {
	doc := Parse("<p>Hello</p>")
	assert.Equal(t, `html(head body(p("Hello")))`, shape(doc.Root))
}

func TestParse_HeadOnlyElementsGoToHead(t *testing.T) {
	doc := Parse("<title>T</title><meta charset=utf-8><p>x</p>")
	assert.Equal(t, `html(head(title("T") meta) body(p("x")))`, shape(doc.Root))
}

func TestParse_TextClosesHead(t *testing.T) {
	doc := Parse("<head><title>T</title>hello")
	assert.Equal(t, `html(head(title("T")) body("hello"))`, shape(doc.Root))
}

func TestParse_ExplicitStructure(t *testing.T) {
	doc := Parse(`<!DOCTYPE html><html><head><title>x</title></head><body><p>y</p></body></html>`)
	assert.Equal(t, `html(head(title("x")) body(p("y")))`, shape(doc.Root))
	assert.Empty(t, doc.Diagnostics)
}

func TestParse_SelfClosingTags(t *testing.T) {
	doc := Parse("<p>a<br>b<br/>c<input value=1></p>")
	assert.Equal(t, `p("a" br "b" br "c" input)`, shape(body(t, doc).Children[0]))
}

func TestParse_EndTagPopsWhateverIsOpen(t *testing.T) {
	doc := Parse("<div><span>a</div>b</span>")
	assert.Equal(t, `body(div(span("a") "b"))`, shape(body(t, doc)))
}

func TestParse_UnclosedElementsAreClosedAtEnd(t *testing.T) {
	doc := Parse("<div><p>x")
	assert.Equal(t, `body(div(p("x")))`, shape(body(t, doc)))
}

func TestParse_WhitespaceOnlyTextIsDropped(t *testing.T) {
	doc := Parse("<div>\n   <p>x</p>\n</div>")
	assert.Equal(t, `body(div(p("x")))`, shape(body(t, doc)))
}

func TestParse_SecondBodyIsMerged(t *testing.T) {
	doc := Parse("<p>a</p></body><p>b</p>")
	assert.Equal(t, `body(p("a") p("b"))`, shape(body(t, doc)))
}

func TestParse_UppercaseTags(t *testing.T) {
	doc := Parse("<DIV ID=x>y</DIV>")
	div := body(t, doc).Children[0]
	assert.Equal(t, "div", div.TagName)
	assert.Equal(t, "x", div.ID())
}

func TestParse_Attributes(t *testing.T) {
	doc := Parse(`<div id=main class="a b" data-x='1' hidden ID=dup title="x &lt; y"></div>`)
	div := body(t, doc).Children[0]
	assert.Equal(t, []string{"id", "class", "data-x", "hidden", "title"}, div.Attributes.Names())

	id, _ := div.GetAttribute("id")
	assert.Equal(t, "dup", id, "last duplicate wins")
	class, _ := div.GetAttribute("class")
	assert.Equal(t, "a b", class)
	x, _ := div.GetAttribute("data-x")
	assert.Equal(t, "1", x)
	hidden, ok := div.GetAttribute("hidden")
	assert.True(t, ok)
	assert.Equal(t, "", hidden)
	title, _ := div.GetAttribute("title")
	assert.Equal(t, "x < y", title)
}

func TestParse_UnquotedNonASCIIAttribute(t *testing.T) {
	// U+00E0 encodes as 0xC3 0xA0 and 0xA0 must not split the value.
	doc := Parse("<div title=voil\u00e0 id=x lang=\u65e5\u672c>hi</div>")
	div := body(t, doc).Children[0]
	title, _ := div.GetAttribute("title")
	assert.Equal(t, "voil\u00e0", title)
	assert.True(t, utf8.ValidString(title))
	id, _ := div.GetAttribute("id")
	assert.Equal(t, "x", id)
	lang, _ := div.GetAttribute("lang")
	assert.Equal(t, "\u65e5\u672c", lang)
	assert.Equal(t, []string{"title", "id", "lang"}, div.Attributes.Names())
}

func TestParse_QuotedGreaterThanInAttribute(t *testing.T) {
	doc := Parse(`<a href="/x?a>b">link</a>`)
	a := body(t, doc).Children[0]
	href, _ := a.GetAttribute("href")
	assert.Equal(t, "/x?a>b", href)
	assert.Equal(t, "link", a.TextContent())
}

func TestParse_Comments(t *testing.T) {
	doc := Parse("<p>a<!-- x > y <b> -->b</p>")
	assert.Equal(t, `p("a" "b")`, shape(body(t, doc).Children[0]))
}

func TestParse_UnterminatedComment(t *testing.T) {
	doc := Parse("<p>a<!-- never closed")
	assert.Equal(t, `p("a")`, shape(body(t, doc).Children[0]))
	require.Len(t, doc.Diagnostics, 1)
	assert.Equal(t, "unterminated comment", doc.Diagnostics[0].Message)
}

func TestParse_UnterminatedTag(t *testing.T) {
	doc := Parse("<p>hello <b")
	assert.Equal(t, `p("hello ")`, shape(body(t, doc).Children[0]))
	require.Len(t, doc.Diagnostics, 1)
	assert.Equal(t, 9, doc.Diagnostics[0].Offset)
	assert.Equal(t, "unterminated tag", doc.Diagnostics[0].Message)
}

func TestParse_ScriptIsRawText(t *testing.T) {
	src := `if (a < b && c > d) { x = "<p>"; }`
	doc := Parse("<script>" + src + "</script><p>after</p>")
	head := doc.Root.Children[0]
	require.Len(t, head.Children, 1)
	script := head.Children[0]
	assert.Equal(t, "script", script.TagName)
	require.Len(t, script.Children, 1)
	assert.Equal(t, src, script.Children[0].Text)
	assert.Equal(t, `body(p("after"))`, shape(body(t, doc)))
}

func TestParse_StyleIsRawText(t *testing.T) {
	doc := Parse("<style>p > b { color: red }</STYLE>")
	style := doc.Root.Children[0].Children[0]
	assert.Equal(t, "p > b { color: red }", style.TextContent())
}

func TestParse_UnterminatedScript(t *testing.T) {
	doc := Parse("<script>var x = 1;")
	script := doc.Root.Children[0].Children[0]
	assert.Equal(t, "var x = 1;", script.TextContent())
	require.Len(t, doc.Diagnostics, 1)
	assert.Equal(t, "unterminated <script>", doc.Diagnostics[0].Message)
}

func TestParse_Entities(t *testing.T) {
	doc := Parse("<p>a &amp; b &lt;c&gt;</p>")
	assert.Equal(t, "a & b <c>", body(t, doc).Children[0].TextContent())
}

func TestParse_EmptyTag(t *testing.T) {
	doc := Parse("<p>a<>b</p>")
	assert.Equal(t, `p("a" "b")`, shape(body(t, doc).Children[0]))
	require.Len(t, doc.Diagnostics, 1)
	assert.Equal(t, "empty tag", doc.Diagnostics[0].Message)
}

func TestParse_ParentPointers(t *testing.T) {
	doc := Parse("<div><p>a<b>c</b></p><span>d</span></div>")
	doc.Root.Walk(func(n *Node) bool {
		for _, c := range n.Children {
			assert.Same(t, n, c.Parent)
		}
		return true
	})
}

func TestParseFragment(t *testing.T) {
	nodes := ParseFragment("<b>x</b> y<br>")
	require.Len(t, nodes, 3)
	assert.Equal(t, `b("x")`, shape(nodes[0]))
	assert.Equal(t, `" y"`, shape(nodes[1]))
	assert.Equal(t, "br", shape(nodes[2]))
	for _, n := range nodes {
		assert.Nil(t, n.Parent)
	}
}

func TestParseFragment_NoImplicitTags(t *testing.T) {
	nodes := ParseFragment("<title>t</title>text")
	require.Len(t, nodes, 2)
	assert.Equal(t, "title", nodes[0].TagName)
}

func TestParse_DeepNestingIsFlattened(t *testing.T) {
	const n = 3 * MaxDepth
	doc := Parse(strings.Repeat("<div>", n) + "leaf" + strings.Repeat("</div>", n))

	deepest, divs := 0, 0
	doc.Root.Walk(func(d *Node) bool {
		if d.Depth() > deepest {
			deepest = d.Depth()
		}
		if d.IsElement("div") {
			divs++
		}
		return true
	})
	assert.Equal(t, MaxDepth, deepest)
	assert.Equal(t, n, divs, "no element is dropped")
	assert.Equal(t, "leaf", doc.Root.TextContent())
	require.Len(t, doc.Diagnostics, 1)
	assert.Contains(t, doc.Diagnostics[0].Message, "flattened")
}

func TestParseFragmentFor_RespectsParentDepth(t *testing.T) {
	parent := NewElement("div")
	for i := 0; i < MaxDepth-10; i++ {
		child := NewElement("div")
		parent.AppendChild(child)
		parent = child
	}
	nodes := ParseFragmentFor(parent, strings.Repeat("<span>", 50))
	require.Len(t, nodes, 1)
	for _, c := range nodes {
		assert.True(t, parent.CanAdopt(c))
	}
	assert.Equal(t, 9, nodes[0].Height())
}
