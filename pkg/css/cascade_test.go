package css

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Arun03Kumar/browser/pkg/html"
	"github.com/Arun03Kumar/browser/pkg/style"
)

func styled(t *testing.T, markup, author, user string) (*html.Document, Result) {
	t.Helper()
	doc := html.Parse(markup)
	return doc, ApplyStyles(doc.Root, author, user)
}

func get(n *html.Node, name string) string {
	v, _ := n.Style.Get(name)
	return v
}

func first(doc *html.Document, tag string) *html.Node {
	nodes := doc.Root.FindAll(tag)
	if len(nodes) == 0 {
		return nil
	}
	return nodes[0]
}

func TestApplyStyles_Defaults(t *testing.T) {
	doc, res := styled(t, "<div>x</div>", "", "")
	assert.Empty(t, res.Diagnostics, "default sheet parses cleanly")

	root := doc.Root
	assert.Equal(t, "16px", get(root, "font-size"))
	assert.Equal(t, "normal", get(root, "font-style"))
	assert.Equal(t, "normal", get(root, "font-weight"))
	assert.Equal(t, "#000000", get(root, "color"))
	assert.Equal(t, "transparent", get(root, "background-color"))
	assert.Equal(t, "inline", get(root, "display"))

	div := first(doc, "div")
	assert.Equal(t, "block", get(div, "display"))
	assert.Equal(t, "0px", get(div, "margin"))
	assert.Equal(t, "none", get(first(doc, "head"), "display"))
}

func TestApplyStyles_DescendantBeatsTag(t *testing.T) {
	doc, _ := styled(t, "<p>x</p>", "body p {color: blue} p {color: red}", "")
	assert.Equal(t, "blue", get(first(doc, "p"), "color"))
}

func TestApplyStyles_LaterSheetWinsTies(t *testing.T) {
	doc, _ := styled(t, "<style>p { color: green }</style><p>x</p>", "p { color: red }", "p { color: purple }")
	assert.Equal(t, "purple", get(first(doc, "p"), "color"))

	doc, _ = styled(t, "<style>p { color: green }</style><p>x</p>", "p { color: red }", "")
	assert.Equal(t, "red", get(first(doc, "p"), "color"))

	doc, _ = styled(t, "<style>p { color: green }</style><p>x</p>", "", "")
	assert.Equal(t, "green", get(first(doc, "p"), "color"))
}

func TestApplyStyles_InlineStyleWins(t *testing.T) {
	doc, _ := styled(t, `<p style="color: orange; margin: 4px">x</p>`, "body p { color: blue }", "")
	p := first(doc, "p")
	assert.Equal(t, "orange", get(p, "color"))
	assert.Equal(t, "4px", get(p, "margin"))
}

func TestApplyStyles_InlineStyleUnclosedString(t *testing.T) {
	doc, _ := styled(t, `<p style="font-family: 'x; color: red">x</p>`, "", "")
	assert.Equal(t, "red", get(first(doc, "p"), "color"))
}

func TestApplyStyles_Inheritance(t *testing.T) {
	doc, _ := styled(t, "<div><p>x</p></div>", "div { color: red; background-color: yellow; font-style: italic }", "")
	p := first(doc, "p")
	assert.Equal(t, "red", get(p, "color"))
	assert.Equal(t, "italic", get(p, "font-style"))
	assert.Equal(t, "transparent", get(p, "background-color"), "background is not inherited")
}

func TestApplyStyles_TextNodesGetInheritedOnly(t *testing.T) {
	doc, _ := styled(t, "<p>x</p>", "p { color: red; background-color: blue }", "")
	text := first(doc, "p").Children[0]
	want := map[string]string{
		"font-size":   "16px",
		"font-style":  "normal",
		"font-weight": "normal",
		"color":       "red",
	}
	if diff := cmp.Diff(want, text.Style.AsMap()); diff != "" {
		t.Errorf("text style mismatch (-want +got):\n%s", diff)
	}
}

func TestApplyStyles_PercentFontSize(t *testing.T) {
	doc, _ := styled(t, "<div><span>x</span></div>", "div { font-size: 20px } span { font-size: 50% }", "")
	assert.Equal(t, "10px", get(first(doc, "span"), "font-size"))
}

func TestApplyStyles_EmFontSize(t *testing.T) {
	doc, _ := styled(t, "<div><span>x</span></div>", "div { font-size: 20px } span { font-size: 1.5em }", "")
	assert.Equal(t, "30px", get(first(doc, "span"), "font-size"))
}

func TestApplyStyles_Inherit(t *testing.T) {
	doc, _ := styled(t, "<div><p>x</p></div>", "div { background-color: red } p { background-color: inherit }", "")
	assert.Equal(t, "red", get(first(doc, "p"), "background-color"))
}

func TestApplyStyles_InputInheritsFontSize(t *testing.T) {
	doc, _ := styled(t, "<div><input></div>", "div { font-size: 24px }", "")
	input := first(doc, "input")
	assert.Equal(t, "24px", get(input, "font-size"))
	assert.Equal(t, "2px inset #cccccc", get(input, "border"))
}

func TestApplyStyles_UnknownPropertiesPassThrough(t *testing.T) {
	doc, _ := styled(t, "<div><p>x</p></div>", "div { line-height: 3 }", "")
	assert.Equal(t, "3", get(first(doc, "div"), "line-height"))
	_, ok := first(doc, "p").Style.Get("line-height")
	assert.False(t, ok, "unknown properties are not inherited")
}

func TestApplyStyles_Idempotent(t *testing.T) {
	doc, _ := styled(t, `<div style="font-size: 50%"><p>a <b>b</b></p></div>`, "p { font-size: 200% }", "")
	snapshot := func() []map[string]string {
		var out []map[string]string
		doc.Root.Walk(func(n *html.Node) bool {
			out = append(out, n.Style.AsMap())
			return true
		})
		return out
	}
	before := snapshot()
	ApplyStyles(doc.Root, "p { font-size: 200% }", "")
	if diff := cmp.Diff(before, snapshot()); diff != "" {
		t.Errorf("second application changed styles (-first +second):\n%s", diff)
	}
	assert.Equal(t, "16px", get(first(doc, "p"), "font-size"))
}

func TestApplyStyles_Diagnostics(t *testing.T) {
	_, res := styled(t, `<p style="color red">x</p>`, ".x { color: red }", "")
	require.Len(t, res.Diagnostics, 2)
	assert.Equal(t, "author", res.Diagnostics[0].Origin)
	assert.Equal(t, "inline", res.Diagnostics[1].Origin)
}

func TestApplyStyles_RulesSortedByPriority(t *testing.T) {
	_, res := styled(t, "<p>x</p>", "div p { color: red } p { color: blue }", "")
	for i := 1; i < len(res.Rules); i++ {
		assert.LessOrEqual(t, res.Rules[i-1].Selector.Priority(), res.Rules[i].Selector.Priority())
	}
}

func TestSelectors(t *testing.T) {
	doc := html.Parse("<div><p><b>x</b></p></div><b>y</b>")
	bs := doc.Root.FindAll("b")
	require.Len(t, bs, 2)

	sel := DescendantSelector{Ancestor: TagSelector{"div"}, Descendant: TagSelector{"b"}}
	assert.True(t, sel.Matches(bs[0]))
	assert.False(t, sel.Matches(bs[1]))
	assert.False(t, TagSelector{"b"}.Matches(bs[0].Children[0]))
	assert.Equal(t, 2, sel.Priority())

	nested := DescendantSelector{Ancestor: sel, Descendant: TagSelector{"b"}}
	assert.Equal(t, 3, nested.Priority())
	assert.Equal(t, "div b b", nested.String())
}

func TestStyleMapZeroBeforeCascade(t *testing.T) {
	n := html.NewElement("p")
	assert.Zero(t, n.Style.Len())
	assert.False(t, n.Style.Has(style.Color))
}

func TestApplyStyles_DeepMarkup(t *testing.T) {
	n := 4 * html.MaxDepth
	markup := strings.Repeat("<div>", n) + "<p>leaf</p>" + strings.Repeat("</div>", n)
	doc, _ := styled(t, markup, "div { color: green }", "")
	p := first(doc, "p")
	require.NotNil(t, p)
	assert.Equal(t, "green", get(p, "color"))
	assert.LessOrEqual(t, p.Depth(), html.MaxDepth)
}
