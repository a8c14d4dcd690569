package html

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendChild_Reparents(t *testing.T) {
	a := NewElement("div")
	b := NewElement("div")
	child := NewText("x")

	a.AppendChild(child)
	b.AppendChild(child)

	assert.Empty(t, a.Children)
	require.Len(t, b.Children, 1)
	assert.Same(t, b, child.Parent)
}

func TestRemoveChild(t *testing.T) {
	p := NewElement("p")
	x := NewText("x")
	p.AppendChild(x)

	assert.Same(t, x, p.RemoveChild(x))
	assert.Nil(t, x.Parent)
	assert.Nil(t, p.RemoveChild(x))
}

func TestSetText(t *testing.T) {
	doc := Parse("<p>a<b>b</b>c</p>")
	p := doc.Root.Children[1].Children[0]
	old := p.Children[1]

	p.SetText("new")
	assert.Equal(t, "new", p.TextContent())
	require.Len(t, p.Children, 1)
	assert.Nil(t, old.Parent)

	p.SetText("")
	assert.Empty(t, p.Children)
}

func TestTextContent(t *testing.T) {
	doc := Parse("<div>Hello <b>big</b> world</div>")
	assert.Equal(t, "Hello big world", doc.Root.Children[1].TextContent())
}

func TestInnerHTML(t *testing.T) {
	doc := Parse(`<div><p class="a" id=x>1 &amp; 2<br></p><script>a < b</script></div>`)
	div := doc.Root.Children[1].Children[0]
	assert.Equal(t, `<p class="a" id="x">1 &amp; 2<br></p><script>a < b</script>`, div.InnerHTML())
	assert.Equal(t, `<div>`+div.InnerHTML()+`</div>`, div.OuterHTML())
}

func TestIndexByID_FirstWins(t *testing.T) {
	doc := Parse(`<p id=a>1</p><p id=b>2</p><p id=a>3</p>`)
	index := IndexByID(doc.Root)
	require.Len(t, index, 2)
	assert.Equal(t, "1", index["a"].TextContent())
	assert.Equal(t, "2", index["b"].TextContent())
}

func TestElementAncestor(t *testing.T) {
	doc := Parse("<p><b>x</b></p>")
	b := doc.Root.Children[1].Children[0].Children[0]
	text := b.Children[0]
	assert.Same(t, b, text.ElementAncestor())
	assert.Same(t, b, b.ElementAncestor())
}

func TestFindAll(t *testing.T) {
	doc := Parse("<p>a</p><div><p>b</p></div>")
	ps := doc.Root.FindAll("p")
	require.Len(t, ps, 2)
	assert.Equal(t, "a", ps[0].TextContent())
	assert.Equal(t, "b", ps[1].TextContent())
}

func TestWalk_SkipChildren(t *testing.T) {
	doc := Parse("<div><p>x</p></div><span>y</span>")
	var seen []string
	doc.Root.Walk(func(n *Node) bool {
		if n.Type == ElementNode {
			seen = append(seen, n.TagName)
		}
		return n.TagName != "div"
	})
	assert.Equal(t, []string{"html", "head", "body", "div", "span"}, seen)
}

func TestDocumentGeneration(t *testing.T) {
	doc := Parse("<p>x</p>")
	g := doc.Generation()
	doc.Invalidate()
	assert.Greater(t, doc.Generation(), g)
}

func TestAttributes_NilSafe(t *testing.T) {
	var a *Attributes
	_, ok := a.Get("x")
	assert.False(t, ok)
	assert.Zero(t, a.Len())
	assert.Nil(t, a.Names())

	text := NewText("x")
	_, ok = text.GetAttribute("id")
	assert.False(t, ok)
}

func TestAttributes_OrderAndClone(t *testing.T) {
	a := NewAttributes()
	a.Set("b", "1")
	a.Set("a", "2")
	a.Set("b", "3")
	assert.Equal(t, []string{"b", "a"}, a.Names())

	c := a.Clone()
	c.Set("a", "changed")
	c.Remove("b")
	v, _ := a.Get("a")
	assert.Equal(t, "2", v)
	assert.Equal(t, 2, a.Len())
	assert.Equal(t, []string{"a"}, c.Names())
}

func TestTags(t *testing.T) {
	assert.True(t, IsHeadOnly("title"))
	assert.True(t, IsHeadOnly("bgsound"))
	assert.False(t, IsHeadOnly("p"))
	assert.False(t, IsHeadOnly(""))
	assert.True(t, IsSelfClosing("br"))
	assert.False(t, IsSelfClosing("div"))
	assert.True(t, IsRawText("script"))
}

func TestDepthAndHeight(t *testing.T) {
	doc := Parse("<div><p><b>x</b></p><span>y</span></div>")
	b := doc.Root.FindAll("b")[0]
	assert.Equal(t, 0, doc.Root.Depth())
	assert.Equal(t, 4, b.Depth(), "html body div p b")
	assert.Equal(t, 1, b.Height())
	assert.Equal(t, 5, doc.Root.Height())
	assert.Equal(t, 0, b.Children[0].Height())
}

func TestCanAdopt(t *testing.T) {
	chain := func(n int) (top, bottom *Node) {
		top = NewElement("div")
		bottom = top
		for i := 0; i < n; i++ {
			c := NewElement("div")
			bottom.AppendChild(c)
			bottom = c
		}
		return top, bottom
	}
	_, deep := chain(MaxDepth - 1)
	assert.True(t, deep.CanAdopt(NewElement("p")))

	tall, _ := chain(1)
	assert.False(t, deep.CanAdopt(tall))

	_, deeper := chain(MaxDepth)
	assert.False(t, deeper.CanAdopt(NewText("x")))
}
