package html

import (
	"fmt"
	"strings"

	nethtml "golang.org/x/net/html"

	"github.com/Arun03Kumar/browser/pkg/style"
)

type NodeType int

const (
	ElementNode NodeType = iota
	TextNode
)

func (t NodeType) String() string {
	if t == TextNode {
		return "text"
	}
	return "element"
}

// Node is an element or a text run in the document tree.
//
// Parent is a lookup-only back-reference; Children owns the subtree.
// Style is filled in by the cascade and is empty until then.
type Node struct {
	Type       NodeType
	TagName    string
	Attributes *Attributes
	Text       string
	Parent     *Node
	Children   []*Node
	Style      style.Map
	Focused    bool
}

// Diagnostic records a problem the parser recovered from.
type Diagnostic struct {
	Offset  int
	Message string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("offset %d: %s", d.Offset, d.Message)
}

// Document is a parsed page. The generation counter is bumped by every
// mutation made after parsing so hosts know when layout is stale.
type Document struct {
	Root        *Node
	Diagnostics []Diagnostic
	generation  uint64
}

// Generation returns the current mutation generation.
func (d *Document) Generation() uint64 { return d.generation }

// Invalidate marks the document as changed since the last layout.
func (d *Document) Invalidate() { d.generation++ }

// NewElement returns a detached element node.
func NewElement(tag string) *Node {
	return &Node{
		Type:       ElementNode,
		TagName:    strings.ToLower(tag),
		Attributes: NewAttributes(),
	}
}

// NewText returns a detached text node.
func NewText(text string) *Node {
	return &Node{Type: TextNode, Text: text}
}

// IsElement reports whether n is an element with the given tag.
func (n *Node) IsElement(tag string) bool {
	return n != nil && n.Type == ElementNode && n.TagName == tag
}

func (n *Node) GetAttribute(name string) (string, bool) {
	if n.Type != ElementNode {
		return "", false
	}
	return n.Attributes.Get(name)
}

func (n *Node) SetAttribute(name, value string) {
	if n.Attributes == nil {
		n.Attributes = NewAttributes()
	}
	n.Attributes.Set(strings.ToLower(name), value)
}

// ID returns the id attribute or "".
func (n *Node) ID() string {
	v, _ := n.GetAttribute("id")
	return v
}

// AppendChild adds child as the last child of n, detaching it from any
// previous parent first.
func (n *Node) AppendChild(child *Node) {
	if child.Parent != nil {
		child.Parent.RemoveChild(child)
	}
	child.Parent = n
	n.Children = append(n.Children, child)
}

// RemoveChild removes child from n and clears its parent pointer.
// Returns nil if child is not a child of n.
func (n *Node) RemoveChild(child *Node) *Node {
	for i, c := range n.Children {
		if c == child {
			n.Children = append(n.Children[:i], n.Children[i+1:]...)
			child.Parent = nil
			return child
		}
	}
	return nil
}

// RemoveChildren detaches every child of n.
func (n *Node) RemoveChildren() {
	for _, c := range n.Children {
		c.Parent = nil
	}
	n.Children = nil
}

// SetText replaces all children with a single text node.
// An empty string leaves n without children.
func (n *Node) SetText(text string) {
	n.RemoveChildren()
	if text != "" {
		n.AppendChild(NewText(text))
	}
}

// TextContent concatenates all descendant text in document order.
func (n *Node) TextContent() string {
	if n.Type == TextNode {
		return n.Text
	}
	var sb strings.Builder
	n.Walk(func(d *Node) bool {
		if d.Type == TextNode {
			sb.WriteString(d.Text)
		}
		return true
	})
	return sb.String()
}

// ElementAncestor returns n if it is an element, otherwise its nearest
// element ancestor.
func (n *Node) ElementAncestor() *Node {
	for c := n; c != nil; c = c.Parent {
		if c.Type == ElementNode {
			return c
		}
	}
	return nil
}

// MaxDepth is the deepest a node may sit below the root of its tree.
// The parser flattens anything deeper and scripts cannot build past it.
const MaxDepth = 512

// Depth counts the ancestors of n.
func (n *Node) Depth() int {
	d := 0
	for a := n.Parent; a != nil; a = a.Parent {
		d++
	}
	return d
}

// Height is the number of levels below n: 0 for a leaf.
func (n *Node) Height() int {
	type level struct {
		n *Node
		h int
	}
	height := 0
	stack := []level{{n, 0}}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if top.h > height {
			height = top.h
		}
		for _, c := range top.n.Children {
			stack = append(stack, level{c, top.h + 1})
		}
	}
	return height
}

// CanAdopt reports whether child can become a child of n without any
// node ending up deeper than MaxDepth.
func (n *Node) CanAdopt(child *Node) bool {
	return n.Depth()+1+child.Height() <= MaxDepth
}

// Walk visits n and its descendants in pre-order. Returning false from fn
// skips the children of the node just visited.
func (n *Node) Walk(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

// FindAll returns all descendant elements (n included) with the given tag.
func (n *Node) FindAll(tag string) []*Node {
	var out []*Node
	n.Walk(func(d *Node) bool {
		if d.IsElement(tag) {
			out = append(out, d)
		}
		return true
	})
	return out
}

// IndexByID maps id attributes to elements. The first element in document
// order wins when ids repeat.
func IndexByID(root *Node) map[string]*Node {
	index := make(map[string]*Node)
	root.Walk(func(n *Node) bool {
		if id := n.ID(); id != "" {
			if _, seen := index[id]; !seen {
				index[id] = n
			}
		}
		return true
	})
	return index
}

// InnerHTML serializes the children of n.
func (n *Node) InnerHTML() string {
	var sb strings.Builder
	for _, c := range n.Children {
		serialize(&sb, c)
	}
	return sb.String()
}

// OuterHTML serializes n and its subtree.
func (n *Node) OuterHTML() string {
	var sb strings.Builder
	serialize(&sb, n)
	return sb.String()
}

func serialize(sb *strings.Builder, n *Node) {
	if n.Type == TextNode {
		if n.Parent != nil && IsRawText(n.Parent.TagName) {
			sb.WriteString(n.Text)
		} else {
			sb.WriteString(nethtml.EscapeString(n.Text))
		}
		return
	}
	sb.WriteByte('<')
	sb.WriteString(n.TagName)
	for _, name := range n.Attributes.Names() {
		v, _ := n.Attributes.Get(name)
		sb.WriteByte(' ')
		sb.WriteString(name)
		if v != "" {
			sb.WriteString(`="`)
			sb.WriteString(nethtml.EscapeString(v))
			sb.WriteByte('"')
		}
	}
	sb.WriteByte('>')
	if IsSelfClosing(n.TagName) {
		return
	}
	for _, c := range n.Children {
		serialize(sb, c)
	}
	sb.WriteString("</")
	sb.WriteString(n.TagName)
	sb.WriteByte('>')
}
