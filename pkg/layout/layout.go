// Package layout turns a styled document tree into a box tree and a flat
// list of paint commands.
//
// Layout is a single top-down pass. Blocks stack vertically inside their
// parent's content box; inline content is broken into lines by measuring
// whitespace-separated words with a text.Measurer.
package layout

import (
	"errors"
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/Arun03Kumar/browser/pkg/html"
	"github.com/Arun03Kumar/browser/pkg/logging"
	"github.com/Arun03Kumar/browser/pkg/style"
	"github.com/Arun03Kumar/browser/pkg/text"
)

const (
	// DocumentX and DocumentY offset the document box from the viewport.
	DocumentX = 16.0
	DocumentY = 18.0

	// LineHeightFactor scales a line's tallest ascent and descent.
	LineHeightFactor = 1.25
)

// LayoutError reports a failure while laying out a node.
type LayoutError struct {
	Node *html.Node
	Err  error
}

func (e *LayoutError) Error() string {
	if e.Node == nil {
		return fmt.Sprintf("layout: %v", e.Err)
	}
	if e.Node.Type == html.TextNode {
		return fmt.Sprintf("layout: text node: %v", e.Err)
	}
	return fmt.Sprintf("layout: <%s>: %v", e.Node.TagName, e.Err)
}

func (e *LayoutError) Unwrap() error { return e.Err }

var (
	errNilRoot     = errors.New("nil root")
	errNilMeasurer = errors.New("nil measurer")
)

// Build lays out root, which must already be styled, in a container of the
// given width and paints the result.
func Build(root *html.Node, containerWidth float64, m text.Measurer) (l *Layout, err error) {
	if root == nil {
		return nil, &LayoutError{Err: errNilRoot}
	}
	if m == nil {
		return nil, &LayoutError{Node: root, Err: errNilMeasurer}
	}
	if math.IsNaN(containerWidth) || math.IsInf(containerWidth, 0) {
		return nil, &LayoutError{Node: root, Err: fmt.Errorf("invalid container width %v", containerWidth)}
	}

	e := &engine{measurer: m}
	defer func() {
		if r := recover(); r != nil {
			l = nil
			err = &LayoutError{Node: e.current, Err: fmt.Errorf("panic: %v", r)}
		}
	}()

	doc := &Box{
		Kind:  DocumentBox,
		Node:  root,
		X:     DocumentX,
		Y:     DocumentY,
		Width: max(0, containerWidth-2*DocumentX),
	}
	if !hidden(root) {
		child := e.block(root, doc.X, doc.Y, doc.Width)
		doc.Children = []*Box{child}
		doc.Height = child.Margin.Top + child.Height + child.Margin.Bottom
	}

	return &Layout{Document: doc, Commands: e.paint(doc)}, nil
}

// ComputeLayout is Build for hosts that only want paint commands. It never
// fails: errors are logged and produce an empty list.
func ComputeLayout(root *html.Node, containerWidth float64, m text.Measurer) []PaintCommand {
	l, err := Build(root, containerWidth, m)
	if err != nil {
		logging.L().Named("layout").Error("layout failed", zap.Error(err))
		return nil
	}
	return l.Commands
}

type engine struct {
	measurer text.Measurer
	current  *html.Node
}

// block lays out node as a block box whose containing block's content area
// starts at (x, y) and is width wide. y is the position before the box's
// own top margin.
func (e *engine) block(node *html.Node, x, y, width float64) *Box {
	e.current = node
	b := &Box{
		Kind:    BlockBox,
		Node:    node,
		Margin:  node.Style.BoxEdges("margin", style.BaseFontSize),
		Padding: node.Style.BoxEdges("padding", style.BaseFontSize),
	}
	if node.Type == html.ElementNode {
		b.BorderWidth, _ = node.Style.Border(style.BaseFontSize)
	}
	b.X = x + b.Margin.Left
	b.Y = y + b.Margin.Top
	b.Width = max(0, width-b.Margin.Horizontal())

	var contentHeight float64
	if mode(node) == inlineMode {
		contentHeight = e.inline(b)
	} else {
		cy := b.ContentY()
		next := cy
		for _, child := range node.Children {
			if hidden(child) {
				continue
			}
			c := e.block(child, b.ContentX(), next, b.ContentWidth())
			b.Children = append(b.Children, c)
			next = c.Y + c.Height + c.Margin.Bottom
		}
		contentHeight = next - cy
	}
	b.Height = 2*b.BorderWidth + b.Padding.Vertical() + contentHeight
	return b
}

type layoutMode int

const (
	blockMode layoutMode = iota
	inlineMode
)

func mode(n *html.Node) layoutMode {
	if n.Type == html.TextNode {
		return inlineMode
	}
	for _, c := range n.Children {
		if c.Type == html.ElementNode && !hidden(c) && isBlockLevel(c) {
			return blockMode
		}
	}
	if len(n.Children) > 0 || inlineTags[n.TagName] {
		return inlineMode
	}
	return blockMode
}

func hidden(n *html.Node) bool {
	return n.Type == html.ElementNode && n.Style.Value(style.Display) == "none"
}

// fontOf returns the font a node's text is measured and drawn with.
func fontOf(n *html.Node) text.Font {
	size, ok := style.ParseLength(n.Style.Value(style.FontSize), style.BaseFontSize)
	if !ok || size <= 0 {
		size = style.BaseFontSize
	}
	return text.Font{
		Size:   size,
		Weight: n.Style.Value(style.FontWeight),
		Style:  n.Style.Value(style.FontStyle),
	}
}
