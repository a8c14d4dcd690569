package layout

import (
	"github.com/Arun03Kumar/browser/pkg/html"
	"github.com/Arun03Kumar/browser/pkg/style"
	"github.com/Arun03Kumar/browser/pkg/text"
)

type BoxKind int

const (
	DocumentBox BoxKind = iota
	BlockBox
	LineBox
	TextBox
	InputBox
)

func (k BoxKind) String() string {
	switch k {
	case DocumentBox:
		return "document"
	case BlockBox:
		return "block"
	case LineBox:
		return "line"
	case TextBox:
		return "text"
	case InputBox:
		return "input"
	}
	return "unknown"
}

// Box is one node of the layout tree. Block boxes hold either block
// children or line children, never both; line boxes hold text and input
// runs. For blocks, X/Y/Width/Height describe the border box.
type Box struct {
	Kind     BoxKind
	Node     *html.Node
	X        float64
	Y        float64
	Width    float64
	Height   float64
	Children []*Box

	// Block boxes
	Margin      style.Edges
	Padding     style.Edges
	BorderWidth float64

	// Text and input runs
	Word    string
	Font    text.Font
	Ascent  float64
	Descent float64
}

// ContentX returns the left edge of the content area.
func (b *Box) ContentX() float64 {
	return b.X + b.BorderWidth + b.Padding.Left
}

// ContentY returns the top edge of the content area.
func (b *Box) ContentY() float64 {
	return b.Y + b.BorderWidth + b.Padding.Top
}

// ContentWidth returns the width available to children.
func (b *Box) ContentWidth() float64 {
	return max(0, b.Width-2*b.BorderWidth-b.Padding.Horizontal())
}

// CommandKind names a paint operation.
type CommandKind string

const (
	CommandText   CommandKind = "text"
	CommandRect   CommandKind = "rect"
	CommandBorder CommandKind = "border"
	CommandCursor CommandKind = "cursor"
)

// PaintCommand is one entry of the display list handed to a rasterizer.
// Node points back at the document node that produced it, for hit testing.
type PaintCommand struct {
	Kind       CommandKind `json:"kind"`
	X          float64     `json:"x"`
	Y          float64     `json:"y"`
	Width      float64     `json:"width,omitempty"`
	Height     float64     `json:"height,omitempty"`
	Text       string      `json:"text,omitempty"`
	Font       *text.Font  `json:"font,omitempty"`
	Color      string      `json:"color,omitempty"`
	Thickness  float64     `json:"thickness,omitempty"`
	Decoration string      `json:"decoration,omitempty"`
	Node       *html.Node  `json:"-"`
}

// Layout is the result of one layout run.
type Layout struct {
	Document *Box
	Commands []PaintCommand
}

// Height returns the height of the laid out document, including the
// document box's top offset.
func (l *Layout) Height() float64 {
	if l == nil || l.Document == nil {
		return 0
	}
	return l.Document.Y + l.Document.Height
}
