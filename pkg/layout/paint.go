package layout

import (
	"strings"

	"github.com/Arun03Kumar/browser/pkg/html"
	"github.com/Arun03Kumar/browser/pkg/style"
)

const (
	inputBackground   = "#ffffff"
	inputBorder       = "#cccccc"
	inputFocusBorder  = "#0066cc"
	inputLabelPadding = 4.0
	cursorColor       = "#000000"
	defaultButtonText = "Button"
)

// paint flattens the box tree into a display list in tree order, so later
// commands draw over earlier ones.
func (e *engine) paint(root *Box) []PaintCommand {
	var cmds []PaintCommand
	var walk func(b *Box)
	walk = func(b *Box) {
		switch b.Kind {
		case BlockBox:
			cmds = e.paintBlock(cmds, b)
		case TextBox:
			cmds = e.paintText(cmds, b)
		case InputBox:
			cmds = e.paintInput(cmds, b)
		}
		for _, c := range b.Children {
			walk(c)
		}
	}
	walk(root)
	return cmds
}

func (e *engine) paintBlock(cmds []PaintCommand, b *Box) []PaintCommand {
	n := b.Node
	if n.Type != html.ElementNode {
		return cmds
	}
	if bg := n.Style.Value(style.BackgroundColor); !style.IsTransparent(bg) {
		cmds = append(cmds, PaintCommand{
			Kind: CommandRect, X: b.X, Y: b.Y, Width: b.Width, Height: b.Height,
			Color: bg, Node: n,
		})
	}
	if b.BorderWidth > 0 {
		_, color := n.Style.Border(style.BaseFontSize)
		cmds = append(cmds, PaintCommand{
			Kind: CommandBorder, X: b.X, Y: b.Y, Width: b.Width, Height: b.Height,
			Color: color, Thickness: b.BorderWidth, Node: n,
		})
	}
	return cmds
}

func (e *engine) paintText(cmds []PaintCommand, b *Box) []PaintCommand {
	font := b.Font
	return append(cmds, PaintCommand{
		Kind:       CommandText,
		X:          b.X,
		Y:          b.Y,
		Width:      b.Width,
		Height:     b.Height,
		Text:       b.Word,
		Font:       &font,
		Color:      b.Node.Style.Value(style.Color),
		Decoration: decoration(b.Node),
		Node:       b.Node,
	})
}

// decoration returns the first text-decoration other than none found on
// the text's element ancestors, stopping at the nearest block-level one.
func decoration(n *html.Node) string {
	for a := n.ElementAncestor(); a != nil; a = a.Parent {
		if d := a.Style.Value(style.TextDecoration); d != "" && d != "none" {
			return d
		}
		if isBlockLevel(a) {
			break
		}
	}
	return ""
}

func (e *engine) paintInput(cmds []PaintCommand, b *Box) []PaintCommand {
	n := b.Node
	bg := n.Style.Value(style.BackgroundColor)
	if style.IsTransparent(bg) {
		bg = inputBackground
	}
	border, thickness := inputBorder, 1.0
	if n.Focused {
		border, thickness = inputFocusBorder, 2.0
	}
	cmds = append(cmds,
		PaintCommand{Kind: CommandRect, X: b.X, Y: b.Y, Width: b.Width, Height: b.Height, Color: bg, Node: n},
		PaintCommand{Kind: CommandBorder, X: b.X, Y: b.Y, Width: b.Width, Height: b.Height, Color: border, Thickness: thickness, Node: n},
	)

	label := inputLabel(n)
	labelWidth := 0.0
	if label != "" {
		font := b.Font
		metrics := e.measurer.Metrics(font)
		labelWidth = e.measurer.Measure(font, label)
		cmds = append(cmds, PaintCommand{
			Kind:   CommandText,
			X:      b.X + inputLabelPadding,
			Y:      b.Y + (b.Height-metrics.Ascent-metrics.Descent)/2,
			Width:  labelWidth,
			Height: metrics.Ascent + metrics.Descent,
			Text:   label,
			Font:   &font,
			Color:  n.Style.Value(style.Color),
			Node:   n,
		})
	}
	if n.Focused && n.TagName == "input" {
		cmds = append(cmds, PaintCommand{
			Kind:   CommandCursor,
			X:      b.X + inputLabelPadding + labelWidth,
			Y:      b.Y + 2,
			Width:  1,
			Height: b.Height - 4,
			Color:  cursorColor,
		})
	}
	return cmds
}

// inputLabel is the text shown inside an input or button.
func inputLabel(n *html.Node) string {
	if n.TagName == "button" {
		for _, c := range n.Children {
			if c.Type == html.TextNode {
				if t := strings.TrimSpace(c.Text); t != "" {
					return t
				}
			}
		}
		return defaultButtonText
	}
	if v, _ := n.GetAttribute("value"); v != "" {
		return v
	}
	v, _ := n.GetAttribute("placeholder")
	return v
}
