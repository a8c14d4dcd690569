package layout

import (
	"github.com/Arun03Kumar/browser/pkg/html"
	"github.com/Arun03Kumar/browser/pkg/text"
)

// Fixed geometry of input and button runs.
const (
	InputWidth   = 200.0
	InputHeight  = 24.0
	inputAscent  = InputHeight * 0.8
	inputDescent = InputHeight * 0.2
)

// lineBreaker fills line boxes for one block in inline mode.
type lineBreaker struct {
	e      *engine
	block  *Box
	x      float64
	width  float64
	line   *Box
	cursor float64
}

// inline lays out b's node as inline content and returns the total height
// of the resulting lines.
func (e *engine) inline(b *Box) float64 {
	lb := &lineBreaker{e: e, block: b, x: b.ContentX(), width: b.ContentWidth()}
	lb.newLine()
	lb.recurse(b.Node)
	return lb.finish()
}

func (lb *lineBreaker) newLine() {
	lb.line = &Box{Kind: LineBox, Node: lb.block.Node}
	lb.block.Children = append(lb.block.Children, lb.line)
	lb.cursor = 0
}

func (lb *lineBreaker) recurse(n *html.Node) {
	lb.e.current = n
	if n.Type == html.TextNode {
		font := fontOf(n)
		for _, word := range text.Words(n.Text) {
			lb.word(n, font, word)
		}
		return
	}
	if hidden(n) {
		return
	}
	switch n.TagName {
	case "br":
		lb.newLine()
		return
	case "input", "button":
		lb.input(n)
		return
	}
	for _, c := range n.Children {
		lb.recurse(c)
	}
}

// place appends a run of width w to the current line, wrapping first if it
// does not fit. A run wider than the whole line stays where it is when the
// line is empty.
func (lb *lineBreaker) place(run *Box, w float64, font text.Font) {
	if lb.cursor+w > lb.width && len(lb.line.Children) > 0 {
		lb.newLine()
	}
	run.X = lb.x + lb.cursor
	run.Width = w
	lb.line.Children = append(lb.line.Children, run)
	lb.cursor += w + lb.e.measurer.Measure(font, " ")
}

func (lb *lineBreaker) word(n *html.Node, font text.Font, word string) {
	metrics := lb.e.measurer.Metrics(font)
	run := &Box{
		Kind:    TextBox,
		Node:    n,
		Word:    word,
		Font:    font,
		Ascent:  metrics.Ascent,
		Descent: metrics.Descent,
		Height:  metrics.Ascent + metrics.Descent,
	}
	lb.place(run, lb.e.measurer.Measure(font, word), font)
}

func (lb *lineBreaker) input(n *html.Node) {
	font := fontOf(n)
	run := &Box{
		Kind:    InputBox,
		Node:    n,
		Font:    font,
		Ascent:  inputAscent,
		Descent: inputDescent,
		Height:  InputHeight,
	}
	lb.place(run, InputWidth, font)
}

// finish positions the lines top to bottom and aligns every run on its
// line's baseline.
func (lb *lineBreaker) finish() float64 {
	y := lb.block.ContentY()
	top := y
	for _, line := range lb.block.Children {
		line.X = lb.x
		line.Y = y
		line.Width = lb.width
		if len(line.Children) == 0 {
			continue
		}
		var maxAscent, maxDescent float64
		for _, run := range line.Children {
			maxAscent = max(maxAscent, run.Ascent)
			maxDescent = max(maxDescent, run.Descent)
		}
		baseline := y + LineHeightFactor*maxAscent
		for _, run := range line.Children {
			run.Y = baseline - run.Ascent
		}
		line.Height = LineHeightFactor * (maxAscent + maxDescent)
		y += line.Height
	}
	return y - top
}
