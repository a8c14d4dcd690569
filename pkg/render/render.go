// Package render rasterizes layout paint commands with gg.
package render

import (
	"fmt"
	"image"
	"io"

	"github.com/fogleman/gg"
	"go.uber.org/zap"

	"github.com/Arun03Kumar/browser/pkg/layout"
	"github.com/Arun03Kumar/browser/pkg/logging"
	"github.com/Arun03Kumar/browser/pkg/style"
	"github.com/Arun03Kumar/browser/pkg/text"
)

// Rasterizer draws paint commands onto an RGBA canvas.
type Rasterizer struct {
	context *gg.Context
	fonts   *text.GoFontMeasurer
	log     *zap.Logger
}

// NewRasterizer creates a width × height canvas. Text is drawn with the
// faces of fonts, which should be the measurer layout ran with so glyph
// positions agree. A nil fonts uses the Go font family.
func NewRasterizer(width, height int, fonts *text.GoFontMeasurer) *Rasterizer {
	if fonts == nil {
		fonts = text.NewGoFontMeasurer()
	}
	return &Rasterizer{
		context: gg.NewContext(width, height),
		fonts:   fonts,
		log:     logging.L().Named("render"),
	}
}

func (r *Rasterizer) Width() int  { return r.context.Width() }
func (r *Rasterizer) Height() int { return r.context.Height() }

// Paint clears the canvas to white and draws cmds in order, shifted up by
// scrollY. Commands entirely outside the canvas are skipped.
func (r *Rasterizer) Paint(cmds []layout.PaintCommand, scrollY float64) {
	r.context.SetRGB(1, 1, 1)
	r.context.Clear()

	r.context.Push()
	defer r.context.Pop()
	r.context.Translate(0, -scrollY)

	top, bottom := scrollY, scrollY+float64(r.context.Height())
	for _, cmd := range cmds {
		if cmd.Y+cmd.Height < top || cmd.Y > bottom {
			continue
		}
		switch cmd.Kind {
		case layout.CommandRect, layout.CommandCursor:
			r.drawRect(cmd)
		case layout.CommandBorder:
			r.drawBorder(cmd)
		case layout.CommandText:
			r.drawText(cmd)
		default:
			r.log.Warn("unknown paint command", zap.String("kind", string(cmd.Kind)))
		}
	}
}

// setColor selects a CSS color. It reports false when the color is
// unparseable or fully transparent and nothing should be drawn.
func (r *Rasterizer) setColor(value, fallback string) bool {
	c, ok := style.ParseColor(value)
	if !ok {
		if c, ok = style.ParseColor(fallback); !ok {
			return false
		}
	}
	if c.A == 0 {
		return false
	}
	r.context.SetRGBA(float64(c.R)/255, float64(c.G)/255, float64(c.B)/255, c.A)
	return true
}

func (r *Rasterizer) drawRect(cmd layout.PaintCommand) {
	if cmd.Width <= 0 || cmd.Height <= 0 || !r.setColor(cmd.Color, "") {
		return
	}
	r.context.DrawRectangle(cmd.X, cmd.Y, cmd.Width, cmd.Height)
	r.context.Fill()
}

// drawBorder fills the four sides inside the box edge.
func (r *Rasterizer) drawBorder(cmd layout.PaintCommand) {
	t := cmd.Thickness
	if t <= 0 || cmd.Width <= 0 || cmd.Height <= 0 || !r.setColor(cmd.Color, "black") {
		return
	}
	t = min(t, cmd.Width/2, cmd.Height/2)
	x, y, w, h := cmd.X, cmd.Y, cmd.Width, cmd.Height
	r.context.DrawRectangle(x, y, w, t)
	r.context.DrawRectangle(x, y+h-t, w, t)
	r.context.DrawRectangle(x, y+t, t, h-2*t)
	r.context.DrawRectangle(x+w-t, y+t, t, h-2*t)
	r.context.Fill()
}

func (r *Rasterizer) drawText(cmd layout.PaintCommand) {
	if cmd.Text == "" || cmd.Font == nil || !r.setColor(cmd.Color, "black") {
		return
	}
	metrics := r.fonts.Metrics(*cmd.Font)
	baseline := cmd.Y + metrics.Ascent
	if !r.fonts.DrawString(r.context, *cmd.Font, cmd.Text, cmd.X, baseline) {
		r.log.Warn("no font face", zap.Float64("size", cmd.Font.Size))
		return
	}

	width := cmd.Width
	if width <= 0 {
		width = r.fonts.Measure(*cmd.Font, cmd.Text)
	}
	size := cmd.Font.Size
	var lineY float64
	switch cmd.Decoration {
	case "underline":
		lineY = baseline + size*0.1
	case "overline":
		lineY = cmd.Y
	case "line-through":
		lineY = baseline - metrics.Ascent*0.35
	default:
		return
	}
	r.context.SetLineWidth(max(1, size/12))
	r.context.DrawLine(cmd.X, lineY, cmd.X+width, lineY)
	r.context.Stroke()
}

// Image returns the canvas.
func (r *Rasterizer) Image() image.Image {
	return r.context.Image()
}

func (r *Rasterizer) EncodePNG(w io.Writer) error {
	if err := r.context.EncodePNG(w); err != nil {
		return fmt.Errorf("encoding png: %w", err)
	}
	return nil
}

func (r *Rasterizer) SavePNG(path string) error {
	if err := r.context.SavePNG(path); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	return nil
}
