package main

import (
	"image"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"
)

// pageView shows the rasterized page and forwards pointer and keyboard
// input in page pixels.
type pageView struct {
	widget.BaseWidget
	image *canvas.Image

	onTap    func(x, y float64)
	onRune   func(r rune)
	onKey    func(name fyne.KeyName)
	onScroll func(dy float64)
}

var (
	_ fyne.Tappable   = (*pageView)(nil)
	_ fyne.Focusable  = (*pageView)(nil)
	_ fyne.Scrollable = (*pageView)(nil)
)

func newPageView(width, height int) *pageView {
	img := canvas.NewImageFromImage(image.NewRGBA(image.Rect(0, 0, width, height)))
	img.FillMode = canvas.ImageFillOriginal
	img.ScaleMode = canvas.ImageScalePixels
	pv := &pageView{image: img}
	pv.ExtendBaseWidget(pv)
	return pv
}

func (pv *pageView) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(pv.image)
}

func (pv *pageView) setImage(img image.Image) {
	pv.image.Image = img
	pv.image.Refresh()
}

func (pv *pageView) Tapped(ev *fyne.PointEvent) {
	if app := fyne.CurrentApp(); app != nil {
		if c := app.Driver().CanvasForObject(pv); c != nil {
			c.Focus(pv)
		}
	}
	if pv.onTap != nil {
		pv.onTap(float64(ev.Position.X), float64(ev.Position.Y))
	}
}

func (pv *pageView) FocusGained() {}
func (pv *pageView) FocusLost()   {}

func (pv *pageView) TypedRune(r rune) {
	if pv.onRune != nil {
		pv.onRune(r)
	}
}

func (pv *pageView) TypedKey(ev *fyne.KeyEvent) {
	if pv.onKey != nil {
		pv.onKey(ev.Name)
	}
}

func (pv *pageView) Scrolled(ev *fyne.ScrollEvent) {
	if pv.onScroll != nil {
		pv.onScroll(float64(-ev.Scrolled.DY))
	}
}
