package main

import (
	"context"
	"net/http"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"

	"github.com/Arun03Kumar/browser/pkg/config"
	"github.com/Arun03Kumar/browser/pkg/js"
	"github.com/Arun03Kumar/browser/pkg/logging"
	"github.com/Arun03Kumar/browser/pkg/page"
	"github.com/Arun03Kumar/browser/pkg/render"
	"github.com/Arun03Kumar/browser/pkg/resource"
	"github.com/Arun03Kumar/browser/pkg/text"
)

const (
	scrollStep = 40.0
	taskBuffer = 16
)

// viewer owns the window and the current page. Everything that touches
// the page runs on the fyne event goroutine; loads happen in the
// background and are handed over with fyne.Do.
type viewer struct {
	cfg     *config.Config
	fetcher *resource.DefaultFetcher
	// fonts lays out pages on the load goroutine and rasterizes them on
	// the event goroutine, so the two always agree on glyph widths.
	fonts   *text.GoFontMeasurer
	log     *zap.Logger

	win    fyne.Window
	view   *pageView
	urlBar *widget.Entry
	status *widget.Label

	page    *page.Page
	sched   *js.ChannelScheduler
	stop    chan struct{}
	scroll  float64
	history []string
	loading context.CancelFunc
}

func newViewer(cfg *config.Config, win fyne.Window) *viewer {
	v := &viewer{
		cfg:     cfg,
		fetcher: resource.NewFetcher(cfg.Fetch),
		fonts:   text.NewGoFontMeasurer(),
		log:     logging.L().Named("view"),
		win:     win,
		view:    newPageView(cfg.Viewport.Width, cfg.Viewport.Height),
		urlBar:  widget.NewEntry(),
		status:  widget.NewLabel("Enter a URL or path and press Enter"),
	}
	v.view.onTap = v.click
	v.view.onRune = v.typeRune
	v.view.onKey = v.key
	v.view.onScroll = v.scrollBy

	v.urlBar.SetPlaceHolder("https://example.com or ./page.html")
	v.urlBar.OnSubmitted = v.open
	back := widget.NewButton("Back", v.back)

	top := container.NewBorder(nil, nil, back, nil, v.urlBar)
	win.SetContent(container.NewBorder(top, v.status, nil, nil, v.view))
	win.Resize(fyne.NewSize(float32(cfg.Viewport.Width), float32(cfg.Viewport.Height)+80))
	return v
}

// open loads uri as if typed into the address bar.
func (v *viewer) open(uri string) {
	v.navigate(&page.Navigation{URL: uri, Method: http.MethodGet}, true)
}

func (v *viewer) back() {
	if len(v.history) == 0 {
		return
	}
	prev := v.history[len(v.history)-1]
	v.history = v.history[:len(v.history)-1]
	v.navigate(&page.Navigation{URL: prev, Method: http.MethodGet}, false)
}

// navigate starts loading nav in the background, superseding any load in
// flight. With remember set, the current page goes onto the history.
func (v *viewer) navigate(nav *page.Navigation, remember bool) {
	if v.loading != nil {
		v.loading()
	}
	ctx, cancel := context.WithCancel(context.Background())
	v.loading = cancel
	v.status.SetText("Loading " + nav.URL + "...")
	v.log.Info("navigating", zap.String("url", nav.URL), zap.String("method", nav.Method))

	go func() {
		p, sched, err := v.load(ctx, nav)
		fyne.Do(func() {
			if ctx.Err() != nil {
				if sched != nil {
					sched.Close()
				}
				return
			}
			cancel()
			v.loading = nil
			if err != nil {
				v.log.Warn("load failed", zap.String("url", nav.URL), zap.Error(err))
				v.status.SetText("Error: " + err.Error())
				return
			}
			if remember && v.page != nil {
				v.history = append(v.history, v.page.URL())
			}
			v.install(p, sched)
		})
	}()
}

func (v *viewer) load(ctx context.Context, nav *page.Navigation) (*page.Page, *js.ChannelScheduler, error) {
	sched := js.NewChannelScheduler(taskBuffer)
	opts := []page.Option{
		page.WithConfig(v.cfg),
		page.WithFetcher(v.fetcher),
		page.WithMeasurer(v.fonts),
		page.WithScriptOptions(
			js.WithScheduler(sched),
			js.WithAlert(v.alert),
		),
	}

	var (
		p   *page.Page
		err error
	)
	if nav.Method == http.MethodPost {
		var res *resource.Resource
		res, err = v.fetcher.Post(ctx, nav.URL, nav.Body)
		if err == nil {
			p, err = page.New(ctx, string(res.Body), res.URL, opts...)
		}
	} else {
		p, err = page.Load(ctx, nav.URL, opts...)
	}
	if err != nil {
		sched.Close()
		return nil, nil, err
	}
	return p, sched, nil
}

func (v *viewer) alert(message string) {
	v.log.Info("alert", zap.String("message", message))
	fyne.Do(func() { v.status.SetText("Alert: " + message) })
}

// install makes p the current page and starts delivering its timers.
func (v *viewer) install(p *page.Page, sched *js.ChannelScheduler) {
	v.close()
	v.page, v.sched, v.stop, v.scroll = p, sched, make(chan struct{}), 0
	go v.watch(p, sched, v.stop)

	for _, err := range p.ScriptErrors() {
		v.log.Warn("script error", zap.String("url", p.URL()), zap.Error(err))
	}
	v.urlBar.SetText(p.URL())
	v.win.SetTitle("browser - " + p.URL())
	v.status.SetText(p.URL())
	v.repaint()
}

// watch hands due timer tasks of p to the event goroutine until stop is
// closed.
func (v *viewer) watch(p *page.Page, sched *js.ChannelScheduler, stop <-chan struct{}) {
	for {
		select {
		case task := <-sched.Tasks():
			fyne.Do(func() {
				if v.page != p {
					return
				}
				p.RunTask(task)
				v.repaint()
			})
		case <-stop:
			return
		}
	}
}

// close stops the current page's timers.
func (v *viewer) close() {
	if v.sched != nil {
		v.sched.Close()
		close(v.stop)
		v.sched, v.stop = nil, nil
	}
}

func (v *viewer) repaint() {
	if v.page == nil {
		return
	}
	v.scroll = clampScroll(v.scroll, v.page.Layout().Height(), float64(v.cfg.Viewport.Height))
	r := render.NewRasterizer(v.cfg.Viewport.Width, v.cfg.Viewport.Height, v.fonts)
	v.page.Paint(r, v.scroll)
	v.view.setImage(r.Image())
}

func (v *viewer) click(x, y float64) {
	if v.page == nil {
		return
	}
	if nav := v.page.Click(x, y+v.scroll); nav != nil {
		v.navigate(nav, true)
	}
	v.repaint()
}

func (v *viewer) typeRune(r rune) {
	if v.page == nil {
		return
	}
	v.page.Type(string(r))
	v.repaint()
}

func (v *viewer) key(name fyne.KeyName) {
	if v.page == nil {
		return
	}
	switch name {
	case fyne.KeyBackspace:
		v.page.Backspace()
	case fyne.KeyReturn, fyne.KeyEnter:
		if nav := v.page.Submit(); nav != nil {
			v.navigate(nav, true)
		}
	case fyne.KeyDown:
		v.scroll += scrollStep
	case fyne.KeyUp:
		v.scroll -= scrollStep
	case fyne.KeyPageDown:
		v.scroll += float64(v.cfg.Viewport.Height)
	case fyne.KeyPageUp:
		v.scroll -= float64(v.cfg.Viewport.Height)
	default:
		return
	}
	v.repaint()
}

func (v *viewer) scrollBy(dy float64) {
	if v.page == nil {
		return
	}
	v.scroll += dy
	v.repaint()
}

// clampScroll keeps the viewport within the document.
func clampScroll(scroll, docHeight, viewHeight float64) float64 {
	if limit := docHeight - viewHeight; scroll > limit {
		scroll = limit
	}
	if scroll < 0 {
		scroll = 0
	}
	return scroll
}
