// Package page drives the pipeline for one loaded document: parse, style,
// run scripts, lay out, and route input events back into the tree.
package page

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/Arun03Kumar/browser/pkg/config"
	"github.com/Arun03Kumar/browser/pkg/css"
	"github.com/Arun03Kumar/browser/pkg/html"
	"github.com/Arun03Kumar/browser/pkg/js"
	"github.com/Arun03Kumar/browser/pkg/layout"
	"github.com/Arun03Kumar/browser/pkg/logging"
	"github.com/Arun03Kumar/browser/pkg/render"
	"github.com/Arun03Kumar/browser/pkg/resource"
	"github.com/Arun03Kumar/browser/pkg/text"
)

// Page is a loaded document and everything derived from it.
//
// A Page is not safe for concurrent use. Events, typing and timer tasks
// must all run on the goroutine that owns it.
type Page struct {
	url      string
	doc      *html.Document
	engine   *js.Engine
	cfg      *config.Config
	measurer text.Measurer
	fetcher  resource.Fetcher
	log      *zap.Logger

	jsOpts    []js.Option
	authorCSS string
	userCSS   string
	width     float64
	focused   *html.Node

	current    *layout.Layout
	styled     bool
	layoutGen  uint64
	layoutW    float64
	styleDiags []css.Diagnostic
	scriptErrs []error
}

type Option func(*Page)

// WithConfig supplies viewport, style and script settings. The default is
// config.Default().
func WithConfig(cfg *config.Config) Option {
	return func(p *Page) { p.cfg = cfg }
}

// WithMeasurer sets the text measurer layout uses. The default is the Go
// font measurer.
func WithMeasurer(m text.Measurer) Option {
	return func(p *Page) { p.measurer = m }
}

// WithFetcher sets where linked stylesheets and Load come from.
func WithFetcher(f resource.Fetcher) Option {
	return func(p *Page) { p.fetcher = f }
}

// WithScriptOptions passes options through to the script engine.
func WithScriptOptions(opts ...js.Option) Option {
	return func(p *Page) { p.jsOpts = append(p.jsOpts, opts...) }
}

// WithAuthorCSS adds a stylesheet applied after the document's own.
func WithAuthorCSS(css string) Option {
	return func(p *Page) { p.authorCSS += css }
}

// New builds a page from markup. baseURL resolves links, form actions and
// linked stylesheets. Scripts run before New returns when enabled.
func New(ctx context.Context, markup, baseURL string, opts ...Option) (*Page, error) {
	p := &Page{url: baseURL, log: logging.L().Named("page")}
	for _, opt := range opts {
		opt(p)
	}
	if p.cfg == nil {
		p.cfg = config.Default()
	}
	if p.measurer == nil {
		p.measurer = text.NewGoFontMeasurer()
	}
	userCSS, err := p.cfg.UserStylesheet()
	if err != nil {
		return nil, fmt.Errorf("loading user stylesheet: %w", err)
	}
	p.userCSS = userCSS
	p.width = float64(p.cfg.Viewport.Width)

	p.doc = html.Parse(markup)
	for _, d := range p.doc.Diagnostics {
		p.log.Debug("markup recovered", zap.String("diagnostic", d.String()))
	}

	if p.fetcher != nil {
		linked, errs := resource.LinkedStylesheets(ctx, p.fetcher, p.doc.Root, baseURL)
		for _, err := range errs {
			p.log.Warn("stylesheet not loaded", zap.Error(err))
		}
		p.authorCSS = linked + p.authorCSS
	}

	jsOpts := append([]js.Option{js.WithStepLimit(p.cfg.Script.MaxSteps)}, p.jsOpts...)
	p.engine = js.NewEngine(p.doc, jsOpts...)
	if p.cfg.Script.Enabled {
		p.restyle()
		p.engine.SetElements(html.IndexByID(p.doc.Root))
		p.scriptErrs = p.engine.RunScripts()
	}
	return p, nil
}

// Load fetches uri and builds a page from it. Without WithFetcher a
// fetcher is built from the fetch config.
func Load(ctx context.Context, uri string, opts ...Option) (*Page, error) {
	p := &Page{}
	for _, opt := range opts {
		opt(p)
	}
	f := p.fetcher
	if f == nil {
		cfg := p.cfg
		if cfg == nil {
			cfg = config.Default()
		}
		f = resource.NewFetcher(cfg.Fetch)
		opts = append(opts, WithFetcher(f))
	}
	res, err := f.Fetch(ctx, uri)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", uri, err)
	}
	return New(ctx, string(res.Body), res.URL, opts...)
}

func (p *Page) URL() string              { return p.url }
func (p *Page) Document() *html.Document { return p.doc }
func (p *Page) Engine() *js.Engine       { return p.engine }

// Focused returns the focused input, or nil.
func (p *Page) Focused() *html.Node { return p.focused }

// ScriptErrors returns the errors of the scripts run at load.
func (p *Page) ScriptErrors() []error { return p.scriptErrs }

// StyleDiagnostics returns what the last cascade recovered from.
func (p *Page) StyleDiagnostics() []css.Diagnostic { return p.styleDiags }

// Width returns the container width layout runs at.
func (p *Page) Width() float64 { return p.width }

// Resize changes the container width. The next Layout call reflows.
func (p *Page) Resize(width float64) {
	if width > 0 {
		p.width = width
	}
}

func (p *Page) restyle() {
	res := css.ApplyStyles(p.doc.Root, p.authorCSS, p.userCSS)
	p.styleDiags = res.Diagnostics
	for _, d := range res.Diagnostics {
		p.log.Debug("style recovered", zap.String("diagnostic", d.String()))
	}
	p.styled = true
}

// Layout returns the current layout, restyling and reflowing first if the
// document changed or the width did since the last run. A failed layout is
// logged and yields an empty one.
func (p *Page) Layout() *layout.Layout {
	gen := p.doc.Generation()
	if p.current != nil && gen == p.layoutGen && p.width == p.layoutW {
		return p.current
	}
	if !p.styled || gen != p.layoutGen {
		p.restyle()
	}
	l, err := layout.Build(p.doc.Root, p.width, p.measurer)
	if err != nil {
		p.log.Error("layout failed", zap.Error(err))
		l = &layout.Layout{}
	}
	p.current, p.layoutGen, p.layoutW = l, gen, p.width
	return l
}

// Commands returns the paint commands of the current layout.
func (p *Page) Commands() []layout.PaintCommand {
	return p.Layout().Commands
}

// Paint draws the current layout onto r scrolled down by scrollY.
func (p *Page) Paint(r *render.Rasterizer, scrollY float64) {
	r.Paint(p.Commands(), scrollY)
}

// RunTimers runs pending timer callbacks in due order when the engine uses
// a TimerQueue, at most script.max_timer_runs of them. It returns how many
// ran.
func (p *Page) RunTimers() int {
	q, ok := p.engine.Scheduler().(*js.TimerQueue)
	if !ok {
		return 0
	}
	limit := p.cfg.Script.MaxTimerRuns
	if limit == 0 {
		return 0
	}
	p.engine.SetElements(html.IndexByID(p.doc.Root))
	n := q.Drain(limit)
	if q.Len() > 0 {
		p.log.Warn("timer limit reached", zap.Int("ran", n), zap.Int("pending", q.Len()))
	}
	return n
}

// RunTask runs a timer task delivered by a ChannelScheduler.
func (p *Page) RunTask(task js.Task) {
	p.engine.SetElements(html.IndexByID(p.doc.Root))
	task()
}
