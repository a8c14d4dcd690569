package js

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/Arun03Kumar/browser/pkg/html"
	"github.com/Arun03Kumar/browser/pkg/logging"
)

// Engine binds an interpreter to one document. It exposes document, window,
// console, alert and setTimeout to scripts and dispatches DOM events.
type Engine struct {
	doc       *html.Document
	interp    *Interpreter
	dom       *domContext
	scheduler Scheduler
	elements  map[string]*html.Node
	console   ConsoleFunc
	alert     func(message string)
	log       *zap.Logger

	nextTimer int
	cancelled map[int]bool
}

type Option func(*Engine)

// WithScheduler sets where setTimeout tasks go. The default is a TimerQueue.
func WithScheduler(s Scheduler) Option {
	return func(e *Engine) { e.scheduler = s }
}

// WithAlert sets the sink for window.alert.
func WithAlert(fn func(message string)) Option {
	return func(e *Engine) { e.alert = fn }
}

// WithConsole sets the sink for console output.
func WithConsole(fn ConsoleFunc) Option {
	return func(e *Engine) { e.console = fn }
}

// WithStepLimit bounds the statements one script or callback may execute.
func WithStepLimit(n int) Option {
	return func(e *Engine) { e.interp.StepLimit = n }
}

func WithLogger(log *zap.Logger) Option {
	return func(e *Engine) { e.log = log }
}

// NewEngine creates an engine for doc. A nil doc gets an empty document.
func NewEngine(doc *html.Document, opts ...Option) *Engine {
	if doc == nil {
		doc = html.Parse("")
	}
	e := &Engine{
		doc:       doc,
		interp:    NewInterpreter(),
		log:       logging.L().Named("js"),
		cancelled: make(map[int]bool),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.scheduler == nil {
		e.scheduler = NewTimerQueue()
	}
	if e.console == nil {
		e.console = logConsole(e.log)
	}
	if e.alert == nil {
		e.alert = func(message string) { e.log.Info(message, zap.String("source", "alert")) }
	}
	e.dom = newDOMContext(e)

	(&consoleAPI{sink: e.console}).register(e.interp)
	document := e.documentObject()
	window := e.windowObject(document)
	e.interp.Define("document", document)
	e.interp.Define("window", window)
	for _, name := range []string{"alert", "setTimeout", "clearTimeout"} {
		e.interp.Define(name, window.Get(name))
	}
	return e
}

// Document returns the document scripts run against.
func (e *Engine) Document() *html.Document { return e.doc }

func (e *Engine) Interpreter() *Interpreter { return e.interp }

func (e *Engine) Scheduler() Scheduler { return e.scheduler }

// SetElements replaces the id index getElementById consults. A nil map
// makes lookups walk the live tree.
func (e *Engine) SetElements(m map[string]*html.Node) { e.elements = m }

// RunScripts executes every script element in document order. A failing
// script is logged and does not stop the ones after it.
func (e *Engine) RunScripts() []error {
	var errs []error
	for i, script := range e.doc.Root.FindAll("script") {
		if !isScriptType(script) {
			continue
		}
		if src, ok := script.GetAttribute("src"); ok && src != "" {
			e.log.Debug("skipping external script", zap.String("src", src))
			continue
		}
		if _, err := e.Run(fmt.Sprintf("script[%d]", i), script.TextContent()); err != nil {
			e.log.Error("script failed", zap.Error(err))
			errs = append(errs, err)
		}
	}
	return errs
}

func isScriptType(n *html.Node) bool {
	t, ok := n.GetAttribute("type")
	if !ok {
		return true
	}
	switch strings.ToLower(strings.TrimSpace(t)) {
	case "", "text/javascript", "application/javascript":
		return true
	}
	return false
}

// Run tokenizes, parses and evaluates source. Errors are wrapped in a
// *ScriptError naming source.
func (e *Engine) Run(name, source string) (Value, error) {
	program, err := Parse(Tokenize(source))
	if err != nil {
		return nil, &ScriptError{Source: name, Err: err}
	}
	v, err := e.interp.Evaluate(program)
	if err != nil {
		return nil, &ScriptError{Source: name, Err: err}
	}
	return v, nil
}

// Exec runs ad hoc source.
func (e *Engine) Exec(source string) (Value, error) {
	return e.Run("eval", source)
}

// HasListeners reports whether target or an ancestor listens for eventType.
func (e *Engine) HasListeners(target *html.Node, eventType string) bool {
	for n := target; n != nil; n = n.Parent {
		if len(e.dom.listeners[n][eventType]) > 0 {
			return true
		}
	}
	return false
}

// Dispatch fires eventType at target and bubbles it through the ancestors.
// Each listener gets an event object carrying type and target. A failing
// listener is logged and the remaining listeners still run; the failures
// are returned joined.
func (e *Engine) Dispatch(target *html.Node, eventType string) (defaultPrevented bool, err error) {
	if target == nil {
		return false, nil
	}
	event := NewObject()
	stopped := false
	event.Set("type", String(eventType))
	event.Set("target", e.dom.elementProxy(target))
	event.Set("defaultPrevented", Boolean(false))
	event.Set("preventDefault", native("preventDefault", func([]Value) (Value, error) {
		event.Set("defaultPrevented", Boolean(true))
		return Undefined{}, nil
	}))
	event.Set("stopPropagation", native("stopPropagation", func([]Value) (Value, error) {
		stopped = true
		return Undefined{}, nil
	}))

	var errs []error
	for n := target; n != nil && !stopped; n = n.Parent {
		listeners := e.dom.listenersFor(n, eventType)
		if len(listeners) == 0 {
			continue
		}
		event.Set("currentTarget", e.dom.elementProxy(n))
		for _, fn := range listeners {
			if _, err := e.interp.Call(fn, event); err != nil {
				err = &ScriptError{Source: eventType + " listener", Err: err}
				e.log.Error("event listener failed", zap.String("event", eventType), zap.Error(err))
				errs = append(errs, err)
			}
		}
	}
	return Truthy(event.Get("defaultPrevented")), errors.Join(errs...)
}

func (e *Engine) lookupID(id string) *html.Node {
	if e.elements != nil {
		return e.elements[id]
	}
	return html.IndexByID(e.doc.Root)[id]
}

func (e *Engine) documentObject() *Object {
	d := NewObject()
	d.Set("getElementById", native("getElementById", func(args []Value) (Value, error) {
		return e.dom.elementProxy(e.lookupID(argString(args, 0))), nil
	}))
	d.Set("querySelector", native("querySelector", func(args []Value) (Value, error) {
		sel := strings.TrimSpace(argString(args, 0))
		if !strings.HasPrefix(sel, "#") || len(sel) == 1 {
			return Null{}, nil
		}
		return e.dom.elementProxy(e.lookupID(sel[1:])), nil
	}))
	d.Set("createElement", native("createElement", func(args []Value) (Value, error) {
		tag := strings.TrimSpace(argString(args, 0))
		if tag == "" {
			return nil, runtimeErrorf("createElement: tag name is empty")
		}
		return e.dom.elementProxy(html.NewElement(tag)), nil
	}))
	root := e.doc.Root
	d.Set("documentElement", e.dom.elementProxy(root))
	d.Set("head", e.dom.elementProxy(child(root, "head")))
	d.Set("body", e.dom.elementProxy(child(root, "body")))
	return d
}

func child(n *html.Node, tag string) *html.Node {
	if n == nil {
		return nil
	}
	for _, c := range n.Children {
		if c.IsElement(tag) {
			return c
		}
	}
	return nil
}

func (e *Engine) windowObject(document *Object) *Object {
	w := NewObject()
	w.Set("document", document)
	w.Set("console", e.interp.env["console"])
	w.Set("alert", native("alert", func(args []Value) (Value, error) {
		e.alert(formatArgs(args))
		return Undefined{}, nil
	}))
	w.Set("setTimeout", native("setTimeout", func(args []Value) (Value, error) {
		fn := arg(args, 0)
		if !isCallable(fn) {
			return nil, runtimeErrorf("setTimeout: callback is not a function")
		}
		e.nextTimer++
		id := e.nextTimer
		e.scheduler.Schedule(timerDelay(ToNumber(arg(args, 1))), func() {
			if e.cancelled[id] {
				delete(e.cancelled, id)
				return
			}
			if _, err := e.interp.Call(fn); err != nil {
				e.log.Error("timer callback failed", zap.Int("timer", id),
					zap.Error(&ScriptError{Source: "timer", Err: err}))
			}
		})
		return Number(id), nil
	}))
	w.Set("clearTimeout", native("clearTimeout", func(args []Value) (Value, error) {
		id := int(ToNumber(arg(args, 0)))
		if id > 0 && id <= e.nextTimer {
			e.cancelled[id] = true
		}
		return Undefined{}, nil
	}))
	return w
}
