package page

import (
	"net/http"
	"net/url"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/Arun03Kumar/browser/pkg/html"
	"github.com/Arun03Kumar/browser/pkg/layout"
	"github.com/Arun03Kumar/browser/pkg/resource"
)

// Navigation asks the host to load another page.
type Navigation struct {
	URL    string
	Method string
	// Body is the urlencoded form for POST submissions.
	Body string
}

// Click handles a click at document coordinates. The element under the
// point gets focus if it is an input and receives a click event. Unless a
// listener prevents the default, clicking a link or a submit button returns
// the navigation it asks for.
func (p *Page) Click(x, y float64) *Navigation {
	hit := layout.HitTest(p.Commands(), x, y)
	if hit == nil {
		p.focus(nil)
		return nil
	}
	target := hit.ElementAncestor()
	if target == nil {
		return nil
	}
	if target.IsElement("input") {
		p.focus(target)
	} else {
		p.focus(nil)
	}

	if !p.engine.HasListeners(target, "click") {
		return p.defaultAction(target)
	}
	p.engine.SetElements(html.IndexByID(p.doc.Root))
	prevented, err := p.engine.Dispatch(target, "click")
	if err != nil {
		p.log.Warn("click handlers failed", zap.Error(err))
	}
	if prevented {
		return nil
	}
	return p.defaultAction(target)
}

func (p *Page) focus(n *html.Node) {
	if p.focused == n {
		return
	}
	if p.focused != nil {
		p.focused.Focused = false
	}
	p.focused = n
	if n != nil {
		n.Focused = true
	}
	p.doc.Invalidate()
}

func (p *Page) defaultAction(target *html.Node) *Navigation {
	for n := target; n != nil; n = n.Parent {
		if n.IsElement("a") {
			if href, ok := n.GetAttribute("href"); ok && strings.TrimSpace(href) != "" {
				target := resource.ResolveURL(p.url, strings.TrimSpace(href))
				if !resource.MayLoad(p.url, target) {
					p.log.Warn("refusing local link from network page", zap.String("href", target))
					return nil
				}
				return &Navigation{URL: target, Method: http.MethodGet}
			}
		}
	}
	if isSubmitter(target) {
		if form := enclosingForm(target); form != nil {
			return p.submit(form)
		}
	}
	return nil
}

func isSubmitter(n *html.Node) bool {
	typ, _ := n.GetAttribute("type")
	typ = strings.ToLower(typ)
	switch n.TagName {
	case "button":
		return typ == "" || typ == "submit"
	case "input":
		return typ == "submit"
	}
	return false
}

func enclosingForm(n *html.Node) *html.Node {
	for a := n; a != nil; a = a.Parent {
		if a.IsElement("form") {
			return a
		}
	}
	return nil
}

// Type appends s to the value of the focused input. It does nothing when
// no input has focus.
func (p *Page) Type(s string) {
	if p.focused == nil || s == "" {
		return
	}
	v, _ := p.focused.GetAttribute("value")
	p.focused.SetAttribute("value", v+s)
	p.doc.Invalidate()
}

// Backspace deletes the last character of the focused input.
func (p *Page) Backspace() {
	if p.focused == nil {
		return
	}
	v, _ := p.focused.GetAttribute("value")
	if v == "" {
		return
	}
	_, size := utf8.DecodeLastRuneInString(v)
	p.focused.SetAttribute("value", v[:len(v)-size])
	p.doc.Invalidate()
}

// Submit submits the form holding the focused input, as pressing Enter
// does. It returns nil when there is nothing to submit.
func (p *Page) Submit() *Navigation {
	if p.focused == nil {
		return nil
	}
	form := enclosingForm(p.focused)
	if form == nil {
		return nil
	}
	return p.submit(form)
}

// submit encodes the named inputs of form. GET puts them in the query,
// POST in the body.
func (p *Page) submit(form *html.Node) *Navigation {
	values := url.Values{}
	form.Walk(func(n *html.Node) bool {
		if n.IsElement("input") {
			name, _ := n.GetAttribute("name")
			typ, _ := n.GetAttribute("type")
			if name != "" && !strings.EqualFold(typ, "submit") {
				v, _ := n.GetAttribute("value")
				values.Add(name, v)
			}
		}
		return true
	})

	action, _ := form.GetAttribute("action")
	target := resource.ResolveURL(p.url, strings.TrimSpace(action))
	if !resource.MayLoad(p.url, target) {
		p.log.Warn("refusing local form action from network page", zap.String("action", target))
		return nil
	}
	method, _ := form.GetAttribute("method")
	if strings.EqualFold(method, http.MethodPost) {
		return &Navigation{URL: target, Method: http.MethodPost, Body: values.Encode()}
	}
	u, err := url.Parse(target)
	if err != nil {
		p.log.Warn("bad form action", zap.String("action", action), zap.Error(err))
		return nil
	}
	u.RawQuery = values.Encode()
	return &Navigation{URL: u.String(), Method: http.MethodGet}
}
