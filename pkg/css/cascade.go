package css

import (
	"sort"
	"strings"

	"github.com/Arun03Kumar/browser/pkg/html"
	"github.com/Arun03Kumar/browser/pkg/style"
)

// Result reports what ApplyStyles parsed: the priority-sorted rules and
// every diagnostic from every sheet.
type Result struct {
	Rules       []Rule
	Diagnostics []Diagnostic
}

type source struct {
	origin string
	text   string
}

// ApplyStyles resolves the style of every node under root in place.
//
// Sheets are combined in order: the default sheet, <style> elements in
// document order, authorCSS, then userCSS. Rules are stably sorted by
// selector priority so later sheets win ties. Each node starts from a
// fresh map, so applying twice gives the same result as applying once.
func ApplyStyles(root *html.Node, authorCSS, userCSS string) Result {
	sources := []source{{"default", DefaultStylesheet}}
	root.Walk(func(n *html.Node) bool {
		if n.IsElement("style") {
			sources = append(sources, source{"style", n.TextContent()})
		}
		return true
	})
	sources = append(sources, source{"author", authorCSS}, source{"user", userCSS})

	var res Result
	for _, src := range sources {
		if strings.TrimSpace(src.text) == "" {
			continue
		}
		sheet := ParseStylesheet(src.text)
		res.Rules = append(res.Rules, sheet.Rules...)
		for _, d := range sheet.Diagnostics {
			d.Origin = src.origin
			res.Diagnostics = append(res.Diagnostics, d)
		}
	}
	sort.SliceStable(res.Rules, func(i, j int) bool {
		return res.Rules[i].Selector.Priority() < res.Rules[j].Selector.Priority()
	})

	c := &cascade{rules: res.Rules}
	c.resolve(root, nil)
	res.Diagnostics = append(res.Diagnostics, c.diags...)
	return res
}

type cascade struct {
	rules []Rule
	diags []Diagnostic
}

func (c *cascade) resolve(n, parent *html.Node) {
	n.Style = style.Map{}
	for _, p := range style.Inherited {
		if parent != nil {
			n.Style.SetValue(p, parent.Style.Value(p))
		} else {
			n.Style.SetValue(p, style.RootDefaults[p])
		}
	}
	if n.Type == html.TextNode {
		return
	}
	for _, p := range style.NonInherited {
		n.Style.SetValue(p, style.Defaults[p])
	}

	for _, r := range c.rules {
		if !r.Selector.Matches(n) {
			continue
		}
		for _, d := range r.Declarations {
			apply(n, parent, d)
		}
	}
	if inline, ok := n.GetAttribute("style"); ok {
		decls, diags := ParseDeclarations(inline)
		for _, d := range diags {
			d.Origin = "inline"
			c.diags = append(c.diags, d)
		}
		for _, d := range decls {
			apply(n, parent, d)
		}
	}
	resolveFontSize(n, parent)

	for _, child := range n.Children {
		c.resolve(child, n)
	}
}

func apply(n, parent *html.Node, d Declaration) {
	value := d.Value
	if strings.EqualFold(value, "inherit") {
		v, ok := inheritedValue(parent, d.Property)
		if !ok {
			return
		}
		value = v
	}
	n.Style.Set(d.Property, value)
}

func inheritedValue(parent *html.Node, name string) (string, bool) {
	if parent != nil {
		return parent.Style.Get(name)
	}
	if p, ok := style.Lookup(name); ok {
		if v, ok := style.RootDefaults[p]; ok {
			return v, true
		}
		v, ok := style.Defaults[p]
		return v, ok
	}
	return "", false
}

// resolveFontSize turns relative font sizes into pixels against the
// parent's already resolved size.
func resolveFontSize(n, parent *html.Node) {
	fs := strings.TrimSpace(n.Style.Value(style.FontSize))
	if !strings.HasSuffix(fs, "%") && !(strings.HasSuffix(fs, "em") && !strings.HasSuffix(fs, "rem")) {
		return
	}
	parentSize := style.RootDefaults[style.FontSize]
	if parent != nil {
		parentSize = parent.Style.Value(style.FontSize)
	}
	base, ok := style.ParseLength(parentSize, style.BaseFontSize)
	if !ok {
		base = style.BaseFontSize
	}
	if px, ok := style.ParseLength(fs, base); ok {
		n.Style.SetValue(style.FontSize, style.Pixels(px))
	}
}
