package css

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gorilla/css/scanner"

	"github.com/Arun03Kumar/browser/pkg/html"
)

var errEmptySelector = errors.New("empty selector")

// Selector decides whether a rule applies to a node. Priority orders rules
// in the cascade: higher priorities are applied later and win.
type Selector interface {
	Matches(n *html.Node) bool
	Priority() int
	String() string
}

// TagSelector matches elements by tag name.
type TagSelector struct {
	Tag string
}

func (s TagSelector) Matches(n *html.Node) bool {
	return n.Type == html.ElementNode && n.TagName == s.Tag
}

func (s TagSelector) Priority() int { return 1 }

func (s TagSelector) String() string { return s.Tag }

// DescendantSelector matches nodes matched by Descendant that have some
// ancestor matched by Ancestor.
type DescendantSelector struct {
	Ancestor   Selector
	Descendant Selector
}

func (s DescendantSelector) Matches(n *html.Node) bool {
	if !s.Descendant.Matches(n) {
		return false
	}
	for p := n.Parent; p != nil; p = p.Parent {
		if s.Ancestor.Matches(p) {
			return true
		}
	}
	return false
}

func (s DescendantSelector) Priority() int {
	return s.Ancestor.Priority() + s.Descendant.Priority()
}

func (s DescendantSelector) String() string {
	return s.Ancestor.String() + " " + s.Descendant.String()
}

// parseSelectorList parses a comma-separated selector prelude. Any
// unsupported part invalidates the whole list, as browsers do.
func parseSelectorList(toks []*scanner.Token) ([]Selector, error) {
	var sels []Selector
	start := 0
	for i := 0; i <= len(toks); i++ {
		if i < len(toks) && !isChar(toks[i], ",") {
			continue
		}
		sel, err := parseSelector(toks[start:i])
		if err != nil {
			return nil, err
		}
		sels = append(sels, sel)
		start = i + 1
	}
	return sels, nil
}

// parseSelector accepts whitespace-separated tag names only.
func parseSelector(toks []*scanner.Token) (Selector, error) {
	var sel Selector
	for _, t := range toks {
		switch t.Type {
		case scanner.TokenS:
			continue
		case scanner.TokenIdent:
			tag := TagSelector{Tag: strings.ToLower(t.Value)}
			if sel == nil {
				sel = tag
			} else {
				sel = DescendantSelector{Ancestor: sel, Descendant: tag}
			}
		default:
			return nil, fmt.Errorf("unsupported selector syntax %q", t.Value)
		}
	}
	if sel == nil {
		return nil, errEmptySelector
	}
	return sel, nil
}
