package layout

import (
	"github.com/Arun03Kumar/browser/pkg/html"
	"github.com/Arun03Kumar/browser/pkg/style"
)

var blockTags = map[string]bool{
	"html": true, "body": true, "div": true, "p": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"form": true, "fieldset": true, "ul": true, "ol": true, "li": true,
	"blockquote": true, "pre": true, "hr": true,
	"section": true, "article": true, "header": true, "footer": true,
	"nav": true, "main": true, "aside": true,
}

var inlineTags = map[string]bool{
	"span": true, "a": true, "strong": true, "em": true, "b": true, "i": true,
	"code": true, "small": true, "label": true, "input": true, "button": true,
}

// isBlockLevel reports whether an element starts a new block, either by
// tag or by its computed display.
func isBlockLevel(n *html.Node) bool {
	if blockTags[n.TagName] {
		return true
	}
	switch n.Style.Value(style.Display) {
	case "block", "list-item":
		return true
	}
	return false
}
