package html

import "golang.org/x/net/html/atom"

// headOnly elements open an implicit <head> instead of a <body>.
var headOnly = map[atom.Atom]bool{
	atom.Base:     true,
	atom.Basefont: true,
	atom.Bgsound:  true,
	atom.Noscript: true,
	atom.Link:     true,
	atom.Meta:     true,
	atom.Title:    true,
	atom.Style:    true,
	atom.Script:   true,
}

// selfClosing elements never have children and are never pushed on the
// open-element stack.
var selfClosing = map[atom.Atom]bool{
	atom.Area:   true,
	atom.Base:   true,
	atom.Br:     true,
	atom.Col:    true,
	atom.Embed:  true,
	atom.Hr:     true,
	atom.Img:    true,
	atom.Input:  true,
	atom.Link:   true,
	atom.Meta:   true,
	atom.Param:  true,
	atom.Source: true,
	atom.Track:  true,
	atom.Wbr:    true,
}

// rawText elements keep their content verbatim up to the matching end tag.
var rawText = map[atom.Atom]bool{
	atom.Script: true,
	atom.Style:  true,
}

func lookup(tag string) atom.Atom {
	return atom.Lookup([]byte(tag))
}

// IsHeadOnly reports whether tag belongs in the document head.
func IsHeadOnly(tag string) bool { return headOnly[lookup(tag)] }

// IsSelfClosing reports whether tag is a void element.
func IsSelfClosing(tag string) bool { return selfClosing[lookup(tag)] }

// IsRawText reports whether tag's content is not parsed as markup.
func IsRawText(tag string) bool { return rawText[lookup(tag)] }
