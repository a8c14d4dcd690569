// Package style holds the per-node style map shared by the cascade and
// layout engines.
//
// The cascade only knows a small, fixed set of properties. They are kept in
// a fixed-size table indexed by Property; any other property name ends up in
// an overflow map so unknown declarations pass through untouched.
package style

import (
	"sort"
	"strings"
)

// Property enumerates the properties the cascade resolves explicitly.
type Property int

const (
	FontSize Property = iota
	FontStyle
	FontWeight
	Color
	BackgroundColor
	Margin
	Padding
	Border
	Display
	TextDecoration

	numProperties
)

var propertyNames = [numProperties]string{
	FontSize:        "font-size",
	FontStyle:       "font-style",
	FontWeight:      "font-weight",
	Color:           "color",
	BackgroundColor: "background-color",
	Margin:          "margin",
	Padding:         "padding",
	Border:          "border",
	Display:         "display",
	TextDecoration:  "text-decoration",
}

var propertyByName = func() map[string]Property {
	m := make(map[string]Property, numProperties)
	for p, name := range propertyNames {
		m[name] = Property(p)
	}
	return m
}()

// Inherited lists the inherited properties in resolution order.
var Inherited = []Property{FontSize, FontStyle, FontWeight, Color}

// NonInherited lists the properties reset on every element.
var NonInherited = []Property{BackgroundColor, Margin, Padding, Border, Display, TextDecoration}

// RootDefaults are the inherited values used when a node has no parent.
var RootDefaults = map[Property]string{
	FontSize:   "16px",
	FontStyle:  "normal",
	FontWeight: "normal",
	Color:      "#000000",
}

// Defaults are the values non-inherited properties start from.
var Defaults = map[Property]string{
	BackgroundColor: "transparent",
	Margin:          "0px",
	Padding:         "0px",
	Border:          "none",
	Display:         "inline",
	TextDecoration:  "none",
}

// Lookup returns the enumerated property for a (lowercase) name.
func Lookup(name string) (Property, bool) {
	p, ok := propertyByName[name]
	return p, ok
}

func (p Property) String() string {
	if p < 0 || p >= numProperties {
		return "unknown"
	}
	return propertyNames[p]
}

// IsInherited reports whether children take this property from their parent.
func (p Property) IsInherited() bool {
	switch p {
	case FontSize, FontStyle, FontWeight, Color:
		return true
	}
	return false
}

// Map is a resolved style. The zero value is an empty map ready to use.
type Map struct {
	known [numProperties]string
	set   uint32
	extra map[string]string
}

// Value returns the value of an enumerated property, or "" if unset.
func (m *Map) Value(p Property) string {
	return m.known[p]
}

// Has reports whether an enumerated property has been set.
func (m *Map) Has(p Property) bool {
	return m.set&(1<<uint(p)) != 0
}

// SetValue stores an enumerated property.
func (m *Map) SetValue(p Property, value string) {
	m.known[p] = value
	m.set |= 1 << uint(p)
}

// Get looks a property up by name, enumerated or not.
func (m *Map) Get(name string) (string, bool) {
	if p, ok := Lookup(name); ok {
		return m.known[p], m.Has(p)
	}
	v, ok := m.extra[name]
	return v, ok
}

// Set stores a property by name. Names are expected to be lowercase already.
func (m *Map) Set(name, value string) {
	if p, ok := Lookup(name); ok {
		m.SetValue(p, value)
		return
	}
	if m.extra == nil {
		m.extra = make(map[string]string)
	}
	m.extra[name] = value
}

// Len returns the number of properties set.
func (m *Map) Len() int {
	n := len(m.extra)
	for p := Property(0); p < numProperties; p++ {
		if m.Has(p) {
			n++
		}
	}
	return n
}

// Names returns the names of all set properties, sorted.
func (m *Map) Names() []string {
	names := make([]string, 0, m.Len())
	for p := Property(0); p < numProperties; p++ {
		if m.Has(p) {
			names = append(names, p.String())
		}
	}
	for name := range m.extra {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AsMap copies the style into a plain map, mostly for tests and dumps.
func (m *Map) AsMap() map[string]string {
	out := make(map[string]string, m.Len())
	for _, name := range m.Names() {
		v, _ := m.Get(name)
		out[name] = v
	}
	return out
}

// String renders the style as a declaration list in name order.
func (m *Map) String() string {
	var sb strings.Builder
	for i, name := range m.Names() {
		if i > 0 {
			sb.WriteString("; ")
		}
		v, _ := m.Get(name)
		sb.WriteString(name)
		sb.WriteString(": ")
		sb.WriteString(v)
	}
	return sb.String()
}
