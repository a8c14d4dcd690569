package style

import (
	"strconv"
	"strings"
)

// BaseFontSize is the reference size for percentage and em lengths in layout.
const BaseFontSize = 16.0

// ParseLength parses a length value ("100px", "100", "50%", "1.5em").
// Percentages and em units are resolved against base.
func ParseLength(val string, base float64) (float64, bool) {
	val = strings.ToLower(strings.TrimSpace(val))
	if val == "" {
		return 0, false
	}
	scale := 1.0
	switch {
	case strings.HasSuffix(val, "px"):
		val = strings.TrimSuffix(val, "px")
	case strings.HasSuffix(val, "%"):
		val = strings.TrimSuffix(val, "%")
		scale = base / 100
	case strings.HasSuffix(val, "rem"):
		val = strings.TrimSuffix(val, "rem")
		scale = BaseFontSize
	case strings.HasSuffix(val, "em"):
		val = strings.TrimSuffix(val, "em")
		scale = base
	case strings.HasSuffix(val, "pt"):
		val = strings.TrimSuffix(val, "pt")
		scale = 4.0 / 3.0
	}
	num, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return 0, false
	}
	return num * scale, true
}

// Pixels formats a pixel length the way resolved styles store it.
func Pixels(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "px"
}

// Edges holds the four sides of a margin, padding or border.
type Edges struct {
	Top    float64
	Right  float64
	Bottom float64
	Left   float64
}

// Horizontal returns Left + Right.
func (e Edges) Horizontal() float64 { return e.Left + e.Right }

// Vertical returns Top + Bottom.
func (e Edges) Vertical() float64 { return e.Top + e.Bottom }

// ParseEdges expands a one- to four-value box shorthand.
// Values that do not parse (auto, inherit, garbage) count as zero.
func ParseEdges(value string, base float64) Edges {
	parts := strings.Fields(value)
	v := make([]float64, len(parts))
	for i, p := range parts {
		v[i], _ = ParseLength(p, base)
	}
	switch len(v) {
	case 1:
		return Edges{v[0], v[0], v[0], v[0]}
	case 2:
		return Edges{Top: v[0], Right: v[1], Bottom: v[0], Left: v[1]}
	case 3:
		return Edges{Top: v[0], Right: v[1], Bottom: v[2], Left: v[1]}
	case 4:
		return Edges{Top: v[0], Right: v[1], Bottom: v[2], Left: v[3]}
	}
	return Edges{}
}

// BoxEdges resolves a box property from its shorthand and any longhands
// (prefix-top, prefix-right, ...) present in the map. Longhands win.
func (m *Map) BoxEdges(prefix string, base float64) Edges {
	var e Edges
	if v, ok := m.Get(prefix); ok {
		e = ParseEdges(v, base)
	}
	sides := []struct {
		name string
		dst  *float64
	}{
		{"-top", &e.Top}, {"-right", &e.Right}, {"-bottom", &e.Bottom}, {"-left", &e.Left},
	}
	for _, side := range sides {
		if v, ok := m.Get(prefix + side.name); ok {
			if n, ok := ParseLength(v, base); ok {
				*side.dst = n
			}
		}
	}
	return e
}

var borderWidthKeywords = map[string]float64{
	"thin":   1,
	"medium": 3,
	"thick":  5,
}

// BorderWidth extracts the width from a border shorthand such as
// "2px inset #cccccc". "none" and "hidden" mean no border.
func BorderWidth(value string, base float64) float64 {
	for _, part := range strings.Fields(value) {
		switch part {
		case "none", "hidden":
			return 0
		}
		if w, ok := borderWidthKeywords[part]; ok {
			return w
		}
		if w, ok := ParseLength(part, base); ok {
			return w
		}
	}
	return 0
}

// BorderColor extracts the color from a border shorthand, if any.
func BorderColor(value string) (string, bool) {
	for _, part := range strings.Fields(value) {
		if _, ok := ParseColor(part); ok {
			return part, true
		}
	}
	return "", false
}

// Border resolves the uniform border width and color of a style, honoring
// the border-width and border-color longhands.
func (m *Map) Border(base float64) (width float64, color string) {
	border := m.Value(Border)
	width = BorderWidth(border, base)
	color, _ = BorderColor(border)
	if v, ok := m.Get("border-width"); ok {
		width = BorderWidth(v, base)
	}
	if v, ok := m.Get("border-color"); ok {
		color = v
	}
	if color == "" {
		color = m.Value(Color)
	}
	return width, color
}
