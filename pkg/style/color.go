package style

import (
	"strconv"
	"strings"
)

// RGBA is a parsed color. A is in [0,1].
type RGBA struct {
	R, G, B uint8
	A       float64
}

var namedColors = map[string]RGBA{
	"red":         {255, 0, 0, 1},
	"green":       {0, 128, 0, 1},
	"blue":        {0, 0, 255, 1},
	"yellow":      {255, 255, 0, 1},
	"cyan":        {0, 255, 255, 1},
	"magenta":     {255, 0, 255, 1},
	"white":       {255, 255, 255, 1},
	"black":       {0, 0, 0, 1},
	"gray":        {128, 128, 128, 1},
	"grey":        {128, 128, 128, 1},
	"orange":      {255, 165, 0, 1},
	"purple":      {128, 0, 128, 1},
	"pink":        {255, 192, 203, 1},
	"brown":       {165, 42, 42, 1},
	"lime":        {0, 255, 0, 1},
	"navy":        {0, 0, 128, 1},
	"teal":        {0, 128, 128, 1},
	"silver":      {192, 192, 192, 1},
	"maroon":      {128, 0, 0, 1},
	"olive":       {128, 128, 0, 1},
	"lightgray":   {211, 211, 211, 1},
	"lightblue":   {173, 216, 230, 1},
	"transparent": {0, 0, 0, 0},
}

// ParseColor parses a named color, #rgb, #rrggbb, or rgb()/rgba().
func ParseColor(s string) (RGBA, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if c, ok := namedColors[s]; ok {
		return c, true
	}
	if strings.HasPrefix(s, "#") {
		return parseHex(s[1:])
	}
	if strings.HasPrefix(s, "rgb") {
		return parseRGBFunc(s)
	}
	return RGBA{}, false
}

// IsTransparent reports whether painting the color would be invisible.
// Unparseable colors count as transparent.
func IsTransparent(s string) bool {
	c, ok := ParseColor(s)
	return !ok || c.A == 0
}

func parseHex(h string) (RGBA, bool) {
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) != 6 {
		return RGBA{}, false
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return RGBA{}, false
	}
	return RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 1}, true
}

func parseRGBFunc(s string) (RGBA, bool) {
	open := strings.IndexByte(s, '(')
	closing := strings.LastIndexByte(s, ')')
	if open < 0 || closing < open {
		return RGBA{}, false
	}
	parts := strings.Split(s[open+1:closing], ",")
	if len(parts) != 3 && len(parts) != 4 {
		return RGBA{}, false
	}
	var ch [3]uint8
	for i := 0; i < 3; i++ {
		n, err := strconv.Atoi(strings.TrimSpace(parts[i]))
		if err != nil || n < 0 || n > 255 {
			return RGBA{}, false
		}
		ch[i] = uint8(n)
	}
	alpha := 1.0
	if len(parts) == 4 {
		a, err := strconv.ParseFloat(strings.TrimSpace(parts[3]), 64)
		if err != nil {
			return RGBA{}, false
		}
		alpha = a
	}
	return RGBA{R: ch[0], G: ch[1], B: ch[2], A: alpha}, true
}
