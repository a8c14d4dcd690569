// Package text measures words for the layout engine and supplies the font
// faces the rasterizer draws with.
package text

import (
	"strconv"
	"strings"
	"sync"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// Font is the subset of a computed style that affects text measurement.
type Font struct {
	Size   float64 `json:"size"`
	Weight string  `json:"weight"`
	Style  string  `json:"style"`
}

// Bold reports whether the weight selects a bold face.
func (f Font) Bold() bool {
	switch f.Weight {
	case "bold", "bolder":
		return true
	}
	n, err := strconv.Atoi(f.Weight)
	return err == nil && n >= 600
}

// Italic reports whether the style selects an italic face.
func (f Font) Italic() bool {
	return f.Style == "italic" || f.Style == "oblique"
}

// Metrics are vertical font metrics in pixels.
type Metrics struct {
	Ascent  float64
	Descent float64
}

// Measurer is the layout engine's view of a font system.
type Measurer interface {
	// Measure returns the advance width of s.
	Measure(f Font, s string) float64
	Metrics(f Font) Metrics
}

// FontConfig holds the font data used for each style combination.
type FontConfig struct {
	Regular    []byte
	Bold       []byte
	Italic     []byte
	BoldItalic []byte
}

// DefaultFontConfig returns the Go font family, which is compiled into the
// binary so measurement never depends on files being present.
func DefaultFontConfig() FontConfig {
	return FontConfig{
		Regular:    goregular.TTF,
		Bold:       gobold.TTF,
		Italic:     goitalic.TTF,
		BoldItalic: gobolditalic.TTF,
	}
}

// FontData returns the font data for the given style combination.
func (fc FontConfig) FontData(bold, italic bool) []byte {
	switch {
	case bold && italic && fc.BoldItalic != nil:
		return fc.BoldItalic
	case bold && fc.Bold != nil:
		return fc.Bold
	case italic && fc.Italic != nil:
		return fc.Italic
	}
	return fc.Regular
}

type faceKey struct {
	size         float64
	bold, italic bool
}

// GoFontMeasurer measures text with real glyph advances, using gg over
// opentype faces. Faces are parsed once and cached per size and style.
// It is safe for concurrent use.
type GoFontMeasurer struct {
	config FontConfig

	mu     sync.Mutex
	parsed map[[2]bool]*opentype.Font
	faces  map[faceKey]font.Face
	dc     *gg.Context
}

func NewGoFontMeasurer() *GoFontMeasurer {
	return NewGoFontMeasurerWithConfig(DefaultFontConfig())
}

func NewGoFontMeasurerWithConfig(config FontConfig) *GoFontMeasurer {
	return &GoFontMeasurer{
		config: config,
		parsed: make(map[[2]bool]*opentype.Font),
		faces:  make(map[faceKey]font.Face),
		dc:     gg.NewContext(1, 1),
	}
}

// Face returns the font face for f, or nil if the font data cannot be
// parsed. Faces are not safe for concurrent use; callers that may race
// with measurement draw through DrawString instead.
func (m *GoFontMeasurer) Face(f Font) font.Face {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.face(f)
}

func (m *GoFontMeasurer) face(f Font) font.Face {
	key := faceKey{size: f.Size, bold: f.Bold(), italic: f.Italic()}
	if face, ok := m.faces[key]; ok {
		return face
	}
	style := [2]bool{key.bold, key.italic}
	otf, ok := m.parsed[style]
	if !ok {
		var err error
		otf, err = opentype.Parse(m.config.FontData(key.bold, key.italic))
		if err != nil {
			otf = nil
		}
		m.parsed[style] = otf
	}
	if otf == nil {
		return nil
	}
	face, err := opentype.NewFace(otf, &opentype.FaceOptions{
		Size:    f.Size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil
	}
	m.faces[key] = face
	return face
}

func (m *GoFontMeasurer) Measure(f Font, s string) float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	face := m.face(f)
	if face == nil {
		// rough estimate, same as a missing font in the rasterizer
		return float64(len([]rune(s))) * f.Size * 0.6
	}
	m.dc.SetFontFace(face)
	w, _ := m.dc.MeasureString(s)
	return w
}

func (m *GoFontMeasurer) Metrics(f Font) Metrics {
	m.mu.Lock()
	defer m.mu.Unlock()
	face := m.face(f)
	if face == nil {
		return Metrics{Ascent: f.Size * 0.8, Descent: f.Size * 0.2}
	}
	fm := face.Metrics()
	return Metrics{
		Ascent:  float64(fm.Ascent) / 64,
		Descent: float64(fm.Descent) / 64,
	}
}

// DrawString draws s on dc in the face for f with its baseline at y. It
// reports false, drawing nothing, when there is no face for f.
func (m *GoFontMeasurer) DrawString(dc *gg.Context, f Font, s string, x, y float64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	face := m.face(f)
	if face == nil {
		return false
	}
	dc.SetFontFace(face)
	dc.DrawString(s, x, y)
	return true
}

// Words splits text on whitespace the way the line breaker does.
func Words(s string) []string {
	return strings.Fields(s)
}
