package text

import "unicode/utf8"

// DefaultAdvance is the per-character advance of Monospace, in ems.
const DefaultAdvance = 0.5

// Monospace is a deterministic measurer: every rune advances by
// Advance × size, ascent is 0.8 × size and descent 0.2 × size.
// Tests use it so expected coordinates can be computed by hand.
type Monospace struct {
	Advance float64
}

func (m Monospace) advance() float64 {
	if m.Advance == 0 {
		return DefaultAdvance
	}
	return m.Advance
}

func (m Monospace) Measure(f Font, s string) float64 {
	return float64(utf8.RuneCountInString(s)) * f.Size * m.advance()
}

func (m Monospace) Metrics(f Font) Metrics {
	return Metrics{Ascent: 0.8 * f.Size, Descent: 0.2 * f.Size}
}
