package text

import (
	"sync"
	"testing"

	"github.com/fogleman/gg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFontStyleFlags(t *testing.T) {
	assert.True(t, Font{Weight: "bold"}.Bold())
	assert.True(t, Font{Weight: "700"}.Bold())
	assert.False(t, Font{Weight: "400"}.Bold())
	assert.False(t, Font{Weight: "normal"}.Bold())
	assert.True(t, Font{Style: "italic"}.Italic())
	assert.False(t, Font{Style: "normal"}.Italic())
}

func TestMonospace(t *testing.T) {
	m := Monospace{}
	f := Font{Size: 16}
	assert.Equal(t, 40.0, m.Measure(f, "hello"))
	assert.Equal(t, 16.0, m.Measure(f, "日本"), "counts runes, not bytes")
	assert.Equal(t, Metrics{Ascent: 12.8, Descent: 3.2}, m.Metrics(f))
	assert.Equal(t, 10.0, Monospace{Advance: 1}.Measure(Font{Size: 10}, "x"))
}

func TestGoFontMeasurer(t *testing.T) {
	m := NewGoFontMeasurer()
	regular := Font{Size: 16, Weight: "normal", Style: "normal"}

	w := m.Measure(regular, "hello")
	assert.Greater(t, w, 0.0)
	assert.Less(t, w, 16.0*5)
	assert.Greater(t, m.Measure(regular, "hello world"), w)
	assert.Zero(t, m.Measure(regular, ""))

	big := regular
	big.Size = 32
	assert.InDelta(t, 2*w, m.Measure(big, "hello"), 1.0)

	bold := regular
	bold.Weight = "bold"
	assert.GreaterOrEqual(t, m.Measure(bold, "hello"), w)

	metrics := m.Metrics(regular)
	assert.Greater(t, metrics.Ascent, 0.0)
	assert.Greater(t, metrics.Descent, 0.0)
	assert.Less(t, metrics.Ascent+metrics.Descent, 16.0*1.5)

	require.NotNil(t, m.Face(regular))
	assert.Same(t, m.Face(regular), m.Face(regular), "faces are cached")
}

func TestGoFontMeasurer_BadFontFallsBack(t *testing.T) {
	m := NewGoFontMeasurerWithConfig(FontConfig{Regular: []byte("not a font")})
	f := Font{Size: 10}
	assert.Nil(t, m.Face(f))
	assert.InDelta(t, 12.0, m.Measure(f, "ab"), 1e-9)
	assert.Equal(t, Metrics{Ascent: 8, Descent: 2}, m.Metrics(f))
}

func TestWords(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, Words("  a\tb\n c "))
	assert.Empty(t, Words("   "))
}

func TestGoFontMeasurer_DrawWhileMeasuring(t *testing.T) {
	m := NewGoFontMeasurer()
	f := Font{Size: 16}
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			dc := gg.NewContext(100, 30)
			for j := 0; j < 50; j++ {
				assert.True(t, m.DrawString(dc, f, "hello", 0, 20))
			}
		}()
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				assert.Greater(t, m.Measure(f, "hello"), 0.0)
			}
		}()
	}
	wg.Wait()

	bad := NewGoFontMeasurerWithConfig(FontConfig{Regular: []byte("not a font")})
	assert.False(t, bad.DrawString(gg.NewContext(1, 1), f, "x", 0, 0))
}
