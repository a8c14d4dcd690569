package style

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestMap_KnownAndExtra(t *testing.T) {
	var m Map
	m.Set("color", "red")
	m.Set("line-height", "2")
	m.SetValue(Margin, "4px")

	v, ok := m.Get("color")
	assert.True(t, ok)
	assert.Equal(t, "red", v)
	assert.True(t, m.Has(Color))
	assert.False(t, m.Has(Padding))

	_, ok = m.Get("padding")
	assert.False(t, ok)
	v, ok = m.Get("line-height")
	assert.True(t, ok)
	assert.Equal(t, "2", v)

	assert.Equal(t, 3, m.Len())
	want := map[string]string{"color": "red", "line-height": "2", "margin": "4px"}
	if diff := cmp.Diff(want, m.AsMap()); diff != "" {
		t.Errorf("AsMap mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, "color: red; line-height: 2; margin: 4px", m.String())
}

func TestProperty_Inheritance(t *testing.T) {
	for _, p := range Inherited {
		assert.True(t, p.IsInherited(), p.String())
		assert.Contains(t, RootDefaults, p)
	}
	for _, p := range NonInherited {
		assert.False(t, p.IsInherited(), p.String())
		assert.Contains(t, Defaults, p)
	}
	p, ok := Lookup("background-color")
	assert.True(t, ok)
	assert.Equal(t, BackgroundColor, p)
	_, ok = Lookup("float")
	assert.False(t, ok)
}

func TestParseLength(t *testing.T) {
	tests := []struct {
		in   string
		base float64
		want float64
		ok   bool
	}{
		{"100px", 16, 100, true},
		{"12", 16, 12, true},
		{"50%", 20, 10, true},
		{"1.5em", 16, 24, true},
		{"2rem", 40, 32, true},
		{"12pt", 16, 16, true},
		{" 0 ", 16, 0, true},
		{"auto", 16, 0, false},
		{"", 16, 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseLength(tt.in, tt.base)
		assert.Equal(t, tt.ok, ok, tt.in)
		assert.InDelta(t, tt.want, got, 1e-9, tt.in)
	}
}

func TestParseEdges(t *testing.T) {
	assert.Equal(t, Edges{5, 5, 5, 5}, ParseEdges("5px", 16))
	assert.Equal(t, Edges{16, 0, 16, 0}, ParseEdges("16px 0", 16))
	assert.Equal(t, Edges{1, 2, 3, 2}, ParseEdges("1px 2px 3px", 16))
	assert.Equal(t, Edges{1, 2, 3, 4}, ParseEdges("1px 2px 3px 4px", 16))
	assert.Equal(t, Edges{0, 8, 0, 8}, ParseEdges("auto 50%", 16))
	assert.Equal(t, Edges{}, ParseEdges("", 16))
}

func TestBoxEdges_LonghandsWin(t *testing.T) {
	var m Map
	m.Set("margin", "10px")
	m.Set("margin-left", "2em")
	e := m.BoxEdges("margin", 16)
	assert.Equal(t, Edges{10, 10, 10, 32}, e)
	assert.Equal(t, 42.0, e.Horizontal())
	assert.Equal(t, 20.0, e.Vertical())
}

func TestBorder(t *testing.T) {
	var m Map
	m.SetValue(Color, "#000000")
	m.SetValue(Border, "2px solid red")
	w, c := m.Border(16)
	assert.Equal(t, 2.0, w)
	assert.Equal(t, "red", c)

	m.SetValue(Border, "none")
	w, _ = m.Border(16)
	assert.Zero(t, w)

	m.SetValue(Border, "thin solid")
	w, c = m.Border(16)
	assert.Equal(t, 1.0, w)
	assert.Equal(t, "#000000", c, "falls back to the text color")

	m.Set("border-width", "3px")
	m.Set("border-color", "blue")
	w, c = m.Border(16)
	assert.Equal(t, 3.0, w)
	assert.Equal(t, "blue", c)
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want RGBA
		ok   bool
	}{
		{"red", RGBA{255, 0, 0, 1}, true},
		{"#fff", RGBA{255, 255, 255, 1}, true},
		{"#0066cc", RGBA{0, 0x66, 0xcc, 1}, true},
		{"rgb(1, 2, 3)", RGBA{1, 2, 3, 1}, true},
		{"rgba(1,2,3,0.5)", RGBA{1, 2, 3, 0.5}, true},
		{"transparent", RGBA{}, true},
		{"#12", RGBA{}, false},
		{"rgb(300,0,0)", RGBA{}, false},
		{"bogus", RGBA{}, false},
	}
	for _, tt := range tests {
		got, ok := ParseColor(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
	assert.True(t, IsTransparent("transparent"))
	assert.True(t, IsTransparent("nonsense"))
	assert.False(t, IsTransparent("white"))
}
