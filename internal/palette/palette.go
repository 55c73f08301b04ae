// Package palette generates seeded HSLA palettes and blends between them.
package palette

import (
	"fmt"
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/iburimskiy/dreamseed/internal/rng"
)

// Size is the number of colours in every generated palette.
const Size = 5

// Color is an HSLA colour. H is in degrees [0,360), S and L are percentages,
// A is in [0,1].
type Color struct {
	H, S, L, A float64
}

// Palette is an ordered colour sequence.
type Palette []Color

// Generate draws a palette from src. It consumes exactly 4+4*Size values.
func Generate(src rng.Source) Palette {
	baseHue := src.Float64() * 360
	spread := rng.Range(src, 30, 120)
	saturation := rng.Range(src, 65, 95)
	lightness := rng.Range(src, 40, 70)

	p := make(Palette, Size)
	for i := range p {
		offset := (float64(i)/Size-0.5)*spread + src.Float64()*10
		p[i] = Color{
			H: wrapHue(baseHue + offset),
			S: clamp(saturation+src.Float64()*10-5, 55, 100),
			L: clamp(lightness+src.Float64()*20-10, 25, 85),
			A: rng.Range(src, 0.55, 0.9),
		}
	}
	return p
}

// At resolves i modulo the palette length, so any layer index is valid.
func (p Palette) At(i int) Color {
	if len(p) == 0 {
		return Color{}
	}
	i %= len(p)
	if i < 0 {
		i += len(p)
	}
	return p[i]
}

// Clone returns an independent copy.
func (p Palette) Clone() Palette {
	out := make(Palette, len(p))
	copy(out, p)
	return out
}

// Lerp blends a toward b. Hue travels the shorter way round the circle.
func Lerp(a, b Color, t float64) Color {
	if t <= 0 {
		return a
	}
	if t >= 1 {
		return b
	}
	diff := math.Mod(b.H-a.H+540, 360) - 180
	return Color{
		H: wrapHue(a.H + diff*t),
		S: mix(a.S, b.S, t),
		L: mix(a.L, b.L, t),
		A: mix(a.A, b.A, t),
	}
}

// LerpPalette blends two palettes slot by slot. Slots missing from b keep a.
func LerpPalette(a, b Palette, t float64) Palette {
	out := a.Clone()
	for i := range out {
		if i < len(b) {
			out[i] = Lerp(a[i], b[i], t)
		}
	}
	return out
}

// WithAlpha returns c with its alpha replaced.
func (c Color) WithAlpha(a float64) Color {
	c.A = a
	return c
}

// NRGBA converts c for a raster backend.
func (c Color) NRGBA() color.NRGBA {
	r, g, b := colorful.Hsl(wrapHue(c.H), clamp(c.S/100, 0, 1), clamp(c.L/100, 0, 1)).Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: uint8(math.Round(clamp(c.A, 0, 1) * 255))}
}

// String renders c as CSS hsla() text.
func (c Color) String() string {
	return fmt.Sprintf("hsla(%.2f, %.2f%%, %.2f%%, %.3f)", c.H, c.S, c.L, c.A)
}

func wrapHue(h float64) float64 {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	return h
}

func mix(a, b, t float64) float64 {
	return a + (b-a)*t
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// Rotate returns c with its hue turned by deg degrees.
func (c Color) Rotate(deg float64) Color {
	c.H = wrapHue(c.H + deg)
	return c
}
