package dream

import (
	"image/color"
	"math"
)

// Blend selects how a draw call combines with what is already on the surface.
type Blend int

const (
	// BlendSourceOver paints normally.
	BlendSourceOver Blend = iota
	// BlendLighter adds source to destination.
	BlendLighter
	// BlendScreen brightens: 1 - (1-src)(1-dst).
	BlendScreen
)

func (b Blend) String() string {
	switch b {
	case BlendSourceOver:
		return "source-over"
	case BlendLighter:
		return "lighter"
	case BlendScreen:
		return "screen"
	}
	return "unknown"
}

// Stop is one colour stop of a radial gradient. Offset runs from 0 at the
// centre to 1 at the gradient radius.
type Stop struct {
	Offset float64
	Color  color.NRGBA
}

// Point is a position in surface pixels.
type Point struct {
	X, Y float64
}

// Surface is the raster target the renderer draws on. Colours arrive already
// converted to straight-alpha NRGBA.
type Surface interface {
	// Size reports the drawable area in pixels.
	Size() (w, h float64)
	// Fill covers the whole surface with c.
	Fill(c color.NRGBA, b Blend)
	// Glow draws a radial gradient centred on (x, y) reaching radius and
	// clipped to a disc of clip pixels. A clip <= 0 means radius.
	Glow(x, y, radius, clip float64, stops []Stop, b Blend)
	// Stroke draws a polyline of the given width.
	Stroke(path []Point, width float64, c color.NRGBA, b Blend)
}

// GradientAt samples stops at offset t in [0,1].
func GradientAt(stops []Stop, t float64) color.NRGBA {
	if len(stops) == 0 {
		return color.NRGBA{}
	}
	if t <= stops[0].Offset {
		return stops[0].Color
	}
	for i := 1; i < len(stops); i++ {
		if t <= stops[i].Offset {
			a, b := stops[i-1], stops[i]
			span := b.Offset - a.Offset
			if span <= 0 {
				return b.Color
			}
			return lerpNRGBA(a.Color, b.Color, (t-a.Offset)/span)
		}
	}
	return stops[len(stops)-1].Color
}

func lerpNRGBA(a, b color.NRGBA, t float64) color.NRGBA {
	ch := func(x, y uint8) uint8 {
		return uint8(math.Round(float64(x) + (float64(y)-float64(x))*t))
	}
	return color.NRGBA{R: ch(a.R, b.R), G: ch(a.G, b.G), B: ch(a.B, b.B), A: ch(a.A, b.A)}
}
