// Package term presents dream frames in a terminal using half-block cells.
package term

import (
	"image/color"
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/iburimskiy/dreamseed/internal/dream"
)

// halfBlock paints the upper half of a cell with the foreground colour.
const halfBlock = '▀'

type rgb struct {
	r, g, b float64
}

// Surface is a software dream.Surface. Each terminal cell holds two buffer
// pixels stacked vertically, and each buffer pixel stands for Scale virtual
// pixels so glow radii keep their on-screen proportions.
type Surface struct {
	Scale float64

	cols, rows int
	w, h       int
	pix        []rgb
}

// NewSurface creates a surface for a cols x rows cell grid.
func NewSurface(cols, rows int, scale float64) *Surface {
	if scale <= 0 {
		scale = 1
	}
	s := &Surface{Scale: scale}
	s.Resize(cols, rows)
	return s
}

// Resize reallocates the buffer, clearing it.
func (s *Surface) Resize(cols, rows int) {
	s.cols, s.rows = max(cols, 1), max(rows, 1)
	s.w, s.h = s.cols, s.rows*2
	s.pix = make([]rgb, s.w*s.h)
}

// Cells returns the grid size.
func (s *Surface) Cells() (cols, rows int) { return s.cols, s.rows }

func (s *Surface) Size() (float64, float64) {
	return float64(s.w) * s.Scale, float64(s.h) * s.Scale
}

// At returns buffer pixel (x, y).
func (s *Surface) At(x, y int) color.RGBA {
	if x < 0 || y < 0 || x >= s.w || y >= s.h {
		return color.RGBA{}
	}
	p := s.pix[y*s.w+x]
	return color.RGBA{R: to8(p.r), G: to8(p.g), B: to8(p.b), A: 0xff}
}

func (s *Surface) Fill(c color.NRGBA, b dream.Blend) {
	src, a := unpack(c)
	for i := range s.pix {
		s.pix[i] = blend(s.pix[i], src, a, b)
	}
}

func (s *Surface) Glow(x, y, radius, clip float64, stops []dream.Stop, b dream.Blend) {
	if radius <= 0 || len(stops) == 0 {
		return
	}
	if clip <= 0 {
		clip = radius
	}
	limit := math.Min(clip, radius)

	x0, x1 := s.span(x-limit, x+limit, s.w)
	y0, y1 := s.span(y-limit, y+limit, s.h)
	for py := y0; py <= y1; py++ {
		vy := (float64(py)+0.5)*s.Scale - y
		for px := x0; px <= x1; px++ {
			vx := (float64(px)+0.5)*s.Scale - x
			d := math.Hypot(vx, vy)
			if d > limit {
				continue
			}
			src, a := unpack(dream.GradientAt(stops, d/radius))
			i := py*s.w + px
			s.pix[i] = blend(s.pix[i], src, a, b)
		}
	}
}

// Stroke walks each segment in half-pixel steps. Lines thinner than a buffer
// pixel are drawn with proportionally lower alpha.
func (s *Surface) Stroke(path []dream.Point, width float64, c color.NRGBA, b dream.Blend) {
	if len(path) < 2 || width <= 0 {
		return
	}
	src, a := unpack(c)
	a *= math.Min(1, width/s.Scale)

	visited := make(map[int]struct{})
	for i := 1; i < len(path); i++ {
		p, q := path[i-1], path[i]
		steps := int(math.Ceil(math.Hypot(q.X-p.X, q.Y-p.Y)/s.Scale*2)) + 1
		for k := 0; k <= steps; k++ {
			t := float64(k) / float64(steps)
			px := int(math.Floor((p.X + (q.X-p.X)*t) / s.Scale))
			py := int(math.Floor((p.Y + (q.Y-p.Y)*t) / s.Scale))
			if px < 0 || py < 0 || px >= s.w || py >= s.h {
				continue
			}
			idx := py*s.w + px
			if _, ok := visited[idx]; ok {
				continue
			}
			visited[idx] = struct{}{}
			s.pix[idx] = blend(s.pix[idx], src, a, b)
		}
	}
}

// Show copies the buffer to screen and flushes it.
func (s *Surface) Show(screen tcell.Screen) {
	for cy := 0; cy < s.rows; cy++ {
		for cx := 0; cx < s.cols; cx++ {
			top := s.pix[(cy*2)*s.w+cx]
			bottom := s.pix[(cy*2+1)*s.w+cx]
			style := tcell.StyleDefault.
				Foreground(tcell.NewRGBColor(int32(to8(top.r)), int32(to8(top.g)), int32(to8(top.b)))).
				Background(tcell.NewRGBColor(int32(to8(bottom.r)), int32(to8(bottom.g)), int32(to8(bottom.b))))
			screen.SetContent(cx, cy, halfBlock, nil, style)
		}
	}
	screen.Show()
}

// span converts a virtual interval to clamped buffer indices.
func (s *Surface) span(lo, hi float64, n int) (int, int) {
	a := int(math.Floor(lo / s.Scale))
	b := int(math.Floor(hi / s.Scale))
	return max(a, 0), min(b, n-1)
}

func unpack(c color.NRGBA) (rgb, float64) {
	return rgb{float64(c.R) / 0xff, float64(c.G) / 0xff, float64(c.B) / 0xff}, float64(c.A) / 0xff
}

func blend(dst, src rgb, a float64, b dream.Blend) rgb {
	ch := func(d, s float64) float64 {
		s *= a
		switch b {
		case dream.BlendLighter:
			return math.Min(1, d+s)
		case dream.BlendScreen:
			return s + d*(1-s)
		}
		return s + d*(1-a)
	}
	return rgb{ch(dst.r, src.r), ch(dst.g, src.g), ch(dst.b, src.b)}
}

func to8(v float64) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(1, v)) * 0xff))
}
