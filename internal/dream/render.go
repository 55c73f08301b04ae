package dream

import (
	"image/color"
	"math"

	"github.com/iburimskiy/dreamseed/internal/config"
	"github.com/iburimskiy/dreamseed/internal/palette"
)

// trailColor is the near-black wash laid over the previous frame.
var trailColor = color.NRGBA{R: 3, G: 2, B: 12}

// curveSegments is the number of samples per strand span.
const curveSegments = 12

// Render draws the current scene onto dst: trail fade, particles, bursts,
// strands, then auras.
func (s *Session) Render(dst Surface) {
	if s.state == Uninitialized || dst == nil {
		return
	}
	w, h := dst.Size()
	pal := s.Palette()

	fade := config.TrailFade * clamp(s.tempo, 0.35, 2.4)
	trail := trailColor
	trail.A = uint8(math.Round(clamp(fade, 0, 1) * 255))
	dst.Fill(trail, BlendSourceOver)

	s.drawParticles(dst, pal, w, h)
	s.drawBursts(dst, pal, w, h)
	s.drawStrands(dst, pal, w, h)
	s.drawAuras(dst, pal, w, h)
}

func (s *Session) drawParticles(dst Surface, pal palette.Palette, w, h float64) {
	for _, p := range s.particles {
		mixT := math.Pow(math.Sin(s.time*0.8+p.Phase)*0.5+0.5, 1.5)
		c := palette.Lerp(pal.At(p.Layer), pal.At(p.Layer+1), mixT)
		r := mix(0.5, 2.4, p.Scale) * (1 + math.Sin(s.time*0.9*p.Pulse+p.Phase)*0.35)

		dst.Glow(p.X*w, p.Y*h, r*40, r*mix(18, 48, p.Glow), []Stop{
			{Offset: 0, Color: c.WithAlpha(1).NRGBA()},
			{Offset: 1, Color: c.WithAlpha(0).NRGBA()},
		}, BlendLighter)
	}
}

func (s *Session) drawBursts(dst Surface, pal palette.Palette, w, h float64) {
	extent := math.Max(w, h)
	for _, b := range s.bursts {
		pulse := math.Sin((s.time+b.Delay)*b.Pulse)*0.5 + 0.5
		radius := mix(120, extent*b.Radius, pulse)
		c := pal.At(b.Layer)
		dst.Glow(b.X*w, b.Y*h, radius, 0, []Stop{
			{Offset: 0, Color: c.WithAlpha(0.95).NRGBA()},
			{Offset: 0.6, Color: c.WithAlpha(0.35).NRGBA()},
			{Offset: 1, Color: c.WithAlpha(0).NRGBA()},
		}, BlendScreen)
	}
}

func (s *Session) drawStrands(dst Surface, pal palette.Palette, w, h float64) {
	for _, st := range s.strands {
		if len(st.Points) < 2 {
			continue
		}
		life := math.Max(st.Life, 1e-6)
		envelope := math.Sin(math.Pi * clamp(st.Age/life, 0, 1))
		intensity := math.Sin(s.time*st.Pulse+st.Points[0].Phase)*0.5 + 0.5
		alpha := mix(0.12, 0.7, intensity) * envelope * (0.8 + s.pointer.Rhythm*0.2)
		if alpha <= 0.002 {
			continue
		}
		width := mix(0.8, 3.6, intensity) * (1 + st.Arc*0.5)
		c := palette.Lerp(pal.At(st.Layer), pal.At(st.Layer+1), intensity)

		ctrl := make([]Point, len(st.Points))
		for i, pt := range st.Points {
			sway := math.Sin(s.time*st.Wobble+pt.Phase) * st.Scatter * 0.015
			ctrl[i] = Point{X: (pt.X + sway) * w, Y: (pt.Y - sway) * h}
		}
		dst.Stroke(CatmullRom(ctrl, curveSegments), width, c.WithAlpha(alpha).NRGBA(), BlendLighter)
	}
}

func (s *Session) drawAuras(dst Surface, pal palette.Palette, w, h float64) {
	extent := math.Max(w, h)
	for i, a := range s.auras {
		cx := math.Sin(s.time*0.2*a.Spin+float64(i))*0.3 + 0.5
		cy := math.Cos(s.time*0.25*a.Spin+a.Phase)*0.3 + 0.5
		radius := mix(0.2, a.Radius+s.pointer.Strength*0.05, math.Sin(s.time*a.Pulse+a.Phase)*0.5+0.5) * extent
		c := pal.At(i).Rotate((a.HueShift - 0.5) * 40)
		dst.Glow(cx*w, cy*h, radius, 0, []Stop{
			{Offset: 0, Color: c.WithAlpha(0.4).NRGBA()},
			{Offset: 1, Color: c.WithAlpha(0).NRGBA()},
		}, BlendScreen)
	}
}

// CatmullRom samples a smooth curve through ctrl, segments points per span.
// The curve passes through every control point.
func CatmullRom(ctrl []Point, segments int) []Point {
	if len(ctrl) < 2 || segments < 1 {
		return append([]Point(nil), ctrl...)
	}
	out := make([]Point, 0, (len(ctrl)-1)*segments+1)
	last := len(ctrl) - 1
	for i := 0; i < last; i++ {
		p0 := ctrl[max(i-1, 0)]
		p1 := ctrl[i]
		p2 := ctrl[i+1]
		p3 := ctrl[min(i+2, last)]
		for j := 0; j < segments; j++ {
			t := float64(j) / float64(segments)
			out = append(out, Point{
				X: catmull(p0.X, p1.X, p2.X, p3.X, t),
				Y: catmull(p0.Y, p1.Y, p2.Y, p3.Y, t),
			})
		}
	}
	return append(out, ctrl[last])
}

func catmull(p0, p1, p2, p3, t float64) float64 {
	t2 := t * t
	t3 := t2 * t
	return 0.5 * (2*p1 + (-p0+p2)*t + (2*p0-5*p1+4*p2-p3)*t2 + (-p0+3*p1-3*p2+p3)*t3)
}
