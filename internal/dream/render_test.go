package dream

import (
	"image/color"
	"math"
	"testing"
)

type op struct {
	kind   string
	blend  Blend
	x, y   float64
	radius float64
	clip   float64
	stops  []Stop
	path   []Point
	width  float64
	color  color.NRGBA
}

// recorder is a Surface that keeps every call.
type recorder struct {
	w, h float64
	ops  []op
}

func (r *recorder) Size() (float64, float64) { return r.w, r.h }

func (r *recorder) Fill(c color.NRGBA, b Blend) {
	r.ops = append(r.ops, op{kind: "fill", color: c, blend: b})
}

func (r *recorder) Glow(x, y, radius, clip float64, stops []Stop, b Blend) {
	r.ops = append(r.ops, op{kind: "glow", x: x, y: y, radius: radius, clip: clip, stops: stops, blend: b})
}

func (r *recorder) Stroke(path []Point, width float64, c color.NRGBA, b Blend) {
	r.ops = append(r.ops, op{kind: "stroke", path: path, width: width, color: c, blend: b})
}

func (r *recorder) count(kind string) int {
	n := 0
	for _, o := range r.ops {
		if o.kind == kind {
			n++
		}
	}
	return n
}

func TestRenderOrderAndBlending(t *testing.T) {
	s := New(42)
	rec := &recorder{w: 1280, h: 720}
	s.Tick(0.016, rec)

	if len(rec.ops) == 0 || rec.ops[0].kind != "fill" {
		t.Fatal("frame must start with the trail fade")
	}
	if rec.ops[0].blend != BlendSourceOver {
		t.Errorf("trail fade blend = %v", rec.ops[0].blend)
	}
	for i, o := range rec.ops[1:] {
		if o.blend != BlendLighter && o.blend != BlendScreen {
			t.Fatalf("op %d (%s) uses %v", i+1, o.kind, o.blend)
		}
	}

	st := s.Stats()
	wantGlows := st.Particles + st.Bursts + len(s.auras)
	if got := rec.count("glow"); got != wantGlows {
		t.Errorf("glows = %d, want %d", got, wantGlows)
	}
	if got := rec.count("stroke"); got > st.Strands {
		t.Errorf("strokes = %d, more than %d strands", got, st.Strands)
	}
	if rec.count("fill") != 1 {
		t.Error("exactly one fill per frame")
	}

	// particles first with additive blending, auras last with screen
	if rec.ops[1].blend != BlendLighter {
		t.Error("particles should draw additively")
	}
	if last := rec.ops[len(rec.ops)-1]; last.kind != "glow" || last.blend != BlendScreen {
		t.Errorf("last op should be an aura glow, got %s/%v", last.kind, last.blend)
	}
}

func TestRenderTrailFadeScalesWithTempo(t *testing.T) {
	slow, fast := New(4), New(4)
	slow.tempo, fast.tempo = 0.3, 2.0
	a, b := &recorder{w: 100, h: 100}, &recorder{w: 100, h: 100}
	slow.Render(a)
	fast.Render(b)
	if a.ops[0].color.A >= b.ops[0].color.A {
		t.Errorf("fade alpha should grow with tempo: %d vs %d", a.ops[0].color.A, b.ops[0].color.A)
	}
	if want := uint8(math.Round(0.12 * 0.35 * 255)); a.ops[0].color.A != want {
		t.Errorf("slow fade alpha = %d, want %d", a.ops[0].color.A, want)
	}
}

func TestRenderProducesFiniteGeometry(t *testing.T) {
	s := New(99)
	s.SetPointer(0.5, 0.5, true, 1)
	rec := &recorder{w: 640, h: 480}
	for i := 0; i < 120; i++ {
		rec.ops = rec.ops[:0]
		s.Tick(0.033, rec)
	}
	finite := func(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
	for _, o := range rec.ops {
		switch o.kind {
		case "glow":
			if !finite(o.x) || !finite(o.y) || !finite(o.radius) || o.radius <= 0 {
				t.Fatalf("bad glow %+v", o)
			}
			if o.stops[len(o.stops)-1].Color.A != 0 {
				t.Fatal("glows should fade to transparent at their edge")
			}
		case "stroke":
			if o.width <= 0 || len(o.path) < 2 {
				t.Fatalf("bad stroke width %v len %d", o.width, len(o.path))
			}
			for _, p := range o.path {
				if !finite(p.X) || !finite(p.Y) {
					t.Fatal("non-finite stroke point")
				}
			}
		}
	}
}

func TestParticleGlowClip(t *testing.T) {
	s := New(6)
	rec := &recorder{w: 800, h: 800}
	s.Render(rec)
	p := s.particles[0]
	g := rec.ops[1]
	if math.Abs(g.x-p.X*800) > 1e-9 || math.Abs(g.y-p.Y*800) > 1e-9 {
		t.Fatalf("first particle glow at (%v,%v), particle at (%v,%v)", g.x, g.y, p.X*800, p.Y*800)
	}
	if g.clip <= 0 || g.radius <= 0 {
		t.Errorf("particle glow radius %v clip %v", g.radius, g.clip)
	}
	if g.blend != BlendLighter {
		t.Errorf("particle blend = %v", g.blend)
	}
}

func TestCatmullRomPassesThroughControlPoints(t *testing.T) {
	ctrl := []Point{{0, 0}, {10, 5}, {20, -5}, {30, 0}}
	curve := CatmullRom(ctrl, 8)
	if len(curve) != 3*8+1 {
		t.Fatalf("len = %d", len(curve))
	}
	for i, c := range ctrl {
		got := curve[i*8]
		if math.Abs(got.X-c.X) > 1e-9 || math.Abs(got.Y-c.Y) > 1e-9 {
			t.Errorf("control %d: curve has %v, want %v", i, got, c)
		}
	}
	if got := CatmullRom(ctrl[:1], 8); len(got) != 1 {
		t.Errorf("single point curve len = %d", len(got))
	}
}

func TestGradientAt(t *testing.T) {
	stops := []Stop{
		{Offset: 0, Color: color.NRGBA{R: 200, A: 255}},
		{Offset: 0.5, Color: color.NRGBA{R: 100, A: 100}},
		{Offset: 1, Color: color.NRGBA{R: 100, A: 0}},
	}
	tests := []struct {
		t    float64
		want color.NRGBA
	}{
		{-1, color.NRGBA{R: 200, A: 255}},
		{0, color.NRGBA{R: 200, A: 255}},
		{0.25, color.NRGBA{R: 150, A: 178}},
		{0.5, color.NRGBA{R: 100, A: 100}},
		{0.75, color.NRGBA{R: 100, A: 50}},
		{2, color.NRGBA{R: 100, A: 0}},
	}
	for _, tt := range tests {
		if got := GradientAt(stops, tt.t); got != tt.want {
			t.Errorf("GradientAt(%v) = %+v, want %+v", tt.t, got, tt.want)
		}
	}
	if GradientAt(nil, 0.5) != (color.NRGBA{}) {
		t.Error("empty stops should be transparent")
	}
}
