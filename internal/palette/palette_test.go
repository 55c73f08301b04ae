package palette

import (
	"math"
	"testing"

	"github.com/iburimskiy/dreamseed/internal/rng"
)

type countingSource struct {
	src   *rng.Mulberry32
	draws int
}

func (c *countingSource) Float64() float64 {
	c.draws++
	return c.src.Float64()
}

func TestGenerateShape(t *testing.T) {
	src := &countingSource{src: rng.New(1)}
	p := Generate(src)
	if len(p) != Size {
		t.Fatalf("expected %d colours, got %d", Size, len(p))
	}
	if src.draws != 4+4*Size {
		t.Errorf("expected %d draws, got %d", 4+4*Size, src.draws)
	}
	for i, c := range p {
		if c.H < 0 || c.H >= 360 {
			t.Errorf("colour %d hue out of range: %v", i, c.H)
		}
		if c.S < 55 || c.S > 100 {
			t.Errorf("colour %d saturation out of range: %v", i, c.S)
		}
		if c.L < 25 || c.L > 85 {
			t.Errorf("colour %d lightness out of range: %v", i, c.L)
		}
		if c.A < 0.55 || c.A > 0.9 {
			t.Errorf("colour %d alpha out of range: %v", i, c.A)
		}
	}
}

func TestGenerateDeterministic(t *testing.T) {
	a := Generate(rng.New(1234))
	b := Generate(rng.New(1234))
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("slot %d differs: %v vs %v", i, a[i], b[i])
		}
	}
	c := Generate(rng.New(1235))
	if c[0] == a[0] {
		t.Fatal("neighbouring seeds produced the same first colour")
	}
}

func TestLerpEndpointsExact(t *testing.T) {
	pairs := [][2]Color{
		{{H: 10, S: 60, L: 40, A: 0.6}, {H: 350, S: 90, L: 70, A: 0.9}},
		{{H: 0.1, S: 55.5, L: 25.25, A: 0.55}, {H: 359.9, S: 100, L: 85, A: 0.8}},
	}
	p := Generate(rng.New(99))
	pairs = append(pairs, [2]Color{p[0], p[4]}, [2]Color{p[3], p[1]})

	for _, pair := range pairs {
		if got := Lerp(pair[0], pair[1], 0); got != pair[0] {
			t.Errorf("Lerp(t=0) = %v, want %v", got, pair[0])
		}
		if got := Lerp(pair[0], pair[1], 1); got != pair[1] {
			t.Errorf("Lerp(t=1) = %v, want %v", got, pair[1])
		}
	}
}

func TestLerpShortestHuePath(t *testing.T) {
	tests := []struct {
		name    string
		from    float64
		to      float64
		wantMid float64
	}{
		{"across zero", 350, 10, 0},
		{"across zero reversed", 10, 350, 0},
		{"plain", 100, 200, 150},
		{"wide", 20, 300, 340},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Lerp(Color{H: tt.from}, Color{H: tt.to}, 0.5).H
			d := math.Abs(got - tt.wantMid)
			if d > 180 {
				d = 360 - d
			}
			if d > 1e-9 {
				t.Errorf("midpoint hue = %v, want %v", got, tt.wantMid)
			}
		})
	}
}

func TestAtWraps(t *testing.T) {
	p := Generate(rng.New(5))
	if p.At(7) != p[2] {
		t.Error("At(7) should resolve to slot 2")
	}
	if p.At(-1) != p[4] {
		t.Error("At(-1) should resolve to the last slot")
	}
	if (Palette{}).At(3) != (Color{}) {
		t.Error("empty palette should yield the zero colour")
	}
}

func TestNRGBA(t *testing.T) {
	red := Color{H: 0, S: 100, L: 50, A: 1}.NRGBA()
	if red.R != 255 || red.G != 0 || red.B != 0 || red.A != 255 {
		t.Errorf("unexpected red: %+v", red)
	}
	clear := Color{H: 120, S: 100, L: 50, A: 0}.NRGBA()
	if clear.A != 0 || clear.G != 255 {
		t.Errorf("unexpected transparent green: %+v", clear)
	}
}

func TestString(t *testing.T) {
	got := Color{H: 12.5, S: 60, L: 40, A: 0.75}.String()
	if got != "hsla(12.50, 60.00%, 40.00%, 0.750)" {
		t.Errorf("unexpected css: %s", got)
	}
}

func TestCrossfadeCompletes(t *testing.T) {
	from := Generate(rng.New(1))
	to := Generate(rng.New(2))
	for _, speed := range []float64{0.15, 0.2, 0.35} {
		cf := NewCrossfade(from, to, speed)
		const dt = 0.016
		elapsed := 0.0
		for elapsed < 1/speed {
			if cf.Done() {
				t.Fatalf("speed %v: finished early at %v", speed, elapsed)
			}
			cf.Advance(dt)
			elapsed += dt
		}
		if !cf.Done() {
			t.Fatalf("speed %v: not finished after %v", speed, elapsed)
		}
		cur := cf.Current()
		for i := range to {
			if cur[i] != to[i] {
				t.Fatalf("speed %v slot %d: %v, want %v", speed, i, cur[i], to[i])
			}
		}
	}
}

func TestCrossfadeStartsAtSource(t *testing.T) {
	from := Generate(rng.New(3))
	to := Generate(rng.New(4))
	cf := NewCrossfade(from, to, 0.25)
	cur := cf.Current()
	for i := range from {
		if cur[i] != from[i] {
			t.Fatalf("slot %d: %v, want %v", i, cur[i], from[i])
		}
	}
	cf.Advance(2)
	if p := cf.Progress(); math.Abs(p-0.5) > 1e-12 {
		t.Errorf("progress = %v, want 0.5", p)
	}
	from[0].H = 1
	if cf.From[0].H == 1 {
		t.Error("crossfade must not alias its inputs")
	}
}
