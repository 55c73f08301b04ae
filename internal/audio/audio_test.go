package audio

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/faiface/beep"
)

// counter streams a ramp so buffer contents are easy to check.
func counter(limit int) beep.Streamer {
	n := 0
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		if n >= limit {
			return 0, false
		}
		i := 0
		for ; i < len(samples) && n < limit; i++ {
			samples[i][0] = float64(n)
			samples[i][1] = float64(n)
			n++
		}
		return i, true
	})
}

func TestTapKeepsMostRecentSamples(t *testing.T) {
	tp := newTap(counter(10), 4)
	buf := make([][2]float64, 3)
	for {
		if _, ok := tp.Stream(buf); !ok {
			break
		}
	}
	got := tp.snapshot(4)
	want := []float64{6, 7, 8, 9}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("snapshot = %v, want %v", got, want)
		}
	}
	if n := len(tp.snapshot(100)); n != 4 {
		t.Errorf("snapshot larger than ring returned %d samples", n)
	}
	if err := tp.Err(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestTapMixesToMono(t *testing.T) {
	src := beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		for i := range samples {
			samples[i] = [2]float64{1, 0}
		}
		return len(samples), true
	})
	tp := newTap(src, 8)
	tp.Stream(make([][2]float64, 8))
	for _, v := range tp.snapshot(8) {
		if v != 0.5 {
			t.Fatalf("mono sample = %v, want 0.5", v)
		}
	}
}

func TestBands(t *testing.T) {
	samples := make([]float64, 64)
	for i := 32; i < 64; i++ {
		samples[i] = 1
	}
	bands := Bands(samples, 2, nil, 0)
	if bands[0] != 0 || math.Abs(bands[1]-1) > 1e-12 {
		t.Fatalf("bands = %v", bands)
	}

	smoothed := Bands(samples, 2, []float64{0, 0}, 0.6)
	if math.Abs(smoothed[1]-0.4) > 1e-12 {
		t.Errorf("smoothed band = %v, want 0.4", smoothed[1])
	}

	empty := Bands(nil, 4, []float64{0.2, 0.3}, 0.6)
	if len(empty) != 4 || empty[0] != 0.2 {
		t.Errorf("empty input should carry previous levels: %v", empty)
	}
}

func TestLevel(t *testing.T) {
	if Level(nil) != 0 {
		t.Error("no bands should give zero")
	}
	if got := Level([]float64{0.2, 0.4}); math.Abs(got-0.3) > 1e-12 {
		t.Errorf("Level = %v", got)
	}
	if Level([]float64{3, 3}) != 1 {
		t.Error("level should clamp to 1")
	}
}

func TestDecoderFor(t *testing.T) {
	for _, name := range []string{"a.wav", "b.MP3", "c.Flac"} {
		if _, err := decoderFor(name); err != nil {
			t.Errorf("%s: %v", name, err)
		}
	}
	if _, err := decoderFor("d.ogg"); !errors.Is(err, ErrUnsupported) {
		t.Errorf("ogg: got %v, want ErrUnsupported", err)
	}
}

func TestIdlePlayer(t *testing.T) {
	p := NewPlayer(1024, 8, 0.6)
	if p.Playing() {
		t.Error("new player should be idle")
	}
	if lvl := p.Update(); lvl != 0 {
		t.Errorf("idle level = %v", lvl)
	}
	if len(p.Bands()) != 8 {
		t.Errorf("bands len = %d", len(p.Bands()))
	}
	if pos, total := p.Progress(); pos != 0 || total != 0 {
		t.Error("idle progress should be zero")
	}
	p.TogglePause()
	p.Close()
}

func TestFormatDuration(t *testing.T) {
	if got := FormatDuration(83 * time.Second); got != "01:23" {
		t.Errorf("got %s", got)
	}
}
