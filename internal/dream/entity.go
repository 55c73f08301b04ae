package dream

import (
	"math"

	"github.com/iburimskiy/dreamseed/internal/config"
	"github.com/iburimskiy/dreamseed/internal/rng"
)

// FlowParams are the tunable terms of one flow layer.
type FlowParams struct {
	Amp, FreqX, FreqY float64
	Twist, Pulse      float64
	Offset            float64
	Warp, Drift       float64
}

// FlowLayer chases Target at Morph per time unit.
type FlowLayer struct {
	FlowParams
	Target FlowParams
	Morph  float64
}

// Aura is a slow orbiting background glow.
type Aura struct {
	HueShift     float64
	Radius       float64
	TargetRadius float64
	Pulse        float64
	TargetPulse  float64
	Phase        float64
	Spin         float64
	Morph        float64
}

// Particle positions are normalized to the canvas, wrapping inside
// [BoundsMin, BoundsMax).
type Particle struct {
	X, Y  float64
	Drift float64
	Glow  float64
	Scale float64
	Phase float64
	Sway  float64
	Chaos float64
	Pulse float64
	Layer int
}

// Burst is a large pulsing glow.
type Burst struct {
	X, Y   float64
	Radius float64
	Pulse  float64
	Delay  float64
	Layer  int
	Drift  float64
	Spin   float64
}

// StrandPoint is one control point of a strand.
type StrandPoint struct {
	X, Y  float64
	Phase float64
}

// Strand is a glowing curve through 3..6 control points. It is replaced once
// Age exceeds Life.
type Strand struct {
	Points  []StrandPoint
	Speed   float64
	Wobble  float64
	Layer   int
	Age     float64
	Life    float64
	Arc     float64
	Pulse   float64
	Scatter float64
}

func newFlowParams(src rng.Source) FlowParams {
	return FlowParams{
		Amp:    rng.Range(src, 0.2, 1.6),
		FreqX:  rng.Range(src, 0.4, 1.5),
		FreqY:  rng.Range(src, 0.4, 1.5),
		Twist:  rng.Range(src, -math.Pi, math.Pi),
		Pulse:  rng.Range(src, 0.2, 1.6),
		Offset: src.Float64() * math.Pi * 2,
		Warp:   rng.Range(src, 0, 0.6),
		Drift:  rng.Range(src, 0.05, 0.8),
	}
}

func newFlowLayers(src rng.Source) []FlowLayer {
	layers := make([]FlowLayer, config.FlowLayerCount)
	for i := range layers {
		p := newFlowParams(src)
		layers[i] = FlowLayer{FlowParams: p, Target: p, Morph: rng.Range(src, 0.08, 0.35)}
	}
	return layers
}

func newAuras(src rng.Source) []Aura {
	auras := make([]Aura, config.AuraCount)
	for i := range auras {
		a := Aura{
			HueShift: src.Float64(),
			Radius:   rng.Range(src, 0.15, 0.45),
			Pulse:    rng.Range(src, 0.5, 1.5),
			Phase:    src.Float64() * math.Pi * 2,
			Spin:     rng.Range(src, 0.6, 1.4),
			Morph:    rng.Range(src, 0.05, 0.25),
		}
		a.TargetRadius, a.TargetPulse = a.Radius, a.Pulse
		auras[i] = a
	}
	return auras
}

func newParticles(src rng.Source, layers int) []Particle {
	count := int(math.Floor(config.ParticleMin + src.Float64()*config.ParticleSpan))
	list := make([]Particle, count)
	for i := range list {
		list[i] = Particle{
			X:     src.Float64(),
			Y:     src.Float64(),
			Drift: src.Float64(),
			Glow:  src.Float64(),
			Scale: rng.Range(src, 0.25, 1.3),
			Phase: src.Float64() * math.Pi * 2,
			Sway:  rng.Range(src, 0.5, 1.6),
			Chaos: src.Float64(),
			Pulse: rng.Range(src, 0.6, 1.4),
			Layer: i % layers,
		}
	}
	return list
}

func newBurst(src rng.Source, layers int) Burst {
	return Burst{
		X:      src.Float64(),
		Y:      src.Float64(),
		Radius: rng.Range(src, 0.1, 0.35),
		Pulse:  rng.Range(src, 0.5, 1.4),
		Delay:  src.Float64() * 1000,
		Layer:  rng.Intn(src, layers),
		Drift:  rng.Range(src, 0.002, 0.02),
		Spin:   rng.Range(src, -0.6, 0.6),
	}
}

func newBursts(src rng.Source, layers int) []Burst {
	count := config.BurstMin + rng.Intn(src, config.BurstSpan)
	list := make([]Burst, count)
	for i := range list {
		list[i] = newBurst(src, layers)
	}
	return list
}

func newStrand(src rng.Source, layers int) Strand {
	n := config.StrandPointsMin + rng.Intn(src, config.StrandPointsSpan)
	ox, oy := src.Float64(), src.Float64()
	heading := src.Float64() * math.Pi * 2
	step := rng.Range(src, 0.06, 0.16)

	points := make([]StrandPoint, n)
	for i := range points {
		bend := (src.Float64() - 0.5) * 1.2
		heading += bend
		ox += math.Cos(heading) * step
		oy += math.Sin(heading) * step
		points[i] = StrandPoint{X: ox, Y: oy, Phase: src.Float64() * math.Pi * 2}
	}
	s := Strand{
		Points:  points,
		Speed:   rng.Range(src, 0.02, 0.09),
		Wobble:  rng.Range(src, 0.4, 1.8),
		Layer:   rng.Intn(src, layers),
		Life:    rng.Range(src, 6, 18),
		Arc:     src.Float64(),
		Pulse:   rng.Range(src, 0.4, 1.6),
		Scatter: rng.Range(src, 0.2, 1.0),
	}
	return s
}

func newStrands(src rng.Source, layers int) []Strand {
	count := config.StrandMin + rng.Intn(src, config.StrandSpan)
	list := make([]Strand, count)
	for i := range list {
		list[i] = newStrand(src, layers)
		// stagger the first generation so they do not all expire together
		list[i].Age = src.Float64() * list[i].Life * 0.5
	}
	return list
}
