// Package dream is the dreamseed engine: a seeded scene of flow layers,
// auras, particles, bursts and strands that keeps mutating while it runs.
//
// A Session owns all of its state. Nothing here is safe for concurrent use;
// input calls and Tick are expected to run on the same loop.
package dream

import (
	"math"

	"github.com/iburimskiy/dreamseed/internal/config"
	"github.com/iburimskiy/dreamseed/internal/palette"
	"github.com/iburimskiy/dreamseed/internal/rng"
)

// State is the lifecycle stage of a Session.
type State int

const (
	Uninitialized State = iota
	Seeded
	Running
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Seeded:
		return "seeded"
	case Running:
		return "running"
	}
	return "unknown"
}

// Pointer is the input state shared by the pointer handlers and the tick.
type Pointer struct {
	X, Y     float64
	Active   bool
	Strength float64
	Rhythm   float64
}

// Stats is a read-only summary for HUDs.
type Stats struct {
	Seed          uint32
	State         State
	Particles     int
	Bursts        int
	Strands       int
	Tempo         float64
	TempoTarget   float64
	Time          float64
	Mutations     int
	Transitioning bool
}

// Session is one independent dreamseed scene.
type Session struct {
	seed  uint32
	state State

	// sched drives everything after the initial population.
	sched *rng.Mulberry32

	palette palette.Palette
	fade    *palette.Crossfade

	layers    []FlowLayer
	auras     []Aura
	particles []Particle
	bursts    []Burst
	strands   []Strand

	pointer Pointer

	tempo       float64
	tempoTarget float64
	time        float64

	clock     float64
	interval  float64
	mutations int
}

// New returns a session seeded with seed.
func New(seed int64) *Session {
	s := &Session{pointer: Pointer{X: 0.5, Y: 0.5}}
	s.SetSeed(seed)
	return s
}

// SetSeed discards every entity and regenerates the scene from seed.
// Pointer input survives a reseed.
func (s *Session) SetSeed(seed int64) {
	s.Reseed(NormalizeSeed(seed))
}

// Reseed is SetSeed for an already normalized seed.
func (s *Session) Reseed(seed uint32) {
	if seed == 0 {
		seed = 1
	}
	src := rng.New(seed)

	s.seed = seed
	s.palette = palette.Generate(src)
	s.fade = nil
	s.layers = newFlowLayers(src)
	s.auras = newAuras(src)
	s.particles = newParticles(src, len(s.palette))
	s.bursts = newBursts(src, len(s.palette))
	s.strands = newStrands(src, len(s.palette))
	s.tempo = rng.Range(src, 0.6, 1.8)
	s.tempoTarget = s.tempo
	s.time = src.Float64() * math.Pi * 2

	s.sched = rng.New(rng.Derive(seed))
	s.clock = 0
	s.interval = rng.Range(s.sched, config.MutationIntervalMin, config.MutationIntervalMax)
	s.mutations = 0
	s.state = Seeded
}

// Seed returns the normalized seed of the current scene.
func (s *Session) Seed() uint32 { return s.seed }

// State returns the lifecycle stage.
func (s *Session) State() State { return s.state }

// Palette returns a snapshot of the palette in use, mid-crossfade included.
func (s *Session) Palette() palette.Palette {
	if s.fade != nil {
		return s.fade.Current()
	}
	return s.palette.Clone()
}

// Pointer returns the current pointer state.
func (s *Session) Pointer() Pointer { return s.pointer }

// SetPointer records pointer input in normalized coordinates. Pressure 0 is
// treated as a plain mouse press.
func (s *Session) SetPointer(x, y float64, active bool, pressure float64) {
	if !active {
		s.pointer.Active = false
		return
	}
	s.pointer.Active = true
	s.pointer.X, s.pointer.Y = finiteOr(x, s.pointer.X), finiteOr(y, s.pointer.Y)
	s.pointer.Strength = clamp(s.pointer.Strength+config.PointerStrengthStep, 0, config.PointerStrengthMax)
	if pressure <= 0 || math.IsNaN(pressure) {
		pressure = 1
	}
	s.pointer.Rhythm = clamp(pressure, 0, 1)
}

// SetRhythm feeds an external rhythm level, such as audio energy, in [0,1].
func (s *Session) SetRhythm(v float64) {
	s.pointer.Rhythm = clamp(finiteOr(v, 0), 0, 1)
}

// AdjustTempo nudges the tempo target, as a wheel notch does. delta is
// clamped to [-1,1]; positive values slow the scene down.
func (s *Session) AdjustTempo(delta float64) {
	delta = clamp(finiteOr(delta, 0), -1, 1)
	s.tempoTarget = clamp(s.tempoTarget-delta*config.TempoWheelGain, config.TempoMin, config.TempoMax)
	s.pointer.Strength = clamp(s.pointer.Strength+math.Abs(delta)*config.PointerWheelBoost, 0, config.PointerStrengthMax)
}

// Stats summarizes the session.
func (s *Session) Stats() Stats {
	return Stats{
		Seed:          s.seed,
		State:         s.state,
		Particles:     len(s.particles),
		Bursts:        len(s.bursts),
		Strands:       len(s.strands),
		Tempo:         s.tempo,
		TempoTarget:   s.tempoTarget,
		Time:          s.time,
		Mutations:     s.mutations,
		Transitioning: s.fade != nil,
	}
}

// Tick advances the scene by dt seconds and renders it onto dst. A nil dst
// only advances the simulation.
func (s *Session) Tick(dt float64, dst Surface) {
	if s.state == Uninitialized {
		return
	}
	s.Step(dt)
	if dst != nil {
		s.Render(dst)
	}
}

func mix(a, b, t float64) float64 {
	return a + (b-a)*t
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func finiteOr(v, fallback float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fallback
	}
	return v
}
