package dream

import (
	"math"

	"github.com/iburimskiy/dreamseed/internal/config"
)

// frame carries the per-tick values shared by every entity update.
type frame struct {
	layers  []FlowLayer
	time    float64
	tempo   float64
	pointer Pointer
	// scale converts per-frame motion constants to this tick's dt.
	scale float64
	dt    float64
}

// Step advances the simulation by dt seconds without drawing. Large gaps,
// such as after a backgrounded window, are clamped to MaxFrameDelta.
func (s *Session) Step(dt float64) {
	if s.state == Uninitialized {
		return
	}
	dt = clampDelta(dt)
	s.state = Running

	s.time += dt * s.tempo * mix(0.8, 1.4, math.Sin(s.time*0.12)*0.5+0.5)
	s.schedule(dt)
	s.morph(dt)
	s.advancePalette(dt)

	f := frame{
		layers:  s.layers,
		time:    s.time,
		tempo:   s.tempo * mix(0.8, 1.4, math.Sin(s.time*0.2)*0.5+0.5),
		pointer: s.pointer,
		scale:   dt * config.ReferenceFPS,
		dt:      dt,
	}
	for i := range s.particles {
		s.particles[i] = advanceParticle(s.particles[i], &f)
	}
	for i := range s.bursts {
		s.bursts[i] = advanceBurst(s.bursts[i], &f)
	}
	for i := range s.strands {
		next, alive := advanceStrand(s.strands[i], &f)
		if !alive {
			next = newStrand(s.sched, len(s.palette))
		}
		s.strands[i] = next
	}
	s.decayPointer(dt)
}

func clampDelta(dt float64) float64 {
	if math.IsNaN(dt) || dt <= 0 {
		return 0
	}
	return math.Min(dt, config.MaxFrameDelta)
}

func advanceParticle(p Particle, f *frame) Particle {
	angle := FlowAt(f.layers, p.X, p.Y, f.time+p.Phase) * 0.6
	speed := mix(0.0003, 0.0028, p.Scale) * f.tempo * (0.75 + p.Drift*0.5)
	jitter := 0.0004 * (1 + p.Chaos)

	p.X += (math.Cos(angle)*speed + math.Sin(f.time*0.4+p.Phase)*jitter) * f.scale
	p.Y += (math.Sin(angle)*speed + math.Cos(f.time*0.37+p.Phase)*jitter) * f.scale

	p.X, p.Y = deflect(p.X, p.Y, f.pointer, f.scale)

	guard := math.Max(f.tempo, config.TempoFloor)
	p.X += math.Sin(f.time*p.Sway+p.Phase) * 0.0006 / guard * f.scale
	p.Y += math.Cos(f.time*p.Sway+p.Phase) * 0.0006 / guard * f.scale

	p.X, p.Y = wrap(p.X), wrap(p.Y)
	return p
}

// deflect swirls a point sideways around an active pointer, falling off with
// the squared distance.
func deflect(x, y float64, ptr Pointer, scale float64) (float64, float64) {
	if !ptr.Active {
		return x, y
	}
	dx, dy := ptr.X-x, ptr.Y-y
	influence := math.Exp(-(dx*dx+dy*dy)*config.PointerFalloff) * ptr.Strength
	if influence <= 0.001 {
		return x, y
	}
	k := influence * config.PointerDeflection * scale
	return x - dy*k, y + dx*k
}

func advanceBurst(b Burst, f *frame) Burst {
	heading := f.time*b.Spin + b.Delay
	b.X = wrap(b.X + math.Cos(heading)*b.Drift*f.dt)
	b.Y = wrap(b.Y + math.Sin(heading)*b.Drift*f.dt)
	return b
}

// advanceStrand ages s and lets its points ride the flow field. It reports
// false once the strand has outlived Life or left the virtual canvas.
func advanceStrand(s Strand, f *frame) (Strand, bool) {
	s.Age += f.dt
	if s.Age > s.Life {
		return s, false
	}
	points := make([]StrandPoint, len(s.Points))
	step := s.Speed * f.dt * f.tempo * (1 + s.Arc*0.5)
	for i, pt := range s.Points {
		heading := FlowAt(f.layers, pt.X, pt.Y, f.time+pt.Phase*0.1) * 0.5
		pt.X += math.Cos(heading) * step
		pt.Y += math.Sin(heading) * step
		if !inBounds(pt.X) || !inBounds(pt.Y) {
			return s, false
		}
		points[i] = pt
	}
	s.Points = points
	return s, true
}

func (s *Session) decayPointer(dt float64) {
	if s.pointer.Active {
		return
	}
	if s.pointer.Strength > 0 {
		s.pointer.Strength = math.Max(0, s.pointer.Strength-dt*config.PointerDecayRate)
	}
	if s.pointer.Rhythm > 0 {
		s.pointer.Rhythm = math.Max(0, s.pointer.Rhythm-dt*config.PointerDecayRate)
	}
}

// wrap folds v into [BoundsMin, BoundsMax).
func wrap(v float64) float64 {
	if inBounds(v) {
		return v
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0.5
	}
	span := config.BoundsMax - config.BoundsMin
	m := math.Mod(v-config.BoundsMin, span)
	if m < 0 {
		m += span
	}
	v = config.BoundsMin + m
	if v >= config.BoundsMax {
		v = config.BoundsMin
	}
	return v
}

func inBounds(v float64) bool {
	return v >= config.BoundsMin && v < config.BoundsMax
}
