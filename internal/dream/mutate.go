package dream

import (
	"math"

	"github.com/iburimskiy/dreamseed/internal/config"
	"github.com/iburimskiy/dreamseed/internal/palette"
	"github.com/iburimskiy/dreamseed/internal/rng"
)

// schedule runs the mutation clock. Pointer activity makes it run faster.
func (s *Session) schedule(dt float64) {
	activity := 1 + s.pointer.Strength*config.ActivityStrengthGain + s.pointer.Rhythm*config.ActivityRhythmGain
	s.clock += dt * activity
	if s.clock < s.interval {
		return
	}
	s.clock = 0
	s.mutate()
	s.interval = rng.Range(s.sched, config.MutationIntervalMin, config.MutationIntervalMax)
}

// mutate retargets one element of every entity kind. Each roll is drawn
// whether or not it fires so the scheduler stream stays aligned.
func (s *Session) mutate() {
	src := s.sched
	layers := len(s.palette)

	if len(s.layers) > 0 {
		i := rng.Intn(src, len(s.layers))
		s.layers[i] = retargetLayer(s.layers[i], src)
	}
	if len(s.auras) > 0 {
		i := rng.Intn(src, len(s.auras))
		s.auras[i] = retargetAura(s.auras[i], src)
	}
	for i := range s.particles {
		if src.Float64() < config.ParticlePerturbShare {
			s.particles[i] = perturbParticle(s.particles[i], src)
		}
	}
	if src.Float64() > config.BurstPerturbThreshold && len(s.bursts) > 0 {
		i := rng.Intn(src, len(s.bursts))
		s.bursts[i] = perturbBurst(s.bursts[i], src, layers)
	}
	if src.Float64() > config.PaletteShiftThreshold || s.fade == nil {
		s.shiftPalette(src)
	}
	if len(s.strands) > 0 {
		i := rng.Intn(src, len(s.strands))
		s.strands[i] = newStrand(src, layers)
	}
	if src.Float64() > config.BurstSpawnThreshold || len(s.bursts) < config.BurstFloor {
		s.spawnBurst(src)
	}
	s.tempoTarget = rng.Range(src, config.TempoMin, config.TempoMax)
	s.mutations++
}

// shiftPalette starts a crossfade from whatever is on screen now.
func (s *Session) shiftPalette(src rng.Source) {
	current := s.Palette()
	next := palette.Generate(src)
	speed := rng.Range(src, config.TransitionSpeedMin, config.TransitionSpeedMax)
	s.palette = current
	s.fade = palette.NewCrossfade(current, next, speed)
}

// spawnBurst appends a burst, evicting the oldest beyond BurstCap.
func (s *Session) spawnBurst(src rng.Source) {
	s.bursts = append(s.bursts, newBurst(src, len(s.palette)))
	if over := len(s.bursts) - config.BurstCap; over > 0 {
		s.bursts = append(s.bursts[:0:0], s.bursts[over:]...)
	}
}

func retargetLayer(l FlowLayer, src rng.Source) FlowLayer {
	l.Target = newFlowParams(src)
	l.Morph = rng.Range(src, 0.08, 0.35)
	return l
}

func retargetAura(a Aura, src rng.Source) Aura {
	a.TargetRadius = rng.Range(src, 0.15, 0.45)
	a.TargetPulse = rng.Range(src, 0.5, 1.5)
	a.Morph = rng.Range(src, 0.05, 0.25)
	return a
}

func perturbParticle(p Particle, src rng.Source) Particle {
	p.Phase = math.Mod(p.Phase+rng.Range(src, -1, 1), math.Pi*2)
	p.Scale = clamp(p.Scale+rng.Range(src, -0.2, 0.2), 0.25, 1.3)
	p.Chaos = src.Float64()
	p.Pulse = rng.Range(src, 0.6, 1.4)
	return p
}

func perturbBurst(b Burst, src rng.Source, layers int) Burst {
	b.X = clamp(b.X+rng.Range(src, -0.15, 0.15), 0, 1)
	b.Y = clamp(b.Y+rng.Range(src, -0.15, 0.15), 0, 1)
	b.Radius = rng.Range(src, 0.1, 0.35)
	b.Pulse = rng.Range(src, 0.5, 1.4)
	b.Layer = rng.Intn(src, layers)
	return b
}

// approach moves cur toward target by the fraction rate*dt, capped at the
// full distance, so it never overshoots.
func approach(cur, target, rate, dt float64) float64 {
	k := rate * dt
	if k >= 1 {
		return target
	}
	if k <= 0 {
		return cur
	}
	return cur + (target-cur)*k
}

func morphLayer(l FlowLayer, dt float64) FlowLayer {
	p, t, r := &l.FlowParams, l.Target, l.Morph
	p.Amp = approach(p.Amp, t.Amp, r, dt)
	p.FreqX = approach(p.FreqX, t.FreqX, r, dt)
	p.FreqY = approach(p.FreqY, t.FreqY, r, dt)
	p.Twist = approach(p.Twist, t.Twist, r, dt)
	p.Pulse = approach(p.Pulse, t.Pulse, r, dt)
	p.Offset = approach(p.Offset, t.Offset, r, dt)
	p.Warp = approach(p.Warp, t.Warp, r, dt)
	p.Drift = approach(p.Drift, t.Drift, r, dt)
	return l
}

func morphAura(a Aura, dt float64) Aura {
	a.Radius = approach(a.Radius, a.TargetRadius, a.Morph, dt)
	a.Pulse = approach(a.Pulse, a.TargetPulse, a.Morph, dt)
	return a
}

// morph eases layers, auras and tempo toward their targets.
func (s *Session) morph(dt float64) {
	for i := range s.layers {
		s.layers[i] = morphLayer(s.layers[i], dt)
	}
	for i := range s.auras {
		s.auras[i] = morphAura(s.auras[i], dt)
	}
	s.tempo = approach(s.tempo, s.tempoTarget, config.TempoEaseRate, dt)
}

// advancePalette finishes a crossfade once its duration has elapsed.
func (s *Session) advancePalette(dt float64) {
	if s.fade == nil {
		return
	}
	if s.fade.Advance(dt) {
		s.palette = s.fade.To.Clone()
		s.fade = nil
	}
}
