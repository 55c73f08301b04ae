package palette

// Crossfade swaps From for To over 1/Speed time units.
type Crossfade struct {
	From, To Palette
	Speed    float64
	elapsed  float64
}

// minSpeed keeps Duration finite.
const minSpeed = 1e-3

// NewCrossfade starts a transition from the current palette to next.
func NewCrossfade(from, next Palette, speed float64) *Crossfade {
	if speed < minSpeed {
		speed = minSpeed
	}
	return &Crossfade{From: from.Clone(), To: next.Clone(), Speed: speed}
}

// Duration is the time needed to finish.
func (c *Crossfade) Duration() float64 {
	return 1 / c.Speed
}

// Progress is the completed fraction in [0,1].
func (c *Crossfade) Progress() float64 {
	return clamp(c.elapsed/c.Duration(), 0, 1)
}

// Advance moves the transition on by dt and reports whether it has finished.
func (c *Crossfade) Advance(dt float64) bool {
	if dt > 0 {
		c.elapsed += dt
	}
	return c.Done()
}

// Done reports whether the elapsed time has reached Duration.
func (c *Crossfade) Done() bool {
	return c.elapsed >= c.Duration()
}

// Current is the blended palette at the present progress. Once done it is
// exactly To.
func (c *Crossfade) Current() Palette {
	if c.Done() {
		return c.To.Clone()
	}
	return LerpPalette(c.From, c.To, c.Progress())
}
