// Package rng provides the seeded generator behind every dreamseed scene.
package rng

// increment is the Weyl step added to the counter on every draw.
const increment = 0x6D2B79F5

// deriveMask separates the scheduler stream from the population stream.
const deriveMask = 0x9E3779B9

// Source is anything that yields uniform floats in [0,1).
type Source interface {
	Float64() float64
}

// Mulberry32 is a counter-based generator. Equal seeds give bit-identical
// sequences; the stream cannot be rewound except by seeding a new one.
type Mulberry32 struct {
	state uint32
}

// New creates a generator for seed.
func New(seed uint32) *Mulberry32 {
	return &Mulberry32{state: seed}
}

// Uint32 advances the counter and returns the mixed output word.
func (m *Mulberry32) Uint32() uint32 {
	m.state += increment
	t := m.state
	t = (t ^ (t >> 15)) * (t | 1)
	t ^= t + (t^(t>>7))*(t|61)
	return t ^ (t >> 14)
}

// Float64 returns the next value in [0,1).
func (m *Mulberry32) Float64() float64 {
	return float64(m.Uint32()) / 4294967296.0
}

// Derive returns the seed of the independent stream paired with seed.
func Derive(seed uint32) uint32 {
	return seed ^ deriveMask
}

// Range maps the next draw of src onto [min, max).
func Range(src Source, min, max float64) float64 {
	return min + (max-min)*src.Float64()
}

// Intn returns an index in [0, n). n <= 0 yields 0 but still consumes a draw
// so that call order stays stable.
func Intn(src Source, n int) int {
	v := src.Float64()
	if n <= 0 {
		return 0
	}
	i := int(v * float64(n))
	if i >= n {
		i = n - 1
	}
	return i
}
