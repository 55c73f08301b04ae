package audio

import (
	"fmt"
	"math"
	"time"
)

// Bands splits samples into n equal segments and returns a compressed RMS
// level per segment, smoothed against prev. prev may be nil.
func Bands(samples []float64, n int, prev []float64, smoothing float64) []float64 {
	out := make([]float64, n)
	copy(out, prev)
	if n <= 0 || len(samples) == 0 {
		return out
	}
	size := int(math.Max(1, float64(len(samples))/float64(n)))
	for i := 0; i < n; i++ {
		start := i * size
		if start >= len(samples) {
			break
		}
		end := min(start+size, len(samples))

		var sumSquares float64
		for _, v := range samples[start:end] {
			sumSquares += v * v
		}
		rms := math.Sqrt(sumSquares / float64(end-start))
		out[i] = smoothing*out[i] + (1-smoothing)*math.Pow(rms, 0.3)
	}
	return out
}

// Level averages band values into a single rhythm level in [0,1].
func Level(bands []float64) float64 {
	if len(bands) == 0 {
		return 0
	}
	var sum float64
	for _, b := range bands {
		sum += b
	}
	return clamp01(sum / float64(len(bands)))
}

func clamp01(v float64) float64 {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// FormatDuration formats a duration as MM:SS
func FormatDuration(d time.Duration) string {
	minutes := int(d.Minutes())
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}
