package dream

import "math"

// FlowAt returns the steering heading, in radians, at normalized (x, y) and
// simulation time t. It depends only on its arguments.
func FlowAt(layers []FlowLayer, x, y, t float64) float64 {
	var value float64
	for i := range layers {
		l := &layers[i].FlowParams
		angle := math.Sin((x*l.FreqX+y*l.FreqY)*math.Pi*2+t*l.Amp+l.Offset) +
			math.Cos((x*l.FreqY-y*l.FreqX)*math.Pi+t*l.Pulse+l.Offset*1.3)
		value += angle * l.Twist

		turbulence := math.Sin((x*l.FreqY+y*l.FreqX)*math.Pi*3+t*l.Drift) *
			math.Cos((x*l.FreqX-y*l.FreqY)*math.Pi*2-t*l.Drift*0.7+l.Offset)
		value += turbulence * l.Warp
	}
	return value
}
