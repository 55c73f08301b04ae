package game

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/iburimskiy/dreamseed/internal/dream"
)

var (
	whiteImage    = ebiten.NewImage(3, 3)
	whiteSubImage = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
)

func init() {
	whiteImage.Fill(color.White)
}

// blendScreen is the screen composite: src + dst*(1-src).
var blendScreen = ebiten.Blend{
	BlendFactorSourceRGB:        ebiten.BlendFactorOne,
	BlendFactorSourceAlpha:      ebiten.BlendFactorOne,
	BlendFactorDestinationRGB:   ebiten.BlendFactorOneMinusSourceColor,
	BlendFactorDestinationAlpha: ebiten.BlendFactorOneMinusSourceAlpha,
	BlendOperationRGB:           ebiten.BlendOperationAdd,
	BlendOperationAlpha:         ebiten.BlendOperationAdd,
}

func ebitenBlend(b dream.Blend) ebiten.Blend {
	switch b {
	case dream.BlendLighter:
		return ebiten.BlendLighter
	case dream.BlendScreen:
		return blendScreen
	}
	return ebiten.BlendSourceOver
}

// canvasSurface draws dream frames onto an ebiten image with triangle meshes.
type canvasSurface struct {
	dst      *ebiten.Image
	vertices []ebiten.Vertex
	indices  []uint16
}

func newCanvasSurface(dst *ebiten.Image) *canvasSurface {
	return &canvasSurface{dst: dst}
}

func (s *canvasSurface) Size() (float64, float64) {
	b := s.dst.Bounds()
	return float64(b.Dx()), float64(b.Dy())
}

func (s *canvasSurface) Fill(c color.NRGBA, b dream.Blend) {
	w, h := s.Size()
	if b == dream.BlendSourceOver {
		vector.DrawFilledRect(s.dst, 0, 0, float32(w), float32(h), c, false)
		return
	}
	s.vertices = s.vertices[:0]
	s.indices = s.indices[:0]
	for _, p := range [][2]float64{{0, 0}, {w, 0}, {w, h}, {0, h}} {
		s.vertices = append(s.vertices, vertex(p[0], p[1], c))
	}
	s.indices = append(s.indices, 0, 1, 2, 0, 2, 3)
	s.flush(b, false)
}

// Glow builds concentric rings at every gradient stop inside the clip disc
// and lets the GPU interpolate colours between them.
func (s *canvasSurface) Glow(x, y, radius, clip float64, stops []dream.Stop, b dream.Blend) {
	if radius <= 0 || len(stops) == 0 {
		return
	}
	if clip <= 0 {
		clip = radius
	}
	limit := math.Min(clip, radius)

	rings := make([]float64, 0, len(stops)+1)
	for _, st := range stops {
		if r := st.Offset * radius; r > 0 && r < limit {
			rings = append(rings, r)
		}
	}
	rings = append(rings, limit)

	segments := int(math.Min(64, math.Max(16, limit/4)))
	s.vertices = s.vertices[:0]
	s.indices = s.indices[:0]
	s.vertices = append(s.vertices, vertex(x, y, dream.GradientAt(stops, 0)))
	for _, r := range rings {
		c := dream.GradientAt(stops, r/radius)
		for i := 0; i < segments; i++ {
			a := 2 * math.Pi * float64(i) / float64(segments)
			s.vertices = append(s.vertices, vertex(x+math.Cos(a)*r, y+math.Sin(a)*r, c))
		}
	}
	for i := 0; i < segments; i++ {
		next := (i + 1) % segments
		s.indices = append(s.indices, 0, uint16(1+i), uint16(1+next))
	}
	for k := 1; k < len(rings); k++ {
		inner := 1 + (k-1)*segments
		outer := 1 + k*segments
		for i := 0; i < segments; i++ {
			next := (i + 1) % segments
			s.indices = append(s.indices,
				uint16(inner+i), uint16(outer+i), uint16(outer+next),
				uint16(inner+i), uint16(outer+next), uint16(inner+next))
		}
	}
	s.flush(b, false)
}

func (s *canvasSurface) Stroke(path []dream.Point, width float64, c color.NRGBA, b dream.Blend) {
	if len(path) < 2 || width <= 0 {
		return
	}
	var p vector.Path
	p.MoveTo(float32(path[0].X), float32(path[0].Y))
	for _, pt := range path[1:] {
		p.LineTo(float32(pt.X), float32(pt.Y))
	}
	op := &vector.StrokeOptions{
		Width:    float32(width),
		LineJoin: vector.LineJoinRound,
		LineCap:  vector.LineCapRound,
	}
	s.vertices, s.indices = p.AppendVerticesAndIndicesForStroke(s.vertices[:0], s.indices[:0], op)
	r, g, bl, a := straight(c)
	for i := range s.vertices {
		s.vertices[i].SrcX, s.vertices[i].SrcY = 1, 1
		s.vertices[i].ColorR, s.vertices[i].ColorG, s.vertices[i].ColorB, s.vertices[i].ColorA = r, g, bl, a
	}
	s.flush(b, true)
}

func (s *canvasSurface) flush(b dream.Blend, antialias bool) {
	if len(s.indices) == 0 {
		return
	}
	s.dst.DrawTriangles(s.vertices, s.indices, whiteSubImage, &ebiten.DrawTrianglesOptions{
		ColorScaleMode: ebiten.ColorScaleModeStraightAlpha,
		Blend:          ebitenBlend(b),
		AntiAlias:      antialias,
	})
}

func vertex(x, y float64, c color.NRGBA) ebiten.Vertex {
	r, g, b, a := straight(c)
	return ebiten.Vertex{
		DstX: float32(x), DstY: float32(y),
		SrcX: 1, SrcY: 1,
		ColorR: r, ColorG: g, ColorB: b, ColorA: a,
	}
}

func straight(c color.NRGBA) (r, g, b, a float32) {
	return float32(c.R) / 0xff, float32(c.G) / 0xff, float32(c.B) / 0xff, float32(c.A) / 0xff
}
