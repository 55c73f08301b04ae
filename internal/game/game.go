// Package game runs a dream session in an ebiten window.
package game

import (
	"errors"
	"fmt"
	"image/color"
	"log"
	"math/rand"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/iburimskiy/dreamseed/internal/audio"
	"github.com/iburimskiy/dreamseed/internal/config"
	"github.com/iburimskiy/dreamseed/internal/dream"
)

// Game adapts a dream.Session to ebiten.Game.
type Game struct {
	session *dream.Session
	player  *audio.Player

	// canvas keeps the previous frame for the trail fade.
	canvas  *ebiten.Image
	surface *canvasSurface

	width, height int
	last          time.Time
	touches       []ebiten.TouchID

	showHUD bool
	lastErr error
}

// New creates a game showing seed.
func New(seed uint32, width, height int, showHUD bool) *Game {
	return &Game{
		session: dream.New(int64(seed)),
		player:  audio.NewPlayer(config.VisualRingSize, config.EnergyBands, config.SmoothingFactor),
		width:   width,
		height:  height,
		showHUD: showHUD,
	}
}

// Session exposes the running session.
func (g *Game) Session() *dream.Session { return g.session }

// Close releases audio resources.
func (g *Game) Close() { g.player.Close() }

func (g *Game) Update() error {
	now := time.Now()
	dt := 1 / config.ReferenceFPS
	if !g.last.IsZero() {
		dt = now.Sub(g.last).Seconds()
	}
	g.last = now

	if err := g.handleKeys(); err != nil {
		return err
	}
	g.handlePointer()

	if _, dy := ebiten.Wheel(); dy != 0 {
		// wheel up speeds the scene up
		g.session.AdjustTempo(-dy)
	}

	if g.player.Playing() {
		g.session.SetRhythm(g.player.Update())
	} else {
		g.player.Update()
	}

	g.session.Step(dt)
	return nil
}

func (g *Game) handleKeys() error {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape), inpututil.IsKeyJustPressed(ebiten.KeyQ):
		return ebiten.Termination
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		g.reseed(rand.Uint32())
	case inpututil.IsKeyJustPressed(ebiten.KeyN):
		g.reseed(g.session.Seed() + 1)
	case inpututil.IsKeyJustPressed(ebiten.KeyP):
		g.reseed(g.session.Seed() - 1)
	case inpututil.IsKeyJustPressed(ebiten.KeyH):
		g.showHUD = !g.showHUD
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		g.player.TogglePause()
	case inpututil.IsKeyJustPressed(ebiten.KeyO):
		name, err := g.player.OpenDialog()
		g.lastErr = err
		if err != nil {
			log.Printf("open audio: %v", err)
		} else if name != "" {
			log.Printf("playing %s", name)
		}
	}
	return nil
}

func (g *Game) reseed(seed uint32) {
	g.session.Reseed(seed)
	log.Printf("seed %d", g.session.Seed())
}

// handlePointer forwards the mouse or the first touch in normalized
// coordinates. Ebiten reports no pen pressure, so pressure stays 0.
func (g *Game) handlePointer() {
	w, h := float64(g.width), float64(g.height)
	if w <= 0 || h <= 0 {
		return
	}
	g.touches = ebiten.AppendTouchIDs(g.touches[:0])
	if len(g.touches) > 0 {
		x, y := ebiten.TouchPosition(g.touches[0])
		g.session.SetPointer(float64(x)/w, float64(y)/h, true, 0)
		return
	}

	x, y := ebiten.CursorPosition()
	inside := x >= 0 && y >= 0 && x < g.width && y < g.height
	moved := inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) || cursorMoved(g.session.Pointer(), float64(x)/w, float64(y)/h)
	if inside && (ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) || moved) {
		g.session.SetPointer(float64(x)/w, float64(y)/h, true, 0)
		return
	}
	if g.session.Pointer().Active {
		g.session.SetPointer(0, 0, false, 0)
	}
}

func cursorMoved(p dream.Pointer, x, y float64) bool {
	const eps = 1e-4
	dx, dy := p.X-x, p.Y-y
	return dx*dx+dy*dy > eps*eps
}

func (g *Game) Draw(screen *ebiten.Image) {
	if g.canvas == nil {
		return
	}
	g.session.Render(g.surface)
	screen.DrawImage(g.canvas, nil)
	if g.showHUD {
		g.drawHUD(screen)
	}
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	st := g.session.Stats()
	status := fmt.Sprintf("seed %d  tempo %.2f -> %.2f  particles %d  bursts %d  strands %d  mutations %d  fps %.0f",
		st.Seed, st.Tempo, st.TempoTarget, st.Particles, st.Bursts, st.Strands, st.Mutations, ebiten.ActualFPS())
	ebitenutil.DebugPrintAt(screen, status, config.HUDMargin, config.HUDMargin)

	help := "R random  N/P next/prev seed  wheel tempo  O open audio  Space pause  H hide  Esc quit"
	if pos, total := g.player.Progress(); total > 0 {
		help = fmt.Sprintf("%s / %s  %s", audio.FormatDuration(pos), audio.FormatDuration(total), help)
	}
	if g.lastErr != nil {
		help += " | Error: " + g.lastErr.Error()
	}
	ebitenutil.DebugPrintAt(screen, help, config.HUDMargin, g.height-config.HUDMargin-16)

	g.drawSwatches(screen)
	g.drawBands(screen)
}

func (g *Game) drawSwatches(screen *ebiten.Image) {
	y := float32(config.HUDMargin + 20)
	border := color.RGBA{R: 150, G: 170, B: 200, A: 255}
	for i, c := range g.session.Palette() {
		x := float32(config.HUDMargin + i*(config.SwatchSize+config.SwatchGap))
		vector.DrawFilledRect(screen, x, y, config.SwatchSize, config.SwatchSize, c.NRGBA(), false)
		vector.StrokeRect(screen, x, y, config.SwatchSize, config.SwatchSize, 1, border, false)
	}
}

func (g *Game) drawBands(screen *ebiten.Image) {
	bands := g.player.Bands()
	if !g.player.Playing() || len(bands) == 0 {
		return
	}
	const barHeight = 40
	barWidth := float64(g.width) / 4
	segment := barWidth / float64(len(bands))
	x0 := float64(g.width) - barWidth - config.HUDMargin
	y0 := float64(config.HUDMargin + 20)
	pal := g.session.Palette()
	for i, b := range bands {
		h := max(2, b*barHeight)
		c := pal.At(i * len(pal) / len(bands)).NRGBA()
		vector.DrawFilledRect(screen, float32(x0+float64(i)*segment), float32(y0+barHeight-h), float32(segment-1), float32(h), c, false)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth < 1 || outsideHeight < 1 {
		outsideWidth, outsideHeight = config.WindowWidth, config.WindowHeight
	}
	if g.canvas == nil || outsideWidth != g.width || outsideHeight != g.height {
		if g.canvas != nil {
			g.canvas.Deallocate()
		}
		g.width, g.height = outsideWidth, outsideHeight
		g.canvas = ebiten.NewImage(outsideWidth, outsideHeight)
		g.canvas.Fill(color.RGBA{R: 3, G: 2, B: 12, A: 255})
		g.surface = newCanvasSurface(g.canvas)
	}
	return g.width, g.height
}

// Run opens the window and blocks until it is closed.
func Run(g *Game, title string) error {
	ebiten.SetWindowSize(g.width, g.height)
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	defer g.Close()

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}
