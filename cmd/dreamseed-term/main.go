package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/iburimskiy/dreamseed/internal/dream"
	"github.com/iburimskiy/dreamseed/internal/term"
)

// cellScale is how many virtual pixels one half-cell stands for.
const cellScale = 8

type preview struct {
	screen  tcell.Screen
	session *dream.Session
	surface *term.Surface
	fps     int
}

func newPreview(seed uint32, fps int) (*preview, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.EnableMouse()
	screen.HideCursor()

	cols, rows := screen.Size()
	return &preview{
		screen:  screen,
		session: dream.New(int64(seed)),
		surface: term.NewSurface(cols, rows, cellScale),
		fps:     fps,
	}, nil
}

// handleInput applies ev and reports whether the preview should keep running.
func (p *preview) handleInput(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch {
		case ev.Key() == tcell.KeyEscape, ev.Key() == tcell.KeyCtrlC, ev.Rune() == 'q':
			return false
		case ev.Rune() == 'r':
			p.session.Reseed(rand.Uint32())
		case ev.Rune() == 'n':
			p.session.Reseed(p.session.Seed() + 1)
		case ev.Rune() == 'p':
			p.session.Reseed(p.session.Seed() - 1)
		case ev.Rune() == '+':
			p.session.AdjustTempo(-1)
		case ev.Rune() == '-':
			p.session.AdjustTempo(1)
		}
	case *tcell.EventMouse:
		x, y := ev.Position()
		cols, rows := p.surface.Cells()
		nx, ny := (float64(x)+0.5)/float64(cols), (float64(y)+0.5)/float64(rows)
		switch ev.Buttons() {
		case tcell.WheelUp:
			p.session.AdjustTempo(-1)
		case tcell.WheelDown:
			p.session.AdjustTempo(1)
		case tcell.ButtonNone:
			p.session.SetPointer(nx, ny, false, 0)
		default:
			p.session.SetPointer(nx, ny, true, 1)
		}
	case *tcell.EventResize:
		cols, rows := ev.Size()
		p.surface.Resize(cols, rows)
		p.screen.Sync()
	}
	return true
}

func (p *preview) run() {
	ticker := time.NewTicker(time.Second / time.Duration(p.fps))
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := p.screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	}()

	last := time.Now()
	for {
		select {
		case ev := <-eventChan:
			if !p.handleInput(ev) {
				return
			}
		case now := <-ticker.C:
			p.session.Tick(now.Sub(last).Seconds(), p.surface)
			last = now
			p.surface.Show(p.screen)
		}
	}
}

func main() {
	var (
		seedStr string
		fps     int
	)
	flag.StringVar(&seedStr, "seed", "", "Scene seed (integer); random when empty")
	flag.IntVar(&fps, "fps", 30, "Frames per second")
	flag.Parse()

	seed := dream.NormalizeSeed(rand.Int63n(1_000_000_000))
	if seedStr != "" {
		s, err := dream.ParseSeed(seedStr)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Invalid seed: %v\n", err)
			os.Exit(2)
		}
		seed = s
	}
	if fps < 1 {
		fps = 30
	}

	p, err := newPreview(seed, fps)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	p.run()
	p.screen.Fini()
	log.Printf("seed %d", p.session.Seed())
}
