package main

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/iburimskiy/dreamseed/internal/dream"
	"github.com/iburimskiy/dreamseed/internal/term"
)

func newTestPreview(t *testing.T) *preview {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(screen.Fini)
	screen.SetSize(40, 12)
	return &preview{
		screen:  screen,
		session: dream.New(42),
		surface: term.NewSurface(40, 12, cellScale),
		fps:     30,
	}
}

func TestHandleInputKeys(t *testing.T) {
	p := newTestPreview(t)

	if !p.handleInput(tcell.NewEventKey(tcell.KeyRune, 'n', tcell.ModNone)) {
		t.Fatal("n should not quit")
	}
	if p.session.Seed() != 43 {
		t.Errorf("seed after n = %d, want 43", p.session.Seed())
	}

	target := p.session.Stats().TempoTarget
	p.handleInput(tcell.NewEventKey(tcell.KeyRune, '+', tcell.ModNone))
	if p.session.Stats().TempoTarget <= target {
		t.Error("+ should raise the tempo target")
	}

	if p.handleInput(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)) {
		t.Error("q should quit")
	}
	if p.handleInput(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)) {
		t.Error("escape should quit")
	}
}

func TestHandleInputMouse(t *testing.T) {
	p := newTestPreview(t)
	p.handleInput(tcell.NewEventMouse(19, 5, tcell.Button1, tcell.ModNone))
	ptr := p.session.Pointer()
	if !ptr.Active || ptr.X < 0.45 || ptr.X > 0.55 {
		t.Fatalf("pointer after click = %+v", ptr)
	}
	p.handleInput(tcell.NewEventMouse(19, 5, tcell.ButtonNone, tcell.ModNone))
	if p.session.Pointer().Active {
		t.Error("release should deactivate the pointer")
	}
}

func TestHandleInputResize(t *testing.T) {
	p := newTestPreview(t)
	p.handleInput(tcell.NewEventResize(60, 20))
	if cols, rows := p.surface.Cells(); cols != 60 || rows != 20 {
		t.Errorf("surface cells = %dx%d", cols, rows)
	}
}
