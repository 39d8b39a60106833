package tty

import (
	"errors"
	"image/color"
	"testing"

	"github.com/gdamore/tcell/v2"

	"holo-fx/internal/core"
)

var white = color.NRGBA{R: 255, G: 255, B: 255, A: 255}

func TestResizeRoundsToCells(t *testing.T) {
	s := NewCellSurface(0, 0)
	s.Resize(85, 40)
	cols, rows := s.Grid()
	if cols != 10 || rows != 2 {
		t.Fatalf("expected 10x2 cells, got %dx%d", cols, rows)
	}
	if got := s.Size(); got.W != 80 || got.H != 32 {
		t.Fatalf("unexpected pixel size %+v", got)
	}
}

func TestFillAndClearRect(t *testing.T) {
	s := NewCellSurface(4, 4)
	s.FillRect(0, 0, 16, 32, white)
	if s.At(1, 1) != white || s.At(2, 2).A != 0 {
		t.Fatalf("fill covered wrong cells: %v %v", s.At(1, 1), s.At(2, 2))
	}
	s.ClearRect(0, 0, 8, 16)
	if s.At(0, 0).A != 0 {
		t.Fatalf("expected cleared cell")
	}
	if s.At(1, 0) != white {
		t.Fatalf("clear touched neighbor")
	}
}

func TestStrokeLineVisitsCells(t *testing.T) {
	s := NewCellSurface(10, 1)
	s.StrokeLine(0, 8, 79, 8, white, 1)
	for col := 0; col < 10; col++ {
		if s.At(col, 0).A == 0 {
			t.Fatalf("cell %d not painted", col)
		}
	}
}

func TestStrokeLineOutsideIsIgnored(t *testing.T) {
	s := NewCellSurface(2, 2)
	s.StrokeLine(-100, -100, -50, -50, white, 1)
	for row := 0; row < 2; row++ {
		for col := 0; col < 2; col++ {
			if s.At(col, row).A != 0 {
				t.Fatalf("unexpected paint at %d,%d", col, row)
			}
		}
	}
}

func TestGradientLineSamples(t *testing.T) {
	s := NewCellSurface(3, 1)
	g := core.Gradient{Stops: []core.GradientStop{
		{Offset: 0, Color: color.NRGBA{R: 255, A: 255}},
		{Offset: 1, Color: color.NRGBA{B: 255, A: 255}},
	}}
	s.StrokeGradientLine(4, 8, 20, 8, g, 2)
	if s.At(0, 0).R != 255 {
		t.Fatalf("expected red start, got %v", s.At(0, 0))
	}
	if s.At(2, 0).B != 255 {
		t.Fatalf("expected blue end, got %v", s.At(2, 0))
	}
}

func TestFillCircleCoversCenter(t *testing.T) {
	s := NewCellSurface(4, 4)
	res, err := s.RadialGradient(2, core.Gradient{Stops: []core.GradientStop{
		{Offset: 0, Color: white},
		{Offset: 1, Color: color.NRGBA{R: 255, G: 255, B: 255}},
	}})
	if err != nil {
		t.Fatalf("radial: %v", err)
	}
	// A tiny circle still lands on its own cell.
	s.FillCircle(12, 24, res.Radius(), res, white)
	if s.At(1, 1).A == 0 {
		t.Fatalf("center cell not painted")
	}
	if s.At(3, 3).A != 0 {
		t.Fatalf("far cell painted")
	}
}

func TestClosedSurface(t *testing.T) {
	s := NewCellSurface(2, 2)
	s.Close()
	if !errors.Is(s.Err(), core.ErrSurfaceUnavailable) {
		t.Fatalf("expected unavailable, got %v", s.Err())
	}
	if _, err := s.RadialGradient(1, core.Gradient{}); !errors.Is(err, core.ErrSurfaceUnavailable) {
		t.Fatalf("expected unavailable from radial, got %v", err)
	}
}

func TestComposeLayersOverBackground(t *testing.T) {
	bottom := NewCellSurface(3, 2)
	top := NewCellSurface(2, 2)
	red := color.NRGBA{R: 255, A: 255}
	bottom.FillRect(0, 0, 8, 16, red)
	top.FillRect(8, 0, 8, 16, white)

	cols, rows, out := Compose(color.NRGBA{B: 40}, bottom, top)
	if cols != 2 || rows != 2 {
		t.Fatalf("expected smallest grid 2x2, got %dx%d", cols, rows)
	}
	if out[0] != red {
		t.Fatalf("bottom layer lost: %v", out[0])
	}
	if out[1] != white {
		t.Fatalf("top layer lost: %v", out[1])
	}
	if out[2] != (color.NRGBA{B: 40, A: 255}) {
		t.Fatalf("background not opaque: %v", out[2])
	}
}

func TestFlushPaintsScreen(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("init: %v", err)
	}
	defer screen.Fini()
	screen.SetSize(4, 2)

	layer := NewCellSurface(4, 2)
	layer.FillRect(0, 0, 32, 32, white)
	Flush(screen, color.NRGBA{}, layer)
	StatusLine(screen, "ok", white)
	screen.Show()

	if r, _, _, _ := screen.GetContent(0, 0); r != ' ' {
		t.Fatalf("expected blank cell, got %q", r)
	}
	if r, _, _, _ := screen.GetContent(1, 1); r != 'k' {
		t.Fatalf("expected status text, got %q", r)
	}
}
