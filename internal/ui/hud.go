//go:build ebiten

package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

// HUD renders the stats panel in the top-left corner of the view.
type HUD struct {
	src     Source
	visible bool
	lines   []string

	panel *ebiten.Image
}

// NewHUD constructs a HUD reading from src.
func NewHUD(src Source, visible bool) *HUD {
	return &HUD{src: src, visible: visible}
}

// Toggle flips visibility.
func (h *HUD) Toggle() {
	if h == nil {
		return
	}
	h.visible = !h.visible
}

// Visible reports whether the panel is drawn.
func (h *HUD) Visible() bool { return h != nil && h.visible }

// Update refreshes the cached text from the source.
func (h *HUD) Update() {
	if !h.Visible() {
		return
	}
	h.lines = Lines(h.src, ebiten.ActualFPS(), ebiten.ActualTPS())
}

// Draw paints the panel over screen.
func (h *HUD) Draw(screen *ebiten.Image) {
	if !h.Visible() || len(h.lines) == 0 {
		return
	}
	face := basicfont.Face7x13
	width := 0
	for _, line := range h.lines {
		if w := text.BoundString(face, line).Dx(); w > width {
			width = w
		}
	}
	width += 2 * panelPadding
	height := len(h.lines)*lineHeight + 2*panelPadding
	if h.panel == nil || h.panel.Bounds().Dx() != width || h.panel.Bounds().Dy() != height {
		h.panel = ebiten.NewImage(width, height)
	}
	h.panel.Fill(color.RGBA{R: 16, G: 16, B: 20, A: 200})
	for i, line := range h.lines {
		y := panelPadding + i*lineHeight + textBaseline
		text.Draw(h.panel, line, face, panelPadding, y, color.RGBA{R: 220, G: 220, B: 230, A: 255})
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(panelMargin, panelMargin)
	screen.DrawImage(h.panel, op)
}

const (
	panelMargin  = 8
	panelPadding = 8
	lineHeight   = 16
	textBaseline = 12
)
