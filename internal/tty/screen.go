package tty

import (
	"image/color"

	"github.com/gdamore/tcell/v2"

	"holo-fx/internal/palette"
)

// Compose merges the layers over an opaque background, bottom layer first.
// The result has one color per cell of the smallest layer.
func Compose(bg color.NRGBA, layers ...*CellSurface) (cols, rows int, out []color.NRGBA) {
	bg.A = 255
	if len(layers) == 0 {
		return 0, 0, nil
	}
	cols, rows = layers[0].Grid()
	for _, l := range layers[1:] {
		c, r := l.Grid()
		cols, rows = min(cols, c), min(rows, r)
	}
	out = make([]color.NRGBA, cols*rows)
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			px := bg
			for _, l := range layers {
				px = palette.Blend(px, l.At(col, row))
			}
			out[row*cols+col] = px
		}
	}
	return cols, rows, out
}

// Flush composes the layers and paints them as cell backgrounds. The caller
// is responsible for screen.Show.
func Flush(screen tcell.Screen, bg color.NRGBA, layers ...*CellSurface) {
	cols, rows, cells := Compose(bg, layers...)
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			c := cells[row*cols+col]
			style := tcell.StyleDefault.Background(tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B)))
			screen.SetContent(col, row, ' ', nil, style)
		}
	}
}

// StatusLine writes text on the last row, over whatever was flushed.
func StatusLine(screen tcell.Screen, text string, fg color.NRGBA) {
	_, h := screen.Size()
	if h == 0 {
		return
	}
	style := tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(fg.R), int32(fg.G), int32(fg.B)))
	col := 0
	for _, r := range text {
		screen.SetContent(col, h-1, r, nil, style)
		col++
	}
}
