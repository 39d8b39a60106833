//go:build ebiten

package app

import (
	"time"

	"holo-fx/internal/core"
	"holo-fx/internal/engine"
	"holo-fx/internal/palette"
	"holo-fx/internal/render"
	"holo-fx/internal/scheduler"
	"holo-fx/internal/ui"
	"holo-fx/internal/viewport"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Game adapts the effect engine to the ebiten.Game interface. Every layer
// renders into its own offscreen image; Draw stacks them in layer order.
type Game struct {
	engine   *engine.Engine
	pump     *scheduler.Pump
	viewport *viewport.Broadcaster
	surfaces map[string]*render.ImageSurface
	order    []string
	hud      *ui.HUD

	start  time.Time
	paused bool
}

// New constructs a Game and starts the engine. Frames begin once the
// configured startup delay has elapsed.
func New(cfg *Config) (*Game, error) {
	g := &Game{
		pump:     scheduler.NewPump(),
		viewport: viewport.NewBroadcaster(),
		surfaces: make(map[string]*render.ImageSurface, len(cfg.Layers)),
		order:    cfg.Layers,
		start:    time.Now(),
	}
	for _, name := range cfg.Layers {
		g.surfaces[name] = render.NewImageSurface(cfg.Width, cfg.Height)
	}
	eng, err := engine.New(cfg.Engine(), g.pump, g.viewport, func(name string) core.Surface {
		s, ok := g.surfaces[name]
		if !ok {
			return nil
		}
		return s
	})
	if err != nil {
		g.dispose()
		return nil, err
	}
	g.engine = eng
	g.hud = ui.NewHUD(eng, cfg.HUD)
	eng.Start()
	return g, nil
}

func (g *Game) dispose() {
	if g.engine != nil {
		g.engine.Dispose()
	}
	for _, s := range g.surfaces {
		s.Dispose()
	}
}

// Update handles input and delivers the frame tick to the schedulers.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.dispose()
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyD) {
		g.engine.SetDarkMode(!g.engine.Dark())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
		if g.paused {
			g.engine.Stop()
		} else {
			g.engine.Start()
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		g.hud.Toggle()
	}

	g.pump.Flush(float64(time.Since(g.start)) / float64(time.Millisecond))
	g.hud.Update()
	return nil
}

// Draw composites the layer images over the theme background.
func (g *Game) Draw(screen *ebiten.Image) {
	bg := palette.Resolve(g.engine.Dark()).Fade
	bg.A = 255
	screen.Fill(bg)
	for _, name := range g.order {
		img := g.surfaces[name].Image()
		if img == nil {
			continue
		}
		screen.DrawImage(img, nil)
	}
	g.hud.Draw(screen)
}

// Layout publishes the window size as the viewport and renders at 1:1.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.viewport.Publish(core.Size{W: outsideWidth, H: outsideHeight})
	return outsideWidth, outsideHeight
}
