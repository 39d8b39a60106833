package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"

	"holo-fx/internal/app"
	"holo-fx/internal/core"
	"holo-fx/internal/engine"
	_ "holo-fx/internal/fx/particles"
	_ "holo-fx/internal/fx/wavegrid"
	"holo-fx/internal/palette"
	"holo-fx/internal/scheduler"
	"holo-fx/internal/tty"
	"holo-fx/internal/ui"
	"holo-fx/internal/viewport"
)

func main() {
	cfg, err := app.Load(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, cfg *app.Config) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	cols, rows := screen.Size()
	layers := make([]*tty.CellSurface, 0, len(cfg.Layers))
	byName := make(map[string]*tty.CellSurface, len(cfg.Layers))
	for _, name := range cfg.Layers {
		s := tty.NewCellSurface(cols, rows)
		layers = append(layers, s)
		byName[name] = s
	}

	pump := scheduler.NewPump()
	sig := viewport.NewBroadcaster()
	eng, err := engine.New(cfg.Engine(), pump, sig, func(name string) core.Surface {
		s, ok := byName[name]
		if !ok {
			return nil
		}
		return s
	})
	if err != nil {
		return err
	}
	defer eng.Dispose()
	eng.Start()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := make(chan tcell.Event)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	ticker := time.NewTicker(time.Second / time.Duration(cfg.TPS))
	defer ticker.Stop()

	start := time.Now()
	showHUD := cfg.HUD
	paused := false
	lastFrame := start
	var fps float64

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventResize:
				screen.Sync()
				sig.Publish(tty.PixelSize(ev.Size()))
			case *tcell.EventKey:
				switch {
				case ev.Key() == tcell.KeyEscape, ev.Key() == tcell.KeyCtrlC, ev.Rune() == 'q':
					return nil
				case ev.Rune() == 'd':
					eng.SetDarkMode(!eng.Dark())
				case ev.Rune() == ' ':
					paused = !paused
					if paused {
						eng.Stop()
					} else {
						eng.Start()
					}
				case ev.Rune() == 'h':
					showHUD = !showHUD
				}
			}

		case now := <-ticker.C:
			pump.Flush(float64(now.Sub(start)) / float64(time.Millisecond))

			pal := palette.Resolve(eng.Dark())
			tty.Flush(screen, pal.Fade, layers...)
			if showHUD {
				if dt := now.Sub(lastFrame).Seconds(); dt > 0 {
					fps = 1 / dt
				}
				lines := ui.Lines(eng, fps, float64(cfg.TPS))
				tty.StatusLine(screen, strings.Join(lines[:min(2, len(lines))], "  "), pal.Particle)
			}
			lastFrame = now
			screen.Show()
		}
	}
}
