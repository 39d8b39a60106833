package app

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"holo-fx/internal/engine"
	"holo-fx/internal/profile"
)

// Config represents the runtime parameters shared by the commands. Values
// come from HOLOFX_* environment variables first and command-line flags
// second.
type Config struct {
	Width        int           `env:"HOLOFX_WIDTH"         envDefault:"1280"`
	Height       int           `env:"HOLOFX_HEIGHT"        envDefault:"720"`
	Dark         bool          `env:"HOLOFX_DARK"          envDefault:"true"`
	Seed         int64         `env:"HOLOFX_SEED"          envDefault:"42"`
	Layers       []string      `env:"HOLOFX_LAYERS"        envDefault:"wavegrid,particles" envSeparator:","`
	StartupDelay time.Duration `env:"HOLOFX_STARTUP_DELAY" envDefault:"1s"`
	Capability   string        `env:"HOLOFX_CAPABILITY"    envDefault:"auto"`
	HUD          bool          `env:"HOLOFX_HUD"           envDefault:"false"`
	Verbose      bool          `env:"HOLOFX_VERBOSE"       envDefault:"false"`
	TPS          int           `env:"HOLOFX_TPS"           envDefault:"60"`
}

// NewConfig returns a Config populated with defaults and the environment.
func NewConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// Bind attaches the configuration to the provided FlagSet. Current values
// become the flag defaults.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.IntVar(&c.Width, "width", c.Width, "initial viewport width in pixels")
	fs.IntVar(&c.Height, "height", c.Height, "initial viewport height in pixels")
	fs.BoolVar(&c.Dark, "dark", c.Dark, "start in dark mode")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for layer randomness")
	fs.Func("layers", "comma-separated layers, bottom first (default "+strings.Join(c.Layers, ",")+")", func(v string) error {
		c.Layers = splitList(v)
		return nil
	})
	fs.DurationVar(&c.StartupDelay, "startup-delay", c.StartupDelay, "delay before the first rendered frame")
	fs.StringVar(&c.Capability, "capability", c.Capability, "device capability hint: auto, normal, reduced, minimal")
	fs.BoolVar(&c.HUD, "hud", c.HUD, "show the stats overlay")
	fs.BoolVar(&c.Verbose, "verbose", c.Verbose, "log scheduler events to stderr")
	fs.IntVar(&c.TPS, "tps", c.TPS, "host ticks per second")
}

// Load builds a Config from the environment and then args.
func Load(fs *flag.FlagSet, args []string) (*Config, error) {
	cfg, err := NewConfig()
	if err != nil {
		return nil, err
	}
	cfg.Bind(fs)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if cfg.TPS <= 0 {
		return nil, fmt.Errorf("tps must be positive, got %d", cfg.TPS)
	}
	if len(cfg.Layers) == 0 {
		return nil, fmt.Errorf("no layers selected")
	}
	return cfg, nil
}

// Logger returns the logger handed to the engine.
func (c *Config) Logger() *log.Logger {
	if c.Verbose {
		return log.New(os.Stderr, "holofx: ", log.LstdFlags)
	}
	return log.New(io.Discard, "", 0)
}

// Engine converts the configuration into engine settings.
func (c *Config) Engine() engine.Config {
	return engine.Config{
		Layers:       c.Layers,
		Seed:         c.Seed,
		Capability:   profile.ParseCapability(c.Capability),
		StartupDelay: c.StartupDelay,
		Dark:         c.Dark,
		Logger:       c.Logger(),
	}
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
