package app

import (
	"flag"
	"strings"
)

// Config represents the command-line parameters for the viewer.
type Config struct {
	Sim    string
	Width  int
	Height int
	Panel  int
	TPS    int
	Rate   float64
	Seed   int64
	Camera string
	Out    string

	Set KeyValues
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Sim:    "automata3d",
		Width:  1280,
		Height: 720,
		Panel:  260,
		TPS:    60,
		Rate:   2,
		Seed:   42,
		Camera: "ortho",
		Out:    ".",
	}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Sim, "sim", c.Sim, "simulation to run")
	fs.IntVar(&c.Width, "width", c.Width, "window width in pixels")
	fs.IntVar(&c.Height, "height", c.Height, "window height in pixels")
	fs.IntVar(&c.Panel, "panel", c.Panel, "controls panel width, 0 hides it")
	fs.IntVar(&c.TPS, "tps", c.TPS, "ticks per second")
	fs.Float64Var(&c.Rate, "rate", c.Rate, "generations per second while playing")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for simulation reset")
	fs.StringVar(&c.Camera, "camera", c.Camera, "initial projection: ortho or persp")
	fs.StringVar(&c.Out, "out", c.Out, "directory for exported files")
	fs.Var(&c.Set, "set", "simulation parameter in key=value form (repeatable)")
}

// KeyValues collects repeatable key=value flags.
type KeyValues []string

func (l *KeyValues) String() string {
	if l == nil {
		return ""
	}
	return strings.Join(*l, ",")
}

func (l *KeyValues) Set(value string) error {
	*l = append(*l, value)
	return nil
}

// Map returns the pairs as a map. Entries without '=' are skipped and later
// keys override earlier ones.
func (l KeyValues) Map() map[string]string {
	out := make(map[string]string, len(l))
	for _, kv := range l {
		key, value, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}
		out[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	return out
}
