package automata3d

import (
	"strconv"

	"sugarcube/internal/core"
)

// Params holds the seed-shape settings used by Regenerate.
type Params struct {
	Shape Shape

	Start     core.Size
	NoiseArea core.Size

	Thickness       int
	CornerThickness int
	OmitX           bool
	OmitY           bool
	OmitZ           bool
}

// Config controls the lattice dimensions, rule and seeding of a World.
type Config struct {
	Size core.Size
	Rule RuleConfig

	Seed    int64
	Workers int

	Params Params
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Size:    core.Cube(16),
		Rule:    DefaultRule(),
		Seed:    42,
		Workers: 1,
		Params: Params{
			Shape:           ShapeBox,
			Start:           core.Cube(2),
			NoiseArea:       core.Cube(6),
			Thickness:       2,
			CornerThickness: 2,
		},
	}
}

// FromMap populates the config from a string map (flag-style key/value pairs).
// Unknown keys and unparsable values are ignored.
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["size"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Size = core.Cube(parsed)
		}
	}
	positiveInt(cfg, "sx", &c.Size.X)
	positiveInt(cfg, "sy", &c.Size.Y)
	positiveInt(cfg, "sz", &c.Size.Z)

	if v, ok := cfg["rule"]; ok {
		if parsed, err := ParseRule(v); err == nil {
			c.Rule = parsed
		}
	}
	anyInt(cfg, "el", &c.Rule.ELower)
	anyInt(cfg, "eu", &c.Rule.EUpper)
	anyInt(cfg, "fl", &c.Rule.FLower)
	anyInt(cfg, "fu", &c.Rule.FUpper)

	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}
	positiveInt(cfg, "workers", &c.Workers)

	if v, ok := cfg["shape"]; ok {
		for _, s := range Shapes {
			if string(s) == v {
				c.Params.Shape = s
			}
		}
	}
	anyInt(cfg, "start_x", &c.Params.Start.X)
	anyInt(cfg, "start_y", &c.Params.Start.Y)
	anyInt(cfg, "start_z", &c.Params.Start.Z)
	anyInt(cfg, "noise_x", &c.Params.NoiseArea.X)
	anyInt(cfg, "noise_y", &c.Params.NoiseArea.Y)
	anyInt(cfg, "noise_z", &c.Params.NoiseArea.Z)
	anyInt(cfg, "thickness", &c.Params.Thickness)
	anyInt(cfg, "corner_thickness", &c.Params.CornerThickness)
	anyBool(cfg, "omit_x", &c.Params.OmitX)
	anyBool(cfg, "omit_y", &c.Params.OmitY)
	anyBool(cfg, "omit_z", &c.Params.OmitZ)
	return c
}

func positiveInt(cfg map[string]string, key string, dst *int) {
	if v, ok := cfg[key]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			*dst = parsed
		}
	}
}

func anyInt(cfg map[string]string, key string, dst *int) {
	if v, ok := cfg[key]; ok {
		if parsed, err := strconv.Atoi(v); err == nil {
			*dst = parsed
		}
	}
}

func anyBool(cfg map[string]string, key string, dst *bool) {
	if v, ok := cfg[key]; ok {
		if parsed, err := strconv.ParseBool(v); err == nil {
			*dst = parsed
		}
	}
}
