package automata3d

import (
	"strconv"

	"sugarcube/internal/core"
)

func (w *World) Parameters() core.ParameterSnapshot {
	p := w.cfg.Params
	groups := []core.ParameterGroup{
		{
			Name: "Lattice",
			Params: []core.Parameter{
				intParam("sx", "Size X", w.cfg.Size.X),
				intParam("sy", "Size Y", w.cfg.Size.Y),
				intParam("sz", "Size Z", w.cfg.Size.Z),
				int64Param("seed", "Seed", w.cfg.Seed),
				intParam("workers", "Workers", w.cfg.Workers),
			},
		},
		{
			Name:    "Rule",
			Summary: w.rule.String(),
			Params: []core.Parameter{
				intParam("el", "Survive min", w.rule.ELower),
				intParam("eu", "Survive max", w.rule.EUpper),
				intParam("fl", "Birth min", w.rule.FLower),
				intParam("fu", "Birth max", w.rule.FUpper),
			},
		},
		{
			Name: "Seed Shape",
			Params: []core.Parameter{
				{Key: "shape", Label: "Shape", Type: core.ParamTypeChoice, Value: string(p.Shape)},
				intParam("start_x", "Box X", p.Start.X),
				intParam("start_y", "Box Y", p.Start.Y),
				intParam("start_z", "Box Z", p.Start.Z),
				intParam("thickness", "Cross thickness", p.Thickness),
				boolParam("omit_x", "Omit X bar", p.OmitX),
				boolParam("omit_y", "Omit Y bar", p.OmitY),
				boolParam("omit_z", "Omit Z bar", p.OmitZ),
				intParam("corner_thickness", "Corner thickness", p.CornerThickness),
				intParam("noise_x", "Noise X", p.NoiseArea.X),
				intParam("noise_y", "Noise Y", p.NoiseArea.Y),
				intParam("noise_z", "Noise Z", p.NoiseArea.Z),
			},
		},
	}
	return core.ParameterSnapshot{Groups: groups}
}

// ParameterControls lists the HUD-adjustable values. Size and shape settings
// take effect on the next Regenerate; rule bands apply to the next step.
func (w *World) ParameterControls() []core.ParameterControl {
	dim := func(key, label string) core.ParameterControl {
		return core.ParameterControl{Key: key, Label: label, Type: core.ParamTypeInt, Step: 1, Min: 1, HasMin: true, Max: 128, HasMax: true}
	}
	band := func(key, label string) core.ParameterControl {
		return core.ParameterControl{Key: key, Label: label, Type: core.ParamTypeInt, Step: 1, Min: 0, HasMin: true, Max: MaxNeighbors, HasMax: true}
	}
	extent := func(key, label string) core.ParameterControl {
		return core.ParameterControl{Key: key, Label: label, Type: core.ParamTypeInt, Step: 1, Min: 0, HasMin: true}
	}
	toggle := func(key, label string) core.ParameterControl {
		return core.ParameterControl{Key: key, Label: label, Type: core.ParamTypeBool}
	}
	choices := make([]string, len(Shapes))
	for i, s := range Shapes {
		choices[i] = string(s)
	}
	return []core.ParameterControl{
		dim("sx", "Size X"),
		dim("sy", "Size Y"),
		dim("sz", "Size Z"),
		band("el", "Survive min"),
		band("eu", "Survive max"),
		band("fl", "Birth min"),
		band("fu", "Birth max"),
		{Key: "shape", Label: "Shape", Type: core.ParamTypeChoice, Step: 1, Choices: choices},
		extent("start_x", "Box X"),
		extent("start_y", "Box Y"),
		extent("start_z", "Box Z"),
		extent("thickness", "Cross thickness"),
		toggle("omit_x", "Omit X bar"),
		toggle("omit_y", "Omit Y bar"),
		toggle("omit_z", "Omit Z bar"),
		extent("corner_thickness", "Corner thickness"),
		extent("noise_x", "Noise X"),
		extent("noise_y", "Noise Y"),
		extent("noise_z", "Noise Z"),
		{Key: "workers", Label: "Workers", Type: core.ParamTypeInt, Step: 1, Min: 1, HasMin: true, Max: 64, HasMax: true},
	}
}

// SetIntParameter updates an integer or choice parameter by key. For "shape"
// the value is an index into Shapes.
func (w *World) SetIntParameter(key string, value int) bool {
	p := &w.cfg.Params
	switch key {
	case "sx", "sy", "sz":
		if value <= 0 {
			return false
		}
		switch key {
		case "sx":
			w.cfg.Size.X = value
		case "sy":
			w.cfg.Size.Y = value
		default:
			w.cfg.Size.Z = value
		}
	case "el":
		w.rule.ELower = value
	case "eu":
		w.rule.EUpper = value
	case "fl":
		w.rule.FLower = value
	case "fu":
		w.rule.FUpper = value
	case "shape":
		if value < 0 || value >= len(Shapes) {
			return false
		}
		p.Shape = Shapes[value]
	case "start_x":
		p.Start.X = value
	case "start_y":
		p.Start.Y = value
	case "start_z":
		p.Start.Z = value
	case "thickness":
		p.Thickness = value
	case "corner_thickness":
		p.CornerThickness = value
	case "noise_x":
		p.NoiseArea.X = value
	case "noise_y":
		p.NoiseArea.Y = value
	case "noise_z":
		p.NoiseArea.Z = value
	case "workers":
		if value < 1 {
			return false
		}
		w.cfg.Workers = value
	default:
		return false
	}
	w.cfg.Rule = w.rule
	return true
}

// SetBoolParameter toggles the cross bar omissions.
func (w *World) SetBoolParameter(key string, value bool) bool {
	p := &w.cfg.Params
	switch key {
	case "omit_x":
		p.OmitX = value
	case "omit_y":
		p.OmitY = value
	case "omit_z":
		p.OmitZ = value
	default:
		return false
	}
	return true
}

// ShapeIndex returns the position of s in Shapes, or 0.
func ShapeIndex(s Shape) int {
	for i, v := range Shapes {
		if v == s {
			return i
		}
	}
	return 0
}

func intParam(key, label string, value int) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.Itoa(value),
	}
}

func int64Param(key, label string, value int64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.FormatInt(value, 10),
	}
}

func boolParam(key, label string, value bool) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeBool,
		Value: strconv.FormatBool(value),
	}
}
