package automata3d

import (
	"testing"

	"sugarcube/internal/core"
)

func TestFromMapOverrides(t *testing.T) {
	cfg := FromMap(map[string]string{
		"size":      "20",
		"sz":        "8",
		"rule":      "5/7/6/6",
		"fu":        "9",
		"seed":      "-3",
		"workers":   "0",
		"shape":     "cross",
		"thickness": "3",
		"omit_y":    "true",
		"start_x":   "junk",
	})
	if cfg.Size != (core.Size{X: 20, Y: 20, Z: 8}) {
		t.Fatalf("size = %v", cfg.Size)
	}
	if cfg.Rule != (RuleConfig{ELower: 5, EUpper: 7, FLower: 6, FUpper: 9}) {
		t.Fatalf("rule = %v", cfg.Rule)
	}
	if cfg.Seed != -3 {
		t.Fatalf("seed = %d", cfg.Seed)
	}
	if cfg.Workers != 1 {
		t.Fatal("non-positive workers must keep the default")
	}
	if cfg.Params.Shape != ShapeCross || cfg.Params.Thickness != 3 || !cfg.Params.OmitY {
		t.Fatalf("params = %+v", cfg.Params)
	}
	if cfg.Params.Start != core.Cube(2) {
		t.Fatal("unparsable values must be ignored")
	}
}

func TestFromMapNil(t *testing.T) {
	if FromMap(nil) != DefaultConfig() {
		t.Fatal("nil map must yield defaults")
	}
}

func TestParseRule(t *testing.T) {
	r, err := ParseRule(" 4/5/2/6 ")
	if err != nil {
		t.Fatalf("ParseRule: %v", err)
	}
	if r != DefaultRule() || r.String() != "4/5/2/6" {
		t.Fatalf("rule = %v", r)
	}
	for _, bad := range []string{"", "1/2/3", "a/b/c/d", "1/2/3/4/5"} {
		if _, err := ParseRule(bad); err == nil {
			t.Fatalf("ParseRule(%q) accepted", bad)
		}
	}
	if got := RuleFromThresholds(r.Thresholds()); got != r {
		t.Fatalf("thresholds round trip = %v", got)
	}
}

func TestRuleNextBands(t *testing.T) {
	r := DefaultRule()
	cases := []struct {
		alive bool
		n     int
		want  bool
	}{
		{true, 3, false},
		{true, 4, true},
		{true, 5, true},
		{true, 6, false},
		{false, 1, false},
		{false, 2, true},
		{false, 6, true},
		{false, 7, false},
	}
	for _, c := range cases {
		if got := r.Next(c.alive, c.n); got != c.want {
			t.Fatalf("Next(%v, %d) = %v, want %v", c.alive, c.n, got, c.want)
		}
	}
}

func TestParameterControlsCoverSetters(t *testing.T) {
	w, err := New(core.Cube(8))
	if err != nil {
		t.Fatal(err)
	}
	for _, c := range w.ParameterControls() {
		switch c.Type {
		case core.ParamTypeBool:
			if !w.SetBoolParameter(c.Key, true) {
				t.Fatalf("bool control %q rejected", c.Key)
			}
		default:
			v := c.Clamp(1)
			if !w.SetIntParameter(c.Key, v) {
				t.Fatalf("int control %q rejected %d", c.Key, v)
			}
		}
		if _, ok := w.Parameters().Lookup(c.Key); !ok {
			t.Fatalf("control %q missing from snapshot", c.Key)
		}
	}
	if w.SetIntParameter("unknown", 1) || w.SetBoolParameter("unknown", true) {
		t.Fatal("unknown keys must be rejected")
	}
	if w.SetIntParameter("sx", 0) {
		t.Fatal("zero dimension must be rejected")
	}
	p, _ := w.Parameters().Lookup("el")
	if p.Value != "1" || w.Rule().ELower != 1 {
		t.Fatalf("el = %q, rule %v", p.Value, w.Rule())
	}
}
