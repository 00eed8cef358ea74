package config

var Presets = map[string]*Config{
	"small": {
		Rows: 6, Cols: 6, Keys: 4, IntervalMs: 500, Gradient: "gray", Scale: 32,
	},
	"default": {
		Rows: 10, Cols: 10, Keys: 5, IntervalMs: 1000, Gradient: "gray", Scale: 16,
	},
	"wide": {
		Rows: 8, Cols: 32, Keys: 12, IntervalMs: 400, Gradient: "viridis", Scale: 12,
	},
	"tall": {
		Rows: 32, Cols: 8, Keys: 24, IntervalMs: 250, Gradient: "magma", Scale: 12,
	},
	"long": {
		Rows: 16, Cols: 16, Keys: 120, IntervalMs: 100, Gradient: "plasma", Scale: 8,
	},
}

// GetPreset returns a copy of the named preset with unset fields defaulted,
// or nil when there is no such preset.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	cfg.Rows, cfg.Cols, cfg.Keys = p.Rows, p.Cols, p.Keys
	cfg.IntervalMs, cfg.Gradient, cfg.Scale = p.IntervalMs, p.Gradient, p.Scale
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
