package config

import "sort"

var Presets = map[string]map[string]*Config{
	"oscillator": {
		"curtis118": {
			Model: "oscillator", Order: 4, Step: 1.0, T0: 0, T1: 110,
			Y0: []float64{0, 0},
		},
		"fine": {
			Model: "oscillator", Order: 4, Step: 0.25, T0: 0, T1: 110,
			Y0: []float64{0, 0},
		},
		"resonance": {
			Model: "oscillator", Order: 4, Step: 0.125, T0: 0, T1: 120,
			Y0:     []float64{0, 0},
			Params: map[string]float64{"omega": 1.0},
		},
	},
	"vanderpol": {
		"classic": {
			Model: "vanderpol", Order: 4, Step: 0.01, T0: 0, T1: 20,
			Y0: []float64{2, 0},
		},
		"relaxation": {
			Model: "vanderpol", Order: 4, Step: 0.002, T0: 0, T1: 40,
			Y0:     []float64{2, 0},
			Params: map[string]float64{"mu": 5.0},
		},
	},
	"lorenz": {
		"butterfly": {
			Model: "lorenz", Order: 4, Step: 0.005, T0: 0, T1: 50,
			Y0: []float64{1, 1, 1},
		},
	},
	"decay": {
		"unit": {
			Model: "decay", Order: 1, Step: 0.0625, T0: 0, T1: 5,
			Y0: []float64{1},
		},
	},
}

// GetPreset returns a copy of the named preset, or nil when either the
// model or the preset does not exist.
func GetPreset(model, preset string) *Config {
	modelPresets, ok := Presets[model]
	if !ok {
		return nil
	}
	cfg, ok := modelPresets[preset]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

func ListPresets(model string) []string {
	modelPresets, ok := Presets[model]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(modelPresets))
	for name := range modelPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
