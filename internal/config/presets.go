package config

import "sort"

var Presets = map[string]*Config{
	"car": {
		Tunnel: Tunnel{Length: 20, Width: 10, Height: 10},
		Flow:   Flow{Velocity: 30, Density: 1.225, Viscosity: 1.8e-5},
		Scale:  Scale{X: 1, Y: 1, Z: 1},
	},
	"cyclist": {
		Tunnel: Tunnel{Length: 8, Width: 4, Height: 4},
		Flow:   Flow{Velocity: 12, Density: 1.225, Viscosity: 1.8e-5},
		Scale:  Scale{X: 1, Y: 1, Z: 1},
	},
	"truck": {
		Tunnel: Tunnel{Length: 40, Width: 16, Height: 12},
		Flow:   Flow{Velocity: 25, Density: 1.225, Viscosity: 1.8e-5},
		Scale:  Scale{X: 1, Y: 1, Z: 1},
	},
	"drone": {
		Tunnel:         Tunnel{Length: 4, Width: 2, Height: 2},
		Flow:           Flow{Velocity: 15, Density: 1.225, Viscosity: 1.8e-5},
		Scale:          Scale{X: 0.5, Y: 0.5, Z: 0.5},
		ObjectPosition: [3]float64{0, 0, 0.5},
	},
	"water": {
		Tunnel: Tunnel{Length: 20, Width: 10, Height: 10},
		Flow:   Flow{Velocity: 2, Density: 997, Viscosity: 8.9e-4},
		Scale:  Scale{X: 1, Y: 1, Z: 1},
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
