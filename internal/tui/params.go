package tui

import (
	"github.com/san-kum/windtunnel/internal/config"
	"github.com/san-kum/windtunnel/internal/tunnel"
)

// param is one editable row of the parameter panel.
type param struct {
	name  string
	unit  string
	delta float64
	get   func(s *tunnel.Session) float64
	set   func(s *tunnel.Session, v float64) error
}

// tunnelDim edits one tunnel dimension through ApplyTunnel so the session
// validates it and drops the stale pressure volume.
func tunnelDim(pick func(t *config.Tunnel) *float64) func(*tunnel.Session, float64) error {
	return func(s *tunnel.Session, v float64) error {
		t := s.Config.Tunnel
		*pick(&t) = v
		return s.ApplyTunnel(t)
	}
}

func plain(pick func(s *tunnel.Session) *float64) (func(*tunnel.Session) float64, func(*tunnel.Session, float64) error) {
	get := func(s *tunnel.Session) float64 { return *pick(s) }
	set := func(s *tunnel.Session, v float64) error {
		*pick(s) = v
		return nil
	}
	return get, set
}

func newParams() []param {
	out := []param{
		{name: "length", unit: "m", delta: 1,
			get: func(s *tunnel.Session) float64 { return s.Config.Tunnel.Length },
			set: tunnelDim(func(t *config.Tunnel) *float64 { return &t.Length })},
		{name: "width", unit: "m", delta: 1,
			get: func(s *tunnel.Session) float64 { return s.Config.Tunnel.Width },
			set: tunnelDim(func(t *config.Tunnel) *float64 { return &t.Width })},
		{name: "height", unit: "m", delta: 1,
			get: func(s *tunnel.Session) float64 { return s.Config.Tunnel.Height },
			set: tunnelDim(func(t *config.Tunnel) *float64 { return &t.Height })},
	}

	fields := []struct {
		name, unit string
		delta      float64
		pick       func(s *tunnel.Session) *float64
	}{
		{"velocity", "m/s", 1, func(s *tunnel.Session) *float64 { return &s.Config.Flow.Velocity }},
		{"density", "kg/m³", 0.025, func(s *tunnel.Session) *float64 { return &s.Config.Flow.Density }},
		{"viscosity", "Pa·s", 1e-6, func(s *tunnel.Session) *float64 { return &s.Config.Flow.Viscosity }},
		{"scale_x", "", 0.1, func(s *tunnel.Session) *float64 { return &s.Config.Scale.X }},
		{"scale_y", "", 0.1, func(s *tunnel.Session) *float64 { return &s.Config.Scale.Y }},
		{"scale_z", "", 0.1, func(s *tunnel.Session) *float64 { return &s.Config.Scale.Z }},
		{"cd", "", 0.01, func(s *tunnel.Session) *float64 { return &s.Cd }},
		{"move_step", "m", 0.1, func(s *tunnel.Session) *float64 { return &s.MoveStep }},
		{"range_start", "m/s", 1, func(s *tunnel.Session) *float64 { return &s.Range.Start }},
		{"range_end", "m/s", 1, func(s *tunnel.Session) *float64 { return &s.Range.End }},
		{"range_step", "m/s", 0.1, func(s *tunnel.Session) *float64 { return &s.Range.Step }},
	}
	for _, f := range fields {
		get, set := plain(f.pick)
		out = append(out, param{name: f.name, unit: f.unit, delta: f.delta, get: get, set: set})
	}
	return out
}
