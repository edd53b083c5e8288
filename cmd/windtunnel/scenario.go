package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/san-kum/windtunnel/internal/aero"
	"github.com/san-kum/windtunnel/internal/config"
	"github.com/san-kum/windtunnel/internal/flow"
	"github.com/san-kum/windtunnel/internal/integrators"
	"github.com/san-kum/windtunnel/internal/logging"
	"github.com/san-kum/windtunnel/internal/storage"
	"github.com/san-kum/windtunnel/internal/tunnel"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/spatial/r3"
)

func addScenarioFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&configFile, "config", "", "config file (json, yaml or toml)")
	f.StringVar(&preset, "preset", "", "start from a preset (see: windtunnel presets)")
	f.StringVar(&stlFile, "stl", "", "STL file to place in the tunnel")
	f.Float64Var(&length, "length", config.DefaultLength, "tunnel length (m)")
	f.Float64Var(&width, "width", config.DefaultWidth, "tunnel width (m)")
	f.Float64Var(&height, "height", config.DefaultHeight, "tunnel height (m)")
	f.Float64Var(&velocity, "velocity", config.DefaultVelocity, "flow velocity (m/s)")
	f.Float64Var(&density, "density", config.DefaultDensity, "fluid density (kg/m³)")
	f.Float64Var(&viscosity, "viscosity", config.DefaultViscosity, "dynamic viscosity (Pa·s)")
	f.Float64SliceVar(&scale, "scale", []float64{1, 1, 1}, "object scale sx,sy,sz")
	f.Float64SliceVar(&position, "pos", []float64{0, 0, 0}, "object position x,y,z")
	f.StringSliceVar(&rotate, "rotate", nil, "rotations applied after loading, e.g. z:90,x:-15")
	f.Float64Var(&cd, "cd", aero.DefaultDragCoefficient, "drag coefficient")
	f.Uint64Var(&seed, "seed", 0, "turbulence noise seed (default: time based)")
	f.BoolVar(&turbulence, "turbulence", false, "add noise to the streamline field")
	f.StringVar(&integrator, "integrator", "rk45", "streamline integrator (euler, rk4, rk45)")
}

// buildConfig layers defaults, preset, config file and explicitly set flags.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg = p
	}
	if configFile != "" {
		if err := config.LoadInto(configFile, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	flags := cmd.Flags()
	set := func(name string, dst *float64, v float64) {
		if flags.Changed(name) {
			*dst = v
		}
	}
	set("length", &cfg.Tunnel.Length, length)
	set("width", &cfg.Tunnel.Width, width)
	set("height", &cfg.Tunnel.Height, height)
	set("velocity", &cfg.Flow.Velocity, velocity)
	set("density", &cfg.Flow.Density, density)
	set("viscosity", &cfg.Flow.Viscosity, viscosity)

	if flags.Changed("scale") {
		if len(scale) != 3 {
			return nil, fmt.Errorf("--scale wants 3 values, got %d", len(scale))
		}
		cfg.Scale = config.Scale{X: scale[0], Y: scale[1], Z: scale[2]}
	}
	if flags.Changed("pos") {
		if len(position) != 3 {
			return nil, fmt.Errorf("%w, got %d", config.ErrBadPosition, len(position))
		}
		copy(cfg.ObjectPosition[:], position)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func buildSession(cmd *cobra.Command) (*tunnel.Session, error) {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return nil, err
	}
	if _, err := integrators.New(integrator); err != nil {
		return nil, err
	}
	trace := flow.DefaultTraceOptions()
	trace.Integrator = integrator

	opts := []tunnel.Option{
		tunnel.WithLogger(logging.Default()),
		tunnel.WithStore(storage.New(dataDir)),
		tunnel.WithDragCoefficient(cd),
		tunnel.WithTraceOptions(trace),
	}
	if cmd.Flags().Changed("seed") {
		opts = append(opts, tunnel.WithSeed(seed))
	}
	s := tunnel.New(cfg, opts...)
	s.Turbulence = turbulence

	if stlFile == "" {
		return s, nil
	}
	if err := placeObject(s, cfg); err != nil {
		return nil, err
	}
	return s, nil
}

// placeObject loads the STL, then applies rotations, scale and position in
// that order.
func placeObject(s *tunnel.Session, cfg *config.Config) error {
	if err := s.LoadSTL(stlFile); err != nil {
		return err
	}
	for _, rot := range rotate {
		axis, deg, err := parseRotation(rot)
		if err != nil {
			return err
		}
		if err := s.Rotate(axis, deg); err != nil {
			return err
		}
	}
	if cfg.Scale != (config.Scale{X: 1, Y: 1, Z: 1}) {
		if err := s.ApplyScale(); err != nil {
			return err
		}
	}
	p := cfg.ObjectPosition
	if p != [3]float64{} {
		if err := s.Move(r3.Vec{X: p[0], Y: p[1], Z: p[2]}); err != nil {
			return fmt.Errorf("%s: %w", s.Status, err)
		}
	}
	return nil
}

func parseRotation(rot string) (string, float64, error) {
	axis, deg, ok := strings.Cut(rot, ":")
	if !ok {
		return "", 0, fmt.Errorf("bad rotation %q (want axis:degrees)", rot)
	}
	v, err := strconv.ParseFloat(deg, 64)
	if err != nil {
		return "", 0, fmt.Errorf("bad rotation %q: %w", rot, err)
	}
	return strings.ToLower(strings.TrimSpace(axis)), v, nil
}
