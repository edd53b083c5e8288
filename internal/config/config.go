package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

const (
	DefaultLength    = 20.0
	DefaultWidth     = 10.0
	DefaultHeight    = 10.0
	DefaultVelocity  = 20.0
	DefaultDensity   = 1.225
	DefaultViscosity = 1.8e-5
	DefaultScale     = 1.0
)

var (
	ErrBadPosition = errors.New("config: object_position must have exactly 3 elements")
	ErrInvalid     = errors.New("config: invalid value")
)

type Config struct {
	Tunnel         Tunnel     `json:"tunnel" yaml:"tunnel" toml:"tunnel"`
	Flow           Flow       `json:"flow" yaml:"flow" toml:"flow"`
	Scale          Scale      `json:"scale" yaml:"scale" toml:"scale"`
	ObjectPosition [3]float64 `json:"object_position" yaml:"object_position" toml:"object_position"`
}

type Tunnel struct {
	Length float64 `json:"length" yaml:"length" toml:"length"`
	Width  float64 `json:"width" yaml:"width" toml:"width"`
	Height float64 `json:"height" yaml:"height" toml:"height"`
}

type Flow struct {
	Velocity  float64 `json:"velocity" yaml:"velocity" toml:"velocity"`
	Density   float64 `json:"density" yaml:"density" toml:"density"`
	Viscosity float64 `json:"viscosity" yaml:"viscosity" toml:"viscosity"`
}

type Scale struct {
	X float64 `json:"scale_x" yaml:"scale_x" toml:"scale_x"`
	Y float64 `json:"scale_y" yaml:"scale_y" toml:"scale_y"`
	Z float64 `json:"scale_z" yaml:"scale_z" toml:"scale_z"`
}

func DefaultConfig() *Config {
	return &Config{
		Tunnel: Tunnel{Length: DefaultLength, Width: DefaultWidth, Height: DefaultHeight},
		Flow:   Flow{Velocity: DefaultVelocity, Density: DefaultDensity, Viscosity: DefaultViscosity},
		Scale:  Scale{X: DefaultScale, Y: DefaultScale, Z: DefaultScale},
	}
}

// Bounds returns the tunnel box as xmin, xmax, ymin, ymax, zmin, zmax.
// The tunnel is centred on the origin in x and y and sits on z = 0.
func (t Tunnel) Bounds() [6]float64 {
	return [6]float64{-t.Length / 2, t.Length / 2, -t.Width / 2, t.Width / 2, 0, t.Height}
}

// Contains reports whether p lies inside the tunnel box, faces included.
func (t Tunnel) Contains(p [3]float64) bool {
	return math.Abs(p[0]) <= t.Length/2 && math.Abs(p[1]) <= t.Width/2 && p[2] >= 0 && p[2] <= t.Height
}

func (t Tunnel) Validate() error {
	for name, v := range map[string]float64{"length": t.Length, "width": t.Width, "height": t.Height} {
		if !finite(v) || v <= 0 {
			return fmt.Errorf("%w: tunnel %s must be positive, got %g", ErrInvalid, name, v)
		}
	}
	return nil
}

func (c *Config) Validate() error {
	if err := c.Tunnel.Validate(); err != nil {
		return err
	}
	flow := map[string]float64{"velocity": c.Flow.Velocity, "density": c.Flow.Density, "viscosity": c.Flow.Viscosity}
	for name, v := range flow {
		if !finite(v) {
			return fmt.Errorf("%w: flow %s is not finite", ErrInvalid, name)
		}
	}
	if c.Flow.Density < 0 || c.Flow.Viscosity < 0 {
		return fmt.Errorf("%w: density and viscosity must not be negative", ErrInvalid)
	}
	for name, v := range map[string]float64{"scale_x": c.Scale.X, "scale_y": c.Scale.Y, "scale_z": c.Scale.Z} {
		if !finite(v) || v <= 0 {
			return fmt.Errorf("%w: %s must be positive, got %g", ErrInvalid, name, v)
		}
	}
	for _, v := range c.ObjectPosition {
		if !finite(v) {
			return fmt.Errorf("%w: object_position is not finite", ErrInvalid)
		}
	}
	return nil
}

func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}

type Format int

const (
	FormatJSON Format = iota
	FormatYAML
	FormatTOML
)

// FormatFor picks the encoding from the file extension; JSON is the default.
func FormatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".toml":
		return FormatTOML
	default:
		return FormatJSON
	}
}

// Marshal encodes c; JSON output is indented by four spaces.
func Marshal(c *Config, f Format) ([]byte, error) {
	switch f {
	case FormatYAML:
		return yaml.Marshal(c)
	case FormatTOML:
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(c); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	default:
		data, err := json.MarshalIndent(c, "", "    ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	}
}

func Save(path string, c *Config) error {
	data, err := Marshal(c, FormatFor(path))
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Load reads path over the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if err := LoadInto(path, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadInto applies the file at path on top of cfg. Keys missing from the
// file keep their current value. cfg is untouched when an error is returned.
func LoadInto(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return Apply(data, FormatFor(path), cfg)
}

// Apply decodes data as a partial config and merges it into cfg.
func Apply(data []byte, f Format, cfg *Config) error {
	var p patch
	var err error
	switch f {
	case FormatYAML:
		err = yaml.Unmarshal(data, &p)
	case FormatTOML:
		_, err = toml.Decode(string(data), &p)
	default:
		err = json.Unmarshal(data, &p)
	}
	if err != nil {
		return fmt.Errorf("decode config: %w", err)
	}

	next := cfg.Clone()
	if err := p.apply(next); err != nil {
		return err
	}
	if err := next.Validate(); err != nil {
		return err
	}
	*cfg = *next
	return nil
}

type patch struct {
	Tunnel *struct {
		Length *float64 `json:"length" yaml:"length" toml:"length"`
		Width  *float64 `json:"width" yaml:"width" toml:"width"`
		Height *float64 `json:"height" yaml:"height" toml:"height"`
	} `json:"tunnel" yaml:"tunnel" toml:"tunnel"`
	Flow *struct {
		Velocity  *float64 `json:"velocity" yaml:"velocity" toml:"velocity"`
		Density   *float64 `json:"density" yaml:"density" toml:"density"`
		Viscosity *float64 `json:"viscosity" yaml:"viscosity" toml:"viscosity"`
	} `json:"flow" yaml:"flow" toml:"flow"`
	Scale *struct {
		X *float64 `json:"scale_x" yaml:"scale_x" toml:"scale_x"`
		Y *float64 `json:"scale_y" yaml:"scale_y" toml:"scale_y"`
		Z *float64 `json:"scale_z" yaml:"scale_z" toml:"scale_z"`
	} `json:"scale" yaml:"scale" toml:"scale"`
	ObjectPosition []float64 `json:"object_position" yaml:"object_position" toml:"object_position"`
}

func (p *patch) apply(c *Config) error {
	if t := p.Tunnel; t != nil {
		set(&c.Tunnel.Length, t.Length)
		set(&c.Tunnel.Width, t.Width)
		set(&c.Tunnel.Height, t.Height)
	}
	if f := p.Flow; f != nil {
		set(&c.Flow.Velocity, f.Velocity)
		set(&c.Flow.Density, f.Density)
		set(&c.Flow.Viscosity, f.Viscosity)
	}
	if s := p.Scale; s != nil {
		set(&c.Scale.X, s.X)
		set(&c.Scale.Y, s.Y)
		set(&c.Scale.Z, s.Z)
	}
	if p.ObjectPosition != nil {
		if len(p.ObjectPosition) != 3 {
			return fmt.Errorf("%w, got %d", ErrBadPosition, len(p.ObjectPosition))
		}
		copy(c.ObjectPosition[:], p.ObjectPosition)
	}
	return nil
}

func set(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
