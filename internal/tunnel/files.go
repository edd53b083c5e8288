package tunnel

import (
	"fmt"

	"github.com/san-kum/windtunnel/internal/aero"
	"github.com/san-kum/windtunnel/internal/config"
	"github.com/san-kum/windtunnel/internal/export"
	"github.com/san-kum/windtunnel/internal/viz"
	"gonum.org/v1/gonum/spatial/r3"
)

func (s *Session) SaveConfig(path string) error {
	if path == "" {
		return s.fail("Save config error", ErrNoPath)
	}
	if err := config.Save(path, s.Config); err != nil {
		return s.fail("Save config error", err)
	}
	s.ok(fmt.Sprintf("Config saved to: %s", path))
	return nil
}

// LoadConfig merges the file at path into the current config. Keys the file
// omits keep their value. A loaded object follows a changed object_position.
func (s *Session) LoadConfig(path string) error {
	if path == "" {
		s.ok("Config load cancelled.")
		return nil
	}
	next := s.Config.Clone()
	if err := config.LoadInto(path, next); err != nil {
		return s.fail("Load config error", err)
	}

	old := s.Config.ObjectPosition
	s.Config = next
	if s.Object != nil {
		p := next.ObjectPosition
		s.Object.Translate(r3.Vec{X: p[0] - old[0], Y: p[1] - old[1], Z: p[2] - old[2]})
		s.SurfacePressure = nil
	}
	if err := s.ApplyTunnel(next.Tunnel); err != nil {
		return err
	}
	s.ok("Config loaded.")
	return nil
}

// ApplyPreset replaces the tunnel, flow and scale values with a preset.
func (s *Session) ApplyPreset(name string) error {
	p := config.GetPreset(name)
	if p == nil {
		return s.fail("Preset error", fmt.Errorf("unknown preset %q", name))
	}
	s.Config.Flow = p.Flow
	s.Config.Scale = p.Scale
	if err := s.ApplyTunnel(p.Tunnel); err != nil {
		return err
	}
	s.ok(fmt.Sprintf("Preset loaded: %s", name))
	return nil
}

// ExportResult writes the single run at the current settings. The result is
// recomputed so it always matches the displayed parameters.
func (s *Session) ExportResult(path string, withMetadata bool) error {
	if path == "" {
		return s.fail("Export error", ErrNoPath)
	}
	f := s.Config.Flow
	res := aero.Evaluate(f.Density, f.Velocity, s.FrontalArea(), s.Cd)
	var meta *config.Config
	if withMetadata {
		meta = s.Config
	}
	if err := export.SaveResult(path, res, meta); err != nil {
		return s.fail("Export error", err)
	}
	s.ok(fmt.Sprintf("Single run data exported to: %s", path))
	return nil
}

func (s *Session) ExportRange(path string) error {
	if s.RangeData == nil {
		s.Status = "No range analysis data to export."
		return ErrNoRangeData
	}
	if path == "" {
		return s.fail("Export error", ErrNoPath)
	}
	if err := export.SaveRange(path, s.RangeData, s.Config); err != nil {
		return s.fail("Export error", err)
	}
	s.ok(fmt.Sprintf("Range data exported to: %s", path))
	return nil
}

// PlotRange writes the last range analysis as a PNG chart.
func (s *Session) PlotRange(path string) error {
	if s.RangeData == nil {
		s.Status = "No range analysis data to export."
		return ErrNoRangeData
	}
	if path == "" {
		return s.fail("Plot error", ErrNoPath)
	}
	if err := export.PlotRange(path, s.RangeData); err != nil {
		return s.fail("Plot error", err)
	}
	s.ok(fmt.Sprintf("Range plot saved to: %s", path))
	return nil
}

// Render draws the scene from the session camera onto a fresh canvas.
func (s *Session) Render(width, height int) *viz.Canvas {
	c := viz.NewCanvas(width, height)
	s.Scene().Draw(c, s.Camera)
	return c
}

// Screenshot saves the scene as PNG, or SVG for a ".svg" path.
func (s *Session) Screenshot(path string) error {
	if path == "" {
		return s.fail("Screenshot error", ErrNoPath)
	}
	c := s.Render(DefaultShotWidth, DefaultShotHeight)
	if err := export.SaveScreenshot(path, c, s.Theme); err != nil {
		return s.fail("Screenshot error", err)
	}
	s.ok(fmt.Sprintf("Screenshot saved to: %s", path))
	return nil
}
