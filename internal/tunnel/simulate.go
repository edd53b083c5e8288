package tunnel

import (
	"context"
	"fmt"

	"github.com/san-kum/windtunnel/internal/aero"
	"github.com/san-kum/windtunnel/internal/flow"
	"github.com/san-kum/windtunnel/internal/logging"
)

// RunSimulation evaluates drag and power at the configured velocity and
// refreshes every field. Nothing is replaced unless all fields succeed.
func (s *Session) RunSimulation(ctx context.Context) error {
	f := s.Config.Flow
	res := aero.Evaluate(f.Density, f.Velocity, s.FrontalArea(), s.Cd)

	lines, err := s.traceStreamlines(ctx)
	if err != nil {
		return s.fail("Simulation error", err)
	}
	pv, err := s.sampleTunnelPressure()
	if err != nil {
		return s.fail("Simulation error", err)
	}

	s.Result = &res
	if s.Object != nil {
		s.SurfacePressure = flow.SurfacePressure(s.Object, f.Velocity, f.Density)
	}
	s.Streamlines = lines
	s.Pressure = pv
	s.log.Info("simulation",
		logging.F("velocity", res.Velocity),
		logging.F("drag_N", res.DragForce),
		logging.F("power_W", res.Power),
		logging.F("area", res.FrontalArea))
	s.Status = s.ResultText()
	return nil
}

func (s *Session) RangeAnalysis(r aero.Range) error {
	data, err := aero.Sweep(r, s.Config.Flow.Density, s.sweepArea(), s.Cd)
	if err != nil {
		return s.fail("Range analysis error", err)
	}
	s.Range = r
	s.RangeData = data
	s.ok("Range analysis completed.", logging.F("samples", data.Len()))
	return nil
}

func (s *Session) VisualizePressure() error {
	if s.Object == nil {
		s.Status = "No object loaded for pressure visualization."
		return ErrNoObject
	}
	f := s.Config.Flow
	s.SurfacePressure = flow.SurfacePressure(s.Object, f.Velocity, f.Density)
	s.ok("Object pressure visualization updated")
	return nil
}

func (s *Session) VisualizeStreamlines(ctx context.Context) error {
	lines, err := s.traceStreamlines(ctx)
	if err != nil {
		return s.fail("Streamlines error", err)
	}
	s.Streamlines = lines
	if countPoints(s.Streamlines) == 0 {
		s.ok("No streamlines to display")
		return nil
	}
	s.ok("Streamlines visualization updated", logging.F("lines", len(s.Streamlines)))
	return nil
}

func (s *Session) VisualizeTunnelPressure() error {
	pv, err := s.sampleTunnelPressure()
	if err != nil {
		return s.fail("Pressure volume error", err)
	}
	s.Pressure = pv
	s.ok("Tunnel pressure visualization updated", logging.F("points", s.Pressure.Len()))
	return nil
}

// ToggleTurbulence flips the noise flag and re-traces streamlines if any
// are shown. A failed re-trace restores the previous flag.
func (s *Session) ToggleTurbulence(ctx context.Context) error {
	s.Turbulence = !s.Turbulence
	state := "OFF"
	if s.Turbulence {
		state = "ON"
	}
	if len(s.Streamlines) > 0 {
		lines, err := s.traceStreamlines(ctx)
		if err != nil {
			s.Turbulence = !s.Turbulence
			return s.fail("Streamlines error", err)
		}
		s.Streamlines = lines
	}
	s.ok(fmt.Sprintf("Turbulence simulation %s", state))
	return nil
}

func (s *Session) traceStreamlines(ctx context.Context) ([]flow.Streamline, error) {
	field, err := flow.StreamlineField(s.Config.Tunnel, s.Config.Flow.Velocity, s.Turbulence, s.rng)
	if err != nil {
		return nil, err
	}
	return flow.Trace(ctx, field, flow.InletSeeds(s.Config.Tunnel), s.Trace)
}

func (s *Session) sampleTunnelPressure() (*flow.PressureVolume, error) {
	return flow.TunnelPressure(s.Config.Tunnel, s.Config.Flow.Velocity, s.Config.Flow.Density)
}

func countPoints(lines []flow.Streamline) int {
	n := 0
	for _, l := range lines {
		n += len(l.Points)
	}
	return n
}
