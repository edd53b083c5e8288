package tunnel

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/san-kum/windtunnel/internal/aero"
	"github.com/san-kum/windtunnel/internal/config"
	"github.com/san-kum/windtunnel/internal/flow"
	"github.com/san-kum/windtunnel/internal/logging"
	"github.com/san-kum/windtunnel/internal/mesh"
	"github.com/san-kum/windtunnel/internal/storage"
	"github.com/san-kum/windtunnel/internal/viz"
)

const (
	DefaultMoveStep   = 0.5
	DefaultRotateStep = 15.0

	// Screenshot size in terminal cells.
	DefaultShotWidth  = 120
	DefaultShotHeight = 40
)

type Option func(*Session)

func WithLogger(l *logging.Logger) Option { return func(s *Session) { s.log = l } }

// WithStore enables SaveRun.
func WithStore(st *storage.Store) Option { return func(s *Session) { s.store = st } }

// WithSeed makes turbulence noise reproducible.
func WithSeed(seed uint64) Option {
	return func(s *Session) { s.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)) }
}

func WithDragCoefficient(cd float64) Option { return func(s *Session) { s.Cd = cd } }

func WithTraceOptions(opts flow.TraceOptions) Option { return func(s *Session) { s.Trace = opts } }

type Session struct {
	Config     *config.Config
	Cd         float64
	MoveStep   float64
	RotateStep float64
	Range      aero.Range
	Turbulence bool
	Trace      flow.TraceOptions

	Object   *mesh.Mesh
	MeshPath string
	original *mesh.Mesh

	SurfacePressure []float64
	Streamlines     []flow.Streamline
	Pressure        *flow.PressureVolume
	RangeData       *aero.SweepResult
	Result          *aero.Result

	Camera *viz.Camera
	Theme  viz.Theme

	// Status is the one-line outcome of the last action.
	Status string

	rng   *rand.Rand
	log   *logging.Logger
	store *storage.Store
}

func New(cfg *config.Config, opts ...Option) *Session {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	s := &Session{
		Config:     cfg.Clone(),
		Cd:         aero.DefaultDragCoefficient,
		MoveStep:   DefaultMoveStep,
		RotateStep: DefaultRotateStep,
		Range:      aero.DefaultRange,
		Trace:      flow.DefaultTraceOptions(),
		Camera:     viz.NewCamera(),
		Theme:      viz.ThemeLab,
		Status:     "Ready",
		log:        logging.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		seed := uint64(time.Now().UnixNano())
		s.rng = rand.New(rand.NewPCG(seed, seed>>1))
	}
	s.Camera.Fit(s.Config.Tunnel.Bounds())
	return s
}

func (s *Session) ok(msg string, fields ...logging.Field) {
	s.Status = msg
	s.log.Info(msg, fields...)
}

// fail reports err under the given status prefix and hands it back.
func (s *Session) fail(prefix string, err error) error {
	s.Status = fmt.Sprintf("%s: %v", prefix, err)
	s.log.Warn(prefix, logging.F("error", err))
	return err
}

// FrontalArea is the y-z extent of the loaded object, 0 without one.
func (s *Session) FrontalArea() float64 {
	if s.Object == nil {
		return 0
	}
	return aero.FrontalArea(aero.Bounds(s.Object.Bounds()))
}

// sweepArea falls back to the reference body when no object is loaded.
func (s *Session) sweepArea() float64 {
	if s.Object == nil {
		return aero.FrontalArea(aero.ReferenceBounds)
	}
	return s.FrontalArea()
}

// Reynolds uses the tunnel length as the characteristic length when no
// object is loaded and the object's streamwise extent otherwise.
func (s *Session) Reynolds() float64 {
	length := s.Config.Tunnel.Length
	if s.Object != nil {
		length = s.Object.Extent().X
	}
	return aero.Reynolds(s.Config.Flow.Density, s.Config.Flow.Velocity, length, s.Config.Flow.Viscosity)
}

// Scene is a snapshot of what the front ends draw.
func (s *Session) Scene() *viz.Scene {
	return &viz.Scene{
		Tunnel:          s.Config.Tunnel,
		Object:          s.Object,
		SurfacePressure: s.SurfacePressure,
		Streamlines:     s.Streamlines,
		Pressure:        s.Pressure,
	}
}

// ResultText formats the last single run for the result block.
func (s *Session) ResultText() string {
	if s.Result == nil {
		return ""
	}
	r := s.Result
	return fmt.Sprintf("Drag Force: %.2f N\nPower: %.2f W\nVelocity: %v m/s\nFrontal Area: %.2f m²",
		r.DragForce, r.Power, r.Velocity, r.FrontalArea)
}

func (s *Session) SetView(name string) error {
	v, err := viz.LookupView(name)
	if err != nil {
		return s.fail("View error", err)
	}
	s.Camera.SetView(v)
	s.Camera.Fit(s.Config.Tunnel.Bounds())
	s.ok(fmt.Sprintf("View: %s", v.Label))
	return nil
}

// SaveRun records the last single result, or the last range analysis when
// range is true, in the run store.
func (s *Session) SaveRun(ctx context.Context, rangeRun bool) (string, error) {
	if s.store == nil {
		return "", s.fail("Save run error", fmt.Errorf("no run store configured"))
	}
	if err := ctx.Err(); err != nil {
		return "", s.fail("Save run error", err)
	}
	run := storage.Run{Config: s.Config.Clone(), DragCoefficient: s.Cd, Mesh: s.MeshPath}
	if rangeRun {
		if s.RangeData == nil {
			return "", s.fail("Save run error", ErrNoRangeData)
		}
		run.Range = s.RangeData
		run.FrontalArea = s.sweepArea()
	} else {
		if s.Result == nil {
			return "", s.fail("Save run error", fmt.Errorf("no simulation result"))
		}
		res := *s.Result
		run.Single = &res
	}
	if err := s.store.Init(); err != nil {
		return "", s.fail("Save run error", err)
	}
	id, err := s.store.Save(run)
	if err != nil {
		return "", s.fail("Save run error", err)
	}
	s.ok(fmt.Sprintf("Run saved: %s", id), logging.F("run_id", id))
	return id, nil
}
