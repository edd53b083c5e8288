package gui

import (
	"context"
	"fmt"
	"math"
	"path/filepath"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/windtunnel/internal/logging"
	"github.com/san-kum/windtunnel/internal/tunnel"
	"github.com/san-kum/windtunnel/internal/viz"
	"gonum.org/v1/gonum/spatial/r3"
)

var (
	ColText    = rl.NewColor(140, 140, 140, 255)
	ColTextDim = rl.NewColor(60, 60, 60, 255)
	ColSelect  = rl.NewColor(255, 255, 255, 255)
	ColError   = rl.NewColor(255, 68, 68, 255)
	ColGrid    = rl.NewColor(30, 30, 30, 255)
)

const (
	screenW = 1280
	screenH = 720
)

type App struct {
	Sess   *tunnel.Session
	Camera rl.Camera3D
	Font   rl.Font
	OutDir string

	// orbit state in degrees, distance in metres
	Azimuth   float64
	Elevation float64
	Distance  float64

	log *logging.Logger
}

func initWindow() {
	rl.InitWindow(screenW, screenH, "windtunnel")
	rl.SetTargetFPS(60)
	rl.SetExitKey(0)
}

func loadFont() rl.Font {
	font := rl.LoadFontEx("/usr/share/fonts/liberation/LiberationMono-Regular.ttf", 32, nil, 0)
	if font.Texture.ID == 0 {
		return rl.GetFontDefault()
	}
	rl.SetTextureFilter(font.Texture, rl.FilterBilinear)
	return font
}

func NewApp(sess *tunnel.Session, outDir string) *App {
	a := &App{
		Sess:   sess,
		Font:   loadFont(),
		OutDir: outDir,
		Camera: rl.NewCamera3D(
			rl.NewVector3(0, 0, 50),
			rl.NewVector3(0, 0, 0),
			rl.NewVector3(0, 1, 0),
			45.0,
			rl.CameraPerspective,
		),
		log: logging.Default(),
	}
	a.syncView()
	return a
}

// Run opens the window and blocks until it is closed.
func Run(sess *tunnel.Session, outDir string) {
	initWindow()
	defer rl.CloseWindow()
	app := NewApp(sess, outDir)
	app.RunLoop()
}

func (a *App) RunLoop() {
	for !rl.WindowShouldClose() {
		if !a.Update() {
			return
		}
		a.Draw()
	}
}

// syncView copies the session camera angles and fits the tunnel.
func (a *App) syncView() {
	c := a.Sess.Camera
	a.Azimuth, a.Elevation = c.Azimuth, c.Elevation
	t := a.Sess.Config.Tunnel
	a.Distance = 1.6 * math.Sqrt(t.Length*t.Length+t.Width*t.Width+t.Height*t.Height) / c.Zoom
	a.placeCamera()
}

func (a *App) placeCamera() {
	t := a.Sess.Config.Tunnel
	target := r3.Vec{Z: t.Height / 2}
	az := a.Azimuth * math.Pi / 180
	el := a.Elevation * math.Pi / 180
	// keep the up vector defined when looking straight down
	el = math.Max(-89.5*math.Pi/180, math.Min(89.5*math.Pi/180, el))
	// the default iso view looks at the tunnel from the -x, -y quadrant
	dir := r3.Vec{
		X: -math.Cos(el) * math.Cos(az),
		Y: -math.Cos(el) * math.Sin(az),
		Z: math.Sin(el),
	}
	a.Camera.Target = vec(target)
	a.Camera.Position = vec(r3.Add(target, r3.Scale(a.Distance, dir)))
}

func (a *App) out(name string) string { return filepath.Join(a.OutDir, name) }

// Update handles input for one frame. It returns false when the user quits.
func (a *App) Update() bool {
	s := a.Sess
	ctx := context.Background()
	shift := rl.IsKeyDown(rl.KeyLeftShift) || rl.IsKeyDown(rl.KeyRightShift)

	if rl.IsKeyPressed(rl.KeyQ) || rl.IsKeyPressed(rl.KeyEscape) {
		return false
	}

	switch {
	case rl.IsKeyPressed(rl.KeyR):
		s.RunSimulation(ctx)
	case rl.IsKeyPressed(rl.KeyA):
		s.RangeAnalysis(s.Range)
	case rl.IsKeyPressed(rl.KeyP):
		s.VisualizePressure()
	case rl.IsKeyPressed(rl.KeyS):
		s.VisualizeStreamlines(ctx)
	case rl.IsKeyPressed(rl.KeyT):
		s.VisualizeTunnelPressure()
	case rl.IsKeyPressed(rl.KeyB):
		s.ToggleTurbulence(ctx)
	case rl.IsKeyPressed(rl.KeyG):
		s.ApplyScale()
	case rl.IsKeyPressed(rl.KeyZero):
		s.ResetObject()
	case rl.IsKeyPressed(rl.KeyTab):
		s.Theme = viz.NextTheme(s.Theme.Name)
		s.Status = fmt.Sprintf("Theme: %s", s.Theme.Name)
	case rl.IsKeyPressed(rl.KeyE):
		if shift {
			s.ExportRange(a.out("range.json"))
		} else {
			s.ExportResult(a.out("result.json"), false)
		}
	case rl.IsKeyPressed(rl.KeyF5):
		s.SaveConfig(a.out("windtunnel.json"))
	case rl.IsKeyPressed(rl.KeyF9):
		s.LoadConfig(a.out("windtunnel.json"))
	case rl.IsKeyPressed(rl.KeyF6):
		s.PlotRange(a.out("range.png"))
	case rl.IsKeyPressed(rl.KeyF12):
		name := "screenshot.png"
		rl.TakeScreenshot(name)
		s.Status = fmt.Sprintf("Screenshot saved to: %s", name)
		a.log.Info("screenshot", logging.F("path", name))
	}

	for i, key := range []int32{rl.KeyOne, rl.KeyTwo, rl.KeyThree, rl.KeyFour} {
		if rl.IsKeyPressed(key) {
			if s.SetView(viz.Views()[i].Name) == nil {
				a.syncView()
			}
		}
	}

	a.updateObject(shift)
	a.updateCamera()
	return true
}

func (a *App) updateObject(shift bool) {
	s := a.Sess
	step := s.MoveStep
	moves := []struct {
		key int32
		d   r3.Vec
	}{
		{rl.KeyRight, r3.Vec{X: step}},
		{rl.KeyLeft, r3.Vec{X: -step}},
		{rl.KeyUp, r3.Vec{Z: step}},
		{rl.KeyDown, r3.Vec{Z: -step}},
		{rl.KeyPageUp, r3.Vec{Y: step}},
		{rl.KeyPageDown, r3.Vec{Y: -step}},
	}
	for _, mv := range moves {
		if rl.IsKeyPressed(mv.key) {
			s.Move(mv.d)
		}
	}

	deg := s.RotateStep
	if shift {
		deg = -deg
	}
	for axis, key := range map[string]int32{"x": rl.KeyX, "y": rl.KeyY, "z": rl.KeyZ} {
		if rl.IsKeyPressed(key) {
			s.Rotate(axis, deg)
		}
	}
}

func (a *App) updateCamera() {
	if rl.IsMouseButtonDown(rl.MouseRightButton) {
		delta := rl.GetMouseDelta()
		a.Azimuth -= float64(delta.X) * 0.4
		a.Elevation = math.Max(-89, math.Min(89, a.Elevation+float64(delta.Y)*0.4))
	}
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		a.Distance = math.Max(1, a.Distance*(1-0.1*float64(wheel)))
	}
	a.placeCamera()
}

func (a *App) Draw() {
	bg := rgb(a.Sess.Theme.BackgroundRGB())
	rl.BeginDrawing()
	rl.ClearBackground(bg)

	rl.BeginMode3D(a.Camera)
	a.drawScene()
	rl.EndMode3D()

	a.DrawHUD()
	rl.EndDrawing()
}

func (a *App) DrawHUD() {
	s := a.Sess
	a.drawText("windtunnel", 30, 30, 24, ColSelect)
	f := s.Config.Flow
	a.drawText(fmt.Sprintf(":: v %.1f m/s  rho %.3f  cd %.2f", f.Velocity, f.Density, s.Cd), 180, 34, 16, ColText)

	y := 80
	if txt := s.ResultText(); txt != "" {
		for _, line := range splitLines(txt) {
			a.drawText(line, 30, y, 16, ColText)
			y += 20
		}
	}
	turb := "OFF"
	if s.Turbulence {
		turb = "ON"
	}
	a.drawText(fmt.Sprintf("turbulence %s", turb), 30, y+10, 14, ColTextDim)

	if d := s.RangeData; d != nil && d.Len() > 1 {
		a.DrawRangeGraph(900, 80, 340, 160)
	}

	col := ColText
	if isError(s.Status) {
		col = ColError
	}
	a.drawText(firstLine(s.Status), 30, 650, 16, col)
	a.drawText("[R] RUN [A] RANGE [S] STREAM [T] TUNNEL [P] SURFACE [B] TURB [0] RESET [1-4] VIEW [F12] SHOT [Q] QUIT", 30, 690, 14, ColTextDim)
	a.drawText(fmt.Sprintf("%d FPS", int32(rl.GetFPS())), 1180, 30, 14, ColTextDim)
}

func (a *App) drawText(text string, x, y int, size int, color rl.Color) {
	rl.DrawTextEx(a.Font, text, rl.NewVector2(float32(x), float32(y)), float32(size), 1, color)
}
