package gui

import (
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/windtunnel/internal/viz"
	"gonum.org/v1/gonum/spatial/r3"
)

// vec maps the z-up tunnel frame onto raylib's y-up frame.
func vec(p r3.Vec) rl.Vector3 {
	return rl.NewVector3(float32(p.X), float32(p.Z), float32(-p.Y))
}

func rgb(r, g, b uint8) rl.Color { return rl.NewColor(r, g, b, 255) }

func (a *App) layer(l viz.Layer) rl.Color {
	return rgb(a.Sess.Theme.LayerRGB(l))
}

func (a *App) drawScene() {
	s := a.Sess
	t := s.Config.Tunnel

	// floor grid, one line per metre
	for x := -t.Length / 2; x <= t.Length/2; x++ {
		rl.DrawLine3D(vec(r3.Vec{X: x, Y: -t.Width / 2}), vec(r3.Vec{X: x, Y: t.Width / 2}), ColGrid)
	}

	rl.DrawCubeWires(vec(r3.Vec{Z: t.Height / 2}), float32(t.Length), float32(t.Height), float32(t.Width), a.layer(viz.LayerTunnel))

	// wind direction arrow above the inlet
	tail := r3.Vec{X: -t.Length / 2, Z: t.Height * 1.1}
	head := r3.Add(tail, r3.Vec{X: t.Length / 4})
	wind := a.layer(viz.LayerWind)
	rl.DrawLine3D(vec(tail), vec(head), wind)
	rl.DrawCylinderEx(vec(r3.Sub(head, r3.Vec{X: t.Length / 40})), vec(head), float32(t.Height/60), 0, 8, wind)

	if pv := s.Pressure; pv != nil {
		lo, hi := a.layer(viz.LayerPressureLow), a.layer(viz.LayerPressureHigh)
		span := pv.Max - pv.Min
		for i, p := range pv.Points {
			f := 0.0
			if span > 0 {
				f = (pv.Values[i] - pv.Min) / span
			}
			c := rl.ColorLerp(lo, hi, float32(f))
			rl.DrawCube(vec(p), 0.08, 0.08, 0.08, rl.ColorAlpha(c, 0.6))
		}
	}

	stream := a.layer(viz.LayerStream)
	for _, line := range s.Streamlines {
		for i := 1; i < len(line.Points); i++ {
			rl.DrawLine3D(vec(line.Points[i-1]), vec(line.Points[i]), stream)
		}
	}

	a.drawObject()
}

// drawObject shades faces by surface pressure when it has been computed.
func (a *App) drawObject() {
	m := a.Sess.Object
	if m == nil {
		return
	}
	sp := a.Sess.SurfacePressure
	shaded := len(sp) == m.NumVertices()
	var lo, hi float64
	if shaded {
		lo, hi = sp[0], sp[0]
		for _, v := range sp {
			lo, hi = min(lo, v), max(hi, v)
		}
	}
	base := a.layer(viz.LayerObject)
	cLow, cHigh := a.layer(viz.LayerPressureLow), a.layer(viz.LayerObjectHot)
	wire := rl.ColorAlpha(base, 0.35)

	for i, f := range m.Faces {
		t := m.Triangle(i)
		c := rl.ColorAlpha(base, 0.8)
		if shaded && hi > lo {
			mean := (sp[f[0]] + sp[f[1]] + sp[f[2]]) / 3
			c = rl.ColorLerp(cLow, cHigh, float32((mean-lo)/(hi-lo)))
		}
		// both windings so faces show from either side
		rl.DrawTriangle3D(vec(t[0]), vec(t[1]), vec(t[2]), c)
		rl.DrawTriangle3D(vec(t[0]), vec(t[2]), vec(t[1]), c)
		rl.DrawLine3D(vec(t[0]), vec(t[1]), wire)
		rl.DrawLine3D(vec(t[1]), vec(t[2]), wire)
		rl.DrawLine3D(vec(t[2]), vec(t[0]), wire)
	}
}

// DrawRangeGraph plots drag and power against velocity, each normalised to
// its own maximum.
func (a *App) DrawRangeGraph(x, y, w, h int) {
	d := a.Sess.RangeData
	rl.DrawRectangleLines(int32(x), int32(y), int32(w), int32(h), ColTextDim)
	a.drawText("drag", x+6, y+4, 12, a.layer(viz.LayerPressureLow))
	a.drawText("power", x+50, y+4, 12, a.layer(viz.LayerObjectHot))

	series := []struct {
		vals []float64
		col  rl.Color
	}{
		{d.DragForces, a.layer(viz.LayerPressureLow)},
		{d.Powers, a.layer(viz.LayerObjectHot)},
	}
	n := d.Len()
	for _, sr := range series {
		top := 0.0
		for _, v := range sr.vals {
			top = max(top, v)
		}
		if top == 0 {
			top = 1
		}
		px := func(i int) float32 { return float32(x) + float32(w)*float32(i)/float32(n-1) }
		py := func(v float64) float32 { return float32(y+h) - float32(h)*float32(v/top) }
		for i := 1; i < n; i++ {
			rl.DrawLineV(rl.NewVector2(px(i-1), py(sr.vals[i-1])), rl.NewVector2(px(i), py(sr.vals[i])), sr.col)
		}
	}
}

func splitLines(s string) []string { return strings.Split(s, "\n") }

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

func isError(status string) bool {
	return strings.Contains(status, "error") || strings.HasPrefix(status, "Movement blocked") || strings.HasPrefix(status, "No ")
}
