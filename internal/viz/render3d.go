package viz

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/spatial/r3"
)

// View is a named camera orientation. Azimuth turns the camera about the
// vertical z axis, elevation lifts it above the xy plane; both in degrees.
type View struct {
	Name      string
	Label     string
	Azimuth   float64
	Elevation float64
}

var views = []View{
	{Name: "xy", Label: "Top", Azimuth: 0, Elevation: 90},
	{Name: "xz", Label: "Side", Azimuth: 0, Elevation: 0},
	{Name: "yz", Label: "Front", Azimuth: -90, Elevation: 0},
	{Name: "iso", Label: "Isometric", Azimuth: 45, Elevation: 30},
}

// Views lists the named views in display order.
func Views() []View {
	out := make([]View, len(views))
	copy(out, views)
	return out
}

func LookupView(name string) (View, error) {
	for _, v := range views {
		if v.Name == name {
			return v, nil
		}
	}
	return View{}, fmt.Errorf("unknown view %q (want xy, xz, yz or iso)", name)
}

// Camera manages 3D projection to a 2D plane. With Distance zero the
// projection is orthographic.
type Camera struct {
	Target    r3.Vec
	Azimuth   float64
	Elevation float64
	Zoom      float64
	Extent    float64
	Distance  float64
	View      string
}

func NewCamera() *Camera {
	c := &Camera{Zoom: 1.0, Extent: 20}
	c.SetView(views[3])
	return c
}

func (c *Camera) SetView(v View) {
	c.Azimuth, c.Elevation, c.View = v.Azimuth, v.Elevation, v.Name
}

func (c *Camera) Orbit(dAz, dEl float64) {
	c.Azimuth = math.Mod(c.Azimuth+dAz, 360)
	c.Elevation = math.Max(-90, math.Min(90, c.Elevation+dEl))
	c.View = ""
}

func (c *Camera) ZoomIn()  { c.Zoom = math.Min(10, c.Zoom*1.2) }
func (c *Camera) ZoomOut() { c.Zoom = math.Max(0.1, c.Zoom/1.2) }

// Fit centres the camera on bounds and sizes the view to hold them.
func (c *Camera) Fit(bounds [6]float64) {
	lo := r3.Vec{X: bounds[0], Y: bounds[2], Z: bounds[4]}
	hi := r3.Vec{X: bounds[1], Y: bounds[3], Z: bounds[5]}
	c.Target = r3.Scale(0.5, r3.Add(lo, hi))
	c.Extent = math.Max(r3.Norm(r3.Sub(hi, lo)), 1e-6)
}

// basis returns the screen right and up vectors and the unit vector from
// the target toward the camera.
func (c *Camera) basis() (right, up, toward r3.Vec) {
	az := c.Azimuth * math.Pi / 180
	el := c.Elevation * math.Pi / 180
	toward = r3.Vec{X: math.Sin(az) * math.Cos(el), Y: -math.Cos(az) * math.Cos(el), Z: math.Sin(el)}
	right = r3.Vec{X: math.Cos(az), Y: math.Sin(az)}
	up = r3.Cross(right, r3.Scale(-1, toward))
	return right, up, toward
}

// Project converts world coordinates to screen coordinates on a sw x sh
// surface. Returns x, y, depth toward the camera and visibility.
func (c *Camera) Project(p r3.Vec, sw, sh int) (int, int, float64, bool) {
	right, up, toward := c.basis()
	d := r3.Sub(p, c.Target)
	x, y, z := r3.Dot(d, right), r3.Dot(d, up), r3.Dot(d, toward)

	scale := 1.0
	if c.Distance > 0 {
		if z >= c.Distance*0.99 {
			return 0, 0, 0, false
		}
		scale = c.Distance / (c.Distance - z)
	}
	minDim := float64(sh)
	if float64(sw) < minDim {
		minDim = float64(sw)
	}
	pScale := minDim / c.Extent * c.Zoom * scale
	sx := int(math.Round(x*pScale)) + sw/2
	sy := int(math.Round(-y*pScale)) + sh/2
	return sx, sy, z, sx >= 0 && sx < sw && sy >= 0 && sy < sh
}

type Edge struct {
	Start, End r3.Vec
	Layer      Layer
}

type Wireframe struct{ Edges []Edge }

func NewWireframe() *Wireframe                    { return &Wireframe{Edges: make([]Edge, 0)} }
func (w *Wireframe) AddEdge(s, e r3.Vec, l Layer) { w.Edges = append(w.Edges, Edge{s, e, l}) }
func (w *Wireframe) AddPoint(p r3.Vec, l Layer)   { w.Edges = append(w.Edges, Edge{p, p, l}) }
func (w *Wireframe) Clear()                       { w.Edges = w.Edges[:0] }

type ProjectedEdge struct {
	X1, Y1, X2, Y2 int
	Depth          float64
	Layer          Layer
}

// Render3D draws the wireframe to the canvas using a simple painter's
// algorithm: far edges first so near ones own the cell colour.
func Render3D(c *Canvas, w *Wireframe, cam *Camera) {
	if c == nil || w == nil || cam == nil {
		return
	}
	sw, sh := c.SubWidth(), c.SubHeight()
	proj := make([]ProjectedEdge, 0, len(w.Edges))
	for _, e := range w.Edges {
		x1, y1, d1, v1 := cam.Project(e.Start, sw, sh)
		x2, y2, d2, v2 := cam.Project(e.End, sw, sh)
		if v1 || v2 {
			proj = append(proj, ProjectedEdge{x1, y1, x2, y2, (d1 + d2) / 2, e.Layer})
		}
	}
	sort.SliceStable(proj, func(i, j int) bool { return proj[i].Depth < proj[j].Depth })
	pen := c.Pen
	for _, e := range proj {
		c.Pen = e.Layer
		if e.X1 == e.X2 && e.Y1 == e.Y2 {
			c.Set(e.X1, e.Y1)
		} else {
			c.DrawLine(e.X1, e.Y1, e.X2, e.Y2)
		}
	}
	c.Pen = pen
}

// AddBox adds the 12 edges of an axis-aligned box.
func (w *Wireframe) AddBox(bounds [6]float64, l Layer) {
	x0, x1, y0, y1, z0, z1 := bounds[0], bounds[1], bounds[2], bounds[3], bounds[4], bounds[5]
	v := []r3.Vec{
		{X: x0, Y: y0, Z: z0}, {X: x1, Y: y0, Z: z0}, {X: x1, Y: y1, Z: z0}, {X: x0, Y: y1, Z: z0},
		{X: x0, Y: y0, Z: z1}, {X: x1, Y: y0, Z: z1}, {X: x1, Y: y1, Z: z1}, {X: x0, Y: y1, Z: z1},
	}
	ei := [][2]int{{0, 1}, {1, 2}, {2, 3}, {3, 0}, {4, 5}, {5, 6}, {6, 7}, {7, 4}, {0, 4}, {1, 5}, {2, 6}, {3, 7}}
	for _, e := range ei {
		w.AddEdge(v[e[0]], v[e[1]], l)
	}
}

// AddArrow adds a shaft from a to b with a two-stroke head.
func (w *Wireframe) AddArrow(a, b r3.Vec, l Layer) {
	w.AddEdge(a, b, l)
	shaft := r3.Sub(b, a)
	n := r3.Norm(shaft)
	if n == 0 {
		return
	}
	back := r3.Scale(-0.2*n, r3.Unit(shaft))
	side := r3.Cross(r3.Unit(shaft), r3.Vec{Z: 1})
	if r3.Norm(side) < 1e-9 {
		side = r3.Vec{X: 1}
	}
	side = r3.Scale(0.1*n, r3.Unit(side))
	w.AddEdge(b, r3.Add(b, r3.Add(back, side)), l)
	w.AddEdge(b, r3.Add(b, r3.Sub(back, side)), l)
}
