package aero

// DefaultDragCoefficient is the Cd used when none is configured.
const DefaultDragCoefficient = 0.3

// Bounds is an axis-aligned box laid out as xmin, xmax, ymin, ymax, zmin, zmax.
type Bounds [6]float64

// ReferenceBounds stands in for the object when a sweep runs without a mesh.
var ReferenceBounds = Bounds{-10, 10, -5, 5, 0, 10}

func Drag(density, velocity, area, cd float64) float64 {
	return 0.5 * density * velocity * velocity * area * cd
}

func Power(drag, velocity float64) float64 {
	return drag * velocity
}

// FrontalArea is the y-z cross-section of the box, the face seen by a +x flow.
func FrontalArea(b Bounds) float64 {
	return (b[3] - b[2]) * (b[5] - b[4])
}

// Reynolds returns rho*v*L/mu, or 0 when mu is 0.
func Reynolds(density, velocity, length, viscosity float64) float64 {
	if viscosity == 0 {
		return 0
	}
	return density * velocity * length / viscosity
}

// Result is a single-velocity evaluation.
type Result struct {
	Velocity    float64 `json:"velocity"`
	DragForce   float64 `json:"drag_force_N"`
	Power       float64 `json:"power_W"`
	FrontalArea float64 `json:"frontal_area"`
}

// Evaluate computes drag and power at one velocity.
func Evaluate(density, velocity, area, cd float64) Result {
	d := Drag(density, velocity, area, cd)
	return Result{
		Velocity:    velocity,
		DragForce:   d,
		Power:       Power(d, velocity),
		FrontalArea: area,
	}
}
