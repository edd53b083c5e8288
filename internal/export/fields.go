package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/san-kum/windtunnel/internal/flow"
	"github.com/san-kum/windtunnel/internal/mesh"
)

type linePoint struct {
	Line int     `json:"line"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Z    float64 `json:"z"`
}

type valuePoint struct {
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Z        float64 `json:"z"`
	Pressure float64 `json:"pressure"`
}

type pressureDoc struct {
	Min    float64      `json:"min"`
	Max    float64      `json:"max"`
	Points []valuePoint `json:"points"`
}

// WriteStreamlinesCSV writes one row per polyline vertex, numbered by line.
func WriteStreamlinesCSV(w io.Writer, lines []flow.Streamline) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"line", "x", "y", "z"}); err != nil {
		return err
	}
	for i, l := range lines {
		id := strconv.Itoa(i)
		for _, p := range l.Points {
			if err := cw.Write([]string{id, formatFloat(p.X), formatFloat(p.Y), formatFloat(p.Z)}); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

func WriteStreamlinesJSON(w io.Writer, lines []flow.Streamline) error {
	out := make([][]linePoint, len(lines))
	for i, l := range lines {
		out[i] = make([]linePoint, len(l.Points))
		for k, p := range l.Points {
			out[i][k] = linePoint{Line: i, X: p.X, Y: p.Y, Z: p.Z}
		}
	}
	return writeJSON(w, out)
}

func WritePressureCSV(w io.Writer, pv *flow.PressureVolume) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"x", "y", "z", "pressure"}); err != nil {
		return err
	}
	for i, p := range pv.Points {
		if err := cw.Write([]string{formatFloat(p.X), formatFloat(p.Y), formatFloat(p.Z), formatFloat(pv.Values[i])}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func WritePressureJSON(w io.Writer, pv *flow.PressureVolume) error {
	doc := pressureDoc{Min: pv.Min, Max: pv.Max, Points: make([]valuePoint, len(pv.Points))}
	for i, p := range pv.Points {
		doc.Points[i] = valuePoint{X: p.X, Y: p.Y, Z: p.Z, Pressure: pv.Values[i]}
	}
	return writeJSON(w, doc)
}

// SurfaceVolume pairs mesh vertices with their surface pressure so they can
// be written like a pressure volume.
func SurfaceVolume(m *mesh.Mesh, values []float64) (*flow.PressureVolume, error) {
	if len(values) != m.NumVertices() {
		return nil, fmt.Errorf("export: %d pressure values for %d vertices", len(values), m.NumVertices())
	}
	pv := &flow.PressureVolume{Points: m.Vertices, Values: values}
	for i, v := range values {
		if i == 0 || v < pv.Min {
			pv.Min = v
		}
		if i == 0 || v > pv.Max {
			pv.Max = v
		}
	}
	return pv, nil
}

func SaveStreamlines(path string, lines []flow.Streamline) error {
	return writeFile(path, func(w io.Writer) error {
		if FormatFor(path) == FormatJSON {
			return WriteStreamlinesJSON(w, lines)
		}
		return WriteStreamlinesCSV(w, lines)
	})
}

func SavePressure(path string, pv *flow.PressureVolume) error {
	if pv == nil {
		return fmt.Errorf("export: no pressure data")
	}
	return writeFile(path, func(w io.Writer) error {
		if FormatFor(path) == FormatJSON {
			return WritePressureJSON(w, pv)
		}
		return WritePressureCSV(w, pv)
	})
}
