package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/san-kum/windtunnel/internal/aero"
	"github.com/san-kum/windtunnel/internal/config"
)

type Format int

const (
	FormatCSV Format = iota
	FormatJSON
)

func (f Format) String() string {
	if f == FormatJSON {
		return "json"
	}
	return "csv"
}

// FormatFor picks JSON for a ".json" extension and CSV for anything else.
func FormatFor(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatCSV
}

// Envelope wraps exported data with the configuration that produced it.
type Envelope struct {
	Metadata *config.Config `json:"metadata"`
	Data     any            `json:"data"`
}

var (
	resultHeader = []string{"velocity", "drag_force_N", "power_W", "frontal_area"}
	rangeHeader  = []string{"velocity", "drag_force_N", "power_W"}
)

func formatFloat(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "    ")
	return enc.Encode(v)
}

// WriteResultJSON writes r, wrapped in an Envelope when meta is not nil.
func WriteResultJSON(w io.Writer, r aero.Result, meta *config.Config) error {
	if meta != nil {
		return writeJSON(w, Envelope{Metadata: meta, Data: r})
	}
	return writeJSON(w, r)
}

// WriteResultCSV writes a header and a single row.
func WriteResultCSV(w io.Writer, r aero.Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(resultHeader); err != nil {
		return err
	}
	row := []string{formatFloat(r.Velocity), formatFloat(r.DragForce), formatFloat(r.Power), formatFloat(r.FrontalArea)}
	if err := cw.Write(row); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}

// WriteRangeJSON writes the sweep arrays, wrapped in an Envelope when meta
// is not nil.
func WriteRangeJSON(w io.Writer, data *aero.SweepResult, meta *config.Config) error {
	if meta != nil {
		return writeJSON(w, Envelope{Metadata: meta, Data: data})
	}
	return writeJSON(w, data)
}

// WriteRangeCSV writes one row per sample.
func WriteRangeCSV(w io.Writer, data *aero.SweepResult) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(rangeHeader); err != nil {
		return err
	}
	for i := 0; i < data.Len(); i++ {
		row := []string{formatFloat(data.Velocities[i]), formatFloat(data.DragForces[i]), formatFloat(data.Powers[i])}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// SaveResult writes r to path in the format its extension selects. meta
// only applies to JSON.
func SaveResult(path string, r aero.Result, meta *config.Config) error {
	return writeFile(path, func(w io.Writer) error {
		if FormatFor(path) == FormatJSON {
			return WriteResultJSON(w, r, meta)
		}
		return WriteResultCSV(w, r)
	})
}

// SaveRange writes data to path in the format its extension selects. meta
// only applies to JSON.
func SaveRange(path string, data *aero.SweepResult, meta *config.Config) error {
	if data == nil {
		return fmt.Errorf("export: no range data")
	}
	return writeFile(path, func(w io.Writer) error {
		if FormatFor(path) == FormatJSON {
			return WriteRangeJSON(w, data, meta)
		}
		return WriteRangeCSV(w, data)
	})
}

// writeFile creates path and removes it again if fn fails.
func writeFile(path string, fn func(w io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := fn(f); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	return f.Close()
}
