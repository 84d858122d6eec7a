package survey

import (
	"fmt"
	"io"

	"github.com/npillmayer/drillpath"
	"gopkg.in/yaml.v3"
)

// Column names a survey table must provide.
const (
	ColumnMD          = "measuredDepth"
	ColumnInclination = "inclination"
	ColumnAzimuth     = "azimuth"
)

// Table is the exchange format for externally supplied surveys. Rows follow
// the order of Headers, which must include at least the columns
// "measuredDepth", "inclination" and "azimuth"; other columns are ignored.
// Angles are degrees unless Degrees is explicitly false.
//
// Tables are decoded from YAML or JSON, e.g.
//
//	headers: [measuredDepth, inclination, azimuth]
//	start_point: [100, 100, 1000]
//	table:
//	  - [1050.0, 3.6, 31.9]
//	  - [1100.0, 5.7, 32.7]
type Table struct {
	Headers    []string    `yaml:"headers" json:"headers"`
	Rows       [][]float64 `yaml:"table" json:"table"`
	StartPoint []float64   `yaml:"start_point" json:"start_point"`
	Degrees    *bool       `yaml:"degrees,omitempty" json:"degrees,omitempty"`
}

// ReadTable decodes a survey table from r. As YAML is a superset of JSON,
// both formats are accepted.
func ReadTable(r io.Reader) (*Table, error) {
	var t Table
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&t); err != nil {
		return nil, fmt.Errorf("%w: cannot decode survey table: %v", drillpath.ErrInvalidInput, err)
	}
	tracer().Debugf("read survey table with %d rows, columns %v", len(t.Rows), t.Headers)
	return &t, nil
}

// InDegrees tells whether the table's angles are degrees.
func (t *Table) InDegrees() bool {
	return t.Degrees == nil || *t.Degrees
}

// Start returns the table's start point (north, east, TVD). A missing start
// point is the origin.
func (t *Table) Start() (drillpath.Vec3, error) {
	switch len(t.StartPoint) {
	case 0:
		return drillpath.Vec3{}, nil
	case 3:
		return drillpath.V(t.StartPoint[0], t.StartPoint[1], t.StartPoint[2]), nil
	}
	return drillpath.Vec3{}, fmt.Errorf("%w: start point needs 3 coordinates, has %d",
		drillpath.ErrInvalidInput, len(t.StartPoint))
}

// Stations converts the table's rows to stations, converting angles to
// radians if necessary.
func (t *Table) Stations() ([]Station, error) {
	cols := make([]int, 3)
	for i, name := range []string{ColumnMD, ColumnInclination, ColumnAzimuth} {
		cols[i] = -1
		for j, h := range t.Headers {
			if h == name {
				cols[i] = j
				break
			}
		}
		if cols[i] < 0 {
			return nil, fmt.Errorf("%w %q", ErrMissingColumn, name)
		}
	}
	conv := func(x float64) float64 { return x }
	if t.InDegrees() {
		conv = drillpath.Deg
	}
	stations := make([]Station, len(t.Rows))
	for i, row := range t.Rows {
		if len(row) != len(t.Headers) {
			return nil, fmt.Errorf("%w: row %d has %d values for %d columns",
				drillpath.ErrInvalidInput, i, len(row), len(t.Headers))
		}
		st, err := NewStation(row[cols[0]], conv(row[cols[1]]), conv(row[cols[2]]))
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		stations[i] = st
	}
	return stations, nil
}

// Accumulate reads the stations and start point of a table and accumulates
// them into a well path, see package-level function Accumulate.
func (t *Table) Accumulate(ip Interpolator, report io.Writer) (*Path, error) {
	stations, err := t.Stations()
	if err != nil {
		return nil, err
	}
	start, err := t.Start()
	if err != nil {
		return nil, err
	}
	return Accumulate(stations, start, ip, report)
}
