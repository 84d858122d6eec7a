package polygon

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/npillmayer/drillpath"
	"gopkg.in/yaml.v3"
)

// ErrOutsideLease flags a well path leaving its lease or entering a hard line.
var ErrOutsideLease = fmt.Errorf("%w: well path violates lease", drillpath.ErrDomain)

// Lease is a lease boundary with optional hard lines (areas a well must
// not enter) and an optional target area.
type Lease struct {
	Name      string
	Boundary  *Polygon
	Hardlines []*Polygon
	Target    *Polygon
}

// leaseFile is the YAML/JSON layout of a lease:
//
//	name: Block 7
//	boundary: [[0, 0], [2000, 0], [2000, 1500], [0, 1500]]
//	hardlines:
//	  - [[800, 600], [900, 600], [900, 700], [800, 700]]
//	target: [[1200, 200], [1400, 200], [1400, 400], [1200, 400]]
type leaseFile struct {
	Name      string        `yaml:"name"`
	Boundary  [][]float64   `yaml:"boundary"`
	Hardlines [][][]float64 `yaml:"hardlines,omitempty"`
	Target    [][]float64   `yaml:"target,omitempty"`
}

// ReadLease decodes a lease from YAML or JSON.
func ReadLease(r io.Reader) (*Lease, error) {
	var lf leaseFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&lf); err != nil {
		return nil, fmt.Errorf("%w: cannot decode lease: %v", drillpath.ErrInvalidInput, err)
	}
	lease := &Lease{Name: lf.Name}
	var err error
	if lease.Boundary, err = fromCoordinates("boundary", lf.Boundary); err != nil {
		return nil, err
	}
	for i, h := range lf.Hardlines {
		pg, err := fromCoordinates(fmt.Sprintf("hard line %d", i), h)
		if err != nil {
			return nil, err
		}
		lease.Hardlines = append(lease.Hardlines, pg)
	}
	if len(lf.Target) > 0 {
		if lease.Target, err = fromCoordinates("target", lf.Target); err != nil {
			return nil, err
		}
		if err = lease.checkTarget(); err != nil {
			return nil, err
		}
	}
	ll, ur := lease.Boundary.BoundingBox()
	tracer().Debugf("lease %q: boundary %s (%d knots, extent %v to %v)", lease.Name,
		AsString(lease.Boundary), lease.Boundary.N(), ll, ur)
	return lease, nil
}

func fromCoordinates(what string, coords [][]float64) (*Polygon, error) {
	pg := NullPolygon()
	for _, c := range coords {
		if len(c) != 2 {
			return nil, fmt.Errorf("%w: %s point needs 2 coordinates, has %d", drillpath.ErrInvalidInput,
				what, len(c))
		}
		pg.Knot(drillpath.P(c[0], c[1]))
	}
	pg.Cycle()
	if err := pg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", what, err)
	}
	return pg, nil
}

// checkTarget makes sure the target area lies completely inside the
// boundary: the part of the target clipped by the boundary must cover the
// whole target.
func (l *Lease) checkTarget() error {
	if !l.Target.Overlaps(l.Boundary) {
		return fmt.Errorf("%w: target of lease %q lies outside its boundary", drillpath.ErrInvalidInput,
			l.Name)
	}
	pgs, err := Intersect(l.Target, l.Boundary)
	if err != nil {
		return err
	}
	inside := 0.0
	for _, pg := range pgs {
		inside += pg.Area()
	}
	area := l.Target.Area()
	if math.Abs(area-inside) > targetTolerance*area {
		return fmt.Errorf("%w: target of lease %q extends beyond its boundary (%.3f of %.3f inside)",
			drillpath.ErrInvalidInput, l.Name, inside, area)
	}
	return nil
}

const targetTolerance = 1e-6

// Check tests a plan view (easting, northing) against the lease: every
// point must lie inside the boundary and outside all hard lines. All
// violations are reported, joined into one error.
func (l *Lease) Check(planView []drillpath.Pair) error {
	var errs []error
	for _, i := range l.Boundary.Outside(planView) {
		errs = append(errs, fmt.Errorf("%w: point %d %v outside boundary of %q", ErrOutsideLease,
			i, planView[i], l.Name))
	}
	for h, hl := range l.Hardlines {
		for i, p := range planView {
			if hl.Contains(p) {
				errs = append(errs, fmt.Errorf("%w: point %d %v inside hard line %d", ErrOutsideLease,
					i, p, h))
			}
		}
	}
	if len(errs) > 0 {
		tracer().Infof("lease %q: %d violations", l.Name, len(errs))
	}
	return errors.Join(errs...)
}

// Hits is a predicate: does point p (usually the end of a well) lie inside
// the lease's target area? Leases without target area are hit everywhere.
func (l *Lease) Hits(p drillpath.Pair) bool {
	return l.Target == nil || l.Target.Contains(p)
}
