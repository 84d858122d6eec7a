/*
Package polygon provides closed polygons in the horizontal plane, used for
lease boundaries, hard lines and target areas of wells.

Polygons are built with a small builder API:

	pg := polygon.NullPolygon().Knot(drillpath.P(0, 0)).Knot(drillpath.P(1, 3)).Knot(drillpath.P(3, 0)).Cycle()

Containment, bounding boxes and clipping are delegated to
github.com/akavel/polyclip-go. Coordinates are (easting, northing), as
produced by the plan view projections of packages survey and plan.

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package polygon

import (
	"fmt"
	"math"
	"strings"

	polyclip "github.com/akavel/polyclip-go"
	"github.com/npillmayer/drillpath"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'drillpath.polygon'
func tracer() tracing.Trace {
	return tracing.Select("drillpath.polygon")
}

// Polygon is a sequence of knots. Only cyclic polygons enclose an area.
type Polygon struct {
	knots []drillpath.Pair
	cycle bool
}

// NullPolygon creates an empty polygon, to be extended by builder calls.
func NullPolygon() *Polygon {
	return &Polygon{}
}

// Knot appends a knot. Part of builder functionality.
func (pg *Polygon) Knot(p drillpath.Pair) *Polygon {
	pg.knots = append(pg.knots, p)
	return pg
}

// Cycle closes a polygon. Part of builder functionality.
func (pg *Polygon) Cycle() *Polygon {
	pg.cycle = true
	return pg
}

// IsCycle is a predicate: is this polygon closed?
func (pg *Polygon) IsCycle() bool {
	return pg.cycle
}

// N returns the number of knots.
func (pg *Polygon) N() int {
	return len(pg.knots)
}

// Box creates a closed rectangle from two opposite corners.
func Box(p1, p2 drillpath.Pair) *Polygon {
	minX, maxX := math.Min(p1.X(), p2.X()), math.Max(p1.X(), p2.X())
	minY, maxY := math.Min(p1.Y(), p2.Y()), math.Max(p1.Y(), p2.Y())
	return NullPolygon().Knot(drillpath.P(minX, minY)).Knot(drillpath.P(maxX, minY)).
		Knot(drillpath.P(maxX, maxY)).Knot(drillpath.P(minX, maxY)).Cycle()
}

// AsString returns a polygon in MetaFont-like path notation.
func AsString(pg *Polygon) string {
	if pg == nil {
		return "<empty polygon>"
	}
	var sb strings.Builder
	for i, p := range pg.knots {
		if i > 0 {
			sb.WriteString(" -- ")
		}
		sb.WriteString(p.String())
	}
	if pg.cycle {
		sb.WriteString(" -- cycle")
	}
	return sb.String()
}

// Validate checks that a polygon encloses an area.
func (pg *Polygon) Validate() error {
	if pg == nil || !pg.cycle || len(pg.knots) < 3 {
		return fmt.Errorf("%w: polygon must be closed and have at least 3 knots", drillpath.ErrInvalidInput)
	}
	for _, p := range pg.knots {
		if !drillpath.Finite(p.X()) || !drillpath.Finite(p.Y()) {
			return fmt.Errorf("%w: polygon knot %v", drillpath.ErrInvalidInput, p)
		}
	}
	return nil
}

// Area returns the enclosed area (shoelace formula). It is 0 for open
// polygons.
func (pg *Polygon) Area() float64 {
	if !pg.cycle {
		return 0
	}
	a := 0.0
	for i, p := range pg.knots {
		q := pg.knots[(i+1)%len(pg.knots)]
		a += p.X()*q.Y() - q.X()*p.Y()
	}
	return math.Abs(a) / 2
}

// Contains is a predicate: does the polygon enclose point p?
// Open polygons contain nothing.
func (pg *Polygon) Contains(p drillpath.Pair) bool {
	if !pg.cycle {
		return false
	}
	return pg.contour().Contains(point(p))
}

// BoundingBox returns the lower left and upper right corner of the
// smallest axis-parallel rectangle enclosing the polygon.
func (pg *Polygon) BoundingBox() (drillpath.Pair, drillpath.Pair) {
	if len(pg.knots) == 0 {
		return drillpath.Origin, drillpath.Origin
	}
	r := pg.contour().BoundingBox()
	return drillpath.P(r.Min.X, r.Min.Y), drillpath.P(r.Max.X, r.Max.Y)
}

// Overlaps is a predicate: do the bounding boxes of two polygons overlap?
func (pg *Polygon) Overlaps(other *Polygon) bool {
	return pg.contour().BoundingBox().Overlaps(other.contour().BoundingBox())
}

// Intersect clips two closed polygons against each other. The result may
// consist of several disjoint polygons; it is empty if the polygons do not
// intersect.
func Intersect(a, b *Polygon) ([]*Polygon, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	subject := polyclip.Polygon{a.contour()}
	clipping := polyclip.Polygon{b.contour()}
	result := subject.Construct(polyclip.INTERSECTION, clipping)
	pgs := make([]*Polygon, 0, len(result))
	for _, c := range result {
		if len(c) < 3 {
			continue
		}
		pg := NullPolygon()
		for _, pt := range c {
			pg.Knot(drillpath.P(pt.X, pt.Y))
		}
		pgs = append(pgs, pg.Cycle())
	}
	tracer().Debugf("intersection has %d contours", len(pgs))
	return pgs, nil
}

// Outside returns the indices of all points not contained in polygon pg.
func (pg *Polygon) Outside(points []drillpath.Pair) []int {
	c := pg.contour()
	var outside []int
	for i, p := range points {
		if !pg.cycle || !c.Contains(point(p)) {
			outside = append(outside, i)
		}
	}
	return outside
}

func (pg *Polygon) contour() polyclip.Contour {
	c := make(polyclip.Contour, 0, len(pg.knots))
	for _, p := range pg.knots {
		c.Add(point(p))
	}
	return c
}

func point(p drillpath.Pair) polyclip.Point {
	return polyclip.Point{X: p.X(), Y: p.Y()}
}
