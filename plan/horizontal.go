package plan

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/npillmayer/drillpath"
)

// HorizontalSingleGain constrains a horizontal well with a single build
// section: vertical to KOP, then a build to 90° which lands at depth TVD,
// then horizontal up to a displacement of Reach. The build radius is
// forced to TVD − KOP.
type HorizontalSingleGain struct {
	TVD   float64
	KOP   float64
	Reach float64
}

// Kind is part of interface Planner.
func (HorizontalSingleGain) Kind() Kind { return KindHorizontalSingleGain }

// Solve computes the waypoints of a HorizontalSingleGain plan.
func (c HorizontalSingleGain) Solve() (*Plan, error) {
	if err := checkDepths(c.TVD, c.KOP); err != nil {
		return nil, err
	}
	if err := checkLength("reach", c.Reach); err != nil {
		return nil, err
	}
	R := c.TVD - c.KOP
	if c.Reach < R {
		return nil, fmt.Errorf("%w: reach %.3f is shorter than the build radius %.3f", ErrUnreachable,
			c.Reach, R)
	}
	g := Geometry{Radius: R, Theta: math.Pi / 2, DeltaV1: R, DeltaD1: R}
	tracer().Debugf("single gain: forced build rate %v", drillpath.RateFromRadius(R))
	b := newBuilder(KindHorizontalSingleGain, c.TVD, c.KOP).vertical("KOP", c.KOP).
		arc("Build-up", R, math.Pi/2).
		horizontal("Final", c.Reach-R)
	return b.finish(c.Reach, g)
}

// HorizontalDualGain constrains a horizontal well with two build sections:
// vertical to KOP, a first build at rate BUR1, a straight slant, a second
// build at rate BUR2 which lands horizontally at depth TVD, and a
// horizontal section of length HorizontalLength.
//
// Mode is one of
//
//	ReachMode            θ is solved such that the well ends at the given reach
//	MaxBuildMode         θ is given, the reach is derived
//	PinnedMaxBuildMode   θ is given and the second build starts at KOP2;
//	                     its radius is derived and BUR2 must be zero
type HorizontalDualGain struct {
	TVD              float64
	KOP              float64
	BUR1             drillpath.BuildRate
	BUR2             drillpath.BuildRate
	HorizontalLength float64
	Mode             Mode
}

// Kind is part of interface Planner.
func (HorizontalDualGain) Kind() Kind { return KindHorizontalDualGain }

// Solve computes the build angle and waypoints of a HorizontalDualGain plan.
func (c HorizontalDualGain) Solve() (*Plan, error) {
	if err := checkDepths(c.TVD, c.KOP); err != nil {
		return nil, err
	}
	if err := c.BUR1.Validate("BUR1"); err != nil {
		return nil, err
	}
	if err := checkLength("horizontal length", c.HorizontalLength); err != nil {
		return nil, err
	}
	if _, pinned := c.Mode.(PinnedMaxBuildMode); !pinned {
		if err := c.BUR2.Validate("BUR2"); err != nil {
			return nil, err
		}
	}
	g := Geometry{Radius: c.BUR1.Radius()}
	var slant float64
	var err error
	switch m := c.Mode.(type) {
	case nil:
		return nil, ErrNoMode
	case ReachMode:
		if err = checkLength("reach", m.Reach); err != nil {
			return nil, err
		}
		g.Radius2 = c.BUR2.Radius()
		if slant, err = c.solveReach(m.Reach, &g); err != nil {
			return nil, err
		}
	case MaxBuildMode:
		if err = checkBuildAngle(m.Angle); err != nil {
			return nil, err
		}
		g.Theta, g.Radius2 = m.Angle, c.BUR2.Radius()
		if slant, err = c.solveMaxBuild(&g); err != nil {
			return nil, err
		}
	case PinnedMaxBuildMode:
		if err = checkBuildAngle(m.Angle); err != nil {
			return nil, err
		}
		if c.BUR2 != 0 {
			return nil, fmt.Errorf("%w: second build rate is derived from KOP2 and must not be given",
				drillpath.ErrConfiguration)
		}
		if !drillpath.Finite(m.KOP2) || !(m.KOP2 < c.TVD) {
			return nil, fmt.Errorf("%w: KOP2 must be above TVD, is %g", drillpath.ErrInvalidInput, m.KOP2)
		}
		g.Theta = m.Angle
		g.Radius2 = (c.TVD - m.KOP2) / (1 - math.Sin(g.Theta))
		if slant, err = c.solveMaxBuild(&g); err != nil {
			return nil, err
		}
	default:
		return nil, unsupportedMode(c.Kind(), c.Mode)
	}
	b := newBuilder(KindHorizontalDualGain, c.TVD, c.KOP).vertical("KOP", c.KOP).
		arc("Build-up 1", g.Radius, g.Theta).
		tangent("Slant", slant).
		arc("Build-up 2", g.Radius2, math.Pi/2)
	if err := closes("second build-up TVD", b.at.TVD, c.TVD, c.TVD); err != nil {
		return nil, err
	}
	b.horizontal("Final", c.HorizontalLength)
	reach := b.at.Reach
	if m, ok := c.Mode.(ReachMode); ok {
		if err := closes("horizontal reach", reach, m.Reach, c.TVD); err != nil {
			return nil, err
		}
		reach = m.Reach
	}
	return b.finish(reach, g)
}

// solveReach finds θ for a given reach. The first build circle is centered
// at (R1, KOP), the second one at (reach − horizontal length, TVD − R2), in
// (displacement, TVD) coordinates. The slant is their common outer tangent.
func (c HorizontalDualGain) solveReach(reach float64, g *Geometry) (float64, error) {
	R1, R2 := g.Radius, g.Radius2
	c1 := drillpath.P(R1, c.KOP)
	c2 := drillpath.P(reach-c.HorizontalLength, c.TVD-R2)
	d := c2 - c1
	g.Phi = d.Angle()
	g.CenterDistance = c1.Distance(c2)
	if drillpath.Is0(g.CenterDistance) {
		return 0, fmt.Errorf("%w: build circles are concentric", ErrUnreachable)
	}
	var err error
	if g.Beta, err = drillpath.Asin((R2 - R1) / g.CenterDistance); err != nil {
		return 0, fmt.Errorf("%w: build circles overlap: %w", ErrUnreachable, err)
	}
	g.Theta = math.Pi/2 - g.Phi - g.Beta
	tracer().Debugf("dual gain: φ=%.4f, β=%.4f, center distance %.3f", g.Phi, g.Beta, g.CenterDistance)
	if !(g.Theta > 0) || !(g.Theta < math.Pi/2) {
		return 0, fmt.Errorf("%w: build angle %.3f° out of range", ErrUnreachable,
			drillpath.ToDeg(g.Theta))
	}
	g.fillArcExtents()
	// slant length is the projection of the center line onto the tangent direction
	tangent := drillpath.Pair(cmplx.Rect(1, math.Pi/2-g.Theta))
	slant := real(d.C())*tangent.X() + imag(d.C())*tangent.Y()
	return nonNegative("slant length", slant, c.TVD)
}

// solveMaxBuild derives the slant length for a given θ and both radii.
func (c HorizontalDualGain) solveMaxBuild(g *Geometry) (float64, error) {
	g.fillArcExtents()
	slant := (c.TVD - c.KOP - g.DeltaV1 - g.DeltaV2) / math.Cos(g.Theta)
	return nonNegative("slant length", slant, c.TVD)
}

func (g *Geometry) fillArcExtents() {
	sin, cos := math.Sincos(g.Theta)
	g.DeltaV1 = g.Radius * sin
	g.DeltaD1 = g.Radius * (1 - cos)
	g.DeltaV2 = g.Radius2 * (1 - sin)
	g.DeltaD2 = g.Radius2 * cos
}
