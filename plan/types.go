package plan

import (
	"fmt"
	"math"

	"github.com/npillmayer/drillpath"
)

// TypeI constrains a J-shaped well: vertical to KOP, a build section at
// rate BUR, then a straight slant to the target at depth TVD.
// Mode is either ReachMode or MaxBuildMode.
type TypeI struct {
	TVD  float64
	KOP  float64
	BUR  drillpath.BuildRate
	Mode Mode
}

// Kind is part of interface Planner.
func (TypeI) Kind() Kind { return KindTypeI }

// Solve computes the build angle and waypoints of a TypeI plan.
func (c TypeI) Solve() (*Plan, error) {
	if err := checkDepths(c.TVD, c.KOP); err != nil {
		return nil, err
	}
	if err := c.BUR.Validate("BUR"); err != nil {
		return nil, err
	}
	R, dV := c.BUR.Radius(), c.TVD-c.KOP
	g := Geometry{Radius: R}
	var err error
	switch m := c.Mode.(type) {
	case nil:
		return nil, ErrNoMode
	case ReachMode:
		if err = checkLength("reach", m.Reach); err != nil {
			return nil, err
		}
		if g.Theta, err = tangentAngle(R, m.Reach, dV, &g); err != nil {
			return nil, err
		}
		if g.Theta >= math.Pi/2 {
			return nil, fmt.Errorf("%w: slant would not descend (θ=%.3f°)", ErrUnreachable,
				drillpath.ToDeg(g.Theta))
		}
	case MaxBuildMode:
		if err = checkBuildAngle(m.Angle); err != nil {
			return nil, err
		}
		g.Theta = m.Angle
	default:
		return nil, unsupportedMode(c.Kind(), c.Mode)
	}
	b := newBuilder(KindTypeI, c.TVD, c.KOP).vertical("KOP", c.KOP).arc("Build-up", R, g.Theta)
	slant, err := nonNegative("slant length", (c.TVD-b.at.TVD)/math.Cos(g.Theta), c.TVD)
	if err != nil {
		return nil, err
	}
	b.tangent("Slant", slant).marker("Final")
	reach := b.at.Reach
	if m, ok := c.Mode.(ReachMode); ok {
		if err := closes("slant reach", reach, m.Reach, c.TVD); err != nil {
			return nil, err
		}
		reach = m.Reach
	}
	return b.finish(reach, g)
}

// TypeII constrains an S-shaped well: vertical to KOP, a build section at
// rate BUR, a straight slant, and a drop section at rate DOR which returns
// to vertical at depth EOD and horizontal displacement Reach. A vertical
// section continues from EOD down to TVD. Build and drop angle are equal.
type TypeII struct {
	TVD   float64
	KOP   float64
	BUR   drillpath.BuildRate
	DOR   drillpath.BuildRate
	Reach float64
	EOD   float64 // end of drop
}

// Kind is part of interface Planner.
func (TypeII) Kind() Kind { return KindTypeII }

// Solve computes the build/drop angle and waypoints of a TypeII plan.
//
// With Rs = R_build + R_drop and the vertical distance ΔV = EOD − KOP, the
// angle follows from the auxiliary angles
//
//	Y = arctan(ΔV / |Rs − reach|),   Z = arccos(Rs · sin Y / ΔV)
//
// as θ = Y − Z for Rs > reach, and θ = π − Y − Z otherwise.
func (c TypeII) Solve() (*Plan, error) {
	if err := checkDepths(c.TVD, c.KOP); err != nil {
		return nil, err
	}
	if err := c.BUR.Validate("BUR"); err != nil {
		return nil, err
	}
	if err := c.DOR.Validate("DOR"); err != nil {
		return nil, err
	}
	if !drillpath.Finite(c.Reach) || !(c.Reach > 0) {
		return nil, fmt.Errorf("%w: reach must be positive, is %g", drillpath.ErrInvalidInput, c.Reach)
	}
	if !drillpath.Finite(c.EOD) || !(c.EOD > c.KOP) || c.EOD > c.TVD {
		return nil, fmt.Errorf("%w: need KOP < EOD ≤ TVD, have EOD=%g", drillpath.ErrInvalidInput, c.EOD)
	}
	R, Rd := c.BUR.Radius(), c.DOR.Radius()
	sumR, dV := R+Rd, c.EOD-c.KOP
	g := Geometry{Radius: R, Radius2: Rd}
	if sumR > c.Reach {
		g.Branch, g.Offset = RadiiExceedReach, sumR-c.Reach
	} else {
		g.Branch, g.Offset = ReachExceedsRadii, c.Reach-sumR
	}
	g.Y = math.Atan(dV / g.Offset) // π/2 for zero offset
	var err error
	if g.Z, err = drillpath.Acos(math.Sin(g.Y) * sumR / dV); err != nil {
		return nil, fmt.Errorf("%w: arcs do not fit between KOP and EOD: %w", ErrUnreachable, err)
	}
	if g.Branch == RadiiExceedReach {
		g.Theta = g.Y - g.Z
	} else {
		g.Theta = math.Pi - g.Y - g.Z
	}
	tracer().Debugf("type-II branch %q: Y=%.4f, Z=%.4f", g.Branch, g.Y, g.Z)
	if !(g.Theta > 0) || g.Theta >= math.Pi/2 {
		return nil, fmt.Errorf("%w: build angle %.3f° out of range", ErrUnreachable,
			drillpath.ToDeg(g.Theta))
	}
	sin, cos := math.Sincos(g.Theta)
	b := newBuilder(KindTypeII, c.TVD, c.KOP).vertical("KOP", c.KOP).arc("Build-up", R, g.Theta)
	dropTVD, dropReach := c.EOD-Rd*sin, c.Reach-Rd*(1-cos)
	slant, err := nonNegative("slant length", (dropTVD-b.at.TVD)*cos+(dropReach-b.at.Reach)*sin, c.TVD)
	if err != nil {
		return nil, err
	}
	b.tangent("Slant", slant).arc("Drop-off", Rd, 0)
	if err := closes("drop-off TVD", b.at.TVD, c.EOD, c.TVD); err != nil {
		return nil, err
	}
	if err := closes("drop-off reach", b.at.Reach, c.Reach, c.TVD); err != nil {
		return nil, err
	}
	b.vertical("Final", c.TVD-b.at.TVD)
	return b.finish(c.Reach, g)
}

// TypeIII constrains a deep kick-off well: vertical to KOP, then a single
// build section at rate BUR ending at the target (TVD, Reach).
// The target must lie on the build circle; KOPFromBuildRate computes a
// matching KOP.
//
// KOP, BUR and the target are over-determined and must agree far below
// millimetre precision: a KOP rounded to the millimetre already misses the
// build circle and Solve fails with ErrDomain (either the build angle has no
// solution or the arc ends off target). Pass the unrounded value from
// KOPFromBuildRate.
type TypeIII struct {
	TVD   float64
	KOP   float64
	BUR   drillpath.BuildRate
	Reach float64
}

// Kind is part of interface Planner.
func (TypeIII) Kind() Kind { return KindTypeIII }

// Solve computes the build angle and waypoints of a TypeIII plan.
func (c TypeIII) Solve() (*Plan, error) {
	if err := checkDepths(c.TVD, c.KOP); err != nil {
		return nil, err
	}
	if err := c.BUR.Validate("BUR"); err != nil {
		return nil, err
	}
	if !drillpath.Finite(c.Reach) || !(c.Reach > 0) {
		return nil, fmt.Errorf("%w: reach must be positive, is %g", drillpath.ErrInvalidInput, c.Reach)
	}
	R := c.BUR.Radius()
	g := Geometry{Radius: R}
	var err error
	if g.Theta, err = tangentAngle(R, c.Reach, c.TVD-c.KOP, &g); err != nil {
		return nil, err
	}
	b := newBuilder(KindTypeIII, c.TVD, c.KOP).vertical("KOP", c.KOP).arc("Build-up", R, g.Theta)
	if err := closes("build-up TVD", b.at.TVD, c.TVD, c.TVD); err != nil {
		return nil, err
	}
	if err := closes("build-up reach", b.at.Reach, c.Reach, c.TVD); err != nil {
		return nil, err
	}
	b.marker("Final")
	return b.finish(c.Reach, g)
}

// tangentAngle computes the build angle θ = ω − τ for which the tangent at
// the end of a build arc of radius R, started vertically, points to a
// target at horizontal distance reach and vertical distance dV from the
// kick-off point.
func tangentAngle(R, reach, dV float64, g *Geometry) (float64, error) {
	dD := R - reach
	g.RadiusToTarget = math.Hypot(dD, dV)
	var err error
	if g.Omega, err = drillpath.Asin(R / g.RadiusToTarget); err != nil {
		return 0, fmt.Errorf("%w: target inside build circle: %w", ErrUnreachable, err)
	}
	g.Tau = math.Atan(dD / dV)
	tracer().Debugf("ω=%.4f, τ=%.4f, radius to target %.3f", g.Omega, g.Tau, g.RadiusToTarget)
	return math.Max(0, g.Omega-g.Tau), nil // τ ≤ ω for reach ≥ 0, up to rounding
}
