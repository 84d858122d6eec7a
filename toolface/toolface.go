/*
Package toolface relates the bend of a deflection tool to the change of
direction it produces.

A deflection tool (bent sub, mud motor) deflects the bore by a dogleg angle
β per run; its tool face γ orients that bend around the bore axis, measured
from the high side of the hole. Starting at inclination inc1, the run ends at
inclination inc2 and turns the azimuth by Δε:

	Δε   = arctan( tan β · sin γ / (sin inc1 + tan β · cos γ · cos inc1) )
	inc2 = arccos( cos inc1 · cos β − sin β · cos γ · sin inc1 )

Forward evaluates this relation, Inverse recovers the tool face needed for a
desired inclination change, and Solver.MaxChange searches for the tool face
which yields the largest direction change for a given tool setting.

All angles are radians.

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package toolface

import (
	"fmt"
	"math"

	"github.com/npillmayer/drillpath"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'drillpath.toolface'
func tracer() tracing.Trace {
	return tracing.Select("drillpath.toolface")
}

// Forward computes the azimuth change Δε and the final inclination inc2 of
// a tool run with deflection beta and tool face gamma, starting at
// inclination inc1.
func Forward(beta, gamma, inc1 float64) (deltaEps, inc2 float64, err error) {
	if err = checkFinite(beta, gamma, inc1); err != nil {
		return 0, 0, err
	}
	tanB := math.Tan(beta)
	num := tanB * math.Sin(gamma)
	denom := math.Sin(inc1) + tanB*math.Cos(gamma)*math.Cos(inc1)
	if drillpath.Is0(num) && drillpath.Is0(denom) {
		return 0, 0, fmt.Errorf("%w: direction change undefined for β=%g, γ=%g, inc1=%g",
			drillpath.ErrDomain, beta, gamma, inc1)
	}
	deltaEps = math.Atan(num / denom)
	inc2, err = drillpath.Acos(math.Cos(inc1)*math.Cos(beta) -
		math.Sin(beta)*math.Cos(gamma)*math.Sin(inc1))
	if err != nil {
		return 0, 0, err
	}
	return deltaEps, inc2, nil
}

// Inverse computes the tool face γ which takes a tool run with deflection
// beta from inclination inc1 to inclination inc2. The result is in 0 … π;
// the mirrored tool face −γ yields the same inclination change, turning
// the other way.
func Inverse(beta, inc1, inc2 float64) (float64, error) {
	if err := checkFinite(beta, inc1, inc2); err != nil {
		return 0, err
	}
	denom := math.Sin(inc1) * math.Sin(beta)
	if drillpath.Is0(denom) {
		return 0, fmt.Errorf("%w: tool face undefined for sin(inc1)·sin(β) = 0", drillpath.ErrDomain)
	}
	gamma, err := drillpath.Acos((math.Cos(inc1)*math.Cos(beta) - math.Cos(inc2)) / denom)
	if err != nil {
		tracer().Errorf("inclination change %g → %g not reachable with β=%g", inc1, inc2, beta)
		return 0, fmt.Errorf("inclination %g not reachable from %g with deflection %g: %w",
			inc2, inc1, beta, err)
	}
	return gamma, nil
}

func checkFinite(angles ...float64) error {
	for _, a := range angles {
		if !drillpath.Finite(a) {
			return fmt.Errorf("%w: angle %g", drillpath.ErrInvalidInput, a)
		}
	}
	return nil
}
