package plan

import (
	"fmt"
	"math"

	"github.com/npillmayer/drillpath"
)

// KOPFromBuildRate computes the kick-off point for which a single build
// arc at rate bur, started vertically, ends at the target (tvd, reach).
// This is the KOP of a consistent TypeIII plan.
func KOPFromBuildRate(reach, tvd float64, bur drillpath.BuildRate) (float64, error) {
	if err := bur.Validate("BUR"); err != nil {
		return 0, err
	}
	if !drillpath.Finite(reach) || !(reach > 0) || !drillpath.Finite(tvd) {
		return 0, fmt.Errorf("%w: reach must be positive, is %g", drillpath.ErrInvalidInput, reach)
	}
	R := bur.Radius()
	theta, err := drillpath.Acos((R - reach) / R)
	if err != nil {
		return 0, fmt.Errorf("%w: reach %.3f exceeds the build diameter: %w", ErrUnreachable, reach, err)
	}
	if theta > math.Pi/2 {
		return 0, fmt.Errorf("%w: reach %.3f exceeds the build radius %.3f", ErrUnreachable, reach, R)
	}
	kop := tvd - R*math.Sin(theta)
	if kop < 0 {
		return 0, fmt.Errorf("%w: kick-off point %.3f above surface", ErrUnreachable, kop)
	}
	tracer().Debugf("KOP %.3f for reach %.3f at %v", kop, reach, bur)
	return kop, nil
}

// KOPFromInclination computes the kick-off point and build radius for which
// a single build arc, started vertically, ends at the target (tvd, reach)
// with inclination inc.
//
// For an arc of radius R ending at inclination inc, the vertical extent is
// R·sin(inc) and the displacement R·(1 − cos(inc)), hence
// ΔV = reach / tan(inc/2).
func KOPFromInclination(reach, tvd, inc float64) (kop, radius float64, err error) {
	if !drillpath.Finite(reach) || !(reach > 0) || !drillpath.Finite(tvd) {
		return 0, 0, fmt.Errorf("%w: reach must be positive, is %g", drillpath.ErrInvalidInput, reach)
	}
	if !drillpath.Finite(inc) || !(inc > 0) || inc > math.Pi/2 {
		return 0, 0, fmt.Errorf("%w: inclination must be in (0°, 90°], is %g°", drillpath.ErrInvalidInput,
			drillpath.ToDeg(inc))
	}
	dV := reach / math.Tan(inc/2)
	kop, radius = tvd-dV, dV/math.Sin(inc)
	if kop < 0 {
		return 0, 0, fmt.Errorf("%w: kick-off point %.3f above surface", ErrUnreachable, kop)
	}
	return kop, radius, nil
}
