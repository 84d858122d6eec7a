package drillpath

import (
	"fmt"
	"math"
)

// CourseLength is the reference length of curvature rates: rates are given
// in degrees per 30 length units (m or ft).
const CourseLength = 30.0

// BuildRate is a curvature rate (build-up or drop-off rate) in degrees per
// CourseLength. It is the only unit in this module which is not radians.
type BuildRate float64

// PerUnit returns the rate in radians per length unit.
func (r BuildRate) PerUnit() float64 {
	return Deg(float64(r)) / CourseLength
}

// Radius returns the radius of curvature of an arc drilled at rate r.
func (r BuildRate) Radius() float64 {
	return 1 / r.PerUnit()
}

// Validate checks that a rate is usable for deriving a radius.
func (r BuildRate) Validate(name string) error {
	if !Finite(float64(r)) || r <= 0 {
		return fmt.Errorf("%w: %s must be a positive rate, is %g°/%g", ErrInvalidInput,
			name, float64(r), CourseLength)
	}
	return nil
}

func (r BuildRate) String() string {
	return fmt.Sprintf("%.4g°/%g", float64(r), CourseLength)
}

// RateFromRadius returns the build rate which yields an arc of radius rad.
func RateFromRadius(rad float64) BuildRate {
	return BuildRate(ToDeg(1/rad) * CourseLength)
}

// Severity normalizes a total angle change over a course length to
// degrees per CourseLength. It fails for non-positive lengths.
func Severity(angle, length float64) (float64, error) {
	if !(length > 0) || math.IsInf(length, 0) {
		return 0, fmt.Errorf("%w: course length must be positive, is %g", ErrInvalidInput, length)
	}
	return ToDeg(angle) / (length / CourseLength), nil
}
