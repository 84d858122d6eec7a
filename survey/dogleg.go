package survey

import (
	"fmt"
	"math"

	"github.com/npillmayer/drillpath"
)

// DoglegAngle is the total angle change β between the bore directions at
// two stations, i.e. the solution of
//
//	cos β = cos(Δinc) − sin(inc1)·sin(inc2)·(1 − cos(Δazi))
//
// It is evaluated in its half-angle form, which keeps full precision for
// the small angles typical of survey segments.
func DoglegAngle(s1, s2 Station) float64 {
	sinInc := math.Sin(0.5 * (s2.Inc - s1.Inc))
	sinAzi := math.Sin(0.5 * (s2.Azi - s1.Azi))
	h := sinInc*sinInc + math.Sin(s1.Inc)*math.Sin(s2.Inc)*sinAzi*sinAzi
	h = math.Min(math.Max(h, 0), 1)
	return 2 * math.Asin(math.Sqrt(h))
}

// DoglegSeverity is the dogleg angle between two stations normalized to
// degrees per 30 length units. It fails for a non-positive MD step.
func DoglegSeverity(s1, s2 Station) (float64, error) {
	dMD := s2.MD - s1.MD
	dls, err := drillpath.Severity(DoglegAngle(s1, s2), dMD)
	if err != nil {
		return 0, fmt.Errorf("%w: segment %v → %v", ErrMDStep, s1, s2)
	}
	return dls, nil
}
