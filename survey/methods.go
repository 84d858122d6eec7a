package survey

import (
	"fmt"
	"math"
	"strings"

	"github.com/npillmayer/drillpath"
)

// Interpolator converts a pair of adjacent stations into a position increment.
// The increment's DLS field is left zero; it does not depend on the
// interpolation method and is filled in by SegmentIncrement.
type Interpolator interface {
	Segment(s1, s2 Station) Increment
}

// Method selects one of the built-in interpolation methods.
type Method int

// Interpolation methods, roughly in order of accuracy for curved segments.
const (
	Tangential Method = iota
	BalancedTangential
	AverageAngle
	RadiusOfCurvature
	MinimumCurvature
)

var methodNames = [...]string{
	"tangential",
	"balanced_tangential",
	"average_angle",
	"radius_of_curvature",
	"minimum_curvature",
}

// Names used by older survey tools.
var methodAliases = map[string]Method{
	"tangent":              Tangential,
	"balanced_tangent":     BalancedTangential,
	"mean_angle":           AverageAngle,
	"curvature_radius":     RadiusOfCurvature,
	"min_curvature":        MinimumCurvature,
	"min_curvature_radius": MinimumCurvature,
}

func (m Method) String() string {
	if m < 0 || int(m) >= len(methodNames) {
		return fmt.Sprintf("Method(%d)", int(m))
	}
	return methodNames[m]
}

// Methods lists all built-in methods.
func Methods() []Method {
	return []Method{Tangential, BalancedTangential, AverageAngle, RadiusOfCurvature, MinimumCurvature}
}

// ParseMethod finds a method by name. Names are case-insensitive, '-' and
// '_' are interchangeable.
func ParseMethod(name string) (Method, error) {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "-", "_")
	for i, n := range methodNames {
		if n == key {
			return Method(i), nil
		}
	}
	if m, ok := methodAliases[key]; ok {
		return m, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownMethod, name)
}

// Segment implements Interpolator. An invalid method is traced as an error
// and yields a zero increment; Accumulate and SegmentIncrement reject
// invalid methods before calling Segment.
func (m Method) Segment(s1, s2 Station) Increment {
	switch m {
	case Tangential:
		return tangential(s1, s2)
	case BalancedTangential:
		return balancedTangential(s1, s2)
	case AverageAngle:
		return averageAngle(s1, s2)
	case RadiusOfCurvature:
		return radiusOfCurvature(s1, s2)
	case MinimumCurvature:
		return minimumCurvature(s1, s2)
	}
	tracer().Errorf("segment with invalid interpolation method %d", int(m))
	return Increment{}
}

// SegmentIncrement computes the increment of a single segment with
// interpolator ip, including the segment's dogleg severity.
func SegmentIncrement(ip Interpolator, s1, s2 Station) (Increment, error) {
	if err := ValidateSurvey([]Station{s1, s2}); err != nil {
		return Increment{}, err
	}
	if err := checkInterpolator(ip); err != nil {
		return Increment{}, err
	}
	dls, err := DoglegSeverity(s1, s2)
	if err != nil {
		return Increment{}, err
	}
	inc := ip.Segment(s1, s2)
	inc.DLS = dls
	return inc, nil
}

func checkInterpolator(ip Interpolator) error {
	if ip == nil {
		return fmt.Errorf("%w: no interpolator", ErrUnknownMethod)
	}
	if m, ok := ip.(Method); ok && (m < Tangential || m > MinimumCurvature) {
		return fmt.Errorf("%w: %v", ErrUnknownMethod, m)
	}
	return nil
}

// --- Methods ---------------------------------------------------------------

// whole segment as a straight line at the lower station's orientation
func tangential(s1, s2 Station) Increment {
	return straight(s2.MD-s1.MD, s2.Inc, s2.Azi)
}

// half of the segment at each station's orientation
func balancedTangential(s1, s2 Station) Increment {
	half := 0.5 * (s2.MD - s1.MD)
	a := straight(half, s1.Inc, s1.Azi)
	b := straight(half, s2.Inc, s2.Azi)
	return Increment{
		North:    a.North + b.North,
		East:     a.East + b.East,
		Vertical: a.Vertical + b.Vertical,
		Reach:    a.Reach + b.Reach,
	}
}

// one straight line at the mean orientation
func averageAngle(s1, s2 Station) Increment {
	inc := 0.5 * (s1.Inc + s2.Inc)
	azi := s1.Azi + 0.5*drillpath.WrapAngle(s2.Azi-s1.Azi)
	return straight(s2.MD-s1.MD, inc, azi)
}

// arc with constant build and turn rates
func radiusOfCurvature(s1, s2 Station) Increment {
	dMD := s2.MD - s1.MD
	dAzi := drillpath.WrapAngle(s2.Azi - s1.Azi)
	h := dMD * cosDiff(s1.Inc, s2.Inc-s1.Inc) // horizontal arc length
	return Increment{
		North:    h * sinDiff(s1.Azi, dAzi),
		East:     h * cosDiff(s1.Azi, dAzi),
		Vertical: dMD * sinDiff(s1.Inc, s2.Inc-s1.Inc),
		Reach:    h,
	}
}

// single circular arc
func minimumCurvature(s1, s2 Station) Increment {
	beta := DoglegAngle(s1, s2)
	rf := 0.5 * (s2.MD - s1.MD) * RatioFactor(beta)
	sin1, cos1 := math.Sincos(s1.Inc)
	sin2, cos2 := math.Sincos(s2.Inc)
	dN := (sin1*math.Cos(s1.Azi) + sin2*math.Cos(s2.Azi)) * rf
	dE := (sin1*math.Sin(s1.Azi) + sin2*math.Sin(s2.Azi)) * rf
	return Increment{
		North:    dN,
		East:     dE,
		Vertical: (cos1 + cos2) * rf,
		Reach:    math.Hypot(dN, dE),
	}
}

// RatioFactor is the minimum curvature ratio factor F = (2/β)·tan(β/2).
// It takes its limit value 1 for a straight segment (β = 0).
func RatioFactor(beta float64) float64 {
	if math.Abs(beta) < 1e-9 {
		return 1 + beta*beta/12 // series expansion, avoids 0/0
	}
	return 2 / beta * math.Tan(0.5*beta)
}

func straight(length, inc, azi float64) Increment {
	sinI, cosI := math.Sincos(inc)
	sinA, cosA := math.Sincos(azi)
	return Increment{
		North:    length * sinI * cosA,
		East:     length * sinI * sinA,
		Vertical: length * cosI,
		Reach:    length * sinI,
	}
}

// sinDiff is (sin(a+d) - sin(a)) / d, with limit cos(a) for d → 0.
func sinDiff(a, d float64) float64 {
	if math.Abs(d) < 1e-9 {
		return math.Cos(a + 0.5*d)
	}
	return (math.Sin(a+d) - math.Sin(a)) / d
}

// cosDiff is (cos(a) - cos(a+d)) / d, with limit sin(a) for d → 0.
func cosDiff(a, d float64) float64 {
	if math.Abs(d) < 1e-9 {
		return math.Sin(a + 0.5*d)
	}
	return (math.Cos(a) - math.Cos(a+d)) / d
}
