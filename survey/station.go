package survey

import (
	"fmt"
	"math"

	"github.com/npillmayer/drillpath"
)

// Station is a single survey reading. Angles are radians.
type Station struct {
	MD  float64 // measured depth
	Inc float64 // inclination from vertical, 0 … π
	Azi float64 // azimuth from north, 0 … 2π
}

// NewStation creates a station, checking the reading and normalizing the
// azimuth to 0 … 2π.
func NewStation(md, inc, azi float64) (Station, error) {
	st := Station{MD: md, Inc: inc, Azi: drillpath.NormAzimuth(azi)}
	if err := st.Validate(); err != nil {
		return Station{}, err
	}
	return st, nil
}

// Validate checks a single station reading.
func (st Station) Validate() error {
	if !drillpath.Finite(st.MD) || !drillpath.Finite(st.Inc) || !drillpath.Finite(st.Azi) {
		return fmt.Errorf("%w: station %v has non-finite values", drillpath.ErrInvalidInput, st)
	}
	if st.MD < 0 {
		return fmt.Errorf("%w: station has negative measured depth %g", drillpath.ErrInvalidInput, st.MD)
	}
	if st.Inc < 0 || st.Inc > math.Pi {
		return fmt.Errorf("%w: inclination %g outside [0,π]", drillpath.ErrInvalidInput, st.Inc)
	}
	return nil
}

func (st Station) String() string {
	return fmt.Sprintf("[MD=%g inc=%.4g° azi=%.4g°]", st.MD, drillpath.ToDeg(st.Inc),
		drillpath.ToDeg(st.Azi))
}

// Increment is the position change across one survey segment.
type Increment struct {
	North    float64 // Δ northing
	East     float64 // Δ easting
	Vertical float64 // Δ true vertical depth
	Reach    float64 // horizontal step length
	DLS      float64 // dogleg severity, degrees per 30 length units
}

// Delta returns the north/east/vertical part of an increment as a vector.
func (inc Increment) Delta() drillpath.Vec3 {
	return drillpath.V(inc.North, inc.East, inc.Vertical)
}

// ValidateSurvey checks that a list of stations may be accumulated:
// at least two stations, every station valid, MD strictly increasing.
func ValidateSurvey(stations []Station) error {
	if len(stations) < 2 {
		return fmt.Errorf("%w: need at least 2, got %d", ErrTooFewStations, len(stations))
	}
	for i, st := range stations {
		if err := st.Validate(); err != nil {
			return fmt.Errorf("station %d: %w", i, err)
		}
		if i > 0 && !(st.MD > stations[i-1].MD) {
			return fmt.Errorf("%w: MD %g at station %d follows %g", ErrMDStep, st.MD, i,
				stations[i-1].MD)
		}
	}
	return nil
}
