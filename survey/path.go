package survey

import (
	"fmt"
	"io"
	"math"
	"text/tabwriter"

	"github.com/npillmayer/drillpath"
)

// Point is a cumulative position along a realized well path.
type Point struct {
	North float64 // northing
	East  float64 // easting
	TVD   float64 // true vertical depth
	Reach float64 // horizontal displacement
}

// Position returns the north/east/TVD part of a point as a vector.
func (pt Point) Position() drillpath.Vec3 {
	return drillpath.V(pt.North, pt.East, pt.TVD)
}

// Path is a realized well path: the stations of a survey together with
// one cumulative position per station and one increment per segment.
// Points[0] is the start position; Increments[i] leads from Points[i] to
// Points[i+1].
type Path struct {
	Method     Interpolator
	Stations   []Station
	Points     []Point
	Increments []Increment
}

// Accumulate folds the segment increments of a survey into a well path,
// starting at position start (north, east, TVD). The start reach is the
// horizontal norm of start.
//
// North, east and TVD are summed as vectors. Reach is tracked as a scalar:
// at station k it is the start reach plus the square root of the cumulative
// sum of squared reach increments up to k.
//
// If report is non-nil, a human readable table of the segments is written
// to it. Errors writing the report are ignored.
func Accumulate(stations []Station, start drillpath.Vec3, ip Interpolator, report io.Writer) (*Path, error) {
	if err := ValidateSurvey(stations); err != nil {
		tracer().Errorf("survey rejected: %v", err)
		return nil, err
	}
	if err := checkInterpolator(ip); err != nil {
		return nil, err
	}
	if !drillpath.Finite(start.X) || !drillpath.Finite(start.Y) || !drillpath.Finite(start.Z) {
		return nil, fmt.Errorf("%w: start position %v", drillpath.ErrInvalidInput, start)
	}
	n := len(stations)
	path := &Path{
		Method:     ip,
		Stations:   append([]Station(nil), stations...),
		Points:     make([]Point, n),
		Increments: make([]Increment, n-1),
	}
	reach0 := start.Horizontal()
	pos := start
	sumSq := 0.0
	path.Points[0] = Point{North: start.X, East: start.Y, TVD: start.Z, Reach: reach0}
	for i := 1; i < n; i++ {
		inc, err := SegmentIncrement(ip, stations[i-1], stations[i])
		if err != nil {
			return nil, fmt.Errorf("segment %d: %w", i, err)
		}
		path.Increments[i-1] = inc
		pos = pos.Add(inc.Delta())
		sumSq += inc.Reach * inc.Reach
		path.Points[i] = Point{North: pos.X, East: pos.Y, TVD: pos.Z, Reach: reach0 + math.Sqrt(sumSq)}
		tracer().Debugf("segment %d: Δ=%v, DLS=%.3f", i, inc.Delta(), inc.DLS)
	}
	tracer().Infof("accumulated %d stations with %v, final position %v", n, ip,
		path.Points[n-1].Position())
	if report != nil {
		_ = path.WriteReport(report)
	}
	return path, nil
}

// N returns the number of stations (and points) of a path.
func (path *Path) N() int {
	return len(path.Points)
}

// Final returns the last point of a path.
func (path *Path) Final() Point {
	return path.Points[len(path.Points)-1]
}

// DLS returns the dogleg severity series, one value per segment.
func (path *Path) DLS() []float64 {
	dls := make([]float64, len(path.Increments))
	for i, inc := range path.Increments {
		dls[i] = inc.DLS
	}
	return dls
}

// MaxDLS returns the largest dogleg severity of a path and the index of
// its segment.
func (path *Path) MaxDLS() (float64, int) {
	worst, at := 0.0, -1
	for i, inc := range path.Increments {
		if inc.DLS > worst || at < 0 {
			worst, at = inc.DLS, i
		}
	}
	return worst, at
}

// PlanView projects the path's points onto the horizontal plane, as
// (easting, northing) pairs.
func (path *Path) PlanView() []drillpath.Pair {
	pv := make([]drillpath.Pair, len(path.Points))
	for i, pt := range path.Points {
		pv[i] = drillpath.P(pt.East, pt.North)
	}
	return pv
}

// WriteReport writes a table of per-segment deltas, cumulative positions
// and dogleg severities, rounded to 3 decimals.
func (path *Path) WriteReport(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(tw, "Segment\tΔNorth\tΔEast\tΔVertical\tΔReach\tN\tE\tTVD\tReach\tDLS\t\n")
	for i, inc := range path.Increments {
		pt := path.Points[i+1]
		fmt.Fprintf(tw, "%d\t%.3f\t%.3f\t%.3f\t%.3f\t%.3f\t%.3f\t%.3f\t%.3f\t%.3f\t\n",
			i+1, inc.North, inc.East, inc.Vertical, inc.Reach,
			pt.North, pt.East, pt.TVD, pt.Reach, inc.DLS)
	}
	return tw.Flush()
}
