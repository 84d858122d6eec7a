package survey

import (
	"fmt"
	"sort"

	"github.com/npillmayer/drillpath"
)

// Interpolated is a position along a realized path, found by linear
// interpolation between the two stations bracketing a vertical depth.
type Interpolated struct {
	Station
	Point
}

// AtTVD finds the path position at true vertical depth tvd. It returns
// false if tvd lies outside the path's vertical range. Lookups by TVD
// require TVD to be non-decreasing along the path; otherwise
// ErrNotMonotone is returned.
func (path *Path) AtTVD(tvd float64) (Interpolated, bool, error) {
	pts := path.Points
	for i := 1; i < len(pts); i++ {
		if pts[i].TVD < pts[i-1].TVD {
			return Interpolated{}, false, fmt.Errorf("%w: %w at station %d", drillpath.ErrDomain,
				ErrNotMonotone, i)
		}
	}
	n := len(pts)
	if n == 0 || tvd < pts[0].TVD || tvd > pts[n-1].TVD {
		return Interpolated{}, false, nil
	}
	k := sort.Search(n, func(i int) bool { return pts[i].TVD >= tvd })
	if k == 0 || pts[k].TVD == tvd {
		return Interpolated{Station: path.Stations[k], Point: pts[k]}, true, nil
	}
	a, b := pts[k-1], pts[k]
	sa, sb := path.Stations[k-1], path.Stations[k]
	t := (tvd - a.TVD) / (b.TVD - a.TVD)
	lerp := func(x, y float64) float64 { return x + t*(y-x) }
	ip := Interpolated{
		Station: Station{
			MD:  lerp(sa.MD, sb.MD),
			Inc: lerp(sa.Inc, sb.Inc),
			Azi: drillpath.NormAzimuth(sa.Azi + t*drillpath.WrapAngle(sb.Azi-sa.Azi)),
		},
		Point: Point{
			North: lerp(a.North, b.North),
			East:  lerp(a.East, b.East),
			TVD:   tvd,
			Reach: lerp(a.Reach, b.Reach),
		},
	}
	return ip, true, nil
}

// FrameAtTVD returns the local coordinate system of the bore at vertical
// depth tvd, together with the interpolated position. Row 2 of the frame
// is the bore's tangent. It returns false if tvd is outside the path.
func (path *Path) FrameAtTVD(tvd float64) (drillpath.Frame, Interpolated, bool, error) {
	ip, ok, err := path.AtTVD(tvd)
	if err != nil || !ok {
		return drillpath.Frame{}, ip, ok, err
	}
	return drillpath.BoreFrame(ip.Inc, ip.Azi), ip, true, nil
}
