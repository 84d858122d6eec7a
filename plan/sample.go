package plan

import (
	"fmt"
	"math"

	"github.com/npillmayer/drillpath"
)

// Sample is a point of a densely sampled plan.
type Sample struct {
	TVD          float64
	MD           float64
	Displacement float64
}

// SampleOptions configures the default TVD grid of Plan.Sample.
//
// The grid has Count points evenly spaced from 0 to the target TVD. For
// plans ending horizontally, the last HorizontalCount of them are instead
// repeated target TVD values, which spread out along the horizontal section.
type SampleOptions struct {
	Count           int
	HorizontalCount int
}

// DefaultSampleOptions returns the options used by Sample(nil).
func DefaultSampleOptions() SampleOptions {
	return SampleOptions{Count: 200, HorizontalCount: 100}
}

// Grid creates a TVD sampling grid for a plan.
func (p *Plan) Grid(opts SampleOptions) ([]float64, error) {
	spaced, repeated := opts.Count, 0
	if p.Horizontal() {
		spaced, repeated = opts.Count-opts.HorizontalCount, opts.HorizontalCount
		if repeated < 1 {
			return nil, fmt.Errorf("%w: horizontal plans need repeated samples", drillpath.ErrInvalidInput)
		}
	}
	if spaced < 2 {
		return nil, fmt.Errorf("%w: sample grid needs at least 2 spaced points, has %d",
			drillpath.ErrInvalidInput, spaced)
	}
	tvd := p.Final().TVD
	grid := make([]float64, spaced+repeated)
	for i := 0; i < spaced; i++ {
		grid[i] = tvd * float64(i) / float64(spaced-1)
	}
	for i := spaced - 1; i < len(grid); i++ {
		grid[i] = tvd
	}
	return grid, nil
}

// Sample evaluates a plan at the vertical depths of grid, inverting the
// geometry of the section which contains each depth. A nil grid selects
// the default grid (see SampleOptions).
//
// Horizontal sections have no TVD extent. Samples after the first one at
// the target TVD are spread evenly along a trailing horizontal section,
// the last one landing on the final waypoint.
func (p *Plan) Sample(grid []float64) ([]Sample, error) {
	if len(p.Sections) == 0 {
		return nil, fmt.Errorf("%w: plan has no sections", drillpath.ErrInvalidInput)
	}
	var err error
	if grid == nil {
		if grid, err = p.Grid(DefaultSampleOptions()); err != nil {
			return nil, err
		}
	}
	target := p.Final().TVD
	tol := tolerance * math.Max(1, target)
	for _, z := range grid {
		if !drillpath.Finite(z) || z < -tol || z > target+tol {
			return nil, fmt.Errorf("%w: sample depth %g outside [0, %g]", drillpath.ErrInvalidInput,
				z, target)
		}
	}
	var hor *Section
	if p.Horizontal() {
		hor = &p.Sections[len(p.Sections)-1]
	}
	samples := make([]Sample, len(grid))
	first := -1 // index of the first sample at target TVD
	for i, z := range grid {
		atTarget := math.Abs(z-target) <= tol
		if hor != nil && atTarget && first >= 0 && i > first {
			l := hor.Length() * float64(i-first) / float64(len(grid)-first-1)
			samples[i] = Sample{TVD: target, MD: hor.Start.MD + l, Displacement: hor.Start.Reach + l}
			continue
		}
		if atTarget && first < 0 {
			first = i
		}
		if samples[i], err = p.sampleAt(z); err != nil {
			return nil, err
		}
	}
	tracer().Debugf("sampled %s plan at %d depths", p.Kind, len(grid))
	return samples, nil
}

// sampleAt inverts the section containing depth z. Sections are half-open
// TVD intervals [start, end), tried in plan order; sections without TVD
// extent are skipped. Depths at the very bottom belong to the last section
// with TVD extent.
func (p *Plan) sampleAt(z float64) (Sample, error) {
	var last *Section
	for i := range p.Sections {
		s := &p.Sections[i]
		if !(s.End.TVD > s.Start.TVD) {
			continue
		}
		last = s
		if z < s.End.TVD && z >= s.Start.TVD {
			return invert(s, z)
		}
	}
	if last == nil {
		return Sample{}, fmt.Errorf("%w: plan has no vertical extent", drillpath.ErrDomain)
	}
	if z < last.Start.TVD { // above the first section, only by rounding
		z = last.Start.TVD
	}
	return invert(last, z)
}

func invert(s *Section, z float64) (Sample, error) {
	dz := math.Min(math.Max(z-s.Start.TVD, 0), s.End.TVD-s.Start.TVD)
	md0, d0, a0 := s.Start.MD, s.Start.Reach, s.IncStart
	smp := Sample{TVD: z}
	switch s.Kind {
	case Vertical:
		smp.MD, smp.Displacement = md0+dz, d0
	case Tangent:
		sin, cos := math.Sincos(a0)
		smp.MD, smp.Displacement = md0+dz/cos, d0+dz*sin/cos
	case Build: // z = TVD0 + R·(sin φ − sin a0)
		phi, err := drillpath.Asin(math.Sin(a0) + dz/s.Radius)
		if err != nil {
			return Sample{}, err
		}
		smp.MD = md0 + s.Radius*(phi-a0)
		smp.Displacement = d0 + s.Radius*(math.Cos(a0)-math.Cos(phi))
	case Drop: // z = TVD0 + R·(sin a0 − sin φ)
		phi, err := drillpath.Asin(math.Sin(a0) - dz/s.Radius)
		if err != nil {
			return Sample{}, err
		}
		smp.MD = md0 + s.Radius*(a0-phi)
		smp.Displacement = d0 + s.Radius*(math.Cos(phi)-math.Cos(a0))
	default:
		return Sample{}, fmt.Errorf("%w: cannot sample %s section by depth", drillpath.ErrDomain, s.Kind)
	}
	return smp, nil
}
