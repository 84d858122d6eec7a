package plan

import (
	"errors"
	"testing"

	"github.com/npillmayer/drillpath"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPlanners() []Planner {
	return []Planner{
		TypeI{TVD: 2500, KOP: 500, BUR: 3, Mode: ReachMode{Reach: 800}},
		TypeI{TVD: 2500, KOP: 500, BUR: 3, Mode: MaxBuildMode{Angle: drillpath.Deg(30)}},
		TypeII{TVD: 3000, KOP: 500, BUR: 3, DOR: 2, Reach: 1000, EOD: 2500},
		TypeII{TVD: 3000, KOP: 500, BUR: 3, DOR: 2, Reach: 2000, EOD: 2500},
		TypeIII{TVD: 2000, KOP: 1453.7708941253143, BUR: 3, Reach: 400},
		HorizontalSingleGain{TVD: 2000, KOP: 1500, Reach: 1200},
		HorizontalDualGain{TVD: 3000, KOP: 500, BUR1: 3, BUR2: 5, HorizontalLength: 800,
			Mode: ReachMode{Reach: 2500}},
		HorizontalDualGain{TVD: 3000, KOP: 500, BUR1: 3, HorizontalLength: 800,
			Mode: PinnedMaxBuildMode{Angle: drillpath.Deg(40), KOP2: 2800}},
	}
}

func TestSampleRoundTrip(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	for _, planner := range testPlanners() {
		p, err := planner.Solve()
		require.NoError(t, err, "%s", planner.Kind())
		samples, err := p.Sample(nil)
		require.NoError(t, err)
		require.Len(t, samples, 200)
		final, last := p.Final(), samples[len(samples)-1]
		assert.InEpsilon(t, final.MD, last.MD, 1e-3, "%s MD", p.Kind)
		assert.InEpsilon(t, final.TVD, last.TVD, 1e-3, "%s TVD", p.Kind)
		assert.InEpsilon(t, final.Reach, last.Displacement, 1e-3, "%s displacement", p.Kind)
		assert.Equal(t, 0.0, samples[0].MD)
		for i := 1; i < len(samples); i++ {
			assert.GreaterOrEqual(t, samples[i].MD, samples[i-1].MD-1e-9, "%s sample %d", p.Kind, i)
			assert.GreaterOrEqual(t, samples[i].Displacement, samples[i-1].Displacement-1e-9)
			assert.GreaterOrEqual(t, samples[i].TVD, samples[i-1].TVD)
		}
	}
}

func TestSampleHitsWaypoints(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	for _, planner := range testPlanners() {
		p := MustSolve(planner)
		for _, wp := range p.Waypoints {
			if p.Horizontal() && wp.Name == "Final" {
				continue // not addressable by depth
			}
			samples, err := p.Sample([]float64{wp.TVD})
			require.NoError(t, err)
			assert.InDelta(t, wp.MD, samples[0].MD, 1e-3, "%s %s", p.Kind, wp.Name)
			assert.InDelta(t, wp.Reach, samples[0].Displacement, 1e-3, "%s %s", p.Kind, wp.Name)
		}
	}
}

func TestSampleVerticalPart(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	p := MustSolve(TypeII{TVD: 3000, KOP: 500, BUR: 3, DOR: 2, Reach: 1000, EOD: 2500})
	samples, err := p.Sample([]float64{0, 250, 2750})
	require.NoError(t, err)
	assert.Equal(t, Sample{TVD: 0, MD: 0, Displacement: 0}, samples[0])
	assert.Equal(t, Sample{TVD: 250, MD: 250, Displacement: 0}, samples[1])
	// below end of drop the well is vertical again
	drop, _ := p.Waypoint("Drop-off")
	assert.InDelta(t, drop.MD+250, samples[2].MD, 1e-6)
	assert.InDelta(t, 1000, samples[2].Displacement, 1e-6)
}

func TestSampleHorizontalSpread(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	p := MustSolve(HorizontalSingleGain{TVD: 2000, KOP: 1500, Reach: 1200})
	grid, err := p.Grid(SampleOptions{Count: 10, HorizontalCount: 5})
	require.NoError(t, err)
	require.Len(t, grid, 10)
	assert.Equal(t, 2000.0, grid[4])
	samples, err := p.Sample(grid)
	require.NoError(t, err)
	build, _ := p.Waypoint("Build-up")
	assert.InDelta(t, build.MD, samples[4].MD, 1e-6)
	for i := 5; i < 10; i++ {
		step := 700 * float64(i-4) / 5
		assert.InDelta(t, build.MD+step, samples[i].MD, 1e-6)
		assert.InDelta(t, 500+step, samples[i].Displacement, 1e-6)
		assert.Equal(t, 2000.0, samples[i].TVD)
	}
}

func TestSampleGridErrors(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	p := MustSolve(TypeI{TVD: 2500, KOP: 500, BUR: 3, Mode: ReachMode{Reach: 800}})
	_, err := p.Sample([]float64{100, 2600})
	assert.True(t, errors.Is(err, drillpath.ErrInvalidInput))
	_, err = p.Sample([]float64{-10})
	assert.True(t, errors.Is(err, drillpath.ErrInvalidInput))
	_, err = p.Grid(SampleOptions{Count: 1})
	assert.True(t, errors.Is(err, drillpath.ErrInvalidInput))
	h := MustSolve(HorizontalSingleGain{TVD: 2000, KOP: 1500, Reach: 1200})
	_, err = h.Grid(SampleOptions{Count: 100})
	assert.True(t, errors.Is(err, drillpath.ErrInvalidInput))
}
