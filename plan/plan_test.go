package plan

import (
	"bytes"
	"errors"
	"math"
	"testing"

	"github.com/npillmayer/drillpath"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func checkWaypoints(t *testing.T, p *Plan) {
	t.Helper()
	md := 0.0
	for i, wp := range p.Waypoints {
		assert.GreaterOrEqual(t, wp.Length, 0.0, "length of %v", wp)
		md += wp.Length
		assert.InDelta(t, md, wp.MD, 1e-6, "MD of %v must be running sum", wp)
		if i > 0 {
			prev := p.Waypoints[i-1]
			assert.GreaterOrEqual(t, wp.MD, prev.MD-1e-9)
			assert.GreaterOrEqual(t, wp.TVD, prev.TVD-1e-9)
			assert.GreaterOrEqual(t, wp.Reach, prev.Reach-1e-9)
		}
	}
	assert.Equal(t, "Final", p.Final().Name)
}

func names(p *Plan) []string {
	n := make([]string, len(p.Waypoints))
	for i, wp := range p.Waypoints {
		n[i] = wp.Name
	}
	return n
}

// --- TypeI -----------------------------------------------------------------

func TestTypeIReach(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	p, err := TypeI{TVD: 2500, KOP: 500, BUR: 3, Mode: ReachMode{Reach: 800}}.Solve()
	require.NoError(t, err)
	checkWaypoints(t, p)
	assert.Equal(t, []string{"KOP", "Build-up", "Slant", "Final"}, names(p))
	assert.InDelta(t, 572.9578, p.Geometry.Radius, 1e-4)
	assert.InDelta(t, 0.401679, p.Geometry.Theta, 1e-6)
	final := p.Final()
	assert.InDelta(t, 2500, final.TVD, 1e-6)
	assert.InDelta(t, 800, final.Reach, 1e-6)
	assert.InDelta(t, 2659.7222, final.MD, 1e-3)
	assert.Equal(t, 0.0, final.Length, "final waypoint is a marker")
	build, ok := p.Waypoint("Build-up")
	require.True(t, ok)
	assert.InDelta(t, 724.006, build.TVD, 1e-3)
	assert.InDelta(t, 45.604, build.Reach, 1e-3)
}

func TestTypeIMaxBuild(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	p, err := TypeI{TVD: 2500, KOP: 500, BUR: 3, Mode: MaxBuildMode{Angle: drillpath.Deg(30)}}.Solve()
	require.NoError(t, err)
	checkWaypoints(t, p)
	assert.InDelta(t, 1066.0637, p.Reach, 1e-3)
	assert.InDelta(t, 2778.6037, p.Final().MD, 1e-3)
	// solving for the derived reach gives back the build angle
	q, err := TypeI{TVD: 2500, KOP: 500, BUR: 3, Mode: ReachMode{Reach: p.Reach}}.Solve()
	require.NoError(t, err)
	assert.InDelta(t, drillpath.Deg(30), q.Geometry.Theta, 1e-9)
}

func TestTypeIModeErrors(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	_, err := TypeI{TVD: 2500, KOP: 500, BUR: 3}.Solve()
	assert.True(t, errors.Is(err, ErrNoMode))
	assert.True(t, errors.Is(err, drillpath.ErrConfiguration))
	_, err = TypeI{TVD: 2500, KOP: 500, BUR: 3, Mode: PinnedMaxBuildMode{Angle: 0.5, KOP2: 900}}.Solve()
	assert.True(t, errors.Is(err, drillpath.ErrConfiguration))
	_, err = TypeI{TVD: 2500, KOP: 500, BUR: 0, Mode: ReachMode{Reach: 800}}.Solve()
	assert.True(t, errors.Is(err, drillpath.ErrInvalidInput))
	_, err = TypeI{TVD: 400, KOP: 500, BUR: 3, Mode: ReachMode{Reach: 800}}.Solve()
	assert.True(t, errors.Is(err, drillpath.ErrInvalidInput))
	// the target lies inside the build circle
	_, err = TypeI{TVD: 700, KOP: 500, BUR: 3, Mode: ReachMode{Reach: 300}}.Solve()
	assert.True(t, errors.Is(err, drillpath.ErrDomain))
	// build overshoots the target depth
	_, err = TypeI{TVD: 600, KOP: 500, BUR: 3, Mode: MaxBuildMode{Angle: drillpath.Deg(45)}}.Solve()
	assert.True(t, errors.Is(err, drillpath.ErrDomain))
}

func TestSelectMode(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	reach, angle := 800.0, 0.5
	_, err := SelectMode(nil, nil)
	assert.True(t, errors.Is(err, ErrNoMode))
	_, err = SelectMode(&reach, &angle)
	assert.True(t, errors.Is(err, ErrAmbiguousMode))
	m, err := SelectMode(&reach, nil)
	require.NoError(t, err)
	assert.Equal(t, ReachMode{Reach: 800}, m)
	m, err = SelectMode(nil, &angle)
	require.NoError(t, err)
	assert.Equal(t, MaxBuildMode{Angle: 0.5}, m)
}

// --- TypeII ----------------------------------------------------------------

func TestTypeIIBranches(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	for _, c := range []struct {
		reach, theta, md float64
		branch           Branch
	}{
		{1000, 0.562511, 3266.9738, RadiiExceedReach},
		{2000, 1.036623, 3991.6448, ReachExceedsRadii},
	} {
		p, err := TypeII{TVD: 3000, KOP: 500, BUR: 3, DOR: 2, Reach: c.reach, EOD: 2500}.Solve()
		require.NoError(t, err)
		checkWaypoints(t, p)
		assert.Equal(t, []string{"KOP", "Build-up", "Slant", "Drop-off", "Final"}, names(p))
		assert.Equal(t, c.branch, p.Geometry.Branch)
		assert.InDelta(t, c.theta, p.Geometry.Theta, 1e-6)
		drop, _ := p.Waypoint("Drop-off")
		assert.InDelta(t, 2500, drop.TVD, 1e-6)
		assert.InDelta(t, c.reach, drop.Reach, 1e-6)
		final := p.Final()
		assert.InDelta(t, 3000, final.TVD, 1e-6)
		assert.InDelta(t, c.reach, final.Reach, 1e-6)
		assert.InDelta(t, 500, final.Length, 1e-6)
		assert.InDelta(t, c.md, final.MD, 1e-3)
	}
}

func TestTypeIIErrors(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	_, err := TypeII{TVD: 3000, KOP: 500, BUR: 3, DOR: 2, Reach: 1000, EOD: 3500}.Solve()
	assert.True(t, errors.Is(err, drillpath.ErrInvalidInput))
	_, err = TypeII{TVD: 3000, KOP: 500, BUR: 3, DOR: 0, Reach: 1000, EOD: 2500}.Solve()
	assert.True(t, errors.Is(err, drillpath.ErrInvalidInput))
	// arcs need more vertical room than KOP…EOD provides
	_, err = TypeII{TVD: 3000, KOP: 500, BUR: 3, DOR: 2, Reach: 1000, EOD: 900}.Solve()
	assert.True(t, errors.Is(err, drillpath.ErrDomain))
}

// --- TypeIII ---------------------------------------------------------------

func TestTypeIIIConsistentKOP(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	kop, err := KOPFromBuildRate(400, 2000, 3)
	require.NoError(t, err)
	assert.InDelta(t, 1453.7709, kop, 1e-3)
	p, err := TypeIII{TVD: 2000, KOP: kop, BUR: 3, Reach: 400}.Solve()
	require.NoError(t, err)
	checkWaypoints(t, p)
	assert.Equal(t, []string{"KOP", "Build-up", "Final"}, names(p))
	assert.InDelta(t, 1.264145, p.Geometry.Theta, 1e-5)
	assert.InDelta(t, math.Pi/2, p.Geometry.Omega, 1e-6)
	assert.InDelta(t, 2000, p.Final().TVD, 1e-6)
	assert.InDelta(t, 400, p.Final().Reach, 1e-6)
	assert.InDelta(t, 2178.0724, p.Final().MD, 1e-3)
}

func TestTypeIIIInconsistentTarget(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	_, err := TypeIII{TVD: 2000, KOP: 1000, BUR: 3, Reach: 400}.Solve()
	assert.True(t, errors.Is(err, ErrUnreachable))
	assert.True(t, errors.Is(err, drillpath.ErrDomain))
}

func TestTypeIIIRoundedKOP(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	kop, err := KOPFromBuildRate(400, 2000, 3)
	require.NoError(t, err)
	_, err = TypeIII{TVD: 2000, KOP: kop, BUR: 3, Reach: 400}.Solve()
	require.NoError(t, err)
	for _, rounded := range []float64{1453.771, 1453.770} {
		_, err = TypeIII{TVD: 2000, KOP: rounded, BUR: 3, Reach: 400}.Solve()
		assert.True(t, errors.Is(err, drillpath.ErrDomain), "KOP %.3f", rounded)
	}
}

func TestKOPHelpers(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	_, err := KOPFromBuildRate(600, 2000, 3)
	assert.True(t, errors.Is(err, drillpath.ErrDomain), "reach beyond build radius")
	_, err = KOPFromBuildRate(400, 300, 3)
	assert.True(t, errors.Is(err, drillpath.ErrDomain), "KOP above surface")
	kop, r, err := KOPFromInclination(400, 2000, drillpath.Deg(60))
	require.NoError(t, err)
	assert.InDelta(t, 1307.1797, kop, 1e-3)
	assert.InDelta(t, 800, r, 1e-6)
	// the result is a consistent type-III plan
	p, err := TypeIII{TVD: 2000, KOP: kop, BUR: drillpath.RateFromRadius(r), Reach: 400}.Solve()
	require.NoError(t, err)
	assert.InDelta(t, drillpath.Deg(60), p.Geometry.Theta, 1e-5)
	_, _, err = KOPFromInclination(400, 2000, 0)
	assert.True(t, errors.Is(err, drillpath.ErrInvalidInput))
}

// --- Horizontal ------------------------------------------------------------

func TestHorizontalSingleGain(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	p, err := HorizontalSingleGain{TVD: 2000, KOP: 1500, Reach: 1200}.Solve()
	require.NoError(t, err)
	checkWaypoints(t, p)
	assert.True(t, p.Horizontal())
	assert.InDelta(t, 500, p.Geometry.Radius, 1e-9)
	assert.InDelta(t, math.Pi/2, p.Geometry.Theta, 1e-12)
	build, _ := p.Waypoint("Build-up")
	assert.InDelta(t, 2000, build.TVD, 1e-9)
	assert.InDelta(t, 500, build.Reach, 1e-9)
	assert.InDelta(t, 1500+250*math.Pi+700, p.Final().MD, 1e-9)
	assert.InDelta(t, 700, p.Final().Length, 1e-9)
	_, err = HorizontalSingleGain{TVD: 2000, KOP: 1500, Reach: 300}.Solve()
	assert.True(t, errors.Is(err, drillpath.ErrDomain))
}

func TestHorizontalSingleGainDeepTarget(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	p, err := HorizontalSingleGain{TVD: 3000, KOP: 2000, Reach: 1500}.Solve()
	require.NoError(t, err)
	checkWaypoints(t, p)
	assert.InDelta(t, 1000, p.Geometry.Radius, 1e-9)
	build, _ := p.Waypoint("Build-up")
	assert.InDelta(t, 2000+500*math.Pi, build.MD, 1e-9)
	assert.InDelta(t, 1000, build.Reach, 1e-9)
	assert.InDelta(t, 2000+math.Pi/2*1000+500, p.Final().MD, 1e-9)
	assert.InDelta(t, 3000, p.Final().TVD, 1e-9)
	assert.InDelta(t, 1500, p.Final().Reach, 1e-9)
}

func TestHorizontalDualGainReach(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	p, err := HorizontalDualGain{TVD: 3000, KOP: 500, BUR1: 3, BUR2: 5, HorizontalLength: 800,
		Mode: ReachMode{Reach: 2500}}.Solve()
	require.NoError(t, err)
	checkWaypoints(t, p)
	assert.Equal(t, []string{"KOP", "Build-up 1", "Slant", "Build-up 2", "Final"}, names(p))
	assert.InDelta(t, 0.575973, p.Geometry.Theta, 1e-6)
	slant, _ := p.Waypoint("Slant")
	assert.InDelta(t, 2422.1905, slant.Length, 1e-3)
	b2, _ := p.Waypoint("Build-up 2")
	assert.InDelta(t, 3000, b2.TVD, 1e-6)
	assert.InDelta(t, 1700, b2.Reach, 1e-6)
	assert.InDelta(t, 2500, p.Final().Reach, 1e-6)
	assert.InDelta(t, 4394.1939, p.Final().MD, 1e-3)
}

func TestHorizontalDualGainMaxBuild(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	theta := drillpath.Deg(40)
	p, err := HorizontalDualGain{TVD: 3000, KOP: 500, BUR1: 3, BUR2: 5, HorizontalLength: 800,
		Mode: MaxBuildMode{Angle: theta}}.Solve()
	require.NoError(t, err)
	checkWaypoints(t, p)
	assert.InDelta(t, 2883.0684, p.Reach, 1e-3)
	q, err := HorizontalDualGain{TVD: 3000, KOP: 500, BUR1: 3, BUR2: 5, HorizontalLength: 800,
		Mode: ReachMode{Reach: p.Reach}}.Solve()
	require.NoError(t, err)
	assert.InDelta(t, theta, q.Geometry.Theta, 1e-9)
}

func TestHorizontalDualGainPinned(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	theta := drillpath.Deg(40)
	p, err := HorizontalDualGain{TVD: 3000, KOP: 500, BUR1: 3, HorizontalLength: 800,
		Mode: PinnedMaxBuildMode{Angle: theta, KOP2: 2800}}.Solve()
	require.NoError(t, err)
	checkWaypoints(t, p)
	assert.InDelta(t, 559.8910, p.Geometry.Radius2, 1e-3)
	slant, _ := p.Waypoint("Slant")
	assert.InDelta(t, 2800, slant.TVD, 1e-6)
	assert.InDelta(t, 2983.8450, p.Reach, 1e-3)
	// second rate given although derived
	_, err = HorizontalDualGain{TVD: 3000, KOP: 500, BUR1: 3, BUR2: 5, HorizontalLength: 800,
		Mode: PinnedMaxBuildMode{Angle: theta, KOP2: 2800}}.Solve()
	assert.True(t, errors.Is(err, drillpath.ErrConfiguration))
	// second build would start above the end of the first one
	_, err = HorizontalDualGain{TVD: 3000, KOP: 500, BUR1: 3, HorizontalLength: 800,
		Mode: PinnedMaxBuildMode{Angle: theta, KOP2: 700}}.Solve()
	assert.True(t, errors.Is(err, drillpath.ErrDomain))
}

func TestHorizontalDualGainErrors(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	_, err := HorizontalDualGain{TVD: 3000, KOP: 500, BUR1: 3, BUR2: 5, HorizontalLength: 800}.Solve()
	assert.True(t, errors.Is(err, ErrNoMode))
	// reach too short for both arcs
	_, err = HorizontalDualGain{TVD: 3000, KOP: 500, BUR1: 3, BUR2: 5, HorizontalLength: 800,
		Mode: ReachMode{Reach: 900}}.Solve()
	assert.True(t, errors.Is(err, drillpath.ErrDomain))
}

// --- Output ----------------------------------------------------------------

func TestWriteTable(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	p := MustSolve(TypeII{TVD: 3000, KOP: 500, BUR: 3, DOR: 2, Reach: 1000, EOD: 2500})
	var buf bytes.Buffer
	require.NoError(t, p.WriteTable(&buf))
	out := buf.String()
	t.Log(out)
	assert.Contains(t, out, "type-II plan")
	assert.Contains(t, out, "R1 + R2 > reach")
	assert.Contains(t, out, "Drop-off")
	assert.Contains(t, out, "3000.000")
}

func TestPlanView(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	p := MustSolve(HorizontalSingleGain{TVD: 2000, KOP: 1500, Reach: 1200})
	pv := p.PlanView(drillpath.P(100, 200), math.Pi/2) // due east
	require.Len(t, pv, len(p.Waypoints)+1)
	assert.True(t, pv[0].Equal(drillpath.P(100, 200)))
	last := pv[len(pv)-1]
	assert.InDelta(t, 1300, last.X(), 1e-6)
	assert.InDelta(t, 200, last.Y(), 1e-6)
}

func TestMustSolvePanics(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	assert.Panics(t, func() { MustSolve(TypeI{TVD: 2500, KOP: 500, BUR: 3}) })
}

func TestParseKind(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	k, err := ParseKind("Type-II")
	require.NoError(t, err)
	assert.Equal(t, KindTypeII, k)
	k, err = ParseKind("dual")
	require.NoError(t, err)
	assert.Equal(t, KindHorizontalDualGain, k)
	_, err = ParseKind("corkscrew")
	assert.True(t, errors.Is(err, drillpath.ErrConfiguration))
}
