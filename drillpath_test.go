package drillpath

import (
	"errors"
	"math"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
)

func TestNumericBasic(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	a := 0.000000008
	if !Is0(a) {
		t.Errorf("Expected a to be zero, is not")
	}
	assert.True(t, Is1(1.00000001))
	assert.False(t, Finite(math.NaN()))
	assert.False(t, Finite(math.Inf(-1)))
}

func TestPairBasic(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	p := P(3, 2)
	q := P(-3, -2)
	r := p + q
	if !r.Equal(Origin) {
		t.Errorf("Expected p + q to be (0,0), is %v", r)
	}
	assert.InDelta(t, 5.0, P(0, 0).Distance(P(3, 4)), 1e-12)
}

func TestRotation(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	if !P(1, 0).Rotated(180 * Deg2Rad).Scaled(-1).Equal(P(1, 0)) {
		t.Errorf("Expected (1,0) rotated by 180° and mirrored to be (1,0), is not")
	}
	// plan view of a reach of 100 along azimuth 90°: due east
	pv := P(0, 100).Rotated(-Deg(90))
	assert.InDelta(t, 100.0, pv.X(), 1e-9)
	assert.InDelta(t, 0.0, pv.Y(), 1e-9)
}

func TestAngleHelpers(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	assert.InDelta(t, Deg(20), WrapAngle(Deg(380)), 1e-12)
	assert.InDelta(t, -Deg(20), WrapAngle(Deg(340)), 1e-12)
	assert.InDelta(t, Deg(350), NormAzimuth(-Deg(10)), 1e-12)
	assert.InDelta(t, 180.0, ToDeg(math.Pi), 1e-12)
}

func TestAsinAcosDomain(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	x, err := Asin(1 + Epsilon/10)
	assert.NoError(t, err)
	assert.InDelta(t, math.Pi/2, x, 1e-12)
	_, err = Acos(1.01)
	assert.True(t, errors.Is(err, ErrDomain))
	_, err = Asin(math.NaN())
	assert.True(t, errors.Is(err, ErrDomain))
}

func TestBuildRate(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	bur := BuildRate(3)
	assert.InDelta(t, 572.9578, bur.Radius(), 1e-3)
	assert.InDelta(t, 3.0, float64(RateFromRadius(bur.Radius())), 1e-12)
	assert.Error(t, BuildRate(0).Validate("BUR"))
	assert.NoError(t, bur.Validate("BUR"))
	dls, err := Severity(Deg(3), 30)
	assert.NoError(t, err)
	assert.InDelta(t, 3.0, dls, 1e-12)
	_, err = Severity(Deg(3), 0)
	assert.True(t, errors.Is(err, ErrInvalidInput))
}

func TestBoreFrame(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	f := BoreFrame(0, 0)
	assert.Equal(t, Identity(), f)
	// 90° inclination heading east: tangent points east
	f = BoreFrame(Deg(90), Deg(90))
	tangent := f.Axis(2)
	assert.True(t, tangent.Equal(V(0, 1, 0)), "tangent = %v", tangent)
	// frames are orthonormal
	f = BoreFrame(Deg(37), Deg(211))
	for i := 0; i < 3; i++ {
		assert.InDelta(t, 1.0, f.Axis(i).Norm(), 1e-12)
		for j := i + 1; j < 3; j++ {
			assert.InDelta(t, 0.0, f.Axis(i).Dot(f.Axis(j)), 1e-12)
		}
	}
	v := V(1, 2, 3)
	assert.True(t, Identity().Transform(v).Equal(v))
}
