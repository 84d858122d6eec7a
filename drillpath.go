/*
Package drillpath implements numeric helpers, units and coordinate types
shared by the well trajectory packages: survey interpolation (package survey),
trajectory planning (package plan), tool-face geometry (package toolface)
and lease polygons (package polygon).

All angles are radians. Curvature rates follow the oilfield convention of
"degrees per 30 length units" and are carried by type BuildRate, which is the
only place where degrees enter the computations.

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package drillpath

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"

	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'drillpath'
func tracer() tracing.Trace {
	return tracing.Select("drillpath")
}

// Error kinds shared by all packages of this module. Packages wrap them
// with context, clients test for them with errors.Is.
var (
	// ErrInvalidInput flags input rejected before any computation.
	ErrInvalidInput = errors.New("invalid input")
	// ErrDomain flags a geometrically infeasible configuration, e.g. an
	// arcsin/arccos argument outside [-1,1].
	ErrDomain = errors.New("domain error")
	// ErrConfiguration flags an invalid combination of optional constraints.
	ErrConfiguration = errors.New("configuration error")
)

// === Numeric Data Type =====================================================

// Deg2Rad is a constant for converting from DEG to RAD or vice versa
var Deg2Rad float64 = math.Pi / 180

// Epsilon : numbers below ε are considered 0
var Epsilon float64 = 0.0000001

// Is0 is a predicate: is n = 0 ?
func Is0(n float64) bool {
	return math.Abs(n) <= Epsilon
}

// Is1 is a predicate: is n = 1.0 ?
func Is1(n float64) bool {
	return math.Abs(1-n) <= Epsilon
}

// Zap makes n = 0 if n "means" to be zero
func Zap(n float64) float64 {
	if Is0(n) {
		n = 0
	}
	return n
}

// Finite is a predicate: is n neither NaN nor ±Inf ?
func Finite(n float64) bool {
	return !math.IsNaN(n) && !math.IsInf(n, 0)
}

// Deg converts degrees to radians.
func Deg(d float64) float64 {
	return d * Deg2Rad
}

// ToDeg converts radians to degrees.
func ToDeg(r float64) float64 {
	return r / Deg2Rad
}

// WrapAngle reduces an angle to fit into -π … π.
func WrapAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a > math.Pi {
		a -= 2 * math.Pi
	} else if a <= -math.Pi {
		a += 2 * math.Pi
	}
	return a
}

// NormAzimuth reduces an azimuth to fit into 0 … 2π.
func NormAzimuth(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a
}

// Asin is math.Asin with a domain check. Arguments which exceed ±1 by no
// more than ε are treated as ±1 (rounding noise of closed-form geometry);
// anything beyond is reported as ErrDomain.
func Asin(x float64) (float64, error) {
	x, err := unitArg("arcsin", x)
	if err != nil {
		return 0, err
	}
	return math.Asin(x), nil
}

// Acos is math.Acos with a domain check, see Asin.
func Acos(x float64) (float64, error) {
	x, err := unitArg("arccos", x)
	if err != nil {
		return 0, err
	}
	return math.Acos(x), nil
}

func unitArg(fn string, x float64) (float64, error) {
	if math.IsNaN(x) {
		tracer().Errorf("%s of NaN", fn)
		return 0, fmt.Errorf("%w: %s argument is NaN", ErrDomain, fn)
	}
	if math.Abs(x) > 1 {
		if !Is1(math.Abs(x)) {
			tracer().Errorf("%s argument %g outside [-1,1]", fn, x)
			return 0, fmt.Errorf("%w: %s argument %g outside [-1,1]", ErrDomain, fn, x)
		}
		x = math.Copysign(1, x)
	}
	return x, nil
}

// === Pair Data Type ========================================================

// Pair is a 2D point. It is used for vertical sections (displacement, TVD)
// and for plan views (easting, northing).
type Pair complex128

// Origin represents the frequently used constant (0,0).
var Origin = P(float64(0), float64(0))

// Pretty Stringer for simple pairs.
func (p Pair) String() string {
	return fmt.Sprintf("(%g,%g)", real(p), imag(p))
}

// C returns a Pair as a complex number.
func (p Pair) C() complex128 {
	return complex128(p)
}

// P is a quick notation for contructing a pair from floats.
func P(x, y float64) Pair {
	return Pair(complex(x, y))
}

// X is the x-part of a pair.
func (p Pair) X() float64 {
	return real(p.C())
}

// Y is the y-part of a pair.
func (p Pair) Y() float64 {
	return imag(p.C())
}

// Zap rounds x-part and y-part to Epsilon.
func (p Pair) Zap() Pair {
	return P(Zap(p.X()), Zap(p.Y()))
}

// Equal compares two pairs.
func (p Pair) Equal(p2 Pair) bool {
	return Is0(p.X()-p2.X()) && Is0(p.Y()-p2.Y())
}

// Abs is the distance of p from the origin.
func (p Pair) Abs() float64 {
	return cmplx.Abs(p.C())
}

// Angle is the polar angle of p, measured counter-clockwise from the x-axis.
func (p Pair) Angle() float64 {
	return cmplx.Phase(p.C())
}

// Distance returns the euclidean distance between p and q.
func (p Pair) Distance(q Pair) float64 {
	return (q - p).Abs()
}

// Scaled returns a new pair scaled by factor a.
func (p Pair) Scaled(a float64) Pair {
	return P(p.X()*a, p.Y()*a).Zap()
}

// Rotated returns a new pair rotated around origin by theta (counterclockwise).
func (p Pair) Rotated(theta float64) Pair {
	return Pair(p.C() * cmplx.Rect(1, theta)).Zap()
}

// === Vec3 Data Type ========================================================

// Vec3 is a position or displacement in well coordinates:
// X = northing, Y = easting, Z = true vertical depth (positive downwards).
type Vec3 struct{ X, Y, Z float64 }

// V is a quick notation for constructing a Vec3.
func V(north, east, tvd float64) Vec3 {
	return Vec3{X: north, Y: east, Z: tvd}
}

// Add returns the sum of two vectors.
func (v Vec3) Add(o Vec3) Vec3 { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }

// Sub returns the difference between two vectors.
func (v Vec3) Sub(o Vec3) Vec3 { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }

// Mul scales a vector by a scalar.
func (v Vec3) Mul(k float64) Vec3 { return Vec3{v.X * k, v.Y * k, v.Z * k} }

// Dot returns the dot product of two vectors.
func (v Vec3) Dot(o Vec3) float64 { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }

// Norm returns the euclidean length of v.
func (v Vec3) Norm() float64 { return math.Sqrt(v.Dot(v)) }

// Horizontal returns the length of the north/east part of v, i.e. the reach
// of a position relative to the well head.
func (v Vec3) Horizontal() float64 { return math.Hypot(v.X, v.Y) }

// Equal compares two vectors component-wise within Epsilon.
func (v Vec3) Equal(o Vec3) bool {
	return Is0(v.X-o.X) && Is0(v.Y-o.Y) && Is0(v.Z-o.Z)
}

func (v Vec3) String() string {
	return fmt.Sprintf("(N=%g,E=%g,TVD=%g)", v.X, v.Y, v.Z)
}
