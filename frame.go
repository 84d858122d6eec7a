package drillpath

import (
	"fmt"
	"math"
)

// === Rotations =============================================================

// Frame is a 3x3 matrix, flattened by rows, used for rotating vectors
// between the well coordinate system and a local system along the bore.
type Frame [9]float64

func (m *Frame) set(row, col int, value float64) {
	m[row*3+col] = value
}

func (m Frame) row(row int) Vec3 {
	return Vec3{m[row*3], m[row*3+1], m[row*3+2]}
}

func (m Frame) col(col int) Vec3 {
	return Vec3{m[col], m[3+col], m[6+col]}
}

// Identity frame. Will transform a vector onto itself.
func Identity() Frame {
	var m Frame
	m.set(0, 0, 1.0)
	m.set(1, 1, 1.0)
	m.set(2, 2, 1.0)
	return m
}

// AzimuthRotation rotates about the vertical axis by azimuth a, turning
// north towards east.
func AzimuthRotation(a float64) Frame {
	m := Identity()
	sin, cos := math.Sincos(a)
	m.set(0, 0, cos)
	m.set(0, 1, sin)
	m.set(1, 0, -sin)
	m.set(1, 1, cos)
	return m
}

// InclinationRotation tilts the vertical axis towards the (rotated) north
// axis by inclination i.
func InclinationRotation(i float64) Frame {
	m := Identity()
	sin, cos := math.Sincos(i)
	m.set(0, 0, cos)
	m.set(0, 2, -sin)
	m.set(2, 0, sin)
	m.set(2, 2, cos)
	return m
}

// BoreFrame is the local coordinate system of a bore with inclination inc
// and azimuth azi: InclinationRotation(inc) · AzimuthRotation(azi).
// Row 2 is the bore's tangent direction expressed in well coordinates
// with TVD pointing downwards.
func BoreFrame(inc, azi float64) Frame {
	return AzimuthRotation(azi).Combine(InclinationRotation(inc))
}

// Axis returns row i of the frame as a vector.
func (m Frame) Axis(i int) Vec3 {
	return m.row(i)
}

// Debug Stringer for a frame.
func (m Frame) String() string {
	return fmt.Sprintf("[%g,%g,%g|%g,%g,%g|%g,%g,%g]",
		m[0], m[1], m[2], m[3], m[4], m[5], m[6], m[7], m[8])
}

// Combine 2 frames to a new one: first m, then n. Returns a new frame
// without changing the argument(s).
func (m Frame) Combine(n Frame) Frame {
	var o Frame
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			o.set(row, col, n.row(row).Dot(m.col(col)))
		}
	}
	return o
}

// Transform a vector. The argument is unchanged and a new vector is returned.
func (m Frame) Transform(v Vec3) Vec3 {
	return Vec3{m.row(0).Dot(v), m.row(1).Dot(v), m.row(2).Dot(v)}
}
