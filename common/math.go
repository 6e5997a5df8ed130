// Package common contains common types that are used throughout this module. They are not
// interface-wrapped structs, just plain value types that express the math the instancing
// protocol trades in: points, quaternions, and 3x4 affine transforms.
package common

import "math"

// Point3 is a 3D point or vector with float32 components.
type Point3 struct {
	X, Y, Z float32
}

// Origin returns the zero point. This is the documented default value for
// missing vector channels.
//
// Returns:
//   - Point3: the point (0, 0, 0)
func Origin() Point3 {
	return Point3{}
}

// Add returns the component-wise sum p + q.
func (p Point3) Add(q Point3) Point3 {
	return Point3{p.X + q.X, p.Y + q.Y, p.Z + q.Z}
}

// Sub returns the component-wise difference p - q.
func (p Point3) Sub(q Point3) Point3 {
	return Point3{p.X - q.X, p.Y - q.Y, p.Z - q.Z}
}

// Scale returns p scaled by s.
func (p Point3) Scale(s float32) Point3 {
	return Point3{p.X * s, p.Y * s, p.Z * s}
}

// Dot returns the dot product p · q.
func (p Point3) Dot(q Point3) float32 {
	return p.X*q.X + p.Y*q.Y + p.Z*q.Z
}

// Length returns the Euclidean length of p.
func (p Point3) Length() float32 {
	return float32(math.Sqrt(float64(p.Dot(p))))
}

// IsZero reports whether all components are exactly zero.
func (p Point3) IsZero() bool {
	return p.X == 0 && p.Y == 0 && p.Z == 0
}

// Color is an RGB color with float32 components in [0, 1].
// The zero value (black) is the documented default for missing color channels.
type Color struct {
	R, G, B float32
}

// Quat is a rotation quaternion (x, y, z, w).
type Quat struct {
	X, Y, Z, W float32
}

// IdentityQuat returns the identity rotation.
//
// Returns:
//   - Quat: the quaternion (0, 0, 0, 1)
func IdentityQuat() Quat {
	return Quat{W: 1}
}

// AxisAngle builds a quaternion rotating by angle radians around axis.
// The axis does not need to be normalized; a zero axis yields the identity.
//
// Parameters:
//   - axis: rotation axis
//   - angle: rotation angle in radians
//
// Returns:
//   - Quat: the unit quaternion encoding the rotation
func AxisAngle(axis Point3, angle float32) Quat {
	l := axis.Length()
	if l == 0 {
		return IdentityQuat()
	}
	half := float64(angle) / 2
	s := float32(math.Sin(half)) / l
	return Quat{
		X: axis.X * s,
		Y: axis.Y * s,
		Z: axis.Z * s,
		W: float32(math.Cos(half)),
	}
}

// Mul returns the composed rotation q * r (r applied first).
func (q Quat) Mul(r Quat) Quat {
	return Quat{
		X: q.W*r.X + q.X*r.W + q.Y*r.Z - q.Z*r.Y,
		Y: q.W*r.Y - q.X*r.Z + q.Y*r.W + q.Z*r.X,
		Z: q.W*r.Z + q.X*r.Y - q.Y*r.X + q.Z*r.W,
		W: q.W*r.W - q.X*r.X - q.Y*r.Y - q.Z*r.Z,
	}
}

// Normalize returns q scaled to unit length. A zero quaternion normalizes to
// the identity.
func (q Quat) Normalize() Quat {
	l := float32(math.Sqrt(float64(q.X*q.X + q.Y*q.Y + q.Z*q.Z + q.W*q.W)))
	if l == 0 {
		return IdentityQuat()
	}
	inv := 1 / l
	return Quat{q.X * inv, q.Y * inv, q.Z * inv, q.W * inv}
}

// IsIdentity reports whether q encodes no rotation.
func (q Quat) IsIdentity() bool {
	return q.X == 0 && q.Y == 0 && q.Z == 0
}

// AxisAngleOf decomposes q into a unit rotation axis and an angle in radians.
// The identity decomposes to a zero axis and zero angle.
//
// Returns:
//   - Point3: the unit rotation axis, or the zero vector for the identity
//   - float32: the rotation angle in radians
func (q Quat) AxisAngleOf() (Point3, float32) {
	n := q.Normalize()
	// Clamp for acos; |w| can exceed 1 by a rounding ulp.
	w := float64(n.W)
	if w > 1 {
		w = 1
	} else if w < -1 {
		w = -1
	}
	angle := float32(2 * math.Acos(w))
	s := float32(math.Sqrt(math.Max(0, 1-w*w)))
	if s < 1e-7 {
		return Point3{}, 0
	}
	inv := 1 / s
	return Point3{n.X * inv, n.Y * inv, n.Z * inv}, angle
}

// Fraction returns the rotation covering fraction t of q's rotation, i.e.
// rotating by t times q's angle around q's axis. This is how per-second spin
// rates are integrated over sub-shutter time steps.
//
// Parameters:
//   - t: fraction of the rotation to apply (may exceed 1 or be negative)
//
// Returns:
//   - Quat: the fractional rotation
func (q Quat) Fraction(t float32) Quat {
	axis, angle := q.AxisAngleOf()
	if angle == 0 {
		return IdentityQuat()
	}
	return AxisAngle(axis, angle*t)
}

// Matrix returns the pure-rotation transform encoded by q.
func (q Quat) Matrix() Matrix3 {
	n := q.Normalize()
	x, y, z, w := n.X, n.Y, n.Z, n.W
	xx, yy, zz := x*x, y*y, z*z
	xy, xz, yz := x*y, x*z, y*z
	wx, wy, wz := w*x, w*y, w*z
	return Matrix3{
		R0: Point3{1 - 2*(yy+zz), 2 * (xy + wz), 2 * (xz - wy)},
		R1: Point3{2 * (xy - wz), 1 - 2*(xx+zz), 2 * (yz + wx)},
		R2: Point3{2 * (xz + wy), 2 * (yz - wx), 1 - 2*(xx+yy)},
	}
}

// Matrix3 is a 3x4 affine transform: three rotation/scale rows plus a
// translation row, applied to row vectors (p' = p·R + T). This mirrors the
// transform layout render hosts exchange for instances.
type Matrix3 struct {
	R0, R1, R2 Point3 // rotation/scale rows
	T          Point3 // translation row
}

// Identity3 returns the identity transform. This is the documented default
// value for missing transform channels.
//
// Returns:
//   - Matrix3: the identity transform
func Identity3() Matrix3 {
	return Matrix3{
		R0: Point3{X: 1},
		R1: Point3{Y: 1},
		R2: Point3{Z: 1},
	}
}

// TranslationMatrix returns a pure-translation transform moving by t.
func TranslationMatrix(t Point3) Matrix3 {
	m := Identity3()
	m.T = t
	return m
}

// ComposeMatrix builds an affine transform from rotation, per-axis scale, and
// position, in scale-rotate-translate order.
//
// Parameters:
//   - rot: the rotation to apply
//   - scale: per-axis scale factors
//   - pos: final translation
//
// Returns:
//   - Matrix3: the composed transform
func ComposeMatrix(rot Quat, scale, pos Point3) Matrix3 {
	m := rot.Matrix()
	m.R0 = m.R0.Scale(scale.X)
	m.R1 = m.R1.Scale(scale.Y)
	m.R2 = m.R2.Scale(scale.Z)
	m.T = pos
	return m
}

// Mul composes two transforms: the result applies m first, then n.
//
// Parameters:
//   - n: the transform applied after m
//
// Returns:
//   - Matrix3: the composition m then n
func (m Matrix3) Mul(n Matrix3) Matrix3 {
	return Matrix3{
		R0: n.MulVector(m.R0),
		R1: n.MulVector(m.R1),
		R2: n.MulVector(m.R2),
		T:  n.MulPoint(m.T),
	}
}

// MulPoint transforms a point by m, including translation.
func (m Matrix3) MulPoint(p Point3) Point3 {
	return Point3{
		X: p.X*m.R0.X + p.Y*m.R1.X + p.Z*m.R2.X + m.T.X,
		Y: p.X*m.R0.Y + p.Y*m.R1.Y + p.Z*m.R2.Y + m.T.Y,
		Z: p.X*m.R0.Z + p.Y*m.R1.Z + p.Z*m.R2.Z + m.T.Z,
	}
}

// MulVector transforms a direction by m, ignoring translation.
func (m Matrix3) MulVector(p Point3) Point3 {
	return Point3{
		X: p.X*m.R0.X + p.Y*m.R1.X + p.Z*m.R2.X,
		Y: p.X*m.R0.Y + p.Y*m.R1.Y + p.Z*m.R2.Y,
		Z: p.X*m.R0.Z + p.Y*m.R1.Z + p.Z*m.R2.Z,
	}
}

// IsIdentity reports whether m is exactly the identity transform.
func (m Matrix3) IsIdentity() bool {
	return m == Identity3()
}

// ApproxEqual reports whether every component of m and n differs by at most eps.
//
// Parameters:
//   - n: the transform to compare against
//   - eps: maximum allowed absolute component difference
//
// Returns:
//   - bool: true if all twelve components are within eps
func (m Matrix3) ApproxEqual(n Matrix3, eps float32) bool {
	near := func(a, b Point3) bool {
		return absf(a.X-b.X) <= eps && absf(a.Y-b.Y) <= eps && absf(a.Z-b.Z) <= eps
	}
	return near(m.R0, n.R0) && near(m.R1, n.R1) && near(m.R2, n.R2) && near(m.T, n.T)
}

func absf(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
