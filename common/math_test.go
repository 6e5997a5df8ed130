package common

import (
	"math"
	"testing"
)

func TestIdentity3(t *testing.T) {
	m := Identity3()
	if !m.IsIdentity() {
		t.Fatal("Identity3() is not identity")
	}
	p := Point3{1, 2, 3}
	if got := m.MulPoint(p); got != p {
		t.Errorf("identity.MulPoint(%v) = %v, want %v", p, got, p)
	}
	if got := m.MulVector(p); got != p {
		t.Errorf("identity.MulVector(%v) = %v, want %v", p, got, p)
	}
}

func TestTranslationMatrix(t *testing.T) {
	m := TranslationMatrix(Point3{10, -5, 2})
	got := m.MulPoint(Point3{1, 1, 1})
	want := Point3{11, -4, 3}
	if got != want {
		t.Errorf("MulPoint = %v, want %v", got, want)
	}
	// Vectors ignore translation.
	if got := m.MulVector(Point3{1, 1, 1}); got != (Point3{1, 1, 1}) {
		t.Errorf("MulVector = %v, want unchanged", got)
	}
}

func TestAxisAngleRotation(t *testing.T) {
	// 90 degrees around Z maps +X to +Y.
	q := AxisAngle(Point3{0, 0, 1}, float32(math.Pi/2))
	got := q.Matrix().MulPoint(Point3{1, 0, 0})
	want := Point3{0, 1, 0}
	if !approxPoint(got, want, 1e-6) {
		t.Errorf("rotated point = %v, want %v", got, want)
	}
}

func TestAxisAngleZeroAxis(t *testing.T) {
	q := AxisAngle(Point3{}, 1.5)
	if !q.IsIdentity() {
		t.Errorf("AxisAngle(zero axis) = %v, want identity", q)
	}
}

func TestQuatFraction(t *testing.T) {
	full := AxisAngle(Point3{0, 0, 1}, float32(math.Pi))
	half := full.Fraction(0.5)
	_, angle := half.AxisAngleOf()
	if diff := math.Abs(float64(angle) - math.Pi/2); diff > 1e-5 {
		t.Errorf("half rotation angle = %v, want %v", angle, math.Pi/2)
	}
	// Fraction of the identity stays the identity.
	if got := IdentityQuat().Fraction(0.25); !got.IsIdentity() {
		t.Errorf("identity.Fraction = %v, want identity", got)
	}
}

func TestQuatAxisAngleRoundTrip(t *testing.T) {
	q := AxisAngle(Point3{1, 2, 3}, 0.75)
	axis, angle := q.AxisAngleOf()
	back := AxisAngle(axis, angle)
	if !approxQuat(back, q, 1e-5) {
		t.Errorf("round trip = %v, want %v", back, q)
	}
}

func TestComposeMatrix(t *testing.T) {
	m := ComposeMatrix(IdentityQuat(), Point3{2, 2, 2}, Point3{1, 0, 0})
	got := m.MulPoint(Point3{1, 1, 1})
	want := Point3{3, 2, 2}
	if !approxPoint(got, want, 1e-6) {
		t.Errorf("MulPoint = %v, want %v", got, want)
	}
}

func TestMatrixMulOrder(t *testing.T) {
	// m first (translate +X), then n (rotate 90 around Z).
	m := TranslationMatrix(Point3{1, 0, 0})
	n := AxisAngle(Point3{0, 0, 1}, float32(math.Pi/2)).Matrix()
	got := m.Mul(n).MulPoint(Point3{})
	want := Point3{0, 1, 0}
	if !approxPoint(got, want, 1e-6) {
		t.Errorf("composed origin = %v, want %v", got, want)
	}
}

func TestSliceToBytes(t *testing.T) {
	if b := SliceToBytes([]float32(nil)); b != nil {
		t.Errorf("SliceToBytes(nil) = %v, want nil", b)
	}
	b := SliceToBytes([]float32{0, 1})
	if len(b) != 8 {
		t.Fatalf("len = %d, want 8", len(b))
	}
}

func approxPoint(a, b Point3, eps float32) bool {
	return absf(a.X-b.X) <= eps && absf(a.Y-b.Y) <= eps && absf(a.Z-b.Z) <= eps
}

func approxQuat(a, b Quat, eps float32) bool {
	return absf(a.X-b.X) <= eps && absf(a.Y-b.Y) <= eps &&
		absf(a.Z-b.Z) <= eps && absf(a.W-b.W) <= eps
}
