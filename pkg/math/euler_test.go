package math

import (
	"math"
	"testing"
)

func eulerClose(a, b Euler) bool {
	const eps = 1e-5
	return math.Abs(float64(a.X-b.X)) < eps &&
		math.Abs(float64(a.Y-b.Y)) < eps &&
		math.Abs(float64(a.Z-b.Z)) < eps
}

func TestEulerQuatRoundTrip(t *testing.T) {
	tests := []Euler{
		{},
		{X: 0.3},
		{Y: -1.2},
		{Z: 2.5},
		{X: 0.1, Y: 0.2, Z: 0.3},
		{X: -2.8, Y: 1.1, Z: -0.7},
	}

	for _, e := range tests {
		got := EulerFromQuat(e.Quat())
		if !eulerClose(got, e) {
			t.Errorf("EulerFromQuat(%v.Quat()) = %v", e, got)
		}
	}
}

func TestEulerMat4MatchesQuat(t *testing.T) {
	e := Euler{X: 0.7, Y: -0.4, Z: 1.3}
	a := e.Mat4()
	b := e.Quat().ToMat4()
	for i := 0; i < 16; i++ {
		if math.Abs(float64(a[i]-b[i])) > 0.0001 {
			t.Fatalf("element %d: matrix %v, quat %v", i, a[i], b[i])
		}
	}
}

func TestEulerLocalAxisComposition(t *testing.T) {
	// Rotating an unrotated node about local X then local Y yields
	// exactly those angles.
	q := QuatIdentity().
		Mul(QuatFromAxisAngle(AxisX, -0.25)).
		Mul(QuatFromAxisAngle(AxisY, 0.5))

	got := EulerFromQuat(q)
	want := Euler{X: -0.25, Y: 0.5}
	if !eulerClose(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestEulerGimbalLock(t *testing.T) {
	e := Euler{X: 0.3, Y: math.Pi / 2}
	got := EulerFromQuat(e.Quat())
	if math.Abs(float64(got.Y-math.Pi/2)) > 0.001 {
		t.Errorf("Y = %v, want pi/2", got.Y)
	}
}

func TestEulerIsZero(t *testing.T) {
	if !(Euler{}).IsZero() {
		t.Error("zero euler should report IsZero")
	}
	if (Euler{Y: 0.1}).IsZero() {
		t.Error("non-zero euler reported IsZero")
	}
}
