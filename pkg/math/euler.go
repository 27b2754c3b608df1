package math

import "math"

// gimbalThreshold is where the XYZ decomposition switches to the
// locked branch (|m13| close to 1, i.e. Y near +-90 degrees).
const gimbalThreshold = 0.9999999

// Euler holds three rotation angles in radians, applied in X, Y, Z order
// (the rotation matrix is Rx * Ry * Rz).
type Euler struct {
	X float32 `json:"x" yaml:"x"`
	Y float32 `json:"y" yaml:"y"`
	Z float32 `json:"z" yaml:"z"`
}

// IsZero reports whether all three angles are exactly zero.
func (e Euler) IsZero() bool {
	return e.X == 0 && e.Y == 0 && e.Z == 0
}

// Quat converts the angles to a quaternion.
func (e Euler) Quat() Quat {
	c1 := math.Cos(float64(e.X) / 2)
	c2 := math.Cos(float64(e.Y) / 2)
	c3 := math.Cos(float64(e.Z) / 2)
	s1 := math.Sin(float64(e.X) / 2)
	s2 := math.Sin(float64(e.Y) / 2)
	s3 := math.Sin(float64(e.Z) / 2)

	return Quat{
		X: float32(s1*c2*c3 + c1*s2*s3),
		Y: float32(c1*s2*c3 - s1*c2*s3),
		Z: float32(c1*c2*s3 + s1*s2*c3),
		W: float32(c1*c2*c3 - s1*s2*s3),
	}
}

// Mat4 returns the rotation matrix Rx * Ry * Rz.
func (e Euler) Mat4() Mat4 {
	return RotateX(e.X).Mul(RotateY(e.Y)).Mul(RotateZ(e.Z))
}

// EulerFromQuat decomposes a rotation into XYZ-ordered angles.
func EulerFromQuat(q Quat) Euler {
	return EulerFromMat4(q.ToMat4())
}

// EulerFromMat4 decomposes the rotation part of m (assumed unscaled)
// into XYZ-ordered angles.
func EulerFromMat4(m Mat4) Euler {
	// Row/column naming follows the usual m<row><col> convention;
	// storage is column-major.
	m11, m12, m13 := float64(m[0]), float64(m[4]), float64(m[8])
	m22, m23 := float64(m[5]), float64(m[9])
	m32, m33 := float64(m[6]), float64(m[10])

	y := math.Asin(clamp(m13, -1, 1))
	if math.Abs(m13) < gimbalThreshold {
		return Euler{
			X: float32(math.Atan2(-m23, m33)),
			Y: float32(y),
			Z: float32(math.Atan2(-m12, m11)),
		}
	}
	return Euler{
		X: float32(math.Atan2(m32, m22)),
		Y: float32(y),
		Z: 0,
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
