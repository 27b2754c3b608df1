// Package lighting provides the studio light rig: a hemisphere fill light
// and one directional key light.
package lighting

import (
	"math"

	pmath "github.com/Faultbox/posecraft/pkg/math"
)

// Rig holds the light parameters uploaded to the shader each frame.
type Rig struct {
	SkyColor    [3]float32
	GroundColor [3]float32
	Hemisphere  float32 // Hemisphere light intensity

	SunColor    [3]float32
	Directional float32 // Directional light intensity
	SunDir      pmath.Vec3
}

// DefaultRig returns the rig at realism 0.5 with the key light above and
// in front of the figure.
func DefaultRig() Rig {
	r := Rig{
		SkyColor:    [3]float32{1, 1, 1},
		GroundColor: [3]float32{0.27, 0.27, 0.4},
		SunColor:    [3]float32{1, 1, 1},
		SunDir:      SunDirection(45, 35.26),
	}
	r.SetRealism(0.5)
	return r
}

// SetRealism maps a 0..1 slider to light intensities.
func (r *Rig) SetRealism(v float32) {
	r.Hemisphere = 0.5 + 0.4*v
	r.Directional = 0.6 + 0.6*v
}

// SunDirection converts azimuth/elevation angles in degrees to a light
// direction vector. Azimuth is rotation around the Y axis, elevation is
// measured from the horizon. Returns a normalized vector pointing towards
// the light.
func SunDirection(azimuth, elevation float32) pmath.Vec3 {
	azRad := float64(azimuth) * math.Pi / 180.0
	elRad := float64(elevation) * math.Pi / 180.0

	return pmath.Vec3{
		X: float32(math.Cos(elRad) * math.Sin(azRad)),
		Y: float32(math.Sin(elRad)),
		Z: float32(math.Cos(elRad) * math.Cos(azRad)),
	}
}
