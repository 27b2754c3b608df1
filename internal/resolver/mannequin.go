package resolver

import (
	"github.com/Faultbox/posecraft/internal/scene"
	"github.com/Faultbox/posecraft/pkg/math"
)

// MannequinSource labels hierarchies built by Mannequin.
const MannequinSource = "mannequin"

// MannequinParts are the posable parts of the fallback figure, in marker order.
var MannequinParts = []string{"Hips", "Head", "LeftArm", "RightArm", "LeftThigh", "RightThigh"}

var mannequinColor = [3]float32{0.8, 0.8, 0.8}

// Mannequin builds the procedural fallback figure: a "Hips" group at
// (0, 1, 0) with six primitive parts hung at fixed offsets. All parts start
// unrotated; limbs get their orientation from the primitive's extents.
func Mannequin() *scene.Hierarchy {
	hips := scene.NewNode("Hips")
	hips.Position = math.Vec3{Y: 1}

	// Capsule sizes are the full extent: length plus both end caps.
	parts := []struct {
		name  string
		shape scene.Shape
		pos   math.Vec3
		size  math.Vec3
	}{
		{"Spine", scene.ShapeCapsule, math.Vec3{Y: 0.35}, math.Vec3{X: 0.06, Y: 0.56, Z: 0.06}},
		{"Head", scene.ShapeSphere, math.Vec3{Y: 0.7}, math.Vec3{X: 0.24, Y: 0.24, Z: 0.24}},
		{"LeftArm", scene.ShapeCapsule, math.Vec3{X: -0.25, Y: 0.55}, math.Vec3{X: 0.41, Y: 0.06, Z: 0.06}},
		{"RightArm", scene.ShapeCapsule, math.Vec3{X: 0.25, Y: 0.55}, math.Vec3{X: 0.41, Y: 0.06, Z: 0.06}},
		{"LeftThigh", scene.ShapeCapsule, math.Vec3{X: -0.12, Y: 0.3}, math.Vec3{X: 0.06, Y: 0.56, Z: 0.06}},
		{"RightThigh", scene.ShapeCapsule, math.Vec3{X: 0.12, Y: 0.3}, math.Vec3{X: 0.06, Y: 0.56, Z: 0.06}},
	}

	for _, p := range parts {
		n := scene.NewNode(p.name)
		n.Shape = p.shape
		n.Position = p.pos
		n.Size = p.size
		n.Color = mannequinColor
		hips.Add(n)
	}

	h := scene.NewHierarchy(scene.KindRigid, MannequinSource, hips)
	for _, name := range MannequinParts {
		h.Parts = append(h.Parts, h.Find(name))
	}
	return h
}
