// Package joints keeps the pickable markers that stand for the posable
// joints of the current figure.
package joints

import (
	"github.com/Faultbox/posecraft/internal/engine/picking"
	"github.com/Faultbox/posecraft/internal/scene"
	"github.com/Faultbox/posecraft/pkg/math"
)

// Suffix is appended to a node name to form its marker name.
const Suffix = "_Joint"

// DefaultRadius is the marker sphere radius in world units.
const DefaultRadius = 0.06

// Marker is a pickable sphere bound to one node.
type Marker struct {
	Name     string
	Position math.Vec3
	Radius   float32

	// Node is the element rotated when the marker is dragged.
	Node *scene.Node
	// Bone markers follow their node every tick.
	Bone bool
}

// Registry owns the markers of one hierarchy.
type Registry struct {
	radius  float32
	markers []*Marker
}

// NewRegistry creates an empty registry. A non-positive radius selects
// DefaultRadius.
func NewRegistry(radius float32) *Registry {
	if radius <= 0 {
		radius = DefaultRadius
	}
	return &Registry{radius: radius}
}

// Rebuild discards every marker and creates new ones for h. Rigged
// hierarchies get one marker per bone; rigid ones one per posable part,
// placed at the part's world position at creation time.
func (r *Registry) Rebuild(h *scene.Hierarchy) {
	r.Clear()
	if h == nil {
		return
	}

	var nodes []*scene.Node
	bone := h.Kind == scene.KindRigged
	if bone {
		nodes = h.Bones
	} else {
		nodes = h.Parts
	}

	for _, n := range nodes {
		if n == nil {
			continue
		}
		r.markers = append(r.markers, &Marker{
			Name:     n.Name + Suffix,
			Position: n.WorldPosition(),
			Radius:   r.radius,
			Node:     n,
			Bone:     bone,
		})
	}
}

// Clear removes every marker.
func (r *Registry) Clear() {
	r.markers = nil
}

// SyncPositions moves bone markers to their bone's current world position.
// Rigid markers keep the position they were created with.
func (r *Registry) SyncPositions() {
	for _, m := range r.markers {
		if m.Bone {
			m.Position = m.Node.WorldPosition()
		}
	}
}

// Markers returns the current markers. The slice must not be modified.
func (r *Registry) Markers() []*Marker {
	return r.markers
}

// Len returns the marker count.
func (r *Registry) Len() int {
	return len(r.markers)
}

// Lookup returns the marker with the given name, or nil.
func (r *Registry) Lookup(name string) *Marker {
	for _, m := range r.markers {
		if m.Name == name {
			return m
		}
	}
	return nil
}

// Pick returns the marker nearest to the ray origin that the ray hits.
func (r *Registry) Pick(ray picking.Ray) (*Marker, bool) {
	var (
		best     *Marker
		bestDist float32
	)
	for _, m := range r.markers {
		t, hit := ray.IntersectSphere(m.Position, m.Radius)
		if !hit {
			continue
		}
		if best == nil || t < bestDist {
			best, bestDist = m, t
		}
	}
	return best, best != nil
}
