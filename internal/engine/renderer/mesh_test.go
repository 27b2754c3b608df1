package renderer

import (
	"math"
	"testing"
)

func checkVertices(t *testing.T, name string, v []float32, wantVerts int, maxExtent float32) {
	t.Helper()
	if len(v)%floatsPerVertex != 0 {
		t.Fatalf("%s: %d floats is not a whole number of vertices", name, len(v))
	}
	if got := len(v) / floatsPerVertex; got != wantVerts {
		t.Errorf("%s: %d vertices, want %d", name, got, wantVerts)
	}
	for i := 0; i < len(v); i += floatsPerVertex {
		for k := 0; k < 3; k++ {
			if math.Abs(float64(v[i+k])) > float64(maxExtent)+1e-6 {
				t.Fatalf("%s: vertex %d outside unit extent: %v", name, i/floatsPerVertex, v[i:i+3])
			}
		}
		nx, ny, nz := v[i+3], v[i+4], v[i+5]
		l := math.Sqrt(float64(nx*nx + ny*ny + nz*nz))
		if math.Abs(l-1) > 1e-4 {
			t.Fatalf("%s: normal %d has length %v", name, i/floatsPerVertex, l)
		}
	}
}

func TestBoxVertices(t *testing.T) {
	v := BoxVertices()
	checkVertices(t, "box", v, 36, 0.5)

	// Every box vertex lies on a corner.
	for i := 0; i < len(v); i += floatsPerVertex {
		for k := 0; k < 3; k++ {
			if math.Abs(math.Abs(float64(v[i+k]))-0.5) > 1e-6 {
				t.Fatalf("vertex %v is not a cube corner", v[i:i+3])
			}
		}
	}
}

func TestPlaneVertices(t *testing.T) {
	v := PlaneVertices()
	checkVertices(t, "plane", v, 6, 0.5)
	for i := 0; i < len(v); i += floatsPerVertex {
		if v[i+1] != 0 || v[i+4] != 1 {
			t.Fatalf("plane vertex %v is not flat facing +Y", v[i:i+6])
		}
	}
}

func TestSphereVertices(t *testing.T) {
	v := SphereVertices(8, 12)
	checkVertices(t, "sphere", v, 8*12*6, 0.5)

	for i := 0; i < len(v); i += floatsPerVertex {
		r := math.Sqrt(float64(v[i]*v[i] + v[i+1]*v[i+1] + v[i+2]*v[i+2]))
		if math.Abs(r-0.5) > 1e-4 {
			t.Fatalf("vertex %v at radius %v, want 0.5", v[i:i+3], r)
		}
	}
}
