package assets

import (
	"context"
	"errors"
	gomath "math"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/Faultbox/posecraft/internal/scene"
)

const riggedGLTF = `{
  "asset": {"version": "2.0"},
  "scene": 0,
  "scenes": [{"nodes": [0]}],
  "nodes": [
    {"name": "Armature", "children": [1]},
    {"name": "Hips", "translation": [0, 1, 0], "children": [2]},
    {"name": "Spine", "translation": [0, 0.3, 0], "rotation": [0, 0.5, 0, 0.8660254]}
  ],
  "skins": [{"joints": [1, 2]}]
}`

const rigidGLTF = `{
  "asset": {"version": "2.0"},
  "scenes": [{"nodes": [0]}],
  "nodes": [
    {"name": "Robot", "children": [1, 2]},
    {"name": "Torso", "translation": [0, 1, 0], "children": [3]},
    {"name": "Head", "translation": [0, 1.6, 0]},
    {"name": "Antenna", "translation": [0, 0.2, 0]}
  ]
}`

func writeModel(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write model: %v", err)
	}
	return p
}

func TestLoadRigged(t *testing.T) {
	m := NewManager()
	h, err := m.Load(context.Background(), writeModel(t, "rig.gltf", riggedGLTF))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if h.Kind != scene.KindRigged {
		t.Errorf("kind = %v, want rigged", h.Kind)
	}
	if len(h.Bones) != 2 || h.Bones[0].Name != "Hips" || h.Bones[1].Name != "Spine" {
		t.Fatalf("bones = %v", h.Bones)
	}
	if !h.Bones[0].Bone {
		t.Error("skin joint should be flagged as bone")
	}

	spine := h.Find("Spine")
	if spine == nil {
		t.Fatal("Spine not found")
	}
	if gomath.Abs(float64(spine.Rotation.Y)-gomath.Pi/3) > 1e-4 {
		t.Errorf("spine Y rotation = %v, want pi/3", spine.Rotation.Y)
	}
	pos := spine.WorldPosition()
	if gomath.Abs(float64(pos.Y)-1.3) > 1e-4 {
		t.Errorf("spine world Y = %v, want 1.3", pos.Y)
	}
}

func TestLoadRigid(t *testing.T) {
	m := NewManager()
	h, err := m.Load(context.Background(), writeModel(t, "robot.gltf", rigidGLTF))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if h.Kind != scene.KindRigid {
		t.Errorf("kind = %v, want rigid", h.Kind)
	}
	var names []string
	for _, p := range h.Parts {
		names = append(names, p.Name)
	}
	want := []string{"Robot", "Torso", "Head"}
	if len(names) != len(want) {
		t.Fatalf("parts = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("parts[%d] = %s, want %s", i, names[i], want[i])
		}
	}
}

func TestLoadUnsupportedFormat(t *testing.T) {
	m := NewManager()
	_, err := m.Load(context.Background(), writeModel(t, "model.fbx", "binary"))
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	m := NewManager()
	if _, err := m.Load(context.Background(), "/nonexistent/human.glb"); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadMalformed(t *testing.T) {
	m := NewManager()
	if _, err := m.Load(context.Background(), writeModel(t, "broken.gltf", "{not json")); err == nil {
		t.Error("expected decode error")
	}
}

func TestLoadRemote(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/models/rig.gltf" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(riggedGLTF))
	}))
	defer srv.Close()

	m := NewManager()
	h, err := m.Load(context.Background(), srv.URL+"/models/rig.gltf?v=2")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if h.Kind != scene.KindRigged {
		t.Errorf("kind = %v, want rigged", h.Kind)
	}

	if _, err := m.Load(context.Background(), srv.URL+"/models/missing.gltf"); err == nil {
		t.Error("expected error for 404")
	}
}

func TestFetchUsesCache(t *testing.T) {
	m := NewManager()
	p := writeModel(t, "rig.gltf", riggedGLTF)

	first, err := m.Fetch(context.Background(), p)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	second, err := m.Fetch(context.Background(), p)
	if err != nil {
		t.Fatalf("cached Fetch: %v", err)
	}
	if string(first) != string(second) {
		t.Error("cached bytes differ from the file")
	}

	hits, misses := m.cache.Stats()
	if hits != 1 || misses != 1 {
		t.Errorf("stats = %d hits, %d misses, want 1/1", hits, misses)
	}

	os.Remove(p)
	if _, err := m.Fetch(context.Background(), p); err == nil {
		t.Error("expected error for a removed file")
	}
}

func TestLoadRereadsChangedFile(t *testing.T) {
	m := NewManager()
	p := writeModel(t, "fig.gltf", rigidGLTF)

	h, err := m.Load(context.Background(), p)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if h.Kind != scene.KindRigid {
		t.Fatalf("kind = %v, want rigid", h.Kind)
	}

	if err := os.WriteFile(p, []byte(riggedGLTF), 0644); err != nil {
		t.Fatalf("rewrite: %v", err)
	}
	h, err = m.Load(context.Background(), p)
	if err != nil {
		t.Fatalf("Load after rewrite: %v", err)
	}
	if h.Kind != scene.KindRigged {
		t.Errorf("kind after rewrite = %v, want rigged", h.Kind)
	}
}

func TestCacheVersionMismatchMisses(t *testing.T) {
	c := NewCache()
	c.Set("a", "v1", []byte("old"))

	if _, ok := c.Get("a", "v2"); ok {
		t.Error("different version should miss")
	}
	c.Set("a", "v2", []byte("new"))
	data, ok := c.Get("a", "v2")
	if !ok || string(data) != "new" {
		t.Errorf("Get = %q, %v, want new", data, ok)
	}

	hits, misses := c.Stats()
	if hits != 1 || misses != 1 {
		t.Errorf("stats = %d hits, %d misses, want 1/1", hits, misses)
	}
}
