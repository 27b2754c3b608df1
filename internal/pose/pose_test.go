package pose

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Faultbox/posecraft/internal/resolver"
	"github.com/Faultbox/posecraft/internal/scene"
	"github.com/Faultbox/posecraft/pkg/math"
)

func TestExportMannequin(t *testing.T) {
	snap := Export(resolver.Mannequin())

	want := []string{"Hips", "Spine", "Head", "LeftArm", "RightArm", "LeftThigh", "RightThigh"}
	if len(snap.Pose) != len(want) {
		t.Fatalf("records = %d, want %d", len(snap.Pose), len(want))
	}
	for i, name := range want {
		rec := snap.Pose[i]
		if rec.Name != name {
			t.Errorf("record %d = %q, want %q", i, rec.Name, name)
		}
		if !rec.Rotation.IsZero() {
			t.Errorf("%s rotation = %+v, want zero", rec.Name, rec.Rotation)
		}
	}
}

func TestExportEmpty(t *testing.T) {
	for name, h := range map[string]*scene.Hierarchy{
		"nil":       nil,
		"root only": scene.NewHierarchy(scene.KindRigid, "empty"),
	} {
		snap := Export(h)
		if snap.Pose == nil || len(snap.Pose) != 0 {
			t.Errorf("%s: pose = %#v, want empty non-nil", name, snap.Pose)
		}

		var buf bytes.Buffer
		if err := Write(&buf, snap); err != nil {
			t.Fatalf("%s: Write: %v", name, err)
		}
		if got := strings.TrimSpace(buf.String()); got != "{\n  \"pose\": []\n}" {
			t.Errorf("%s: document = %q", name, got)
		}
	}
}

func TestWriteFormat(t *testing.T) {
	snap := Snapshot{Pose: []Record{{Name: "Head", Rotation: math.Euler{Y: 0.5}}}}

	var buf bytes.Buffer
	if err := Write(&buf, snap); err != nil {
		t.Fatalf("Write: %v", err)
	}

	want := `{
  "pose": [
    {
      "name": "Head",
      "rotation": {
        "x": 0,
        "y": 0.5,
        "z": 0
      }
    }
  ]
}
`
	if buf.String() != want {
		t.Errorf("document:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestSaveAndLoadFile(t *testing.T) {
	h := resolver.Mannequin()
	h.Find("LeftArm").Rotation = math.Euler{X: 0.25, Y: -0.5, Z: 1}

	path := filepath.Join(t.TempDir(), "poses", "pose.json")
	if err := SaveFile(path, Export(h)); err != nil {
		t.Fatalf("SaveFile: %v", err)
	}

	snap, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}

	fresh := resolver.Mannequin()
	applied, missing, err := Apply(fresh, snap)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if applied != 7 || len(missing) != 0 {
		t.Errorf("applied=%d missing=%v", applied, missing)
	}
	if got := fresh.Find("LeftArm").Rotation; got != (math.Euler{X: 0.25, Y: -0.5, Z: 1}) {
		t.Errorf("LeftArm rotation = %+v", got)
	}
}

func TestApplyReportsUnknownNames(t *testing.T) {
	h := resolver.Mannequin()
	snap := Snapshot{Pose: []Record{
		{Name: "Head", Rotation: math.Euler{X: 0.1}},
		{Name: "Tail", Rotation: math.Euler{X: 0.2}},
	}}

	applied, missing, err := Apply(h, snap)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if applied != 1 {
		t.Errorf("applied = %d, want 1", applied)
	}
	if len(missing) != 1 || missing[0] != "Tail" {
		t.Errorf("missing = %v, want [Tail]", missing)
	}
	if h.Find("Head").Rotation.X != 0.1 {
		t.Error("Head rotation not applied")
	}
}

func TestApplyNoHierarchy(t *testing.T) {
	if _, _, err := Apply(nil, Snapshot{}); !errors.Is(err, ErrNoHierarchy) {
		t.Errorf("err = %v, want ErrNoHierarchy", err)
	}
}

func TestReadErrors(t *testing.T) {
	if _, err := Read(strings.NewReader("{not json")); err == nil {
		t.Error("expected decode error")
	}

	snap, err := Read(strings.NewReader(`{}`))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if snap.Pose == nil {
		t.Error("missing pose array should decode as empty")
	}

	if _, err := LoadFile(filepath.Join(t.TempDir(), "nope.json")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("LoadFile missing: %v", err)
	}
}
