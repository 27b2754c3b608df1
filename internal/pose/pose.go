// Package pose reads and writes the rotations of a hierarchy as a JSON
// pose document.
package pose

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/Faultbox/posecraft/internal/scene"
	"github.com/Faultbox/posecraft/pkg/math"
)

// ErrNoHierarchy is returned by Apply when there is nothing to pose.
var ErrNoHierarchy = errors.New("pose: no hierarchy")

// Record is the rotation of one named node.
type Record struct {
	Name     string     `json:"name"`
	Rotation math.Euler `json:"rotation"`
}

// Snapshot is a full pose document.
type Snapshot struct {
	Pose []Record `json:"pose"`
}

// Export captures one record per named node, in traversal order.
func Export(h *scene.Hierarchy) Snapshot {
	snap := Snapshot{Pose: []Record{}}
	h.Traverse(func(n *scene.Node) {
		if n.Name == "" {
			return
		}
		snap.Pose = append(snap.Pose, Record{Name: n.Name, Rotation: n.Rotation})
	})
	return snap
}

// Write encodes snap as indented JSON.
func Write(w io.Writer, snap Snapshot) error {
	if snap.Pose == nil {
		snap.Pose = []Record{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snap); err != nil {
		return fmt.Errorf("encode pose: %w", err)
	}
	return nil
}

// SaveFile writes snap to path, creating parent directories.
func SaveFile(path string, snap Snapshot) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create pose directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create pose file: %w", err)
	}
	if err := Write(f, snap); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Read decodes a pose document.
func Read(r io.Reader) (Snapshot, error) {
	var snap Snapshot
	if err := json.NewDecoder(r).Decode(&snap); err != nil {
		return Snapshot{}, fmt.Errorf("decode pose: %w", err)
	}
	if snap.Pose == nil {
		snap.Pose = []Record{}
	}
	return snap, nil
}

// LoadFile reads a pose document from path.
func LoadFile(path string) (Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return Snapshot{}, fmt.Errorf("open pose file: %w", err)
	}
	defer f.Close()
	return Read(f)
}

// Apply sets node rotations from snap, matching records by name. It
// returns how many records were applied and the names that matched no node.
func Apply(h *scene.Hierarchy, snap Snapshot) (applied int, missing []string, err error) {
	if h == nil || h.Root == nil {
		return 0, nil, ErrNoHierarchy
	}
	for _, rec := range snap.Pose {
		n := h.Find(rec.Name)
		if n == nil || rec.Name == "" {
			missing = append(missing, rec.Name)
			continue
		}
		n.Rotation = rec.Rotation
		applied++
	}
	return applied, missing, nil
}
