package assets

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/qmuntal/gltf"

	"github.com/Faultbox/posecraft/internal/scene"
	"github.com/Faultbox/posecraft/pkg/math"
)

// meshMarkerSize is the edge of the placeholder box drawn for mesh nodes.
const meshMarkerSize = 0.04

var identity16 = [16]float64{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1}

// decodeModel parses glTF or GLB bytes. Relative buffer URIs of local
// .gltf files resolve against the file's directory.
func decodeModel(data []byte, src, format string) (*scene.Hierarchy, error) {
	var fsys fs.FS
	if format == ".gltf" && !isRemote(src) {
		fsys = os.DirFS(filepath.Dir(src))
	}

	doc := new(gltf.Document)
	if err := gltf.NewDecoderFS(bytes.NewReader(data), fsys).Decode(doc); err != nil {
		return nil, err
	}
	return hierarchyFromDocument(doc, src)
}

// hierarchyFromDocument converts the default scene of doc. Skin joints
// become bones; without skins the hierarchy is rigid and its named
// top-level nodes (and their named children) are the posable parts.
func hierarchyFromDocument(doc *gltf.Document, src string) (*scene.Hierarchy, error) {
	if len(doc.Nodes) == 0 {
		return nil, errors.New("document has no nodes")
	}

	nodes := make([]*scene.Node, len(doc.Nodes))
	for i, gn := range doc.Nodes {
		nodes[i] = convertNode(gn)
	}

	hasParent := make([]bool, len(doc.Nodes))
	for i, gn := range doc.Nodes {
		for _, c := range gn.Children {
			if c < 0 || c >= len(nodes) || c == i || hasParent[c] {
				continue
			}
			nodes[i].Add(nodes[c])
			hasParent[c] = true
		}
	}

	var top []*scene.Node
	for _, idx := range rootIndices(doc, hasParent) {
		if idx >= 0 && idx < len(nodes) && !hasParent[idx] {
			top = append(top, nodes[idx])
		}
	}
	if len(top) == 0 {
		return nil, errors.New("scene has no root nodes")
	}

	var bones []*scene.Node
	seen := make(map[int]bool)
	for _, skin := range doc.Skins {
		for _, j := range skin.Joints {
			if j < 0 || j >= len(nodes) || seen[j] {
				continue
			}
			seen[j] = true
			nodes[j].Bone = true
			nodes[j].Shape = scene.ShapeNone
			bones = append(bones, nodes[j])
		}
	}

	kind := scene.KindRigid
	if len(bones) > 0 {
		kind = scene.KindRigged
	}
	h := scene.NewHierarchy(kind, src, top...)
	h.Bones = bones
	if kind == scene.KindRigid {
		h.Parts = topLevelParts(top)
	}
	return h, nil
}

// rootIndices returns the node indices of the default scene, falling back
// to every parentless node when the document declares no scenes.
func rootIndices(doc *gltf.Document, hasParent []bool) []int {
	if len(doc.Scenes) > 0 {
		sceneIdx := 0
		if doc.Scene != nil && *doc.Scene >= 0 && *doc.Scene < len(doc.Scenes) {
			sceneIdx = *doc.Scene
		}
		return doc.Scenes[sceneIdx].Nodes
	}

	var roots []int
	for i, p := range hasParent {
		if !p {
			roots = append(roots, i)
		}
	}
	return roots
}

func topLevelParts(top []*scene.Node) []*scene.Node {
	var parts []*scene.Node
	for _, n := range top {
		if n.Name != "" {
			parts = append(parts, n)
		}
		for _, c := range n.Children() {
			if c.Name != "" {
				parts = append(parts, c)
			}
		}
	}
	return parts
}

func convertNode(gn *gltf.Node) *scene.Node {
	n := scene.NewNode(gn.Name)

	if gn.Matrix != identity16 && gn.Matrix != [16]float64{} {
		n.Position, n.Rotation, n.Scale = decompose(gn.Matrix)
	} else {
		t := gn.TranslationOrDefault()
		r := gn.RotationOrDefault()
		s := gn.ScaleOrDefault()
		n.Position = math.Vec3{X: float32(t[0]), Y: float32(t[1]), Z: float32(t[2])}
		n.Rotation = math.EulerFromQuat(math.Quat{
			X: float32(r[0]), Y: float32(r[1]), Z: float32(r[2]), W: float32(r[3]),
		})
		n.Scale = math.Vec3{X: float32(s[0]), Y: float32(s[1]), Z: float32(s[2])}
	}

	if gn.Mesh != nil {
		n.Shape = scene.ShapeBox
		n.Size = math.Vec3{X: meshMarkerSize, Y: meshMarkerSize, Z: meshMarkerSize}
		n.Color = [3]float32{0.8, 0.8, 0.8}
	}
	return n
}

// decompose splits a column-major TRS matrix into its parts.
func decompose(m [16]float64) (math.Vec3, math.Euler, math.Vec3) {
	var mat math.Mat4
	for i, v := range m {
		mat[i] = float32(v)
	}

	sx := math.Vec3{X: mat[0], Y: mat[1], Z: mat[2]}.Length()
	sy := math.Vec3{X: mat[4], Y: mat[5], Z: mat[6]}.Length()
	sz := math.Vec3{X: mat[8], Y: mat[9], Z: mat[10]}.Length()

	rot := mat
	for i, s := range []float32{sx, sy, sz} {
		if s == 0 {
			continue
		}
		rot[i*4] /= s
		rot[i*4+1] /= s
		rot[i*4+2] /= s
	}

	return mat.Translation(), math.EulerFromMat4(rot), math.Vec3{X: sx, Y: sy, Z: sz}
}
