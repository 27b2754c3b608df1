// Package studio holds the posing session: the figure, its joint markers,
// props, camera and lights, and the setters the UI drives.
package studio

import (
	"context"
	"errors"
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
	"go.uber.org/zap"

	"github.com/Faultbox/posecraft/internal/config"
	"github.com/Faultbox/posecraft/internal/engine/camera"
	"github.com/Faultbox/posecraft/internal/engine/lighting"
	"github.com/Faultbox/posecraft/internal/joints"
	"github.com/Faultbox/posecraft/internal/logger"
	"github.com/Faultbox/posecraft/internal/pose"
	"github.com/Faultbox/posecraft/internal/posing"
	"github.com/Faultbox/posecraft/internal/resolver"
	"github.com/Faultbox/posecraft/internal/scene"
	"github.com/Faultbox/posecraft/pkg/math"
)

// Names of the built-in props.
const (
	FloorName = "Floor"
	CubeName  = "CubeProp"
)

var (
	floorColor = [3]float32{1, 1, 1}
	cubeColor  = [3]float32{0.467, 0.761, 1}
)

// ErrInvalidSetting is returned by setters given an out-of-range value.
var ErrInvalidSetting = errors.New("invalid setting")

// Notifier shows user-facing failures.
type Notifier interface {
	Error(title, format string, args ...any)
}

// Studio is the single posing session. It is owned by the frame loop and
// is not safe for concurrent use.
type Studio struct {
	ctx      context.Context
	resolver *resolver.Resolver
	notifier Notifier
	log      *zap.Logger

	figure     *scene.Hierarchy
	props      []*scene.Hierarchy
	registry   *joints.Registry
	controller *posing.Controller
	camera     *camera.OrbitCamera
	lights     lighting.Rig
	background [3]float32
	headsRatio float32
}

// New creates a studio with no figure. Call Start to resolve the initial
// model. capturer and notifier may be nil.
func New(ctx context.Context, res *resolver.Resolver, cfg config.StudioConfig, width, height int,
	capturer posing.Capturer, notifier Notifier) (*Studio, error) {
	s := &Studio{
		ctx:        ctx,
		resolver:   res,
		notifier:   notifier,
		log:        logger.Named("studio"),
		registry:   joints.NewRegistry(cfg.MarkerRadius),
		camera:     camera.NewOrbitCamera(cfg.FOV, width, height),
		lights:     lighting.DefaultRig(),
		headsRatio: 8,
	}
	s.controller = posing.NewController(s.camera, s.registry, capturer, cfg.RotateSpeed)

	if err := s.SetHeadsRatio(cfg.HeadsRatio); err != nil {
		return nil, err
	}
	s.SetRealism(cfg.Realism)
	if err := s.SetFOV(cfg.FOV); err != nil {
		return nil, err
	}
	if err := s.SetBackground(cfg.Background); err != nil {
		return nil, err
	}
	return s, nil
}

// Start requests the startup model and adds the floor. A failed load falls
// back to the mannequin.
func (s *Studio) Start(source string) {
	s.resolver.ResolveAsync(s.ctx, resolver.Request{Source: source})
	s.AddFloor()
}

// Tick installs finished loads and re-syncs marker positions. It runs once
// per frame before rendering.
func (s *Studio) Tick() {
	for _, r := range s.resolver.Poll() {
		switch r.Purpose {
		case resolver.PurposeModel:
			if r.Err != nil {
				s.fail("Model load failed", r.Err)
				continue
			}
			s.SetFigure(r.Hierarchy)
		case resolver.PurposeProp:
			if r.Err != nil {
				s.fail("Prop load failed", r.Err)
				continue
			}
			s.props = append(s.props, r.Hierarchy)
			s.log.Info("prop added", zap.String("source", r.Request.Source))
		}
	}
	s.registry.SyncPositions()
}

// SetFigure replaces the posed hierarchy. Markers are rebuilt and any
// drag in progress is dropped.
func (s *Studio) SetFigure(h *scene.Hierarchy) {
	s.controller.Reset()
	s.figure = h
	s.applyScale()
	s.registry.Rebuild(h)
	s.log.Info("figure replaced",
		zap.String("source", h.Source),
		zap.Stringer("kind", h.Kind),
		zap.Int("nodes", h.Len()),
		zap.Int("markers", s.registry.Len()),
	)
}

// ResetPose zeroes every rotation in the figure.
func (s *Studio) ResetPose() {
	s.figure.Traverse(func(n *scene.Node) {
		n.Rotation = math.Euler{}
	})
}

// MirrorPose negates the Y rotation of every figure node.
func (s *Studio) MirrorPose() {
	s.figure.Traverse(func(n *scene.Node) {
		n.Rotation.Y = -n.Rotation.Y
	})
}

// SetHeadsRatio sets the head-to-body ratio. The figure is scaled
// uniformly by ratio/8.
func (s *Studio) SetHeadsRatio(ratio float32) error {
	if ratio <= 0 {
		return fmt.Errorf("%w: heads ratio %v", ErrInvalidSetting, ratio)
	}
	s.headsRatio = ratio
	s.applyScale()
	if s.figure != nil && s.figure.Kind == scene.KindRigid {
		// Rigid markers are anchored at creation; re-anchor at the new size.
		s.controller.Reset()
		s.registry.Rebuild(s.figure)
	}
	return nil
}

// HeadsRatio returns the current head-to-body ratio.
func (s *Studio) HeadsRatio() float32 {
	return s.headsRatio
}

func (s *Studio) applyScale() {
	if s.figure == nil || s.figure.Root == nil {
		return
	}
	k := s.headsRatio / 8
	s.figure.Root.Scale = math.Vec3{X: k, Y: k, Z: k}
}

// SetRealism sets the 0..1 realism level driving light intensities.
func (s *Studio) SetRealism(v float32) {
	s.lights.SetRealism(v)
}

// SetFOV sets the vertical field of view in degrees.
func (s *Studio) SetFOV(deg float32) error {
	if deg <= 0 || deg >= 180 {
		return fmt.Errorf("%w: fov %v", ErrInvalidSetting, deg)
	}
	s.camera.SetFOV(deg)
	return nil
}

// SetBackground sets the clear colour from a "#rrggbb" or "#rgb" string.
func (s *Studio) SetBackground(hex string) error {
	c, err := colorful.Hex(hex)
	if err != nil {
		return fmt.Errorf("%w: background %q: %v", ErrInvalidSetting, hex, err)
	}
	s.background = [3]float32{float32(c.R), float32(c.G), float32(c.B)}
	return nil
}

// FocusModel frames the figure from the front and slightly above. It does
// nothing when the figure has no nodes.
func (s *Studio) FocusModel() {
	b, ok := s.figure.Bounds()
	if !ok {
		return
	}
	center, size := b.Center(), b.Size()
	s.camera.LookFrom(center.Add(math.Vec3{Y: size * 0.2, Z: size * 0.7}), center)
}

// TopDownView looks straight down on the figure.
func (s *Studio) TopDownView() {
	b, ok := s.figure.Bounds()
	if !ok {
		return
	}
	center := b.Center()
	s.camera.LookFrom(center.Add(math.Vec3{Y: 3, Z: 0.1}), center)
}

// AddFloor adds a 10x10 floor plane at y=0.
func (s *Studio) AddFloor() {
	n := scene.NewNode(FloorName)
	n.Shape = scene.ShapePlane
	n.Size = math.Vec3{X: 10, Z: 10}
	n.Color = floorColor
	s.props = append(s.props, scene.NewHierarchy(scene.KindRigid, FloorName, n))
}

// AddCubeProp adds a 0.3 cube standing on the floor next to the figure.
func (s *Studio) AddCubeProp() {
	n := scene.NewNode(CubeName)
	n.Shape = scene.ShapeBox
	n.Size = math.Vec3{X: 0.3, Y: 0.3, Z: 0.3}
	n.Position = math.Vec3{X: 0.5, Y: 0.15}
	n.Color = cubeColor
	s.props = append(s.props, scene.NewHierarchy(scene.KindRigid, CubeName, n))
}

// LoadModel replaces the figure with the model at path once it has loaded.
// Failures are reported through the notifier and keep the current figure.
func (s *Studio) LoadModel(path string) uint64 {
	s.log.Info("loading model", zap.String("source", path))
	return s.resolver.ResolveAsync(s.ctx, resolver.Request{Source: path, Explicit: true})
}

// LoadProp adds the model at path next to the figure once it has loaded.
func (s *Studio) LoadProp(path string) {
	s.log.Info("loading prop", zap.String("source", path))
	s.resolver.LoadPropAsync(s.ctx, path)
}

// ExportPose writes the figure's rotations to path.
func (s *Studio) ExportPose(path string) error {
	snap := pose.Export(s.figure)
	if err := pose.SaveFile(path, snap); err != nil {
		return fmt.Errorf("export pose: %w", err)
	}
	s.log.Info("pose exported", zap.String("path", path), zap.Int("records", len(snap.Pose)))
	return nil
}

// ImportPose applies the pose file at path to the figure. Records naming
// nodes the figure lacks are skipped and returned.
func (s *Studio) ImportPose(path string) (missing []string, err error) {
	snap, err := pose.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("import pose: %w", err)
	}
	applied, missing, err := pose.Apply(s.figure, snap)
	if err != nil {
		return nil, fmt.Errorf("import pose: %w", err)
	}
	s.log.Info("pose imported",
		zap.String("path", path),
		zap.Int("applied", applied),
		zap.Strings("missing", missing),
	)
	return missing, nil
}

func (s *Studio) fail(title string, err error) {
	s.log.Error(title, zap.Error(err))
	if s.notifier != nil {
		s.notifier.Error(title, "%v", err)
	}
}

// Figure returns the posed hierarchy, or nil before the first load.
func (s *Studio) Figure() *scene.Hierarchy { return s.figure }

// Props returns the floor, cubes and loaded props in insertion order.
func (s *Studio) Props() []*scene.Hierarchy { return s.props }

// Markers returns the current joint markers.
func (s *Studio) Markers() []*joints.Marker { return s.registry.Markers() }

// Controller returns the drag controller fed by pointer events.
func (s *Studio) Controller() *posing.Controller { return s.controller }

// Camera returns the view camera.
func (s *Studio) Camera() *camera.OrbitCamera { return s.camera }

// Lights returns the light rig.
func (s *Studio) Lights() lighting.Rig { return s.lights }

// Background returns the clear colour.
func (s *Studio) Background() [3]float32 { return s.background }
