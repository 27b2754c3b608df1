package app

import (
	"path/filepath"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/posecraft/internal/engine/input"
	"github.com/Faultbox/posecraft/internal/filepicker"
)

const (
	buttonLeft  = sdl.BUTTON_LEFT
	buttonRight = sdl.BUTTON_RIGHT
)

// Setter steps.
const (
	headsStep   = 0.5
	minHeads    = 4
	maxHeads    = 10
	realismStep = 0.1
	fovStep     = 5
	minFOV      = 20
	maxFOV      = 100
)

// backgrounds cycled with B.
var backgrounds = []string{"#ffe3f2", "#ffffff", "#e6f0ff", "#f2f2e0", "#303040"}

// handleKey maps key presses to studio setters.
//
//	Esc        quit
//	R / M      reset / mirror pose
//	F / T      focus model / top-down view
//	G / C      add floor / add cube prop
//	O / P      open model / open prop
//	E / I      export / import pose
//	S          screenshot
//	Up / Down  heads ratio
//	Left/Right realism
//	PgUp/PgDn  field of view
//	B          next background colour
func (a *App) handleKey(ev input.Event) {
	s := a.studio

	switch ev.Key {
	case sdl.SCANCODE_ESCAPE:
		a.running = false

	case sdl.SCANCODE_R:
		s.ResetPose()
	case sdl.SCANCODE_M:
		s.MirrorPose()
	case sdl.SCANCODE_F:
		s.FocusModel()
	case sdl.SCANCODE_T:
		s.TopDownView()
	case sdl.SCANCODE_G:
		s.AddFloor()
	case sdl.SCANCODE_C:
		s.AddCubeProp()

	case sdl.SCANCODE_O:
		if path, ok := a.open(filepicker.KindModel, "Open model"); ok {
			s.LoadModel(path)
		}
	case sdl.SCANCODE_P:
		if path, ok := a.open(filepicker.KindModel, "Add prop"); ok {
			s.LoadProp(path)
		}

	case sdl.SCANCODE_E:
		a.exportPose()
	case sdl.SCANCODE_I:
		a.importPose()
	case sdl.SCANCODE_S:
		a.screenshotPending = true

	case sdl.SCANCODE_UP:
		a.setHeads(s.HeadsRatio() + headsStep)
	case sdl.SCANCODE_DOWN:
		a.setHeads(s.HeadsRatio() - headsStep)
	case sdl.SCANCODE_RIGHT:
		a.setRealism(realismStep)
	case sdl.SCANCODE_LEFT:
		a.setRealism(-realismStep)
	case sdl.SCANCODE_PAGEUP:
		a.setFOV(s.Camera().FOV() + fovStep)
	case sdl.SCANCODE_PAGEDOWN:
		a.setFOV(s.Camera().FOV() - fovStep)

	case sdl.SCANCODE_B:
		a.backgroundIndex = (a.backgroundIndex + 1) % len(backgrounds)
		if err := s.SetBackground(backgrounds[a.backgroundIndex]); err != nil {
			a.log.Warn("background", zap.Error(err))
		}
	}
}

func (a *App) setHeads(v float32) {
	v = clamp(v, minHeads, maxHeads)
	if err := a.studio.SetHeadsRatio(v); err != nil {
		a.log.Warn("heads ratio", zap.Error(err))
		return
	}
	a.log.Debug("heads ratio", zap.Float32("value", v))
}

func (a *App) setRealism(delta float32) {
	a.cfg.Studio.Realism = clamp(a.cfg.Studio.Realism+delta, 0, 1)
	a.studio.SetRealism(a.cfg.Studio.Realism)
	a.log.Debug("realism", zap.Float32("value", a.cfg.Studio.Realism))
}

func (a *App) setFOV(v float32) {
	v = clamp(v, minFOV, maxFOV)
	if err := a.studio.SetFOV(v); err != nil {
		a.log.Warn("fov", zap.Error(err))
	}
}

func (a *App) open(kind filepicker.Kind, title string) (string, bool) {
	path, ok, err := a.picker.Open(kind, title)
	if err != nil {
		a.log.Warn("file dialog unavailable", zap.Error(err))
		return "", false
	}
	return path, ok
}

// exportPose asks where to save and falls back to the configured path when
// no dialog is available.
func (a *App) exportPose() {
	path, ok, err := a.picker.Save(filepicker.KindPose, "Export pose", a.cfg.Export.PoseFile)
	if err != nil {
		a.log.Warn("file dialog unavailable, using configured path", zap.Error(err))
		path, ok = filepath.Join(a.cfg.Export.OutputDir, a.cfg.Export.PoseFile), true
	}
	if !ok {
		return
	}
	if err := a.studio.ExportPose(path); err != nil {
		a.picker.Error("Pose export failed", "%v", err)
	}
}

func (a *App) importPose() {
	path, ok := a.open(filepicker.KindPose, "Import pose")
	if !ok {
		return
	}
	missing, err := a.studio.ImportPose(path)
	if err != nil {
		a.picker.Error("Pose import failed", "%v", err)
		return
	}
	if len(missing) > 0 {
		a.log.Warn("pose names not in figure", zap.Strings("names", missing))
	}
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
