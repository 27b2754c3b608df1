// Package app implements the studio window and its frame loop.
package app

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/posecraft/internal/assets"
	"github.com/Faultbox/posecraft/internal/capture"
	"github.com/Faultbox/posecraft/internal/config"
	"github.com/Faultbox/posecraft/internal/engine/input"
	"github.com/Faultbox/posecraft/internal/engine/renderer"
	"github.com/Faultbox/posecraft/internal/engine/window"
	"github.com/Faultbox/posecraft/internal/filepicker"
	"github.com/Faultbox/posecraft/internal/logger"
	"github.com/Faultbox/posecraft/internal/posing"
	"github.com/Faultbox/posecraft/internal/resolver"
	"github.com/Faultbox/posecraft/internal/scene"
	"github.com/Faultbox/posecraft/internal/studio"
	"github.com/Faultbox/posecraft/pkg/math"
)

var (
	boneMarkerColor   = [3]float32{1, 0.27, 0.63}
	partMarkerColor   = [3]float32{1, 0.55, 0.2}
	activeMarkerColor = [3]float32{1, 0.9, 0.2}
)

// App is the studio instance.
type App struct {
	cfg    *config.Config
	ctx    context.Context
	cancel context.CancelFunc
	log    *zap.Logger

	running  bool
	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input

	resolver *resolver.Resolver
	studio   *studio.Studio
	picker   *filepicker.Picker
	shots    *capture.Writer

	// Right-drag orbit
	orbiting bool
	last     math.Vec2

	screenshotPending bool
	backgroundIndex   int
	figure            *scene.Hierarchy
}

// New creates the window, GL renderer and studio.
func New(cfg *config.Config) (*App, error) {
	a := &App{
		cfg: cfg,
		log: logger.Named("app"),
	}
	a.ctx, a.cancel = context.WithCancel(context.Background())

	a.log.Info("initializing studio",
		zap.Int("width", cfg.Window.Width),
		zap.Int("height", cfg.Window.Height),
	)

	// Create window (this also creates OpenGL context)
	var err error
	a.window, err = window.New(window.Config{
		Title:      "PoseCraft",
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		Fullscreen: cfg.Window.Fullscreen,
		VSync:      cfg.Window.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	width, height := a.window.GetSize()

	// Create renderer (AFTER window, since OpenGL context must exist)
	a.renderer, err = renderer.New(renderer.Config{Width: width, Height: height})
	if err != nil {
		a.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	a.input = input.New(width, height)
	a.picker = filepicker.New(cfg.Export.OutputDir)
	a.shots = capture.NewWriter(cfg.Export.OutputDir, "posecraft")
	a.resolver = resolver.New(assets.NewManager())

	a.studio, err = studio.New(a.ctx, a.resolver, cfg.Studio, width, height, a.window, a.picker)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to create studio: %w", err)
	}

	a.log.Info("studio initialized")
	return a, nil
}

// Run starts the frame loop and blocks until the window is closed.
func (a *App) Run() error {
	a.running = true
	a.studio.Start(a.cfg.Studio.ModelPath)

	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()

	a.log.Info("starting frame loop")

	for a.running {
		now := time.Now()
		dt := now.Sub(lastTime).Seconds()
		lastTime = now

		// 1. Process input
		if a.input.Update() {
			a.running = false
			break
		}
		for _, ev := range a.input.Events() {
			a.handleEvent(ev)
		}

		// 2. Install finished loads, then re-sync markers
		a.studio.Tick()
		a.onFigureChange()

		// 3. Render
		a.renderer.Render(a.frame())
		if a.screenshotPending {
			a.screenshotPending = false
			a.saveScreenshot()
		}

		// 4. Present (swap buffers)
		a.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			a.log.Debug("fps", zap.Int("count", frameCount), zap.Float64("dt_ms", dt*1000))
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

// Close cleans up studio resources.
func (a *App) Close() {
	a.log.Info("closing studio")

	a.cancel()
	if a.resolver != nil {
		a.resolver.Wait()
	}
	if a.renderer != nil {
		a.renderer.Close()
	}
	if a.window != nil {
		a.window.Close()
	}
}

func (a *App) handleEvent(ev input.Event) {
	ctrl := a.studio.Controller()

	switch ev.Type {
	case input.EventWindowResize:
		a.renderer.Resize(ev.Width, ev.Height)
		a.studio.Camera().SetViewport(ev.Width, ev.Height)

	case input.EventPointerDown:
		switch ev.Button {
		case buttonLeft:
			ctrl.Handle(pointerEvent(posing.EventDown, ev))
		case buttonRight:
			a.orbiting = true
		}
		a.last = math.Vec2{X: ev.X, Y: ev.Y}

	case input.EventPointerMove:
		pos := math.Vec2{X: ev.X, Y: ev.Y}
		if a.orbiting {
			d := pos.Sub(a.last)
			a.studio.Camera().HandleDrag(d.X, d.Y)
		}
		a.last = pos
		ctrl.Handle(pointerEvent(posing.EventMove, ev))

	case input.EventPointerUp:
		switch ev.Button {
		case buttonLeft:
			ctrl.Handle(pointerEvent(posing.EventUp, ev))
		case buttonRight:
			a.orbiting = false
		}

	case input.EventPointerLeave:
		ctrl.PointerLeave()
		a.orbiting = false

	case input.EventWheel:
		a.studio.Camera().HandleZoom(ev.WheelY)

	case input.EventKeyDown:
		a.handleKey(ev)
	}
}

func pointerEvent(kind posing.EventKind, ev input.Event) posing.Event {
	return posing.Event{
		Kind:        kind,
		X:           ev.X,
		Y:           ev.Y,
		Pressure:    ev.Pressure,
		HasPressure: ev.HasPressure,
	}
}

// frame collects what the renderer draws this frame.
func (a *App) frame() *renderer.Frame {
	f := &renderer.Frame{
		ViewProj:   a.studio.Camera().ViewProjection(),
		Background: a.studio.Background(),
		Lights:     a.studio.Lights(),
	}
	if fig := a.studio.Figure(); fig != nil {
		f.Hierarchies = append(f.Hierarchies, fig)
	}
	f.Hierarchies = append(f.Hierarchies, a.studio.Props()...)

	active := a.studio.Controller().State().Marker
	for _, m := range a.studio.Markers() {
		color := partMarkerColor
		if m.Bone {
			color = boneMarkerColor
		}
		if m == active {
			color = activeMarkerColor
		}
		f.Markers = append(f.Markers, renderer.Sphere{Center: m.Position, Radius: m.Radius, Color: color})
	}
	return f
}

// onFigureChange refreshes the window title when a new figure arrives.
func (a *App) onFigureChange() {
	fig := a.studio.Figure()
	if fig == nil || fig == a.figure {
		return
	}
	a.figure = fig
	a.window.SetTitle(fmt.Sprintf("PoseCraft - %s (%s)", filepath.Base(fig.Source), fig.Kind))
}

func (a *App) saveScreenshot() {
	pixels, w, h := a.renderer.ReadPixels()
	path, err := a.shots.SavePixels(pixels, w, h, a.cfg.Export.ScreenshotFile)
	if err != nil {
		a.picker.Error("Screenshot failed", "%v", err)
		return
	}
	a.log.Info("screenshot saved", zap.String("path", path))
}
