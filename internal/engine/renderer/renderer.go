// Package renderer provides OpenGL rendering functionality.
package renderer

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/posecraft/internal/engine/lighting"
	"github.com/Faultbox/posecraft/internal/engine/shader"
	"github.com/Faultbox/posecraft/internal/logger"
	"github.com/Faultbox/posecraft/internal/scene"
	"github.com/Faultbox/posecraft/pkg/math"
)

// Config holds renderer configuration.
type Config struct {
	Width  int
	Height int
}

// Sphere is a joint marker.
type Sphere struct {
	Center math.Vec3
	Radius float32
	Color  [3]float32
}

// Frame is everything drawn in one frame.
type Frame struct {
	ViewProj   math.Mat4
	Background [3]float32
	Lights     lighting.Rig

	// Hierarchies are drawn node by node using each node's Shape.
	Hierarchies []*scene.Hierarchy
	// Markers are drawn after the hierarchies without depth testing so they
	// stay visible through the figure.
	Markers []Sphere
}

type mesh struct {
	vao, vbo uint32
	count    int32
}

// Renderer handles all OpenGL rendering.
type Renderer struct {
	config Config
	log    *zap.Logger

	program *shader.Program

	meshes map[scene.Shape]*mesh
}

// New creates a new renderer.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		config: cfg,
		log:    logger.Named("renderer"),
		meshes: make(map[scene.Shape]*mesh),
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	r.log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.MULTISAMPLE)
	gl.Viewport(0, 0, int32(cfg.Width), int32(cfg.Height))

	var err error
	r.program, err = shader.Compile(vertexShader, fragmentShader)
	if err != nil {
		return nil, fmt.Errorf("failed to create shader program: %w", err)
	}

	sphere := r.upload(SphereVertices(16, 24))
	r.meshes[scene.ShapeBox] = r.upload(BoxVertices())
	r.meshes[scene.ShapeSphere] = sphere
	r.meshes[scene.ShapeCapsule] = sphere
	r.meshes[scene.ShapePlane] = r.upload(PlaneVertices())

	r.log.Debug("renderer ready", zap.Uint32("program", r.program.ID))
	return r, nil
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	r.log.Info("closing renderer")
	seen := make(map[*mesh]bool)
	for _, m := range r.meshes {
		if seen[m] {
			continue
		}
		seen[m] = true
		gl.DeleteVertexArrays(1, &m.vao)
		gl.DeleteBuffers(1, &m.vbo)
	}
	if r.program != nil {
		r.program.Delete()
	}
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	r.log.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Size returns the viewport size.
func (r *Renderer) Size() (width, height int) {
	return r.config.Width, r.config.Height
}

// Render draws one frame into the back buffer.
func (r *Renderer) Render(f *Frame) {
	bg := f.Background
	gl.ClearColor(bg[0], bg[1], bg[2], 1.0)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	r.program.Use()
	gl.UniformMatrix4fv(r.program.Uniform("uViewProj"), 1, false, f.ViewProj.Ptr())
	r.setLights(f.Lights)
	gl.Uniform1f(r.program.Uniform("uMarker"), 0)

	for _, h := range f.Hierarchies {
		h.Traverse(func(n *scene.Node) {
			m := r.meshes[n.Shape]
			if m == nil {
				return
			}
			size := n.Size
			if n.Shape == scene.ShapePlane {
				size.Y = 1
			}
			model := n.WorldMatrix().Mul(math.Scale(size.X, size.Y, size.Z))
			r.draw(m, model, n.Color)
		})
	}

	if len(f.Markers) > 0 {
		gl.Disable(gl.DEPTH_TEST)
		gl.Uniform1f(r.program.Uniform("uMarker"), 1)
		sphere := r.meshes[scene.ShapeSphere]
		for _, s := range f.Markers {
			d := s.Radius * 2
			model := math.Translate(s.Center.X, s.Center.Y, s.Center.Z).Mul(math.Scale(d, d, d))
			r.draw(sphere, model, s.Color)
		}
		gl.Enable(gl.DEPTH_TEST)
	}

	gl.BindVertexArray(0)
}

// ReadPixels reads the back buffer as RGBA rows, bottom row first.
func (r *Renderer) ReadPixels() (pixels []byte, width, height int) {
	width, height = r.config.Width, r.config.Height
	pixels = make([]byte, width*height*4)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadBuffer(gl.BACK)
	gl.ReadPixels(0, 0, int32(width), int32(height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return pixels, width, height
}

func (r *Renderer) setLights(l lighting.Rig) {
	p := r.program
	gl.Uniform3f(p.Uniform("uSkyColor"), l.SkyColor[0], l.SkyColor[1], l.SkyColor[2])
	gl.Uniform3f(p.Uniform("uGroundColor"), l.GroundColor[0], l.GroundColor[1], l.GroundColor[2])
	gl.Uniform1f(p.Uniform("uHemi"), l.Hemisphere)
	gl.Uniform3f(p.Uniform("uSunColor"), l.SunColor[0], l.SunColor[1], l.SunColor[2])
	gl.Uniform3f(p.Uniform("uSunDir"), l.SunDir.X, l.SunDir.Y, l.SunDir.Z)
	gl.Uniform1f(p.Uniform("uDir"), l.Directional)
}

func (r *Renderer) draw(m *mesh, model math.Mat4, color [3]float32) {
	gl.UniformMatrix4fv(r.program.Uniform("uModel"), 1, false, model.Ptr())
	gl.Uniform3f(r.program.Uniform("uColor"), color[0], color[1], color[2])
	gl.BindVertexArray(m.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, m.count)
}

// upload creates a VAO/VBO pair for interleaved position+normal vertices.
func (r *Renderer) upload(vertices []float32) *mesh {
	m := &mesh{count: int32(len(vertices) / floatsPerVertex)}

	gl.GenVertexArrays(1, &m.vao)
	gl.BindVertexArray(m.vao)

	gl.GenBuffers(1, &m.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, unsafe.Pointer(&vertices[0]), gl.STATIC_DRAW)

	stride := int32(floatsPerVertex * 4)

	// Position attribute (location = 0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, stride, nil)
	gl.EnableVertexAttribArray(0)

	// Normal attribute (location = 1)
	gl.VertexAttribPointer(1, 3, gl.FLOAT, false, stride, unsafe.Pointer(uintptr(3*4)))
	gl.EnableVertexAttribArray(1)

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)

	r.log.Debug("mesh uploaded",
		zap.Uint32("vao", m.vao),
		zap.Int32("vertices", m.count),
	)
	return m
}
