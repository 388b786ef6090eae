package renderer

import (
	"fmt"
	"log"
	"sync"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"modelview/graphics"
	"modelview/options"
	"modelview/scene"
	"modelview/shader"
	"modelview/textures"
)

var glInitOnce sync.Once

// lightDir is the single directional light, over the viewer's right shoulder.
var lightDir = mgl32.Vec3{-0.4, -0.8, -0.6}.Normalize()

// meshUniforms caches the uniform locations of the mesh program. Locations
// are -1 when the linker optimized a uniform away.
type meshUniforms struct {
	projection   int32
	view         int32
	model        int32
	normalMatrix int32
	viewPos      int32
	lightDir     int32
	ambient      int32
	diffuse      int32
	specular     int32
	shininess    int32
	opacity      int32
	hasTexture   int32
	diffuseTex   int32
}

// meshBuffers is the GPU-side mirror of a scene.Group.
type meshBuffers struct {
	vao        uint32
	vbo        uint32
	ebo        uint32
	indexCount int32
	textureID  uint32
	material   *scene.Material
}

type Renderer struct {
	context   graphics.Context
	program   uint32
	loc       meshUniforms
	groups    []*meshBuffers
	camera    *OrbitCamera
	offscreen *Offscreen

	// normalize recenters the model at the origin and scales it to unit
	// radius so camera framing is model-independent.
	normalize mgl32.Mat4

	width     int
	height    int
	turntable bool
	wireframe bool

	spin          float32
	lastFrameTime float64
}

// NewRenderer initializes OpenGL on the given context and compiles the mesh
// program. The context must have been created by the caller.
func NewRenderer(opts *options.ViewerOptions, ctx graphics.Context) (*Renderer, error) {
	r := &Renderer{
		context:   ctx,
		width:     *opts.Width,
		height:    *opts.Height,
		turntable: true,
		normalize: mgl32.Ident4(),
	}
	var err error

	r.context.MakeCurrent()

	var initErr error
	glInitOnce.Do(func() {
		initErr = gl.Init()
	})
	if initErr != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", initErr)
	}
	log.Printf("OpenGL %s", gl.GoStr(gl.GetString(gl.VERSION)))

	r.program, err = newProgram(shader.GetMeshVertexShader(), shader.GetMeshFragmentShader())
	if err != nil {
		return nil, fmt.Errorf("failed to create mesh program: %w", err)
	}
	r.loc = meshUniforms{
		projection:   uniformLocation(r.program, "uProjection"),
		view:         uniformLocation(r.program, "uView"),
		model:        uniformLocation(r.program, "uModel"),
		normalMatrix: uniformLocation(r.program, "uNormalMatrix"),
		viewPos:      uniformLocation(r.program, "uViewPos"),
		lightDir:     uniformLocation(r.program, "uLightDir"),
		ambient:      uniformLocation(r.program, "uAmbient"),
		diffuse:      uniformLocation(r.program, "uDiffuse"),
		specular:     uniformLocation(r.program, "uSpecular"),
		shininess:    uniformLocation(r.program, "uShininess"),
		opacity:      uniformLocation(r.program, "uOpacity"),
		hasTexture:   uniformLocation(r.program, "uHasTexture"),
		diffuseTex:   uniformLocation(r.program, "uDiffuseTex"),
	}

	gl.Enable(gl.DEPTH_TEST)
	gl.Enable(gl.MULTISAMPLE)
	gl.ClearColor(0.13, 0.14, 0.16, 1.0)

	r.offscreen, err = NewOffscreen(r.width, r.height)
	if err != nil {
		return nil, fmt.Errorf("failed to create offscreen target: %w", err)
	}

	r.camera = NewOrbitCamera(3)

	return r, nil
}

// ToggleTurntable starts or stops the automatic rotation.
func (r *Renderer) ToggleTurntable() { r.turntable = !r.turntable }

// ToggleWireframe switches between filled and wireframe polygon modes.
func (r *Renderer) ToggleWireframe() { r.wireframe = !r.wireframe }

// ResetView restores the home camera and clears the turntable angle.
func (r *Renderer) ResetView() {
	r.camera.Reset()
	r.spin = 0
}

// normalizeTransform recenters the box at the origin and scales it to unit
// radius. Fails on empty or degenerate geometry.
func normalizeTransform(bounds scene.AABB) (mgl32.Mat4, error) {
	center := bounds.Center()
	radius := bounds.Radius()
	if radius == 0 {
		return mgl32.Ident4(), fmt.Errorf("mesh has no geometry")
	}
	s := 1 / radius
	return mgl32.Scale3D(s, s, s).Mul4(
		mgl32.Translate3D(-center.X(), -center.Y(), -center.Z())), nil
}

// LoadMesh uploads every group of the mesh to the GPU and derives the
// normalization transform from its bounds.
func (r *Renderer) LoadMesh(m *scene.Mesh) error {
	normalize, err := normalizeTransform(m.Bounds())
	if err != nil {
		return fmt.Errorf("mesh %q: %w", m.Name, err)
	}
	r.normalize = normalize

	for _, g := range m.Groups {
		if len(g.Indices) == 0 {
			continue
		}
		mb := &meshBuffers{
			indexCount: int32(len(g.Indices)),
			material:   g.Material,
		}

		gl.GenVertexArrays(1, &mb.vao)
		gl.BindVertexArray(mb.vao)

		gl.GenBuffers(1, &mb.vbo)
		gl.BindBuffer(gl.ARRAY_BUFFER, mb.vbo)
		gl.BufferData(gl.ARRAY_BUFFER, len(g.Vertices)*4, gl.Ptr(g.Vertices), gl.STATIC_DRAW)

		stride := int32(scene.VertexStride * 4)
		gl.EnableVertexAttribArray(0)
		gl.VertexAttribPointer(0, 3, gl.FLOAT, false, stride, gl.PtrOffset(0))
		gl.EnableVertexAttribArray(1)
		gl.VertexAttribPointer(1, 3, gl.FLOAT, false, stride, gl.PtrOffset(3*4))
		gl.EnableVertexAttribArray(2)
		gl.VertexAttribPointer(2, 2, gl.FLOAT, false, stride, gl.PtrOffset(6*4))

		gl.GenBuffers(1, &mb.ebo)
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, mb.ebo)
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(g.Indices)*4, gl.Ptr(g.Indices), gl.STATIC_DRAW)

		gl.BindVertexArray(0)
		gl.BindBuffer(gl.ARRAY_BUFFER, 0)
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, 0)

		if g.Material != nil && g.Material.DiffuseImage != nil {
			mb.textureID = textures.New2D(g.Material.DiffuseImage)
		}

		r.groups = append(r.groups, mb)
	}

	log.Printf("Uploaded %d draw groups (%d triangles)", len(r.groups), m.TriangleCount())
	return nil
}

// RenderFrame draws the model into the currently bound framebuffer.
func (r *Renderer) RenderFrame(now float64) {
	dt := now - r.lastFrameTime
	r.lastFrameTime = now
	if r.turntable && dt > 0 {
		r.spin += float32(dt) * 0.5
	}

	model := mgl32.HomogRotate3DY(r.spin).Mul4(r.normalize)
	view := r.camera.ViewMatrix()
	proj := r.camera.ProjectionMatrix(float32(r.width) / float32(r.height))
	normalMat := model.Inv().Transpose().Mat3()
	eye := r.camera.Eye()

	if r.wireframe {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
	} else {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	}

	gl.Viewport(0, 0, int32(r.width), int32(r.height))
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	gl.UseProgram(r.program)
	gl.UniformMatrix4fv(r.loc.projection, 1, false, &proj[0])
	gl.UniformMatrix4fv(r.loc.view, 1, false, &view[0])
	gl.UniformMatrix4fv(r.loc.model, 1, false, &model[0])
	gl.UniformMatrix3fv(r.loc.normalMatrix, 1, false, &normalMat[0])
	gl.Uniform3f(r.loc.viewPos, eye.X(), eye.Y(), eye.Z())
	gl.Uniform3f(r.loc.lightDir, lightDir.X(), lightDir.Y(), lightDir.Z())

	for _, mb := range r.groups {
		mat := mb.material
		if mat == nil {
			mat = scene.DefaultMaterial()
		}
		gl.Uniform3f(r.loc.ambient, mat.Ambient[0], mat.Ambient[1], mat.Ambient[2])
		gl.Uniform3f(r.loc.diffuse, mat.Diffuse[0], mat.Diffuse[1], mat.Diffuse[2])
		gl.Uniform3f(r.loc.specular, mat.Specular[0], mat.Specular[1], mat.Specular[2])
		gl.Uniform1f(r.loc.shininess, mat.Shininess)
		gl.Uniform1f(r.loc.opacity, mat.Opacity)

		if mb.textureID != 0 {
			gl.ActiveTexture(gl.TEXTURE0)
			gl.BindTexture(gl.TEXTURE_2D, mb.textureID)
			gl.Uniform1i(r.loc.diffuseTex, 0)
			gl.Uniform1i(r.loc.hasTexture, 1)
		} else {
			gl.Uniform1i(r.loc.hasTexture, 0)
		}

		gl.BindVertexArray(mb.vao)
		gl.DrawElements(gl.TRIANGLES, mb.indexCount, gl.UNSIGNED_INT, nil)
		gl.BindVertexArray(0)

		if mb.textureID != 0 {
			gl.BindTexture(gl.TEXTURE_2D, 0)
		}
	}
}

// Run is the interactive render loop. It returns when the window closes.
func (r *Renderer) Run() {
	startTime := r.context.Time()

	for !r.context.ShouldClose() {
		dx, dy := r.context.DragDelta()
		if dx != 0 || dy != 0 {
			r.camera.Rotate(float32(dx), float32(dy))
		}
		if scroll := r.context.ScrollDelta(); scroll != 0 {
			r.camera.Dolly(float32(scroll))
		}

		// Match the window's framebuffer size to allow resizing.
		r.width, r.height = r.context.GetFramebufferSize()

		r.RenderFrame(r.context.Time() - startTime)
		r.context.EndFrame()
	}
}

// Shutdown releases all GPU resources. The context itself is shut down by
// the caller that created it.
func (r *Renderer) Shutdown() {
	for _, mb := range r.groups {
		gl.DeleteVertexArrays(1, &mb.vao)
		gl.DeleteBuffers(1, &mb.vbo)
		gl.DeleteBuffers(1, &mb.ebo)
		textures.Destroy(mb.textureID)
	}
	gl.DeleteProgram(r.program)
	if r.offscreen != nil {
		r.offscreen.Destroy()
	}
}
