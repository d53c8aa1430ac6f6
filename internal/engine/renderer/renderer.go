// Package renderer draws streamed chunk meshes with OpenGL.
//
// Renderer implements the streaming backend: the scheduler hands it encoded
// mesh buffers and it owns the matching GPU objects. Every method must be
// called on the goroutine that owns the GL context.
package renderer

import (
	"fmt"
	"image"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/blockworld/internal/engine/lighting"
	"github.com/Faultbox/blockworld/internal/engine/mesh"
	"github.com/Faultbox/blockworld/internal/engine/texture"
	"github.com/Faultbox/blockworld/internal/logger"
)

// Config holds renderer configuration.
type Config struct {
	Width     int
	Height    int
	FarPlane  float32
	AtlasPath string // empty uses the procedural atlas

	SunAzimuth   float32 // degrees
	SunElevation float32 // degrees
}

// FrameStats counts the work of the last Draw.
type FrameStats struct {
	Chunks    int
	DrawCalls int
	Indices   int
}

// drawable is one uploaded stream.
type drawable struct {
	vao, vbo, ebo uint32
	count         int32
}

// chunkMesh holds the GPU objects of one chunk.
type chunkMesh struct {
	key         uint64
	origin      mgl32.Vec3
	bounds      mesh.Bounds
	opaque      drawable
	transparent drawable
}

// Renderer handles all OpenGL rendering.
type Renderer struct {
	config  Config
	program *Program
	atlas   uint32
	sunDir  mgl32.Vec3
	chunks  map[uint64]*chunkMesh
	start   time.Time
	stats   FrameStats
	log     *zap.Logger
}

var skyColor = mgl32.Vec3{0.62, 0.78, 0.95}

// New creates a new renderer.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		config: cfg,
		sunDir: lighting.SunDirection(cfg.SunAzimuth, cfg.SunElevation),
		chunks: make(map[uint64]*chunkMesh),
		start:  time.Now(),
		log:    logger.Named("renderer"),
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
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)
	gl.FrontFace(gl.CCW)
	gl.ClearColor(skyColor[0], skyColor[1], skyColor[2], 1.0)
	gl.Viewport(0, 0, int32(cfg.Width), int32(cfg.Height))

	var err error
	r.program, err = compileProgram(chunkVertexShader, chunkFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("chunk shader: %w", err)
	}

	img := texture.Procedural()
	if cfg.AtlasPath != "" {
		loaded, err := texture.Load(cfg.AtlasPath)
		if err != nil {
			r.log.Warn("falling back to procedural atlas", zap.Error(err))
		} else {
			img = loaded
		}
	}
	r.atlas = uploadAtlas(img)

	return r, nil
}

func uploadAtlas(img *image.RGBA) uint32 {
	var id uint32
	gl.GenTextures(1, &id)
	gl.BindTexture(gl.TEXTURE_2D, id)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA,
		int32(img.Bounds().Dx()), int32(img.Bounds().Dy()),
		0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))

	// Nearest filtering keeps neighbouring cells from bleeding in.
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return id
}

// Upload replaces the GPU copy of chunk key with buf.
func (r *Renderer) Upload(key uint64, origin mgl32.Vec3, buf mesh.Buffers) {
	if old, ok := r.chunks[key]; ok {
		old.delete()
	}
	cm := &chunkMesh{
		key:         key,
		origin:      origin,
		bounds:      buf.Bounds,
		opaque:      uploadStream(buf.OpaqueVertices, buf.OpaqueIndices),
		transparent: uploadStream(buf.TransparentVertices, buf.TransparentIndices),
	}
	r.chunks[key] = cm
	r.log.Debug("chunk uploaded",
		zap.Uint64("key", key),
		zap.Int32("opaque", cm.opaque.count),
		zap.Int32("transparent", cm.transparent.count),
		zap.Int("bytes", buf.Size()),
	)
}

// Release frees the GPU objects of chunk key. Unknown keys are ignored.
func (r *Renderer) Release(key uint64) {
	if cm, ok := r.chunks[key]; ok {
		cm.delete()
		delete(r.chunks, key)
	}
}

func uploadStream(vertices, indices []byte) drawable {
	if len(indices) == 0 {
		return drawable{}
	}
	var d drawable
	gl.GenVertexArrays(1, &d.vao)
	gl.BindVertexArray(d.vao)

	gl.GenBuffers(1, &d.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, d.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices), gl.Ptr(vertices), gl.STATIC_DRAW)

	// Six vec4 attributes, see mesh.Vertex.
	for i := 0; i < mesh.AttribCount; i++ {
		gl.VertexAttribPointerWithOffset(uint32(i), 4, gl.FLOAT, false, mesh.VertexSize, uintptr(i*16))
		gl.EnableVertexAttribArray(uint32(i))
	}

	gl.GenBuffers(1, &d.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, d.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices), gl.Ptr(indices), gl.STATIC_DRAW)

	gl.BindVertexArray(0)
	d.count = int32(len(indices) / mesh.IndexSize)
	return d
}

func (d *drawable) draw() bool {
	if d.count == 0 {
		return false
	}
	gl.BindVertexArray(d.vao)
	gl.DrawElements(gl.TRIANGLES, d.count, gl.UNSIGNED_INT, nil)
	return true
}

func (d *drawable) delete() {
	if d.vao != 0 {
		gl.DeleteVertexArrays(1, &d.vao)
	}
	if d.vbo != 0 {
		gl.DeleteBuffers(1, &d.vbo)
	}
	if d.ebo != 0 {
		gl.DeleteBuffers(1, &d.ebo)
	}
	*d = drawable{}
}

func (cm *chunkMesh) delete() {
	cm.opaque.delete()
	cm.transparent.delete()
}

// Resident returns the number of chunks with GPU buffers.
func (r *Renderer) Resident() int {
	return len(r.chunks)
}

// Stats returns the counters of the last Draw.
func (r *Renderer) Stats() FrameStats {
	return r.stats
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	r.log.Debug("renderer resized", zap.Int("width", width), zap.Int("height", height))
}

// Begin starts a new frame.
func (r *Renderer) Begin() {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// Draw renders every resident chunk: opaque streams first, then
// transparent streams from the farthest chunk to the nearest with blending
// and depth writes off.
func (r *Renderer) Draw(viewProj mgl32.Mat4, eye mgl32.Vec3) {
	r.stats = FrameStats{Chunks: len(r.chunks)}

	r.program.Use()
	gl.UniformMatrix4fv(r.program.Uniform("uViewProj"), 1, false, &viewProj[0])
	gl.Uniform3f(r.program.Uniform("uEye"), eye[0], eye[1], eye[2])
	gl.Uniform3f(r.program.Uniform("uSunDir"), r.sunDir[0], r.sunDir[1], r.sunDir[2])
	gl.Uniform3f(r.program.Uniform("uFogColor"), skyColor[0], skyColor[1], skyColor[2])
	gl.Uniform1f(r.program.Uniform("uFogFar"), r.config.FarPlane)
	gl.Uniform1f(r.program.Uniform("uTime"), float32(time.Since(r.start).Seconds()))

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, r.atlas)
	gl.Uniform1i(r.program.Uniform("uAtlas"), 0)

	for _, cm := range r.chunks {
		if cm.opaque.draw() {
			r.stats.DrawCalls++
			r.stats.Indices += int(cm.opaque.count)
		}
	}

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.DepthMask(false)
	for _, cm := range backToFront(r.chunks, eye) {
		if cm.transparent.draw() {
			r.stats.DrawCalls++
			r.stats.Indices += int(cm.transparent.count)
		}
	}
	gl.DepthMask(true)
	gl.Disable(gl.BLEND)

	gl.BindVertexArray(0)
}

// ReadPixels reads the back buffer as bottom-up RGBA rows.
func (r *Renderer) ReadPixels() (pixels []byte, width, height int) {
	width, height = r.config.Width, r.config.Height
	pixels = make([]byte, width*height*4)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(width), int32(height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return pixels, width, height
}

// End finishes the current frame.
func (r *Renderer) End() {
	gl.UseProgram(0)
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	r.log.Info("closing renderer", zap.Int("chunks", len(r.chunks)))
	for key, cm := range r.chunks {
		cm.delete()
		delete(r.chunks, key)
	}
	if r.atlas != 0 {
		gl.DeleteTextures(1, &r.atlas)
		r.atlas = 0
	}
	if r.program != nil {
		r.program.Delete()
	}
}
