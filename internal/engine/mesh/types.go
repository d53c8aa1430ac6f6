// Package mesh turns chunk block data into renderable triangle streams.
//
// Meshing is pure data transformation with no GPU dependency; Build may run
// on any goroutine as long as the chunk's block data is not being written.
package mesh

import "github.com/go-gl/mathgl/mgl32"

// Vertex is one interleaved vertex record. Every attribute is a vec4 so the
// record maps directly onto six shader inputs.
type Vertex struct {
	Position   mgl32.Vec4 // world space, w=1
	Normal     mgl32.Vec4 // face direction, w=0
	Color      mgl32.Vec4 // white, or magenta for a missing appearance
	UV         mgl32.Vec4 // atlas uv in xy, unscaled corner in zw
	Appearance mgl32.Vec4 // atlas cell u, v, texture flag, 0
	Biome      mgl32.Vec4 // biome weights for tinting
}

// Vertex layout constants.
const (
	AttribCount     = 6
	FloatsPerVertex = AttribCount * 4
	VertexSize      = FloatsPerVertex * 4 // bytes
	IndexSize       = 4                   // bytes
)

// Stream is one self-contained index/vertex pair. Indices only reference
// vertices of the same stream.
type Stream struct {
	Vertices []Vertex
	Indices  []uint32
}

// Quads returns the number of quads in the stream.
func (s *Stream) Quads() int {
	return len(s.Indices) / 6
}

// Empty reports whether the stream has no geometry.
func (s *Stream) Empty() bool {
	return len(s.Indices) == 0
}

// Mesh holds the complete geometry of one chunk.
type Mesh struct {
	Opaque      Stream
	Transparent Stream
	Bounds      Bounds
}

// Bounds holds the axis-aligned bounding box of the mesh in world space.
type Bounds struct {
	Min mgl32.Vec3
	Max mgl32.Vec3
}

// Center returns the midpoint of the box.
func (b Bounds) Center() mgl32.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// Empty reports whether the mesh has no geometry at all.
func (m *Mesh) Empty() bool {
	return m.Opaque.Empty() && m.Transparent.Empty()
}

// Buffers is the encoded form of a Mesh handed to the rendering backend.
type Buffers struct {
	OpaqueVertices      []byte
	OpaqueIndices       []byte
	TransparentVertices []byte
	TransparentIndices  []byte
	Bounds              Bounds
}

// OpaqueCount returns the number of opaque indices.
func (b *Buffers) OpaqueCount() int32 {
	return int32(len(b.OpaqueIndices) / IndexSize)
}

// TransparentCount returns the number of transparent indices.
func (b *Buffers) TransparentCount() int32 {
	return int32(len(b.TransparentIndices) / IndexSize)
}

// Size returns the total encoded size in bytes.
func (b *Buffers) Size() int {
	return len(b.OpaqueVertices) + len(b.OpaqueIndices) +
		len(b.TransparentVertices) + len(b.TransparentIndices)
}
