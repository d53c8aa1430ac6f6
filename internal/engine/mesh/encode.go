package mesh

import (
	"encoding/binary"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Encode serializes both streams into little-endian byte buffers: 24
// float32 per vertex and one uint32 per index.
func (m *Mesh) Encode() Buffers {
	return Buffers{
		OpaqueVertices:      EncodeVertices(m.Opaque.Vertices),
		OpaqueIndices:       EncodeIndices(m.Opaque.Indices),
		TransparentVertices: EncodeVertices(m.Transparent.Vertices),
		TransparentIndices:  EncodeIndices(m.Transparent.Indices),
		Bounds:              m.Bounds,
	}
}

// EncodeVertices packs vertices in attribute order.
func EncodeVertices(verts []Vertex) []byte {
	buf := make([]byte, 0, len(verts)*VertexSize)
	for i := range verts {
		v := &verts[i]
		for _, attr := range [AttribCount]mgl32.Vec4{v.Position, v.Normal, v.Color, v.UV, v.Appearance, v.Biome} {
			for _, f := range attr {
				buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(f))
			}
		}
	}
	return buf
}

// EncodeIndices packs indices as uint32.
func EncodeIndices(indices []uint32) []byte {
	buf := make([]byte, 0, len(indices)*IndexSize)
	for _, i := range indices {
		buf = binary.LittleEndian.AppendUint32(buf, i)
	}
	return buf
}

// DecodeVertices is the inverse of EncodeVertices. Trailing bytes that do
// not form a whole vertex are ignored.
func DecodeVertices(buf []byte) []Vertex {
	out := make([]Vertex, len(buf)/VertexSize)
	for i := range out {
		rec := buf[i*VertexSize:]
		var attrs [AttribCount]mgl32.Vec4
		for a := range attrs {
			for c := 0; c < 4; c++ {
				off := (a*4 + c) * 4
				attrs[a][c] = math.Float32frombits(binary.LittleEndian.Uint32(rec[off:]))
			}
		}
		out[i] = Vertex{
			Position:   attrs[0],
			Normal:     attrs[1],
			Color:      attrs[2],
			UV:         attrs[3],
			Appearance: attrs[4],
			Biome:      attrs[5],
		}
	}
	return out
}

// DecodeIndices is the inverse of EncodeIndices.
func DecodeIndices(buf []byte) []uint32 {
	out := make([]uint32, len(buf)/IndexSize)
	for i := range out {
		out[i] = binary.LittleEndian.Uint32(buf[i*IndexSize:])
	}
	return out
}
