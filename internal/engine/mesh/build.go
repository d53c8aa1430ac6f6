package mesh

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/blockworld/internal/world/biome"
	"github.com/Faultbox/blockworld/internal/world/block"
	"github.com/Faultbox/blockworld/internal/world/chunk"
)

// cross4Axes are the two planes of a Cross4 block; each call emits the
// double-sided quad for one axis pair.
var cross4Axes = [2]block.Direction{block.XPos, block.ZPos}

// Build creates the mesh of c. Neighbor chunks linked to c are read to
// decide visibility of border faces.
func Build(c *chunk.Chunk) *Mesh {
	m := &Mesh{}
	ox, oz := c.Origin()

	for y := 0; y < chunk.Height; y++ {
		for z := 0; z < chunk.Depth; z++ {
			for x := 0; x < chunk.Width; x++ {
				t := c.Get(x, y, z)
				if t == block.Empty {
					continue
				}
				if !c.IsVisible(x, y, z, t) {
					continue
				}
				buildCell(m, c, Cell{OriginX: ox, OriginZ: oz, X: x, Y: y, Z: z}, t)
			}
		}
	}

	m.Bounds = computeBounds(m, ox, oz)
	return m
}

// buildCell emits every shape branch t belongs to. Memberships are not
// exclusive and geometry is accumulated without deduplication.
func buildCell(m *Mesh, c *chunk.Chunk, cell Cell, t block.Type) {
	classes := block.Classes(t)
	w := c.Biome(cell.X, cell.Z)

	if classes&block.HorizontalPlane != 0 {
		for _, d := range block.Vertical {
			m.Transparent.appendFace(FaceVertices(cell, d, t, w))
		}
	}
	if classes&block.Cross2 != 0 {
		for _, d := range block.Diagonal {
			m.Transparent.appendFace(FaceVertices(cell, d, t, w))
		}
	}
	if classes&block.Cross4 != 0 {
		for _, d := range cross4Axes {
			m.Transparent.appendFace(FaceVertices(cell, d, t, w))
		}
	}

	target := &m.Opaque
	if classes&block.Transparent != 0 {
		target = &m.Transparent
	}
	if classes&block.Partial != 0 {
		appendVisibleFaces(target, c, cell, t, w)
	}
	if classes&block.FullCube != 0 {
		appendVisibleFaces(target, c, cell, t, w)
	}
}

func appendVisibleFaces(s *Stream, c *chunk.Chunk, cell Cell, t block.Type, w biome.Weights) {
	for _, d := range block.Axis {
		if c.IsFaceVisible(cell.X, cell.Y, cell.Z, d, t) {
			s.appendFace(FaceVertices(cell, d, t, w))
		}
	}
}

func computeBounds(m *Mesh, ox, oz int) Bounds {
	if m.Empty() {
		o := mgl32.Vec3{float32(ox), 0, float32(oz)}
		return Bounds{Min: o, Max: o.Add(mgl32.Vec3{chunk.Width, chunk.Height, chunk.Depth})}
	}
	b := Bounds{
		Min: mgl32.Vec3{1e10, 1e10, 1e10},
		Max: mgl32.Vec3{-1e10, -1e10, -1e10},
	}
	for _, s := range []*Stream{&m.Opaque, &m.Transparent} {
		for _, v := range s.Vertices {
			for i := 0; i < 3; i++ {
				b.Min[i] = min(b.Min[i], v.Position[i])
				b.Max[i] = max(b.Max[i], v.Position[i])
			}
		}
	}
	return b
}
