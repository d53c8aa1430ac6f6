package mesh

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/blockworld/internal/world/biome"
	"github.com/Faultbox/blockworld/internal/world/block"
)

// Unit-cell corner patterns per face, counter-clockwise seen from the side
// the normal points to. A 0 maps to the box minimum, a 1 to the maximum.
var corners = [block.NumDirections][4][3]uint8{
	block.XPos:   {{1, 0, 1}, {1, 0, 0}, {1, 1, 0}, {1, 1, 1}},
	block.XNeg:   {{0, 0, 0}, {0, 0, 1}, {0, 1, 1}, {0, 1, 0}},
	block.YPos:   {{0, 1, 1}, {1, 1, 1}, {1, 1, 0}, {0, 1, 0}},
	block.YNeg:   {{0, 0, 0}, {1, 0, 0}, {1, 0, 1}, {0, 0, 1}},
	block.ZPos:   {{0, 0, 1}, {1, 0, 1}, {1, 1, 1}, {0, 1, 1}},
	block.ZNeg:   {{1, 0, 0}, {0, 0, 0}, {0, 1, 0}, {1, 1, 0}},
	block.DiagPP: {{0, 0, 1}, {1, 0, 0}, {1, 1, 0}, {0, 1, 1}},
	block.DiagNN: {{1, 0, 0}, {0, 0, 1}, {0, 1, 1}, {1, 1, 0}},
	block.DiagPN: {{1, 0, 1}, {0, 0, 0}, {0, 1, 0}, {1, 1, 1}},
	block.DiagNP: {{0, 0, 0}, {1, 0, 1}, {1, 1, 1}, {0, 1, 0}},
}

var uvCorners = [4][2]float32{{0, 0}, {1, 0}, {1, 1}, {0, 1}}

var (
	white   = mgl32.Vec4{1, 1, 1, 1}
	magenta = mgl32.Vec4{1, 0, 1, 1}
)

// quadIndices is the fixed fan for one quad.
var quadIndices = [6]uint32{0, 1, 2, 0, 2, 3}

// Cell locates a block in the world: the chunk origin plus local coordinates.
type Cell struct {
	OriginX, OriginZ int
	X, Y, Z          int
}

// FaceVertices builds the vertices of face d of a block of type t at cell.
// It returns 4 vertices, or 8 for Cross4 blocks, whose quads are double
// sided: the second four face the opposite way.
func FaceVertices(cell Cell, d block.Direction, t block.Type, w biome.Weights) []Vertex {
	box := block.Bounds(t)
	fix := -1
	var fixAt float32

	switch {
	case block.Is(t, block.Cross4) && d.IsLateral():
		// Both sides of the plane run through the middle of the box.
		fix = d.AxisIndex()
		fixAt = (box.Min[fix] + box.Max[fix]) / 2
		out := make([]Vertex, 0, 8)
		out = appendQuad(out, cell, d, t, w, box, fix, fixAt)
		return appendQuad(out, cell, d.Opposite(), t, w, box, fix, fixAt)
	case block.Is(t, block.HorizontalPlane) && (d == block.YPos || d == block.YNeg):
		// Planes are drawn from both sides at their top surface.
		fix = 1
		fixAt = box.Max[1]
	}
	return appendQuad(make([]Vertex, 0, 4), cell, d, t, w, box, fix, fixAt)
}

func appendQuad(out []Vertex, cell Cell, d block.Direction, t block.Type, w biome.Weights, box block.Box, fix int, fixAt float32) []Vertex {
	base := mgl32.Vec3{
		float32(cell.OriginX + cell.X),
		float32(cell.Y),
		float32(cell.OriginZ + cell.Z),
	}
	n := d.Normal()
	normal := n.Vec4(0)
	biomeW := mgl32.Vec4{w[0], w[1], w[2], w[3]}

	color := white
	appearance := mgl32.Vec4{0, 0, float32(block.FlagMissing), 0}
	a, ok := block.AppearanceOf(t, d)
	if ok {
		appearance = mgl32.Vec4{float32(a.Cell[0]), float32(a.Cell[1]), float32(a.Flag), 0}
	} else {
		color = magenta
	}
	rotated := block.RotatedUV(t, d)
	scale := block.UVScale(t)

	for i, p := range corners[d] {
		var pos mgl32.Vec3
		for axis := 0; axis < 3; axis++ {
			v := box.Min[axis]
			if p[axis] == 1 {
				v = box.Max[axis]
			}
			if axis == fix {
				v = fixAt
			}
			pos[axis] = base[axis] + v
		}

		cu, cv := uvCorners[i][0], uvCorners[i][1]
		if rotated {
			cu, cv = cv, cu
		}
		var uv mgl32.Vec4
		if ok {
			uv = mgl32.Vec4{
				(float32(a.Cell[0]) + cu*scale) / block.AtlasCells,
				(float32(a.Cell[1]) + cv*scale) / block.AtlasCells,
				cu, cv,
			}
		} else {
			uv = mgl32.Vec4{cu, cv, cu, cv}
		}

		out = append(out, Vertex{
			Position:   pos.Vec4(1),
			Normal:     normal,
			Color:      color,
			UV:         uv,
			Appearance: appearance,
			Biome:      biomeW,
		})
	}
	return out
}

// appendFace appends the vertices of one face and the matching fan indices.
func (s *Stream) appendFace(verts []Vertex) {
	base := uint32(len(s.Vertices))
	s.Vertices = append(s.Vertices, verts...)
	for q := 0; q < len(verts)/4; q++ {
		off := base + uint32(q*4)
		for _, i := range quadIndices {
			s.Indices = append(s.Indices, off+i)
		}
	}
}
