package chunk

import "github.com/Faultbox/blockworld/internal/world/block"

// IsVisible reports whether a block of type t at local (x, y, z) can be seen
// at all: some axis-adjacent cell must hold a block that does not hide it
// (not a full cube, or transparent) and that differs from t.
func (c *Chunk) IsVisible(x, y, z int, t block.Type) bool {
	for _, d := range block.Axis {
		n := c.Adjacent(x, y, z, d)
		if n != t && (!block.IsFullCube(n) || block.IsTransparent(n)) {
			return true
		}
	}
	return false
}

// IsFaceVisible reports whether face d of a block of type t at local
// (x, y, z) should produce geometry. The rules are ordered and the first
// one that applies decides; ties resolve toward drawing the face.
func (c *Chunk) IsFaceVisible(x, y, z int, d block.Direction, t block.Type) bool {
	if !c.IsVisible(x, y, z, t) {
		return false
	}
	n := c.Adjacent(x, y, z, d)

	switch {
	case block.IsFullCube(n) && !block.IsTransparent(n):
		return false
	case block.IsLiquid(t) && n == t:
		return false
	case block.IsCross(n) && d.IsLateral():
		return false
	case n == t && block.SinglePartialAxis(t) != 0:
		return false
	case n == block.Empty:
		return true
	case block.IsTransparent(n) && n != t:
		return true
	case block.IsFlat(n) || block.IsFlat(t):
		return true
	case !block.CoversFace(t, d) || !block.CoversFace(n, d.Opposite()):
		return true
	}
	return false
}
