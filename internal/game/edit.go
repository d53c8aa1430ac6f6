package game

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/blockworld/internal/stream"
	"github.com/Faultbox/blockworld/internal/world/block"
	"github.com/Faultbox/blockworld/internal/world/chunk"
)

// digBelow queues the removal of the topmost solid block in the column under
// p. Liquids are skipped. It reports false when the column is not indexed
// yet or holds nothing to remove.
func digBelow(s *stream.Scheduler, p mgl32.Vec3) (x, y, z int, ok bool) {
	x = int(math.Floor(float64(p.X())))
	z = int(math.Floor(float64(p.Z())))
	tr := s.Terrain()
	if !tr.HasChunkAt(x, z) {
		return x, 0, z, false
	}
	for y = chunk.Height - 1; y >= 0; y-- {
		t, err := tr.GetBlockAt(x, y, z)
		if err != nil {
			return x, y, z, false
		}
		if t == block.Empty || block.IsLiquid(t) {
			continue
		}
		s.EditBlock(x, y, z, block.Empty)
		return x, y, z, true
	}
	return x, 0, z, false
}
