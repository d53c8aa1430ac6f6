package terrain

import (
	"fmt"

	"github.com/Faultbox/blockworld/internal/world/chunk"
	"github.com/Faultbox/blockworld/internal/world/coord"
)

// ZoneSize is the edge length of a generation zone in blocks.
const ZoneSize = 64

// ChunksPerZone is the number of chunks a zone covers.
const ChunksPerZone = (ZoneSize / chunk.Width) * (ZoneSize / chunk.Depth)

// Zone is a 64x64 region of 4x4 chunks, identified by its world origin.
// It is the unit of generation and of the streaming radius.
type Zone struct {
	X, Z int
}

// ZoneOf returns the zone containing world coordinates (x, z).
func ZoneOf(x, z int) Zone {
	return Zone{X: coord.Floor64(x), Z: coord.Floor64(z)}
}

// Key packs the zone origin the same way chunk keys are packed.
func (z Zone) Key() uint64 {
	return coord.Pack(z.X, z.Z)
}

func (z Zone) String() string {
	return fmt.Sprintf("zone(%d,%d)", z.X, z.Z)
}

// ChunkOrigins returns the origins of the 16 chunks in z, x-major within
// each row of increasing z.
func (z Zone) ChunkOrigins() [ChunksPerZone][2]int {
	var out [ChunksPerZone][2]int
	i := 0
	for dz := 0; dz < ZoneSize; dz += chunk.Depth {
		for dx := 0; dx < ZoneSize; dx += chunk.Width {
			out[i] = [2]int{z.X + dx, z.Z + dz}
			i++
		}
	}
	return out
}

// Contains reports whether world coordinates (x, z) fall inside z.
func (z Zone) Contains(x, zz int) bool {
	return ZoneOf(x, zz) == z
}

// Bordering returns every zone within radius zones of center (Chebyshev
// distance), center included, ordered by increasing z then x.
func Bordering(center Zone, radius int) []Zone {
	if radius < 0 {
		return nil
	}
	side := 2*radius + 1
	out := make([]Zone, 0, side*side)
	for dz := -radius; dz <= radius; dz++ {
		for dx := -radius; dx <= radius; dx++ {
			out = append(out, Zone{X: center.X + dx*ZoneSize, Z: center.Z + dz*ZoneSize})
		}
	}
	return out
}

// Within reports whether z is within radius zones of center.
func (z Zone) Within(center Zone, radius int) bool {
	dx := (z.X - center.X) / ZoneSize
	dz := (z.Z - center.Z) / ZoneSize
	return abs(dx) <= radius && abs(dz) <= radius
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
