// Package chunk implements the voxel column: a dense 16x256x16 grid of
// blocks with per-column biome weights and links to its lateral neighbors.
package chunk

import (
	"fmt"
	"sync/atomic"

	"github.com/Faultbox/blockworld/internal/world/biome"
	"github.com/Faultbox/blockworld/internal/world/block"
	"github.com/Faultbox/blockworld/internal/world/coord"
)

// Chunk dimensions.
const (
	Width  = 16
	Height = 256
	Depth  = 16
	Volume = Width * Height * Depth
)

// Chunk is one voxel column.
//
// Block data is written by a single goroutine at a time: the generation
// worker before the chunk is indexed, then the owner goroutine. Neighbor
// links may be set by the owner while mesh workers follow them, so they are
// atomic. The streaming flags belong to the owner goroutine.
type Chunk struct {
	x, z int

	blocks [Volume]block.Type
	biomes [Width * Depth]biome.Weights

	neighbors [4]atomic.Pointer[Chunk]

	hasMeshData bool
	gpuResident bool
}

// New creates an empty chunk at world origin (x, z). It panics unless both
// are multiples of 16.
func New(x, z int) *Chunk {
	if x&15 != 0 || z&15 != 0 {
		panic(fmt.Sprintf("chunk: origin (%d,%d) is not aligned to %d", x, z, Width))
	}
	return &Chunk{x: x, z: z}
}

// Origin returns the world coordinates of local (0, 0, 0).
func (c *Chunk) Origin() (x, z int) {
	return c.x, c.z
}

// Key returns the packed origin used by the world index.
func (c *Chunk) Key() uint64 {
	return coord.Pack(c.x, c.z)
}

func (c *Chunk) String() string {
	return fmt.Sprintf("chunk(%d,%d)", c.x, c.z)
}

// InBounds reports whether (x, y, z) is a valid local coordinate.
func InBounds(x, y, z int) bool {
	return x >= 0 && x < Width && y >= 0 && y < Height && z >= 0 && z < Depth
}

func index(x, y, z int) int {
	if !InBounds(x, y, z) {
		panic(fmt.Sprintf("chunk: local coordinate (%d,%d,%d) out of range", x, y, z))
	}
	return (y*Depth+z)*Width + x
}

func columnIndex(x, z int) int {
	if x < 0 || x >= Width || z < 0 || z >= Depth {
		panic(fmt.Sprintf("chunk: local column (%d,%d) out of range", x, z))
	}
	return z*Width + x
}

// Get returns the block at local (x, y, z). It panics when out of range.
func (c *Chunk) Get(x, y, z int) block.Type {
	return c.blocks[index(x, y, z)]
}

// Set writes the block at local (x, y, z). It panics when out of range.
// Mesh state is not touched; callers invalidate it.
func (c *Chunk) Set(x, y, z int, t block.Type) {
	c.blocks[index(x, y, z)] = t
}

// Biome returns the biome weights of local column (x, z).
func (c *Chunk) Biome(x, z int) biome.Weights {
	return c.biomes[columnIndex(x, z)]
}

// SetBiome writes the biome weights of local column (x, z).
func (c *Chunk) SetBiome(x, z int, w biome.Weights) {
	c.biomes[columnIndex(x, z)] = w
}

// Blocks returns a copy of the block array in (y, z, x) order.
func (c *Chunk) Blocks() []block.Type {
	out := make([]block.Type, Volume)
	copy(out, c.blocks[:])
	return out
}

// LinkNeighbor links other as the neighbor in direction d and links c back
// in the opposite direction. A nil other is ignored. d must be lateral.
func (c *Chunk) LinkNeighbor(other *Chunk, d block.Direction) {
	if other == nil {
		return
	}
	c.neighbors[d.LateralIndex()].Store(other)
	other.neighbors[d.Opposite().LateralIndex()].Store(c)
}

// Neighbor returns the chunk linked in lateral direction d, or nil.
func (c *Chunk) Neighbor(d block.Direction) *Chunk {
	return c.neighbors[d.LateralIndex()].Load()
}

// Adjacent returns the block one step from local (x, y, z) in direction d.
// Cells across the chunk border are read through the neighbor links; cells
// above or below the world and cells in unlinked neighbors read as Empty.
func (c *Chunk) Adjacent(x, y, z int, d block.Direction) block.Type {
	dx, dy, dz := d.Offset()
	return c.lookup(x+dx, y+dy, z+dz)
}

func (c *Chunk) lookup(x, y, z int) block.Type {
	if y < 0 || y >= Height {
		return block.Empty
	}
	cur := c
	switch {
	case x < 0:
		cur, x = cur.Neighbor(block.XNeg), x+Width
	case x >= Width:
		cur, x = cur.Neighbor(block.XPos), x-Width
	}
	if cur == nil {
		return block.Empty
	}
	switch {
	case z < 0:
		cur, z = cur.Neighbor(block.ZNeg), z+Depth
	case z >= Depth:
		cur, z = cur.Neighbor(block.ZPos), z-Depth
	}
	if cur == nil {
		return block.Empty
	}
	return cur.Get(x, y, z)
}

// HasMeshData reports whether a mesh for the current block data was
// delivered. Owner goroutine only.
func (c *Chunk) HasMeshData() bool { return c.hasMeshData }

// GPUResident reports whether the mesh is uploaded and drawable. Owner
// goroutine only.
func (c *Chunk) GPUResident() bool { return c.gpuResident }

// MarkUploaded records a completed upload.
func (c *Chunk) MarkUploaded() {
	c.hasMeshData = true
	c.gpuResident = true
}

// MarkEvicted records that the mesh buffers were released.
func (c *Chunk) MarkEvicted() {
	c.hasMeshData = false
	c.gpuResident = false
}
