// Package terrain implements the world index: a sparse map from chunk
// origins to chunks plus the set of generation zones already populated.
//
// A Terrain is not safe for concurrent use. It belongs to the goroutine that
// drives streaming; workers hand results back to that goroutine instead of
// touching the index.
package terrain

import (
	"errors"
	"fmt"

	"github.com/Faultbox/blockworld/internal/world/biome"
	"github.com/Faultbox/blockworld/internal/world/block"
	"github.com/Faultbox/blockworld/internal/world/chunk"
	"github.com/Faultbox/blockworld/internal/world/coord"
)

var (
	// ErrNoSuchChunk is returned for coordinates whose chunk was never
	// instantiated. Callers probing speculative positions treat it as
	// "outside the world".
	ErrNoSuchChunk = errors.New("no such chunk")

	// ErrChunkExists is returned when inserting a chunk at an origin that
	// is already indexed.
	ErrChunkExists = errors.New("chunk already exists")
)

// KeyOf returns the canonical index key for the chunk containing (x, z).
func KeyOf(x, z int) uint64 {
	return coord.Pack(coord.Floor16(x), coord.Floor16(z))
}

// Coords unpacks a key produced by KeyOf.
func Coords(key uint64) (x, z int) {
	return coord.Unpack(key)
}

// Terrain is the world index.
type Terrain struct {
	chunks map[uint64]*chunk.Chunk
	zones  map[uint64]struct{}
}

// New creates an empty index.
func New() *Terrain {
	return &Terrain{
		chunks: make(map[uint64]*chunk.Chunk),
		zones:  make(map[uint64]struct{}),
	}
}

// Len returns the number of indexed chunks.
func (t *Terrain) Len() int {
	return len(t.chunks)
}

// ZoneCount returns the number of zones marked generated.
func (t *Terrain) ZoneCount() int {
	return len(t.zones)
}

// HasChunkAt reports whether the chunk containing (x, z) is indexed.
func (t *Terrain) HasChunkAt(x, z int) bool {
	_, ok := t.chunks[KeyOf(x, z)]
	return ok
}

// ChunkAt returns the chunk containing (x, z). It panics when the chunk is
// absent; use LookupChunk to probe.
func (t *Terrain) ChunkAt(x, z int) *chunk.Chunk {
	c, err := t.LookupChunk(x, z)
	if err != nil {
		panic(err)
	}
	return c
}

// LookupChunk returns the chunk containing (x, z) or ErrNoSuchChunk.
func (t *Terrain) LookupChunk(x, z int) (*chunk.Chunk, error) {
	c, ok := t.chunks[KeyOf(x, z)]
	if !ok {
		return nil, fmt.Errorf("chunk at (%d,%d): %w", coord.Floor16(x), coord.Floor16(z), ErrNoSuchChunk)
	}
	return c, nil
}

// ChunkByKey returns the chunk stored under key, or nil.
func (t *Terrain) ChunkByKey(key uint64) *chunk.Chunk {
	return t.chunks[key]
}

func local(x, z int) (lx, lz int) {
	return x - coord.Floor16(x), z - coord.Floor16(z)
}

// GetBlockAt returns the block at world (x, y, z). A y outside the world
// reads as Empty when the chunk exists; only a missing chunk is an error.
func (t *Terrain) GetBlockAt(x, y, z int) (block.Type, error) {
	c, err := t.LookupChunk(x, z)
	if err != nil {
		return block.Empty, err
	}
	if y < 0 || y >= chunk.Height {
		return block.Empty, nil
	}
	lx, lz := local(x, z)
	return c.Get(lx, y, lz), nil
}

// SetBlockAt writes the block at world (x, y, z). Writes above or below the
// world are ignored. Mesh state is not invalidated here.
func (t *Terrain) SetBlockAt(x, y, z int, bt block.Type) error {
	c, err := t.LookupChunk(x, z)
	if err != nil {
		return err
	}
	if y < 0 || y >= chunk.Height {
		return nil
	}
	lx, lz := local(x, z)
	c.Set(lx, y, lz, bt)
	return nil
}

// BiomeAt returns the biome weights of world column (x, z).
func (t *Terrain) BiomeAt(x, z int) (biome.Weights, error) {
	c, err := t.LookupChunk(x, z)
	if err != nil {
		return biome.Weights{}, err
	}
	lx, lz := local(x, z)
	return c.Biome(lx, lz), nil
}

// SetBiomeAt writes the biome weights of world column (x, z).
func (t *Terrain) SetBiomeAt(x, z int, w biome.Weights) error {
	c, err := t.LookupChunk(x, z)
	if err != nil {
		return err
	}
	lx, lz := local(x, z)
	c.SetBiome(lx, lz, w)
	return nil
}

// InstantiateChunkAt creates an empty chunk for (x, z), indexes it and links
// it with its existing lateral neighbors. An already indexed chunk is
// returned unchanged.
func (t *Terrain) InstantiateChunkAt(x, z int) *chunk.Chunk {
	if c, ok := t.chunks[KeyOf(x, z)]; ok {
		return c
	}
	c := chunk.New(coord.Floor16(x), coord.Floor16(z))
	t.link(c)
	return c
}

// Insert indexes a chunk built elsewhere (typically by a generation worker)
// and links it with its existing lateral neighbors.
func (t *Terrain) Insert(c *chunk.Chunk) error {
	if _, ok := t.chunks[c.Key()]; ok {
		x, z := c.Origin()
		return fmt.Errorf("insert at (%d,%d): %w", x, z, ErrChunkExists)
	}
	t.link(c)
	return nil
}

func (t *Terrain) link(c *chunk.Chunk) {
	t.chunks[c.Key()] = c
	x, z := c.Origin()
	for _, d := range block.Lateral {
		dx, _, dz := d.Offset()
		if n, ok := t.chunks[KeyOf(x+dx*chunk.Width, z+dz*chunk.Depth)]; ok {
			c.LinkNeighbor(n, d)
		}
	}
}

// MarkZoneGenerated records that generation for zone was triggered.
func (t *Terrain) MarkZoneGenerated(zone Zone) {
	t.zones[zone.Key()] = struct{}{}
}

// IsZoneGenerated reports whether generation for zone was triggered.
func (t *Terrain) IsZoneGenerated(zone Zone) bool {
	_, ok := t.zones[zone.Key()]
	return ok
}

// UnmarkZone forgets that generation for zone was triggered, so a failed
// generation can be requested again.
func (t *Terrain) UnmarkZone(zone Zone) {
	delete(t.zones, zone.Key())
}

// ZoneIndexed reports whether all chunks of zone are in the index.
func (t *Terrain) ZoneIndexed(zone Zone) bool {
	for _, o := range zone.ChunkOrigins() {
		if !t.HasChunkAt(o[0], o[1]) {
			return false
		}
	}
	return true
}

// ForEach calls fn for every indexed chunk until fn returns false. The
// order is unspecified.
func (t *Terrain) ForEach(fn func(c *chunk.Chunk) bool) {
	for _, c := range t.chunks {
		if !fn(c) {
			return
		}
	}
}
