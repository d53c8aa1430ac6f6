// Package gen synthesizes chunk block data from the biome field.
package gen

import (
	"github.com/Faultbox/blockworld/internal/world/biome"
	"github.com/Faultbox/blockworld/internal/world/block"
	"github.com/Faultbox/blockworld/internal/world/chunk"
)

// DefaultSeaLevel is the water surface height used when none is configured.
const DefaultSeaLevel = 62

// Generator fills chunks with terrain. It holds no mutable state and may be
// shared by any number of workers.
type Generator struct {
	field    biome.Field
	seed     int64
	seaLevel int
}

// New creates a generator reading heights and biomes from field.
func New(field biome.Field, seed int64, seaLevel int) *Generator {
	if seaLevel <= 0 || seaLevel >= chunk.Height-1 {
		seaLevel = DefaultSeaLevel
	}
	return &Generator{field: field, seed: seed, seaLevel: seaLevel}
}

// SeaLevel returns the configured water surface height.
func (g *Generator) SeaLevel() int {
	return g.seaLevel
}

// Populate writes block data and biome weights for every column of c.
// The result depends only on the chunk origin, the field and the seed.
func (g *Generator) Populate(c *chunk.Chunk) {
	ox, oz := c.Origin()
	for lz := 0; lz < chunk.Depth; lz++ {
		for lx := 0; lx < chunk.Width; lx++ {
			wx, wz := ox+lx, oz+lz
			w := g.field.Weights(wx, wz)
			c.SetBiome(lx, lz, w)
			h := g.field.Height(w, wx, wz)
			h = max(1, min(chunk.Height-2, h))
			g.column(c, lx, lz, wx, wz, h, w.Dominant())
		}
	}
}

func (g *Generator) column(c *chunk.Chunk, lx, lz, wx, wz, h int, b biome.Biome) {
	surface, filler := surfaceBlocks(b, h, g.seaLevel)
	underwater := h < g.seaLevel

	c.Set(lx, 0, lz, block.Bedrock)
	for y := 1; y <= h; y++ {
		var t block.Type
		switch {
		case y == h:
			t = surface
		case y >= h-3:
			t = filler
		default:
			t = g.stone(wx, y, wz)
		}
		c.Set(lx, y, lz, t)
	}

	if underwater {
		for y := h + 1; y <= g.seaLevel; y++ {
			c.Set(lx, y, lz, block.Water)
		}
		if b == biome.Tundra {
			c.Set(lx, g.seaLevel, lz, block.Ice)
			return
		}
		if b == biome.Grassland && g.seaLevel-h <= 2 && chance(hash2(g.seed+11, wx, wz), 24) {
			c.Set(lx, g.seaLevel+1, lz, block.LilyPad)
		}
		return
	}

	if d := g.decoration(b, surface, wx, wz); d != block.Empty {
		c.Set(lx, h+1, lz, d)
	}
}

func surfaceBlocks(b biome.Biome, h, seaLevel int) (surface, filler block.Type) {
	if h <= seaLevel+1 && b != biome.Tundra {
		if b == biome.Mountains {
			return block.Gravel, block.Gravel
		}
		return block.Sand, block.Sand
	}
	switch b {
	case biome.Desert:
		return block.Sand, block.Sandstone
	case biome.Mountains:
		if h > 110 {
			return block.SnowBlock, block.Stone
		}
		if h > 90 {
			return block.Stone, block.Stone
		}
		return block.Grass, block.Dirt
	case biome.Tundra:
		return block.Grass, block.Dirt
	}
	return block.Grass, block.Dirt
}

var ores = []struct {
	t       block.Type
	maxY    int
	oneInto uint64
}{
	{block.DiamondOre, 16, 800},
	{block.RedstoneOre, 16, 300},
	{block.GoldOre, 32, 400},
	{block.LapisOre, 32, 500},
	{block.IronOre, 64, 120},
	{block.CoalOre, 128, 70},
}

func (g *Generator) stone(x, y, z int) block.Type {
	h := hash3(g.seed, x, y, z)
	for i, o := range ores {
		if y <= o.maxY && chance(h>>uint(i*4), o.oneInto) {
			return o.t
		}
	}
	return block.Stone
}

var flowers = []block.Type{
	block.Dandelion, block.Poppy, block.BlueOrchid, block.Allium, block.AzureBluet,
	block.RedTulip, block.OrangeTulip, block.WhiteTulip, block.PinkTulip,
	block.OxeyeDaisy, block.Cornflower, block.LilyOfTheValley,
}

func (g *Generator) decoration(b biome.Biome, surface block.Type, x, z int) block.Type {
	h := hash2(g.seed+7, x, z)
	switch b {
	case biome.Grassland:
		if surface != block.Grass {
			return block.Empty
		}
		// Wheat grows in 8x8 fields picked per cell.
		if chance(hash2(g.seed+13, x>>3, z>>3), 30) {
			return block.WheatStage(int(h%8) + 1)
		}
		switch {
		case chance(h, 40):
			return flowers[(h>>16)%uint64(len(flowers))]
		case chance(h>>8, 6):
			return block.TallGrass
		}
	case biome.Desert:
		if chance(h, 90) {
			return block.DeadBush
		}
	case biome.Mountains:
		if surface == block.Grass && chance(h, 20) {
			return block.Fern
		}
	case biome.Tundra:
		if chance(h, 25) {
			return block.Fern
		}
		return block.SnowLayer(int(h>>20)%3 + 1)
	}
	return block.Empty
}

func chance(h uint64, oneIn uint64) bool {
	return h%oneIn == 0
}

func mix64(z uint64) uint64 {
	z += 0x9e3779b97f4a7c15
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}

func hash2(seed int64, x, z int) uint64 {
	ux := uint64(uint32(int32(x)))
	uz := uint64(uint32(int32(z)))
	return mix64(uint64(seed) ^ (ux * 0x9e3779b97f4a7c15) ^ (uz * 0xbf58476d1ce4e5b9))
}

func hash3(seed int64, x, y, z int) uint64 {
	ux := uint64(uint32(int32(x)))
	uy := uint64(uint32(int32(y)))
	uz := uint64(uint32(int32(z)))
	return mix64(uint64(seed) ^ (ux * 0x9e3779b97f4a7c15) ^ (uy * 0xc2b2ae3d27d4eb4f) ^ (uz * 0xbf58476d1ce4e5b9))
}
