package gen

import (
	"slices"
	"testing"

	"github.com/Faultbox/blockworld/internal/world/biome"
	"github.com/Faultbox/blockworld/internal/world/block"
	"github.com/Faultbox/blockworld/internal/world/chunk"
)

func TestPopulateIsDeterministic(t *testing.T) {
	field := biome.NewNoiseField(1234)
	g := New(field, 1234, DefaultSeaLevel)

	for _, origin := range [][2]int{{0, 0}, {-16, 32}, {4096, -8192}} {
		a := chunk.New(origin[0], origin[1])
		b := chunk.New(origin[0], origin[1])
		g.Populate(a)
		New(biome.NewNoiseField(1234), 1234, DefaultSeaLevel).Populate(b)

		if !slices.Equal(a.Blocks(), b.Blocks()) {
			t.Errorf("chunk %v: block data differs between runs", a)
		}
		for z := 0; z < chunk.Depth; z++ {
			for x := 0; x < chunk.Width; x++ {
				if a.Biome(x, z) != b.Biome(x, z) {
					t.Fatalf("chunk %v: biome differs at (%d,%d)", a, x, z)
				}
			}
		}
	}
}

func TestPopulateFlatField(t *testing.T) {
	g := New(biome.Flat{Biome: biome.Grassland, Level: 70}, 1, 62)
	c := chunk.New(0, 0)
	g.Populate(c)

	for z := 0; z < chunk.Depth; z++ {
		for x := 0; x < chunk.Width; x++ {
			if got := c.Get(x, 0, z); got != block.Bedrock {
				t.Fatalf("Get(%d,0,%d) = %v, want Bedrock", x, z, got)
			}
			if got := c.Get(x, 70, z); got != block.Grass {
				t.Fatalf("surface at (%d,%d) = %v, want Grass", x, z, got)
			}
			if got := c.Get(x, 68, z); got != block.Dirt {
				t.Fatalf("filler at (%d,%d) = %v, want Dirt", x, z, got)
			}
			if above := c.Get(x, 72, z); above != block.Empty {
				t.Fatalf("Get(%d,72,%d) = %v, want Empty", x, z, above)
			}
			if c.Biome(x, z).Dominant() != biome.Grassland {
				t.Fatalf("biome at (%d,%d) not stored", x, z)
			}
		}
	}
}

func TestPopulateFillsWaterToSeaLevel(t *testing.T) {
	g := New(biome.Flat{Biome: biome.Desert, Level: 50}, 1, 60)
	c := chunk.New(16, 16)
	g.Populate(c)

	if got := c.Get(4, 50, 4); got != block.Sand {
		t.Errorf("seabed = %v, want Sand", got)
	}
	for y := 51; y <= 60; y++ {
		if got := c.Get(4, y, 4); got != block.Water {
			t.Fatalf("Get(4,%d,4) = %v, want Water", y, got)
		}
	}
	if got := c.Get(4, 61, 4); got != block.Empty {
		t.Errorf("above sea level = %v, want Empty", got)
	}
}

func TestTundraFreezesSurface(t *testing.T) {
	g := New(biome.Flat{Biome: biome.Tundra, Level: 40}, 1, 60)
	c := chunk.New(0, 0)
	g.Populate(c)

	if got := c.Get(0, 60, 0); got != block.Ice {
		t.Errorf("tundra sea surface = %v, want Ice", got)
	}
	if got := c.Get(0, 59, 0); got != block.Water {
		t.Errorf("below ice = %v, want Water", got)
	}
}

func TestInvalidSeaLevelFallsBack(t *testing.T) {
	if got := New(biome.Flat{}, 0, 0).SeaLevel(); got != DefaultSeaLevel {
		t.Errorf("SeaLevel() = %d, want %d", got, DefaultSeaLevel)
	}
}

func TestHashSpreads(t *testing.T) {
	seen := make(map[uint64]bool)
	for x := -8; x < 8; x++ {
		for z := -8; z < 8; z++ {
			seen[hash2(1, x, z)] = true
		}
	}
	if len(seen) != 256 {
		t.Errorf("hash2 produced %d distinct values for 256 inputs", len(seen))
	}
}
