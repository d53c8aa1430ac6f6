package terrain

import (
	"errors"
	"math"
	"testing"

	"github.com/Faultbox/blockworld/internal/world/biome"
	"github.com/Faultbox/blockworld/internal/world/block"
	"github.com/Faultbox/blockworld/internal/world/chunk"
)

func TestKeyRoundTrip(t *testing.T) {
	values := []int{0, 7, -1, -17, 100000, -100000, math.MaxInt32, math.MinInt32}
	for _, x := range values {
		for _, z := range values {
			gx, gz := Coords(KeyOf(x, z))
			wx, wz := x&^15, z&^15
			if gx != wx || gz != wz {
				t.Errorf("Coords(KeyOf(%d,%d)) = (%d,%d), want (%d,%d)", x, z, gx, gz, wx, wz)
			}
		}
	}
}

func TestKeyIsCanonical(t *testing.T) {
	if KeyOf(0, 0) != KeyOf(15, 15) {
		t.Error("cells of one chunk should share a key")
	}
	if KeyOf(-1, 0) == KeyOf(0, 0) {
		t.Error("x=-1 belongs to the chunk at -16")
	}
	if KeyOf(-1, -1) != KeyOf(-16, -16) {
		t.Error("negative coordinates should floor toward -inf")
	}
}

func TestLookupMissingChunk(t *testing.T) {
	tr := New()
	if tr.HasChunkAt(5, 5) {
		t.Fatal("empty terrain should have no chunks")
	}
	if _, err := tr.LookupChunk(5, 5); !errors.Is(err, ErrNoSuchChunk) {
		t.Errorf("LookupChunk error = %v, want ErrNoSuchChunk", err)
	}
	if _, err := tr.GetBlockAt(5, 5, 5); !errors.Is(err, ErrNoSuchChunk) {
		t.Errorf("GetBlockAt error = %v, want ErrNoSuchChunk", err)
	}
	if err := tr.SetBlockAt(5, 5, 5, block.Stone); !errors.Is(err, ErrNoSuchChunk) {
		t.Errorf("SetBlockAt error = %v, want ErrNoSuchChunk", err)
	}
	if _, err := tr.BiomeAt(5, 5); !errors.Is(err, ErrNoSuchChunk) {
		t.Errorf("BiomeAt error = %v, want ErrNoSuchChunk", err)
	}

	defer func() {
		if recover() == nil {
			t.Error("ChunkAt on a missing chunk should panic")
		}
	}()
	tr.ChunkAt(5, 5)
}

func TestBlockAccessTranslatesCoordinates(t *testing.T) {
	tr := New()
	c := tr.InstantiateChunkAt(-20, 33)
	if x, z := c.Origin(); x != -32 || z != 32 {
		t.Fatalf("origin = (%d,%d), want (-32,32)", x, z)
	}

	if err := tr.SetBlockAt(-20, 64, 33, block.Granite); err != nil {
		t.Fatalf("SetBlockAt: %v", err)
	}
	if got := c.Get(12, 64, 1); got != block.Granite {
		t.Errorf("local (12,64,1) = %v, want Granite", got)
	}
	got, err := tr.GetBlockAt(-20, 64, 33)
	if err != nil || got != block.Granite {
		t.Errorf("GetBlockAt = %v, %v", got, err)
	}

	for _, y := range []int{-1, chunk.Height, 1000} {
		got, err := tr.GetBlockAt(-20, y, 33)
		if err != nil || got != block.Empty {
			t.Errorf("GetBlockAt(y=%d) = %v, %v, want Empty, nil", y, got, err)
		}
	}

	w := biome.Weights{0, 0, 1, 0}
	if err := tr.SetBiomeAt(-17, 47, w); err != nil {
		t.Fatal(err)
	}
	if got, _ := tr.BiomeAt(-17, 47); got != w {
		t.Errorf("BiomeAt = %v, want %v", got, w)
	}
}

func TestInstantiateLinksNeighbors(t *testing.T) {
	tr := New()
	// Insertion order should not matter once all neighbors exist.
	origins := [][2]int{{16, 16}, {0, 16}, {32, 16}, {16, 0}, {16, 32}, {0, 0}}
	for _, o := range origins {
		tr.InstantiateChunkAt(o[0], o[1])
	}

	center := tr.ChunkAt(16, 16)
	want := map[block.Direction][2]int{
		block.XNeg: {0, 16},
		block.XPos: {32, 16},
		block.ZNeg: {16, 0},
		block.ZPos: {16, 32},
	}
	for d, o := range want {
		if got := center.Neighbor(d); got != tr.ChunkAt(o[0], o[1]) {
			t.Errorf("center.Neighbor(%v) = %v, want chunk at %v", d, got, o)
		}
	}

	tr.ForEach(func(c *chunk.Chunk) bool {
		for _, d := range block.Lateral {
			if n := c.Neighbor(d); n != nil && n.Neighbor(d.Opposite()) != c {
				t.Errorf("%v -> %v is not symmetric", c, n)
			}
		}
		return true
	})

	if again := tr.InstantiateChunkAt(20, 20); again != center {
		t.Error("InstantiateChunkAt should return the existing chunk")
	}
	if tr.Len() != len(origins) {
		t.Errorf("Len() = %d, want %d", tr.Len(), len(origins))
	}
}

func TestInsertRejectsDuplicates(t *testing.T) {
	tr := New()
	if err := tr.Insert(chunk.New(0, 0)); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if err := tr.Insert(chunk.New(0, 0)); !errors.Is(err, ErrChunkExists) {
		t.Errorf("second Insert error = %v, want ErrChunkExists", err)
	}
	east := chunk.New(16, 0)
	if err := tr.Insert(east); err != nil {
		t.Fatal(err)
	}
	if tr.ChunkAt(0, 0).Neighbor(block.XPos) != east {
		t.Error("Insert should link neighbors")
	}
}

func TestCrossChunkFaceVisibility(t *testing.T) {
	tr := New()
	west := tr.InstantiateChunkAt(0, 0)
	east := tr.InstantiateChunkAt(16, 0)

	west.Set(15, 10, 5, block.Stone)
	east.Set(0, 10, 5, block.Water)

	if got := west.Adjacent(15, 10, 5, block.XPos); got != block.Water {
		t.Fatalf("Adjacent across border = %v, want Water", got)
	}
	if !west.IsFaceVisible(15, 10, 5, block.XPos, block.Stone) {
		t.Error("stone face toward water should be visible")
	}
	// With an EMPTY default this face would be drawn; the real neighbor
	// is opaque stone, which hides it.
	if east.IsFaceVisible(0, 10, 5, block.XNeg, block.Water) {
		t.Error("water face toward stone should be hidden")
	}
}

func TestZones(t *testing.T) {
	tr := New()
	z := ZoneOf(-1, 70)
	if z != (Zone{X: -64, Z: 64}) {
		t.Fatalf("ZoneOf(-1,70) = %v", z)
	}
	if tr.IsZoneGenerated(z) {
		t.Fatal("zone should not be generated yet")
	}
	tr.MarkZoneGenerated(z)
	if !tr.IsZoneGenerated(ZoneOf(-64, 127)) {
		t.Error("any point of the zone should resolve to the marked zone")
	}
	tr.UnmarkZone(z)
	if tr.IsZoneGenerated(z) {
		t.Error("UnmarkZone should clear the mark")
	}

	if tr.ZoneIndexed(z) {
		t.Error("zone without chunks should not be indexed")
	}
	for _, o := range z.ChunkOrigins() {
		if !z.Contains(o[0], o[1]) {
			t.Errorf("chunk origin %v outside %v", o, z)
		}
		tr.InstantiateChunkAt(o[0], o[1])
	}
	if !tr.ZoneIndexed(z) || tr.Len() != ChunksPerZone {
		t.Errorf("zone should be fully indexed, Len() = %d", tr.Len())
	}
}

func TestBordering(t *testing.T) {
	center := Zone{X: 64, Z: -128}
	zones := Bordering(center, 3)
	if len(zones) != 49 {
		t.Fatalf("len(Bordering(r=3)) = %d, want 49", len(zones))
	}
	seen := make(map[Zone]bool)
	for _, z := range zones {
		if seen[z] {
			t.Errorf("duplicate zone %v", z)
		}
		seen[z] = true
		if !z.Within(center, 3) {
			t.Errorf("%v not within radius", z)
		}
	}
	if !seen[center] {
		t.Error("center should be included")
	}
	if (Zone{X: 64 + 4*ZoneSize, Z: -128}).Within(center, 3) {
		t.Error("zone 4 steps away should be outside radius 3")
	}
	if got := Bordering(center, 0); len(got) != 1 || got[0] != center {
		t.Errorf("Bordering(r=0) = %v", got)
	}
}
