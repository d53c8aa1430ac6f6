package block

// Class is a bitmask of shape-class memberships. A type may belong to
// several classes; the tables are built once from the membership lists below.
type Class uint16

const (
	FullCube Class = 1 << iota
	PartialX
	PartialY
	PartialZ
	HorizontalPlane
	Cross2
	Cross4
	Transparent
	Liquid

	Partial = PartialX | PartialY | PartialZ
	Cross   = Cross2 | Cross4
	Flat    = HorizontalPlane | Cross
)

// Box is an axis-aligned extent inside the unit cell.
type Box struct {
	Min [3]float32
	Max [3]float32
}

var fullBox = Box{Max: [3]float32{1, 1, 1}}

var (
	classes [NumTypes]Class
	bounds  [NumTypes]Box
)

func init() {
	for i := range bounds {
		bounds[i] = fullBox
	}

	fullCube := []Type{
		Grass, Dirt, CoarseDirt, Podzol, Stone, Cobblestone, MossyCobblestone,
		Granite, Diorite, Andesite, Bedrock, Sand, RedSand, Gravel, Clay,
		Sandstone, ChiseledSandstone, SmoothSandstone, SnowBlock, Ice, PackedIce,
		Obsidian, CoalOre, IronOre, GoldOre, DiamondOre, RedstoneOre, LapisOre,
		EmeraldOre, Water, Lava,
		OakLog, SpruceLog, BirchLog, JungleLog, AcaciaLog, DarkOakLog,
		OakPlanks, SprucePlanks, BirchPlanks, JunglePlanks, AcaciaPlanks, DarkOakPlanks,
		OakLeaves, SpruceLeaves, BirchLeaves, JungleLeaves, AcaciaLeaves, DarkOakLeaves,
		Bricks, StoneBricks, MossyStoneBricks, Bookshelf, Glass,
	}
	transparent := []Type{
		Water, Ice, Glass, Window, FrostedWindow, PaperLantern, Ikebana,
		OakLeaves, SpruceLeaves, BirchLeaves, JungleLeaves, AcaciaLeaves, DarkOakLeaves,
		LilyPad, Rail, RedstoneDust,
	}
	liquid := []Type{Water, Lava}
	partialX := []Type{Lantern, PaperLantern}
	partialY := []Type{
		SnowLayer1, SnowLayer2, SnowLayer3, SnowLayer4, SnowLayer5, SnowLayer6, SnowLayer7, SnowLayer8,
		StoneSlab, CobblestoneSlab, SandstoneSlab, OakSlab, BrickSlab,
		Sign, Lantern, PaperLantern,
	}
	partialZ := []Type{Window, FrostedWindow, Sign, Lantern, PaperLantern}
	plane := []Type{LilyPad, Rail, RedstoneDust}
	cross2 := []Type{
		TallGrass, Fern, DeadBush, Dandelion, Poppy, BlueOrchid, Allium, AzureBluet,
		RedTulip, OrangeTulip, WhiteTulip, PinkTulip, OxeyeDaisy, Cornflower,
		LilyOfTheValley, OakSapling, SpruceSapling, BirchSapling, JungleSapling,
		AcaciaSapling, DarkOakSapling, RedMushroom, BrownMushroom, SugarCane,
	}
	cross4 := []Type{
		Wheat1, Wheat2, Wheat3, Wheat4, Wheat5, Wheat6, Wheat7, Wheat8,
		Carrots1, Carrots2, Carrots3, Carrots4, Potatoes1, Potatoes2, Potatoes3, Potatoes4,
		Ikebana,
	}

	for c := Color(0); c < NumColors; c++ {
		fullCube = append(fullCube, StainedGlass(c), Wool(c), Terracotta(c))
		transparent = append(transparent, StainedGlass(c))
		partialY = append(partialY, Carpet(c))
	}
	// Every flat shape is see-through.
	transparent = append(transparent, cross2...)
	transparent = append(transparent, cross4...)

	for _, set := range []struct {
		class Class
		types []Type
	}{
		{FullCube, fullCube},
		{Transparent, transparent},
		{Liquid, liquid},
		{PartialX, partialX},
		{PartialY, partialY},
		{PartialZ, partialZ},
		{HorizontalPlane, plane},
		{Cross2, cross2},
		{Cross4, cross4},
	} {
		for _, t := range set.types {
			classes[t] |= set.class
		}
	}

	for i := 0; i < 8; i++ {
		bounds[SnowLayer1+Type(i)] = box(0, 0, 0, 1, float32(i+1)/8, 1)
		bounds[Wheat1+Type(i)] = box(0, 0, 0, 1, float32(i+1)/8, 1)
	}
	for i := 0; i < 4; i++ {
		h := float32(i+1) / 8 * 2
		bounds[Carrots1+Type(i)] = box(0, 0, 0, 1, h, 1)
		bounds[Potatoes1+Type(i)] = box(0, 0, 0, 1, h, 1)
	}
	for _, t := range []Type{StoneSlab, CobblestoneSlab, SandstoneSlab, OakSlab, BrickSlab} {
		bounds[t] = box(0, 0, 0, 1, 0.5, 1)
	}
	for c := Color(0); c < NumColors; c++ {
		bounds[Carpet(c)] = box(0, 0, 0, 1, 1.0/16, 1)
	}
	bounds[Window] = box(0, 0, 0.4375, 1, 1, 0.5625)
	bounds[FrostedWindow] = bounds[Window]
	bounds[Sign] = box(0, 0, 0.4375, 1, 0.5, 0.5625)
	bounds[Lantern] = box(0.3125, 0, 0.3125, 0.6875, 0.5625, 0.6875)
	bounds[PaperLantern] = box(0.1875, 0.125, 0.1875, 0.8125, 0.875, 0.8125)
	bounds[Ikebana] = box(0.25, 0, 0.25, 0.75, 0.75, 0.75)
	bounds[LilyPad] = box(0, 0, 0, 1, 1.0/16, 1)
	bounds[Rail] = box(0, 0, 0, 1, 1.0/16, 1)
	bounds[RedstoneDust] = box(0, 0, 0, 1, 1.0/32, 1)
	bounds[RedMushroom] = box(0.3125, 0, 0.3125, 0.6875, 0.375, 0.6875)
	bounds[BrownMushroom] = bounds[RedMushroom]
	bounds[DeadBush] = box(0.125, 0, 0.125, 0.875, 0.8125, 0.875)
}

func box(x0, y0, z0, x1, y1, z1 float32) Box {
	return Box{Min: [3]float32{x0, y0, z0}, Max: [3]float32{x1, y1, z1}}
}

// Classes returns every class t belongs to.
func Classes(t Type) Class {
	if !t.Valid() {
		return 0
	}
	return classes[t]
}

// Is reports whether t belongs to any of the classes in mask.
func Is(t Type, mask Class) bool {
	return Classes(t)&mask != 0
}

// IsFullCube reports whether t occupies the whole cell as a cube.
func IsFullCube(t Type) bool { return Is(t, FullCube) }

// IsTransparent reports whether t lets neighbouring faces show through.
func IsTransparent(t Type) bool { return Is(t, Transparent) }

// IsLiquid reports whether t is water or lava.
func IsLiquid(t Type) bool { return Is(t, Liquid) }

// IsCross reports whether t is drawn as intersecting vertical quads.
func IsCross(t Type) bool { return Is(t, Cross) }

// IsFlat reports whether t is a plane or cross shape.
func IsFlat(t Type) bool { return Is(t, Flat) }

// SinglePartialAxis returns the class of the only axis t is partial along,
// or 0 when t is partial along none or several axes.
func SinglePartialAxis(t Type) Class {
	switch Classes(t) & Partial {
	case PartialX:
		return PartialX
	case PartialY:
		return PartialY
	case PartialZ:
		return PartialZ
	}
	return 0
}

// Bounds returns the extent of t inside its cell.
func Bounds(t Type) Box {
	if !t.Valid() {
		return fullBox
	}
	return bounds[t]
}

// CoversFace reports whether the geometry of t reaches the cell boundary in
// direction d and spans the full face there.
func CoversFace(t Type, d Direction) bool {
	axis := d.AxisIndex()
	if axis < 0 {
		return false
	}
	b := Bounds(t)
	if d.Positive() {
		if b.Max[axis] < 1 {
			return false
		}
	} else if b.Min[axis] > 0 {
		return false
	}
	for a := 0; a < 3; a++ {
		if a == axis {
			continue
		}
		if b.Min[a] > 0 || b.Max[a] < 1 {
			return false
		}
	}
	return true
}
