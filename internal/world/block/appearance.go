package block

// AtlasCells is the number of cells along each side of the texture atlas.
const AtlasCells = 16

// TextureFlag tells the shader how to sample an atlas cell.
type TextureFlag int8

const (
	FlagMissing  TextureFlag = -1
	FlagOpaque   TextureFlag = 0
	FlagAnimated TextureFlag = 1 // scrolled over time (liquids)
	FlagCutout   TextureFlag = 2 // alpha tested (foliage, glass)
)

// Appearance is the atlas entry for one block face.
type Appearance struct {
	Cell [2]uint8
	Flag TextureFlag
}

type faceKey struct {
	t Type
	d Direction
}

var (
	appearances = make(map[faceKey]Appearance)
	// Materials whose side texture runs along the other UV axis.
	rotatedSides = map[Type]bool{}
	// UV span multipliers for decals drawn from higher resolution sub-cells.
	uvScale = map[Type]float32{}
)

// AppearanceOf looks up the atlas entry for face d of t.
func AppearanceOf(t Type, d Direction) (Appearance, bool) {
	a, ok := appearances[faceKey{t, d}]
	return a, ok
}

// RotatedUV reports whether the UV axes of face d of t are swapped.
func RotatedUV(t Type, d Direction) bool {
	return rotatedSides[t] && (d == XPos || d == XNeg)
}

// UVScale returns the UV span multiplier of t, 1 for regular materials.
func UVScale(t Type) float32 {
	if s, ok := uvScale[t]; ok {
		return s
	}
	return 1
}

func cell(u, v int) [2]uint8 { return [2]uint8{uint8(u), uint8(v)} }

// all assigns the same atlas cell to every face, diagonals included.
func all(t Type, c [2]uint8, flag TextureFlag) {
	for d := Direction(0); d < NumDirections; d++ {
		appearances[faceKey{t, d}] = Appearance{Cell: c, Flag: flag}
	}
}

// sides assigns separate top, side and bottom cells.
func sides(t Type, top, side, bottom [2]uint8, flag TextureFlag) {
	all(t, side, flag)
	appearances[faceKey{t, YPos}] = Appearance{Cell: top, Flag: flag}
	appearances[faceKey{t, YNeg}] = Appearance{Cell: bottom, Flag: flag}
}

func init() {
	sides(Grass, cell(8, 13), cell(3, 15), cell(2, 15), FlagOpaque)
	all(Dirt, cell(2, 15), FlagOpaque)
	all(CoarseDirt, cell(2, 14), FlagOpaque)
	sides(Podzol, cell(3, 14), cell(4, 14), cell(2, 15), FlagOpaque)
	all(Stone, cell(1, 15), FlagOpaque)
	all(Cobblestone, cell(0, 14), FlagOpaque)
	all(MossyCobblestone, cell(4, 13), FlagOpaque)
	all(Granite, cell(5, 14), FlagOpaque)
	all(Diorite, cell(6, 14), FlagOpaque)
	all(Andesite, cell(7, 14), FlagOpaque)
	all(Bedrock, cell(1, 14), FlagOpaque)
	all(Sand, cell(2, 14), FlagOpaque)
	all(RedSand, cell(8, 14), FlagOpaque)
	all(Gravel, cell(3, 13), FlagOpaque)
	all(Clay, cell(8, 11), FlagOpaque)
	sides(Sandstone, cell(0, 4), cell(0, 3), cell(0, 2), FlagOpaque)
	sides(ChiseledSandstone, cell(0, 4), cell(5, 3), cell(0, 2), FlagOpaque)
	sides(SmoothSandstone, cell(0, 4), cell(6, 3), cell(0, 2), FlagOpaque)
	all(SnowBlock, cell(2, 11), FlagOpaque)
	all(Ice, cell(3, 11), FlagCutout)
	all(PackedIce, cell(13, 11), FlagOpaque)
	all(Obsidian, cell(5, 13), FlagOpaque)
	all(CoalOre, cell(2, 13), FlagOpaque)
	all(IronOre, cell(1, 13), FlagOpaque)
	all(GoldOre, cell(0, 13), FlagOpaque)
	all(DiamondOre, cell(2, 12), FlagOpaque)
	all(RedstoneOre, cell(3, 12), FlagOpaque)
	all(LapisOre, cell(0, 5), FlagOpaque)
	all(EmeraldOre, cell(11, 5), FlagOpaque)
	all(Water, cell(13, 3), FlagAnimated)
	all(Lava, cell(13, 1), FlagAnimated)

	logs := []Type{OakLog, SpruceLog, BirchLog, JungleLog, AcaciaLog, DarkOakLog}
	planks := []Type{OakPlanks, SprucePlanks, BirchPlanks, JunglePlanks, AcaciaPlanks, DarkOakPlanks}
	leaves := []Type{OakLeaves, SpruceLeaves, BirchLeaves, JungleLeaves, AcaciaLeaves, DarkOakLeaves}
	saplings := []Type{OakSapling, SpruceSapling, BirchSapling, JungleSapling, AcaciaSapling, DarkOakSapling}
	for i := range logs {
		sides(logs[i], cell(5+i, 10), cell(i, 10), cell(5+i, 10), FlagOpaque)
		rotatedSides[logs[i]] = true
		all(planks[i], cell(i, 9), FlagOpaque)
		all(leaves[i], cell(i, 8), FlagCutout)
		all(saplings[i], cell(i, 7), FlagCutout)
	}

	all(Bricks, cell(7, 15), FlagOpaque)
	all(StoneBricks, cell(6, 12), FlagOpaque)
	all(MossyStoneBricks, cell(4, 12), FlagOpaque)
	sides(Bookshelf, cell(4, 15), cell(3, 13), cell(4, 15), FlagOpaque)
	all(Glass, cell(1, 12), FlagCutout)
	all(Window, cell(1, 11), FlagCutout)
	all(FrostedWindow, cell(2, 10), FlagCutout)

	for i := 0; i < 8; i++ {
		all(SnowLayer1+Type(i), cell(2, 11), FlagOpaque)
		all(Wheat1+Type(i), cell(8+i, 5), FlagCutout)
	}
	for i := 0; i < 4; i++ {
		all(Carrots1+Type(i), cell(8+i, 4), FlagCutout)
		all(Potatoes1+Type(i), cell(12+i, 4), FlagCutout)
	}
	sides(StoneSlab, cell(6, 15), cell(5, 15), cell(6, 15), FlagOpaque)
	all(CobblestoneSlab, cell(0, 14), FlagOpaque)
	sides(SandstoneSlab, cell(0, 4), cell(0, 3), cell(0, 2), FlagOpaque)
	all(OakSlab, cell(0, 9), FlagOpaque)
	all(BrickSlab, cell(7, 15), FlagOpaque)

	all(Sign, cell(4, 9), FlagOpaque)
	sides(Lantern, cell(10, 6), cell(9, 6), cell(11, 6), FlagOpaque)
	sides(PaperLantern, cell(13, 6), cell(12, 6), cell(13, 6), FlagCutout)
	all(Ikebana, cell(14, 6), FlagCutout)

	foliage := []Type{
		TallGrass, Fern, DeadBush, Dandelion, Poppy, BlueOrchid, Allium, AzureBluet,
		RedTulip, OrangeTulip, WhiteTulip, PinkTulip, OxeyeDaisy, Cornflower,
		LilyOfTheValley, RedMushroom, BrownMushroom, SugarCane,
	}
	for i, t := range foliage {
		all(t, cell(i%16, 6-i/16), FlagCutout)
	}

	all(LilyPad, cell(12, 11), FlagCutout)
	all(Rail, cell(0, 8), FlagCutout)
	all(RedstoneDust, cell(4, 5), FlagCutout)
	uvScale[Rail] = 0.5
	uvScale[RedstoneDust] = 0.5

	for c := Color(0); c < NumColors; c++ {
		all(StainedGlass(c), cell(int(c), 1), FlagCutout)
		all(Wool(c), cell(int(c), 2), FlagOpaque)
		all(Carpet(c), cell(int(c), 2), FlagOpaque)
		all(Terracotta(c), cell(int(c), 0), FlagOpaque)
	}
}
