// Package block defines the block catalog, face directions and the static
// shape-class tables consulted by face visibility and meshing.
package block

import "fmt"

// Type identifies a block's material and shape class.
// The zero value is Empty.
type Type uint8

// Fixed catalog entries.
const (
	Empty Type = iota

	// Terrain
	Grass
	Dirt
	CoarseDirt
	Podzol
	Stone
	Cobblestone
	MossyCobblestone
	Granite
	Diorite
	Andesite
	Bedrock
	Sand
	RedSand
	Gravel
	Clay
	Sandstone
	ChiseledSandstone
	SmoothSandstone
	SnowBlock
	Ice
	PackedIce
	Obsidian
	CoalOre
	IronOre
	GoldOre
	DiamondOre
	RedstoneOre
	LapisOre
	EmeraldOre

	// Liquids
	Water
	Lava

	// Wood
	OakLog
	SpruceLog
	BirchLog
	JungleLog
	AcaciaLog
	DarkOakLog
	OakPlanks
	SprucePlanks
	BirchPlanks
	JunglePlanks
	AcaciaPlanks
	DarkOakPlanks
	OakLeaves
	SpruceLeaves
	BirchLeaves
	JungleLeaves
	AcaciaLeaves
	DarkOakLeaves

	// Building
	Bricks
	StoneBricks
	MossyStoneBricks
	Bookshelf
	Glass
	Window
	FrostedWindow

	// Snow layers, one eighth of a block each
	SnowLayer1
	SnowLayer2
	SnowLayer3
	SnowLayer4
	SnowLayer5
	SnowLayer6
	SnowLayer7
	SnowLayer8

	// Slabs
	StoneSlab
	CobblestoneSlab
	SandstoneSlab
	OakSlab
	BrickSlab

	// Decorative partial blocks
	Sign
	Lantern
	PaperLantern
	Ikebana

	// Foliage
	TallGrass
	Fern
	DeadBush
	Dandelion
	Poppy
	BlueOrchid
	Allium
	AzureBluet
	RedTulip
	OrangeTulip
	WhiteTulip
	PinkTulip
	OxeyeDaisy
	Cornflower
	LilyOfTheValley
	OakSapling
	SpruceSapling
	BirchSapling
	JungleSapling
	AcaciaSapling
	DarkOakSapling
	RedMushroom
	BrownMushroom
	SugarCane

	// Crops
	Wheat1
	Wheat2
	Wheat3
	Wheat4
	Wheat5
	Wheat6
	Wheat7
	Wheat8
	Carrots1
	Carrots2
	Carrots3
	Carrots4
	Potatoes1
	Potatoes2
	Potatoes3
	Potatoes4

	// Flat decals
	LilyPad
	Rail
	RedstoneDust

	numFixed
)

// Color selects one of the 16 dye colors used by the colored block families.
type Color uint8

const (
	White Color = iota
	Orange
	Magenta
	LightBlue
	Yellow
	Lime
	Pink
	Gray
	LightGray
	Cyan
	Purple
	Blue
	Brown
	Green
	Red
	Black

	NumColors = 16
)

// Colored families occupy consecutive ranges after the fixed catalog.
const (
	stainedGlassBase = int(numFixed)
	carpetBase       = stainedGlassBase + NumColors
	woolBase         = carpetBase + NumColors
	terracottaBase   = woolBase + NumColors

	// NumTypes is the size of the catalog.
	NumTypes = terracottaBase + NumColors
)

// StainedGlass returns the stained glass block of color c.
func StainedGlass(c Color) Type { return Type(stainedGlassBase + int(c)) }

// Carpet returns the carpet block of color c.
func Carpet(c Color) Type { return Type(carpetBase + int(c)) }

// Wool returns the wool block of color c.
func Wool(c Color) Type { return Type(woolBase + int(c)) }

// Terracotta returns the terracotta block of color c.
func Terracotta(c Color) Type { return Type(terracottaBase + int(c)) }

// family returns the base of the colored family t belongs to and its color,
// or ok=false for fixed catalog entries.
func family(t Type) (base int, c Color, ok bool) {
	i := int(t)
	if i < stainedGlassBase || i >= NumTypes {
		return 0, 0, false
	}
	base = stainedGlassBase + (i-stainedGlassBase)/NumColors*NumColors
	return base, Color(i - base), true
}

// Valid reports whether t is part of the catalog.
func (t Type) Valid() bool {
	return int(t) < NumTypes
}

// SnowLayer returns the snow layer block of the given height in eighths,
// clamped to [1,8].
func SnowLayer(eighths int) Type {
	eighths = max(1, min(8, eighths))
	return SnowLayer1 + Type(eighths-1)
}

// WheatStage returns the wheat crop at growth stage [1,8].
func WheatStage(stage int) Type {
	stage = max(1, min(8, stage))
	return Wheat1 + Type(stage-1)
}

var fixedNames = [numFixed]string{
	"Empty", "Grass", "Dirt", "CoarseDirt", "Podzol", "Stone", "Cobblestone",
	"MossyCobblestone", "Granite", "Diorite", "Andesite", "Bedrock", "Sand",
	"RedSand", "Gravel", "Clay", "Sandstone", "ChiseledSandstone",
	"SmoothSandstone", "SnowBlock", "Ice", "PackedIce", "Obsidian", "CoalOre",
	"IronOre", "GoldOre", "DiamondOre", "RedstoneOre", "LapisOre", "EmeraldOre",
	"Water", "Lava", "OakLog", "SpruceLog", "BirchLog", "JungleLog",
	"AcaciaLog", "DarkOakLog", "OakPlanks", "SprucePlanks", "BirchPlanks",
	"JunglePlanks", "AcaciaPlanks", "DarkOakPlanks", "OakLeaves",
	"SpruceLeaves", "BirchLeaves", "JungleLeaves", "AcaciaLeaves",
	"DarkOakLeaves", "Bricks", "StoneBricks", "MossyStoneBricks", "Bookshelf",
	"Glass", "Window", "FrostedWindow", "SnowLayer1", "SnowLayer2",
	"SnowLayer3", "SnowLayer4", "SnowLayer5", "SnowLayer6", "SnowLayer7",
	"SnowLayer8", "StoneSlab", "CobblestoneSlab", "SandstoneSlab", "OakSlab",
	"BrickSlab", "Sign", "Lantern", "PaperLantern", "Ikebana", "TallGrass",
	"Fern", "DeadBush", "Dandelion", "Poppy", "BlueOrchid", "Allium",
	"AzureBluet", "RedTulip", "OrangeTulip", "WhiteTulip", "PinkTulip",
	"OxeyeDaisy", "Cornflower", "LilyOfTheValley", "OakSapling",
	"SpruceSapling", "BirchSapling", "JungleSapling", "AcaciaSapling",
	"DarkOakSapling", "RedMushroom", "BrownMushroom", "SugarCane", "Wheat1",
	"Wheat2", "Wheat3", "Wheat4", "Wheat5", "Wheat6", "Wheat7", "Wheat8",
	"Carrots1", "Carrots2", "Carrots3", "Carrots4", "Potatoes1", "Potatoes2",
	"Potatoes3", "Potatoes4", "LilyPad", "Rail", "RedstoneDust",
}

var colorNames = [NumColors]string{
	"White", "Orange", "Magenta", "LightBlue", "Yellow", "Lime", "Pink", "Gray",
	"LightGray", "Cyan", "Purple", "Blue", "Brown", "Green", "Red", "Black",
}

var familyNames = map[int]string{
	stainedGlassBase: "StainedGlass",
	carpetBase:       "Carpet",
	woolBase:         "Wool",
	terracottaBase:   "Terracotta",
}

func (c Color) String() string {
	if int(c) < NumColors {
		return colorNames[c]
	}
	return fmt.Sprintf("Color(%d)", uint8(c))
}

func (t Type) String() string {
	if int(t) < int(numFixed) {
		return fixedNames[t]
	}
	if base, c, ok := family(t); ok {
		return familyNames[base] + "(" + c.String() + ")"
	}
	return fmt.Sprintf("Type(%d)", uint8(t))
}

// ParseType looks a catalog entry up by the name String returns.
func ParseType(name string) (Type, bool) {
	for i := 0; i < NumTypes; i++ {
		if t := Type(i); t.String() == name {
			return t, true
		}
	}
	return Empty, false
}
