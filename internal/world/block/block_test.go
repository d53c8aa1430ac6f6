package block

import (
	"fmt"
	"testing"
)

func TestOppositeIsInvolution(t *testing.T) {
	for d := Direction(0); d < NumDirections; d++ {
		if got := d.Opposite().Opposite(); got != d {
			t.Errorf("%v.Opposite().Opposite() = %v, want %v", d, got, d)
		}
		dx, dy, dz := d.Offset()
		ox, oy, oz := d.Opposite().Offset()
		if dx != -ox || dy != -oy || dz != -oz {
			t.Errorf("offset of %v is not the negation of its opposite", d)
		}
	}
}

func TestDirectionSets(t *testing.T) {
	for _, d := range Lateral {
		if !d.IsLateral() || d.IsDiagonal() {
			t.Errorf("%v should be lateral", d)
		}
	}
	for _, d := range Diagonal {
		if d.AxisIndex() != -1 || d.Positive() {
			t.Errorf("%v should not map to an axis", d)
		}
	}
	tests := []struct {
		d        Direction
		axis     int
		positive bool
	}{
		{XPos, 0, true},
		{XNeg, 0, false},
		{YPos, 1, true},
		{YNeg, 1, false},
		{ZPos, 2, true},
		{ZNeg, 2, false},
	}
	for _, tt := range tests {
		if got := tt.d.AxisIndex(); got != tt.axis {
			t.Errorf("%v.AxisIndex() = %d, want %d", tt.d, got, tt.axis)
		}
		if got := tt.d.Positive(); got != tt.positive {
			t.Errorf("%v.Positive() = %v, want %v", tt.d, got, tt.positive)
		}
	}
}

func TestNormalIsUnit(t *testing.T) {
	for d := Direction(0); d < NumDirections; d++ {
		n := d.Normal()
		if l := n.Len(); l < 0.999 || l > 1.001 {
			t.Errorf("%v.Normal() length = %f, want 1", d, l)
		}
	}
}

func TestLateralIndexPanicsForVertical(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("LateralIndex(YPos) should panic")
		}
	}()
	YPos.LateralIndex()
}

func TestCatalogFitsType(t *testing.T) {
	if NumTypes > 256 {
		t.Fatalf("NumTypes = %d does not fit in a uint8", NumTypes)
	}
	if !Terracotta(Black).Valid() {
		t.Error("last colored entry should be valid")
	}
	if Type(NumTypes).Valid() {
		t.Error("NumTypes should not be valid")
	}
}

func TestColoredFamilies(t *testing.T) {
	for c := Color(0); c < NumColors; c++ {
		if !IsTransparent(StainedGlass(c)) || !IsFullCube(StainedGlass(c)) {
			t.Errorf("%v should be a transparent full cube", StainedGlass(c))
		}
		if SinglePartialAxis(Carpet(c)) != PartialY {
			t.Errorf("%v should be partial along y only", Carpet(c))
		}
		if IsTransparent(Wool(c)) {
			t.Errorf("%v should be opaque", Wool(c))
		}
	}
	if got := Wool(Red).String(); got != "Wool(Red)" {
		t.Errorf("Wool(Red).String() = %q", got)
	}
}

func TestTypeNames(t *testing.T) {
	tests := []struct {
		typ  Type
		want string
	}{
		{Empty, "Empty"},
		{Stone, "Stone"},
		{OakLeaves, "OakLeaves"},
		{SnowLayer3, "SnowLayer3"},
		{RedstoneDust, "RedstoneDust"},
		{StainedGlass(White), "StainedGlass(White)"},
		{Terracotta(Black), "Terracotta(Black)"},
		{Type(NumTypes), fmt.Sprintf("Type(%d)", NumTypes)},
	}
	for _, tt := range tests {
		if got := tt.typ.String(); got != tt.want {
			t.Errorf("Type(%d).String() = %q, want %q", uint8(tt.typ), got, tt.want)
		}
	}

	seen := make(map[string]Type)
	for i := 0; i < NumTypes; i++ {
		typ := Type(i)
		name := typ.String()
		if prev, ok := seen[name]; ok {
			t.Errorf("%d and %d share the name %q", prev, i, name)
		}
		seen[name] = typ
		if got, ok := ParseType(name); !ok || got != typ {
			t.Errorf("ParseType(%q) = %v, %v", name, got, ok)
		}
	}
	if _, ok := ParseType("Cheese"); ok {
		t.Error("ParseType accepted an unknown name")
	}
}

func TestClassMembership(t *testing.T) {
	tests := []struct {
		name string
		t    Type
		want Class
	}{
		{"stone", Stone, FullCube},
		{"water", Water, FullCube | Transparent | Liquid},
		{"glass", Glass, FullCube | Transparent},
		{"window", Window, PartialZ | Transparent},
		{"snow", SnowLayer3, PartialY},
		{"sign", Sign, PartialY | PartialZ},
		{"lantern", Lantern, PartialX | PartialY | PartialZ},
		{"lily pad", LilyPad, HorizontalPlane | Transparent},
		{"tall grass", TallGrass, Cross2 | Transparent},
		{"wheat", Wheat1, Cross4 | Transparent},
		{"empty", Empty, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classes(tt.t); got != tt.want {
				t.Errorf("Classes(%v) = %b, want %b", tt.t, got, tt.want)
			}
		})
	}
}

func TestSinglePartialAxis(t *testing.T) {
	if got := SinglePartialAxis(Sign); got != 0 {
		t.Errorf("sign is partial along two axes, got %b", got)
	}
	if got := SinglePartialAxis(StoneSlab); got != PartialY {
		t.Errorf("SinglePartialAxis(StoneSlab) = %b, want PartialY", got)
	}
	if got := SinglePartialAxis(Stone); got != 0 {
		t.Errorf("SinglePartialAxis(Stone) = %b, want 0", got)
	}
}

func TestSnowLayerBounds(t *testing.T) {
	for n := 1; n <= 8; n++ {
		b := Bounds(SnowLayer(n))
		if want := float32(n) / 8; b.Max[1] != want {
			t.Errorf("SnowLayer(%d) top = %f, want %f", n, b.Max[1], want)
		}
	}
	if SnowLayer(0) != SnowLayer1 || SnowLayer(12) != SnowLayer8 {
		t.Error("SnowLayer should clamp to [1,8]")
	}
}

func TestCoversFace(t *testing.T) {
	tests := []struct {
		t    Type
		d    Direction
		want bool
	}{
		{Stone, XPos, true},
		{Stone, DiagPP, false},
		{StoneSlab, YNeg, true},
		{StoneSlab, YPos, false},
		{StoneSlab, XPos, false},
		{Window, ZPos, false},
		{Window, XPos, false},
		{Window, YPos, false},
		{SnowLayer8, YPos, true},
		{Lantern, YNeg, false},
	}
	for _, tt := range tests {
		if got := CoversFace(tt.t, tt.d); got != tt.want {
			t.Errorf("CoversFace(%v, %v) = %v, want %v", tt.t, tt.d, got, tt.want)
		}
	}
}

func TestAppearanceTable(t *testing.T) {
	top, ok := AppearanceOf(Grass, YPos)
	if !ok {
		t.Fatal("grass top should have an appearance")
	}
	side, _ := AppearanceOf(Grass, XPos)
	if top.Cell == side.Cell {
		t.Error("grass top and side should use different cells")
	}
	if a, _ := AppearanceOf(Water, YPos); a.Flag != FlagAnimated {
		t.Errorf("water flag = %d, want animated", a.Flag)
	}
	if _, ok := AppearanceOf(Empty, YPos); ok {
		t.Error("Empty should have no appearance")
	}
	if !RotatedUV(OakLog, XPos) || RotatedUV(OakLog, ZPos) || RotatedUV(Stone, XPos) {
		t.Error("only log x faces should be rotated")
	}
	if UVScale(Rail) != 0.5 || UVScale(Stone) != 1 {
		t.Error("unexpected uv scale")
	}

	slabTop, _ := AppearanceOf(StoneSlab, YPos)
	slabSide, _ := AppearanceOf(StoneSlab, XPos)
	slabBottom, _ := AppearanceOf(StoneSlab, YNeg)
	if slabTop.Cell != [2]uint8{6, 15} || slabSide.Cell != [2]uint8{5, 15} || slabBottom.Cell != [2]uint8{6, 15} {
		t.Errorf("stone slab cells = %v %v %v", slabTop.Cell, slabSide.Cell, slabBottom.Cell)
	}
}

func TestEveryRenderableTypeHasAppearance(t *testing.T) {
	for i := 1; i < NumTypes; i++ {
		typ := Type(i)
		for _, d := range Axis {
			if _, ok := AppearanceOf(typ, d); !ok {
				t.Errorf("%v has no appearance for %v", typ, d)
			}
		}
	}
}
