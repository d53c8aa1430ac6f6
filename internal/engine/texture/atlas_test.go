package texture

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/Faultbox/blockworld/internal/world/block"
)

func cellAlpha(img *image.RGBA, c [2]uint8) (clear, opaque int) {
	for y := 0; y < CellPx; y++ {
		for x := 0; x < CellPx; x++ {
			if img.RGBAAt(int(c[0])*CellPx+x, int(c[1])*CellPx+y).A == 0 {
				clear++
			} else {
				opaque++
			}
		}
	}
	return clear, opaque
}

func TestProcedural(t *testing.T) {
	img := Procedural()
	if got := img.Bounds().Dx(); got != Size {
		t.Fatalf("width = %d, want %d", got, Size)
	}

	again := Procedural()
	for i := range img.Pix {
		if img.Pix[i] != again.Pix[i] {
			t.Fatalf("atlas differs between runs at byte %d", i)
		}
	}

	leaves, _ := block.AppearanceOf(block.OakLeaves, block.YPos)
	if clear, _ := cellAlpha(img, leaves.Cell); clear == 0 {
		t.Error("cutout cell has no clear texels")
	}
	stone, _ := block.AppearanceOf(block.Stone, block.YPos)
	if clear, _ := cellAlpha(img, stone.Cell); clear != 0 {
		t.Errorf("opaque cell has %d clear texels", clear)
	}
}

func TestFitScales(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 2*Size, 2*Size))
	src.SetRGBA(0, 0, color.RGBA{10, 20, 30, 255})
	src.SetRGBA(1, 1, color.RGBA{10, 20, 30, 255})

	dst := Fit(src)
	if dst.Bounds().Dx() != Size || dst.Bounds().Dy() != Size {
		t.Fatalf("Fit size = %v", dst.Bounds())
	}
	if got := dst.RGBAAt(0, 0); got != (color.RGBA{10, 20, 30, 255}) {
		t.Errorf("texel (0,0) = %v", got)
	}
}

func TestLoadFlipsAndKeys(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, Size, Size))
	src.SetRGBA(3, 0, color.RGBA{255, 0, 255, 255})
	src.SetRGBA(4, 0, color.RGBA{1, 2, 3, 255})

	path := filepath.Join(t.TempDir(), "atlas.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, src); err != nil {
		t.Fatal(err)
	}
	f.Close()

	img, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	// The first image row lands in the last atlas row.
	if got := img.RGBAAt(4, Size-1); got != (color.RGBA{1, 2, 3, 255}) {
		t.Errorf("flipped texel = %v", got)
	}
	if got := img.RGBAAt(3, Size-1); got.A != 0 {
		t.Errorf("magenta texel should be clear, got %v", got)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.png")); err == nil {
		t.Error("expected error for a missing file")
	}

	path := filepath.Join(t.TempDir(), "wide.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, image.NewRGBA(image.Rect(0, 0, 64, 32))); err != nil {
		t.Fatal(err)
	}
	f.Close()
	if _, err := Load(path); err == nil {
		t.Error("expected error for a non-square atlas")
	}
}

func TestMagentaKey(t *testing.T) {
	tests := []struct {
		r, g, b uint8
		want    bool
	}{
		{255, 0, 255, true},
		{250, 10, 250, true},
		{249, 0, 255, false},
		{255, 11, 255, false},
		{0, 0, 0, false},
	}
	for _, tt := range tests {
		if got := IsMagentaKey(tt.r, tt.g, tt.b); got != tt.want {
			t.Errorf("IsMagentaKey(%d,%d,%d) = %v, want %v", tt.r, tt.g, tt.b, got, tt.want)
		}
	}
}
