// Package texture builds the block atlas image sampled by the chunk shader.
package texture

import (
	"fmt"
	"image"
	"image/color"
	"os"

	// Decoders for atlas files.
	_ "image/png"

	"golang.org/x/image/draw"

	"github.com/Faultbox/blockworld/internal/world/block"
)

// CellPx is the edge length of one atlas cell in texels.
const CellPx = 16

// Size is the edge length of the atlas in texels.
const Size = block.AtlasCells * CellPx

// Procedural paints a stand-in atlas: every cell gets a stable colour with
// a little per-texel grain, and cells sampled with alpha testing get a
// lattice of clear texels.
func Procedural() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, Size, Size))
	cutout := cutoutCells()
	for v := 0; v < block.AtlasCells; v++ {
		for u := 0; u < block.AtlasCells; u++ {
			paintCell(img, u, v, cutout[[2]uint8{uint8(u), uint8(v)}])
		}
	}
	return img
}

func paintCell(img *image.RGBA, u, v int, cutout bool) {
	base := hash(uint32(v*block.AtlasCells + u))
	r, g, b := uint8(base), uint8(base>>8), uint8(base>>16)
	for y := 0; y < CellPx; y++ {
		for x := 0; x < CellPx; x++ {
			px, py := u*CellPx+x, v*CellPx+y
			grain := int(hash(uint32(py*Size+px))%32) - 16
			a := uint8(255)
			if cutout && (x+y)%3 == 0 {
				a = 0
			}
			img.SetRGBA(px, py, color.RGBA{shade(r, grain), shade(g, grain), shade(b, grain), a})
		}
	}
}

func shade(c uint8, d int) uint8 {
	v := int(c) + d
	switch {
	case v < 0:
		return 0
	case v > 255:
		return 255
	}
	return uint8(v)
}

func hash(x uint32) uint32 {
	x ^= x >> 16
	x *= 0x7feb352d
	x ^= x >> 15
	x *= 0x846ca68b
	x ^= x >> 16
	return x
}

// cutoutCells collects the cells some block face samples with alpha testing.
func cutoutCells() map[[2]uint8]bool {
	cells := make(map[[2]uint8]bool)
	for i := 1; i < block.NumTypes; i++ {
		t := block.Type(i)
		for _, d := range block.Axis {
			if a, ok := block.AppearanceOf(t, d); ok && a.Flag == block.FlagCutout {
				cells[a.Cell] = true
			}
		}
	}
	return cells
}

// Load reads an atlas image from path. Image files store the top row first
// while cell row 0 is the bottom of the atlas, so the image is flipped.
// Images of any size are rescaled to Size, and magenta texels become clear.
func Load(path string) (*image.RGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	src, format, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode atlas %s: %w", path, err)
	}
	if b := src.Bounds(); b.Dx() != b.Dy() {
		return nil, fmt.Errorf("atlas %s (%s) is %dx%d, want a square image", path, format, b.Dx(), b.Dy())
	}

	img := Fit(src)
	flipRows(img)
	ApplyMagentaKey(img)
	return img, nil
}

// Fit converts src to an RGBA image of Size x Size texels.
func Fit(src image.Image) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, Size, Size))
	if src.Bounds().Size() == dst.Bounds().Size() {
		draw.Draw(dst, dst.Bounds(), src, src.Bounds().Min, draw.Src)
		return dst
	}
	// Nearest neighbour keeps pixel-art cells crisp.
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}

func flipRows(img *image.RGBA) {
	h := img.Bounds().Dy()
	row := make([]byte, img.Stride)
	for y := 0; y < h/2; y++ {
		top := img.Pix[y*img.Stride : (y+1)*img.Stride]
		bottom := img.Pix[(h-1-y)*img.Stride : (h-y)*img.Stride]
		copy(row, top)
		copy(top, bottom)
		copy(bottom, row)
	}
}

// IsMagentaKey reports whether an RGB colour is the transparency key.
// The tolerance absorbs lossy encoders.
func IsMagentaKey(r, g, b uint8) bool {
	return r >= 250 && g <= 10 && b >= 250
}

// ApplyMagentaKey makes magenta texels transparent black in place so they
// do not bleed into neighbours when filtered.
func ApplyMagentaKey(img *image.RGBA) {
	for i := 0; i+3 < len(img.Pix); i += 4 {
		if IsMagentaKey(img.Pix[i], img.Pix[i+1], img.Pix[i+2]) {
			img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = 0, 0, 0, 0
		}
	}
}
