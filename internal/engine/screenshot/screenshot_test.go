package screenshot

import (
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestFromPixelsFlips(t *testing.T) {
	// Two rows, bottom row red, top row blue.
	pixels := []byte{
		255, 0, 0, 255, 255, 0, 0, 255,
		0, 0, 255, 255, 0, 0, 255, 255,
	}
	img, err := FromPixels(pixels, 2, 2)
	if err != nil {
		t.Fatal(err)
	}
	if got := img.RGBAAt(0, 0); got != (color.RGBA{0, 0, 255, 255}) {
		t.Errorf("top-left = %v, want blue", got)
	}
	if got := img.RGBAAt(1, 1); got != (color.RGBA{255, 0, 0, 255}) {
		t.Errorf("bottom-right = %v, want red", got)
	}
}

func TestFromPixelsSizeMismatch(t *testing.T) {
	if _, err := FromPixels(make([]byte, 15), 2, 2); err == nil {
		t.Error("expected error for short pixel data")
	}
}

func TestSave(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "shots")
	c := New(dir, "blockworld")
	c.now = func() time.Time { return time.Date(2026, 3, 1, 12, 30, 0, 0, time.UTC) }

	name, err := c.Save(make([]byte, 4*3*2), 3, 2)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if want := filepath.Join(dir, "blockworld_2026-03-01_12-30-00.000.png"); name != want {
		t.Errorf("name = %s, want %s", name, want)
	}

	f, err := os.Open(name)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if cfg.Width != 3 || cfg.Height != 2 {
		t.Errorf("size = %dx%d, want 3x2", cfg.Width, cfg.Height)
	}
	if !strings.HasSuffix(name, ".png") {
		t.Errorf("name %s lacks .png", name)
	}
}
