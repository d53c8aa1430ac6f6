// Package biome provides the height-field collaborator used by block-data
// generation: per-column biome weights and a blended terrain height.
package biome

import (
	"math"

	"github.com/aquilax/go-perlin"
)

// Biome indexes one of the four blended biomes.
type Biome int

const (
	Grassland Biome = iota
	Desert
	Mountains
	Tundra

	NumBiomes = 4
)

func (b Biome) String() string {
	switch b {
	case Grassland:
		return "grassland"
	case Desert:
		return "desert"
	case Mountains:
		return "mountains"
	case Tundra:
		return "tundra"
	}
	return "unknown"
}

// Weights holds the blend factor of each biome at one column. A valid value
// sums to 1; the tuple is also passed through to vertices for shading.
type Weights [NumBiomes]float32

// Dominant returns the biome with the largest weight. Ties go to the lower
// index.
func (w Weights) Dominant() Biome {
	best := Grassland
	for b := Biome(1); b < NumBiomes; b++ {
		if w[b] > w[best] {
			best = b
		}
	}
	return best
}

// Sum returns the total of all weights.
func (w Weights) Sum() float32 {
	return w[0] + w[1] + w[2] + w[3]
}

// Field is the biome collaborator. Implementations must be pure: the same
// (x, z) always yields the same result, from any goroutine.
type Field interface {
	Weights(x, z int) Weights
	Height(w Weights, x, z int) int
}

// Climate anchors: each biome sits at a point in (temperature, humidity)
// space and its weight falls off with distance from it.
var anchors = [NumBiomes][2]float64{
	Grassland: {0.2, 0.3},
	Desert:    {0.8, -0.6},
	Mountains: {-0.2, -0.4},
	Tundra:    {-0.8, 0.5},
}

const (
	climateScale = 1.0 / 512
	falloff      = 6.0
)

// NoiseField is a Field backed by seeded Perlin noise.
type NoiseField struct {
	climate *perlin.Perlin
	terrain *perlin.Perlin
	detail  *perlin.Perlin
}

// NewNoiseField creates a deterministic field for seed.
func NewNoiseField(seed int64) *NoiseField {
	return &NoiseField{
		climate: perlin.NewPerlin(2, 2, 3, seed),
		terrain: perlin.NewPerlin(2, 2, 4, seed+1),
		detail:  perlin.NewPerlin(2, 2, 2, seed+2),
	}
}

// Weights returns the normalized biome blend at (x, z).
func (f *NoiseField) Weights(x, z int) Weights {
	fx, fz := float64(x)*climateScale, float64(z)*climateScale
	temp := clamp(f.climate.Noise2D(fx, fz)*2, -1, 1)
	humid := clamp(f.climate.Noise2D(fx+1000, fz-1000)*2, -1, 1)

	var raw [NumBiomes]float64
	var total float64
	for b, a := range anchors {
		dt, dh := temp-a[0], humid-a[1]
		raw[b] = math.Exp(-falloff * (dt*dt + dh*dh))
		total += raw[b]
	}

	var w Weights
	if total == 0 {
		w[Grassland] = 1
		return w
	}
	for b := range raw {
		w[b] = float32(raw[b] / total)
	}
	return w
}

// Height blends the per-biome heights at (x, z) by w.
func (f *NoiseField) Height(w Weights, x, z int) int {
	var h float64
	for b := Biome(0); b < NumBiomes; b++ {
		if w[b] == 0 {
			continue
		}
		h += float64(w[b]) * f.biomeHeight(b, float64(x), float64(z))
	}
	return int(math.Round(clamp(h, 1, 250)))
}

func (f *NoiseField) biomeHeight(b Biome, x, z float64) float64 {
	const base = 64.0
	switch b {
	case Grassland:
		// Rolling hills
		h1 := f.terrain.Noise2D(x*0.01, z*0.01) * 6
		h2 := f.detail.Noise2D(x*0.05, z*0.05) * 2
		return base + 2 + h1 + h2
	case Desert:
		// Low dunes
		h1 := f.terrain.Noise2D(x*0.015+400, z*0.015) * 4
		h2 := math.Sin(x*0.1) * math.Cos(z*0.07) * 1.5
		return base + 1 + h1 + h2
	case Mountains:
		h1 := math.Abs(f.terrain.Noise2D(x*0.006+300, z*0.006+300)) * 60
		h2 := f.terrain.Noise2D(x*0.02+350, z*0.02) * 12
		h3 := f.detail.Noise2D(x*0.08, z*0.08+350) * 3
		return base + 8 + h1 + h2 + h3
	case Tundra:
		h1 := f.terrain.Noise2D(x*0.008+500, z*0.008-500) * 5
		h2 := f.detail.Noise2D(x*0.04, z*0.04) * 1
		return base + 3 + h1 + h2
	}
	return base
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// Flat is a Field with a single biome and a constant height, used by tools
// and tests that need predictable terrain.
type Flat struct {
	Biome Biome
	Level int
}

func (f Flat) Weights(x, z int) Weights {
	var w Weights
	w[f.Biome] = 1
	return w
}

func (f Flat) Height(w Weights, x, z int) int {
	return f.Level
}
