// Package config handles client configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"time"
)

// Config holds all client settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	World    WorldConfig    `yaml:"world"`
	Stream   StreamConfig   `yaml:"stream"`
	Viewer   ViewerConfig   `yaml:"viewer"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width      int     `yaml:"width"`
	Height     int     `yaml:"height"`
	Fullscreen bool    `yaml:"fullscreen"`
	VSync      bool    `yaml:"vsync"`
	FOV        float32 `yaml:"fov"`
	FarPlane   float32 `yaml:"far_plane"`
	ShowStats  bool    `yaml:"show_stats"`
	AtlasPath  string  `yaml:"atlas_path"` // empty uses the procedural atlas

	SunAzimuth    float32 `yaml:"sun_azimuth"`   // degrees, 0 is +Z
	SunElevation  float32 `yaml:"sun_elevation"` // degrees above the horizon
	ScreenshotDir string  `yaml:"screenshot_dir"`
}

// WorldConfig holds terrain generation settings.
type WorldConfig struct {
	Seed     int64 `yaml:"seed"`
	SeaLevel int   `yaml:"sea_level"`
}

// StreamConfig tunes the background streaming of zones.
type StreamConfig struct {
	RadiusZones  int           `yaml:"radius_zones"`
	TickInterval time.Duration `yaml:"tick_interval"`
	Workers      int           `yaml:"workers"`
	MaxRetries   int           `yaml:"max_retries"`
	ResultBuffer int           `yaml:"result_buffer"`
}

// ViewerConfig describes the automatic fly-through.
type ViewerConfig struct {
	StartX     float32 `yaml:"start_x"`
	StartZ     float32 `yaml:"start_z"`
	Height     float32 `yaml:"height"`
	FlySpeed   float32 `yaml:"fly_speed"` // blocks per second
	HeadingDeg float32 `yaml:"heading_deg"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
			FOV:        70,
			FarPlane:   512,

			SunAzimuth:    35,
			SunElevation:  60,
			ScreenshotDir: "screenshots",
		},
		World: WorldConfig{
			Seed:     1,
			SeaLevel: 62,
		},
		Stream: StreamConfig{
			RadiusZones:  3,
			TickInterval: 50 * time.Millisecond,
			Workers:      4,
			MaxRetries:   3,
			ResultBuffer: 64,
		},
		Viewer: ViewerConfig{
			StartX:     0,
			StartZ:     0,
			Height:     110,
			FlySpeed:   12,
			HeadingDeg: 30,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// ErrInvalid is returned by Validate for settings the client cannot run with.
var ErrInvalid = errors.New("invalid config")

// Validate rejects impossible values.
func (c *Config) Validate() error {
	switch {
	case c.Graphics.Width <= 0 || c.Graphics.Height <= 0:
		return fmt.Errorf("%w: window size %dx%d", ErrInvalid, c.Graphics.Width, c.Graphics.Height)
	case c.Graphics.FOV <= 0 || c.Graphics.FOV >= 180:
		return fmt.Errorf("%w: fov %.1f", ErrInvalid, c.Graphics.FOV)
	case c.World.SeaLevel < 1 || c.World.SeaLevel > 254:
		return fmt.Errorf("%w: sea_level %d", ErrInvalid, c.World.SeaLevel)
	case c.Stream.RadiusZones < 0:
		return fmt.Errorf("%w: radius_zones %d", ErrInvalid, c.Stream.RadiusZones)
	case c.Stream.TickInterval <= 0:
		return fmt.Errorf("%w: tick_interval %v", ErrInvalid, c.Stream.TickInterval)
	case c.Stream.Workers < 1:
		return fmt.Errorf("%w: workers %d", ErrInvalid, c.Stream.Workers)
	case c.Stream.MaxRetries < 0:
		return fmt.Errorf("%w: max_retries %d", ErrInvalid, c.Stream.MaxRetries)
	case c.Stream.ResultBuffer < 1:
		return fmt.Errorf("%w: result_buffer %d", ErrInvalid, c.Stream.ResultBuffer)
	case c.Viewer.Height < 0 || c.Viewer.Height > 255:
		return fmt.Errorf("%w: viewer height %.1f", ErrInvalid, c.Viewer.Height)
	}
	return nil
}
