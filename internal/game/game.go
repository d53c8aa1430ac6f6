// Package game implements the client loop: it owns the window, the GL
// renderer and the streaming scheduler, and runs them all on the main
// goroutine.
package game

import (
	"fmt"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/blockworld/internal/config"
	"github.com/Faultbox/blockworld/internal/engine/camera"
	"github.com/Faultbox/blockworld/internal/engine/input"
	"github.com/Faultbox/blockworld/internal/engine/renderer"
	"github.com/Faultbox/blockworld/internal/engine/screenshot"
	"github.com/Faultbox/blockworld/internal/engine/window"
	"github.com/Faultbox/blockworld/internal/logger"
	"github.com/Faultbox/blockworld/internal/stream"
	"github.com/Faultbox/blockworld/internal/world/biome"
)

const title = "Blockworld"

// Game is the main client instance.
type Game struct {
	cfg     *config.Config
	running bool
	log     *zap.Logger

	window    *window.Window
	renderer  *renderer.Renderer
	input     *input.Input
	camera    *camera.FollowCamera
	viewer    *Autopilot
	scheduler *stream.Scheduler
	steps     *stepper
	shots     *screenshot.Capture
}

// streamConfig maps the file settings onto the scheduler.
func streamConfig(cfg *config.Config) stream.Config {
	return stream.Config{
		Radius:       cfg.Stream.RadiusZones,
		Workers:      cfg.Stream.Workers,
		MaxRetries:   cfg.Stream.MaxRetries,
		ResultBuffer: cfg.Stream.ResultBuffer,
		Seed:         cfg.World.Seed,
		SeaLevel:     cfg.World.SeaLevel,
	}
}

// New creates a new client instance.
func New(cfg *config.Config) (*Game, error) {
	g := &Game{
		cfg: cfg,
		log: logger.Named("game"),
	}
	g.log.Info("initializing",
		zap.Int("width", cfg.Graphics.Width),
		zap.Int("height", cfg.Graphics.Height),
		zap.Int64("seed", cfg.World.Seed),
		zap.Int("radius", cfg.Stream.RadiusZones),
	)

	// Create window (this also creates OpenGL context)
	var err error
	g.window, err = window.New(window.Config{
		Title:      title,
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// Create renderer (AFTER window, since OpenGL context must exist)
	width, height := g.window.GetSize()
	g.renderer, err = renderer.New(renderer.Config{
		Width:     width,
		Height:    height,
		FarPlane:  cfg.Graphics.FarPlane,
		AtlasPath: cfg.Graphics.AtlasPath,

		SunAzimuth:   cfg.Graphics.SunAzimuth,
		SunElevation: cfg.Graphics.SunElevation,
	})
	if err != nil {
		g.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	g.input = input.New()

	g.camera = camera.NewFollowCamera()
	g.camera.FOV = cfg.Graphics.FOV
	g.camera.Far = cfg.Graphics.FarPlane

	v := cfg.Viewer
	g.viewer = NewAutopilot(v.StartX, v.StartZ, v.Height, v.FlySpeed, v.HeadingDeg)

	field := biome.NewNoiseField(cfg.World.Seed)
	g.scheduler = stream.New(streamConfig(cfg), field, g.renderer)
	g.steps = newStepper(cfg.Stream.TickInterval, 4)
	g.shots = screenshot.New(cfg.Graphics.ScreenshotDir, "blockworld")

	g.log.Info("initialized")
	return g, nil
}

// Run starts the main loop.
func (g *Game) Run() error {
	g.running = true

	lastTime := time.Now()
	frameCount := 0
	statsTimer := time.Now()

	g.log.Info("starting loop")
	// The first tick dispatches the zones around the start position.
	g.scheduler.Tick(g.viewer.Position())

	for g.running {
		now := time.Now()
		elapsed := now.Sub(lastTime)
		lastTime = now

		// 1. Process input
		if g.input.Update() {
			g.running = false
			break
		}
		for _, event := range g.input.Events() {
			if event.Type == input.EventWindowResize {
				g.renderer.Resize(event.Width, event.Height)
			}
		}
		g.handleKeys()

		// 2. Move the viewer and stream at a fixed cadence
		g.viewer.Advance(elapsed.Seconds())
		for n := g.steps.Advance(elapsed); n > 0; n-- {
			g.scheduler.Tick(g.viewer.Position())
		}

		// 3. Render
		g.render()

		// 4. Present (swap buffers)
		g.window.SwapBuffers()

		frameCount++
		if time.Since(statsTimer) >= time.Second {
			g.reportStats(frameCount)
			frameCount = 0
			statsTimer = time.Now()
		}
	}

	return nil
}

func (g *Game) handleKeys() {
	if g.input.IsKeyPressed(sdl.SCANCODE_F3) {
		g.cfg.Graphics.ShowStats = !g.cfg.Graphics.ShowStats
		if !g.cfg.Graphics.ShowStats {
			g.window.SetTitle(title)
		}
	}
	if g.input.IsKeyPressed(sdl.SCANCODE_F5) {
		p := g.viewer.Position()
		if x, y, z, ok := digBelow(g.scheduler, p); ok {
			g.log.Info("digging", zap.Int("x", x), zap.Int("y", y), zap.Int("z", z))
		}
	}
	if g.input.IsKeyPressed(sdl.SCANCODE_F12) {
		// Redraw so the back buffer holds a complete frame.
		g.render()
		pixels, w, h := g.renderer.ReadPixels()
		name, err := g.shots.Save(pixels, w, h)
		if err != nil {
			g.log.Warn("screenshot failed", zap.Error(err))
			return
		}
		g.log.Info("screenshot saved", zap.String("file", name))
	}
}

func (g *Game) render() {
	target := g.viewer.Position()
	g.camera.Yaw = g.viewer.Heading()
	width, height := g.window.GetSize()

	g.renderer.Begin()
	g.renderer.Draw(g.camera.ViewProjection(target, width, height), g.camera.Position(target))
	g.renderer.End()
}

func (g *Game) reportStats(fps int) {
	st := g.scheduler.Stats()
	fs := g.renderer.Stats()
	g.log.Debug("stats",
		zap.Int("fps", fps),
		zap.Int("chunks", st.Chunks),
		zap.Int("resident", st.Resident),
		zap.Int("jobs", st.ActiveJobs),
		zap.Int("draw_calls", fs.DrawCalls),
		zap.Int("failures", st.Failures),
	)
	if g.cfg.Graphics.ShowStats {
		p := g.viewer.Position()
		g.window.SetTitle(fmt.Sprintf("%s | %d fps | %d/%d chunks | jobs %d | (%.0f, %.0f)",
			title, fps, st.Resident, st.Chunks, st.ActiveJobs, p.X(), p.Z()))
	}
}

// Close cleans up client resources. Workers stop before GPU objects are
// freed.
func (g *Game) Close() {
	g.log.Info("closing")

	if g.scheduler != nil {
		g.scheduler.Close()
	}
	if g.renderer != nil {
		g.renderer.Close()
	}
	if g.window != nil {
		g.window.Close()
	}
}
