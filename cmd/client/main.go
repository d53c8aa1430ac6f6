// Package main is the entry point for the Blockworld client.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	// BMP atlas decoding.
	_ "golang.org/x/image/bmp"

	"github.com/Faultbox/blockworld/internal/config"
	"github.com/Faultbox/blockworld/internal/game"
	"github.com/Faultbox/blockworld/internal/logger"
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== Blockworld ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	if config.SaveRequested() {
		if err := cfg.Save(); err != nil {
			logger.Error("failed to save config", zap.Error(err))
			os.Exit(1)
		}
		logger.Info("config saved", zap.String("path", config.SavePath()))
	}

	g, err := game.New(cfg)
	if err != nil {
		logger.Error("failed to create client", zap.Error(err))
		os.Exit(1)
	}
	defer g.Close()

	if err := g.Run(); err != nil {
		logger.Error("client error", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("client closed normally")
}
