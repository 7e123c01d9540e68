// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/pdiddy/pdf2pptx/pkg/types"
)

var envKeyReplacer = strings.NewReplacer(".", "_")

// setDefaults registers the default of every config key. Canvas keys have
// no default: zero means the built-in 16:9 canvas.
func setDefaults() {
	viper.SetDefault("dpi", types.DefaultDPI)
	viper.SetDefault("backend", string(types.BackendMuPDF))
	viper.SetDefault("workspace.root", "")
	viper.SetDefault("history.enabled", true)
	viper.SetDefault("history.max_results", 20)
	if dir := configDir(); dir != "" {
		viper.SetDefault("history.db", filepath.Join(dir, "history.db"))
	}
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", "console")
}

func conversionConfig() types.ConversionConfig {
	return types.ConversionConfig{
		Backend: types.RasterBackend(viper.GetString("backend")),
		DPI:     viper.GetInt("dpi"),
		Canvas: types.CanvasConfig{
			Width:  viper.GetFloat64("canvas.width"),
			Height: viper.GetFloat64("canvas.height"),
		},
		WorkspaceRoot: viper.GetString("workspace.root"),
	}
}

func historyConfig() types.HistoryConfig {
	return types.HistoryConfig{
		Enabled:    viper.GetBool("history.enabled"),
		DB:         viper.GetString("history.db"),
		MaxResults: viper.GetInt("history.max_results"),
	}
}

func logConfig() types.LogConfig {
	return types.LogConfig{
		Level:  viper.GetString("log.level"),
		Format: viper.GetString("log.format"),
	}
}

// resolveCanvas turns the configured inch pair into a canvas. Both zero
// selects the default; setting only one of the pair is rejected.
func resolveCanvas(c types.CanvasConfig) (types.Canvas, error) {
	switch {
	case c.Width == 0 && c.Height == 0:
		return types.DefaultCanvas(), nil
	case c.Width == 0 || c.Height == 0:
		return types.Canvas{}, fmt.Errorf("%w: canvas width and height must be set together (got %gx%g in)",
			types.ErrInvalidParameter, c.Width, c.Height)
	default:
		return types.CanvasFromInches(c.Width, c.Height)
	}
}

// newLogger builds the CLI logger writing to w.
func newLogger(w io.Writer, cfg types.LogConfig) (zerolog.Logger, error) {
	level := zerolog.InfoLevel
	if cfg.Level != "" {
		l, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
		if err != nil {
			return zerolog.Nop(), fmt.Errorf("%w: log level %q", types.ErrInvalidParameter, cfg.Level)
		}
		level = l
	}

	var out io.Writer
	switch strings.ToLower(cfg.Format) {
	case "", "console":
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	case "json":
		out = w
	default:
		return zerolog.Nop(), fmt.Errorf("%w: log format %q (want console or json)", types.ErrInvalidParameter, cfg.Format)
	}
	return zerolog.New(out).Level(level).With().Timestamp().Logger(), nil
}

func isAny(err error, targets ...error) bool {
	for _, t := range targets {
		if errors.Is(err, t) {
			return true
		}
	}
	return false
}
