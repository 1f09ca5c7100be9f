package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/kelseyhightower/envconfig"

	"github.com/inkboard/inkboard/internal/board"
)

type Config struct {
	Port           int     `envconfig:"PORT" default:"8080"`
	AssetDir       string  `envconfig:"ASSET_DIR" default:"./data/assets"`
	AllowedOrigins string  `envconfig:"ALLOWED_ORIGINS" default:"http://localhost:5173,http://localhost:3000"`
	LogLevel       string  `envconfig:"LOG_LEVEL" default:"info"`
	CanvasWidth    float64 `envconfig:"CANVAS_WIDTH" default:"800"`
	CanvasHeight   float64 `envconfig:"CANVAS_HEIGHT" default:"600"`
	DefaultColor   string  `envconfig:"DEFAULT_COLOR" default:"#000000"`
	HistoryLimit   int     `envconfig:"HISTORY_LIMIT" default:"0"` // 0 keeps every state
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if cfg.CanvasWidth <= 0 || cfg.CanvasHeight <= 0 {
		return nil, fmt.Errorf("config: canvas size %vx%v must be positive", cfg.CanvasWidth, cfg.CanvasHeight)
	}
	if cfg.HistoryLimit < 0 {
		return nil, fmt.Errorf("config: HISTORY_LIMIT %d must not be negative", cfg.HistoryLimit)
	}
	return &cfg, nil
}

// Origins splits AllowedOrigins on commas.
func (c *Config) Origins() []string {
	var out []string
	for _, o := range strings.Split(c.AllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

// Level parses LogLevel, falling back to info.
func (c *Config) Level() slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return l
}

// Board returns the settings each new board starts with.
func (c *Config) Board() board.Config {
	return board.Config{
		Width:        c.CanvasWidth,
		Height:       c.CanvasHeight,
		Color:        c.DefaultColor,
		HistoryLimit: c.HistoryLimit,
	}
}
