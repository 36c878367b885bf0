package config

import (
	"log/slog"
	"strings"

	"github.com/kelseyhightower/envconfig"

	"github.com/inamate/drawtools/internal/engine"
)

type Config struct {
	Port           int    `envconfig:"PORT" default:"8080"`
	DatabaseURL    string `envconfig:"DATABASE_URL"`
	DataDir        string `envconfig:"DATA_DIR" default:"./data/drawings"`
	SessionSecret  string `envconfig:"SESSION_SECRET" default:"dev-secret-change-in-production"`
	AllowedOrigins string `envconfig:"ALLOWED_ORIGINS" default:"localhost:5173,localhost:3000"`
	LogLevel       string `envconfig:"LOG_LEVEL" default:"info"`
	MDNSEnabled    bool   `envconfig:"MDNS_ENABLED" default:"false"`

	HitStrokeWidth     int          `envconfig:"HIT_STROKE_WIDTH" default:"7"`
	PolygonMinDistance int          `envconfig:"POLYGON_MIN_DISTANCE" default:"15"`
	DefaultColor       engine.Color `envconfig:"DEFAULT_COLOR" default:"#000000"`
	DefaultPenWidth    int          `envconfig:"DEFAULT_PEN_WIDTH" default:"1"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Origins splits AllowedOrigins into websocket origin patterns.
func (c *Config) Origins() []string {
	var out []string
	for o := range strings.SplitSeq(c.AllowedOrigins, ",") {
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

// Editor returns the options for new editing sessions.
func (c *Config) Editor() engine.Options {
	opts := engine.DefaultOptions()
	opts.HitWidth = c.HitStrokeWidth
	opts.PolygonMinDistance = c.PolygonMinDistance
	opts.Style = engine.Style{Color: c.DefaultColor, PenWidth: c.DefaultPenWidth}
	return opts
}
