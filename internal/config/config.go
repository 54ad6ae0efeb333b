package config

import (
	_ "embed"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/mholecek/location-scout/internal/report"
)

//go:embed defaults.yaml
var defaultsYAML []byte

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Storage  StorageConfig
	Geocode  GeocodeConfig
	Render   RenderConfig
	Defaults DefaultsConfig
}

type ServerConfig struct {
	Host          string
	Port          int
	APIToken      string // bearer token for the private API
	ShareSecret   string // signs public proposal share tokens
	PublicBaseURL string // public origin for share links (e.g. https://scout.example.com)
}

type DatabaseConfig struct {
	URL      string // PostgreSQL connection URL
	MaxConns int    // pool size (default 10)
}

type StorageConfig struct {
	Dir string // directory for uploaded photo files
}

type GeocodeConfig struct {
	URL       string // Nominatim-compatible base URL; empty disables geocoding
	UserAgent string
}

type RenderConfig struct {
	URL string // headless renderer base URL; empty disables page rendering
}

// DefaultsConfig is parsed from the embedded defaults.yaml.
type DefaultsConfig struct {
	GoldenHour struct {
		OffsetMinutes int `yaml:"offset_minutes"`
	} `yaml:"golden_hour"`
	Privacy struct {
		ObfuscationRadiusM float64 `yaml:"obfuscation_radius_m"`
	} `yaml:"privacy"`
	Export struct {
		Presets map[string]ExportPreset `yaml:"presets"`
	} `yaml:"export"`
}

// ExportPreset is one named export configuration.
type ExportPreset struct {
	MarginMM            float64 `yaml:"margin_mm"`
	ImageColWidthMM     float64 `yaml:"image_col_width_mm"`
	ImageColMaxHeightMM float64 `yaml:"image_col_max_height_mm"`
	CompressImages      bool    `yaml:"compress_images"`
	CorrectOrientation  bool    `yaml:"correct_orientation"`
	MaxImagePixelWidth  int     `yaml:"max_image_pixel_width"`
	JPEGQuality         int     `yaml:"jpeg_quality"`
}

// envInt reads an environment variable and parses it as a positive integer.
// Returns the default value if the env var is unset, empty, or invalid.
func envInt(key string, defaultVal int) int {
	s := os.Getenv(key)
	if s == "" {
		return defaultVal
	}
	if n, err := strconv.Atoi(s); err == nil && n > 0 {
		return n
	}
	return defaultVal
}

func envString(key, defaultVal string) string {
	if s := os.Getenv(key); s != "" {
		return s
	}
	return defaultVal
}

func Load() *Config {
	var defaults DefaultsConfig
	if err := yaml.Unmarshal(defaultsYAML, &defaults); err != nil {
		// Embedded file, cannot fail in practice.
		panic("failed to unmarshal embedded defaults.yaml: " + err.Error())
	}

	return &Config{
		Server: ServerConfig{
			Host:          envString("WEB_HOST", "0.0.0.0"),
			Port:          envInt("WEB_PORT", 8080),
			APIToken:      os.Getenv("API_TOKEN"),
			ShareSecret:   os.Getenv("SHARE_SECRET"),
			PublicBaseURL: os.Getenv("PUBLIC_BASE_URL"),
		},
		Database: DatabaseConfig{
			URL:      os.Getenv("DATABASE_URL"),
			MaxConns: envInt("DATABASE_MAX_CONNS", 10),
		},
		Storage: StorageConfig{
			Dir: envString("STORAGE_DIR", "data/photos"),
		},
		Geocode: GeocodeConfig{
			URL:       os.Getenv("GEOCODE_URL"),
			UserAgent: envString("GEOCODE_USER_AGENT", "location-scout"),
		},
		Render: RenderConfig{
			URL: os.Getenv("RENDER_URL"),
		},
		Defaults: defaults,
	}
}

// GoldenHourWindow returns the configured golden-hour offset duration.
func (c *Config) GoldenHourWindow() time.Duration {
	minutes := c.Defaults.GoldenHour.OffsetMinutes
	if minutes <= 0 {
		minutes = 30
	}
	return time.Duration(minutes) * time.Minute
}

// ExportOptions resolves a named export preset into render options, falling
// back to the standard defaults for unknown names.
func (c *Config) ExportOptions(preset string) report.RenderOptions {
	opts := report.DefaultRenderOptions()
	p, ok := c.Defaults.Export.Presets[preset]
	if !ok {
		return opts
	}
	if p.MarginMM > 0 {
		opts.MarginMM = p.MarginMM
	}
	if p.ImageColWidthMM > 0 {
		opts.ImageColWidthMM = p.ImageColWidthMM
	}
	if p.ImageColMaxHeightMM > 0 {
		opts.ImageColMaxHeightMM = p.ImageColMaxHeightMM
	}
	opts.CompressImages = p.CompressImages
	opts.CorrectOrientation = p.CorrectOrientation
	opts.MaxImagePixelWidth = p.MaxImagePixelWidth
	if p.JPEGQuality > 0 {
		opts.JPEGQuality = p.JPEGQuality
	}
	return opts
}
