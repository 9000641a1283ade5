package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config holds all configurable paths and render settings for a run.
type Config struct {
	// Paths
	PropertiesFile string `mapstructure:"properties_json"`
	ShapeDir       string `mapstructure:"shape_dir"`
	OutputImageDir string `mapstructure:"output_image_dir"`
	OutputSceneDir string `mapstructure:"output_scene_dir"`
	MasksDir       string `mapstructure:"masks_dir"`
	CaptionFile    string `mapstructure:"caption_tables_json"`
	FilenamePrefix string `mapstructure:"filename_prefix"`

	// Render settings
	Width       int    `mapstructure:"width"`
	Height      int    `mapstructure:"height"`
	ImageFormat string `mapstructure:"image_format"`
	Supersample int    `mapstructure:"supersample"`

	// Fixed camera pivot on the ground plane; only height and angles vary
	// per sampled configuration.
	CameraX float64 `mapstructure:"camera_x"`
	CameraY float64 `mapstructure:"camera_y"`

	LogLevel string `mapstructure:"log_level"`
}

// Load reads the JSON config file at path and returns a Config with defaults
// applied for every unset key. An empty path returns pure defaults.
func Load(path string) (Config, error) {
	v := viper.New()

	v.SetDefault("properties_json", "data/properties.json")
	v.SetDefault("shape_dir", "data/shapes")
	v.SetDefault("output_image_dir", "output/images")
	v.SetDefault("output_scene_dir", "output/scenes")
	v.SetDefault("masks_dir", "output/masks")
	v.SetDefault("caption_tables_json", "")
	v.SetDefault("filename_prefix", "spatial")

	v.SetDefault("width", 512)
	v.SetDefault("height", 512)
	v.SetDefault("image_format", "png")
	v.SetDefault("supersample", 2)

	v.SetDefault("camera_x", 6.0)
	v.SetDefault("camera_y", -6.0)

	v.SetDefault("log_level", "info")

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("json")
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("image dimensions must be positive (%dx%d)", c.Width, c.Height)
	}
	if c.Supersample < 1 {
		return fmt.Errorf("supersample must be >= 1, got %d", c.Supersample)
	}
	switch c.ImageFormat {
	case "png", "webp":
	default:
		return fmt.Errorf("unknown image format %q (want png or webp)", c.ImageFormat)
	}
	return nil
}

// ImageExt returns the file extension for the configured image format.
func (c Config) ImageExt() string {
	return "." + c.ImageFormat
}
