package config

import (
	"fmt"
	"io"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"

	"github.com/goliatone/go-snippets/pkg/mapdisplay"
)

// Config is the CLI configuration.
type Config struct {
	Map     MapConfig     `koanf:"map"`
	Render  RenderConfig  `koanf:"render"`
	Store   StoreConfig   `koanf:"store"`
	Logging LoggingConfig `koanf:"logging"`
}

// MapConfig holds the map snippet defaults.
type MapConfig struct {
	CoordsField   string `koanf:"coords_field" validate:"required"`
	Height        string `koanf:"height" validate:"required"`
	Width         string `koanf:"width" validate:"required"`
	TitleField    string `koanf:"title_field" validate:"required"`
	SubtitleField string `koanf:"subtitle_field" validate:"required"`
	Zoom          int    `koanf:"zoom" validate:"min=0,max=19"`
	Depth         int    `koanf:"depth" validate:"min=1,max=100"`
}

// RenderConfig selects the renderer and its presentation settings.
type RenderConfig struct {
	Renderer     string `koanf:"renderer"`
	Locale       string `koanf:"locale"`
	TemplatesDir string `koanf:"templates_dir"`
	Tiles        string `koanf:"tiles" validate:"omitempty,url"`
	Attribution  string `koanf:"attribution"`
}

// StoreConfig selects where resources are read from.
type StoreConfig struct {
	Driver  string `koanf:"driver" validate:"oneof=memory sqlite"`
	Path    string `koanf:"path" validate:"required_if=Driver sqlite"`
	Fixture string `koanf:"fixture"`
	BaseURL string `koanf:"base_url" validate:"omitempty,url"`
}

// LoggingConfig controls the zap logger.
type LoggingConfig struct {
	Level  string `koanf:"level" validate:"oneof=debug info warn error"`
	Format string `koanf:"format" validate:"oneof=json console"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Map: MapConfig{
			CoordsField:   mapdisplay.DefaultCoordsField,
			Height:        mapdisplay.DefaultHeight,
			Width:         mapdisplay.DefaultWidth,
			TitleField:    mapdisplay.DefaultTitleField,
			SubtitleField: mapdisplay.DefaultSubtitleField,
			Zoom:          mapdisplay.DefaultZoom,
			Depth:         mapdisplay.DefaultDepth,
		},
		Store: StoreConfig{
			Driver: "memory",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// FlagMappings maps CLI flag names to config keys.
var FlagMappings = map[string]string{
	"coords-field":   "map.coords_field",
	"height":         "map.height",
	"width":          "map.width",
	"title-field":    "map.title_field",
	"subtitle-field": "map.subtitle_field",
	"zoom":           "map.zoom",
	"depth":          "map.depth",
	"renderer":       "render.renderer",
	"locale":         "render.locale",
	"templates":      "render.templates_dir",
	"store":          "store.driver",
	"db":             "store.path",
	"fixture":        "store.fixture",
	"base-url":       "store.base_url",
	"log-level":      "logging.level",
	"log-format":     "logging.format",
}

// Load merges defaults, configPath, environment and flags, then validates.
func Load(configPath string, flags *pflag.FlagSet) (Config, error) {
	loader, err := load(configPath, flags)
	if err != nil {
		return Config{}, err
	}
	var cfg Config
	if err := loader.UnmarshalAndValidate("", &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Dump writes the merged configuration as YAML without validating it.
func Dump(w io.Writer, configPath string, flags *pflag.FlagSet) error {
	loader, err := load(configPath, flags)
	if err != nil {
		return err
	}
	return loader.DumpYAML(w)
}

func load(configPath string, flags *pflag.FlagSet) (*Loader, error) {
	loader := NewLoader(EnvPrefix)
	if err := loader.LoadWithDefaults(Defaults(), configPath); err != nil {
		return nil, err
	}
	if err := loader.LoadFlags(flags, FlagMappings); err != nil {
		return nil, fmt.Errorf("config: apply flags: %w", err)
	}
	return loader, nil
}

// MapOptions converts the map section into display options.
func (c Config) MapOptions() mapdisplay.Options {
	opts := mapdisplay.DefaultOptions()
	opts.CoordsField = c.Map.CoordsField
	opts.Height = c.Map.Height
	opts.Width = c.Map.Width
	opts.TitleField = c.Map.TitleField
	opts.SubtitleField = c.Map.SubtitleField
	opts.Zoom = c.Map.Zoom
	opts.Depth = c.Map.Depth
	opts.Renderer = c.Render.Renderer
	return opts
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func structValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(field reflect.StructField) string {
			name, _, _ := strings.Cut(field.Tag.Get("koanf"), ",")
			if name == "" || name == "-" {
				return field.Name
			}
			return name
		})
	})
	return validate
}
