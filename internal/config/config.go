package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"LocalCanvas/internal/gesture"
	"LocalCanvas/internal/history"
	"LocalCanvas/internal/persist"
	"LocalCanvas/internal/shape"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config is the full application configuration.
type Config struct {
	History  HistoryConfig  `mapstructure:"history" yaml:"history"`
	Gesture  GestureConfig  `mapstructure:"gesture" yaml:"gesture"`
	Canvas   CanvasConfig   `mapstructure:"canvas" yaml:"canvas"`
	Store    StoreConfig    `mapstructure:"store" yaml:"store"`
	Server   ServerConfig   `mapstructure:"server" yaml:"server"`
	Defaults DefaultsConfig `mapstructure:"defaults" yaml:"defaults"`
}

type HistoryConfig struct {
	Cap int `mapstructure:"cap" yaml:"cap"`
}

type GestureConfig struct {
	CloseRadius float64 `mapstructure:"close_radius" yaml:"close_radius"`
}

type CanvasConfig struct {
	Width  int `mapstructure:"width" yaml:"width"`
	Height int `mapstructure:"height" yaml:"height"`
}

type StoreConfig struct {
	Dir string `mapstructure:"dir" yaml:"dir"`
	Key string `mapstructure:"key" yaml:"key"`
}

type ServerConfig struct {
	Port int  `mapstructure:"port" yaml:"port"`
	MDNS bool `mapstructure:"mdns" yaml:"mdns"`
}

type DefaultsConfig struct {
	Color       string `mapstructure:"color" yaml:"color"`
	StrokeWidth int    `mapstructure:"stroke_width" yaml:"stroke_width"`
}

// DefaultPort is the port the canvas server listens on.
const DefaultPort = 8888

// DefaultStoreDir returns ~/.config/localcanvas.
func DefaultStoreDir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "localcanvas")
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		History:  HistoryConfig{Cap: history.DefaultCap},
		Gesture:  GestureConfig{CloseRadius: gesture.DefaultCloseRadius},
		Canvas:   CanvasConfig{Width: 500, Height: 500},
		Store:    StoreConfig{Dir: DefaultStoreDir(), Key: persist.DefaultKey},
		Server:   ServerConfig{Port: DefaultPort, MDNS: true},
		Defaults: DefaultsConfig{Color: shape.DefaultColor, StrokeWidth: shape.DefaultStrokeWidth},
	}
}

func setDefaults(v *viper.Viper) {
	d := Defaults()
	v.SetDefault("history.cap", d.History.Cap)
	v.SetDefault("gesture.close_radius", d.Gesture.CloseRadius)
	v.SetDefault("canvas.width", d.Canvas.Width)
	v.SetDefault("canvas.height", d.Canvas.Height)
	v.SetDefault("store.dir", d.Store.Dir)
	v.SetDefault("store.key", d.Store.Key)
	v.SetDefault("server.port", d.Server.Port)
	v.SetDefault("server.mdns", d.Server.MDNS)
	v.SetDefault("defaults.color", d.Defaults.Color)
	v.SetDefault("defaults.stroke_width", d.Defaults.StrokeWidth)
}

// Load reads the yaml config at path on top of the defaults. An empty path
// or a missing file yields the defaults. Environment variables prefixed
// with LOCALCANVAS_ override file values.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("localcanvas")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return Config{}, fmt.Errorf("reading config %s: %w", path, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	return cfg.normalize(), nil
}

// normalize pins out-of-range values back to something usable.
func (c Config) normalize() Config {
	d := Defaults()
	if c.History.Cap <= 0 {
		c.History.Cap = d.History.Cap
	}
	if c.History.Cap > history.MaxCap {
		c.History.Cap = history.MaxCap
	}
	if c.Gesture.CloseRadius <= 0 {
		c.Gesture.CloseRadius = d.Gesture.CloseRadius
	}
	if c.Canvas.Width <= 0 || c.Canvas.Height <= 0 {
		c.Canvas = d.Canvas
	}
	if c.Store.Key == "" {
		c.Store.Key = d.Store.Key
	}
	if !shape.InPalette(c.Defaults.Color) {
		c.Defaults.Color = d.Defaults.Color
	}
	c.Defaults.StrokeWidth = shape.ClampStrokeWidth(c.Defaults.StrokeWidth)
	return c
}

// WriteDefault writes the default configuration as yaml, creating parent
// directories.
func WriteDefault(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return err
	}
	data, err := yaml.Marshal(Defaults())
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
