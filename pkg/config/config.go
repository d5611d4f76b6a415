// Package config loads render settings from defaults, TOML files, .env files
// and the environment.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/integrator"
	"github.com/df07/go-whitted-raytracer/pkg/output"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
)

// EnvPrefix prefixes every environment variable read by LoadEnv
const EnvPrefix = "RAYTRACER_"

// S3Config holds connection settings for s3:// uploads
type S3Config struct {
	Endpoint  string `toml:"endpoint"`
	Region    string `toml:"region"`
	AccessKey string `toml:"access_key"`
	SecretKey string `toml:"secret_key"`
}

// RenderConfig is the full set of user-facing render settings
type RenderConfig struct {
	Scene      string     `toml:"scene"`
	Width      int        `toml:"width"`
	Height     int        `toml:"height"`
	FOV        float64    `toml:"fov"` // radians
	MaxDepth   int        `toml:"max_depth"`
	FarPlane   float64    `toml:"far_plane"`
	Bias       float64    `toml:"bias"`
	Background [3]float64 `toml:"background"`
	TileSize   int        `toml:"tile_size"`
	NumWorkers int        `toml:"num_workers"`
	Output     string     `toml:"output"`
	Thumbnail  uint       `toml:"thumbnail"` // thumbnail width, 0 = none
	Upload     string     `toml:"upload"`    // s3://bucket/key or gs://bucket/key
	S3         S3Config   `toml:"s3"`
}

// Default returns the reference settings
func Default() RenderConfig {
	shading := integrator.DefaultWhittedConfig()
	image := renderer.DefaultRenderConfig()
	return RenderConfig{
		Scene:      "default",
		Width:      image.Width,
		Height:     image.Height,
		FOV:        image.FOV,
		MaxDepth:   shading.MaxDepth,
		FarPlane:   shading.Horizon,
		Bias:       shading.Bias,
		Background: [3]float64{shading.Background.X, shading.Background.Y, shading.Background.Z},
		TileSize:   image.TileSize,
		NumWorkers: image.NumWorkers,
		Output:     "render.ppm",
	}
}

// LoadFile overlays the settings in a TOML file onto cfg. Keys the file sets
// replace the current values; unknown keys are an error.
func LoadFile(path string, cfg *RenderConfig) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return fmt.Errorf("failed to load config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("config %s: unknown keys %v", path, undecoded)
	}
	return nil
}

// LoadEnv loads envFile into the process environment, then overlays every
// RAYTRACER_* variable onto cfg. Variables already set in the environment win
// over the file. An empty envFile loads ./.env when it exists.
func LoadEnv(envFile string, cfg *RenderConfig) error {
	if envFile == "" {
		_ = godotenv.Load()
	} else if err := godotenv.Load(envFile); err != nil {
		return fmt.Errorf("failed to load env file %s: %w", envFile, err)
	}
	return applyEnv(cfg, os.LookupEnv)
}

func applyEnv(cfg *RenderConfig, lookup func(string) (string, bool)) error {
	var errs []error
	str := func(name string, dst *string) {
		if v, ok := lookup(EnvPrefix + name); ok {
			*dst = v
		}
	}
	integer := func(name string, dst *int) {
		if v, ok := lookup(EnvPrefix + name); ok {
			n, err := strconv.Atoi(strings.TrimSpace(v))
			if err != nil {
				errs = append(errs, fmt.Errorf("%s%s: %w", EnvPrefix, name, err))
				return
			}
			*dst = n
		}
	}
	float := func(name string, dst *float64) {
		if v, ok := lookup(EnvPrefix + name); ok {
			f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s%s: %w", EnvPrefix, name, err))
				return
			}
			*dst = f
		}
	}

	str("SCENE", &cfg.Scene)
	integer("WIDTH", &cfg.Width)
	integer("HEIGHT", &cfg.Height)
	float("FOV", &cfg.FOV)
	integer("MAX_DEPTH", &cfg.MaxDepth)
	float("FAR_PLANE", &cfg.FarPlane)
	float("BIAS", &cfg.Bias)
	integer("TILE_SIZE", &cfg.TileSize)
	integer("WORKERS", &cfg.NumWorkers)
	str("OUTPUT", &cfg.Output)
	str("UPLOAD", &cfg.Upload)
	str("S3_ENDPOINT", &cfg.S3.Endpoint)
	str("S3_REGION", &cfg.S3.Region)
	str("S3_ACCESS_KEY", &cfg.S3.AccessKey)
	str("S3_SECRET_KEY", &cfg.S3.SecretKey)

	if v, ok := lookup(EnvPrefix + "THUMBNAIL"); ok {
		n, err := strconv.ParseUint(strings.TrimSpace(v), 10, 0)
		if err != nil {
			errs = append(errs, fmt.Errorf("%sTHUMBNAIL: %w", EnvPrefix, err))
		} else {
			cfg.Thumbnail = uint(n)
		}
	}

	if v, ok := lookup(EnvPrefix + "BACKGROUND"); ok {
		bg, err := parseColor(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%sBACKGROUND: %w", EnvPrefix, err))
		} else {
			cfg.Background = bg
		}
	}

	return errors.Join(errs...)
}

// parseColor parses "r,g,b"
func parseColor(s string) ([3]float64, error) {
	var c [3]float64
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return c, fmt.Errorf("expected r,g,b, got %q", s)
	}
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return c, err
		}
		c[i] = f
	}
	return c, nil
}

// Validate reports settings that cannot produce an image
func (c RenderConfig) Validate() error {
	var errs []error
	if c.Width <= 0 || c.Height <= 0 {
		errs = append(errs, fmt.Errorf("image size must be positive, got %dx%d", c.Width, c.Height))
	}
	if !(c.FOV > 0 && c.FOV < math.Pi) {
		errs = append(errs, fmt.Errorf("fov must be in (0, pi), got %g", c.FOV))
	}
	if c.MaxDepth < 0 {
		errs = append(errs, fmt.Errorf("max_depth must not be negative, got %d", c.MaxDepth))
	}
	if !(c.FarPlane > 0) {
		errs = append(errs, fmt.Errorf("far_plane must be positive, got %g", c.FarPlane))
	}
	if c.Bias < 0 {
		errs = append(errs, fmt.Errorf("bias must not be negative, got %g", c.Bias))
	}
	if c.Output != "" {
		if _, err := output.FormatFromPath(c.Output); err != nil {
			errs = append(errs, err)
		}
	}
	if c.Upload != "" {
		if _, err := output.ParseDestination(c.Upload); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Integrator returns the shading parameters
func (c RenderConfig) Integrator() integrator.WhittedConfig {
	return integrator.WhittedConfig{
		MaxDepth:   c.MaxDepth,
		Horizon:    c.FarPlane,
		Bias:       c.Bias,
		Background: core.NewVec3(c.Background[0], c.Background[1], c.Background[2]),
	}
}

// Render returns the image and scheduling parameters
func (c RenderConfig) Render() renderer.RenderConfig {
	return renderer.RenderConfig{
		Width:      c.Width,
		Height:     c.Height,
		FOV:        c.FOV,
		TileSize:   c.TileSize,
		NumWorkers: c.NumWorkers,
	}
}

// UploadConfig returns the S3 connection settings for uploads
func (c RenderConfig) UploadConfig() output.S3Config {
	return output.S3Config{
		Endpoint:  c.S3.Endpoint,
		Region:    c.S3.Region,
		AccessKey: c.S3.AccessKey,
		SecretKey: c.S3.SecretKey,
	}
}
