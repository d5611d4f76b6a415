package config

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/integrator"
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Width != 1024 || cfg.Height != 768 {
		t.Errorf("Expected 1024x768, got %dx%d", cfg.Width, cfg.Height)
	}
	if cfg.FOV != math.Pi/2 {
		t.Errorf("Expected fov pi/2, got %f", cfg.FOV)
	}
	if cfg.Output != "render.ppm" {
		t.Errorf("Expected render.ppm, got %s", cfg.Output)
	}
	if cfg.Integrator() != integrator.DefaultWhittedConfig() {
		t.Errorf("Expected default shading parameters, got %+v", cfg.Integrator())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Expected defaults to validate, got %v", err)
	}
}

func TestLoadFile(t *testing.T) {
	path := writeTempFile(t, "render.toml", `
scene = "mirror"
width = 320
height = 240
background = [0.0, 0.0, 0.0]
output = "out.png"

[s3]
endpoint = "http://localhost:9000"
region = "us-east-1"
`)

	cfg := Default()
	if err := LoadFile(path, &cfg); err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}

	if cfg.Scene != "mirror" || cfg.Width != 320 || cfg.Height != 240 || cfg.Output != "out.png" {
		t.Errorf("Unexpected config %+v", cfg)
	}
	if cfg.Background != [3]float64{} {
		t.Errorf("Expected black background, got %v", cfg.Background)
	}
	if cfg.S3.Endpoint != "http://localhost:9000" || cfg.UploadConfig().Region != "us-east-1" {
		t.Errorf("Unexpected s3 settings %+v", cfg.S3)
	}
	// Keys absent from the file keep their defaults
	if cfg.MaxDepth != 2 || cfg.Bias != 0.001 || cfg.FarPlane != 1000 {
		t.Errorf("Expected untouched defaults, got %+v", cfg)
	}
}

func TestLoadFile_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		errText string
	}{
		{"unknown key", "widht = 10\n", "unknown keys"},
		{"wrong type", "width = \"wide\"\n", "failed to load"},
		{"syntax", "width = = 1\n", "failed to load"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			err := LoadFile(writeTempFile(t, "bad.toml", tt.content), &cfg)
			if err == nil || !strings.Contains(err.Error(), tt.errText) {
				t.Errorf("Expected error containing %q, got %v", tt.errText, err)
			}
		})
	}

	cfg := Default()
	if err := LoadFile(filepath.Join(t.TempDir(), "missing.toml"), &cfg); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"RAYTRACER_WIDTH":         "640",
		"RAYTRACER_FOV":           "1.2",
		"RAYTRACER_BACKGROUND":    "1, 0.5, 0",
		"RAYTRACER_THUMBNAIL":     "128",
		"RAYTRACER_UPLOAD":        "s3://renders/frame.ppm",
		"RAYTRACER_S3_ACCESS_KEY": "key",
		"WIDTH":                   "1",
	}
	lookup := func(name string) (string, bool) {
		v, ok := env[name]
		return v, ok
	}

	cfg := Default()
	if err := applyEnv(&cfg, lookup); err != nil {
		t.Fatalf("applyEnv failed: %v", err)
	}

	if cfg.Width != 640 || cfg.Height != 768 {
		t.Errorf("Expected 640x768, got %dx%d", cfg.Width, cfg.Height)
	}
	if cfg.FOV != 1.2 {
		t.Errorf("Expected fov 1.2, got %f", cfg.FOV)
	}
	if cfg.Integrator().Background != core.NewVec3(1, 0.5, 0) {
		t.Errorf("Unexpected background %v", cfg.Background)
	}
	if cfg.Thumbnail != 128 || cfg.Upload != "s3://renders/frame.ppm" || cfg.S3.AccessKey != "key" {
		t.Errorf("Unexpected config %+v", cfg)
	}
}

func TestApplyEnv_Errors(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"bad int", "RAYTRACER_WIDTH", "wide"},
		{"bad float", "RAYTRACER_BIAS", "small"},
		{"negative thumbnail", "RAYTRACER_THUMBNAIL", "-1"},
		{"short color", "RAYTRACER_BACKGROUND", "0.1,0.2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			err := applyEnv(&cfg, func(name string) (string, bool) {
				return tt.value, name == tt.key
			})
			if err == nil || !strings.Contains(err.Error(), tt.key) {
				t.Errorf("Expected error naming %s, got %v", tt.key, err)
			}
		})
	}
}

func TestLoadEnv_Precedence(t *testing.T) {
	envFile := writeTempFile(t, ".env", "RAYTRACER_TILE_SIZE=32\nRAYTRACER_HEIGHT=100\n")
	t.Setenv("RAYTRACER_HEIGHT", "200")
	t.Cleanup(func() { os.Unsetenv("RAYTRACER_TILE_SIZE") })

	cfg := Default()
	if err := LoadEnv(envFile, &cfg); err != nil {
		t.Fatalf("LoadEnv failed: %v", err)
	}

	if cfg.TileSize != 32 {
		t.Errorf("Expected tile size 32 from the env file, got %d", cfg.TileSize)
	}
	if cfg.Height != 200 {
		t.Errorf("Expected the process environment to win, got height %d", cfg.Height)
	}
}

func TestLoadEnv_MissingFile(t *testing.T) {
	cfg := Default()
	if err := LoadEnv(filepath.Join(t.TempDir(), "missing.env"), &cfg); err == nil {
		t.Error("Expected error for an explicit missing env file")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*RenderConfig)
	}{
		{"zero width", func(c *RenderConfig) { c.Width = 0 }},
		{"negative height", func(c *RenderConfig) { c.Height = -1 }},
		{"zero fov", func(c *RenderConfig) { c.FOV = 0 }},
		{"fov of pi", func(c *RenderConfig) { c.FOV = math.Pi }},
		{"negative depth", func(c *RenderConfig) { c.MaxDepth = -1 }},
		{"zero far plane", func(c *RenderConfig) { c.FarPlane = 0 }},
		{"negative bias", func(c *RenderConfig) { c.Bias = -0.001 }},
		{"unknown output format", func(c *RenderConfig) { c.Output = "render.gif" }},
		{"bad upload", func(c *RenderConfig) { c.Upload = "ftp://x/y" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Expected validation error")
			}
		})
	}
}

func TestRender(t *testing.T) {
	cfg := Default()
	cfg.Width, cfg.NumWorkers, cfg.TileSize = 200, 3, 16

	rc := cfg.Render()
	if rc.Width != 200 || rc.Height != 768 || rc.NumWorkers != 3 || rc.TileSize != 16 || rc.FOV != cfg.FOV {
		t.Errorf("Unexpected render config %+v", rc)
	}
}
