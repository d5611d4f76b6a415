package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"os/signal"
	"path/filepath"
	"runtime/pprof"

	"github.com/df07/go-whitted-raytracer/pkg/config"
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/integrator"
	"github.com/df07/go-whitted-raytracer/pkg/output"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// options holds the parsed command line
type options struct {
	cfg        config.RenderConfig
	cpuProfile string
	dumpScene  bool
	list       bool
	help       bool
}

func main() {
	opts, err := parseOptions(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	if opts.help {
		printHelp(os.Stdout)
		return
	}

	if opts.list {
		if err := listScenes(os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if opts.dumpScene {
		if err := dumpScene(os.Stdout, opts.cfg.Scene); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if opts.cpuProfile != "" {
		f, err := os.Create(opts.cpuProfile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating CPU profile: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			fmt.Fprintf(os.Stderr, "Error starting CPU profile: %v\n", err)
			os.Exit(1)
		}
		defer pprof.StopCPUProfile()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, opts.cfg, renderer.NewDefaultLogger()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		pprof.StopCPUProfile()
		os.Exit(1)
	}
}

// flagValues holds the raw command line flags
type flagValues struct {
	configFile, envFile string
	sceneName           string
	outputPath          string
	width, height       int
	fovDegrees          float64
	maxDepth            int
	workers             int
	tileSize            int
	thumbnail           uint
	upload              string
	cpuProfile          string
	dumpScene           bool
	list, help          bool
}

func defineFlags(fs *flag.FlagSet) *flagValues {
	v := &flagValues{}
	fs.StringVar(&v.configFile, "config", "", "TOML render settings file")
	fs.StringVar(&v.envFile, "env", "", "Environment file (default: ./.env when present)")
	fs.StringVar(&v.sceneName, "scene", "default", "Built-in scene name, scene file name in scenes/, or path to a .toml scene")
	fs.StringVar(&v.outputPath, "o", "render.ppm", "Output file (.ppm, .png, .bmp, .tif)")
	fs.IntVar(&v.width, "width", 1024, "Image width in pixels")
	fs.IntVar(&v.height, "height", 768, "Image height in pixels")
	fs.Float64Var(&v.fovDegrees, "fov", 90, "Field of view in degrees")
	fs.IntVar(&v.maxDepth, "max-depth", 2, "Maximum reflection depth")
	fs.IntVar(&v.workers, "workers", 0, "Number of parallel workers (0 = auto-detect CPU count)")
	fs.IntVar(&v.tileSize, "tile-size", 64, "Tile size in pixels")
	fs.UintVar(&v.thumbnail, "thumbnail", 0, "Also write a thumbnail of this width")
	fs.StringVar(&v.upload, "upload", "", "Upload the output to s3://bucket/key or gs://bucket/key")
	fs.StringVar(&v.cpuProfile, "cpuprofile", "", "Write CPU profile to file")
	fs.BoolVar(&v.dumpScene, "dump-scene", false, "Print the selected scene as TOML and exit")
	fs.BoolVar(&v.list, "list", false, "List available scenes")
	fs.BoolVar(&v.help, "help", false, "Show help information")
	return v
}

// parseOptions builds the render configuration. Later sources override
// earlier ones: defaults, -config file, .env file and RAYTRACER_* variables,
// then flags given on the command line.
func parseOptions(args []string, errOut io.Writer) (options, error) {
	fs := flag.NewFlagSet("raytracer", flag.ContinueOnError)
	fs.SetOutput(errOut)
	v := defineFlags(fs)

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if fs.NArg() > 0 {
		return options{}, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	opts := options{cpuProfile: v.cpuProfile, dumpScene: v.dumpScene, list: v.list, help: v.help}
	if opts.help || opts.list {
		return opts, nil
	}

	cfg := config.Default()
	if v.configFile != "" {
		if err := config.LoadFile(v.configFile, &cfg); err != nil {
			return opts, err
		}
	}
	if err := config.LoadEnv(v.envFile, &cfg); err != nil {
		return opts, err
	}

	// Only flags given explicitly override the loaded settings
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "scene":
			cfg.Scene = v.sceneName
		case "o":
			cfg.Output = v.outputPath
		case "width":
			cfg.Width = v.width
		case "height":
			cfg.Height = v.height
		case "fov":
			cfg.FOV = v.fovDegrees * math.Pi / 180
		case "max-depth":
			cfg.MaxDepth = v.maxDepth
		case "workers":
			cfg.NumWorkers = v.workers
		case "tile-size":
			cfg.TileSize = v.tileSize
		case "thumbnail":
			cfg.Thumbnail = v.thumbnail
		case "upload":
			cfg.Upload = v.upload
		}
	})

	if err := cfg.Validate(); err != nil {
		return opts, fmt.Errorf("invalid configuration: %w", err)
	}
	opts.cfg = cfg
	return opts, nil
}

// createScene resolves a scene by built-in name or scene file
func createScene(name string) (*scene.Scene, error) {
	return scene.Create(name)
}

// run renders the configured scene and writes, and optionally uploads, the
// result
func run(ctx context.Context, cfg config.RenderConfig, logger core.Logger) error {
	s, err := createScene(cfg.Scene)
	if err != nil {
		return fmt.Errorf("failed to create scene: %w", err)
	}
	logger.Printf("Using %s scene (%d spheres, %d lights)\n", s.Name, s.GetPrimitiveCount(), len(s.Lights))

	whitted := integrator.NewWhittedIntegrator(cfg.Integrator())
	raytracer := renderer.NewRaytracer(s, whitted, cfg.Render(), logger)

	fb, stats, err := raytracer.Render(ctx)
	if err != nil {
		return fmt.Errorf("render failed: %w", err)
	}
	logger.Printf("Rendered %d pixels in %d tiles, slowest tile %v\n", stats.TotalPixels, stats.TotalTiles, stats.SlowestTile)

	if dir := filepath.Dir(cfg.Output); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := output.WriteFile(cfg.Output, fb); err != nil {
		return err
	}
	logger.Printf("Render saved as %s\n", cfg.Output)

	if cfg.Thumbnail > 0 {
		thumbPath := output.ThumbnailPath(cfg.Output)
		if err := output.WriteImageFile(thumbPath, output.Thumbnail(output.ToImage(fb), cfg.Thumbnail)); err != nil {
			return err
		}
		logger.Printf("Thumbnail saved as %s\n", thumbPath)
	}

	if cfg.Upload != "" {
		format, err := output.FormatFromPath(cfg.Output)
		if err != nil {
			return err
		}
		var buf bytes.Buffer
		if err := output.Encode(&buf, fb, format); err != nil {
			return err
		}
		publisher := output.NewPublisher(cfg.UploadConfig(), logger)
		if err := publisher.Publish(ctx, cfg.Upload, buf.Bytes(), format.ContentType()); err != nil {
			return err
		}
	}

	return nil
}

// dumpScene writes a scene in the TOML scene file format
func dumpScene(w io.Writer, name string) error {
	s, err := createScene(name)
	if err != nil {
		return fmt.Errorf("failed to create scene: %w", err)
	}
	return scene.Encode(w, s)
}

func listScenes(w io.Writer) error {
	scenes, err := scene.ListScenes()
	if err != nil {
		return err
	}
	for _, info := range scenes {
		fmt.Fprintf(w, "  %-16s %-8s %s\n", info.ID, info.Type, info.Description)
	}
	return nil
}

func printHelp(w io.Writer) {
	fmt.Fprintln(w, "Whitted Raytracer")
	fmt.Fprintln(w, "Usage: raytracer [options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Settings are read from defaults, then -config, then .env and RAYTRACER_*")
	fmt.Fprintln(w, "environment variables, then command line flags.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options:")
	fs := flag.NewFlagSet("raytracer", flag.ContinueOnError)
	fs.SetOutput(w)
	defineFlags(fs)
	fs.PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Available scenes:")
	listScenes(w)
}
