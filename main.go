package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/df07/go-whitted-raytracer/pkg/integrator"
	"github.com/df07/go-whitted-raytracer/pkg/loaders"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// Config holds the parsed command line options. Zero values for the image
// settings mean "use the scene's own configuration".
type Config struct {
	SceneName string
	Width     int
	Height    int
	FOV       float64
	MaxDepth  int
	Workers   int
	Output    string
	Reference string
	Help      bool
}

var errMissingScene = errors.New("no scene specified")

func main() {
	config := parseFlags()

	if config.Help {
		showHelp()
		return
	}

	if err := run(config); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

// parseFlags parses command line flags and returns configuration
func parseFlags() Config {
	config := Config{}
	flag.StringVar(&config.SceneName, "scene", "default", "Scene name: 'default', a scene in scenes/, or a path to a .json scene file")
	flag.IntVar(&config.Width, "width", 0, "Image width in pixels (0 = scene default)")
	flag.IntVar(&config.Height, "height", 0, "Image height in pixels (0 = scene default)")
	flag.Float64Var(&config.FOV, "fov", 0, "Vertical field of view in degrees, below 180 (0 = scene default)")
	flag.IntVar(&config.MaxDepth, "depth", 0, "Maximum specular recursion depth (0 = scene default)")
	flag.IntVar(&config.Workers, "workers", 1, "Number of parallel scan-line workers (0 = auto-detect)")
	flag.StringVar(&config.Output, "output", "output/render.ppm", "Output file; .png writes PNG, anything else binary PPM")
	flag.StringVar(&config.Reference, "reference", "", "Reference image to compare the render against")
	flag.BoolVar(&config.Help, "help", false, "Show help information")
	flag.Parse()
	return config
}

// showHelp displays usage information
func showHelp() {
	fmt.Println("Whitted Raytracer")
	fmt.Println("Usage: raytracer [options]")
	fmt.Println()
	fmt.Println("Options:")
	flag.PrintDefaults()
	fmt.Println()
	fmt.Println("Available scenes:")
	scenes, err := scene.ListScenes()
	if err != nil {
		fmt.Printf("  (failed to list scenes: %v)\n", err)
		return
	}
	for _, info := range scenes {
		if info.FilePath != "" {
			fmt.Printf("  %-12s %s (%s)\n", info.ID, info.Type, info.FilePath)
		} else {
			fmt.Printf("  %-12s %s\n", info.ID, info.Type)
		}
	}
}

// run renders the configured scene, writes it out and optionally compares it
// against a reference image
func run(config Config) error {
	if err := scene.CheckFOV(config.FOV); err != nil {
		return fmt.Errorf("-fov: %w", err)
	}

	fmt.Println("Starting Whitted Raytracer...")
	if info, err := renderer.GetSystemInfo(); err == nil {
		fmt.Printf("System: %s\n", info)
	}

	sceneObj, err := createScene(config.SceneName)
	if err != nil {
		return err
	}

	renderConfig, integratorConfig := buildConfigs(sceneObj.SamplingConfig, config)
	fmt.Printf("Scene: %s, %d spheres (%d lights), %dx%d, max depth %d\n",
		config.SceneName, len(sceneObj.Spheres), len(sceneObj.Lights()),
		renderConfig.Width, renderConfig.Height, integratorConfig.MaxDepth)

	raytracer, err := renderer.NewRaytracer(sceneObj, integrator.NewWhitted(integratorConfig), renderConfig, renderer.NewDefaultLogger())
	if err != nil {
		return fmt.Errorf("failed to create raytracer: %w", err)
	}

	img, stats, err := raytracer.Render(context.Background())
	if err != nil {
		return err
	}
	fmt.Printf("Average luminance: %.4f\n", renderer.CalculateAverageLuminance(img))
	fmt.Printf("Render completed in %v\n", stats.Duration)

	if err := loaders.SaveImage(config.Output, img); err != nil {
		return err
	}
	fmt.Printf("Render saved as %s\n", config.Output)

	if config.Reference != "" {
		diff, err := compareWithReference(img, config.Reference)
		if err != nil {
			return err
		}
		fmt.Printf("Max channel difference vs %s: %.4f\n", config.Reference, diff)
	}
	return nil
}

// createScene resolves the scene by name or file path
func createScene(name string) (*scene.Scene, error) {
	if name == "" {
		return nil, errMissingScene
	}
	s, err := scene.CreateScene(name)
	if err != nil {
		return nil, fmt.Errorf("failed to load scene: %w", err)
	}
	return s, nil
}

// buildConfigs starts from the scene's recommended settings and applies the
// non-zero command line overrides
func buildConfigs(sceneConfig scene.SamplingConfig, config Config) (renderer.Config, integrator.Config) {
	sampling := sceneConfig.WithOverrides(scene.SamplingConfig{
		Width:    config.Width,
		Height:   config.Height,
		FOV:      config.FOV,
		MaxDepth: config.MaxDepth,
	})

	renderConfig := renderer.DefaultConfig()
	renderConfig.Width = sampling.Width
	renderConfig.Height = sampling.Height
	renderConfig.FOV = sampling.FOV
	renderConfig.NumWorkers = config.Workers

	integratorConfig := integrator.DefaultConfig()
	integratorConfig.MaxDepth = sampling.MaxDepth

	return renderConfig, integratorConfig
}

// compareWithReference loads a reference image and returns the largest
// per-channel difference against the render
func compareWithReference(img *loaders.ImageData, referencePath string) (float32, error) {
	reference, err := loaders.LoadImage(referencePath)
	if err != nil {
		return 0, fmt.Errorf("failed to load reference image: %w", err)
	}
	return loaders.MaxChannelDifference(img, reference)
}
