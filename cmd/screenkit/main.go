package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/screenkit/screenkit/internal/config"
	"github.com/screenkit/screenkit/internal/recording"
	"github.com/screenkit/screenkit/internal/tracking"
	"github.com/screenkit/screenkit/internal/video"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "record":
		err = runRecord(os.Args[2:])
	case "enhance":
		err = runEnhance(os.Args[2:])
	case "trim":
		err = runTrim(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func usage() {
	fmt.Println("Usage: screenkit <record|enhance|trim> [options]")
	fmt.Println("  record   capture the screen and beautify the result")
	fmt.Println("  enhance  beautify an existing recording")
	fmt.Println("  trim     cut a recording to a time range")
}

// enhanceFlags registers the shared enhancement options on a flag set.
func enhanceFlags(fs *flag.FlagSet, opts *config.Enhance) {
	fs.Float64Var(&opts.Padding, "padding", opts.Padding, "padding, fraction in [0,1] or pixels")
	fs.StringVar(&opts.Background, "background", opts.Background, "background: image path, preset name, or hex color")
	fs.BoolVar(&opts.MacOSTitlebar, "macos-titlebar", opts.MacOSTitlebar, "draw a macOS-style title bar")
	fs.IntVar(&opts.BorderRadius, "border-radius", opts.BorderRadius, "corner radius in pixels")
	fs.Float64Var(&opts.CursorScale, "cursor-scale", opts.CursorScale, "cursor sprite scale factor")
	fs.IntVar(&opts.ShadowBlur, "shadow-blur", opts.ShadowBlur, "shadow blur radius in pixels")
	fs.Float64Var(&opts.ShadowOpacity, "shadow-opacity", opts.ShadowOpacity, "shadow opacity in [0,1]")
	fs.BoolVar(&opts.OutputRaw, "output-raw", opts.OutputRaw, "skip all cosmetic steps")
	fs.StringVar(&opts.AssetsDir, "assets", opts.AssetsDir, "assets directory (cursor, wallpapers)")
}

func runRecord(args []string) error {
	cfg := config.New()
	fs := flag.NewFlagSet("record", flag.ExitOnError)
	output := fs.String("output", cfg.Record.OutputDir, "output directory")
	fps := fs.Int("fps", cfg.Record.FPS, "capture frame rate")
	countdown := fs.Int("countdown", cfg.Record.Countdown, "seconds before recording starts")
	configPath := fs.String("config", "", "optional screenkit.yaml")
	var region regionFlag
	fs.Var(&region, "region", "capture region as left,top,width,height")
	enhanceFlags(fs, &cfg.Enhance)
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	cfg.Record.OutputDir = *output
	cfg.Record.FPS = *fps
	cfg.Record.Countdown = *countdown

	screenWidth, screenHeight, err := recording.ScreenBounds(0)
	if err != nil {
		return err
	}
	cfg.Enhance.ScreenWidth = screenWidth
	cfg.Enhance.ScreenHeight = screenHeight

	printSettings(cfg, region.Region)

	for i := cfg.Record.Countdown; i > 0; i-- {
		fmt.Printf("\r[ScreenKit] - Starting recording in %d seconds...", i)
		time.Sleep(time.Second)
	}
	fmt.Println("\r[ScreenKit] - Recording started! Press Ctrl+C to finish.")

	recorder := recording.NewRecorder(cfg.Record)
	if err := recorder.Start(region.Region); err != nil {
		return err
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	fmt.Println("\nStopping recording...")
	videoPath, dataPath, err := recorder.Stop()
	if err != nil {
		return err
	}
	cfg.Enhance.RecordRegion = recorder.Region()

	fmt.Println("Recording stopped. Enhancing video...")
	if err := os.MkdirAll(cfg.Record.OutputDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	outputPath := filepath.Join(cfg.Record.OutputDir, filepath.Base(videoPath))

	pipeline, err := video.NewPipeline(cfg.Enhance, tracking.LoadEventLog(dataPath))
	if err != nil {
		return err
	}
	result, err := pipeline.Enhance(context.Background(), videoPath, outputPath)
	if err != nil {
		return err
	}
	os.Remove(dataPath)

	fmt.Printf("The result video is available at %s\n", result)
	return nil
}

func runEnhance(args []string) error {
	cfg := config.New()
	fs := flag.NewFlagSet("enhance", flag.ExitOnError)
	input := fs.String("i", "", "input video path (required)")
	output := fs.String("o", "", "output video path (required)")
	data := fs.String("data", "", "mouse-event log path (optional)")
	configPath := fs.String("config", "", "optional screenkit.yaml")
	fs.IntVar(&cfg.Enhance.ScreenWidth, "screen-width", 0, "canvas width (required)")
	fs.IntVar(&cfg.Enhance.ScreenHeight, "screen-height", 0, "canvas height (required)")
	enhanceFlags(fs, &cfg.Enhance)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *input == "" || *output == "" {
		return fmt.Errorf("both -i and -o are required")
	}

	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			return err
		}
		cfg.Enhance = loaded.Enhance
	}

	dataPath := *data
	if dataPath == "" {
		dataPath = tracking.DataPath(*input)
	}

	pipeline, err := video.NewPipeline(cfg.Enhance, tracking.LoadEventLog(dataPath))
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	result, err := pipeline.Enhance(ctx, *input, *output)
	if err != nil {
		return err
	}
	fmt.Printf("The result video is available at %s\n", result)
	return nil
}

func runTrim(args []string) error {
	fs := flag.NewFlagSet("trim", flag.ExitOnError)
	input := fs.String("i", "", "video path (required)")
	start := fs.Float64("s", 0, "start time in seconds")
	end := fs.Float64("e", -1, "end time in seconds (default: end of video)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *input == "" {
		return fmt.Errorf("-i is required")
	}

	ctx, cancel := signalContext()
	defer cancel()

	fmt.Printf("Trimming video from %.2fs to %.2fs...\n", *start, *end)
	tmpPath, err := video.Trim(ctx, *input, *start, *end)
	if err != nil {
		return err
	}
	if err := os.Rename(tmpPath, *input); err != nil {
		return fmt.Errorf("failed to replace original video: %w", err)
	}
	fmt.Printf("Trimmed video saved to %s\n", *input)
	return nil
}

// signalContext cancels on Ctrl+C; the pipeline checks it between frames.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func printSettings(cfg *config.Config, region config.Region) {
	regionDesc := "Full screen"
	if region.Width > 0 && region.Height > 0 {
		regionDesc = fmt.Sprintf("%d,%d %dx%d", region.Left, region.Top, region.Width, region.Height)
	}
	rows := []struct {
		key   string
		value any
	}{
		{"Output folder", cfg.Record.OutputDir},
		{"Region", regionDesc},
		{"FPS", cfg.Record.FPS},
		{"Padding", cfg.Enhance.Padding},
		{"Background", cfg.Enhance.Background},
		{"Border radius", cfg.Enhance.BorderRadius},
		{"Shadow blur", cfg.Enhance.ShadowBlur},
		{"Shadow opacity", cfg.Enhance.ShadowOpacity},
		{"Raw output", cfg.Enhance.OutputRaw},
	}

	fmt.Println("Recording Settings")
	fmt.Println("--------------------------------------------------")
	for _, row := range rows {
		fmt.Printf("%-25s %24v\n", row.key, row.value)
	}
	fmt.Println("--------------------------------------------------")
}

// regionFlag parses "left,top,width,height".
type regionFlag struct {
	config.Region
}

func (r *regionFlag) String() string {
	if r.Width == 0 && r.Height == 0 {
		return ""
	}
	return fmt.Sprintf("%d,%d,%d,%d", r.Left, r.Top, r.Width, r.Height)
}

func (r *regionFlag) Set(s string) error {
	var left, top, width, height int
	if _, err := fmt.Sscanf(s, "%d,%d,%d,%d", &left, &top, &width, &height); err != nil {
		return fmt.Errorf("region must be left,top,width,height: %w", err)
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("region size must be positive")
	}
	r.Region = config.Region{Left: left, Top: top, Width: width, Height: height}
	return nil
}
