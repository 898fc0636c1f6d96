package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// BaseCursorScale tunes the cursor sprite's natural size relative to the
// capture resolution. The user-facing cursor-scale option multiplies this.
const BaseCursorScale = 0.3

const (
	CursorImagePath = "images/cursor.png"
	BackgroundDir   = "images/wallpapers"
)

// BackgroundMap resolves named wallpaper presets to bundled asset paths
// relative to the assets directory.
var BackgroundMap = map[string]string{
	"default-wallpaper-1": BackgroundDir + "/default-wallpaper-1.jpg",
	"default-wallpaper-2": BackgroundDir + "/default-wallpaper-2.jpg",
	"default-wallpaper-3": BackgroundDir + "/default-wallpaper-3.jpg",
	"default-wallpaper-4": BackgroundDir + "/default-wallpaper-4.jpg",
}

// Region is the capture region's placement on the full capture surface.
// Left/Top are the origin used to map normalized mouse coordinates into
// frame-local pixels.
type Region struct {
	Top    int `yaml:"top"`
	Left   int `yaml:"left"`
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// Enhance holds every option recognized by the enhancement pipeline.
// ScreenWidth and ScreenHeight are required; everything else has a default.
type Enhance struct {
	ScreenWidth   int     `yaml:"screen_width"`
	ScreenHeight  int     `yaml:"screen_height"`
	RecordRegion  Region  `yaml:"record_region"`
	Padding       float64 `yaml:"padding"`
	Background    string  `yaml:"background"`
	BackgroundRGB []int   `yaml:"background_rgb,omitempty"`
	MacOSTitlebar bool    `yaml:"macos_titlebar"`
	BorderRadius  int     `yaml:"border_radius"`
	CursorScale   float64 `yaml:"cursor_scale"`
	ShadowBlur    int     `yaml:"shadow_blur"`
	ShadowOpacity float64 `yaml:"shadow_opacity"`
	OutputRaw     bool    `yaml:"output_raw"`
	AssetsDir     string  `yaml:"assets_dir,omitempty"`
}

// Record holds the options for the capture phase.
type Record struct {
	OutputDir string `yaml:"output_dir"`
	FPS       int    `yaml:"fps"`
	Countdown int    `yaml:"countdown"`
}

// Config pairs the capture options with the enhancement options.
type Config struct {
	Record  Record  `yaml:"record"`
	Enhance Enhance `yaml:"enhance"`
}

// NewEnhance returns enhancement options with the stock defaults. Screen
// dimensions are left zero and must be filled in by the caller.
func NewEnhance() Enhance {
	return Enhance{
		Padding:       0.1,
		Background:    "default-wallpaper-1",
		BorderRadius:  10,
		CursorScale:   1.0,
		ShadowBlur:    10,
		ShadowOpacity: 0.5,
	}
}

func NewRecord() Record {
	return Record{
		OutputDir: defaultOutputDir(),
		FPS:       30,
		Countdown: 3,
	}
}

func New() *Config {
	return &Config{
		Record:  NewRecord(),
		Enhance: NewEnhance(),
	}
}

// Validate checks the required fields. Missing screen dimensions are a
// construction error, not a per-frame one.
func (e *Enhance) Validate() error {
	if e.ScreenWidth <= 0 || e.ScreenHeight <= 0 {
		return fmt.Errorf("screen dimensions are required: got %dx%d", e.ScreenWidth, e.ScreenHeight)
	}
	if e.ShadowOpacity < 0 || e.ShadowOpacity > 1 {
		return fmt.Errorf("shadow opacity must be in [0, 1]: got %v", e.ShadowOpacity)
	}
	if e.BorderRadius < 0 {
		return fmt.Errorf("border radius must be non-negative: got %d", e.BorderRadius)
	}
	if e.ShadowBlur < 0 {
		return fmt.Errorf("shadow blur must be non-negative: got %d", e.ShadowBlur)
	}
	if e.Padding < 0 {
		return fmt.Errorf("padding must be non-negative: got %v", e.Padding)
	}
	return nil
}

// AssetPath resolves a path relative to the assets directory.
func (e *Enhance) AssetPath(rel string) string {
	dir := e.AssetsDir
	if dir == "" {
		dir = os.Getenv("SCREENKIT_ASSETS")
	}
	if dir == "" {
		dir = "assets"
	}
	return filepath.Join(dir, rel)
}

// Load reads a YAML config file. Unknown keys are ignored; fields absent
// from the file keep their defaults.
func Load(path string) (*Config, error) {
	cfg := New()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return cfg, nil
}

func defaultOutputDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "output"
	}
	return filepath.Join(home, "Videos", "ScreenKit")
}
