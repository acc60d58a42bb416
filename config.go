package parallax

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pelletier/go-toml/v2"
)

// Config holds every tunable of the demo. Start from DefaultConfig and
// overlay a TOML file with LoadConfig.
type Config struct {
	Title  string `toml:"title"`
	Width  int    `toml:"width"`
	Height int    `toml:"height"`

	// Projection.
	FOV  float32 `toml:"fov"` // vertical, degrees
	Near float32 `toml:"near"`
	Far  float32 `toml:"far"`

	ClearColor [4]float32 `toml:"clear_color"`

	// Camera.
	Eye           [3]float32 `toml:"eye"`
	Target        [3]float32 `toml:"target"`
	ResetKey      string     `toml:"reset_key"`
	ResetDuration float32    `toml:"reset_duration"` // seconds, 0 = instant

	// Parallax.
	HeightScale float64 `toml:"height_scale"`
	HeightStep  float64 `toml:"height_step"`

	// LightSpeed is the light's angular speed in degrees per millisecond.
	LightSpeed float64 `toml:"light_speed"`

	// Resources.
	AssetsDir     string `toml:"assets_dir"` // empty = embedded assets
	TextureSize   int    `toml:"texture_size"`
	ScreenshotDir string `toml:"screenshot_dir"`
	ShowPanel     bool   `toml:"show_panel"`

	// Logging.
	LogLevel      string `toml:"log_level"`
	LogFormat     string `toml:"log_format"` // "console" or "json"
	StatsInterval int    `toml:"stats_interval"` // frames between stats logs, 0 = off
}

// DefaultConfig returns the stock demo configuration.
func DefaultConfig() Config {
	return Config{
		Title:         "Parallax Mapping",
		Width:         1024,
		Height:        768,
		FOV:           45,
		Near:          0.01,
		Far:           100,
		ClearColor:    [4]float32{0.9, 0.9, 0.9, 1},
		Eye:           [3]float32(DefaultEye),
		Target:        [3]float32(DefaultTarget),
		ResetKey:      DefaultResetKey,
		HeightScale:   0.05,
		HeightStep:    0.01,
		LightSpeed:    0.05,
		TextureSize:   512,
		ScreenshotDir: "screenshots",
		ShowPanel:     true,
		LogLevel:      "info",
		LogFormat:     "console",
		StatsInterval: 0,
	}
}

// LoadConfig reads a TOML file over DefaultConfig. Unknown keys are an error.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("load config: %w", err)
	}
	if err := DecodeConfig(data, &cfg); err != nil {
		return cfg, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}

// DecodeConfig decodes TOML data into cfg, keeping fields the data does not
// mention.
func DecodeConfig(data []byte, cfg *Config) error {
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	return dec.Decode(cfg)
}

// Validate reports configuration values the demo cannot run with.
func (c Config) Validate() error {
	var errs []error
	if c.Width <= 0 || c.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d must be positive", c.Width, c.Height))
	}
	if c.FOV <= 0 || c.FOV >= 180 {
		errs = append(errs, fmt.Errorf("fov %v must be in (0, 180)", c.FOV))
	}
	if c.Near <= 0 || c.Near >= c.Far {
		errs = append(errs, fmt.Errorf("near %v must be positive and below far %v", c.Near, c.Far))
	}
	if c.TextureSize <= 0 {
		errs = append(errs, fmt.Errorf("texture size %d must be positive", c.TextureSize))
	}
	if c.HeightStep < 0 {
		errs = append(errs, fmt.Errorf("height step %v must not be negative", c.HeightStep))
	}
	if c.ResetKey == "" {
		errs = append(errs, errors.New("reset key must not be empty"))
	}
	return errors.Join(errs...)
}

// EyeVec returns Eye as a vector.
func (c Config) EyeVec() mgl32.Vec3 { return mgl32.Vec3(c.Eye) }

// TargetVec returns Target as a vector.
func (c Config) TargetVec() mgl32.Vec3 { return mgl32.Vec3(c.Target) }
