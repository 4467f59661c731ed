package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"touchkeys/areas"
	"touchkeys/touch"
)

// Region kinds for custom layouts
const (
	KindRectangle     = "rectangle"
	KindTriangle      = "triangle"
	KindParallelogram = "parallelogram"
)

// Point is a touch surface coordinate
type Point struct {
	X int32 `yaml:"x"`
	Y int32 `yaml:"y"`
}

func (p Point) position() touch.Position {
	return touch.Position{X: p.X, Y: p.Y}
}

// RegionConfig is one custom layout region. Rectangles use X, Y, Width and
// Height. Triangles list three corners in Points; parallelograms list the
// base corner and the two edge vectors.
type RegionConfig struct {
	Kind   string  `yaml:"kind"`
	Note   int     `yaml:"note"`
	X      int32   `yaml:"x,omitempty"`
	Y      int32   `yaml:"y,omitempty"`
	Width  int32   `yaml:"width,omitempty"`
	Height int32   `yaml:"height,omitempty"`
	Points []Point `yaml:"points,omitempty"`
}

// LayoutConfig selects between the default stripes and a custom region list
type LayoutConfig struct {
	RegionWidth int32          `yaml:"region_width"`
	StartNote   int            `yaml:"start_note"`
	Regions     []RegionConfig `yaml:"regions,omitempty"`
}

// RenderConfig is the size of the layout preview
type RenderConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// MIDIConfig defines the MIDI output
type MIDIConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Port     string `yaml:"port,omitempty"`
	Channel  uint8  `yaml:"channel"` // 0-15
	Velocity uint8  `yaml:"velocity"`
}

// ThemeConfig stores UI preferences
type ThemeConfig struct {
	Palette string `yaml:"palette,omitempty"` // GIMP .gpl file
}

// Config is the main configuration structure
type Config struct {
	Devices []string     `yaml:"devices"`
	Layout  LayoutConfig `yaml:"layout"`
	Render  RenderConfig `yaml:"render"`
	MIDI    MIDIConfig   `yaml:"midi"`
	Theme   ThemeConfig  `yaml:"theme,omitempty"`
	LogFile string       `yaml:"log_file,omitempty"`
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Devices: []string{"/dev/input/event15"},
		Layout: LayoutConfig{
			RegionWidth: 100,
			StartNote:   48,
		},
		Render: RenderConfig{
			Width:  800,
			Height: 600,
		},
		MIDI: MIDIConfig{
			Channel:  0,
			Velocity: 100,
		},
	}
}

// ConfigDir returns the config directory path
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "touchkeys"), nil
}

// ConfigPath returns the full path to config.yaml
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Load reads the config from the default path, or returns defaults if not found
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return DefaultConfig(), nil
	}
	return LoadFile(path)
}

// LoadFile reads the config at path. Fields missing from the file keep their
// defaults; a missing file yields the defaults.
func LoadFile(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the config to the default path
func (c *Config) Save() error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return c.SaveFile(path)
}

// SaveFile writes the config to path, creating its directory
func (c *Config) SaveFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// LogPath returns the debug log file, defaulting to debug.log in ConfigDir
func (c *Config) LogPath() string {
	if c.LogFile != "" {
		return c.LogFile
	}
	dir, err := ConfigDir()
	if err != nil {
		return "debug.log"
	}
	return filepath.Join(dir, "debug.log")
}

// AddDevice adds a device path unless it is already listed
func (c *Config) AddDevice(path string) {
	for _, d := range c.Devices {
		if d == path {
			return
		}
	}
	c.Devices = append(c.Devices, path)
}

// Validate checks value ranges and that custom regions are well formed
func (c *Config) Validate() error {
	if len(c.Layout.Regions) == 0 && c.Layout.RegionWidth <= 0 {
		return fmt.Errorf("layout: region_width must be positive, got %d", c.Layout.RegionWidth)
	}
	if c.Render.Width <= 0 || c.Render.Height <= 0 {
		return fmt.Errorf("render: size must be positive, got %dx%d", c.Render.Width, c.Render.Height)
	}
	if c.MIDI.Channel > 15 {
		return fmt.Errorf("midi: channel must be 0-15, got %d", c.MIDI.Channel)
	}
	if c.MIDI.Velocity == 0 || c.MIDI.Velocity > 127 {
		return fmt.Errorf("midi: velocity must be 1-127, got %d", c.MIDI.Velocity)
	}
	if _, err := c.regions(); err != nil {
		return err
	}
	return nil
}

// BuildLayout builds the configured layout for a surface of the given size
func (c *Config) BuildLayout(touchWidth, touchHeight int32) (*areas.Areas, error) {
	if len(c.Layout.Regions) == 0 {
		if c.Layout.RegionWidth <= 0 {
			return nil, fmt.Errorf("layout: region_width must be positive, got %d", c.Layout.RegionWidth)
		}
		return areas.Stripes(touchWidth, touchHeight, c.Layout.RegionWidth, c.Layout.StartNote), nil
	}
	regions, err := c.regions()
	if err != nil {
		return nil, err
	}
	return areas.New(touchWidth, touchHeight, regions)
}

func (c *Config) regions() ([]areas.Region, error) {
	out := make([]areas.Region, 0, len(c.Layout.Regions))
	for i, rc := range c.Layout.Regions {
		shape, err := rc.Shape()
		if err != nil {
			return nil, fmt.Errorf("layout region %d: %w", i, err)
		}
		out = append(out, areas.Region{Shape: shape, Note: rc.Note})
	}
	return out, nil
}

// Shape builds the region's shape
func (r RegionConfig) Shape() (areas.Shape, error) {
	switch r.Kind {
	case KindRectangle:
		return areas.NewRectangle(r.X, r.Y, r.Width, r.Height)
	case KindTriangle:
		if len(r.Points) != 3 {
			return nil, fmt.Errorf("triangle needs 3 points, got %d", len(r.Points))
		}
		return areas.NewTriangle(r.Points[0].position(), r.Points[1].position(), r.Points[2].position())
	case KindParallelogram:
		if len(r.Points) != 3 {
			return nil, fmt.Errorf("parallelogram needs base, u and v, got %d points", len(r.Points))
		}
		return areas.NewParallelogram(r.Points[0].position(), r.Points[1].position(), r.Points[2].position())
	default:
		return nil, fmt.Errorf("unknown region kind %q", r.Kind)
	}
}
