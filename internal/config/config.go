// Package config loads and saves the dashboard's configuration.toml.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// DefaultFileName is the file looked up next to the executable or in the
// working directory.
const DefaultFileName = "configuration.toml"

// ErrNotFound is wrapped when the config file does not exist. The
// returned Config then holds the defaults.
var ErrNotFound = errors.New("config file not found")

// ErrInvalid is wrapped for values outside their allowed set.
var ErrInvalid = errors.New("invalid config value")

// Page layouts.
const (
	LayoutCentered = "centered"
	LayoutWide     = "wide"
)

// Sidebar states.
const (
	SidebarAuto      = "auto"
	SidebarExpanded  = "expanded"
	SidebarCollapsed = "collapsed"
)

// Config is the whole configuration file.
type Config struct {
	Page   Page   `toml:"page"`
	Image  Image  `toml:"image"`
	Log    Log    `toml:"log"`
	Window Window `toml:"window"`

	path string
}

// Page holds the window title and the help menu.
type Page struct {
	Title               string    `toml:"title"`
	Icon                string    `toml:"icon"`
	Layout              string    `toml:"layout"`
	InitialSidebarState string    `toml:"initial_sidebar_state"`
	MenuItems           MenuItems `toml:"menu_items"`
}

// MenuItems are URLs (or plain text for About) shown under Help.
type MenuItems struct {
	GetHelp    string `toml:"get_help"`
	ReportABug string `toml:"report_a_bug"`
	About      string `toml:"about"`
}

// Image points at the sample image used by the image processing pages.
type Image struct {
	TestImage string `toml:"test_image"`
}

// Log configures the console and optional file logger.
type Log struct {
	Level    string `toml:"level"`
	ToFile   bool   `toml:"to_file"`
	FilePath string `toml:"file_path"`
	Color    bool   `toml:"color"`
}

// Window is the initial main window size.
type Window struct {
	Width  int `toml:"width"`
	Height int `toml:"height"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Page: Page{
			Title:               "Algorithm Visualizer",
			Icon:                "static/logo.png",
			Layout:              LayoutWide,
			InitialSidebarState: SidebarAuto,
			MenuItems: MenuItems{
				About: "An educational visualizer for image processing algorithms.",
			},
		},
		Image: Image{TestImage: "static/test.png"},
		Log: Log{
			Level:    "info",
			FilePath: "algo-visualizer.log",
			Color:    true,
		},
		Window: Window{Width: 1280, Height: 800},
	}
}

// Load reads the config at path on top of the defaults. A missing file
// yields the defaults and an error wrapping ErrNotFound.
func Load(path string) (*Config, error) {
	cfg := Default()
	cfg.path = path

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", filepath.Base(path), err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Path returns the file the config was loaded from, if any.
func (c *Config) Path() string {
	return c.path
}

// Validate checks enumerated values and sizes.
func (c *Config) Validate() error {
	switch c.Page.Layout {
	case LayoutCentered, LayoutWide:
	default:
		return fmt.Errorf("%w: page.layout %q", ErrInvalid, c.Page.Layout)
	}
	switch c.Page.InitialSidebarState {
	case SidebarAuto, SidebarExpanded, SidebarCollapsed:
	default:
		return fmt.Errorf("%w: page.initial_sidebar_state %q", ErrInvalid, c.Page.InitialSidebarState)
	}
	switch c.Log.Level {
	case "debug", "info", "warning", "warn", "error", "DEBUG", "INFO", "WARNING", "WARN", "ERROR":
	default:
		return fmt.Errorf("%w: log.level %q", ErrInvalid, c.Log.Level)
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("%w: window size %dx%d", ErrInvalid, c.Window.Width, c.Window.Height)
	}
	return nil
}

// TestImagePath returns the sample image path resolved against the
// config directory.
func (c *Config) TestImagePath() string {
	return c.resolve(c.Image.TestImage)
}

// LogFilePath returns the log file path resolved against the config
// directory.
func (c *Config) LogFilePath() string {
	return c.resolve(c.Log.FilePath)
}

// IconPath returns the window icon path resolved against the config
// directory.
func (c *Config) IconPath() string {
	return c.resolve(c.Page.Icon)
}

func (c *Config) resolve(p string) string {
	if c.path == "" {
		return p
	}
	return resolve(filepath.Dir(c.path), p)
}

func resolve(dir, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(dir, p)
}

// Encode returns the config as TOML.
func (c *Config) Encode() ([]byte, error) {
	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	enc.SetIndentTables(true)
	if err := enc.Encode(c); err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	return buf.Bytes(), nil
}

// Save writes the config to path and remembers it.
func (c *Config) Save(path string) error {
	if err := c.Validate(); err != nil {
		return err
	}
	data, err := c.Encode()
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	c.path = path
	return nil
}

// Clone returns a copy of c.
func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}
