// Package config resolves the optional dwidget.yaml project file.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/mod/modfile"
	"golang.org/x/mod/module"
	"gopkg.in/yaml.v3"
)

// FileName is the project file looked up by FindProjectRoot.
const FileName = "dwidget.yaml"

// Default window size in points.
const (
	DefaultWidth  = 640
	DefaultHeight = 480
)

// Config represents the optional dwidget.yaml configuration.
type Config struct {
	App      AppConfig    `yaml:"app"`
	Window   WindowConfig `yaml:"window"`
	Scene    string       `yaml:"scene,omitempty"`
	LogLevel string       `yaml:"log_level,omitempty"`
	Watch    *bool        `yaml:"watch,omitempty"`
	Inspect  string       `yaml:"inspect,omitempty"`
}

// AppConfig contains application metadata.
type AppConfig struct {
	Name string `yaml:"name,omitempty"`
}

// WindowConfig contains the initial window settings.
type WindowConfig struct {
	Title  string `yaml:"title,omitempty"`
	Width  int    `yaml:"width,omitempty"`
	Height int    `yaml:"height,omitempty"`
	Debug  bool   `yaml:"debug,omitempty"`
}

// Resolved contains resolved configuration values.
type Resolved struct {
	Root       string
	ModulePath string
	AppName    string
	Title      string
	Width      int
	Height     int
	Debug      bool
	// ScenePath is absolute, or empty when no scene is configured.
	ScenePath   string
	LogLevel    slog.Level
	Watch       bool
	InspectAddr string
}

// LoadOptional reads dwidget.yaml from dir if present.
func LoadOptional(dir string) (*Config, error) {
	path := filepath.Join(dir, FileName)
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", FileName, err)
	}
	defer f.Close()

	var cfg Config
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse %s: %w", FileName, err)
	}
	return &cfg, nil
}

// Resolve loads dwidget.yaml (if present) and resolves defaults. A go.mod in
// dir is optional and only names the app.
func Resolve(dir string) (*Resolved, error) {
	cfg, err := LoadOptional(dir)
	if err != nil {
		return nil, err
	}

	modulePath, err := modulePath(dir)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	appName := strings.TrimSpace(cfg.App.Name)
	if appName == "" {
		appName = defaultAppName(modulePath, dir)
	}

	title := strings.TrimSpace(cfg.Window.Title)
	if title == "" {
		title = appName
	}

	width, height := cfg.Window.Width, cfg.Window.Height
	if width < 0 || height < 0 {
		return nil, fmt.Errorf("window size must not be negative (got %dx%d)", width, height)
	}
	if width == 0 {
		width = DefaultWidth
	}
	if height == 0 {
		height = DefaultHeight
	}

	level, err := ParseLogLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	scenePath := strings.TrimSpace(cfg.Scene)
	if scenePath != "" && !filepath.IsAbs(scenePath) {
		scenePath = filepath.Join(dir, scenePath)
	}

	watch := true
	if cfg.Watch != nil {
		watch = *cfg.Watch
	}

	return &Resolved{
		Root:        dir,
		ModulePath:  modulePath,
		AppName:     appName,
		Title:       title,
		Width:       width,
		Height:      height,
		Debug:       cfg.Window.Debug,
		ScenePath:   scenePath,
		LogLevel:    level,
		Watch:       watch,
		InspectAddr: strings.TrimSpace(cfg.Inspect),
	}, nil
}

// ParseLogLevel accepts debug, info, warn and error. Empty means info.
func ParseLogLevel(s string) (slog.Level, error) {
	var level slog.Level
	if strings.TrimSpace(s) == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return 0, fmt.Errorf("invalid log_level %q: %w", s, err)
	}
	return level, nil
}

// FindProjectRoot walks up from start to the first directory holding
// dwidget.yaml or go.mod. It returns start when neither is found.
func FindProjectRoot(start string) (string, error) {
	start, err := filepath.Abs(start)
	if err != nil {
		return "", err
	}
	dir := start
	for {
		for _, name := range []string{FileName, "go.mod"} {
			if _, err := os.Stat(filepath.Join(dir, name)); err == nil {
				return dir, nil
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return start, nil
		}
		dir = parent
	}
}

func modulePath(dir string) (string, error) {
	data, err := os.ReadFile(filepath.Join(dir, "go.mod"))
	if err != nil {
		return "", err
	}
	path := modfile.ModulePath(data)
	if path == "" {
		return "", fmt.Errorf("could not determine module path from go.mod")
	}
	return path, nil
}

func defaultAppName(modulePath, dir string) string {
	base := filepath.Base(dir)
	if modulePath != "" {
		modName, _, ok := module.SplitPathVersion(modulePath)
		if ok {
			parts := strings.Split(modName, "/")
			base = parts[len(parts)-1]
		}
	}
	if base == "" || base == "." || base == string(filepath.Separator) {
		return "dwidget_app"
	}
	return base
}
