// Package config loads the optional lite.yaml project file.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/mod/modfile"
	"golang.org/x/mod/module"
	"gopkg.in/yaml.v3"

	"github.com/go-drift/lite/pkg/frame"
	"github.com/go-drift/lite/pkg/navigation"
)

// FileName is the project file looked up in the project root.
const FileName = "lite.yaml"

// DefaultRoutes are served when lite.yaml declares none.
var DefaultRoutes = []string{"/", "/about", "/play", "/play/count"}

// Config represents the optional lite.yaml configuration.
type Config struct {
	App    AppConfig    `yaml:"app"`
	Router RouterConfig `yaml:"router"`
	Frame  FrameConfig  `yaml:"frame"`
	Log    LogConfig    `yaml:"log"`
	Store  StoreConfig  `yaml:"store"`
}

// AppConfig contains application metadata.
type AppConfig struct {
	Name string `yaml:"name,omitempty"`
}

// RouterConfig contains the declared routes and the starting fragment.
type RouterConfig struct {
	Routes  []string `yaml:"routes,omitempty"`
	Initial string   `yaml:"initial,omitempty"`
}

// FrameConfig contains frame loop settings.
type FrameConfig struct {
	Interval string `yaml:"interval,omitempty"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level string `yaml:"level,omitempty"`
}

// StoreConfig locates the state database. An empty path disables
// persistence.
type StoreConfig struct {
	Path string `yaml:"path,omitempty"`
}

// Resolved contains resolved configuration values.
type Resolved struct {
	Root          string
	ModulePath    string
	AppName       string
	Routes        []string
	Initial       string
	FrameInterval time.Duration
	LogLevel      slog.Level
	StorePath     string
}

// LoadOptional reads lite.yaml if present.
func LoadOptional(dir string) (*Config, error) {
	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", FileName, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", FileName, err)
	}

	return &cfg, nil
}

// Resolve loads lite.yaml (if present) and resolves defaults. A go.mod in
// dir is optional; when present its module path names the app.
func Resolve(dir string) (*Resolved, error) {
	modulePath, err := modulePath(dir)
	if err != nil {
		return nil, err
	}

	cfg, err := LoadOptional(dir)
	if err != nil {
		return nil, err
	}

	appName := strings.TrimSpace(cfg.App.Name)
	if appName == "" {
		appName = defaultAppName(modulePath, dir)
	}

	routes, err := resolveRoutes(cfg.Router.Routes)
	if err != nil {
		return nil, err
	}

	interval := frame.DefaultInterval
	if s := strings.TrimSpace(cfg.Frame.Interval); s != "" {
		interval, err = time.ParseDuration(s)
		if err != nil {
			return nil, fmt.Errorf("frame.interval: %w", err)
		}
		if interval <= 0 {
			return nil, fmt.Errorf("frame.interval must be positive (got %q)", s)
		}
	}

	var level slog.Level
	if s := strings.TrimSpace(cfg.Log.Level); s != "" {
		if err := level.UnmarshalText([]byte(s)); err != nil {
			return nil, fmt.Errorf("log.level: %w", err)
		}
	}

	storePath := strings.TrimSpace(cfg.Store.Path)
	if storePath != "" && !filepath.IsAbs(storePath) {
		storePath = filepath.Join(dir, storePath)
	}

	return &Resolved{
		Root:          dir,
		ModulePath:    modulePath,
		AppName:       appName,
		Routes:        routes,
		Initial:       navigation.NormalizeRoute(cfg.Router.Initial),
		FrameInterval: interval,
		LogLevel:      level,
		StorePath:     storePath,
	}, nil
}

// FindProjectRoot walks up from the current directory to find lite.yaml or
// go.mod, falling back to the current directory.
func FindProjectRoot() (string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for dir := wd; ; {
		for _, name := range []string{FileName, "go.mod"} {
			if _, err := os.Stat(filepath.Join(dir, name)); err == nil {
				return dir, nil
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return wd, nil
		}
		dir = parent
	}
}

func modulePath(dir string) (string, error) {
	data, err := os.ReadFile(filepath.Join(dir, "go.mod"))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read go.mod: %w", err)
	}
	return modfile.ModulePath(data), nil
}

func defaultAppName(modulePath, dir string) string {
	base := filepath.Base(dir)
	modName, _, ok := module.SplitPathVersion(modulePath)
	if ok && modName != "" {
		parts := strings.Split(modName, "/")
		base = parts[len(parts)-1]
	}
	if base == "" || base == "." || base == string(filepath.Separator) {
		return "lite_app"
	}
	return base
}

func resolveRoutes(routes []string) ([]string, error) {
	if len(routes) == 0 {
		return append([]string(nil), DefaultRoutes...), nil
	}
	seen := make(map[string]bool, len(routes))
	out := make([]string, 0, len(routes))
	for _, r := range routes {
		r = strings.TrimSpace(r)
		if r == "" {
			return nil, fmt.Errorf("router.routes contains an empty route")
		}
		n := navigation.NormalizeRoute(r)
		if n == "/"+navigation.NotFound {
			return nil, fmt.Errorf("router.routes cannot declare %q", n)
		}
		if seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out, nil
}
