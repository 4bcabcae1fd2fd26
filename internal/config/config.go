package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/ini.v1"
	"gopkg.in/yaml.v3"
)

const (
	configDirName  = ".config/asciiflow"
	configFileName = "config.yaml"
	stateFileName  = "layout.json"
)

const (
	FormatASCII = "ascii"
	FormatJSON  = "json"
	FormatSVG   = "svg"
)

const (
	defaultWorkers      = 4
	defaultComponentGap = 1
	defaultFontSize     = 14
	defaultFontFamily   = "monospace"
	defaultBackground   = "#ffffff"
	defaultForeground   = "#1f2328"
)

var formats = []string{FormatASCII, FormatJSON, FormatSVG}

type SVG struct {
	FontSize   int    `yaml:"font_size"`
	FontFamily string `yaml:"font_family"`
	Background string `yaml:"background"`
	Foreground string `yaml:"foreground"`
}

type Config struct {
	// ProbeLimit bounds collision probing; 0 sizes it to the component.
	ProbeLimit int `yaml:"probe_limit"`
	// ComponentGap is the blank lines between components; 0 means none.
	ComponentGap int    `yaml:"component_gap"`
	Format       string `yaml:"format"`
	Workers      int    `yaml:"workers"`
	SVG          SVG    `yaml:"svg"`
}

func Default() Config {
	return Config{
		ComponentGap: defaultComponentGap,
		Format:       FormatASCII,
		Workers:      defaultWorkers,
		SVG: SVG{
			FontSize:   defaultFontSize,
			FontFamily: defaultFontFamily,
			Background: defaultBackground,
			Foreground: defaultForeground,
		},
	}
}

func DefaultConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, configDirName, configFileName), nil
}

func DefaultStatePath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, configDirName, stateFileName), nil
}

func ResolvePath(path string) (string, error) {
	if path == "" {
		return "", errors.New("path is empty")
	}
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		if path == "~" {
			path = home
		} else {
			path = filepath.Join(home, strings.TrimPrefix(path, "~/"))
		}
	}
	return filepath.Abs(path)
}

func isINI(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".ini")
}

// Load reads the config at path. A missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	resolved, err := ResolvePath(path)
	if err != nil {
		return cfg, err
	}
	bytes, err := os.ReadFile(resolved)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, err
	}
	if isINI(resolved) {
		err = decodeINI(bytes, &cfg)
	} else {
		err = yaml.Unmarshal(bytes, &cfg)
	}
	if err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func Save(path string, cfg Config) error {
	resolved, err := ResolvePath(path)
	if err != nil {
		return err
	}
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(resolved), 0o755); err != nil {
		return err
	}
	if isINI(resolved) {
		return encodeINI(cfg).SaveTo(resolved)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(resolved, data, 0o644); err != nil {
		return err
	}
	return nil
}

// decodeINI reads top-level keys from the default section and the svg keys
// from [svg]. Absent keys keep the values already in cfg.
func decodeINI(data []byte, cfg *Config) error {
	file, err := ini.LoadSources(ini.LoadOptions{IgnoreInlineComment: true}, data)
	if err != nil {
		return err
	}
	root := file.Section(ini.DefaultSection)
	cfg.ProbeLimit = root.Key("probe_limit").MustInt(cfg.ProbeLimit)
	cfg.ComponentGap = root.Key("component_gap").MustInt(cfg.ComponentGap)
	cfg.Format = root.Key("format").MustString(cfg.Format)
	cfg.Workers = root.Key("workers").MustInt(cfg.Workers)

	svg := file.Section("svg")
	cfg.SVG.FontSize = svg.Key("font_size").MustInt(cfg.SVG.FontSize)
	cfg.SVG.FontFamily = svg.Key("font_family").MustString(cfg.SVG.FontFamily)
	cfg.SVG.Background = svg.Key("background").MustString(cfg.SVG.Background)
	cfg.SVG.Foreground = svg.Key("foreground").MustString(cfg.SVG.Foreground)
	return nil
}

func encodeINI(cfg Config) *ini.File {
	file := ini.Empty()
	root := file.Section(ini.DefaultSection)
	root.Key("probe_limit").SetValue(fmt.Sprint(cfg.ProbeLimit))
	root.Key("component_gap").SetValue(fmt.Sprint(cfg.ComponentGap))
	root.Key("format").SetValue(cfg.Format)
	root.Key("workers").SetValue(fmt.Sprint(cfg.Workers))

	svg := file.Section("svg")
	svg.Key("font_size").SetValue(fmt.Sprint(cfg.SVG.FontSize))
	svg.Key("font_family").SetValue(cfg.SVG.FontFamily)
	svg.Key("background").SetValue(cfg.SVG.Background)
	svg.Key("foreground").SetValue(cfg.SVG.Foreground)
	return file
}

func (c *Config) Normalize() {
	c.Format = strings.TrimSpace(strings.ToLower(c.Format))
	if c.Format == "" {
		c.Format = FormatASCII
	}
	if c.ProbeLimit < 0 {
		c.ProbeLimit = 0
	}
	if c.ComponentGap < 0 {
		c.ComponentGap = 0
	}
	if c.Workers <= 0 {
		c.Workers = defaultWorkers
	}
	if c.SVG.FontSize <= 0 {
		c.SVG.FontSize = defaultFontSize
	}
	c.SVG.FontFamily = strings.TrimSpace(c.SVG.FontFamily)
	if c.SVG.FontFamily == "" {
		c.SVG.FontFamily = defaultFontFamily
	}
	c.SVG.Background = strings.TrimSpace(strings.ToLower(c.SVG.Background))
	if c.SVG.Background == "" {
		c.SVG.Background = defaultBackground
	}
	c.SVG.Foreground = strings.TrimSpace(strings.ToLower(c.SVG.Foreground))
	if c.SVG.Foreground == "" {
		c.SVG.Foreground = defaultForeground
	}
}

func (c Config) Validate() error {
	if !ValidFormat(c.Format) {
		return fmt.Errorf("config format %q must be one of %s", c.Format, strings.Join(formats, ", "))
	}
	if c.Workers <= 0 {
		return errors.New("config workers must be positive")
	}
	if c.SVG.FontSize <= 0 {
		return errors.New("config svg.font_size must be positive")
	}
	return nil
}

func ValidFormat(format string) bool {
	for _, f := range formats {
		if f == format {
			return true
		}
	}
	return false
}
