package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadNormalizesConfig(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "config.yaml")
	content := `
probe_limit: -3
component_gap: 2
format: " SVG "
workers: 0
svg:
  font_size: 18
  background: "#FAFAFA"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Format != FormatSVG {
		t.Fatalf("Format=%q want svg", cfg.Format)
	}
	if cfg.ProbeLimit != 0 {
		t.Fatalf("ProbeLimit=%d want 0", cfg.ProbeLimit)
	}
	if cfg.ComponentGap != 2 {
		t.Fatalf("ComponentGap=%d want 2", cfg.ComponentGap)
	}
	if cfg.Workers != defaultWorkers {
		t.Fatalf("Workers=%d want %d", cfg.Workers, defaultWorkers)
	}
	if cfg.SVG.FontSize != 18 || cfg.SVG.Background != "#fafafa" {
		t.Fatalf("SVG=%+v want font 18 and #fafafa", cfg.SVG)
	}
	if cfg.SVG.FontFamily != defaultFontFamily {
		t.Fatalf("FontFamily=%q want %q", cfg.SVG.FontFamily, defaultFontFamily)
	}
}

func TestNormalizeComponentGap(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{in: 2, want: 2},
		{in: 0, want: 0},
		{in: -1, want: 0},
	}
	for _, tt := range tests {
		cfg := Default()
		cfg.ComponentGap = tt.in
		cfg.Normalize()
		if cfg.ComponentGap != tt.want {
			t.Fatalf("ComponentGap(%d)=%d want %d", tt.in, cfg.ComponentGap, tt.want)
		}
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg != Default() {
		t.Fatalf("cfg=%+v want defaults", cfg)
	}
}

func TestLoadRejectsUnknownFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("format: png\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("expected error for unknown format")
	}
}

func TestLoadINI(t *testing.T) {
	path := filepath.Join(t.TempDir(), "asciiflow.ini")
	content := "format = json\nprobe_limit = 7\ncomponent_gap = 0\n\n[svg]\nfont_family = Iosevka\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Format != FormatJSON || cfg.ProbeLimit != 7 || cfg.ComponentGap != 0 {
		t.Fatalf("cfg=%+v", cfg)
	}
	if cfg.SVG.FontFamily != "Iosevka" || cfg.SVG.FontSize != defaultFontSize {
		t.Fatalf("SVG=%+v", cfg.SVG)
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	for _, name := range []string{"config.yaml", "config.ini"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "asciiflow", name)

			cfg := Default()
			cfg.Format = FormatSVG
			cfg.ProbeLimit = 3
			cfg.SVG.FontFamily = "Fira Code"

			if err := Save(path, cfg); err != nil {
				t.Fatalf("Save returned error: %v", err)
			}

			loaded, err := Load(path)
			if err != nil {
				t.Fatalf("Load returned error: %v", err)
			}
			if loaded != cfg {
				t.Fatalf("round trip mismatch: got %+v want %+v", loaded, cfg)
			}
		})
	}
}

func TestResolvePathExpandsHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	got, err := ResolvePath("~/x/config.yaml")
	if err != nil {
		t.Fatalf("ResolvePath returned error: %v", err)
	}
	if want := filepath.Join(home, "x", "config.yaml"); got != want {
		t.Fatalf("ResolvePath=%q want %q", got, want)
	}
	if _, err := ResolvePath(""); err == nil {
		t.Fatalf("expected error for empty path")
	}
}
