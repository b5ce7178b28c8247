package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "picturegen.yaml")

	content := `
content:
  dir: ./content
output:
  dir: ./public
  responsive: true
  breakpoints: [480, 960]
render:
  workers: 2
pages:
  about: /about/
thumbnails:
  sidebar:
    width: 240
    height: 180
    crop: true
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	fc, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile() = %v", err)
	}
	if fc == nil {
		t.Fatal("LoadFromFile() returned nil config for existing file")
	}

	cfg := DefaultConfig()
	fc.ApplyToConfig(cfg)

	if cfg.ContentDir != "./content" {
		t.Errorf("ContentDir = %q, want ./content", cfg.ContentDir)
	}
	if cfg.OutputDir != "./public" {
		t.Errorf("OutputDir = %q, want ./public", cfg.OutputDir)
	}
	if !cfg.ResponsiveImages {
		t.Error("ResponsiveImages should be true")
	}
	if len(cfg.Breakpoints) != 2 || cfg.Breakpoints[0] != 480 {
		t.Errorf("Breakpoints = %v, want [480 960]", cfg.Breakpoints)
	}
	if cfg.Workers != 2 {
		t.Errorf("Workers = %d, want 2", cfg.Workers)
	}
	if path, ok := cfg.ResolvePage("about"); !ok || path != "/about/" {
		t.Errorf("ResolvePage(about) = %q, %v", path, ok)
	}

	opt, ok := cfg.LookupThumbnail("sidebar")
	if !ok {
		t.Fatal("sidebar thumbnail from file not found")
	}
	if opt.Width != 240 || opt.Height != 180 || !opt.Crop {
		t.Errorf("sidebar = %+v, want 240x180 crop", opt)
	}
}

func TestLoadFromFile_Missing(t *testing.T) {
	fc, err := LoadFromFile(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("LoadFromFile() = %v, want nil for missing file", err)
	}
	if fc != nil {
		t.Error("LoadFromFile() should return nil for missing file")
	}
}

func TestLoadFromFile_Invalid(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.yaml")
	if err := os.WriteFile(path, []byte("content: [unclosed"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadFromFile(path); err == nil {
		t.Error("LoadFromFile() should fail on broken YAML")
	}
}

func TestApplyToConfig_FlagsPriority(t *testing.T) {
	// ApplyToConfig вызывается до парсинга флагов: файл не должен
	// затирать значения пустыми полями
	cfg := DefaultConfig()
	cfg.ContentDir = "/from-flags"

	fc := &FileConfig{Output: &OutputConfig{Dir: "./public"}}
	fc.ApplyToConfig(cfg)

	if cfg.ContentDir != "/from-flags" {
		t.Errorf("ContentDir = %q, want /from-flags", cfg.ContentDir)
	}
	if cfg.OutputDir != "./public" {
		t.Errorf("OutputDir = %q, want ./public", cfg.OutputDir)
	}
}

func TestGenerateExampleConfig(t *testing.T) {
	example := GenerateExampleConfig()
	if example == "" {
		t.Fatal("GenerateExampleConfig() returned empty string")
	}

	// Пример должен быть валидным YAML с точки зрения загрузчика
	dir := t.TempDir()
	path := filepath.Join(dir, "example.yaml")
	if err := os.WriteFile(path, []byte(example), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFromFile(path); err != nil {
		t.Errorf("example config does not parse: %v", err)
	}
}
