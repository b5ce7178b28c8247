package render

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/artemshloyda/picturegen/internal/picture"
)

func TestRenderer_BuildDstPath(t *testing.T) {
	cfg := testConfig()
	r := New(cfg)

	tests := []struct {
		name    string
		srcPath string
		want    string
	}{
		{
			name:    "file in content root",
			srcPath: "/content/team.picture.yaml",
			want:    filepath.Join("/out", "team.html"),
		},
		{
			name:    "nested directories are mirrored",
			srcPath: "/content/blog/2026/header.picture.yaml",
			want:    filepath.Join("/out", "blog", "2026", "header.html"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.BuildDstPath(tt.srcPath); got != tt.want {
				t.Errorf("BuildDstPath() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRenderer_Params(t *testing.T) {
	cfg := testConfig()
	r := New(cfg)

	params := r.Params()
	if params == "" {
		t.Fatal("Params() returned empty string")
	}

	hash1 := r.ParamsHash()

	// Изменение конфигурации меняет хэш
	cfg.MediaPrefix = "/static/"
	hash2 := r.ParamsHash()

	if hash1 == hash2 {
		t.Error("ParamsHash() should change when media prefix changes")
	}

	// Изменение карты сайта тоже: от неё зависят внутренние ссылки
	cfg.MediaPrefix = "/media/"
	cfg.Pages["contact"] = "/contact/"
	hash3 := r.ParamsHash()

	if hash1 == hash3 {
		t.Error("ParamsHash() should change when site map changes")
	}
}

func TestRenderer_Render(t *testing.T) {
	dir := t.TempDir()

	cfg := testConfig()
	cfg.OutputDir = dir
	r := New(cfg)

	pic := &picture.Config{Source: "photos/team.jpg", Width: 300}
	dstPath := filepath.Join(dir, "nested", "team.html")

	result := r.Render(pic, dstPath)

	if !result.Success {
		t.Fatalf("Render() failed: %v", result.Error)
	}
	if result.DstPath != dstPath {
		t.Errorf("DstPath = %q, want %q", result.DstPath, dstPath)
	}

	data, err := os.ReadFile(dstPath)
	if err != nil {
		t.Fatalf("rendered fragment not written: %v", err)
	}
	if !strings.Contains(string(data), "team__300x0.jpg") {
		t.Errorf("fragment content = %s", data)
	}

	// Временных файлов не остаётся
	entries, err := os.ReadDir(filepath.Join(dir, "nested"))
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if strings.Contains(e.Name(), ".rendering") {
			t.Errorf("temp file left behind: %s", e.Name())
		}
	}
}

func TestRenderer_Render_SameConfigSameParams(t *testing.T) {
	r1 := New(testConfig())
	r2 := New(testConfig())

	if r1.ParamsHash() != r2.ParamsHash() {
		t.Error("identical configs should produce identical params hashes")
	}
}
