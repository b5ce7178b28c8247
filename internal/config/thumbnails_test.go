package config

import (
	"testing"

	"github.com/artemshloyda/picturegen/internal/picture"
)

func TestConfig_LookupThumbnail(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Thumbnails = map[string]picture.ThumbnailOption{
		"sidebar": {Width: 240, Height: 180, Crop: true},
		// Переопределяет встроенный teaser
		"teaser": {Width: 400, Height: 300},
	}

	tests := []struct {
		name      string
		preset    string
		wantOK    bool
		wantWidth int
	}{
		{
			name:      "builtin preset",
			preset:    "icon",
			wantOK:    true,
			wantWidth: 64,
		},
		{
			name:      "config preset",
			preset:    "sidebar",
			wantOK:    true,
			wantWidth: 240,
		},
		{
			name:      "config overrides builtin",
			preset:    "teaser",
			wantOK:    true,
			wantWidth: 400,
		},
		{
			name:   "unknown preset",
			preset: "unknown",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opt, ok := cfg.LookupThumbnail(tt.preset)

			if ok != tt.wantOK {
				t.Fatalf("LookupThumbnail(%q) ok = %v, want %v", tt.preset, ok, tt.wantOK)
			}
			if !tt.wantOK {
				return
			}
			if opt.Width != tt.wantWidth {
				t.Errorf("Width = %d, want %d", opt.Width, tt.wantWidth)
			}
			if opt.Name != tt.preset {
				t.Errorf("Name = %q, want %q", opt.Name, tt.preset)
			}
		})
	}
}

func TestBuiltinThumbnails(t *testing.T) {
	// Проверяем, что все встроенные пресеты имеют валидные значения
	for name, opt := range builtinThumbnails {
		t.Run(name, func(t *testing.T) {
			if opt.Width < 0 {
				t.Errorf("Preset %s has negative Width: %d", name, opt.Width)
			}
			if opt.Height < 0 {
				t.Errorf("Preset %s has negative Height: %d", name, opt.Height)
			}
			if opt.Width == 0 && opt.Height == 0 {
				t.Errorf("Preset %s sets no size at all", name)
			}
		})
	}
}

func TestConfig_ThumbnailNames(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Thumbnails = map[string]picture.ThumbnailOption{
		"sidebar": {Width: 240},
		"teaser":  {Width: 400},
	}

	names := cfg.ThumbnailNames()

	if len(names) == 0 {
		t.Fatal("ThumbnailNames() returned empty slice")
	}

	seen := make(map[string]bool)
	for _, n := range names {
		if seen[n] {
			t.Errorf("ThumbnailNames() contains duplicate %q", n)
		}
		seen[n] = true
	}

	for _, want := range []string{"icon", "teaser", "gallery", "hero", "sidebar"} {
		if !seen[want] {
			t.Errorf("ThumbnailNames() missing %q", want)
		}
	}

	// Список отсортирован
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Errorf("ThumbnailNames() not sorted: %q before %q", names[i-1], names[i])
		}
	}
}
