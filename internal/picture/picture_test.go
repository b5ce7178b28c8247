package picture

import "testing"

func TestConfig_Resolve(t *testing.T) {
	tests := []struct {
		name string
		cfg  *Config
		want Directive
	}{
		{
			name: "no overrides at all",
			cfg:  &Config{Source: "a.jpg"},
			want: Directive{},
		},
		{
			name: "explicit size",
			cfg:  &Config{Source: "a.jpg", Width: 720, Height: 480},
			want: Directive{Width: 720, Height: 480},
		},
		{
			name: "explicit width only",
			cfg:  &Config{Source: "a.jpg", Width: 720},
			want: Directive{Width: 720},
		},
		{
			name: "crop and upscale flags",
			cfg:  &Config{Source: "a.jpg", UseCrop: true, UseUpscale: true},
			want: Directive{Crop: true, Upscale: true},
		},
		{
			// Пресет побеждает всё, что было установлено до него
			name: "thumbnail overrides everything",
			cfg: &Config{
				Source:  "a.jpg",
				Width:   100,
				Height:  50,
				UseCrop: true,
				Thumbnail: &ThumbnailOption{
					Width:   300,
					Height:  200,
					Crop:    false,
					Upscale: true,
				},
			},
			want: Directive{Width: 300, Height: 200, Crop: false, Upscale: true},
		},
		{
			// automatic и no-cropping на арифметику не влияют
			name: "intent flags do not touch the directive",
			cfg: &Config{
				Source:        "a.jpg",
				Width:         640,
				UseNoCropping: true,
			},
			want: Directive{Width: 640},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cfg.Resolve(); got != tt.want {
				t.Errorf("Resolve() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestDirective_IsZero(t *testing.T) {
	if !(Directive{}).IsZero() {
		t.Error("empty directive should be zero")
	}
	if (Directive{Width: 1}).IsZero() {
		t.Error("directive with width should not be zero")
	}
	if (Directive{Upscale: true}).IsZero() {
		t.Error("directive with upscale should not be zero")
	}
}

// sitemap - тестовая реализация PageResolver.
type sitemap map[string]string

func (s sitemap) ResolvePage(ref string) (string, bool) {
	path, ok := s[ref]
	return path, ok
}

func TestConfig_Link(t *testing.T) {
	pages := sitemap{"about": "/about/"}

	tests := []struct {
		name     string
		cfg      *Config
		wantLink string
		wantOK   bool
	}{
		{
			name:     "external url wins",
			cfg:      &Config{Source: "a.jpg", LinkURL: "https://example.com"},
			wantLink: "https://example.com",
			wantOK:   true,
		},
		{
			name:     "page ref resolves",
			cfg:      &Config{Source: "a.jpg", LinkPage: "about"},
			wantLink: "/about/",
			wantOK:   true,
		},
		{
			name:   "unknown page ref means no link",
			cfg:    &Config{Source: "a.jpg", LinkPage: "missing"},
			wantOK: false,
		},
		{
			name:   "no link fields at all",
			cfg:    &Config{Source: "a.jpg"},
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			link, ok := tt.cfg.Link(pages)
			if ok != tt.wantOK {
				t.Fatalf("Link() ok = %v, want %v", ok, tt.wantOK)
			}
			if link != tt.wantLink {
				t.Errorf("Link() = %q, want %q", link, tt.wantLink)
			}
		})
	}
}

func TestConfig_Link_NilResolver(t *testing.T) {
	cfg := &Config{Source: "a.jpg", LinkPage: "about"}
	if _, ok := cfg.Link(nil); ok {
		t.Error("Link(nil) with page ref should return no link")
	}
}
