// Package config содержит конфигурацию приложения.
package config

import (
	"sort"

	"github.com/artemshloyda/picturegen/internal/picture"
)

// builtinThumbnails содержит встроенные пресеты миниатюр.
// Пресеты из конфигурационного файла имеют приоритет.
var builtinThumbnails = map[string]picture.ThumbnailOption{
	// icon - квадратная иконка, жёсткая обрезка.
	"icon": {
		Width:   64,
		Height:  64,
		Crop:    true,
		Upscale: true,
	},
	// teaser - карточка в списках.
	"teaser": {
		Width:  300,
		Height: 200,
		Crop:   true,
	},
	// gallery - превью в галерее.
	"gallery": {
		Width:  480,
		Height: 320,
		Crop:   true,
	},
	// hero - широкая шапка, высота свободная.
	"hero": {
		Width:   1280,
		Upscale: true,
	},
}

// LookupThumbnail возвращает пресет миниатюры по имени.
// Сначала ищет среди пресетов конфигурации, затем среди встроенных.
func (c *Config) LookupThumbnail(name string) (*picture.ThumbnailOption, bool) {
	if opt, ok := c.Thumbnails[name]; ok {
		opt.Name = name
		return &opt, true
	}
	if opt, ok := builtinThumbnails[name]; ok {
		opt.Name = name
		return &opt, true
	}
	return nil, false
}

// ThumbnailNames возвращает имена всех доступных пресетов по алфавиту.
func (c *Config) ThumbnailNames() []string {
	seen := make(map[string]struct{}, len(builtinThumbnails)+len(c.Thumbnails))
	for name := range builtinThumbnails {
		seen[name] = struct{}{}
	}
	for name := range c.Thumbnails {
		seen[name] = struct{}{}
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

/*
Возможные расширения:
- Добавить пресеты под конкретные соцсети (og:image, twitter card)
- Добавить наследование пресетов (extends)
*/
