// Package config содержит конфигурацию приложения.
package config

import (
	"fmt"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/artemshloyda/picturegen/internal/picture"
)

// Config содержит все настройки генерации.
type Config struct {
	// ContentDir - директория с описаниями картинок.
	ContentDir string

	// OutputDir - директория для сгенерированных HTML-фрагментов.
	OutputDir string

	// DefinitionSuffix - суффикс файлов-описаний.
	DefinitionSuffix string

	// MediaPrefix - URL-префикс для встроенных изображений.
	// Всегда заканчивается на "/".
	MediaPrefix string

	// ResponsiveImages - генерировать srcset с responsive-вариантами.
	ResponsiveImages bool

	// Breakpoints - ширины viewport для responsive-вариантов в пикселях.
	// Передаются слою рендеринга как есть.
	Breakpoints []int

	// Alignments - допустимые значения выравнивания.
	Alignments []string

	// LinkTargets - допустимые значения target ссылки.
	LinkTargets []string

	// Pages - карта сайта: идентификатор страницы -> абсолютный путь.
	Pages map[string]string

	// Thumbnails - пресеты миниатюр, определённые в конфигурации.
	// Дополняют и переопределяют встроенные.
	Thumbnails map[string]picture.ThumbnailOption

	// Workers - количество параллельных воркеров.
	Workers int

	// DBPath - путь к SQLite базе данных состояния.
	DBPath string

	// DryRun - режим симуляции без записи файлов.
	DryRun bool

	// Verbose - подробный вывод.
	Verbose bool

	// NoProgress - отключить прогресс-бар.
	NoProgress bool

	// Watch - режим слежения за директорией.
	Watch bool

	// Stream - потоковый режим без предварительного подсчёта файлов.
	Stream bool
}

// DefaultConfig возвращает конфигурацию по умолчанию.
func DefaultConfig() *Config {
	return &Config{
		DefinitionSuffix: ".picture.yaml",
		MediaPrefix:      "/media/",
		Breakpoints:      []int{576, 768, 992},
		Alignments:       []string{"left", "right", "center"},
		LinkTargets:      []string{"_blank", "_self", "_parent", "_top"},
		Workers:          runtime.NumCPU(),
	}
}

// Validate проверяет корректность конфигурации.
func (c *Config) Validate() error {
	if c.ContentDir == "" {
		return fmt.Errorf("директория с описаниями не указана (--in)")
	}
	if c.OutputDir == "" {
		return fmt.Errorf("выходная директория не указана (--out)")
	}
	if c.DefinitionSuffix == "" {
		return fmt.Errorf("не указан суффикс файлов-описаний")
	}
	if c.Workers < 1 {
		return fmt.Errorf("количество воркеров должно быть >= 1, получено: %d", c.Workers)
	}
	if len(c.Alignments) == 0 {
		return fmt.Errorf("список допустимых выравниваний пуст")
	}
	for _, bp := range c.Breakpoints {
		if bp <= 0 {
			return fmt.Errorf("breakpoint должен быть положительным, получено: %d", bp)
		}
	}

	// Нормализуем префикс медиа-файлов
	if c.MediaPrefix == "" {
		c.MediaPrefix = "/media/"
	}
	if !strings.HasSuffix(c.MediaPrefix, "/") {
		c.MediaPrefix += "/"
	}

	// Устанавливаем путь к БД по умолчанию
	if c.DBPath == "" {
		c.DBPath = filepath.Join(c.OutputDir, ".picturegen", "state.sqlite")
	}

	return nil
}

// ResolvePage возвращает абсолютный путь страницы по идентификатору.
// Реализует picture.PageResolver поверх карты сайта.
func (c *Config) ResolvePage(ref string) (string, bool) {
	path, ok := c.Pages[ref]
	return path, ok
}

// HasLinkTarget проверяет, допустимо ли значение target.
// Пустое значение допустимо (target не задан).
func (c *Config) HasLinkTarget(target string) bool {
	if target == "" {
		return true
	}
	for _, t := range c.LinkTargets {
		if t == target {
			return true
		}
	}
	return false
}

/*
Возможные расширения:
- Добавить загрузку карты сайта из внешнего файла (sitemap.yaml)
- Добавить exclude-паттерны для сканирования
*/
