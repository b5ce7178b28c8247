// Package config содержит конфигурацию приложения.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/artemshloyda/picturegen/internal/picture"
)

// FileConfig представляет структуру конфигурационного файла YAML.
// Все поля опциональны - если не указаны, используются значения по умолчанию.
type FileConfig struct {
	// Content - настройки входных описаний.
	Content *ContentConfig `yaml:"content,omitempty"`

	// Output - настройки выходных фрагментов.
	Output *OutputConfig `yaml:"output,omitempty"`

	// Render - настройки процесса генерации.
	Render *RenderConfig `yaml:"render,omitempty"`

	// Paths - настройки путей.
	Paths *PathsConfig `yaml:"paths,omitempty"`

	// Alignments - допустимые значения выравнивания.
	Alignments []string `yaml:"alignments,omitempty"`

	// Pages - карта сайта: идентификатор страницы -> абсолютный путь.
	Pages map[string]string `yaml:"pages,omitempty"`

	// Thumbnails - пресеты миниатюр.
	Thumbnails map[string]picture.ThumbnailOption `yaml:"thumbnails,omitempty"`
}

// ContentConfig содержит настройки входных описаний.
type ContentConfig struct {
	// Dir - директория с описаниями картинок.
	Dir string `yaml:"dir,omitempty"`

	// Suffix - суффикс файлов-описаний.
	Suffix string `yaml:"suffix,omitempty"`
}

// OutputConfig содержит настройки выходных фрагментов.
type OutputConfig struct {
	// Dir - директория для HTML-фрагментов.
	Dir string `yaml:"dir,omitempty"`

	// MediaPrefix - URL-префикс для встроенных изображений.
	MediaPrefix string `yaml:"media_prefix,omitempty"`

	// Responsive - генерировать srcset с responsive-вариантами.
	Responsive *bool `yaml:"responsive,omitempty"`

	// Breakpoints - ширины viewport для responsive-вариантов.
	Breakpoints []int `yaml:"breakpoints,omitempty"`
}

// RenderConfig содержит настройки процесса генерации.
type RenderConfig struct {
	// Workers - количество параллельных воркеров.
	Workers int `yaml:"workers,omitempty"`

	// DryRun - режим симуляции.
	DryRun bool `yaml:"dry_run,omitempty"`

	// Verbose - подробный вывод.
	Verbose bool `yaml:"verbose,omitempty"`

	// NoProgress - отключить прогресс-бар.
	NoProgress bool `yaml:"no_progress,omitempty"`
}

// PathsConfig содержит настройки путей.
type PathsConfig struct {
	// DB - путь к SQLite базе данных состояния.
	DB string `yaml:"db,omitempty"`
}

// DefaultConfigPaths возвращает список путей для поиска конфигурационного файла.
// Поиск выполняется в следующем порядке:
// 1. ./picturegen.yaml (текущая директория)
// 2. ./picturegen.yml
// 3. ~/.config/picturegen/config.yaml
// 4. ~/.config/picturegen/config.yml
func DefaultConfigPaths() []string {
	paths := []string{
		"picturegen.yaml",
		"picturegen.yml",
	}

	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths,
			filepath.Join(home, ".config", "picturegen", "config.yaml"),
			filepath.Join(home, ".config", "picturegen", "config.yml"),
		)
	}

	return paths
}

// LoadFromFile загружает конфигурацию из указанного файла.
// Возвращает nil, nil если файл не существует.
func LoadFromFile(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("не удалось прочитать файл конфигурации %s: %w", path, err)
	}

	var fc FileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("ошибка парсинга YAML в %s: %w", path, err)
	}

	return &fc, nil
}

// FindAndLoadConfig ищет и загружает конфигурационный файл из стандартных путей.
// Если configPath указан явно, использует только его.
// Возвращает nil, nil если файл не найден.
func FindAndLoadConfig(configPath string) (*FileConfig, string, error) {
	if configPath != "" {
		fc, err := LoadFromFile(configPath)
		if err != nil {
			return nil, "", err
		}
		if fc == nil {
			return nil, "", fmt.Errorf("файл конфигурации не найден: %s", configPath)
		}
		return fc, configPath, nil
	}

	for _, path := range DefaultConfigPaths() {
		fc, err := LoadFromFile(path)
		if err != nil {
			return nil, "", err
		}
		if fc != nil {
			return fc, path, nil
		}
	}

	return nil, "", nil
}

// ApplyToConfig применяет настройки из файла к основной конфигурации.
// CLI флаги имеют приоритет над файлом конфигурации, поэтому
// эта функция должна вызываться до парсинга CLI флагов.
func (fc *FileConfig) ApplyToConfig(cfg *Config) {
	if fc == nil {
		return
	}

	if fc.Content != nil {
		if fc.Content.Dir != "" {
			cfg.ContentDir = fc.Content.Dir
		}
		if fc.Content.Suffix != "" {
			cfg.DefinitionSuffix = fc.Content.Suffix
		}
	}

	if fc.Output != nil {
		if fc.Output.Dir != "" {
			cfg.OutputDir = fc.Output.Dir
		}
		if fc.Output.MediaPrefix != "" {
			cfg.MediaPrefix = fc.Output.MediaPrefix
		}
		if fc.Output.Responsive != nil {
			cfg.ResponsiveImages = *fc.Output.Responsive
		}
		if len(fc.Output.Breakpoints) > 0 {
			cfg.Breakpoints = fc.Output.Breakpoints
		}
	}

	if fc.Render != nil {
		if fc.Render.Workers > 0 {
			cfg.Workers = fc.Render.Workers
		}
		if fc.Render.DryRun {
			cfg.DryRun = true
		}
		if fc.Render.Verbose {
			cfg.Verbose = true
		}
		if fc.Render.NoProgress {
			cfg.NoProgress = true
		}
	}

	if fc.Paths != nil {
		if fc.Paths.DB != "" {
			cfg.DBPath = fc.Paths.DB
		}
	}

	if len(fc.Alignments) > 0 {
		cfg.Alignments = fc.Alignments
	}

	if len(fc.Pages) > 0 {
		if cfg.Pages == nil {
			cfg.Pages = make(map[string]string, len(fc.Pages))
		}
		for ref, path := range fc.Pages {
			cfg.Pages[ref] = path
		}
	}

	if len(fc.Thumbnails) > 0 {
		if cfg.Thumbnails == nil {
			cfg.Thumbnails = make(map[string]picture.ThumbnailOption, len(fc.Thumbnails))
		}
		for name, opt := range fc.Thumbnails {
			cfg.Thumbnails[name] = opt
		}
	}
}

// GenerateExampleConfig генерирует пример конфигурационного файла.
func GenerateExampleConfig() string {
	return `# Picturegen Configuration File
# Все параметры опциональны - если не указаны, используются значения по умолчанию.
# CLI флаги имеют приоритет над этим файлом.

content:
  # Директория с описаниями картинок
  dir: "./content"
  # Суффикс файлов-описаний
  suffix: ".picture.yaml"

output:
  # Директория для сгенерированных HTML-фрагментов
  dir: "./public/fragments"
  # URL-префикс для встроенных изображений
  media_prefix: "/media/"
  # Генерировать srcset с responsive-вариантами
  responsive: false
  # Ширины viewport для responsive-вариантов (px)
  breakpoints: [576, 768, 992]

render:
  # Количество параллельных воркеров (по умолчанию = CPU cores)
  workers: 8
  # Симуляция без записи файлов
  dry_run: false
  # Подробный вывод
  verbose: false
  # Отключить прогресс-бар
  no_progress: false

paths:
  # Путь к SQLite базе данных состояния
  db: ""

# Допустимые значения выравнивания
alignments: [left, right, center]

# Карта сайта для внутренних ссылок: идентификатор -> абсолютный путь
pages:
  about: /about/
  contact: /contact/

# Пресеты миниатюр (дополняют встроенные icon, teaser, gallery, hero)
thumbnails:
  sidebar:
    width: 240
    height: 180
    crop: true
`
}

/*
Возможные расширения:
- Добавить поддержку переменных окружения в конфиге
- Добавить команду 'config init' для генерации конфига
*/
