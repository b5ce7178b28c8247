// Package scanner отвечает за поиск и разбор описаний картинок.
package scanner

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/artemshloyda/picturegen/internal/picture"
)

// fileDefinition представляет YAML-схему файла-описания.
type fileDefinition struct {
	// Source - путь к встроенному изображению.
	Source string `yaml:"source"`

	// External - внешний URL изображения.
	External string `yaml:"external"`

	// Width, Height - явные размеры в пикселях.
	Width  int `yaml:"width"`
	Height int `yaml:"height"`

	// Alignment - выравнивание.
	Alignment string `yaml:"alignment"`

	// Caption - подпись под картинкой.
	Caption string `yaml:"caption"`

	// Attributes - дополнительные HTML-атрибуты тега img.
	Attributes map[string]string `yaml:"attributes"`

	// Link - ссылка, оборачивающая картинку.
	Link *linkDefinition `yaml:"link"`

	// Scaling - параметры масштабирования.
	Scaling *scalingDefinition `yaml:"scaling"`
}

// linkDefinition описывает ссылку.
type linkDefinition struct {
	// URL - внешняя ссылка.
	URL string `yaml:"url"`

	// Page - идентификатор внутренней страницы.
	Page string `yaml:"page"`

	// Target - target ссылки.
	Target string `yaml:"target"`

	// Attributes - дополнительные HTML-атрибуты тега a.
	Attributes map[string]string `yaml:"attributes"`
}

// scalingDefinition описывает параметры масштабирования.
type scalingDefinition struct {
	// Automatic - размер определяется контейнером.
	Automatic bool `yaml:"automatic"`

	// Original - вывод оригинала без преобразований.
	Original bool `yaml:"original"`

	// Crop - обрезать изображение.
	Crop bool `yaml:"crop"`

	// Upscale - растягивать изображение.
	Upscale bool `yaml:"upscale"`

	// Thumbnail - имя пресета миниатюры.
	Thumbnail string `yaml:"thumbnail"`
}

// ParseFile читает и разбирает файл-описание.
func (s *Scanner) ParseFile(path string) (*picture.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("не удалось прочитать описание: %w", err)
	}
	return s.Parse(data)
}

// Parse разбирает YAML-описание в проверенную конфигурацию картинки.
// Возвращаемая конфигурация уже провалидирована: и инварианты самой
// картинки, и ссылки на сущности конфигурации (пресет, страница,
// выравнивание, target).
func (s *Scanner) Parse(data []byte) (*picture.Config, error) {
	var fd fileDefinition
	if err := yaml.Unmarshal(data, &fd); err != nil {
		return nil, fmt.Errorf("ошибка парсинга YAML: %w", err)
	}

	if fd.Width < 0 {
		return nil, fmt.Errorf("ширина должна быть положительной, получено: %d", fd.Width)
	}
	if fd.Height < 0 {
		return nil, fmt.Errorf("высота должна быть положительной, получено: %d", fd.Height)
	}

	pic := &picture.Config{
		Source:      fd.Source,
		ExternalURL: fd.External,
		Width:       fd.Width,
		Height:      fd.Height,
		Alignment:   fd.Alignment,
		Caption:     fd.Caption,
		Attributes:  fd.Attributes,
	}

	if fd.Link != nil {
		pic.LinkURL = fd.Link.URL
		pic.LinkPage = fd.Link.Page
		pic.LinkTarget = fd.Link.Target
		pic.LinkAttributes = fd.Link.Attributes
	}

	if fd.Scaling != nil {
		pic.UseAutomaticScaling = fd.Scaling.Automatic
		pic.UseNoCropping = fd.Scaling.Original
		pic.UseCrop = fd.Scaling.Crop
		pic.UseUpscale = fd.Scaling.Upscale

		if fd.Scaling.Thumbnail != "" {
			opt, ok := s.cfg.LookupThumbnail(fd.Scaling.Thumbnail)
			if !ok {
				return nil, fmt.Errorf("неизвестный пресет миниатюры %q (доступны: %s)",
					fd.Scaling.Thumbnail, strings.Join(s.cfg.ThumbnailNames(), ", "))
			}
			pic.Thumbnail = opt
		}
	}

	// Инварианты описания
	if err := pic.Validate(); err != nil {
		return nil, err
	}

	// Ссылки на сущности конфигурации
	if err := pic.ValidateAlignment(s.cfg.Alignments); err != nil {
		return nil, err
	}
	if !s.cfg.HasLinkTarget(pic.LinkTarget) {
		return nil, fmt.Errorf("недопустимый target %q (доступны: %s)",
			pic.LinkTarget, strings.Join(s.cfg.LinkTargets, ", "))
	}
	if pic.LinkPage != "" {
		if _, ok := s.cfg.ResolvePage(pic.LinkPage); !ok {
			return nil, fmt.Errorf("страница %q не найдена в карте сайта", pic.LinkPage)
		}
	}

	return pic, nil
}
