// Package picture содержит модель описания картинки и логику
// вычисления итоговых параметров рендеринга.
package picture

// ThumbnailOption представляет именованный пресет миниатюры.
// Пресет целиком переопределяет ширину, высоту, crop и upscale.
type ThumbnailOption struct {
	// Name - имя пресета.
	Name string `yaml:"name"`

	// Width - ширина в пикселях.
	Width int `yaml:"width"`

	// Height - высота в пикселях.
	Height int `yaml:"height"`

	// Crop - обрезать изображение под заданный размер.
	Crop bool `yaml:"crop"`

	// Upscale - растягивать изображение до заданного размера.
	Upscale bool `yaml:"upscale"`
}

// Config описывает одну картинку: источник, размеры, ссылку
// и параметры масштабирования.
type Config struct {
	// Source - путь к встроенному изображению относительно медиа-директории.
	Source string

	// ExternalURL - внешний URL изображения.
	// Опции обрезки и responsive-варианты к внешним картинкам не применяются.
	ExternalURL string

	// Width - явная ширина в пикселях (0 = не задана).
	Width int

	// Height - явная высота в пикселях (0 = не задана).
	Height int

	// Alignment - выравнивание (проверяется по списку допустимых значений).
	Alignment string

	// Caption - подпись под картинкой.
	Caption string

	// Attributes - дополнительные HTML-атрибуты тега img.
	Attributes Attributes

	// LinkURL - внешняя ссылка, оборачивающая картинку.
	LinkURL string

	// LinkPage - идентификатор внутренней страницы для ссылки.
	LinkPage string

	// LinkTarget - target ссылки (_blank, _self, _parent, _top).
	LinkTarget string

	// LinkAttributes - дополнительные HTML-атрибуты тега a.
	LinkAttributes Attributes

	// UseAutomaticScaling - размер определяется контейнером.
	// Флаг участвует только в валидации и в шаблонном слое,
	// на вычисление размеров не влияет.
	UseAutomaticScaling bool

	// UseNoCropping - выводить оригинал без преобразований.
	// Как и UseAutomaticScaling, участвует только в валидации.
	UseNoCropping bool

	// UseCrop - обрезать изображение. Совместим с UseUpscale.
	UseCrop bool

	// UseUpscale - растягивать изображение. Совместим с UseCrop.
	UseUpscale bool

	// Thumbnail - пресет миниатюры. Переопределяет все остальные
	// параметры размера.
	Thumbnail *ThumbnailOption
}

// Directive содержит итоговые параметры рендеринга картинки.
type Directive struct {
	// Width - итоговая ширина (0 = не ограничена).
	Width int

	// Height - итоговая высота (0 = не ограничена).
	Height int

	// Crop - обрезать под размер.
	Crop bool

	// Upscale - растягивать до размера.
	Upscale bool
}

// IsZero возвращает true, если директива не задаёт никаких преобразований.
func (d Directive) IsZero() bool {
	return d.Width == 0 && d.Height == 0 && !d.Crop && !d.Upscale
}

// Resolve вычисляет итоговые параметры рендеринга.
// Порядок слоёв (каждый следующий переопределяет предыдущие):
//  1. нулевая директива;
//  2. явные Width/Height;
//  3. флаги UseCrop/UseUpscale;
//  4. пресет Thumbnail - целиком.
//
// UseAutomaticScaling и UseNoCropping здесь сознательно не читаются:
// они проверяются валидатором и интерпретируются шаблонным слоем.
func (c *Config) Resolve() Directive {
	var d Directive

	if c.Width > 0 {
		d.Width = c.Width
	}
	if c.Height > 0 {
		d.Height = c.Height
	}

	if c.UseCrop {
		d.Crop = true
	}
	if c.UseUpscale {
		d.Upscale = true
	}

	if c.Thumbnail != nil {
		d.Width = c.Thumbnail.Width
		d.Height = c.Thumbnail.Height
		d.Crop = c.Thumbnail.Crop
		d.Upscale = c.Thumbnail.Upscale
	}

	return d
}

// PageResolver разрешает идентификатор внутренней страницы
// в абсолютный путь.
type PageResolver interface {
	// ResolvePage возвращает абсолютный путь страницы по идентификатору.
	ResolvePage(ref string) (string, bool)
}

// Link возвращает ссылку, которой нужно обернуть картинку.
// Приоритет: LinkURL, затем разрешённый LinkPage.
// Второе значение false означает, что ссылки нет.
func (c *Config) Link(pages PageResolver) (string, bool) {
	if c.LinkURL != "" {
		return c.LinkURL, true
	}
	if c.LinkPage != "" && pages != nil {
		if path, ok := pages.ResolvePage(c.LinkPage); ok {
			return path, true
		}
	}
	return "", false
}

/*
Возможные расширения:
- Добавить поддержку нескольких источников (art direction, тег picture)
- Добавить фокусную точку для обрезки (subject location)
*/
