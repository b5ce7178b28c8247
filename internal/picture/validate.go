// Package picture содержит модель описания картинки и логику
// вычисления итоговых параметров рендеринга.
package picture

import (
	"errors"
	"fmt"
	"strings"
)

// Ошибки валидации описания картинки. Все они - ошибки пользовательского
// ввода: возникают синхронно при проверке и показываются редактору как есть.
var (
	// ErrMissingSource - не задан ни встроенный файл, ни внешний URL.
	ErrMissingSource = errors.New("не задан источник: укажите встроенное изображение или внешний URL")

	// ErrConflictingLink - заданы и внешняя, и внутренняя ссылка.
	ErrConflictingLink = errors.New("заданы внешняя и внутренняя ссылка одновременно: допускается только одна")

	// ErrConflictingCropping - выбрана недопустимая комбинация
	// параметров масштабирования.
	ErrConflictingCropping = errors.New("несовместимая комбинация параметров масштабирования")
)

// ScaleMode определяет режим масштабирования картинки.
// Режим вычисляется из "сырых" флагов на границе валидации,
// поэтому противоречивые комбинации дальше валидатора не проходят.
type ScaleMode int

const (
	// ScaleAutomatic - размер определяется контейнером (по умолчанию).
	ScaleAutomatic ScaleMode = iota

	// ScaleOriginal - вывод оригинала без преобразований.
	ScaleOriginal

	// ScaleThumbnail - размер задаёт пресет миниатюры.
	ScaleThumbnail

	// ScaleManual - ручное управление: crop и/или upscale.
	ScaleManual
)

// String возвращает строковое представление режима.
func (m ScaleMode) String() string {
	switch m {
	case ScaleAutomatic:
		return "automatic"
	case ScaleOriginal:
		return "original"
	case ScaleThumbnail:
		return "thumbnail"
	case ScaleManual:
		return "manual"
	}
	return "unknown"
}

// ScaleMode разбирает флаги масштабирования в один режим.
// Если выбрано больше одного режима, возвращает ErrConflictingCropping
// со списком выбранных вариантов.
func (c *Config) ScaleMode() (ScaleMode, error) {
	mode := ScaleAutomatic
	var selected []string

	if c.UseAutomaticScaling {
		mode = ScaleAutomatic
		selected = append(selected, "automatic")
	}
	if c.UseNoCropping {
		mode = ScaleOriginal
		selected = append(selected, "original")
	}
	if c.Thumbnail != nil {
		mode = ScaleThumbnail
		selected = append(selected, "thumbnail")
	}
	// crop и upscale работают вместе и считаются одним режимом
	if c.UseCrop || c.UseUpscale {
		mode = ScaleManual
		selected = append(selected, "crop/upscale")
	}

	if len(selected) > 1 {
		return mode, fmt.Errorf("%w: выбраны %s",
			ErrConflictingCropping, strings.Join(selected, ", "))
	}

	return mode, nil
}

// Validate проверяет инварианты описания картинки.
// Вызывается до сохранения и до рендеринга; сам рендеринг
// валидацию не повторяет. Побочных эффектов нет.
func (c *Config) Validate() error {
	// Ссылка может быть только одного типа
	if c.LinkURL != "" && c.LinkPage != "" {
		return ErrConflictingLink
	}

	// Источник обязателен
	if c.Source == "" && c.ExternalURL == "" {
		return ErrMissingSource
	}

	// Противоречивые режимы масштабирования отсекаются здесь
	if _, err := c.ScaleMode(); err != nil {
		return err
	}

	// Зарезервированные атрибуты рендерер выставляет сам
	if err := c.Attributes.CheckReserved(ReservedImageKeys); err != nil {
		return fmt.Errorf("атрибуты img: %w", err)
	}
	if err := c.LinkAttributes.CheckReserved(ReservedLinkKeys); err != nil {
		return fmt.Errorf("атрибуты ссылки: %w", err)
	}

	return nil
}

// ValidateAlignment проверяет выравнивание по списку допустимых значений.
// Пустое значение допустимо (выравнивание не задано).
func (c *Config) ValidateAlignment(allowed []string) error {
	if c.Alignment == "" {
		return nil
	}
	for _, a := range allowed {
		if c.Alignment == a {
			return nil
		}
	}
	return fmt.Errorf("недопустимое выравнивание %q (доступны: %s)",
		c.Alignment, strings.Join(allowed, ", "))
}
