// Package render генерирует HTML-фрагменты картинок.
package render

import (
	"fmt"
	"html"
	"math"
	"path"
	"strings"

	"github.com/artemshloyda/picturegen/internal/picture"
)

// Fragment строит HTML-фрагмент для описания картинки.
// Описание должно быть провалидировано заранее: Fragment
// валидацию не повторяет.
func (r *Renderer) Fragment(pic *picture.Config) string {
	d := pic.Resolve()

	// Режим уже проверен валидатором, конфликт здесь невозможен
	mode, _ := pic.ScaleMode()

	markup := r.imgTag(pic, d, mode)

	if link, ok := pic.Link(r.cfg); ok {
		markup = r.linkTag(pic, link, markup)
	}

	if pic.Caption != "" {
		markup = "<figure class=\"picture\">\n  " + markup +
			"\n  <figcaption>" + html.EscapeString(pic.Caption) + "</figcaption>\n</figure>"
	}

	return markup + "\n"
}

// imgTag строит тег img.
func (r *Renderer) imgTag(pic *picture.Config, d picture.Directive, mode picture.ScaleMode) string {
	var b strings.Builder
	b.WriteString("<img src=\"")
	b.WriteString(html.EscapeString(r.srcURL(pic, d, mode)))
	b.WriteString("\"")

	// В режиме оригинала размеры не навязываются
	if mode != picture.ScaleOriginal {
		if d.Width > 0 {
			fmt.Fprintf(&b, " width=\"%d\"", d.Width)
		}
		if d.Height > 0 {
			fmt.Fprintf(&b, " height=\"%d\"", d.Height)
		}
	}

	if _, ok := pic.Attributes["alt"]; !ok {
		b.WriteString(" alt=\"\"")
	}

	if pic.Alignment != "" {
		fmt.Fprintf(&b, " class=\"align-%s\"", html.EscapeString(pic.Alignment))
	}

	if r.useResponsive(pic, mode) {
		fmt.Fprintf(&b, " srcset=\"%s\" sizes=\"100vw\"", html.EscapeString(r.srcset(pic, d)))
	}

	writeAttributes(&b, pic.Attributes)

	b.WriteString(">")
	return b.String()
}

// linkTag оборачивает разметку в тег a.
func (r *Renderer) linkTag(pic *picture.Config, link, inner string) string {
	var b strings.Builder
	b.WriteString("<a href=\"")
	b.WriteString(html.EscapeString(link))
	b.WriteString("\"")

	if pic.LinkTarget != "" {
		fmt.Fprintf(&b, " target=\"%s\"", html.EscapeString(pic.LinkTarget))
	}

	writeAttributes(&b, pic.LinkAttributes)

	b.WriteString(">")
	b.WriteString(inner)
	b.WriteString("</a>")
	return b.String()
}

// srcURL возвращает URL основного изображения.
func (r *Renderer) srcURL(pic *picture.Config, d picture.Directive, mode picture.ScaleMode) string {
	// Внешние картинки не преобразуются
	if pic.ExternalURL != "" {
		return pic.ExternalURL
	}
	// Оригинал выводится без трансформаций
	if mode == picture.ScaleOriginal {
		return r.MediaURL(pic.Source, picture.Directive{})
	}
	return r.MediaURL(pic.Source, d)
}

// MediaURL строит URL встроенного изображения с учётом директивы.
// Параметры преобразования кодируются суффиксом имени файла,
// который обслуживает внешний thumbnailer:
//
//	photos/team.jpg + {300x200, crop} -> /media/photos/team__300x200c.jpg
//
// Нулевая директива возвращает оригинальный URL без суффикса.
func (r *Renderer) MediaURL(source string, d picture.Directive) string {
	base := r.cfg.MediaPrefix + strings.TrimPrefix(source, "/")
	if d.IsZero() {
		return base
	}

	ext := path.Ext(base)
	stem := strings.TrimSuffix(base, ext)

	suffix := fmt.Sprintf("__%dx%d", d.Width, d.Height)
	if d.Crop {
		suffix += "c"
	}
	if d.Upscale {
		suffix += "u"
	}

	return stem + suffix + ext
}

// useResponsive определяет, нужны ли responsive-варианты.
// Внешние картинки и режим оригинала исключаются.
func (r *Renderer) useResponsive(pic *picture.Config, mode picture.ScaleMode) bool {
	return r.cfg.ResponsiveImages &&
		pic.ExternalURL == "" &&
		mode != picture.ScaleOriginal &&
		len(r.cfg.Breakpoints) > 0
}

// srcset строит значение атрибута srcset по breakpoints конфигурации.
// Высота масштабируется пропорционально, если заданы обе стороны.
func (r *Renderer) srcset(pic *picture.Config, d picture.Directive) string {
	entries := make([]string, 0, len(r.cfg.Breakpoints))

	for _, bp := range r.cfg.Breakpoints {
		v := d
		if d.Width > 0 && d.Height > 0 {
			v.Height = int(math.Round(float64(bp) * float64(d.Height) / float64(d.Width)))
		} else {
			v.Height = 0
		}
		v.Width = bp

		entries = append(entries, fmt.Sprintf("%s %dw", r.MediaURL(pic.Source, v), bp))
	}

	return strings.Join(entries, ", ")
}

// writeAttributes дописывает дополнительные атрибуты в алфавитном порядке.
func writeAttributes(b *strings.Builder, attrs picture.Attributes) {
	for _, key := range attrs.SortedKeys() {
		fmt.Fprintf(b, " %s=\"%s\"",
			html.EscapeString(key), html.EscapeString(attrs[key]))
	}
}
