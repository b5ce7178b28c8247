// Package render генерирует HTML-фрагменты картинок.
package render

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/artemshloyda/picturegen/internal/config"
	"github.com/artemshloyda/picturegen/internal/picture"
)

// Renderer строит HTML-фрагменты по описаниям картинок.
type Renderer struct {
	// cfg - конфигурация.
	cfg *config.Config
}

// Result содержит результат генерации одного фрагмента.
type Result struct {
	// Success - успешна ли генерация.
	Success bool

	// DstPath - путь к сгенерированному фрагменту.
	DstPath string

	// Error - ошибка (если есть).
	Error error

	// Duration - время генерации.
	Duration time.Duration
}

// New создаёт новый Renderer.
func New(cfg *config.Config) *Renderer {
	return &Renderer{cfg: cfg}
}

// Params возвращает параметры рендеринга в виде JSON.
// Изменение любого из них означает, что все фрагменты
// нужно сгенерировать заново.
func (r *Renderer) Params() string {
	params := map[string]interface{}{
		"media_prefix": r.cfg.MediaPrefix,
		"responsive":   r.cfg.ResponsiveImages,
		"breakpoints":  r.cfg.Breakpoints,
		"pages":        r.cfg.Pages,
		"thumbnails":   r.cfg.Thumbnails,
	}
	b, _ := json.Marshal(params)
	return string(b)
}

// ParamsHash возвращает sha256 хэш параметров рендеринга.
func (r *Renderer) ParamsHash() string {
	h := sha256.Sum256([]byte(r.Params()))
	return hex.EncodeToString(h[:])
}

// Render строит фрагмент для описания и атомарно записывает его в dstPath.
func (r *Renderer) Render(pic *picture.Config, dstPath string) *Result {
	start := time.Now()

	fragment := r.Fragment(pic)

	if err := r.writeAtomic(dstPath, fragment); err != nil {
		return &Result{
			Success:  false,
			Error:    err,
			Duration: time.Since(start),
		}
	}

	return &Result{
		Success:  true,
		DstPath:  dstPath,
		Duration: time.Since(start),
	}
}

// writeAtomic записывает фрагмент через временный файл с переименованием,
// чтобы потребители никогда не видели недописанный фрагмент.
func (r *Renderer) writeAtomic(dstPath, fragment string) error {
	dstDir := filepath.Dir(dstPath)
	if err := os.MkdirAll(dstDir, 0755); err != nil {
		return fmt.Errorf("не удалось создать директорию %s: %w", dstDir, err)
	}

	tmpPath := dstPath + ".rendering"
	if err := os.WriteFile(tmpPath, []byte(fragment), 0644); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("не удалось записать фрагмент: %w", err)
	}

	if err := os.Rename(tmpPath, dstPath); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("не удалось переименовать %s -> %s: %w", tmpPath, dstPath, err)
	}

	return nil
}

// BuildDstPath строит путь к выходному фрагменту,
// сохраняя структуру директорий относительно ContentDir.
func (r *Renderer) BuildDstPath(srcPath string) string {
	relPath, err := filepath.Rel(r.cfg.ContentDir, srcPath)
	if err != nil {
		// Fallback на имя файла
		relPath = filepath.Base(srcPath)
	}

	relPath = strings.TrimSuffix(relPath, r.cfg.DefinitionSuffix) + ".html"
	return filepath.Join(r.cfg.OutputDir, relPath)
}

/*
Возможные расширения:
- Добавить выбор шаблона фрагмента (figure/plain) в описании
- Добавить минификацию выходного HTML
*/
