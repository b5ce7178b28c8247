// Package scanner отвечает за поиск и разбор описаний картинок.
package scanner

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/artemshloyda/picturegen/internal/config"
	"github.com/artemshloyda/picturegen/internal/picture"
	"github.com/artemshloyda/picturegen/internal/storage"
)

// Definition представляет одно найденное описание картинки.
type Definition struct {
	// Path - абсолютный путь к файлу-описанию.
	Path string

	// RelPath - относительный путь от директории с описаниями.
	RelPath string

	// Info - информация о файле для проверки идемпотентности.
	Info storage.FileInfo

	// Picture - разобранное описание (nil при ошибке разбора).
	Picture *picture.Config

	// Err - ошибка разбора или валидации (если есть).
	Err error
}

// Scanner сканирует директорию с описаниями картинок.
type Scanner struct {
	cfg *config.Config
}

// New создаёт новый Scanner.
func New(cfg *config.Config) *Scanner {
	return &Scanner{cfg: cfg}
}

// Scan запускает сканирование и отправляет найденные описания в канал.
// Ошибки разбора отдельных файлов не прерывают сканирование:
// они передаются в поле Err. Канал закрывается после завершения.
func (s *Scanner) Scan(ctx context.Context) (<-chan Definition, <-chan error) {
	defs := make(chan Definition, 100) // Буферизированный канал
	errs := make(chan error, 1)

	go func() {
		defer close(defs)
		defer close(errs)

		err := filepath.WalkDir(s.cfg.ContentDir, func(path string, d os.DirEntry, err error) error {
			// Проверяем контекст
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			if err != nil {
				// Логируем ошибку, но продолжаем
				fmt.Fprintf(os.Stderr, "Предупреждение: не удалось прочитать %s: %v\n", path, err)
				return nil
			}

			if d.IsDir() {
				// Пропускаем скрытые директории и директорию состояния
				name := d.Name()
				if name == ".picturegen" || strings.HasPrefix(name, ".") && path != s.cfg.ContentDir {
					return filepath.SkipDir
				}
				return nil
			}

			if !strings.HasSuffix(d.Name(), s.cfg.DefinitionSuffix) {
				return nil
			}

			info, err := d.Info()
			if err != nil {
				fmt.Fprintf(os.Stderr, "Предупреждение: не удалось получить info %s: %v\n", path, err)
				return nil
			}

			absPath, err := filepath.Abs(path)
			if err != nil {
				absPath = path
			}

			relPath, _ := filepath.Rel(s.cfg.ContentDir, path)

			def := Definition{
				Path:    absPath,
				RelPath: relPath,
				Info: storage.FileInfo{
					Path:  absPath,
					Size:  info.Size(),
					Mtime: info.ModTime().Unix(),
				},
			}
			def.Picture, def.Err = s.ParseFile(path)

			select {
			case defs <- def:
			case <-ctx.Done():
				return ctx.Err()
			}

			return nil
		})

		if err != nil {
			errs <- err
		}
	}()

	return defs, errs
}

// CountFiles возвращает количество описаний (для progress bar).
func (s *Scanner) CountFiles() (int64, error) {
	var count int64

	err := filepath.WalkDir(s.cfg.ContentDir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil // Игнорируем ошибки
		}

		if d.IsDir() {
			name := d.Name()
			if name == ".picturegen" || strings.HasPrefix(name, ".") && path != s.cfg.ContentDir {
				return filepath.SkipDir
			}
			return nil
		}

		if strings.HasSuffix(d.Name(), s.cfg.DefinitionSuffix) {
			count++
		}

		return nil
	})

	return count, err
}

/*
Возможные расширения:
- Добавить поддержку нескольких описаний в одном файле (yaml-документы)
- Добавить exclude-паттерны
*/
