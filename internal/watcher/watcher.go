// Package watcher предоставляет функциональность слежения за директорией.
package watcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/artemshloyda/picturegen/internal/config"
	"github.com/artemshloyda/picturegen/internal/scanner"
	"github.com/artemshloyda/picturegen/internal/storage"
)

// Watcher следит за директорией и отправляет изменённые описания в канал.
type Watcher struct {
	// cfg - конфигурация.
	cfg *config.Config

	// scanner - разбирает изменённые файлы-описания.
	scanner *scanner.Scanner

	// storage - хранилище состояния; изменённые описания инвалидируются,
	// чтобы их можно было сгенерировать заново.
	storage *storage.Storage

	// watcher - fsnotify watcher.
	watcher *fsnotify.Watcher

	// debounceTime - время ожидания перед обработкой файла.
	// Нужно для того, чтобы файл успел полностью записаться.
	debounceTime time.Duration

	// pending - файлы, ожидающие обработки (для debounce).
	pending map[string]time.Time
	mu      sync.Mutex
}

// New создаёт новый Watcher.
func New(cfg *config.Config, sc *scanner.Scanner, st *storage.Storage) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("не удалось создать watcher: %w", err)
	}

	return &Watcher{
		cfg:          cfg,
		scanner:      sc,
		storage:      st,
		watcher:      w,
		debounceTime: 500 * time.Millisecond,
		pending:      make(map[string]time.Time),
	}, nil
}

// SetDebounceTime устанавливает время debounce.
func (w *Watcher) SetDebounceTime(d time.Duration) {
	w.debounceTime = d
}

// Watch запускает слежение за директорией и возвращает канал с описаниями.
func (w *Watcher) Watch(ctx context.Context) (<-chan scanner.Definition, error) {
	// Добавляем директорию и все поддиректории
	if err := w.addRecursive(w.cfg.ContentDir); err != nil {
		return nil, err
	}

	defs := make(chan scanner.Definition, 100)

	// Горутина для обработки событий
	go w.processEvents(ctx, defs)

	// Горутина для debounce
	go w.processPending(ctx, defs)

	return defs, nil
}

// addRecursive добавляет директорию и все поддиректории в watcher.
func (w *Watcher) addRecursive(dir string) error {
	return filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			name := info.Name()
			if path != dir && (strings.HasPrefix(name, ".") || name == ".picturegen") {
				return filepath.SkipDir
			}
			if err := w.watcher.Add(path); err != nil {
				return fmt.Errorf("не удалось добавить директорию %s: %w", path, err)
			}
		}
		return nil
	})
}

// processEvents обрабатывает события от fsnotify.
func (w *Watcher) processEvents(ctx context.Context, defs chan<- scanner.Definition) {
	defer close(defs)
	defer w.watcher.Close()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}

			// Обрабатываем только создание и запись файлов
			if event.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}

			// Проверяем, что это файл (не директория)
			info, err := os.Stat(event.Name)
			if err != nil {
				continue
			}

			if info.IsDir() {
				// Новая директория - добавляем в watcher
				if event.Op&fsnotify.Create != 0 {
					_ = w.watcher.Add(event.Name)
				}
				continue
			}

			// Проверяем суффикс описания
			if !strings.HasSuffix(event.Name, w.cfg.DefinitionSuffix) {
				continue
			}

			// Добавляем в pending для debounce
			w.mu.Lock()
			w.pending[event.Name] = time.Now()
			w.mu.Unlock()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			fmt.Fprintf(os.Stderr, "Ошибка watcher: %v\n", err)
		}
	}
}

// processPending обрабатывает файлы из pending после debounce.
func (w *Watcher) processPending(ctx context.Context, defs chan<- scanner.Definition) {
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.checkPending(defs)
		}
	}
}

// checkPending проверяет pending файлы и отправляет готовые.
func (w *Watcher) checkPending(defs chan<- scanner.Definition) {
	w.mu.Lock()
	defer w.mu.Unlock()

	now := time.Now()
	for path, addedAt := range w.pending {
		if now.Sub(addedAt) < w.debounceTime {
			continue
		}

		// Файл готов к обработке
		delete(w.pending, path)

		// Получаем информацию о файле
		info, err := os.Stat(path)
		if err != nil {
			continue
		}

		relPath, err := filepath.Rel(w.cfg.ContentDir, path)
		if err != nil {
			relPath = filepath.Base(path)
		}

		// Сканер хранит абсолютные пути, ключи БД должны совпадать
		absPath, err := filepath.Abs(path)
		if err != nil {
			absPath = path
		}

		// Изменённое описание инвалидируем: старая запись в БД
		// сделана для прежнего содержимого файла
		if err := w.storage.InvalidateBySrcPath(absPath); err != nil {
			fmt.Fprintf(os.Stderr, "Ошибка инвалидации %s: %v\n", relPath, err)
		}

		def := scanner.Definition{
			Path:    absPath,
			RelPath: relPath,
			Info: storage.FileInfo{
				Path:  absPath,
				Size:  info.Size(),
				Mtime: info.ModTime().Unix(),
			},
		}

		pic, err := w.scanner.ParseFile(path)
		if err != nil {
			def.Err = err
		} else {
			def.Picture = pic
		}

		defs <- def
	}
}

// Close закрывает watcher.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}

/*
Возможные расширения:
- Добавить обработку удаления описаний (удаление фрагмента)
- Добавить обработку переименования файлов
- Добавить rate limiting для большого количества файлов
*/
