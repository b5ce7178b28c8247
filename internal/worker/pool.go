// Package worker содержит пул воркеров для параллельной генерации.
package worker

import (
	"context"
	"fmt"
	"os"
	"sync"
	"sync/atomic"

	"github.com/artemshloyda/picturegen/internal/config"
	"github.com/artemshloyda/picturegen/internal/progress"
	"github.com/artemshloyda/picturegen/internal/render"
	"github.com/artemshloyda/picturegen/internal/scanner"
	"github.com/artemshloyda/picturegen/internal/storage"
)

// Stats содержит статистику генерации.
type Stats struct {
	// Processed - количество сгенерированных фрагментов.
	Processed int64

	// Skipped - количество пропущенных описаний.
	Skipped int64

	// Failed - количество описаний с ошибками.
	Failed int64

	// Total - общее количество описаний.
	Total int64
}

// Pool управляет пулом воркеров для генерации фрагментов.
type Pool struct {
	cfg      *config.Config
	storage  *storage.Storage
	renderer *render.Renderer
	stats    Stats
	verbose  bool
	progress *progress.Bar
}

// New создаёт новый пул воркеров.
func New(cfg *config.Config, st *storage.Storage, r *render.Renderer) *Pool {
	return &Pool{
		cfg:      cfg,
		storage:  st,
		renderer: r,
		verbose:  cfg.Verbose,
	}
}

// SetProgressBar устанавливает прогресс-бар для отображения прогресса.
func (p *Pool) SetProgressBar(bar *progress.Bar) {
	p.progress = bar
}

// Process запускает генерацию описаний из канала.
func (p *Pool) Process(ctx context.Context, defs <-chan scanner.Definition, errChan <-chan error) Stats {
	var wg sync.WaitGroup

	// Параметры рендеринга одинаковы для всех описаний в рамках запуска
	params := p.renderer.Params()
	paramsHash := p.renderer.ParamsHash()

	for i := 0; i < p.cfg.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p.worker(ctx, defs, params, paramsHash)
		}()
	}

	wg.Wait()

	// Проверяем ошибки сканирования
	select {
	case err := <-errChan:
		if err != nil {
			fmt.Fprintf(os.Stderr, "Ошибка сканирования: %v\n", err)
		}
	default:
	}

	return p.GetStats()
}

// worker обрабатывает описания из канала.
func (p *Pool) worker(ctx context.Context, defs <-chan scanner.Definition, params, paramsHash string) {
	for {
		select {
		case <-ctx.Done():
			return
		case def, ok := <-defs:
			if !ok {
				return
			}
			p.processDefinition(def, params, paramsHash)
		}
	}
}

// processDefinition обрабатывает одно описание.
func (p *Pool) processDefinition(def scanner.Definition, params, paramsHash string) {
	atomic.AddInt64(&p.stats.Total, 1)

	// Ошибка разбора: описание не попадает в БД,
	// при следующем запуске попытка повторится
	if def.Err != nil {
		p.logError(def.RelPath, def.Err)
		if p.progress != nil {
			p.progress.IncrementFailed()
		}
		atomic.AddInt64(&p.stats.Failed, 1)
		return
	}

	// Пытаемся начать генерацию
	result, err := p.storage.TryStartRender(def.Info, params, paramsHash)
	if err != nil {
		p.logError(def.RelPath, fmt.Errorf("ошибка БД: %w", err))
		atomic.AddInt64(&p.stats.Failed, 1)
		return
	}

	if !result.Started {
		if p.verbose {
			p.logMessage("⏭️  Пропущен: %s (%s)\n", def.RelPath, result.SkipReason)
		}
		if p.progress != nil {
			p.progress.IncrementSkipped()
		}
		atomic.AddInt64(&p.stats.Skipped, 1)
		return
	}

	dstPath := p.renderer.BuildDstPath(def.Path)

	// Dry run mode
	if p.cfg.DryRun {
		p.logMessage("🔄 [dry-run] %s -> %s\n", def.RelPath, dstPath)
		_ = p.storage.FinalizeRenderOK(result.RenderID, dstPath)
		if p.progress != nil {
			p.progress.Increment()
		}
		atomic.AddInt64(&p.stats.Processed, 1)
		return
	}

	// Генерируем фрагмент
	renderResult := p.renderer.Render(def.Picture, dstPath)

	if !renderResult.Success {
		p.logError(def.RelPath, renderResult.Error)
		_ = p.storage.FinalizeRenderFailed(result.RenderID, renderResult.Error.Error())
		if p.progress != nil {
			p.progress.IncrementFailed()
		}
		atomic.AddInt64(&p.stats.Failed, 1)
		return
	}

	if err := p.storage.FinalizeRenderOK(result.RenderID, dstPath); err != nil {
		p.logError(def.RelPath, fmt.Errorf("не удалось обновить БД: %w", err))
		atomic.AddInt64(&p.stats.Failed, 1)
		return
	}

	if p.verbose {
		p.logMessage("✅ %s -> %s (%.2fs)\n", def.RelPath, dstPath, renderResult.Duration.Seconds())
	}
	if p.progress != nil {
		p.progress.Increment()
	}
	atomic.AddInt64(&p.stats.Processed, 1)
}

// logMessage выводит сообщение, не ломая прогресс-бар.
func (p *Pool) logMessage(format string, args ...interface{}) {
	if p.progress != nil && !p.progress.IsDisabled() {
		p.progress.WriteMessage(format, args...)
	} else {
		fmt.Printf(format, args...)
	}
}

// logError логирует ошибку.
func (p *Pool) logError(path string, err error) {
	if p.progress != nil && !p.progress.IsDisabled() {
		p.progress.WriteMessage("❌ %s: %v\n", path, err)
	} else {
		fmt.Fprintf(os.Stderr, "❌ %s: %v\n", path, err)
	}
}

// GetStats возвращает текущую статистику.
func (p *Pool) GetStats() Stats {
	return Stats{
		Processed: atomic.LoadInt64(&p.stats.Processed),
		Skipped:   atomic.LoadInt64(&p.stats.Skipped),
		Failed:    atomic.LoadInt64(&p.stats.Failed),
		Total:     atomic.LoadInt64(&p.stats.Total),
	}
}

/*
Возможные расширения:
- Добавить retry логику для failed описаний
- Добавить удаление фрагментов для исчезнувших описаний
*/
