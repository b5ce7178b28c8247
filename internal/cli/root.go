// Package cli содержит CLI интерфейс приложения.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/artemshloyda/picturegen/internal/config"
	"github.com/artemshloyda/picturegen/internal/progress"
	"github.com/artemshloyda/picturegen/internal/render"
	"github.com/artemshloyda/picturegen/internal/scanner"
	"github.com/artemshloyda/picturegen/internal/storage"
	"github.com/artemshloyda/picturegen/internal/watcher"
	"github.com/artemshloyda/picturegen/internal/worker"
)

var (
	// Version будет установлена при сборке.
	Version = "dev"

	// BuildTime будет установлена при сборке.
	BuildTime = "unknown"
)

// cfg содержит глобальную конфигурацию.
var cfg = config.DefaultConfig()

// configPath - явный путь к файлу конфигурации (--config).
var configPath string

// NewRootCmd создаёт корневую команду CLI.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "picturegen",
		Short: "Генератор HTML-фрагментов картинок для статических сайтов",
		Long: `Picturegen - CLI утилита для генерации HTML-фрагментов картинок.

Сканирует директорию с YAML-описаниями картинок (*.picture.yaml),
проверяет их и генерирует HTML-фрагменты (img/a/figure) с сохранением
структуры директорий. Поддерживает идемпотентность: повторный запуск
не генерирует уже готовые фрагменты.

Примеры:
  # Сгенерировать фрагменты для всех описаний
  picturegen --in ./content --out ./public/fragments

  # Responsive-варианты (srcset) с подробным выводом
  picturegen --in ./content --out ./public/fragments --responsive -v

  # Режим слежения: перегенерировать изменённые описания
  picturegen --in ./content --out ./public/fragments --watch

  # Dry run (симуляция без записи фрагментов)
  picturegen --in ./content --out ./public/fragments --dry-run`,
		RunE: runRender,
	}

	// Флаги
	flags := rootCmd.Flags()

	// Входные параметры
	flags.StringVar(&cfg.ContentDir, "in", "", "Директория с описаниями картинок (обязательно)")
	flags.StringVar(&cfg.OutputDir, "out", "", "Директория для HTML-фрагментов (обязательно)")
	flags.StringVar(&cfg.DefinitionSuffix, "suffix", cfg.DefinitionSuffix, "Суффикс файлов-описаний")

	// Выходные параметры
	flags.StringVar(&cfg.MediaPrefix, "media-prefix", cfg.MediaPrefix, "URL-префикс для встроенных изображений")
	flags.BoolVar(&cfg.ResponsiveImages, "responsive", cfg.ResponsiveImages, "Генерировать srcset с responsive-вариантами")
	flags.IntSliceVar(&cfg.Breakpoints, "breakpoints", cfg.Breakpoints, "Ширины viewport для responsive-вариантов (px)")

	// Режим работы
	flags.BoolVar(&cfg.DryRun, "dry-run", cfg.DryRun, "Симуляция без записи фрагментов")
	flags.BoolVar(&cfg.Watch, "watch", cfg.Watch, "Следить за директорией и перегенерировать изменённые описания")

	// Производительность
	flags.IntVar(&cfg.Workers, "workers", cfg.Workers, "Количество параллельных воркеров")

	// Пути
	flags.StringVar(&cfg.DBPath, "db", cfg.DBPath, "Путь к SQLite базе данных состояния")
	flags.StringVar(&configPath, "config", "", "Путь к файлу конфигурации")

	// Вывод
	flags.BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "Подробный вывод")
	flags.BoolVar(&cfg.NoProgress, "no-progress", cfg.NoProgress, "Отключить прогресс-бар")

	// Подкоманды
	rootCmd.AddCommand(newCheckCmd())
	rootCmd.AddCommand(newPresetsCmd())
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newStatsCmd())
	rootCmd.AddCommand(newConfigExampleCmd())

	return rootCmd
}

// applyFileConfig загружает файл конфигурации и применяет его к cfg.
// CLI флаги имеют приоритет: значения из файла берутся только для
// флагов, которые не были указаны явно.
func applyFileConfig(cmd *cobra.Command) error {
	fc, path, err := config.FindAndLoadConfig(configPath)
	if err != nil {
		return err
	}
	if fc == nil {
		return nil
	}

	if cfg.Verbose {
		fmt.Printf("📄 Конфигурация: %s\n", path)
	}

	fileCfg := config.DefaultConfig()
	fc.ApplyToConfig(fileCfg)

	flags := cmd.Flags()
	if !flags.Changed("in") && cfg.ContentDir == "" {
		cfg.ContentDir = fileCfg.ContentDir
	}
	if !flags.Changed("out") && cfg.OutputDir == "" {
		cfg.OutputDir = fileCfg.OutputDir
	}
	if !flags.Changed("suffix") {
		cfg.DefinitionSuffix = fileCfg.DefinitionSuffix
	}
	if !flags.Changed("media-prefix") {
		cfg.MediaPrefix = fileCfg.MediaPrefix
	}
	if !flags.Changed("responsive") {
		cfg.ResponsiveImages = fileCfg.ResponsiveImages
	}
	if !flags.Changed("breakpoints") {
		cfg.Breakpoints = fileCfg.Breakpoints
	}
	if !flags.Changed("workers") {
		cfg.Workers = fileCfg.Workers
	}
	if !flags.Changed("db") {
		cfg.DBPath = fileCfg.DBPath
	}
	if !flags.Changed("dry-run") {
		cfg.DryRun = fileCfg.DryRun
	}
	if !flags.Changed("verbose") {
		cfg.Verbose = fileCfg.Verbose
	}
	if !flags.Changed("no-progress") {
		cfg.NoProgress = fileCfg.NoProgress
	}

	// Сущности без флагов берутся из файла целиком
	cfg.Alignments = fileCfg.Alignments
	cfg.Pages = fileCfg.Pages
	cfg.Thumbnails = fileCfg.Thumbnails

	return nil
}

// runRender выполняет основную логику генерации.
func runRender(cmd *cobra.Command, args []string) error {
	startTime := time.Now()

	// Файл конфигурации + пользовательские пресеты
	if err := applyFileConfig(cmd); err != nil {
		return fmt.Errorf("ошибка конфигурации: %w", err)
	}
	if err := cfg.MergeUserPresets(); err != nil {
		return fmt.Errorf("ошибка загрузки пользовательских пресетов: %w", err)
	}

	// Валидация конфигурации
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("ошибка конфигурации: %w", err)
	}

	// Создаём контекст с обработкой сигналов
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Обработка сигналов завершения
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Println("\n⚠️  Получен сигнал завершения, останавливаем...")
		cancel()
	}()

	// Инициализируем хранилище
	store, err := storage.New(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("не удалось инициализировать БД: %w", err)
	}
	defer func() { _ = store.Close() }()

	// Очищаем прерванные задачи
	cleaned, err := store.CleanupInProgress()
	if err != nil {
		fmt.Fprintf(os.Stderr, "⚠️  Не удалось очистить in_progress: %v\n", err)
	} else if cleaned > 0 {
		fmt.Printf("🧹 Очищено %d прерванных задач\n", cleaned)
	}

	// Создаём рендерер и сканер
	rend := render.New(cfg)
	scan := scanner.New(cfg)

	// Выводим параметры
	fmt.Printf("🚀 Запуск генерации:\n")
	fmt.Printf("   Вход: %s\n", cfg.ContentDir)
	fmt.Printf("   Выход: %s\n", cfg.OutputDir)
	fmt.Printf("   Медиа-префикс: %s\n", cfg.MediaPrefix)
	fmt.Printf("   Воркеров: %d\n", cfg.Workers)
	if cfg.ResponsiveImages {
		fmt.Printf("   Responsive: да (breakpoints: %v)\n", cfg.Breakpoints)
	}
	if cfg.DryRun {
		fmt.Println("   ⚠️  Dry-run режим (без записи фрагментов)")
	}
	fmt.Println()

	// Создаём пул воркеров
	pool := worker.New(cfg, store, rend)

	// Прогресс-бар: в watch-режиме общее число заранее неизвестно
	if !cfg.Watch {
		total, countErr := scan.CountFiles()
		if countErr == nil && total > 0 {
			bar := progress.New(progress.Options{
				Total:    total,
				Disabled: cfg.NoProgress || cfg.Verbose,
			})
			pool.SetProgressBar(bar)
			defer bar.Finish()
		}
	}

	var stats worker.Stats

	if cfg.Watch {
		// Начальный проход по всем описаниям
		defs, errChan := scan.Scan(ctx)
		stats = pool.Process(ctx, defs, errChan)
		printStats(stats, time.Since(startTime))

		fmt.Println("\n👀 Слежение за изменениями (Ctrl+C для выхода)...")

		w, err := watcher.New(cfg, scan, store)
		if err != nil {
			return err
		}
		defer func() { _ = w.Close() }()

		watchDefs, err := w.Watch(ctx)
		if err != nil {
			return err
		}

		emptyErrs := make(chan error)
		close(emptyErrs)
		pool.Process(ctx, watchDefs, emptyErrs)
		return nil
	}

	defs, errChan := scan.Scan(ctx)
	stats = pool.Process(ctx, defs, errChan)

	printStats(stats, time.Since(startTime))

	if stats.Failed > 0 {
		return fmt.Errorf("завершено с %d ошибками", stats.Failed)
	}

	return nil
}

// printStats выводит итоговую статистику генерации.
func printStats(stats worker.Stats, duration time.Duration) {
	fmt.Println()
	fmt.Printf("📊 Результаты:\n")
	fmt.Printf("   Сгенерировано: %d\n", stats.Processed)
	fmt.Printf("   Пропущено: %d\n", stats.Skipped)
	fmt.Printf("   Ошибок: %d\n", stats.Failed)
	fmt.Printf("   Время: %s\n", duration.Round(time.Millisecond))
}

// newCheckCmd создаёт команду check: проверка описаний без генерации.
func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Проверить описания картинок без генерации фрагментов",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := applyFileConfig(cmd); err != nil {
				return fmt.Errorf("ошибка конфигурации: %w", err)
			}
			if err := cfg.MergeUserPresets(); err != nil {
				return fmt.Errorf("ошибка загрузки пользовательских пресетов: %w", err)
			}

			// Выходная директория для проверки не нужна
			if cfg.OutputDir == "" {
				cfg.OutputDir = "."
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("ошибка конфигурации: %w", err)
			}

			scan := scanner.New(cfg)
			defs, errChan := scan.Scan(cmd.Context())

			var total, failed int
			for def := range defs {
				total++
				if def.Err != nil {
					failed++
					fmt.Printf("❌ %s: %v\n", def.RelPath, def.Err)
				} else if cfg.Verbose {
					fmt.Printf("✅ %s\n", def.RelPath)
				}
			}
			if err := <-errChan; err != nil {
				return fmt.Errorf("ошибка сканирования: %w", err)
			}

			fmt.Printf("\n📊 Проверено описаний: %d, с ошибками: %d\n", total, failed)
			if failed > 0 {
				return fmt.Errorf("найдено %d некорректных описаний", failed)
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&cfg.ContentDir, "in", "", "Директория с описаниями картинок")
	flags.StringVar(&configPath, "config", "", "Путь к файлу конфигурации")
	flags.BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "Выводить и корректные описания")

	return cmd
}

// newVersionCmd создаёт команду version.
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Показать версию",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("picturegen %s (built %s)\n", Version, BuildTime)
		},
	}
}

// newStatsCmd создаёт команду stats.
func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Показать статистику из базы данных",
		RunE: func(cmd *cobra.Command, args []string) error {
			dbPath, _ := cmd.Flags().GetString("db")
			if dbPath == "" {
				return fmt.Errorf("укажите путь к БД через --db")
			}

			store, err := storage.New(dbPath)
			if err != nil {
				return fmt.Errorf("не удалось открыть БД: %w", err)
			}
			defer func() { _ = store.Close() }()

			total, ok, failed, inProgress, err := store.GetStats()
			if err != nil {
				return fmt.Errorf("не удалось получить статистику: %w", err)
			}

			fmt.Printf("📊 Статистика базы данных:\n")
			fmt.Printf("   Всего записей: %d\n", total)
			fmt.Printf("   Успешно: %d\n", ok)
			fmt.Printf("   Ошибок: %d\n", failed)
			fmt.Printf("   В процессе: %d\n", inProgress)

			return nil
		},
	}

	cmd.Flags().String("db", "", "Путь к SQLite базе данных")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

// newConfigExampleCmd создаёт команду config-example.
func newConfigExampleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config-example",
		Short: "Вывести пример файла конфигурации",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Print(config.GenerateExampleConfig())
		},
	}
}

// Execute запускает CLI.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		// Не выводим ошибку, cobra уже вывела
		os.Exit(1)
	}
}

/*
Возможные расширения:
- Добавить команду clean для очистки БД и устаревших фрагментов
- Добавить команду retry для повторной генерации failed
- Добавить команду export для экспорта статистики в JSON
*/
