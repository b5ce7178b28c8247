// Package cli содержит CLI команды приложения.
package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/artemshloyda/picturegen/internal/config"
	"github.com/artemshloyda/picturegen/internal/picture"
)

// newPresetsCmd создаёт команду для управления пресетами миниатюр.
func newPresetsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "presets",
		Short: "Управление пользовательскими пресетами миниатюр",
		Long: `Управление пользовательскими пресетами миниатюр.

Пресеты хранятся в ~/.config/picturegen/presets/ и доступны
в описаниях картинок через scaling.thumbnail наравне со встроенными
(icon, teaser, gallery, hero). Пресеты из файла конфигурации имеют
приоритет над пользовательскими.

Примеры:
  # Сохранить пресет
  picturegen presets save sidebar --width 240 --height 180 --crop

  # Список пресетов
  picturegen presets list

  # Показать пресет
  picturegen presets show sidebar

  # Удалить пресет
  picturegen presets delete sidebar`,
	}

	cmd.AddCommand(newPresetsListCmd())
	cmd.AddCommand(newPresetsSaveCmd())
	cmd.AddCommand(newPresetsDeleteCmd())
	cmd.AddCommand(newPresetsShowCmd())

	return cmd
}

// newPresetsListCmd создаёт команду для списка пресетов.
func newPresetsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Показать список сохранённых пресетов",
		RunE: func(cmd *cobra.Command, args []string) error {
			presets, err := config.ListUserPresets()
			if err != nil {
				return fmt.Errorf("ошибка получения списка пресетов: %w", err)
			}

			if len(presets) == 0 {
				fmt.Println("Пресеты не найдены.")
				fmt.Println()
				fmt.Println("Сохраните пресет командой:")
				fmt.Println("  picturegen presets save sidebar --width 240 --height 180 --crop")
				return nil
			}

			fmt.Printf("📦 Сохранённые пресеты (%d):\n\n", len(presets))

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ИМЯ\tШИРИНА\tВЫСОТА\tCROP\tUPSCALE\tПУТЬ")
			fmt.Fprintln(w, "---\t------\t------\t----\t-------\t----")

			for _, p := range presets {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
					p.Name,
					formatSize(p.Option.Width),
					formatSize(p.Option.Height),
					formatBool(p.Option.Crop),
					formatBool(p.Option.Upscale),
					p.Path)
			}
			w.Flush()

			return nil
		},
	}
}

// formatSize форматирует размер пресета для таблицы.
func formatSize(v int) string {
	if v == 0 {
		return "-"
	}
	return fmt.Sprintf("%d", v)
}

// formatBool форматирует булево значение для таблицы.
func formatBool(v bool) string {
	if v {
		return "да"
	}
	return "-"
}

// newPresetsSaveCmd создаёт команду для сохранения пресета.
func newPresetsSaveCmd() *cobra.Command {
	var opt picture.ThumbnailOption

	cmd := &cobra.Command{
		Use:   "save [name]",
		Short: "Сохранить пресет миниатюры",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]

			if opt.Width == 0 && opt.Height == 0 {
				return fmt.Errorf("укажите хотя бы один размер через --width или --height")
			}

			path, err := config.SaveUserPreset(name, opt)
			if err != nil {
				return fmt.Errorf("ошибка сохранения пресета: %w", err)
			}

			fmt.Printf("✅ Пресет '%s' сохранён: %s\n", name, path)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.IntVar(&opt.Width, "width", 0, "Ширина миниатюры в пикселях")
	flags.IntVar(&opt.Height, "height", 0, "Высота миниатюры в пикселях")
	flags.BoolVar(&opt.Crop, "crop", false, "Обрезать изображение")
	flags.BoolVar(&opt.Upscale, "upscale", false, "Растягивать изображение")

	return cmd
}

// newPresetsDeleteCmd создаёт команду для удаления пресета.
func newPresetsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [name]",
		Short: "Удалить пресет",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]

			if !config.UserPresetExists(name) {
				return fmt.Errorf("пресет '%s' не найден", name)
			}

			if err := config.DeleteUserPreset(name); err != nil {
				return fmt.Errorf("ошибка удаления пресета: %w", err)
			}

			fmt.Printf("✅ Пресет '%s' удалён\n", name)
			return nil
		},
	}
}

// newPresetsShowCmd создаёт команду для отображения пресета.
func newPresetsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [name]",
		Short: "Показать содержимое пресета",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]

			opt, path, err := config.LoadUserPreset(name)
			if err != nil {
				return err
			}

			fmt.Printf("📦 Пресет: %s\n", name)
			fmt.Printf("📁 Путь: %s\n\n", path)

			if opt.Width > 0 {
				fmt.Printf("  width: %d\n", opt.Width)
			}
			if opt.Height > 0 {
				fmt.Printf("  height: %d\n", opt.Height)
			}
			fmt.Printf("  crop: %t\n", opt.Crop)
			fmt.Printf("  upscale: %t\n", opt.Upscale)

			return nil
		},
	}
}

/*
Возможные расширения:
- Добавить команду 'presets export' для экспорта в файл
- Добавить команду 'presets import' для импорта из файла
- Добавить команду 'presets copy' для копирования пресета
*/
