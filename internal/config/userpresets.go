// Package config содержит конфигурацию приложения.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/artemshloyda/picturegen/internal/picture"
)

// UserPreset представляет пользовательский пресет миниатюры,
// сохранённый в домашней директории.
type UserPreset struct {
	// Name - имя пресета.
	Name string
	// Path - путь к файлу пресета.
	Path string
	// Option - параметры миниатюры.
	Option picture.ThumbnailOption
}

// GetPresetsDir возвращает директорию для хранения пользовательских пресетов.
func GetPresetsDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("не удалось получить домашнюю директорию: %w", err)
	}

	return filepath.Join(homeDir, ".config", "picturegen", "presets"), nil
}

// EnsurePresetsDir создаёт директорию для пресетов если она не существует.
func EnsurePresetsDir() (string, error) {
	presetsDir, err := GetPresetsDir()
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(presetsDir, 0755); err != nil {
		return "", fmt.Errorf("не удалось создать директорию пресетов: %w", err)
	}

	return presetsDir, nil
}

// GetPresetPath возвращает путь к файлу пресета по имени.
func GetPresetPath(name string) (string, error) {
	presetsDir, err := GetPresetsDir()
	if err != nil {
		return "", err
	}

	safeName := sanitizePresetName(name)
	if safeName == "" {
		return "", fmt.Errorf("некорректное имя пресета: %s", name)
	}

	return filepath.Join(presetsDir, safeName+".yaml"), nil
}

// sanitizePresetName очищает имя пресета от небезопасных символов.
// Разрешены только буквы, цифры, дефисы и подчёркивания.
func sanitizePresetName(name string) string {
	var result strings.Builder
	for _, r := range name {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') ||
			(r >= '0' && r <= '9') || r == '-' || r == '_' {
			result.WriteRune(r)
		}
	}
	return result.String()
}

// SaveUserPreset сохраняет пресет миниатюры под именем.
func SaveUserPreset(name string, opt picture.ThumbnailOption) (string, error) {
	if _, err := EnsurePresetsDir(); err != nil {
		return "", err
	}

	presetPath, err := GetPresetPath(name)
	if err != nil {
		return "", err
	}

	opt.Name = name
	data, err := yaml.Marshal(opt)
	if err != nil {
		return "", fmt.Errorf("не удалось сериализовать пресет: %w", err)
	}

	if err := os.WriteFile(presetPath, data, 0644); err != nil {
		return "", fmt.Errorf("не удалось сохранить пресет: %w", err)
	}

	return presetPath, nil
}

// LoadUserPreset загружает пресет миниатюры по имени.
func LoadUserPreset(name string) (*picture.ThumbnailOption, string, error) {
	presetPath, err := GetPresetPath(name)
	if err != nil {
		return nil, "", err
	}

	data, err := os.ReadFile(presetPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, "", fmt.Errorf("пресет '%s' не найден", name)
		}
		return nil, "", fmt.Errorf("не удалось загрузить пресет '%s': %w", name, err)
	}

	var opt picture.ThumbnailOption
	if err := yaml.Unmarshal(data, &opt); err != nil {
		return nil, "", fmt.Errorf("ошибка парсинга пресета '%s': %w", name, err)
	}
	opt.Name = name

	return &opt, presetPath, nil
}

// ListUserPresets возвращает список всех пользовательских пресетов.
func ListUserPresets() ([]UserPreset, error) {
	presetsDir, err := GetPresetsDir()
	if err != nil {
		return nil, err
	}

	if _, err := os.Stat(presetsDir); os.IsNotExist(err) {
		return []UserPreset{}, nil
	}

	entries, err := os.ReadDir(presetsDir)
	if err != nil {
		return nil, fmt.Errorf("не удалось прочитать директорию пресетов: %w", err)
	}

	var presets []UserPreset
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		if !strings.HasSuffix(name, ".yaml") && !strings.HasSuffix(name, ".yml") {
			continue
		}

		presetName := strings.TrimSuffix(strings.TrimSuffix(name, ".yaml"), ".yml")

		opt, presetPath, err := LoadUserPreset(presetName)
		if err != nil {
			continue
		}

		presets = append(presets, UserPreset{
			Name:   presetName,
			Path:   presetPath,
			Option: *opt,
		})
	}

	sort.Slice(presets, func(i, j int) bool {
		return presets[i].Name < presets[j].Name
	})

	return presets, nil
}

// DeleteUserPreset удаляет пользовательский пресет.
func DeleteUserPreset(name string) error {
	presetPath, err := GetPresetPath(name)
	if err != nil {
		return err
	}

	if _, err := os.Stat(presetPath); os.IsNotExist(err) {
		return fmt.Errorf("пресет '%s' не найден", name)
	}

	if err := os.Remove(presetPath); err != nil {
		return fmt.Errorf("не удалось удалить пресет: %w", err)
	}

	return nil
}

// UserPresetExists проверяет существование пользовательского пресета.
func UserPresetExists(name string) bool {
	presetPath, err := GetPresetPath(name)
	if err != nil {
		return false
	}

	_, err = os.Stat(presetPath)
	return err == nil
}

// MergeUserPresets добавляет пользовательские пресеты в конфигурацию.
// Пресеты из конфигурационного файла имеют приоритет.
func (c *Config) MergeUserPresets() error {
	presets, err := ListUserPresets()
	if err != nil {
		return err
	}

	if c.Thumbnails == nil {
		c.Thumbnails = make(map[string]picture.ThumbnailOption, len(presets))
	}
	for _, p := range presets {
		if _, exists := c.Thumbnails[p.Name]; exists {
			continue
		}
		c.Thumbnails[p.Name] = p.Option
	}

	return nil
}

/*
Возможные расширения:
- Добавить импорт/экспорт пресетов
- Добавить описание к пресетам
*/
