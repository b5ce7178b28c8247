// Package storage содержит логику работы с SQLite базой данных.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Storage предоставляет методы для работы с базой данных renders.
type Storage struct {
	db *sql.DB
}

// New создаёт новое подключение к SQLite и выполняет миграции.
func New(dbPath string) (*Storage, error) {
	// Создаём директорию для БД, если не существует
	dbDir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return nil, fmt.Errorf("не удалось создать директорию для БД: %w", err)
	}

	// Открываем/создаём БД с параметрами для concurrent доступа
	dsn := fmt.Sprintf("%s?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL", dbPath)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("не удалось открыть БД: %w", err)
	}

	// Проверяем подключение
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("не удалось подключиться к БД: %w", err)
	}

	// SQLite не поддерживает concurrent writes
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	s := &Storage{db: db}

	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("не удалось выполнить миграции: %w", err)
	}

	return s, nil
}

// migrate выполняет все SQL-миграции.
func (s *Storage) migrate() error {
	for i, m := range GetMigrations() {
		if _, err := s.db.Exec(m); err != nil {
			return fmt.Errorf("миграция %d: %w", i+1, err)
		}
	}
	return nil
}

// Close закрывает подключение к БД.
func (s *Storage) Close() error {
	return s.db.Close()
}

// TryStartRender пытается начать генерацию фрагмента.
// Возвращает StartRenderResult с информацией о том, была ли генерация начата.
func (s *Storage) TryStartRender(info FileInfo, params, paramsHash string) (*StartRenderResult, error) {
	now := time.Now().Unix()

	query := `
		INSERT INTO renders (src_path, src_size, src_mtime, params, params_hash, status, started_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	result, err := s.db.Exec(query,
		info.Path, info.Size, info.Mtime, params, paramsHash,
		StatusInProgress, now,
	)

	if err != nil {
		// Конфликт уникального индекса: описание уже обработано или в работе
		if isUniqueConstraintError(err) {
			return s.checkExistingRender(info, params, paramsHash)
		}
		return nil, fmt.Errorf("не удалось создать запись: %w", err)
	}

	renderID, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("не удалось получить ID записи: %w", err)
	}

	return &StartRenderResult{
		Started:  true,
		RenderID: renderID,
	}, nil
}

// checkExistingRender проверяет существующую запись и возвращает причину пропуска.
func (s *Storage) checkExistingRender(info FileInfo, params, paramsHash string) (*StartRenderResult, error) {
	var r Render
	query := `
		SELECT id, status, dst_path, error FROM renders
		WHERE src_path = ? AND src_size = ? AND src_mtime = ? AND params_hash = ?
		LIMIT 1
	`
	err := s.db.QueryRow(query, info.Path, info.Size, info.Mtime, paramsHash).
		Scan(&r.ID, &r.Status, &r.DstPath, &r.Error)
	if err != nil {
		return nil, fmt.Errorf("не удалось проверить существующую запись: %w", err)
	}

	switch r.Status {
	case StatusOK:
		dstPath := ""
		if r.DstPath != nil {
			dstPath = *r.DstPath
		}
		return &StartRenderResult{
			Started:         false,
			SkipReason:      "уже сгенерирован",
			ExistingDstPath: dstPath,
		}, nil
	case StatusInProgress:
		return &StartRenderResult{
			Started:    false,
			SkipReason: "уже генерируется",
		}, nil
	case StatusFailed:
		// Failed пробуем повторить, удаляя старую запись
		if _, err := s.db.Exec("DELETE FROM renders WHERE id = ?", r.ID); err != nil {
			return nil, fmt.Errorf("не удалось удалить failed запись: %w", err)
		}
		return s.TryStartRender(info, params, paramsHash)
	}

	return &StartRenderResult{
		Started:    false,
		SkipReason: "неизвестная причина",
	}, nil
}

// FinalizeRenderOK помечает генерацию как успешно завершённую.
func (s *Storage) FinalizeRenderOK(renderID int64, dstPath string) error {
	now := time.Now().Unix()
	_, err := s.db.Exec(
		"UPDATE renders SET status = ?, dst_path = ?, finished_at = ? WHERE id = ?",
		StatusOK, dstPath, now, renderID,
	)
	if err != nil {
		return fmt.Errorf("не удалось обновить статус записи: %w", err)
	}
	return nil
}

// FinalizeRenderFailed помечает генерацию как завершённую с ошибкой.
func (s *Storage) FinalizeRenderFailed(renderID int64, errMsg string) error {
	now := time.Now().Unix()
	_, err := s.db.Exec(
		"UPDATE renders SET status = ?, error = ?, finished_at = ? WHERE id = ?",
		StatusFailed, errMsg, now, renderID,
	)
	if err != nil {
		return fmt.Errorf("не удалось обновить статус записи: %w", err)
	}
	return nil
}

// InvalidateBySrcPath удаляет все записи для файла-описания.
// Используется watch-режимом: изменённый файл нужно сгенерировать заново
// независимо от старых записей.
func (s *Storage) InvalidateBySrcPath(srcPath string) error {
	_, err := s.db.Exec("DELETE FROM renders WHERE src_path = ?", srcPath)
	if err != nil {
		return fmt.Errorf("не удалось инвалидировать записи: %w", err)
	}
	return nil
}

// GetStats возвращает статистику по записям.
func (s *Storage) GetStats() (total, ok, failed, inProgress int64, err error) {
	err = s.db.QueryRow("SELECT COUNT(*) FROM renders").Scan(&total)
	if err != nil {
		return
	}
	_ = s.db.QueryRow("SELECT COUNT(*) FROM renders WHERE status = ?", StatusOK).Scan(&ok)
	_ = s.db.QueryRow("SELECT COUNT(*) FROM renders WHERE status = ?", StatusFailed).Scan(&failed)
	_ = s.db.QueryRow("SELECT COUNT(*) FROM renders WHERE status = ?", StatusInProgress).Scan(&inProgress)
	return
}

// CleanupInProgress сбрасывает записи со статусом in_progress в failed.
// Вызывается при старте для очистки после аварийного завершения.
func (s *Storage) CleanupInProgress() (int64, error) {
	result, err := s.db.Exec(
		"UPDATE renders SET status = ?, error = ? WHERE status = ?",
		StatusFailed, "прервано при предыдущем запуске", StatusInProgress,
	)
	if err != nil {
		return 0, fmt.Errorf("не удалось очистить in_progress: %w", err)
	}
	return result.RowsAffected()
}

// isUniqueConstraintError проверяет, является ли ошибка нарушением уникальности.
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	// SQLite возвращает "UNIQUE constraint failed" при конфликте
	return strings.Contains(err.Error(), "constraint failed")
}

/*
Возможные расширения:
- Добавить метод для очистки записей удалённых описаний
- Добавить экспорт статистики в JSON
*/
