// Package storage содержит миграции SQLite базы данных.
package storage

// migrations содержит SQL-миграции в порядке выполнения.
var migrations = []string{
	// Миграция 1: Создание таблицы renders
	`CREATE TABLE IF NOT EXISTS renders (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		src_path TEXT NOT NULL,
		src_size INTEGER NOT NULL,
		src_mtime INTEGER NOT NULL,
		params TEXT NOT NULL,
		params_hash TEXT NOT NULL,
		dst_path TEXT,
		status TEXT NOT NULL,
		error TEXT,
		started_at INTEGER,
		finished_at INTEGER
	);`,

	// Миграция 2: Уникальный индекс для идемпотентности
	// Одно и то же описание (path+size+mtime) с теми же параметрами
	// рендеринга не генерируется дважды.
	`CREATE UNIQUE INDEX IF NOT EXISTS ux_renders_src
	ON renders (src_path, src_size, src_mtime, params_hash);`,

	// Миграция 3: Индекс для быстрого поиска по статусу
	`CREATE INDEX IF NOT EXISTS ix_renders_status ON renders (status);`,

	// Миграция 4: Таблица метаданных для версионирования схемы
	`CREATE TABLE IF NOT EXISTS schema_info (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);`,

	// Миграция 5: Запись версии схемы
	`INSERT OR REPLACE INTO schema_info (key, value) VALUES ('version', '1');`,
}

// GetMigrations возвращает список SQL-миграций.
func GetMigrations() []string {
	return migrations
}
