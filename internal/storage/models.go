// Package storage содержит модели и логику работы с SQLite базой данных.
package storage

// RenderStatus определяет статус генерации фрагмента.
type RenderStatus string

const (
	// StatusInProgress - фрагмент генерируется.
	StatusInProgress RenderStatus = "in_progress"
	// StatusOK - фрагмент успешно сгенерирован.
	StatusOK RenderStatus = "ok"
	// StatusFailed - генерация завершилась с ошибкой.
	StatusFailed RenderStatus = "failed"
)

// Render представляет запись о генерации одного фрагмента.
type Render struct {
	// ID - уникальный идентификатор записи.
	ID int64 `db:"id"`

	// SrcPath - абсолютный путь к файлу-описанию.
	SrcPath string `db:"src_path"`

	// SrcSize - размер файла-описания в байтах.
	SrcSize int64 `db:"src_size"`

	// SrcMtime - время модификации файла-описания (unix timestamp).
	SrcMtime int64 `db:"src_mtime"`

	// Params - JSON с параметрами рендеринга.
	Params string `db:"params"`

	// ParamsHash - sha256 хэш параметров рендеринга.
	ParamsHash string `db:"params_hash"`

	// DstPath - путь к сгенерированному фрагменту.
	DstPath *string `db:"dst_path"`

	// Status - статус генерации.
	Status RenderStatus `db:"status"`

	// Error - сообщение об ошибке (если есть).
	Error *string `db:"error"`

	// StartedAt - время начала генерации (unix timestamp).
	StartedAt *int64 `db:"started_at"`

	// FinishedAt - время завершения генерации (unix timestamp).
	FinishedAt *int64 `db:"finished_at"`
}

// FileInfo содержит информацию о файле-описании для проверки идемпотентности.
type FileInfo struct {
	// Path - абсолютный путь к файлу.
	Path string

	// Size - размер файла в байтах.
	Size int64

	// Mtime - время модификации (unix timestamp).
	Mtime int64
}

// StartRenderResult содержит результат попытки начать генерацию.
type StartRenderResult struct {
	// Started - была ли генерация начата.
	Started bool

	// RenderID - ID записи (если начата).
	RenderID int64

	// SkipReason - причина пропуска (если не начата).
	SkipReason string

	// ExistingDstPath - путь к уже сгенерированному фрагменту.
	ExistingDstPath string
}
