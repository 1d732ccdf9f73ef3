package store

import (
	"database/sql"
	"fmt"
)

// ImportLog 导入日志
type ImportLog struct {
	ImportID     string `json:"importId"`
	Filename     string `json:"filename"`
	FileSize     int64  `json:"fileSize"`
	TotalRows    int    `json:"totalRows"`
	ImportedRows int    `json:"importedRows"`
	RejectedRows int    `json:"rejectedRows"`
	Status       string `json:"status"`
	ErrorMessage string `json:"errorMessage,omitempty"`
	CreatedAt    string `json:"createdAt"`
	CompletedAt  string `json:"completedAt,omitempty"`
}

// CreateImportLog 创建导入日志（状态 processing）
func (s *Store) CreateImportLog(importID, filename, filePath string, fileSize int64) error {
	_, err := s.db.Exec(`
		INSERT INTO import_logs (import_id, filename, file_path, file_size, status)
		VALUES (?, ?, ?, ?, 'processing')
	`, importID, filename, filePath, fileSize)
	if err != nil {
		return fmt.Errorf("failed to create import log: %w", err)
	}
	return nil
}

// UpdateImportLog 完成导入日志更新
func (s *Store) UpdateImportLog(importID string, totalRows, importedRows, rejectedRows int, status, errorMessage string) error {
	_, err := s.db.Exec(`
		UPDATE import_logs SET
			total_rows = ?,
			imported_rows = ?,
			rejected_rows = ?,
			status = ?,
			error_message = ?,
			completed_at = CURRENT_TIMESTAMP
		WHERE import_id = ?
	`, totalRows, importedRows, rejectedRows, status, errorMessage, importID)
	if err != nil {
		return fmt.Errorf("failed to update import log: %w", err)
	}
	return nil
}

// LatestImportLog 最近一次导入；没有时返回 nil, nil
func (s *Store) LatestImportLog() (*ImportLog, error) {
	var (
		l           ImportLog
		errMsg      sql.NullString
		completedAt sql.NullString
	)
	err := s.db.QueryRow(`
		SELECT import_id, filename, file_size, total_rows, imported_rows, rejected_rows,
			status, error_message, created_at, completed_at
		FROM import_logs
		ORDER BY id DESC
		LIMIT 1
	`).Scan(&l.ImportID, &l.Filename, &l.FileSize, &l.TotalRows, &l.ImportedRows, &l.RejectedRows,
		&l.Status, &errMsg, &l.CreatedAt, &completedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query latest import log failed: %w", err)
	}
	l.ErrorMessage = errMsg.String
	l.CompletedAt = completedAt.String
	return &l, nil
}
