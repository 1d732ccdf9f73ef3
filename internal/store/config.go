package store

import (
	"database/sql"
	"fmt"
	"time"
)

// 配置项 key
const (
	ConfigLastReportAt   = "last_report_at"
	ConfigLastReportPath = "last_report_path"
)

// GetConfig 获取配置项；不存在时返回 "", false
func (s *Store) GetConfig(key string) (string, bool, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM config WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get config %s: %w", key, err)
	}
	return value, true, nil
}

// SetConfig 设置配置项
func (s *Store) SetConfig(key, value string) error {
	_, err := s.db.Exec(`
		INSERT INTO config (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = ?, updated_at = CURRENT_TIMESTAMP
	`, key, value, value)
	if err != nil {
		return fmt.Errorf("failed to set config %s: %w", key, err)
	}
	return nil
}

// RecordReport 记录最近一次生成报表的时间与路径
func (s *Store) RecordReport(path string, at time.Time) error {
	if err := s.SetConfig(ConfigLastReportAt, at.UTC().Format(time.RFC3339)); err != nil {
		return err
	}
	return s.SetConfig(ConfigLastReportPath, path)
}
