package store

import (
	"fmt"
	"time"

	"github.com/Divakar-randhi/incident-resolved/internal/report"
)

const dateLayout = "2006-01-02"

// IncidentRecord 待入库的单日记录
type IncidentRecord struct {
	PersonName string
	DayID      int
	Date       time.Time
	Count      int
}

// SaveIncidents 在一个事务内写入记录：人员按名称合并，
// 同一人同一天已存在时以本次为准。返回写入条数。
func (s *Store) SaveIncidents(importID string, records []IncidentRecord) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO daily_incidents (person_id, day_id, incident_date, incident_count, import_id)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(person_id, incident_date) DO UPDATE SET
			day_id = excluded.day_id,
			incident_count = excluded.incident_count,
			import_id = excluded.import_id,
			updated_at = CURRENT_TIMESTAMP
	`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	persons := make(map[string]int64)
	saved := 0
	for _, r := range records {
		personID, ok := persons[r.PersonName]
		if !ok {
			p, err := getOrCreatePerson(tx, r.PersonName)
			if err != nil {
				return 0, err
			}
			personID = p.ID
			persons[r.PersonName] = personID
		}

		if _, err := stmt.Exec(personID, r.DayID, r.Date.Format(dateLayout), r.Count, importID); err != nil {
			return 0, fmt.Errorf("failed to insert incident (%s, %s): %w", r.PersonName, r.Date.Format(dateLayout), err)
		}
		saved++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return saved, nil
}

// FetchAllObservations 读取全部记录，按人员名、日期排序
func (s *Store) FetchAllObservations() ([]report.Observation, error) {
	rows, err := s.db.Query(`
		SELECT p.name, d.incident_date, d.incident_count
		FROM daily_incidents d
		JOIN persons p ON p.id = d.person_id
		ORDER BY p.name, d.incident_date
	`)
	if err != nil {
		return nil, fmt.Errorf("query observations failed: %w", err)
	}
	defer rows.Close()

	var out []report.Observation
	for rows.Next() {
		var (
			o    report.Observation
			date string
		)
		if err := rows.Scan(&o.PersonName, &date, &o.Count); err != nil {
			return nil, fmt.Errorf("scan observation failed: %w", err)
		}
		o.Date, err = time.Parse(dateLayout, date)
		if err != nil {
			return nil, fmt.Errorf("invalid incident_date %q: %w", date, err)
		}
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate observations failed: %w", err)
	}
	return out, nil
}

// ClearIncidents 清空所有记录与人员
func (s *Store) ClearIncidents() error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM daily_incidents"); err != nil {
		return fmt.Errorf("failed to clear incidents: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM persons"); err != nil {
		return fmt.Errorf("failed to clear persons: %w", err)
	}
	return tx.Commit()
}

// DataStats 数据概况
type DataStats struct {
	Persons    int    `json:"persons"`
	Incidents  int    `json:"incidents"`
	GrandTotal int    `json:"grandTotal"`
	MinDate    string `json:"minDate,omitempty"`
	MaxDate    string `json:"maxDate,omitempty"`
}

// Stats 统计人员数、记录数、总数与日期范围
func (s *Store) Stats() (DataStats, error) {
	var st DataStats
	if err := s.db.QueryRow("SELECT COUNT(*) FROM persons").Scan(&st.Persons); err != nil {
		return st, fmt.Errorf("count persons failed: %w", err)
	}

	var minDate, maxDate *string
	err := s.db.QueryRow(`
		SELECT COUNT(*), COALESCE(SUM(incident_count), 0), MIN(incident_date), MAX(incident_date)
		FROM daily_incidents
	`).Scan(&st.Incidents, &st.GrandTotal, &minDate, &maxDate)
	if err != nil {
		return st, fmt.Errorf("query incident stats failed: %w", err)
	}
	if minDate != nil {
		st.MinDate = *minDate
	}
	if maxDate != nil {
		st.MaxDate = *maxDate
	}
	return st, nil
}
