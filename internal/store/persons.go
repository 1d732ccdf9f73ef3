package store

import (
	"database/sql"
	"fmt"
)

// Person 人员（名称唯一）
type Person struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// FindPersonByName 按名称查找；不存在返回 nil, nil
func (s *Store) FindPersonByName(name string) (*Person, error) {
	return findPersonByName(s.db, name)
}

// GetOrCreatePerson 同名人员合并为同一条记录
func (s *Store) GetOrCreatePerson(name string) (*Person, error) {
	return getOrCreatePerson(s.db, name)
}

// ListPersons 按名称排序列出所有人员
func (s *Store) ListPersons() ([]Person, error) {
	rows, err := s.db.Query("SELECT id, name FROM persons ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("query persons failed: %w", err)
	}
	defer rows.Close()

	var out []Person
	for rows.Next() {
		var p Person
		if err := rows.Scan(&p.ID, &p.Name); err != nil {
			return nil, fmt.Errorf("scan person failed: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

type queryer interface {
	QueryRow(query string, args ...any) *sql.Row
	Exec(query string, args ...any) (sql.Result, error)
}

func findPersonByName(q queryer, name string) (*Person, error) {
	p := &Person{}
	err := q.QueryRow("SELECT id, name FROM persons WHERE name = ?", name).Scan(&p.ID, &p.Name)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find person %q: %w", name, err)
	}
	return p, nil
}

func getOrCreatePerson(q queryer, name string) (*Person, error) {
	p, err := findPersonByName(q, name)
	if err != nil || p != nil {
		return p, err
	}

	res, err := q.Exec("INSERT INTO persons (name) VALUES (?)", name)
	if err != nil {
		return nil, fmt.Errorf("failed to create person %q: %w", name, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get person id: %w", err)
	}
	return &Person{ID: id, Name: name}, nil
}
