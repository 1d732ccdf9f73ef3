package store

import (
	"path/filepath"
	"testing"
	"time"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	st, err := New(filepath.Join(t.TempDir(), "incidents.db"))
	if err != nil {
		t.Fatalf("init store: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func day(d int) time.Time {
	return time.Date(2025, 9, d, 0, 0, 0, 0, time.UTC)
}

func TestSaveIncidents_MergesPersonsAndOrders(t *testing.T) {
	t.Parallel()

	st := newTestStore(t)

	n, err := st.SaveIncidents("imp-1", []IncidentRecord{
		{PersonName: "Bob", DayID: 45901, Date: day(1), Count: 0},
		{PersonName: "Alice", DayID: 45903, Date: day(3), Count: 2},
		{PersonName: "Alice", DayID: 45901, Date: day(1), Count: 3},
	})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if n != 3 {
		t.Fatalf("saved = %d", n)
	}

	persons, err := st.ListPersons()
	if err != nil {
		t.Fatalf("list persons: %v", err)
	}
	if len(persons) != 2 || persons[0].Name != "Alice" || persons[1].Name != "Bob" {
		t.Fatalf("unexpected persons: %+v", persons)
	}

	obs, err := st.FetchAllObservations()
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	want := []struct {
		name  string
		date  string
		count int
	}{
		{"Alice", "2025-09-01", 3},
		{"Alice", "2025-09-03", 2},
		{"Bob", "2025-09-01", 0},
	}
	if len(obs) != len(want) {
		t.Fatalf("observations = %d, want %d", len(obs), len(want))
	}
	for i, w := range want {
		got := obs[i]
		if got.PersonName != w.name || got.Date.Format("2006-01-02") != w.date || got.Count != w.count {
			t.Fatalf("obs[%d] = %+v, want %+v", i, got, w)
		}
	}
}

func TestSaveIncidents_ReimportReplacesSameDay(t *testing.T) {
	t.Parallel()

	st := newTestStore(t)

	if _, err := st.SaveIncidents("imp-1", []IncidentRecord{{PersonName: "Alice", DayID: 45901, Date: day(1), Count: 3}}); err != nil {
		t.Fatalf("save 1: %v", err)
	}
	if _, err := st.SaveIncidents("imp-2", []IncidentRecord{{PersonName: "Alice", DayID: 45901, Date: day(1), Count: 9}}); err != nil {
		t.Fatalf("save 2: %v", err)
	}

	stats, err := st.Stats()
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.Persons != 1 || stats.Incidents != 1 || stats.GrandTotal != 9 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
	if stats.MinDate != "2025-09-01" || stats.MaxDate != "2025-09-01" {
		t.Fatalf("unexpected range: %+v", stats)
	}
}

func TestStats_Empty(t *testing.T) {
	t.Parallel()

	st := newTestStore(t)
	stats, err := st.Stats()
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats != (DataStats{}) {
		t.Fatalf("unexpected stats: %+v", stats)
	}

	obs, err := st.FetchAllObservations()
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(obs) != 0 {
		t.Fatalf("expected no observations, got %d", len(obs))
	}
}

func TestClearIncidents(t *testing.T) {
	t.Parallel()

	st := newTestStore(t)
	if _, err := st.SaveIncidents("imp-1", []IncidentRecord{{PersonName: "Alice", DayID: 1, Date: day(1), Count: 1}}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := st.ClearIncidents(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	p, err := st.FindPersonByName("Alice")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if p != nil {
		t.Fatalf("person should be removed")
	}
}

func TestImportLogLifecycle(t *testing.T) {
	t.Parallel()

	st := newTestStore(t)

	latest, err := st.LatestImportLog()
	if err != nil || latest != nil {
		t.Fatalf("expected no import log, got %+v err=%v", latest, err)
	}

	if err := st.CreateImportLog("imp-1", "a.xlsx", "/tmp/a.xlsx", 1024); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := st.UpdateImportLog("imp-1", 10, 8, 2, "completed", ""); err != nil {
		t.Fatalf("update: %v", err)
	}

	latest, err = st.LatestImportLog()
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if latest.ImportID != "imp-1" || latest.ImportedRows != 8 || latest.RejectedRows != 2 || latest.Status != "completed" {
		t.Fatalf("unexpected log: %+v", latest)
	}
	if latest.CompletedAt == "" {
		t.Fatalf("completed_at not set")
	}
}

func TestConfigKV(t *testing.T) {
	t.Parallel()

	st := newTestStore(t)

	if _, ok, err := st.GetConfig(ConfigLastReportAt); err != nil || ok {
		t.Fatalf("expected missing key, ok=%v err=%v", ok, err)
	}
	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	if err := st.RecordReport("/tmp/r.xlsx", at); err != nil {
		t.Fatalf("record: %v", err)
	}
	v, ok, err := st.GetConfig(ConfigLastReportAt)
	if err != nil || !ok || v != "2026-01-02T03:04:05Z" {
		t.Fatalf("last_report_at = %q ok=%v err=%v", v, ok, err)
	}
	if v, _, _ := st.GetConfig(ConfigLastReportPath); v != "/tmp/r.xlsx" {
		t.Fatalf("last_report_path = %q", v)
	}
}
