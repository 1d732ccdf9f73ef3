package api

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"github.com/Divakar-randhi/incident-resolved/internal/parser"
	"github.com/Divakar-randhi/incident-resolved/internal/store"
)

type testEnv struct {
	router    *gin.Engine
	store     *store.Store
	uploadDir string
	exportDir string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	root := t.TempDir()
	st, err := store.New(filepath.Join(root, "incidents.db"))
	if err != nil {
		t.Fatalf("init store: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })

	env := &testEnv{
		store:     st,
		uploadDir: filepath.Join(root, "uploads"),
		exportDir: filepath.Join(root, "exports"),
	}
	for _, dir := range []string{env.uploadDir, env.exportDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
	}

	mapper, err := parser.NewOffsetMapper(2025, time.September, 1, 45901)
	if err != nil {
		t.Fatalf("mapper: %v", err)
	}

	h := NewHandler(st, mapper, Options{
		UploadDir:  env.uploadDir,
		ExportDir:  env.exportDir,
		SheetName:  "Report",
		OutputFile: "incidents_report.xlsx",
	})
	env.router = gin.New()
	h.RegisterRoutes(env.router.Group("/api"))
	return env
}

func scenarioWorkbook(t *testing.T) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	rows := [][]interface{}{
		{"DayId", "Person", "Count"},
		{45901, "Alice", 3},
		{45901, "Bob", 0},
		{45903, "Alice", 2},
		{45902, "Carol", -1},
	}
	for i := range rows {
		axis, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow("Sheet1", axis, &rows[i]); err != nil {
			t.Fatalf("row %d: %v", i, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	return buf.Bytes()
}

func (e *testEnv) upload(t *testing.T, filename string, content []byte) *httptest.ResponseRecorder {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("form file: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("write part: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/upload", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) get(path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func TestUpload_ImportsAndReturnsProcessedWorkbook(t *testing.T) {
	env := newTestEnv(t)

	w := env.upload(t, "september incidents.xlsx", scenarioWorkbook(t))
	if w.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d body=%s", w.Code, w.Body.String())
	}

	var resp UploadResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Filename != "september_incidents.xlsx" {
		t.Fatalf("filename not sanitized: %q", resp.Filename)
	}
	if resp.Import.ImportedRows != 3 || resp.Import.RejectedRows != 1 {
		t.Fatalf("unexpected import: %+v", resp.Import)
	}
	if resp.People != 2 || resp.TotalDays != 3 || resp.GrandTotal != 5 {
		t.Fatalf("unexpected report stats: %+v", resp)
	}
	if !strings.HasPrefix(resp.DownloadURL, "/api/export/download/") {
		t.Fatalf("unexpected download url: %q", resp.DownloadURL)
	}

	dl := env.get(resp.DownloadURL)
	if dl.Code != http.StatusOK {
		t.Fatalf("download status: %d body=%s", dl.Code, dl.Body.String())
	}
	if cd := dl.Header().Get("Content-Disposition"); !strings.Contains(cd, "september_incidents.xlsx") {
		t.Fatalf("unexpected content-disposition: %q", cd)
	}

	f, err := excelize.OpenReader(bytes.NewReader(dl.Body.Bytes()))
	if err != nil {
		t.Fatalf("open downloaded workbook: %v", err)
	}
	defer f.Close()

	if idx, _ := f.GetSheetIndex("Sheet1"); idx < 0 {
		t.Fatalf("input sheet lost")
	}
	if v, _ := f.GetCellValue("Report", "B1"); v != "Alice" {
		t.Fatalf("Report!B1 = %q", v)
	}
	if v, _ := f.GetCellValue("Report", "A2"); v != "9/1/2025" {
		t.Fatalf("Report!A2 = %q", v)
	}

	if again := env.get(resp.DownloadURL); again.Code != http.StatusNotFound {
		t.Fatalf("download token reused: %d", again.Code)
	}
	if _, err := os.Stat(filepath.Join(env.uploadDir, "september_incidents.xlsx")); !os.IsNotExist(err) {
		t.Fatalf("processed upload kept after download: %v", err)
	}
}

func TestUpload_RejectsNonXLSX(t *testing.T) {
	env := newTestEnv(t)

	w := env.upload(t, "incidents.csv", []byte("1,2,3"))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status: %d", w.Code)
	}
}

func TestUpload_UnreadableWorkbook(t *testing.T) {
	env := newTestEnv(t)

	w := env.upload(t, "broken.xlsx", []byte("not a zip archive"))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status: %d body=%s", w.Code, w.Body.String())
	}

	stats, err := env.store.Stats()
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.Incidents != 0 {
		t.Fatalf("unexpected incidents: %+v", stats)
	}
}

func TestGenerateReport(t *testing.T) {
	env := newTestEnv(t)

	if w := env.get("/api/report"); w.Code != http.StatusNotFound {
		t.Fatalf("empty dataset status: %d", w.Code)
	}
	if _, err := os.Stat(filepath.Join(env.exportDir, "incidents_report.xlsx")); !os.IsNotExist(err) {
		t.Fatalf("report written for empty dataset: %v", err)
	}

	if w := env.upload(t, "in.xlsx", scenarioWorkbook(t)); w.Code != http.StatusOK {
		t.Fatalf("upload: %d %s", w.Code, w.Body.String())
	}

	w := env.get("/api/report")
	if w.Code != http.StatusOK {
		t.Fatalf("report status: %d body=%s", w.Code, w.Body.String())
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "incidents_report.xlsx") {
		t.Fatalf("configured output file not used: %q", cd)
	}
	if _, err := os.Stat(filepath.Join(env.exportDir, "incidents_report.xlsx")); err != nil {
		t.Fatalf("configured report not written: %v", err)
	}

	w = env.get("/api/report?outputFile=../monthly%20report")
	if w.Code != http.StatusOK {
		t.Fatalf("report status: %d body=%s", w.Code, w.Body.String())
	}
	out := filepath.Join(env.exportDir, "monthly_report.xlsx")
	if _, err := os.Stat(out); err != nil {
		t.Fatalf("report not written under exports: %v", err)
	}

	f, err := excelize.OpenFile(out)
	if err != nil {
		t.Fatalf("open report: %v", err)
	}
	defer f.Close()

	if v, _ := f.GetCellValue("Report", "A5"); v != "Total Incidents" {
		t.Fatalf("Report!A5 = %q", v)
	}
}

func TestGetStatus(t *testing.T) {
	env := newTestEnv(t)

	w := env.get("/api/status")
	if w.Code != http.StatusOK {
		t.Fatalf("status: %d", w.Code)
	}
	var resp StatusResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Initialized || resp.LastImport != nil {
		t.Fatalf("unexpected empty status: %+v", resp)
	}

	if w := env.upload(t, "in.xlsx", scenarioWorkbook(t)); w.Code != http.StatusOK {
		t.Fatalf("upload: %d %s", w.Code, w.Body.String())
	}

	w = env.get("/api/status")
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !resp.Initialized || resp.Stats.Persons != 2 || resp.Stats.GrandTotal != 5 {
		t.Fatalf("unexpected status: %+v", resp)
	}
	if resp.LastImport == nil || resp.LastImport.Status != "completed" {
		t.Fatalf("unexpected last import: %+v", resp.LastImport)
	}
	if resp.LastReportAt == "" || resp.LastReportPath == "" {
		t.Fatalf("last report not recorded: %+v", resp)
	}
}

func TestSanitizeFilename(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"report.xlsx":          "report.xlsx",
		"my report (1).xlsx":   "my_report__1_.xlsx",
		"../../etc/passwd":     "passwd",
		`C:\Users\a\data.xlsx`: "data.xlsx",
		"..":                   "",
	}
	for in, want := range cases {
		if got := sanitizeFilename(in); got != want {
			t.Fatalf("sanitizeFilename(%q) = %q, want %q", in, got, want)
		}
	}
}
