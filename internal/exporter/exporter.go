package exporter

import (
	"fmt"
	"log"
	"time"

	"github.com/Divakar-randhi/incident-resolved/internal/report"
)

// Source 提供全量记录（通常是 store.Store）
type Source interface {
	FetchAllObservations() ([]report.Observation, error)
}

// reportRecorder 可选：记录最近一次生成的报表
type reportRecorder interface {
	RecordReport(path string, at time.Time) error
}

// Exporter 报表导出器：每次都从全量记录重新生成报表工作表
type Exporter struct {
	source     Source
	sheetName  string
	dateFormat string
}

// NewExporter 创建导出器
func NewExporter(source Source, sheetName, dateFormat string) *Exporter {
	if sheetName == "" {
		sheetName = "Report"
	}
	return &Exporter{
		source:     source,
		sheetName:  sheetName,
		dateFormat: dateFormat,
	}
}

// ExportOptions 导出选项
type ExportOptions struct {
	OutputPath string
	Progress   ProgressFunc
}

// ExportResult 导出结果
type ExportResult struct {
	Path     string         `json:"path"`
	Sheet    string         `json:"sheet"`
	Rows     int            `json:"rows"`
	Columns  int            `json:"columns"`
	Duration time.Duration  `json:"duration"`
	Report   *report.Report `json:"-"`
}

// SheetName 报表工作表名
func (e *Exporter) SheetName() string {
	return e.sheetName
}

// Export 读取记录 -> 构建报表 -> 写入工作簿。
// 没有任何记录时返回 report.ErrNoObservations，且不写文件。
func (e *Exporter) Export(opts ExportOptions) (*ExportResult, error) {
	start := time.Now()

	observations, err := e.source.FetchAllObservations()
	if err != nil {
		return nil, fmt.Errorf("读取记录失败: %w", err)
	}
	opts.Progress.emit(StageFetch, fmt.Sprintf("%d 条记录", len(observations)))

	rep, err := report.Build(observations)
	if err != nil {
		return nil, err
	}
	log.Printf("report range %s to %s | total days %d | grand total %d | people %d",
		rep.MinDate.Format("2006-01-02"), rep.MaxDate.Format("2006-01-02"),
		rep.TotalDays, rep.GrandTotal, len(rep.People))

	opts.Progress.emit(StagePivot, fmt.Sprintf("%d 人 x %d 天", len(rep.People), rep.TotalDays))

	grid := report.Render(rep, report.RenderOptions{DateFormat: e.dateFormat})
	opts.Progress.emit(StageRender, fmt.Sprintf("%d 行 x %d 列", len(grid.Rows), grid.Width()))

	if err := WriteGrid(opts.OutputPath, e.sheetName, grid); err != nil {
		return nil, err
	}
	opts.Progress.emit(StageWrite, fmt.Sprintf("%s!%s", opts.OutputPath, e.sheetName))

	if rec, ok := e.source.(reportRecorder); ok {
		if err := rec.RecordReport(opts.OutputPath, time.Now()); err != nil {
			log.Printf("记录报表生成时间失败: %v", err)
		}
	}

	opts.Progress.emit(StageDone, "")
	log.Printf("report exported to %s (sheet %q)", opts.OutputPath, e.sheetName)

	return &ExportResult{
		Path:     opts.OutputPath,
		Sheet:    e.sheetName,
		Rows:     len(grid.Rows),
		Columns:  grid.Width(),
		Duration: time.Since(start),
		Report:   rep,
	}, nil
}
