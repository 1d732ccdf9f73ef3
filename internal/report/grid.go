package report

import (
	"fmt"
	"math"
)

// Style 单元格的展示样式（只影响外观，不影响数据）
type Style string

const (
	StyleNone           Style = ""
	StyleHeader         Style = "header"
	StyleActive         Style = "active"  // 数量 > 0
	StyleIdle           Style = "idle"    // 数量 = 0
	StyleSummary        Style = "summary" // 汇总行（整数）
	StyleSummaryDecimal Style = "summary_decimal"
)

// DefaultDateFormat 日期列格式（M/D/YYYY）
const DefaultDateFormat = "1/2/2006"

// Summary row labels.
const (
	LabelDate          = "Date"
	LabelTotal         = "Total Incidents"
	LabelAverage       = "Average per Working Day"
	LabelPercent       = "% of Grand Total"
	labelZeroDaysShape = "Zero Days (out of %d)"
)

// SummaryRows 汇总行数量
const SummaryRows = 4

// Cell 网格单元格
type Cell struct {
	Value any
	Style Style
}

// Grid 抽象的带样式表格，由 exporter 写入具体文件格式
type Grid struct {
	Rows [][]Cell
}

// RenderOptions 渲染选项
type RenderOptions struct {
	DateFormat string
}

// Width 最大列数
func (g *Grid) Width() int {
	w := 0
	for _, row := range g.Rows {
		if len(row) > w {
			w = len(row)
		}
	}
	return w
}

// Render 表头 + 每日一行 + 4 行汇总
func Render(r *Report, opts RenderOptions) *Grid {
	layout := opts.DateFormat
	if layout == "" {
		layout = DefaultDateFormat
	}

	g := &Grid{Rows: make([][]Cell, 0, len(r.Pivot.Dates)+1+SummaryRows)}

	header := make([]Cell, 0, len(r.People)+1)
	header = append(header, Cell{Value: LabelDate, Style: StyleHeader})
	for _, name := range r.People {
		header = append(header, Cell{Value: name, Style: StyleHeader})
	}
	g.Rows = append(g.Rows, header)

	for i, date := range r.Pivot.Dates {
		row := make([]Cell, 0, len(r.People)+1)
		row = append(row, Cell{Value: date.Format(layout)})
		for _, count := range r.Pivot.Counts[i] {
			style := StyleIdle
			if count > 0 {
				style = StyleActive
			}
			row = append(row, Cell{Value: count, Style: style})
		}
		g.Rows = append(g.Rows, row)
	}

	labels := []string{
		LabelTotal,
		ZeroDaysLabel(r.TotalDays),
		LabelAverage,
		LabelPercent,
	}
	for k, label := range labels {
		row := make([]Cell, 0, len(r.People)+1)
		row = append(row, Cell{Value: label, Style: StyleSummary})
		for _, s := range r.Summaries {
			switch k {
			case 0:
				row = append(row, Cell{Value: s.TotalIncidents, Style: StyleSummary})
			case 1:
				row = append(row, Cell{Value: s.ZeroDays, Style: StyleSummary})
			case 2:
				row = append(row, Cell{Value: Round2(s.AveragePerWorkingDay), Style: StyleSummaryDecimal})
			case 3:
				row = append(row, Cell{Value: Round2(s.PercentOfGrandTotal), Style: StyleSummaryDecimal})
			}
		}
		g.Rows = append(g.Rows, row)
	}

	return g
}

// ZeroDaysLabel 零处理天数行的标签
func ZeroDaysLabel(totalDays int) string {
	return fmt.Sprintf(labelZeroDaysShape, totalDays)
}

// Round2 保留两位小数
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
