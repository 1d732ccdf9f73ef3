package exporter

import (
	"github.com/xuri/excelize/v2"

	"github.com/Divakar-randhi/incident-resolved/internal/report"
)

// 填充颜色
const (
	colorHeader  = "#ADD8E6"
	colorActive  = "#C6EFCE"
	colorIdle    = "#DDEBF7"
	colorSummary = "#FFFF00"
)

// numFmtTwoDecimals 内置格式 "0.00"
const numFmtTwoDecimals = 2

// StyleManager 每个工作簿内每种样式只创建一次
type StyleManager struct {
	file  *excelize.File
	cache map[report.Style]int
}

// NewStyleManager 绑定到工作簿
func NewStyleManager(f *excelize.File) *StyleManager {
	return &StyleManager{file: f, cache: make(map[report.Style]int)}
}

// ID 返回样式 ID；StyleNone 返回 0（默认样式）
func (sm *StyleManager) ID(style report.Style) (int, error) {
	if style == report.StyleNone {
		return 0, nil
	}
	if id, ok := sm.cache[style]; ok {
		return id, nil
	}

	id, err := sm.file.NewStyle(styleDefinition(style))
	if err != nil {
		return 0, err
	}
	sm.cache[style] = id
	return id, nil
}

func styleDefinition(style report.Style) *excelize.Style {
	switch style {
	case report.StyleHeader:
		return &excelize.Style{
			Font:      &excelize.Font{Bold: true},
			Fill:      solidFill(colorHeader),
			Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
			Border:    thinBorder(),
		}
	case report.StyleActive:
		return &excelize.Style{Fill: solidFill(colorActive), Border: thinBorder()}
	case report.StyleIdle:
		return &excelize.Style{Fill: solidFill(colorIdle), Border: thinBorder()}
	case report.StyleSummary:
		return &excelize.Style{
			Font:   &excelize.Font{Bold: true},
			Fill:   solidFill(colorSummary),
			Border: thinBorder(),
		}
	case report.StyleSummaryDecimal:
		return &excelize.Style{
			Font:   &excelize.Font{Bold: true},
			Fill:   solidFill(colorSummary),
			Border: thinBorder(),
			NumFmt: numFmtTwoDecimals,
		}
	}
	return &excelize.Style{}
}

func solidFill(color string) excelize.Fill {
	return excelize.Fill{Type: "pattern", Color: []string{color}, Pattern: 1}
}

func thinBorder() []excelize.Border {
	return []excelize.Border{
		{Type: "left", Color: "BFBFBF", Style: 1},
		{Type: "right", Color: "BFBFBF", Style: 1},
		{Type: "top", Color: "BFBFBF", Style: 1},
		{Type: "bottom", Color: "BFBFBF", Style: 1},
	}
}
