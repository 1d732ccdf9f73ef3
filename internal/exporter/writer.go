package exporter

import (
	"errors"
	"fmt"
	"os"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/Divakar-randhi/incident-resolved/internal/report"
)

// 自动列宽范围
const (
	minColWidth = 8
	maxColWidth = 60
)

// OutputError 输出文件无法打开/写入/保存
type OutputError struct {
	Path string
	Op   string
	Err  error
}

func (e *OutputError) Error() string {
	return fmt.Sprintf("failed to %s output %s: %v", e.Op, e.Path, e.Err)
}

func (e *OutputError) Unwrap() error {
	return e.Err
}

// WriteGrid 将网格写入 path 中名为 sheet 的工作表。
// 文件不存在时新建（仅包含该工作表）；已有同名工作表时整体替换，不追加。
// 工作簿在所有路径上都会被关闭。
func WriteGrid(path, sheet string, grid *report.Grid) (err error) {
	f, created, err := openOrCreate(path, sheet)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = &OutputError{Path: path, Op: "close", Err: cerr}
		}
	}()

	if !created {
		if err := replaceSheet(f, sheet); err != nil {
			return &OutputError{Path: path, Op: "replace sheet in", Err: err}
		}
	}

	if err := writeCells(f, sheet, grid); err != nil {
		return &OutputError{Path: path, Op: "write", Err: err}
	}

	if idx, err := f.GetSheetIndex(sheet); err == nil && idx >= 0 {
		f.SetActiveSheet(idx)
	}

	if err := f.SaveAs(path); err != nil {
		return &OutputError{Path: path, Op: "save", Err: err}
	}
	return nil
}

func openOrCreate(path, sheet string) (*excelize.File, bool, error) {
	if _, err := os.Stat(path); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, false, &OutputError{Path: path, Op: "stat", Err: err}
		}
		f := excelize.NewFile()
		if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
			_ = f.Close()
			return nil, false, &OutputError{Path: path, Op: "create", Err: err}
		}
		return f, true, nil
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, false, &OutputError{Path: path, Op: "open", Err: err}
	}
	return f, false, nil
}

// replaceSheet 删除旧工作表并新建同名空表。
// excelize 不会删除唯一的工作表，所以先建占位表再删除、改名。
func replaceSheet(f *excelize.File, sheet string) error {
	idx, err := f.GetSheetIndex(sheet)
	if err != nil {
		return err
	}
	if idx == -1 {
		_, err := f.NewSheet(sheet)
		return err
	}

	placeholder := "tmp-" + uuid.NewString()[:8]
	if _, err := f.NewSheet(placeholder); err != nil {
		return err
	}
	if err := f.DeleteSheet(sheet); err != nil {
		return err
	}
	return f.SetSheetName(placeholder, sheet)
}

func writeCells(f *excelize.File, sheet string, grid *report.Grid) error {
	styles := NewStyleManager(f)
	widths := make([]int, grid.Width())

	for i, row := range grid.Rows {
		for j, cell := range row {
			axis, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, axis, cell.Value); err != nil {
				return err
			}
			styleID, err := styles.ID(cell.Style)
			if err != nil {
				return err
			}
			if styleID != 0 {
				if err := f.SetCellStyle(sheet, axis, axis, styleID); err != nil {
					return err
				}
			}
			if w := displayWidth(cell.Value); w > widths[j] {
				widths[j] = w
			}
		}
	}

	return autoSizeColumns(f, sheet, widths)
}

func autoSizeColumns(f *excelize.File, sheet string, widths []int) error {
	for j, w := range widths {
		col, err := excelize.ColumnNumberToName(j + 1)
		if err != nil {
			return err
		}
		width := w + 2
		if width < minColWidth {
			width = minColWidth
		}
		if width > maxColWidth {
			width = maxColWidth
		}
		if err := f.SetColWidth(sheet, col, col, float64(width)); err != nil {
			return err
		}
	}
	return nil
}

func displayWidth(v any) int {
	switch x := v.(type) {
	case float64:
		return len(fmt.Sprintf("%.2f", x))
	case string:
		return utf8.RuneCountInString(x)
	default:
		return utf8.RuneCountInString(fmt.Sprint(x))
	}
}
