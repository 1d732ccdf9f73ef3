package parser

import (
	"errors"
	"strconv"

	"github.com/xuri/excelize/v2"
)

// ColumnCount 每行读取的列数：日期编号、人员、数量
const ColumnCount = 3

// RawRow 原始行（RowNo 为 Excel 行号，从 1 开始）
type RawRow struct {
	RowNo int
	Cells []Cell
}

// Sheet 读取到的数据行（不含表头）
type Sheet struct {
	Name string
	Rows []RawRow
}

// RowReader 读取输入文件中的原始行
type RowReader interface {
	ReadRows(path string) (*Sheet, error)
}

// WorkbookReader 基于 excelize 读取第一个 Sheet
type WorkbookReader struct{}

// ReadRows 打开文件并读取第一个 Sheet；打开/读取失败返回 *InputError
func (WorkbookReader) ReadRows(path string) (*Sheet, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, &InputError{Path: path, Op: "open", Err: err}
	}
	defer f.Close()

	sheet, err := ReadWorkbook(f)
	if err != nil {
		return nil, &InputError{Path: path, Op: "read", Err: err}
	}
	return sheet, nil
}

// ReadWorkbook 读取已打开工作簿的第一个 Sheet，跳过表头与空行
func ReadWorkbook(f *excelize.File) (*Sheet, error) {
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("workbook has no sheets")
	}
	name := sheets[0]

	rows, err := f.GetRows(name, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, err
	}

	out := &Sheet{Name: name}
	for i := 1; i < len(rows); i++ {
		rowNo := i + 1
		cells := make([]Cell, ColumnCount)
		blank := true
		for col := 0; col < ColumnCount; col++ {
			raw := ""
			if col < len(rows[i]) {
				raw = rows[i][col]
			}
			if raw == "" {
				continue
			}
			axis, err := excelize.CoordinatesToCellName(col+1, rowNo)
			if err != nil {
				return nil, err
			}
			typ, err := f.GetCellType(name, axis)
			if err != nil {
				return nil, err
			}
			cells[col] = classifyCell(raw, typ)
			blank = false
		}
		if blank {
			continue
		}
		out.Rows = append(out.Rows, RawRow{RowNo: rowNo, Cells: cells})
	}

	return out, nil
}

// classifyCell 按 excelize 的单元格类型还原数值/文本。
// 未标注类型的单元格（excelize 写入的数字）按数值解析；公式结果不参与转换。
func classifyCell(raw string, typ excelize.CellType) Cell {
	if raw == "" {
		return Cell{}
	}
	switch typ {
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString:
		return TextCell(raw)
	case excelize.CellTypeBool, excelize.CellTypeError, excelize.CellTypeDate, excelize.CellTypeFormula:
		return Cell{Kind: CellOther, Text: raw}
	}
	if v, err := strconv.ParseFloat(raw, 64); err == nil {
		return NumberCell(v)
	}
	return TextCell(raw)
}
