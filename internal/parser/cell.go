package parser

import (
	"math"
	"strconv"
	"strings"
)

// CellKind 单元格的源类型
type CellKind int

const (
	CellEmpty CellKind = iota
	CellNumber
	CellText
	CellOther // 布尔、错误值等无法参与转换的类型
)

// Cell 带类型的原始单元格
type Cell struct {
	Kind   CellKind
	Number float64
	Text   string
}

// NumberCell 数值单元格
func NumberCell(v float64) Cell { return Cell{Kind: CellNumber, Number: v} }

// TextCell 文本单元格
func TextCell(s string) Cell { return Cell{Kind: CellText, Text: s} }

// truncInt32 数值截断取整；NaN、Inf 及超出 int32 范围的值失败
func truncInt32(v float64) (int, bool) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	t := math.Trunc(v)
	if t < math.MinInt32 || t > math.MaxInt32 {
		return 0, false
	}
	return int(t), true
}

// AsInt 数值截断取整；文本去空格后按整数解析；其它类型失败。
// 两种来源都限定在 int32 范围内。
func (c Cell) AsInt() (int, bool) {
	switch c.Kind {
	case CellNumber:
		return truncInt32(c.Number)
	case CellText:
		v, err := strconv.ParseInt(strings.TrimSpace(c.Text), 10, 32)
		if err != nil {
			return 0, false
		}
		return int(v), true
	}
	return 0, false
}

// AsString 文本去空格；数值输出其整数形式；其它类型失败
func (c Cell) AsString() (string, bool) {
	switch c.Kind {
	case CellText:
		return strings.TrimSpace(c.Text), true
	case CellNumber:
		v, ok := truncInt32(c.Number)
		if !ok {
			return "", false
		}
		return strconv.Itoa(v), true
	}
	return "", false
}
