package parser

import (
	"time"

	"github.com/Divakar-randhi/incident-resolved/internal/report"
)

// RejectReason 行被跳过的原因
type RejectReason string

const (
	RejectInvalidDayID  RejectReason = "invalid_day_id"
	RejectInvalidPerson RejectReason = "invalid_person"
	RejectEmptyPerson   RejectReason = "empty_person"
	RejectInvalidCount  RejectReason = "invalid_count"
	RejectNegativeCount RejectReason = "negative_count"
	RejectUnmappedDayID RejectReason = "unmapped_day_id"
)

// Record 通过校验的一行（保留原始日期编号用于入库）
type Record struct {
	RowNo      int
	DayID      int
	PersonName string
	Date       time.Time
	Count      int
}

// Observation 转换为报表输入
func (r Record) Observation() report.Observation {
	return report.Observation{PersonName: r.PersonName, Date: r.Date, Count: r.Count}
}

// Rejection 被跳过的行
type Rejection struct {
	RowNo  int
	Reason RejectReason
}

// RowResult 单行处理结果：Record 与 Rejection 二选一
type RowResult struct {
	Record    *Record
	Rejection *Rejection
}

// Accepted 是否通过
func (r RowResult) Accepted() bool {
	return r.Record != nil
}

// Normalizer 行规范化器
type Normalizer struct {
	mapper DateMapper
}

// NewNormalizer 创建规范化器
func NewNormalizer(mapper DateMapper) *Normalizer {
	return &Normalizer{mapper: mapper}
}

// Normalize 校验并转换一行：A 列日期编号、B 列人员、C 列数量。缺少的列按空单元格处理。
func (n *Normalizer) Normalize(rowNo int, cells []Cell) RowResult {
	reject := func(reason RejectReason) RowResult {
		return RowResult{Rejection: &Rejection{RowNo: rowNo, Reason: reason}}
	}

	dayID, ok := cellAt(cells, 0).AsInt()
	if !ok {
		return reject(RejectInvalidDayID)
	}
	name, ok := cellAt(cells, 1).AsString()
	if !ok {
		return reject(RejectInvalidPerson)
	}
	if name == "" {
		return reject(RejectEmptyPerson)
	}
	count, ok := cellAt(cells, 2).AsInt()
	if !ok {
		return reject(RejectInvalidCount)
	}
	if count < 0 {
		return reject(RejectNegativeCount)
	}

	date, ok := n.mapper.Resolve(dayID)
	if !ok {
		return reject(RejectUnmappedDayID)
	}

	return RowResult{Record: &Record{
		RowNo:      rowNo,
		DayID:      dayID,
		PersonName: name,
		Date:       report.DateOf(date),
		Count:      count,
	}}
}

func cellAt(cells []Cell, i int) Cell {
	if i >= len(cells) {
		return Cell{}
	}
	return cells[i]
}
