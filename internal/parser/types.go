package parser

import "time"

// ParseResult 单个文件的解析结果
type ParseResult struct {
	SheetName string        `json:"sheetName"`
	TotalRows int           `json:"totalRows"`
	Accepted  int           `json:"accepted"`
	Rejected  int           `json:"rejected"`
	Duration  time.Duration `json:"duration"`
	// RejectedBy 按原因统计被跳过的行
	RejectedBy map[RejectReason]int `json:"rejectedBy,omitempty"`

	Results []RowResult `json:"-"`
}

// Records 所有通过校验的记录（保持原始行顺序）
func (r *ParseResult) Records() []Record {
	out := make([]Record, 0, r.Accepted)
	for _, res := range r.Results {
		if res.Record != nil {
			out = append(out, *res.Record)
		}
	}
	return out
}

// Rejections 所有被跳过的行
func (r *ParseResult) Rejections() []Rejection {
	out := make([]Rejection, 0, r.Rejected)
	for _, res := range r.Results {
		if res.Rejection != nil {
			out = append(out, *res.Rejection)
		}
	}
	return out
}
