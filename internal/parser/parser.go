package parser

import (
	"time"
)

// Parser 事件表解析器：读取原始行并逐行规范化
type Parser struct {
	reader     RowReader
	normalizer *Normalizer
}

// NewParser 创建解析器（默认使用 excelize 读取）
func NewParser(mapper DateMapper) *Parser {
	return &Parser{
		reader:     WorkbookReader{},
		normalizer: NewNormalizer(mapper),
	}
}

// WithReader 替换行读取实现
func (p *Parser) WithReader(r RowReader) *Parser {
	p.reader = r
	return p
}

// ParseFile 解析文件。单行问题只记录为 Rejection；文件级问题返回 *InputError。
func (p *Parser) ParseFile(path string) (*ParseResult, error) {
	start := time.Now()

	sheet, err := p.reader.ReadRows(path)
	if err != nil {
		return nil, err
	}

	result := p.ParseSheet(sheet)
	result.Duration = time.Since(start)
	return result, nil
}

// ParseSheet 规范化已读取的行
func (p *Parser) ParseSheet(sheet *Sheet) *ParseResult {
	result := &ParseResult{
		SheetName:  sheet.Name,
		TotalRows:  len(sheet.Rows),
		RejectedBy: map[RejectReason]int{},
		Results:    make([]RowResult, 0, len(sheet.Rows)),
	}

	for _, row := range sheet.Rows {
		res := p.normalizer.Normalize(row.RowNo, row.Cells)
		if res.Accepted() {
			result.Accepted++
		} else {
			result.Rejected++
			result.RejectedBy[res.Rejection.Reason]++
		}
		result.Results = append(result.Results, res)
	}

	return result
}
