package parser

import (
	"fmt"
	"time"
)

// DateMapper 把日期编号解析为日历日期
type DateMapper interface {
	Resolve(dayID int) (time.Time, bool)
}

// OffsetMapper 基准日期 + (dayID - BaseDayID) 天。
// Window > 0 时只接受 |dayID - BaseDayID| <= Window 的编号。
type OffsetMapper struct {
	Base      time.Time
	BaseDayID int
	Window    int
}

// NewOffsetMapper 创建偏移映射；基准日期非法时报错
func NewOffsetMapper(year int, month time.Month, day, baseDayID int) (*OffsetMapper, error) {
	base := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if base.Year() != year || base.Month() != month || base.Day() != day {
		return nil, fmt.Errorf("invalid base date %04d-%02d-%02d", year, int(month), day)
	}
	return &OffsetMapper{Base: base, BaseDayID: baseDayID}, nil
}

// WithWindow 限定可解析编号距基准的最大天数（<= 0 表示不限）
func (m *OffsetMapper) WithWindow(days int) *OffsetMapper {
	m.Window = days
	return m
}

// Resolve 窗口外的编号返回 false
func (m *OffsetMapper) Resolve(dayID int) (time.Time, bool) {
	offset := dayID - m.BaseDayID
	if m.Window > 0 && (offset > m.Window || offset < -m.Window) {
		return time.Time{}, false
	}
	return m.Base.AddDate(0, 0, offset), true
}

// String 便于日志输出
func (m *OffsetMapper) String() string {
	return fmt.Sprintf("%s (dayId %d)", m.Base.Format("2006-01-02"), m.BaseDayID)
}
