package report

import (
	"errors"
	"time"
)

// ErrNoObservations 没有任何有效记录时返回（不生成报表）
var ErrNoObservations = errors.New("report: no observations")

// Observation 单条有效记录：某人某天处理的事件数
type Observation struct {
	PersonName string
	Date       time.Time
	Count      int
}

// DateOf 归一化为 UTC 零点，保证可作为 map key 比较
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysBetween 返回 [from, to] 闭区间内的天数
func DaysBetween(from, to time.Time) int {
	from, to = DateOf(from), DateOf(to)
	if to.Before(from) {
		return 0
	}
	return int(to.Sub(from).Hours()/24) + 1
}
