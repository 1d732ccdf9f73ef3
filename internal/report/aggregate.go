package report

import (
	"sort"
	"time"
)

// Aggregation 按人员聚合后的结果
type Aggregation struct {
	// Daily 人员 -> 日期 -> 数量；只包含实际出现过的日期
	Daily      map[string]map[time.Time]int
	MinDate    time.Time
	MaxDate    time.Time
	GrandTotal int
	// Observations 参与聚合的记录数（含被覆盖的重复记录）
	Observations int
}

// Aggregate 汇总记录：按人分组、求全局最小/最大日期与总数。
// 同一 (人员, 日期) 出现多次时，后出现的覆盖先出现的。
func Aggregate(observations []Observation) *Aggregation {
	agg := &Aggregation{
		Daily: make(map[string]map[time.Time]int),
	}

	for _, o := range observations {
		date := DateOf(o.Date)

		days, ok := agg.Daily[o.PersonName]
		if !ok {
			days = make(map[time.Time]int)
			agg.Daily[o.PersonName] = days
		}
		if prev, dup := days[date]; dup {
			agg.GrandTotal -= prev
		}
		days[date] = o.Count
		agg.GrandTotal += o.Count

		if agg.Observations == 0 || date.Before(agg.MinDate) {
			agg.MinDate = date
		}
		if agg.Observations == 0 || date.After(agg.MaxDate) {
			agg.MaxDate = date
		}
		agg.Observations++
	}

	return agg
}

// Empty 是否没有任何记录
func (a *Aggregation) Empty() bool {
	return a == nil || a.Observations == 0
}

// TotalDays 日期范围内的天数
func (a *Aggregation) TotalDays() int {
	if a.Empty() {
		return 0
	}
	return DaysBetween(a.MinDate, a.MaxDate)
}

// People 按字节序升序返回所有人员
func (a *Aggregation) People() []string {
	names := make([]string, 0, len(a.Daily))
	for name := range a.Daily {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
