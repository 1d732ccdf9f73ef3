package report

import "time"

// Report 一次完整生成的报表数据（每次从全量记录重新构建，不缓存）
type Report struct {
	People     []string
	MinDate    time.Time
	MaxDate    time.Time
	TotalDays  int
	GrandTotal int
	Pivot      *Pivot
	Summaries  []Summary
}

// Build 聚合 -> 透视 -> 汇总。没有记录时返回 ErrNoObservations。
func Build(observations []Observation) (*Report, error) {
	agg := Aggregate(observations)
	if agg.Empty() {
		return nil, ErrNoObservations
	}

	people := agg.People()
	return &Report{
		People:     people,
		MinDate:    agg.MinDate,
		MaxDate:    agg.MaxDate,
		TotalDays:  agg.TotalDays(),
		GrandTotal: agg.GrandTotal,
		Pivot:      BuildPivot(agg, people),
		Summaries:  Summarize(agg, people),
	}, nil
}

// SummaryOf 按人员名查找汇总
func (r *Report) SummaryOf(person string) (Summary, bool) {
	for _, s := range r.Summaries {
		if s.PersonName == person {
			return s, true
		}
	}
	return Summary{}, false
}
