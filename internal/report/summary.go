package report

// Summary 单人的汇总统计
type Summary struct {
	PersonName     string
	TotalIncidents int
	WorkingDays    int
	ZeroDays       int
	// AveragePerWorkingDay 与 PercentOfGrandTotal 保留完整精度，渲染时再保留两位小数
	AveragePerWorkingDay float64
	PercentOfGrandTotal  float64
}

// Summarize 按 people 顺序计算每人统计。只统计实际记录，不使用补 0 的矩阵。
func Summarize(agg *Aggregation, people []string) []Summary {
	totalDays := agg.TotalDays()
	out := make([]Summary, 0, len(people))

	for _, name := range people {
		days := agg.Daily[name]

		s := Summary{
			PersonName:  name,
			WorkingDays: len(days),
		}
		for _, count := range days {
			s.TotalIncidents += count
		}
		s.ZeroDays = totalDays - s.WorkingDays
		if s.WorkingDays > 0 {
			s.AveragePerWorkingDay = float64(s.TotalIncidents) / float64(s.WorkingDays)
		}
		if agg.GrandTotal > 0 {
			s.PercentOfGrandTotal = float64(s.TotalIncidents) / float64(agg.GrandTotal) * 100
		}

		out = append(out, s)
	}

	return out
}
