package report

import "time"

// Pivot 日期 × 人员的稠密矩阵，缺失记录补 0
type Pivot struct {
	Dates  []time.Time
	People []string
	// Counts[i][j] 为 Dates[i] 当天 People[j] 的数量
	Counts [][]int
}

// BuildPivot 按日期升序、人员顺序展开矩阵。
// people 必须与输出列顺序一致。
func BuildPivot(agg *Aggregation, people []string) *Pivot {
	p := &Pivot{People: people}
	if agg.Empty() {
		return p
	}

	days := agg.TotalDays()
	p.Dates = make([]time.Time, 0, days)
	p.Counts = make([][]int, 0, days)

	for date := agg.MinDate; !date.After(agg.MaxDate); date = date.AddDate(0, 0, 1) {
		row := make([]int, len(people))
		for j, name := range people {
			row[j] = agg.Daily[name][date]
		}
		p.Dates = append(p.Dates, date)
		p.Counts = append(p.Counts, row)
	}

	return p
}

// Count 查询某天某人的数量；不在矩阵内返回 0, false
func (p *Pivot) Count(date time.Time, person string) (int, bool) {
	i := DaysBetween(p.firstDate(), date) - 1
	if len(p.Dates) == 0 || i < 0 || i >= len(p.Dates) {
		return 0, false
	}
	for j, name := range p.People {
		if name == person {
			return p.Counts[i][j], true
		}
	}
	return 0, false
}

// Row 返回某天按人员名映射的数量
func (p *Pivot) Row(date time.Time) map[string]int {
	date = DateOf(date)
	for i, d := range p.Dates {
		if d.Equal(date) {
			out := make(map[string]int, len(p.People))
			for j, name := range p.People {
				out[name] = p.Counts[i][j]
			}
			return out
		}
	}
	return nil
}

// Cells 矩阵单元格总数
func (p *Pivot) Cells() int {
	return len(p.Dates) * len(p.People)
}

func (p *Pivot) firstDate() time.Time {
	if len(p.Dates) == 0 {
		return time.Time{}
	}
	return p.Dates[0]
}
