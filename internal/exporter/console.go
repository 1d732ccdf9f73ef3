package exporter

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/Divakar-randhi/incident-resolved/internal/report"
)

// PrintSummary 以表格形式输出每人汇总
func PrintSummary(w io.Writer, rep *report.Report) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.SetTitle("INCIDENT RESOLUTION REPORT (%d)", rep.MinDate.Year())
	t.AppendHeader(table.Row{"Person", "Total Incidents", "Working Days", "Zero Days", "Average per Working Day", "Contribution %"})

	for _, s := range rep.Summaries {
		t.AppendRow(table.Row{
			s.PersonName,
			s.TotalIncidents,
			s.WorkingDays,
			fmt.Sprintf("%d (out of %d)", s.ZeroDays, rep.TotalDays),
			fmt.Sprintf("%.2f", s.AveragePerWorkingDay),
			fmt.Sprintf("%.2f%%", s.PercentOfGrandTotal),
		})
	}

	t.AppendFooter(table.Row{"Grand Total", rep.GrandTotal, "", "", "", ""})
	t.SetCaption("Date Range: %s to %s | Total Days: %d",
		rep.MinDate.Format("2006-01-02"), rep.MaxDate.Format("2006-01-02"), rep.TotalDays)
	t.Render()
}
