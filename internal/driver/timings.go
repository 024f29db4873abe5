package driver

import (
	"fmt"
	"strconv"

	"regionorm/internal/observ"
)

// TimingReport merges per-file phase timings into one report: one phase per
// pipeline step, summed across files.
func TimingReport(results []FileResult) observ.Report {
	var order []string
	sums := make(map[string]float64)
	notes := make(map[string]int)
	for i := range results {
		for _, p := range results[i].Timing.Phases {
			if _, seen := sums[p.Name]; !seen {
				order = append(order, p.Name)
			}
			sums[p.Name] += p.DurationMS
			notes[p.Name]++
		}
	}
	report := observ.Report{Phases: make([]observ.PhaseReport, 0, len(order))}
	for _, name := range order {
		report.Phases = append(report.Phases, observ.PhaseReport{
			Name:       name,
			DurationMS: sums[name],
			Note:       fmt.Sprintf("%d files", notes[name]),
		})
		report.TotalMS += sums[name]
	}
	return report
}

func itoa(n int) string { return strconv.Itoa(n) }
