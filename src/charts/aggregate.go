// Package charts turns the patient table into the three descriptive charts:
// deaths-by-month histogram, died/survived pie charts and an age-bucket stacked
// bar plot. Aggregation is pure; rendering produces in-memory images.
package charts

import (
	"sort"
	"strings"

	"github.com/ARM-02/covid-tracker/src/dataset"
)

// MonthLabels are the x tick labels of the histogram.
var MonthLabels = [12]string{"J", "F", "M", "A", "M", "J", "J", "A", "S", "O", "N", "D"}

// HistogramData holds death counts per calendar month (index 0 = January).
type HistogramData struct {
	Filters []string
	Counts  [12]int
}

// Title returns "Histogram (<filters>)" or "Histogram (No Filters)".
func (h HistogramData) Title() string {
	ft := "No Filters"
	if len(h.Filters) > 0 {
		ft = strings.Join(h.Filters, ", ")
	}
	return "Histogram (" + ft + ")"
}

// Total is the number of deaths counted across all bins.
func (h HistogramData) Total() int {
	n := 0
	for _, c := range h.Counts {
		n += c
	}
	return n
}

// Histogram counts deaths by month after dropping every record coded absent (2)
// for any of the selected variables. Unknown codes are kept.
func Histogram(t *dataset.Table, filters []string) HistogramData {
	out := HistogramData{Filters: append([]string(nil), filters...)}
	deaths := t.Where(func(r dataset.PatientRecord) bool {
		for _, v := range filters {
			if r.Code(v).IsAbsent() {
				return false
			}
		}
		return r.Died()
	})
	deaths.Each(func(r dataset.PatientRecord) {
		out.Counts[int(r.DateDied.Month())-1]++
	})
	return out
}

// PieData holds per-code counts for the died and survived groups. Categories is
// the sorted union of codes seen in either group; Died and Survived are aligned
// with it and always have the same length.
type PieData struct {
	Variable   string
	Categories []dataset.Code
	Died       []int
	Survived   []int
}

// Labels returns the legend labels for Categories.
func (p PieData) Labels() []string {
	out := make([]string, len(p.Categories))
	for i, c := range p.Categories {
		out[i] = c.Label()
	}
	return out
}

// DiedTotal and SurvivedTotal sum each group.
func (p PieData) DiedTotal() int     { return sum(p.Died) }
func (p PieData) SurvivedTotal() int { return sum(p.Survived) }

// PieChart keeps records coded exactly 1 or 2 for variable and splits them by
// outcome. A category missing from one group is filled with zero.
func PieChart(t *dataset.Table, variable string) PieData {
	died := map[dataset.Code]int{}
	alive := map[dataset.Code]int{}
	t.Each(func(r dataset.PatientRecord) {
		c := r.Code(variable)
		if !c.IsKnown() {
			return
		}
		if r.Died() {
			died[c]++
		} else {
			alive[c]++
		}
	})
	seen := map[dataset.Code]struct{}{}
	for c := range died {
		seen[c] = struct{}{}
	}
	for c := range alive {
		seen[c] = struct{}{}
	}
	cats := make([]dataset.Code, 0, len(seen))
	for c := range seen {
		cats = append(cats, c)
	}
	sort.Slice(cats, func(i, j int) bool { return cats[i] < cats[j] })
	out := PieData{Variable: variable, Categories: cats, Died: make([]int, len(cats)), Survived: make([]int, len(cats))}
	for i, c := range cats {
		out.Died[i] = died[c]
		out.Survived[i] = alive[c]
	}
	return out
}

// BucketStats is one bar of the bar plot.
type BucketStats struct {
	Bucket      dataset.AgeBucket
	Total       int
	Died        int
	Survived    int
	SurvivedPct float64
	DiedPct     float64
}

// BarPlotData holds one BucketStats per age bucket, in display order.
type BarPlotData struct {
	Variable string
	Buckets  []BucketStats
}

// Title is the bar plot chart title.
func (b BarPlotData) Title() string {
	return "Patients with " + b.Variable + " by Combined Age Groups"
}

// BarPlot counts, per age bucket, the records positive (code 1) for variable and
// splits them into died and survived. Empty buckets report 0% for both shares.
func BarPlot(t *dataset.Table, variable string) BarPlotData {
	buckets := dataset.AllBuckets()
	stats := make([]BucketStats, len(buckets))
	for i, b := range buckets {
		stats[i].Bucket = b
	}
	positive := t.Where(func(r dataset.PatientRecord) bool { return r.Code(variable).IsPresent() })
	positive.Each(func(r dataset.PatientRecord) {
		s := &stats[dataset.BucketForAge(r.Age)]
		s.Total++
		if r.Died() {
			s.Died++
		}
	})
	for i := range stats {
		s := &stats[i]
		s.Survived = s.Total - s.Died
		if s.Total > 0 {
			s.SurvivedPct = float64(s.Survived) / float64(s.Total) * 100
			s.DiedPct = float64(s.Died) / float64(s.Total) * 100
		}
	}
	return BarPlotData{Variable: variable, Buckets: stats}
}

// VariableSummary is the per-variable overview printed by the reader tool.
type VariableSummary struct {
	Variable     string
	Present      int
	Absent       int
	Unknown      int
	DiedPresent  int
	DiedAbsent   int
	DiedUnknown  int
	TotalRecords int
}

// Summarize counts codes and deaths for variable.
func Summarize(t *dataset.Table, variable string) VariableSummary {
	s := VariableSummary{Variable: variable}
	t.Each(func(r dataset.PatientRecord) {
		s.TotalRecords++
		c := r.Code(variable)
		switch {
		case c.IsPresent():
			s.Present++
			if r.Died() {
				s.DiedPresent++
			}
		case c.IsAbsent():
			s.Absent++
			if r.Died() {
				s.DiedAbsent++
			}
		default:
			s.Unknown++
			if r.Died() {
				s.DiedUnknown++
			}
		}
	})
	return s
}

func sum(xs []int) int {
	n := 0
	for _, x := range xs {
		n += x
	}
	return n
}
