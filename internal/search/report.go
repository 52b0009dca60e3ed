package search

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/samber/lo"
)

// progress formats "count/total (pct%)".
func progress(done int64, total int) string {
	pct := 100.0
	if total > 0 {
		pct = 100 * float64(done) / float64(total)
	}
	return fmt.Sprintf("%d/%d (%.1f%%)", done, total, pct)
}

// Finished keeps only runs that completed every track.
func Finished(runs []Run) []Run {
	return lo.Filter(runs, func(r Run, _ int) bool {
		return r.Finished()
	})
}

// TopForTrack returns the n fastest runs on track i.
func TopForTrack(runs []Run, i, n int) []Run {
	sorted := append([]Run(nil), runs...)
	sort.SliceStable(sorted, func(a, b int) bool {
		return sorted[a].Times[i] < sorted[b].Times[i]
	})
	return head(sorted, n)
}

// Relative is a run scored against benchmark times.
type Relative struct {
	Run
	Deltas []float64 // Time minus benchmark, per track
}

// Total sums the per-track deltas.
func (r Relative) Total() float64 {
	return lo.Sum(r.Deltas)
}

// TopRelative ranks runs by their summed difference to the benchmark.
func TopRelative(runs []Run, benchmark []float64, n int) []Relative {
	rel := lo.Map(runs, func(r Run, _ int) Relative {
		deltas := make([]float64, len(r.Times))
		for i, t := range r.Times {
			deltas[i] = t - benchmark[i]
		}
		return Relative{Run: r, Deltas: deltas}
	})
	sort.SliceStable(rel, func(a, b int) bool {
		return rel[a].Total() < rel[b].Total()
	})
	return head(rel, n)
}

func head[T any](s []T, n int) []T {
	if n > 0 && len(s) > n {
		return s[:n]
	}
	return s
}

// WriteTrackTable renders the fastest runs of one track.
func WriteTrackTable(w io.Writer, title string, params []string, runs []Run) {
	t := newTable(w, title, params, "times")
	for _, r := range runs {
		t.AppendRow(append(paramRow(r, params), formatTimes(r.Times)))
	}
	t.Render()
}

// WriteRelativeTable renders runs ranked against the benchmark.
func WriteRelativeTable(w io.Writer, title string, params []string, runs []Relative) {
	t := newTable(w, title, params, "deltas", "total")
	for _, r := range runs {
		t.AppendRow(append(paramRow(r.Run, params), formatTimes(r.Deltas), fmt.Sprintf("%+.3f", r.Total())))
	}
	t.Render()
}

func newTable(w io.Writer, title string, params []string, extra ...string) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.SetTitle(title)

	header := table.Row{"#"}
	for _, p := range params {
		header = append(header, p)
	}
	for _, e := range extra {
		header = append(header, e)
	}
	t.AppendHeader(header)
	return t
}

func paramRow(r Run, params []string) table.Row {
	values := ConfigValues(r.Config)
	row := table.Row{r.Index}
	for _, p := range params {
		row = append(row, values[p])
	}
	return row
}

func formatTimes(times []float64) string {
	parts := lo.Map(times, func(t float64, _ int) string {
		return fmt.Sprintf("%.3f", t)
	})
	return strings.Join(parts, " - ")
}
