package verify

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
)

// A Sample is one cross-checked inference: the prediction of the timing
// simulator next to the functional reference, with the measured cycle
// count.
type Sample struct {
	Index     int
	Expected  uint8
	Got       uint8
	Cycles    int
	TrueLabel int // -1 when unknown
}

// Report compares timing-simulator results against the functional
// reference across a batch of inferences.
type Report struct {
	Samples []Sample
}

// Add records one cross-checked inference.
func (r *Report) Add(s Sample) {
	r.Samples = append(r.Samples, s)
}

// Mismatches returns the samples where the timing simulator disagreed
// with the reference.
func (r *Report) Mismatches() []Sample {
	var bad []Sample
	for _, s := range r.Samples {
		if s.Expected != s.Got {
			bad = append(bad, s)
		}
	}
	return bad
}

// OK reports whether every sample matched.
func (r *Report) OK() bool {
	return len(r.Mismatches()) == 0
}

// CycleStats returns min, max, and mean cycles per inference.
func (r *Report) CycleStats() (min, max int, avg float64) {
	if len(r.Samples) == 0 {
		return 0, 0, 0
	}

	min, max = r.Samples[0].Cycles, r.Samples[0].Cycles
	total := 0
	for _, s := range r.Samples {
		if s.Cycles < min {
			min = s.Cycles
		}
		if s.Cycles > max {
			max = s.Cycles
		}
		total += s.Cycles
	}

	return min, max, float64(total) / float64(len(r.Samples))
}

// Write renders the report as a table.
func (r *Report) Write(w io.Writer) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle("Inference Verification Report")
	t.AppendHeader(table.Row{"#", "Expected", "Got", "Cycles", "Status"})

	for _, s := range r.Samples {
		status := "PASS"
		if s.Expected != s.Got {
			status = "FAIL"
		}
		t.AppendRow(table.Row{s.Index, s.Expected, s.Got, s.Cycles, status})
	}

	min, max, avg := r.CycleStats()
	t.AppendFooter(table.Row{
		"", "", "",
		fmt.Sprintf("min=%d max=%d avg=%.1f", min, max, avg),
		fmt.Sprintf("%d/%d pass", len(r.Samples)-len(r.Mismatches()), len(r.Samples)),
	})

	t.Render()
}
