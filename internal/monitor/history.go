package monitor

import (
	"sort"

	"github.com/rileyhilliard/bitmeter/internal/store"
)

// History holds the samples currently visible on the graph, oldest first.
//
// Contents are replaced wholesale on each successful tick; nothing is merged
// with the previous window and nothing survives a restart. History is not
// safe for concurrent use. The model only touches it from Update.
type History struct {
	samples []store.Sample
}

// NewHistory creates an empty history.
func NewHistory() *History {
	return &History{}
}

// Replace discards the current contents and stores samples sorted by
// timestamp. If two samples share a timestamp the later one in the input wins.
func (h *History) Replace(samples []store.Sample) {
	sorted := make([]store.Sample, len(samples))
	copy(sorted, samples)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp < sorted[j].Timestamp
	})

	out := sorted[:0]
	for _, s := range sorted {
		if n := len(out); n > 0 && out[n-1].Timestamp == s.Timestamp {
			out[n-1] = s
			continue
		}
		out = append(out, s)
	}
	h.samples = out
}

// Samples returns a copy of the buffered samples.
func (h *History) Samples() []store.Sample {
	out := make([]store.Sample, len(h.samples))
	copy(out, h.samples)
	return out
}
