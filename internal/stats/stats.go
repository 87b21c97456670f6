package stats

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"avis-insight/internal/history"
	"avis-insight/internal/sentiment"
)

// LabelCount is one bar of the distribution.
type LabelCount struct {
	Label   sentiment.Label
	Count   int
	Percent float64 // count/total×100, two decimals
}

// Snapshot is a projection of the history at one point in time. Counts are
// ordered by descending count, first-seen on ties, matching the dashboard
// charts which color bars by position rather than by label.
type Snapshot struct {
	Total  int
	Counts []LabelCount
}

// Project computes the sentiment distribution. An empty history yields a
// zero snapshot; callers render a notice instead of charts.
func Project(records []history.Record) Snapshot {
	counts := make(map[sentiment.Label]int)
	var order []sentiment.Label
	for _, rec := range records {
		if counts[rec.Sentiment] == 0 {
			order = append(order, rec.Sentiment)
		}
		counts[rec.Sentiment]++
	}

	snap := Snapshot{Total: len(records)}
	if snap.Total == 0 {
		return snap
	}
	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	for _, label := range order {
		c := counts[label]
		snap.Counts = append(snap.Counts, LabelCount{
			Label:   label,
			Count:   c,
			Percent: round2(float64(c) * 100 / float64(snap.Total)),
		})
	}
	return snap
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Summary renders the snapshot as a short plain-text report.
func (s Snapshot) Summary() string {
	if s.Total == 0 {
		return "Aucun avis soumis pour l'instant."
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%d avis au total\n", s.Total)
	for _, c := range s.Counts {
		fmt.Fprintf(&b, "%s : %d (%.2f%%)\n", c.Label, c.Count, c.Percent)
	}
	return strings.TrimRight(b.String(), "\n")
}
