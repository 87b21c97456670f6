package web

import (
	"log"
	"net/http"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"avis-insight/internal/stats"
)

// Bars and pie slices are colored by position in the count vector, not by
// label: first green, then red, then gray.
var chartColors = []string{"green", "red", "gray"}

func colorAt(i int) string {
	return chartColors[i%len(chartColors)]
}

func (s *Server) handlePieChart(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.chartSnapshot(w, r)
	if !ok {
		return
	}

	items := make([]opts.PieData, 0, len(snap.Counts))
	for i, c := range snap.Counts {
		items = append(items, opts.PieData{
			Name:      string(c.Label),
			Value:     c.Count,
			ItemStyle: &opts.ItemStyle{Color: colorAt(i)},
		})
	}

	pie := charts.NewPie()
	pie.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "600px", Height: "400px"}),
		charts.WithTitleOpts(opts.Title{Title: "Distribution des sentiments"}),
	)
	pie.AddSeries("Sentiment", items).SetSeriesOptions(
		// {d} renders the share with one decimal, as on the original pie.
		charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Formatter: "{b}: {d}%"}),
	)
	if err := pie.Render(w); err != nil {
		log.Printf("❌ Failed to render pie chart: %v", err)
	}
}

func (s *Server) handleBarChart(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.chartSnapshot(w, r)
	if !ok {
		return
	}

	labels := make([]string, 0, len(snap.Counts))
	values := make([]opts.BarData, 0, len(snap.Counts))
	for i, c := range snap.Counts {
		labels = append(labels, string(c.Label))
		values = append(values, opts.BarData{
			Value:     c.Count,
			ItemStyle: &opts.ItemStyle{Color: colorAt(i)},
		})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "600px", Height: "400px"}),
		charts.WithTitleOpts(opts.Title{Title: "Histogramme des sentiments"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Nombre d'avis"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Sentiment"}),
	)
	bar.SetXAxis(labels).AddSeries("Nombre d'avis", values)
	if err := bar.Render(w); err != nil {
		log.Printf("❌ Failed to render bar chart: %v", err)
	}
}

func (s *Server) chartSnapshot(w http.ResponseWriter, r *http.Request) (stats.Snapshot, bool) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return stats.Snapshot{}, false
	}
	if !s.isAuthenticated(r) {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return stats.Snapshot{}, false
	}
	snap := stats.Project(s.store.All())
	if snap.Total == 0 {
		http.Error(w, "Aucune donnée disponible", http.StatusNotFound)
		return stats.Snapshot{}, false
	}
	return snap, true
}
