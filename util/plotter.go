package util

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"courtsense/models/status"
)

// PlotDailyTimeline renders a venue's 24-hour forecast as a bar chart,
// one bar per hour, colored by crowd level.
func PlotDailyTimeline(venueName string, slots []status.TimelineSlot, w io.Writer) error {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: "Daily Forecast: " + venueName,
			Width:     "900px",
			Height:    "500px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    venueName,
			Subtitle: "Predicted activity by hour",
		}),
	)

	labels := make([]string, 0, len(slots))
	bars := make([]opts.BarData, 0, len(slots))
	for _, slot := range slots {
		labels = append(labels, fmt.Sprintf("%02d:00", slot.Hour))
		bars = append(bars, opts.BarData{
			Value: slot.Score,
			ItemStyle: &opts.ItemStyle{
				Color: slot.Color,
			},
		})
	}

	bar.SetXAxis(labels).AddSeries("Predicted score", bars)

	return bar.Render(w)
}
