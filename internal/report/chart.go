package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// WriteHTML renders the per-frame score timeline as a self-contained HTML
// page. The best and worst frames are called out in the subtitle; the chart
// itself carries every frame so deviations stay visible in context.
func (r *Report) WriteHTML(w io.Writer) error {
	frames := make([]string, len(r.Frames))
	scores := make([]opts.LineData, len(r.Frames))
	for i, row := range r.Frames {
		frames[i] = strconv.Itoa(row.Frame)
		scores[i] = opts.LineData{Value: row.Score}
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: "Technique Analysis " + r.SessionID,
			Width:     "1200px",
			Height:    "500px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title: "Similarity Score per Frame",
			Subtitle: fmt.Sprintf("session=%s frames=%d mean=%.1f best=#%d worst=#%d",
				r.SessionID, r.Summary.Frames, r.Summary.MeanScore,
				r.Summary.BestFrame, r.Summary.WorstFrame),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithYAxisOpts(opts.YAxis{Min: 0, Max: 100, Name: "Score"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Frame"}),
	)
	line.SetXAxis(frames).AddSeries("Score", scores)

	if err := line.Render(w); err != nil {
		return fmt.Errorf("rendering score chart: %w", err)
	}
	return nil
}
