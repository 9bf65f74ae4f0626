package render

import (
	"fmt"
	"io"
	"time"

	"github.com/pkg/errors"
	"github.com/wcharczuk/go-chart/v2"
)

// TimingChart writes a PNG bar chart of the wall-clock time of every trial in milliseconds.
func TimingChart(w io.Writer, title string, durations []time.Duration) error {
	if len(durations) == 0 {
		return errors.New("no trials to chart")
	}

	maxValue := 0.0
	bars := make([]chart.Value, len(durations))
	for i, d := range durations {
		ms := float64(d.Microseconds()) / 1000.0
		bars[i] = chart.Value{Label: fmt.Sprint(i + 1), Value: ms}
		maxValue = max(maxValue, ms)
	}
	if maxValue == 0.0 {
		maxValue = 1.0
	}

	width := 1024
	barWidth := max(2, (width-100)/len(bars)-4)
	graph := chart.BarChart{
		Title:      title,
		Width:      width,
		Height:     512,
		BarWidth:   barWidth,
		BarSpacing: 4,
		Background: chart.Style{
			Padding: chart.Box{Top: 40},
		},
		YAxis: chart.YAxis{
			Name:  "ms",
			Range: &chart.ContinuousRange{Min: 0.0, Max: 1.1 * maxValue},
		},
		Bars: bars,
	}
	return graph.Render(chart.PNG, w)
}
