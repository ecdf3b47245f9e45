package viz

import (
	"fmt"
	"math"
	"strings"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/fuzzylab/internal/controllers"
)

var seriesColors = []asciigraph.AnsiColor{
	asciigraph.Green,
	asciigraph.Yellow,
	asciigraph.Red,
	asciigraph.Cyan,
	asciigraph.Magenta,
	asciigraph.Blue,
}

// Curves samples every category of in at n evenly spaced points over
// [in.Min, in.Max]. Sampling leaves the stored degrees untouched.
func Curves(in controllers.Input, n int) [][]float64 {
	if n < 2 {
		n = 2
	}
	out := make([][]float64, len(in.Categories))
	for i, c := range in.Categories {
		out[i] = make([]float64, n)
		for j := 0; j < n; j++ {
			x := in.Min + (in.Max-in.Min)*float64(j)/float64(n-1)
			out[i][j] = c.Fn.Sample(x)
		}
	}
	return out
}

// PlotMemberships draws the membership curves of one input.
func PlotMemberships(in controllers.Input, samples, width, height int) string {
	if len(in.Categories) == 0 {
		return ""
	}

	colors := make([]asciigraph.AnsiColor, len(in.Categories))
	legends := make([]string, len(in.Categories))
	for i, c := range in.Categories {
		colors[i] = seriesColors[i%len(seriesColors)]
		legends[i] = c.Label
	}

	caption := fmt.Sprintf("%s [%g, %g]", in.Name, in.Min, in.Max)
	return asciigraph.PlotMany(Curves(in, samples),
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.LowerBound(0),
		asciigraph.UpperBound(1),
		asciigraph.Precision(2),
		asciigraph.SeriesColors(colors...),
		asciigraph.SeriesLegends(legends...),
		asciigraph.Caption(caption),
	)
}

// PlotSeries draws one series. Non-finite values are dropped.
func PlotSeries(values []float64, caption string, width, height int) string {
	data := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			data = append(data, v)
		}
	}
	if len(data) == 0 {
		return ""
	}

	return asciigraph.Plot(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
	)
}

// DegreeTable lists the stored degree of every category of every input.
// Categories that were never fuzzified show a dash.
func DegreeTable(s Styles, inputs []controllers.Input, barWidth int) string {
	var b strings.Builder
	for i, in := range inputs {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(s.Title.Render(in.Name))
		b.WriteString("\n")

		labelWidth := 0
		for _, c := range in.Categories {
			labelWidth = max(labelWidth, len(c.Label))
		}
		for _, c := range in.Categories {
			d := c.Fn.Degree()
			label := s.Label.Render(fmt.Sprintf("  %-*s", labelWidth, c.Label))
			if math.IsNaN(d) {
				fmt.Fprintf(&b, "%s  %s  %s\n", label, s.Hint.Render(strings.Repeat("░", barWidth)), s.Hint.Render("    -"))
				continue
			}
			fmt.Fprintf(&b, "%s  %s  %s\n", label, ProgressBar(s, d, barWidth), s.Value.Render(fmt.Sprintf("%.3f", d)))
		}
	}
	return b.String()
}
