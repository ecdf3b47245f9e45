// Package export writes controller curves and run trajectories as SVG.
package export

import (
	"fmt"
	"html"
	"math"
	"strings"

	"github.com/san-kum/fuzzylab/internal/controllers"
	"github.com/san-kum/fuzzylab/internal/viz"
)

var palette = []string{"#00ff88", "#ffcc00", "#ff4444", "#00ccff", "#ff00ff", "#8888ff"}

type Point struct {
	X, Y float64
}

// Series is one labelled polyline.
type Series struct {
	Label  string
	Color  string
	Points []Point
}

type bounds struct {
	minX, maxX, minY, maxY float64
}

func boundsOf(series []Series) (bounds, bool) {
	b := bounds{math.Inf(1), math.Inf(-1), math.Inf(1), math.Inf(-1)}
	found := false
	for _, s := range series {
		for _, p := range s.Points {
			b.minX, b.maxX = math.Min(b.minX, p.X), math.Max(b.maxX, p.X)
			b.minY, b.maxY = math.Min(b.minY, p.Y), math.Max(b.maxY, p.Y)
			found = true
		}
	}
	if !found {
		return b, false
	}

	rangeX := b.maxX - b.minX
	rangeY := b.maxY - b.minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	b.minX -= rangeX * 0.05
	b.maxX += rangeX * 0.05
	b.minY -= rangeY * 0.1
	b.maxY += rangeY * 0.1
	return b, true
}

// ToSVG draws every series on shared axes. Series with fewer than two
// points are skipped; an empty string means nothing could be drawn.
func ToSVG(series []Series, width, height int) string {
	b, ok := boundsOf(series)
	if !ok {
		return ""
	}
	rangeX := b.maxX - b.minX
	rangeY := b.maxY - b.minY

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height)

	drawn := 0
	for i, s := range series {
		if len(s.Points) < 2 {
			continue
		}
		color := s.Color
		if color == "" {
			color = palette[i%len(palette)]
		}

		fmt.Fprintf(&sb, `<path fill="none" stroke="%s" stroke-width="1.5" d="M`, color)
		for j, p := range s.Points {
			x := (p.X - b.minX) / rangeX * float64(width)
			y := float64(height) - (p.Y-b.minY)/rangeY*float64(height)
			if j == 0 {
				fmt.Fprintf(&sb, "%.1f,%.1f", x, y)
			} else {
				fmt.Fprintf(&sb, " L%.1f,%.1f", x, y)
			}
		}
		sb.WriteString("\"/>\n")

		if s.Label != "" {
			fmt.Fprintf(&sb, `<text x="8" y="%d" fill="%s" font-family="monospace" font-size="12">%s</text>
`, 16+14*drawn, color, html.EscapeString(s.Label))
		}
		drawn++
	}

	sb.WriteString("</svg>\n")
	if drawn == 0 {
		return ""
	}
	return sb.String()
}

// MembershipsToSVG draws the category curves of one input sampled at n
// points over its range.
func MembershipsToSVG(in controllers.Input, n, width, height int) string {
	curves := viz.Curves(in, n)
	series := make([]Series, len(curves))
	for i, ys := range curves {
		pts := make([]Point, len(ys))
		for j, y := range ys {
			pts[j] = Point{X: in.Min + (in.Max-in.Min)*float64(j)/float64(len(ys)-1), Y: y}
		}
		series[i] = Series{Label: in.Categories[i].Label, Points: pts}
	}
	return ToSVG(series, width, height)
}

// TrajectoryToSVG draws ys against xs, truncated to the shorter slice.
func TrajectoryToSVG(label string, xs, ys []float64, width, height int) string {
	n := min(len(xs), len(ys))
	pts := make([]Point, n)
	for i := 0; i < n; i++ {
		pts[i] = Point{X: xs[i], Y: ys[i]}
	}
	return ToSVG([]Series{{Label: label, Points: pts}}, width, height)
}
