package report

import (
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/rowflux/rowflux/service/bench"
	"github.com/rowflux/rowflux/service/sysinfo"
)

const (
	chartWidth  = 480
	chartHeight = 240
	chartMargin = 40
)

// HTML renders the whole suite as a single self-contained page: per matrix
// size a table of timings plus an inline SVG chart of mean time vs threads.
func HTML(suite *bench.Suite, info *sysinfo.Info) string {
	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\"/>\n")
	b.WriteString("<title>rowflux benchmark report</title>\n")
	b.WriteString("<style>\nbody{font-family:sans-serif;margin:2em}\n")
	b.WriteString("table{border-collapse:collapse;margin:1em 0}\n")
	b.WriteString("td,th{border:1px solid #999;padding:4px 10px;text-align:right}\n")
	b.WriteString("th{background:#eee}\npre{background:#f6f6f6;padding:1em}\n</style>\n")
	b.WriteString("</head>\n<body>\n<h1>rowflux benchmark report</h1>\n")
	fmt.Fprintf(&b, "<p>started %s, %d repeats per cell, seed %d</p>\n",
		suite.StartedAt.Format(time.RFC3339), suite.Config.Repeats, suite.Config.Seed)
	if info != nil {
		b.WriteString("<h2>System</h2>\n<pre>")
		b.WriteString(html.EscapeString(info.Render()))
		b.WriteString("</pre>\n")
	}

	for _, size := range suite.Sizes() {
		cells := suite.BySize(size)
		fmt.Fprintf(&b, "<h2>Matrix size %d</h2>\n", size)
		writeTable(&b, cells)
		writeChart(&b, cells)
	}
	b.WriteString("</body>\n</html>\n")
	return b.String()
}

func writeTable(b *strings.Builder, cells []*bench.Cell) {
	b.WriteString("<table>\n<tr><th>threads</th><th>min ms</th><th>mean ms</th><th>max ms</th><th>speedup</th></tr>\n")
	baseline := baselineMean(cells)
	for _, cell := range cells {
		speedup := 0.0
		if cell.Mean > 0 {
			speedup = ms(baseline) / ms(cell.Mean)
		}
		fmt.Fprintf(b, "<tr><td>%d</td><td>%.3f</td><td>%.3f</td><td>%.3f</td><td>%.2fx</td></tr>\n",
			cell.Workers, ms(cell.Min), ms(cell.Mean), ms(cell.Max), speedup)
	}
	b.WriteString("</table>\n")
}

// baselineMean returns the single-thread mean when present, otherwise the
// first cell's mean.
func baselineMean(cells []*bench.Cell) time.Duration {
	for _, cell := range cells {
		if cell.Workers == 1 {
			return cell.Mean
		}
	}
	if len(cells) > 0 {
		return cells[0].Mean
	}
	return 0
}

func writeChart(b *strings.Builder, cells []*bench.Cell) {
	if len(cells) == 0 {
		return
	}
	maxMean := cells[0].Mean
	for _, cell := range cells {
		if cell.Mean > maxMean {
			maxMean = cell.Mean
		}
	}
	if maxMean <= 0 {
		maxMean = time.Millisecond
	}

	fmt.Fprintf(b, "<svg width=\"%d\" height=\"%d\" xmlns=\"http://www.w3.org/2000/svg\">\n", chartWidth, chartHeight)
	// axes
	fmt.Fprintf(b, "<line x1=\"%d\" y1=\"%d\" x2=\"%d\" y2=\"%d\" stroke=\"black\"/>\n",
		chartMargin, chartHeight-chartMargin, chartWidth-chartMargin, chartHeight-chartMargin)
	fmt.Fprintf(b, "<line x1=\"%d\" y1=\"%d\" x2=\"%d\" y2=\"%d\" stroke=\"black\"/>\n",
		chartMargin, chartMargin, chartMargin, chartHeight-chartMargin)

	span := len(cells) - 1
	if span == 0 {
		span = 1
	}
	step := (chartWidth - 2*chartMargin) / span
	var points []string
	for i, cell := range cells {
		x := chartMargin + i*step
		y := chartHeight - chartMargin -
			int(float64(chartHeight-2*chartMargin)*ms(cell.Mean)/ms(maxMean))
		points = append(points, fmt.Sprintf("%d,%d", x, y))
		fmt.Fprintf(b, "<circle cx=\"%d\" cy=\"%d\" r=\"3\" fill=\"steelblue\"/>\n", x, y)
		fmt.Fprintf(b, "<text x=\"%d\" y=\"%d\" font-size=\"11\" text-anchor=\"middle\">%d</text>\n",
			x, chartHeight-chartMargin+16, cell.Workers)
	}
	fmt.Fprintf(b, "<polyline points=\"%s\" fill=\"none\" stroke=\"steelblue\" stroke-width=\"2\"/>\n",
		strings.Join(points, " "))
	fmt.Fprintf(b, "<text x=\"%d\" y=\"%d\" font-size=\"11\" text-anchor=\"middle\">threads</text>\n",
		chartWidth/2, chartHeight-6)
	fmt.Fprintf(b, "<text x=\"%d\" y=\"%d\" font-size=\"11\">ms</text>\n", 6, chartMargin)
	b.WriteString("</svg>\n")
}
