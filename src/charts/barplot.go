package charts

import (
	"bytes"
	"fmt"
	"image"
	"strconv"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

const (
	patternDied     = "o"
	patternSurvived = "+"
	// barWidth is the bar width in x units (buckets sit at 1..n).
	barWidth = 0.6
)

// ProportionLines returns the "Survived vs Died" panel rows, one per bucket.
func (b BarPlotData) ProportionLines() []string {
	out := make([]string, len(b.Buckets))
	for i, s := range b.Buckets {
		out[i] = fmt.Sprintf("%s: %.1f%% vs %.1f%%", s.Bucket.Abbrev(), s.SurvivedPct, s.DiedPct)
	}
	return out
}

// RenderBarPlot draws one stacked bar per age bucket (died on top of survived)
// with a pattern legend and a boxed survived/died percentage panel.
func RenderBarPlot(b BarPlotData) image.Image {
	n := len(b.Buckets)
	if n == 0 {
		return blank(BarPlotWidth, BarPlotHeight)
	}
	maxTotal := 0
	labels := make([]string, n)
	for i, s := range b.Buckets {
		if s.Total > maxTotal {
			maxTotal = s.Total
		}
		labels[i] = s.Bucket.Label()
	}
	yTicks := countTicks(maxTotal)
	yMax := yTicks[len(yTicks)-1].Value
	xTicks := categoryTicks(labels)
	xr := tickAxis(xTicks)
	ch := chart.Chart{
		Title:      b.Title(),
		TitleStyle: chart.Style{FontSize: 12},
		Width:      BarPlotWidth,
		Height:     BarPlotHeight,
		Background: chart.Style{Padding: chart.Box{Top: 48, Left: 20, Right: legendColumn, Bottom: 20}},
		XAxis: chart.XAxis{
			Name:  "Age Groups",
			Ticks: xTicks,
		},
		YAxis: chart.YAxis{
			Name:  "Number of Patients",
			Range: &chart.ContinuousRange{Min: 0, Max: yMax},
			Ticks: yTicks,
		},
		Series: []chart.Series{anchorSeries(xr.min, xr.max)},
	}
	ch.Elements = []chart.Renderable{
		stackedBars(b.Buckets, xr, yMax),
		legendBox([]legendEntry{
			{Label: "Died", Fill: colorDied, Pattern: patternDied},
			{Label: "Survived", Fill: colorSurvived, Pattern: patternSurvived},
		}, "Legend: Colors & Patterns", BarPlotWidth-legendColumn),
		proportionPanel(b.ProportionLines()),
	}
	return renderPNG("bar plot", BarPlotWidth, BarPlotHeight, func(rp chart.RendererProvider, buf *bytes.Buffer) error {
		return ch.Render(rp, buf)
	})
}

func stackedBars(stats []BucketStats, xr axisMap, yMax float64) chart.Renderable {
	return func(r chart.Renderer, box chart.Box, defaults chart.Style) {
		xm := xr.within(box)
		for i, s := range stats {
			center := float64(i + 1)
			x0 := xm.px(center - barWidth/2)
			x1 := xm.px(center + barWidth/2)
			base := box.Bottom
			mid := yPx(box, float64(s.Survived), yMax)
			top := yPx(box, float64(s.Total), yMax)
			if s.Survived > 0 {
				rect(r, x0, mid, x1, base, colorSurvived)
				hatch(r, x0, mid, x1, base, patternSurvived)
			}
			if s.Died > 0 {
				rect(r, x0, top, x1, mid, colorDied)
				hatch(r, x0, top, x1, mid, patternDied)
			}
			st := textStyle(defaults, 9, drawing.ColorBlack)
			st.TextHorizontalAlign = chart.TextHorizontalAlignCenter
			st.TextVerticalAlign = chart.TextVerticalAlignBottom
			chart.Draw.TextWithin(r, strconv.Itoa(s.Total), chart.Box{Left: x0, Right: x1, Top: top - 16, Bottom: top - 2}, st)
		}
	}
}

// proportionPanel draws the boxed "Survived vs Died" text right of the plot.
func proportionPanel(lines []string) chart.Renderable {
	return func(r chart.Renderer, box chart.Box, defaults chart.Style) {
		st := textStyle(defaults, 9, drawing.ColorBlack)
		const lineH, pad = 16, 8
		left := BarPlotWidth - legendColumn + 12
		right := BarPlotWidth - 8
		top := box.Top + box.Height()/3
		bottom := top + (len(lines)+1)*lineH + pad
		rect(r, left, top, right, bottom, drawing.Color{R: 245, G: 245, B: 245, A: 255})
		y := top + pad + 10
		title := st
		title.FontSize = 10
		chart.Draw.Text(r, "Survived vs Died", left+pad, y, title)
		for _, l := range lines {
			y += lineH
			chart.Draw.Text(r, l, left+pad, y, st)
		}
	}
}
