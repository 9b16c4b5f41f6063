package charts

import (
	"bytes"
	"image"
	"math"
	"strconv"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// RenderHistogram draws twelve contiguous month bars, each labelled with its count.
func RenderHistogram(h HistogramData) image.Image {
	maxCount := 0
	for _, c := range h.Counts {
		if c > maxCount {
			maxCount = c
		}
	}
	yTicks := countTicks(maxCount)
	yMax := yTicks[len(yTicks)-1].Value
	xTicks := categoryTicks(MonthLabels[:])
	xr := tickAxis(xTicks)
	ch := chart.Chart{
		Title:      h.Title(),
		TitleStyle: chart.Style{FontSize: 13},
		Width:      HistogramWidth,
		Height:     HistogramHeight,
		Background: chart.Style{Padding: chart.Box{Top: 48, Left: 20, Right: legendColumn, Bottom: 20}},
		XAxis: chart.XAxis{
			Name:  "Month",
			Ticks: xTicks,
		},
		YAxis: chart.YAxis{
			Name:  "Number of Deaths",
			Range: &chart.ContinuousRange{Min: 0, Max: yMax},
			Ticks: yTicks,
		},
		// go-chart needs at least one series to lay out axes; this one is invisible.
		Series: []chart.Series{anchorSeries(xr.min, xr.max)},
	}
	ch.Elements = []chart.Renderable{
		histogramBars(h.Counts, xr, yMax),
		legendBox([]legendEntry{{Label: "Deaths by Month", Fill: colorSurvived}}, "", HistogramWidth-legendColumn),
	}
	return renderPNG("histogram", HistogramWidth, HistogramHeight, func(rp chart.RendererProvider, buf *bytes.Buffer) error {
		return ch.Render(rp, buf)
	})
}

func histogramBars(counts [12]int, xr axisMap, yMax float64) chart.Renderable {
	return func(r chart.Renderer, box chart.Box, defaults chart.Style) {
		xm := xr.within(box)
		for i, c := range counts {
			x0 := xm.px(float64(i) + 0.5)
			x1 := xm.px(float64(i) + 1.5)
			top := yPx(box, float64(c), yMax)
			if c > 0 {
				rect(r, x0, top, x1, box.Bottom, colorSurvived)
			}
			label := chart.Box{Left: x0, Right: x1, Top: top - 16, Bottom: top - 2}
			st := textStyle(defaults, 9, drawing.ColorBlack)
			st.TextHorizontalAlign = chart.TextHorizontalAlignCenter
			st.TextVerticalAlign = chart.TextVerticalAlignBottom
			chart.Draw.TextWithin(r, strconv.Itoa(c), label, st)
		}
	}
}

// anchorSeries is a transparent two-point series spanning [min, max] on x.
func anchorSeries(min, max float64) chart.Series {
	return chart.ContinuousSeries{
		XValues: []float64{min, max},
		YValues: []float64{0, 0},
		Style:   chart.Style{StrokeColor: drawing.ColorTransparent, StrokeWidth: 0.1},
	}
}

// categoryTicks labels the integer positions 1..n and adds unlabelled bounds at
// 0.5 and n+0.5. go-chart sets the x range to the tick extent, so the bounds keep
// each bar centered on its label.
func categoryTicks(labels []string) []chart.Tick {
	ticks := make([]chart.Tick, 0, len(labels)+2)
	ticks = append(ticks, chart.Tick{Value: 0.5})
	for i, l := range labels {
		ticks = append(ticks, chart.Tick{Value: float64(i + 1), Label: l})
	}
	return append(ticks, chart.Tick{Value: float64(len(labels)) + 0.5})
}

// tickAxis returns the value range go-chart derives from explicit ticks.
func tickAxis(ticks []chart.Tick) axisMap {
	if len(ticks) == 0 {
		return axisMap{}
	}
	m := axisMap{min: ticks[0].Value, max: ticks[0].Value}
	for _, t := range ticks[1:] {
		m.min = math.Min(m.min, t.Value)
		m.max = math.Max(m.max, t.Value)
	}
	return m
}

// axisMap converts data values to pixel positions along one axis.
type axisMap struct {
	min, max float64
	lo, span int
}

// within places the value range on the horizontal extent of box.
func (m axisMap) within(box chart.Box) axisMap {
	m.lo, m.span = box.Left, box.Width()
	return m
}

func (m axisMap) px(v float64) int {
	if m.max <= m.min {
		return m.lo
	}
	return m.lo + int((v-m.min)/(m.max-m.min)*float64(m.span))
}

// yPx maps v on a 0..yMax axis to a pixel row inside box.
func yPx(box chart.Box, v, yMax float64) int {
	if yMax <= 0 {
		return box.Bottom
	}
	return box.Bottom - int(v/yMax*float64(box.Height()))
}

type legendEntry struct {
	Label   string
	Fill    drawing.Color
	Pattern string
}

// legendColumn is the width kept free right of the axes for legends and panels.
const legendColumn = 190

// legendBox draws a boxed legend at the top of the column starting at x = left,
// outside the plot area so bar labels stay visible.
func legendBox(entries []legendEntry, title string, left int) chart.Renderable {
	return func(r chart.Renderer, box chart.Box, defaults chart.Style) {
		st := textStyle(defaults, 9, drawing.ColorBlack)
		st.WriteTextOptionsToRenderer(r)
		width := 0
		lines := len(entries)
		if title != "" {
			lines++
			if tb := r.MeasureText(title); tb.Width() > width {
				width = tb.Width()
			}
		}
		for _, e := range entries {
			if tb := r.MeasureText(e.Label); tb.Width()+26 > width {
				width = tb.Width() + 26
			}
		}
		const lineH, pad = 18, 8
		left += 12
		right := left + width + 2*pad
		top := box.Top
		bottom := top + lines*lineH + pad
		rect(r, left, top, right, bottom, colorPanel)
		y := top + pad
		if title != "" {
			chart.Draw.Text(r, title, left+pad, y+11, st)
			y += lineH
		}
		for _, e := range entries {
			rect(r, left+pad, y, left+pad+16, y+12, e.Fill)
			if e.Pattern != "" {
				hatch(r, left+pad, y, left+pad+16, y+12, e.Pattern)
			}
			chart.Draw.Text(r, e.Label, left+pad+24, y+11, st)
			y += lineH
		}
	}
}
