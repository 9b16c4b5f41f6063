package charts

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/ARM-02/covid-tracker/src/applog"
	"github.com/ARM-02/covid-tracker/src/dataset"
)

// Kind names a chart type. The values are what the home page buttons assign.
type Kind string

const (
	KindHistogram Kind = "histogram"
	KindPie       Kind = "pie chart"
	KindBarPlot   Kind = "bar plot"
)

// ArtifactName is the fixed file name an exported chart is written to.
func (k Kind) ArtifactName() string {
	switch k {
	case KindHistogram:
		return "histogram.png"
	case KindPie:
		return "pie_chart.png"
	case KindBarPlot:
		return "bar_plot_with_two_legends.png"
	}
	return strings.ReplaceAll(string(k), " ", "_") + ".png"
}

// SingleSelection reports whether the chart takes exactly one variable.
func (k Kind) SingleSelection() bool { return k != KindHistogram }

var (
	colorDied     = drawing.ColorFromHex("ee423a")
	colorSurvived = drawing.ColorFromHex("1e82c3")
	colorEdge     = drawing.ColorBlack
	colorPanel    = drawing.Color{R: 255, G: 255, B: 255, A: 230}
)

// Default bitmap sizes per chart, in pixels.
const (
	HistogramWidth  = 640
	HistogramHeight = 460
	PieWidth        = 700
	PieHeight       = 420
	BarPlotWidth    = 700
	BarPlotHeight   = 560
)

// Renderer builds chart bitmaps from a loaded table. When WriteArtifacts is set,
// every rendered chart is also written to OutputDir under its fixed name.
type Renderer struct {
	Table          *dataset.Table
	OutputDir      string
	WriteArtifacts bool
}

// NewRenderer returns a Renderer over t.
func NewRenderer(t *dataset.Table, outputDir string, writeArtifacts bool) *Renderer {
	return &Renderer{Table: t, OutputDir: outputDir, WriteArtifacts: writeArtifacts}
}

// Render draws the chart of the given kind for selection. Pie and bar charts
// require exactly one variable; the histogram takes any number of filters.
func (r *Renderer) Render(kind Kind, selection []string) (image.Image, error) {
	if r == nil || r.Table == nil {
		return nil, fmt.Errorf("renderer has no dataset")
	}
	var img image.Image
	switch kind {
	case KindHistogram:
		img = RenderHistogram(Histogram(r.Table, selection))
	case KindPie:
		if len(selection) != 1 {
			return nil, fmt.Errorf("pie chart needs exactly one variable, got %d", len(selection))
		}
		img = RenderPie(PieChart(r.Table, selection[0]))
	case KindBarPlot:
		if len(selection) != 1 {
			return nil, fmt.Errorf("bar plot needs exactly one variable, got %d", len(selection))
		}
		img = RenderBarPlot(BarPlot(r.Table, selection[0]))
	default:
		return nil, fmt.Errorf("unknown chart kind %q", kind)
	}
	if r.WriteArtifacts {
		if _, err := Export(r.OutputDir, kind, img); err != nil {
			applog.Warnf("chart export failed: %v", err)
		}
	}
	return img, nil
}

// Export writes img as PNG to dir/<kind artifact name>, replacing any previous file.
func Export(dir string, kind Kind, img image.Image) (string, error) {
	if img == nil {
		return "", fmt.Errorf("no image to export")
	}
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	p := filepath.Join(dir, kind.ArtifactName())
	f, err := os.Create(p)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", p, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return "", fmt.Errorf("encode %s: %w", p, err)
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	applog.Debugf("chart written to %s", p)
	return p, nil
}

// renderPNG renders a go-chart renderable into a decoded image, falling back to
// a blank bitmap of the requested size on failure.
func renderPNG(name string, w, h int, render func(rp chart.RendererProvider, buf *bytes.Buffer) error) image.Image {
	var buf bytes.Buffer
	if err := render(chart.PNG, &buf); err != nil {
		applog.Warnf("%s render error: %v; showing blank fallback", name, err)
		return blank(w, h)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		applog.Warnf("%s decode error: %v; showing blank fallback", name, err)
		return blank(w, h)
	}
	return img
}

func blank(w, h int) image.Image {
	if w <= 0 || h <= 0 {
		w, h = 1, 1
	}
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	return img
}

// textStyle derives a text style from the element defaults so the chart font is set.
func textStyle(defaults chart.Style, size float64, col drawing.Color) chart.Style {
	return chart.Style{
		FontSize:  size,
		FontColor: col,
	}.InheritFrom(defaults)
}

// rect fills and outlines the box (x0,y0)-(x1,y1) on a go-chart renderer.
func rect(r chart.Renderer, x0, y0, x1, y1 int, fill drawing.Color) {
	chart.Draw.Box(r, chart.Box{Left: x0, Top: y0, Right: x1, Bottom: y1}, chart.Style{
		FillColor:   fill,
		StrokeColor: colorEdge,
		StrokeWidth: 1,
	})
}

// hatch draws a repeating pattern inside the box: "o" small circles, "+" crosses.
func hatch(r chart.Renderer, x0, y0, x1, y1 int, pattern string) {
	const step = 10
	if x1-x0 < 4 || y1-y0 < 4 {
		return
	}
	r.SetStrokeColor(colorEdge)
	r.SetStrokeWidth(1)
	for y := y0 + step/2; y <= y1-3; y += step {
		for x := x0 + step/2; x <= x1-3; x += step {
			switch pattern {
			case "o":
				r.Circle(2.5, x, y)
				r.Stroke()
			case "+":
				r.MoveTo(x-3, y)
				r.LineTo(x+3, y)
				r.MoveTo(x, y-3)
				r.LineTo(x, y+3)
				r.Stroke()
			}
		}
	}
}

// drawText writes s with the 7x13 bitmap face; (x, y) is the baseline origin.
func drawText(dst *image.RGBA, x, y int, s string, col color.Color) {
	dr := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(col),
		Face: basicfont.Face7x13,
		Dot:  fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y)},
	}
	dr.DrawString(s)
}

// drawTextCentered writes s centered horizontally on cx.
func drawTextCentered(dst *image.RGBA, cx, y int, s string, col color.Color) {
	dr := &font.Drawer{Face: basicfont.Face7x13}
	w := dr.MeasureString(s).Ceil()
	drawText(dst, cx-w/2, y, s, col)
}

func fillRect(dst *image.RGBA, r image.Rectangle, col color.Color) {
	draw.Draw(dst, r, image.NewUniform(col), image.Point{}, draw.Over)
}

func strokeRect(dst *image.RGBA, r image.Rectangle, col color.Color) {
	for x := r.Min.X; x < r.Max.X; x++ {
		dst.Set(x, r.Min.Y, col)
		dst.Set(x, r.Max.Y-1, col)
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		dst.Set(r.Min.X, y, col)
		dst.Set(r.Max.X-1, y, col)
	}
}
