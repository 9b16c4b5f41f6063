package charts

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// pieSize is the edge length of each of the two pies.
const pieSize = 320

// piePalette colors categories by index; the legend uses the same order.
var piePalette = []drawing.Color{
	drawing.ColorFromHex("1e82c3"),
	drawing.ColorFromHex("ee423a"),
	drawing.ColorFromHex("fdbd22"),
	drawing.ColorFromHex("aad4d8"),
	drawing.ColorFromHex("4e7997"),
}

func pieColor(i int) drawing.Color { return piePalette[i%len(piePalette)] }

// Title is the supertitle above both pies.
func (p PieData) Title() string { return "Pie Chart for " + p.Variable }

// RenderPie draws the Died and Survived pies side by side with a shared legend.
func RenderPie(p PieData) image.Image {
	out := image.NewRGBA(image.Rect(0, 0, PieWidth, PieHeight))
	draw.Draw(out, out.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	drawTextCentered(out, PieWidth/2, 22, p.Title(), color.Black)

	gap := (PieWidth - 2*pieSize) / 3
	top := 36
	groups := []struct {
		name   string
		counts []int
	}{{"Died", p.Died}, {"Survived", p.Survived}}
	for i, g := range groups {
		x := gap + i*(pieSize+gap)
		img := renderPieGroup(g.name, g.counts)
		draw.Draw(out, image.Rect(x, top, x+pieSize, top+pieSize), img, img.Bounds().Min, draw.Over)
	}

	// shared legend below the pies
	labels := p.Labels()
	if len(labels) == 0 {
		return out
	}
	const sw, entryGap = 14, 24
	widths := make([]int, len(labels))
	total := 0
	for i, l := range labels {
		widths[i] = sw + 6 + 7*len(l)
		total += widths[i]
	}
	total += entryGap * (len(labels) - 1)
	x := (PieWidth - total) / 2
	y := top + pieSize + 20
	for i, l := range labels {
		sq := image.Rect(x, y-sw+2, x+sw, y+2)
		fillRect(out, sq, pieColor(i))
		strokeRect(out, sq, color.Black)
		drawText(out, x+sw+6, y, l, color.Black)
		x += widths[i] + entryGap
	}
	return out
}

// renderPieGroup renders one pie with percentage slice labels. Zero slices are
// omitted; a group with no records becomes a placeholder disc.
func renderPieGroup(name string, counts []int) image.Image {
	total := sum(counts)
	if total == 0 {
		return emptyPie(name)
	}
	values := make([]chart.Value, 0, len(counts))
	for i, c := range counts {
		if c <= 0 {
			continue
		}
		values = append(values, chart.Value{
			Value: float64(c),
			Label: fmt.Sprintf("%.1f%%", float64(c)/float64(total)*100),
			Style: chart.Style{FillColor: pieColor(i), StrokeColor: drawing.ColorWhite, StrokeWidth: 1, FontSize: 10},
		})
	}
	pc := chart.PieChart{
		Title:      name,
		TitleStyle: chart.Style{FontSize: 12},
		Width:      pieSize,
		Height:     pieSize,
		Background: chart.Style{Padding: chart.Box{Top: 30, Left: 10, Right: 10, Bottom: 10}},
		Values:     values,
	}
	return renderPNG("pie "+name, pieSize, pieSize, func(rp chart.RendererProvider, buf *bytes.Buffer) error {
		return pc.Render(rp, buf)
	})
}

func emptyPie(name string) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, pieSize, pieSize))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	drawTextCentered(img, pieSize/2, 22, name, color.Black)
	cx, cy, rad := pieSize/2, pieSize/2+10, pieSize/2-40
	fill := color.RGBA{R: 225, G: 225, B: 225, A: 255}
	for y := cy - rad; y <= cy+rad; y++ {
		for x := cx - rad; x <= cx+rad; x++ {
			dx, dy := x-cx, y-cy
			if dx*dx+dy*dy <= rad*rad {
				img.Set(x, y, fill)
			}
		}
	}
	drawTextCentered(img, cx, cy+4, "No records", color.Black)
	return img
}
