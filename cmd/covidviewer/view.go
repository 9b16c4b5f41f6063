package main

import (
	"context"
	"image"
	"image/color"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/ARM-02/covid-tracker/cmd/covidviewer/uihelpers"
	"github.com/ARM-02/covid-tracker/src/applog"
	"github.com/ARM-02/covid-tracker/src/wizard"
)

// pageCanvas is the window content: an absolutely positioned container that
// forwards every tap to the navigation loop.
type pageCanvas struct {
	widget.BaseWidget
	content *fyne.Container
	size    fyne.Size
	taps    chan wizard.Point
	done    chan struct{}
	once    sync.Once
}

func newPageCanvas(w, h float32) *pageCanvas {
	bg := canvas.NewRectangle(color.White)
	bg.Resize(fyne.NewSize(w, h))
	p := &pageCanvas{
		content: container.NewWithoutLayout(bg),
		size:    fyne.NewSize(w, h),
		taps:    make(chan wizard.Point, 16),
		done:    make(chan struct{}),
	}
	p.ExtendBaseWidget(p)
	return p
}

func (p *pageCanvas) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(p.content)
}

func (p *pageCanvas) MinSize() fyne.Size { return p.size }

// Tapped runs on the UI thread; it must never block.
func (p *pageCanvas) Tapped(ev *fyne.PointEvent) {
	pt := wizard.Point{X: ev.Position.X, Y: ev.Position.Y}
	select {
	case p.taps <- pt:
	default:
		applog.Warnf("click queue full, dropping click at (%.0f,%.0f)", pt.X, pt.Y)
	}
}

// close ends NextClick for the loop; safe to call more than once.
func (p *pageCanvas) close() { p.once.Do(func() { close(p.done) }) }

// NextClick implements wizard.ClickSource.
func (p *pageCanvas) NextClick(ctx context.Context) (wizard.Point, error) {
	select {
	case pt := <-p.taps:
		return pt, nil
	case <-p.done:
		return wizard.Point{}, wizard.ErrClosed
	case <-ctx.Done():
		return wizard.Point{}, ctx.Err()
	}
}

// fyneView draws wizard layouts onto a pageCanvas. Every method is called from
// the loop goroutine and hops to the UI thread with fyne.DoAndWait.
type fyneView struct {
	canvas  *pageCanvas
	objects []fyne.CanvasObject
	buttons []*canvas.Rectangle
	chart   *canvas.Image
}

var _ wizard.View = (*fyneView)(nil)

func newFyneView(c *pageCanvas) *fyneView { return &fyneView{canvas: c} }

func (v *fyneView) Enter(l wizard.Layout) func() {
	fyne.DoAndWait(func() {
		for _, t := range l.Texts {
			v.add(newText(t.Text, t.At, t.Size, t.Bold))
		}
		v.buttons = v.buttons[:0]
		for _, b := range l.Buttons {
			r := canvas.NewRectangle(b.Fill)
			r.StrokeColor = color.Black
			r.StrokeWidth = 1
			r.Move(fyne.NewPos(b.Rect.X1, b.Rect.Y1))
			r.Resize(fyne.NewSize(b.Rect.Width(), b.Rect.Height()))
			v.add(r)
			v.buttons = append(v.buttons, r)
			v.add(newText(b.Label, b.Rect.Center(), wizard.ButtonTextSize, true))
		}
		v.canvas.content.Refresh()
	})
	return v.release
}

// release removes everything drawn since the last Enter.
func (v *fyneView) release() {
	fyne.DoAndWait(func() {
		for _, o := range v.objects {
			v.canvas.content.Remove(o)
		}
		v.objects = nil
		v.buttons = nil
		v.chart = nil
		v.canvas.content.Refresh()
	})
}

func (v *fyneView) Update(l wizard.Layout) {
	fyne.DoAndWait(func() {
		for i, b := range l.Buttons {
			if i >= len(v.buttons) {
				break
			}
			if v.buttons[i].FillColor != b.Fill {
				v.buttons[i].FillColor = b.Fill
				v.buttons[i].Refresh()
			}
		}
	})
}

func (v *fyneView) ShowChart(img image.Image, l wizard.Layout) {
	fyne.DoAndWait(func() {
		if v.chart != nil {
			v.canvas.content.Remove(v.chart)
			v.forget(v.chart)
			v.chart = nil
		}
		if img == nil {
			v.canvas.content.Refresh()
			return
		}
		pos, size := chartRect(img.Bounds(), l)
		ci := canvas.NewImageFromImage(img)
		ci.FillMode = canvas.ImageFillContain
		ci.Move(pos)
		ci.Resize(size)
		v.chart = ci
		v.add(ci)
		v.canvas.content.Refresh()
	})
}

// chartRect places a bitmap of bounds b in the layout's chart slot. The slot is
// clamped to the window and the bitmap is contain-fitted inside it.
func chartRect(b image.Rectangle, l wizard.Layout) (fyne.Position, fyne.Size) {
	sw, sh := int(l.ChartSize.X), int(l.ChartSize.Y)
	if sw <= 0 || sh <= 0 {
		sw, sh = b.Dx(), b.Dy()
	}
	sw, sh = uihelpers.ComputeChartDimensions(sw, sh, wizard.WindowWidth, wizard.WindowHeight)
	sx, sy := uihelpers.CenteredBox(l.ChartAt.X, l.ChartAt.Y, float32(sw), float32(sh), wizard.WindowWidth, wizard.WindowHeight)
	dx, dy, w, h, scale := uihelpers.ComputeContainRect(float32(b.Dx()), float32(b.Dy()), float32(sw), float32(sh))
	if scale == 0 {
		return fyne.NewPos(sx, sy), fyne.NewSize(float32(sw), float32(sh))
	}
	return fyne.NewPos(sx+dx, sy+dy), fyne.NewSize(w, h)
}

func (v *fyneView) add(o fyne.CanvasObject) {
	v.objects = append(v.objects, o)
	v.canvas.content.Add(o)
}

func (v *fyneView) forget(o fyne.CanvasObject) {
	for i, x := range v.objects {
		if x == o {
			v.objects = append(v.objects[:i], v.objects[i+1:]...)
			return
		}
	}
}

func newText(s string, at wizard.Point, size float32, bold bool) *canvas.Text {
	t := canvas.NewText(s, color.Black)
	t.TextSize = size
	t.TextStyle = fyne.TextStyle{Bold: bold}
	ts := fyne.MeasureText(s, size, t.TextStyle)
	x, y := uihelpers.TextOrigin(at.X, at.Y, ts.Width, ts.Height)
	t.Move(fyne.NewPos(x, y))
	t.Resize(ts)
	return t
}
