package wizard

import (
	"context"
	"errors"
	"image"
	"time"

	"github.com/ARM-02/covid-tracker/src/applog"
	"github.com/ARM-02/covid-tracker/src/charts"
)

// ErrClosed is returned by a ClickSource once no more clicks will arrive.
var ErrClosed = errors.New("click source closed")

// ClickSource blocks until the next pointer click.
type ClickSource interface {
	NextClick(ctx context.Context) (Point, error)
}

// View draws layouts. Enter draws a fresh page and returns the function that
// removes everything drawn for it, chart included.
type View interface {
	Enter(l Layout) (release func())
	// Update repaints the buttons of the current page.
	Update(l Layout)
	// ShowChart replaces the chart bitmap of the current page. img may be nil.
	ShowChart(img image.Image, l Layout)
}

// ChartProvider renders a chart for a selection.
type ChartProvider interface {
	Render(kind charts.Kind, selection []string) (image.Image, error)
}

// Loop drives a Machine from a ClickSource: one click is handled to completion,
// chart regeneration included, before the next is read.
type Loop struct {
	Machine *Machine
	Charts  ChartProvider
}

// NewLoop returns a loop over a fresh machine.
func NewLoop(variables []string, provider ChartProvider) *Loop {
	return &Loop{Machine: NewMachine(variables), Charts: provider}
}

// Run blocks until the click source closes or ctx is done. Both end the loop
// without error; any other click source error is returned.
func (l *Loop) Run(ctx context.Context, clicks ClickSource, view View) error {
	release := l.enterPage(view)
	defer func() { release() }()
	for {
		p, err := clicks.NextClick(ctx)
		if err != nil {
			if errors.Is(err, ErrClosed) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				applog.Debugf("navigation loop stopped: %v", err)
				return nil
			}
			return err
		}
		before := l.Machine.Page().Kind
		t := l.Machine.Click(p)
		applog.Debugf("click (%.0f,%.0f) on %s: %s", p.X, p.Y, before, t)
		switch t {
		case PageChanged:
			release()
			release = l.enterPage(view)
		case Redraw:
			view.Update(l.Machine.Layout())
		case Regenerate:
			view.Update(l.Machine.Layout())
			l.showChart(view)
		}
	}
}

func (l *Loop) enterPage(view View) func() {
	release := view.Enter(l.Machine.Layout())
	if l.Machine.Layout().HasChart {
		l.showChart(view)
	}
	return release
}

func (l *Loop) showChart(view View) {
	page := l.Machine.Page()
	var img image.Image
	if l.Charts != nil {
		start := time.Now()
		var err error
		img, err = l.Charts.Render(page.Graph, page.Chart)
		if err != nil {
			applog.Errorf("render %s %v: %v", page.Graph, page.Chart, err)
			img = nil
		}
		applog.TimeTrack(start, "render "+string(page.Graph))
	}
	view.ShowChart(img, l.Machine.Layout())
}
