package wizard_test

import (
	"context"
	"errors"
	"image"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/ARM-02/covid-tracker/src/charts"
	"github.com/ARM-02/covid-tracker/src/wizard"
)

type scriptedClicks struct {
	points []wizard.Point
	err    error
}

func (s *scriptedClicks) NextClick(ctx context.Context) (wizard.Point, error) {
	if err := ctx.Err(); err != nil {
		return wizard.Point{}, err
	}
	if len(s.points) == 0 {
		if s.err != nil {
			return wizard.Point{}, s.err
		}
		return wizard.Point{}, wizard.ErrClosed
	}
	p := s.points[0]
	s.points = s.points[1:]
	return p, nil
}

// recordingView tracks which pages are drawn and checks that a page is
// released before the next one is entered.
type recordingView struct {
	entered  []wizard.PageKind
	live     int
	released int
	updates  int
	charts   int
	nilChart int
}

func (v *recordingView) Enter(l wizard.Layout) func() {
	Expect(v.live).To(Equal(0), "previous page still drawn")
	v.entered = append(v.entered, l.Page)
	v.live++
	done := false
	return func() {
		if done {
			return
		}
		done = true
		v.live--
		v.released++
	}
}

func (v *recordingView) Update(wizard.Layout) { v.updates++ }

func (v *recordingView) ShowChart(img image.Image, l wizard.Layout) {
	Expect(l.HasChart).To(BeTrue())
	v.charts++
	if img == nil {
		v.nilChart++
	}
}

type renderCall struct {
	kind charts.Kind
	sel  []string
}

type fakeCharts struct {
	calls []renderCall
	err   error
}

func (f *fakeCharts) Render(kind charts.Kind, sel []string) (image.Image, error) {
	f.calls = append(f.calls, renderCall{kind: kind, sel: sel})
	if f.err != nil {
		return nil, f.err
	}
	return image.NewRGBA(image.Rect(0, 0, 4, 4)), nil
}

var _ = Describe("Loop", func() {
	var (
		view     *recordingView
		provider *fakeCharts
		loop     *wizard.Loop
	)

	BeforeEach(func() {
		view = &recordingView{}
		provider = &fakeCharts{}
		loop = wizard.NewLoop(variables, provider)
	})

	pt := func(x, y float32) wizard.Point { return wizard.Point{X: x, Y: y} }

	It("draws the welcome page and releases it when the source closes", func() {
		Expect(loop.Run(context.Background(), &scriptedClicks{}, view)).To(Succeed())
		Expect(view.entered).To(Equal([]wizard.PageKind{wizard.Welcome}))
		Expect(view.released).To(Equal(1))
		Expect(view.live).To(Equal(0))
	})

	It("renders the bar plot for the confirmed variable", func() {
		clicks := &scriptedClicks{points: []wizard.Point{
			pt(400, 580), // continue
			pt(5, 5),     // nothing
			pt(400, 700), // continue
			pt(400, 480), // bar plot
			pt(400, 150), // DIABETES
			pt(400, 310), // ASTHMA replaces it
			pt(400, 500), // confirm
		}}
		Expect(loop.Run(context.Background(), clicks, view)).To(Succeed())
		Expect(view.entered).To(Equal([]wizard.PageKind{
			wizard.Welcome, wizard.DatasetDescription, wizard.Home, wizard.VariableSelection, wizard.GraphDisplay,
		}))
		Expect(view.updates).To(Equal(2))
		Expect(provider.calls).To(Equal([]renderCall{{kind: charts.KindBarPlot, sel: []string{"ASTHMA"}}}))
		Expect(view.charts).To(Equal(1))
		Expect(view.live).To(Equal(0))
	})

	It("regenerates the histogram in place on inline toggles and Confirm", func() {
		clicks := &scriptedClicks{points: []wizard.Point{
			pt(400, 580), pt(400, 700), // to home
			pt(400, 200), // histogram
			pt(400, 500), // confirm with nothing selected: ignored
			pt(400, 150), // DIABETES
			pt(400, 500), // confirm
			pt(640, 600), // inline CARDIOVASCULAR on
			pt(400, 660), // inline confirm
			pt(100, 600), // inline DIABETES off
			pt(640, 600), // inline CARDIOVASCULAR off
			pt(200, 700), // back to variables
		}}
		Expect(loop.Run(context.Background(), clicks, view)).To(Succeed())
		Expect(provider.calls).To(Equal([]renderCall{
			{kind: charts.KindHistogram, sel: []string{"DIABETES"}},
			{kind: charts.KindHistogram, sel: []string{"DIABETES", "CARDIOVASCULAR"}},
			{kind: charts.KindHistogram, sel: []string{"DIABETES", "CARDIOVASCULAR"}},
			{kind: charts.KindHistogram, sel: []string{"CARDIOVASCULAR"}},
			{kind: charts.KindHistogram, sel: []string{}},
		}))
		Expect(view.charts).To(Equal(5))
		Expect(view.entered[len(view.entered)-1]).To(Equal(wizard.VariableSelection))
		Expect(view.entered).To(HaveLen(6))
	})

	It("shows an empty chart when rendering fails", func() {
		provider.err = errors.New("boom")
		clicks := &scriptedClicks{points: []wizard.Point{
			pt(400, 580), pt(400, 700), pt(400, 340), pt(400, 150), pt(400, 500),
		}}
		Expect(loop.Run(context.Background(), clicks, view)).To(Succeed())
		Expect(view.nilChart).To(Equal(1))
	})

	It("stops on context cancellation", func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		Expect(loop.Run(ctx, &scriptedClicks{points: []wizard.Point{pt(400, 580)}}, view)).To(Succeed())
		Expect(view.entered).To(HaveLen(1))
	})

	It("returns unexpected click source errors", func() {
		boom := errors.New("device gone")
		err := loop.Run(context.Background(), &scriptedClicks{err: boom}, view)
		Expect(err).To(MatchError(boom))
		Expect(view.live).To(Equal(0))
	})
})
