package wizard_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/ARM-02/covid-tracker/src/charts"
	"github.com/ARM-02/covid-tracker/src/wizard"
)

var variables = []string{"DIABETES", "RENAL_CHRONIC", "ASTHMA", "CARDIOVASCULAR"}

// click taps the center of the first button labelled label on the current page.
func click(m *wizard.Machine, label string) wizard.Transition {
	for _, b := range m.Layout().Buttons {
		if b.Label == label {
			return m.Click(b.Rect.Center())
		}
	}
	Fail("no button " + label + " on " + m.Page().Kind.String())
	return wizard.Ignored
}

func fillOf(m *wizard.Machine, label string) interface{} {
	for _, b := range m.Layout().Buttons {
		if b.Label == label {
			return b.Fill
		}
	}
	return nil
}

var _ = Describe("Machine", func() {
	var m *wizard.Machine

	BeforeEach(func() {
		m = wizard.NewMachine(variables)
	})

	toHome := func() {
		Expect(m.Click(wizard.Point{X: 400, Y: 580})).To(Equal(wizard.PageChanged))
		Expect(m.Click(wizard.Point{X: 400, Y: 700})).To(Equal(wizard.PageChanged))
		Expect(m.Page().Kind).To(Equal(wizard.Home))
	}

	It("starts on the welcome page", func() {
		Expect(m.Page().Kind).To(Equal(wizard.Welcome))
		Expect(m.Layout().Buttons).To(HaveLen(1))
	})

	It("walks welcome, description and home with Continue", func() {
		Expect(click(m, "Continue")).To(Equal(wizard.PageChanged))
		Expect(m.Page().Kind).To(Equal(wizard.DatasetDescription))
		Expect(click(m, "Continue")).To(Equal(wizard.PageChanged))
		Expect(m.Page().Kind).To(Equal(wizard.Home))
		Expect(click(m, "Dataset Description")).To(Equal(wizard.PageChanged))
		Expect(m.Page().Kind).To(Equal(wizard.DatasetDescription))
	})

	It("treats button edges as inside and ignores clicks elsewhere", func() {
		Expect(m.Click(wizard.Point{X: 319.9, Y: 550})).To(Equal(wizard.Ignored))
		Expect(m.Page().Kind).To(Equal(wizard.Welcome))
		Expect(m.Click(wizard.Point{X: 480, Y: 614})).To(Equal(wizard.PageChanged))
		Expect(m.Page().Kind).To(Equal(wizard.DatasetDescription))
		Expect(m.Click(wizard.Point{X: 10, Y: 10})).To(Equal(wizard.Ignored))
		Expect(m.Page().Kind).To(Equal(wizard.DatasetDescription))
	})

	Describe("home page", func() {
		BeforeEach(toHome)

		It("selects the pie chart in single-selection mode", func() {
			Expect(m.Click(wizard.Point{X: 400, Y: 340})).To(Equal(wizard.PageChanged))
			Expect(m.Page().Kind).To(Equal(wizard.VariableSelection))
			Expect(m.GraphType()).To(Equal(charts.Kind("pie chart")))
			Expect(m.SingleSelection()).To(BeTrue())
		})

		It("selects the histogram in multi-selection mode", func() {
			Expect(m.Click(wizard.Point{X: 400, Y: 200})).To(Equal(wizard.PageChanged))
			Expect(m.GraphType()).To(Equal(charts.KindHistogram))
			Expect(m.SingleSelection()).To(BeFalse())
		})

		It("selects the bar plot in single-selection mode", func() {
			click(m, "Bar Plot")
			Expect(m.GraphType()).To(Equal(charts.KindBarPlot))
			Expect(m.SingleSelection()).To(BeTrue())
		})

		It("ignores clicks between buttons", func() {
			Expect(m.Click(wizard.Point{X: 400, Y: 260})).To(Equal(wizard.Ignored))
			Expect(m.Page().Kind).To(Equal(wizard.Home))
		})
	})

	Describe("variable selection", func() {
		Context("in single-selection mode", func() {
			BeforeEach(func() {
				toHome()
				click(m, "Pie Chart")
			})

			It("keeps only the last selected variable", func() {
				Expect(click(m, "DIABETES")).To(Equal(wizard.Redraw))
				Expect(m.Selected()).To(Equal([]string{"DIABETES"}))
				Expect(click(m, "ASTHMA")).To(Equal(wizard.Redraw))
				Expect(m.Selected()).To(Equal([]string{"ASTHMA"}))
				Expect(fillOf(m, "DIABETES")).To(Equal(wizard.ColorButton))
				Expect(fillOf(m, "ASTHMA")).To(Equal(wizard.ColorSelected))
			})

			It("deselects a variable toggled twice", func() {
				click(m, "ASTHMA")
				click(m, "ASTHMA")
				Expect(m.Selected()).To(BeEmpty())
			})

			It("shows the single-variable prompt", func() {
				Expect(m.Layout().Texts[1].Text).To(Equal("Select one variable to analyze"))
			})

			It("confirms into the graph page carrying the selection", func() {
				click(m, "RENAL_CHRONIC")
				Expect(click(m, "Confirm")).To(Equal(wizard.PageChanged))
				Expect(m.Page().Kind).To(Equal(wizard.GraphDisplay))
				Expect(m.ChartSelection()).To(Equal([]string{"RENAL_CHRONIC"}))
				Expect(m.Layout().Texts[0].Text).To(Equal("Pie Chart"))
				Expect(m.Layout().Buttons).To(HaveLen(2))
			})
		})

		Context("in multi-selection mode", func() {
			BeforeEach(func() {
				toHome()
				click(m, "Histogram")
			})

			It("starts with nothing selected and ignores Confirm", func() {
				Expect(m.Selected()).To(BeEmpty())
				Expect(click(m, "Confirm")).To(Equal(wizard.Ignored))
				Expect(m.Page().Kind).To(Equal(wizard.VariableSelection))
			})

			It("accumulates selections in display order", func() {
				click(m, "CARDIOVASCULAR")
				click(m, "DIABETES")
				Expect(m.Selected()).To(Equal([]string{"DIABETES", "CARDIOVASCULAR"}))
			})

			It("places Confirm below the variable buttons", func() {
				l := m.Layout()
				confirm := l.Buttons[len(l.Buttons)-1]
				Expect(confirm.Action).To(Equal(wizard.ActConfirm))
				Expect(confirm.Rect).To(Equal(wizard.Rect{X1: 320, Y1: 480, X2: 480, Y2: 544}))
			})
		})
	})

	Describe("histogram graph page", func() {
		BeforeEach(func() {
			toHome()
			click(m, "Histogram")
			click(m, "DIABETES")
			click(m, "ASTHMA")
			Expect(click(m, "Confirm")).To(Equal(wizard.PageChanged))
		})

		It("renders the carried selection with matching inline toggles", func() {
			Expect(m.ChartSelection()).To(Equal([]string{"DIABETES", "ASTHMA"}))
			Expect(m.Selected()).To(Equal([]string{"DIABETES", "ASTHMA"}))
			Expect(m.Layout().ChartAt).To(Equal(wizard.Point{X: 400, Y: 300}))
			Expect(m.Layout().Buttons).To(HaveLen(2 + len(variables) + 1))
		})

		It("regenerates on every inline toggle", func() {
			Expect(m.Click(wizard.Point{X: 100, Y: 600})).To(Equal(wizard.Regenerate))
			Expect(m.ChartSelection()).To(Equal([]string{"ASTHMA"}))
			Expect(m.Click(wizard.Point{X: 640, Y: 600})).To(Equal(wizard.Regenerate))
			Expect(m.ChartSelection()).To(Equal([]string{"ASTHMA", "CARDIOVASCULAR"}))
			Expect(m.Page().Kind).To(Equal(wizard.GraphDisplay))
		})

		It("falls back to no filters when every toggle is cleared", func() {
			Expect(m.Click(wizard.Point{X: 100, Y: 600})).To(Equal(wizard.Regenerate))
			Expect(m.Click(wizard.Point{X: 460, Y: 600})).To(Equal(wizard.Regenerate))
			Expect(m.Selected()).To(BeEmpty())
			Expect(m.ChartSelection()).To(BeEmpty())
			Expect(charts.HistogramData{Filters: m.ChartSelection()}.Title()).To(Equal("Histogram (No Filters)"))
		})

		It("regenerates on inline Confirm and ignores it with nothing selected", func() {
			Expect(m.Click(wizard.Point{X: 400, Y: 660})).To(Equal(wizard.Regenerate))
			Expect(m.ChartSelection()).To(Equal([]string{"DIABETES", "ASTHMA"}))
			m.Click(wizard.Point{X: 100, Y: 600})
			m.Click(wizard.Point{X: 460, Y: 600})
			Expect(m.Click(wizard.Point{X: 400, Y: 660})).To(Equal(wizard.Ignored))
		})

		It("goes back to variables with a cleared selection", func() {
			Expect(click(m, "Back to Variables")).To(Equal(wizard.PageChanged))
			Expect(m.Page().Kind).To(Equal(wizard.VariableSelection))
			Expect(m.GraphType()).To(Equal(charts.KindHistogram))
			Expect(m.Selected()).To(BeEmpty())
		})

		It("goes back home", func() {
			Expect(m.Click(wizard.Point{X: 700, Y: 760})).To(Equal(wizard.PageChanged))
			Expect(m.Page().Kind).To(Equal(wizard.Home))
		})
	})
})

var _ = Describe("RenderPage", func() {
	It("is deterministic", func() {
		pages := []wizard.Page{
			{Kind: wizard.Welcome},
			{Kind: wizard.DatasetDescription},
			{Kind: wizard.Home},
			{Kind: wizard.VariableSelection, Graph: charts.KindPie, Single: true},
			{Kind: wizard.GraphDisplay, Graph: charts.KindHistogram, Chart: []string{"ASTHMA"}},
			{Kind: wizard.GraphDisplay, Graph: charts.KindBarPlot, Single: true, Chart: []string{"ASTHMA"}},
		}
		for _, p := range pages {
			Expect(wizard.RenderPage(p, variables, []string{"ASTHMA"})).To(Equal(wizard.RenderPage(p, variables, []string{"ASTHMA"})))
		}
	})

	It("lays out the home buttons 140px apart", func() {
		l := wizard.RenderPage(wizard.Page{Kind: wizard.Home}, variables, nil)
		Expect(l.Buttons).To(HaveLen(4))
		for i, b := range l.Buttons {
			Expect(b.Rect.Y1).To(BeNumerically("==", 160+140*i))
			Expect(b.Rect.Y2).To(BeNumerically("==", 240+140*i))
		}
		Expect(l.Buttons[3].Action).To(Equal(wizard.ActShowDescription))
	})

	It("titles the graph page with the chart type", func() {
		l := wizard.RenderPage(wizard.Page{Kind: wizard.GraphDisplay, Graph: charts.KindBarPlot}, variables, nil)
		Expect(l.Texts[0].Text).To(Equal("Bar Plot"))
		Expect(l.HasChart).To(BeTrue())
		Expect(l.ChartAt).To(Equal(wizard.Point{X: 400, Y: 350}))
	})
})
