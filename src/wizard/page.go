// Package wizard holds the click-through navigation of the viewer: page layouts,
// the click state machine and the blocking loop that drives a View.
package wizard

import (
	"image/color"
	"strings"

	"github.com/ARM-02/covid-tracker/src/charts"
)

// PageKind names one screen of the wizard.
type PageKind int

const (
	Welcome PageKind = iota
	DatasetDescription
	Home
	VariableSelection
	GraphDisplay
)

var pageNames = map[PageKind]string{
	Welcome:            "welcome",
	DatasetDescription: "dataset_description",
	Home:               "home",
	VariableSelection:  "variable_selection",
	GraphDisplay:       "graph_display",
}

func (k PageKind) String() string {
	if n, ok := pageNames[k]; ok {
		return n
	}
	return "unknown"
}

// Page is the active screen plus its payload. Graph and Single are set on
// VariableSelection and GraphDisplay; Chart is the selection the displayed
// chart was built from and is only set on GraphDisplay.
type Page struct {
	Kind   PageKind
	Graph  charts.Kind
	Single bool
	Chart  []string
}

// Point is a window coordinate in pixels.
type Point struct {
	X, Y float32
}

// Rect is an axis-aligned rectangle; both corners are inside.
type Rect struct {
	X1, Y1, X2, Y2 float32
}

// Contains reports whether p lies inside r, edges included.
func (r Rect) Contains(p Point) bool {
	return r.X1 <= p.X && p.X <= r.X2 && r.Y1 <= p.Y && p.Y <= r.Y2
}

func (r Rect) Center() Point { return Point{X: (r.X1 + r.X2) / 2, Y: (r.Y1 + r.Y2) / 2} }
func (r Rect) Width() float32  { return r.X2 - r.X1 }
func (r Rect) Height() float32 { return r.Y2 - r.Y1 }

// Action is what a button does when clicked.
type Action int

const (
	ActContinue Action = iota
	ActChooseGraph
	ActShowDescription
	ActToggle
	ActConfirm
	ActBackToVariables
	ActBackToHome
)

// Button is a clickable rectangle with a centered bold label.
type Button struct {
	Action   Action
	Label    string
	Rect     Rect
	Fill     color.NRGBA
	Graph    charts.Kind // ActChooseGraph
	Variable string      // ActToggle
}

// TextElement is a line of text centered on At.
type TextElement struct {
	Text string
	At   Point
	Size float32
	Bold bool
}

// Layout is everything drawn for a page. Buttons are in registration order;
// the first one containing a click wins.
type Layout struct {
	Page    PageKind
	Texts   []TextElement
	Buttons []Button
	// ChartAt is the center of the chart bitmap when HasChart is set.
	HasChart  bool
	ChartAt   Point
	ChartSize Point
}

var (
	ColorButton   = color.NRGBA{R: 0x4e, G: 0x79, B: 0x97, A: 0xff}
	ColorAccent   = color.NRGBA{R: 0xfd, G: 0xbd, B: 0x22, A: 0xff}
	ColorSelected = color.NRGBA{R: 0xaa, G: 0xd4, B: 0xd8, A: 0xff}
)

const (
	WindowWidth  = 800
	WindowHeight = 800

	// ButtonTextSize is the label size used for every button.
	ButtonTextSize = 17
	titleSize      = 20
)

var descriptionLines = []string{
	"This dataset, provided by the Mexican government,",
	"contains anonymized data on over 1 million COVID-19 patients.",
	"",
	"It includes 21 features that capture key patient information,",
	"including demographics, medical history, and COVID-19 outcomes.",
	"",
	"Key Information:",
	"",
	"- Timeframe: Data spans from 2020 to 2021.",
	"",
	"- Age Ranges:",
	"Children(0-12)-Young Adults(13-24)-Adults(25-64)-Older Adults(65-74)-Elderly(75+)",
	"",
	"- Selected Patient Variables:",
	"1. Diabetes: Whether the patient has a history of diabetes.",
	"2. Chronic Renal Disease: Whether the patient has chronic kidney disease.",
	"3. Asthma: Whether the patient has a history of asthma.",
	"4. Cardiovascular Disease: Whether the patient has a history of heart or vascular diseases.",
	"",
	"Exploring the relationships between these variables and COVID-19 outcomes",
	"can help inform public health strategies and enhance our understanding of the virus's behavior.",
}

// RenderPage builds the layout for page p. variables is the toggle list in
// display order and selected the currently toggled subset. The result depends
// only on its arguments.
func RenderPage(p Page, variables []string, selected []string) Layout {
	isSel := make(map[string]bool, len(selected))
	for _, v := range selected {
		isSel[v] = true
	}
	l := Layout{Page: p.Kind}
	switch p.Kind {
	case Welcome:
		l.Texts = []TextElement{
			{Text: "Welcome to the Covid Tracker", At: Point{400, 300}, Size: 30, Bold: true},
			{Text: "Visualize the effect of pre-existing conditions on COVID-19 outcomes", At: Point{400, 350}, Size: titleSize, Bold: true},
			{Text: "Click continue to create your graphs", At: Point{400, 500}, Size: titleSize, Bold: true},
		}
		l.Buttons = []Button{{Action: ActContinue, Label: "Continue", Rect: Rect{320, 550, 480, 614}, Fill: ColorAccent}}
	case DatasetDescription:
		l.Texts = []TextElement{{Text: "Dataset Description", At: Point{400, 80}, Size: titleSize, Bold: true}}
		y := float32(130)
		for _, line := range descriptionLines {
			if line != "" {
				l.Texts = append(l.Texts, TextElement{Text: line, At: Point{400, y}, Size: 14})
			}
			y += 24
		}
		l.Buttons = []Button{{Action: ActContinue, Label: "Continue", Rect: Rect{320, 680, 480, 744}, Fill: ColorAccent}}
	case Home:
		l.Texts = []TextElement{{Text: "Select Desired Graph", At: Point{400, 80}, Size: titleSize}}
		choices := []struct {
			label string
			graph charts.Kind
		}{
			{"Histogram", charts.KindHistogram},
			{"Pie Chart", charts.KindPie},
			{"Bar Plot", charts.KindBarPlot},
		}
		for i, c := range choices {
			l.Buttons = append(l.Buttons, Button{Action: ActChooseGraph, Label: c.label, Rect: homeRect(i), Fill: ColorButton, Graph: c.graph})
		}
		l.Buttons = append(l.Buttons, Button{Action: ActShowDescription, Label: "Dataset Description", Rect: homeRect(3), Fill: ColorButton})
	case VariableSelection:
		prompt := "Select one, or multiple, variables to analyze"
		if p.Single {
			prompt = "Select one variable to analyze"
		}
		l.Texts = []TextElement{
			{Text: "Filters", At: Point{400, 40}, Size: titleSize},
			{Text: prompt, At: Point{400, 83}, Size: 18},
		}
		for i, v := range variables {
			y := float32(120 + i*80)
			l.Buttons = append(l.Buttons, toggleButton(v, Rect{240, y, 560, y + 64}, isSel[v]))
		}
		y := float32(120 + len(variables)*80)
		l.Buttons = append(l.Buttons, Button{Action: ActConfirm, Label: "Confirm", Rect: Rect{320, y + 40, 480, y + 104}, Fill: ColorAccent})
	case GraphDisplay:
		l.Texts = []TextElement{{Text: titleCase(string(p.Graph)), At: Point{400, 30}, Size: titleSize}}
		l.HasChart = true
		l.ChartAt = Point{400, 350}
		switch p.Graph {
		case charts.KindHistogram:
			l.ChartAt = Point{400, 300}
			l.ChartSize = Point{charts.HistogramWidth, charts.HistogramHeight}
		case charts.KindPie:
			l.ChartSize = Point{charts.PieWidth, charts.PieHeight}
		default:
			l.ChartSize = Point{charts.BarPlotWidth, charts.BarPlotHeight}
		}
		l.Buttons = []Button{
			{Action: ActBackToVariables, Label: "Back to Variables", Rect: Rect{100, 680, 300, 760}, Fill: ColorButton},
			{Action: ActBackToHome, Label: "Back to Home", Rect: Rect{500, 680, 700, 760}, Fill: ColorAccent},
		}
		if p.Graph == charts.KindHistogram {
			for i, v := range variables {
				x := float32(60 + i*180)
				l.Buttons = append(l.Buttons, toggleButton(v, Rect{x, 580, x + 170, 620}, isSel[v]))
			}
			l.Buttons = append(l.Buttons, Button{Action: ActConfirm, Label: "Confirm", Rect: Rect{320, 640, 480, 680}, Fill: ColorAccent})
		}
	}
	return l
}

func homeRect(i int) Rect {
	y := float32(160 + i*140)
	return Rect{240, y, 560, y + 80}
}

func toggleButton(variable string, r Rect, selected bool) Button {
	fill := ColorButton
	if selected {
		fill = ColorSelected
	}
	return Button{Action: ActToggle, Label: variable, Rect: r, Fill: fill, Variable: variable}
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
