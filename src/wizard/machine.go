package wizard

import (
	mapset "github.com/deckarep/golang-set/v2"

	"github.com/ARM-02/covid-tracker/src/charts"
)

// Transition is the outcome of a click.
type Transition int

const (
	// Ignored: nothing was hit, or the hit was a no-op.
	Ignored Transition = iota
	// Redraw: same page, button fills changed.
	Redraw
	// Regenerate: same page, the chart must be rebuilt.
	Regenerate
	// PageChanged: a different page is now active.
	PageChanged
)

func (t Transition) String() string {
	switch t {
	case Redraw:
		return "redraw"
	case Regenerate:
		return "regenerate"
	case PageChanged:
		return "page_changed"
	}
	return "ignored"
}

// Machine is the navigation state. It is not safe for concurrent use; the
// loop goroutine owns it.
type Machine struct {
	variables []string
	page      Page
	selected  mapset.Set[string]
	layout    Layout
}

// NewMachine starts on the welcome page with the given toggle variables.
func NewMachine(variables []string) *Machine {
	m := &Machine{
		variables: append([]string(nil), variables...),
		selected:  mapset.NewThreadUnsafeSet[string](),
	}
	m.enter(Page{Kind: Welcome})
	return m
}

// Page returns the active page.
func (m *Machine) Page() Page { return m.page }

// Layout returns the layout of the active page as currently drawn.
func (m *Machine) Layout() Layout { return m.layout }

// GraphType is the chart chosen on the home page; empty before any choice.
func (m *Machine) GraphType() charts.Kind { return m.page.Graph }

// SingleSelection reports whether toggles are mutually exclusive.
func (m *Machine) SingleSelection() bool { return m.page.Single }

// Variables returns the toggle variables in display order.
func (m *Machine) Variables() []string { return append([]string(nil), m.variables...) }

// Selected returns the toggled variables in display order.
func (m *Machine) Selected() []string {
	out := make([]string, 0, m.selected.Cardinality())
	for _, v := range m.variables {
		if m.selected.Contains(v) {
			out = append(out, v)
		}
	}
	return out
}

// ChartSelection is the selection the graph page renders; nil elsewhere.
func (m *Machine) ChartSelection() []string {
	if m.page.Kind != GraphDisplay {
		return nil
	}
	return append([]string(nil), m.page.Chart...)
}

// Hit returns the first button of the current layout containing p.
func (m *Machine) Hit(p Point) (Button, bool) {
	for _, b := range m.layout.Buttons {
		if b.Rect.Contains(p) {
			return b, true
		}
	}
	return Button{}, false
}

// Click applies a click at p.
func (m *Machine) Click(p Point) Transition {
	b, ok := m.Hit(p)
	if !ok {
		return Ignored
	}
	switch b.Action {
	case ActContinue:
		switch m.page.Kind {
		case Welcome:
			m.enter(Page{Kind: DatasetDescription})
		case DatasetDescription:
			m.enter(Page{Kind: Home})
		default:
			return Ignored
		}
		return PageChanged
	case ActShowDescription:
		m.enter(Page{Kind: DatasetDescription})
		return PageChanged
	case ActChooseGraph:
		m.enter(Page{Kind: VariableSelection, Graph: b.Graph, Single: b.Graph.SingleSelection()})
		return PageChanged
	case ActToggle:
		m.toggle(b.Variable)
		if m.page.Kind == GraphDisplay {
			m.page.Chart = m.Selected()
			m.relayout()
			return Regenerate
		}
		return Redraw
	case ActConfirm:
		sel := m.Selected()
		if len(sel) == 0 {
			return Ignored
		}
		if m.page.Kind == GraphDisplay {
			m.page.Chart = sel
			m.relayout()
			return Regenerate
		}
		m.enter(Page{Kind: GraphDisplay, Graph: m.page.Graph, Single: m.page.Single, Chart: sel})
		return PageChanged
	case ActBackToVariables:
		m.enter(Page{Kind: VariableSelection, Graph: m.page.Graph, Single: m.page.Single})
		return PageChanged
	case ActBackToHome:
		m.enter(Page{Kind: Home, Graph: m.page.Graph, Single: m.page.Single})
		return PageChanged
	}
	return Ignored
}

// toggle flips v. In single-selection mode selecting v clears every other variable.
func (m *Machine) toggle(v string) {
	if m.selected.Contains(v) {
		m.selected.Remove(v)
	} else {
		if m.page.Single {
			m.selected.Clear()
		}
		m.selected.Add(v)
	}
	m.relayout()
}

// enter replaces the active page. Variable selection starts unselected; the
// histogram page starts with its toggles matching the charted filters.
func (m *Machine) enter(p Page) {
	m.page = p
	m.selected.Clear()
	if p.Kind == GraphDisplay && p.Graph == charts.KindHistogram {
		for _, v := range p.Chart {
			m.selected.Add(v)
		}
	}
	m.relayout()
}

func (m *Machine) relayout() {
	m.layout = RenderPage(m.page, m.variables, m.Selected())
}
