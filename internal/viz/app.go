package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/fuzzylab/internal/controllers"
)

const (
	defaultDivisions = 20
	curvePoints      = 40
	barWidth         = 20
)

// App is a Bubble Tea model that moves the inputs of one controller and
// shows its degrees and output after every change.
type App struct {
	ctrl   controllers.Controller
	values []float64
	steps  []float64
	cursor int
	output float64
	curve  []float64
	err    error
	theme  int
	styles Styles
}

// NewApp starts every input at the middle of its range.
func NewApp(ctrl controllers.Controller) App {
	inputs := ctrl.Inputs()
	a := App{
		ctrl:   ctrl,
		values: make([]float64, len(inputs)),
		steps:  make([]float64, len(inputs)),
		styles: Themes[0].Styles(),
	}
	for i, in := range inputs {
		a.values[i] = (in.Min + in.Max) / 2
		a.steps[i] = (in.Max - in.Min) / defaultDivisions
		if a.steps[i] <= 0 {
			a.steps[i] = 1
		}
	}
	a.evaluate()
	return a
}

// Run blocks until the user quits.
func Run(ctrl controllers.Controller) error {
	_, err := tea.NewProgram(NewApp(ctrl), tea.WithAltScreen()).Run()
	return err
}

func (a App) Values() []float64 { return append([]float64(nil), a.values...) }
func (a App) Output() float64   { return a.output }

// evaluate samples the output along the selected input, then evaluates at
// the current values so the stored degrees match what is shown.
func (a *App) evaluate() {
	in := a.ctrl.Inputs()[a.cursor]
	trial := append([]float64(nil), a.values...)
	a.curve = a.curve[:0]
	for i := 0; i < curvePoints; i++ {
		trial[a.cursor] = in.Min + (in.Max-in.Min)*float64(i)/float64(curvePoints-1)
		if out, err := a.ctrl.Evaluate(trial...); err == nil {
			a.curve = append(a.curve, out)
		}
	}
	a.output, a.err = a.ctrl.Evaluate(a.values...)
}

func (a App) Init() tea.Cmd { return nil }

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		return a.handleKey(msg)
	}
	return a, nil
}

func (a App) handleKey(msg tea.KeyMsg) (App, tea.Cmd) {
	n := len(a.values)
	a.values = append([]float64(nil), a.values...)
	a.steps = append([]float64(nil), a.steps...)
	a.curve = nil

	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return a, tea.Quit
	case "up", "k":
		a.cursor = (a.cursor + n - 1) % n
	case "down", "j", "tab":
		a.cursor = (a.cursor + 1) % n
	case "left", "h":
		a.values[a.cursor] -= a.steps[a.cursor]
	case "right", "l":
		a.values[a.cursor] += a.steps[a.cursor]
	case "[":
		a.steps[a.cursor] /= 2
	case "]":
		a.steps[a.cursor] *= 2
	case "t":
		a.theme = (a.theme + 1) % len(Themes)
		a.styles = Themes[a.theme].Styles()
	}
	a.evaluate()
	return a, nil
}

func (a App) View() string {
	s := a.styles
	var b strings.Builder

	b.WriteString(s.Title.Render("fuzzylab · "+a.ctrl.Name()) + "  " + s.Hint.Render(Themes[a.theme].Name))
	b.WriteString("\n\n")

	for i, in := range a.ctrl.Inputs() {
		line := fmt.Sprintf("%-10s %8.3f %s  (step %g)", in.Name, a.values[i], in.Unit, a.steps[i])
		if i == a.cursor {
			b.WriteString(s.Selected.Render("▸ " + line))
		} else {
			b.WriteString(s.Label.Render("  " + line))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(DegreeTable(s, a.ctrl.Inputs(), barWidth))
	b.WriteString("\n")

	if a.err != nil {
		b.WriteString(s.Low.Render("error: " + a.err.Error()))
	} else {
		b.WriteString(s.Label.Render("output ") + s.Value.Render(fmt.Sprintf("%.4f", a.output)))
	}
	b.WriteString("\n")
	if len(a.curve) > 0 {
		b.WriteString(s.Label.Render("along " + a.ctrl.Inputs()[a.cursor].Name + " "))
		b.WriteString(s.Mid.Render(Sparkline(a.curve, curvePoints)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(s.Hint.Render("←/→ adjust  ↑/↓ select  [/] step  t theme  q quit"))
	return s.Panel.Render(b.String())
}
