package tui

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/projsim/internal/ballistics"
	"github.com/san-kum/projsim/internal/config"
	"github.com/san-kum/projsim/internal/viz"
)

const invalidInput = "invalid input: enter a number"

// Inputs is what the prompt collects.
type Inputs struct {
	Object string
	Params ballistics.Params
}

type field struct {
	key   string
	label string
	unit  string
}

var (
	launchFields = []field{
		{"speed", "speed", "m/s"},
		{"angle", "angle", "deg"},
		{"wind", "wind", "m/s"},
	}
	bodyFields = []field{
		{"mass", "mass", "kg"},
		{"drag_coeff", "drag coeff", ""},
		{"area", "area", "m²"},
	}
)

type state int

const (
	stateMenu state = iota
	stateParams
)

type model struct {
	state   state
	theme   viz.Theme
	objects []string
	cursor  int

	inputs      Inputs
	fields      []field
	fieldCursor int
	editing     bool
	editBuf     string
	message     string

	submitted bool
}

func newModel(initial Inputs, theme viz.Theme) model {
	m := model{
		state:   stateMenu,
		theme:   theme,
		objects: append(config.ListObjects(), config.CustomObject),
		inputs:  initial,
	}
	for i, name := range m.objects {
		if name == initial.Object {
			m.cursor = i
		}
	}
	return m
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.state {
		case stateMenu:
			return m.menuKey(msg)
		case stateParams:
			return m.paramsKey(msg)
		}
	}
	return m, nil
}

func (m model) menuKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.objects)-1 {
			m.cursor++
		}
	case "enter", " ":
		m.selectObject(m.objects[m.cursor])
		m.state = stateParams
	}
	return m, nil
}

func (m *model) selectObject(name string) {
	m.inputs.Object = name
	m.fields = launchFields
	m.fieldCursor = 0
	m.message = ""
	if name == config.CustomObject {
		m.fields = append(append([]field{}, launchFields...), bodyFields...)
		return
	}
	if obj, err := config.GetObject(name); err == nil {
		m.inputs.Params = obj.Apply(m.inputs.Params)
	}
}

func (m model) paramsKey(msg tea.KeyMsg) (model, tea.Cmd) {
	if m.editing {
		return m.editKey(msg)
	}

	switch msg.String() {
	case "q", "esc":
		m.state = stateMenu
		m.message = ""
	case "up", "k":
		if m.fieldCursor > 0 {
			m.fieldCursor--
		}
	case "down", "j":
		if m.fieldCursor < len(m.fields)-1 {
			m.fieldCursor++
		}
	case "enter", " ":
		m.editing = true
		m.editBuf = ""
		m.message = ""
	case "s":
		if err := m.inputs.Params.Validate(); err != nil {
			m.message = err.Error()
			return m, nil
		}
		m.submitted = true
		return m, tea.Quit
	}
	return m, nil
}

func (m model) editKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		v, err := strconv.ParseFloat(strings.TrimSpace(m.editBuf), 64)
		if err != nil {
			m.message = invalidInput
			m.editBuf = ""
			return m, nil
		}
		if err := m.inputs.Params.SetParam(m.fields[m.fieldCursor].key, v); err != nil {
			m.message = err.Error()
			return m, nil
		}
		m.editing = false
		m.editBuf = ""
		m.message = ""
	case tea.KeyEsc:
		m.editing = false
		m.editBuf = ""
		m.message = ""
	case tea.KeyBackspace:
		if len(m.editBuf) > 0 {
			m.editBuf = m.editBuf[:len(m.editBuf)-1]
		}
	case tea.KeyRunes, tea.KeySpace:
		m.editBuf += string(msg.Runes)
	}
	return m, nil
}

func (m model) View() string {
	switch m.state {
	case stateMenu:
		return m.viewMenu()
	case stateParams:
		return m.viewParams()
	}
	return ""
}

func (m model) styles() (accent, text, dim, warn lipgloss.Style) {
	return lipgloss.NewStyle().Foreground(m.theme.Secondary),
		lipgloss.NewStyle().Foreground(m.theme.Text),
		lipgloss.NewStyle().Foreground(m.theme.Muted),
		lipgloss.NewStyle().Foreground(m.theme.Warning)
}

func (m model) viewMenu() string {
	accent, text, dim, _ := m.styles()
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString("    " + viz.GradientText("p r o j s i m", m.theme.Primary, m.theme.Secondary) + "\n")
	b.WriteString("    " + viz.Separator(24) + "\n\n")

	for i, name := range m.objects {
		desc := "enter mass, drag and area"
		if obj, err := config.GetObject(name); err == nil {
			desc = obj.Name
		}
		if i == m.cursor {
			b.WriteString("    " + accent.Render("▸ ") + text.Render(fmt.Sprintf("%-10s", name)) + dim.Render(desc) + "\n")
		} else {
			b.WriteString("      " + dim.Render(fmt.Sprintf("%-10s", name)+desc) + "\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(viz.KeyHint.Render("    ↑↓ select   enter choose   q quit") + "\n")
	return b.String()
}

func (m model) viewParams() string {
	accent, text, dim, warn := m.styles()
	values := m.inputs.Params.GetParams()
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString("    " + accent.Render(m.inputs.Object) + "\n")
	b.WriteString("    " + viz.Separator(30) + "\n\n")

	for i, f := range m.fields {
		val := fmt.Sprintf("%10.4g", values[f.key])
		if m.editing && i == m.fieldCursor {
			val = fmt.Sprintf("%10s", m.editBuf+"▋")
		}
		line := fmt.Sprintf("%-12s", f.label)
		if i == m.fieldCursor {
			b.WriteString("    " + accent.Render("▸ ") + text.Render(line) + accent.Render(val) + dim.Render(" "+f.unit) + "\n")
		} else {
			b.WriteString("      " + dim.Render(line+val+" "+f.unit) + "\n")
		}
	}

	b.WriteString("\n")
	if m.message != "" {
		b.WriteString("    " + warn.Render(m.message) + "\n\n")
	}
	b.WriteString("    " + viz.Metric("drag-free range", m.inputs.Params.IdealRange(), "m") + "\n\n")
	b.WriteString(viz.KeyHint.Render("    ↑↓ select  enter edit  s run  esc back") + "\n")
	return b.String()
}

// Run shows the prompt starting from initial. The boolean is false when the
// user quit without submitting.
func Run(initial Inputs, theme viz.Theme) (Inputs, bool, error) {
	p := tea.NewProgram(newModel(initial, theme), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return Inputs{}, false, err
	}
	m, ok := final.(model)
	if !ok || !m.submitted {
		return Inputs{}, false, nil
	}
	return m.inputs, true, nil
}
