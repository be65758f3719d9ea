package app

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/adaptiq/internal/router"
	"github.com/abhisek/adaptiq/internal/screens/welcome"
	"github.com/abhisek/adaptiq/internal/ui/layout"
)

// QuitMsg ends the program.
type QuitMsg struct{}

// Quit is a command that ends the program.
func Quit() tea.Msg { return QuitMsg{} }

// Model is the root Bubble Tea model. It frames the active screen with a
// header and footer.
type Model struct {
	router  *router.Router
	learner string
	width   int
	height  int
}

// New creates the root model starting at initial.
func New(initial router.Screen, learner string) Model {
	return Model{router: router.New(initial), learner: learner}
}

func (m Model) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil
	case welcome.NameMsg:
		m.learner = msg.Name
		return m, nil
	case QuitMsg:
		return m, tea.Quit
	case tea.KeyPressMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}
	return m, m.router.Update(msg)
}

func (m Model) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true
	if m.width == 0 || m.height == 0 {
		return v
	}
	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	header := layout.RenderHeader(active.Title(), m.learner, m.width)

	hints := []layout.KeyHint{{Key: "Ctrl+C", Description: "Quit"}}
	if p, ok := active.(router.KeyHintProvider); ok {
		if h := p.KeyHints(); len(h) > 0 {
			hints = h
		}
	}
	footer := layout.RenderFooter(hints, m.width)

	contentHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	content := m.router.View(m.width, contentHeight)
	v.SetContent(layout.RenderFrame(header, content, footer, m.width, m.height))
	return v
}

// Run starts the program on initial and blocks until it exits.
func Run(initial router.Screen, learner string) error {
	if _, err := tea.NewProgram(New(initial, learner)).Run(); err != nil {
		return fmt.Errorf("run terminal UI: %w", err)
	}
	return nil
}
