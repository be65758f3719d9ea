package welcome

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/adaptiq/internal/router"
	"github.com/abhisek/adaptiq/internal/ui/components"
	"github.com/abhisek/adaptiq/internal/ui/layout"
	"github.com/abhisek/adaptiq/internal/ui/theme"
)

// MaxNameLength caps the learner name.
const MaxNameLength = 20

// NameMsg announces the learner name once it is confirmed.
type NameMsg struct{ Name string }

// SaveFunc stores the learner name.
type SaveFunc func(name string) error

// WelcomeScreen asks for the learner's name and then hands over to the
// screen built by next.
type WelcomeScreen struct {
	input  components.TextInput
	known  string
	save   SaveFunc
	next   func(name string) router.Screen
	errMsg string
	done   bool
}

var (
	_ router.Screen          = (*WelcomeScreen)(nil)
	_ router.KeyHintProvider = (*WelcomeScreen)(nil)
)

// New creates the screen. known pre-fills the name of a returning learner.
func New(known string, save SaveFunc, next func(name string) router.Screen) *WelcomeScreen {
	in := components.NewTextInput("Type your name...", MaxNameLength)
	in.SetValue(known)
	return &WelcomeScreen{input: in, known: known, save: save, next: next}
}

func (w *WelcomeScreen) Init() tea.Cmd { return w.input.Init() }

func (w *WelcomeScreen) Title() string { return "" }

func (w *WelcomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Start"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (w *WelcomeScreen) Update(msg tea.Msg) (router.Screen, tea.Cmd) {
	if w.done {
		return w, nil
	}
	if key, ok := msg.(tea.KeyPressMsg); ok && key.String() == "enter" {
		return w, w.submit()
	}
	var cmd tea.Cmd
	w.input, cmd = w.input.Update(msg)
	w.errMsg = ""
	return w, cmd
}

func (w *WelcomeScreen) submit() tea.Cmd {
	name := w.input.Value()
	if name == "" {
		w.errMsg = "Please type your name first."
		return nil
	}
	if w.save != nil && name != w.known {
		if err := w.save(name); err != nil {
			w.errMsg = "Could not save your name: " + err.Error()
			return nil
		}
	}
	w.done = true
	return tea.Batch(
		func() tea.Msg { return NameMsg{Name: name} },
		router.Replace(w.next(name)),
	)
}

func (w *WelcomeScreen) View(width, height int) string {
	lines := []string{RenderBanner(width), ""}

	greeting := "Hi! What's your name?"
	if w.known != "" {
		greeting = "Welcome back, " + w.known + "!"
	}
	lines = append(lines,
		theme.Title.Render(greeting),
		theme.Subtitle.Render("Math, sentences, word relations and shapes. Questions adapt as you learn."),
		"",
		theme.Card.Render(w.input.View()),
	)
	if w.errMsg != "" {
		lines = append(lines, "", theme.Incorrect.Render(w.errMsg))
	}
	lines = append(lines, "", theme.Hint.Render("press enter to start"))

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center, lines...))
}
