package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/adaptiq/internal/ui/theme"
)

// OptionLabels label the four answer options.
var OptionLabels = []string{"A", "B", "C", "D"}

// MultiChoice is a four-option answer picker. Keys 1-4 and a-d choose an
// option directly; arrows move the cursor and enter confirms.
type MultiChoice struct {
	Options  []string
	Cursor   int
	Chosen   int
	Correct  int
	answered bool
	revealed bool
}

func NewMultiChoice(options []string) MultiChoice {
	return MultiChoice{Options: options, Chosen: -1, Correct: -1}
}

// Answered reports whether an option has been picked.
func (m MultiChoice) Answered() bool { return m.answered }

// Reveal marks the correct option so the view can color the result.
func (m *MultiChoice) Reveal(correct int) {
	m.Correct = correct
	m.revealed = true
}

// Update moves the cursor or picks an option. The second result is true
// on the update that picks.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, bool) {
	if m.answered {
		return m, false
	}
	key, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return m, false
	}
	switch s := key.String(); s {
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}
	case "down", "j":
		if m.Cursor < len(m.Options)-1 {
			m.Cursor++
		}
	case "enter":
		return m.pick(m.Cursor)
	default:
		if i := optionIndex(s); i >= 0 && i < len(m.Options) {
			return m.pick(i)
		}
	}
	return m, false
}

func (m MultiChoice) pick(i int) (MultiChoice, bool) {
	m.Cursor, m.Chosen, m.answered = i, i, true
	return m, true
}

func optionIndex(key string) int {
	if len(key) != 1 {
		return -1
	}
	switch c := key[0]; {
	case c >= '1' && c <= '4':
		return int(c - '1')
	case c >= 'a' && c <= 'd':
		return int(c - 'a')
	}
	return -1
}

func (m MultiChoice) View() string {
	var b strings.Builder
	for i, opt := range m.Options {
		prefix := "  "
		if i == m.Cursor && !m.answered {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%s)  %s", prefix, OptionLabels[i%len(OptionLabels)], opt)

		style := theme.Unselected
		switch {
		case m.revealed && i == m.Correct:
			style = theme.Correct
		case m.revealed && i == m.Chosen:
			style = theme.Incorrect
		case m.revealed:
			style = theme.Muted
		case i == m.Cursor:
			style = theme.Selected
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}
	return b.String()
}
