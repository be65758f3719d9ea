package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/adaptiq/internal/router"
	"github.com/abhisek/adaptiq/internal/skills"
	"github.com/abhisek/adaptiq/internal/store"
	"github.com/abhisek/adaptiq/internal/ui/layout"
	"github.com/abhisek/adaptiq/internal/ui/theme"
)

// Limit caps how many sessions are listed.
const Limit = 50

type historyLoadedMsg struct {
	Sessions []store.SessionData
	Err      error
}

// HistoryScreen lists past sessions, newest first.
type HistoryScreen struct {
	repo     store.SessionRepo
	userID   string
	done     tea.Cmd
	sessions []store.SessionData
	selected int
	expanded map[int]bool
	loaded   bool
	errMsg   string
}

var (
	_ router.Screen          = (*HistoryScreen)(nil)
	_ router.KeyHintProvider = (*HistoryScreen)(nil)
)

// New creates the screen. done runs on esc; nil pops back.
func New(repo store.SessionRepo, userID string, done tea.Cmd) *HistoryScreen {
	if done == nil {
		done = router.Pop()
	}
	return &HistoryScreen{
		repo:     repo,
		userID:   userID,
		done:     done,
		expanded: make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	return func() tea.Msg {
		sessions, err := s.repo.List(context.Background(), s.userID)
		if err != nil {
			return historyLoadedMsg{Err: err}
		}
		if len(sessions) > Limit {
			sessions = sessions[:Limit]
		}
		return historyLoadedMsg{Sessions: sessions}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (router.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.sessions = msg.Sessions
		}
		s.loaded = true
		return s, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "esc", "q":
			return s, s.done
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.sessions)-1 {
				s.selected++
			}
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	centered := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)
	if s.errMsg != "" {
		return centered.Foreground(theme.Error).Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return centered.Foreground(theme.TextDim).Render("\n\n  Loading history...")
	}
	if len(s.sessions) == 0 {
		return centered.Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No sessions yet. Start practising!")
	}

	var b strings.Builder
	b.WriteString("\n")
	for i, sess := range s.sessions {
		prefix := "  "
		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			prefix = "> "
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(prefix+Line(sess))))
		b.WriteString("\n")

		if s.expanded[i] {
			for _, sec := range sess.Sections {
				b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, sectionLine(sec)))
				b.WriteString("\n")
			}
		}
	}
	return b.String()
}

// Line formats the one-line summary of a session.
func Line(sess store.SessionData) string {
	answered := 0
	for _, sec := range sess.Sections {
		answered += len(sec.Answers)
	}
	return fmt.Sprintf("%s  %-9s  %d:%02d  %d answered  %.0f%%",
		sess.StartedAt.Local().Format("Jan 02, 2006"), modeLabel(sess.Mode),
		sess.TotalTimeSec/60, sess.TotalTimeSec%60, answered, sess.TotalScore)
}

func sectionLine(sec store.SectionResultData) string {
	correct := 0
	for _, a := range sec.Answers {
		if a.Correct {
			correct++
		}
	}
	name := skills.SectionType(sec.Section).DisplayName()
	pct := 0.0
	if sec.Questions > 0 {
		pct = float64(correct) / float64(sec.Questions) * 100
	}
	return lipgloss.NewStyle().Foreground(theme.ScoreColor(pct)).
		Render(fmt.Sprintf("    %-22s %d/%d", name, correct, sec.Questions))
}

func modeLabel(mode string) string {
	switch mode {
	case "mini_exam":
		return "mini exam"
	case "full_exam":
		return "full exam"
	default:
		return mode
	}
}
