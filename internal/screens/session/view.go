package session

import (
	"fmt"
	"strings"
	"time"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/adaptiq/internal/ui/components"
	"github.com/abhisek/adaptiq/internal/ui/layout"
	"github.com/abhisek/adaptiq/internal/ui/theme"
)

func (s *SessionScreen) View(width, height int) string {
	if s.confirmQuit {
		return renderQuitConfirm(width)
	}
	switch s.phase {
	case phaseError:
		return layout.Centered(theme.Incorrect, width,
			fmt.Sprintf("\n\n\nError: %s\n\nPress any key to go back.", s.errMsg))
	case phaseLoading:
		return layout.Centered(theme.Muted, width, "\n\n\nPreparing your questions...")
	case phaseEnding:
		return layout.Centered(theme.Muted, width, "\n\n\nSaving your results...")
	case phaseSectionBreak:
		return s.renderSectionBreak(width)
	}
	return s.renderQuestion(width)
}

func (s *SessionScreen) renderQuestion(width int) string {
	qs, ok := s.manager.CurrentQuestion()
	if !ok {
		return ""
	}
	sec, _ := s.manager.CurrentSection()
	p := s.manager.Progress()

	var b strings.Builder

	info := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).
		Render(fmt.Sprintf("  %s  (%d/%d)", sec.Type.DisplayName(), p.Section, p.TotalSections))
	if t := s.timerLabel(); t != "" {
		pad := max(width-lipgloss.Width(info)-lipgloss.Width(t)-4, 1)
		info += strings.Repeat(" ", pad) + t
	}
	b.WriteString(info)
	b.WriteString("\n")

	answered, _ := sec.Answered()
	bar := components.ProgressBar{Label: "  Question", Done: answered, Total: p.TotalQuestions, Width: width - 4}
	b.WriteString(bar.View())
	b.WriteString("\n\n")

	stem := lipgloss.NewStyle().Width(min(width-8, 76)).Foreground(theme.Text).Bold(true).Render(qs.Question.Stem)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, stem))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.choice.View()))

	if s.phase == phaseFeedback && s.result != nil {
		b.WriteString("\n")
		b.WriteString(s.renderFeedback(width))
	}
	return b.String()
}

func (s *SessionScreen) renderFeedback(width int) string {
	var b strings.Builder
	if s.result.Correct {
		b.WriteString(layout.Centered(theme.Correct, width, "Correct!"))
	} else {
		b.WriteString(layout.Centered(theme.Incorrect, width,
			fmt.Sprintf("Not quite. The answer is %s.", components.OptionLabels[s.result.CorrectOption])))
	}
	b.WriteString("\n")
	if s.result.Explanation != "" {
		exp := lipgloss.NewStyle().Width(min(width-8, 70)).Foreground(theme.TextDim).Render(s.result.Explanation)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, exp))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(layout.Centered(theme.Hint, width, "Press any key to continue..."))
	return b.String()
}

func (s *SessionScreen) renderSectionBreak(width int) string {
	var b strings.Builder
	b.WriteString("\n\n\n")
	if sec, ok := s.manager.CurrentSection(); ok {
		answered, correct := sec.Answered()
		b.WriteString(layout.Centered(theme.Title, width, sec.Type.DisplayName()+" complete!"))
		b.WriteString("\n")
		b.WriteString(layout.Centered(theme.Body, width,
			fmt.Sprintf("%d of %d answered, %d correct", answered, len(sec.Questions), correct)))
		b.WriteString("\n\n")
	}
	b.WriteString(layout.Centered(theme.Hint, width, "Get ready for the next section..."))
	return b.String()
}

// timerLabel renders whichever countdown is running, coloring the last
// stretch.
func (s *SessionScreen) timerLabel() string {
	now := s.now()
	left, ok := s.manager.SectionTimeLeft(now)
	warnAt := time.Minute
	if !ok {
		left, ok = s.manager.QuestionTimeLeft(now)
		warnAt = 10 * time.Second
	}
	if !ok {
		return ""
	}
	style := lipgloss.NewStyle().Foreground(theme.Text)
	switch {
	case left <= warnAt/2:
		style = theme.Incorrect
	case left <= warnAt:
		style = lipgloss.NewStyle().Foreground(theme.Warning)
	}
	return style.Render("⏱ " + FormatClock(left))
}

// FormatClock renders d as M:SS, rounding partial seconds up.
func FormatClock(d time.Duration) string {
	secs := int((d + time.Second - 1) / time.Second)
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}

func renderQuitConfirm(width int) string {
	var b strings.Builder
	b.WriteString("\n\n\n")
	b.WriteString(layout.Centered(theme.Title, width, "End session early?"))
	b.WriteString("\n")
	b.WriteString(layout.Centered(theme.Subtitle, width, "Your answers so far will be saved."))
	b.WriteString("\n\n")
	b.WriteString(layout.Centered(theme.Correct, width, "[Y] Yes, end session"))
	b.WriteString("\n")
	b.WriteString(layout.Centered(theme.Selected, width, "[N] No, keep going"))
	return b.String()
}
