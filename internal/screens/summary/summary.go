package summary

import (
	"fmt"
	"math"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/adaptiq/internal/router"
	"github.com/abhisek/adaptiq/internal/session"
	"github.com/abhisek/adaptiq/internal/skills"
	"github.com/abhisek/adaptiq/internal/ui/components"
	"github.com/abhisek/adaptiq/internal/ui/layout"
	"github.com/abhisek/adaptiq/internal/ui/theme"
)

// GoodSectionPct is the section score at which a section counts as
// having gone well.
const GoodSectionPct = 70

// SectionResult is the outcome of one section.
type SectionResult struct {
	Section skills.SectionType
	Correct int
	Total   int
	Pct     int
}

// Results summarizes each section of a finished session.
func Results(s *session.Session) []SectionResult {
	out := make([]SectionResult, 0, len(s.Sections))
	for _, sec := range s.Sections {
		_, correct := sec.Answered()
		r := SectionResult{Section: sec.Type, Correct: correct, Total: len(sec.Questions)}
		if r.Total > 0 {
			r.Pct = int(math.Round(float64(correct) / float64(r.Total) * 100))
		}
		out = append(out, r)
	}
	return out
}

// Headline returns the cheer line for a total score.
func Headline(score float64) string {
	switch {
	case score >= 90:
		return "Amazing! Excellent work!"
	case score >= 70:
		return "Well done! Great progress!"
	case score >= 50:
		return "Good job! Let's keep practising!"
	default:
		return "Don't give up! Every practice makes you stronger!"
	}
}

// SummaryScreen shows the results of a finished session.
type SummaryScreen struct {
	session *session.Session
	results []SectionResult
	review  bool
	done    tea.Cmd
}

var (
	_ router.Screen          = (*SummaryScreen)(nil)
	_ router.KeyHintProvider = (*SummaryScreen)(nil)
)

// New creates the screen. done runs when the learner leaves it; nil pops
// back to the previous screen.
func New(s *session.Session, done tea.Cmd) *SummaryScreen {
	if done == nil {
		done = router.Pop()
	}
	return &SummaryScreen{session: s, results: Results(s), done: done}
}

func (s *SummaryScreen) Init() tea.Cmd { return nil }

func (s *SummaryScreen) Title() string { return "Results" }

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	review := "Review answers"
	if s.review {
		review = "Hide review"
	}
	return []layout.KeyHint{
		{Key: "R", Description: review},
		{Key: "Enter", Description: "Done"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (router.Screen, tea.Cmd) {
	if key, ok := msg.(tea.KeyPressMsg); ok {
		switch key.String() {
		case "r":
			s.review = !s.review
		case "enter", "esc", "q":
			return s, s.done
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	var b strings.Builder
	score := s.session.TotalScore

	b.WriteString(layout.Centered(lipgloss.NewStyle().Foreground(theme.ScoreColor(score)).Bold(true),
		width, fmt.Sprintf("%.0f%%", score)))
	b.WriteString("\n")
	b.WriteString(layout.Centered(theme.Title, width, Headline(score)))
	b.WriteString("\n")
	t := s.session.TotalTimeSec
	b.WriteString(layout.Centered(theme.Subtitle, width,
		fmt.Sprintf("Total time: %d min %d sec", t/60, t%60)))
	b.WriteString("\n\n")

	barWidth := min(width-8, 60)
	var good, practise []string
	for _, r := range s.results {
		bar := components.ProgressBar{
			Label: fmt.Sprintf("%-22s", r.Section.DisplayName()),
			Done:  r.Correct,
			Total: r.Total,
			Width: barWidth,
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, bar.View()))
		b.WriteString("\n")
		if r.Pct >= GoodSectionPct {
			good = append(good, fmt.Sprintf("%s: %d%% correct!", r.Section.DisplayName(), r.Pct))
		} else {
			practise = append(practise, r.Section.DisplayName())
		}
	}

	if len(good) > 0 {
		b.WriteString("\n")
		b.WriteString(layout.Centered(theme.Correct, width, "What went well"))
		b.WriteString("\n")
		for _, line := range good {
			b.WriteString(layout.Centered(theme.Body, width, line))
			b.WriteString("\n")
		}
	}
	if len(practise) > 0 {
		b.WriteString("\n")
		b.WriteString(layout.Centered(theme.Selected, width, "Practise next time"))
		b.WriteString("\n")
		b.WriteString(layout.Centered(theme.Body, width, strings.Join(practise, ", ")))
		b.WriteString("\n")
	}

	if s.review {
		b.WriteString("\n")
		b.WriteString(s.renderReview(width))
	}
	return b.String()
}

func (s *SummaryScreen) renderReview(width int) string {
	var b strings.Builder
	for _, sec := range s.session.Sections {
		b.WriteString(theme.Title.Render(sec.Type.DisplayName()))
		b.WriteString("\n")
		for i, q := range sec.Questions {
			mark, style := "✗", theme.Incorrect
			if q.Correct {
				mark, style = "✓", theme.Correct
			}
			b.WriteString(style.Render(fmt.Sprintf("%s %d. ", mark, i+1)))
			b.WriteString(theme.Body.Width(max(width-10, 20)).Render(q.Question.Stem))
			b.WriteString("\n")
			if !q.Correct {
				answer := q.Question.Options[q.Question.CorrectOption]
				b.WriteString(theme.Muted.Render(fmt.Sprintf("     Answer: %s) %s",
					components.OptionLabels[q.Question.CorrectOption], answer)))
				b.WriteString("\n")
			}
		}
	}
	return lipgloss.NewStyle().PaddingLeft(4).Render(b.String())
}
