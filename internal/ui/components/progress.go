package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/adaptiq/internal/ui/theme"
)

// ProgressBar is a horizontal bar of Done out of Total.
type ProgressBar struct {
	Label string
	Done  int
	Total int
	Width int
}

// Ratio returns Done/Total clamped to [0, 1].
func (p ProgressBar) Ratio() float64 {
	if p.Total <= 0 {
		return 0
	}
	return min(max(float64(p.Done)/float64(p.Total), 0), 1)
}

func (p ProgressBar) View() string {
	var out string
	if p.Label != "" {
		out = lipgloss.NewStyle().Foreground(theme.Text).Render(p.Label) + "  "
	}
	counter := fmt.Sprintf("  %d/%d", p.Done, p.Total)

	bar := max(p.Width-lipgloss.Width(out)-len(counter), 4)
	filled := int(float64(bar) * p.Ratio())

	out += lipgloss.NewStyle().Background(theme.Secondary).Render(strings.Repeat(" ", filled))
	out += lipgloss.NewStyle().Background(theme.Border).Render(strings.Repeat(" ", bar-filled))
	out += lipgloss.NewStyle().Foreground(theme.TextDim).Render(counter)
	return out
}
