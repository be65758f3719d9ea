package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/adaptiq/internal/ui/theme"
)

const bannerArt = `
  ┌─┐┌┬┐┌─┐┌─┐┌┬┐┬┌─┐
  ├─┤ ││├─┤├─┘ │ ││─┼┐
  ┴ ┴─┴┘┴ ┴┴   ┴ ┴└─┘└`

const bannerCompact = "A D A P T I Q"

// RenderBanner returns the banner, or a one-line version on narrow
// terminals.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	if width < 30 {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
