package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

func renderStatusBar(shown, total int, category string, width int, status string) string {
	left := fmt.Sprintf(" %d of %d posts", shown, total)
	if category != "All" {
		left += " · " + category
	}
	if status != "" {
		left += " · " + status
	}

	right := " ←/→ category  f filters  s sources  o open  ? help  q quit "

	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}

	bar := left + fmt.Sprintf("%*s", gap, "") + right

	return statusBarStyle.Width(width).Render(bar)
}
