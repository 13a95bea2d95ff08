package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

func renderStatusBar(linkCount int, width int, mode mode, busy bool, status string) string {
	left := fmt.Sprintf(" %d links", linkCount)
	if status != "" {
		left += " · " + status
	}
	if busy {
		left += " (working...)"
	}

	var right string
	switch mode {
	case modeAsk:
		right = " esc cancel  enter ask "
	case modeAdd:
		right = " esc cancel  enter save "
	case modeAnswer:
		right = " esc back  q quit "
	default:
		right = " a add  / ask  d delete  o open  q quit "
	}

	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}

	bar := left + fmt.Sprintf("%*s", gap, "") + right

	return statusBarStyle.Width(width).Render(bar)
}
