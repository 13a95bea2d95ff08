package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/EricChiu147/link-saver/internal/store"
)

func renderPreview(link *store.Link, width, height int) string {
	if link == nil {
		return centerText("Select a link", width, height)
	}

	contentWidth := width - 2
	if contentWidth < 10 {
		contentWidth = 10
	}

	title := previewTitleStyle.Width(contentWidth).Render(link.Title)
	url := previewURLStyle.Width(contentWidth).Render(link.URL)

	summary := link.Summary
	if summary == "" {
		summary = "(No summary available)"
	}
	body := previewBodyStyle.Width(contentWidth).Render(wrapText(summary, contentWidth))
	meta := previewMetaStyle.Render("Saved " + relativeTime(link.Timestamp))

	content := lipgloss.JoinVertical(lipgloss.Left, title, url, "", body, meta)
	return fitHeight(content, height)
}

// renderAnswer fills the preview pane with the AI answer to a question.
func renderAnswer(question, answer string, width, height int) string {
	contentWidth := width - 2
	if contentWidth < 10 {
		contentWidth = 10
	}

	head := answerHeaderStyle.Width(contentWidth).Render("Q: " + question)
	body := previewBodyStyle.Width(contentWidth).Render(wrapText(answer, contentWidth))
	hint := previewMetaStyle.Render("esc to go back")

	content := lipgloss.JoinVertical(lipgloss.Left, head, body, "", hint)
	return fitHeight(content, height)
}

func fitHeight(content string, height int) string {
	lines := strings.Split(content, "\n")
	if len(lines) < height {
		lines = append(lines, make([]string, height-len(lines))...)
	} else if len(lines) > height {
		lines = lines[:height]
	}
	return strings.Join(lines, "\n")
}

func wrapText(s string, width int) string {
	if width <= 0 {
		return s
	}
	words := strings.Fields(s)
	if len(words) == 0 {
		return ""
	}

	var lines []string
	line := words[0]
	for _, w := range words[1:] {
		if len(line)+1+len(w) > width {
			lines = append(lines, line)
			line = w
		} else {
			line += " " + w
		}
	}
	lines = append(lines, line)
	return strings.Join(lines, "\n")
}
