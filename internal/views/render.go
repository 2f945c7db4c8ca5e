package views

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

// AppData is everything the top-level frame needs: a wide main pane for the
// active view and a narrower context pane (stats or help) beside it.
type AppData struct {
	Header        string
	LeftPane      string
	RightPane     string
	StatusLine    string
	StatusIsError bool
	Footer        string
	Notification  string
}

const (
	mainPaneWidth    = 62
	contextPaneWidth = 44
	markdownWrap     = 58
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(lipgloss.Color("240"))
	mainPaneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(0, 1).
			Width(mainPaneWidth)
	contextPaneStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("240")).
				Padding(0, 1).
				Width(contextPaneWidth)
	alertStyle = lipgloss.NewStyle().
			Border(lipgloss.ThickBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("214")).
			PaddingLeft(1)
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("114"))
	errorStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203"))
	footerStyle = lipgloss.NewStyle().Faint(true)
)

func RenderApp(data AppData) string {
	panes := lipgloss.JoinHorizontal(lipgloss.Top,
		mainPaneStyle.Render(data.LeftPane),
		contextPaneStyle.Render(data.RightPane),
	)

	status := statusStyle.Render(data.StatusLine)
	if data.StatusIsError {
		status = errorStyle.Render(data.StatusLine)
	}

	lines := []string{headerStyle.Render(data.Header), panes}
	if data.Notification != "" {
		lines = append(lines, alertStyle.Render(data.Notification))
	}
	lines = append(lines, status)
	if data.Footer != "" {
		lines = append(lines, footerStyle.Render(data.Footer))
	}
	return strings.Join(lines, "\n")
}

// RenderMarkdown renders assistant replies, which regularly arrive as
// markdown, wrapped to fit the main pane. Plain text passes through
// untouched on renderer errors.
func RenderMarkdown(md string) string {
	trimmed := strings.TrimSpace(md)
	if trimmed == "" {
		return ""
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(markdownWrap),
	)
	if err != nil {
		return trimmed
	}
	out, err := renderer.Render(trimmed)
	if err != nil {
		return trimmed
	}
	return strings.TrimSpace(out)
}
