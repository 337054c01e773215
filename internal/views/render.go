package views

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/sandeepkv93/taskbook/internal/model"
)

type AppData struct {
	Header       string
	LeftPane     string
	RightPane    string
	StatusLine   string
	StatusError  bool
	Footer       string
	Notification string
	Width        int
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	panelStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

	taskStatusStyles = map[model.Status]lipgloss.Style{
		model.StatusOpen:       lipgloss.NewStyle(),
		model.StatusInProgress: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		model.StatusPostponed:  lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		model.StatusDelayed:    lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		model.StatusCompleted:  lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	}
)

// PaneWidth is the content width of each of the two panes for a terminal
// of the given width.
func PaneWidth(total int) int {
	if total <= 0 {
		return 58
	}
	return max(30, total/2-4)
}

func RenderApp(data AppData) string {
	width := PaneWidth(data.Width)
	left := panelStyle.Width(width).Render(data.LeftPane)
	right := panelStyle.Width(width).Render(data.RightPane)
	row := lipgloss.JoinHorizontal(lipgloss.Top, left, right)

	status := statusStyle.Render(data.StatusLine)
	if data.StatusError {
		status = errorStyle.Render(data.StatusLine)
	}

	lines := []string{
		headerStyle.Render(data.Header),
		row,
		status,
	}
	if data.Notification != "" {
		lines = append(lines, panelStyle.Render(data.Notification))
	}
	if data.Footer != "" {
		lines = append(lines, footerStyle.Render(data.Footer))
	}
	return strings.Join(lines, "\n")
}

func RenderMarkdown(md string, width int) string {
	if strings.TrimSpace(md) == "" {
		return ""
	}
	opts := []glamour.TermRendererOption{glamour.WithStandardStyle("dark")}
	if width > 0 {
		opts = append(opts, glamour.WithWordWrap(width))
	}
	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimSpace(out)
}

// StatusLabel renders a task status in its colour.
func StatusLabel(s model.Status) string {
	style, ok := taskStatusStyles[s]
	if !ok {
		return string(s)
	}
	return style.Render(string(s))
}
