package utils

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

var (
	bannerMarkerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	bannerCountStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	bannerNameStyle   = lipgloss.NewStyle().Bold(true)
)

// TaskBanner renders the line printed before a task runs, e.g. "==> [2/5] build".
func TaskBanner(name string, index, total int) string {
	return fmt.Sprintf("%s %s %s",
		bannerMarkerStyle.Render("==>"),
		bannerCountStyle.Render(fmt.Sprintf("[%d/%d]", index, total)),
		bannerNameStyle.Render(name))
}
