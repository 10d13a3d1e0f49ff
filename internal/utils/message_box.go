package utils

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// MessageType defines the type of message box to render.
type MessageType int

const (
	// InfoMessage represents an informational message.
	InfoMessage MessageType = iota
	// SuccessMessage represents a success message.
	SuccessMessage
	// WarningMessage represents a warning message.
	WarningMessage
	// ErrorMessage represents an error message.
	ErrorMessage
)

const (
	infoPrefix    = "ℹ"
	successPrefix = "✓"
	warningPrefix = "⚠"
	errorPrefix   = "✗"
)

const (
	topLeft     = "╭"
	topRight    = "╮"
	bottomLeft  = "╰"
	bottomRight = "╯"
	horizontal  = "─"
	vertical    = "│"
)

const (
	defaultTerminalWidth = 80
	boxMargin            = 8
	minContentWidth      = 20
)

var (
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("178"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

// Box is a builder for creating formatted message boxes.
type Box struct {
	messageType MessageType
	title       string
	content     []string
	width       int
}

// NewBox creates a new message box with a specific type, sized to the terminal.
func NewBox(messageType MessageType, title string) *Box {
	return &Box{
		messageType: messageType,
		title:       title,
		width:       getTerminalWidth() - boxMargin,
	}
}

// AddLine adds a line of text to the message box content.
func (b *Box) AddLine(text string) *Box {
	b.content = append(b.content, text)
	return b
}

// AddLines adds several lines of text to the message box content.
func (b *Box) AddLines(lines ...string) *Box {
	b.content = append(b.content, lines...)
	return b
}

// Render builds and returns the formatted message box as a string.
func (b *Box) Render() string {
	style, prefix := b.getStyleAndPrefix()

	contentWidth := b.width - 6
	if contentWidth < minContentWidth {
		contentWidth = minContentWidth
	}

	var lines []string
	for _, line := range append([]string{b.title}, b.content...) {
		if lipgloss.Width(line) <= contentWidth {
			lines = append(lines, line)
		} else {
			lines = append(lines, wrapText(line, contentWidth)...)
		}
	}

	// title row: "│ P title │", other rows: "│ line │"
	first := lines[0]
	boxWidth := lipgloss.Width(first) + lipgloss.Width(prefix) + 5
	for _, line := range lines[1:] {
		if w := lipgloss.Width(line) + 4; w > boxWidth {
			boxWidth = w
		}
	}

	var sb strings.Builder
	sb.WriteString(style.Render(topLeft+strings.Repeat(horizontal, boxWidth-2)+topRight) + "\n")

	padding := max(boxWidth-lipgloss.Width(first)-5-lipgloss.Width(prefix), 0)
	sb.WriteString(fmt.Sprintf("%s %s %s%s %s\n",
		style.Render(vertical),
		style.Bold(true).Render(prefix),
		style.Bold(true).Render(first),
		strings.Repeat(" ", padding),
		style.Render(vertical)))

	for _, line := range lines[1:] {
		padding := max(boxWidth-lipgloss.Width(line)-4, 0)
		sb.WriteString(fmt.Sprintf("%s %s%s %s\n",
			style.Render(vertical),
			line,
			strings.Repeat(" ", padding),
			style.Render(vertical)))
	}

	sb.WriteString(style.Render(bottomLeft + strings.Repeat(horizontal, boxWidth-2) + bottomRight))
	return sb.String()
}

func (b *Box) getStyleAndPrefix() (lipgloss.Style, string) {
	switch b.messageType {
	case SuccessMessage:
		return successStyle, successPrefix
	case WarningMessage:
		return warningStyle, warningPrefix
	case ErrorMessage:
		return errorStyle, errorPrefix
	default:
		return infoStyle, infoPrefix
	}
}

// Convenience functions for creating and rendering message boxes.

func Info(title string, lines ...string) string {
	return NewBox(InfoMessage, title).AddLines(lines...).Render()
}

func Success(title string, lines ...string) string {
	return NewBox(SuccessMessage, title).AddLines(lines...).Render()
}

func Warning(title string, lines ...string) string {
	return NewBox(WarningMessage, title).AddLines(lines...).Render()
}

func Error(title string, lines ...string) string {
	return NewBox(ErrorMessage, title).AddLines(lines...).Render()
}

// getTerminalWidth returns the terminal width or defaults to 80 if unable to detect.
func getTerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return defaultTerminalWidth
	}
	return width
}

// wrapText wraps text to fit within the specified maximum width, keeping the
// line's leading indentation on every wrapped line.
func wrapText(text string, maxWidth int) []string {
	indent := text[:len(text)-len(strings.TrimLeft(text, " "))]
	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{""}
	}

	var lines []string
	current := indent + words[0]
	for _, word := range words[1:] {
		if lipgloss.Width(current)+lipgloss.Width(word)+1 <= maxWidth {
			current += " " + word
			continue
		}
		lines = append(lines, current)
		current = indent + word
	}
	return append(lines, current)
}
