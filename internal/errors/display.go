package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

func asTaskError(err error) (*TaskError, bool) {
	var taskErr *TaskError
	if stderrors.As(err, &taskErr) {
		return taskErr, true
	}
	return nil, false
}

func categoryTitle(category ErrorCategory) string {
	name := strings.ToLower(string(category))
	if name == "" {
		return ""
	}
	return strings.ToUpper(name[:1]) + name[1:]
}

// DisplayError formats an error for user-friendly display
func DisplayError(err error) string {
	if taskErr, ok := asTaskError(err); ok {
		return taskErr.Error()
	}

	return fmt.Sprintf("Error: %v", err)
}

// DisplayErrorSummary provides a brief summary of the error for logs
func DisplayErrorSummary(err error) string {
	if taskErr, ok := asTaskError(err); ok {
		return fmt.Sprintf("%s-%s: %s", taskErr.Category, taskErr.Code, taskErr.Message)
	}

	errStr := []rune(err.Error())
	if len(errStr) > 100 {
		return string(errStr[:97]) + "..."
	}
	return string(errStr)
}

// ShouldDisplayTroubleshooting determines if troubleshooting info should be shown
func ShouldDisplayTroubleshooting(err error) bool {
	if taskErr, ok := asTaskError(err); ok {
		return len(taskErr.Troubleshooting) > 0
	}
	return false
}

// FormatLines renders an error as a title and detail lines, ready for a message box.
func FormatLines(err error) (string, []string) {
	taskErr, ok := asTaskError(err)
	if !ok {
		return "Error", []string{err.Error()}
	}

	title := fmt.Sprintf("%s Error [%s-%s]", categoryTitle(taskErr.Category), taskErr.Category, taskErr.Code)
	lines := []string{taskErr.Message}

	// the outer message carries the failing task when the run wrapped the error
	if outer := err.Error(); outer != taskErr.Error() {
		if prefix, _, found := strings.Cut(outer, taskErr.Error()); found && prefix != "" {
			lines = append(lines, strings.TrimSuffix(strings.TrimSpace(prefix), ":"))
		}
	}

	if len(taskErr.Context) > 0 {
		lines = append(lines, "", "Details:")
		for _, key := range taskErr.contextKeys() {
			lines = append(lines, fmt.Sprintf("  %s: %v", key, taskErr.Context[key]))
		}
	}

	if len(taskErr.Troubleshooting) > 0 {
		lines = append(lines, "", "How to resolve:")
		for i, step := range taskErr.Troubleshooting {
			lines = append(lines, fmt.Sprintf("  %d. %s", i+1, step))
		}
	}

	if taskErr.OriginalError != nil {
		lines = append(lines, "", fmt.Sprintf("Technical details: %v", taskErr.OriginalError))
	}

	return title, lines
}

// FormatForCLI formats an error for command-line display with proper spacing
func FormatForCLI(err error) string {
	title, lines := FormatLines(err)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("\n%s\n", title))
	for _, line := range lines {
		sb.WriteString(fmt.Sprintf("  %s\n", line))
	}
	return sb.String()
}

// IsUserError determines if an error is due to user input/configuration
func IsUserError(err error) bool {
	if taskErr, ok := asTaskError(err); ok {
		return taskErr.Category == ErrorCategoryConfiguration ||
			taskErr.Category == ErrorCategoryLookup
	}
	return false
}

// GetErrorCode extracts the error code for reporting
func GetErrorCode(err error) string {
	if taskErr, ok := asTaskError(err); ok {
		return fmt.Sprintf("%s-%s", taskErr.Category, taskErr.Code)
	}
	return "UNKNOWN"
}
