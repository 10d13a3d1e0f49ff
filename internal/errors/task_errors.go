package errors

import (
	stderrors "errors"
	"fmt"
	"sort"
	"strings"
)

// ErrorCategory represents the category of error
type ErrorCategory string

const (
	// ErrorCategoryConfiguration represents configuration document errors
	ErrorCategoryConfiguration ErrorCategory = "CONFIGURATION"
	// ErrorCategoryLookup represents task lookup errors
	ErrorCategoryLookup ErrorCategory = "LOOKUP"
	// ErrorCategoryDependency represents dependency graph errors
	ErrorCategoryDependency ErrorCategory = "DEPENDENCY"
	// ErrorCategoryExecution represents command execution errors
	ErrorCategoryExecution ErrorCategory = "EXECUTION"
)

// Sentinel errors, one per error kind. Every TaskError matches exactly one of
// them through errors.Is.
var (
	ErrConfigLoad       = stderrors.New("config load error")
	ErrTaskNotFound     = stderrors.New("task not found")
	ErrCyclicDependency = stderrors.New("cyclic dependency")
	ErrCommandExecution = stderrors.New("command execution error")
)

// TaskError represents a structured error with context and troubleshooting information
type TaskError struct {
	Category        ErrorCategory
	Code            string
	Message         string
	Operation       string
	Context         map[string]interface{}
	Troubleshooting []string
	OriginalError   error

	kind error
}

// Error implements the error interface
func (e *TaskError) Error() string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%s-%s: %s", e.Category, e.Code, e.Message))

	if e.Operation != "" {
		sb.WriteString(fmt.Sprintf("\nOperation: %s", e.Operation))
	}

	if len(e.Context) > 0 {
		sb.WriteString("\nContext:")
		for _, key := range e.contextKeys() {
			sb.WriteString(fmt.Sprintf("\n  %s: %v", key, e.Context[key]))
		}
	}

	if len(e.Troubleshooting) > 0 {
		sb.WriteString("\nTroubleshooting:")
		for i, step := range e.Troubleshooting {
			sb.WriteString(fmt.Sprintf("\n  %d. %s", i+1, step))
		}
	}

	if e.OriginalError != nil {
		sb.WriteString(fmt.Sprintf("\nUnderlying error: %v", e.OriginalError))
	}

	return sb.String()
}

// Unwrap returns the original error for error chain compatibility
func (e *TaskError) Unwrap() error {
	return e.OriginalError
}

// Is reports whether target is the sentinel for this error's kind.
func (e *TaskError) Is(target error) bool {
	return e.kind != nil && target == e.kind
}

func (e *TaskError) contextKeys() []string {
	keys := make([]string, 0, len(e.Context))
	for key := range e.Context {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// NewTaskError creates a new task error with the specified parameters
func NewTaskError(category ErrorCategory, code, message, operation string) *TaskError {
	return &TaskError{
		Category:        category,
		Code:            code,
		Message:         message,
		Operation:       operation,
		Context:         make(map[string]interface{}),
		Troubleshooting: []string{},
	}
}

// WithContext adds context information to the error
func (e *TaskError) WithContext(key string, value interface{}) *TaskError {
	e.Context[key] = value
	return e
}

// WithTroubleshooting adds troubleshooting steps to the error
func (e *TaskError) WithTroubleshooting(steps ...string) *TaskError {
	e.Troubleshooting = append(e.Troubleshooting, steps...)
	return e
}

// WithOriginalError adds the original error to the task error
func (e *TaskError) WithOriginalError(err error) *TaskError {
	e.OriginalError = err
	return e
}

// WithKind tags the error with one of the sentinel kinds.
func (e *TaskError) WithKind(kind error) *TaskError {
	e.kind = kind
	return e
}

// NewConfigurationError creates a new configuration error
func NewConfigurationError(code, message, operation string) *TaskError {
	return NewTaskError(ErrorCategoryConfiguration, code, message, operation).WithKind(ErrConfigLoad)
}

// NewLookupError creates a new task lookup error
func NewLookupError(code, message, operation string) *TaskError {
	return NewTaskError(ErrorCategoryLookup, code, message, operation).WithKind(ErrTaskNotFound)
}

// NewDependencyError creates a new dependency graph error
func NewDependencyError(code, message, operation string) *TaskError {
	return NewTaskError(ErrorCategoryDependency, code, message, operation).WithKind(ErrCyclicDependency)
}

// NewExecutionError creates a new command execution error
func NewExecutionError(code, message, operation string) *TaskError {
	return NewTaskError(ErrorCategoryExecution, code, message, operation).WithKind(ErrCommandExecution)
}
