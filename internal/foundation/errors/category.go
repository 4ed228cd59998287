package errors

import "log/slog"

// ErrorCategory classifies a failure by the part of docpress that produced it.
// The category decides the process exit code.
type ErrorCategory string

const (
	CategoryValidation ErrorCategory = "validation"
	CategoryNotFound   ErrorCategory = "not_found"
	CategoryConfig     ErrorCategory = "config"
	CategoryGit        ErrorCategory = "git"
	CategoryInternal   ErrorCategory = "internal"

	// Failures while walking or writing the project tree.
	CategorySidebar    ErrorCategory = "sidebar"
	CategoryContent    ErrorCategory = "content"
	CategoryFileSystem ErrorCategory = "filesystem"

	CategoryRuntime ErrorCategory = "runtime"
)

// ExitUnclassified is returned for errors that carry no category.
const ExitUnclassified = 1

var exitCodes = map[ErrorCategory]int{
	CategoryValidation: 2,
	CategoryNotFound:   3,
	CategoryConfig:     7,
	CategoryGit:        8,
	CategoryInternal:   10,
	CategorySidebar:    11,
	CategoryContent:    11,
	CategoryFileSystem: 11,
	CategoryRuntime:    12,
}

// ExitCode returns the process exit code for the category.
func (c ErrorCategory) ExitCode() int {
	if code, ok := exitCodes[c]; ok {
		return code
	}
	return ExitUnclassified
}

// ErrorSeverity tells the CLI whether an error is worth logging on top of
// the one-line message it prints.
type ErrorSeverity string

const (
	SeverityFatal   ErrorSeverity = "fatal"
	SeverityError   ErrorSeverity = "error"
	SeverityWarning ErrorSeverity = "warning"
)

func (s ErrorSeverity) level() slog.Level {
	if s == SeverityWarning {
		return slog.LevelWarn
	}
	return slog.LevelError
}
