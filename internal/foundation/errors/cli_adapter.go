package errors

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// CLIErrorAdapter turns a command's error into the text the user sees and the
// process exit code.
type CLIErrorAdapter struct {
	out     io.Writer
	verbose bool
	logger  *slog.Logger
}

// NewCLIErrorAdapter returns an adapter printing to out. A nil logger uses
// slog.Default.
func NewCLIErrorAdapter(out io.Writer, verbose bool, logger *slog.Logger) *CLIErrorAdapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CLIErrorAdapter{out: out, verbose: verbose, logger: logger}
}

// ExitCodeFor maps err to an exit code: 0 for nil, the category's code for
// classified errors and ExitUnclassified otherwise.
func (a *CLIErrorAdapter) ExitCodeFor(err error) int {
	if err == nil {
		return 0
	}
	if ce, ok := AsClassified(err); ok {
		return ce.category.ExitCode()
	}
	return ExitUnclassified
}

// FormatError renders err for the terminal. Context entries follow the
// message on indented lines. Internal errors only show details in verbose mode.
func (a *CLIErrorAdapter) FormatError(err error) string {
	if err == nil {
		return ""
	}
	ce, ok := AsClassified(err)
	switch {
	case !ok:
		return "Error: " + err.Error()
	case a.verbose:
		return "Error: " + err.Error()
	case ce.category == CategoryInternal:
		return "Error: internal error (run with -v for details)"
	}

	var b strings.Builder
	b.WriteString("Error: ")
	b.WriteString(ce.message)
	if ce.cause != nil {
		b.WriteString(": ")
		b.WriteString(ce.cause.Error())
	}
	for _, f := range ce.context {
		fmt.Fprintf(&b, "\n  %s: %v", f.Key, f.Value)
	}
	return b.String()
}

// Handle logs err when it is fatal, unclassified or verbose output is on,
// prints it and returns the exit code.
func (a *CLIErrorAdapter) Handle(err error) int {
	if err == nil {
		return 0
	}
	ce, ok := AsClassified(err)
	switch {
	case !ok:
		a.logger.Error("Command failed", slog.String("error", err.Error()))
	case a.verbose || ce.severity == SeverityFatal:
		a.logger.LogAttrs(context.Background(), ce.severity.level(), ce.message, attrs(ce)...)
	}
	fmt.Fprintln(a.out, a.FormatError(err))
	return a.ExitCodeFor(err)
}

func attrs(ce *ClassifiedError) []slog.Attr {
	out := make([]slog.Attr, 0, len(ce.context)+2)
	out = append(out, slog.String("category", string(ce.category)))
	for _, f := range ce.context {
		out = append(out, slog.Any(f.Key, f.Value))
	}
	if ce.cause != nil {
		out = append(out, slog.String("error", ce.cause.Error()))
	}
	return out
}
