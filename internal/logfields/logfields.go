// Package logfields names the structured log attributes docpress emits, so
// every package logs the same key for the same thing.
package logfields

import (
	"log/slog"
	"time"
)

const (
	KeyRunID     = "run_id"
	KeyStage     = "stage"
	KeyElapsedMS = "elapsed_ms"
	KeyPath      = "path"
	KeyFile      = "file"
	KeyName      = "name"
	KeyCount     = "count"
	KeyFormat    = "format"
	KeyOp        = "op"
	KeyTrigger   = "trigger"
	KeyError     = "error"
)

func RunID(id string) slog.Attr    { return slog.String(KeyRunID, id) }
func Stage(name string) slog.Attr  { return slog.String(KeyStage, name) }
func Path(p string) slog.Attr      { return slog.String(KeyPath, p) }
func File(f string) slog.Attr      { return slog.String(KeyFile, f) }
func Name(n string) slog.Attr      { return slog.String(KeyName, n) }
func Count(n int) slog.Attr        { return slog.Int(KeyCount, n) }
func Format(f string) slog.Attr    { return slog.String(KeyFormat, f) }
func Op(op string) slog.Attr       { return slog.String(KeyOp, op) }
func Trigger(why string) slog.Attr { return slog.String(KeyTrigger, why) }

// Elapsed reports d in milliseconds with microsecond precision.
func Elapsed(d time.Duration) slog.Attr {
	return slog.Float64(KeyElapsedMS, float64(d.Microseconds())/1000)
}

// Error logs err's message; a nil err logs an empty string.
func Error(err error) slog.Attr {
	msg := ""
	if err != nil {
		msg = err.Error()
	}
	return slog.String(KeyError, msg)
}
