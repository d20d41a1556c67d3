// Package obslog is a thin wrapper around the standard library logger
// matching the bracket-tag convention used throughout this codebase
// (e.g. "[sdk] ...", "[shadow] ...") instead of a structured logging
// library.
package obslog

import (
	"log"
	"os"
)

// Logger prefixes every line with a fixed "[tag]" marker.
type Logger struct {
	tag string
	out *log.Logger
}

// New returns a Logger writing to stderr, tagged with name.
func New(name string) *Logger {
	return &Logger{
		tag: name,
		out: log.New(os.Stderr, "", log.LstdFlags),
	}
}

// Printf logs a formatted message tagged with the logger's name.
func (l *Logger) Printf(format string, args ...any) {
	l.out.Printf("[%s] "+format, append([]any{l.tag}, args...)...)
}

// Println logs args tagged with the logger's name.
func (l *Logger) Println(args ...any) {
	all := append([]any{"[" + l.tag + "]"}, args...)
	l.out.Println(all...)
}
