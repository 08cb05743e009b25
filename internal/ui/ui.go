package ui

import (
	"fmt"
	"io"
	"os"
)

// Colors for terminal output
const (
	Reset  = "\033[0m"
	Red    = "\033[31m"
	Green  = "\033[32m"
	Yellow = "\033[33m"
	Cyan   = "\033[36m"
	White  = "\033[97m"
	Gray   = "\033[90m"
)

// Out and ErrOut receive all user-facing output. Tests swap them.
var (
	Out    io.Writer = os.Stdout
	ErrOut io.Writer = os.Stderr
)

// Success prints a success message
func Success(format string, args ...any) {
	fmt.Fprintf(Out, paint(Green, "✓ ")+format+"\n", args...)
}

// Error prints an error message to ErrOut
func Error(format string, args ...any) {
	fmt.Fprintf(ErrOut, paint(Red, "✗ ")+format+"\n", args...)
}

// Warning prints a warning message
func Warning(format string, args ...any) {
	fmt.Fprintf(Out, paint(Yellow, "! ")+format+"\n", args...)
}

// Info prints an info message
func Info(format string, args ...any) {
	fmt.Fprintf(Out, paint(Cyan, "→ ")+format+"\n", args...)
}

// Header prints a section header
func Header(text string) {
	fmt.Fprintf(Out, "\n%s\n", paint(Cyan, text))
	fmt.Fprintln(Out, paint(Gray, "─────────────────────────────────────────"))
}

// paint wraps s in color when stdout is a terminal.
func paint(color, s string) string {
	if !IsTTY() {
		return s
	}
	return color + s + Reset
}
