// Package report handles console output and the optional YAML run summary.
package report

import (
	"fmt"
	"io"
	"os"
)

// Reporter prints user-facing progress to the console. Detail and Phase lines
// only appear in verbose mode; nothing in the pipeline depends on what the
// reporter does with its events.
type Reporter struct {
	Verbose bool
	out     io.Writer
}

// New creates a Reporter writing to stdout.
func New(verbose bool) *Reporter {
	return &Reporter{Verbose: verbose, out: os.Stdout}
}

// NewWriter creates a Reporter writing to w, for tests.
func NewWriter(verbose bool, w io.Writer) *Reporter {
	return &Reporter{Verbose: verbose, out: w}
}

// Phase announces a pipeline phase in verbose mode.
func (r *Reporter) Phase(msg string) {
	if r.Verbose {
		fmt.Fprintf(r.out, "\n== %s ==\n", msg)
	}
}

// Info prints an unconditional message.
func (r *Reporter) Info(format string, args ...any) {
	fmt.Fprintf(r.out, format+"\n", args...)
}

// Warn prints a warning.
func (r *Reporter) Warn(format string, args ...any) {
	fmt.Fprintf(r.out, "WARNING: "+format+"\n", args...)
}

// Error prints an error.
func (r *Reporter) Error(format string, args ...any) {
	fmt.Fprintf(r.out, "ERROR: "+format+"\n", args...)
}

// Detail prints a message only in verbose mode.
func (r *Reporter) Detail(format string, args ...any) {
	if r.Verbose {
		fmt.Fprintf(r.out, format+"\n", args...)
	}
}
