package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

var (
	errorColor   = color.New(color.FgRed, color.Bold)
	warningColor = color.New(color.FgYellow)
)

// output writes human-readable diagnostics. Everything goes to one writer;
// there is no separate machine-readable error channel.
type output struct {
	w io.Writer
}

func newOutput(w io.Writer) *output {
	return &output{w: w}
}

func (o *output) printf(format string, args ...any) {
	fmt.Fprintf(o.w, format, args...)
}

func (o *output) errorf(format string, args ...any) {
	errorColor.Fprint(o.w, "Error:")
	fmt.Fprintf(o.w, " "+format+"\n", args...)
}

func (o *output) warnf(format string, args ...any) {
	warningColor.Fprint(o.w, "Warning:")
	fmt.Fprintf(o.w, " "+format+"\n", args...)
}
