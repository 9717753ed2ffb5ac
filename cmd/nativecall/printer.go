package main

import (
	"fmt"
	"io"
	"strings"
)

// printer writes command output, highlighting headings when the output is a
// terminal.
type printer struct {
	w     io.Writer
	color bool
}

func newPrinter(w io.Writer, color bool) *printer {
	return &printer{w: w, color: color}
}

func (p *printer) heading(format string, args ...any) {
	s := fmt.Sprintf(format, args...)
	if p.color {
		s = "\x1b[1m" + s + "\x1b[0m"
	}
	fmt.Fprintln(p.w, s)
}

func (p *printer) line(format string, args ...any) {
	fmt.Fprintf(p.w, format+"\n", args...)
}

func (p *printer) failure(format string, args ...any) {
	s := fmt.Sprintf(format, args...)
	if p.color {
		s = "\x1b[31m" + s + "\x1b[0m"
	}
	fmt.Fprintln(p.w, s)
}

func join[T fmt.Stringer](items []T) string {
	parts := make([]string, len(items))
	for i, it := range items {
		parts[i] = it.String()
	}
	return strings.Join(parts, ", ")
}
