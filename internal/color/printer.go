// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package color

import (
	"io"
	"os"

	"golang.org/x/term"
)

// Printer writes status lines to a writer, colouring them when the
// destination supports it. Support is re-evaluated on every line.
type Printer struct {
	w          io.Writer
	isTerminal func() bool
	getenv     func(string) string
}

// PrinterOption implements a functional options pattern for Printer.
type PrinterOption func(p *Printer)

// WithTerminalDetector overrides how the printer decides whether its writer is a terminal.
func WithTerminalDetector(fn func() bool) PrinterOption {
	return func(p *Printer) {
		p.isTerminal = fn
	}
}

// WithGetenv overrides the environment lookup used for TERM and FORCE_COLOR.
func WithGetenv(fn func(string) string) PrinterOption {
	return func(p *Printer) {
		p.getenv = fn
	}
}

// NewPrinter creates a Printer writing to w.
// By default w is considered a terminal only if it is an *os.File attached to one.
func NewPrinter(w io.Writer, opts ...PrinterOption) *Printer {
	p := &Printer{
		w:          w,
		isTerminal: fdIsTerminal(w),
		getenv:     os.Getenv,
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// ColorEnabled reports whether the next line written will be coloured.
func (p *Printer) ColorEnabled() bool {
	return Supported(p.isTerminal(), p.getenv(Term), p.getenv(ForceColor))
}

// Println writes msg followed by a newline. With no codes, or when color is
// not supported, msg is written as is.
func (p *Printer) Println(msg string, codes ...Code) error {
	if len(codes) > 0 && p.ColorEnabled() {
		msg = Wrap(msg, codes...)
	}

	_, err := io.WriteString(p.w, msg+"\n")

	return err //nolint:wrapcheck
}

// Blank writes an empty line.
func (p *Printer) Blank() error {
	return p.Println("")
}

func fdIsTerminal(w io.Writer) func() bool {
	f, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return func() bool { return false }
	}

	return func() bool {
		return term.IsTerminal(int(f.Fd()))
	}
}
