// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package color

import (
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"
)

const (
	sbPadding = 16 // padding for the strings.Builder
)

// Code represents an ANSI control code for text formatting.
type Code int

const (
	// ForceColor is the environment variable that forces color output when set to "1".
	ForceColor = "FORCE_COLOR"
	// Term is the environment variable holding the terminal type.
	Term = "TERM"
	// DumbTerm is the TERM value of a terminal without color support.
	DumbTerm = "dumb"

	forceColorOn = "1"
	reset        = "\033[0m"
	prefix       = "\033["
	suffix       = "m"
)

// Control codes for text formatting.
const (
	Reset Code = iota
	Bold
	Faint
	Italic
	Underline
)

// Foreground text colors.
const (
	FgBlack Code = iota + 30
	FgRed
	FgGreen
	FgYellow
	FgBlue
	FgMagenta
	FgCyan
	FgWhite
)

// Foreground Hi-Intensity text colors.
const (
	FgHiBlack Code = iota + 90
	FgHiRed
	FgHiGreen
	FgHiYellow
	FgHiBlue
	FgHiMagenta
	FgHiCyan
	FgHiWhite
)

// Status line styles.
var (
	Green  = []Code{Reset, FgGreen}
	Yellow = []Code{Bold, FgYellow}
	Red    = []Code{Reset, FgRed}
	Cyan   = []Code{Reset, FgCyan}
)

// Supported reports whether color output should be used.
// Color is on when the output is an interactive terminal whose TERM is not "dumb",
// or when FORCE_COLOR is exactly "1".
func Supported(isTerminal bool, termEnv, forceColor string) bool {
	return (isTerminal && termEnv != DumbTerm) || forceColor == forceColorOn
}

// Enabled indicates whether color output to stdout is enabled.
// It drives the colouring of log output.
// The result is computed on every call so that redirection or environment
// changes during the process lifetime are honoured.
func Enabled() bool {
	return Supported(term.IsTerminal(int(os.Stdout.Fd())), os.Getenv(Term), os.Getenv(ForceColor))
}

// Wrap unconditionally wraps str in the given control codes followed by a reset.
func Wrap(str string, colorCodes ...Code) string {
	sb := strings.Builder{}
	sb.Grow(len(str) + len(prefix) + len(suffix) + len(reset) + sbPadding)
	writeCodes(&sb, colorCodes)
	sb.WriteString(str)
	sb.WriteString(reset)

	return sb.String()
}

func writeCodes(sb *strings.Builder, codes []Code) {
	sb.WriteString(prefix)

	for i, code := range codes {
		if i > 0 {
			sb.WriteString(";")
		}

		sb.WriteString(strconv.Itoa(int(code)))
	}

	sb.WriteString(suffix)
}
