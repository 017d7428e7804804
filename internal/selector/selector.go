// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package selector defines the keywords accepted on the command line and the
// fixed dispatch table mapping each of them to an external command.
//
// The set of accepted names and the table are both indexed by Selector,
// so a keyword cannot be parsed without having a table entry.
package selector

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// ErrUnknownSelector is returned by Parse for names outside the enumeration.
var ErrUnknownSelector = errors.New("unknown test type")

// Selector chooses which external command is run.
type Selector int

// Selectors, in the order they are listed to users.
const (
	Unit Selector = iota
	Integration
	All
	Compile
	Lint
	Watch

	count // number of selectors, keep last
)

// Default is used when no selector is given.
const Default = All

// Entry is a dispatch table row.
type Entry struct {
	Command string // Shell command line to run.
	Message string // Status line printed before the command runs.
}

var names = [count]string{
	Unit:        "unit",
	Integration: "integration",
	All:         "all",
	Compile:     "compile",
	Lint:        "lint",
	Watch:       "watch",
}

var table = [count]Entry{
	Unit:        {Command: "npm run test:unit", Message: "Running Unit Tests (Fast)..."},
	Integration: {Command: "npm run test:integration", Message: "Running Integration Tests..."},
	All:         {Command: "npm test", Message: "Running All Tests..."},
	Compile:     {Command: "npm run compile", Message: "Compiling TypeScript..."},
	Lint:        {Command: "npm run lint", Message: "Running Linter..."},
	Watch:       {Command: "npm run watch", Message: "Starting Watch Mode..."},
}

// Parse returns the selector with the given name. Names are case sensitive.
func Parse(name string) (Selector, error) {
	for i, n := range names {
		if n == name {
			return Selector(i), nil
		}
	}

	return 0, fmt.Errorf("%w: %s (choose from %s)", ErrUnknownSelector, name, strings.Join(Names(), ", "))
}

// Valid reports whether s is one of the declared selectors.
func (s Selector) Valid() bool {
	return s >= 0 && s < count
}

// String returns the command-line name of the selector.
func (s Selector) String() string {
	if !s.Valid() {
		return fmt.Sprintf("Selector(%d)", int(s))
	}

	return names[s]
}

// Entry returns the dispatch table row for s. It panics if s is not valid.
func (s Selector) Entry() Entry {
	return table[s]
}

// Values returns all selectors in declaration order.
func Values() []Selector {
	v := make([]Selector, count)
	for i := range v {
		v[i] = Selector(i)
	}

	return v
}

// Names returns the names of all selectors in declaration order.
func Names() []string {
	return slices.Clone(names[:])
}

// Row is a flattened dispatch table row, used for listing.
type Row struct {
	Name    string `yaml:"name"`
	Command string `yaml:"command"`
	Message string `yaml:"message"`
}

// Table returns the dispatch table in declaration order.
func Table() []Row {
	rows := make([]Row, 0, count)
	for _, s := range Values() {
		e := s.Entry()
		rows = append(rows, Row{Name: s.String(), Command: e.Command, Message: e.Message})
	}

	return rows
}
