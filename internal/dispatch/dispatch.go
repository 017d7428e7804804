// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package dispatch

import (
	"context"
	"errors"
	"fmt"

	"github.com/matt-FFFFFF/quicktest/internal/color"
	"github.com/matt-FFFFFF/quicktest/internal/ctxlog"
	"github.com/matt-FFFFFF/quicktest/internal/selector"
	"github.com/spf13/afero"
)

const (
	// DefaultMarkerDir is the path whose presence means dependencies are installed.
	DefaultMarkerDir = "node_modules"
	// DefaultInstallCommand populates DefaultMarkerDir.
	DefaultInstallCommand = "npm install"

	// FaultExitCode is returned when dependencies cannot be installed or a command cannot be run at all.
	FaultExitCode = 1

	header = "🧪 Quick Test Runner"
	rule   = "===================="
)

// ErrInstallFailed is returned when the install command exits with a nonzero code.
var ErrInstallFailed = errors.New("dependency install failed")

// Executor runs a shell command line synchronously.
// The returned error is reserved for invocation faults, where the command could not be run at all;
// a command that runs and fails reports it through the exit code.
type Executor interface {
	Run(ctx context.Context, commandLine string) (int, error)
}

// Dispatcher turns a selector into exactly one external command run, preceded
// by an optional dependency install.
type Dispatcher struct {
	printer        *color.Printer
	exec           Executor
	fs             afero.Fs
	markerDir      string
	installCommand string
}

// Option implements a functional options pattern for Dispatcher.
type Option func(d *Dispatcher)

// WithFs sets the filesystem used for the dependency marker check.
func WithFs(fs afero.Fs) Option {
	return func(d *Dispatcher) {
		d.fs = fs
	}
}

// WithMarkerDir overrides DefaultMarkerDir.
func WithMarkerDir(dir string) Option {
	return func(d *Dispatcher) {
		d.markerDir = dir
	}
}

// WithInstallCommand overrides DefaultInstallCommand.
func WithInstallCommand(cmd string) Option {
	return func(d *Dispatcher) {
		d.installCommand = cmd
	}
}

// New creates a Dispatcher that writes status lines through printer and runs commands with exec.
func New(printer *color.Printer, exec Executor, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		printer:        printer,
		exec:           exec,
		fs:             FsFactory(),
		markerDir:      DefaultMarkerDir,
		installCommand: DefaultInstallCommand,
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

// Run executes the pipeline for sel and returns the process exit code:
// the selected command's own exit code, or FaultExitCode if dependencies could
// not be installed or the command could not be started.
func (d *Dispatcher) Run(ctx context.Context, sel selector.Selector, skipInstallCheck bool) int {
	logger := ctxlog.Logger(ctx).With("selector", sel.String())

	d.println(ctx, header, color.Cyan...)
	d.println(ctx, rule, color.Cyan...)
	d.blank(ctx)

	if skipInstallCheck {
		logger.Debug("skipping dependency check")
	} else if err := d.ensureDependencies(ctx); err != nil {
		logger.Debug("dependency install failed", "error", err)
		d.println(ctx, fmt.Sprintf("❌ Failed to install dependencies: %v", err), color.Red...)

		return FaultExitCode
	}

	code := d.dispatch(ctx, sel)

	d.blank(ctx)

	if code == 0 {
		d.println(ctx, "✅ Success!", color.Green...)
	} else {
		d.println(ctx, "❌ Failed!", color.Red...)
	}

	logger.Debug("dispatch complete", "exitCode", code)

	return code
}

func (d *Dispatcher) ensureDependencies(ctx context.Context) error {
	exists, err := afero.Exists(d.fs, d.markerDir)
	if err != nil {
		ctxlog.Debug(ctx, "could not check dependency marker, treating as absent", "dir", d.markerDir, "error", err)
	}

	if exists {
		ctxlog.Debug(ctx, "dependency marker present", "dir", d.markerDir)
		return nil
	}

	d.println(ctx, fmt.Sprintf("⚠️  %s not found. Running %s...", d.markerDir, d.installCommand), color.Yellow...)

	code, err := d.exec.Run(ctx, d.installCommand)
	if err != nil {
		return err
	}

	if code != 0 {
		return fmt.Errorf("%w: command '%s' returned non-zero exit status %d", ErrInstallFailed, d.installCommand, code)
	}

	return nil
}

func (d *Dispatcher) dispatch(ctx context.Context, sel selector.Selector) int {
	entry := sel.Entry()

	d.println(ctx, entry.Message, color.Green...)
	ctxlog.Debug(ctx, "running command", "selector", sel.String(), "command", entry.Command)

	code, err := d.exec.Run(ctx, entry.Command)
	if err != nil {
		ctxlog.Debug(ctx, "command could not be run", "command", entry.Command, "error", err)
		d.println(ctx, fmt.Sprintf("❌ Error running command: %v", err), color.Red...)

		return FaultExitCode
	}

	return code
}

func (d *Dispatcher) println(ctx context.Context, msg string, codes ...color.Code) {
	if err := d.printer.Println(msg, codes...); err != nil {
		ctxlog.Debug(ctx, "failed to write status line", "error", err)
	}
}

func (d *Dispatcher) blank(ctx context.Context) {
	if err := d.printer.Blank(); err != nil {
		ctxlog.Debug(ctx, "failed to write status line", "error", err)
	}
}
