// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package root contains the quicktest command definition.
package root

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/matt-FFFFFF/quicktest/internal/color"
	"github.com/matt-FFFFFF/quicktest/internal/ctxlog"
	"github.com/matt-FFFFFF/quicktest/internal/dispatch"
	"github.com/matt-FFFFFF/quicktest/internal/selector"
	"github.com/urfave/cli/v3"
)

const (
	skipInstallCheckFlag = "skip-install-check"
	listFlag             = "list"

	// UsageExitCode is returned for invalid command-line usage.
	UsageExitCode = 2

	argsUsage = "[test_type]"
)

var (
	// ErrTooManyArguments is returned when more than one test type is given.
	ErrTooManyArguments = errors.New("too many arguments")
	// ErrWriteTable is returned when the dispatch table cannot be written.
	ErrWriteTable = errors.New("failed to write dispatch table")
)

// Config holds the collaborators of the quicktest command.
type Config struct {
	Writer          io.Writer // Status output, normally stdout.
	ErrWriter       io.Writer // Usage errors, normally stderr.
	Executor        dispatch.Executor
	PrinterOptions  []color.PrinterOption
	DispatchOptions []dispatch.Option
}

// New creates the quicktest root command.
func New(cfg Config) *cli.Command {
	if cfg.Writer == nil {
		cfg.Writer = os.Stdout
	}

	if cfg.ErrWriter == nil {
		cfg.ErrWriter = os.Stderr
	}

	return &cli.Command{
		Name:      "quicktest",
		Usage:     "Quick test runner for npm projects",
		ArgsUsage: argsUsage,
		Description: `Runs one npm script chosen by test type, installing dependencies first
if node_modules is missing. The exit code of the npm script is returned unchanged.

Test types: ` + strings.Join(selector.Names(), ", ") + ` (default: ` + selector.Default.String() + `)

Examples:
  quicktest unit          # Run unit tests only
  quicktest integration   # Run integration tests only
  quicktest all           # Run all tests
  quicktest compile       # Compile TypeScript
  quicktest lint          # Run linter
  quicktest watch         # Start watch mode`,
		Writer:    cfg.Writer,
		ErrWriter: cfg.ErrWriter,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        skipInstallCheckFlag,
				Usage:       "Skip checking for node_modules",
				Value:       false,
				DefaultText: "false",
			},
			&cli.BoolFlag{
				Name:        listFlag,
				Usage:       "Print the test types and the commands they run as YAML, then exit",
				Value:       false,
				DefaultText: "false",
			},
		},
		HideHelpCommand: true,
		OnUsageError: func(_ context.Context, cmd *cli.Command, err error, _ bool) error {
			fmt.Fprintf(cmd.ErrWriter, "%s: error: %s\n", cmd.Name, err) //nolint:errcheck

			return cli.Exit("", UsageExitCode)
		},
		// Exit codes are translated by the caller with ExitCode.
		ExitErrHandler: func(context.Context, *cli.Command, error) {},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return actionFunc(ctx, cmd, cfg)
		},
	}
}

func actionFunc(ctx context.Context, cmd *cli.Command, cfg Config) error {
	logger := ctxlog.Logger(ctx).With("command", cmd.Name)

	if cmd.Bool(listFlag) {
		return writeTable(cmd.Writer)
	}

	sel, err := parseSelector(cmd.Args().Slice())
	if err != nil {
		logger.Debug("invalid arguments", "error", err)
		printUsageError(cmd, err)

		return cli.Exit("", UsageExitCode)
	}

	logger.Debug("dispatching", "selector", sel.String(), skipInstallCheckFlag, cmd.Bool(skipInstallCheckFlag))

	d := dispatch.New(color.NewPrinter(cmd.Writer, cfg.PrinterOptions...), cfg.Executor, cfg.DispatchOptions...)

	if code := d.Run(ctx, sel, cmd.Bool(skipInstallCheckFlag)); code != 0 {
		return cli.Exit("", code)
	}

	return nil
}

func parseSelector(args []string) (selector.Selector, error) {
	switch len(args) {
	case 0:
		return selector.Default, nil
	case 1:
		return selector.Parse(args[0])
	default:
		return 0, fmt.Errorf("%w: %s", ErrTooManyArguments, strings.Join(args[1:], " "))
	}
}

func printUsageError(cmd *cli.Command, err error) {
	w := cmd.ErrWriter
	fmt.Fprintf(w, "usage: %s [--%s] %s\n", cmd.Name, skipInstallCheckFlag, argsUsage) //nolint:errcheck
	fmt.Fprintf(w, "%s: error: %s\n", cmd.Name, err)                                   //nolint:errcheck

	if errors.Is(err, selector.ErrUnknownSelector) {
		fmt.Fprintln(w, "\nAvailable types:") //nolint:errcheck

		for _, name := range selector.Names() {
			fmt.Fprintf(w, "  - %s\n", name) //nolint:errcheck
		}
	}
}

func writeTable(w io.Writer) error {
	out, err := yaml.Marshal(selector.Table())
	if err != nil {
		return cli.Exit(errors.Join(ErrWriteTable, err).Error(), 1)
	}

	if _, err := w.Write(out); err != nil {
		return cli.Exit(errors.Join(ErrWriteTable, err).Error(), 1)
	}

	return nil
}

// ExitCode maps the error returned by running the command to a process exit code.
// Errors that carry no exit code come from argument parsing and map to UsageExitCode.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}

	var ec cli.ExitCoder
	if errors.As(err, &ec) {
		return ec.ExitCode()
	}

	return UsageExitCode
}

// ExitMessage returns the message carried by err, if any, for printing before exit.
func ExitMessage(err error) string {
	if err == nil {
		return ""
	}

	var ec cli.ExitCoder
	if errors.As(err, &ec) {
		return ec.Error()
	}

	return err.Error()
}
