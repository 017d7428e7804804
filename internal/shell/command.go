// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package shell

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"syscall"

	"github.com/matt-FFFFFF/quicktest/internal/ctxlog"
	"github.com/matt-FFFFFF/quicktest/internal/signalbroker"
	"golang.org/x/term"
)

// signalExitBase is added to the signal number of a child terminated by a signal,
// following the POSIX shell convention.
const signalExitBase = 128

var (
	// ErrCouldNotStartProcess is returned when the process could not be started.
	ErrCouldNotStartProcess = errors.New("could not start process")
	// ErrWaitProcess is returned when waiting for the process failed.
	ErrWaitProcess = errors.New("failed waiting for process")
)

// Command is a single external process invocation.
// The process inherits the parent's environment, working directory and by default
// its standard streams, so output is not captured.
type Command struct {
	Label       string         // Label used in log messages.
	Path        string         // Executable to run (e.g. the full path of the shell).
	Args        []string       // Arguments, not including the executable name itself.
	Stdin       *os.File       // Defaults to os.Stdin.
	Stdout      *os.File       // Defaults to os.Stdout.
	Stderr      *os.File       // Defaults to os.Stderr.
	sigCh       chan os.Signal // Channel to receive signals, allows mocking in test.
	interactive func() bool    // Reports whether stdin is a terminal, allows mocking in test.
}

// Result is the outcome of running a Command.
type Result struct {
	ExitCode int   // Exit code of the process, -1 if it could not be run.
	Error    error // Non-nil only when the process could not be started or waited for.
}

// Run starts the process and waits for it to finish. There is no timeout.
//
// While the process runs, termination signals received by this process are
// forwarded to it; a second signal of the same type kills it. An interrupt is
// not forwarded when stdin is a terminal, as the terminal has already delivered
// it to the whole foreground process group. The process is also killed if ctx
// is cancelled.
func (c *Command) Run(ctx context.Context) Result {
	log := logger(ctx).With("label", c.Label)
	log.Debug("command info", "path", c.Path, "args", c.Args)

	stdin := orDefault(c.Stdin, os.Stdin)

	interactive := c.interactive
	if interactive == nil {
		interactive = func() bool { return term.IsTerminal(int(stdin.Fd())) }
	}

	sigCh := c.sigCh
	if sigCh == nil {
		sigCh = signalbroker.New(ctx)
		defer signalbroker.Stop(ctx, sigCh)
	}

	args := slices.Concat([]string{filepath.Base(c.Path)}, c.Args)

	ps, err := os.StartProcess(c.Path, args, &os.ProcAttr{
		Env:   os.Environ(),
		Files: []*os.File{stdin, orDefault(c.Stdout, os.Stdout), orDefault(c.Stderr, os.Stderr)},
	})
	if err != nil {
		log.Debug("process could not be started", "error", err)

		return Result{ExitCode: -1, Error: fmt.Errorf("%w: %w", ErrCouldNotStartProcess, err)}
	}

	log.Debug("process started", "pid", ps.Pid)

	done := make(chan struct{})
	wg := sync.WaitGroup{}

	wg.Add(1)

	go func() {
		defer wg.Done()
		watchdog(ctx, log, ps, sigCh, interactive(), done)
	}()

	state, err := ps.Wait()

	close(done)
	wg.Wait()

	if err != nil {
		return Result{ExitCode: -1, Error: fmt.Errorf("%w: %w", ErrWaitProcess, err)}
	}

	code := exitCode(state)
	log.Debug("process finished", "exitCode", code)

	return Result{ExitCode: code}
}

// watchdog forwards signals to the process and kills it on a duplicate signal or context cancellation.
// With interactive set, interrupts are counted but not forwarded.
// It returns once done is closed.
func watchdog(
	ctx context.Context, log *slog.Logger, ps *os.Process, sigCh chan os.Signal, interactive bool, done chan struct{},
) {
	seen := make(map[os.Signal]struct{})
	ctxDone := ctx.Done()

	for {
		select {
		case <-done:
			return

		case s, ok := <-sigCh:
			if !ok {
				sigCh = nil
				continue
			}

			if _, dup := seen[s]; dup {
				log.Info("received duplicate signal, killing process", "signal", s.String())
				killPs(log, ps)

				continue
			}

			seen[s] = struct{}{}

			if interactive && s == os.Interrupt {
				log.Debug("interrupt already delivered by terminal", "signal", s.String())
				continue
			}

			log.Info("forwarding signal to process", "signal", s.String())

			if err := ps.Signal(s); err != nil {
				log.Info("failed to send signal", "signal", s.String(), "error", err)
			}

		case <-ctxDone:
			log.Info("context done, killing process")
			killPs(log, ps)

			ctxDone = nil
		}
	}
}

func killPs(log *slog.Logger, ps *os.Process) {
	if err := ps.Kill(); err != nil {
		if errors.Is(err, os.ErrProcessDone) {
			log.Debug("process already done", "pid", ps.Pid)
			return
		}

		log.Error("process kill error", "pid", ps.Pid, "error", err)

		return
	}

	log.Info("process killed", "pid", ps.Pid)
}

func exitCode(state *os.ProcessState) int {
	if ws, ok := state.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
		return signalExitBase + int(ws.Signal())
	}

	return state.ExitCode()
}

func orDefault(f, def *os.File) *os.File {
	if f == nil {
		return def
	}

	return f
}

func logger(ctx context.Context) *slog.Logger {
	return ctxlog.Logger(ctx).With("runnableType", "shell")
}
