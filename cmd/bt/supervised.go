package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/LowellDennis/bt/internal/dispatch"
	"github.com/LowellDennis/bt/internal/log"
	"github.com/LowellDennis/bt/internal/output"
	"github.com/LowellDennis/bt/internal/supervise"
	"github.com/LowellDennis/bt/internal/ui"
)

// runSupervised drives one build/cleanup subprocess through the
// supervisor: verbatim log artifact, suppression filters, live progress
// on a terminal, structured diagnostics, summary banner, and optional
// notification.
func runSupervised(ctx context.Context, command string, argv []string) error {
	out := output.FromContext(ctx)
	logger := log.FromContext(ctx)

	filters, err := loadFilterTable()
	if err != nil {
		return err
	}
	logPath, err := buildLogPath(command)
	if err != nil {
		return err
	}
	notifier, err := buildNotifier()
	if err != nil {
		return err
	}

	showWarnings := store.Warnings()
	progressLine := ui.NewProgressLine()

	session, runErr := supervise.Run(ctx, argv[0], argv[1:], supervise.Options{
		Dir:      wctx.Root,
		LogPath:  logPath,
		Filters:  filters,
		Notifier: notifier,
		OnProgress: func(p supervise.Progress) {
			progressLine.Update(p.Elapsed, p.UnitCount, p.Percent, p.ErrorCount)
		},
		OnDiagnostic: func(d supervise.Diagnostic) {
			if d.Severity == supervise.SeverityWarning && !showWarnings {
				return
			}
			progressLine.Clear()
			out.Printf("%s(%d): %s %s: %s\n", d.Path, d.Line, d.Severity, d.Code, d.Message)
		},
		OnLine: func(line string) {
			progressLine.Clear()
			out.Println(line)
		},
	})
	progressLine.Clear()

	logger.Debug("session finished",
		"state", session.State, "exit", session.ExitCode,
		"errors", session.ErrorCount, "warnings", session.WarningCount)

	switch session.State {
	case supervise.StateCompleted:
		out.Announce(fmt.Sprintf("%s passed! (%d warnings)", command, session.WarningCount), '*')
		out.Printf("Log: %s\n", logPath)
		return nil
	case supervise.StateFailed:
		out.Announce(fmt.Sprintf("%s FAILED: %d errors, %d warnings", command, session.ErrorCount, session.WarningCount), '!')
		out.Printf("Log: %s\n", logPath)
		return &dispatch.ExitCodeError{Code: session.ExitCode, Err: runErr}
	default:
		// Canceled or timed out; the artifact has everything up to the
		// kill.
		out.Printf("%s %s; log: %s\n", command, session.State, logPath)
		if errors.Is(runErr, context.Canceled) {
			return runErr
		}
		return &dispatch.ExitCodeError{Code: 1, Err: runErr}
	}
}
