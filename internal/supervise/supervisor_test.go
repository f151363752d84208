package supervise

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"
)

func TestLineProcessor(t *testing.T) {
	var sink strings.Builder
	var shown []string
	var diags []Diagnostic

	fs, err := ParseFilters("[[rule]]\nmatch = \"^chatter\"\naction = \"drop\"\n")
	if err != nil {
		t.Fatal(err)
	}

	session := &Session{}
	proc := &lineProcessor{
		session: session,
		filters: fs,
		sink:    &sink,
		opts: &Options{
			OnDiagnostic: func(d Diagnostic) { diags = append(diags, d) },
			OnLine:       func(l string) { shown = append(shown, l) },
		},
	}

	lines := []string{
		"Building platform X",
		"chatter: ignore me",
		"src/main.c(42): error E001: missing semicolon",
		"fw/init.c(7): warning W210: unused variable 'x'",
		"01:23, 4:500/1000 ###-----  50%, Error 2",
	}
	for _, l := range lines {
		proc.process(l)
	}

	// Every line reaches the artifact, filtered or not.
	for _, l := range lines {
		if !strings.Contains(sink.String(), l) {
			t.Errorf("log artifact missing %q", l)
		}
	}

	if len(shown) != 1 || shown[0] != "Building platform X" {
		t.Errorf("shown = %v", shown)
	}
	if len(diags) != 2 {
		t.Fatalf("diagnostics = %d, want 2", len(diags))
	}
	if session.WarningCount != 1 {
		t.Errorf("WarningCount = %d, want 1", session.WarningCount)
	}
	// The progress line's own error count wins over incremental counting.
	if session.ErrorCount != 2 {
		t.Errorf("ErrorCount = %d, want 2", session.ErrorCount)
	}
	if session.UnitCount != 4 || session.Percent != 50 {
		t.Errorf("session = %+v", session)
	}
}

func requireShell(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("needs a POSIX shell")
	}
}

func TestRunCompleted(t *testing.T) {
	requireShell(t)

	logPath := filepath.Join(t.TempDir(), "build.log")
	var shown []string
	session, err := Run(context.Background(), "sh", []string{"-c", "echo one; echo two 1>&2"}, Options{
		LogPath: logPath,
		OnLine:  func(l string) { shown = append(shown, l) },
	})
	if err != nil {
		t.Fatalf("Run = %v", err)
	}
	if session.State != StateCompleted || session.ExitCode != 0 {
		t.Errorf("session = %+v", session)
	}
	if len(shown) != 2 {
		t.Errorf("shown = %v, want stdout and stderr merged", shown)
	}

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("log artifact: %v", err)
	}
	if !strings.Contains(string(data), "one") || !strings.Contains(string(data), "two") {
		t.Errorf("log artifact = %q", data)
	}
}

func TestRunFailedPropagatesExitCode(t *testing.T) {
	requireShell(t)

	session, err := Run(context.Background(), "sh", []string{"-c", "exit 3"}, Options{})
	if err == nil {
		t.Fatal("Run = nil error for nonzero exit")
	}
	if session.State != StateFailed || session.ExitCode != 3 {
		t.Errorf("session = %+v", session)
	}
}

func TestRunCanceled(t *testing.T) {
	requireShell(t)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	session, err := Run(ctx, "sh", []string{"-c", "sleep 30"}, Options{})
	if err == nil {
		t.Fatal("Run = nil error after cancel")
	}
	if session.State != StateCanceled {
		t.Errorf("State = %v, want canceled", session.State)
	}
}

func TestRunStallTimeout(t *testing.T) {
	requireShell(t)

	session, err := Run(context.Background(), "sh", []string{"-c", "echo start; sleep 30"}, Options{
		StallTimeout: 100 * time.Millisecond,
	})
	if err == nil {
		t.Fatal("Run = nil error after stall")
	}
	if session.State != StateTimedOut {
		t.Errorf("State = %v, want timed out", session.State)
	}
}

func TestRunRecordsScanErrorInArtifact(t *testing.T) {
	requireShell(t)

	logPath := filepath.Join(t.TempDir(), "build.log")
	// A single line past the scanner's 1 MiB cap aborts capture; the
	// artifact must say so instead of just going quiet.
	script := "echo first; head -c 2000000 /dev/zero | tr '\\0' a; echo"
	Run(context.Background(), "sh", []string{"-c", script}, Options{LogPath: logPath})

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("log artifact: %v", err)
	}
	if !strings.Contains(string(data), "first") {
		t.Errorf("log artifact missing output before the overlong line:\n%.200s", data)
	}
	if !strings.Contains(string(data), "output capture stopped") {
		t.Errorf("log artifact missing the capture-stop marker:\n%.200s", data)
	}
}

type recordingNotifier struct {
	name    string
	session *Session
}

func (n *recordingNotifier) SessionFinished(_ context.Context, name string, s *Session) error {
	n.name = name
	n.session = s
	return nil
}

func TestRunNotifies(t *testing.T) {
	requireShell(t)

	notifier := &recordingNotifier{}
	_, err := Run(context.Background(), "sh", []string{"-c", "true"}, Options{Notifier: notifier})
	if err != nil {
		t.Fatal(err)
	}
	if notifier.session == nil || notifier.session.State != StateCompleted {
		t.Errorf("notifier saw %+v", notifier.session)
	}
}
