package supervise

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sync"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/LowellDennis/bt/internal/log"
)

// DefaultStallTimeout is the quiet period after which a subprocess that
// produced no output is considered hung.
const DefaultStallTimeout = 2 * time.Minute

// Notifier is told about finished sessions. A nil Notifier disables
// notification.
type Notifier interface {
	SessionFinished(ctx context.Context, name string, s *Session) error
}

// Options configures one supervised run.
type Options struct {
	// Dir is the subprocess working directory.
	Dir string
	// LogPath is the verbatim output artifact. Empty disables the log.
	LogPath string
	// Filters defaults to the empty (pass-everything) set.
	Filters *FilterSet
	// StallTimeout defaults to DefaultStallTimeout; negative disables it.
	StallTimeout time.Duration
	Notifier     Notifier

	// OnProgress and OnDiagnostic receive parsed lines; OnLine receives
	// every other line that survives the filters. All are optional and
	// called from the streaming goroutine in output order.
	OnProgress   func(Progress)
	OnDiagnostic func(Diagnostic)
	OnLine       func(string)
}

// Run launches name with args and supervises it to completion. The
// returned session is always non-nil and carries the terminal state;
// err is non-nil for Failed, Canceled and TimedOut outcomes.
func Run(ctx context.Context, name string, args []string, opts Options) (*Session, error) {
	if opts.Filters == nil {
		opts.Filters = &FilterSet{}
	}
	if opts.StallTimeout == 0 {
		opts.StallTimeout = DefaultStallTimeout
	}

	session := &Session{State: StateLaunching, LogPath: opts.LogPath}

	logSink, closeSink := openLogSink(opts.LogPath)
	defer closeSink()

	proc := &lineProcessor{
		session: session,
		filters: opts.Filters,
		sink:    logSink,
		opts:    &opts,
	}

	log.FromContext(ctx).Command(name, args...)

	cmd := exec.Command(name, args...)
	cmd.Dir = opts.Dir
	// Own process group, so a kill reaches grandchildren that would
	// otherwise keep the output pipe open past the parent's death.
	setProcessGroup(cmd)

	// Merge stdout and stderr into one pipe so interleaving follows the
	// subprocess's own write order.
	pr, pw, err := os.Pipe()
	if err != nil {
		session.State = StateFailed
		return session, fmt.Errorf("create pipe: %w", err)
	}
	cmd.Stdout = pw
	cmd.Stderr = pw

	session.Start = time.Now()
	if err := cmd.Start(); err != nil {
		pr.Close()
		pw.Close()
		session.State = StateFailed
		return session, fmt.Errorf("start %s: %w", name, err)
	}
	pw.Close()
	session.State = StateStreaming

	// The watchdog kills the subprocess on cancellation or when the
	// output goes quiet for the stall timeout. Each line kicks the dog.
	var (
		mu        sync.Mutex
		killState State
	)
	kick := make(chan struct{}, 1)
	watchDone := make(chan struct{})
	kill := func(s State) {
		mu.Lock()
		if killState == StateIdle {
			killState = s
		}
		mu.Unlock()
		killProcessGroup(cmd)
	}
	go func() {
		defer close(watchDone)
		timer := time.NewTimer(stallDuration(opts.StallTimeout))
		defer timer.Stop()
		for {
			select {
			case <-ctx.Done():
				kill(StateCanceled)
				return
			case <-timer.C:
				fmt.Fprintf(logSink, "*** stalled: no output for %s, killing\n", opts.StallTimeout)
				kill(StateTimedOut)
				return
			case _, ok := <-kick:
				if !ok {
					return
				}
				if !timer.Stop() {
					<-timer.C
				}
				timer.Reset(stallDuration(opts.StallTimeout))
			}
		}
	}()

	scanner := bufio.NewScanner(pr)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		select {
		case kick <- struct{}{}:
		default:
		}
		proc.process(scanner.Text())
	}
	// A scan error (e.g. a line over the buffer limit) ends capture while
	// the subprocess runs on; the artifact has to say why it stops here.
	if serr := scanner.Err(); serr != nil {
		fmt.Fprintf(logSink, "*** output capture stopped: %v\n", serr)
		log.FromContext(ctx).Debug("output capture stopped", "error", serr)
	}
	pr.Close()
	close(kick)

	waitErr := cmd.Wait()
	<-watchDone

	mu.Lock()
	killed := killState
	mu.Unlock()

	switch {
	case killed == StateCanceled:
		session.State = StateCanceled
		session.ExitCode = -1
		err = fmt.Errorf("%s canceled: %w", name, ctx.Err())
	case killed == StateTimedOut:
		session.State = StateTimedOut
		session.ExitCode = -1
		err = fmt.Errorf("%s stalled (no output for %s)", name, opts.StallTimeout)
	case waitErr != nil:
		session.State = StateFailed
		var exitErr *exec.ExitError
		if errors.As(waitErr, &exitErr) {
			session.ExitCode = exitErr.ExitCode()
			err = fmt.Errorf("%s exited with code %d", name, session.ExitCode)
		} else {
			session.ExitCode = -1
			err = fmt.Errorf("%s: %w", name, waitErr)
		}
	default:
		session.State = StateCompleted
		session.ExitCode = 0
		err = nil
	}

	if opts.Notifier != nil && (session.State == StateCompleted || session.State == StateFailed) {
		if nerr := opts.Notifier.SessionFinished(ctx, name, session); nerr != nil {
			log.FromContext(ctx).Debug("notification failed", "error", nerr)
		}
	}

	return session, err
}

// stallDuration maps a negative (disabled) timeout to an effectively
// infinite timer.
func stallDuration(d time.Duration) time.Duration {
	if d < 0 {
		return 1000 * time.Hour
	}
	return d
}

// openLogSink returns the verbatim log writer. The artifact is size
// capped so runaway builds cannot fill the disk.
func openLogSink(path string) (io.Writer, func()) {
	if path == "" {
		return io.Discard, func() {}
	}
	lj := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    64, // MB per artifact file
		MaxBackups: 2,
	}
	return lj, func() { lj.Close() }
}

// lineProcessor classifies one output line at a time. It is independent
// of the subprocess so the pipeline is testable without one.
type lineProcessor struct {
	session *Session
	filters *FilterSet
	sink    io.Writer
	opts    *Options
}

func (p *lineProcessor) process(line string) {
	// Verbatim log first: filters never touch the artifact.
	fmt.Fprintln(p.sink, line)

	if !p.filters.Keep(line) {
		return
	}

	if prog, ok := ParseProgress(line); ok {
		p.session.UnitCount = prog.UnitCount
		p.session.LineCount = prog.LineCount
		p.session.TotalLines = prog.TotalLines
		p.session.Percent = prog.Percent
		p.session.ErrorCount = prog.ErrorCount
		if p.opts.OnProgress != nil {
			p.opts.OnProgress(prog)
		}
		return
	}

	if diag, ok := ParseDiagnostic(line); ok {
		if diag.Severity == SeverityWarning {
			p.session.WarningCount++
		} else {
			p.session.ErrorCount++
		}
		if p.opts.OnDiagnostic != nil {
			p.opts.OnDiagnostic(diag)
		}
		return
	}

	if p.opts.OnLine != nil {
		p.opts.OnLine(line)
	}
}
