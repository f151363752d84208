// Package log provides context-aware logging for bt.
package log

import (
	"context"
	"fmt"
	"io"
	"strings"
)

type ctxKey struct{}

// Verbosity levels, matching -v, -vv and -vvv.
const (
	LevelQuiet   = 0
	LevelVerbose = 1
	LevelDebug   = 2
	LevelTrace   = 3
)

// Logger provides output and verbose command logging.
type Logger struct {
	out   io.Writer
	level int
}

// New creates a new logger with the given verbosity level.
func New(out io.Writer, level int) *Logger {
	return &Logger{out: out, level: level}
}

// WithLogger attaches a logger to the context.
func WithLogger(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// FromContext retrieves the logger from context.
// Returns a no-op logger if none is attached.
func FromContext(ctx context.Context) *Logger {
	if l, ok := ctx.Value(ctxKey{}).(*Logger); ok {
		return l
	}
	return &Logger{out: io.Discard}
}

// Printf writes formatted output.
func (l *Logger) Printf(format string, args ...any) {
	fmt.Fprintf(l.out, format, args...)
}

// Println writes a line of output.
func (l *Logger) Println(args ...any) {
	fmt.Fprintln(l.out, args...)
}

// Command logs an external command execution.
// Only prints at -v and above.
func (l *Logger) Command(name string, args ...string) {
	if l.level >= LevelVerbose {
		fmt.Fprintf(l.out, "$ %s %s\n", name, strings.Join(args, " "))
	}
}

// Debug writes a message with key-value pairs at -vv and above.
func (l *Logger) Debug(msg string, kv ...any) {
	if l.level >= LevelDebug {
		l.write("debug", msg, kv)
	}
}

// Trace writes a message with key-value pairs at -vvv.
func (l *Logger) Trace(msg string, kv ...any) {
	if l.level >= LevelTrace {
		l.write("trace", msg, kv)
	}
}

func (l *Logger) write(prefix, msg string, kv []any) {
	var b strings.Builder
	b.WriteString(prefix)
	b.WriteString(": ")
	b.WriteString(msg)
	for i := 0; i+1 < len(kv); i += 2 {
		fmt.Fprintf(&b, " %v=%v", kv[i], kv[i+1])
	}
	fmt.Fprintln(l.out, b.String())
}

// Level returns the configured verbosity level.
func (l *Logger) Level() int {
	return l.level
}

// Verbose returns true if verbosity is -v or higher.
func (l *Logger) Verbose() bool {
	return l.level >= LevelVerbose
}

// Writer returns the underlying writer.
func (l *Logger) Writer() io.Writer {
	return l.out
}
