// Package output provides context-aware output for bt.
// Stdout is used for primary data output (tables, paths, listings).
// Stderr (via log package) is used for diagnostics.
package output

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
)

type ctxKey struct{}

// Printer writes primary output (data, tables, paths) to stdout.
type Printer struct {
	w io.Writer
}

// New creates a new Printer writing to the given writer.
func New(w io.Writer) *Printer {
	return &Printer{w: w}
}

// WithPrinter attaches a Printer to the context.
func WithPrinter(ctx context.Context, w io.Writer) context.Context {
	return context.WithValue(ctx, ctxKey{}, &Printer{w: w})
}

// FromContext retrieves the Printer from context.
// Returns a Printer writing to os.Stdout if none is attached.
func FromContext(ctx context.Context) *Printer {
	if p, ok := ctx.Value(ctxKey{}).(*Printer); ok {
		return p
	}
	return &Printer{w: os.Stdout}
}

// Print writes output without a newline.
func (p *Printer) Print(a ...any) {
	fmt.Fprint(p.w, a...)
}

// Printf writes formatted output.
func (p *Printer) Printf(format string, a ...any) {
	fmt.Fprintf(p.w, format, a...)
}

// Println writes a line of output.
func (p *Printer) Println(a ...any) {
	fmt.Fprintln(p.w, a...)
}

// Announce frames a message so it stands out in build output:
//
//	**************************
//	*** Build Passed!      ***
//	**************************
//
// The surrounding character is configurable; build summaries use '*' for
// success and '!' for failure.
func (p *Printer) Announce(message string, char byte) {
	edge := strings.Repeat(string(char), len(message)+8)
	side := strings.Repeat(string(char), 3)
	fmt.Fprintln(p.w, edge)
	fmt.Fprintf(p.w, "%s %s %s\n", side, message, side)
	fmt.Fprintln(p.w, edge)
}

// Writer returns the underlying writer.
func (p *Printer) Writer() io.Writer {
	return p.w
}
