package ui

import (
	"fmt"
	"io"
	"os"
	"time"

	"charm.land/bubbles/v2/progress"
	"github.com/charmbracelet/colorprofile"
	"github.com/mattn/go-isatty"

	"github.com/LowellDennis/bt/internal/ui/styles"
)

// ProgressLine renders an in-place build progress line on stderr. On a
// non-terminal stderr it renders nothing, so logs and CI output stay
// free of control sequences.
type ProgressLine struct {
	out     io.Writer
	bar     progress.Model
	enabled bool
	active  bool
}

// NewProgressLine builds a renderer bound to stderr.
func NewProgressLine() *ProgressLine {
	return &ProgressLine{
		// The colorprofile writer downsamples colors to what the
		// terminal supports.
		out: colorprofile.NewWriter(os.Stderr, os.Environ()),
		bar: progress.New(
			progress.WithWidth(30),
			progress.WithoutPercentage(),
			progress.WithColors(styles.Primary, styles.Accent),
		),
		enabled: isatty.IsTerminal(os.Stderr.Fd()),
	}
}

// Update redraws the line with current counters.
func (p *ProgressLine) Update(elapsed time.Duration, unit, percent, errorCount int) {
	if !p.enabled {
		return
	}
	p.active = true

	errText := fmt.Sprintf("errors %d", errorCount)
	if errorCount > 0 {
		errText = styles.ErrorStyle.Render(errText)
	}
	mm := int(elapsed.Minutes())
	ss := int(elapsed.Seconds()) % 60
	fmt.Fprintf(p.out, "\r\033[K%02d:%02d %s %3d%% unit %d, %s",
		mm, ss, p.bar.ViewAs(float64(percent)/100), percent, unit, errText)
}

// Clear erases the line so following output starts on a clean row.
func (p *ProgressLine) Clear() {
	if !p.active {
		return
	}
	p.active = false
	fmt.Fprint(p.out, "\r\033[K")
}
