package supervise

import (
	"regexp"
	"strconv"
	"time"
)

// Progress is one parsed progress line:
//
//	<mm:ss>, <unit>:<lines>/<total> <bar> <pct>%, Error <n>
type Progress struct {
	Elapsed    time.Duration
	UnitCount  int
	LineCount  int
	TotalLines int
	Percent    int
	ErrorCount int
}

// Severity classifies a diagnostic line.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
)

func (s Severity) String() string {
	if s == SeverityWarning {
		return "warning"
	}
	return "error"
}

// Diagnostic is one parsed tool diagnostic:
//
//	<path>(<line>): error|warning <CODE>: <message>
//
// Line is 1-based as printed by the tool; presentation layers that need
// 0-based positions use ZeroBasedLine.
type Diagnostic struct {
	Path     string
	Line     int
	Severity Severity
	Code     string
	Message  string
}

// ZeroBasedLine converts to the 0-based position problem reports use.
func (d Diagnostic) ZeroBasedLine() int {
	return d.Line - 1
}

var (
	progressPattern   = regexp.MustCompile(`^(\d+):(\d{2}),\s*(\d+):(\d+)/(\d+)\s+\S+\s+(\d+)%,\s*Error\s+(\d+)\s*$`)
	diagnosticPattern = regexp.MustCompile(`^(\S+)\((\d+)\):\s+(error|warning)\s+(\S+):\s+(.*)$`)
)

// ParseProgress parses a progress line; ok is false for anything else.
func ParseProgress(line string) (Progress, bool) {
	m := progressPattern.FindStringSubmatch(line)
	if m == nil {
		return Progress{}, false
	}
	min := atoi(m[1])
	sec := atoi(m[2])
	return Progress{
		Elapsed:    time.Duration(min)*time.Minute + time.Duration(sec)*time.Second,
		UnitCount:  atoi(m[3]),
		LineCount:  atoi(m[4]),
		TotalLines: atoi(m[5]),
		Percent:    atoi(m[6]),
		ErrorCount: atoi(m[7]),
	}, true
}

// ParseDiagnostic parses a diagnostic line; ok is false for anything else.
func ParseDiagnostic(line string) (Diagnostic, bool) {
	m := diagnosticPattern.FindStringSubmatch(line)
	if m == nil {
		return Diagnostic{}, false
	}
	sev := SeverityError
	if m[3] == "warning" {
		sev = SeverityWarning
	}
	return Diagnostic{
		Path:     m[1],
		Line:     atoi(m[2]),
		Severity: sev,
		Code:     m[4],
		Message:  m[5],
	}, true
}

// atoi is for regexp-validated digit runs only.
func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
