// Package notify delivers end-of-build notifications.
//
// The only implementation is SMTP mail, configured through the global
// `email` setting: `address[;host:port]`, defaulting to port 25 on the
// address's own domain when no relay is given.
package notify

import (
	"bytes"
	"context"
	"fmt"
	"net/smtp"
	"strings"
	"text/template"
	"time"

	"github.com/LowellDennis/bt/internal/supervise"
)

const defaultSMTPPort = "25"

// messageTemplate renders the full RFC 5322 message, headers included.
var messageTemplate = template.Must(template.New("mail").Parse(
	`From: {{.From}}
To: {{.To}}
Subject: bt: {{.Command}} {{.State}}

Command:  {{.Command}}
Result:   {{.State}}
Exit:     {{.ExitCode}}
Elapsed:  {{.Elapsed}}
Errors:   {{.Errors}}
Warnings: {{.Warnings}}
{{if .LogPath}}Log:      {{.LogPath}}
{{end}}`))

type messageData struct {
	From     string
	To       string
	Command  string
	State    string
	ExitCode int
	Elapsed  time.Duration
	Errors   int
	Warnings int
	LogPath  string
}

// Mailer sends session notifications over SMTP.
type Mailer struct {
	To   string
	Host string

	// send is smtp.SendMail unless a test swaps it out.
	send func(addr, from string, to []string, msg []byte) error
}

// ParseEmail builds a Mailer from the global `email` value. An empty
// value yields a nil Mailer (notifications off).
func ParseEmail(value string) (*Mailer, error) {
	if value == "" {
		return nil, nil
	}

	addr := value
	host := ""
	if before, after, found := strings.Cut(value, ";"); found {
		addr, host = before, after
	}

	at := strings.LastIndex(addr, "@")
	if at <= 0 || at == len(addr)-1 {
		return nil, fmt.Errorf("invalid email setting %q (want address[;host:port])", value)
	}
	if host == "" {
		host = addr[at+1:] + ":" + defaultSMTPPort
	} else if !strings.Contains(host, ":") {
		host += ":" + defaultSMTPPort
	}

	send := func(addr, from string, to []string, msg []byte) error {
		return smtp.SendMail(addr, nil, from, to, msg)
	}
	return &Mailer{To: addr, Host: host, send: send}, nil
}

// SessionFinished mails a one-screen summary of a finished session.
func (m *Mailer) SessionFinished(ctx context.Context, name string, s *supervise.Session) error {
	msg, err := m.render(name, s)
	if err != nil {
		return err
	}
	if err := m.send(m.Host, m.To, []string{m.To}, msg); err != nil {
		return fmt.Errorf("send notification: %w", err)
	}
	return nil
}

func (m *Mailer) render(name string, s *supervise.Session) ([]byte, error) {
	var buf bytes.Buffer
	err := messageTemplate.Execute(&buf, messageData{
		From:     m.To,
		To:       m.To,
		Command:  name,
		State:    s.State.String(),
		ExitCode: s.ExitCode,
		Elapsed:  s.Elapsed().Round(time.Second),
		Errors:   s.ErrorCount,
		Warnings: s.WarningCount,
		LogPath:  s.LogPath,
	})
	if err != nil {
		return nil, fmt.Errorf("render notification: %w", err)
	}
	return buf.Bytes(), nil
}
