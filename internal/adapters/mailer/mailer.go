// Package mailer delivers generated report files by email.
//
// The message is a plain multipart/mixed MIME message with the report
// attached, sent over SMTP with STARTTLS. There is no mail library in use
// anywhere in this codebase's stack; net/smtp covers the whole need.
package mailer

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"log/slog"
	"mime/multipart"
	"net/smtp"
	"net/textproto"
	"os"
	"path/filepath"

	"github.com/IvanArsenev/report-generator/internal/infrastructure/config"
)

const (
	subject  = "Rent payment report"
	bodyText = "The rent payment report is attached."
)

// Mailer sends report files to a configured recipient.
type Mailer struct {
	cfg    config.EmailConfig
	logger *slog.Logger
}

// New creates a mailer from email configuration.
func New(cfg config.EmailConfig, logger *slog.Logger) *Mailer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Mailer{cfg: cfg, logger: logger}
}

// SendReport emails the file at path as an attachment and returns the
// recipient address.
func (m *Mailer) SendReport(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read report: %w", err)
	}

	msg, err := buildMessage(m.cfg.From, m.cfg.To, filepath.Base(path), data)
	if err != nil {
		return "", fmt.Errorf("build message: %w", err)
	}

	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)
	auth := smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)

	m.logger.Debug("Sending report", "to", m.cfg.To, "host", addr)
	if err := smtp.SendMail(addr, auth, m.cfg.From, []string{m.cfg.To}, msg); err != nil {
		return "", fmt.Errorf("send mail: %w", err)
	}
	return m.cfg.To, nil
}

// buildMessage assembles a multipart/mixed message with a text body and one
// CSV attachment.
func buildMessage(from, to, filename string, attachment []byte) ([]byte, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	fmt.Fprintf(&buf, "From: %s\r\n", from)
	fmt.Fprintf(&buf, "To: %s\r\n", to)
	fmt.Fprintf(&buf, "Subject: %s\r\n", subject)
	fmt.Fprintf(&buf, "MIME-Version: 1.0\r\n")
	fmt.Fprintf(&buf, "Content-Type: multipart/mixed; boundary=%q\r\n", mw.Boundary())
	fmt.Fprintf(&buf, "\r\n")

	body, err := mw.CreatePart(textproto.MIMEHeader{
		"Content-Type": {"text/plain; charset=utf-8"},
	})
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(body, "%s\r\n", bodyText)

	part, err := mw.CreatePart(textproto.MIMEHeader{
		"Content-Type":              {"text/csv; charset=utf-8"},
		"Content-Transfer-Encoding": {"base64"},
		"Content-Disposition":       {fmt.Sprintf("attachment; filename=%q", filename)},
	})
	if err != nil {
		return nil, err
	}

	enc := base64.NewEncoder(base64.StdEncoding, part)
	if _, err := enc.Write(attachment); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}

	if err := mw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
