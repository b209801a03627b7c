package notify

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"gopkg.in/gomail.v2"

	"github.com/goliatone/go-sitecms/internal/logging"
	"github.com/goliatone/go-sitecms/pkg/interfaces"
)

var ErrRelayIncomplete = errors.New("notify: smtp relay is not fully configured")

// SMTPMailer delivers messages through the relay named in each message.
type SMTPMailer struct {
	logger interfaces.Logger
	dial   func(d *gomail.Dialer, m *gomail.Message) error
}

var _ interfaces.Mailer = (*SMTPMailer)(nil)

type MailerOption func(*SMTPMailer)

func WithMailerLogger(logger interfaces.Logger) MailerOption {
	return func(m *SMTPMailer) {
		if logger != nil {
			m.logger = logger
		}
	}
}

func NewSMTPMailer(opts ...MailerOption) *SMTPMailer {
	m := &SMTPMailer{
		logger: logging.NoOp(),
		dial:   func(d *gomail.Dialer, msg *gomail.Message) error { return d.DialAndSend(msg) },
	}
	for _, opt := range opts {
		if opt != nil {
			opt(m)
		}
	}
	return m
}

// Send dials the relay and delivers msg. Secure selects implicit TLS.
func (s *SMTPMailer) Send(ctx context.Context, msg interfaces.MailMessage) error {
	if msg.Host == "" || msg.From == "" || msg.To == "" {
		return ErrRelayIncomplete
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", msg.From)
	m.SetHeader("To", msg.To)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/html", msg.HTML)

	d := gomail.NewDialer(msg.Host, msg.Port, msg.User, msg.Pass)
	d.SSL = msg.Secure

	done := make(chan error, 1)
	go func() { done <- s.dial(d, m) }()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-done:
		if err != nil {
			return fmt.Errorf("notify: send to %s: %w", msg.To, err)
		}
		s.logger.Debug("notify.mail.sent", "to", msg.To, "subject", msg.Subject)
		return nil
	}
}

// Outbox collects messages in memory instead of sending them.
type Outbox struct {
	mu       sync.Mutex
	messages []interfaces.MailMessage
	failWith error
}

var _ interfaces.Mailer = (*Outbox)(nil)

func NewOutbox() *Outbox { return &Outbox{} }

func (o *Outbox) Send(_ context.Context, msg interfaces.MailMessage) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.failWith != nil {
		return o.failWith
	}
	o.messages = append(o.messages, msg)
	return nil
}

// FailWith makes every Send return err until cleared with nil.
func (o *Outbox) FailWith(err error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.failWith = err
}

func (o *Outbox) Messages() []interfaces.MailMessage {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := make([]interfaces.MailMessage, len(o.messages))
	copy(out, o.messages)
	return out
}

// Relay is the SMTP configuration plus the display name used in From.
type Relay struct {
	Host     string
	Port     int
	User     string
	Password string
	Sender   string
	AppName  string
}

// Complete reports whether host, user, password and sender are all set.
func (r Relay) Complete() bool {
	return strings.TrimSpace(r.Host) != "" &&
		strings.TrimSpace(r.User) != "" &&
		r.Password != "" &&
		strings.TrimSpace(r.Sender) != ""
}

// Secure is true only for port 465.
func (r Relay) Secure() bool { return r.Port == 465 }

// From renders the sender as "App" <address>.
func (r Relay) From() string {
	if r.AppName == "" {
		return r.Sender
	}
	return fmt.Sprintf("%q <%s>", r.AppName, r.Sender)
}

// Message addresses an email through the relay.
func (r Relay) Message(to string, email Email) interfaces.MailMessage {
	return interfaces.MailMessage{
		Host:    r.Host,
		Port:    r.Port,
		Secure:  r.Secure(),
		User:    r.User,
		Pass:    r.Password,
		From:    r.From(),
		To:      to,
		Subject: email.Subject,
		HTML:    email.HTML,
	}
}
