// Package inquiries handles contact form submissions from the public site.
package inquiries

import (
	"context"
	"errors"
	"strings"

	"github.com/goliatone/go-sitecms/internal/logging"
	"github.com/goliatone/go-sitecms/internal/notify"
	"github.com/goliatone/go-sitecms/internal/settings"
	"github.com/goliatone/go-sitecms/internal/site"
	"github.com/goliatone/go-sitecms/pkg/interfaces"
)

const (
	MessageInvalidForm = "Invalid form data."
	MessageUnexpected  = "An unexpected error occurred."
)

// Form is the public contact form payload.
type Form struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone,omitempty"`
	Budget  string `json:"budget,omitempty"`
	Message string `json:"message"`
}

func (f Form) submission() site.Submission {
	return site.Submission{
		Name:    strings.TrimSpace(f.Name),
		Email:   strings.TrimSpace(f.Email),
		Phone:   optional(f.Phone),
		Budget:  optional(f.Budget),
		Message: strings.TrimSpace(f.Message),
	}
}

func optional(value string) *string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	return &value
}

type Option func(*Service)

func WithMailer(mailer interfaces.Mailer) Option {
	return func(s *Service) {
		if mailer != nil {
			s.mailer = mailer
		}
	}
}

func WithLogger(logger interfaces.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func WithAppName(name string) Option {
	return func(s *Service) { s.appName = name }
}

type Service struct {
	site    *site.Site
	mailer  interfaces.Mailer
	logger  interfaces.Logger
	appName string
}

func NewService(s *site.Site, opts ...Option) *Service {
	if s == nil {
		panic("inquiries: site is required")
	}
	svc := &Service{site: s, logger: logging.NoOp()}
	for _, opt := range opts {
		if opt != nil {
			opt(svc)
		}
	}
	return svc
}

// Submit stores the form and then notifies the admin and the sender. Mail
// failures are logged only.
func (s *Service) Submit(ctx context.Context, form Form) (site.Submission, error) {
	saved, err := s.site.Submissions.Create(ctx, form.submission())
	if err != nil {
		return saved, err
	}
	s.logger.Info("inquiries.submission.created", "id", saved.ID)
	s.notify(ctx, saved)
	return saved, nil
}

func (s *Service) List(ctx context.Context) ([]site.Submission, error) {
	return s.site.Submissions.List(ctx)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.site.Submissions.Delete(ctx, id)
}

func (s *Service) notify(ctx context.Context, sub site.Submission) {
	if s.mailer == nil {
		return
	}
	relay, adminInbox, err := s.site.MailRelay(ctx, s.appName)
	if err != nil {
		if errors.Is(err, notify.ErrRelayIncomplete) {
			s.logger.Warn("inquiries.email.skipped", "reason", "smtp settings incomplete")
			return
		}
		s.logger.Error("inquiries.email.failed", "error", err)
		return
	}
	details := notify.ContactDetails{
		AppName:      relay.AppName,
		Name:         sub.Name,
		Email:        sub.Email,
		Phone:        deref(sub.Phone),
		Budget:       deref(sub.Budget),
		Message:      sub.Message,
		ContactPhone: s.site.Contact.GetOrDefault(ctx).Phone,
	}

	admin, err := notify.ContactAdminEmail(details)
	if err == nil {
		err = s.mailer.Send(ctx, relay.Message(adminInbox, admin))
	}
	if err != nil {
		s.logger.Error("inquiries.email.failed", "recipient", "admin", "error", err)
	}
	reply, err := notify.ContactCustomerEmail(details)
	if err == nil {
		err = s.mailer.Send(ctx, relay.Message(sub.Email, reply))
	}
	if err != nil {
		s.logger.Error("inquiries.email.failed", "recipient", "sender", "error", err)
	}
}

// PublicMessage maps a submit error to the text shown on the contact page.
func PublicMessage(err error) string {
	if err == nil {
		return ""
	}
	var validationErr *settings.ValidationError
	if errors.As(err, &validationErr) {
		return MessageInvalidForm
	}
	return MessageUnexpected
}

func deref(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
