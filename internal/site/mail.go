package site

import (
	"context"
	"strings"

	"github.com/goliatone/go-sitecms/internal/notify"
)

// AppName is the display name used in notification emails: the configured
// override, else the general website name.
func (s *Site) AppName(ctx context.Context, override string) string {
	if name := strings.TrimSpace(override); name != "" {
		return name
	}
	if name := strings.TrimSpace(s.General.GetOrDefault(ctx).WebsiteName); name != "" {
		return name
	}
	return DefaultSiteName
}

// MailRelay resolves the SMTP relay and the admin inbox from the email and
// contact settings. It fails with notify.ErrRelayIncomplete when any relay
// field is missing.
func (s *Site) MailRelay(ctx context.Context, appName string) (notify.Relay, string, error) {
	cfg, err := s.Email.Get(ctx)
	if err != nil {
		return notify.Relay{}, "", err
	}
	relay := notify.Relay{
		Host:     cfg.Host,
		Port:     cfg.Port,
		User:     cfg.User,
		Password: cfg.Password,
		Sender:   cfg.SenderEmail,
		AppName:  s.AppName(ctx, appName),
	}
	if !relay.Complete() {
		return relay, "", notify.ErrRelayIncomplete
	}
	return relay, s.Contact.GetOrDefault(ctx).Email, nil
}
