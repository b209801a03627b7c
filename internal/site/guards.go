package site

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/goliatone/go-sitecms/internal/settings"
)

// keepPaymentSecret keeps the stored gateway secret when the submitted one
// is blank. The read and the write are not atomic.
func keepPaymentSecret(_ context.Context, current, next PaymentSettings) (PaymentSettings, error) {
	if strings.TrimSpace(next.KeySecret) == "" {
		next.KeySecret = current.KeySecret
	}
	return next, nil
}

// keepSMTPPassword applies the same rule to the SMTP password.
func keepSMTPPassword(_ context.Context, current, next EmailSettings) (EmailSettings, error) {
	if strings.TrimSpace(next.Password) == "" {
		next.Password = current.Password
	}
	return next, nil
}

// migrateEmail accepts ports stored as strings and drops unusable ones so
// the default port applies.
func migrateEmail(data map[string]any) {
	switch port := data["smtp_port"].(type) {
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(port)); err == nil && n > 0 {
			data["smtp_port"] = n
			return
		}
		delete(data, "smtp_port")
	case float64:
		if port <= 0 {
			delete(data, "smtp_port")
		}
	case nil:
		delete(data, "smtp_port")
	}
}

// redactedPayments hides the gateway secret from admin reads.
type redactedPayments struct{ settings.Module }

func (m redactedPayments) Load(ctx context.Context) (any, error) {
	value, err := m.Module.Load(ctx)
	return redactPayment(value), err
}

func (m redactedPayments) LoadOrDefault(ctx context.Context) any {
	return redactPayment(m.Module.LoadOrDefault(ctx))
}

func (m redactedPayments) Save(ctx context.Context, raw json.RawMessage) (any, error) {
	value, err := m.Module.Save(ctx, raw)
	return redactPayment(value), err
}

func (m redactedPayments) Defaults() any { return redactPayment(m.Module.Defaults()) }

func redactPayment(value any) any {
	if p, ok := value.(PaymentSettings); ok {
		p.KeySecret = ""
		return p
	}
	return value
}

// redactedEmail hides the SMTP password from admin reads.
type redactedEmail struct{ settings.Module }

func (m redactedEmail) Load(ctx context.Context) (any, error) {
	value, err := m.Module.Load(ctx)
	return redactEmail(value), err
}

func (m redactedEmail) LoadOrDefault(ctx context.Context) any {
	return redactEmail(m.Module.LoadOrDefault(ctx))
}

func (m redactedEmail) Save(ctx context.Context, raw json.RawMessage) (any, error) {
	value, err := m.Module.Save(ctx, raw)
	return redactEmail(value), err
}

func (m redactedEmail) Defaults() any { return redactEmail(m.Module.Defaults()) }

func redactEmail(value any) any {
	if e, ok := value.(EmailSettings); ok {
		return e.Redacted()
	}
	return value
}

// PublicPaymentConfig serves the checkout page. Store failures fall back to
// the defaults.
func (s *Site) PublicPaymentConfig(ctx context.Context) PublicPaymentConfig {
	return s.Payments.GetOrDefault(ctx).Public()
}
