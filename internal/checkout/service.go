package checkout

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/goliatone/go-sitecms/internal/logging"
	"github.com/goliatone/go-sitecms/internal/notify"
	"github.com/goliatone/go-sitecms/internal/settings"
	"github.com/goliatone/go-sitecms/internal/site"
	"github.com/goliatone/go-sitecms/pkg/interfaces"
)

const (
	Currency      = "INR"
	receiptPrefix = "receipt_order_"
	contentType   = "checkout"
)

// Payload is the client callback after the external payment UI closes.
type Payload struct {
	CustomerName      string  `json:"customer_name"`
	CustomerEmail     string  `json:"customer_email"`
	PlanTitle         string  `json:"plan_title"`
	Amount            float64 `json:"amount"`
	RazorpayPaymentID string  `json:"razorpay_payment_id"`
	RazorpayOrderID   string  `json:"razorpay_order_id"`
	RazorpaySignature string  `json:"razorpay_signature,omitempty"`
	Status            string  `json:"status"`
}

func (p Payload) order() site.Order {
	return site.Order{
		CustomerName:      strings.TrimSpace(p.CustomerName),
		CustomerEmail:     strings.TrimSpace(p.CustomerEmail),
		PlanTitle:         strings.TrimSpace(p.PlanTitle),
		Amount:            p.Amount,
		RazorpayPaymentID: strings.TrimSpace(p.RazorpayPaymentID),
		RazorpayOrderID:   strings.TrimSpace(p.RazorpayOrderID),
		RazorpaySignature: strings.TrimSpace(p.RazorpaySignature),
		Status:            strings.TrimSpace(p.Status),
	}
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

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithAppName overrides the sender display name in receipts.
func WithAppName(name string) Option {
	return func(s *Service) { s.appName = name }
}

// Service creates gateway orders and records the outcome of each checkout.
type Service struct {
	site     *site.Site
	gateways interfaces.PaymentGatewayFactory
	mailer   interfaces.Mailer
	logger   interfaces.Logger
	now      func() time.Time
	appName  string
}

func NewService(s *site.Site, gateways interfaces.PaymentGatewayFactory, opts ...Option) *Service {
	if s == nil {
		panic("checkout: site is required")
	}
	if gateways == nil {
		panic("checkout: gateway factory is required")
	}
	svc := &Service{
		site:     s,
		gateways: gateways,
		logger:   logging.NoOp(),
		now:      time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(svc)
		}
	}
	return svc
}

// CreateOrder requests a remote order for amount, in major currency units,
// with auto capture.
func (s *Service) CreateOrder(ctx context.Context, amount float64) (interfaces.GatewayOrder, error) {
	if amount <= 0 || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return interfaces.GatewayOrder{}, ErrInvalidAmount
	}
	cfg, err := s.site.Payments.Get(ctx)
	if err != nil {
		s.logger.Error("checkout.order.settings_failed", "error", err)
		return interfaces.GatewayOrder{}, err
	}
	if !cfg.EnableOnlinePayments {
		return interfaces.GatewayOrder{}, &ConfigurationError{Reason: "Online payments are disabled."}
	}
	if !cfg.Configured() {
		return interfaces.GatewayOrder{}, &ConfigurationError{Reason: "Razorpay credentials are not configured."}
	}

	req := interfaces.GatewayOrderRequest{
		AmountMinor: int64(math.Round(amount * 100)),
		Currency:    Currency,
		Receipt:     fmt.Sprintf("%s%d", receiptPrefix, s.now().UnixMilli()),
		AutoCapture: true,
	}
	order, err := s.gateways(cfg.KeyID, cfg.KeySecret).CreateOrder(ctx, req)
	if err != nil {
		s.logger.Error("checkout.order.gateway_failed", "receipt", req.Receipt, "error", err)
		return interfaces.GatewayOrder{}, &GatewayError{Err: err}
	}
	if order.ID == "" {
		return interfaces.GatewayOrder{}, &GatewayError{Err: ErrEmptyOrder}
	}
	s.logger.Info("checkout.order.created", "order_id", order.ID, "amount_minor", order.Amount)
	return order, nil
}

// VerifyAndSave records the outcome of a checkout. Completed payments must
// carry a valid gateway signature or nothing is written. Receipts are sent
// after the order is stored and never affect the result.
func (s *Service) VerifyAndSave(ctx context.Context, payload Payload) (site.Order, error) {
	order := payload.order()
	if err := order.Validate(); err != nil {
		return order, settings.ValidationIssues(contentType, err)
	}

	if order.Status == site.OrderCompleted {
		if err := s.verify(ctx, order); err != nil {
			return order, err
		}
	} else {
		order.RazorpaySignature = ""
	}

	saved, err := s.site.Orders.Create(ctx, order)
	if err != nil {
		s.logger.Error("checkout.order.save_failed", "order_id", order.RazorpayOrderID, "error", err)
		return order, err
	}
	s.logger.Info("checkout.order.verified", "order_id", saved.RazorpayOrderID, "status", saved.Status)

	if saved.Status == site.OrderCompleted {
		s.sendReceipts(ctx, saved)
	}
	return saved, nil
}

func (s *Service) verify(ctx context.Context, order site.Order) error {
	cfg, err := s.site.Payments.Get(ctx)
	if err != nil {
		return err
	}
	if cfg.KeySecret == "" {
		return &ConfigurationError{Reason: "Payment secret not configured."}
	}
	if order.RazorpaySignature == "" {
		s.logger.Warn("checkout.order.signature_missing", "order_id", order.RazorpayOrderID)
		return &VerificationError{OrderID: order.RazorpayOrderID, Reason: "missing signature"}
	}
	if !VerifySignature(cfg.KeySecret, order.RazorpayOrderID, order.RazorpayPaymentID, order.RazorpaySignature) {
		s.logger.Warn("checkout.order.signature_mismatch", "order_id", order.RazorpayOrderID)
		return &VerificationError{OrderID: order.RazorpayOrderID, Reason: "signature mismatch"}
	}
	return nil
}

func (s *Service) sendReceipts(ctx context.Context, order site.Order) {
	if s.mailer == nil {
		return
	}
	relay, adminInbox, err := s.site.MailRelay(ctx, s.appName)
	if err != nil {
		if errors.Is(err, notify.ErrRelayIncomplete) {
			s.logger.Warn("checkout.email.skipped", "reason", "smtp settings incomplete")
			return
		}
		s.logger.Error("checkout.email.failed", "error", err)
		return
	}
	details := notify.OrderDetails{
		AppName:       relay.AppName,
		CustomerName:  order.CustomerName,
		CustomerEmail: order.CustomerEmail,
		PlanTitle:     order.PlanTitle,
		Amount:        order.Amount,
		OrderID:       order.RazorpayOrderID,
	}

	admin, err := notify.OrderAdminEmail(details)
	if err == nil {
		err = s.mailer.Send(ctx, relay.Message(adminInbox, admin))
	}
	if err != nil {
		s.logger.Error("checkout.email.failed", "recipient", "admin", "error", err)
	}

	receipt, err := notify.OrderCustomerEmail(details)
	if err == nil {
		err = s.mailer.Send(ctx, relay.Message(order.CustomerEmail, receipt))
	}
	if err != nil {
		s.logger.Error("checkout.email.failed", "recipient", "customer", "error", err)
	}
}

// Orders lists recorded checkouts newest first.
func (s *Service) Orders(ctx context.Context) ([]site.Order, error) {
	return s.site.Orders.List(ctx)
}

func (s *Service) DeleteOrder(ctx context.Context, id string) error {
	return s.site.Orders.Delete(ctx, id)
}
