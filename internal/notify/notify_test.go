package notify

import (
	"context"
	"errors"
	"strings"
	"testing"

	"gopkg.in/gomail.v2"

	"github.com/goliatone/go-sitecms/pkg/interfaces"
)

func TestFormatAmount(t *testing.T) {
	cases := map[float64]string{
		0:         "0",
		999:       "999",
		4999:      "4,999",
		1234567:   "1,234,567",
		14998.5:   "14,998.5",
		-2500.25:  "-2,500.25",
		100000.05: "100,000.05",
	}
	for in, want := range cases {
		if got := FormatAmount(in); got != want {
			t.Fatalf("FormatAmount(%v) = %q, want %q", in, got, want)
		}
	}
}

func TestRelay(t *testing.T) {
	relay := Relay{Host: "smtp.mail.test", Port: 465, User: "u", Password: "p", Sender: "no@mail.test", AppName: "Studio"}
	if !relay.Complete() || !relay.Secure() {
		t.Fatalf("expected complete secure relay")
	}
	if relay.From() != `"Studio" <no@mail.test>` {
		t.Fatalf("unexpected from %q", relay.From())
	}
	relay.Password = ""
	if relay.Complete() {
		t.Fatalf("relay without password must be incomplete")
	}
	relay.Port = 587
	if relay.Secure() {
		t.Fatalf("only port 465 is secure")
	}
}

func TestTemplatesEscapeUserInput(t *testing.T) {
	email, err := ContactAdminEmail(ContactDetails{AppName: "Studio", Name: "Eve", Email: "eve@x.test", Message: "<script>alert(1)</script>"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if email.Subject != "New Contact Form Submission from Eve" {
		t.Fatalf("unexpected subject %q", email.Subject)
	}
	if strings.Contains(email.HTML, "<script>") {
		t.Fatalf("user input must be escaped: %s", email.HTML)
	}
	if !strings.Contains(email.HTML, "Not provided") {
		t.Fatalf("expected phone fallback")
	}

	order, err := OrderCustomerEmail(OrderDetails{AppName: "Studio", CustomerName: "Ann", PlanTitle: "Basic", Amount: 4999, OrderID: "order_abc"})
	if err != nil {
		t.Fatalf("render order: %v", err)
	}
	if order.Subject != "Your Order Confirmation from Studio" || !strings.Contains(order.HTML, "₹4,999") {
		t.Fatalf("unexpected order email %+v", order)
	}
}

func TestSMTPMailerBuildsMessage(t *testing.T) {
	var gotDialer *gomail.Dialer
	var gotMessage *gomail.Message
	mailer := NewSMTPMailer()
	mailer.dial = func(d *gomail.Dialer, m *gomail.Message) error {
		gotDialer, gotMessage = d, m
		return nil
	}
	relay := Relay{Host: "smtp.mail.test", Port: 465, User: "u", Password: "p", Sender: "no@mail.test", AppName: "Studio"}
	if err := mailer.Send(context.Background(), relay.Message("ann@x.test", Email{Subject: "Hi", HTML: "<p>hi</p>"})); err != nil {
		t.Fatalf("send: %v", err)
	}
	if gotDialer.Host != "smtp.mail.test" || gotDialer.Port != 465 || !gotDialer.SSL {
		t.Fatalf("unexpected dialer %+v", gotDialer)
	}
	if to := gotMessage.GetHeader("To"); len(to) != 1 || to[0] != "ann@x.test" {
		t.Fatalf("unexpected recipients %v", to)
	}

	mailer.dial = func(*gomail.Dialer, *gomail.Message) error { return errors.New("refused") }
	if err := mailer.Send(context.Background(), relay.Message("ann@x.test", Email{})); err == nil {
		t.Fatalf("expected dial error")
	}
	if err := mailer.Send(context.Background(), interfaces.MailMessage{}); !errors.Is(err, ErrRelayIncomplete) {
		t.Fatalf("expected incomplete relay error, got %v", err)
	}
}

func TestOutbox(t *testing.T) {
	outbox := NewOutbox()
	_ = outbox.Send(context.Background(), interfaces.MailMessage{To: "a@x.test"})
	outbox.FailWith(errors.New("down"))
	if err := outbox.Send(context.Background(), interfaces.MailMessage{To: "b@x.test"}); err == nil {
		t.Fatalf("expected failure")
	}
	if msgs := outbox.Messages(); len(msgs) != 1 || msgs[0].To != "a@x.test" {
		t.Fatalf("unexpected outbox %+v", msgs)
	}
}
