package interfaces

import "context"

// MailMessage is a single HTML email routed through an SMTP relay.
type MailMessage struct {
	Host    string
	Port    int
	Secure  bool
	User    string
	Pass    string
	From    string
	To      string
	Subject string
	HTML    string
}

type Mailer interface {
	Send(ctx context.Context, msg MailMessage) error
}
