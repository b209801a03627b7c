package notify

import (
	"bytes"
	"fmt"
	"html/template"
	"math"
	"strconv"
	"strings"
)

// Email is a rendered subject and HTML body.
type Email struct {
	Subject string
	HTML    string
}

// OrderDetails feeds the order notification templates.
type OrderDetails struct {
	AppName       string
	CustomerName  string
	CustomerEmail string
	PlanTitle     string
	Amount        float64
	OrderID       string
}

// ContactDetails feeds the contact form templates.
type ContactDetails struct {
	AppName      string
	Name         string
	Email        string
	Phone        string
	Budget       string
	Message      string
	ContactPhone string
}

var funcs = template.FuncMap{
	"amount":   FormatAmount,
	"fallback": fallback,
}

var templates = template.Must(template.New("notify").Funcs(funcs).Parse(`
{{define "order_admin"}}<div style="font-family: Arial, sans-serif; line-height: 1.6;">
  <h2 style="color: #333;">New Order Notification</h2>
  <p>A new order has been placed on your website.</p>
  <hr>
  <p><strong>Customer Name:</strong> {{.CustomerName}}</p>
  <p><strong>Customer Email:</strong> <a href="mailto:{{.CustomerEmail}}">{{.CustomerEmail}}</a></p>
  <p><strong>Plan Purchased:</strong> {{.PlanTitle}}</p>
  <p><strong>Amount:</strong> ₹{{amount .Amount}}</p>
  <p><strong>Razorpay Order ID:</strong> {{.OrderID}}</p>
  <hr>
  <p style="font-size: 0.9em; color: #888;">This email was sent from the automated system on {{.AppName}}.</p>
</div>{{end}}
{{define "order_customer"}}<div style="font-family: Arial, sans-serif; line-height: 1.6;">
  <h2 style="color: #333;">Thank You For Your Order, {{.CustomerName}}!</h2>
  <p>We have successfully received your payment. Here are the details of your purchase:</p>
  <div style="padding: 15px; border: 1px solid #ddd; border-radius: 5px; background-color: #f9f9f9;">
    <p><strong>Plan:</strong> {{.PlanTitle}}</p>
    <p><strong>Amount Paid:</strong> ₹{{amount .Amount}}</p>
    <p><strong>Order ID:</strong> {{.OrderID}}</p>
  </div>
  <hr style="margin: 20px 0;">
  <p>We will get started on your project right away. If you have any questions, please feel free to contact us.</p>
  <p>Best Regards,</p>
  <p><strong>The {{.AppName}} Team</strong></p>
</div>{{end}}
{{define "contact_admin"}}<div style="font-family: Arial, sans-serif; line-height: 1.6;">
  <h2 style="color: #333;">New Contact Form Submission</h2>
  <p>You have received a new message from your website's contact form.</p>
  <hr>
  <p><strong>Name:</strong> {{.Name}}</p>
  <p><strong>Email:</strong> <a href="mailto:{{.Email}}">{{.Email}}</a></p>
  <p><strong>Phone:</strong> {{fallback .Phone}}</p>
  <p><strong>Budget:</strong> {{fallback .Budget}}</p>
  <h3 style="color: #555;">Message:</h3>
  <p style="padding: 10px; border-left: 4px solid #ccc; background-color: #f9f9f9;">{{.Message}}</p>
  <hr>
  <p style="font-size: 0.9em; color: #888;">This email was sent from the contact form on {{.AppName}}.</p>
</div>{{end}}
{{define "contact_customer"}}<div style="font-family: Arial, sans-serif; line-height: 1.6;">
  <h2 style="color: #333;">Thank You For Your Message, {{.Name}}!</h2>
  <p>We have successfully received your message and appreciate you reaching out to us.</p>
  <p>One of our team members will review your inquiry and get back to you as soon as possible, typically within 24-48 hours.</p>
  <h3 style="color: #555;">Here is a copy of your message:</h3>
  <div style="padding: 15px; border: 1px solid #ddd; border-radius: 5px; background-color: #f9f9f9;">
    <p><strong>Name:</strong> {{.Name}}</p>
    <p><strong>Email:</strong> {{.Email}}</p>
    <p><strong>Phone:</strong> {{fallback .Phone}}</p>
    <p><strong>Budget:</strong> {{fallback .Budget}}</p>
    <p><strong>Message:</strong></p>
    <p><em>{{.Message}}</em></p>
  </div>
  <hr style="margin: 20px 0;">
  <p>If your matter is urgent, please feel free to call us directly at {{.ContactPhone}}.</p>
  <p>Best Regards,</p>
  <p><strong>The {{.AppName}} Team</strong></p>
</div>{{end}}
`))

func OrderAdminEmail(d OrderDetails) (Email, error) {
	return render("order_admin", "New Order Received - "+d.PlanTitle, d)
}

func OrderCustomerEmail(d OrderDetails) (Email, error) {
	return render("order_customer", "Your Order Confirmation from "+d.AppName, d)
}

func ContactAdminEmail(d ContactDetails) (Email, error) {
	return render("contact_admin", "New Contact Form Submission from "+d.Name, d)
}

func ContactCustomerEmail(d ContactDetails) (Email, error) {
	return render("contact_customer", "Thank you for contacting "+d.AppName, d)
}

func render(name, subject string, data any) (Email, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return Email{}, fmt.Errorf("notify: render %s: %w", name, err)
	}
	return Email{Subject: subject, HTML: buf.String()}, nil
}

// FormatAmount groups thousands with commas and keeps up to two decimals,
// 14998.5 renders as 14,998.5.
func FormatAmount(amount float64) string {
	negative := amount < 0
	cents := int64(math.Round(math.Abs(amount) * 100))
	whole := strconv.FormatInt(cents/100, 10)

	var b strings.Builder
	if negative {
		b.WriteByte('-')
	}
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if frac := cents % 100; frac != 0 {
		decimals := strings.TrimRight(fmt.Sprintf("%02d", frac), "0")
		b.WriteString("." + decimals)
	}
	return b.String()
}

func fallback(value string) string {
	if strings.TrimSpace(value) == "" {
		return "Not provided"
	}
	return value
}
