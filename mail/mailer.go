package mail

import (
	"fmt"
	"html"
	"log"
	"strings"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
)

// Mailer sends storefront notification mail through SendGrid. Without an API
// key it degrades to logging the message, which keeps local development and
// tests free of outbound mail.
type Mailer struct {
	apiKey string
	from   string
}

func NewMailer(apiKey, from string) *Mailer {
	if from == "" {
		from = "noreply@shop.com"
	}
	return &Mailer{apiKey: apiKey, from: from}
}

// OrderItem is one confirmation line.
type OrderItem struct {
	Name     string
	Quantity int
	Price    float64
}

// SendOrderConfirmation mails an order summary rendered from the cart lines.
func (m *Mailer) SendOrderConfirmation(to, customer string, items []OrderItem, total float64) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Hi %s,\n\nThanks for your order:\n\n", customer)
	for _, it := range items {
		fmt.Fprintf(&b, "  %dx %s - $%.2f\n", it.Quantity, it.Name, it.Price*float64(it.Quantity))
	}
	fmt.Fprintf(&b, "\nTotal: $%.2f\n", total)

	return m.send(to, "Order confirmation", b.String())
}

func (m *Mailer) send(to, subject, body string) error {
	if m.apiKey == "" {
		log.Printf("📧 mail (mock) to=%s subject=%q", to, subject)
		return nil
	}

	from := sgmail.NewEmail("Mini Ecommerce", m.from)
	message := sgmail.NewSingleEmail(
		from,
		subject,
		sgmail.NewEmail("", to),
		body,
		"<pre>"+html.EscapeString(body)+"</pre>",
	)

	response, err := sendgrid.NewSendClient(m.apiKey).Send(message)
	if err != nil {
		return fmt.Errorf("sendgrid send: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid send failed: status=%d body=%s", response.StatusCode, response.Body)
	}
	log.Printf("✅ mail sent to=%s subject=%q", to, subject)
	return nil
}
