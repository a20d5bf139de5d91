package service

import (
	"bytes"
	"fmt"
	"net/smtp"
	"text/template"

	"github.com/jordan-wright/email"

	"github.com/Dhruvp132/Dhyan-ecom/internal/apperr"
	"github.com/Dhruvp132/Dhyan-ecom/internal/entity"
)

// ContactMessage is one contact-form submission.
type ContactMessage struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

// Mailer sends the storefront's transactional email.
type Mailer interface {
	SendContact(msg ContactMessage) error
	SendOrderConfirmation(to string, order *entity.Order) error
}

// SMTPMailer delivers through a plain SMTP relay.
type SMTPMailer struct {
	host         string
	port         int
	username     string
	password     string
	contactEmail string
}

func NewSMTPMailer(host string, port int, username, password, contactEmail string) *SMTPMailer {
	if contactEmail == "" {
		contactEmail = username
	}
	return &SMTPMailer{
		host:         host,
		port:         port,
		username:     username,
		password:     password,
		contactEmail: contactEmail,
	}
}

var _ Mailer = (*SMTPMailer)(nil)

// SendContact forwards the submission to the shop inbox and sends the
// customer an acknowledgement.
func (m *SMTPMailer) SendContact(msg ContactMessage) error {
	if msg.Name == "" || msg.Email == "" || msg.Phone == "" || msg.Message == "" {
		return fmt.Errorf("%w: all fields are required", apperr.ErrInvalidInput)
	}

	admin := email.NewEmail()
	admin.From = fmt.Sprintf("Dhyan Ecom Contact <%s>", m.username)
	admin.ReplyTo = []string{msg.Email}
	admin.To = []string{m.contactEmail}
	admin.Subject = "New Contact Form Submission - Dhyan Ecom"
	admin.Text = []byte(msg.Message)
	body, err := renderTemplate(contactAdminTemplate, msg)
	if err != nil {
		return err
	}
	admin.HTML = body
	if err := m.send(admin); err != nil {
		return err
	}

	ack := email.NewEmail()
	ack.From = fmt.Sprintf("Dhyan Ecom <%s>", m.username)
	ack.To = []string{msg.Email}
	ack.Subject = "We received your message - Dhyan Ecom"
	body, err = renderTemplate(contactAckTemplate, msg)
	if err != nil {
		return err
	}
	ack.HTML = body
	return m.send(ack)
}

// SendOrderConfirmation mails the order summary after payment is confirmed.
func (m *SMTPMailer) SendOrderConfirmation(to string, order *entity.Order) error {
	e := email.NewEmail()
	e.From = fmt.Sprintf("Dhyan Ecom <%s>", m.username)
	e.To = []string{to}
	e.Subject = fmt.Sprintf("Your order %s is confirmed - Dhyan Ecom", order.OrderNumber)
	body, err := renderTemplate(orderConfirmationTemplate, order)
	if err != nil {
		return err
	}
	e.HTML = body
	return m.send(e)
}

func (m *SMTPMailer) send(e *email.Email) error {
	addr := fmt.Sprintf("%s:%d", m.host, m.port)
	return e.Send(addr, smtp.PlainAuth("", m.username, m.password, m.host))
}

func renderTemplate(tmpl *template.Template, data interface{}) ([]byte, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to render email template: %w", err)
	}
	return buf.Bytes(), nil
}

var contactAdminTemplate = template.Must(template.New("contactAdmin").Parse(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2>New Contact Form Submission</h2>
  <p><strong>Name:</strong> {{.Name}}</p>
  <p><strong>Email:</strong> <a href="mailto:{{.Email}}">{{.Email}}</a></p>
  <p><strong>Phone:</strong> {{.Phone}}</p>
  <div style="background-color: #f9fafb; padding: 15px; border-radius: 8px;">
    <p><strong>Message:</strong></p>
    <p>{{.Message}}</p>
  </div>
</div>
`))

var contactAckTemplate = template.Must(template.New("contactAck").Parse(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2>Thank You for Contacting Us!</h2>
  <p>Hi <strong>{{.Name}}</strong>,</p>
  <p>We have received your message and will get back to you as soon as possible.</p>
  <div style="background-color: #f9fafb; padding: 15px; border-radius: 8px;">
    <p><strong>Your Message:</strong></p>
    <p>{{.Message}}</p>
  </div>
  <p>Best regards,<br/><strong>Dhyan Ecom Team</strong></p>
</div>
`))

var orderConfirmationTemplate = template.Must(template.New("orderConfirmation").Parse(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2>Order Confirmed</h2>
  <p>Your order <strong>{{.OrderNumber}}</strong> has been placed successfully.</p>
  <p>Total: <strong>{{.TotalAmount}}</strong></p>
  <p>We will let you know when it ships.</p>
  <p>Best regards,<br/><strong>Dhyan Ecom Team</strong></p>
</div>
`))
