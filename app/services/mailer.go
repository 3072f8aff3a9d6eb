package services

import (
	"context"
	"fmt"
	"html"
	"log"
	"net/smtp"
	"strings"

	"github.com/Rakhulsr/go-ecommerce-api/app/models"
	"github.com/Rakhulsr/go-ecommerce-api/app/utils/format"
)

type Config struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
}

type Mailer struct {
	config Config
}

func NewMailer(cfg Config) *Mailer {
	return &Mailer{
		config: cfg,
	}
}

func (m *Mailer) SendHTMLEmail(to, subject, htmlBody string) error {
	headers := [][2]string{
		{"From", m.config.From},
		{"To", to},
		{"Subject", subject},
		{"MIME-Version", "1.0"},
		{"Content-Type", "text/html; charset=\"UTF-8\""},
	}

	var msg strings.Builder
	for _, h := range headers {
		fmt.Fprintf(&msg, "%s: %s\r\n", h[0], h[1])
	}
	msg.WriteString("\r\n" + htmlBody)

	auth := smtp.PlainAuth("", m.config.Username, m.config.Password, m.config.Host)
	addr := fmt.Sprintf("%s:%s", m.config.Host, m.config.Port)

	if err := smtp.SendMail(addr, auth, m.config.From, []string{to}, []byte(msg.String())); err != nil {
		log.Printf("Mailer.SendHTMLEmail: failed to send to %s: %v", to, err)
		return fmt.Errorf("failed to send html email: %w", err)
	}
	return nil
}

// OrderNotifier tells customers about their orders. Delivery is best effort;
// callers log failures and carry on.
type OrderNotifier interface {
	OrderPlaced(ctx context.Context, email string, order *models.Order) error
	OrderStatusChanged(ctx context.Context, email string, order *models.Order) error
}

type NopNotifier struct{}

func (NopNotifier) OrderPlaced(context.Context, string, *models.Order) error        { return nil }
func (NopNotifier) OrderStatusChanged(context.Context, string, *models.Order) error { return nil }

type MailNotifier struct {
	mailer *Mailer
}

func NewMailNotifier(mailer *Mailer) *MailNotifier {
	return &MailNotifier{mailer: mailer}
}

func (n *MailNotifier) OrderPlaced(_ context.Context, email string, order *models.Order) error {
	subject := fmt.Sprintf("Order %s received", order.ID)
	return n.mailer.SendHTMLEmail(email, subject, BuildOrderPlacedEmailBody(order))
}

func (n *MailNotifier) OrderStatusChanged(_ context.Context, email string, order *models.Order) error {
	subject := fmt.Sprintf("Order %s is now %s", order.ID, order.Status)
	return n.mailer.SendHTMLEmail(email, subject, BuildOrderStatusEmailBody(order))
}

func BuildOrderPlacedEmailBody(order *models.Order) string {
	return fmt.Sprintf(`
        <!DOCTYPE html>
        <html>
        <head><meta charset="utf-8"><title>Order received</title></head>
        <body style="font-family: Arial, sans-serif; color: #333;">
            <h2>Thanks for your order</h2>
            <p>Order <strong>%s</strong> with %d item(s) was placed on %s.</p>
            <p>Total: <strong>%s</strong></p>
            <p>Shipping to: %s</p>
        </body>
        </html>
    `, order.ID, len(order.OrderItems), order.OrderDate.Format("2006-01-02 15:04"), format.Money(order.Total), html.EscapeString(order.ShippingAddress))
}

func BuildOrderStatusEmailBody(order *models.Order) string {
	return fmt.Sprintf(`
        <!DOCTYPE html>
        <html>
        <head><meta charset="utf-8"><title>Order update</title></head>
        <body style="font-family: Arial, sans-serif; color: #333;">
            <h2>Your order was updated</h2>
            <p>Order <strong>%s</strong> is now <strong>%s</strong>.</p>
            <p>Total: %s</p>
        </body>
        </html>
    `, order.ID, order.Status, format.Money(order.Total))
}
