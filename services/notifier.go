package services

import (
	"context"
	"fmt"
	"html"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/waterlife-shop/waterlife-backend/config"
	"github.com/waterlife-shop/waterlife-backend/models"
)

// Notifier builds the shop's transactional emails and hands them to a Mailer.
type Notifier struct {
	mailer      Mailer
	shop        config.ShopConfig
	frontendURL string
	logger      *zap.Logger
}

func NewNotifier(mailer Mailer, shop config.ShopConfig, frontendURL string, logger *zap.Logger) *Notifier {
	return &Notifier{
		mailer:      mailer,
		shop:        shop,
		frontendURL: strings.TrimRight(frontendURL, "/"),
		logger:      logger.Named("notifier"),
	}
}

// QuoteStaffNotification tells the staff inbox about a new quote request, with
// the quote PDF attached.
func (n *Notifier) QuoteStaffNotification(ctx context.Context, order *models.Order, pdf []byte) error {
	c := order.Customer
	var details strings.Builder
	row := func(label, value string) {
		if value == "" {
			return
		}
		fmt.Fprintf(&details, `<tr><td style="padding: 4px 12px 4px 0; color: #5b6b73;">%s</td><td style="padding: 4px 0; color: #16323f;">%s</td></tr>`,
			label, html.EscapeString(value))
	}
	row("Klient", c.FullName())
	row("E-mail", c.Email)
	row("Telefon", c.Phone)
	row("Firma", deref(c.Company))
	row("NIP", deref(c.NIP))
	if order.IsGuest {
		row("Konto", "gość")
	} else {
		row("Konto", "zarejestrowany klient")
	}

	message := ""
	if m := deref(c.Message); m != "" {
		message = fmt.Sprintf(`<p style="margin: 16px 0 4px; font-weight: bold;">Wiadomość od klienta</p><p style="margin: 0; white-space: pre-line;">%s</p>`,
			html.EscapeString(m))
	}

	body := n.layout(
		fmt.Sprintf("Nowe zapytanie ofertowe %s", order.OrderNumber),
		fmt.Sprintf(`<table cellpadding="0" cellspacing="0" border="0" style="font-size: 14px;">%s</table>%s%s`,
			details.String(), message, itemsTable(order)),
	)

	email := Email{
		To:      []string{n.shop.StaffEmail},
		ReplyTo: c.Email,
		Subject: fmt.Sprintf("Nowe zapytanie %s – %s", order.OrderNumber, c.FullName()),
		HTML:    body,
	}
	if len(pdf) > 0 {
		email.Attachments = []Attachment{{Filename: QuoteFilename(order), Content: pdf}}
	}
	return n.mailer.Send(ctx, email)
}

// QuoteConfirmation thanks the customer and repeats what they asked about.
func (n *Notifier) QuoteConfirmation(ctx context.Context, order *models.Order) error {
	c := order.Customer
	body := n.layout(
		"Dziękujemy za zapytanie",
		fmt.Sprintf(`<p>Dzień dobry %s,</p>
<p>otrzymaliśmy Twoje zapytanie ofertowe <strong>%s</strong>. Nasz doradca przygotuje wycenę i skontaktuje się z Tobą najszybciej, jak to możliwe.</p>%s
<p style="color: #5b6b73;">W razie pytań zadzwoń: %s</p>`,
			html.EscapeString(c.FirstName), order.OrderNumber, itemsTable(order), html.EscapeString(n.shop.Phone)),
	)
	return n.mailer.Send(ctx, Email{
		To:      []string{c.Email},
		ReplyTo: n.shop.StaffEmail,
		Subject: fmt.Sprintf("Potwierdzenie zapytania %s – %s", order.OrderNumber, n.shop.Name),
		HTML:    body,
	})
}

// PasswordReset sends the one-time reset link.
func (n *Notifier) PasswordReset(ctx context.Context, user *models.User, token string, ttl time.Duration) error {
	link := fmt.Sprintf("%s/nowe-haslo?token=%s", n.frontendURL, token)
	body := n.layout(
		"Resetowanie hasła",
		fmt.Sprintf(`<p>Dzień dobry %s,</p>
<p>otrzymaliśmy prośbę o zresetowanie hasła do Twojego konta.</p>
<p><a href="%s" style="display: inline-block; padding: 12px 24px; background: #0e7490; color: #ffffff; text-decoration: none; border-radius: 6px;">Ustaw nowe hasło</a></p>
<p style="color: #5b6b73;">Link jest ważny przez %d min. Jeśli to nie Ty, zignoruj tę wiadomość.</p>`,
			html.EscapeString(user.FirstName), html.EscapeString(link), int(ttl.Minutes())),
	)
	return n.mailer.Send(ctx, Email{
		To:      []string{user.Email},
		Subject: "Resetowanie hasła – " + n.shop.Name,
		HTML:    body,
	})
}

// ContactNotification forwards a contact form message to the staff inbox.
func (n *Notifier) ContactNotification(ctx context.Context, msg *models.ContactMessage) error {
	subject := deref(msg.Subject)
	if subject == "" {
		subject = "Wiadomość z formularza kontaktowego"
	}
	body := n.layout(
		html.EscapeString(subject),
		fmt.Sprintf(`<p><strong>%s</strong> &lt;%s&gt; %s</p><p style="white-space: pre-line;">%s</p>`,
			html.EscapeString(msg.Name), html.EscapeString(msg.Email),
			html.EscapeString(deref(msg.Phone)), html.EscapeString(msg.Message)),
	)
	return n.mailer.Send(ctx, Email{
		To:      []string{n.shop.StaffEmail},
		ReplyTo: msg.Email,
		Subject: "Kontakt: " + subject,
		HTML:    body,
	})
}

func (n *Notifier) layout(title, content string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="pl">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>%s</title>
</head>
<body style="margin: 0; padding: 16px; font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', 'Roboto', sans-serif; background-color: #f3f7f9; line-height: 1.5; color: #16323f;">
  <table width="100%%" cellpadding="0" cellspacing="0" border="0" style="max-width: 720px; margin: auto; background: #ffffff; padding: 24px;">
    <tr>
      <td style="border-bottom: 2px solid #0e7490; padding-bottom: 12px;">
        <h1 style="margin: 0; font-size: 22px; color: #0e7490;">%s</h1>
      </td>
    </tr>
    <tr><td style="padding: 16px 0; font-size: 14px;"><h2 style="margin: 0 0 12px; font-size: 18px;">%s</h2>%s</td></tr>
    <tr>
      <td style="padding-top: 16px; border-top: 1px solid #dbe4e8; font-size: 12px; color: #5b6b73;">
        %s · %s · %s
      </td>
    </tr>
  </table>
</body>
</html>`,
		title,
		html.EscapeString(n.shop.Name),
		title, content,
		html.EscapeString(n.shop.Address), html.EscapeString(n.shop.Phone), html.EscapeString(n.shop.StaffEmail),
	)
}

func itemsTable(order *models.Order) string {
	var rows strings.Builder
	for _, item := range order.Items() {
		fmt.Fprintf(&rows, `
      <tr>
        <td style="padding: 6px 0; border-bottom: 1px solid #eef2f4;">%s</td>
        <td style="padding: 6px 0; border-bottom: 1px solid #eef2f4; text-align: right;">%d</td>
        <td style="padding: 6px 0; border-bottom: 1px solid #eef2f4; text-align: right;">%s</td>
        <td style="padding: 6px 0; border-bottom: 1px solid #eef2f4; text-align: right; font-weight: 600;">%s</td>
      </tr>`,
			html.EscapeString(item.Name), item.Quantity,
			FormatPLN(item.Price), FormatPLN(item.Price*float64(item.Quantity)))
	}
	return fmt.Sprintf(`
<table width="100%%" cellpadding="0" cellspacing="0" border="0" style="margin-top: 16px; font-size: 14px;">
  <thead>
    <tr>
      <th style="text-align: left; font-size: 12px; text-transform: uppercase; padding-bottom: 6px;">Produkt</th>
      <th style="text-align: right; font-size: 12px; text-transform: uppercase; padding-bottom: 6px;">Ilość</th>
      <th style="text-align: right; font-size: 12px; text-transform: uppercase; padding-bottom: 6px;">Cena</th>
      <th style="text-align: right; font-size: 12px; text-transform: uppercase; padding-bottom: 6px;">Wartość</th>
    </tr>
  </thead>
  <tbody>%s
  </tbody>
  <tfoot>
    <tr>
      <td colspan="3" style="padding-top: 8px; font-weight: bold;">Razem (orientacyjnie)</td>
      <td style="padding-top: 8px; text-align: right; font-weight: bold;">%s</td>
    </tr>
  </tfoot>
</table>`, rows.String(), FormatPLN(order.Total))
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
