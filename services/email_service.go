package services

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/MonkyMars/gecho"
	"github.com/resend/resend-go/v3"

	"ileke_server/database"
	"ileke_server/lib"
	"ileke_server/structs"
	"ileke_server/structs/tables"
)

var (
	emailClient     *resend.Client
	emailClientOnce = sync.Once{}
)

type EmailService struct {
	logger *gecho.Logger
	cfg    *structs.Config
	client *resend.Client
	db     *database.DB
}

func NewEmailService(logger *gecho.Logger, cfg *structs.Config, db *database.DB) *EmailService {
	return &EmailService{
		logger: logger,
		cfg:    cfg,
		db:     db,
		client: getEmailClient(cfg.Email.ApiKey),
	}
}

func getEmailClient(apiKey string) *resend.Client {
	emailClientOnce.Do(func() {
		emailClient = resend.NewClient(apiKey)
	})
	return emailClient
}

func (es *EmailService) SendEmail(to []string, subject string, body string) error {
	params := &resend.SendEmailRequest{
		From:    es.cfg.Email.From,
		To:      to,
		Html:    body,
		Subject: subject,
	}
	if es.cfg.Email.ReplyTo != "" {
		params.ReplyTo = es.cfg.Email.ReplyTo
	}

	_, err := es.client.Emails.Send(params)
	if err != nil {
		es.logger.Error("Failed to send email", gecho.Field("error", err), gecho.Field("to", to))
		return err
	}

	return nil
}

// sendToAdmins fans a notification out to the configured back-office inboxes.
func (es *EmailService) sendToAdmins(subject, body string) error {
	if len(es.cfg.Email.AdminInbox) == 0 {
		es.logger.Warn("No admin inbox configured, dropping notification", gecho.Field("subject", subject))
		return nil
	}
	return es.SendEmail(es.cfg.Email.AdminInbox, subject, body)
}

// FormatNaira renders a kobo amount as a naira string, e.g. ₦12,500.00.
func FormatNaira(kobo uint64) string {
	naira := kobo / 100
	cents := kobo % 100

	digits := fmt.Sprintf("%d", naira)
	var grouped strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			grouped.WriteByte(',')
		}
		grouped.WriteRune(d)
	}

	return fmt.Sprintf("₦%s.%02d", grouped.String(), cents)
}

// emailLayout wraps body HTML in the shared brand chrome.
func emailLayout(title, inner string) string {
	return fmt.Sprintf(`
		<!DOCTYPE html>
		<html>
		<head>
			<meta charset="UTF-8">
			<style>
				body { font-family: Georgia, 'Times New Roman', serif; line-height: 1.6; color: #2b2320; }
				.container { max-width: 600px; margin: 0 auto; padding: 20px; }
				.header { background-color: #7a4a2b; color: #fdf8f2; padding: 24px; text-align: center; }
				.content { padding: 20px; background-color: #faf6f0; }
				.panel { background-color: white; padding: 15px; margin: 15px 0; border-radius: 5px; }
				.button { display: inline-block; padding: 14px 28px; background-color: #7a4a2b; color: #fdf8f2; text-decoration: none; border-radius: 4px; margin: 20px 0; }
				.footer { text-align: center; padding: 20px; color: #8a7a6d; font-size: 12px; }
				ul { list-style-type: none; padding: 0; }
				li { padding: 5px 0; border-bottom: 1px solid #eee; }
			</style>
		</head>
		<body>
			<div class="container">
				<div class="header">
					<h1>%s</h1>
				</div>
				<div class="content">
					%s
				</div>
				<div class="footer">
					<p>Ilékè | Handmade footwear from Lagos</p>
				</div>
			</div>
		</body>
		</html>
	`, title, inner)
}

func formatEmailAddress(address *tables.Address) string {
	if address == nil {
		return ""
	}
	return fmt.Sprintf("%s %s<br>%s<br>%s, %s<br>%s",
		address.FirstName, address.LastName, address.Line1, address.City, address.State, address.Country)
}

// SendOrderConfirmationEmail confirms a paid order to the customer.
func (es *EmailService) SendOrderConfirmationEmail(email, name string, order *tables.Order, items []*tables.OrderItem) error {
	var itemsBuilder strings.Builder
	for _, item := range items {
		fmt.Fprintf(&itemsBuilder, "<li>%dx %s - %s</li>", item.Quantity, item.ProductTitle, FormatNaira(item.LineTotal))
	}

	arrival := "We will confirm your delivery window shortly."
	if order.EstimatedArrival != nil {
		arrival = fmt.Sprintf("Estimated arrival: <strong>%s</strong>.", order.EstimatedArrival.Format("Monday, 2 January 2006"))
	}

	inner := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Thank you for your order. Every pair is handmade to order in our Lagos workshop, so production starts right away.</p>

		<div class="panel">
			<h3>Order number: <strong>%s</strong></h3>
			<ul>%s</ul>
			<p>Subtotal: %s</p>
			<p>Shipping: %s</p>
			<p><strong>Total paid: %s</strong></p>

			<h4>Delivery address:</h4>
			<p>%s</p>
		</div>

		<p>%s</p>
		<p>You can follow your order at any time: <a href="%s/orders/track?number=%s&email=%s">track your order</a>.</p>
	`, name, order.OrderNumber, itemsBuilder.String(),
		FormatNaira(order.SubtotalAmount), FormatNaira(order.ShippingAmount), FormatNaira(order.TotalAmount),
		formatEmailAddress(&order.ShippingAddress), arrival,
		es.cfg.Server.FrontendURL, order.OrderNumber, email)

	subject := fmt.Sprintf("Your Ilékè order %s is confirmed", order.OrderNumber)
	return es.SendEmail([]string{email}, subject, emailLayout("Thank you for your order!", inner))
}

// SendAdminOrderNotice alerts the back office about a newly paid order.
func (es *EmailService) SendAdminOrderNotice(order *tables.Order, items []*tables.OrderItem) error {
	var itemsBuilder strings.Builder
	for _, item := range items {
		fmt.Fprintf(&itemsBuilder, "<li>%dx %s (%s) - %s</li>", item.Quantity, item.ProductTitle, item.VariantTitle, FormatNaira(item.LineTotal))
	}

	inner := fmt.Sprintf(`
		<p>A new order has been paid.</p>
		<div class="panel">
			<h3>%s</h3>
			<ul>%s</ul>
			<p><strong>Total: %s</strong></p>
			<p>Ship to: %s</p>
		</div>
	`, order.OrderNumber, itemsBuilder.String(), FormatNaira(order.TotalAmount), formatEmailAddress(&order.ShippingAddress))

	return es.sendToAdmins(fmt.Sprintf("New order %s", order.OrderNumber), emailLayout("New order", inner))
}

// SendDeliveryUpdateEmail informs the customer of a fulfillment stage change.
func (es *EmailService) SendDeliveryUpdateEmail(email, name string, order *tables.Order) error {
	arrival := ""
	if order.EstimatedArrival != nil {
		arrival = fmt.Sprintf("<p>Updated estimated arrival: <strong>%s</strong>.</p>", order.EstimatedArrival.Format("Monday, 2 January 2006"))
	}

	inner := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>There is an update on your order <strong>%s</strong>:</p>
		<div class="panel">
			<p>%s</p>
			%s
		</div>
		<p><a href="%s/orders/track?number=%s&email=%s">Track your order</a></p>
	`, name, order.OrderNumber, lib.DeliveryStatusDescription(order.DeliveryStatus), arrival,
		es.cfg.Server.FrontendURL, order.OrderNumber, email)

	subject := fmt.Sprintf("Update on your order %s", order.OrderNumber)
	return es.SendEmail([]string{email}, subject, emailLayout("Order update", inner))
}

// SendMagicLinkEmail sends a passwordless sign-in link.
func (es *EmailService) SendMagicLinkEmail(email, token string, expiresAt time.Time) error {
	link := fmt.Sprintf("%s/auth/verify?token=%s", es.cfg.Server.FrontendURL, token)

	inner := fmt.Sprintf(`
		<p>Click the button below to sign in to your Ilékè account:</p>
		<p style="text-align: center;">
			<a href="%s" class="button">Sign in</a>
		</p>
		<p>This link expires in %.0f minutes and can only be used once.</p>
		<p>Link not working? Copy and paste this URL into your browser:</p>
		<p style="word-break: break-all;">%s</p>
		<p>If you did not request this email, you can safely ignore it.</p>
	`, link, time.Until(expiresAt).Minutes(), link)

	return es.SendEmail([]string{email}, "Sign in to Ilékè", emailLayout("Sign in to your account", inner))
}

// SendCustomOrderReceivedEmail confirms a custom-order request to the customer.
func (es *EmailService) SendCustomOrderReceivedEmail(email, name string, request *tables.CustomOrderRequest) error {
	inner := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>We have received your custom order request. Our design team reviews every brief personally, and you will hear from us within 2-3 working days with a quote.</p>
		<div class="panel">
			<h3>Request number: <strong>%s</strong></h3>
			<p>Keep this number to follow up on your request.</p>
		</div>
	`, name, request.RequestNumber)

	subject := fmt.Sprintf("We received your custom order request %s", request.RequestNumber)
	return es.SendEmail([]string{email}, subject, emailLayout("Custom order received", inner))
}

// SendAdminCustomOrderNotice alerts the back office about a new request.
func (es *EmailService) SendAdminCustomOrderNotice(request *tables.CustomOrderRequest) error {
	budget := "not specified"
	switch {
	case request.BudgetMin != nil && request.BudgetMax != nil:
		budget = fmt.Sprintf("%s - %s", FormatNaira(*request.BudgetMin), FormatNaira(*request.BudgetMax))
	case request.BudgetMax != nil:
		budget = "up to " + FormatNaira(*request.BudgetMax)
	case request.BudgetMin != nil:
		budget = "from " + FormatNaira(*request.BudgetMin)
	}

	inner := fmt.Sprintf(`
		<p>A new custom order request has come in.</p>
		<div class="panel">
			<h3>%s</h3>
			<p><strong>Customer:</strong> %s (%s)</p>
			<p><strong>Budget:</strong> %s</p>
			<p><strong>Brief:</strong></p>
			<p>%s</p>
		</div>
	`, request.RequestNumber, request.CustomerName, request.Email, budget, request.Description)

	return es.sendToAdmins(fmt.Sprintf("New custom order request %s", request.RequestNumber), emailLayout("New custom order request", inner))
}

// SendQuoteEmail sends a quote with its single-use access link.
func (es *EmailService) SendQuoteEmail(email, name string, request *tables.CustomOrderRequest, quote *tables.CustomOrderQuote, token string) error {
	link := fmt.Sprintf("%s/custom-orders/quote?token=%s", es.cfg.Server.FrontendURL, token)

	validity := "This quote does not expire."
	if quote.ExpiresAt != nil {
		validity = fmt.Sprintf("This quote is valid until %s.", quote.ExpiresAt.Format("Monday, 2 January 2006"))
	}

	inner := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Your quote for custom order request <strong>%s</strong> is ready.</p>
		<div class="panel">
			<p><strong>Quoted amount: %s</strong></p>
			<p>%s</p>
		</div>
		<p style="text-align: center;">
			<a href="%s" class="button">View and accept your quote</a>
		</p>
		<p>The link above is personal and can only be used from this email.</p>
	`, name, request.RequestNumber, FormatNaira(quote.Amount), validity, link)

	subject := fmt.Sprintf("Your quote for custom order %s", request.RequestNumber)
	return es.SendEmail([]string{email}, subject, emailLayout("Your quote is ready", inner))
}

// SendQuoteReminderEmail nudges the customer before a quote expires.
func (es *EmailService) SendQuoteReminderEmail(email, name string, request *tables.CustomOrderRequest, quote *tables.CustomOrderQuote, token string) error {
	link := fmt.Sprintf("%s/custom-orders/quote?token=%s", es.cfg.Server.FrontendURL, token)

	window := "soon"
	if quote.ExpiresAt != nil {
		remaining := time.Until(*quote.ExpiresAt)
		if remaining > 48*time.Hour {
			window = fmt.Sprintf("in %d days", int(remaining.Hours()/24))
		} else {
			window = fmt.Sprintf("in %d hours", int(remaining.Hours()))
		}
	}

	inner := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>A quick reminder: your quote for custom order request <strong>%s</strong> expires %s.</p>
		<div class="panel">
			<p><strong>Quoted amount: %s</strong></p>
		</div>
		<p style="text-align: center;">
			<a href="%s" class="button">View your quote</a>
		</p>
	`, name, request.RequestNumber, window, FormatNaira(quote.Amount), link)

	subject := fmt.Sprintf("Your quote for %s expires soon", request.RequestNumber)
	return es.SendEmail([]string{email}, subject, emailLayout("Your quote expires soon", inner))
}

// SendQuoteExpiredEmail tells the customer an unanswered quote lapsed.
func (es *EmailService) SendQuoteExpiredEmail(email, name string, request *tables.CustomOrderRequest) error {
	inner := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>The quote for your custom order request <strong>%s</strong> has expired.</p>
		<p>Still interested? Reply to this email and we will gladly issue a fresh quote.</p>
	`, name, request.RequestNumber)

	subject := fmt.Sprintf("Your quote for %s has expired", request.RequestNumber)
	return es.SendEmail([]string{email}, subject, emailLayout("Quote expired", inner))
}

// SendCustomOrderPaidEmail confirms payment on an accepted quote.
func (es *EmailService) SendCustomOrderPaidEmail(email, name string, request *tables.CustomOrderRequest, orderNumber string) error {
	inner := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Payment received! Your custom order <strong>%s</strong> is now in production.</p>
		<div class="panel">
			<p>Order number: <strong>%s</strong></p>
			<p>Use it to track progress like any other order.</p>
		</div>
	`, name, request.RequestNumber, orderNumber)

	subject := fmt.Sprintf("Your custom order %s is in production", request.RequestNumber)
	return es.SendEmail([]string{email}, subject, emailLayout("Production has started", inner))
}
