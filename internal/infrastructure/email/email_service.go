package email

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"io"
	"path"
	"strings"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/sirupsen/logrus"

	"github.com/simpleoutings/homestay/configs"
	"github.com/simpleoutings/homestay/internal/core/domain"
	"github.com/simpleoutings/homestay/internal/core/ports"
)

//go:embed templates/*.html
var templateFS embed.FS

// ErrNotConfigured is returned by every send when no SendGrid key is set.
var ErrNotConfigured = domain.NotConfigured("email service not configured")

// Sender delivers a prepared message. *sendgrid.Client satisfies it.
type Sender interface {
	SendWithContext(ctx context.Context, email *mail.SGMailV3) (*rest.Response, error)
}

// EmailService implements the EmailService interface
type EmailService struct {
	config    *configs.EmailConfig
	logger    *logrus.Logger
	client    Sender
	templates map[string]*template.Template
}

// NewEmailService creates a SendGrid backed email service. Without an API key
// the service still renders templates but every send returns ErrNotConfigured.
func NewEmailService(config *configs.EmailConfig, logger *logrus.Logger) (*EmailService, error) {
	var client Sender
	if config.SendGridAPIKey != "" {
		client = sendgrid.NewSendClient(config.SendGridAPIKey)
	} else if logger != nil {
		logger.Warn("SENDGRID_API_KEY not set; outgoing email disabled")
	}
	return NewEmailServiceWithSender(config, client, logger)
}

// NewEmailServiceWithSender wires a custom Sender.
func NewEmailServiceWithSender(config *configs.EmailConfig, client Sender, logger *logrus.Logger) (*EmailService, error) {
	templates, err := loadTemplates()
	if err != nil {
		return nil, fmt.Errorf("failed to load email templates: %w", err)
	}
	if logger == nil {
		logger = logrus.New()
		logger.SetOutput(io.Discard)
	}
	return &EmailService{
		config:    config,
		logger:    logger,
		client:    client,
		templates: templates,
	}, nil
}

var _ ports.EmailService = (*EmailService)(nil)

// loadTemplates parses every embedded template, keyed by file name without extension.
func loadTemplates() (map[string]*template.Template, error) {
	files, err := templateFS.ReadDir("templates")
	if err != nil {
		return nil, err
	}
	templates := make(map[string]*template.Template, len(files))
	for _, f := range files {
		tmpl, err := template.ParseFS(templateFS, "templates/"+f.Name())
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", f.Name(), err)
		}
		templates[strings.TrimSuffix(f.Name(), path.Ext(f.Name()))] = tmpl
	}
	return templates, nil
}

type envelope struct {
	fromEmail string
	fromName  string
	to        string
	replyTo   string
	subject   string
}

// sendEmail sends an email using SendGrid
func (e *EmailService) sendEmail(ctx context.Context, env envelope, htmlContent string) error {
	if e.client == nil {
		return ErrNotConfigured
	}
	from := mail.NewEmail(env.fromName, env.fromEmail)
	recipient := mail.NewEmail("", env.to)
	message := mail.NewSingleEmail(from, env.subject, recipient, "", htmlContent)
	if env.replyTo != "" {
		message.SetReplyTo(mail.NewEmail("", env.replyTo))
	}

	response, err := e.client.SendWithContext(ctx, message)
	if err != nil {
		e.log(logrus.Fields{"to": env.to, "subject": env.subject}).WithError(err).Error("Failed to send email")
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		e.log(logrus.Fields{"to": env.to, "subject": env.subject, "status_code": response.StatusCode}).Error("Email rejected by provider")
		return fmt.Errorf("email provider returned status %d", response.StatusCode)
	}

	e.log(logrus.Fields{
		"to":          env.to,
		"subject":     env.subject,
		"status_code": response.StatusCode,
	}).Info("Email sent successfully")
	return nil
}

func (e *EmailService) log(fields logrus.Fields) *logrus.Entry {
	return e.logger.WithFields(fields)
}

// renderTemplate renders an email template with the provided data
func (e *EmailService) renderTemplate(templateName string, data any) (string, error) {
	tmpl, exists := e.templates[templateName]
	if !exists {
		return "", fmt.Errorf("template %s not found", templateName)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template %s: %w", templateName, err)
	}
	return buf.String(), nil
}

// SendInquiryNotification tells the owner about a new inquiry. Replies go to the guest.
func (e *EmailService) SendInquiryNotification(ctx context.Context, msg *ports.InquiryEmail) error {
	html, err := e.renderTemplate("inquiry_notification", msg)
	if err != nil {
		return err
	}
	return e.sendEmail(ctx, envelope{
		fromEmail: e.config.InquiryFromEmail,
		fromName:  e.config.FromName,
		to:        msg.OwnerEmail,
		replyTo:   msg.GuestEmail,
		subject:   fmt.Sprintf("New Inquiry for %s", msg.PropertyName),
	}, html)
}

// SendInquiryAutoResponse thanks the guest for their inquiry.
func (e *EmailService) SendInquiryAutoResponse(ctx context.Context, msg *ports.InquiryEmail) error {
	html, err := e.renderTemplate("inquiry_auto_response", msg)
	if err != nil {
		return err
	}
	return e.sendEmail(ctx, envelope{
		fromEmail: e.config.InquiryFromEmail,
		fromName:  msg.PropertyName,
		to:        msg.GuestEmail,
		replyTo:   msg.OwnerEmail,
		subject:   fmt.Sprintf("Thank you for your inquiry - %s", msg.PropertyName),
	}, html)
}

type bookingEmailData struct {
	*ports.BookingEmail
	CheckIn      string
	CheckOut     string
	DashboardURL string
}

func (e *EmailService) SendBookingNotification(ctx context.Context, msg *ports.BookingEmail) error {
	html, err := e.renderTemplate("booking_notification", bookingEmailData{
		BookingEmail: msg,
		CheckIn:      msg.CheckIn.Format("Mon, 02 Jan 2006"),
		CheckOut:     msg.CheckOut.Format("Mon, 02 Jan 2006"),
		DashboardURL: e.config.DashboardURL,
	})
	if err != nil {
		return err
	}
	return e.sendEmail(ctx, envelope{
		fromEmail: e.config.FromEmail,
		fromName:  e.config.FromName,
		to:        msg.OwnerEmail,
		replyTo:   msg.GuestEmail,
		subject:   fmt.Sprintf("New Booking Request for %s", msg.PropertyName),
	}, html)
}

type passwordResetData struct {
	CompanyName string
	Name        string
	ResetURL    string
}

func (e *EmailService) SendPasswordReset(ctx context.Context, email, name, resetURL string) error {
	html, err := e.renderTemplate("password_reset", passwordResetData{
		CompanyName: e.config.CompanyName,
		Name:        name,
		ResetURL:    resetURL,
	})
	if err != nil {
		return err
	}
	return e.sendEmail(ctx, envelope{
		fromEmail: e.config.FromEmail,
		fromName:  e.config.FromName,
		to:        email,
		subject:   fmt.Sprintf("Reset your password - %s", e.config.CompanyName),
	}, html)
}
