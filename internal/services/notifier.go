package services

import (
	"context"
	"errors"
	"fmt"
	"html"
	"net/url"
	"strings"
	"time"

	"github.com/kbhandari/portfolio-api/internal/models"
	"github.com/kbhandari/portfolio-api/pkg/mail"
)

// Notifier composes and dispatches the two emails of the double opt-in
// flow: the verification link to the submitter and the final relay to the
// site owner. Delivery is not idempotent; a retry after a relay timeout
// may duplicate a message.
type Notifier struct {
	mailer  mail.Mailer
	owner   string
	baseURL string
	linkTTL time.Duration
}

// NewNotifier wires a Notifier. ownerEmail receives the final messages,
// baseURL is the public page the verification link points at.
func NewNotifier(mailer mail.Mailer, ownerEmail, baseURL string, linkTTL time.Duration) (*Notifier, error) {
	if mailer == nil {
		return nil, errors.New("notifier: mailer is required")
	}
	ownerEmail = strings.TrimSpace(ownerEmail)
	if ownerEmail == "" {
		return nil, errors.New("notifier: owner email is required")
	}
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("notifier: verification base URL is required")
	}

	return &Notifier{
		mailer:  mailer,
		owner:   ownerEmail,
		baseURL: baseURL,
		linkTTL: linkTTL,
	}, nil
}

// VerificationLink renders the link embedding the token as a query parameter.
func (n *Notifier) VerificationLink(token string) string {
	return fmt.Sprintf("%s?token=%s", n.baseURL, url.QueryEscape(token))
}

// SendVerification emails the submitter a single-use confirmation link.
func (n *Notifier) SendVerification(ctx context.Context, toEmail, name, token string) error {
	link := n.VerificationLink(token)
	expiry := n.expiryNotice()

	text := fmt.Sprintf(
		"Hello %s,\n\n"+
			"Thank you for reaching out! Please verify your message by visiting this link:\n%s\n\n"+
			"%s"+
			"If you did not submit this form, please ignore this email.\n",
		name, link, expiry)

	escapedName := html.EscapeString(name)
	htmlBody := fmt.Sprintf(
		"<h2>Hello %s,</h2>"+
			"<p>Thank you for reaching out! Please verify your message by clicking the link below:</p>"+
			`<p style="margin: 20px 0;"><a href=%q style="background-color: #007bff; color: white; padding: 10px 20px; text-decoration: none; border-radius: 5px; display: inline-block;">Verify Message</a></p>`+
			"<p>Or copy and paste this link in your browser:</p>"+
			`<p style="background-color: #f5f5f5; padding: 10px; border-radius: 3px; font-family: monospace; word-break: break-all;">%s</p>`+
			"<p>%s</p>"+
			"<p>If you did not submit this form, please ignore this email.</p><hr>"+
			`<p style="font-size: 12px; color: #666;">This is an automated message. Please do not reply to this email.</p>`,
		escapedName, link, html.EscapeString(link), html.EscapeString(strings.TrimSpace(expiry)))

	return n.mailer.Send(ctx, mail.Message{
		To:      []string{toEmail},
		Subject: "Verify Your Message",
		Text:    text,
		HTML:    htmlBody,
	})
}

// SendFinal relays a verified message to the owner, with Reply-To set to
// the submitter so the owner can answer directly.
func (n *Notifier) SendFinal(ctx context.Context, msg *models.PendingMessage) error {
	if msg == nil {
		return errors.New("notifier: message is required")
	}

	text := fmt.Sprintf(
		"New Message from Your Portfolio\n\n"+
			"Name: %s\nEmail: %s\nSubject: %s\n\n"+
			"Message:\n%s\n\n"+
			"You can reply directly to this email to respond to the user.\n",
		msg.Name, msg.Email, msg.Subject, msg.Message)

	htmlBody := fmt.Sprintf(
		"<h2>New Message from Your Portfolio</h2>"+
			"<p><strong>Name:</strong> %s</p>"+
			"<p><strong>Email:</strong> %s</p>"+
			"<p><strong>Subject:</strong> %s</p><hr>"+
			"<h3>Message:</h3><p>%s</p><hr>"+
			`<p style="font-size: 12px; color: #666;">You can reply directly to this email to respond to the user.</p>`,
		html.EscapeString(msg.Name),
		html.EscapeString(msg.Email),
		html.EscapeString(msg.Subject),
		strings.ReplaceAll(html.EscapeString(msg.Message), "\n", "<br>"))

	return n.mailer.Send(ctx, mail.Message{
		To:      []string{n.owner},
		ReplyTo: msg.Email,
		Subject: "Contact Form: " + msg.Subject,
		Text:    text,
		HTML:    htmlBody,
	})
}

func (n *Notifier) expiryNotice() string {
	if n.linkTTL <= 0 {
		return ""
	}
	return fmt.Sprintf("This link will expire in %s.\n\n", humanDuration(n.linkTTL))
}

func humanDuration(d time.Duration) string {
	if d%(24*time.Hour) == 0 {
		days := int(d / (24 * time.Hour))
		if days == 1 {
			return "24 hours"
		}
		return fmt.Sprintf("%d days", days)
	}
	if d%time.Hour == 0 {
		return fmt.Sprintf("%d hours", int(d/time.Hour))
	}
	return d.String()
}
