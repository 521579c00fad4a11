package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/kbhandari/portfolio-api/internal/models"
)

func newTestNotifier(t *testing.T, mailer *fakeMailer) *Notifier {
	t.Helper()
	n, err := NewNotifier(mailer, "owner@example.com", "https://example.com/verify/", 24*time.Hour)
	require.NoError(t, err)
	return n
}

func TestNotifierRequiresDependencies(t *testing.T) {
	_, err := NewNotifier(nil, "owner@example.com", "https://example.com/verify", 0)
	require.Error(t, err)

	_, err = NewNotifier(&fakeMailer{}, "", "https://example.com/verify", 0)
	require.Error(t, err)

	_, err = NewNotifier(&fakeMailer{}, "owner@example.com", "  ", 0)
	require.Error(t, err)
}

func TestVerificationLinkEmbedsToken(t *testing.T) {
	n := newTestNotifier(t, &fakeMailer{})

	link := n.VerificationLink("abc123")
	require.Equal(t, "https://example.com/verify?token=abc123", link)
}

func TestSendVerificationComposition(t *testing.T) {
	mailer := &fakeMailer{}
	n := newTestNotifier(t, mailer)

	require.NoError(t, n.SendVerification(context.Background(), "jo@x.com", "Jo", "tok-1"))

	sent := mailer.lastSent(t)
	require.Equal(t, []string{"jo@x.com"}, sent.To)
	require.Empty(t, sent.ReplyTo)
	require.Equal(t, "Verify Your Message", sent.Subject)
	require.Contains(t, sent.Text, "Hello Jo,")
	require.Contains(t, sent.Text, "https://example.com/verify?token=tok-1")
	require.Contains(t, sent.Text, "This link will expire in 24 hours.")
	require.Contains(t, sent.HTML, "Verify Message")
	require.Contains(t, sent.HTML, "https://example.com/verify?token=tok-1")
}

func TestSendFinalComposition(t *testing.T) {
	mailer := &fakeMailer{}
	n := newTestNotifier(t, mailer)

	msg := &models.PendingMessage{
		Name:    "Jo <script>",
		Email:   "jo@x.com",
		Subject: "Hi!",
		Message: "line one\nline two",
	}
	require.NoError(t, n.SendFinal(context.Background(), msg))

	sent := mailer.lastSent(t)
	require.Equal(t, []string{"owner@example.com"}, sent.To)
	require.Equal(t, "jo@x.com", sent.ReplyTo)
	require.Equal(t, "Contact Form: Hi!", sent.Subject)
	require.Contains(t, sent.Text, "Name: Jo <script>")
	require.Contains(t, sent.HTML, "Jo &lt;script&gt;")
	require.Contains(t, sent.HTML, "line one<br>line two")
}

func TestExpiryNoticeOmittedWithoutTTL(t *testing.T) {
	mailer := &fakeMailer{}
	n, err := NewNotifier(mailer, "owner@example.com", "https://example.com/verify", 0)
	require.NoError(t, err)

	require.NoError(t, n.SendVerification(context.Background(), "jo@x.com", "Jo", "tok-1"))
	require.NotContains(t, mailer.lastSent(t).Text, "expire")
}

func TestHumanDuration(t *testing.T) {
	require.Equal(t, "24 hours", humanDuration(24*time.Hour))
	require.Equal(t, "2 days", humanDuration(48*time.Hour))
	require.Equal(t, "6 hours", humanDuration(6*time.Hour))
	require.Equal(t, "1h30m0s", humanDuration(90*time.Minute))
}
