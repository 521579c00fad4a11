package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/kbhandari/portfolio-api/internal/models"
	"github.com/kbhandari/portfolio-api/internal/store"
	appErrors "github.com/kbhandari/portfolio-api/pkg/errors"
	"github.com/kbhandari/portfolio-api/pkg/logger"
	"github.com/kbhandari/portfolio-api/pkg/metrics"
	"github.com/kbhandari/portfolio-api/pkg/token"
)

const defaultTokenTTL = 24 * time.Hour

// MXChecker answers whether an address's domain can receive mail.
// Satisfied by mail.MXChecker; injected so tests can stub resolution.
type MXChecker interface {
	CanReceiveMail(ctx context.Context, address string) (bool, error)
}

// ContactOption customises the ContactService.
type ContactOption func(*ContactService)

// WithTokenTTL overrides the verification-token lifetime. Zero disables
// the expiry check and tokens stay valid until consumed.
func WithTokenTTL(d time.Duration) ContactOption {
	return func(s *ContactService) {
		s.tokenTTL = d
	}
}

// WithMXCheck enables MX-record validation of the submitter's domain.
func WithMXCheck(checker MXChecker) ContactOption {
	return func(s *ContactService) {
		s.mx = checker
	}
}

// WithClock injects a custom time source.
func WithClock(clock func() time.Time) ContactOption {
	return func(s *ContactService) {
		if clock != nil {
			s.now = clock
		}
	}
}

// ContactService orchestrates the submission and confirmation workflows
// over the persistence gateway and the notifier.
type ContactService struct {
	store    store.MessageStore
	notifier *Notifier
	mx       MXChecker
	tokenTTL time.Duration
	now      func() time.Time
	log      *zap.Logger
}

// NewContactService constructs the service with the provided dependencies.
func NewContactService(messages store.MessageStore, notifier *Notifier, opts ...ContactOption) (*ContactService, error) {
	if messages == nil {
		return nil, errors.New("contact service: store is required")
	}
	if notifier == nil {
		return nil, errors.New("contact service: notifier is required")
	}

	service := &ContactService{
		store:    messages,
		notifier: notifier,
		tokenTTL: defaultTokenTTL,
		now:      time.Now,
		log:      logger.WithModule("contact"),
	}

	for _, opt := range opts {
		opt(service)
	}

	return service, nil
}

// Submit runs the submission workflow: validate, mint a token, persist,
// email the verification link. A delivery failure rolls the row back so
// no orphaned pending message survives the request.
func (s *ContactService) Submit(ctx context.Context, input SubmissionInput) (*models.PendingMessage, error) {
	input.Normalize()

	reasons := ValidateSubmission(input)
	if len(reasons) == 0 && s.mx != nil {
		reasons = s.checkMX(ctx, input.Email)
	}
	if len(reasons) > 0 {
		metrics.Submissions.WithLabelValues("validation_failed").Inc()
		return nil, appErrors.NewValidation(reasons)
	}

	verificationToken, err := token.New()
	if err != nil {
		metrics.Submissions.WithLabelValues("storage_failed").Inc()
		return nil, appErrors.ErrInternalServer.WithInternal(err)
	}

	msg := &models.PendingMessage{
		Name:    input.Name,
		Email:   input.Email,
		Subject: input.Subject,
		Message: input.Message,
		Token:   verificationToken,
	}

	if err := s.store.Create(ctx, msg); err != nil {
		metrics.Submissions.WithLabelValues("storage_failed").Inc()
		return nil, appErrors.NewStorage(
			"Failed to save message. Please try again.",
			err,
			"Database error: Could not save your message",
		)
	}

	if err := s.notifier.SendVerification(ctx, msg.Email, msg.Name, verificationToken); err != nil {
		metrics.MailSends.WithLabelValues("verification", "failure").Inc()
		metrics.Submissions.WithLabelValues("delivery_failed").Inc()

		// Best-effort compensation: the row must not outlive a failed
		// verification email. Its own failure is logged, not surfaced.
		if _, delErr := s.store.DeleteByID(ctx, msg.ID); delErr != nil {
			s.log.Error("compensating delete failed",
				zap.String("message_id", msg.ID),
				zap.Error(delErr),
			)
		}

		return nil, appErrors.NewDelivery(
			"Failed to send verification email",
			err,
			"Could not send verification email. Please check your email address and try again.",
		)
	}

	metrics.MailSends.WithLabelValues("verification", "success").Inc()
	metrics.Submissions.WithLabelValues("accepted").Inc()

	s.log.Info("submission accepted",
		zap.String("message_id", msg.ID),
		zap.String("email", msg.Email),
	)
	return msg, nil
}

// Confirm runs the confirmation workflow: look the token up, relay the
// message to the owner, delete the row. The token is single-use by
// construction because the row is gone after the first success.
func (s *ContactService) Confirm(ctx context.Context, tokenValue string) error {
	tokenValue = strings.TrimSpace(tokenValue)
	if tokenValue == "" {
		return appErrors.NewBadRequest(
			"Verification token is required",
			"No verification token provided",
		)
	}

	msg, err := s.store.FindByToken(ctx, tokenValue)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			metrics.Verifications.WithLabelValues("not_found").Inc()
			return s.tokenNotFound()
		}
		return appErrors.NewStorage(
			"Error verifying your email",
			err,
			"An unexpected error occurred. Please try again.",
		)
	}

	if s.tokenTTL > 0 && s.now().Sub(msg.CreatedAt) > s.tokenTTL {
		metrics.Verifications.WithLabelValues("not_found").Inc()
		s.log.Info("expired token presented",
			zap.String("message_id", msg.ID),
			zap.Time("created_at", msg.CreatedAt),
		)
		return s.tokenNotFound()
	}

	if err := s.notifier.SendFinal(ctx, msg); err != nil {
		metrics.MailSends.WithLabelValues("final", "failure").Inc()
		metrics.Verifications.WithLabelValues("delivery_failed").Inc()

		// The row is deliberately retained so the visitor can retry the
		// confirmation link later.
		return appErrors.NewDelivery(
			"Failed to send your message",
			err,
			"Could not send your message to the recipient. Please try again.",
		)
	}
	metrics.MailSends.WithLabelValues("final", "success").Inc()

	affected, err := s.store.DeleteByID(ctx, msg.ID)
	switch {
	case err != nil:
		// Delivery already succeeded; cleanup failure must not fail the
		// response.
		s.log.Error("cleanup delete failed",
			zap.String("message_id", msg.ID),
			zap.Error(err),
		)
	case affected == 0:
		s.log.Warn("duplicate confirmation",
			zap.String("message_id", msg.ID),
		)
	}

	metrics.Verifications.WithLabelValues("confirmed").Inc()
	s.log.Info("message relayed to owner", zap.String("message_id", msg.ID))
	return nil
}

func (s *ContactService) tokenNotFound() error {
	return appErrors.NewNotFound(
		"Invalid or expired verification token",
		"The verification link has expired or is invalid. Please submit the form again.",
	)
}

func (s *ContactService) checkMX(ctx context.Context, email string) []string {
	ok, err := s.mx.CanReceiveMail(ctx, email)
	if err != nil {
		// Resolver trouble is not the visitor's fault: log and admit.
		s.log.Warn("mx lookup failed", zap.String("email", email), zap.Error(err))
		return nil
	}
	if !ok {
		return []string{"Valid email address is required"}
	}
	return nil
}
