package store

import (
	"context"
	"errors"

	"github.com/kbhandari/portfolio-api/internal/models"
)

// ErrNotFound signals that no pending message matches the lookup.
// Callers decide whether absence is an error; the confirmation workflow
// maps it to a 404 while delete tolerates it entirely.
var ErrNotFound = errors.New("store: pending message not found")

// MessageStore abstracts persistence of pending contact messages so the
// backing technology stays a swappable collaborator of the workflows.
type MessageStore interface {
	// Create inserts a new pending message and populates its ID and
	// creation timestamp.
	Create(ctx context.Context, msg *models.PendingMessage) error

	// FindByToken returns the at-most-one message carrying the token,
	// or ErrNotFound when no row matches.
	FindByToken(ctx context.Context, token string) (*models.PendingMessage, error)

	// DeleteByID removes a message. Deleting an absent id is not an
	// error; the number of rows affected is reported so callers can
	// observe it.
	DeleteByID(ctx context.Context, id string) (int64, error)
}
