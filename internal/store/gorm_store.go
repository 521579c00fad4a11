package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/kbhandari/portfolio-api/internal/models"
)

// GormStore is the relational implementation of MessageStore. It works
// against any driver the database package can open (sqlite, postgres,
// mysql).
type GormStore struct {
	db *gorm.DB
}

// NewGormStore creates a MessageStore backed by the given handle.
func NewGormStore(db *gorm.DB) (*GormStore, error) {
	if db == nil {
		return nil, errors.New("store: db is required")
	}
	return &GormStore{db: db}, nil
}

// Ensure GormStore implements MessageStore at compile time.
var _ MessageStore = (*GormStore)(nil)

func (s *GormStore) Create(ctx context.Context, msg *models.PendingMessage) error {
	if msg == nil {
		return errors.New("store: message is required")
	}
	if err := s.db.WithContext(ctx).Create(msg).Error; err != nil {
		return fmt.Errorf("store: create pending message: %w", err)
	}
	return nil
}

func (s *GormStore) FindByToken(ctx context.Context, token string) (*models.PendingMessage, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, ErrNotFound
	}

	var msg models.PendingMessage
	err := s.db.WithContext(ctx).Where("token = ?", token).First(&msg).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("store: find by token: %w", err)
	}
	return &msg, nil
}

func (s *GormStore) DeleteByID(ctx context.Context, id string) (int64, error) {
	tx := s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.PendingMessage{})
	if tx.Error != nil {
		return 0, fmt.Errorf("store: delete pending message: %w", tx.Error)
	}
	return tx.RowsAffected, nil
}
