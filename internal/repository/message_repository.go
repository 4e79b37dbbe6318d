package repository

import (
	"context"

	"github.com/chachabrian/covoit-backend/internal/models"
	"gorm.io/gorm"
)

type MessageRepository struct {
	DB *gorm.DB
}

func NewMessageRepository(db *gorm.DB) *MessageRepository {
	return &MessageRepository{DB: db}
}

func (r *MessageRepository) Create(ctx context.Context, m *models.Message) error {
	return r.DB.WithContext(ctx).Create(m).Error
}

// ListByBooking returns the conversation in the order it was written.
func (r *MessageRepository) ListByBooking(ctx context.Context, bookingID uint) ([]models.Message, error) {
	var out []models.Message
	err := r.DB.WithContext(ctx).
		Where("booking_id = ?", bookingID).
		Order("created_at ASC, id ASC").
		Find(&out).Error
	return out, err
}
