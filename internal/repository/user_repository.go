package repository

import (
	"context"
	"errors"

	"github.com/chachabrian/covoit-backend/internal/domain"
	"github.com/chachabrian/covoit-backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UserRepository stores profiles, device tokens and push preferences.
type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) Get(ctx context.Context, id uint) (*models.User, error) {
	var u models.User
	if err := r.DB.WithContext(ctx).First(&u, id).Error; err != nil {
		return nil, notFound(err, "user")
	}
	return &u, nil
}

// SaveProfile creates the profile on first write and updates it afterwards.
// The device token is left alone.
func (r *UserRepository) SaveProfile(ctx context.Context, u *models.User) error {
	return r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"display_name", "email", "phone_number", "updated_at"}),
		}).
		Omit("fcm_token").
		Create(u).Error
}

// SetFCMToken stores or clears the device token of userID.
func (r *UserRepository) SetFCMToken(ctx context.Context, userID uint, token string) error {
	return r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"fcm_token", "updated_at"}),
		}).
		Create(&models.User{ID: userID, FCMToken: token}).Error
}

// FCMToken returns the device token of userID, empty when none is known.
func (r *UserRepository) FCMToken(ctx context.Context, userID uint) (string, error) {
	u, err := r.Get(ctx, userID)
	if err != nil {
		if domain.IsNotFound(err) {
			return "", nil
		}
		return "", err
	}
	return u.FCMToken, nil
}

// Preferences returns the stored preferences or the defaults when none exist.
func (r *UserRepository) Preferences(ctx context.Context, userID uint) (*models.NotificationPreference, error) {
	var p models.NotificationPreference
	err := r.DB.WithContext(ctx).Where("user_id = ?", userID).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.DefaultPreferences(userID), nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *UserRepository) SavePreferences(ctx context.Context, p *models.NotificationPreference) error {
	return r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"push_enabled", "booking_alerts", "payment_alerts", "message_alerts", "updated_at"}),
		}).
		Create(p).Error
}
