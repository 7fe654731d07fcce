package repositories

import (
	"time"

	"github.com/jmalone/microblog/backend/internal/models"
	"gorm.io/gorm"
)

// NotificationRepository defines the interface for notification operations
type NotificationRepository interface {
	ReplaceByName(userID uint, name, payloadJSON string) (*models.Notification, error)
	GetSince(userID uint, since float64) ([]models.Notification, error)
	GetByUserAndName(userID uint, name string) (*models.Notification, error)
}

type postgresNotificationRepository struct {
	db *gorm.DB
}

func NewPostgresNotificationRepository(db *gorm.DB) NotificationRepository {
	return &postgresNotificationRepository{db: db}
}

// ReplaceByName deletes any existing notifications with the same name for
// the user, then inserts the new one. The delete and insert run in a single
// transaction so concurrent calls for the same (user, name) cannot leave
// duplicates behind.
func (r *postgresNotificationRepository) ReplaceByName(userID uint, name, payloadJSON string) (*models.Notification, error) {
	notification := &models.Notification{
		Name:        name,
		UserID:      userID,
		Timestamp:   float64(time.Now().UnixNano()) / 1e9,
		PayloadJSON: payloadJSON,
	}
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ? AND name = ?", userID, name).
			Delete(&models.Notification{}).Error; err != nil {
			return err
		}
		return tx.Create(notification).Error
	})
	if err != nil {
		return nil, err
	}
	return notification, nil
}

// GetSince returns the user's notifications newer than the given epoch
// timestamp, oldest first, for client-side polling.
func (r *postgresNotificationRepository) GetSince(userID uint, since float64) ([]models.Notification, error) {
	var notifications []models.Notification
	err := r.db.Where("user_id = ? AND timestamp > ?", userID, since).
		Order("timestamp ASC").
		Find(&notifications).Error
	return notifications, err
}

func (r *postgresNotificationRepository) GetByUserAndName(userID uint, name string) (*models.Notification, error) {
	var notification models.Notification
	err := r.db.Where("user_id = ? AND name = ?", userID, name).
		First(&notification).Error
	if err != nil {
		return nil, err
	}
	return &notification, nil
}
