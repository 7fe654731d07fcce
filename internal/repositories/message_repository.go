package repositories

import (
	"time"

	"github.com/jmalone/microblog/backend/internal/models"
	"gorm.io/gorm"
)

// MessageRepository defines the interface for direct-message operations
type MessageRepository interface {
	CreateMessage(message *models.Message) error
	GetReceived(recipientID uint, page, limit int) ([]models.Message, int64, error)
	GetSent(senderID uint, page, limit int) ([]models.Message, int64, error)
	UnreadCount(recipientID uint, since time.Time) (int64, error)
}

// PostgresMessageRepository implements MessageRepository for PostgreSQL
type PostgresMessageRepository struct {
	db *gorm.DB
}

// NewPostgresMessageRepository creates a new PostgresMessageRepository
func NewPostgresMessageRepository(db *gorm.DB) *PostgresMessageRepository {
	return &PostgresMessageRepository{db: db}
}

func (r *PostgresMessageRepository) CreateMessage(message *models.Message) error {
	return r.db.Create(message).Error
}

func (r *PostgresMessageRepository) GetReceived(recipientID uint, page, limit int) ([]models.Message, int64, error) {
	var messages []models.Message
	var total int64

	if err := r.db.Model(&models.Message{}).Where("recipient_id = ?", recipientID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := r.db.Where("recipient_id = ?", recipientID).
		Order("timestamp DESC, id DESC").
		Offset(offset).Limit(limit).
		Find(&messages).Error
	return messages, total, err
}

func (r *PostgresMessageRepository) GetSent(senderID uint, page, limit int) ([]models.Message, int64, error) {
	var messages []models.Message
	var total int64

	if err := r.db.Model(&models.Message{}).Where("sender_id = ?", senderID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := r.db.Where("sender_id = ?", senderID).
		Order("timestamp DESC, id DESC").
		Offset(offset).Limit(limit).
		Find(&messages).Error
	return messages, total, err
}

// UnreadCount counts messages addressed to the user with a timestamp
// strictly greater than the given watermark.
func (r *PostgresMessageRepository) UnreadCount(recipientID uint, since time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&models.Message{}).
		Where("recipient_id = ? AND timestamp > ?", recipientID, since).
		Count(&count).Error
	return count, err
}
