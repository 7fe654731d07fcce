package repositories

import (
	"github.com/jmalone/microblog/backend/internal/models"
	"gorm.io/gorm"
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	CreatePost(post *models.Post) error
	GetPostByID(id uint) (*models.Post, error)
	GetPostsByUserID(userID uint, page, limit int) ([]models.Post, int64, error)
	FollowingPosts(userID uint, page, limit int) ([]models.Post, int64, error)
	DeletePost(id uint) error
}

// PostgresPostRepository implements PostRepository for PostgreSQL
type PostgresPostRepository struct {
	db *gorm.DB
}

// NewPostgresPostRepository creates a new PostgresPostRepository
func NewPostgresPostRepository(db *gorm.DB) *PostgresPostRepository {
	return &PostgresPostRepository{db: db}
}

func (r *PostgresPostRepository) CreatePost(post *models.Post) error {
	return r.db.Create(post).Error
}

func (r *PostgresPostRepository) GetPostByID(id uint) (*models.Post, error) {
	var post models.Post
	if err := r.db.First(&post, id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *PostgresPostRepository) GetPostsByUserID(userID uint, page, limit int) ([]models.Post, int64, error) {
	var posts []models.Post
	var total int64

	if err := r.db.Model(&models.Post{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := r.db.Where("user_id = ?", userID).
		Order("timestamp DESC, id DESC").
		Offset(offset).Limit(limit).
		Find(&posts).Error
	return posts, total, err
}

// FollowingPosts returns the timeline for a user: posts authored by the user
// or by anyone the user follows, newest first. Each post appears once no
// matter how many follow paths reach its author; ties on timestamp break by
// id descending so the order is deterministic.
func (r *PostgresPostRepository) FollowingPosts(userID uint, page, limit int) ([]models.Post, int64, error) {
	var posts []models.Post
	var total int64

	followed := r.db.Model(&models.Follow{}).Select("followed_id").Where("follower_id = ?", userID)

	if err := r.db.Model(&models.Post{}).
		Where("user_id = ? OR user_id IN (?)", userID, followed).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := r.db.
		Where("user_id = ? OR user_id IN (?)", userID, followed).
		Order("timestamp DESC, id DESC").
		Offset(offset).Limit(limit).
		Find(&posts).Error
	return posts, total, err
}

func (r *PostgresPostRepository) DeletePost(id uint) error {
	return r.db.Delete(&models.Post{}, id).Error
}
