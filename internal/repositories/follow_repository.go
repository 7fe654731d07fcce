package repositories

import (
	"github.com/jmalone/microblog/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FollowRepository defines the interface for the social graph edge set
type FollowRepository interface {
	Follow(followerID, followedID uint) error
	Unfollow(followerID, followedID uint) error
	IsFollowing(followerID, followedID uint) (bool, error)
	FollowersCount(userID uint) (int64, error)
	FollowingCount(userID uint) (int64, error)
	GetFollowers(userID uint, page, limit int) ([]models.User, int64, error)
	GetFollowing(userID uint, page, limit int) ([]models.User, int64, error)
}

// PostgresFollowRepository implements FollowRepository for PostgreSQL
type PostgresFollowRepository struct {
	db *gorm.DB
}

// NewPostgresFollowRepository creates a new PostgresFollowRepository
func NewPostgresFollowRepository(db *gorm.DB) *PostgresFollowRepository {
	return &PostgresFollowRepository{db: db}
}

// Follow adds the edge if not already present. The conflict target is the
// composite unique index on (follower_id, followed_id), so a repeated call
// is a no-op.
func (r *PostgresFollowRepository) Follow(followerID, followedID uint) error {
	follow := &models.Follow{FollowerID: followerID, FollowedID: followedID}
	return r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(follow).Error
}

// Unfollow removes the edge if present. Deleting a missing edge is not an
// error.
func (r *PostgresFollowRepository) Unfollow(followerID, followedID uint) error {
	return r.db.Where("follower_id = ? AND followed_id = ?", followerID, followedID).
		Delete(&models.Follow{}).Error
}

func (r *PostgresFollowRepository) IsFollowing(followerID, followedID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.Follow{}).
		Where("follower_id = ? AND followed_id = ?", followerID, followedID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *PostgresFollowRepository) FollowersCount(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Follow{}).Where("followed_id = ?", userID).Count(&count).Error
	return count, err
}

func (r *PostgresFollowRepository) FollowingCount(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Follow{}).Where("follower_id = ?", userID).Count(&count).Error
	return count, err
}

func (r *PostgresFollowRepository) GetFollowers(userID uint, page, limit int) ([]models.User, int64, error) {
	followerIDs := r.db.Model(&models.Follow{}).Select("follower_id").Where("followed_id = ?", userID)
	return r.pageUsers(followerIDs, page, limit)
}

func (r *PostgresFollowRepository) GetFollowing(userID uint, page, limit int) ([]models.User, int64, error) {
	followedIDs := r.db.Model(&models.Follow{}).Select("followed_id").Where("follower_id = ?", userID)
	return r.pageUsers(followedIDs, page, limit)
}

func (r *PostgresFollowRepository) pageUsers(ids *gorm.DB, page, limit int) ([]models.User, int64, error) {
	var users []models.User
	var total int64

	if err := r.db.Model(&models.User{}).Where("id IN (?)", ids).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := r.db.Where("id IN (?)", ids).
		Order("id ASC").
		Offset(offset).Limit(limit).
		Find(&users).Error
	return users, total, err
}
