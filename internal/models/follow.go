package models

import "time"

// Follow represents one directed edge of the social graph. The composite
// unique index keeps the edge set free of duplicate (follower, followed)
// pairs, and both columns are indexed for the two lookup directions.
type Follow struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	FollowerID uint      `json:"follower_id" gorm:"index;uniqueIndex:idx_follower_followed"`
	FollowedID uint      `json:"followed_id" gorm:"index;uniqueIndex:idx_follower_followed"`
	CreatedAt  time.Time `json:"created_at"`
}
