package models

import "time"

// Post is a short user-authored text item.
type Post struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Body      string    `json:"body" gorm:"size:140"`
	Timestamp time.Time `json:"timestamp" gorm:"index"`
	UserID    uint      `json:"user_id" gorm:"index"`
	Language  string    `json:"language,omitempty" gorm:"size:5"` // optional short language code, e.g. "en-US"
}

func (p *Post) ToDict() Dict {
	return Dict{
		"id":        p.ID,
		"body":      p.Body,
		"timestamp": p.Timestamp.UTC().Format(time.RFC3339),
		"user_id":   p.UserID,
		"language":  p.Language,
	}
}

// CreatePostRequest defines the request body for creating a new post
type CreatePostRequest struct {
	Body     string `json:"body" validate:"required,min=1,max=140"`
	Language string `json:"language,omitempty" validate:"omitempty,max=5"`
}
