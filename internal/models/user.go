package models

import (
	"crypto/md5"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// neverRead is the watermark used for users who have never opened their inbox.
var neverRead = time.Date(1900, 1, 1, 0, 0, 0, 0, time.UTC)

type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Username     string    `json:"username" gorm:"size:64;uniqueIndex"`
	Email        string    `json:"email" gorm:"size:120;uniqueIndex"`
	PasswordHash string    `json:"-" gorm:"size:256"` // Store hashed password, ignore for JSON serialization
	AboutMe      string    `json:"about_me" gorm:"size:140"`
	LastSeen     time.Time `json:"last_seen"`

	// LastMessageReadTime is the inbox watermark: messages newer than this
	// count as unread. Nil means the inbox was never opened.
	LastMessageReadTime *time.Time `json:"-"`
}

// Watermark returns the last-read time, or a far-past epoch when unset.
func (u *User) Watermark() time.Time {
	if u.LastMessageReadTime == nil {
		return neverRead
	}
	return *u.LastMessageReadTime
}

// Avatar returns the Gravatar URL for the user's email at the given size.
func (u *User) Avatar(size int) string {
	digest := md5.Sum([]byte(strings.ToLower(u.Email)))
	return fmt.Sprintf("https://www.gravatar.com/avatar/%x?d=identicon&s=%d", digest, size)
}

// Dict is a plain serialized record, the shape handlers put on the wire.
type Dict map[string]interface{}

// ToDict serializes the user's public profile fields. Counts and links are
// filled in by the handler layer, which owns the repositories.
func (u *User) ToDict(includeEmail bool) Dict {
	data := Dict{
		"id":        u.ID,
		"username":  u.Username,
		"about_me":  u.AboutMe,
		"last_seen": u.LastSeen.UTC().Format(time.RFC3339),
		"_links": Dict{
			"avatar": u.Avatar(128),
		},
	}
	if includeEmail {
		data["email"] = u.Email
	}
	return data
}

type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=2,max=64"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type SignInRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type UpdateUserRequest struct {
	Username string `json:"username,omitempty" validate:"omitempty,min=2,max=64"`
	Email    string `json:"email,omitempty" validate:"omitempty,email"`
	AboutMe  string `json:"about_me,omitempty" validate:"omitempty,max=140"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetPasswordRequest struct {
	Token    string `json:"token" validate:"required"`
	Password string `json:"password" validate:"required,min=8"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}
