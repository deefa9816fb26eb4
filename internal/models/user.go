package models

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// User is a registered account. Identity is immutable once created.
type User struct {
	ID          string    `json:"id" gorm:"primaryKey;size:36"`
	Username    string    `json:"username" gorm:"uniqueIndex;size:64"`
	Email       string    `json:"email" gorm:"uniqueIndex;size:255"`
	Password    string    `json:"-"` // bcrypt hash, never echoed
	DisplayName string    `json:"displayName"`
	Bio         *string   `json:"bio,omitempty"`
	Avatar      *string   `json:"avatar,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// UserSummary is the author shape embedded in aggregated views.
type UserSummary struct {
	ID          string  `json:"id"`
	Username    string  `json:"username"`
	DisplayName string  `json:"displayName"`
	Avatar      *string `json:"avatar,omitempty"`
}

// Summary strips a user down to the fields exposed alongside stories,
// comments and notifications.
func (u *User) Summary() UserSummary {
	return UserSummary{
		ID:          u.ID,
		Username:    u.Username,
		DisplayName: u.DisplayName,
		Avatar:      u.Avatar,
	}
}

// UserProfile is a user plus social-graph counts.
type UserProfile struct {
	UserSummary
	Bio            *string `json:"bio,omitempty"`
	FollowersCount int64   `json:"followersCount"`
	FollowingCount int64   `json:"followingCount"`
}

// RegisterRequest is the payload for account creation.
type RegisterRequest struct {
	Username    string  `json:"username" validate:"required,min=3,max=64"`
	Email       string  `json:"email" validate:"required,email"`
	Password    string  `json:"password" validate:"required,min=6"`
	DisplayName string  `json:"displayName" validate:"required,min=1,max=100"`
	Bio         *string `json:"bio,omitempty" validate:"omitempty,max=500"`
	Avatar      *string `json:"avatar,omitempty" validate:"omitempty,url"`
}

// LoginRequest is the payload for credential login.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}
