package models

import "time"

// Notification types.
const (
	NotificationLike    = "like"
	NotificationComment = "comment"
	NotificationFollow  = "follow"
)

// Notification is created as a side effect of a like, comment or follow
// where the actor differs from the recipient. Read state is one-way:
// unread -> read.
type Notification struct {
	ID         string    `json:"id" gorm:"primaryKey;size:36"`
	Type       string    `json:"type" gorm:"size:20;index"`
	UserID     string    `json:"userId" gorm:"index;size:36"` // recipient
	FromUserID string    `json:"fromUserId" gorm:"size:36"`   // actor
	StoryID    *string   `json:"storyId,omitempty" gorm:"size:36"`
	CommentID  *string   `json:"commentId,omitempty" gorm:"size:36"`
	IsRead     bool      `json:"isRead" gorm:"default:false;index"`
	CreatedAt  time.Time `json:"createdAt" gorm:"index"`
}

// NotificationWithDetails is a notification joined to its actor summary
// and, when a story is involved, a minimal story summary.
type NotificationWithDetails struct {
	Notification
	FromUser UserSummary   `json:"fromUser"`
	Story    *StorySummary `json:"story,omitempty"`
}
