package models

import "time"

// Like records that a user liked a story. At most one like may exist per
// (story, user) pair; the postgres backend enforces this with a unique
// composite index as a backstop to the service-level check.
type Like struct {
	ID        string    `json:"id" gorm:"primaryKey;size:36"`
	StoryID   string    `json:"storyId" gorm:"index;uniqueIndex:idx_story_user;size:36"`
	UserID    string    `json:"userId" gorm:"index;uniqueIndex:idx_story_user;size:36"`
	CreatedAt time.Time `json:"createdAt"`
}
