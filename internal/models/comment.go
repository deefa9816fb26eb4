package models

import "time"

// Comment belongs to a story. Comments are immutable once created.
type Comment struct {
	ID        string    `json:"id" gorm:"primaryKey;size:36"`
	Content   string    `json:"content"`
	StoryID   string    `json:"storyId" gorm:"index;size:36"`
	AuthorID  string    `json:"authorId" gorm:"index;size:36"`
	CreatedAt time.Time `json:"createdAt"`
}

// CommentWithAuthor is a comment joined to its author summary.
type CommentWithAuthor struct {
	Comment
	Author UserSummary `json:"author"`
}

// CreateCommentRequest is the payload for commenting on a story.
type CreateCommentRequest struct {
	Content string `json:"content" validate:"required,min=1,max=1000"`
}
