package models

import "time"

// Story is a published piece of writing, owned exclusively by its author.
type Story struct {
	ID          string    `json:"id" gorm:"primaryKey;size:36"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	Excerpt     string    `json:"excerpt"`
	Genre       string    `json:"genre" gorm:"index"`
	CoverImage  *string   `json:"coverImage,omitempty"`
	AuthorID    string    `json:"authorId" gorm:"index;size:36"`
	PublishedAt time.Time `json:"publishedAt" gorm:"index"`
	ReadTime    int       `json:"readTime"` // minutes
	IsPublished bool      `json:"isPublished" gorm:"default:true"`
}

// StorySummary is the minimal story shape attached to notifications.
type StorySummary struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// Summary returns the id/title pair used in notification payloads.
func (s *Story) Summary() StorySummary {
	return StorySummary{ID: s.ID, Title: s.Title}
}

// StoryWithAuthor is a story joined to its author summary and fresh
// like/comment counts. IsLiked is nil when no viewer is present, which is
// distinct from an authenticated viewer who has not liked the story.
type StoryWithAuthor struct {
	Story
	Author        UserSummary `json:"author"`
	LikesCount    int64       `json:"likesCount"`
	CommentsCount int64       `json:"commentsCount"`
	IsLiked       *bool       `json:"isLiked,omitempty"`
}

// CreateStoryRequest is the payload for publishing a story.
type CreateStoryRequest struct {
	Title      string  `json:"title" validate:"required,min=3,max=200"`
	Content    string  `json:"content" validate:"required"`
	Excerpt    string  `json:"excerpt" validate:"required,min=10,max=500"`
	Genre      string  `json:"genre" validate:"required,max=50"`
	CoverImage *string `json:"coverImage,omitempty" validate:"omitempty,url"`
	ReadTime   int     `json:"readTime" validate:"required,gte=1"`
}

// UpdateStoryRequest is the payload for editing a story. All fields are
// optional; absent fields keep their current value.
type UpdateStoryRequest struct {
	Title      *string `json:"title,omitempty" validate:"omitempty,min=3,max=200"`
	Content    *string `json:"content,omitempty" validate:"omitempty,min=1"`
	Excerpt    *string `json:"excerpt,omitempty" validate:"omitempty,min=10,max=500"`
	Genre      *string `json:"genre,omitempty" validate:"omitempty,max=50"`
	CoverImage *string `json:"coverImage,omitempty" validate:"omitempty,url"`
	ReadTime   *int    `json:"readTime,omitempty" validate:"omitempty,gte=1"`
}
