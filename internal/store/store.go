// Package store owns canonical records for users, stories, comments,
// likes, follows and notifications. The Store interface is the single
// capability contract the aggregation, feed and fan-out layers are
// written against; memory and postgres adapters implement it
// interchangeably.
package store

import (
	"context"

	"github.com/storyweave/backend/internal/models"
)

// Store is the entity-storage capability contract.
//
// Lookup methods return (nil, nil) when no record exists; absence is not
// an error at this layer. Delete methods return whether a record existed
// and was removed. List methods order stories by publishedAt descending
// (id descending as tie-break) and comments/notifications by createdAt
// descending.
type Store interface {
	// User operations. CreateUser assumes the caller has verified
	// username and email uniqueness; the postgres adapter backstops the
	// check with unique indexes.
	CreateUser(ctx context.Context, user *models.User) error
	UserByID(ctx context.Context, id string) (*models.User, error)
	UserByUsername(ctx context.Context, username string) (*models.User, error)
	UserByEmail(ctx context.Context, email string) (*models.User, error)

	// Story operations. List methods return published stories only.
	CreateStory(ctx context.Context, story *models.Story) error
	StoryByID(ctx context.Context, id string) (*models.Story, error)
	UpdateStory(ctx context.Context, story *models.Story) error
	DeleteStory(ctx context.Context, id string) (bool, error)
	ListStories(ctx context.Context, limit, offset int) ([]models.Story, error)
	ListStoriesByGenre(ctx context.Context, genre string, limit, offset int) ([]models.Story, error)
	SearchStories(ctx context.Context, query string, limit, offset int) ([]models.Story, error)
	ListStoriesByAuthors(ctx context.Context, authorIDs []string, limit, offset int) ([]models.Story, error)

	// Comment operations.
	CreateComment(ctx context.Context, comment *models.Comment) error
	CommentByID(ctx context.Context, id string) (*models.Comment, error)
	DeleteComment(ctx context.Context, id string) (bool, error)
	CommentsByStory(ctx context.Context, storyID string) ([]models.Comment, error)
	CountCommentsByStory(ctx context.Context, storyID string) (int64, error)

	// Like operations. Duplicate prevention for the common path lives in
	// the social service; CreateLike still rejects a duplicate pair
	// rather than silently absorbing it.
	CreateLike(ctx context.Context, like *models.Like) error
	LikeByStoryUser(ctx context.Context, storyID, userID string) (*models.Like, error)
	DeleteLike(ctx context.Context, storyID, userID string) (bool, error)
	CountLikesByStory(ctx context.Context, storyID string) (int64, error)

	// Follow operations. Same duplicate-prevention contract as likes;
	// self-follow rejection is a caller-level invariant.
	CreateFollow(ctx context.Context, follow *models.Follow) error
	FollowByPair(ctx context.Context, followerID, followingID string) (*models.Follow, error)
	DeleteFollow(ctx context.Context, followerID, followingID string) (bool, error)
	CountFollowers(ctx context.Context, userID string) (int64, error)
	CountFollowing(ctx context.Context, userID string) (int64, error)
	FollowingIDs(ctx context.Context, followerID string) ([]string, error)

	// Notification operations. MarkNotificationRead is idempotent:
	// marking an already-read notification returns true, marking a
	// missing one returns false.
	CreateNotification(ctx context.Context, notification *models.Notification) error
	NotificationsByUser(ctx context.Context, userID string) ([]models.Notification, error)
	MarkNotificationRead(ctx context.Context, id string) (bool, error)
	CountUnreadNotifications(ctx context.Context, userID string) (int64, error)
}
