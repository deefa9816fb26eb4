package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/storyweave/backend/internal/apperrors"
	"github.com/storyweave/backend/internal/models"
)

// PostgresStore implements Store on top of GORM. The connection must be
// opened with TranslateError enabled so unique-index violations surface
// as gorm.ErrDuplicatedKey; the composite indexes on likes and follows
// then close the check-then-insert race under concurrent load.
type PostgresStore struct {
	db *gorm.DB
}

// NewPostgresStore creates a PostgresStore and migrates the schema.
func NewPostgresStore(db *gorm.DB) (*PostgresStore, error) {
	err := db.AutoMigrate(
		&models.User{},
		&models.Story{},
		&models.Comment{},
		&models.Like{},
		&models.Follow{},
		&models.Notification{},
	)
	if err != nil {
		return nil, err
	}
	return &PostgresStore{db: db}, nil
}

func translateCreateErr(err error, conflictMsg string) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperrors.Conflict("%s", conflictMsg)
	}
	return err
}

// firstOrNil runs a First query and maps ErrRecordNotFound to (nil, nil).
func firstOrNil[T any](tx *gorm.DB) (*T, error) {
	var row T
	if err := tx.First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

// User operations

func (s *PostgresStore) CreateUser(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	err := s.db.WithContext(ctx).Create(user).Error
	return translateCreateErr(err, "username or email already exists")
}

func (s *PostgresStore) UserByID(ctx context.Context, id string) (*models.User, error) {
	return firstOrNil[models.User](s.db.WithContext(ctx).Where("id = ?", id))
}

func (s *PostgresStore) UserByUsername(ctx context.Context, username string) (*models.User, error) {
	return firstOrNil[models.User](s.db.WithContext(ctx).Where("username = ?", username))
}

func (s *PostgresStore) UserByEmail(ctx context.Context, email string) (*models.User, error) {
	return firstOrNil[models.User](s.db.WithContext(ctx).Where("email = ?", email))
}

// Story operations

func (s *PostgresStore) CreateStory(ctx context.Context, story *models.Story) error {
	if story.ID == "" {
		story.ID = uuid.NewString()
	}
	if story.PublishedAt.IsZero() {
		story.PublishedAt = time.Now()
	}
	return s.db.WithContext(ctx).Create(story).Error
}

func (s *PostgresStore) StoryByID(ctx context.Context, id string) (*models.Story, error) {
	return firstOrNil[models.Story](s.db.WithContext(ctx).Where("id = ?", id))
}

func (s *PostgresStore) UpdateStory(ctx context.Context, story *models.Story) error {
	res := s.db.WithContext(ctx).Model(&models.Story{}).Where("id = ?", story.ID).
		Select("*").Omit("id").Updates(story)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("story %s not found", story.ID)
	}
	return nil
}

func (s *PostgresStore) DeleteStory(ctx context.Context, id string) (bool, error) {
	res := s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Story{})
	return res.RowsAffected > 0, res.Error
}

func (s *PostgresStore) publishedStories(ctx context.Context, limit, offset int) *gorm.DB {
	return s.db.WithContext(ctx).
		Where("is_published = ?", true).
		Order("published_at DESC, id DESC").
		Limit(limit).Offset(offset)
}

func (s *PostgresStore) ListStories(ctx context.Context, limit, offset int) ([]models.Story, error) {
	rows := []models.Story{}
	err := s.publishedStories(ctx, limit, offset).Find(&rows).Error
	return rows, err
}

func (s *PostgresStore) ListStoriesByGenre(ctx context.Context, genre string, limit, offset int) ([]models.Story, error) {
	rows := []models.Story{}
	err := s.publishedStories(ctx, limit, offset).
		Where("LOWER(genre) = LOWER(?)", genre).
		Find(&rows).Error
	return rows, err
}

func (s *PostgresStore) SearchStories(ctx context.Context, query string, limit, offset int) ([]models.Story, error) {
	rows := []models.Story{}
	pattern := "%" + query + "%"
	err := s.publishedStories(ctx, limit, offset).
		Where("title ILIKE ? OR content ILIKE ? OR excerpt ILIKE ?", pattern, pattern, pattern).
		Find(&rows).Error
	return rows, err
}

func (s *PostgresStore) ListStoriesByAuthors(ctx context.Context, authorIDs []string, limit, offset int) ([]models.Story, error) {
	rows := []models.Story{}
	if len(authorIDs) == 0 {
		return rows, nil
	}
	err := s.publishedStories(ctx, limit, offset).
		Where("author_id IN ?", authorIDs).
		Find(&rows).Error
	return rows, err
}

// Comment operations

func (s *PostgresStore) CreateComment(ctx context.Context, comment *models.Comment) error {
	if comment.ID == "" {
		comment.ID = uuid.NewString()
	}
	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = time.Now()
	}
	return s.db.WithContext(ctx).Create(comment).Error
}

func (s *PostgresStore) CommentByID(ctx context.Context, id string) (*models.Comment, error) {
	return firstOrNil[models.Comment](s.db.WithContext(ctx).Where("id = ?", id))
}

func (s *PostgresStore) DeleteComment(ctx context.Context, id string) (bool, error) {
	res := s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Comment{})
	return res.RowsAffected > 0, res.Error
}

func (s *PostgresStore) CommentsByStory(ctx context.Context, storyID string) ([]models.Comment, error) {
	rows := []models.Comment{}
	err := s.db.WithContext(ctx).
		Where("story_id = ?", storyID).
		Order("created_at DESC, id DESC").
		Find(&rows).Error
	return rows, err
}

func (s *PostgresStore) CountCommentsByStory(ctx context.Context, storyID string) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Comment{}).
		Where("story_id = ?", storyID).Count(&count).Error
	return count, err
}

// Like operations

func (s *PostgresStore) CreateLike(ctx context.Context, like *models.Like) error {
	if like.ID == "" {
		like.ID = uuid.NewString()
	}
	if like.CreatedAt.IsZero() {
		like.CreatedAt = time.Now()
	}
	err := s.db.WithContext(ctx).Create(like).Error
	return translateCreateErr(err, "story already liked")
}

func (s *PostgresStore) LikeByStoryUser(ctx context.Context, storyID, userID string) (*models.Like, error) {
	return firstOrNil[models.Like](s.db.WithContext(ctx).
		Where("story_id = ? AND user_id = ?", storyID, userID))
}

func (s *PostgresStore) DeleteLike(ctx context.Context, storyID, userID string) (bool, error) {
	res := s.db.WithContext(ctx).
		Where("story_id = ? AND user_id = ?", storyID, userID).
		Delete(&models.Like{})
	return res.RowsAffected > 0, res.Error
}

func (s *PostgresStore) CountLikesByStory(ctx context.Context, storyID string) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Like{}).
		Where("story_id = ?", storyID).Count(&count).Error
	return count, err
}

// Follow operations

func (s *PostgresStore) CreateFollow(ctx context.Context, follow *models.Follow) error {
	if follow.ID == "" {
		follow.ID = uuid.NewString()
	}
	if follow.CreatedAt.IsZero() {
		follow.CreatedAt = time.Now()
	}
	err := s.db.WithContext(ctx).Create(follow).Error
	return translateCreateErr(err, "already following this user")
}

func (s *PostgresStore) FollowByPair(ctx context.Context, followerID, followingID string) (*models.Follow, error) {
	return firstOrNil[models.Follow](s.db.WithContext(ctx).
		Where("follower_id = ? AND following_id = ?", followerID, followingID))
}

func (s *PostgresStore) DeleteFollow(ctx context.Context, followerID, followingID string) (bool, error) {
	res := s.db.WithContext(ctx).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Delete(&models.Follow{})
	return res.RowsAffected > 0, res.Error
}

func (s *PostgresStore) CountFollowers(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Follow{}).
		Where("following_id = ?", userID).Count(&count).Error
	return count, err
}

func (s *PostgresStore) CountFollowing(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Follow{}).
		Where("follower_id = ?", userID).Count(&count).Error
	return count, err
}

func (s *PostgresStore) FollowingIDs(ctx context.Context, followerID string) ([]string, error) {
	var ids []string
	err := s.db.WithContext(ctx).Model(&models.Follow{}).
		Where("follower_id = ?", followerID).
		Pluck("following_id", &ids).Error
	return ids, err
}

// Notification operations

func (s *PostgresStore) CreateNotification(ctx context.Context, notification *models.Notification) error {
	if notification.ID == "" {
		notification.ID = uuid.NewString()
	}
	if notification.CreatedAt.IsZero() {
		notification.CreatedAt = time.Now()
	}
	return s.db.WithContext(ctx).Create(notification).Error
}

func (s *PostgresStore) NotificationsByUser(ctx context.Context, userID string) ([]models.Notification, error) {
	rows := []models.Notification{}
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&rows).Error
	return rows, err
}

func (s *PostgresStore) MarkNotificationRead(ctx context.Context, id string) (bool, error) {
	// Matching on id alone keeps the transition idempotent: re-marking a
	// read notification still affects one row.
	res := s.db.WithContext(ctx).Model(&models.Notification{}).
		Where("id = ?", id).Update("is_read", true)
	return res.RowsAffected > 0, res.Error
}

func (s *PostgresStore) CountUnreadNotifications(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Notification{}).
		Where("user_id = ? AND is_read = false", userID).Count(&count).Error
	return count, err
}

var _ Store = (*PostgresStore)(nil)
