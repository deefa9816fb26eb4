package store

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/storyweave/backend/internal/apperrors"
	"github.com/storyweave/backend/internal/models"
)

// MemoryStore is a map-backed Store. A single RWMutex serializes all
// mutations, so the check inside CreateLike/CreateFollow is atomic with
// the insert and concurrent requests cannot admit duplicate pairs.
type MemoryStore struct {
	mu            sync.RWMutex
	users         map[string]models.User
	stories       map[string]models.Story
	comments      map[string]models.Comment
	likes         map[string]models.Like
	follows       map[string]models.Follow
	notifications map[string]models.Notification
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:         make(map[string]models.User),
		stories:       make(map[string]models.Story),
		comments:      make(map[string]models.Comment),
		likes:         make(map[string]models.Like),
		follows:       make(map[string]models.Follow),
		notifications: make(map[string]models.Notification),
	}
}

func newID() string { return uuid.NewString() }

// paginate slices rows to the (limit, offset) window. An offset beyond
// the result count yields an empty slice, never an error.
func paginate[T any](rows []T, limit, offset int) []T {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(rows) {
		return []T{}
	}
	rows = rows[offset:]
	if limit >= 0 && limit < len(rows) {
		rows = rows[:limit]
	}
	return rows
}

func sortStoriesDesc(rows []models.Story) {
	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].PublishedAt.Equal(rows[j].PublishedAt) {
			return rows[i].PublishedAt.After(rows[j].PublishedAt)
		}
		return rows[i].ID > rows[j].ID
	})
}

// User operations

func (s *MemoryStore) CreateUser(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if user.ID == "" {
		user.ID = newID()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	for _, u := range s.users {
		if u.Username == user.Username || u.Email == user.Email {
			return apperrors.Conflict("username or email already exists")
		}
	}
	s.users[user.ID] = *user
	return nil
}

func (s *MemoryStore) UserByID(_ context.Context, id string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if u, ok := s.users[id]; ok {
		return &u, nil
	}
	return nil, nil
}

func (s *MemoryStore) UserByUsername(_ context.Context, username string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Username == username {
			u := u
			return &u, nil
		}
	}
	return nil, nil
}

func (s *MemoryStore) UserByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, nil
}

// Story operations

func (s *MemoryStore) CreateStory(_ context.Context, story *models.Story) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if story.ID == "" {
		story.ID = newID()
	}
	if story.PublishedAt.IsZero() {
		story.PublishedAt = time.Now()
	}
	s.stories[story.ID] = *story
	return nil
}

func (s *MemoryStore) StoryByID(_ context.Context, id string) (*models.Story, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if st, ok := s.stories[id]; ok {
		return &st, nil
	}
	return nil, nil
}

func (s *MemoryStore) UpdateStory(_ context.Context, story *models.Story) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.stories[story.ID]; !ok {
		return apperrors.NotFound("story %s not found", story.ID)
	}
	s.stories[story.ID] = *story
	return nil
}

func (s *MemoryStore) DeleteStory(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.stories[id]; !ok {
		return false, nil
	}
	delete(s.stories, id)
	return true, nil
}

func (s *MemoryStore) listStories(match func(models.Story) bool, limit, offset int) []models.Story {
	s.mu.RLock()
	var rows []models.Story
	for _, st := range s.stories {
		if st.IsPublished && match(st) {
			rows = append(rows, st)
		}
	}
	s.mu.RUnlock()
	sortStoriesDesc(rows)
	return paginate(rows, limit, offset)
}

func (s *MemoryStore) ListStories(_ context.Context, limit, offset int) ([]models.Story, error) {
	return s.listStories(func(models.Story) bool { return true }, limit, offset), nil
}

func (s *MemoryStore) ListStoriesByGenre(_ context.Context, genre string, limit, offset int) ([]models.Story, error) {
	return s.listStories(func(st models.Story) bool {
		return strings.EqualFold(st.Genre, genre)
	}, limit, offset), nil
}

func (s *MemoryStore) SearchStories(_ context.Context, query string, limit, offset int) ([]models.Story, error) {
	q := strings.ToLower(query)
	return s.listStories(func(st models.Story) bool {
		return strings.Contains(strings.ToLower(st.Title), q) ||
			strings.Contains(strings.ToLower(st.Content), q) ||
			strings.Contains(strings.ToLower(st.Excerpt), q)
	}, limit, offset), nil
}

func (s *MemoryStore) ListStoriesByAuthors(_ context.Context, authorIDs []string, limit, offset int) ([]models.Story, error) {
	allowed := make(map[string]bool, len(authorIDs))
	for _, id := range authorIDs {
		allowed[id] = true
	}
	return s.listStories(func(st models.Story) bool {
		return allowed[st.AuthorID]
	}, limit, offset), nil
}

// Comment operations

func (s *MemoryStore) CreateComment(_ context.Context, comment *models.Comment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if comment.ID == "" {
		comment.ID = newID()
	}
	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = time.Now()
	}
	s.comments[comment.ID] = *comment
	return nil
}

func (s *MemoryStore) CommentByID(_ context.Context, id string) (*models.Comment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if c, ok := s.comments[id]; ok {
		return &c, nil
	}
	return nil, nil
}

func (s *MemoryStore) DeleteComment(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.comments[id]; !ok {
		return false, nil
	}
	delete(s.comments, id)
	return true, nil
}

func (s *MemoryStore) CommentsByStory(_ context.Context, storyID string) ([]models.Comment, error) {
	s.mu.RLock()
	var rows []models.Comment
	for _, c := range s.comments {
		if c.StoryID == storyID {
			rows = append(rows, c)
		}
	}
	s.mu.RUnlock()
	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].CreatedAt.Equal(rows[j].CreatedAt) {
			return rows[i].CreatedAt.After(rows[j].CreatedAt)
		}
		return rows[i].ID > rows[j].ID
	})
	return rows, nil
}

func (s *MemoryStore) CountCommentsByStory(_ context.Context, storyID string) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var n int64
	for _, c := range s.comments {
		if c.StoryID == storyID {
			n++
		}
	}
	return n, nil
}

// Like operations

func (s *MemoryStore) CreateLike(_ context.Context, like *models.Like) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, l := range s.likes {
		if l.StoryID == like.StoryID && l.UserID == like.UserID {
			return apperrors.Conflict("story already liked")
		}
	}
	if like.ID == "" {
		like.ID = newID()
	}
	if like.CreatedAt.IsZero() {
		like.CreatedAt = time.Now()
	}
	s.likes[like.ID] = *like
	return nil
}

func (s *MemoryStore) LikeByStoryUser(_ context.Context, storyID, userID string) (*models.Like, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, l := range s.likes {
		if l.StoryID == storyID && l.UserID == userID {
			l := l
			return &l, nil
		}
	}
	return nil, nil
}

func (s *MemoryStore) DeleteLike(_ context.Context, storyID, userID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, l := range s.likes {
		if l.StoryID == storyID && l.UserID == userID {
			delete(s.likes, id)
			return true, nil
		}
	}
	return false, nil
}

func (s *MemoryStore) CountLikesByStory(_ context.Context, storyID string) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var n int64
	for _, l := range s.likes {
		if l.StoryID == storyID {
			n++
		}
	}
	return n, nil
}

// Follow operations

func (s *MemoryStore) CreateFollow(_ context.Context, follow *models.Follow) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, f := range s.follows {
		if f.FollowerID == follow.FollowerID && f.FollowingID == follow.FollowingID {
			return apperrors.Conflict("already following this user")
		}
	}
	if follow.ID == "" {
		follow.ID = newID()
	}
	if follow.CreatedAt.IsZero() {
		follow.CreatedAt = time.Now()
	}
	s.follows[follow.ID] = *follow
	return nil
}

func (s *MemoryStore) FollowByPair(_ context.Context, followerID, followingID string) (*models.Follow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, f := range s.follows {
		if f.FollowerID == followerID && f.FollowingID == followingID {
			f := f
			return &f, nil
		}
	}
	return nil, nil
}

func (s *MemoryStore) DeleteFollow(_ context.Context, followerID, followingID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, f := range s.follows {
		if f.FollowerID == followerID && f.FollowingID == followingID {
			delete(s.follows, id)
			return true, nil
		}
	}
	return false, nil
}

func (s *MemoryStore) CountFollowers(_ context.Context, userID string) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var n int64
	for _, f := range s.follows {
		if f.FollowingID == userID {
			n++
		}
	}
	return n, nil
}

func (s *MemoryStore) CountFollowing(_ context.Context, userID string) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var n int64
	for _, f := range s.follows {
		if f.FollowerID == userID {
			n++
		}
	}
	return n, nil
}

func (s *MemoryStore) FollowingIDs(_ context.Context, followerID string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var ids []string
	for _, f := range s.follows {
		if f.FollowerID == followerID {
			ids = append(ids, f.FollowingID)
		}
	}
	return ids, nil
}

// Notification operations

func (s *MemoryStore) CreateNotification(_ context.Context, notification *models.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if notification.ID == "" {
		notification.ID = newID()
	}
	if notification.CreatedAt.IsZero() {
		notification.CreatedAt = time.Now()
	}
	s.notifications[notification.ID] = *notification
	return nil
}

func (s *MemoryStore) NotificationsByUser(_ context.Context, userID string) ([]models.Notification, error) {
	s.mu.RLock()
	var rows []models.Notification
	for _, n := range s.notifications {
		if n.UserID == userID {
			rows = append(rows, n)
		}
	}
	s.mu.RUnlock()
	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].CreatedAt.Equal(rows[j].CreatedAt) {
			return rows[i].CreatedAt.After(rows[j].CreatedAt)
		}
		return rows[i].ID > rows[j].ID
	})
	return rows, nil
}

func (s *MemoryStore) MarkNotificationRead(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, ok := s.notifications[id]
	if !ok {
		return false, nil
	}
	n.IsRead = true
	s.notifications[id] = n
	return true, nil
}

func (s *MemoryStore) CountUnreadNotifications(_ context.Context, userID string) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var n int64
	for _, notif := range s.notifications {
		if notif.UserID == userID && !notif.IsRead {
			n++
		}
	}
	return n, nil
}

var _ Store = (*MemoryStore)(nil)
