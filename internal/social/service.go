// Package social owns the mutation paths of the platform and the
// invariants around them: uniqueness of likes and follows, self-follow
// rejection, and owner-only story edits. Each successful like, comment
// or follow triggers notification fan-out.
package social

import (
	"context"

	"github.com/storyweave/backend/internal/apperrors"
	"github.com/storyweave/backend/internal/models"
	"github.com/storyweave/backend/internal/notify"
	"github.com/storyweave/backend/internal/store"
)

// Service coordinates entity mutations against the store.
type Service struct {
	store  store.Store
	fanout *notify.Fanout
}

// NewService creates a Service.
func NewService(st store.Store, fanout *notify.Fanout) *Service {
	return &Service{store: st, fanout: fanout}
}

// RegisterUser creates an account after verifying username and email
// uniqueness. The password is expected to be hashed already.
func (s *Service) RegisterUser(ctx context.Context, user *models.User) error {
	existing, err := s.store.UserByUsername(ctx, user.Username)
	if err != nil {
		return err
	}
	if existing != nil {
		return apperrors.Conflict("username already exists")
	}
	existing, err = s.store.UserByEmail(ctx, user.Email)
	if err != nil {
		return err
	}
	if existing != nil {
		return apperrors.Conflict("email already exists")
	}
	return s.store.CreateUser(ctx, user)
}

// Profile returns a user's public profile with social-graph counts.
func (s *Service) Profile(ctx context.Context, userID string) (*models.UserProfile, error) {
	user, err := s.store.UserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.NotFound("user not found")
	}
	followers, err := s.store.CountFollowers(ctx, userID)
	if err != nil {
		return nil, err
	}
	following, err := s.store.CountFollowing(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &models.UserProfile{
		UserSummary:    user.Summary(),
		Bio:            user.Bio,
		FollowersCount: followers,
		FollowingCount: following,
	}, nil
}

// CreateStory publishes a new story owned by authorID.
func (s *Service) CreateStory(ctx context.Context, authorID string, req *models.CreateStoryRequest) (*models.Story, error) {
	story := &models.Story{
		Title:       req.Title,
		Content:     req.Content,
		Excerpt:     req.Excerpt,
		Genre:       req.Genre,
		CoverImage:  req.CoverImage,
		AuthorID:    authorID,
		ReadTime:    req.ReadTime,
		IsPublished: true,
	}
	if err := s.store.CreateStory(ctx, story); err != nil {
		return nil, err
	}
	return story, nil
}

// UpdateStory applies a partial edit. Only the owning author may edit.
func (s *Service) UpdateStory(ctx context.Context, storyID, actorID string, req *models.UpdateStoryRequest) (*models.Story, error) {
	story, err := s.store.StoryByID(ctx, storyID)
	if err != nil {
		return nil, err
	}
	if story == nil {
		return nil, apperrors.NotFound("story not found")
	}
	if story.AuthorID != actorID {
		return nil, apperrors.Forbidden("not authorized to edit this story")
	}
	if req.Title != nil {
		story.Title = *req.Title
	}
	if req.Content != nil {
		story.Content = *req.Content
	}
	if req.Excerpt != nil {
		story.Excerpt = *req.Excerpt
	}
	if req.Genre != nil {
		story.Genre = *req.Genre
	}
	if req.CoverImage != nil {
		story.CoverImage = req.CoverImage
	}
	if req.ReadTime != nil {
		story.ReadTime = *req.ReadTime
	}
	if err := s.store.UpdateStory(ctx, story); err != nil {
		return nil, err
	}
	return story, nil
}

// DeleteStory removes a story. Only the owning author may delete.
// Comments, likes and notifications referencing the story are left in
// place; there is no cascading delete.
func (s *Service) DeleteStory(ctx context.Context, storyID, actorID string) error {
	story, err := s.store.StoryByID(ctx, storyID)
	if err != nil {
		return err
	}
	if story == nil {
		return apperrors.NotFound("story not found")
	}
	if story.AuthorID != actorID {
		return apperrors.Forbidden("not authorized to delete this story")
	}
	deleted, err := s.store.DeleteStory(ctx, storyID)
	if err != nil {
		return err
	}
	if !deleted {
		return apperrors.NotFound("story not found")
	}
	return nil
}

// AddComment creates a comment and notifies the story's author unless
// they commented on their own story.
func (s *Service) AddComment(ctx context.Context, storyID, authorID, content string) (*models.Comment, error) {
	story, err := s.store.StoryByID(ctx, storyID)
	if err != nil {
		return nil, err
	}
	if story == nil {
		return nil, apperrors.NotFound("story not found")
	}
	comment := &models.Comment{
		Content:  content,
		StoryID:  storyID,
		AuthorID: authorID,
	}
	if err := s.store.CreateComment(ctx, comment); err != nil {
		return nil, err
	}
	s.fanout.StoryCommented(ctx, story, comment, authorID)
	return comment, nil
}

// DeleteComment removes a comment. Only the comment's author may delete.
func (s *Service) DeleteComment(ctx context.Context, commentID, actorID string) error {
	comment, err := s.store.CommentByID(ctx, commentID)
	if err != nil {
		return err
	}
	if comment == nil {
		return apperrors.NotFound("comment not found")
	}
	if comment.AuthorID != actorID {
		return apperrors.Forbidden("not authorized to delete this comment")
	}
	deleted, err := s.store.DeleteComment(ctx, commentID)
	if err != nil {
		return err
	}
	if !deleted {
		return apperrors.NotFound("comment not found")
	}
	return nil
}

// LikeStory records a like and notifies the story's author unless they
// liked their own story. A second like of the same story by the same
// user is rejected with a conflict, never silently absorbed.
func (s *Service) LikeStory(ctx context.Context, storyID, userID string) (*models.Like, error) {
	story, err := s.store.StoryByID(ctx, storyID)
	if err != nil {
		return nil, err
	}
	if story == nil {
		return nil, apperrors.NotFound("story not found")
	}
	existing, err := s.store.LikeByStoryUser(ctx, storyID, userID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.Conflict("story already liked")
	}
	like := &models.Like{StoryID: storyID, UserID: userID}
	if err := s.store.CreateLike(ctx, like); err != nil {
		return nil, err
	}
	s.fanout.StoryLiked(ctx, story, userID)
	return like, nil
}

// UnlikeStory removes a like. Unliking a story with no existing like is
// not-found; counts are unaffected.
func (s *Service) UnlikeStory(ctx context.Context, storyID, userID string) error {
	deleted, err := s.store.DeleteLike(ctx, storyID, userID)
	if err != nil {
		return err
	}
	if !deleted {
		return apperrors.NotFound("like not found")
	}
	return nil
}

// FollowUser records a follow and notifies the target. Self-follow and
// duplicate follows are rejected.
func (s *Service) FollowUser(ctx context.Context, followerID, followingID string) (*models.Follow, error) {
	if followerID == followingID {
		return nil, apperrors.Conflict("cannot follow yourself")
	}
	target, err := s.store.UserByID(ctx, followingID)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, apperrors.NotFound("user not found")
	}
	existing, err := s.store.FollowByPair(ctx, followerID, followingID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.Conflict("already following this user")
	}
	follow := &models.Follow{FollowerID: followerID, FollowingID: followingID}
	if err := s.store.CreateFollow(ctx, follow); err != nil {
		return nil, err
	}
	s.fanout.UserFollowed(ctx, followerID, followingID)
	return follow, nil
}

// UnfollowUser removes a follow relationship.
func (s *Service) UnfollowUser(ctx context.Context, followerID, followingID string) error {
	deleted, err := s.store.DeleteFollow(ctx, followerID, followingID)
	if err != nil {
		return err
	}
	if !deleted {
		return apperrors.NotFound("follow not found")
	}
	return nil
}
