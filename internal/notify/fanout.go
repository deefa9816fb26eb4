// Package notify translates social actions into recipient-facing
// notification records and assembles the detailed read view.
package notify

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/storyweave/backend/internal/apperrors"
	"github.com/storyweave/backend/internal/models"
	"github.com/storyweave/backend/internal/store"
)

// Fanout creates notifications as a synchronous, best-effort side effect
// of likes, comments and follows. A failed insert is logged and never
// fails the primary action; the fan-out is deliberately not transactional
// with it.
type Fanout struct {
	store store.Store
	log   *logrus.Logger
}

// NewFanout creates a Fanout backed by the given store.
func NewFanout(st store.Store, log *logrus.Logger) *Fanout {
	return &Fanout{store: st, log: log}
}

// StoryLiked notifies the story's author that actorID liked it. Liking
// your own story never notifies.
func (f *Fanout) StoryLiked(ctx context.Context, story *models.Story, actorID string) {
	if story.AuthorID == actorID {
		return
	}
	f.create(ctx, &models.Notification{
		Type:       models.NotificationLike,
		UserID:     story.AuthorID,
		FromUserID: actorID,
		StoryID:    &story.ID,
	})
}

// StoryCommented notifies the story's author that actorID commented.
// Commenting on your own story never notifies.
func (f *Fanout) StoryCommented(ctx context.Context, story *models.Story, comment *models.Comment, actorID string) {
	if story.AuthorID == actorID {
		return
	}
	f.create(ctx, &models.Notification{
		Type:       models.NotificationComment,
		UserID:     story.AuthorID,
		FromUserID: actorID,
		StoryID:    &story.ID,
		CommentID:  &comment.ID,
	})
}

// UserFollowed notifies followingID that followerID started following
// them. Self-follow is rejected upstream and never reaches here.
func (f *Fanout) UserFollowed(ctx context.Context, followerID, followingID string) {
	if followerID == followingID {
		return
	}
	f.create(ctx, &models.Notification{
		Type:       models.NotificationFollow,
		UserID:     followingID,
		FromUserID: followerID,
	})
}

func (f *Fanout) create(ctx context.Context, n *models.Notification) {
	if err := f.store.CreateNotification(ctx, n); err != nil {
		f.log.WithFields(logrus.Fields{
			"type":      n.Type,
			"user_id":   n.UserID,
			"from_user": n.FromUserID,
		}).WithError(err).Warn("notification fan-out failed")
	}
}

// NotificationsFor returns the recipient's notifications, newest first,
// each joined to the actor summary and a minimal story summary when a
// story is involved. A notification whose actor no longer resolves is
// skipped with a warning rather than surfaced with null fields.
func (f *Fanout) NotificationsFor(ctx context.Context, userID string) ([]models.NotificationWithDetails, error) {
	notifications, err := f.store.NotificationsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	result := make([]models.NotificationWithDetails, 0, len(notifications))
	for _, n := range notifications {
		fromUser, err := f.store.UserByID(ctx, n.FromUserID)
		if err != nil {
			return nil, err
		}
		if fromUser == nil {
			f.log.WithFields(logrus.Fields{
				"notification_id": n.ID,
				"from_user":       n.FromUserID,
			}).Warn("skipping notification with missing actor")
			continue
		}
		detail := models.NotificationWithDetails{
			Notification: n,
			FromUser:     fromUser.Summary(),
		}
		if n.StoryID != nil {
			story, err := f.store.StoryByID(ctx, *n.StoryID)
			if err != nil {
				return nil, err
			}
			if story != nil {
				summary := story.Summary()
				detail.Story = &summary
			}
		}
		result = append(result, detail)
	}
	return result, nil
}

// MarkRead performs the one-way unread -> read transition. It is
// idempotent: re-marking a read notification succeeds.
func (f *Fanout) MarkRead(ctx context.Context, id string) error {
	ok, err := f.store.MarkNotificationRead(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return apperrors.NotFound("notification not found")
	}
	return nil
}

// UnreadCount returns the number of unread notifications for a user.
func (f *Fanout) UnreadCount(ctx context.Context, userID string) (int64, error) {
	return f.store.CountUnreadNotifications(ctx, userID)
}
