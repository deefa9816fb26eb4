package notify

import (
	"context"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storyweave/backend/internal/apperrors"
	"github.com/storyweave/backend/internal/models"
	"github.com/storyweave/backend/internal/store"
)

func testFanout(t *testing.T) (*Fanout, *store.MemoryStore) {
	t.Helper()
	st := store.NewMemoryStore()
	log := logrus.New()
	log.SetOutput(io.Discard)
	return NewFanout(st, log), st
}

func seedUser(t *testing.T, st store.Store, username string) *models.User {
	t.Helper()
	u := &models.User{
		Username:    username,
		Email:       username + "@example.com",
		Password:    "hashed",
		DisplayName: username,
	}
	require.NoError(t, st.CreateUser(context.Background(), u))
	return u
}

func TestSelfLikeNeverNotifies(t *testing.T) {
	fanout, st := testFanout(t)
	ctx := context.Background()

	jane := seedUser(t, st, "jane")
	story := &models.Story{ID: "s1", Title: "Mine", AuthorID: jane.ID}

	fanout.StoryLiked(ctx, story, jane.ID)

	rows, err := st.NotificationsByUser(ctx, jane.ID)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestLikeByOtherNotifiesAuthorExactlyOnce(t *testing.T) {
	fanout, st := testFanout(t)
	ctx := context.Background()

	jane := seedUser(t, st, "jane")
	mike := seedUser(t, st, "mike")
	story := &models.Story{ID: "s1", Title: "Jane's", AuthorID: jane.ID}

	fanout.StoryLiked(ctx, story, mike.ID)

	rows, err := st.NotificationsByUser(ctx, jane.ID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	n := rows[0]
	assert.Equal(t, models.NotificationLike, n.Type)
	assert.Equal(t, jane.ID, n.UserID)
	assert.Equal(t, mike.ID, n.FromUserID)
	require.NotNil(t, n.StoryID)
	assert.Equal(t, story.ID, *n.StoryID)
	assert.Nil(t, n.CommentID)
	assert.False(t, n.IsRead)
}

func TestCommentNotificationCarriesCommentID(t *testing.T) {
	fanout, st := testFanout(t)
	ctx := context.Background()

	jane := seedUser(t, st, "jane")
	mike := seedUser(t, st, "mike")
	story := &models.Story{ID: "s1", Title: "Jane's", AuthorID: jane.ID}
	comment := &models.Comment{ID: "c1", StoryID: story.ID, AuthorID: mike.ID, Content: "hi"}

	fanout.StoryCommented(ctx, story, comment, mike.ID)
	fanout.StoryCommented(ctx, story, comment, jane.ID) // self-comment, suppressed

	rows, err := st.NotificationsByUser(ctx, jane.ID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, models.NotificationComment, rows[0].Type)
	require.NotNil(t, rows[0].CommentID)
	assert.Equal(t, comment.ID, *rows[0].CommentID)
}

func TestFollowNotifiesTarget(t *testing.T) {
	fanout, st := testFanout(t)
	ctx := context.Background()

	jane := seedUser(t, st, "jane")
	mike := seedUser(t, st, "mike")

	fanout.UserFollowed(ctx, mike.ID, jane.ID)

	rows, err := st.NotificationsByUser(ctx, jane.ID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, models.NotificationFollow, rows[0].Type)
	assert.Equal(t, mike.ID, rows[0].FromUserID)
	assert.Nil(t, rows[0].StoryID)
}

func TestNotificationsForJoinsActorAndStorySummary(t *testing.T) {
	fanout, st := testFanout(t)
	ctx := context.Background()

	jane := seedUser(t, st, "jane")
	mike := seedUser(t, st, "mike")
	story := &models.Story{Title: "The Magical Forest", AuthorID: jane.ID, IsPublished: true}
	require.NoError(t, st.CreateStory(ctx, story))

	fanout.StoryLiked(ctx, story, mike.ID)
	fanout.UserFollowed(ctx, mike.ID, jane.ID)

	rows, err := fanout.NotificationsFor(ctx, jane.ID)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	for _, n := range rows {
		assert.Equal(t, mike.Username, n.FromUser.Username)
		if n.Type == models.NotificationLike {
			require.NotNil(t, n.Story)
			assert.Equal(t, story.ID, n.Story.ID)
			assert.Equal(t, "The Magical Forest", n.Story.Title)
		} else {
			assert.Nil(t, n.Story)
		}
	}
}

func TestNotificationsForSkipsDanglingActor(t *testing.T) {
	fanout, st := testFanout(t)
	ctx := context.Background()

	jane := seedUser(t, st, "jane")
	mike := seedUser(t, st, "mike")

	require.NoError(t, st.CreateNotification(ctx, &models.Notification{
		Type:       models.NotificationFollow,
		UserID:     jane.ID,
		FromUserID: "deleted-user",
	}))
	fanout.UserFollowed(ctx, mike.ID, jane.ID)

	rows, err := fanout.NotificationsFor(ctx, jane.ID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, mike.ID, rows[0].FromUserID)
}

func TestMarkReadIsIdempotent(t *testing.T) {
	fanout, st := testFanout(t)
	ctx := context.Background()

	jane := seedUser(t, st, "jane")
	mike := seedUser(t, st, "mike")
	story := &models.Story{ID: "s1", Title: "Jane's", AuthorID: jane.ID}
	fanout.StoryLiked(ctx, story, mike.ID)

	rows, err := st.NotificationsByUser(ctx, jane.ID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	id := rows[0].ID

	count, err := fanout.UnreadCount(ctx, jane.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	require.NoError(t, fanout.MarkRead(ctx, id))
	require.NoError(t, fanout.MarkRead(ctx, id))

	rows, err = st.NotificationsByUser(ctx, jane.ID)
	require.NoError(t, err)
	assert.True(t, rows[0].IsRead)

	count, err = fanout.UnreadCount(ctx, jane.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	err = fanout.MarkRead(ctx, "missing")
	assert.True(t, apperrors.IsNotFound(err))
}
