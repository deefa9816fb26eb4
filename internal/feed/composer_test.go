package feed

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storyweave/backend/internal/apperrors"
	"github.com/storyweave/backend/internal/models"
	"github.com/storyweave/backend/internal/store"
)

func testComposer(t *testing.T) (*Composer, *store.MemoryStore) {
	t.Helper()
	st := store.NewMemoryStore()
	log := logrus.New()
	log.SetOutput(io.Discard)
	return NewComposer(st, log), st
}

func mustUser(t *testing.T, st store.Store, username string) *models.User {
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

func mustStory(t *testing.T, st store.Store, authorID, title string, publishedAt time.Time) *models.Story {
	t.Helper()
	s := &models.Story{
		Title:       title,
		Content:     "Once upon a time there was a story about " + title + ".",
		Excerpt:     "An excerpt about " + title + ".",
		Genre:       "Fantasy",
		AuthorID:    authorID,
		PublishedAt: publishedAt,
		ReadTime:    5,
		IsPublished: true,
	}
	require.NoError(t, st.CreateStory(context.Background(), s))
	return s
}

func TestStoryByIDJoinsAuthorAndCounts(t *testing.T) {
	composer, st := testComposer(t)
	ctx := context.Background()

	jane := mustUser(t, st, "jane")
	mike := mustUser(t, st, "mike")
	story := mustStory(t, st, jane.ID, "The Magical Forest", time.Now())

	require.NoError(t, st.CreateLike(ctx, &models.Like{StoryID: story.ID, UserID: mike.ID}))
	require.NoError(t, st.CreateComment(ctx, &models.Comment{StoryID: story.ID, AuthorID: mike.ID, Content: "nice"}))

	got, err := composer.StoryByID(ctx, story.ID, "")
	require.NoError(t, err)
	assert.Equal(t, jane.Username, got.Author.Username)
	assert.Equal(t, int64(1), got.LikesCount)
	assert.Equal(t, int64(1), got.CommentsCount)
	assert.Nil(t, got.IsLiked, "no viewer means no isLiked field")

	got, err = composer.StoryByID(ctx, story.ID, mike.ID)
	require.NoError(t, err)
	require.NotNil(t, got.IsLiked)
	assert.True(t, *got.IsLiked)

	got, err = composer.StoryByID(ctx, story.ID, jane.ID)
	require.NoError(t, err)
	require.NotNil(t, got.IsLiked)
	assert.False(t, *got.IsLiked, "authenticated non-liker sees explicit false")
}

func TestStoryByIDDanglingAuthorIsNotFound(t *testing.T) {
	composer, st := testComposer(t)
	ctx := context.Background()

	story := mustStory(t, st, "gone", "Orphan", time.Now())

	_, err := composer.StoryByID(ctx, story.ID, "")
	assert.True(t, apperrors.IsNotFound(err))

	_, err = composer.StoryByID(ctx, "missing", "")
	assert.True(t, apperrors.IsNotFound(err))
}

func TestLikesCountStaysConsistentAcrossMutations(t *testing.T) {
	composer, st := testComposer(t)
	ctx := context.Background()

	jane := mustUser(t, st, "jane")
	mike := mustUser(t, st, "mike")
	sarah := mustUser(t, st, "sarah")
	story := mustStory(t, st, jane.ID, "Counted", time.Now())

	check := func(want int64) {
		got, err := composer.StoryByID(ctx, story.ID, "")
		require.NoError(t, err)
		count, err := st.CountLikesByStory(ctx, story.ID)
		require.NoError(t, err)
		assert.Equal(t, want, got.LikesCount)
		assert.Equal(t, count, got.LikesCount)
	}

	check(0)
	require.NoError(t, st.CreateLike(ctx, &models.Like{StoryID: story.ID, UserID: mike.ID}))
	check(1)
	require.NoError(t, st.CreateLike(ctx, &models.Like{StoryID: story.ID, UserID: sarah.ID}))
	check(2)
	_, err := st.DeleteLike(ctx, story.ID, mike.ID)
	require.NoError(t, err)
	check(1)
	require.NoError(t, st.CreateLike(ctx, &models.Like{StoryID: story.ID, UserID: mike.ID}))
	check(2)
}

func TestPaginationSlicesAreDisjointAndContiguous(t *testing.T) {
	composer, st := testComposer(t)
	ctx := context.Background()

	jane := mustUser(t, st, "jane")
	base := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		mustStory(t, st, jane.ID, "Story", base.Add(time.Duration(i)*time.Hour))
	}

	full, err := composer.ListStories(ctx, ListOptions{})
	require.NoError(t, err)
	require.Len(t, full, 5)

	page1, err := composer.ListStories(ctx, ListOptions{Limit: 2, Offset: 0})
	require.NoError(t, err)
	page2, err := composer.ListStories(ctx, ListOptions{Limit: 2, Offset: 2})
	require.NoError(t, err)
	require.Len(t, page1, 2)
	require.Len(t, page2, 2)

	assert.Equal(t, full[0].ID, page1[0].ID)
	assert.Equal(t, full[1].ID, page1[1].ID)
	assert.Equal(t, full[2].ID, page2[0].ID)
	assert.Equal(t, full[3].ID, page2[1].ID)

	empty, err := composer.ListStories(ctx, ListOptions{Limit: 2, Offset: 10})
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestSearchIsCaseInsensitiveAcrossFields(t *testing.T) {
	composer, st := testComposer(t)
	ctx := context.Background()

	jane := mustUser(t, st, "jane")
	now := time.Now()
	forest := mustStory(t, st, jane.ID, "The Magical Forest", now)

	other := &models.Story{
		Title:       "Race to the Summit",
		Content:     "Storm clouds and a glittering spellbound ridge.",
		Excerpt:     "Two climbers race upward.",
		Genre:       "Adventure",
		AuthorID:    jane.ID,
		PublishedAt: now.Add(-time.Hour),
		ReadTime:    5,
		IsPublished: true,
	}
	require.NoError(t, st.CreateStory(ctx, other))

	for _, q := range []string{"magical", "MAGICAL"} {
		got, err := composer.ListStories(ctx, ListOptions{Search: q})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, forest.ID, got[0].ID)
	}

	// Content and excerpt are searched too.
	got, err := composer.ListStories(ctx, ListOptions{Search: "spellbound"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, other.ID, got[0].ID)

	got, err = composer.ListStories(ctx, ListOptions{Search: "climbers"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, other.ID, got[0].ID)
}

func TestSearchTakesPrecedenceOverGenre(t *testing.T) {
	composer, st := testComposer(t)
	ctx := context.Background()

	jane := mustUser(t, st, "jane")
	forest := mustStory(t, st, jane.ID, "The Magical Forest", time.Now())

	got, err := composer.ListStories(ctx, ListOptions{Search: "magical", Genre: "NoSuchGenre"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, forest.ID, got[0].ID)
}

func TestGenreFilterIsCaseInsensitive(t *testing.T) {
	composer, st := testComposer(t)
	ctx := context.Background()

	jane := mustUser(t, st, "jane")
	mustStory(t, st, jane.ID, "A", time.Now())

	got, err := composer.ListStories(ctx, ListOptions{Genre: "fantasy"})
	require.NoError(t, err)
	assert.Len(t, got, 1)

	got, err = composer.ListStories(ctx, ListOptions{Genre: "FANTASY"})
	require.NoError(t, err)
	assert.Len(t, got, 1)

	// "all" is the unfiltered sentinel, not a genre.
	got, err = composer.ListStories(ctx, ListOptions{Genre: "all"})
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestOverlayDoesNotChangeOrderOrMembership(t *testing.T) {
	composer, st := testComposer(t)
	ctx := context.Background()

	jane := mustUser(t, st, "jane")
	mike := mustUser(t, st, "mike")
	base := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
	stories := make([]*models.Story, 3)
	for i := range stories {
		stories[i] = mustStory(t, st, jane.ID, "Story", base.Add(time.Duration(i)*time.Hour))
	}
	require.NoError(t, st.CreateLike(ctx, &models.Like{StoryID: stories[0].ID, UserID: mike.ID}))

	anon, err := composer.ListStories(ctx, ListOptions{})
	require.NoError(t, err)
	authed, err := composer.ListStories(ctx, ListOptions{ViewerID: mike.ID})
	require.NoError(t, err)

	require.Len(t, authed, len(anon))
	for i := range anon {
		assert.Equal(t, anon[i].ID, authed[i].ID)
		assert.Nil(t, anon[i].IsLiked)
		require.NotNil(t, authed[i].IsLiked)
	}
}

func TestFeedForReturnsFollowedAuthorsAndSelf(t *testing.T) {
	composer, st := testComposer(t)
	ctx := context.Background()

	jane := mustUser(t, st, "jane")
	mike := mustUser(t, st, "mike")
	sarah := mustUser(t, st, "sarah")

	now := time.Now()
	janeStory := mustStory(t, st, jane.ID, "Jane's", now)
	mikeStory := mustStory(t, st, mike.ID, "Mike's", now.Add(-time.Hour))
	mustStory(t, st, sarah.ID, "Sarah's", now.Add(-2*time.Hour))

	require.NoError(t, st.CreateFollow(ctx, &models.Follow{FollowerID: mike.ID, FollowingID: jane.ID}))

	got, err := composer.FeedFor(ctx, mike.ID, 0, 0)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, janeStory.ID, got[0].ID)
	assert.Equal(t, mikeStory.ID, got[1].ID)
}

func TestCommentsForStoryNewestFirst(t *testing.T) {
	composer, st := testComposer(t)
	ctx := context.Background()

	jane := mustUser(t, st, "jane")
	mike := mustUser(t, st, "mike")
	story := mustStory(t, st, jane.ID, "Commented", time.Now())

	base := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
	for i, content := range []string{"first", "second", "third"} {
		require.NoError(t, st.CreateComment(ctx, &models.Comment{
			Content:   content,
			StoryID:   story.ID,
			AuthorID:  mike.ID,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}))
	}

	got, err := composer.CommentsForStory(ctx, story.ID)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "third", got[0].Content)
	assert.Equal(t, "first", got[2].Content)
	assert.Equal(t, mike.Username, got[0].Author.Username)
}

func TestCommentsForStoryFailsClosedOnDanglingAuthor(t *testing.T) {
	composer, st := testComposer(t)
	ctx := context.Background()

	jane := mustUser(t, st, "jane")
	story := mustStory(t, st, jane.ID, "Corrupt", time.Now())
	require.NoError(t, st.CreateComment(ctx, &models.Comment{
		Content:  "ghost",
		StoryID:  story.ID,
		AuthorID: "missing-user",
	}))

	_, err := composer.CommentsForStory(ctx, story.ID)
	assert.True(t, apperrors.IsIntegrity(err))
}

func TestDeletingStoryLeavesCommentsAndLikesInPlace(t *testing.T) {
	composer, st := testComposer(t)
	ctx := context.Background()

	jane := mustUser(t, st, "jane")
	mike := mustUser(t, st, "mike")
	story := mustStory(t, st, jane.ID, "Doomed", time.Now())

	require.NoError(t, st.CreateLike(ctx, &models.Like{StoryID: story.ID, UserID: mike.ID}))
	require.NoError(t, st.CreateComment(ctx, &models.Comment{StoryID: story.ID, AuthorID: mike.ID, Content: "bye"}))

	deleted, err := st.DeleteStory(ctx, story.ID)
	require.NoError(t, err)
	require.True(t, deleted)

	// No cascading delete: the rows are intentionally orphaned.
	likes, err := st.CountLikesByStory(ctx, story.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), likes)
	comments, err := st.CommentsByStory(ctx, story.ID)
	require.NoError(t, err)
	assert.Len(t, comments, 1)

	_, err = composer.StoryByID(ctx, story.ID, "")
	assert.True(t, apperrors.IsNotFound(err))
}
