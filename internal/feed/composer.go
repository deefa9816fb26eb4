// Package feed assembles the denormalized read views: stories joined to
// their author summaries and fresh like/comment counts, ordered and
// paginated, with a per-viewer isLiked overlay.
package feed

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/storyweave/backend/internal/apperrors"
	"github.com/storyweave/backend/internal/models"
	"github.com/storyweave/backend/internal/store"
)

// DefaultLimit is the page size used when the request does not carry one.
const DefaultLimit = 20

// ListOptions selects and pages a story list. Search takes precedence
// over Genre, which takes precedence over plain listing. ViewerID, when
// non-empty, enables the isLiked overlay.
type ListOptions struct {
	Genre    string
	Search   string
	Limit    int
	Offset   int
	ViewerID string
}

func (o *ListOptions) normalize() {
	if o.Limit <= 0 {
		o.Limit = DefaultLimit
	}
	if o.Offset < 0 {
		o.Offset = 0
	}
}

// Composer produces aggregated story views on top of a Store.
type Composer struct {
	store store.Store
	log   *logrus.Logger
}

// NewComposer creates a Composer backed by the given store.
func NewComposer(st store.Store, log *logrus.Logger) *Composer {
	return &Composer{store: st, log: log}
}

// StoryByID returns a single story joined to its author and counts.
// A dangling author id is reported as story-not-found, not a crash.
func (c *Composer) StoryByID(ctx context.Context, id, viewerID string) (*models.StoryWithAuthor, error) {
	story, err := c.store.StoryByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if story == nil {
		return nil, apperrors.NotFound("story not found")
	}
	author, err := c.store.UserByID(ctx, story.AuthorID)
	if err != nil {
		return nil, err
	}
	if author == nil {
		return nil, apperrors.NotFound("story not found")
	}
	enriched, err := c.enrich(ctx, *story, author.Summary())
	if err != nil {
		return nil, err
	}
	if viewerID != "" {
		liked, err := c.store.LikeByStoryUser(ctx, story.ID, viewerID)
		if err != nil {
			return nil, err
		}
		isLiked := liked != nil
		enriched.IsLiked = &isLiked
	}
	return enriched, nil
}

// ListStories returns the selected page of published stories under the
// mode implied by opts, with the viewer overlay applied last.
func (c *Composer) ListStories(ctx context.Context, opts ListOptions) ([]models.StoryWithAuthor, error) {
	opts.normalize()

	var (
		stories []models.Story
		err     error
	)
	switch {
	case opts.Search != "":
		stories, err = c.store.SearchStories(ctx, opts.Search, opts.Limit, opts.Offset)
	case opts.Genre != "" && opts.Genre != "all":
		stories, err = c.store.ListStoriesByGenre(ctx, opts.Genre, opts.Limit, opts.Offset)
	default:
		stories, err = c.store.ListStories(ctx, opts.Limit, opts.Offset)
	}
	if err != nil {
		return nil, err
	}
	return c.compose(ctx, stories, opts.ViewerID)
}

// FeedFor returns the personalized follow-graph feed: published stories
// authored by the users the viewer follows, plus the viewer's own.
func (c *Composer) FeedFor(ctx context.Context, viewerID string, limit, offset int) ([]models.StoryWithAuthor, error) {
	opts := ListOptions{Limit: limit, Offset: offset}
	opts.normalize()

	authorIDs, err := c.store.FollowingIDs(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	authorIDs = append(authorIDs, viewerID)

	stories, err := c.store.ListStoriesByAuthors(ctx, authorIDs, opts.Limit, opts.Offset)
	if err != nil {
		return nil, err
	}
	return c.compose(ctx, stories, viewerID)
}

// StoriesByAuthor returns an author's published stories, newest first.
func (c *Composer) StoriesByAuthor(ctx context.Context, authorID, viewerID string, limit, offset int) ([]models.StoryWithAuthor, error) {
	opts := ListOptions{Limit: limit, Offset: offset}
	opts.normalize()

	stories, err := c.store.ListStoriesByAuthors(ctx, []string{authorID}, opts.Limit, opts.Offset)
	if err != nil {
		return nil, err
	}
	return c.compose(ctx, stories, viewerID)
}

// CommentsForStory returns a story's comments joined to their authors,
// newest first. A comment whose author no longer resolves indicates
// store corruption and fails closed with an integrity error.
func (c *Composer) CommentsForStory(ctx context.Context, storyID string) ([]models.CommentWithAuthor, error) {
	comments, err := c.store.CommentsByStory(ctx, storyID)
	if err != nil {
		return nil, err
	}
	authors := make(map[string]models.UserSummary)
	result := make([]models.CommentWithAuthor, 0, len(comments))
	for _, comment := range comments {
		summary, ok := authors[comment.AuthorID]
		if !ok {
			author, err := c.store.UserByID(ctx, comment.AuthorID)
			if err != nil {
				return nil, err
			}
			if author == nil {
				return nil, apperrors.Integrity("comment %s references missing author %s", comment.ID, comment.AuthorID)
			}
			summary = author.Summary()
			authors[comment.AuthorID] = summary
		}
		result = append(result, models.CommentWithAuthor{Comment: comment, Author: summary})
	}
	return result, nil
}

// compose joins a story page to author summaries and counts, then
// applies the viewer overlay. Ordering and membership are fixed before
// the overlay runs.
func (c *Composer) compose(ctx context.Context, stories []models.Story, viewerID string) ([]models.StoryWithAuthor, error) {
	authors := make(map[string]models.UserSummary)
	result := make([]models.StoryWithAuthor, 0, len(stories))
	for _, story := range stories {
		summary, ok := authors[story.AuthorID]
		if !ok {
			author, err := c.store.UserByID(ctx, story.AuthorID)
			if err != nil {
				return nil, err
			}
			if author == nil {
				// Dangling author: the story is treated as not found and
				// dropped from the page rather than crashing the list.
				c.log.WithFields(logrus.Fields{
					"story_id":  story.ID,
					"author_id": story.AuthorID,
				}).Warn("skipping story with missing author")
				continue
			}
			summary = author.Summary()
			authors[story.AuthorID] = summary
		}
		enriched, err := c.enrich(ctx, story, summary)
		if err != nil {
			return nil, err
		}
		result = append(result, *enriched)
	}
	if err := c.overlayIsLiked(ctx, result, viewerID); err != nil {
		return nil, err
	}
	return result, nil
}

// enrich attaches the author summary and counts. Counts are computed
// fresh from the like and comment collections on every read so they can
// never drift from the underlying records.
func (c *Composer) enrich(ctx context.Context, story models.Story, author models.UserSummary) (*models.StoryWithAuthor, error) {
	likes, err := c.store.CountLikesByStory(ctx, story.ID)
	if err != nil {
		return nil, err
	}
	comments, err := c.store.CountCommentsByStory(ctx, story.ID)
	if err != nil {
		return nil, err
	}
	return &models.StoryWithAuthor{
		Story:         story,
		Author:        author,
		LikesCount:    likes,
		CommentsCount: comments,
	}, nil
}

// overlayIsLiked annotates each story with the viewer's like state. It
// never alters ordering or membership; with no viewer the field stays
// unset, which is distinct from false.
func (c *Composer) overlayIsLiked(ctx context.Context, stories []models.StoryWithAuthor, viewerID string) error {
	if viewerID == "" {
		return nil
	}
	for i := range stories {
		like, err := c.store.LikeByStoryUser(ctx, stories[i].ID, viewerID)
		if err != nil {
			return err
		}
		isLiked := like != nil
		stories[i].IsLiked = &isLiked
	}
	return nil
}
