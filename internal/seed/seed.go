// Package seed loads development fixtures into an empty store.
package seed

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"github.com/storyweave/backend/internal/models"
	"github.com/storyweave/backend/internal/store"
)

func strPtr(s string) *string { return &s }

// Run populates the store with sample users, stories, comments, likes
// and follows. Intended for the memory backend in development.
func Run(ctx context.Context, st store.Store) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	jane := &models.User{
		Username:    "storyteller_jane",
		Email:       "jane@example.com",
		Password:    string(hashed),
		DisplayName: "Jane the Storyteller",
		Bio:         strPtr("Passionate writer of fantasy and mystery stories"),
	}
	mike := &models.User{
		Username:    "adventure_mike",
		Email:       "mike@example.com",
		Password:    string(hashed),
		DisplayName: "Adventure Mike",
		Bio:         strPtr("Love writing action-packed adventures"),
	}
	sarah := &models.User{
		Username:    "romantic_sarah",
		Email:       "sarah@example.com",
		Password:    string(hashed),
		DisplayName: "Sarah Romance",
		Bio:         strPtr("Romance and drama are my specialties"),
	}
	for _, u := range []*models.User{jane, mike, sarah} {
		if err := st.CreateUser(ctx, u); err != nil {
			return err
		}
	}

	forest := &models.Story{
		Title:       "The Magical Forest",
		Content:     "Deep in the enchanted woods, where sunlight filtered through ancient oaks, Elara discovered a hidden path that shimmered with an otherworldly glow...",
		Excerpt:     "A young adventurer discovers a hidden path in an enchanted forest.",
		Genre:       "Fantasy",
		AuthorID:    jane.ID,
		ReadTime:    8,
		IsPublished: true,
	}
	summit := &models.Story{
		Title:       "Race to the Summit",
		Content:     "The mountain loomed above them, its peak hidden in storm clouds. Jake checked his gear one final time before the ascent that would change everything...",
		Excerpt:     "Two climbers race against a storm to reach the summit first.",
		Genre:       "Adventure",
		AuthorID:    mike.ID,
		ReadTime:    12,
		IsPublished: true,
	}
	letters := &models.Story{
		Title:       "Letters Never Sent",
		Content:     "Clara found the box of letters in her grandmother's attic, each one addressed to a man she had never heard of, each one never sent...",
		Excerpt:     "A granddaughter uncovers her grandmother's secret correspondence.",
		Genre:       "Romance",
		AuthorID:    sarah.ID,
		ReadTime:    6,
		IsPublished: true,
	}
	for _, s := range []*models.Story{forest, summit, letters} {
		if err := st.CreateStory(ctx, s); err != nil {
			return err
		}
	}

	follows := []*models.Follow{
		{FollowerID: mike.ID, FollowingID: jane.ID},
		{FollowerID: sarah.ID, FollowingID: jane.ID},
	}
	for _, f := range follows {
		if err := st.CreateFollow(ctx, f); err != nil {
			return err
		}
	}

	if err := st.CreateLike(ctx, &models.Like{StoryID: forest.ID, UserID: mike.ID}); err != nil {
		return err
	}
	return st.CreateComment(ctx, &models.Comment{
		Content:  "This gave me chills. Can't wait for the next chapter!",
		StoryID:  forest.ID,
		AuthorID: sarah.ID,
	})
}
