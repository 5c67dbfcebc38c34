package services

import (
	"context"
	"fmt"
	"time"

	localCache "github.com/impulsehq/impulse/pkg/internal/cache"
	"github.com/impulsehq/impulse/pkg/internal/database"
	"github.com/impulsehq/impulse/pkg/internal/models"
	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/marshaler"
	"github.com/eko/gocache/lib/v4/store"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
)

type AuthorPostLikes struct {
	ID    uint   `json:"id"`
	Title string `json:"title"`
	Likes int64  `json:"likes"`
}

type AuthorAnalytics struct {
	TotalPosts    int               `json:"totalPosts"`
	TotalLikes    int64             `json:"totalLikes"`
	LikesPerPost  []AuthorPostLikes `json:"likesPerPost"`
	MostLikedPost *models.Post      `json:"mostLikedPost"`
}

// GetAuthorAnalytics serves the per-author rollup, cached for five minutes.
// Post and like writes flush the author's entry.
func GetAuthorAnalytics(author string) (AuthorAnalytics, error) {
	cacheManager := cache.New[any](localCache.S)
	marshal := marshaler.New(cacheManager)
	ctx := context.Background()

	cacheKey := fmt.Sprintf("author-analytics#%s", author)
	if hit, err := marshal.Get(ctx, cacheKey, new(AuthorAnalytics)); err == nil {
		return *hit.(*AuthorAnalytics), nil
	}

	summary, err := SummarizeAuthorPosts(author)
	if err != nil {
		return summary, err
	}

	_ = marshal.Set(ctx, cacheKey, summary,
		store.WithExpiration(5*time.Minute),
		store.WithTags([]string{"author-analytics", fmt.Sprintf("author#%s", author)}),
	)

	return summary, nil
}

// SummarizeAuthorPosts computes the rollup over every post of one author. An
// author without posts yields the zero summary, not an error. Ties on the
// like count go to the earliest post.
func SummarizeAuthorPosts(author string) (AuthorAnalytics, error) {
	var posts []models.Post
	if err := database.C.Where("author_id = ?", author).
		Order("created_at ASC, id ASC").
		Find(&posts).Error; err != nil {
		return AuthorAnalytics{}, fmt.Errorf("unable to summarize posts: %w", err)
	}

	summary := AuthorAnalytics{
		TotalPosts: len(posts),
		LikesPerPost: lo.Map(posts, func(item models.Post, index int) AuthorPostLikes {
			return AuthorPostLikes{ID: item.ID, Title: item.Title, Likes: item.Likes}
		}),
	}
	for idx, item := range posts {
		summary.TotalLikes += item.Likes
		if summary.MostLikedPost == nil || item.Likes > summary.MostLikedPost.Likes {
			summary.MostLikedPost = &posts[idx]
		}
	}

	return summary, nil
}

// ListAuthorPostLikes is the flat likes-per-post listing the dashboard chart
// consumes.
func ListAuthorPostLikes(author string) ([]AuthorPostLikes, error) {
	summary, err := SummarizeAuthorPosts(author)
	if err != nil {
		return nil, err
	}

	return summary.LikesPerPost, nil
}

func FlushAuthorAnalytics(author string) {
	cacheManager := cache.New[any](localCache.S)
	marshal := marshaler.New(cacheManager)
	ctx := context.Background()

	if err := marshal.Invalidate(ctx, store.WithInvalidateTags([]string{
		fmt.Sprintf("author#%s", author),
	})); err != nil {
		log.Warn().Err(err).Str("author", author).Msg("An error occurred when flushing analytics cache...")
	}
}
