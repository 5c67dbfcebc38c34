package services

import (
	"fmt"

	"github.com/impulsehq/impulse/pkg/internal/database"
	"github.com/impulsehq/impulse/pkg/internal/models"
	"github.com/spf13/viper"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LikePost bumps the like counter and returns the new total. The increment
// happens inside the database, never as a read-modify-write, so concurrent
// likes all land.
//
// With the single_like feature on, each author counts at most once per post:
// a conflicting insert into the likes table leaves the counter untouched.
func LikePost(postID uint, author string) (int64, error) {
	post, err := GetPost(database.C, postID)
	if err != nil {
		return 0, err
	}

	if viper.GetBool("features.single_like") && len(author) > 0 {
		like := models.Like{PostID: post.ID, AuthorID: author}
		result := database.C.Clauses(clause.OnConflict{DoNothing: true}).Create(&like)
		if result.Error != nil {
			return post.Likes, fmt.Errorf("unable to record like: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return post.Likes, nil
		}
	}

	if err := database.C.Model(&models.Post{}).
		Where("id = ?", post.ID).
		UpdateColumn("likes", gorm.Expr("likes + ?", 1)).Error; err != nil {
		return post.Likes, fmt.Errorf("unable to count like: %w", err)
	}

	if post.AuthorID != nil {
		FlushAuthorAnalytics(*post.AuthorID)
	}

	updated, err := GetPost(database.C, post.ID)
	if err != nil {
		return post.Likes, err
	}

	return updated.Likes, nil
}
