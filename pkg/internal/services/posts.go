package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/impulsehq/impulse/pkg/internal/database"
	"github.com/impulsehq/impulse/pkg/internal/models"
	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/viper"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func FilterPostWithAuthor(tx *gorm.DB, author string) *gorm.DB {
	return tx.Where("author_id = ?", author).Order("created_at DESC")
}

// FilterPostWithTag matches posts whose tag array contains the exact,
// case-sensitive value.
func FilterPostWithTag(tx *gorm.DB, tag string) *gorm.DB {
	switch tx.Dialector.Name() {
	case "postgres":
		probe, _ := jsoniter.MarshalToString([]string{tag})
		return tx.Where("tags @> ?::jsonb", probe)
	default:
		return tx.Where("EXISTS (SELECT 1 FROM json_each(tags) WHERE json_each.value = ?)", tag)
	}
}

// FilterPostWithFuzzySearch matches the probe as a case-insensitive substring
// of the title or the content. LOWER + LIKE instead of ILIKE so the same
// query runs on every supported dialect.
func FilterPostWithFuzzySearch(tx *gorm.DB, probe string) *gorm.DB {
	probe = "%" + strings.ToLower(probe) + "%"
	return tx.Where("LOWER(title) LIKE ? OR LOWER(content) LIKE ?", probe, probe)
}

func NewPost(title, content string, tags []string, author *string) (models.Post, error) {
	var item models.Post
	if len(title) == 0 || len(content) == 0 {
		return item, fmt.Errorf("%w: title and content are required", ErrValidation)
	}

	if tags == nil {
		tags = []string{}
	}

	item = models.Post{
		Title:      title,
		Content:    content,
		Language:   DetectLanguage(content),
		AuthorID:   author,
		Tags:       datatypes.NewJSONSlice(tags),
		CommentIDs: datatypes.NewJSONSlice([]uint{}),
	}

	if err := database.C.Create(&item).Error; err != nil {
		return item, fmt.Errorf("unable to create post: %w", err)
	}

	if item.AuthorID != nil {
		FlushAuthorAnalytics(*item.AuthorID)
	}

	return item, nil
}

func GetPost(tx *gorm.DB, id uint) (models.Post, error) {
	var item models.Post
	if err := tx.Where("id = ?", id).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return item, fmt.Errorf("%w: post #%d", ErrNotFound, id)
		}
		return item, fmt.Errorf("unable to get post: %w", err)
	}

	return item, nil
}

// ListPost returns posts in stable insertion order; filters applied upstream
// may prepend their own ordering.
func ListPost(tx *gorm.DB) ([]models.Post, error) {
	var items []models.Post
	if err := tx.Order("id ASC").Find(&items).Error; err != nil {
		return items, fmt.Errorf("unable to list posts: %w", err)
	}

	return items, nil
}

type PostUpdate struct {
	Title   *string
	Content *string
	Tags    *[]string
}

// EditPost applies a partial update. Omitted fields are left untouched;
// every successful edit stamps edited_at.
func EditPost(id uint, update PostUpdate) (models.Post, error) {
	item, err := GetPost(database.C, id)
	if err != nil {
		return item, err
	}

	changes := map[string]any{
		"edited_at": time.Now(),
	}
	if update.Title != nil {
		if len(*update.Title) == 0 {
			return item, fmt.Errorf("%w: title cannot be empty", ErrValidation)
		}
		changes["title"] = *update.Title
	}
	if update.Content != nil {
		if len(*update.Content) == 0 {
			return item, fmt.Errorf("%w: content cannot be empty", ErrValidation)
		}
		changes["content"] = *update.Content
		changes["language"] = DetectLanguage(*update.Content)
	}
	if update.Tags != nil {
		changes["tags"] = datatypes.NewJSONSlice(*update.Tags)
	}

	if err := database.C.Model(&item).Updates(changes).Error; err != nil {
		return item, fmt.Errorf("unable to update post: %w", err)
	}

	if item.AuthorID != nil {
		FlushAuthorAnalytics(*item.AuthorID)
	}

	return GetPost(database.C, id)
}

// DeletePost removes the post itself. Its comments are only removed when the
// cascade_comments feature is on, matching the upstream behavior otherwise.
func DeletePost(id uint) error {
	item, err := GetPost(database.C, id)
	if err != nil {
		return err
	}

	if err := database.C.Delete(&models.Post{}, item.ID).Error; err != nil {
		return fmt.Errorf("unable to delete post: %w", err)
	}

	if viper.GetBool("features.cascade_comments") {
		// The post is already gone at this point; surfacing the failure
		// lets the caller retry the cascade instead of hiding half-done
		// work behind a success.
		if err := database.C.Where("post_id = ?", item.ID).Delete(&models.Comment{}).Error; err != nil {
			return fmt.Errorf("unable to cascade comments: %w", err)
		}
	}

	if item.AuthorID != nil {
		FlushAuthorAnalytics(*item.AuthorID)
	}

	return nil
}
