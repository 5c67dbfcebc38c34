package services

import (
	"fmt"

	"github.com/impulsehq/impulse/pkg/internal/database"
	"github.com/impulsehq/impulse/pkg/internal/models"
	"gorm.io/gorm"
)

// NewComment attaches a comment to an existing post. The comment row and the
// back-reference on the post are two separate writes; when the second one
// fails the comment stays behind as an orphan and the caller gets a storage
// error. The cleanup job converges such drift.
func NewComment(postID uint, content, author string) (models.Comment, error) {
	var item models.Comment
	if len(content) == 0 {
		return item, fmt.Errorf("%w: content is required", ErrValidation)
	}

	post, err := GetPost(database.C, postID)
	if err != nil {
		return item, err
	}

	item = models.Comment{
		PostID:   post.ID,
		Content:  content,
		AuthorID: author,
	}
	if err := database.C.Create(&item).Error; err != nil {
		return item, fmt.Errorf("unable to create comment: %w", err)
	}

	if err := AppendPostCommentRef(post, item.ID); err != nil {
		return item, fmt.Errorf("unable to link comment to post: %w", err)
	}

	return item, nil
}

// AppendPostCommentRef records a comment id on the post's back-reference
// list. The append happens in a single guarded statement, so concurrent
// comments on one post cannot clobber each other's entry and a retried
// write cannot duplicate one.
func AppendPostCommentRef(post models.Post, commentID uint) error {
	entry := fmt.Sprintf("[%d]", commentID)

	switch database.C.Dialector.Name() {
	case "postgres":
		return database.C.Model(&post).
			Where("NOT comment_ids @> ?::jsonb", entry).
			UpdateColumn("comment_ids", gorm.Expr("comment_ids || ?::jsonb", entry)).Error
	default:
		return database.C.Model(&post).
			Where("NOT EXISTS (SELECT 1 FROM json_each(comment_ids) WHERE json_each.value = ?)", commentID).
			UpdateColumn("comment_ids", gorm.Expr("json_insert(comment_ids, '$[#]', ?)", commentID)).Error
	}
}

// ListPostComments returns the comments of a post in arrival order.
func ListPostComments(postID uint) ([]models.Comment, error) {
	if _, err := GetPost(database.C, postID); err != nil {
		return nil, err
	}

	items := make([]models.Comment, 0)
	if err := database.C.Where("post_id = ?", postID).
		Order("created_at ASC, id ASC").
		Find(&items).Error; err != nil {
		return items, fmt.Errorf("unable to list comments: %w", err)
	}

	return items, nil
}
