package services

import (
	"testing"
	"time"

	"github.com/impulsehq/impulse/pkg/internal/database"
	"github.com/impulsehq/impulse/pkg/internal/models"
	"github.com/samber/lo"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPostRoundtrip(t *testing.T) {
	resetTables(t)

	author := "author-1"
	item, err := NewPost("First", "A longer body", []string{"go", "web"}, &author)
	require.NoError(t, err)
	assert.NotZero(t, item.ID)

	found, err := GetPost(database.C, item.ID)
	require.NoError(t, err)
	assert.Equal(t, "First", found.Title)
	assert.Equal(t, "A longer body", found.Content)
	assert.Equal(t, []string{"go", "web"}, []string(found.Tags))
	assert.EqualValues(t, 0, found.Likes)
	assert.Empty(t, found.CommentIDs)
	assert.Nil(t, found.EditedAt)
	assert.False(t, found.CreatedAt.IsZero())
}

func TestNewPostValidation(t *testing.T) {
	resetTables(t)

	_, err := NewPost("", "body", nil, nil)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = NewPost("title", "", nil, nil)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestNewPostWithoutTagsOrAuthor(t *testing.T) {
	resetTables(t)

	item, err := NewPost("Authorless", "body", nil, nil)
	require.NoError(t, err)

	found, err := GetPost(database.C, item.ID)
	require.NoError(t, err)
	assert.Nil(t, found.AuthorID)
	assert.NotNil(t, found.Tags)
	assert.Empty(t, found.Tags)
}

func TestGetPostMissing(t *testing.T) {
	resetTables(t)

	_, err := GetPost(database.C, 9999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestEditPostPartial(t *testing.T) {
	resetTables(t)

	item, err := NewPost("Old title", "Old content", []string{"keep"}, nil)
	require.NoError(t, err)

	updated, err := EditPost(item.ID, PostUpdate{Title: lo.ToPtr("New title")})
	require.NoError(t, err)
	assert.Equal(t, "New title", updated.Title)
	assert.Equal(t, "Old content", updated.Content)
	assert.Equal(t, []string{"keep"}, []string(updated.Tags))
	require.NotNil(t, updated.EditedAt)

	_, err = EditPost(item.ID, PostUpdate{Title: lo.ToPtr("")})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = EditPost(9999, PostUpdate{Title: lo.ToPtr("X")})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeletePost(t *testing.T) {
	resetTables(t)

	item, err := NewPost("Doomed", "body", nil, nil)
	require.NoError(t, err)

	require.NoError(t, DeletePost(item.ID))

	_, err = GetPost(database.C, item.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, DeletePost(item.ID), ErrNotFound)
}

func TestDeletePostKeepsCommentsByDefault(t *testing.T) {
	resetTables(t)
	viper.Set("features.cascade_comments", false)

	item, err := NewPost("Commented", "body", nil, nil)
	require.NoError(t, err)
	comment, err := NewComment(item.ID, "still here", "someone")
	require.NoError(t, err)

	require.NoError(t, DeletePost(item.ID))

	var count int64
	require.NoError(t, database.C.Model(&comment).Where("id = ?", comment.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestDeletePostCascade(t *testing.T) {
	resetTables(t)
	viper.Set("features.cascade_comments", true)
	defer viper.Set("features.cascade_comments", false)

	item, err := NewPost("Commented", "body", nil, nil)
	require.NoError(t, err)
	comment, err := NewComment(item.ID, "going down with the ship", "someone")
	require.NoError(t, err)

	require.NoError(t, DeletePost(item.ID))

	var count int64
	require.NoError(t, database.C.Model(&comment).Where("id = ?", comment.ID).Count(&count).Error)
	assert.Zero(t, count)
}

func TestDeletePostCascadeFailureSurfaces(t *testing.T) {
	resetTables(t)
	viper.Set("features.cascade_comments", true)
	defer viper.Set("features.cascade_comments", false)

	item, err := NewPost("Commented", "body", nil, nil)
	require.NoError(t, err)
	_, err = NewComment(item.ID, "doomed", "someone")
	require.NoError(t, err)

	// Break the cascade target so the second half of the delete fails.
	require.NoError(t, database.C.Migrator().DropTable(&models.Comment{}))
	defer func() {
		require.NoError(t, database.C.AutoMigrate(&models.Comment{}))
	}()

	err = DeletePost(item.ID)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.NotErrorIs(t, err, ErrValidation)
}

func TestListPostByAuthorOrder(t *testing.T) {
	resetTables(t)

	author := "author-order"
	first, err := NewPost("Oldest", "body", nil, &author)
	require.NoError(t, err)
	time.Sleep(10 * time.Millisecond)
	second, err := NewPost("Newest", "body", nil, &author)
	require.NoError(t, err)
	_, err = NewPost("Other", "body", nil, lo.ToPtr("someone-else"))
	require.NoError(t, err)

	items, err := ListPost(FilterPostWithAuthor(database.C, author))
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, second.Title, items[0].Title)
	assert.Equal(t, first.Title, items[1].Title)
}

func TestFilterPostWithTagExactMatch(t *testing.T) {
	resetTables(t)

	matching, err := NewPost("Tagged", "body", []string{"go", "web"}, nil)
	require.NoError(t, err)
	_, err = NewPost("Cased", "body", []string{"Go"}, nil)
	require.NoError(t, err)
	_, err = NewPost("Longer", "body", []string{"golang"}, nil)
	require.NoError(t, err)

	items, err := ListPost(FilterPostWithTag(database.C, "go"))
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, matching.ID, items[0].ID)

	items, err = ListPost(FilterPostWithTag(database.C, "missing"))
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestFilterPostWithFuzzySearch(t *testing.T) {
	resetTables(t)

	byContent, err := NewPost("Unrelated", "hello world", nil, nil)
	require.NoError(t, err)
	byTitle, err := NewPost("Say Hello", "nothing to see", nil, nil)
	require.NoError(t, err)
	_, err = NewPost("Quiet", "nothing at all", nil, nil)
	require.NoError(t, err)

	items, err := ListPost(FilterPostWithFuzzySearch(database.C, "Hello"))
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, byContent.ID, items[0].ID)
	assert.Equal(t, byTitle.ID, items[1].ID)
}
