package services

import (
	"sync"
	"testing"

	"github.com/impulsehq/impulse/pkg/internal/database"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLikePostCountsEveryCall(t *testing.T) {
	resetTables(t)
	viper.Set("features.single_like", false)

	post, err := NewPost("Likeable", "body", nil, nil)
	require.NoError(t, err)

	var count int64
	for i := 0; i < 5; i++ {
		count, err = LikePost(post.ID, "same-reader")
		require.NoError(t, err)
	}
	assert.EqualValues(t, 5, count)

	found, err := GetPost(database.C, post.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 5, found.Likes)
}

func TestLikePostConcurrentNoLostIncrements(t *testing.T) {
	resetTables(t)
	viper.Set("features.single_like", false)

	post, err := NewPost("Contended", "body", nil, nil)
	require.NoError(t, err)

	const workers = 16
	errs := make(chan error, workers)
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			_, err := LikePost(post.ID, "reader")
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	// Every acknowledged like must land; a read-modify-write counter
	// would lose some of these under interleaving.
	found, err := GetPost(database.C, post.ID)
	require.NoError(t, err)
	assert.EqualValues(t, workers, found.Likes)
}

func TestLikePostMissing(t *testing.T) {
	resetTables(t)

	_, err := LikePost(9999, "reader")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLikePostSingleLikeMode(t *testing.T) {
	resetTables(t)
	viper.Set("features.single_like", true)
	defer viper.Set("features.single_like", false)

	post, err := NewPost("Likeable", "body", nil, nil)
	require.NoError(t, err)

	count, err := LikePost(post.ID, "reader-1")
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	// Same reader again: counter must not move.
	count, err = LikePost(post.ID, "reader-1")
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	count, err = LikePost(post.ID, "reader-2")
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)
}
