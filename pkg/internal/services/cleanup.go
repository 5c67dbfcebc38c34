package services

import (
	"slices"

	"github.com/impulsehq/impulse/pkg/internal/database"
	"github.com/impulsehq/impulse/pkg/internal/models"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
)

// DoAutoDatabaseCleanup re-derives every post's comment back-reference list
// from the comments table. The comment write is a two-step sequence without
// a transaction, so a failed second step leaves drift; running this to
// convergence is what keeps the denormalized list honest.
func DoAutoDatabaseCleanup() {
	log.Debug().Msg("Now reconciling comment references...")

	var posts []models.Post
	if err := database.C.Find(&posts).Error; err != nil {
		log.Warn().Err(err).Msg("An error occurred when scanning posts for cleanup...")
		return
	}

	var repaired int
	for _, post := range posts {
		refs := make([]uint, 0)
		if err := database.C.Model(&models.Comment{}).
			Where("post_id = ?", post.ID).
			Order("created_at ASC, id ASC").
			Pluck("id", &refs).Error; err != nil {
			log.Warn().Err(err).Uint("post", post.ID).Msg("An error occurred when collecting comment ids...")
			continue
		}

		if slices.Equal(refs, []uint(post.CommentIDs)) {
			continue
		}

		if err := database.C.Model(&post).
			UpdateColumn("comment_ids", datatypes.NewJSONSlice(refs)).Error; err != nil {
			log.Warn().Err(err).Uint("post", post.ID).Msg("An error occurred when repairing comment references...")
			continue
		}
		repaired++
	}

	if repaired > 0 {
		log.Info().Int("count", repaired).Msg("Repaired comment references on posts.")
	}
}
