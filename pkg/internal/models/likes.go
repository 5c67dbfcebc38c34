package models

// Like records which author liked which post. Rows are only written when the
// single-like feature is enabled; the counter on the post stays authoritative
// either way.
type Like struct {
	BaseModel

	PostID   uint   `json:"post" gorm:"uniqueIndex:idx_likes_post_author"`
	AuthorID string `json:"author" gorm:"uniqueIndex:idx_likes_post_author"`
}
