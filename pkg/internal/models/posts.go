package models

import (
	"time"

	"gorm.io/datatypes"
)

type Post struct {
	BaseModel

	Title    string                      `json:"title"`
	Content  string                      `json:"content"`
	Language string                      `json:"language"`
	AuthorID *string                     `json:"author" gorm:"index"`
	Tags     datatypes.JSONSlice[string] `json:"tags"`
	Likes    int64                       `json:"likes"`

	// CommentIDs mirrors the comments table in arrival order. The rows are
	// the source of truth; this list exists for the wire shape and is
	// reconciled by the cleanup job when the two writes diverge.
	CommentIDs datatypes.JSONSlice[uint] `json:"comments"`

	// EditedAt stays null until the first update.
	EditedAt *time.Time `json:"updatedAt"`
}
