package models

type Comment struct {
	BaseModel

	PostID   uint   `json:"post" gorm:"index"`
	Content  string `json:"content"`
	AuthorID string `json:"author"`
}
