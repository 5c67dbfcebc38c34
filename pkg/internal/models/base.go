package models

import "time"

// BaseModel is the column set shared by every persisted record. Deletion is
// always a hard delete, so there is no gorm.DeletedAt here.
type BaseModel struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"createdAt"`
}
