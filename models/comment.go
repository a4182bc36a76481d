package models

import "time"

type Comment struct {
	CommentID uint      `gorm:"primaryKey" json:"comment_id"`
	EventID   uint      `gorm:"not null;index" json:"event_id"`
	AdminID   uint      `gorm:"not null" json:"admin_id"`
	Content   string    `gorm:"size:1000;not null" json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
