package models

import "time"

type User struct {
	UserID   uint       `gorm:"primaryKey" json:"user_id"`
	Email    string     `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Username string     `gorm:"size:150;not null" json:"username"`
	Nickname string     `gorm:"size:100" json:"nickname"`
	Birth    *time.Time `json:"birth"`
	Password string     `gorm:"not null" json:"-"`
	// 탈퇴 시 레코드를 지우지 않고 비활성화한다.
	IsActive  bool      `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
