package models

import "time"

type FavoriteEvent struct {
	FavoriteEventID uint `gorm:"primaryKey" json:"favorite_event_id"`
	UserID          uint `gorm:"not null;index" json:"user_id"`
	EventID         uint `gorm:"not null" json:"event_id"`
	// 즐겨찾기 등록 시점의 날짜. 디데이 계산 기준.
	DDay          time.Time `json:"d_day"`
	EasyInsidebar bool      `gorm:"default:false" json:"easy_insidebar"`
}
