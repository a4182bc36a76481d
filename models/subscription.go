package models

import "time"

// Subscription — 사용자와 캘린더의 구독 관계.
// (user_id, calendar_id) 쌍에 유니크 제약은 걸지 않는다. 원 설계 그대로이며
// 중복 구독 행이 생길 수 있다 (subscription 테스트 참고).
type Subscription struct {
	SubscriptionID uint      `gorm:"primaryKey" json:"id"`
	UserID         uint      `gorm:"not null;index" json:"user"`
	CalendarID     uint      `gorm:"not null;index" json:"calendar_id"`
	IsActive       bool      `gorm:"default:true" json:"is_active"`
	IsOnCalendar   bool      `gorm:"default:true" json:"is_on_calendar"`
	CreatedAt      time.Time `json:"created_at"`
}
