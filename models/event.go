package models

import (
	"time"

	"gorm.io/gorm"
)

type Event struct {
	EventID     uint      `gorm:"primaryKey" json:"event_id"`
	CalendarID  uint      `gorm:"not null;index" json:"calendar_id"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	Description string    `gorm:"size:1000" json:"description"`
	StartTime   time.Time `gorm:"not null" json:"start_time"`
	EndTime     time.Time `gorm:"not null" json:"end_time"`
	AdminID     uint      `gorm:"not null" json:"admin_id"`
	IsPublic    bool      `gorm:"default:false" json:"is_public"`
}

// CheckOverlap은 [start, end) 구간이 같은 캘린더의 기존 이벤트와 겹치는지
// 검사한다. 반개구간 비교이므로 끝 시각과 시작 시각이 맞닿는 이벤트는
// 겹치지 않는다. excludeEventID가 주어지면 해당 이벤트는 제외한다
// (자기 자신과의 충돌 없이 수정할 수 있도록).
func CheckOverlap(db *gorm.DB, calendarID uint, start, end time.Time, excludeEventID *uint) (bool, error) {
	q := db.Model(&Event{}).
		Where("calendar_id = ? AND start_time < ? AND end_time > ?", calendarID, end, start)
	if excludeEventID != nil {
		q = q.Where("event_id <> ?", *excludeEventID)
	}
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ValidateEventWindow는 이벤트 시간을 검증한다:
// - 시작 시간은 종료 시간보다 빨라야 한다 (길이 0 포함 거부).
// - 같은 캘린더의 다른 이벤트와 시간이 겹치면 안 된다.
// 실패 시 해당 필드를 가리키는 *FieldError를 반환한다.
func ValidateEventWindow(db *gorm.DB, calendarID uint, start, end time.Time, excludeEventID *uint) error {
	if !start.Before(end) {
		return &FieldError{Field: "end_time", Message: "종료 시간은 시작 시간 이후여야 합니다."}
	}
	overlapping, err := CheckOverlap(db, calendarID, start, end, excludeEventID)
	if err != nil {
		return err
	}
	if overlapping {
		return &FieldError{Field: "start_time", Message: "다른 이벤트와 시간이 겹칩니다."}
	}
	return nil
}
