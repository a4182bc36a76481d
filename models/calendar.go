package models

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Calendar struct {
	CalendarID  uint   `gorm:"primaryKey" json:"calendar_id"`
	Name        string `gorm:"size:255;not null" json:"name"`
	Description string `gorm:"size:1000" json:"description"`
	IsPublic    bool   `gorm:"default:false" json:"is_public"`
	Color       string `gorm:"size:20" json:"color"`
	CreatorID   uint   `gorm:"not null" json:"creator"`
	// 초대 코드는 전체 캘린더에서 유일하다. 관리자에게만 노출된다.
	InvitationCode string    `gorm:"uniqueIndex;size:255;not null" json:"invitation_code"`
	Admins         []User    `gorm:"many2many:calendar_admins;joinForeignKey:CalendarID;joinReferences:UserID" json:"-"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// HasAdminPermission은 해당 사용자가 캘린더 관리자인지 확인한다.
// 생성자는 관리자 목록에 없어도 항상 관리자로 취급한다.
func (cal *Calendar) HasAdminPermission(db *gorm.DB, userID uint) (bool, error) {
	if cal.CreatorID == userID {
		return true, nil
	}
	var count int64
	err := db.Table("calendar_admins").
		Where("calendar_id = ? AND user_id = ?", cal.CalendarID, userID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// AdminIDs는 관리자 user_id 목록을 반환한다 (생성자 포함).
func (cal *Calendar) AdminIDs(db *gorm.DB) ([]uint, error) {
	var ids []uint
	err := db.Table("calendar_admins").
		Where("calendar_id = ?", cal.CalendarID).
		Order("user_id ASC").
		Pluck("user_id", &ids).Error
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		if id == cal.CreatorID {
			return ids, nil
		}
	}
	return append(ids, cal.CreatorID), nil
}

// RedeemInvitation은 초대 코드로 사용자를 캘린더 관리자에 추가한다.
// 코드 검증과 관리자 추가는 같은 트랜잭션 안에서 이뤄지며, 캘린더 행을
// 잠가 동일 코드에 대한 동시 등록을 직렬화한다.
func RedeemInvitation(db *gorm.DB, code string, user *User) (*Calendar, error) {
	var cal Calendar
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := lockForUpdate(tx).
			Where("invitation_code = ?", code).
			First(&cal).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrInvitationNotFound
			}
			return err
		}
		isAdmin, err := cal.HasAdminPermission(tx, user.UserID)
		if err != nil {
			return err
		}
		if isAdmin {
			return ErrAlreadyAdmin
		}
		return tx.Model(&cal).Association("Admins").Append(user)
	})
	if err != nil {
		return nil, err
	}
	return &cal, nil
}

// LockCalendar는 캘린더 행을 잠그고 읽는다. 겹침 검사와 이벤트 저장을
// 한 트랜잭션 안에서 직렬화할 때 사용한다.
func LockCalendar(tx *gorm.DB, calendarID uint) (*Calendar, error) {
	var cal Calendar
	if err := lockForUpdate(tx).First(&cal, calendarID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCalendarNotFound
		}
		return nil, err
	}
	return &cal, nil
}

// lockForUpdate는 캘린더 단위의 쓰기 직렬화를 위한 행 잠금을 건다.
// SQLite는 FOR UPDATE를 지원하지 않으므로 건너뛴다 (쓰기가 커넥션 하나로
// 직렬화되는 환경).
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}
