package models

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// openTestDB는 인메모리 SQLite로 테스트용 DB를 연다.
// 커넥션을 하나로 제한해 :memory: DB가 쪼개지지 않게 한다.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&User{}, &Calendar{}, &Event{}, &Subscription{}, &Comment{}, &FavoriteEvent{},
	))
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, email, nickname string) *User {
	t.Helper()
	user := &User{
		Email:    email,
		Username: nickname,
		Nickname: nickname,
		Password: "x",
		IsActive: true,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTestCalendar(t *testing.T, db *gorm.DB, creator *User, code string) *Calendar {
	t.Helper()
	cal := &Calendar{
		Name:           "테스트캘린더",
		Description:    "테스트설명",
		IsPublic:       true,
		Color:          "#000000",
		CreatorID:      creator.UserID,
		InvitationCode: code,
	}
	require.NoError(t, db.Create(cal).Error)
	require.NoError(t, db.Model(cal).Association("Admins").Append(creator))
	return cal
}
