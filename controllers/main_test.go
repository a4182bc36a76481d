package controllers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/PoodingDev/Evento-Be/config"
	"github.com/PoodingDev/Evento-Be/models"
	"github.com/PoodingDev/Evento-Be/routes"
	"github.com/PoodingDev/Evento-Be/utils"
)

// newTestApp은 인메모리 DB와 전체 라우트가 연결된 Fiber 앱을 만든다.
func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("JWT_REFRESH_SECRET", "test-refresh-secret")

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, config.Migrate(db))
	config.DB = db

	app := fiber.New()
	routes.Setup(app)
	return app
}

func createTestUser(t *testing.T, email, nickname string) (*models.User, string) {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte("testpass123"), bcrypt.MinCost)
	require.NoError(t, err)
	user := &models.User{
		Email:    email,
		Username: nickname,
		Nickname: nickname,
		Password: string(hashed),
		IsActive: true,
	}
	require.NoError(t, config.DB.Create(user).Error)

	token, err := utils.GenerateAccessToken(user.UserID, user.Email, user.Nickname)
	require.NoError(t, err)
	return user, token
}

func createTestCalendar(t *testing.T, creator *models.User, code string) *models.Calendar {
	t.Helper()
	cal := &models.Calendar{
		Name:           "테스트캘린더",
		Description:    "테스트설명",
		IsPublic:       true,
		Color:          "#000000",
		CreatorID:      creator.UserID,
		InvitationCode: code,
	}
	require.NoError(t, config.DB.Create(cal).Error)
	require.NoError(t, config.DB.Model(cal).Association("Admins").Append(creator))
	return cal
}

func createTestEvent(t *testing.T, cal *models.Calendar, admin *models.User, start, end time.Time) *models.Event {
	t.Helper()
	event := &models.Event{
		CalendarID:  cal.CalendarID,
		Title:       "테스트이벤트",
		Description: "테스트설명",
		StartTime:   start,
		EndTime:     end,
		AdminID:     admin.UserID,
		IsPublic:    true,
	}
	require.NoError(t, config.DB.Create(event).Error)
	return event
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body interface{}) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}
