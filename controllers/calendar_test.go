package controllers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PoodingDev/Evento-Be/config"
	"github.com/PoodingDev/Evento-Be/models"
)

func TestCreateCalendarIssuesInvitationCode(t *testing.T) {
	app := newTestApp(t)
	_, token := createTestUser(t, "creator@test.com", "생성자")

	resp := doJSON(t, app, "POST", "/api/calendars/", token, map[string]interface{}{
		"name":        "새 캘린더",
		"description": "설명",
		"is_public":   true,
		"color":       "#ff0000",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var body map[string]interface{}
	decodeJSON(t, resp, &body)
	assert.Equal(t, "새 캘린더", body["name"])
	// 생성자는 관리자이므로 초대 코드가 보인다.
	assert.NotEmpty(t, body["invitation_code"])
}

func TestCalendarRepresentationByPermission(t *testing.T) {
	app := newTestApp(t)
	creator, creatorToken := createTestUser(t, "creator@test.com", "생성자")
	_, outsiderToken := createTestUser(t, "outsider@test.com", "외부인")
	cal := createTestCalendar(t, creator, "SECRET-CODE")

	path := fmt.Sprintf("/api/calendars/%d", cal.CalendarID)

	// 관리자 표현에는 초대 코드가 있다.
	resp := doJSON(t, app, "GET", path, creatorToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var adminBody map[string]interface{}
	decodeJSON(t, resp, &adminBody)
	assert.Equal(t, "SECRET-CODE", adminBody["invitation_code"])

	// 관리자가 아니면 필드 자체가 없다.
	resp = doJSON(t, app, "GET", path, outsiderToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var publicBody map[string]interface{}
	decodeJSON(t, resp, &publicBody)
	_, present := publicBody["invitation_code"]
	assert.False(t, present)
	assert.Equal(t, "테스트캘린더", publicBody["name"])
}

func TestRedeemInvitationFlow(t *testing.T) {
	app := newTestApp(t)
	creator, _ := createTestUser(t, "creator@test.com", "생성자")
	user, userToken := createTestUser(t, "user@test.com", "사용자")
	cal := createTestCalendar(t, creator, "ABC123")

	adminRows := func() int64 {
		var count int64
		require.NoError(t, config.DB.Table("calendar_admins").
			Where("calendar_id = ?", cal.CalendarID).
			Count(&count).Error)
		return count
	}

	resp := doJSON(t, app, "POST", "/api/invitations/", userToken,
		map[string]string{"invitation_code": "ABC123"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, int64(2), adminRows())

	ok, err := cal.HasAdminPermission(config.DB, user.UserID)
	require.NoError(t, err)
	assert.True(t, ok)

	// 같은 코드를 다시 등록하면 409, 관리자 수는 그대로.
	resp = doJSON(t, app, "POST", "/api/invitations/", userToken,
		map[string]string{"invitation_code": "ABC123"})
	require.Equal(t, http.StatusConflict, resp.StatusCode)

	var body map[string]string
	decodeJSON(t, resp, &body)
	assert.Equal(t, "이미 캘린더 관리자로 추가되었습니다.", body["error"])
	assert.Equal(t, int64(2), adminRows())
}

func TestRedeemInvitationUnknownCode(t *testing.T) {
	app := newTestApp(t)
	creator, _ := createTestUser(t, "creator@test.com", "생성자")
	_, userToken := createTestUser(t, "user@test.com", "사용자")
	createTestCalendar(t, creator, "ABC123")

	resp := doJSON(t, app, "POST", "/api/invitations/", userToken,
		map[string]string{"invitation_code": "WRONG"})
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	var body map[string]string
	decodeJSON(t, resp, &body)
	assert.Equal(t, "유효하지 않은 초대 코드입니다.", body["error"])
}

func TestUpdateCalendarNonAdminForbidden(t *testing.T) {
	app := newTestApp(t)
	creator, _ := createTestUser(t, "creator@test.com", "생성자")
	_, outsiderToken := createTestUser(t, "outsider@test.com", "외부인")
	cal := createTestCalendar(t, creator, "UPDATE-CODE")

	resp := doJSON(t, app, "PUT",
		fmt.Sprintf("/api/calendars/%d", cal.CalendarID), outsiderToken,
		map[string]string{"name": "탈취된 캘린더"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestSearchCalendars(t *testing.T) {
	app := newTestApp(t)
	creator, _ := createTestUser(t, "creator@test.com", "생성자")
	user, userToken := createTestUser(t, "user@test.com", "사용자")
	cal := createTestCalendar(t, creator, "SEARCH-CODE")

	// 비공개 캘린더는 검색에 나오지 않는다.
	hidden := &models.Calendar{
		Name:           "비밀 캘린더",
		CreatorID:      creator.UserID,
		InvitationCode: "HIDDEN-CODE",
	}
	require.NoError(t, config.DB.Create(hidden).Error)

	require.NoError(t, config.DB.Create(&models.Subscription{
		UserID:       user.UserID,
		CalendarID:   cal.CalendarID,
		IsActive:     true,
		IsOnCalendar: true,
	}).Error)

	resp := doJSON(t, app, "GET", "/api/calendars/search?q=캘린더", userToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body []map[string]interface{}
	decodeJSON(t, resp, &body)
	require.Len(t, body, 1)
	assert.Equal(t, "테스트캘린더", body[0]["name"])
	assert.Equal(t, "생성자", body[0]["creator_nickname"])
	assert.Equal(t, true, body[0]["is_subscribed"])
}
