package controllers_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PoodingDev/Evento-Be/config"
	"github.com/PoodingDev/Evento-Be/models"
)

func eventBody(title string, start, end time.Time) map[string]interface{} {
	return map[string]interface{}{
		"title":      title,
		"start_time": start.Format(time.RFC3339),
		"end_time":   end.Format(time.RFC3339),
	}
}

func TestCreateEventBoundaryAndOverlap(t *testing.T) {
	app := newTestApp(t)
	admin, token := createTestUser(t, "admin@test.com", "관리자")
	cal := createTestCalendar(t, admin, "EVENT-CODE")

	day := time.Date(2030, 1, 15, 0, 0, 0, 0, time.UTC)
	path := fmt.Sprintf("/api/calendars/%d/events", cal.CalendarID)

	// [09:00, 10:00)
	resp := doJSON(t, app, "POST", path, token,
		eventBody("첫 이벤트", day.Add(9*time.Hour), day.Add(10*time.Hour)))
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	// [10:00, 11:00) — 경계가 맞닿는 이벤트는 허용된다.
	resp = doJSON(t, app, "POST", path, token,
		eventBody("이어지는 이벤트", day.Add(10*time.Hour), day.Add(11*time.Hour)))
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	// [09:30, 10:30) — 겹치는 이벤트는 거부된다.
	resp = doJSON(t, app, "POST", path, token,
		eventBody("겹치는 이벤트", day.Add(9*time.Hour+30*time.Minute), day.Add(10*time.Hour+30*time.Minute)))
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body map[string]string
	decodeJSON(t, resp, &body)
	assert.Equal(t, "다른 이벤트와 시간이 겹칩니다.", body["start_time"])

	var count int64
	require.NoError(t, config.DB.Model(&models.Event{}).Count(&count).Error)
	assert.Equal(t, int64(2), count)
}

func TestCreateEventZeroDuration(t *testing.T) {
	app := newTestApp(t)
	admin, token := createTestUser(t, "admin@test.com", "관리자")
	cal := createTestCalendar(t, admin, "EVENT-CODE")

	start := time.Date(2030, 1, 15, 9, 0, 0, 0, time.UTC)
	resp := doJSON(t, app, "POST",
		fmt.Sprintf("/api/calendars/%d/events", cal.CalendarID), token,
		eventBody("빈 이벤트", start, start))
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body map[string]string
	decodeJSON(t, resp, &body)
	assert.Equal(t, "종료 시간은 시작 시간 이후여야 합니다.", body["end_time"])
}

func TestUpdateEventUnchangedTimes(t *testing.T) {
	app := newTestApp(t)
	admin, token := createTestUser(t, "admin@test.com", "관리자")
	cal := createTestCalendar(t, admin, "EVENT-CODE")
	start := time.Date(2030, 1, 15, 9, 0, 0, 0, time.UTC)
	event := createTestEvent(t, cal, admin, start, start.Add(time.Hour))

	// 시간을 바꾸지 않는 수정은 자기 자신과 겹치지 않아야 한다.
	resp := doJSON(t, app, "PUT",
		fmt.Sprintf("/api/events/%d", event.EventID), token,
		map[string]string{"title": "수정된 제목"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var updated models.Event
	require.NoError(t, config.DB.First(&updated, event.EventID).Error)
	assert.Equal(t, "수정된 제목", updated.Title)
}

func TestUpdateEventOverlapRejected(t *testing.T) {
	app := newTestApp(t)
	admin, token := createTestUser(t, "admin@test.com", "관리자")
	cal := createTestCalendar(t, admin, "EVENT-CODE")
	start := time.Date(2030, 1, 15, 9, 0, 0, 0, time.UTC)
	createTestEvent(t, cal, admin, start, start.Add(time.Hour))
	target := createTestEvent(t, cal, admin, start.Add(2*time.Hour), start.Add(3*time.Hour))

	// 기존 이벤트와 겹치는 시간으로는 옮길 수 없다.
	resp := doJSON(t, app, "PUT",
		fmt.Sprintf("/api/events/%d", target.EventID), token,
		map[string]string{
			"start_time": start.Add(30 * time.Minute).Format(time.RFC3339),
			"end_time":   start.Add(90 * time.Minute).Format(time.RFC3339),
		})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body map[string]string
	decodeJSON(t, resp, &body)
	assert.Equal(t, "다른 이벤트와 시간이 겹칩니다.", body["start_time"])
}

func TestUpdateEventAdminImmutable(t *testing.T) {
	app := newTestApp(t)
	admin, token := createTestUser(t, "admin@test.com", "관리자")
	cal := createTestCalendar(t, admin, "EVENT-CODE")
	start := time.Date(2030, 1, 15, 9, 0, 0, 0, time.UTC)
	event := createTestEvent(t, cal, admin, start, start.Add(time.Hour))

	resp := doJSON(t, app, "PUT",
		fmt.Sprintf("/api/events/%d", event.EventID), token,
		map[string]interface{}{"admin_id": 42})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body map[string]string
	decodeJSON(t, resp, &body)
	assert.Equal(t, "관리자를 변경할 수 없습니다.", body["admin_id"])
}

func TestCreateEventNonAdminForbidden(t *testing.T) {
	app := newTestApp(t)
	admin, _ := createTestUser(t, "admin@test.com", "관리자")
	cal := createTestCalendar(t, admin, "EVENT-CODE")
	_, outsiderToken := createTestUser(t, "outsider@test.com", "외부인")

	start := time.Date(2030, 1, 15, 9, 0, 0, 0, time.UTC)
	resp := doJSON(t, app, "POST",
		fmt.Sprintf("/api/calendars/%d/events", cal.CalendarID), outsiderToken,
		eventBody("권한 없는 이벤트", start, start.Add(time.Hour)))
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestCreateEventRejectsClientIsPublic(t *testing.T) {
	app := newTestApp(t)
	admin, token := createTestUser(t, "admin@test.com", "관리자")
	cal := createTestCalendar(t, admin, "EVENT-CODE")

	start := time.Date(2030, 1, 15, 9, 0, 0, 0, time.UTC)
	body := eventBody("몰래 공개 이벤트", start, start.Add(time.Hour))
	body["is_public"] = true

	resp := doJSON(t, app, "POST",
		fmt.Sprintf("/api/calendars/%d/events", cal.CalendarID), token, body)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var out map[string]string
	decodeJSON(t, resp, &out)
	assert.Equal(t, "비공개 이벤트는 is_public을 True로 설정할 수 없습니다.", out["is_public"])
}

func TestCreatePublicEvent(t *testing.T) {
	app := newTestApp(t)
	admin, token := createTestUser(t, "admin@test.com", "관리자")
	cal := createTestCalendar(t, admin, "EVENT-CODE")

	start := time.Date(2030, 1, 15, 9, 0, 0, 0, time.UTC)
	resp := doJSON(t, app, "POST",
		fmt.Sprintf("/api/calendars/%d/events/public", cal.CalendarID), token,
		eventBody("공개 이벤트", start, start.Add(time.Hour)))
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var event models.Event
	require.NoError(t, config.DB.Where("title = ?", "공개 이벤트").First(&event).Error)
	assert.True(t, event.IsPublic)
}

func TestCreateEventUnknownCalendar(t *testing.T) {
	app := newTestApp(t)
	_, token := createTestUser(t, "admin@test.com", "관리자")

	start := time.Date(2030, 1, 15, 9, 0, 0, 0, time.UTC)
	resp := doJSON(t, app, "POST", "/api/calendars/999/events", token,
		eventBody("이벤트", start, start.Add(time.Hour)))
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	var body map[string]string
	decodeJSON(t, resp, &body)
	assert.Equal(t, "캘린더를 찾을 수 없습니다.", body["error"])
}
