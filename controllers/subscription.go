package controllers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/PoodingDev/Evento-Be/config"
	"github.com/PoodingDev/Evento-Be/models"
)

/* ---------- 요청/응답 구조 (Subscription) ---------- */

// SubscribeInput — 구독 생성 요청 본문
type SubscribeInput struct {
	CalendarID uint `json:"calendar_id"`
}

// UpdateSubscriptionInput — 구독 상태 변경 요청 본문 (nil 필드는 유지)
type UpdateSubscriptionInput struct {
	IsActive     *bool `json:"is_active"`
	IsOnCalendar *bool `json:"is_on_calendar"`
}

// SubscriptionResponse — 캘린더 정보가 포함된 구독 표현 (초대 코드 없음).
type SubscriptionResponse struct {
	ID              uint      `json:"id"`
	User            uint      `json:"user"`
	CalendarID      uint      `json:"calendar_id"`
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	IsPublic        bool      `json:"is_public"`
	Color           string    `json:"color"`
	IsActive        bool      `json:"is_active"`
	IsOnCalendar    bool      `json:"is_on_calendar"`
	CreatedAt       time.Time `json:"created_at"`
	Creator         uint      `json:"creator"`
	CreatorNickname string    `json:"creator_nickname"`
	Admins          []uint    `json:"admins"`
}

// SubscriptionAdminResponse — 구독한 캘린더의 관리자이기도 한 경우의 표현.
type SubscriptionAdminResponse struct {
	SubscriptionResponse
	InvitationCode string `json:"invitation_code"`
}

// newSubscriptionResponse는 구독 행과 캘린더를 합친 표현을 만든다.
// 초대 코드는 요청 사용자가 그 캘린더의 관리자일 때만 포함된다.
func newSubscriptionResponse(db *gorm.DB, sub *models.Subscription, cal *models.Calendar, userID uint) (interface{}, error) {
	var creator models.User
	if err := db.First(&creator, cal.CreatorID).Error; err != nil {
		return nil, err
	}
	adminIDs, err := cal.AdminIDs(db)
	if err != nil {
		return nil, err
	}

	resp := SubscriptionResponse{
		ID:              sub.SubscriptionID,
		User:            sub.UserID,
		CalendarID:      cal.CalendarID,
		Name:            cal.Name,
		Description:     cal.Description,
		IsPublic:        cal.IsPublic,
		Color:           cal.Color,
		IsActive:        sub.IsActive,
		IsOnCalendar:    sub.IsOnCalendar,
		CreatedAt:       sub.CreatedAt,
		Creator:         cal.CreatorID,
		CreatorNickname: creator.Nickname,
		Admins:          adminIDs,
	}

	isAdmin, err := cal.HasAdminPermission(db, userID)
	if err != nil {
		return nil, err
	}
	if !isAdmin {
		return resp, nil
	}
	return SubscriptionAdminResponse{
		SubscriptionResponse: resp,
		InvitationCode:       cal.InvitationCode,
	}, nil
}

/* ---------- Handlers (Subscription) ---------- */

// Subscribe는 캘린더 구독을 생성한다.
func Subscribe(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return nil
	}

	var input SubscribeInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "JSON 파싱 오류"})
	}

	var cal models.Calendar
	if err := config.DB.First(&cal, input.CalendarID).Error; err != nil {
		return writeDomainError(c, models.ErrCalendarNotFound)
	}

	sub := models.Subscription{
		UserID:       user.UserID,
		CalendarID:   cal.CalendarID,
		IsActive:     true,
		IsOnCalendar: true,
	}
	if err := config.DB.Create(&sub).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "구독 생성 오류"})
	}

	resp, err := newSubscriptionResponse(config.DB, &sub, &cal, user.UserID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "구독 생성 오류"})
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// ListSubscriptions는 요청 사용자의 구독 목록을 반환한다.
func ListSubscriptions(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return nil
	}

	var subs []models.Subscription
	if err := config.DB.
		Where("user_id = ?", user.UserID).
		Order("subscription_id ASC").
		Find(&subs).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "구독 조회 오류"})
	}

	out := make([]interface{}, 0, len(subs))
	for i := range subs {
		var cal models.Calendar
		if err := config.DB.First(&cal, subs[i].CalendarID).Error; err != nil {
			// 캘린더가 삭제된 구독 행은 건너뛴다.
			continue
		}
		resp, err := newSubscriptionResponse(config.DB, &subs[i], &cal, user.UserID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "구독 조회 오류"})
		}
		out = append(out, resp)
	}
	return c.JSON(out)
}

// UpdateSubscription은 구독 상태(is_active, is_on_calendar)를 변경한다.
func UpdateSubscription(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return nil
	}

	var sub models.Subscription
	if err := config.DB.First(&sub, c.Params("subscription_id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "구독을 찾을 수 없습니다."})
	}
	if sub.UserID != user.UserID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "본인의 구독만 수정할 수 있습니다."})
	}

	var input UpdateSubscriptionInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "JSON 파싱 오류"})
	}
	if input.IsActive != nil {
		sub.IsActive = *input.IsActive
	}
	if input.IsOnCalendar != nil {
		sub.IsOnCalendar = *input.IsOnCalendar
	}

	if err := config.DB.Save(&sub).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "구독 수정 오류"})
	}

	var cal models.Calendar
	if err := config.DB.First(&cal, sub.CalendarID).Error; err != nil {
		return writeDomainError(c, models.ErrCalendarNotFound)
	}
	resp, err := newSubscriptionResponse(config.DB, &sub, &cal, user.UserID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "구독 수정 오류"})
	}
	return c.JSON(resp)
}

// Unsubscribe는 구독을 해지한다. (user, calendar) 쌍에 유니크 제약이
// 없으므로 같은 쌍의 중복 행까지 한 번에 지운다.
func Unsubscribe(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return nil
	}

	var sub models.Subscription
	if err := config.DB.First(&sub, c.Params("subscription_id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "구독을 찾을 수 없습니다."})
	}
	if sub.UserID != user.UserID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "본인의 구독만 해지할 수 있습니다."})
	}

	if err := config.DB.
		Where("user_id = ? AND calendar_id = ?", sub.UserID, sub.CalendarID).
		Delete(&models.Subscription{}).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "구독 해지 오류"})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
