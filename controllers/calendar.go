package controllers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/PoodingDev/Evento-Be/config"
	"github.com/PoodingDev/Evento-Be/models"
	"github.com/PoodingDev/Evento-Be/utils"
)

/* ---------- 요청/응답 구조 (Calendar) ---------- */

// CreateCalendarInput — 캘린더 생성 요청 본문
type CreateCalendarInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	IsPublic    bool   `json:"is_public"`
	Color       string `json:"color"`
}

// UpdateCalendarInput — 캘린더 수정 요청 본문 (nil 필드는 유지)
type UpdateCalendarInput struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	IsPublic    *bool   `json:"is_public"`
	Color       *string `json:"color"`
}

// CalendarPublicResponse — 관리자가 아닌 사용자에게 내려가는 캘린더 표현.
// 초대 코드가 없다.
type CalendarPublicResponse struct {
	CalendarID      uint      `json:"calendar_id"`
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	IsPublic        bool      `json:"is_public"`
	Color           string    `json:"color"`
	CreatedAt       time.Time `json:"created_at"`
	Creator         uint      `json:"creator"`
	CreatorNickname string    `json:"creator_nickname"`
	Admins          []uint    `json:"admins"`
}

// CalendarAdminResponse — 관리자에게 내려가는 캘린더 표현 (초대 코드 포함).
type CalendarAdminResponse struct {
	CalendarPublicResponse
	InvitationCode string `json:"invitation_code"`
}

// newCalendarResponse는 요청 사용자의 관리자 여부에 따라 두 표현 중
// 하나를 만든다. 직렬화 후에 키를 지우는 방식 대신 형태 자체를 나눈다.
func newCalendarResponse(db *gorm.DB, cal *models.Calendar, userID uint) (interface{}, error) {
	var creator models.User
	if err := db.First(&creator, cal.CreatorID).Error; err != nil {
		return nil, err
	}
	adminIDs, err := cal.AdminIDs(db)
	if err != nil {
		return nil, err
	}

	public := CalendarPublicResponse{
		CalendarID:      cal.CalendarID,
		Name:            cal.Name,
		Description:     cal.Description,
		IsPublic:        cal.IsPublic,
		Color:           cal.Color,
		CreatedAt:       cal.CreatedAt,
		Creator:         cal.CreatorID,
		CreatorNickname: creator.Nickname,
		Admins:          adminIDs,
	}

	isAdmin, err := cal.HasAdminPermission(db, userID)
	if err != nil {
		return nil, err
	}
	if !isAdmin {
		return public, nil
	}
	return CalendarAdminResponse{
		CalendarPublicResponse: public,
		InvitationCode:         cal.InvitationCode,
	}, nil
}

/* ---------- Handlers (Calendar) ---------- */

// CreateCalendar는 새 캘린더를 만든다. 생성자는 자동으로 관리자가 되고
// 초대 코드가 발급된다.
func CreateCalendar(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return nil
	}

	var input CreateCalendarInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "JSON 파싱 오류"})
	}
	if input.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"name": "캘린더 이름은 필수입니다."})
	}

	cal := models.Calendar{
		Name:           input.Name,
		Description:    input.Description,
		IsPublic:       input.IsPublic,
		Color:          input.Color,
		CreatorID:      user.UserID,
		InvitationCode: utils.NewInvitationCode(),
	}
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&cal).Error; err != nil {
			return err
		}
		return tx.Model(&cal).Association("Admins").Append(user)
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "캘린더 생성 오류"})
	}

	resp, err := newCalendarResponse(config.DB, &cal, user.UserID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "캘린더 생성 오류"})
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// GetCalendar는 캘린더를 조회한다. 관리자가 아니면 초대 코드가 빠진
// 표현을 받는다.
func GetCalendar(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return nil
	}

	var cal models.Calendar
	if err := config.DB.First(&cal, c.Params("calendar_id")).Error; err != nil {
		return writeDomainError(c, models.ErrCalendarNotFound)
	}

	resp, err := newCalendarResponse(config.DB, &cal, user.UserID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "캘린더 조회 오류"})
	}
	return c.JSON(resp)
}

// UpdateCalendar는 캘린더 정보를 수정한다 (관리자만).
func UpdateCalendar(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return nil
	}

	var cal models.Calendar
	if err := config.DB.First(&cal, c.Params("calendar_id")).Error; err != nil {
		return writeDomainError(c, models.ErrCalendarNotFound)
	}

	isAdmin, err := cal.HasAdminPermission(config.DB, user.UserID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "권한 확인 오류"})
	}
	if !isAdmin {
		return writeDomainError(c, models.ErrNotAdmin)
	}

	var input UpdateCalendarInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "JSON 파싱 오류"})
	}
	if input.Name != nil {
		cal.Name = *input.Name
	}
	if input.Description != nil {
		cal.Description = *input.Description
	}
	if input.IsPublic != nil {
		cal.IsPublic = *input.IsPublic
	}
	if input.Color != nil {
		cal.Color = *input.Color
	}

	if err := config.DB.Save(&cal).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "캘린더 수정 오류"})
	}

	resp, err := newCalendarResponse(config.DB, &cal, user.UserID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "캘린더 수정 오류"})
	}
	return c.JSON(resp)
}

// DeleteCalendar는 캘린더와 그 하위 데이터를 삭제한다 (생성자만).
func DeleteCalendar(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return nil
	}

	var cal models.Calendar
	if err := config.DB.First(&cal, c.Params("calendar_id")).Error; err != nil {
		return writeDomainError(c, models.ErrCalendarNotFound)
	}
	if cal.CreatorID != user.UserID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "캘린더 생성자만 삭제할 수 있습니다."})
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		var eventIDs []uint
		if err := tx.Model(&models.Event{}).
			Where("calendar_id = ?", cal.CalendarID).
			Pluck("event_id", &eventIDs).Error; err != nil {
			return err
		}
		if len(eventIDs) > 0 {
			if err := tx.Where("event_id IN ?", eventIDs).Delete(&models.Comment{}).Error; err != nil {
				return err
			}
			if err := tx.Where("event_id IN ?", eventIDs).Delete(&models.FavoriteEvent{}).Error; err != nil {
				return err
			}
			if err := tx.Where("calendar_id = ?", cal.CalendarID).Delete(&models.Event{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("calendar_id = ?", cal.CalendarID).Delete(&models.Subscription{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&cal).Association("Admins").Clear(); err != nil {
			return err
		}
		return tx.Delete(&cal).Error
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "캘린더 삭제 오류"})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// SearchCalendars는 공개 캘린더를 이름으로 검색한다.
func SearchCalendars(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return nil
	}

	query := c.Query("q")
	var cals []models.Calendar
	if err := config.DB.
		Where("is_public = ? AND name LIKE ?", true, "%"+query+"%").
		Order("calendar_id ASC").
		Find(&cals).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "캘린더 검색 오류"})
	}

	out := make([]fiber.Map, 0, len(cals))
	for _, cal := range cals {
		var creator models.User
		config.DB.First(&creator, cal.CreatorID)

		var subCount int64
		config.DB.Model(&models.Subscription{}).
			Where("user_id = ? AND calendar_id = ?", user.UserID, cal.CalendarID).
			Count(&subCount)

		out = append(out, fiber.Map{
			"calendar_id":      cal.CalendarID,
			"name":             cal.Name,
			"creator_nickname": creator.Nickname,
			"is_subscribed":    subCount > 0,
		})
	}
	return c.JSON(out)
}

// GetAdminCalendars는 요청 사용자가 관리하는 캘린더 목록을 반환한다.
func GetAdminCalendars(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return nil
	}

	var cals []models.Calendar
	if err := config.DB.
		Where("creator_id = ? OR calendar_id IN (?)",
			user.UserID,
			config.DB.Table("calendar_admins").Select("calendar_id").Where("user_id = ?", user.UserID),
		).
		Order("calendar_id ASC").
		Find(&cals).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "캘린더 목록 오류"})
	}

	out := make([]fiber.Map, 0, len(cals))
	for _, cal := range cals {
		adminIDs, err := cal.AdminIDs(config.DB)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "캘린더 목록 오류"})
		}
		var nicknames []string
		if len(adminIDs) > 0 {
			if err := config.DB.Model(&models.User{}).
				Where("user_id IN ?", adminIDs).
				Order("user_id ASC").
				Pluck("nickname", &nicknames).Error; err != nil {
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "캘린더 목록 오류"})
			}
		}
		out = append(out, fiber.Map{
			"name":          cal.Name,
			"creator_id":    cal.CreatorID,
			"admin_members": nicknames,
		})
	}
	return c.JSON(out)
}
