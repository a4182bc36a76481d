package controllers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/PoodingDev/Evento-Be/config"
	"github.com/PoodingDev/Evento-Be/models"
)

/* ---------- 요청 구조 (Event) ---------- */

// CreateEventInput — 이벤트 생성 요청 본문
type CreateEventInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	IsPublic    *bool  `json:"is_public"`
}

// UpdateEventInput — 이벤트 수정 요청 본문 (nil 필드는 유지)
type UpdateEventInput struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	StartTime   *string `json:"start_time"`
	EndTime     *string `json:"end_time"`
	AdminID     *uint   `json:"admin_id"`
}

/* ---------- Handlers (Event) ---------- */

// CreateEvent는 비공개 이벤트를 생성한다. is_public은 강제로 false이며
// 클라이언트가 true를 보내면 거부한다.
func CreateEvent(c *fiber.Ctx) error {
	return createEvent(c, false)
}

// CreatePublicEvent는 공개 이벤트를 생성한다.
func CreatePublicEvent(c *fiber.Ctx) error {
	return createEvent(c, true)
}

func createEvent(c *fiber.Ctx, isPublic bool) error {
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

	var input CreateEventInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "JSON 파싱 오류"})
	}
	if input.Title == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"title": "이벤트 제목은 필수입니다."})
	}
	if !isPublic && input.IsPublic != nil && *input.IsPublic {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"is_public": "비공개 이벤트는 is_public을 True로 설정할 수 없습니다."})
	}

	start, err := time.Parse(time.RFC3339, input.StartTime)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"start_time": "올바르지 않은 start_time 형식입니다."})
	}
	end, err := time.Parse(time.RFC3339, input.EndTime)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"end_time": "올바르지 않은 end_time 형식입니다."})
	}

	// 겹침 검사와 저장을 한 트랜잭션으로 묶고 캘린더 행을 잠가
	// 같은 캘린더에 대한 동시 생성이 둘 다 통과하지 못하게 한다.
	var event models.Event
	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if _, err := models.LockCalendar(tx, cal.CalendarID); err != nil {
			return err
		}
		if err := models.ValidateEventWindow(tx, cal.CalendarID, start, end, nil); err != nil {
			return err
		}
		event = models.Event{
			CalendarID:  cal.CalendarID,
			Title:       input.Title,
			Description: input.Description,
			StartTime:   start,
			EndTime:     end,
			AdminID:     user.UserID,
			IsPublic:    isPublic,
		}
		return tx.Create(&event).Error
	})
	if err != nil {
		return writeDomainError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"event": event})
}

// GetEventsForCalendar는 캘린더의 이벤트 목록을 반환한다.
// ?month=&year= 지정 시 해당 월의 이벤트만 내려간다.
// 관리자가 아니면 공개 이벤트만 보인다.
func GetEventsForCalendar(c *fiber.Ctx) error {
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

	q := config.DB.Where("calendar_id = ?", cal.CalendarID)
	if !isAdmin {
		q = q.Where("is_public = ?", true)
	}

	month := c.QueryInt("month", 0)
	year := c.QueryInt("year", 0)
	if month != 0 || year != 0 {
		if month < 1 || month > 12 || year < 1 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "유효한 month와 year가 필요합니다."})
		}
		startDate := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
		endDate := startDate.AddDate(0, 1, 0)
		q = q.Where("start_time >= ? AND start_time < ?", startDate, endDate)
	}

	var events []models.Event
	if err := q.Order("start_time ASC").Find(&events).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "이벤트 조회 오류"})
	}
	return c.JSON(events)
}

// GetEvent는 단일 이벤트를 반환한다. 비공개 이벤트는 관리자만 볼 수 있다.
func GetEvent(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return nil
	}

	var event models.Event
	if err := config.DB.First(&event, c.Params("event_id")).Error; err != nil {
		return writeDomainError(c, models.ErrEventNotFound)
	}

	if !event.IsPublic {
		var cal models.Calendar
		if err := config.DB.First(&cal, event.CalendarID).Error; err != nil {
			return writeDomainError(c, models.ErrCalendarNotFound)
		}
		isAdmin, err := cal.HasAdminPermission(config.DB, user.UserID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "권한 확인 오류"})
		}
		if !isAdmin {
			return writeDomainError(c, models.ErrNotAdmin)
		}
	}
	return c.JSON(fiber.Map{"event": event})
}

// UpdateEvent는 이벤트를 수정한다. admin_id는 변경할 수 없고,
// 수정된 시간은 자기 자신을 제외하고 다시 겹침 검사를 받는다.
func UpdateEvent(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return nil
	}

	var event models.Event
	if err := config.DB.First(&event, c.Params("event_id")).Error; err != nil {
		return writeDomainError(c, models.ErrEventNotFound)
	}

	var cal models.Calendar
	if err := config.DB.First(&cal, event.CalendarID).Error; err != nil {
		return writeDomainError(c, models.ErrCalendarNotFound)
	}
	isAdmin, err := cal.HasAdminPermission(config.DB, user.UserID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "권한 확인 오류"})
	}
	if !isAdmin {
		return writeDomainError(c, models.ErrNotAdmin)
	}

	var input UpdateEventInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "JSON 파싱 오류"})
	}
	if input.AdminID != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"admin_id": "관리자를 변경할 수 없습니다."})
	}

	if input.Title != nil {
		event.Title = *input.Title
	}
	if input.Description != nil {
		event.Description = *input.Description
	}
	if input.StartTime != nil {
		start, err := time.Parse(time.RFC3339, *input.StartTime)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"start_time": "올바르지 않은 start_time 형식입니다."})
		}
		event.StartTime = start
	}
	if input.EndTime != nil {
		end, err := time.Parse(time.RFC3339, *input.EndTime)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"end_time": "올바르지 않은 end_time 형식입니다."})
		}
		event.EndTime = end
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if _, err := models.LockCalendar(tx, event.CalendarID); err != nil {
			return err
		}
		// 자기 자신은 겹침 검사에서 제외한다. 시간 변경 없이 저장해도
		// 스스로와 충돌하지 않는다.
		if err := models.ValidateEventWindow(tx, event.CalendarID,
			event.StartTime, event.EndTime, &event.EventID); err != nil {
			return err
		}
		return tx.Save(&event).Error
	})
	if err != nil {
		return writeDomainError(c, err)
	}

	return c.JSON(fiber.Map{"event": event})
}

// DeleteEvent는 이벤트와 그 댓글/즐겨찾기를 삭제한다 (관리자만).
func DeleteEvent(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return nil
	}

	var event models.Event
	if err := config.DB.First(&event, c.Params("event_id")).Error; err != nil {
		return writeDomainError(c, models.ErrEventNotFound)
	}

	var cal models.Calendar
	if err := config.DB.First(&cal, event.CalendarID).Error; err != nil {
		return writeDomainError(c, models.ErrCalendarNotFound)
	}
	isAdmin, err := cal.HasAdminPermission(config.DB, user.UserID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "권한 확인 오류"})
	}
	if !isAdmin {
		return writeDomainError(c, models.ErrNotAdmin)
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("event_id = ?", event.EventID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("event_id = ?", event.EventID).Delete(&models.FavoriteEvent{}).Error; err != nil {
			return err
		}
		return tx.Delete(&event).Error
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "이벤트 삭제 오류"})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
