package controllers

import (
	"bytes"
	"fmt"
	"time"

	"github.com/emersion/go-ical"
	"github.com/gofiber/fiber/v2"

	"github.com/PoodingDev/Evento-Be/config"
	"github.com/PoodingDev/Evento-Be/models"
)

// ExportCalendar는 캘린더의 이벤트를 iCalendar(.ics) 문서로 내보낸다.
// 공개 캘린더이거나 구독자/관리자인 경우에만 접근할 수 있으며,
// 관리자가 아니면 공개 이벤트만 포함된다.
func ExportCalendar(c *fiber.Ctx) error {
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
	if !isAdmin && !cal.IsPublic {
		var subCount int64
		config.DB.Model(&models.Subscription{}).
			Where("user_id = ? AND calendar_id = ?", user.UserID, cal.CalendarID).
			Count(&subCount)
		if subCount == 0 {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "캘린더에 접근할 수 없습니다."})
		}
	}

	q := config.DB.Where("calendar_id = ?", cal.CalendarID)
	if !isAdmin {
		q = q.Where("is_public = ?", true)
	}
	var events []models.Event
	if err := q.Order("start_time ASC").Find(&events).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "이벤트 조회 오류"})
	}

	icsCal := ical.NewCalendar()
	icsCal.Props.SetText(ical.PropProductID, "-//PoodingDev//Evento//KO")
	icsCal.Props.SetText(ical.PropVersion, "2.0")
	icsCal.Props.SetText(ical.PropName, cal.Name)

	now := time.Now()
	for _, event := range events {
		component := ical.NewComponent(ical.CompEvent)
		component.Props.SetText(ical.PropUID, fmt.Sprintf("event-%d@evento", event.EventID))
		component.Props.SetDateTime(ical.PropDateTimeStamp, now)
		component.Props.SetDateTime(ical.PropDateTimeStart, event.StartTime)
		component.Props.SetDateTime(ical.PropDateTimeEnd, event.EndTime)
		component.Props.SetText(ical.PropSummary, event.Title)
		if event.Description != "" {
			component.Props.SetText(ical.PropDescription, event.Description)
		}
		icsCal.Children = append(icsCal.Children, component)
	}

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(icsCal); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "iCalendar 인코딩 오류"})
	}

	c.Set(fiber.HeaderContentType, "text/calendar; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="calendar-%d.ics"`, cal.CalendarID))
	return c.Send(buf.Bytes())
}
