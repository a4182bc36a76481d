package controllers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/PoodingDev/Evento-Be/config"
	"github.com/PoodingDev/Evento-Be/models"
)

/* ---------- 요청 구조 (FavoriteEvent) ---------- */

// CreateFavoriteInput — 즐겨찾기 등록 요청 본문
type CreateFavoriteInput struct {
	EventID uint `json:"event_id"`
}

// UpdateFavoriteInput — 즐겨찾기 설정 변경 요청 본문
type UpdateFavoriteInput struct {
	EasyInsidebar *bool `json:"easy_insidebar"`
}

/* ---------- Handlers (FavoriteEvent) ---------- */

// CreateFavorite는 이벤트를 즐겨찾기에 등록한다. d_day는 등록 시점 날짜.
func CreateFavorite(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return nil
	}

	var input CreateFavoriteInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "JSON 파싱 오류"})
	}

	var event models.Event
	if err := config.DB.First(&event, input.EventID).Error; err != nil {
		return writeDomainError(c, models.ErrEventNotFound)
	}

	now := time.Now().UTC()
	fav := models.FavoriteEvent{
		UserID:  user.UserID,
		EventID: event.EventID,
		DDay:    time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC),
	}
	if err := config.DB.Create(&fav).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "즐겨찾기 등록 오류"})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"favorite_event": fav})
}

// ListFavorites는 요청 사용자의 즐겨찾기 목록을 이벤트 정보와 함께 반환한다.
func ListFavorites(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return nil
	}

	var favs []models.FavoriteEvent
	if err := config.DB.
		Where("user_id = ?", user.UserID).
		Order("favorite_event_id ASC").
		Find(&favs).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "즐겨찾기 조회 오류"})
	}

	out := make([]fiber.Map, 0, len(favs))
	for _, fav := range favs {
		var event models.Event
		if err := config.DB.First(&event, fav.EventID).Error; err != nil {
			// 이벤트가 삭제된 즐겨찾기 행은 건너뛴다.
			continue
		}
		out = append(out, fiber.Map{
			"favorite_event_id": fav.FavoriteEventID,
			"event_id":          event.EventID,
			"title":             event.Title,
			"start_time":        event.StartTime,
			"end_time":          event.EndTime,
			"d_day":             fav.DDay,
			"easy_insidebar":    fav.EasyInsidebar,
		})
	}
	return c.JSON(out)
}

// UpdateFavorite는 즐겨찾기 설정을 변경한다 (본인만).
func UpdateFavorite(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return nil
	}

	var fav models.FavoriteEvent
	if err := config.DB.First(&fav, c.Params("favorite_event_id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "즐겨찾기를 찾을 수 없습니다."})
	}
	if fav.UserID != user.UserID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "본인의 즐겨찾기만 수정할 수 있습니다."})
	}

	var input UpdateFavoriteInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "JSON 파싱 오류"})
	}
	if input.EasyInsidebar != nil {
		fav.EasyInsidebar = *input.EasyInsidebar
	}

	if err := config.DB.Save(&fav).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "즐겨찾기 수정 오류"})
	}
	return c.JSON(fiber.Map{"favorite_event": fav})
}

// DeleteFavorite는 즐겨찾기를 해제한다 (본인만).
func DeleteFavorite(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return nil
	}

	var fav models.FavoriteEvent
	if err := config.DB.First(&fav, c.Params("favorite_event_id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "즐겨찾기를 찾을 수 없습니다."})
	}
	if fav.UserID != user.UserID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "본인의 즐겨찾기만 해제할 수 있습니다."})
	}

	if err := config.DB.Delete(&fav).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "즐겨찾기 해제 오류"})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
