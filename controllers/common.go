package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"github.com/PoodingDev/Evento-Be/config"
	"github.com/PoodingDev/Evento-Be/models"
)

// currentUser는 JWT claims에서 요청 사용자를 읽어온다.
// 실패 시 응답을 직접 작성하고 ok=false를 반환한다.
func currentUser(c *fiber.Ctx) (*models.User, bool) {
	claims, ok := c.Locals("user").(jwt.MapClaims)
	if !ok {
		c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "JWT claims 없음"})
		return nil, false
	}
	userIDFloat, ok := claims["user_id"].(float64)
	if !ok {
		c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "유효하지 않은 user_id"})
		return nil, false
	}

	var user models.User
	if err := config.DB.First(&user, uint(userIDFloat)).Error; err != nil {
		c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "사용자를 찾을 수 없습니다."})
		return nil, false
	}
	if !user.IsActive {
		c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "비활성화된 계정입니다."})
		return nil, false
	}
	return &user, true
}

// writeDomainError는 models의 도메인 에러를 HTTP 응답으로 변환한다.
// 필드 검증 실패는 {"<field>": "<message>"} 형태로 내려간다.
func writeDomainError(c *fiber.Ctx, err error) error {
	var fieldErr *models.FieldError
	switch {
	case errors.As(err, &fieldErr):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{fieldErr.Field: fieldErr.Message})
	case errors.Is(err, models.ErrCalendarNotFound),
		errors.Is(err, models.ErrEventNotFound),
		errors.Is(err, models.ErrCommentNotFound),
		errors.Is(err, models.ErrInvitationNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, models.ErrAlreadyAdmin):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, models.ErrNotAdmin):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "서버 오류가 발생했습니다."})
	}
}
