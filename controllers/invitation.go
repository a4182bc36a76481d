package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/PoodingDev/Evento-Be/config"
	"github.com/PoodingDev/Evento-Be/mail"
	"github.com/PoodingDev/Evento-Be/models"
)

// RedeemInvitationInput — 초대 코드 등록 요청 본문
type RedeemInvitationInput struct {
	InvitationCode string `json:"invitation_code"`
}

// SendInvitationInput — 초대 코드 메일 발송 요청 본문
type SendInvitationInput struct {
	CalendarID uint   `json:"calendar_id"`
	Email      string `json:"email"`
}

// RedeemInvitation은 초대 코드를 사용해 요청 사용자를 캘린더 관리자로
// 추가한다. 알 수 없는 코드 → 404, 이미 관리자 → 409.
func RedeemInvitation(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return nil
	}

	var input RedeemInvitationInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "JSON 파싱 오류"})
	}
	if input.InvitationCode == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"invitation_code": "초대 코드를 입력해주세요."})
	}

	cal, err := models.RedeemInvitation(config.DB, input.InvitationCode, user)
	if err != nil {
		return writeDomainError(c, err)
	}

	// 등록 직후이므로 요청 사용자는 관리자 표현을 받는다.
	resp, err := newCalendarResponse(config.DB, cal, user.UserID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "캘린더 조회 오류"})
	}
	return c.JSON(fiber.Map{"calendar": resp})
}

// SendInvitation은 캘린더 초대 코드를 이메일로 보낸다 (관리자만).
func SendInvitation(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return nil
	}

	var input SendInvitationInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "JSON 파싱 오류"})
	}
	if input.Email == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"email": "이메일을 입력해주세요."})
	}

	var cal models.Calendar
	if err := config.DB.First(&cal, input.CalendarID).Error; err != nil {
		return writeDomainError(c, models.ErrCalendarNotFound)
	}

	isAdmin, err := cal.HasAdminPermission(config.DB, user.UserID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "권한 확인 오류"})
	}
	if !isAdmin {
		return writeDomainError(c, models.ErrNotAdmin)
	}

	mailService := mail.NewMailService()
	if err := mailService.SendInvitationMail(input.Email, cal.Name, cal.InvitationCode); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "초대 메일 전송에 실패했습니다."})
	}
	return c.JSON(fiber.Map{"message": "초대 메일을 보냈습니다."})
}
