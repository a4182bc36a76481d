package controllers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/PoodingDev/Evento-Be/config"
	"github.com/PoodingDev/Evento-Be/models"
)

/* ---------- 요청/응답 구조 (Comment) ---------- */

// CommentInput — 댓글 생성/수정 요청 본문
type CommentInput struct {
	Content string `json:"content"`
}

// CommentResponse — 작성자 닉네임이 포함된 댓글 표현
type CommentResponse struct {
	CommentID     uint   `json:"comment_id"`
	EventID       uint   `json:"event_id"`
	AdminID       uint   `json:"admin_id"`
	AdminNickname string `json:"admin_nickname"`
	Content       string `json:"content"`
	CreatedAt     string `json:"created_at"`
	UpdatedAt     string `json:"updated_at"`
}

func newCommentResponse(db *gorm.DB, cmt *models.Comment) CommentResponse {
	var admin models.User
	db.First(&admin, cmt.AdminID)
	return CommentResponse{
		CommentID:     cmt.CommentID,
		EventID:       cmt.EventID,
		AdminID:       cmt.AdminID,
		AdminNickname: admin.Nickname,
		Content:       cmt.Content,
		CreatedAt:     cmt.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt:     cmt.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

/* ---------- Handlers (Comment) ---------- */

// ListComments는 이벤트의 댓글 목록을 반환한다.
func ListComments(c *fiber.Ctx) error {
	if _, ok := currentUser(c); !ok {
		return nil
	}

	var event models.Event
	if err := config.DB.First(&event, c.Params("event_id")).Error; err != nil {
		return writeDomainError(c, models.ErrEventNotFound)
	}

	var comments []models.Comment
	if err := config.DB.
		Where("event_id = ?", event.EventID).
		Order("created_at ASC").
		Find(&comments).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "댓글 조회 오류"})
	}

	out := make([]CommentResponse, 0, len(comments))
	for i := range comments {
		out = append(out, newCommentResponse(config.DB, &comments[i]))
	}
	return c.JSON(out)
}

// CreateComment는 이벤트에 댓글을 단다 (캘린더 관리자만).
func CreateComment(c *fiber.Ctx) error {
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

	var input CommentInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "JSON 파싱 오류"})
	}
	if input.Content == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"content": "댓글 내용을 입력해주세요."})
	}

	cmt := models.Comment{
		EventID: event.EventID,
		AdminID: user.UserID,
		Content: input.Content,
	}
	if err := config.DB.Create(&cmt).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "댓글 생성 오류"})
	}
	return c.Status(fiber.StatusCreated).JSON(newCommentResponse(config.DB, &cmt))
}

// GetComment는 이벤트에 속한 단일 댓글을 반환한다.
func GetComment(c *fiber.Ctx) error {
	if _, ok := currentUser(c); !ok {
		return nil
	}

	var event models.Event
	if err := config.DB.First(&event, c.Params("event_id")).Error; err != nil {
		return writeDomainError(c, models.ErrEventNotFound)
	}

	// 댓글은 경로에 지정된 이벤트 범위 안에서만 찾는다.
	var cmt models.Comment
	if err := config.DB.
		Where("event_id = ?", event.EventID).
		First(&cmt, c.Params("comment_id")).Error; err != nil {
		return writeDomainError(c, models.ErrCommentNotFound)
	}
	return c.JSON(newCommentResponse(config.DB, &cmt))
}

// UpdateComment는 댓글을 수정한다 (작성자만).
func UpdateComment(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return nil
	}

	var event models.Event
	if err := config.DB.First(&event, c.Params("event_id")).Error; err != nil {
		return writeDomainError(c, models.ErrEventNotFound)
	}

	var cmt models.Comment
	if err := config.DB.
		Where("event_id = ?", event.EventID).
		First(&cmt, c.Params("comment_id")).Error; err != nil {
		return writeDomainError(c, models.ErrCommentNotFound)
	}
	if cmt.AdminID != user.UserID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "본인이 작성한 댓글만 수정할 수 있습니다."})
	}

	var input CommentInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "JSON 파싱 오류"})
	}
	if input.Content == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"content": "댓글 내용을 입력해주세요."})
	}

	cmt.Content = input.Content
	if err := config.DB.Save(&cmt).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "댓글 수정 오류"})
	}
	return c.JSON(newCommentResponse(config.DB, &cmt))
}

// DeleteComment는 댓글을 삭제한다 (작성자만).
func DeleteComment(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return nil
	}

	var event models.Event
	if err := config.DB.First(&event, c.Params("event_id")).Error; err != nil {
		return writeDomainError(c, models.ErrEventNotFound)
	}

	var cmt models.Comment
	if err := config.DB.
		Where("event_id = ?", event.EventID).
		First(&cmt, c.Params("comment_id")).Error; err != nil {
		return writeDomainError(c, models.ErrCommentNotFound)
	}
	if cmt.AdminID != user.UserID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "본인이 작성한 댓글만 삭제할 수 있습니다."})
	}

	if err := config.DB.Delete(&cmt).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "댓글 삭제 오류"})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
