package controllers

import (
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/PoodingDev/Evento-Be/config"
	"github.com/PoodingDev/Evento-Be/models"
	"github.com/PoodingDev/Evento-Be/utils"
)

// RegisterInput — 회원가입 요청 본문
type RegisterInput struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
	Nickname string `json:"nickname"`
	Birth    string `json:"birth"` // "2006-01-02"
}

// LoginInput — 로그인 요청 본문
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RefreshInput — 토큰 재발급 요청 본문
type RefreshInput struct {
	RefreshToken string `json:"refresh_token"`
}

// UpdateUserInput — 회원 정보 부분 수정 (nil 필드는 유지)
type UpdateUserInput struct {
	Username *string `json:"username"`
	Nickname *string `json:"nickname"`
	Password *string `json:"password"`
	Birth    *string `json:"birth"`
}

// Register는 새 사용자를 등록한다.
func Register(c *fiber.Ctx) error {
	var input RegisterInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "JSON 파싱 오류"})
	}
	if input.Email == "" || input.Username == "" || input.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "필수 항목이 누락되었습니다."})
	}

	// 이메일 중복 확인
	var existing models.User
	if err := config.DB.Where("email = ?", input.Email).First(&existing).Error; err == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "이미 등록된 이메일입니다."})
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "비밀번호 처리 오류"})
	}

	user := models.User{
		Email:    input.Email,
		Username: input.Username,
		Nickname: input.Nickname,
		Password: string(hashed),
		IsActive: true,
	}
	if input.Birth != "" {
		birth, err := time.Parse("2006-01-02", input.Birth)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"birth": "올바르지 않은 날짜 형식입니다."})
		}
		user.Birth = &birth
	}

	if err := config.DB.Create(&user).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "사용자 생성 오류"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"user_id":  user.UserID,
		"email":    user.Email,
		"username": user.Username,
		"birth":    user.Birth,
		"nickname": user.Nickname,
	})
}

// Login은 이메일/비밀번호를 검증하고 토큰 쌍을 발급한다.
func Login(c *fiber.Ctx) error {
	var input LoginInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "JSON 파싱 오류"})
	}

	var user models.User
	if err := config.DB.Where("email = ? AND is_active = ?", input.Email, true).First(&user).Error; err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "이메일 또는 비밀번호가 올바르지 않습니다."})
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "이메일 또는 비밀번호가 올바르지 않습니다."})
	}

	accessToken, err := utils.GenerateAccessToken(user.UserID, user.Email, user.Nickname)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "토큰 생성 오류"})
	}
	refreshToken, err := utils.GenerateRefreshToken(user.UserID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "토큰 생성 오류"})
	}

	return c.JSON(fiber.Map{
		"access_token":  accessToken,
		"refresh_token": refreshToken,
	})
}

// Refresh는 refresh 토큰으로 새 토큰 쌍을 발급한다.
func Refresh(c *fiber.Ctx) error {
	var input RefreshInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "JSON 파싱 오류"})
	}

	token, err := jwt.Parse(input.RefreshToken, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(os.Getenv("JWT_REFRESH_SECRET")), nil
	})
	if err != nil || !token.Valid {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "유효하지 않은 refresh 토큰입니다."})
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "유효하지 않은 refresh 토큰입니다."})
	}
	userIDFloat, ok := claims["user_id"].(float64)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "유효하지 않은 refresh 토큰입니다."})
	}

	var user models.User
	if err := config.DB.First(&user, uint(userIDFloat)).Error; err != nil || !user.IsActive {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "사용자를 찾을 수 없습니다."})
	}

	accessToken, err := utils.GenerateAccessToken(user.UserID, user.Email, user.Nickname)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "토큰 생성 오류"})
	}
	refreshToken, err := utils.GenerateRefreshToken(user.UserID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "토큰 생성 오류"})
	}

	return c.JSON(fiber.Map{
		"access_token":  accessToken,
		"refresh_token": refreshToken,
	})
}

// GetMe는 현재 사용자 정보를 반환한다.
func GetMe(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return nil
	}
	return c.JSON(user)
}

// UpdateMe는 현재 사용자 정보를 부분 수정한다.
func UpdateMe(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return nil
	}

	var input UpdateUserInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "JSON 파싱 오류"})
	}

	if input.Username != nil {
		user.Username = *input.Username
	}
	if input.Nickname != nil {
		user.Nickname = *input.Nickname
	}
	if input.Birth != nil {
		birth, err := time.Parse("2006-01-02", *input.Birth)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"birth": "올바르지 않은 날짜 형식입니다."})
		}
		user.Birth = &birth
	}
	if input.Password != nil {
		hashed, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcrypt.DefaultCost)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "비밀번호 처리 오류"})
		}
		user.Password = string(hashed)
	}

	if err := config.DB.Save(user).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "사용자 수정 오류"})
	}
	return c.JSON(user)
}

// DeleteMe는 계정을 비활성화한다 (soft delete).
func DeleteMe(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return nil
	}
	user.IsActive = false
	if err := config.DB.Save(user).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "탈퇴 처리 오류"})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
