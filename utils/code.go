package utils

import (
	"strings"

	"github.com/google/uuid"
)

// NewInvitationCode는 캘린더 초대 코드를 생성한다.
// uuid 기반 12자리 대문자 16진수. 충돌 시 DB 유니크 제약이 막는다.
func NewInvitationCode() string {
	raw := strings.ReplaceAll(uuid.New().String(), "-", "")
	return strings.ToUpper(raw[:12])
}
