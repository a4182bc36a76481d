package models

import "errors"

// 도메인 에러. 컨트롤러에서 HTTP 상태 코드로 변환한다.
var (
	ErrCalendarNotFound   = errors.New("캘린더를 찾을 수 없습니다.")
	ErrEventNotFound      = errors.New("이벤트 없음")
	ErrCommentNotFound    = errors.New("댓글 없음")
	ErrInvitationNotFound = errors.New("유효하지 않은 초대 코드입니다.")
	ErrAlreadyAdmin       = errors.New("이미 캘린더 관리자로 추가되었습니다.")
	ErrNotAdmin           = errors.New("캘린더 관리자 권한이 없습니다.")
)

// FieldError — 특정 입력 필드에 대한 검증 실패.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return e.Field + ": " + e.Message
}
