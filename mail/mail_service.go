package mail

import (
	"os"
	"strconv"

	"gopkg.in/gomail.v2"
)

type MailService struct {
	dialer *gomail.Dialer
}

func NewMailService() *MailService {
	host := os.Getenv("SMTP_HOST")
	port, _ := strconv.Atoi(os.Getenv("SMTP_PORT"))
	user := os.Getenv("SMTP_USER")
	pass := os.Getenv("SMTP_PASSWORD")
	return &MailService{
		dialer: gomail.NewDialer(host, port, user, pass),
	}
}

// SendInvitationMail은 캘린더 초대 코드를 이메일로 전송한다.
func (m *MailService) SendInvitationMail(to, calendarName, code string) error {
	message := gomail.NewMessage()
	message.SetHeader("From", os.Getenv("SMTP_USER"))
	message.SetHeader("To", to)
	message.SetHeader("Subject", "[Evento] '"+calendarName+"' 캘린더 관리자 초대")
	message.SetBody("text/html", `
		<div style="font-family: Arial, sans-serif; max-width: 600px; margin: auto; padding: 20px; border: 1px solid #ddd; border-radius: 8px; background-color: #f5f5f5;">
			<h2 style="color: #333; text-align: center;">캘린더 관리자 초대</h2>
			<p>안녕하세요,</p>
			<p>'`+calendarName+`' 캘린더의 관리자로 초대되었습니다. 아래 초대 코드를 Evento에 입력하면 관리자로 등록됩니다:</p>
			<p style="text-align: center;"><span style="display: inline-block; padding: 10px 20px; background-color: #007bff; color: #fff; border-radius: 5px; font-size: 20px; letter-spacing: 2px;">`+code+`</span></p>
			<p>초대를 요청하지 않으셨다면 이 메일을 무시하셔도 됩니다.</p>
			<p>Evento 팀 드림.</p>
		</div>
	`)
	return m.dialer.DialAndSend(message)
}
