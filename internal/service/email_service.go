package service

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gopkg.in/mail.v2"

	"organising-events-app/config"
	"organising-events-app/internal/model"
	"organising-events-app/internal/util"
)

// EmailService 通过SMTP发送事件邀请邮件
type EmailService struct {
	host        string
	port        int
	username    string
	password    string
	frontendURL string
}

func NewEmailService() *EmailService {
	return &EmailService{
		host:        config.AppConfig.SMTPHost,
		port:        config.AppConfig.SMTPPort,
		username:    config.AppConfig.SMTPUsername,
		password:    config.AppConfig.SMTPPassword,
		frontendURL: config.AppConfig.FrontendURL,
	}
}

// SendEventInvitations 给每位新受邀的用户异步发送一封邀请邮件，
// 发送失败只记录日志，不影响邀请操作本身
func (s *EmailService) SendEventInvitations(event *model.Event, organiserName string, guests []*model.User) {
	if s.host == "" {
		util.Logger.Warn("SMTP未配置，跳过邀请邮件发送")
		return
	}
	subject := fmt.Sprintf("邀请函：%s", event.EventName)
	for _, guest := range guests {
		if guest.UserEmail == "" {
			continue
		}
		body := s.invitationBody(event, organiserName, guest)
		go s.sendEmail(guest.UserEmail, subject, body)
	}
}

func (s *EmailService) invitationBody(event *model.Event, organiserName string, guest *model.User) string {
	link := fmt.Sprintf("%s/events/%s", s.frontendURL, event.ID.Hex())
	return fmt.Sprintf(`<html><body>
<p>%s，你好：</p>
<p>%s 邀请你参加事件 <b>%s</b>。</p>
<p>开始时间：%s</p>
<p>点击查看详情：<a href="%s">%s</a></p>
</body></html>`,
		guest.DisplayName(), organiserName, event.EventName,
		util.ISODatetime(event.StartDatetime), link, link)
}

func (s *EmailService) sendEmail(to, subject, body string) {
	message := mail.NewMessage()
	message.SetHeader("From", s.username)
	message.SetHeader("To", to)
	message.SetHeader("Subject", subject)
	message.SetBody("text/html", body)

	dialer := mail.NewDialer(s.host, s.port, s.username, s.password)
	dialer.Timeout = 10 * time.Second

	if err := dialer.DialAndSend(message); err != nil {
		util.Logger.Error("邀请邮件发送失败",
			zap.String("to", to), zap.Error(err))
		return
	}
	util.Logger.Info("邀请邮件发送成功", zap.String("to", to))
}
