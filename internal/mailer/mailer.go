package mailer

import (
	"errors"

	"gopkg.in/gomail.v2"
)

// Sender 抽象邮件投递，方便在测试中替换为假实现。
type Sender interface {
	Send(subject, to, htmlBody string) error
}

// SMTPSender 通过 SMTP(SSL) 发送 HTML 邮件。
type SMTPSender struct {
	dialer *gomail.Dialer
	from   string
}

// NewSMTPSender 构建 SMTP 投递器，465 端口默认走 SSL。
func NewSMTPSender(host string, port int, username, password, from string) *SMTPSender {
	dialer := gomail.NewDialer(host, port, username, password)
	dialer.SSL = port == 465

	if from == "" {
		from = username
	}

	return &SMTPSender{dialer: dialer, from: from}
}

// Send 发送一封 HTML 邮件。
func (s *SMTPSender) Send(subject, to, htmlBody string) error {
	if s.dialer.Host == "" {
		return errors.New("mail host is not configured")
	}
	if to == "" {
		return errors.New("mail recipient is empty")
	}

	message := gomail.NewMessage()
	message.SetHeader("From", s.from)
	message.SetHeader("To", to)
	message.SetHeader("Subject", subject)
	message.SetBody("text/html", htmlBody)

	return s.dialer.DialAndSend(message)
}
