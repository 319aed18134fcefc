package mailer

import (
	"fmt"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"

	"skillswap/backend/config"
)

// Mailer SMTP 邮件发送封装
// 仅在配置了 smtp_host 时创建；调用方持有 nil 时跳过发送
type Mailer struct {
	dialer *gomail.Dialer
	from   string
	logger *zap.Logger
}

// NewMailer 创建 Mailer；smtp_host 为空时返回 nil（邮件功能关闭）
func NewMailer(cfg *config.MailConfig, logger *zap.Logger) *Mailer {
	if cfg.SMTPHost == "" {
		return nil
	}

	from := cfg.From
	if from == "" {
		from = cfg.Username
	}

	return &Mailer{
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.Username, cfg.Password),
		from:   from,
		logger: logger,
	}
}

// SendSwapAccepted 通知申请发起方：对方接受了换技能申请
func (m *Mailer) SendSwapAccepted(toEmail, toName, accepterName string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", toEmail)
	msg.SetHeader("Subject", "你的换技能申请已被接受")
	msg.SetBody("text/plain", fmt.Sprintf(
		"%s，你好：\n\n%s 接受了你的换技能申请，快去站内沟通具体安排吧。\n",
		toName, accepterName,
	))

	if err := m.dialer.DialAndSend(msg); err != nil {
		m.logger.Warn("发送邮件失败",
			zap.String("to", toEmail),
			zap.Error(err),
		)
		return err
	}

	return nil
}
