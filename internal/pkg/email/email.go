package email

import (
	"fmt"
	"net/smtp"
	"sort"
	"strings"
	"time"

	"github.com/qs3c/travelmart_server/config"
)

const brand = "TravelMart"

type Service struct {
	cfg *config.EmailConfig
}

func NewService(cfg *config.EmailConfig) *Service {
	return &Service{cfg: cfg}
}

// SlotNotice 广告位提醒邮件内容
type SlotNotice struct {
	Username    string
	SlotID      string
	Category    string
	ExpiresAt   time.Time
	RenewalLink string
}

// SendVerificationCode 发送邮箱验证码
func (s *Service) SendVerificationCode(to, code string) error {
	subject := fmt.Sprintf("Your verification code - %s", brand)
	return s.sendHTML(to, subject, verificationBody(code))
}

// SendExpiryReminder 广告位即将到期提醒
func (s *Service) SendExpiryReminder(to string, n SlotNotice) error {
	subject := fmt.Sprintf("Ad slot %s expires soon - %s", n.SlotID, brand)
	return s.sendHTML(to, subject, expiryReminderBody(n))
}

// SendSlotExpired 广告位已过期通知
func (s *Service) SendSlotExpired(to string, n SlotNotice) error {
	subject := fmt.Sprintf("Ad slot %s has expired - %s", n.SlotID, brand)
	return s.sendHTML(to, subject, slotExpiredBody(n))
}

func verificationBody(code string) string {
	return wrap("Verify your email", fmt.Sprintf(`
        <p>Hello,</p>
        <p>Use the code below to finish creating your %s account:</p>
        <div style="background-color: #f3f4f6; padding: 15px; text-align: center; font-size: 24px; font-weight: bold; letter-spacing: 5px; margin: 20px 0;">%s</div>
        <p>The code is valid for 24 hours.</p>
        <p>If you did not request this, you can ignore this email.</p>`, brand, code))
}

func expiryReminderBody(n SlotNotice) string {
	return wrap("Your ad slot is about to expire", fmt.Sprintf(`
        <p>Hello %s,</p>
        <p>Your %s ad slot <strong>%s</strong> expires on %s.</p>
        <p>Renew it now to keep your listing visible.</p>
        %s`, n.Username, n.Category, n.SlotID, n.ExpiresAt.UTC().Format("Jan 2, 2006 15:04 MST"), button(n.RenewalLink, "Renew slot")))
}

func slotExpiredBody(n SlotNotice) string {
	return wrap("Your ad slot has expired", fmt.Sprintf(`
        <p>Hello %s,</p>
        <p>Your %s ad slot <strong>%s</strong> has expired and is no longer shown to travelers.</p>
        %s`, n.Username, n.Category, n.SlotID, button(n.RenewalLink, "Renew expired slot")))
}

func button(link, label string) string {
	if link == "" {
		return ""
	}
	return fmt.Sprintf(`<div style="text-align: center; margin: 30px 0;">
            <a href="%s" style="background-color: #0f766e; color: white; padding: 12px 30px; text-decoration: none; border-radius: 5px; display: inline-block;">%s</a>
        </div>`, link, label)
}

func wrap(title, content string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
</head>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
    <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
        <h2 style="color: #0f766e;">%s</h2>%s
        <hr style="border: none; border-top: 1px solid #e5e7eb; margin: 20px 0;">
        <p style="color: #6b7280; font-size: 12px;">This is an automated message from %s. Please do not reply.</p>
    </div>
</body>
</html>
`, title, content, brand)
}

// buildMessage 组装邮件头和正文
func buildMessage(from, to, subject, body string) []byte {
	headers := map[string]string{
		"From":         from,
		"To":           to,
		"Subject":      subject,
		"MIME-Version": "1.0",
		"Content-Type": "text/html; charset=UTF-8",
	}

	keys := make([]string, 0, len(headers))
	for k := range headers {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var msg strings.Builder
	for _, k := range keys {
		msg.WriteString(fmt.Sprintf("%s: %s\r\n", k, headers[k]))
	}
	msg.WriteString("\r\n")
	msg.WriteString(body)
	return []byte(msg.String())
}

func (s *Service) sendHTML(to, subject, body string) error {
	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.SMTPHost)
	addr := fmt.Sprintf("%s:%d", s.cfg.SMTPHost, s.cfg.SMTPPort)

	return smtp.SendMail(addr, auth, s.cfg.From, []string{to}, buildMessage(s.cfg.From, to, subject, body))
}
