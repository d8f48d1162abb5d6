package worker

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/qs3c/travelmart_server/config"
	"github.com/qs3c/travelmart_server/internal/pkg/category"
	"github.com/qs3c/travelmart_server/internal/pkg/email"
	"github.com/qs3c/travelmart_server/internal/pkg/queue"
	"github.com/qs3c/travelmart_server/internal/repository"
)

// ErrUnknownKind 未知的通知类型
var ErrUnknownKind = errors.New("unknown notification kind")

// Mailer 到期相关邮件
type Mailer interface {
	SendExpiryReminder(to string, n email.SlotNotice) error
	SendSlotExpired(to string, n email.SlotNotice) error
}

// Processor 通知处理器
type Processor struct {
	userRepo *repository.UserRepository
	mailer   Mailer
	routes   *category.Table
	cfg      *config.Config
}

// NewProcessor 创建通知处理器
func NewProcessor(
	userRepo *repository.UserRepository,
	mailer Mailer,
	routes *category.Table,
	cfg *config.Config,
) *Processor {
	return &Processor{
		userRepo: userRepo,
		mailer:   mailer,
		routes:   routes,
		cfg:      cfg,
	}
}

// Process 发送一条到期通知；用户已删除或没有邮箱时跳过
func (p *Processor) Process(ctx context.Context, msg *queue.NotificationMessage) error {
	if msg.Kind != queue.KindExpiryReminder && msg.Kind != queue.KindSlotExpired {
		return fmt.Errorf("%w: %q", ErrUnknownKind, msg.Kind)
	}

	user, err := p.userRepo.GetByID(msg.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("Skip %s for advertisement %d: user %d not found", msg.Kind, msg.AdvertisementID, msg.UserID)
			return nil
		}
		return fmt.Errorf("failed to get user: %w", err)
	}
	if user.Email == nil || *user.Email == "" {
		log.Printf("Skip %s for advertisement %d: user %d has no email", msg.Kind, msg.AdvertisementID, msg.UserID)
		return nil
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	notice := p.notice(user.Username, msg)
	switch msg.Kind {
	case queue.KindExpiryReminder:
		err = p.mailer.SendExpiryReminder(*user.Email, notice)
	default:
		err = p.mailer.SendSlotExpired(*user.Email, notice)
	}
	if err != nil {
		return fmt.Errorf("failed to send %s email: %w", msg.Kind, err)
	}

	log.Printf("Sent %s for advertisement %d to user %d", msg.Kind, msg.AdvertisementID, msg.UserID)
	return nil
}

func (p *Processor) notice(username string, msg *queue.NotificationMessage) email.SlotNotice {
	n := email.SlotNotice{
		Username:    username,
		SlotID:      msg.SlotID,
		Category:    msg.Category,
		RenewalLink: p.renewalLink(msg.AdvertisementID),
	}
	if p.routes != nil {
		n.Category = p.routes.DisplayName(msg.Category)
	}
	if msg.ExpiresAt != nil {
		n.ExpiresAt = *msg.ExpiresAt
	} else {
		n.ExpiresAt = time.Now()
	}
	return n
}

func (p *Processor) renewalLink(id int64) string {
	base := ""
	if p.cfg != nil {
		base = strings.TrimRight(p.cfg.Server.FrontendURL, "/")
	}
	if base == "" {
		return ""
	}
	return fmt.Sprintf("%s/renew-advertisement/%d", base, id)
}
