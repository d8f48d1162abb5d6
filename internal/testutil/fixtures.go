package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/qs3c/travelmart_server/internal/model"
)

var seq int64

func next() int64 {
	return atomic.AddInt64(&seq, 1)
}

// TestUser 创建测试用户
func TestUser(t *testing.T, db *gorm.DB, opts ...func(*model.User)) *model.User {
	t.Helper()

	n := next()
	email := fmt.Sprintf("test_%d_%d@example.com", n, time.Now().UnixNano())
	passwordHash := "$2a$10$abcdefghijklmnopqrstuvwxyz123456" // bcrypt hash placeholder
	user := &model.User{
		Username:           fmt.Sprintf("testuser_%d", n),
		Email:              &email,
		PasswordHash:       &passwordHash,
		VerificationStatus: model.VerificationNone,
		EmailVerified:      true,
	}

	for _, opt := range opts {
		opt(user)
	}

	if err := db.Create(user).Error; err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}

	return user
}

// WithUsername 设置用户名
func WithUsername(username string) func(*model.User) {
	return func(u *model.User) {
		u.Username = username
	}
}

// WithEmail 设置邮箱
func WithEmail(email string) func(*model.User) {
	return func(u *model.User) {
		u.Email = &email
	}
}

// TestAdvertisement 创建测试广告位，默认 active、一天后到期
func TestAdvertisement(t *testing.T, db *gorm.DB, userID int64, opts ...func(*model.Advertisement)) *model.Advertisement {
	t.Helper()

	expiresAt := time.Now().Add(24 * time.Hour)
	ad := &model.Advertisement{
		UserID:        userID,
		SlotID:        fmt.Sprintf("AD%08d", next()),
		Category:      "travel_buddys",
		Status:        model.AdStatusActive,
		SelectedPlan:  model.PlanDaily,
		ExpiresAt:     &expiresAt,
		FinalAmount:   decimal.NewFromInt(20),
		PaymentMethod: "card",
	}

	for _, opt := range opts {
		opt(ad)
	}

	if err := db.Create(ad).Error; err != nil {
		t.Fatalf("Failed to create test advertisement: %v", err)
	}

	return ad
}

// WithAdStatus 设置状态
func WithAdStatus(status string) func(*model.Advertisement) {
	return func(a *model.Advertisement) {
		a.Status = status
	}
}

// WithExpiresIn 设置相对当前时间的到期时间，负数表示已过期
func WithExpiresIn(d time.Duration) func(*model.Advertisement) {
	return func(a *model.Advertisement) {
		exp := time.Now().Add(d)
		a.ExpiresAt = &exp
	}
}

// WithPausedExpiry 暂停计时（expires_at 为空）
func WithPausedExpiry() func(*model.Advertisement) {
	return func(a *model.Advertisement) {
		a.ExpiresAt = nil
	}
}

// WithCategory 设置分类
func WithCategory(category string) func(*model.Advertisement) {
	return func(a *model.Advertisement) {
		a.Category = category
	}
}

// WithPublished 设置为已发布
func WithPublished(publishedAdID string) func(*model.Advertisement) {
	return func(a *model.Advertisement) {
		a.Status = model.AdStatusPublished
		a.PublishedAdID = &publishedAdID
		now := time.Now()
		a.PublishedAt = &now
	}
}

// WithPlan 设置套餐
func WithPlan(plan string) func(*model.Advertisement) {
	return func(a *model.Advertisement) {
		a.SelectedPlan = plan
	}
}

// WithSlotID 设置广告位编号
func WithSlotID(slotID string) func(*model.Advertisement) {
	return func(a *model.Advertisement) {
		a.SlotID = slotID
	}
}

// TestPromoCode 创建测试推广码
func TestPromoCode(t *testing.T, db *gorm.DB, userID int64, opts ...func(*model.AgentPromoCode)) *model.AgentPromoCode {
	t.Helper()

	promo := &model.AgentPromoCode{
		UserID:          userID,
		Code:            fmt.Sprintf("AGT%05d", next()),
		DiscountPercent: 10,
		CommissionRate:  0.05,
		TotalEarnings:   decimal.Zero,
		Tier:            "bronze",
		IsActive:        true,
	}

	for _, opt := range opts {
		opt(promo)
	}

	if err := db.Create(promo).Error; err != nil {
		t.Fatalf("Failed to create test promo code: %v", err)
	}

	return promo
}

// WithCode 设置推广码
func WithCode(code string) func(*model.AgentPromoCode) {
	return func(p *model.AgentPromoCode) {
		p.Code = code
	}
}

// WithUsage 设置使用次数
func WithUsage(count int) func(*model.AgentPromoCode) {
	return func(p *model.AgentPromoCode) {
		p.UsageCount = count
	}
}
