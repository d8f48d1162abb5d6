package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// 广告位状态。Published 的大小写与前端约定保持一致
const (
	AdStatusDraft     = "draft"
	AdStatusActive    = "active"
	AdStatusPublished = "Published"
	AdStatusPaused    = "paused"
	AdStatusExpired   = "expired"
)

// 购买套餐
const (
	PlanHourly  = "hourly"
	PlanDaily   = "daily"
	PlanMonthly = "monthly"
	PlanYearly  = "yearly"
)

var AdStatuses = []string{AdStatusDraft, AdStatusActive, AdStatusPublished, AdStatusPaused, AdStatusExpired}

var AdPlans = []string{PlanHourly, PlanDaily, PlanMonthly, PlanYearly}

// Advertisement 一个已购买的广告位
type Advertisement struct {
	ID             int64           `gorm:"primaryKey" json:"id"`
	UserID         int64           `gorm:"not null;index" json:"user_id"`
	SlotID         string          `gorm:"size:20;uniqueIndex;not null" json:"slot_id"`
	Category       string          `gorm:"size:64;not null;index" json:"category"`
	Status         string          `gorm:"size:20;not null;default:active;index" json:"status"`
	SelectedPlan   string          `gorm:"size:20;not null" json:"selected_plan"`
	ExpiresAt      *time.Time      `gorm:"index" json:"expires_at"`
	PublishedAdID  *string         `gorm:"size:64" json:"published_ad_id"`
	PublishedAt    *time.Time      `json:"published_at,omitempty"`
	FinalAmount    decimal.Decimal `gorm:"type:decimal(10,2)" json:"final_amount"`
	PaymentMethod  string          `gorm:"size:30" json:"payment_method"`
	UsedPromoCode  *string         `gorm:"size:32" json:"used_promo_code,omitempty"`
	ReminderSentAt *time.Time      `json:"-"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

func (Advertisement) TableName() string {
	return "advertisements"
}

func IsValidAdStatus(status string) bool {
	for _, s := range AdStatuses {
		if s == status {
			return true
		}
	}
	return false
}

func IsValidPlan(plan string) bool {
	for _, p := range AdPlans {
		if p == plan {
			return true
		}
	}
	return false
}
