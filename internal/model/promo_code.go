package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// AgentPromoCode 代理推广码，每个用户最多一个
type AgentPromoCode struct {
	ID              int64           `gorm:"primaryKey" json:"id"`
	UserID          int64           `gorm:"not null;uniqueIndex" json:"user_id"`
	Code            string          `gorm:"size:20;uniqueIndex;not null" json:"code"`
	DiscountPercent int             `gorm:"not null" json:"discount_percent"`
	CommissionRate  float64         `gorm:"not null" json:"commission_rate"`
	UsageCount      int             `gorm:"default:0" json:"usage_count"`
	TotalEarnings   decimal.Decimal `gorm:"type:decimal(12,2)" json:"total_earnings"`
	Tier            string          `gorm:"size:20;not null" json:"tier"`
	IsActive        bool            `gorm:"default:true" json:"is_active"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

func (AgentPromoCode) TableName() string {
	return "agent_promo_codes"
}
