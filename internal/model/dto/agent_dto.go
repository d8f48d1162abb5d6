package dto

import "time"

// CreatePromoCodeRequest 申请推广码，code 为空时自动生成
type CreatePromoCodeRequest struct {
	Code string `json:"code" binding:"omitempty,min=4,max=20,alphanum"`
}

// SetPromoCodeActiveRequest 启用/停用推广码
type SetPromoCodeActiveRequest struct {
	IsActive *bool `json:"isActive" binding:"required"`
}

// AgentDashboard 代理面板
type AgentDashboard struct {
	Code                string    `json:"code"`
	DiscountPercent     int       `json:"discountPercent"`
	CommissionRate      float64   `json:"commissionRate"`
	UsageCount          int       `json:"usageCount"`
	TotalEarnings       string    `json:"totalEarnings"`
	Tier                string    `json:"tier"`
	NextTier            string    `json:"nextTier,omitempty"`
	ReferralsToNextTier int       `json:"referralsToNextTier"`
	IsActive            bool      `json:"isActive"`
	ReferralLink        string    `json:"referralLink"`
	CreatedAt           time.Time `json:"createdAt"`
}

// ValidatePromoCodeResponse 公开校验结果
type ValidatePromoCodeResponse struct {
	Code            string `json:"code"`
	Valid           bool   `json:"valid"`
	DiscountPercent int    `json:"discountPercent"`
}
