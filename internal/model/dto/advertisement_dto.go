package dto

import (
	"time"

	"github.com/qs3c/travelmart_server/internal/pkg/inflight"
	"github.com/qs3c/travelmart_server/internal/pkg/lifecycle"
)

// ListAdvertisementsQuery 列表查询参数
type ListAdvertisementsQuery struct {
	Page     int    `form:"page"`
	Limit    int    `form:"limit"`
	Search   string `form:"search"`
	Status   string `form:"status"`
	Plan     string `form:"plan"`
	Category string `form:"category"`
}

// AdvertisementItem 广告位及其当前可用操作
type AdvertisementItem struct {
	ID            int64                   `json:"id"`
	SlotID        string                  `json:"slotId"`
	Category      string                  `json:"category"`
	CategoryName  string                  `json:"categoryName"`
	Status        string                  `json:"status"`
	SelectedPlan  string                  `json:"selectedPlan"`
	ExpiresAt     *time.Time              `json:"expiresAt"`
	PublishedAdID *string                 `json:"publishedAdId"`
	PublishedAt   *time.Time              `json:"publishedAt,omitempty"`
	FinalAmount   string                  `json:"finalAmount"`
	PaymentMethod string                  `json:"paymentMethod"`
	UsedPromoCode *string                 `json:"usedPromoCode,omitempty"`
	CreatedAt     time.Time               `json:"createdAt"`
	UpdatedAt     time.Time               `json:"updatedAt"`
	Phase         lifecycle.Phase         `json:"phase"`
	IsExpired     bool                    `json:"isExpired"`
	Actions       []lifecycle.ActionState `json:"actions"`
}

// Pagination 分页信息
type Pagination struct {
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
	TotalCount  int64 `json:"totalCount"`
	HasNext     bool  `json:"hasNext"`
	HasPrev     bool  `json:"hasPrev"`
}

// FilterOption 下拉选项
type FilterOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// FilterOptions 列表页可用的筛选项
type FilterOptions struct {
	Categories []FilterOption `json:"categories"`
	Statuses   []string       `json:"statuses"`
	Plans      []string       `json:"plans"`
}

// ListAdvertisementsResponse 列表响应
type ListAdvertisementsResponse struct {
	Advertisements []*AdvertisementItem `json:"advertisements"`
	Pagination     Pagination           `json:"pagination"`
	FilterOptions  FilterOptions        `json:"filterOptions"`
}

// NavigationResponse 前端跳转目标
type NavigationResponse struct {
	Action   lifecycle.Action `json:"action"`
	Category string           `json:"category"`
	Path     string           `json:"path"`
}

// CompletePublishRequest 分类发布表单提交后回调
type CompletePublishRequest struct {
	PublishedAdID string `json:"publishedAdId" binding:"required,max=64"`
}

// RenewalHandoffResponse 交给续费流程的上下文
type RenewalHandoffResponse struct {
	RenewalType   string             `json:"renewalType"`
	Advertisement *AdvertisementItem `json:"advertisement"`
	Path          string             `json:"path"`
}

// RenewRequest 续费，Plan 可省略，填写时须与原套餐一致
type RenewRequest struct {
	Plan          string `json:"plan" binding:"omitempty"`
	PaymentMethod string `json:"paymentMethod" binding:"required,max=30"`
	PromoCode     string `json:"promoCode" binding:"omitempty,max=20"`
}

// PurchaseRequest 购买新广告位
type PurchaseRequest struct {
	Category      string `json:"category" binding:"required"`
	Plan          string `json:"plan" binding:"required"`
	PaymentMethod string `json:"paymentMethod" binding:"required,max=30"`
	PromoCode     string `json:"promoCode" binding:"omitempty,max=20"`
}

// Pricing 价格明细，金额均为两位小数字符串
type Pricing struct {
	Plan            string `json:"plan"`
	BasePrice       string `json:"basePrice"`
	DiscountPercent int    `json:"discountPercent"`
	DiscountAmount  string `json:"discountAmount"`
	FinalAmount     string `json:"finalAmount"`
	PromoCode       string `json:"promoCode,omitempty"`
}

// PurchaseResponse 购买或续费结果
type PurchaseResponse struct {
	Advertisement *AdvertisementItem `json:"advertisement"`
	Pricing       Pricing            `json:"pricing"`
}

// ActionStateResponse 单条记录的操作状态
type ActionStateResponse struct {
	AdvertisementID int64          `json:"advertisementId"`
	State           inflight.State `json:"state"`
}

// CategoryInfo 分类列表项
type CategoryInfo struct {
	Key         string `json:"key"`
	DisplayName string `json:"displayName"`
	Supported   bool   `json:"supported"`
}
