package service

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"net/url"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	qrcode "github.com/skip2/go-qrcode"
	"gorm.io/gorm"

	"github.com/qs3c/travelmart_server/config"
	"github.com/qs3c/travelmart_server/internal/model"
	"github.com/qs3c/travelmart_server/internal/model/dto"
	"github.com/qs3c/travelmart_server/internal/repository"
)

var (
	ErrPromoCodeExists   = errors.New("you already have a promo code")
	ErrPromoCodeTaken    = errors.New("this promo code is already taken")
	ErrPromoCodeNotFound = errors.New("promo code not found")
	ErrPromoCodeInactive = errors.New("promo code is no longer active")
	ErrOwnPromoCode      = errors.New("you cannot use your own promo code")
)

const (
	promoCodePrefix   = "TM"
	promoCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	defaultQRSize     = 256
)

var defaultTiers = []config.TierConfig{
	{Name: "bronze", MinReferrals: 0, CommissionRate: 0.05},
	{Name: "silver", MinReferrals: 10, CommissionRate: 0.08},
	{Name: "gold", MinReferrals: 25, CommissionRate: 0.12},
	{Name: "platinum", MinReferrals: 50, CommissionRate: 0.15},
}

type AgentService struct {
	promoRepo *repository.PromoCodeRepository
	cfg       *config.Config
	tiers     []config.TierConfig
}

func NewAgentService(promoRepo *repository.PromoCodeRepository, cfg *config.Config) *AgentService {
	tiers := cfg.Agent.Tiers
	if len(tiers) == 0 {
		tiers = defaultTiers
	}
	sorted := make([]config.TierConfig, len(tiers))
	copy(sorted, tiers)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].MinReferrals < sorted[j].MinReferrals })

	return &AgentService{
		promoRepo: promoRepo,
		cfg:       cfg,
		tiers:     sorted,
	}
}

// Create 申请推广码，每个用户一个
func (s *AgentService) Create(userID int64, req *dto.CreatePromoCodeRequest) (*dto.AgentDashboard, error) {
	exists, err := s.promoRepo.ExistsByUserID(userID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrPromoCodeExists
	}

	code := strings.ToUpper(strings.TrimSpace(req.Code))
	if code != "" {
		taken, err := s.promoRepo.ExistsByCode(code)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrPromoCodeTaken
		}
	} else {
		code, err = s.generateCode()
		if err != nil {
			return nil, err
		}
	}

	tier, _ := s.tierFor(0)
	discount := s.cfg.Agent.DefaultDiscountPercent
	if discount <= 0 {
		discount = 10
	}

	promo := &model.AgentPromoCode{
		UserID:          userID,
		Code:            code,
		DiscountPercent: discount,
		CommissionRate:  tier.CommissionRate,
		TotalEarnings:   decimal.Zero,
		Tier:            tier.Name,
		IsActive:        true,
	}
	if err := s.promoRepo.Create(promo); err != nil {
		return nil, err
	}

	return s.buildDashboard(promo), nil
}

// GetDashboard 获取推广码面板
func (s *AgentService) GetDashboard(userID int64) (*dto.AgentDashboard, error) {
	promo, err := s.getByUser(userID)
	if err != nil {
		return nil, err
	}
	return s.buildDashboard(promo), nil
}

// SetActive 启用/停用
func (s *AgentService) SetActive(userID int64, active bool) (*dto.AgentDashboard, error) {
	promo, err := s.getByUser(userID)
	if err != nil {
		return nil, err
	}

	if promo.IsActive != active {
		if err := s.promoRepo.UpdateFields(promo.ID, map[string]interface{}{"is_active": active}); err != nil {
			return nil, err
		}
		promo.IsActive = active
	}

	return s.buildDashboard(promo), nil
}

// QRCode 推广链接二维码（PNG）
func (s *AgentService) QRCode(userID int64, size int) ([]byte, error) {
	promo, err := s.getByUser(userID)
	if err != nil {
		return nil, err
	}

	if size <= 0 || size > 1024 {
		size = defaultQRSize
	}

	png, err := qrcode.Encode(s.referralLink(promo.Code), qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("failed to encode qr code: %w", err)
	}
	return png, nil
}

// Validate 公开校验推广码，停用的码返回 valid=false
func (s *AgentService) Validate(code string) (*dto.ValidatePromoCodeResponse, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	promo, err := s.promoRepo.GetByCode(code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPromoCodeNotFound
		}
		return nil, err
	}

	resp := &dto.ValidatePromoCodeResponse{
		Code:  promo.Code,
		Valid: promo.IsActive,
	}
	if promo.IsActive {
		resp.DiscountPercent = promo.DiscountPercent
	}
	return resp, nil
}

// Resolve 购买时校验推广码
func (s *AgentService) Resolve(buyerID int64, code string) (*model.AgentPromoCode, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	promo, err := s.promoRepo.GetByCode(code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPromoCodeNotFound
		}
		return nil, err
	}
	if !promo.IsActive {
		return nil, ErrPromoCodeInactive
	}
	if promo.UserID == buyerID {
		return nil, ErrOwnPromoCode
	}
	return promo, nil
}

// RecordReferral 记一次使用，按成交金额计佣金并重新计算等级
func (s *AgentService) RecordReferral(promo *model.AgentPromoCode, finalAmount decimal.Decimal) error {
	commission := finalAmount.Mul(decimal.NewFromFloat(promo.CommissionRate)).Round(2)
	if err := s.promoRepo.RecordUsage(promo.ID, commission); err != nil {
		return err
	}

	tier, _ := s.tierFor(promo.UsageCount + 1)
	if tier.Name != promo.Tier {
		return s.promoRepo.UpdateFields(promo.ID, map[string]interface{}{
			"tier":            tier.Name,
			"commission_rate": tier.CommissionRate,
		})
	}
	return nil
}

func (s *AgentService) getByUser(userID int64) (*model.AgentPromoCode, error) {
	promo, err := s.promoRepo.GetByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPromoCodeNotFound
		}
		return nil, err
	}
	return promo, nil
}

// tierFor 返回当前等级和下一级（已是最高级时为 nil）
func (s *AgentService) tierFor(referrals int) (config.TierConfig, *config.TierConfig) {
	current := s.tiers[0]
	var next *config.TierConfig
	for i, t := range s.tiers {
		if referrals >= t.MinReferrals {
			current = t
			continue
		}
		next = &s.tiers[i]
		break
	}
	return current, next
}

func (s *AgentService) referralLink(code string) string {
	base := strings.TrimRight(s.cfg.Server.FrontendURL, "/")
	return fmt.Sprintf("%s/purchase-advertisement?promo=%s", base, url.QueryEscape(code))
}

func (s *AgentService) generateCode() (string, error) {
	for attempt := 0; attempt < 5; attempt++ {
		var b strings.Builder
		b.WriteString(promoCodePrefix)
		for i := 0; i < 6; i++ {
			n, err := rand.Int(rand.Reader, big.NewInt(int64(len(promoCodeAlphabet))))
			if err != nil {
				return "", err
			}
			b.WriteByte(promoCodeAlphabet[n.Int64()])
		}

		code := b.String()
		taken, err := s.promoRepo.ExistsByCode(code)
		if err != nil {
			return "", err
		}
		if !taken {
			return code, nil
		}
	}
	return "", errors.New("failed to generate a unique promo code")
}

func (s *AgentService) buildDashboard(promo *model.AgentPromoCode) *dto.AgentDashboard {
	_, next := s.tierFor(promo.UsageCount)

	d := &dto.AgentDashboard{
		Code:            promo.Code,
		DiscountPercent: promo.DiscountPercent,
		CommissionRate:  promo.CommissionRate,
		UsageCount:      promo.UsageCount,
		TotalEarnings:   promo.TotalEarnings.StringFixed(2),
		Tier:            promo.Tier,
		IsActive:        promo.IsActive,
		ReferralLink:    s.referralLink(promo.Code),
		CreatedAt:       promo.CreatedAt,
	}
	if next != nil {
		d.NextTier = next.Name
		d.ReferralsToNextTier = next.MinReferrals - promo.UsageCount
	}
	return d
}
