package repository

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/qs3c/travelmart_server/internal/model"
)

type PromoCodeRepository struct {
	db *gorm.DB
}

func NewPromoCodeRepository(db *gorm.DB) *PromoCodeRepository {
	return &PromoCodeRepository{db: db}
}

func (r *PromoCodeRepository) Create(promo *model.AgentPromoCode) error {
	return r.db.Create(promo).Error
}

func (r *PromoCodeRepository) GetByID(id int64) (*model.AgentPromoCode, error) {
	var promo model.AgentPromoCode
	err := r.db.Where("id = ?", id).First(&promo).Error
	if err != nil {
		return nil, err
	}
	return &promo, nil
}

func (r *PromoCodeRepository) GetByUserID(userID int64) (*model.AgentPromoCode, error) {
	var promo model.AgentPromoCode
	err := r.db.Where("user_id = ?", userID).First(&promo).Error
	if err != nil {
		return nil, err
	}
	return &promo, nil
}

func (r *PromoCodeRepository) GetByCode(code string) (*model.AgentPromoCode, error) {
	var promo model.AgentPromoCode
	err := r.db.Where("code = ?", code).First(&promo).Error
	if err != nil {
		return nil, err
	}
	return &promo, nil
}

func (r *PromoCodeRepository) ExistsByCode(code string) (bool, error) {
	var count int64
	err := r.db.Model(&model.AgentPromoCode{}).Where("code = ?", code).Count(&count).Error
	return count > 0, err
}

func (r *PromoCodeRepository) ExistsByUserID(userID int64) (bool, error) {
	var count int64
	err := r.db.Model(&model.AgentPromoCode{}).Where("user_id = ?", userID).Count(&count).Error
	return count > 0, err
}

func (r *PromoCodeRepository) UpdateFields(id int64, fields map[string]interface{}) error {
	return r.db.Model(&model.AgentPromoCode{}).Where("id = ?", id).Updates(fields).Error
}

// RecordUsage 使用次数 +1 并累计佣金
func (r *PromoCodeRepository) RecordUsage(id int64, commission decimal.Decimal) error {
	return r.db.Model(&model.AgentPromoCode{}).Where("id = ?", id).Updates(map[string]interface{}{
		"usage_count":    gorm.Expr("usage_count + 1"),
		"total_earnings": gorm.Expr("total_earnings + ?", commission.StringFixed(2)),
	}).Error
}
