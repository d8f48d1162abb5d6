package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/qs3c/travelmart_server/internal/model"
)

// AdvertisementFilter 列表筛选条件
type AdvertisementFilter struct {
	Page     int
	Limit    int
	Search   string
	Status   string
	Plan     string
	Category string
}

type AdvertisementRepository struct {
	db *gorm.DB
}

func NewAdvertisementRepository(db *gorm.DB) *AdvertisementRepository {
	return &AdvertisementRepository{db: db}
}

func (r *AdvertisementRepository) Create(ad *model.Advertisement) error {
	return r.db.Create(ad).Error
}

func (r *AdvertisementRepository) GetByID(id int64) (*model.Advertisement, error) {
	var ad model.Advertisement
	err := r.db.Where("id = ?", id).First(&ad).Error
	if err != nil {
		return nil, err
	}
	return &ad, nil
}

func (r *AdvertisementRepository) GetBySlotID(slotID string) (*model.Advertisement, error) {
	var ad model.Advertisement
	err := r.db.Where("slot_id = ?", slotID).First(&ad).Error
	if err != nil {
		return nil, err
	}
	return &ad, nil
}

func (r *AdvertisementRepository) ExistsBySlotID(slotID string) (bool, error) {
	var count int64
	err := r.db.Model(&model.Advertisement{}).Where("slot_id = ?", slotID).Count(&count).Error
	return count > 0, err
}

func (r *AdvertisementRepository) Update(ad *model.Advertisement) error {
	return r.db.Save(ad).Error
}

func (r *AdvertisementRepository) UpdateFields(id int64, fields map[string]interface{}) error {
	return r.db.Model(&model.Advertisement{}).Where("id = ?", id).Updates(fields).Error
}

// PauseExpiration 清空到期时间，返回是否有记录被修改
func (r *AdvertisementRepository) PauseExpiration(id int64) (bool, error) {
	result := r.db.Model(&model.Advertisement{}).
		Where("id = ? AND expires_at IS NOT NULL", id).
		Update("expires_at", gorm.Expr("NULL"))
	return result.RowsAffected > 0, result.Error
}

// MarkPublished 关联已发布实体并置为 Published
func (r *AdvertisementRepository) MarkPublished(id int64, publishedAdID string, at time.Time) error {
	return r.db.Model(&model.Advertisement{}).Where("id = ?", id).Updates(map[string]interface{}{
		"status":          model.AdStatusPublished,
		"published_ad_id": publishedAdID,
		"published_at":    at,
	}).Error
}

// ListByUserID 获取用户的广告位列表。status=expired 同时匹配已过到期时间的记录
func (r *AdvertisementRepository) ListByUserID(userID int64, f AdvertisementFilter, now time.Time) ([]*model.Advertisement, int64, error) {
	var ads []*model.Advertisement
	var total int64

	query := r.db.Model(&model.Advertisement{}).Where("user_id = ?", userID)

	if f.Search != "" {
		like := "%" + f.Search + "%"
		query = query.Where("slot_id LIKE ? OR category LIKE ?", like, like)
	}
	if f.Plan != "" {
		query = query.Where("selected_plan = ?", f.Plan)
	}
	if f.Category != "" {
		query = query.Where("category = ?", f.Category)
	}
	switch f.Status {
	case "":
	case model.AdStatusExpired:
		query = query.Where("status = ? OR (expires_at IS NOT NULL AND expires_at < ?)", model.AdStatusExpired, now)
	default:
		query = query.Where("status = ? AND (expires_at IS NULL OR expires_at >= ?)", f.Status, now)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (f.Page - 1) * f.Limit
	if err := query.Order("created_at DESC").Order("id DESC").Offset(offset).Limit(f.Limit).Find(&ads).Error; err != nil {
		return nil, 0, err
	}

	return ads, total, nil
}

// ListAllByUserID 导出用，不分页
func (r *AdvertisementRepository) ListAllByUserID(userID int64) ([]*model.Advertisement, error) {
	var ads []*model.Advertisement
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&ads).Error
	return ads, err
}

// DistinctCategories 用户拥有的分类，用于筛选项
func (r *AdvertisementRepository) DistinctCategories(userID int64) ([]string, error) {
	var categories []string
	err := r.db.Model(&model.Advertisement{}).
		Where("user_id = ?", userID).
		Distinct().
		Order("category").
		Pluck("category", &categories).Error
	return categories, err
}

// MarkExpired 把已过到期时间但状态未更新的记录置为 expired
func (r *AdvertisementRepository) MarkExpired(now time.Time) (int64, error) {
	result := r.db.Model(&model.Advertisement{}).
		Where("status <> ? AND expires_at IS NOT NULL AND expires_at < ?", model.AdStatusExpired, now).
		Update("status", model.AdStatusExpired)
	return result.RowsAffected, result.Error
}

// ListNewlyExpired 即将被 MarkExpired 处理的记录
func (r *AdvertisementRepository) ListNewlyExpired(now time.Time) ([]*model.Advertisement, error) {
	var ads []*model.Advertisement
	err := r.db.Where("status <> ? AND expires_at IS NOT NULL AND expires_at < ?", model.AdStatusExpired, now).
		Find(&ads).Error
	return ads, err
}

// ListExpiringBefore 在 until 之前到期且未发送过提醒的记录
func (r *AdvertisementRepository) ListExpiringBefore(now, until time.Time) ([]*model.Advertisement, error) {
	var ads []*model.Advertisement
	err := r.db.Where("status <> ? AND reminder_sent_at IS NULL AND expires_at IS NOT NULL AND expires_at >= ? AND expires_at < ?",
		model.AdStatusExpired, now, until).
		Order("expires_at ASC").
		Find(&ads).Error
	return ads, err
}

func (r *AdvertisementRepository) MarkReminderSent(ids []int64, at time.Time) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.Model(&model.Advertisement{}).Where("id IN ?", ids).Update("reminder_sent_at", at).Error
}
