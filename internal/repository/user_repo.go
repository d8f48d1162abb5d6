package repository

import (
	"gorm.io/gorm"

	"github.com/qs3c/travelmart_server/internal/model"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(user *model.User) error {
	return r.db.Create(user).Error
}

// firstBy 按单列精确查找，未找到返回 gorm.ErrRecordNotFound
func (r *UserRepository) firstBy(column string, value interface{}) (*model.User, error) {
	var user model.User
	if err := r.db.Where(column+" = ?", value).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) GetByID(id int64) (*model.User, error) {
	return r.firstBy("id", id)
}

func (r *UserRepository) GetByEmail(email string) (*model.User, error) {
	return r.firstBy("email", email)
}

func (r *UserRepository) GetByGoogleID(googleID string) (*model.User, error) {
	return r.firstBy("google_id", googleID)
}

func (r *UserRepository) GetByVerificationCode(code string) (*model.User, error) {
	return r.firstBy("verification_code", code)
}

func (r *UserRepository) Update(user *model.User) error {
	return r.db.Save(user).Error
}

func (r *UserRepository) UpdateFields(id int64, fields map[string]interface{}) error {
	return r.db.Model(&model.User{}).Where("id = ?", id).Updates(fields).Error
}

// SetProfileImage publicID 为空表示外部地址，不归本服务托管
func (r *UserRepository) SetProfileImage(id int64, url, publicID string) error {
	return r.UpdateFields(id, map[string]interface{}{
		"profile_image_url":       url,
		"profile_image_public_id": publicID,
	})
}

// SubmitVerificationDoc 保存证明文件并进入待审核
func (r *UserRepository) SubmitVerificationDoc(id int64, url string) error {
	return r.UpdateFields(id, map[string]interface{}{
		"verification_doc_url": url,
		"verification_status":  model.VerificationPending,
	})
}

func (r *UserRepository) ExistsByEmail(email string) (bool, error) {
	return r.exists("email", email)
}

func (r *UserRepository) ExistsByUsername(username string) (bool, error) {
	return r.exists("username", username)
}

func (r *UserRepository) exists(column string, value interface{}) (bool, error) {
	var count int64
	err := r.db.Model(&model.User{}).Where(column+" = ?", value).Count(&count).Error
	return count > 0, err
}
