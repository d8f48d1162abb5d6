package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	"gorm.io/gorm"

	"github.com/qs3c/travelmart_server/config"
	"github.com/qs3c/travelmart_server/internal/model"
	"github.com/qs3c/travelmart_server/internal/model/dto"
	"github.com/qs3c/travelmart_server/internal/repository"
)

var (
	ErrImageUnreachable = errors.New("image could not be loaded")
	ErrAlreadyVerified  = errors.New("account is already verified")
)

// ImageProber 检查远程图片能否加载
type ImageProber interface {
	Probe(ctx context.Context, url string) error
}

type UserService struct {
	userRepo *repository.UserRepository
	uploads  *UploadService
	prober   ImageProber
	cfg      *config.Config
}

func NewUserService(userRepo *repository.UserRepository, uploads *UploadService, prober ImageProber, cfg *config.Config) *UserService {
	return &UserService{
		userRepo: userRepo,
		uploads:  uploads,
		prober:   prober,
		cfg:      cfg,
	}
}

// GetProfile 获取用户详情
func (s *UserService) GetProfile(userID int64) (*dto.UserInfo, error) {
	user, err := s.getUser(userID)
	if err != nil {
		return nil, err
	}
	return buildUserInfo(user), nil
}

// UpdateProfile 更新用户信息，只修改传入的字段
func (s *UserService) UpdateProfile(userID int64, req *dto.UpdateProfileRequest) (*dto.UserInfo, error) {
	user, err := s.getUser(userID)
	if err != nil {
		return nil, err
	}

	if req.Username != nil && *req.Username != user.Username {
		exists, err := s.userRepo.ExistsByUsername(*req.Username)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, ErrUsernameExists
		}
		user.Username = *req.Username
	}
	if req.FullName != nil {
		user.FullName = *req.FullName
	}
	if req.Phone != nil {
		user.Phone = *req.Phone
	}
	if req.Country != nil {
		user.Country = *req.Country
	}
	if req.Bio != nil {
		user.Bio = *req.Bio
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}

	return buildUserInfo(user), nil
}

// UploadProfileImage 上传头像并替换旧图
func (s *UserService) UploadProfileImage(userID int64, file io.Reader, filename string) (*dto.ImageUploadResponse, error) {
	user, err := s.getUser(userID)
	if err != nil {
		return nil, err
	}

	result, err := s.uploads.Upload(FolderProfileImages, filename, file)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.SetProfileImage(userID, result.SecureURL, result.PublicID); err != nil {
		return nil, err
	}

	s.removeOldImage(user.ProfileImagePublicID)
	return result, nil
}

// SetProfileImageURL 直接设置外部头像地址，先确认图片能在超时内加载
func (s *UserService) SetProfileImageURL(ctx context.Context, userID int64, url string) (*dto.UserInfo, error) {
	user, err := s.getUser(userID)
	if err != nil {
		return nil, err
	}

	if s.prober != nil {
		if err := s.prober.Probe(ctx, url); err != nil {
			log.Printf("Profile image probe failed for user %d: %v", userID, err)
			return nil, fmt.Errorf("%w: %v", ErrImageUnreachable, err)
		}
	}

	if err := s.userRepo.SetProfileImage(userID, url, ""); err != nil {
		return nil, err
	}

	s.removeOldImage(user.ProfileImagePublicID)
	user.ProfileImageURL = url
	user.ProfileImagePublicID = ""
	return buildUserInfo(user), nil
}

// SubmitVerificationDocument 上传证件，进入待审核
func (s *UserService) SubmitVerificationDocument(userID int64, file io.Reader, filename string) (*dto.UserInfo, error) {
	user, err := s.getUser(userID)
	if err != nil {
		return nil, err
	}
	if user.VerificationStatus == model.VerificationVerified {
		return nil, ErrAlreadyVerified
	}

	result, err := s.uploads.Upload(FolderVerificationDocs, filename, file)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.SubmitVerificationDoc(userID, result.SecureURL); err != nil {
		return nil, err
	}

	user.VerificationDocURL = result.SecureURL
	user.VerificationStatus = model.VerificationPending
	return buildUserInfo(user), nil
}

func (s *UserService) getUser(userID int64) (*model.User, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *UserService) removeOldImage(publicID string) {
	if publicID == "" {
		return
	}
	if err := s.uploads.Delete(publicID); err != nil {
		log.Printf("Failed to delete old profile image %s: %v", publicID, err)
	}
}
