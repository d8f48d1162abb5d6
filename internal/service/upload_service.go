package service

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/qs3c/travelmart_server/config"
	"github.com/qs3c/travelmart_server/internal/model/dto"
	"github.com/qs3c/travelmart_server/internal/pkg/oss"
)

var (
	ErrFileTooLarge           = errors.New("file is too large")
	ErrInvalidFormat          = errors.New("unsupported file type")
	ErrEmptyFile              = errors.New("file is empty")
	ErrInvalidUploadFolder    = errors.New("invalid upload folder")
	ErrStorageNotConfigured   = errors.New("image storage is not configured")
	defaultAllowedUploadTypes = []string{"image/jpeg", "image/png", "image/webp", "image/gif", "application/pdf"}
)

const defaultMaxUploadSize int64 = 5 << 20

// 上传目录
const (
	FolderProfileImages    = "profile-images"
	FolderVerificationDocs = "verification-docs"
	FolderListingPhotos    = "listing-photos"
)

// 仅证件目录接受非图片
var folderAcceptsDocuments = map[string]bool{
	FolderProfileImages:    false,
	FolderVerificationDocs: true,
	FolderListingPhotos:    false,
}

// ImageUploader 图片托管
type ImageUploader interface {
	UploadImage(folder, filename string, data []byte, contentType string) (*oss.UploadResult, error)
	Delete(publicID string) error
}

type UploadService struct {
	uploader ImageUploader
	cfg      *config.Config
}

func NewUploadService(uploader ImageUploader, cfg *config.Config) *UploadService {
	return &UploadService{uploader: uploader, cfg: cfg}
}

// Upload 校验大小和真实类型后上传，返回 secure_url / public_id
func (s *UploadService) Upload(folder, filename string, r io.Reader) (*dto.ImageUploadResponse, error) {
	acceptsDocs, ok := folderAcceptsDocuments[folder]
	if !ok {
		return nil, ErrInvalidUploadFolder
	}
	if s.uploader == nil {
		return nil, ErrStorageNotConfigured
	}

	maxSize := s.cfg.Upload.MaxSize
	if maxSize <= 0 {
		maxSize = defaultMaxUploadSize
	}

	data, err := io.ReadAll(io.LimitReader(r, maxSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}
	if len(data) == 0 {
		return nil, ErrEmptyFile
	}
	if int64(len(data)) > maxSize {
		return nil, ErrFileTooLarge
	}

	contentType := mimetype.Detect(data).String()
	if i := strings.Index(contentType, ";"); i >= 0 {
		contentType = contentType[:i]
	}
	if !s.allowed(contentType) {
		return nil, ErrInvalidFormat
	}
	if !acceptsDocs && !strings.HasPrefix(contentType, "image/") {
		return nil, ErrInvalidFormat
	}

	result, err := s.uploader.UploadImage(folder, filename, data, contentType)
	if err != nil {
		return nil, err
	}

	return &dto.ImageUploadResponse{
		SecureURL: result.SecureURL,
		PublicID:  result.PublicID,
	}, nil
}

// Delete 删除已上传的对象，publicID 为空时忽略
func (s *UploadService) Delete(publicID string) error {
	if publicID == "" || s.uploader == nil {
		return nil
	}
	return s.uploader.Delete(publicID)
}

func (s *UploadService) allowed(contentType string) bool {
	types := s.cfg.Upload.AllowedTypes
	if len(types) == 0 {
		types = defaultAllowedUploadTypes
	}
	for _, t := range types {
		if strings.EqualFold(t, contentType) {
			return true
		}
	}
	return false
}
