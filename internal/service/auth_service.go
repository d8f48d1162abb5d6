package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/gosimple/slug"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/qs3c/travelmart_server/config"
	"github.com/qs3c/travelmart_server/internal/model"
	"github.com/qs3c/travelmart_server/internal/model/dto"
	"github.com/qs3c/travelmart_server/internal/pkg/jwt"
	"github.com/qs3c/travelmart_server/internal/pkg/oauth"
	"github.com/qs3c/travelmart_server/internal/repository"
)

var (
	ErrEmailExists        = errors.New("this email is already registered")
	ErrUsernameExists     = errors.New("this username is already taken")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailNotVerified   = errors.New("email has not been verified")
	ErrInvalidVerifyCode  = errors.New("verification code is invalid or has expired")
	ErrUserNotFound       = errors.New("user not found")
	ErrGoogleAuthFailed   = errors.New("google sign-in failed")
)

const verificationTTL = 24 * time.Hour

// VerificationMailer 发送注册验证码
type VerificationMailer interface {
	SendVerificationCode(to, code string) error
}

type AuthService struct {
	userRepo    *repository.UserRepository
	cfg         *config.Config
	googleOAuth *oauth.GoogleOAuth
	mailer      VerificationMailer
}

func NewAuthService(userRepo *repository.UserRepository, cfg *config.Config, mailer VerificationMailer) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		cfg:      cfg,
		googleOAuth: oauth.NewGoogleOAuth(
			cfg.OAuth.Google.ClientID,
			cfg.OAuth.Google.ClientSecret,
			cfg.OAuth.Google.RedirectURI,
		),
		mailer: mailer,
	}
}

// Register 用户注册
func (s *AuthService) Register(req *dto.RegisterRequest) (*dto.RegisterResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	exists, err := s.userRepo.ExistsByEmail(email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailExists
	}

	exists, err = s.userRepo.ExistsByUsername(req.Username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrUsernameExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	verifyCode, err := generateRandomCode(32)
	if err != nil {
		return nil, err
	}

	passwordStr := string(hashedPassword)
	expiresAt := time.Now().Add(verificationTTL)

	user := &model.User{
		Username:              req.Username,
		Email:                 &email,
		PasswordHash:          &passwordStr,
		VerificationStatus:    model.VerificationNone,
		VerificationCode:      &verifyCode,
		VerificationExpiresAt: &expiresAt,
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	// 开发环境自动验证邮箱
	if s.cfg.Server.Mode == "debug" {
		if err := s.userRepo.UpdateFields(user.ID, map[string]interface{}{"email_verified": true}); err != nil {
			return nil, err
		}
	} else if s.mailer != nil {
		if err := s.mailer.SendVerificationCode(email, verifyCode); err != nil {
			log.Printf("Failed to send verification email to user %d: %v", user.ID, err)
		}
	}

	return &dto.RegisterResponse{
		UserID: user.ID,
	}, nil
}

// Login 用户登录
func (s *AuthService) Login(req *dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.userRepo.GetByEmail(strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if user.PasswordHash == nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	if !user.EmailVerified && s.cfg.Server.Mode != "debug" {
		return nil, ErrEmailNotVerified
	}

	return s.issueToken(user)
}

// VerifyEmail 验证邮箱
func (s *AuthService) VerifyEmail(code string) (*dto.LoginResponse, error) {
	user, err := s.userRepo.GetByVerificationCode(code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidVerifyCode
		}
		return nil, err
	}

	if user.VerificationExpiresAt == nil || time.Now().After(*user.VerificationExpiresAt) {
		return nil, ErrInvalidVerifyCode
	}

	user.EmailVerified = true
	user.VerificationCode = nil
	user.VerificationExpiresAt = nil
	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}

	return s.issueToken(user)
}

// GetUserByID 根据 ID 获取用户
func (s *AuthService) GetUserByID(id int64) (*model.User, error) {
	return s.userRepo.GetByID(id)
}

// GetGoogleAuthURL 获取 Google 授权 URL
func (s *AuthService) GetGoogleAuthURL(state string) string {
	return s.googleOAuth.GetAuthURL(state)
}

// GoogleCallback 处理 Google OAuth 回调
func (s *AuthService) GoogleCallback(ctx context.Context, code string) (*dto.LoginResponse, error) {
	token, err := s.googleOAuth.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("%w: exchange code: %v", ErrGoogleAuthFailed, err)
	}

	googleUser, err := s.googleOAuth.GetUser(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("%w: fetch profile: %v", ErrGoogleAuthFailed, err)
	}

	return s.loginWithGoogle(googleUser)
}

// loginWithGoogle 按 google_id 查找；其次按已验证邮箱关联已有账号；都没有则新建
func (s *AuthService) loginWithGoogle(gu *oauth.GoogleUser) (*dto.LoginResponse, error) {
	user, err := s.userRepo.GetByGoogleID(gu.Sub)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if user != nil {
		return s.issueToken(user)
	}

	email := strings.ToLower(gu.Email)
	if email != "" && gu.EmailVerified {
		existing, err := s.userRepo.GetByEmail(email)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		if existing != nil {
			fields := map[string]interface{}{
				"google_id":      gu.Sub,
				"email_verified": true,
			}
			if existing.ProfileImageURL == "" && gu.Picture != "" {
				fields["profile_image_url"] = gu.Picture
				existing.ProfileImageURL = gu.Picture
			}
			if err := s.userRepo.UpdateFields(existing.ID, fields); err != nil {
				return nil, err
			}
			existing.GoogleID = &gu.Sub
			existing.EmailVerified = true
			return s.issueToken(existing)
		}
	}

	username, err := s.uniqueUsername(gu)
	if err != nil {
		return nil, err
	}

	sub := gu.Sub
	user = &model.User{
		Username:           username,
		GoogleID:           &sub,
		FullName:           gu.Name,
		ProfileImageURL:    gu.Picture,
		VerificationStatus: model.VerificationNone,
		EmailVerified:      true, // OAuth 用户默认已验证
	}
	if email != "" {
		taken, err := s.userRepo.ExistsByEmail(email)
		if err != nil {
			return nil, err
		}
		if !taken {
			user.Email = &email
		}
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return s.issueToken(user)
}

// uniqueUsername 由姓名或邮箱前缀生成用户名，冲突时追加 sub 后缀
func (s *AuthService) uniqueUsername(gu *oauth.GoogleUser) (string, error) {
	base := gu.Name
	if base == "" && gu.Email != "" {
		base = strings.SplitN(gu.Email, "@", 2)[0]
	}
	username := strings.ReplaceAll(slug.Make(base), "-", "_")
	if len(username) < 3 {
		username = "traveler"
	}
	if len(username) > 40 {
		username = username[:40]
	}

	exists, err := s.userRepo.ExistsByUsername(username)
	if err != nil {
		return "", err
	}
	if !exists {
		return username, nil
	}

	suffix := gu.Sub
	if len(suffix) > 8 {
		suffix = suffix[len(suffix)-8:]
	}
	return fmt.Sprintf("%s_%s", username, suffix), nil
}

func (s *AuthService) issueToken(user *model.User) (*dto.LoginResponse, error) {
	token, err := jwt.GenerateToken(user.ID, s.cfg.JWT.Secret, s.cfg.JWT.ExpireHours)
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		Token: token,
		User:  buildUserInfo(user),
	}, nil
}

func buildUserInfo(user *model.User) *dto.UserInfo {
	info := &dto.UserInfo{
		ID:                 user.ID,
		Username:           user.Username,
		FullName:           user.FullName,
		Phone:              user.Phone,
		Country:            user.Country,
		Bio:                user.Bio,
		ProfileImageURL:    user.ProfileImageURL,
		VerificationStatus: user.VerificationStatus,
		EmailVerified:      user.EmailVerified,
	}

	if user.Email != nil {
		info.Email = *user.Email
	}
	if !user.CreatedAt.IsZero() {
		info.CreatedAt = user.CreatedAt.Format(time.RFC3339)
	}

	return info
}

func generateRandomCode(length int) (string, error) {
	bytes := make([]byte, length/2)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}
