package dto

// RegisterRequest 注册请求
type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=32"`
}

// RegisterResponse 注册响应
type RegisterResponse struct {
	UserID int64 `json:"user_id"`
}

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse 登录响应
type LoginResponse struct {
	Token string    `json:"token"`
	User  *UserInfo `json:"user"`
}

// VerifyEmailRequest 邮箱验证请求
type VerifyEmailRequest struct {
	Code string `json:"code" binding:"required"`
}

// GoogleAuthURLResponse Google 授权地址
type GoogleAuthURLResponse struct {
	URL string `json:"url"`
}

// UserInfo 用户信息（返回给前端）
type UserInfo struct {
	ID                 int64  `json:"id"`
	Username           string `json:"username"`
	Email              string `json:"email,omitempty"`
	FullName           string `json:"full_name"`
	Phone              string `json:"phone"`
	Country            string `json:"country"`
	Bio                string `json:"bio"`
	ProfileImageURL    string `json:"profile_image_url"`
	VerificationStatus string `json:"verification_status"`
	EmailVerified      bool   `json:"email_verified,omitempty"`
	CreatedAt          string `json:"created_at,omitempty"`
}

// UpdateProfileRequest 更新用户信息请求
type UpdateProfileRequest struct {
	Username *string `json:"username,omitempty" binding:"omitempty,min=3,max=50"`
	FullName *string `json:"full_name,omitempty" binding:"omitempty,max=100"`
	Phone    *string `json:"phone,omitempty" binding:"omitempty,max=30"`
	Country  *string `json:"country,omitempty" binding:"omitempty,max=60"`
	Bio      *string `json:"bio,omitempty" binding:"omitempty,max=500"`
}

// SetProfileImageRequest 直接设置头像地址
type SetProfileImageRequest struct {
	URL string `json:"url" binding:"required,url"`
}

// GoogleCallbackRequest 前端回传的授权码和 state
type GoogleCallbackRequest struct {
	Code  string `json:"code" binding:"required"`
	State string `json:"state" binding:"required"`
}

// GoogleLoginResponse Google 登录结果，附带发起登录时的跳转地址
type GoogleLoginResponse struct {
	*LoginResponse
	Redirect string `json:"redirect,omitempty"`
}
