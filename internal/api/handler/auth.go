package handler

import (
	"errors"
	"log"

	"github.com/gin-gonic/gin"

	"github.com/qs3c/travelmart_server/internal/model/dto"
	"github.com/qs3c/travelmart_server/internal/pkg/oauth"
	"github.com/qs3c/travelmart_server/internal/pkg/response"
	"github.com/qs3c/travelmart_server/internal/service"
)

type AuthHandler struct {
	authService *service.AuthService
	states      *oauth.StateStore
}

func NewAuthHandler(authService *service.AuthService, states *oauth.StateStore) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		states:      states,
	}
}

// Register 用户注册
// POST /api/v1/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	resp, err := h.authService.Register(&req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmailExists), errors.Is(err, service.ErrUsernameExists):
			response.ParamError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.SuccessWithMessage(c, "Registration successful, please check your inbox to verify your email", resp)
}

// Login 用户登录
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	resp, err := h.authService.Login(&req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials), errors.Is(err, service.ErrEmailNotVerified):
			response.AuthError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.SuccessWithMessage(c, "Signed in", resp)
}

// VerifyEmail 验证邮箱
// POST /api/v1/auth/verify-email
func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	var req dto.VerifyEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	resp, err := h.authService.VerifyEmail(req.Code)
	if err != nil {
		if errors.Is(err, service.ErrInvalidVerifyCode) {
			response.ParamError(c, err.Error())
			return
		}
		response.ServerError(c, "")
		return
	}

	response.SuccessWithMessage(c, "Email verified", resp)
}

// GoogleAuthURL 生成 Google 授权地址
// GET /api/v1/auth/google/url?redirect=/dashboard
func (h *AuthHandler) GoogleAuthURL(c *gin.Context) {
	state, err := h.states.GenerateState(c.Request.Context(), c.Query("redirect"))
	if err != nil {
		log.Printf("Failed to generate oauth state: %v", err)
		response.ServerError(c, "")
		return
	}

	response.Success(c, dto.GoogleAuthURLResponse{URL: h.authService.GetGoogleAuthURL(state)})
}

// GoogleCallback 前端拿到 code/state 后换取登录态
// POST /api/v1/auth/google/callback
func (h *AuthHandler) GoogleCallback(c *gin.Context) {
	var req dto.GoogleCallbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	redirect, err := h.states.ValidateState(c.Request.Context(), req.State)
	if err != nil {
		if errors.Is(err, oauth.ErrEmptyState) || errors.Is(err, oauth.ErrInvalidState) {
			response.AuthError(c, "Sign-in session expired, please try again")
			return
		}
		response.ServerError(c, "")
		return
	}

	resp, err := h.authService.GoogleCallback(c.Request.Context(), req.Code)
	if err != nil {
		log.Printf("Google sign-in failed: %v", err)
		if errors.Is(err, service.ErrGoogleAuthFailed) {
			response.AuthError(c, service.ErrGoogleAuthFailed.Error())
			return
		}
		response.ServerError(c, "")
		return
	}

	response.SuccessWithMessage(c, "Signed in", dto.GoogleLoginResponse{LoginResponse: resp, Redirect: redirect})
}
