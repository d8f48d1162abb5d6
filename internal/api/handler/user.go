package handler

import (
	"errors"
	"mime/multipart"

	"github.com/gin-gonic/gin"

	"github.com/qs3c/travelmart_server/internal/model/dto"
	"github.com/qs3c/travelmart_server/internal/pkg/response"
	"github.com/qs3c/travelmart_server/internal/service"
)

type UserHandler struct {
	userService *service.UserService
}

func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// GetProfile 获取当前用户信息
// GET /api/v1/user/profile
func (h *UserHandler) GetProfile(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	profile, err := h.userService.GetProfile(userID)
	if err != nil {
		userError(c, err)
		return
	}

	response.Success(c, profile)
}

// UpdateProfile 更新用户信息
// PUT /api/v1/user/profile
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	profile, err := h.userService.UpdateProfile(userID, &req)
	if err != nil {
		userError(c, err)
		return
	}

	response.SuccessWithMessage(c, "Profile updated", profile)
}

// UploadProfileImage 上传头像
// POST /api/v1/user/profile-image
func (h *UserHandler) UploadProfileImage(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	file, ok := formFile(c)
	if !ok {
		return
	}
	f, err := file.Open()
	if err != nil {
		response.ServerError(c, "")
		return
	}
	defer f.Close()

	result, err := h.userService.UploadProfileImage(userID, f, file.Filename)
	if err != nil {
		userError(c, err)
		return
	}

	response.SuccessWithMessage(c, "Profile image updated", result)
}

// SetProfileImageURL 使用外部图片地址作为头像
// PUT /api/v1/user/profile-image
func (h *UserHandler) SetProfileImageURL(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req dto.SetProfileImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	profile, err := h.userService.SetProfileImageURL(c.Request.Context(), userID, req.URL)
	if err != nil {
		userError(c, err)
		return
	}

	response.SuccessWithMessage(c, "Profile image updated", profile)
}

// SubmitVerificationDocument 上传身份证明
// POST /api/v1/user/verification-document
func (h *UserHandler) SubmitVerificationDocument(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	file, ok := formFile(c)
	if !ok {
		return
	}
	f, err := file.Open()
	if err != nil {
		response.ServerError(c, "")
		return
	}
	defer f.Close()

	profile, err := h.userService.SubmitVerificationDocument(userID, f, file.Filename)
	if err != nil {
		userError(c, err)
		return
	}

	response.SuccessWithMessage(c, "Document submitted for review", profile)
}

func formFile(c *gin.Context) (*multipart.FileHeader, bool) {
	file, err := c.FormFile("file")
	if err != nil {
		response.ParamError(c, "Please choose a file")
		return nil, false
	}
	return file, true
}

func userError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		response.NotFoundError(c, err.Error())
	case errors.Is(err, service.ErrUsernameExists),
		errors.Is(err, service.ErrImageUnreachable),
		errors.Is(err, service.ErrAlreadyVerified):
		response.ParamError(c, err.Error())
	default:
		uploadError(c, err)
	}
}
