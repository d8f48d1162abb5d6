package handler

import (
	"errors"
	"log"

	"github.com/gin-gonic/gin"

	"github.com/qs3c/travelmart_server/internal/pkg/response"
	"github.com/qs3c/travelmart_server/internal/service"
)

type UploadHandler struct {
	uploadService *service.UploadService
}

func NewUploadHandler(uploadService *service.UploadService) *UploadHandler {
	return &UploadHandler{
		uploadService: uploadService,
	}
}

// Upload 上传图片到指定目录，返回 secure_url / public_id
// POST /api/v1/upload/:folder
func (h *UploadHandler) Upload(c *gin.Context) {
	if _, ok := currentUser(c); !ok {
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

	result, err := h.uploadService.Upload(c.Param("folder"), file.Filename, f)
	if err != nil {
		uploadError(c, err)
		return
	}

	response.Success(c, result)
}

func uploadError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidUploadFolder),
		errors.Is(err, service.ErrEmptyFile),
		errors.Is(err, service.ErrFileTooLarge),
		errors.Is(err, service.ErrInvalidFormat):
		response.ParamError(c, err.Error())
	default:
		log.Printf("Upload failed: %v", err)
		response.ServerError(c, "")
	}
}
