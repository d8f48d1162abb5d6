package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/qs3c/travelmart_server/internal/model/dto"
	"github.com/qs3c/travelmart_server/internal/pkg/category"
	"github.com/qs3c/travelmart_server/internal/pkg/response"
)

type CategoryHandler struct {
	routes *category.Table
}

func NewCategoryHandler(routes *category.Table) *CategoryHandler {
	return &CategoryHandler{routes: routes}
}

// List 获取分类列表
// GET /api/v1/categories
func (h *CategoryHandler) List(c *gin.Context) {
	entries := h.routes.Entries()
	categories := make([]dto.CategoryInfo, len(entries))

	for i, e := range entries {
		categories[i] = dto.CategoryInfo{
			Key:         e.Key,
			DisplayName: e.DisplayName,
			Supported:   e.Supported(),
		}
	}

	response.Success(c, gin.H{
		"categories": categories,
	})
}
