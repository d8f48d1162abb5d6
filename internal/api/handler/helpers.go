package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/qs3c/travelmart_server/internal/api/middleware"
	"github.com/qs3c/travelmart_server/internal/pkg/response"
)

// currentUser 取登录用户，未登录时已写入响应
func currentUser(c *gin.Context) (int64, bool) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
	}
	return userID, ok
}

// idParam 解析路径中的 :id，非法时已写入响应
func idParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.ParamError(c, "Invalid advertisement ID")
		return 0, false
	}
	return id, true
}
