package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// 业务码
const (
	CodeSuccess          = 0
	CodeParamError       = 1000
	CodeAuthFailed       = 1001
	CodePermissionDenied = 1002
	CodeResourceNotFound = 1003
	CodeTooManyRequests  = 1004
	CodeActionInFlight   = 1005
	CodeComingSoon       = 1006
	CodeActionNotAllowed = 1007
	CodeServerError      = 5000
)

var codeMessages = map[int]string{
	CodeSuccess:          "success",
	CodeParamError:       "Invalid parameters",
	CodeAuthFailed:       "Authentication failed",
	CodePermissionDenied: "Permission denied",
	CodeResourceNotFound: "Resource not found",
	CodeTooManyRequests:  "Too many requests, please slow down",
	CodeActionInFlight:   "Another action on this item is still in progress",
	CodeComingSoon:       "This functionality will be available soon",
	CodeActionNotAllowed: "This action is not available right now",
	CodeServerError:      "Something went wrong. Please try again later",
}

// Response 统一响应结构
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// DefaultMessage 业务码对应的默认消息
func DefaultMessage(code int) string {
	return codeMessages[code]
}

func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    CodeSuccess,
		Message: "success",
		Data:    data,
	})
}

func SuccessWithMessage(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    CodeSuccess,
		Message: message,
		Data:    data,
	})
}

// Error 错误响应，message 为空时使用默认消息
func Error(c *gin.Context, code int, message string) {
	if message == "" {
		message = codeMessages[code]
	}
	c.JSON(http.StatusOK, Response{
		Code:    code,
		Message: message,
		Data:    nil,
	})
}

func ParamError(c *gin.Context, message string) {
	Error(c, CodeParamError, message)
}

func AuthError(c *gin.Context, message string) {
	Error(c, CodeAuthFailed, message)
}

func PermissionError(c *gin.Context, message string) {
	Error(c, CodePermissionDenied, message)
}

func NotFoundError(c *gin.Context, message string) {
	Error(c, CodeResourceNotFound, message)
}

// TooManyRequestsError 触发限流
func TooManyRequestsError(c *gin.Context, message string) {
	Error(c, CodeTooManyRequests, message)
}

// InFlightError 同一条记录已有操作在进行中
func InFlightError(c *gin.Context, message string) {
	Error(c, CodeActionInFlight, message)
}

// ComingSoonError 分类暂未开放
func ComingSoonError(c *gin.Context, message string) {
	Error(c, CodeComingSoon, message)
}

// ActionNotAllowedError 当前生命周期阶段不允许该操作
func ActionNotAllowedError(c *gin.Context, message string) {
	Error(c, CodeActionNotAllowed, message)
}

// ServerError 后端失败，只返回通用提示
func ServerError(c *gin.Context, message string) {
	Error(c, CodeServerError, message)
}
