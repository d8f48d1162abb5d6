package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/qs3c/travelmart_server/internal/model/dto"
	"github.com/qs3c/travelmart_server/internal/pkg/response"
	"github.com/qs3c/travelmart_server/internal/service"
)

type AgentHandler struct {
	agentService *service.AgentService
}

func NewAgentHandler(agentService *service.AgentService) *AgentHandler {
	return &AgentHandler{
		agentService: agentService,
	}
}

// Create 申请推广码
// POST /api/v1/agent/promo-code
func (h *AgentHandler) Create(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req dto.CreatePromoCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	dashboard, err := h.agentService.Create(userID, &req)
	if err != nil {
		agentError(c, err)
		return
	}

	response.SuccessWithMessage(c, "Promo code created", dashboard)
}

// Dashboard 推广码面板
// GET /api/v1/agent/dashboard
func (h *AgentHandler) Dashboard(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	dashboard, err := h.agentService.GetDashboard(userID)
	if err != nil {
		agentError(c, err)
		return
	}

	response.Success(c, dashboard)
}

// SetActive 启用/停用推广码
// PUT /api/v1/agent/promo-code/active
func (h *AgentHandler) SetActive(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req dto.SetPromoCodeActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	dashboard, err := h.agentService.SetActive(userID, *req.IsActive)
	if err != nil {
		agentError(c, err)
		return
	}

	response.Success(c, dashboard)
}

// QRCode 推广链接二维码
// GET /api/v1/agent/qrcode?size=256
func (h *AgentHandler) QRCode(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	size, _ := strconv.Atoi(c.DefaultQuery("size", "0"))
	png, err := h.agentService.QRCode(userID, size)
	if err != nil {
		agentError(c, err)
		return
	}

	c.Data(http.StatusOK, "image/png", png)
}

// Validate 公开校验推广码
// GET /api/v1/promo-codes/:code
func (h *AgentHandler) Validate(c *gin.Context) {
	result, err := h.agentService.Validate(c.Param("code"))
	if err != nil {
		agentError(c, err)
		return
	}

	response.Success(c, result)
}

func agentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrPromoCodeNotFound):
		response.NotFoundError(c, err.Error())
	case errors.Is(err, service.ErrPromoCodeExists), errors.Is(err, service.ErrPromoCodeTaken):
		response.ParamError(c, err.Error())
	default:
		log.Printf("Agent request failed: %v", err)
		response.ServerError(c, "")
	}
}
