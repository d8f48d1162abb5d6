package handler

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/qs3c/travelmart_server/internal/model/dto"
	"github.com/qs3c/travelmart_server/internal/pkg/category"
	"github.com/qs3c/travelmart_server/internal/pkg/lifecycle"
	"github.com/qs3c/travelmart_server/internal/pkg/response"
	"github.com/qs3c/travelmart_server/internal/service"
)

type AdvertisementHandler struct {
	adService *service.AdvertisementService
}

func NewAdvertisementHandler(adService *service.AdvertisementService) *AdvertisementHandler {
	return &AdvertisementHandler{
		adService: adService,
	}
}

// List 我的广告位列表
// GET /api/v1/advertisements?page=1&limit=10&status=expired
func (h *AdvertisementHandler) List(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var q dto.ListAdvertisementsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	result, err := h.adService.List(userID, &q)
	if err != nil {
		advertisementError(c, err)
		return
	}

	response.Success(c, result)
}

// Get 单个广告位
// GET /api/v1/advertisements/:id
func (h *AdvertisementHandler) Get(c *gin.Context) {
	userID, id, ok := ownedTarget(c)
	if !ok {
		return
	}

	item, err := h.adService.Get(userID, id)
	if err != nil {
		advertisementError(c, err)
		return
	}

	response.Success(c, item)
}

// PauseExpiration 暂停到期计时
// POST /api/v1/advertisements/:id/pause-expiration
func (h *AdvertisementHandler) PauseExpiration(c *gin.Context) {
	userID, id, ok := ownedTarget(c)
	if !ok {
		return
	}

	item, err := h.adService.PauseExpiration(c.Request.Context(), userID, id)
	if err != nil {
		advertisementError(c, err)
		return
	}

	response.SuccessWithMessage(c, "Expiration paused", item)
}

// Publish 跳转到分类发布表单
// POST /api/v1/advertisements/:id/publish
func (h *AdvertisementHandler) Publish(c *gin.Context) {
	userID, id, ok := ownedTarget(c)
	if !ok {
		return
	}

	nav, err := h.adService.Publish(userID, id)
	if err != nil {
		advertisementError(c, err)
		return
	}

	response.Success(c, nav)
}

// CompletePublish 发布表单提交成功后回写发布实体 ID
// POST /api/v1/advertisements/:id/published
func (h *AdvertisementHandler) CompletePublish(c *gin.Context) {
	userID, id, ok := ownedTarget(c)
	if !ok {
		return
	}

	var req dto.CompletePublishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	item, err := h.adService.CompletePublish(c.Request.Context(), userID, id, req.PublishedAdID)
	if err != nil {
		advertisementError(c, err)
		return
	}

	response.SuccessWithMessage(c, "Advertisement published", item)
}

// Manage 跳转到已发布实体的管理页
// GET /api/v1/advertisements/:id/manage
func (h *AdvertisementHandler) Manage(c *gin.Context) {
	h.navigate(c, lifecycle.ActionManage)
}

// View 跳转到已发布实体的详情页
// GET /api/v1/advertisements/:id/view
func (h *AdvertisementHandler) View(c *gin.Context) {
	h.navigate(c, lifecycle.ActionView)
}

func (h *AdvertisementHandler) navigate(c *gin.Context, action lifecycle.Action) {
	userID, id, ok := ownedTarget(c)
	if !ok {
		return
	}

	nav, err := h.adService.Navigate(userID, id, action)
	if err != nil {
		advertisementError(c, err)
		return
	}

	response.Success(c, nav)
}

// RenewalHandoff 进入续费流程
// GET /api/v1/advertisements/:id/renewal
func (h *AdvertisementHandler) RenewalHandoff(c *gin.Context) {
	userID, id, ok := ownedTarget(c)
	if !ok {
		return
	}

	handoff, err := h.adService.RenewalHandoff(userID, id)
	if err != nil {
		advertisementError(c, err)
		return
	}

	response.Success(c, handoff)
}

// Renew 完成续费
// POST /api/v1/advertisements/:id/renew
func (h *AdvertisementHandler) Renew(c *gin.Context) {
	userID, id, ok := ownedTarget(c)
	if !ok {
		return
	}

	var req dto.RenewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	result, err := h.adService.Renew(c.Request.Context(), userID, id, &req)
	if err != nil {
		advertisementError(c, err)
		return
	}

	response.SuccessWithMessage(c, "Advertisement renewed", result)
}

// Purchase 购买新广告位
// POST /api/v1/advertisements
func (h *AdvertisementHandler) Purchase(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req dto.PurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	result, err := h.adService.Purchase(c.Request.Context(), userID, &req)
	if err != nil {
		advertisementError(c, err)
		return
	}

	response.SuccessWithMessage(c, "Advertisement slot purchased", result)
}

// Export 导出 CSV
// GET /api/v1/advertisements/export
func (h *AdvertisementHandler) Export(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	data, err := h.adService.Export(userID)
	if err != nil {
		advertisementError(c, err)
		return
	}

	filename := fmt.Sprintf("advertisements-%s.csv", time.Now().Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", data)
}

// ActionState 单条记录当前的操作状态
// GET /api/v1/advertisements/:id/action-state
func (h *AdvertisementHandler) ActionState(c *gin.Context) {
	userID, id, ok := ownedTarget(c)
	if !ok {
		return
	}

	state, err := h.adService.ActionState(c.Request.Context(), userID, id)
	if err != nil {
		advertisementError(c, err)
		return
	}

	response.Success(c, state)
}

func ownedTarget(c *gin.Context) (int64, int64, bool) {
	userID, ok := currentUser(c)
	if !ok {
		return 0, 0, false
	}
	id, ok := idParam(c)
	if !ok {
		return 0, 0, false
	}
	return userID, id, true
}

// advertisementError 业务错误映射为响应码，其余只给通用提示
func advertisementError(c *gin.Context, err error) {
	var notFound *category.TargetNotFoundError

	switch {
	case errors.As(err, &notFound):
		response.NotFoundError(c, notFound.Error())
	case errors.Is(err, category.ErrUnsupportedCategory):
		response.ComingSoonError(c, err.Error())
	case errors.Is(err, service.ErrAdvertisementNotFound):
		response.NotFoundError(c, err.Error())
	case errors.Is(err, service.ErrNotAdvertisementOwner):
		response.PermissionError(c, err.Error())
	case errors.Is(err, service.ErrActionInFlight):
		response.InFlightError(c, err.Error())
	case errors.Is(err, service.ErrActionNotAllowed):
		response.ActionNotAllowedError(c, err.Error())
	case errors.Is(err, service.ErrInvalidPlan),
		errors.Is(err, service.ErrPlanMismatch),
		errors.Is(err, service.ErrEmptyPublishedAdID),
		errors.Is(err, service.ErrInvalidStatusFilter),
		errors.Is(err, service.ErrInvalidCategory),
		errors.Is(err, service.ErrPromoCodeNotFound),
		errors.Is(err, service.ErrPromoCodeInactive),
		errors.Is(err, service.ErrOwnPromoCode):
		response.ParamError(c, err.Error())
	default:
		log.Printf("Advertisement action failed: %v", err)
		response.ServerError(c, "")
	}
}
