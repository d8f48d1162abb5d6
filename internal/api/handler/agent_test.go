package handler

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qs3c/travelmart_server/config"
	"github.com/qs3c/travelmart_server/internal/model/dto"
	"github.com/qs3c/travelmart_server/internal/pkg/response"
	"github.com/qs3c/travelmart_server/internal/repository"
	"github.com/qs3c/travelmart_server/internal/service"
	"github.com/qs3c/travelmart_server/internal/testutil"
)

func setupAgentHandler(t *testing.T) (*AgentHandler, *testContext, func()) {
	t.Helper()

	db := testutil.SetupTestDB(t)
	cfg := &config.Config{
		Server: config.ServerConfig{FrontendURL: "https://travelmart.example"},
	}
	handler := NewAgentHandler(service.NewAgentService(repository.NewPromoCodeRepository(db), cfg))

	return handler, &testContext{DB: db}, func() { testutil.CleanupTestDB(t, db) }
}

func agentRouter(h *AgentHandler, userID int64) *gin.Engine {
	router := gin.New()
	router.GET("/promo-codes/:code", h.Validate)

	authed := router.Group("/agent")
	authed.Use(mockAuth(userID))
	authed.POST("/promo-code", h.Create)
	authed.GET("/dashboard", h.Dashboard)
	authed.PUT("/promo-code/active", h.SetActive)
	authed.GET("/qrcode", h.QRCode)
	return router
}

func TestAgentHandler_CreateAndDashboard(t *testing.T) {
	handler, ctx, cleanup := setupAgentHandler(t)
	defer cleanup()

	user := testutil.TestUser(t, ctx.DB)
	router := agentRouter(handler, user.ID)

	resp := parseResponse(t, performRequest(router, "GET", "/agent/dashboard", nil))
	assert.Equal(t, response.CodeResourceNotFound, resp.Code)

	resp = parseResponse(t, performRequest(router, "POST", "/agent/promo-code", dto.CreatePromoCodeRequest{Code: "beach2024"}))
	require.Equal(t, response.CodeSuccess, resp.Code)

	var dashboard dto.AgentDashboard
	decodeData(t, resp, &dashboard)
	assert.Equal(t, "BEACH2024", dashboard.Code)
	assert.Equal(t, "bronze", dashboard.Tier)
	assert.True(t, dashboard.IsActive)

	resp = parseResponse(t, performRequest(router, "POST", "/agent/promo-code", dto.CreatePromoCodeRequest{}))
	assert.Equal(t, response.CodeParamError, resp.Code)

	resp = parseResponse(t, performRequest(router, "GET", "/agent/dashboard", nil))
	require.Equal(t, response.CodeSuccess, resp.Code)
	decodeData(t, resp, &dashboard)
	assert.Equal(t, "https://travelmart.example/purchase-advertisement?promo=BEACH2024", dashboard.ReferralLink)
}

func TestAgentHandler_Create_InvalidCode(t *testing.T) {
	handler, ctx, cleanup := setupAgentHandler(t)
	defer cleanup()

	user := testutil.TestUser(t, ctx.DB)
	resp := parseResponse(t, performRequest(agentRouter(handler, user.ID), "POST", "/agent/promo-code",
		map[string]string{"code": "no spaces!"}))
	assert.Equal(t, response.CodeParamError, resp.Code)
}

func TestAgentHandler_SetActiveAndValidate(t *testing.T) {
	handler, ctx, cleanup := setupAgentHandler(t)
	defer cleanup()

	user := testutil.TestUser(t, ctx.DB)
	testutil.TestPromoCode(t, ctx.DB, user.ID, testutil.WithCode("SUNNY"))
	router := agentRouter(handler, user.ID)

	resp := parseResponse(t, performRequest(router, "GET", "/promo-codes/sunny", nil))
	require.Equal(t, response.CodeSuccess, resp.Code)
	var v dto.ValidatePromoCodeResponse
	decodeData(t, resp, &v)
	assert.True(t, v.Valid)
	assert.Equal(t, 10, v.DiscountPercent)

	resp = parseResponse(t, performRequest(router, "PUT", "/agent/promo-code/active", map[string]bool{"isActive": false}))
	require.Equal(t, response.CodeSuccess, resp.Code)

	resp = parseResponse(t, performRequest(router, "GET", "/promo-codes/SUNNY", nil))
	require.Equal(t, response.CodeSuccess, resp.Code)
	decodeData(t, resp, &v)
	assert.False(t, v.Valid)
	assert.Zero(t, v.DiscountPercent)

	resp = parseResponse(t, performRequest(router, "PUT", "/agent/promo-code/active", map[string]string{}))
	assert.Equal(t, response.CodeParamError, resp.Code)

	resp = parseResponse(t, performRequest(router, "GET", "/promo-codes/NOPE", nil))
	assert.Equal(t, response.CodeResourceNotFound, resp.Code)
}

func TestAgentHandler_QRCode(t *testing.T) {
	handler, ctx, cleanup := setupAgentHandler(t)
	defer cleanup()

	user := testutil.TestUser(t, ctx.DB)
	testutil.TestPromoCode(t, ctx.DB, user.ID)

	w := httptest.NewRecorder()
	agentRouter(handler, user.ID).ServeHTTP(w, httptest.NewRequest("GET", "/agent/qrcode?size=128", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("\x89PNG")))
}
