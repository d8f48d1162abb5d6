package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qs3c/travelmart_server/config"
	"github.com/qs3c/travelmart_server/internal/api/handler"
	"github.com/qs3c/travelmart_server/internal/api/middleware"
	"github.com/qs3c/travelmart_server/internal/pkg/category"
	"github.com/qs3c/travelmart_server/internal/pkg/response"
	"github.com/qs3c/travelmart_server/internal/pkg/ws"
)

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		JWT:       config.JWTConfig{Secret: "router-secret", ExpireHours: 1},
		RateLimit: config.RateLimitConfig{RequestsPerSecond: 1000, Burst: 1000},
	}

	router := NewRouter(
		handler.NewAuthHandler(nil, nil),
		handler.NewUserHandler(nil),
		handler.NewUploadHandler(nil),
		handler.NewCategoryHandler(category.DefaultTable()),
		handler.NewAdvertisementHandler(nil),
		handler.NewAgentHandler(nil),
		handler.NewWebSocketHandler(ws.NewHub(), cfg.JWT.Secret, nil),
		middleware.NewIPRateLimiter(cfg.RateLimit),
		cfg,
	)
	return router.Setup()
}

func TestRouter_PublicRoutes(t *testing.T) {
	engine := setupRouter(t)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest("GET", "/api/v1/categories", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var resp response.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, response.CodeSuccess, resp.Code)

	w = httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest("GET", "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouter_AuthenticatedRoutesRequireToken(t *testing.T) {
	engine := setupRouter(t)

	routes := []struct {
		method string
		path   string
	}{
		{"GET", "/api/v1/user/profile"},
		{"GET", "/api/v1/advertisements"},
		{"GET", "/api/v1/advertisements/export"},
		{"POST", "/api/v1/advertisements/1/pause-expiration"},
		{"POST", "/api/v1/upload/listing-photos"},
		{"GET", "/api/v1/agent/dashboard"},
	}

	for _, rt := range routes {
		t.Run(rt.method+" "+rt.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			engine.ServeHTTP(w, httptest.NewRequest(rt.method, rt.path, nil))

			var resp response.Response
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, response.CodeAuthFailed, resp.Code)
		})
	}
}
