package api

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/qs3c/travelmart_server/config"
	"github.com/qs3c/travelmart_server/internal/api/handler"
	"github.com/qs3c/travelmart_server/internal/api/middleware"
)

type Router struct {
	authHandler          *handler.AuthHandler
	userHandler          *handler.UserHandler
	uploadHandler        *handler.UploadHandler
	categoryHandler      *handler.CategoryHandler
	advertisementHandler *handler.AdvertisementHandler
	agentHandler         *handler.AgentHandler
	websocketHandler     *handler.WebSocketHandler
	limiter              *middleware.IPRateLimiter
	cfg                  *config.Config
}

func NewRouter(
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	uploadHandler *handler.UploadHandler,
	categoryHandler *handler.CategoryHandler,
	advertisementHandler *handler.AdvertisementHandler,
	agentHandler *handler.AgentHandler,
	websocketHandler *handler.WebSocketHandler,
	limiter *middleware.IPRateLimiter,
	cfg *config.Config,
) *Router {
	return &Router{
		authHandler:          authHandler,
		userHandler:          userHandler,
		uploadHandler:        uploadHandler,
		categoryHandler:      categoryHandler,
		advertisementHandler: advertisementHandler,
		agentHandler:         agentHandler,
		websocketHandler:     websocketHandler,
		limiter:              limiter,
		cfg:                  cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	if r.cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.CORS(r.cfg.CORS))
	engine.Use(middleware.Metrics())

	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := engine.Group("/api/v1")
	if r.limiter != nil {
		api.Use(middleware.RateLimit(r.limiter))
	}
	{
		// WebSocket
		api.GET("/ws", r.websocketHandler.Handle)

		// 公开接口 - 认证
		auth := api.Group("/auth")
		{
			auth.POST("/register", r.authHandler.Register)
			auth.POST("/login", r.authHandler.Login)
			auth.POST("/verify-email", r.authHandler.VerifyEmail)
			auth.GET("/google/url", r.authHandler.GoogleAuthURL)
			auth.POST("/google/callback", r.authHandler.GoogleCallback)
		}

		// 公开接口
		api.GET("/categories", r.categoryHandler.List)
		api.GET("/promo-codes/:code", r.agentHandler.Validate)

		// 需要认证的接口
		authenticated := api.Group("")
		authenticated.Use(middleware.Auth(r.cfg.JWT.Secret))
		{
			// 用户
			user := authenticated.Group("/user")
			{
				user.GET("/profile", r.userHandler.GetProfile)
				user.PUT("/profile", r.userHandler.UpdateProfile)
				user.POST("/profile-image", r.userHandler.UploadProfileImage)
				user.PUT("/profile-image", r.userHandler.SetProfileImageURL)
				user.POST("/verification-document", r.userHandler.SubmitVerificationDocument)
			}

			// 上传
			authenticated.POST("/upload/:folder", r.uploadHandler.Upload)

			// 广告位
			ads := authenticated.Group("/advertisements")
			{
				ads.GET("", r.advertisementHandler.List)
				ads.POST("", r.advertisementHandler.Purchase)
				ads.GET("/export", r.advertisementHandler.Export)
				ads.GET("/:id", r.advertisementHandler.Get)
				ads.GET("/:id/action-state", r.advertisementHandler.ActionState)
				ads.POST("/:id/pause-expiration", r.advertisementHandler.PauseExpiration)
				ads.POST("/:id/publish", r.advertisementHandler.Publish)
				ads.POST("/:id/published", r.advertisementHandler.CompletePublish)
				ads.GET("/:id/manage", r.advertisementHandler.Manage)
				ads.GET("/:id/view", r.advertisementHandler.View)
				ads.GET("/:id/renewal", r.advertisementHandler.RenewalHandoff)
				ads.POST("/:id/renew", r.advertisementHandler.Renew)
			}

			// 代理推广
			agent := authenticated.Group("/agent")
			{
				agent.POST("/promo-code", r.agentHandler.Create)
				agent.GET("/dashboard", r.agentHandler.Dashboard)
				agent.PUT("/promo-code/active", r.agentHandler.SetActive)
				agent.GET("/qrcode", r.agentHandler.QRCode)
			}
		}
	}

	return engine
}
