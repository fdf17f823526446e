package api

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	cfgpkg "github.com/taoyao-code/ubx-gateway/internal/config"
	"github.com/taoyao-code/ubx-gateway/internal/httpserver/middleware"
)

// RegisterRoutes 注册 /api/v1 路由
func RegisterRoutes(r gin.IRouter, h *Handler, cfg cfgpkg.HTTPConfig, logger *zap.Logger) {
	if logger == nil {
		logger = zap.NewNop()
	}
	v1 := r.Group("/api/v1")
	v1.Use(middleware.RateLimit(cfg.RequestsPerMin))
	if cfg.Auth.Enabled {
		v1.Use(middleware.APIKeyAuth(cfg.Auth, logger))
		logger.Info("api authentication enabled", zap.Int("api_keys_count", len(cfg.Auth.APIKeys)))
	} else {
		logger.Warn("api authentication disabled")
	}

	// 编解码工具
	v1.POST("/decode", h.Decode)
	v1.POST("/encode", h.Encode)
	v1.GET("/catalog", h.Catalog)

	// 查询
	v1.GET("/frames", h.ListFrames)
	v1.GET("/frames/counts", h.FrameCounts)
	v1.GET("/frames/latest/:id", h.LatestFrame)
	v1.GET("/receivers", h.ListReceivers)
	v1.GET("/receivers/:id", h.GetReceiver)
	v1.GET("/sessions", h.ListSessions)

	// 下行指令
	v1.POST("/sessions/:id/commands", h.SubmitCommand)
	v1.GET("/sessions/:id/commands", h.ListCommands)
	v1.GET("/commands/:cid", h.GetCommand)

	// 实时推送
	v1.GET("/stream", h.Stream)
}
