package app

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/taoyao-code/ubx-gateway/internal/api"
	cfgpkg "github.com/taoyao-code/ubx-gateway/internal/config"
	"github.com/taoyao-code/ubx-gateway/internal/health"
	"github.com/taoyao-code/ubx-gateway/internal/httpserver"
)

// NewHTTPServer 创建 HTTP 服务并注册健康检查与管理 API 路由；metricsHandler 为 nil 时不挂指标端点
func NewHTTPServer(cfg *cfgpkg.Config, metricsHandler http.Handler, agg *health.Aggregator, deps api.Deps, log *zap.Logger) *httpserver.Server {
	srv := httpserver.New(cfg.HTTP, httpserver.Options{
		MetricsPath:    cfg.Metrics.Path,
		MetricsHandler: metricsHandler,
		ReadyFn:        func() bool { return agg.Ready(context.Background()) },
		Logger:         log,
	})
	health.RegisterHTTPRoutes(srv.Engine(), agg)
	api.RegisterRoutes(srv.Engine(), api.NewHandler(deps, log), cfg.HTTP, log)
	return srv
}
