package app

import (
	"net/http"

	"go.uber.org/zap"

	cfgpkg "github.com/taoyao-code/ubx-gateway/internal/config"
	"github.com/taoyao-code/ubx-gateway/internal/metrics"
)

// NewMetrics 注册网关指标；metrics.enable=false 时仍采集，但不暴露抓取端点（handler 为 nil）
func NewMetrics(cfg cfgpkg.MetricsConfig, logger *zap.Logger) (http.Handler, *metrics.AppMetrics) {
	reg := metrics.NewRegistry()
	appm := metrics.NewAppMetrics(reg)
	if !cfg.Enable {
		logger.Info("metrics endpoint disabled")
		return nil, appm
	}
	logger.Info("metrics endpoint enabled", zap.String("path", cfg.Path))
	return metrics.Handler(reg), appm
}
