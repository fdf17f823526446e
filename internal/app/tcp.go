package app

import (
	"go.uber.org/zap"

	cfgpkg "github.com/taoyao-code/ubx-gateway/internal/config"
	"github.com/taoyao-code/ubx-gateway/internal/metrics"
	"github.com/taoyao-code/ubx-gateway/internal/tcpserver"
)

// NewTCPServer 根据配置创建 TCP 接入服务并挂接指标
func NewTCPServer(cfg cfgpkg.TCPConfig, appm *metrics.AppMetrics, logger *zap.Logger) *tcpserver.Server {
	srv := tcpserver.New(cfg, logger)
	srv.SetMetricsCallbacks(
		func() { appm.TCPAccepted.Inc() },
		func(reason string) { appm.TCPRejected.WithLabelValues(reason).Inc() },
		func(n int) { appm.BytesReceived.WithLabelValues("tcp").Add(float64(n)) },
	)
	return srv
}
