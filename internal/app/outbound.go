package app

import (
	"context"

	"go.uber.org/zap"

	cfgpkg "github.com/taoyao-code/ubx-gateway/internal/config"
	"github.com/taoyao-code/ubx-gateway/internal/gateway"
	"github.com/taoyao-code/ubx-gateway/internal/metrics"
	"github.com/taoyao-code/ubx-gateway/internal/outbound"
)

// StartOutbound 创建下行调度器、接入应答跟踪并启动；ctx 结束时停止
func StartOutbound(ctx context.Context, cfg cfgpkg.OutboundConfig, ingest *gateway.Ingest, appm *metrics.AppMetrics, log *zap.Logger) *outbound.Dispatcher {
	d := outbound.NewDispatcher(outbound.Options{
		Throttle:    cfg.Throttle,
		AckTimeout:  cfg.AckTimeout,
		MaxRetries:  cfg.MaxRetries,
		AwaitMgaAck: cfg.AwaitMgaAck,
		History:     cfg.History,
	}, sessionWriter(ingest), log.Named("outbound"))
	if appm != nil {
		d.SetResultHook(func(c outbound.Command) {
			appm.Commands.WithLabelValues(c.Status).Inc()
		})
	}
	ingest.SetCommandTracker(d)
	go d.Run(ctx)
	return d
}

// sessionWriter 按会话 ID 查找在线会话作为下行写入器
func sessionWriter(ingest *gateway.Ingest) func(string) (outbound.Writer, bool) {
	return func(id string) (outbound.Writer, bool) {
		s, ok := ingest.Session(id)
		if !ok {
			return nil, false
		}
		return s, true
	}
}
