package app

import (
	"fmt"

	"go.uber.org/zap"

	cfgpkg "github.com/taoyao-code/ubx-gateway/internal/config"
	"github.com/taoyao-code/ubx-gateway/internal/gateway"
	"github.com/taoyao-code/ubx-gateway/internal/metrics"
	"github.com/taoyao-code/ubx-gateway/internal/protocol/ubxmsg"
)

// NewIngest 构造接入会话管理：解析连接后轮询列表并挂上指标
func NewIngest(cfg *cfgpkg.Config, appm *metrics.AppMetrics, logger *zap.Logger) (*gateway.Ingest, error) {
	polls, err := ubxmsg.PollAll(cfg.UBX.PollOnConnect)
	if err != nil {
		return nil, fmt.Errorf("ubx.pollOnConnect: %w", err)
	}
	ingest := gateway.New(gateway.Options{
		MaxPayload:    cfg.UBX.MaxPayload,
		PollOnConnect: polls,
		TouchInterval: cfg.Persist.TouchInterval,
	}, logger)
	if appm != nil {
		ingest.SetMetrics(appm)
	}
	logger.Info("ingest configured",
		zap.Int("max_payload", cfg.UBX.MaxPayload),
		zap.Strings("poll_on_connect", cfg.UBX.PollOnConnect))
	return ingest, nil
}
