package app

import (
	"context"

	"go.uber.org/zap"

	cfgpkg "github.com/taoyao-code/ubx-gateway/internal/config"
	"github.com/taoyao-code/ubx-gateway/internal/metrics"
	"github.com/taoyao-code/ubx-gateway/internal/sink"
)

// NewFanout 创建帧落地分发器；落库过滤规则对全部存储生效
func NewFanout(cfg cfgpkg.PersistConfig, appm *metrics.AppMetrics, logger *zap.Logger) (*sink.Fanout, *sink.Filter, error) {
	var filter *sink.Filter
	if cfg.FilterFile != "" {
		f, err := sink.LoadFilter(cfg.FilterFile)
		if err != nil {
			return nil, nil, err
		}
		filter = f
		logger.Info("persist filter loaded",
			zap.String("path", cfg.FilterFile),
			zap.Strings("include", f.Include),
			zap.Strings("exclude", f.Exclude))
	}
	fan := sink.NewFanout(sink.FanoutOptions{
		BreakerThreshold: cfg.BreakerThreshold,
		BreakerTimeout:   cfg.BreakerTimeout,
		WriteTimeout:     cfg.WriteTimeout,
	}, logger)
	fan.SetWriteHook(func(store, result string) {
		appm.SinkWrites.WithLabelValues(store, result).Inc()
	})
	return fan, filter, nil
}

// StartSinkQueue 在分发器前挂异步队列并启动写入协程，ctx 结束后排空退出
func StartSinkQueue(ctx context.Context, cfg cfgpkg.PersistConfig, fan *sink.Fanout, appm *metrics.AppMetrics, logger *zap.Logger) *sink.Queue {
	q := sink.NewQueue(fan, cfg.QueueSize, logger.Named("sink"))
	if appm != nil {
		q.SetDropHook(func() {
			appm.SinkWrites.WithLabelValues("queue", sink.ResultDropped).Inc()
		})
	}
	go q.Run(ctx)
	logger.Info("sink queue started", zap.Int("size", q.Cap()))
	return q
}
