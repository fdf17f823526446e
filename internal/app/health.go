package app

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taoyao-code/ubx-gateway/internal/health"
	"github.com/taoyao-code/ubx-gateway/internal/sink"
	redisstorage "github.com/taoyao-code/ubx-gateway/internal/storage/redis"
	"github.com/taoyao-code/ubx-gateway/internal/tcpserver"
)

// NewHealthAggregator 按已启用的组件组装健康检查；nil 组件跳过
func NewHealthAggregator(dbpool *pgxpool.Pool, redisClient *redisstorage.Client, fan *sink.Fanout) *health.Aggregator {
	agg := health.NewAggregator()
	if dbpool != nil {
		agg.AddChecker(health.NewDatabaseChecker(dbpool))
	}
	if redisClient != nil {
		agg.AddChecker(health.NewRedisChecker(redisClient))
	}
	if fan != nil && fan.Len() > 0 {
		agg.AddChecker(health.NewSinkChecker(fan))
	}
	return agg
}

// AddTCPChecker TCP 接入启动后再加入
func AddTCPChecker(aggregator *health.Aggregator, tcpServer *tcpserver.Server) {
	aggregator.AddChecker(health.NewTCPChecker(tcpServer))
}
