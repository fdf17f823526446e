package health

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DatabaseChecker 帧日志库：连通性、连接池占用与最近一次落库时间
type DatabaseChecker struct {
	pool *pgxpool.Pool
}

func NewDatabaseChecker(pool *pgxpool.Pool) *DatabaseChecker {
	return &DatabaseChecker{pool: pool}
}

func (c *DatabaseChecker) Name() string { return "database" }

func (c *DatabaseChecker) Check(ctx context.Context) CheckResult {
	start := time.Now()
	var last time.Time
	err := c.pool.QueryRow(ctx, `SELECT received_at FROM ubx_frames ORDER BY id DESC LIMIT 1`).Scan(&last)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return CheckResult{
			Status:  StatusUnhealthy,
			Message: fmt.Sprintf("frame log query failed: %v", err),
			Latency: time.Since(start),
		}
	}

	st := c.pool.Stat()
	res := CheckResult{
		Status:  poolStatus(st.AcquiredConns(), st.MaxConns()),
		Message: "ok",
		Details: map[string]any{
			"acquired_conns": st.AcquiredConns(),
			"max_conns":      st.MaxConns(),
		},
	}
	switch res.Status {
	case StatusUnhealthy:
		res.Message = "connection pool exhausted"
	case StatusDegraded:
		res.Message = "connection pool near limit"
	}
	if !last.IsZero() {
		res.Details["last_frame_at"] = last
		res.Details["last_frame_age"] = time.Since(last).Round(time.Second).String()
	}
	res.Latency = time.Since(start)
	return res
}

// poolStatus 占满为不健康，超过 90% 为降级
func poolStatus(acquired, max int32) Status {
	if max <= 0 {
		return StatusHealthy
	}
	switch u := float64(acquired) / float64(max); {
	case u >= 1.0:
		return StatusUnhealthy
	case u > 0.9:
		return StatusDegraded
	}
	return StatusHealthy
}
