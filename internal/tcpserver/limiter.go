package tcpserver

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"
)

// ErrLimitExceeded 在线接收机数已达上限
var ErrLimitExceeded = errors.New("tcpserver: connection limit exceeded")

// ConnectionLimiter 同时在线的接收机连接上限（信号量）
type ConnectionLimiter struct {
	sem      chan struct{}
	timeout  time.Duration
	max      int
	active   atomic.Int64
	peak     atomic.Int64
	rejected atomic.Int64
}

// NewConnectionLimiter maxConn<=0 取 256，timeout<=0 取 2s
func NewConnectionLimiter(maxConn int, timeout time.Duration) *ConnectionLimiter {
	if maxConn <= 0 {
		maxConn = 256
	}
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	return &ConnectionLimiter{
		sem:     make(chan struct{}, maxConn),
		timeout: timeout,
		max:     maxConn,
	}
}

// Acquire 在 timeout 内获取许可
func (l *ConnectionLimiter) Acquire(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	select {
	case l.sem <- struct{}{}:
		n := l.active.Add(1)
		for {
			p := l.peak.Load()
			if n <= p || l.peak.CompareAndSwap(p, n) {
				break
			}
		}
		return nil
	case <-ctx.Done():
		l.rejected.Add(1)
		return fmt.Errorf("%w: max=%d", ErrLimitExceeded, l.max)
	}
}

// Release 释放许可
func (l *ConnectionLimiter) Release() {
	select {
	case <-l.sem:
		l.active.Add(-1)
	default:
	}
}

// Current 当前活跃连接数
func (l *ConnectionLimiter) Current() int { return int(l.active.Load()) }

// Available 剩余许可
func (l *ConnectionLimiter) Available() int { return l.max - l.Current() }

// Peak 启动以来的最高在线数
func (l *ConnectionLimiter) Peak() int { return int(l.peak.Load()) }

// RejectedCount 累计拒绝数
func (l *ConnectionLimiter) RejectedCount() int64 { return l.rejected.Load() }

// Stats 获取统计信息
func (l *ConnectionLimiter) Stats() LimiterStats {
	cur := l.Current()
	return LimiterStats{
		MaxConnections:    l.max,
		ActiveConnections: cur,
		PeakConnections:   l.Peak(),
		RejectedTotal:     l.RejectedCount(),
		Utilization:       float64(cur) / float64(l.max),
	}
}

// LimiterStats 并发限制统计
type LimiterStats struct {
	MaxConnections    int     `json:"max_connections"`
	ActiveConnections int     `json:"active_connections"`
	PeakConnections   int     `json:"peak_connections"`
	RejectedTotal     int64   `json:"rejected_total"`
	Utilization       float64 `json:"utilization"`
}
