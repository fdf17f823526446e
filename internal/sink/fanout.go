package sink

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// 写入结果标签
const (
	ResultOK       = "ok"
	ResultError    = "error"
	ResultOpen     = "open"
	ResultFiltered = "filtered"
)

// FanoutOptions 熔断与超时参数
type FanoutOptions struct {
	BreakerThreshold int
	BreakerTimeout   time.Duration
	WriteTimeout     time.Duration
}

// Fanout 把每条帧分发到已启用的存储；每个存储各自带熔断器与可选过滤器
type Fanout struct {
	opts    FanoutOptions
	stores  []*guarded
	logger  *zap.Logger
	onWrite func(store, result string)
}

type guarded struct {
	store   Store
	filter  *Filter
	breaker *CircuitBreaker
}

func NewFanout(opts FanoutOptions, logger *zap.Logger) *Fanout {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.WriteTimeout <= 0 {
		opts.WriteTimeout = 3 * time.Second
	}
	return &Fanout{opts: opts, logger: logger}
}

// Add 挂载存储；filter 为 nil 时不过滤。需在开始分发前调用
func (f *Fanout) Add(s Store, filter *Filter) {
	cb := NewCircuitBreaker(f.opts.BreakerThreshold, f.opts.BreakerTimeout)
	name := s.Name()
	cb.SetStateChangeCallback(func(from, to BreakerState) {
		f.logger.Warn("sink breaker state changed",
			zap.String("store", name),
			zap.String("from", from.String()),
			zap.String("to", to.String()),
		)
	})
	f.stores = append(f.stores, &guarded{store: s, filter: filter, breaker: cb})
}

// SetWriteHook 写入结果回调（指标）
func (f *Fanout) SetWriteHook(fn func(store, result string)) { f.onWrite = fn }

// Len 已挂载的存储数
func (f *Fanout) Len() int { return len(f.stores) }

// Save 逐个存储写入；熔断中的存储被跳过。返回所有失败的汇总
func (f *Fanout) Save(ctx context.Context, rec Record) error {
	if rec.Frame == nil {
		return errors.New("sink: record without frame")
	}
	id := rec.Frame.ID()
	var errs []error
	for _, g := range f.stores {
		name := g.store.Name()
		if !g.filter.Allow(id) {
			f.report(name, ResultFiltered)
			continue
		}
		err := g.breaker.Call(func() error {
			wctx, cancel := context.WithTimeout(ctx, f.opts.WriteTimeout)
			defer cancel()
			return g.store.Save(wctx, rec)
		})
		switch {
		case err == nil:
			f.report(name, ResultOK)
		case errors.Is(err, ErrCircuitOpen), errors.Is(err, ErrTooManyProbes):
			f.report(name, ResultOpen)
		default:
			f.report(name, ResultError)
			f.logger.Warn("sink write failed",
				zap.String("store", name),
				zap.String("id", id.String()),
				zap.String("session_id", rec.SessionID),
				zap.Error(err),
			)
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
		}
	}
	return errors.Join(errs...)
}

// Breakers 各存储熔断器状态
func (f *Fanout) Breakers() map[string]BreakerStats {
	out := make(map[string]BreakerStats, len(f.stores))
	for _, g := range f.stores {
		out[g.store.Name()] = g.breaker.Stats()
	}
	return out
}

func (f *Fanout) report(store, result string) {
	if f.onWrite != nil {
		f.onWrite(store, result)
	}
}
