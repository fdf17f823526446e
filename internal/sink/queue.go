package sink

import (
	"context"
	"errors"
	"sync/atomic"

	"go.uber.org/zap"
)

// ResultDropped 队列已满被丢弃
const ResultDropped = "dropped"

// DefaultQueueSize 异步落地队列默认容量
const DefaultQueueSize = 4096

// ErrQueueFull 落地队列已满
var ErrQueueFull = errors.New("sink: queue full")

// Saver 帧落地（通常是 Fanout）
type Saver interface {
	Save(ctx context.Context, rec Record) error
}

// Queue 有界异步落地：接入侧只入队，单个 worker 按入队顺序写下游。
// 队列满时丢弃新帧并计数，接入读循环不等待存储。
type Queue struct {
	next    Saver
	ch      chan Record
	logger  *zap.Logger
	dropped atomic.Int64
	onDrop  func()
	done    chan struct{}
}

// NewQueue 创建异步落地队列，size<=0 时使用默认容量
func NewQueue(next Saver, size int, logger *zap.Logger) *Queue {
	if size <= 0 {
		size = DefaultQueueSize
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Queue{next: next, ch: make(chan Record, size), logger: logger, done: make(chan struct{})}
}

// SetDropHook 丢弃回调（指标），需在 Run 之前设置
func (q *Queue) SetDropHook(fn func()) { q.onDrop = fn }

// Save 非阻塞入队
func (q *Queue) Save(_ context.Context, rec Record) error {
	if rec.Frame == nil {
		return errors.New("sink: record without frame")
	}
	select {
	case q.ch <- rec:
		return nil
	default:
	}
	if n := q.dropped.Add(1); n == 1 || n%1000 == 0 {
		q.logger.Warn("sink queue full, frame dropped",
			zap.String("session_id", rec.SessionID),
			zap.Int64("dropped_total", n),
		)
	}
	if q.onDrop != nil {
		q.onDrop()
	}
	return ErrQueueFull
}

// Run 消费队列直到 ctx 结束；结束时把已入队的帧写完再返回
func (q *Queue) Run(ctx context.Context) {
	defer close(q.done)
	for {
		select {
		case rec := <-q.ch:
			_ = q.next.Save(ctx, rec)
		case <-ctx.Done():
			q.drain()
			return
		}
	}
}

func (q *Queue) drain() {
	n := 0
	for {
		select {
		case rec := <-q.ch:
			_ = q.next.Save(context.Background(), rec)
			n++
		default:
			if n > 0 {
				q.logger.Info("sink queue drained", zap.Int("frames", n))
			}
			return
		}
	}
}

// Done Run 返回后关闭
func (q *Queue) Done() <-chan struct{} { return q.done }

// Cap 队列容量
func (q *Queue) Cap() int { return cap(q.ch) }

// Len 当前排队数
func (q *Queue) Len() int { return len(q.ch) }

// Dropped 累计丢弃数
func (q *Queue) Dropped() int64 { return q.dropped.Load() }
