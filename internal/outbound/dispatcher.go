// Package outbound 向接收机下发 UBX 指令：按优先级排队、单会话串行发送、
// 等待 ACK/NAK（或 MGA-ACK）并在超时后重试。
package outbound

import (
	"container/heap"
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/taoyao-code/ubx-gateway/internal/protocol/ubx"
)

// 指令状态
const (
	StatusPending = "pending"
	StatusSent    = "sent"
	StatusDone    = "done" // 无应答消息，写出即完成
	StatusAcked   = "acked"
	StatusNak     = "nak"
	StatusFailed  = "failed"
)

var (
	// ErrSessionNotFound 目标会话不存在或已断开
	ErrSessionNotFound = errors.New("outbound: session not found")
	// ErrInvalidPriority 优先级超出 1..5
	ErrInvalidPriority = errors.New("outbound: invalid priority")
)

// Writer 会话的下行写入能力
type Writer interface {
	Write([]byte) error
}

// Command 一条下行指令
type Command struct {
	ID        string    `json:"id"`
	SessionID string    `json:"session_id"`
	Message   string    `json:"message"`
	Wire      string    `json:"wire"`
	Priority  int       `json:"priority"`
	Status    string    `json:"status"`
	Retries   int       `json:"retries"`
	LastError string    `json:"last_error,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	frame    *ubx.Frame
	ack      ackKind
	seq      uint64
	deadline time.Time
}

// Final 是否已进入终态
func (c *Command) Final() bool {
	switch c.Status {
	case StatusDone, StatusAcked, StatusNak, StatusFailed:
		return true
	}
	return false
}

// Options 调度参数
type Options struct {
	Throttle    time.Duration // 两次发送的最小间隔
	AckTimeout  time.Duration
	MaxRetries  int
	AwaitMgaAck bool // 接收机开启了 MGA 应答时才等待 MGA-ACKDATA0
	History     int  // 保留的终态指令条数
}

func (o *Options) normalize() {
	if o.Throttle <= 0 {
		o.Throttle = 100 * time.Millisecond
	}
	if o.AckTimeout <= 0 {
		o.AckTimeout = 3 * time.Second
	}
	if o.MaxRetries < 0 {
		o.MaxRetries = 0
	}
	if o.History <= 0 {
		o.History = 1000
	}
}

// Stats 调度统计
type Stats struct {
	Queued   int    `json:"queued"`
	Inflight int    `json:"inflight"`
	Sent     uint64 `json:"sent"`
	Done     uint64 `json:"done"`
	Acked    uint64 `json:"acked"`
	Nak      uint64 `json:"nak"`
	Failed   uint64 `json:"failed"`
	Retried  uint64 `json:"retried"`
}

// Dispatcher 内存下行队列
type Dispatcher struct {
	opts   Options
	lookup func(sessionID string) (Writer, bool)
	logger *zap.Logger

	mu       sync.Mutex
	queue    cmdHeap
	inflight map[string]*Command // sessionID -> 等待应答的指令
	byID     map[string]*Command
	finished []string
	seq      uint64
	stats    Stats
	onResult func(Command)
}

// NewDispatcher 创建调度器；lookup 按会话 ID 取下行写入器
func NewDispatcher(opts Options, lookup func(sessionID string) (Writer, bool), logger *zap.Logger) *Dispatcher {
	opts.normalize()
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dispatcher{
		opts:     opts,
		lookup:   lookup,
		logger:   logger,
		inflight: make(map[string]*Command),
		byID:     make(map[string]*Command),
	}
}

// SetResultHook 指令进入终态时回调（用于指标）
func (d *Dispatcher) SetResultHook(fn func(Command)) {
	d.mu.Lock()
	d.onResult = fn
	d.mu.Unlock()
}

// Submit 入队；priority<=0 时按 PriorityOf 取默认值
func (d *Dispatcher) Submit(sessionID string, f *ubx.Frame, priority int) (Command, error) {
	if f == nil {
		return Command{}, errors.New("outbound: nil frame")
	}
	if priority <= 0 {
		priority = PriorityOf(f.ID(), len(f.Payload))
	}
	if priority > PriorityBackground {
		return Command{}, ErrInvalidPriority
	}
	if d.lookup != nil {
		if _, ok := d.lookup(sessionID); !ok {
			return Command{}, ErrSessionNotFound
		}
	}

	now := time.Now()
	d.mu.Lock()
	defer d.mu.Unlock()
	d.seq++
	c := &Command{
		ID:        uuid.NewString(),
		SessionID: sessionID,
		Message:   f.ID().String(),
		Wire:      f.String(),
		Priority:  priority,
		Status:    StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
		frame:     f,
		ack:       expectedAck(f, d.opts.AwaitMgaAck),
		seq:       d.seq,
	}
	heap.Push(&d.queue, c)
	d.byID[c.ID] = c
	d.logger.Debug("command queued",
		zap.String("id", c.ID),
		zap.String("session", sessionID),
		zap.String("message", c.Message),
		zap.Int("priority", priority))
	return *c, nil
}

// Run 按节流间隔推进队列，直至 ctx 结束
func (d *Dispatcher) Run(ctx context.Context) {
	ticker := time.NewTicker(d.opts.Throttle)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			d.step(now)
		}
	}
}

// step 先处理应答超时，再发送一条可发送的指令
func (d *Dispatcher) step(now time.Time) {
	var results []Command

	d.mu.Lock()
	for sid, c := range d.inflight {
		if now.Before(c.deadline) {
			continue
		}
		delete(d.inflight, sid)
		if r, ok := d.retryLocked(c, "ack timeout", now); ok {
			results = append(results, r)
		}
	}
	c := d.popLocked()
	if c != nil {
		c.Status = StatusSent
		c.UpdatedAt = now
		if c.ack != ackNone {
			c.deadline = now.Add(d.opts.AckTimeout)
			d.inflight[c.SessionID] = c
		}
		d.stats.Sent++
	}
	d.mu.Unlock()

	if c != nil {
		if r, ok := d.send(c, now); ok {
			results = append(results, r)
		}
	}
	d.notify(results)
}

// popLocked 取优先级最高且所属会话空闲的指令
func (d *Dispatcher) popLocked() *Command {
	var skipped []*Command
	var picked *Command
	for d.queue.Len() > 0 {
		c := heap.Pop(&d.queue).(*Command)
		if _, busy := d.inflight[c.SessionID]; busy {
			skipped = append(skipped, c)
			continue
		}
		picked = c
		break
	}
	for _, c := range skipped {
		heap.Push(&d.queue, c)
	}
	return picked
}

func (d *Dispatcher) send(c *Command, now time.Time) (Command, bool) {
	var err error
	w, ok := d.writer(c.SessionID)
	if !ok {
		err = ErrSessionNotFound
	} else {
		err = w.Write(c.frame.Bytes())
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if err != nil {
		d.logger.Warn("command write failed",
			zap.String("id", c.ID),
			zap.String("session", c.SessionID),
			zap.Error(err))
		if d.inflight[c.SessionID] == c {
			delete(d.inflight, c.SessionID)
		}
		if c.Final() {
			return Command{}, false
		}
		if errors.Is(err, ErrSessionNotFound) {
			return d.finishLocked(c, StatusFailed, err.Error(), now), true
		}
		return d.retryLocked(c, err.Error(), now)
	}
	if c.ack == ackNone && !c.Final() {
		return d.finishLocked(c, StatusDone, "", now), true
	}
	return Command{}, false
}

func (d *Dispatcher) writer(sessionID string) (Writer, bool) {
	if d.lookup == nil {
		return nil, false
	}
	return d.lookup(sessionID)
}

// retryLocked 重新入队；超过重试上限则置为失败并返回终态快照
func (d *Dispatcher) retryLocked(c *Command, reason string, now time.Time) (Command, bool) {
	c.LastError = reason
	c.UpdatedAt = now
	if c.Retries >= d.opts.MaxRetries {
		return d.finishLocked(c, StatusFailed, reason, now), true
	}
	c.Retries++
	c.Status = StatusPending
	d.stats.Retried++
	heap.Push(&d.queue, c)
	d.logger.Debug("command requeued",
		zap.String("id", c.ID),
		zap.Int("retries", c.Retries),
		zap.String("reason", reason))
	return Command{}, false
}

func (d *Dispatcher) finishLocked(c *Command, status, reason string, now time.Time) Command {
	c.Status = status
	c.UpdatedAt = now
	if reason != "" {
		c.LastError = reason
	}
	switch status {
	case StatusDone:
		d.stats.Done++
	case StatusAcked:
		d.stats.Acked++
	case StatusNak:
		d.stats.Nak++
	case StatusFailed:
		d.stats.Failed++
	}
	d.finished = append(d.finished, c.ID)
	for len(d.finished) > d.opts.History {
		delete(d.byID, d.finished[0])
		d.finished = d.finished[1:]
	}
	return *c
}

// OnFrame 处理会话的上行应答帧，匹配等待中的指令
func (d *Dispatcher) OnFrame(sessionID string, f *ubx.Frame) {
	d.mu.Lock()
	c, ok := d.inflight[sessionID]
	if !ok {
		d.mu.Unlock()
		return
	}
	matched, acked := matchAck(c.ack, c.frame, f)
	if !matched {
		d.mu.Unlock()
		return
	}
	delete(d.inflight, sessionID)
	status := StatusNak
	if acked {
		status = StatusAcked
	}
	r := d.finishLocked(c, status, "", time.Now())
	d.mu.Unlock()

	d.logger.Info("command answered",
		zap.String("id", r.ID),
		zap.String("session", sessionID),
		zap.String("message", r.Message),
		zap.String("status", r.Status))
	d.notify([]Command{r})
}

// SessionClosed 会话断开：该会话所有未完成的指令置为失败
func (d *Dispatcher) SessionClosed(sessionID string) {
	now := time.Now()
	var results []Command

	d.mu.Lock()
	if c, ok := d.inflight[sessionID]; ok {
		delete(d.inflight, sessionID)
		results = append(results, d.finishLocked(c, StatusFailed, "session closed", now))
	}
	for _, c := range d.queue.removeIf(func(c *Command) bool { return c.SessionID == sessionID }) {
		results = append(results, d.finishLocked(c, StatusFailed, "session closed", now))
	}
	d.mu.Unlock()

	if len(results) > 0 {
		d.logger.Info("commands dropped on session close",
			zap.String("session", sessionID),
			zap.Int("count", len(results)))
	}
	d.notify(results)
}

func (d *Dispatcher) notify(results []Command) {
	if len(results) == 0 {
		return
	}
	d.mu.Lock()
	fn := d.onResult
	d.mu.Unlock()
	if fn == nil {
		return
	}
	for _, r := range results {
		fn(r)
	}
}

// Get 按 ID 查询指令快照
func (d *Dispatcher) Get(id string) (Command, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	c, ok := d.byID[id]
	if !ok {
		return Command{}, false
	}
	return *c, true
}

// List 会话的指令快照（按提交顺序）；sessionID 为空时返回全部
func (d *Dispatcher) List(sessionID string) []Command {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]*Command, 0, len(d.byID))
	for _, c := range d.byID {
		if sessionID == "" || c.SessionID == sessionID {
			out = append(out, c)
		}
	}
	sortBySeq(out)
	res := make([]Command, len(out))
	for i, c := range out {
		res[i] = *c
	}
	return res
}

// Stats 统计快照
func (d *Dispatcher) Stats() Stats {
	d.mu.Lock()
	defer d.mu.Unlock()
	s := d.stats
	s.Queued = d.queue.Len()
	s.Inflight = len(d.inflight)
	return s
}
