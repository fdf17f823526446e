package sink

import (
	"errors"
	"sync"
	"time"
)

// BreakerState 熔断器状态
type BreakerState int

const (
	BreakerClosed   BreakerState = iota // 正常写入
	BreakerOpen                         // 熔断，跳过写入
	BreakerHalfOpen                     // 试探恢复
)

func (s BreakerState) String() string {
	switch s {
	case BreakerClosed:
		return "closed"
	case BreakerOpen:
		return "open"
	case BreakerHalfOpen:
		return "half_open"
	}
	return "unknown"
}

var (
	// ErrCircuitOpen 存储连续失败后熔断，写入被跳过
	ErrCircuitOpen = errors.New("sink: circuit breaker is open")
	// ErrTooManyProbes 半开状态试探写入已满
	ErrTooManyProbes = errors.New("sink: too many probes in half-open state")
)

// CircuitBreaker 存储写入熔断器。
// 连续失败达到阈值后打开；timeout 过后进入半开，少量写入成功即恢复，失败立即重新打开。
type CircuitBreaker struct {
	mu          sync.Mutex
	state       BreakerState
	failures    int
	successes   int
	probes      int
	lastFail    time.Time
	lastChange  time.Time
	trips       int64
	threshold   int
	timeout     time.Duration
	halfOpenMax int

	onStateChange func(from, to BreakerState)
}

// NewCircuitBreaker threshold<=0 取 5，timeout<=0 取 30s
func NewCircuitBreaker(threshold int, timeout time.Duration) *CircuitBreaker {
	if threshold <= 0 {
		threshold = 5
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &CircuitBreaker{
		threshold:   threshold,
		timeout:     timeout,
		halfOpenMax: 4,
		lastChange:  time.Now(),
	}
}

// Call 在熔断器保护下执行 fn
func (cb *CircuitBreaker) Call(fn func() error) error {
	if err := cb.before(); err != nil {
		return err
	}
	err := fn()
	cb.after(err)
	return err
}

func (cb *CircuitBreaker) before() error {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch cb.state {
	case BreakerOpen:
		if time.Since(cb.lastFail) <= cb.timeout {
			return ErrCircuitOpen
		}
		cb.transitionTo(BreakerHalfOpen)
		cb.failures, cb.successes, cb.probes = 0, 0, 0
	case BreakerHalfOpen:
		if cb.probes >= cb.halfOpenMax {
			return ErrTooManyProbes
		}
	}
	if cb.state == BreakerHalfOpen {
		cb.probes++
	}
	return nil
}

func (cb *CircuitBreaker) after(err error) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if err != nil {
		cb.failures++
		cb.lastFail = time.Now()
		if cb.state == BreakerHalfOpen || cb.failures >= cb.threshold {
			cb.transitionTo(BreakerOpen)
			cb.trips++
		}
		return
	}

	cb.successes++
	switch cb.state {
	case BreakerHalfOpen:
		if cb.successes >= cb.halfOpenMax/2 {
			cb.transitionTo(BreakerClosed)
			cb.failures, cb.successes, cb.probes = 0, 0, 0
		}
	case BreakerClosed:
		// 只统计连续失败
		cb.failures = 0
	}
}

func (cb *CircuitBreaker) transitionTo(to BreakerState) {
	if cb.state == to {
		return
	}
	from := cb.state
	cb.state = to
	cb.lastChange = time.Now()
	if cb.onStateChange != nil {
		go cb.onStateChange(from, to)
	}
}

// State 当前状态
func (cb *CircuitBreaker) State() BreakerState {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.state
}

// SetStateChangeCallback 状态变化回调（异步触发）
func (cb *CircuitBreaker) SetStateChangeCallback(fn func(from, to BreakerState)) {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	cb.onStateChange = fn
}

// Reset 手动恢复
func (cb *CircuitBreaker) Reset() {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	cb.transitionTo(BreakerClosed)
	cb.failures, cb.successes, cb.probes = 0, 0, 0
}

// Stats 统计快照
func (cb *CircuitBreaker) Stats() BreakerStats {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return BreakerStats{
		State:           cb.state.String(),
		Failures:        cb.failures,
		Successes:       cb.successes,
		Trips:           cb.trips,
		LastStateChange: cb.lastChange,
	}
}

// BreakerStats 熔断器统计
type BreakerStats struct {
	State           string    `json:"state"`
	Failures        int       `json:"failures"`
	Successes       int       `json:"successes"`
	Trips           int64     `json:"trips"`
	LastStateChange time.Time `json:"last_state_change"`
}
