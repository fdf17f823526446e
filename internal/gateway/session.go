package gateway

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/taoyao-code/ubx-gateway/internal/protocol/ubx"
	"github.com/taoyao-code/ubx-gateway/internal/protocol/ubxmsg"
	"github.com/taoyao-code/ubx-gateway/internal/sink"
	"go.uber.org/zap"
)

var (
	// ErrSessionClosed 会话已结束
	ErrSessionClosed = errors.New("gateway: session closed")
	// ErrNoWriter 会话没有下行通道
	ErrNoWriter = errors.New("gateway: session has no writer")
)

// Session 一路接收机字节流（一个 TCP 连接或一次串口打开）
type Session struct {
	g         *Ingest
	id        string
	source    string
	remote    string
	startedAt time.Time
	logger    *zap.Logger

	mu          sync.Mutex // 串行化 Feed 与统计读取
	adapter     *ubx.Adapter
	lastDecoder ubx.StreamStats
	lastTouch   time.Time
	touchedF    int64
	touchedE    int64
	version     *ubxmsg.MonVer

	wmu    sync.Mutex
	writer func([]byte) error

	frames    atomic.Int64
	errs      atomic.Int64
	lastFrame atomic.Int64 // unix nano
	closed    atomic.Bool
}

// SessionInfo 会话快照
type SessionInfo struct {
	ID          string          `json:"id"`
	Source      string          `json:"source"`
	RemoteAddr  string          `json:"remote_addr,omitempty"`
	StartedAt   time.Time       `json:"started_at"`
	LastFrameAt *time.Time      `json:"last_frame_at,omitempty"`
	Frames      int64           `json:"frames"`
	Errors      int64           `json:"errors"`
	Decoder     ubx.StreamStats `json:"decoder"`
	Version     *ubxmsg.MonVer  `json:"version,omitempty"`
}

func newSession(g *Ingest, source, remote string) *Session {
	s := &Session{
		g:         g,
		id:        uuid.NewString(),
		source:    source,
		remote:    remote,
		startedAt: time.Now(),
	}
	s.lastTouch = s.startedAt
	s.logger = g.logger.With(zap.String("session_id", s.id), zap.String("source", source))

	s.adapter = ubx.NewAdapter(g.opts.MaxPayload)
	s.adapter.SetLogger(s.logger)
	s.adapter.SetErrorHook(s.onDecodeError)
	s.adapter.Register(ubx.MonVER, func(f *ubx.Frame) error {
		s.recordVersion(f)
		return s.onFrame(f)
	})
	for _, id := range []ubx.ID{ubx.AckACK, ubx.AckNAK, ubx.MgaACKDATA0} {
		s.adapter.Register(id, s.onAnswer)
	}
	s.adapter.SetDefault(s.onFrame)
	return s
}

// SetWriter 安装下行写入（TCP 连接或串口）
func (s *Session) SetWriter(w func([]byte) error) {
	s.wmu.Lock()
	s.writer = w
	s.wmu.Unlock()
}

// Write 向接收机下发原始帧
func (s *Session) Write(b []byte) error {
	if s.closed.Load() {
		return ErrSessionClosed
	}
	s.wmu.Lock()
	w := s.writer
	s.wmu.Unlock()
	if w == nil {
		return ErrNoWriter
	}
	if err := w(b); err != nil {
		return err
	}
	if m := s.g.metrics; m != nil {
		m.BytesSent.WithLabelValues(s.transport()).Add(float64(len(b)))
	}
	return nil
}

func (s *Session) transport() string {
	if s.remote == "" {
		return "serial"
	}
	return "tcp"
}

// ID 会话 ID
func (s *Session) ID() string { return s.id }

// Source 来源
func (s *Session) Source() string { return s.source }

// Sniff 实现 adapter.Adapter
func (s *Session) Sniff(prefix []byte) bool { return s.adapter.Sniff(prefix) }

// ProcessBytes 实现 adapter.Adapter
func (s *Session) ProcessBytes(p []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.adapter.ProcessBytes(p)
	st := s.adapter.Stats()
	if m := s.g.metrics; m != nil && st.DiscardedBytes > s.lastDecoder.DiscardedBytes {
		m.DiscardedBytes.Add(float64(st.DiscardedBytes - s.lastDecoder.DiscardedBytes))
	}
	s.lastDecoder = st
	s.maybeTouch(false)
	return err
}

func (s *Session) onFrame(f *ubx.Frame) error {
	now := time.Now()
	s.frames.Add(1)
	s.lastFrame.Store(now.UnixNano())

	if m := s.g.metrics; m != nil {
		m.FramesTotal.WithLabelValues(f.ClassTag().String(), f.ID().String()).Inc()
	}
	s.logger.Debug("ubx frame", zap.String("id", f.ID().String()), zap.Uint16("length", f.Length))

	rec := sink.Record{SessionID: s.id, Source: s.source, ReceivedAt: now, Frame: f}
	if s.g.sink != nil {
		// 入队失败（队列满）与存储失败均已计入指标，不中断接入
		_ = s.g.sink.Save(context.Background(), rec)
	}
	if s.g.live != nil {
		s.g.live.Broadcast(rec.View())
	}
	return nil
}

// onAnswer 应答帧先交给指令跟踪，再走通用落地
func (s *Session) onAnswer(f *ubx.Frame) error {
	if t := s.g.tracker; t != nil {
		t.OnFrame(s.id, f)
	}
	return s.onFrame(f)
}

func (s *Session) onDecodeError(err error) {
	s.errs.Add(1)
	kind := ubx.ErrorKind(err)
	if m := s.g.metrics; m != nil {
		m.DecodeErrors.WithLabelValues(kind).Inc()
	}
	var ce *ubx.ChecksumError
	if errors.As(err, &ce) {
		s.logger.Warn("ubx checksum mismatch",
			zap.String("received", ce.Received.String()),
			zap.String("computed", ce.Computed.String()),
		)
		return
	}
	s.logger.Warn("ubx frame dropped", zap.String("kind", kind), zap.Error(err))
}

func (s *Session) recordVersion(f *ubx.Frame) {
	v, err := ubxmsg.ParseMonVer(f)
	if err != nil {
		s.logger.Warn("bad MON-VER payload", zap.Error(err))
		return
	}
	s.version = &v
	s.logger.Info("receiver version",
		zap.String("software", v.Software),
		zap.String("hardware", v.Hardware),
		zap.Strings("extensions", v.Extensions),
	)
	if r := s.g.registry; r != nil {
		ctx, cancel := s.g.registryCtx()
		defer cancel()
		if err := r.SetVersion(ctx, s.id, v.Software, v.Hardware); err != nil {
			s.logger.Warn("registry set version failed", zap.Error(err))
		}
	}
}

// maybeTouch 按间隔把计数增量同步到登记表；调用方持有 s.mu
func (s *Session) maybeTouch(force bool) {
	r := s.g.registry
	if r == nil {
		return
	}
	now := time.Now()
	if !force && now.Sub(s.lastTouch) < s.g.opts.TouchInterval {
		return
	}
	frames, errs := s.frames.Load(), s.errs.Load()
	df, de := frames-s.touchedF, errs-s.touchedE
	if df == 0 && de == 0 && !force {
		return
	}
	ctx, cancel := s.g.registryCtx()
	defer cancel()
	if err := r.Touch(ctx, s.id, df, de, now); err != nil {
		s.logger.Warn("registry touch failed", zap.Error(err))
		return
	}
	s.lastTouch, s.touchedF, s.touchedE = now, frames, errs
}

// Close 结束会话，可重复调用
func (s *Session) Close() {
	if !s.closed.CompareAndSwap(false, true) {
		return
	}
	s.mu.Lock()
	s.maybeTouch(true)
	s.mu.Unlock()
	s.g.remove(s)
	if t := s.g.tracker; t != nil {
		t.SessionClosed(s.id)
	}
	s.logger.Info("ingest session closed",
		zap.Int64("frames", s.frames.Load()),
		zap.Int64("errors", s.errs.Load()),
		zap.Duration("duration", time.Since(s.startedAt)),
	)
}

// Info 快照
func (s *Session) Info() SessionInfo {
	s.mu.Lock()
	st := s.adapter.Stats()
	ver := s.version
	s.mu.Unlock()

	info := SessionInfo{
		ID:         s.id,
		Source:     s.source,
		RemoteAddr: s.remote,
		StartedAt:  s.startedAt,
		Frames:     s.frames.Load(),
		Errors:     s.errs.Load(),
		Decoder:    st,
		Version:    ver,
	}
	if ns := s.lastFrame.Load(); ns > 0 {
		t := time.Unix(0, ns)
		info.LastFrameAt = &t
	}
	return info
}

// poll 会话建立后依次下发轮询帧，首个失败即停止
func (s *Session) poll(frames [][]byte) {
	for _, p := range frames {
		if err := s.Write(p); err != nil {
			s.logger.Warn("poll write failed", zap.Error(err))
			return
		}
	}
}
