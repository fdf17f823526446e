package gateway

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/taoyao-code/ubx-gateway/internal/metrics"
	padapter "github.com/taoyao-code/ubx-gateway/internal/protocol/adapter"
	"github.com/taoyao-code/ubx-gateway/internal/protocol/ubx"
	"github.com/taoyao-code/ubx-gateway/internal/serialport"
	"github.com/taoyao-code/ubx-gateway/internal/sink"
	"github.com/taoyao-code/ubx-gateway/internal/tcpserver"
	"go.uber.org/zap"
)

// FrameSink 帧落地（sink.Fanout）
type FrameSink interface {
	Save(ctx context.Context, rec sink.Record) error
}

// Broadcaster 实时推送（livefeed.Hub）
type Broadcaster interface {
	Broadcast(v sink.View)
}

// ReceiverRegistry 接收机会话登记（gormrepo.ReceiverRepo）
type ReceiverRegistry interface {
	SessionStart(ctx context.Context, sessionID, source, remote string, at time.Time) error
	Touch(ctx context.Context, sessionID string, frames, errs int64, at time.Time) error
	SetVersion(ctx context.Context, sessionID, software, hardware string) error
	SessionEnd(ctx context.Context, sessionID string, at time.Time) error
}

// CommandTracker 下行指令应答跟踪（outbound.Dispatcher）
type CommandTracker interface {
	OnFrame(sessionID string, f *ubx.Frame)
	SessionClosed(sessionID string)
}

// Options 接入参数
type Options struct {
	MaxPayload    int
	PollOnConnect [][]byte      // 会话建立后下发的轮询帧
	TouchInterval time.Duration // 登记表计数同步间隔
}

// Ingest 管理全部接入会话：TCP 连接与串口共用同一条处理链路
type Ingest struct {
	opts     Options
	logger   *zap.Logger
	sink     FrameSink
	live     Broadcaster
	registry ReceiverRegistry
	metrics  *metrics.AppMetrics
	tracker  CommandTracker

	mu       sync.RWMutex
	sessions map[string]*Session
}

func New(opts Options, logger *zap.Logger) *Ingest {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.TouchInterval <= 0 {
		opts.TouchInterval = 10 * time.Second
	}
	return &Ingest{opts: opts, logger: logger, sessions: make(map[string]*Session)}
}

// SetSink 设置帧落地
func (g *Ingest) SetSink(s FrameSink) { g.sink = s }

// SetBroadcaster 设置实时推送；Redis 启用时由订阅侧推送，这里不设置
func (g *Ingest) SetBroadcaster(b Broadcaster) { g.live = b }

// SetRegistry 设置会话登记
func (g *Ingest) SetRegistry(r ReceiverRegistry) { g.registry = r }

// SetMetrics 设置指标
func (g *Ingest) SetMetrics(m *metrics.AppMetrics) { g.metrics = m }

// SetCommandTracker 设置下行指令跟踪
func (g *Ingest) SetCommandTracker(t CommandTracker) { g.tracker = t }

func (g *Ingest) registryCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 3*time.Second)
}

// Open 建立会话并登记
func (g *Ingest) Open(source, remote string) *Session {
	s := newSession(g, source, remote)
	g.mu.Lock()
	g.sessions[s.id] = s
	g.mu.Unlock()
	if g.metrics != nil {
		g.metrics.ActiveSessions.Inc()
	}
	if g.registry != nil {
		ctx, cancel := g.registryCtx()
		if err := g.registry.SessionStart(ctx, s.id, source, remote, s.startedAt); err != nil {
			s.logger.Warn("registry session start failed", zap.Error(err))
		}
		cancel()
	}
	s.logger.Info("ingest session opened", zap.String("remote_addr", remote))
	return s
}

func (g *Ingest) remove(s *Session) {
	g.mu.Lock()
	_, ok := g.sessions[s.id]
	delete(g.sessions, s.id)
	g.mu.Unlock()
	if !ok {
		return
	}
	if g.metrics != nil {
		g.metrics.ActiveSessions.Dec()
	}
	if g.registry != nil {
		ctx, cancel := g.registryCtx()
		defer cancel()
		if err := g.registry.SessionEnd(ctx, s.id, time.Now()); err != nil {
			s.logger.Warn("registry session end failed", zap.Error(err))
		}
	}
}

// Session 按 ID 查找在线会话
func (g *Ingest) Session(id string) (*Session, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	s, ok := g.sessions[id]
	return s, ok
}

// Sessions 在线会话快照，按开始时间排序
func (g *Ingest) Sessions() []SessionInfo {
	g.mu.RLock()
	list := make([]*Session, 0, len(g.sessions))
	for _, s := range g.sessions {
		list = append(list, s)
	}
	g.mu.RUnlock()

	out := make([]SessionInfo, 0, len(list))
	for _, s := range list {
		out = append(out, s.Info())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartedAt.Before(out[j].StartedAt) })
	return out
}

// CloseAll 关闭全部会话（进程退出时）
func (g *Ingest) CloseAll() {
	g.mu.RLock()
	list := make([]*Session, 0, len(g.sessions))
	for _, s := range g.sessions {
		list = append(list, s)
	}
	g.mu.RUnlock()
	for _, s := range list {
		s.Close()
	}
}

// HandleConn 作为 tcpserver 连接回调：建会话、按首包绑定协议、下发轮询帧
func (g *Ingest) HandleConn(cc *tcpserver.ConnContext) {
	remote := cc.RemoteAddr().String()
	s := g.Open("tcp:"+remote, remote)
	mux := tcpserver.NewMux(s.logger, padapter.Named{Name: "ubx", Adapter: s})
	mux.BindToConn(cc)
	cc.SetOnClose(s.Close)
	s.SetWriter(cc.Write)
	s.poll(g.opts.PollOnConnect)
}

// BindSerial 把串口读取器接到接入链路：每次打开串口建立新会话
func (g *Ingest) BindSerial(r *serialport.Reader) {
	var (
		mu  sync.Mutex
		cur *Session
		h   func([]byte)
	)
	r.SetHandlers(
		func(p serialport.Port) {
			s := g.Open(r.Source(), "")
			mux := tcpserver.NewMux(s.logger, padapter.Named{Name: "ubx", Adapter: s})
			mu.Lock()
			cur, h = s, mux.Handler(nil, r.Source())
			mu.Unlock()
			s.SetWriter(func(b []byte) error {
				_, err := p.Write(b)
				return err
			})
			s.poll(g.opts.PollOnConnect)
		},
		func(b []byte) {
			if g.metrics != nil {
				g.metrics.BytesReceived.WithLabelValues("serial").Add(float64(len(b)))
			}
			mu.Lock()
			fn := h
			mu.Unlock()
			if fn != nil {
				fn(b)
			}
		},
		func() {
			mu.Lock()
			s := cur
			cur, h = nil, nil
			mu.Unlock()
			if s != nil {
				s.Close()
			}
		},
	)
}
