package tcpserver

import (
	"context"
	"errors"
	"net"
	"sync"
	"sync/atomic"
	"time"

	cfgpkg "github.com/taoyao-code/ubx-gateway/internal/config"
	"go.uber.org/zap"
)

// Server 接收机字节流接入服务：限流、限速后为每个连接启动 ConnContext
type Server struct {
	cfg         cfgpkg.TCPConfig
	ln          net.Listener
	wg          sync.WaitGroup
	stopC       chan struct{}
	stopOnce    sync.Once
	nextConnID  uint64
	logger      *zap.Logger
	limiter     *ConnectionLimiter
	rateLimiter *RateLimiter

	onConn      func(*ConnContext)
	onAccept    func()
	onReject    func(reason string)
	onRecvBytes func(n int)
}

// New 创建接入服务
func New(cfg cfgpkg.TCPConfig, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.ReadBufferBytes <= 0 {
		cfg.ReadBufferBytes = 4096
	}
	return &Server{
		cfg:         cfg,
		stopC:       make(chan struct{}),
		logger:      logger,
		limiter:     NewConnectionLimiter(cfg.MaxConnections, cfg.AcquireTimeout),
		rateLimiter: NewRateLimiter(cfg.AcceptRate, cfg.AcceptBurst),
	}
}

// SetConnHandler 设置连接建立回调（安装 onRead 等），在读循环启动前调用
func (s *Server) SetConnHandler(h func(*ConnContext)) { s.onConn = h }

// SetMetricsCallbacks 设置指标回调
func (s *Server) SetMetricsCallbacks(onAccept func(), onReject func(string), onRecvBytes func(int)) {
	s.onAccept, s.onReject, s.onRecvBytes = onAccept, onReject, onRecvBytes
}

// GetLogger 返回日志器
func (s *Server) GetLogger() *zap.Logger { return s.logger }

// Addr 实际监听地址（Start 之后有效）
func (s *Server) Addr() net.Addr {
	if s.ln == nil {
		return nil
	}
	return s.ln.Addr()
}

// Stats 限流统计
func (s *Server) Stats() ServerStats {
	return ServerStats{Connections: s.limiter.Stats(), Accept: s.rateLimiter.Stats()}
}

// ServerStats 接入服务统计
type ServerStats struct {
	Connections LimiterStats     `json:"connections"`
	Accept      RateLimiterStats `json:"accept"`
}

// Start 监听并接受连接（非阻塞，内部 goroutine）
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return err
	}
	s.ln = ln
	s.logger.Info("tcp ingest listening", zap.String("addr", ln.Addr().String()))

	s.wg.Add(1)
	go s.acceptLoop()
	return nil
}

func (s *Server) acceptLoop() {
	defer s.wg.Done()
	for {
		conn, err := s.ln.Accept()
		if err != nil {
			select {
			case <-s.stopC:
				return
			default:
			}
			if errors.Is(err, net.ErrClosed) {
				return
			}
			s.logger.Warn("tcp accept failed", zap.Error(err))
			// 短暂错误等待后重试
			time.Sleep(50 * time.Millisecond)
			continue
		}

		if !s.rateLimiter.Allow() {
			s.reject(conn, "rate")
			continue
		}
		if err := s.limiter.Acquire(context.Background()); err != nil {
			s.reject(conn, "limit")
			continue
		}
		if s.onAccept != nil {
			s.onAccept()
		}

		cc := newConnContext(s, conn)
		if s.onConn != nil {
			s.onConn(cc)
		}
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			defer s.limiter.Release()
			cc.run()
		}()
	}
}

func (s *Server) reject(c net.Conn, reason string) {
	s.logger.Warn("tcp connection rejected",
		zap.String("remote_addr", c.RemoteAddr().String()),
		zap.String("reason", reason),
	)
	if s.onReject != nil {
		s.onReject(reason)
	}
	_ = c.Close()
}

// Shutdown 优雅关闭监听并等待连接退出
func (s *Server) Shutdown(ctx context.Context) error {
	s.stopOnce.Do(func() { close(s.stopC) })
	if s.ln != nil {
		_ = s.ln.Close()
	}
	ch := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(ch)
	}()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-ch:
		return nil
	}
}

func (s *Server) stopping() bool {
	select {
	case <-s.stopC:
		return true
	default:
		return false
	}
}

func (s *Server) connID() uint64 { return atomic.AddUint64(&s.nextConnID, 1) }
