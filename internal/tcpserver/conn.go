package tcpserver

import (
	"errors"
	"net"
	"sync"
	"sync/atomic"
	"time"
)

// ErrConnClosed 连接已关闭
var ErrConnClosed = errors.New("connection closed")

// ConnContext 为每个 TCP 连接提供读/写循环与回调能力
type ConnContext struct {
	s         *Server
	c         net.Conn
	id        uint64
	writeC    chan []byte
	closed    int32
	closeOnce sync.Once
	onRead    func([]byte)
	onClose   func()
	doneC     chan struct{}
	proto     atomic.Value // string: 协议标记，如 "ubx"
}

func newConnContext(s *Server, c net.Conn) *ConnContext {
	cc := &ConnContext{
		s:      s,
		c:      c,
		id:     s.connID(),
		writeC: make(chan []byte, 128),
		doneC:  make(chan struct{}),
	}
	cc.proto.Store("")
	return cc
}

// ID 返回连接ID（单进程唯一递增）
func (cc *ConnContext) ID() uint64 { return cc.id }

// Server 所属服务
func (cc *ConnContext) Server() *Server { return cc.s }

// RemoteAddr 返回远端地址
func (cc *ConnContext) RemoteAddr() net.Addr { return cc.c.RemoteAddr() }

// SetOnRead 安装读取回调（收到上行原始字节时触发）
func (cc *ConnContext) SetOnRead(h func([]byte)) { cc.onRead = h }

// SetOnClose 安装连接结束回调
func (cc *ConnContext) SetOnClose(h func()) { cc.onClose = h }

// SetProtocol 设置连接所使用的协议标记（在 Mux 决策后调用）
func (cc *ConnContext) SetProtocol(p string) { cc.proto.Store(p) }

// Protocol 返回连接的协议标记
func (cc *ConnContext) Protocol() string {
	if s, ok := cc.proto.Load().(string); ok {
		return s
	}
	return ""
}

// Write 异步写入（例如向接收机下发轮询帧），受写队列与写超时影响
func (cc *ConnContext) Write(b []byte) error {
	if atomic.LoadInt32(&cc.closed) == 1 {
		return ErrConnClosed
	}
	// 复制一份，避免调用方复用底层切片
	dup := make([]byte, len(b))
	copy(dup, b)
	to := cc.s.cfg.WriteTimeout
	if to <= 0 {
		to = 5 * time.Second
	}
	select {
	case cc.writeC <- dup:
		return nil
	case <-cc.doneC:
		return ErrConnClosed
	case <-time.After(to):
		return errors.New("write queue timeout")
	}
}

// Close 关闭连接
func (cc *ConnContext) Close() error {
	if !atomic.CompareAndSwapInt32(&cc.closed, 0, 1) {
		return nil
	}
	return cc.c.Close()
}

// run 启动读/写循环，阻塞直至连接结束
func (cc *ConnContext) run() {
	defer cc.finish()
	cfg := cc.s.cfg

	doneW := make(chan struct{})
	go func() {
		defer close(doneW)
		for {
			select {
			case msg := <-cc.writeC:
				if cfg.WriteTimeout > 0 {
					_ = cc.c.SetWriteDeadline(time.Now().Add(cfg.WriteTimeout))
				}
				if _, err := cc.c.Write(msg); err != nil {
					_ = cc.Close()
					return
				}
			case <-cc.doneC:
				return
			}
		}
	}()

	// 服务关闭时打断阻塞中的 Read
	go func() {
		select {
		case <-cc.s.stopC:
			_ = cc.Close()
		case <-cc.doneC:
		}
	}()

	buf := make([]byte, cfg.ReadBufferBytes)
	for {
		if cfg.ReadTimeout > 0 {
			_ = cc.c.SetReadDeadline(time.Now().Add(cfg.ReadTimeout))
		}
		n, err := cc.c.Read(buf)
		if n > 0 {
			if cc.s.onRecvBytes != nil {
				cc.s.onRecvBytes(n)
			}
			if cc.onRead != nil {
				cc.onRead(buf[:n])
			}
		}
		if err != nil {
			var ne net.Error
			if errors.As(err, &ne) && ne.Timeout() && !cc.s.stopping() {
				// 接收机静默不算断开，继续等待
				continue
			}
			break
		}
		if cc.s.stopping() {
			break
		}
	}
	close(cc.doneC)
	<-doneW
}

func (cc *ConnContext) finish() {
	_ = cc.Close()
	cc.closeOnce.Do(func() {
		if cc.onClose != nil {
			cc.onClose()
		}
	})
}

// Done 返回连接关闭通知通道
func (cc *ConnContext) Done() <-chan struct{} { return cc.doneC }
