// Package livefeed 通过 WebSocket 实时推送解码后的帧
package livefeed

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"github.com/taoyao-code/ubx-gateway/internal/protocol/ubx"
	"github.com/taoyao-code/ubx-gateway/internal/sink"
	"go.uber.org/zap"
)

const (
	sendBuffer = 256
	writeWait  = 5 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
)

// Hub 管理订阅客户端；慢客户端缓冲满时丢帧，不阻塞接入
type Hub struct {
	mu       sync.RWMutex
	clients  map[*client]struct{}
	upgrader websocket.Upgrader
	logger   *zap.Logger
	onCount  func(n int)
}

type client struct {
	conn    *websocket.Conn
	send    chan []byte
	filter  *sink.Filter
	dropped atomic.Int64
}

func NewHub(logger *zap.Logger) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Hub{
		clients: make(map[*client]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		logger: logger,
	}
}

// SetCountHook 客户端数变化回调（指标）
func (h *Hub) SetCountHook(fn func(n int)) { h.onCount = fn }

// ServeHTTP 升级为 WebSocket。查询参数 id 可重复，取值同落库过滤器（"NAV-PVT"、"MON"）
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var filter *sink.Filter
	if ids := r.URL.Query()["id"]; len(ids) > 0 {
		f, err := sink.NewFilter(ids, nil)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		filter = f
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Debug("websocket upgrade failed", zap.Error(err))
		return
	}
	c := &client{conn: conn, send: make(chan []byte, sendBuffer), filter: filter}
	h.add(c)
	h.logger.Info("livefeed client connected", zap.String("remote_addr", r.RemoteAddr))

	go h.writeLoop(c)
	h.readLoop(c)
}

// readLoop 只处理控制帧，客户端断开时注销
func (h *Hub) readLoop(c *client) {
	defer h.remove(c)
	c.conn.SetReadLimit(512)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) writeLoop(c *client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()
	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (h *Hub) add(c *client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	n := len(h.clients)
	h.mu.Unlock()
	h.count(n)
}

func (h *Hub) remove(c *client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; !ok {
		h.mu.Unlock()
		return
	}
	delete(h.clients, c)
	close(c.send)
	n := len(h.clients)
	h.mu.Unlock()
	h.count(n)
}

func (h *Hub) count(n int) {
	if h.onCount != nil {
		h.onCount(n)
	}
}

// Broadcast 推送一帧给所有匹配的客户端
func (h *Hub) Broadcast(v sink.View) {
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	id := ubx.IDOfBytes(v.ClassByte, v.IDByte)

	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients {
		if !c.filter.Allow(id) {
			continue
		}
		select {
		case c.send <- data:
		default:
			if n := c.dropped.Add(1); n%100 == 1 {
				h.logger.Warn("livefeed client too slow, dropping frames",
					zap.String("remote_addr", c.conn.RemoteAddr().String()),
					zap.Int64("dropped", n),
				)
			}
		}
	}
}

// Run 消费外部帧来源（如 Redis 订阅），直到通道关闭或 ctx 结束
func (h *Hub) Run(ctx context.Context, src <-chan sink.View) {
	for {
		select {
		case <-ctx.Done():
			return
		case v, ok := <-src:
			if !ok {
				return
			}
			h.Broadcast(v)
		}
	}
}

// ClientCount 当前客户端数
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Close 断开全部客户端
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		delete(h.clients, c)
		close(c.send)
	}
}
