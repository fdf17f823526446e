// Package api 提供网关的管理与查询 HTTP 接口
package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/taoyao-code/ubx-gateway/internal/gateway"
	"github.com/taoyao-code/ubx-gateway/internal/outbound"
	"github.com/taoyao-code/ubx-gateway/internal/protocol/ubx"
	"github.com/taoyao-code/ubx-gateway/internal/sink"
	"github.com/taoyao-code/ubx-gateway/internal/storage/models"
	pgstorage "github.com/taoyao-code/ubx-gateway/internal/storage/pg"
)

// LatestStore 最新帧缓存（Redis）
type LatestStore interface {
	Latest(ctx context.Context, id string) (*sink.View, error)
	Counts(ctx context.Context) (map[string]int64, error)
}

// FrameLister 帧日志（PostgreSQL）
type FrameLister interface {
	List(ctx context.Context, fq pgstorage.FrameQuery) ([]pgstorage.FrameRow, error)
}

// ReceiverLister 接收机登记表
type ReceiverLister interface {
	List(ctx context.Context, onlineOnly bool, limit, offset int) ([]models.Receiver, error)
	Get(ctx context.Context, sessionID string) (*models.Receiver, error)
}

// SessionLister 在线会话
type SessionLister interface {
	Sessions() []gateway.SessionInfo
}

// CommandQueue 下行指令队列（outbound.Dispatcher）
type CommandQueue interface {
	Submit(sessionID string, f *ubx.Frame, priority int) (outbound.Command, error)
	List(sessionID string) []outbound.Command
	Get(id string) (outbound.Command, bool)
}

// Deps 处理器依赖，未启用的存储留空，对应接口返回 503
type Deps struct {
	MaxPayload int
	Latest     LatestStore
	Frames     FrameLister
	Receivers  ReceiverLister
	Sessions   SessionLister
	Commands   CommandQueue
	Stream     http.Handler
}

// Handler 管理 API 处理器
type Handler struct {
	maxPayload int
	latest     LatestStore
	frames     FrameLister
	receivers  ReceiverLister
	sessions   SessionLister
	commands   CommandQueue
	stream     http.Handler
	logger     *zap.Logger
}

// NewHandler 创建处理器
func NewHandler(d Deps, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		maxPayload: d.MaxPayload,
		latest:     d.Latest,
		frames:     d.Frames,
		receivers:  d.Receivers,
		sessions:   d.Sessions,
		commands:   d.Commands,
		stream:     d.Stream,
		logger:     logger,
	}
}

// Stream 实时帧推送（WebSocket）
// GET /api/v1/stream?id=NAV-PVT,ACK
func (h *Handler) Stream(c *gin.Context) {
	if h.stream == nil {
		unavailable(c, "live feed disabled")
		return
	}
	h.stream.ServeHTTP(c.Writer, c.Request)
}

func (h *Handler) internalError(c *gin.Context, op string, err error) {
	h.logger.Error("api "+op+" failed", zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}

func unavailable(c *gin.Context, msg string) {
	c.JSON(http.StatusServiceUnavailable, gin.H{"error": msg})
}
