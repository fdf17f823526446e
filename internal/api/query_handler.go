package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/taoyao-code/ubx-gateway/internal/protocol/ubx"
	"github.com/taoyao-code/ubx-gateway/internal/sink"
	"github.com/taoyao-code/ubx-gateway/internal/storage/gormrepo"
	pgstorage "github.com/taoyao-code/ubx-gateway/internal/storage/pg"
	redisstorage "github.com/taoyao-code/ubx-gateway/internal/storage/redis"
)

// LatestFrame 查询最新帧
// GET /api/v1/frames/latest/:id
func (h *Handler) LatestFrame(c *gin.Context) {
	if h.latest == nil {
		unavailable(c, "latest frame cache disabled")
		return
	}
	id, ok := ubx.ParseID(c.Param("id"))
	if !ok {
		badRequest(c, "unknown message id: "+c.Param("id"))
		return
	}
	v, err := h.latest.Latest(c.Request.Context(), id.String())
	if errors.Is(err, redisstorage.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "no frame for " + id.String()})
		return
	}
	if err != nil {
		h.internalError(c, "latest frame", err)
		return
	}
	c.JSON(http.StatusOK, v)
}

// FrameCounts 各身份累计帧数
// GET /api/v1/frames/counts
func (h *Handler) FrameCounts(c *gin.Context) {
	if h.latest == nil {
		unavailable(c, "latest frame cache disabled")
		return
	}
	counts, err := h.latest.Counts(c.Request.Context())
	if err != nil {
		h.internalError(c, "frame counts", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"counts": counts})
}

// ListFrames 查询帧日志
// GET /api/v1/frames?id=NAV-PVT&session=...&since=RFC3339&limit=100
func (h *Handler) ListFrames(c *gin.Context) {
	if h.frames == nil {
		unavailable(c, "frame log disabled")
		return
	}
	fq := pgstorage.FrameQuery{SessionID: c.Query("session")}
	if v := c.Query("id"); v != "" {
		id, ok := ubx.ParseID(v)
		if !ok {
			badRequest(c, "unknown message id: "+v)
			return
		}
		fq.Identity = id.String()
	}
	if v := c.Query("since"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			badRequest(c, "since must be RFC3339")
			return
		}
		fq.Since = t
	}
	fq.Limit = clampLimit(queryInt(c, "limit", 0), DefaultFrameLimit)

	rows, err := h.frames.List(c.Request.Context(), fq)
	if err != nil {
		h.internalError(c, "list frames", err)
		return
	}
	out := make([]sink.View, 0, len(rows))
	for _, row := range rows {
		f, err := row.Frame()
		if err != nil {
			h.logger.Warn("skip unreadable frame row", zap.Int64("row_id", row.ID), zap.Error(err))
			continue
		}
		rec := sink.Record{SessionID: row.SessionID, Source: row.Source, ReceivedAt: row.ReceivedAt, Frame: f}
		out = append(out, rec.View())
	}
	c.JSON(http.StatusOK, gin.H{"frames": out, "total": len(out)})
}

// ListReceivers 接收机登记表
// GET /api/v1/receivers?online=true&limit=50&offset=0
func (h *Handler) ListReceivers(c *gin.Context) {
	if h.receivers == nil {
		unavailable(c, "receiver registry disabled")
		return
	}
	online, _ := strconv.ParseBool(c.Query("online"))
	list, err := h.receivers.List(c.Request.Context(), online, clampLimit(queryInt(c, "limit", 0), DefaultReceiverLimit), max(queryInt(c, "offset", 0), 0))
	if err != nil {
		h.internalError(c, "list receivers", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"receivers": list, "total": len(list)})
}

// GetReceiver 单个接收机
// GET /api/v1/receivers/:id
func (h *Handler) GetReceiver(c *gin.Context) {
	if h.receivers == nil {
		unavailable(c, "receiver registry disabled")
		return
	}
	rcv, err := h.receivers.Get(c.Request.Context(), c.Param("id"))
	if errors.Is(err, gormrepo.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "receiver not found"})
		return
	}
	if err != nil {
		h.internalError(c, "get receiver", err)
		return
	}
	c.JSON(http.StatusOK, rcv)
}

// ListSessions 当前在线会话
// GET /api/v1/sessions
func (h *Handler) ListSessions(c *gin.Context) {
	if h.sessions == nil {
		c.JSON(http.StatusOK, gin.H{"sessions": []any{}, "total": 0})
		return
	}
	list := h.sessions.Sessions()
	c.JSON(http.StatusOK, gin.H{"sessions": list, "total": len(list)})
}

func queryInt(c *gin.Context, key string, def int) int {
	if v := c.Query(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
