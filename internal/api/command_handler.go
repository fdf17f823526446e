package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/taoyao-code/ubx-gateway/internal/outbound"
	"github.com/taoyao-code/ubx-gateway/internal/protocol/ubx"
)

// CommandRequest 下发指令请求；priority 为 0 时按消息类别取默认值
type CommandRequest struct {
	ID       string `json:"id" binding:"required"`
	Payload  string `json:"payload"`
	Priority int    `json:"priority"`
}

// SubmitCommand 向在线会话下发一条 UBX 指令
// POST /api/v1/sessions/:id/commands
func (h *Handler) SubmitCommand(c *gin.Context) {
	if h.commands == nil {
		unavailable(c, "outbound disabled")
		return
	}
	var req CommandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	id, ok := ubx.ParseID(req.ID)
	if !ok {
		badRequest(c, "unknown message id: "+req.ID)
		return
	}
	payload, err := parseHex(req.Payload)
	if err != nil {
		badRequest(c, "invalid payload hex: "+err.Error())
		return
	}
	f, err := ubx.Build(id, payload)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error(), "kind": ubx.ErrorKind(err)})
		return
	}

	sessionID := c.Param("id")
	cmd, err := h.commands.Submit(sessionID, f, req.Priority)
	switch {
	case errors.Is(err, outbound.ErrSessionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	case errors.Is(err, outbound.ErrInvalidPriority):
		badRequest(c, err.Error())
		return
	case err != nil:
		h.internalError(c, "submit command", err)
		return
	}
	h.logger.Info("command submitted",
		zap.String("session_id", sessionID),
		zap.String("command_id", cmd.ID),
		zap.String("message", cmd.Message),
		zap.Int("priority", cmd.Priority))
	c.JSON(http.StatusAccepted, cmd)
}

// ListCommands 会话的下行指令
// GET /api/v1/sessions/:id/commands
func (h *Handler) ListCommands(c *gin.Context) {
	if h.commands == nil {
		unavailable(c, "outbound disabled")
		return
	}
	list := h.commands.List(c.Param("id"))
	c.JSON(http.StatusOK, gin.H{"commands": list, "total": len(list)})
}

// GetCommand 查询单条指令状态
// GET /api/v1/commands/:cid
func (h *Handler) GetCommand(c *gin.Context) {
	if h.commands == nil {
		unavailable(c, "outbound disabled")
		return
	}
	cmd, ok := h.commands.Get(c.Param("cid"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "command not found"})
		return
	}
	c.JSON(http.StatusOK, cmd)
}
