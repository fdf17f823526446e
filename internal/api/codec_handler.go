package api

import (
	"encoding/hex"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/taoyao-code/ubx-gateway/internal/protocol/ubx"
	"github.com/taoyao-code/ubx-gateway/internal/protocol/ubxmsg"
	"github.com/taoyao-code/ubx-gateway/internal/sink"
)

// DecodeRequest 解码请求，hex 允许包含空白
type DecodeRequest struct {
	Hex string `json:"hex" binding:"required"`
}

// DecodedFrame 单帧解码结果
type DecodedFrame struct {
	sink.View
	Message any      `json:"message,omitempty"`
	Summary []string `json:"summary,omitempty"`
}

// DecodeResponse 解码结果
type DecodeResponse struct {
	Frames    []DecodedFrame  `json:"frames"`
	Errors    []string        `json:"errors,omitempty"`
	Stats     ubx.StreamStats `json:"stats"`
	Remaining int             `json:"remaining"`
}

// EncodeRequest 编码请求
type EncodeRequest struct {
	ID      string `json:"id" binding:"required"` // 如 "CFG-MSG"
	Payload string `json:"payload"`               // 载荷十六进制
}

// CatalogEntry 已知消息身份
type CatalogEntry struct {
	ID        string `json:"id"`
	Class     string `json:"class"`
	ClassByte uint8  `json:"class_byte"`
	IDByte    uint8  `json:"id_byte"`
}

// Decode 解码一段字节流中的全部帧
// POST /api/v1/decode
func (h *Handler) Decode(c *gin.Context) {
	var req DecodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	raw, err := parseHex(req.Hex)
	if err != nil {
		badRequest(c, "invalid hex: "+err.Error())
		return
	}

	dec := ubx.NewStreamDecoder(h.maxPayload)
	frames, ferr := dec.Feed(raw)

	resp := DecodeResponse{
		Frames:    make([]DecodedFrame, 0, len(frames)),
		Stats:     dec.Stats(),
		Remaining: dec.Buffered(),
	}
	for _, f := range frames {
		resp.Frames = append(resp.Frames, DecodedFrame{
			View:    sink.ViewOf(f),
			Message: ubxmsg.Decoded(f),
			Summary: ubxmsg.Summary(f),
		})
	}
	for _, e := range splitJoined(ferr) {
		resp.Errors = append(resp.Errors, ubx.ErrorKind(e)+": "+e.Error())
	}

	if len(frames) == 0 {
		kind := "read"
		if ferr != nil {
			kind = ubx.ErrorKind(ferr)
		}
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "no complete frame", "kind": kind, "detail": resp})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Encode 构造帧
// POST /api/v1/encode
func (h *Handler) Encode(c *gin.Context) {
	var req EncodeRequest
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
	c.JSON(http.StatusOK, sink.ViewOf(f))
}

// Catalog 列出全部具名消息
// GET /api/v1/catalog
func (h *Handler) Catalog(c *gin.Context) {
	ids := ubx.KnownIDs()
	out := make([]CatalogEntry, 0, len(ids))
	for _, id := range ids {
		out = append(out, CatalogEntry{
			ID:        id.String(),
			Class:     id.Class().String(),
			ClassByte: id.Class().Byte(),
			IDByte:    id.Byte(),
		})
	}
	c.JSON(http.StatusOK, gin.H{"ids": out, "total": len(out)})
}

func parseHex(s string) ([]byte, error) {
	s = strings.Join(strings.Fields(s), "")
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	return hex.DecodeString(s)
}

// splitJoined 展开 errors.Join 的结果
func splitJoined(err error) []error {
	if err == nil {
		return nil
	}
	var j interface{ Unwrap() []error }
	if errors.As(err, &j) {
		return j.Unwrap()
	}
	return []error{err}
}
