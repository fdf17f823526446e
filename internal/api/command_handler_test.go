package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cfgpkg "github.com/taoyao-code/ubx-gateway/internal/config"
	"github.com/taoyao-code/ubx-gateway/internal/outbound"
)

type nopWriter struct{}

func (nopWriter) Write([]byte) error { return nil }

func TestCommands(t *testing.T) {
	t.Run("未启用", func(t *testing.T) {
		r := newRouter(Deps{}, cfgpkg.HTTPConfig{})
		rr := request(r, http.MethodGet, "/api/v1/sessions/s1/commands", nil)
		assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	})

	d := outbound.NewDispatcher(outbound.Options{}, func(id string) (outbound.Writer, bool) {
		return nopWriter{}, id == "s1"
	}, nil)
	r := newRouter(Deps{Commands: d}, cfgpkg.HTTPConfig{})

	var created outbound.Command
	t.Run("提交", func(t *testing.T) {
		rr := request(r, http.MethodPost, "/api/v1/sessions/s1/commands", map[string]any{
			"id":      "CFG-MSG",
			"payload": "01 07 01",
		})
		require.Equal(t, http.StatusAccepted, rr.Code, rr.Body.String())
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &created))
		assert.Equal(t, "CFG-MSG", created.Message)
		assert.Equal(t, outbound.PriorityNormal, created.Priority)
		assert.Equal(t, outbound.StatusPending, created.Status)
		assert.Equal(t, "b562060103000107011351", created.Wire)
	})

	t.Run("查询", func(t *testing.T) {
		rr := request(r, http.MethodGet, "/api/v1/commands/"+created.ID, nil)
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"session_id":"s1"`)

		rr = request(r, http.MethodGet, "/api/v1/sessions/s1/commands", nil)
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"total":1`)

		assert.Equal(t, http.StatusNotFound, request(r, http.MethodGet, "/api/v1/commands/nope", nil).Code)
	})

	t.Run("请求错误", func(t *testing.T) {
		cases := []struct {
			name string
			path string
			body map[string]any
			code int
		}{
			{"会话不存在", "/api/v1/sessions/s2/commands", map[string]any{"id": "MON-VER"}, http.StatusNotFound},
			{"未知消息", "/api/v1/sessions/s1/commands", map[string]any{"id": "FOO-BAR"}, http.StatusBadRequest},
			{"非法十六进制", "/api/v1/sessions/s1/commands", map[string]any{"id": "CFG-MSG", "payload": "zz"}, http.StatusBadRequest},
			{"优先级越界", "/api/v1/sessions/s1/commands", map[string]any{"id": "MON-VER", "priority": 7}, http.StatusBadRequest},
			{"缺少 id", "/api/v1/sessions/s1/commands", map[string]any{}, http.StatusBadRequest},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				assert.Equal(t, tc.code, request(r, http.MethodPost, tc.path, tc.body).Code)
			})
		}
	})
}
