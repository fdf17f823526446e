package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cfgpkg "github.com/taoyao-code/ubx-gateway/internal/config"
	"github.com/taoyao-code/ubx-gateway/internal/gateway"
	"github.com/taoyao-code/ubx-gateway/internal/sink"
	"github.com/taoyao-code/ubx-gateway/internal/storage/gormrepo"
	"github.com/taoyao-code/ubx-gateway/internal/storage/models"
	pgstorage "github.com/taoyao-code/ubx-gateway/internal/storage/pg"
	redisstorage "github.com/taoyao-code/ubx-gateway/internal/storage/redis"
)

const ackFrameHex = "b5620501020006010f38"

type fakeLatest struct{ views map[string]sink.View }

func (f *fakeLatest) Latest(_ context.Context, id string) (*sink.View, error) {
	v, ok := f.views[id]
	if !ok {
		return nil, redisstorage.ErrNotFound
	}
	return &v, nil
}

func (f *fakeLatest) Counts(context.Context) (map[string]int64, error) {
	return map[string]int64{"ACK-ACK": 3}, nil
}

type fakeFrames struct {
	got  pgstorage.FrameQuery
	rows []pgstorage.FrameRow
}

func (f *fakeFrames) List(_ context.Context, fq pgstorage.FrameQuery) ([]pgstorage.FrameRow, error) {
	f.got = fq
	return f.rows, nil
}

type fakeReceivers struct{ list []models.Receiver }

func (f *fakeReceivers) List(context.Context, bool, int, int) ([]models.Receiver, error) {
	return f.list, nil
}

func (f *fakeReceivers) Get(_ context.Context, id string) (*models.Receiver, error) {
	for i := range f.list {
		if f.list[i].SessionID == id {
			return &f.list[i], nil
		}
	}
	return nil, gormrepo.ErrNotFound
}

type fakeSessions []gateway.SessionInfo

func (f fakeSessions) Sessions() []gateway.SessionInfo { return f }

func newRouter(d Deps, cfg cfgpkg.HTTPConfig) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterRoutes(r, NewHandler(d, nil), cfg, nil)
	return r
}

func request(r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func TestDecode(t *testing.T) {
	r := newRouter(Deps{}, cfgpkg.HTTPConfig{})

	t.Run("解出应答帧", func(t *testing.T) {
		rr := request(r, http.MethodPost, "/api/v1/decode", DecodeRequest{Hex: "ff " + ackFrameHex})
		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

		var resp struct {
			Frames []struct {
				ID      string         `json:"id"`
				Wire    string         `json:"wire"`
				Message map[string]any `json:"message"`
				Summary []string       `json:"summary"`
			} `json:"frames"`
			Stats struct {
				DiscardedBytes uint64 `json:"discarded_bytes"`
			} `json:"stats"`
		}
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		require.Len(t, resp.Frames, 1)
		assert.Equal(t, "ACK-ACK", resp.Frames[0].ID)
		assert.Equal(t, ackFrameHex, resp.Frames[0].Wire)
		assert.Equal(t, true, resp.Frames[0].Message["acked"])
		assert.Equal(t, []string{"ACK-ACK: class: 6, id: 1"}, resp.Frames[0].Summary)
		assert.Equal(t, uint64(1), resp.Stats.DiscardedBytes)
	})

	t.Run("校验失败归类为checksum", func(t *testing.T) {
		rr := request(r, http.MethodPost, "/api/v1/decode", DecodeRequest{Hex: "b5620501020006010f39"})
		require.Equal(t, http.StatusUnprocessableEntity, rr.Code)
		assert.Contains(t, rr.Body.String(), `"kind":"checksum"`)
	})

	t.Run("半帧归类为read", func(t *testing.T) {
		rr := request(r, http.MethodPost, "/api/v1/decode", DecodeRequest{Hex: "b56205"})
		require.Equal(t, http.StatusUnprocessableEntity, rr.Code)
		assert.Contains(t, rr.Body.String(), `"kind":"read"`)
	})

	t.Run("非法十六进制", func(t *testing.T) {
		rr := request(r, http.MethodPost, "/api/v1/decode", DecodeRequest{Hex: "zz"})
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestEncodeAndCatalog(t *testing.T) {
	r := newRouter(Deps{}, cfgpkg.HTTPConfig{})

	t.Run("轮询帧", func(t *testing.T) {
		rr := request(r, http.MethodPost, "/api/v1/encode", EncodeRequest{ID: "mon-ver"})
		require.Equal(t, http.StatusOK, rr.Code)
		var v sink.View
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v))
		assert.Equal(t, "MON-VER", v.ID)
		assert.Equal(t, "b5620a0400000e34", v.Wire)
	})

	t.Run("带载荷", func(t *testing.T) {
		rr := request(r, http.MethodPost, "/api/v1/encode", EncodeRequest{ID: "ACK-ACK", Payload: "06 01"})
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), ackFrameHex)
	})

	t.Run("未知名称", func(t *testing.T) {
		rr := request(r, http.MethodPost, "/api/v1/encode", EncodeRequest{ID: "FOO-BAR"})
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("目录", func(t *testing.T) {
		rr := request(r, http.MethodGet, "/api/v1/catalog", nil)
		require.Equal(t, http.StatusOK, rr.Code)
		var resp struct {
			IDs   []CatalogEntry `json:"ids"`
			Total int            `json:"total"`
		}
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, len(resp.IDs), resp.Total)
		assert.Contains(t, resp.IDs, CatalogEntry{ID: "MON-VER", Class: "MON", ClassByte: 0x0a, IDByte: 0x04})
	})
}

func TestLatestFrame(t *testing.T) {
	t.Run("未启用缓存返回503", func(t *testing.T) {
		r := newRouter(Deps{}, cfgpkg.HTTPConfig{})
		assert.Equal(t, http.StatusServiceUnavailable, request(r, http.MethodGet, "/api/v1/frames/latest/NAV-PVT", nil).Code)
	})

	store := &fakeLatest{views: map[string]sink.View{"ACK-ACK": {ID: "ACK-ACK", Wire: ackFrameHex}}}
	r := newRouter(Deps{Latest: store}, cfgpkg.HTTPConfig{})

	t.Run("名称大小写归一", func(t *testing.T) {
		rr := request(r, http.MethodGet, "/api/v1/frames/latest/ack-ack", nil)
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), ackFrameHex)
	})
	t.Run("无记录返回404", func(t *testing.T) {
		assert.Equal(t, http.StatusNotFound, request(r, http.MethodGet, "/api/v1/frames/latest/NAV-PVT", nil).Code)
	})
	t.Run("非法名称返回400", func(t *testing.T) {
		assert.Equal(t, http.StatusBadRequest, request(r, http.MethodGet, "/api/v1/frames/latest/bogus", nil).Code)
	})
	t.Run("计数", func(t *testing.T) {
		rr := request(r, http.MethodGet, "/api/v1/frames/counts", nil)
		require.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"counts":{"ACK-ACK":3}}`, rr.Body.String())
	})
}

func TestListFrames(t *testing.T) {
	at := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	repo := &fakeFrames{rows: []pgstorage.FrameRow{{
		ID: 1, SessionID: "s1", Source: "tcp:1.2.3.4:5", Identity: "ACK-ACK",
		ClassByte: 0x05, IDByte: 0x01, Length: 2, Payload: []byte{0x06, 0x01}, CheckA: 0x0f, CheckB: 0x38, ReceivedAt: at,
	}, {
		ID: 2, SessionID: "s1", Source: "tcp:1.2.3.4:5", Identity: "MON-Unknown",
		ClassByte: 0x0a, IDByte: 0x99, Length: 2, Payload: []byte{0x01, 0x02}, CheckA: 0xa8, CheckB: 0x45, ReceivedAt: at,
	}}}
	r := newRouter(Deps{Frames: repo}, cfgpkg.HTTPConfig{})

	rr := request(r, http.MethodGet, "/api/v1/frames?id=ack-ack&session=s1&limit=5&since=2024-05-01T00:00:00Z", nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Equal(t, "ACK-ACK", repo.got.Identity)
	assert.Equal(t, "s1", repo.got.SessionID)
	assert.Equal(t, 5, repo.got.Limit)
	assert.True(t, repo.got.Since.Equal(time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)))

	var resp struct {
		Frames []sink.View `json:"frames"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Len(t, resp.Frames, 2)
	assert.Equal(t, ackFrameHex, resp.Frames[0].Wire)
	assert.Equal(t, "s1", resp.Frames[0].SessionID)
	assert.Equal(t, "b5620a9902000102a845", resp.Frames[1].Wire)
	assert.Equal(t, "MON-Unknown", resp.Frames[1].ID)

	assert.Equal(t, http.StatusBadRequest, request(r, http.MethodGet, "/api/v1/frames?since=yesterday", nil).Code)
}

func TestReceiversAndSessions(t *testing.T) {
	now := time.Now()
	d := Deps{
		Receivers: &fakeReceivers{list: []models.Receiver{{SessionID: "s1", Source: "serial:/dev/ttyACM0", FirstSeenAt: now, LastSeenAt: now}}},
		Sessions:  fakeSessions{{ID: "s1", Source: "serial:/dev/ttyACM0", StartedAt: now, Frames: 7}},
	}
	r := newRouter(d, cfgpkg.HTTPConfig{})

	rr := request(r, http.MethodGet, "/api/v1/receivers?online=true", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"total":1`)

	assert.Equal(t, http.StatusOK, request(r, http.MethodGet, "/api/v1/receivers/s1", nil).Code)
	assert.Equal(t, http.StatusNotFound, request(r, http.MethodGet, "/api/v1/receivers/nope", nil).Code)

	rr = request(r, http.MethodGet, "/api/v1/sessions", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"frames":7`)
}

func TestRoutesAuth(t *testing.T) {
	cfg := cfgpkg.HTTPConfig{Auth: cfgpkg.AuthConfig{Enabled: true, APIKeys: []string{"sk_test_123456"}}}
	r := newRouter(Deps{}, cfg)

	assert.Equal(t, http.StatusUnauthorized, request(r, http.MethodGet, "/api/v1/catalog", nil).Code)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/catalog", nil)
	req.Header.Set("X-API-Key", "sk_test_123456")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestClampLimit(t *testing.T) {
	tests := []struct {
		name  string
		limit int
		def   int
		want  int
	}{
		{"未指定用默认", 0, DefaultFrameLimit, DefaultFrameLimit},
		{"负数用默认", -3, DefaultReceiverLimit, DefaultReceiverLimit},
		{"正常值", 20, DefaultFrameLimit, 20},
		{"超过上限", 5000, DefaultFrameLimit, MaxListLimit},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, clampLimit(tt.limit, tt.def))
		})
	}
}
