package livefeed

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taoyao-code/ubx-gateway/internal/protocol/ubx"
	"github.com/taoyao-code/ubx-gateway/internal/sink"
)

func view(t *testing.T, id ubx.ID) sink.View {
	t.Helper()
	f, err := ubx.Build(id, []byte{0x01})
	require.NoError(t, err)
	return sink.ViewOf(f)
}

func dial(t *testing.T, srv *httptest.Server, query string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/" + query
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func waitClients(t *testing.T, h *Hub, n int) {
	t.Helper()
	require.Eventually(t, func() bool { return h.ClientCount() == n }, 2*time.Second, 10*time.Millisecond)
}

func readView(t *testing.T, conn *websocket.Conn) sink.View {
	t.Helper()
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)
	var v sink.View
	require.NoError(t, json.Unmarshal(data, &v))
	return v
}

func TestHub_Broadcast(t *testing.T) {
	h := NewHub(nil)
	var last atomic.Int64
	h.SetCountHook(func(n int) { last.Store(int64(n)) })
	srv := httptest.NewServer(h)
	defer srv.Close()

	all := dial(t, srv, "")
	navOnly := dial(t, srv, "?id=NAV")
	waitClients(t, h, 2)

	h.Broadcast(view(t, ubx.MonVER))
	h.Broadcast(view(t, ubx.NavPVT))

	assert.Equal(t, "MON-VER", readView(t, all).ID)
	assert.Equal(t, "NAV-PVT", readView(t, all).ID)
	assert.Equal(t, "NAV-PVT", readView(t, navOnly).ID)

	_ = navOnly.Close()
	waitClients(t, h, 1)
	assert.Eventually(t, func() bool { return last.Load() == 1 }, time.Second, 10*time.Millisecond)
}

func TestHub_BadFilter(t *testing.T) {
	h := NewHub(nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/?id=NOPE-NOPE", nil))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestHub_Run(t *testing.T) {
	h := NewHub(nil)
	srv := httptest.NewServer(h)
	defer srv.Close()
	conn := dial(t, srv, "?id=ACK-ACK")
	waitClients(t, h, 1)

	src := make(chan sink.View, 2)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan struct{})
	go func() {
		h.Run(ctx, src)
		close(done)
	}()

	src <- view(t, ubx.AckNAK)
	src <- view(t, ubx.AckACK)
	assert.Equal(t, "ACK-ACK", readView(t, conn).ID)

	close(src)
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run 未在来源关闭后退出")
	}
}
