package tcpserver

import (
	"context"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	cfgpkg "github.com/taoyao-code/ubx-gateway/internal/config"
)

func testConfig() cfgpkg.TCPConfig {
	return cfgpkg.TCPConfig{
		Enable:         true,
		Addr:           "127.0.0.1:0",
		ReadTimeout:    200 * time.Millisecond,
		WriteTimeout:   time.Second,
		MaxConnections: 4,
		AcquireTimeout: 50 * time.Millisecond,
		AcceptRate:     100,
		AcceptBurst:    100,
	}
}

func TestServer_ReadWriteAndClose(t *testing.T) {
	srv := New(testConfig(), nil)

	var mu sync.Mutex
	var received []byte
	closed := make(chan struct{})
	srv.SetConnHandler(func(cc *ConnContext) {
		cc.SetOnRead(func(p []byte) {
			mu.Lock()
			received = append(received, p...)
			mu.Unlock()
			_ = cc.Write([]byte("ok"))
		})
		cc.SetOnClose(func() { close(closed) })
	})
	var accepted, recvBytes int
	srv.SetMetricsCallbacks(func() { accepted++ }, nil, func(n int) { recvBytes += n })
	require.NoError(t, srv.Start())

	conn, err := net.Dial("tcp", srv.Addr().String())
	require.NoError(t, err)
	_, err = conn.Write([]byte{0xb5, 0x62, 0x0a, 0x04})
	require.NoError(t, err)

	reply := make([]byte, 2)
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, err = conn.Read(reply)
	require.NoError(t, err)
	assert.Equal(t, "ok", string(reply))

	mu.Lock()
	assert.Equal(t, []byte{0xb5, 0x62, 0x0a, 0x04}, received)
	mu.Unlock()

	_ = conn.Close()
	select {
	case <-closed:
	case <-time.After(2 * time.Second):
		t.Fatal("连接关闭回调未触发")
	}
	assert.Equal(t, 1, accepted)
	assert.Equal(t, 4, recvBytes)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	assert.NoError(t, srv.Shutdown(ctx))
}

func TestServer_ShutdownInterruptsIdleConn(t *testing.T) {
	cfg := testConfig()
	cfg.ReadTimeout = 0
	srv := New(cfg, nil)
	require.NoError(t, srv.Start())

	conn, err := net.Dial("tcp", srv.Addr().String())
	require.NoError(t, err)
	defer conn.Close()
	time.Sleep(50 * time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	assert.NoError(t, srv.Shutdown(ctx))
}

func TestServer_RejectsOverLimit(t *testing.T) {
	cfg := testConfig()
	cfg.MaxConnections = 1
	srv := New(cfg, nil)
	rejected := make(chan string, 1)
	srv.SetMetricsCallbacks(nil, func(reason string) { rejected <- reason }, nil)
	require.NoError(t, srv.Start())
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}()

	c1, err := net.Dial("tcp", srv.Addr().String())
	require.NoError(t, err)
	defer c1.Close()
	c2, err := net.Dial("tcp", srv.Addr().String())
	require.NoError(t, err)
	defer c2.Close()

	select {
	case reason := <-rejected:
		assert.Equal(t, "limit", reason)
	case <-time.After(2 * time.Second):
		t.Fatal("第二个连接应被拒绝")
	}
}
