package serialport

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	cfgpkg "github.com/taoyao-code/ubx-gateway/internal/config"
)

type fakePort struct {
	*bytes.Reader
	mu      sync.Mutex
	written bytes.Buffer
	closed  bool
}

func (p *fakePort) Write(b []byte) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.written.Write(b)
}

func (p *fakePort) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	return nil
}

func TestReader_ReadAndReopen(t *testing.T) {
	cfg := cfgpkg.SerialConfig{Enable: true, Device: "/dev/ttyFAKE", Baud: 38400}

	var mu sync.Mutex
	opens := 0
	var got []byte
	open := func(c cfgpkg.SerialConfig) (Port, error) {
		mu.Lock()
		defer mu.Unlock()
		opens++
		if opens == 2 {
			return nil, errors.New("device busy")
		}
		return &fakePort{Reader: bytes.NewReader([]byte{0xb5, 0x62, byte(opens)})}, nil
	}

	r := NewReader(cfg, open, nil)
	r.backoff = 10 * time.Millisecond
	done := make(chan struct{})
	var once sync.Once
	r.SetHandlers(
		func(p Port) { _, _ = p.Write([]byte{0xb5, 0x62, 0x0a, 0x04, 0x00, 0x00, 0x0e, 0x34}) },
		func(p []byte) {
			mu.Lock()
			got = append(got, p...)
			n := len(got)
			mu.Unlock()
			if n >= 6 {
				once.Do(func() { close(done) })
			}
		},
		nil,
	)

	ctx, cancel := context.WithCancel(context.Background())
	errC := make(chan error, 1)
	go func() { errC <- r.Run(ctx) }()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("未读到两次打开的数据")
	}
	cancel()
	require.NoError(t, <-errC)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []byte{0xb5, 0x62, 0x01, 0xb5, 0x62, 0x03}, got[:6])
	assert.Equal(t, "serial:/dev/ttyFAKE", r.Source())
}

func TestOpen_EmptyDevice(t *testing.T) {
	_, err := Open(cfgpkg.SerialConfig{})
	assert.Error(t, err)
}
