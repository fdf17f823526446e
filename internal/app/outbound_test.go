package app

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	cfgpkg "github.com/taoyao-code/ubx-gateway/internal/config"
	"github.com/taoyao-code/ubx-gateway/internal/gateway"
	"github.com/taoyao-code/ubx-gateway/internal/outbound"
	"github.com/taoyao-code/ubx-gateway/internal/protocol/ubx"
)

func TestStartOutbound(t *testing.T) {
	_, appm := NewMetrics(cfgpkg.MetricsConfig{}, zap.NewNop())
	ingest := gateway.New(gateway.Options{}, nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	d := StartOutbound(ctx, cfgpkg.OutboundConfig{Throttle: 5 * time.Millisecond}, ingest, appm, zap.NewNop())

	s := ingest.Open("tcp:127.0.0.1:9", "127.0.0.1:9")
	sent := make(chan []byte, 4)
	s.SetWriter(func(b []byte) error {
		sent <- append([]byte(nil), b...)
		return nil
	})

	f, err := ubx.Build(ubx.CfgMSG, []byte{0x01, 0x07, 0x01})
	require.NoError(t, err)
	cmd, err := d.Submit(s.ID(), f, 0)
	require.NoError(t, err)

	select {
	case b := <-sent:
		assert.Equal(t, f.Bytes(), b)
	case <-time.After(2 * time.Second):
		t.Fatal("command not written")
	}

	// 接收机回 ACK-ACK，经会话路由到调度器
	ack, err := ubx.Encode(ubx.AckACK, []byte{0x06, 0x01})
	require.NoError(t, err)
	require.NoError(t, s.ProcessBytes(ack))

	got, ok := d.Get(cmd.ID)
	require.True(t, ok)
	assert.Equal(t, outbound.StatusAcked, got.Status)
	assert.Equal(t, 1.0, testutil.ToFloat64(appm.Commands.WithLabelValues(outbound.StatusAcked)))

	t.Run("会话不存在", func(t *testing.T) {
		_, err := d.Submit("nope", f, 0)
		assert.ErrorIs(t, err, outbound.ErrSessionNotFound)
	})
}
