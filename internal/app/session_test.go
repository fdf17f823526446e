package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	cfgpkg "github.com/taoyao-code/ubx-gateway/internal/config"
)

func TestNewIngest(t *testing.T) {
	t.Run("轮询列表合法", func(t *testing.T) {
		cfg := &cfgpkg.Config{UBX: cfgpkg.UBXConfig{MaxPayload: 1024, PollOnConnect: []string{"MON-VER", "NAV-PVT"}}}
		ingest, err := NewIngest(cfg, nil, zap.NewNop())
		require.NoError(t, err)
		assert.Empty(t, ingest.Sessions())
	})

	t.Run("未知消息名", func(t *testing.T) {
		cfg := &cfgpkg.Config{UBX: cfgpkg.UBXConfig{MaxPayload: 1024, PollOnConnect: []string{"FOO-BAR"}}}
		_, err := NewIngest(cfg, nil, zap.NewNop())
		assert.ErrorContains(t, err, "ubx.pollOnConnect")
	})
}
