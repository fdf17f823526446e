package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "ubx-gateway", cfg.App.Name)
	assert.Equal(t, ":7100", cfg.TCP.Addr)
	assert.Equal(t, 8192, cfg.UBX.MaxPayload)
	assert.Equal(t, 60*time.Second, cfg.TCP.ReadTimeout)
	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.Equal(t, []string{"MON-VER"}, cfg.UBX.PollOnConnect)
	assert.Equal(t, 10*time.Second, cfg.Persist.TouchInterval)
	assert.Equal(t, 4096, cfg.Persist.QueueSize)
	assert.Equal(t, 3*time.Second, cfg.Outbound.AckTimeout)
	assert.Equal(t, 2, cfg.Outbound.MaxRetries)
}

func TestLoad_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ubx.yaml")
	content := `
tcp:
  addr: ":9100"
ubx:
  maxPayload: 1024
serial:
  enable: true
  device: /dev/ttyACM0
  baud: 115200
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	t.Setenv("UBX_HTTP_ADDR", ":18080")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9100", cfg.TCP.Addr)
	assert.Equal(t, 1024, cfg.UBX.MaxPayload)
	assert.Equal(t, "/dev/ttyACM0", cfg.Serial.Device)
	assert.Equal(t, 115200, cfg.Serial.Baud)
	assert.Equal(t, ":18080", cfg.HTTP.Addr, "环境变量覆盖")
}

func TestValidate(t *testing.T) {
	cfg := &Config{UBX: UBXConfig{MaxPayload: 70000}}
	assert.Error(t, cfg.Validate())

	cfg = &Config{UBX: UBXConfig{MaxPayload: 100}, Serial: SerialConfig{Enable: true}}
	assert.Error(t, cfg.Validate())

	cfg = &Config{UBX: UBXConfig{MaxPayload: 100}, Outbound: OutboundConfig{MaxRetries: -1}}
	assert.Error(t, cfg.Validate())

	cfg = &Config{UBX: UBXConfig{MaxPayload: 100}}
	assert.NoError(t, cfg.Validate())
}
