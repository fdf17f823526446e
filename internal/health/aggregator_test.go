package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cfgpkg "github.com/taoyao-code/ubx-gateway/internal/config"
	"github.com/taoyao-code/ubx-gateway/internal/protocol/ubx"
	"github.com/taoyao-code/ubx-gateway/internal/sink"
	"github.com/taoyao-code/ubx-gateway/internal/tcpserver"
)

type mockChecker struct {
	name   string
	status Status
}

func (m *mockChecker) Name() string { return m.name }

func (m *mockChecker) Check(context.Context) CheckResult {
	return CheckResult{Status: m.status, Message: "mock", Latency: time.Millisecond}
}

func TestAggregator(t *testing.T) {
	ctx := context.Background()

	t.Run("全部健康", func(t *testing.T) {
		agg := NewAggregator(&mockChecker{"db", StatusHealthy}, &mockChecker{"tcp", StatusHealthy})
		assert.Equal(t, StatusHealthy, agg.OverallStatus(ctx))
		assert.True(t, agg.Ready(ctx))
	})

	t.Run("部分降级仍就绪", func(t *testing.T) {
		agg := NewAggregator(&mockChecker{"db", StatusHealthy}, &mockChecker{"redis", StatusDegraded})
		assert.Equal(t, StatusDegraded, agg.OverallStatus(ctx))
		assert.True(t, agg.Ready(ctx))
	})

	t.Run("部分不健康", func(t *testing.T) {
		agg := NewAggregator(&mockChecker{"db", StatusUnhealthy}, &mockChecker{"redis", StatusDegraded})
		assert.Equal(t, StatusUnhealthy, agg.OverallStatus(ctx))
		assert.False(t, agg.Ready(ctx))
	})

	t.Run("动态添加检查器", func(t *testing.T) {
		agg := NewAggregator(&mockChecker{"initial", StatusHealthy})
		agg.AddChecker(&mockChecker{"added", StatusHealthy})
		assert.Len(t, agg.CheckAll(ctx), 2)
	})

	t.Run("报告只执行一次检查", func(t *testing.T) {
		calls := 0
		agg := NewAggregator(CheckerFunc{CheckerName: "once", Fn: func(context.Context) CheckResult {
			calls++
			return CheckResult{Status: StatusDegraded}
		}})
		report := agg.Report(ctx)
		assert.Equal(t, 1, calls)
		assert.Equal(t, StatusDegraded, report.Status)
		assert.Contains(t, report.Checks, "once")
	})

	t.Run("Alive始终返回true", func(t *testing.T) {
		assert.True(t, NewAggregator().Alive())
	})
}

func TestSinkChecker(t *testing.T) {
	fan := sink.NewFanout(sink.FanoutOptions{BreakerThreshold: 1, BreakerTimeout: time.Minute}, nil)
	fan.Add(failingStore{}, nil)
	c := NewSinkChecker(fan)

	assert.Equal(t, StatusHealthy, c.Check(context.Background()).Status)

	f, err := buildAck()
	require.NoError(t, err)
	require.Error(t, fan.Save(context.Background(), sink.Record{Frame: f}))

	r := c.Check(context.Background())
	assert.Equal(t, StatusDegraded, r.Status)
	assert.Equal(t, "open", r.Details["failing"])
}

func TestTCPChecker(t *testing.T) {
	srv := tcpserver.New(cfgpkg.TCPConfig{Addr: "127.0.0.1:0", MaxConnections: 10}, nil)
	r := NewTCPChecker(srv).Check(context.Background())
	assert.Equal(t, StatusHealthy, r.Status)
	assert.Equal(t, 10, r.Details["max_connections"])
}

func TestHTTPRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("降级返回200", func(t *testing.T) {
		r := gin.New()
		RegisterHTTPRoutes(r, NewAggregator(&mockChecker{"redis", StatusDegraded}))

		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))
		require.Equal(t, http.StatusOK, rr.Code)

		var report HealthReport
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &report))
		assert.Equal(t, StatusDegraded, report.Status)
	})

	t.Run("不健康返回503", func(t *testing.T) {
		r := gin.New()
		RegisterHTTPRoutes(r, NewAggregator(&mockChecker{"database", StatusUnhealthy}))

		for _, path := range []string{"/health", "/health/ready"} {
			rr := httptest.NewRecorder()
			r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
			assert.Equal(t, http.StatusServiceUnavailable, rr.Code, path)
		}

		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health/live", nil))
		assert.Equal(t, http.StatusOK, rr.Code)
	})
}

type failingStore struct{}

func (failingStore) Name() string                            { return "failing" }
func (failingStore) Save(context.Context, sink.Record) error { return errors.New("boom") }

func buildAck() (*ubx.Frame, error) { return ubx.Build(ubx.AckACK, []byte{0x06, 0x01}) }

func TestPoolStatus(t *testing.T) {
	tests := []struct {
		name     string
		acquired int32
		max      int32
		want     Status
	}{
		{"空闲", 2, 20, StatusHealthy},
		{"接近上限", 19, 20, StatusDegraded},
		{"占满", 20, 20, StatusUnhealthy},
		{"未配置上限", 3, 0, StatusHealthy},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, poolStatus(tt.acquired, tt.max))
		})
	}
}
