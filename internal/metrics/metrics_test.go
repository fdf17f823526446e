package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppMetrics_Exposed(t *testing.T) {
	reg := NewRegistry()
	m := NewAppMetrics(reg)

	m.FramesTotal.WithLabelValues("MON", "MON-VER").Inc()
	m.DecodeErrors.WithLabelValues("checksum").Add(2)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.FramesTotal.WithLabelValues("MON", "MON-VER")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.DecodeErrors.WithLabelValues("checksum")))

	rr := httptest.NewRecorder()
	Handler(reg).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	assert.True(t, strings.Contains(body, `ubx_frames_total{class="MON",id="MON-VER"} 1`))
	assert.Contains(t, body, "go_goroutines")
}

func TestAppMetrics_Commands(t *testing.T) {
	reg := NewRegistry()
	m := NewAppMetrics(reg)

	m.Commands.WithLabelValues("acked").Inc()
	m.BytesSent.WithLabelValues("tcp").Add(8)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Commands.WithLabelValues("acked")))
	assert.Equal(t, 8.0, testutil.ToFloat64(m.BytesSent.WithLabelValues("tcp")))
}
