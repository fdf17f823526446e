package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRegistry 创建自定义 Prometheus Registry，并注册常用采集器
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

// Handler 返回 Prometheus 指标 HTTP 处理器
func Handler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})
}

// AppMetrics 自定义业务指标
type AppMetrics struct {
	TCPAccepted     prometheus.Counter
	TCPRejected     *prometheus.CounterVec // labels: reason=rate|limit
	BytesReceived   *prometheus.CounterVec // labels: source=tcp|serial
	ActiveSessions  prometheus.Gauge
	FramesTotal     *prometheus.CounterVec // labels: class, id
	DecodeErrors    *prometheus.CounterVec // labels: kind
	SinkWrites      *prometheus.CounterVec // labels: store, result
	LiveFeedClients prometheus.Gauge
	DiscardedBytes  prometheus.Counter
	BytesSent       *prometheus.CounterVec // labels: source=tcp|serial
	Commands        *prometheus.CounterVec // labels: result
}

// NewAppMetrics 注册并返回业务指标
func NewAppMetrics(reg prometheus.Registerer) *AppMetrics {
	m := &AppMetrics{
		TCPAccepted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tcp_accept_total",
			Help: "Total accepted TCP connections.",
		}),
		TCPRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tcp_reject_total",
			Help: "Rejected TCP connections by reason.",
		}, []string{"reason"}),
		BytesReceived: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ubx_bytes_received_total",
			Help: "Raw bytes received from receivers.",
		}, []string{"source"}),
		ActiveSessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "ubx_ingest_sessions",
			Help: "Current number of ingest sessions.",
		}),
		FramesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ubx_frames_total",
			Help: "Decoded UBX frames by class and id.",
		}, []string{"class", "id"}),
		DecodeErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ubx_decode_errors_total",
			Help: "UBX frame decode failures by kind.",
		}, []string{"kind"}),
		SinkWrites: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ubx_sink_writes_total",
			Help: "Frame sink writes by store and result.",
		}, []string{"store", "result"}),
		LiveFeedClients: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "ubx_livefeed_clients",
			Help: "Connected live-feed websocket clients.",
		}),
		DiscardedBytes: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ubx_discarded_bytes_total",
			Help: "Bytes skipped while scanning for sync.",
		}),
		BytesSent: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ubx_bytes_sent_total",
			Help: "Raw bytes written to receivers.",
		}, []string{"source"}),
		Commands: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ubx_commands_total",
			Help: "Outbound commands by final result.",
		}, []string{"result"}),
	}
	reg.MustRegister(m.TCPAccepted, m.TCPRejected, m.BytesReceived, m.ActiveSessions,
		m.FramesTotal, m.DecodeErrors, m.SinkWrites, m.LiveFeedClients, m.DiscardedBytes,
		m.BytesSent, m.Commands)
	return m
}
