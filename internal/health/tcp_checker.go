package health

import (
	"context"
	"fmt"
	"time"

	"github.com/taoyao-code/ubx-gateway/internal/tcpserver"
)

// TCPChecker 接入连接数检查
type TCPChecker struct {
	server *tcpserver.Server
}

func NewTCPChecker(server *tcpserver.Server) *TCPChecker {
	return &TCPChecker{server: server}
}

func (c *TCPChecker) Name() string { return "tcp" }

func (c *TCPChecker) Check(context.Context) CheckResult {
	start := time.Now()
	st := c.server.Stats()
	conns := st.Connections

	status, message := StatusHealthy, "ok"
	switch {
	case conns.Utilization > 0.95:
		status, message = StatusUnhealthy, "connection limit near exhausted"
	case conns.Utilization > 0.8:
		status, message = StatusDegraded, "high connection usage"
	}
	return CheckResult{
		Status:  status,
		Message: message,
		Details: map[string]any{
			"active_connections": conns.ActiveConnections,
			"peak_connections":   conns.PeakConnections,
			"max_connections":    conns.MaxConnections,
			"rejected_total":     conns.RejectedTotal,
			"rate_rejected":      st.Accept.RejectedTotal,
			"utilization":        fmt.Sprintf("%.1f%%", conns.Utilization*100),
		},
		Latency: time.Since(start),
	}
}
